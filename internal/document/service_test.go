package document_test

import (
	"context"
	"errors"
	"log/slog"
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/trip-management/internal/document"
)

// Mock repository for testing
type mockDocumentRepository struct {
	orders   map[int64]*document.Order
	fundings map[int64]*document.ApplicationFunding
	nextID   int64
}

func newMockDocumentRepository() *mockDocumentRepository {
	return &mockDocumentRepository{
		orders:   make(map[int64]*document.Order),
		fundings: make(map[int64]*document.ApplicationFunding),
		nextID:   1,
	}
}

func (m *mockDocumentRepository) GetOrderByTrip(tripID int64) (*document.Order, error) {
	o, ok := m.orders[tripID]
	if !ok {
		return nil, document.ErrOrderNotFound
	}
	return o, nil
}

func (m *mockDocumentRepository) GetOrCreateOrder(defaults *document.Order) (*document.Order, error) {
	if o, ok := m.orders[defaults.TripID]; ok {
		return o, nil
	}
	o := *defaults
	o.ID = m.nextID
	m.nextID++
	m.orders[defaults.TripID] = &o
	return &o, nil
}

func (m *mockDocumentRepository) SaveOrder(o *document.Order) error {
	m.orders[o.TripID] = o
	return nil
}

func (m *mockDocumentRepository) GetFundingByTrip(tripID int64) (*document.ApplicationFunding, error) {
	app, ok := m.fundings[tripID]
	if !ok {
		return nil, document.ErrFundingNotFound
	}
	return app, nil
}

func (m *mockDocumentRepository) GetOrCreateFunding(defaults *document.ApplicationFunding) (*document.ApplicationFunding, error) {
	if app, ok := m.fundings[defaults.TripID]; ok {
		return app, nil
	}
	app := *defaults
	app.ID = m.nextID
	m.nextID++
	m.fundings[defaults.TripID] = &app
	return &app, nil
}

func (m *mockDocumentRepository) SaveFunding(app *document.ApplicationFunding) error {
	m.fundings[app.TripID] = app
	return nil
}

// Mock renderer for testing
type mockRenderer struct {
	lastFields  document.TemplateFields
	renderError error
}

func (m *mockRenderer) RenderTemplate(_ context.Context, fields document.TemplateFields) ([]byte, error) {
	if m.renderError != nil {
		return nil, m.renderError
	}
	m.lastFields = fields
	return []byte("%PDF-stub"), nil
}

var _ = Describe("DocumentService", func() {
	var (
		repo     *mockDocumentRepository
		renderer *mockRenderer
		service  *document.Service
	)

	testLogger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	BeforeEach(func() {
		repo = newMockDocumentRepository()
		renderer = &mockRenderer{}
		service = document.NewService(repo, renderer, document.NewPassthroughInflector(), allowance, testLogger)
	})

	Describe("PrepareFunding", func() {
		It("should create the record with computed allowance defaults", func() {
			t := sampleTrip()
			app, err := service.PrepareFunding(t)
			Expect(err).NotTo(HaveOccurred())
			Expect(app.DailyAllowance).To(Equal("400"))
			Expect(app.HotelCost).To(Equal("800"))
		})

		It("should reuse the existing record on a second call", func() {
			t := sampleTrip()
			first, err := service.PrepareFunding(t)
			Expect(err).NotTo(HaveOccurred())

			second, err := service.PrepareFunding(t)
			Expect(err).NotTo(HaveOccurred())
			Expect(second.ID).To(Equal(first.ID))
		})
	})

	Describe("UpdateFunding", func() {
		It("should keep existing values for empty inputs", func() {
			t := sampleTrip()
			_, err := service.UpdateFunding(t, document.FundingDTO{Fare: "1500"})
			Expect(err).NotTo(HaveOccurred())

			app, err := service.UpdateFunding(t, document.FundingDTO{HotelCost: "999"})
			Expect(err).NotTo(HaveOccurred())
			Expect(app.Fare).To(Equal("1500"))
			Expect(app.HotelCost).To(Equal("999"))
			Expect(app.DailyAllowance).To(Equal("400"))
		})
	})

	Describe("AttachOrderScan", func() {
		It("should store the scan reference on the order", func() {
			t := sampleTrip()
			err := service.AttachOrderScan(t, "scans/order-1.pdf")
			Expect(err).NotTo(HaveOccurred())

			o, err := repo.GetOrderByTrip(t.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(o.ScanRef).To(Equal("scans/order-1.pdf"))
		})
	})

	Describe("Render", func() {
		It("should not create a missing order record", func() {
			t := sampleTrip()
			_, err := service.Render(context.Background(), t, document.TypeOrder)
			Expect(err).To(Equal(document.ErrOrderNotFound))
			Expect(repo.orders).To(BeEmpty())
		})

		It("should render an existing funding application", func() {
			t := sampleTrip()
			_, err := service.PrepareFunding(t)
			Expect(err).NotTo(HaveOccurred())

			stream, err := service.Render(context.Background(), t, document.TypeFundingApplication)
			Expect(err).NotTo(HaveOccurred())
			Expect(stream).To(Equal([]byte("%PDF-stub")))
			Expect(renderer.lastFields.BlankTarget).To(Equal("Заявка"))
		})

		It("should reject unknown document types", func() {
			t := sampleTrip()
			_, err := service.Render(context.Background(), t, "invoice")
			Expect(err).To(Equal(document.ErrUnsupportedDocumentType))
		})

		It("should surface renderer failures", func() {
			t := sampleTrip()
			_, err := service.PrepareOrder(t)
			Expect(err).NotTo(HaveOccurred())

			renderer.renderError = errors.New("service unavailable")
			_, err = service.Render(context.Background(), t, document.TypeOrder)
			Expect(err).To(MatchError("service unavailable"))
		})
	})
})
