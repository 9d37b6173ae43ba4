package workflow_test

import (
	"context"
	"log/slog"
	"os"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/trip-management/internal/department"
	"github.com/frahmantamala/trip-management/internal/document"
	"github.com/frahmantamala/trip-management/internal/trip"
	"github.com/frahmantamala/trip-management/internal/workflow"
)

// Mock trip store for testing
type mockTripStore struct {
	trips           map[int64]*trip.Trip
	deputyGovernors map[int64]*trip.DeputyGovernor
}

func newMockTripStore() *mockTripStore {
	return &mockTripStore{
		trips:           make(map[int64]*trip.Trip),
		deputyGovernors: make(map[int64]*trip.DeputyGovernor),
	}
}

func (m *mockTripStore) GetByID(id int64) (*trip.Trip, error) {
	t, ok := m.trips[id]
	if !ok {
		return nil, trip.ErrTripNotFound
	}
	return t, nil
}

func (m *mockTripStore) GetByIDs(ids []int64) ([]*trip.Trip, error) {
	var trips []*trip.Trip
	for _, id := range ids {
		if t, ok := m.trips[id]; ok {
			trips = append(trips, t)
		}
	}
	return trips, nil
}

func (m *mockTripStore) AttachDeputyGovernor(tripID, deputyGovernorID int64) error {
	t, ok := m.trips[tripID]
	if !ok {
		return trip.ErrTripNotFound
	}
	t.DeputyGovernorID = &deputyGovernorID
	return nil
}

func (m *mockTripStore) GetDeputyGovernor(id int64) (*trip.DeputyGovernor, error) {
	dg, ok := m.deputyGovernors[id]
	if !ok {
		return nil, trip.ErrDeputyGovernorNotFound
	}
	return dg, nil
}

// Mock documents for testing
type mockDocuments struct {
	orders   map[int64]*document.Order
	fundings map[int64]*document.ApplicationFunding
	scans    map[int64]string
}

func newMockDocuments() *mockDocuments {
	return &mockDocuments{
		orders:   make(map[int64]*document.Order),
		fundings: make(map[int64]*document.ApplicationFunding),
		scans:    make(map[int64]string),
	}
}

func (m *mockDocuments) PrepareOrder(t *trip.Trip) (*document.Order, error) {
	if o, ok := m.orders[t.ID]; ok {
		return o, nil
	}
	o := &document.Order{TripID: t.ID}
	m.orders[t.ID] = o
	return o, nil
}

func (m *mockDocuments) UpdateOrder(t *trip.Trip, dto document.OrderDTO) (*document.Order, error) {
	o, _ := m.PrepareOrder(t)
	o.FullName = dto.FullName
	o.Period = dto.Period
	o.Location = dto.Location
	return o, nil
}

func (m *mockDocuments) AttachOrderScan(t *trip.Trip, scanRef string) error {
	m.scans[t.ID] = scanRef
	return nil
}

func (m *mockDocuments) PrepareFunding(t *trip.Trip) (*document.ApplicationFunding, error) {
	if app, ok := m.fundings[t.ID]; ok {
		return app, nil
	}
	app := &document.ApplicationFunding{TripID: t.ID}
	m.fundings[t.ID] = app
	return app, nil
}

func (m *mockDocuments) UpdateFunding(t *trip.Trip, dto document.FundingDTO) (*document.ApplicationFunding, error) {
	app, _ := m.PrepareFunding(t)
	if dto.Fare != "" {
		app.Fare = dto.Fare
	}
	return app, nil
}

// Mock notifier for testing
type notifiedQueue struct {
	TripID     int64
	Department department.Department
}

type mockNotifier struct {
	notified []notifiedQueue
}

func (m *mockNotifier) QueueAdmitted(_ context.Context, tripID int64, dep department.Department) {
	m.notified = append(m.notified, notifiedQueue{TripID: tripID, Department: dep})
}

var _ = Describe("WorkflowService", func() {
	var (
		repo      *mockQueueRepository
		trips     *mockTripStore
		documents *mockDocuments
		notifier  *mockNotifier
		service   *workflow.Service
	)

	testLogger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	ctx := context.Background()

	deputyID := int64(7)

	BeforeEach(func() {
		repo = newMockQueueRepository()
		trips = newMockTripStore()
		documents = newMockDocuments()
		notifier = &mockNotifier{}

		engine := workflow.NewEngine(repo, testLogger)
		service = workflow.NewService(engine, repo, trips, documents, notifier, testLogger)

		trips.trips[1] = &trip.Trip{
			ID:         1,
			SecondName: "Зюся",
			FirstName:  "Сергей",
			Patronymic: "Валерьевич",
			Position:   "пресс-секретарь",
			Location:   "г. Магнитогорск",
			Purpose:    "информационным сопровождением",
			StartDate:  time.Date(2019, time.September, 20, 0, 0, 0, 0, time.UTC),
			EndDate:    time.Date(2019, time.September, 22, 0, 0, 0, 0, time.UTC),
			HotelDays:  2,
		}
		trips.deputyGovernors[deputyID] = &trip.DeputyGovernor{ID: deputyID, FullName: "Мамин Виктор Викторович"}

		Expect(service.Submit(ctx, 1)).To(Succeed())
	})

	Describe("Submit", func() {
		It("should notify the head-of-department queue exactly once", func() {
			Expect(notifier.notified).To(Equal([]notifiedQueue{
				{TripID: 1, Department: department.HeadOfDepartment},
			}))
		})
	})

	Describe("Complete", func() {
		It("should require a deputy governor at the head stage", func() {
			err := service.Complete(ctx, 1, department.HeadOfDepartment, workflow.ActionDTO{Action: workflow.ActionComplete})
			Expect(err).To(Equal(workflow.ErrDeputyGovernorRequired))
		})

		It("should reject an unknown deputy governor", func() {
			unknown := int64(99)
			err := service.Complete(ctx, 1, department.HeadOfDepartment, workflow.ActionDTO{
				Action:           workflow.ActionComplete,
				DeputyGovernorID: &unknown,
			})
			Expect(err).To(Equal(trip.ErrDeputyGovernorNotFound))
		})

		It("should attach the deputy governor and fan out notifications", func() {
			err := service.Complete(ctx, 1, department.HeadOfDepartment, workflow.ActionDTO{
				Action:           workflow.ActionComplete,
				DeputyGovernorID: &deputyID,
			})
			Expect(err).NotTo(HaveOccurred())

			Expect(trips.trips[1].DeputyGovernorID).NotTo(BeNil())
			Expect(*trips.trips[1].DeputyGovernorID).To(Equal(deputyID))

			Expect(notifier.notified).To(ConsistOf(
				notifiedQueue{TripID: 1, Department: department.HeadOfDepartment},
				notifiedQueue{TripID: 1, Department: department.DeputyGovernor},
				notifiedQueue{TripID: 1, Department: department.PurchasingDepartment},
			))
		})

		It("should update the order at the deputy-governor stage", func() {
			completeHead := workflow.ActionDTO{Action: workflow.ActionComplete, DeputyGovernorID: &deputyID}
			Expect(service.Complete(ctx, 1, department.HeadOfDepartment, completeHead)).To(Succeed())

			err := service.Complete(ctx, 1, department.DeputyGovernor, workflow.ActionDTO{
				Action: workflow.ActionComplete,
				Order: &document.OrderDTO{
					FullName: "Зюсю Сергея Валерьевича",
					Period:   "с 20 по 22 сентября 2019 года",
					Location: "г. Магнитогорск",
				},
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(documents.orders[1].FullName).To(Equal("Зюсю Сергея Валерьевича"))
		})

		It("should require funding figures at the purchasing stage", func() {
			completeHead := workflow.ActionDTO{Action: workflow.ActionComplete, DeputyGovernorID: &deputyID}
			Expect(service.Complete(ctx, 1, department.HeadOfDepartment, completeHead)).To(Succeed())

			err := service.Complete(ctx, 1, department.PurchasingDepartment, workflow.ActionDTO{Action: workflow.ActionComplete})
			Expect(err).To(HaveOccurred())

			entry, getErr := repo.Get(1, department.PurchasingDepartment)
			Expect(getErr).NotTo(HaveOccurred())
			Expect(entry.Status).To(Equal(workflow.StatusNew))
		})

		It("should return ErrEntryNotFound for a queue the trip never entered", func() {
			err := service.Complete(ctx, 1, department.Bookkeeping, workflow.ActionDTO{Action: workflow.ActionComplete})
			Expect(err).To(Equal(workflow.ErrEntryNotFound))
		})

		It("should return ErrInvalidTransition for a completed entry", func() {
			completeHead := workflow.ActionDTO{Action: workflow.ActionComplete, DeputyGovernorID: &deputyID}
			Expect(service.Complete(ctx, 1, department.HeadOfDepartment, completeHead)).To(Succeed())

			err := service.Complete(ctx, 1, department.HeadOfDepartment, completeHead)
			Expect(err).To(Equal(workflow.ErrInvalidTransition))
		})
	})

	Describe("SaveFunding", func() {
		BeforeEach(func() {
			completeHead := workflow.ActionDTO{Action: workflow.ActionComplete, DeputyGovernorID: &deputyID}
			Expect(service.Complete(ctx, 1, department.HeadOfDepartment, completeHead)).To(Succeed())
		})

		It("should update the figures without completing the stage", func() {
			err := service.SaveFunding(ctx, 1, document.FundingDTO{Fare: "1500"})
			Expect(err).NotTo(HaveOccurred())
			Expect(documents.fundings[1].Fare).To(Equal("1500"))

			entry, err := repo.Get(1, department.PurchasingDepartment)
			Expect(err).NotTo(HaveOccurred())
			Expect(entry.Status).To(Equal(workflow.StatusNew))
		})

		It("should refuse once the stage is terminal", func() {
			err := service.Complete(ctx, 1, department.PurchasingDepartment, workflow.ActionDTO{
				Action:  workflow.ActionComplete,
				Funding: &document.FundingDTO{Fare: "1500"},
			})
			Expect(err).NotTo(HaveOccurred())

			err = service.SaveFunding(ctx, 1, document.FundingDTO{Fare: "2000"})
			Expect(err).To(Equal(workflow.ErrInvalidTransition))
		})
	})

	Describe("QueueView", func() {
		It("should prefill the order for the personnel queue", func() {
			completeHead := workflow.ActionDTO{Action: workflow.ActionComplete, DeputyGovernorID: &deputyID}
			Expect(service.Complete(ctx, 1, department.HeadOfDepartment, completeHead)).To(Succeed())

			view, err := service.QueueView(ctx, 1, department.DeputyGovernor)
			Expect(err).NotTo(HaveOccurred())
			Expect(view.Status).To(Equal(workflow.StatusNew))
			Expect(view.Order).NotTo(BeNil())
			Expect(view.Funding).To(BeNil())
		})

		It("should prefill the funding application for the purchasing queue", func() {
			completeHead := workflow.ActionDTO{Action: workflow.ActionComplete, DeputyGovernorID: &deputyID}
			Expect(service.Complete(ctx, 1, department.HeadOfDepartment, completeHead)).To(Succeed())

			view, err := service.QueueView(ctx, 1, department.PurchasingDepartment)
			Expect(err).NotTo(HaveOccurred())
			Expect(view.Funding).NotTo(BeNil())
			Expect(view.Order).To(BeNil())
		})

		It("should return ErrEntryNotFound when the trip is not in the queue", func() {
			_, err := service.QueueView(ctx, 1, department.Bookkeeping)
			Expect(err).To(Equal(workflow.ErrEntryNotFound))
		})
	})

	Describe("ListTrips", func() {
		It("should default an unknown queue to the all-trips view", func() {
			list, err := service.ListTrips("warehouse", "")
			Expect(err).NotTo(HaveOccurred())
			Expect(list.Queue).To(Equal("all"))
			Expect(list.Status).To(Equal(workflow.StatusNew))
			Expect(list.Trips).To(HaveLen(1))
		})

		It("should default an unavailable status to NEW", func() {
			list, err := service.ListTrips("deputy_governor", "REJECTED")
			Expect(err).NotTo(HaveOccurred())
			Expect(list.Status).To(Equal(workflow.StatusNew))
			Expect(list.AvailableStatuses).NotTo(ContainElement(workflow.StatusRejected))
		})

		It("should offer the REJECTED filter on the head-of-department view", func() {
			list, err := service.ListTrips("head_of_department", "rejected")
			Expect(err).NotTo(HaveOccurred())
			Expect(list.Status).To(Equal(workflow.StatusRejected))
			Expect(list.AvailableStatuses).To(ContainElement(workflow.StatusRejected))
		})

		It("should list only trips pending in the requested queue", func() {
			list, err := service.ListTrips("head_of_department", "NEW")
			Expect(err).NotTo(HaveOccurred())
			Expect(list.Trips).To(HaveLen(1))

			list, err = service.ListTrips("bookkeeping", "NEW")
			Expect(err).NotTo(HaveOccurred())
			Expect(list.Trips).To(BeEmpty())
		})
	})
})
