package notification_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/trip-management/internal"
	"github.com/frahmantamala/trip-management/internal/core/events"
	"github.com/frahmantamala/trip-management/internal/department"
	"github.com/frahmantamala/trip-management/internal/notification"
)

func TestNotification(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Notification Suite")
}

// Mock subscription repository for testing
type mockSubscriptionRepository struct {
	subscriptions map[department.Department][]*notification.EmailSubscription
	listError     error
}

func newMockSubscriptionRepository() *mockSubscriptionRepository {
	return &mockSubscriptionRepository{
		subscriptions: make(map[department.Department][]*notification.EmailSubscription),
	}
}

func (m *mockSubscriptionRepository) ListActiveByDepartment(dep department.Department) ([]*notification.EmailSubscription, error) {
	if m.listError != nil {
		return nil, m.listError
	}
	return m.subscriptions[dep], nil
}

// Mock mailer for testing
type sentMail struct {
	To      string
	Subject string
	Body    string
}

type mockMailer struct {
	mu      sync.Mutex
	sent    []sentMail
	failFor string
	gate    chan struct{}
}

func (m *mockMailer) SendMail(ctx context.Context, to, senderName, subject, body string) error {
	if m.gate != nil {
		<-m.gate
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if m.failFor == to {
		return errors.New("mailbox unavailable")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentMail{To: to, Subject: subject, Body: body})
	return nil
}

func (m *mockMailer) Sent() []sentMail {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]sentMail(nil), m.sent...)
}

var _ = Describe("Dispatcher", func() {
	var (
		repo       *mockSubscriptionRepository
		mailer     *mockMailer
		dispatcher *notification.Dispatcher
	)

	testLogger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	mailCfg := internal.MailConfig{SenderName: "noreply", Subject: "Заявка на командировку"}
	ctx := context.Background()

	BeforeEach(func() {
		repo = newMockSubscriptionRepository()
		mailer = &mockMailer{}
		dispatcher = notification.NewDispatcher(repo, mailer, mailCfg, testLogger)
	})

	Describe("NotifyQueue", func() {
		It("should mail every active subscriber of the queue", func() {
			repo.subscriptions[department.Bookkeeping] = []*notification.EmailSubscription{
				{Email: "one@example.org", Department: department.Bookkeeping, Active: true},
				{Email: "two@example.org", Department: department.Bookkeeping, Active: true},
			}

			dispatcher.NotifyQueue(ctx, 1, department.Bookkeeping)

			Expect(mailer.sent).To(HaveLen(2))
			Expect(mailer.sent[0].Subject).To(Equal("Заявка на командировку"))
			Expect(mailer.sent[0].Body).To(Equal(`В очереди "Бухгалтерия" новая заявка`))
		})

		It("should keep delivering after one send fails", func() {
			repo.subscriptions[department.Bookkeeping] = []*notification.EmailSubscription{
				{Email: "broken@example.org", Department: department.Bookkeeping, Active: true},
				{Email: "fine@example.org", Department: department.Bookkeeping, Active: true},
			}
			mailer.failFor = "broken@example.org"

			dispatcher.NotifyQueue(ctx, 1, department.Bookkeeping)

			Expect(mailer.sent).To(HaveLen(1))
			Expect(mailer.sent[0].To).To(Equal("fine@example.org"))
		})

		It("should send nothing when the queue has no subscribers", func() {
			dispatcher.NotifyQueue(ctx, 1, department.PersonnelDepartment)
			Expect(mailer.sent).To(BeEmpty())
		})

		It("should swallow repository failures", func() {
			repo.listError = errors.New("connection lost")
			dispatcher.NotifyQueue(ctx, 1, department.Bookkeeping)
			Expect(mailer.sent).To(BeEmpty())
		})
	})

	Describe("RegisterHandlers", func() {
		It("should deliver mail for queue admissions published on the bus", func() {
			repo.subscriptions[department.DeputyGovernor] = []*notification.EmailSubscription{
				{Email: "deputy@example.org", Department: department.DeputyGovernor, Active: true},
			}

			bus := events.NewEventBus(testLogger)
			dispatcher.RegisterHandlers(bus)

			err := bus.PublishSync(ctx, events.NewQueueAdmittedEvent(1, department.DeputyGovernor))
			Expect(err).NotTo(HaveOccurred())
			Expect(mailer.sent).To(HaveLen(1))
			Expect(mailer.sent[0].To).To(Equal("deputy@example.org"))
		})
	})

	Describe("BusNotifier", func() {
		It("should deliver mail even after the request context is cancelled", func() {
			repo.subscriptions[department.Bookkeeping] = []*notification.EmailSubscription{
				{Email: "books@example.org", Department: department.Bookkeeping, Active: true},
			}
			mailer.gate = make(chan struct{})

			bus := events.NewEventBus(testLogger)
			dispatcher.RegisterHandlers(bus)
			notifier := notification.NewBusNotifier(bus, testLogger)

			reqCtx, cancel := context.WithCancel(context.Background())
			notifier.QueueAdmitted(reqCtx, 1, department.Bookkeeping)
			cancel()
			close(mailer.gate)

			Eventually(mailer.Sent).Should(HaveLen(1))
			Expect(mailer.Sent()[0].To).To(Equal("books@example.org"))
		})
	})
})
