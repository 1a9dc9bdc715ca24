package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agendabeleza/backend/internal/models"
	"github.com/agendabeleza/backend/internal/notify"
	"github.com/agendabeleza/backend/internal/session"
	"github.com/agendabeleza/backend/internal/utils"
)

const adminAddress = "salao@example.com"

type bookingFixture struct {
	bookings *MockBookingRepository
	services *MockServiceRepository
	notifier *MockNotifier
	service  *BookingService
}

func newBookingFixture() *bookingFixture {
	f := &bookingFixture{
		bookings: &MockBookingRepository{},
		services: &MockServiceRepository{services: []*models.Service{
			{ID: 1, Name: "Manicure", Description: "Unhas"},
			{ID: 2, Name: "Corte", Description: "Cabelo"},
		}},
		notifier: &MockNotifier{},
	}
	f.service = NewBookingService(f.bookings, f.services, f.notifier, adminAddress)
	return f
}

func loggedIn(id int64, email, name string) *session.Session {
	return &session.Session{ID: fmt.Sprintf("sess-%d", id), UserID: id, Email: email, Name: name}
}

func TestBookingService_Book(t *testing.T) {
	f := newBookingFixture()
	sess := loggedIn(7, "ana@example.com", "Ana")

	id, err := f.service.Book(context.Background(), sess, 1, "2025-03-10T14:30", "  Primeira vez  ")

	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	stored := f.bookings.Bookings()
	require.Len(t, stored, 1)
	assert.Equal(t, int64(7), stored[0].ClientID)
	assert.Equal(t, int64(1), stored[0].ServiceID)
	assert.Equal(t, models.BookingPending, stored[0].Status)
	assert.Equal(t, "Primeira vez", stored[0].Notes)
	assert.Equal(t, time.Date(2025, 3, 10, 14, 30, 0, 0, time.Local), stored[0].ScheduledAt)

	sent := f.notifier.Sent()
	require.Len(t, sent, 2)

	assert.Equal(t, notify.SubjectBookingClient, sent[0].Subject)
	assert.Equal(t, []string{"ana@example.com"}, sent[0].Recipients)
	assert.Empty(t, sent[0].ReplyTo)
	assert.Contains(t, sent[0].HTML, "10/03/2025 14:30")

	assert.Equal(t, notify.SubjectBookingAdmin, sent[1].Subject)
	assert.Equal(t, []string{adminAddress}, sent[1].Recipients)
	assert.Equal(t, "ana@example.com", sent[1].ReplyTo)
	assert.Contains(t, sent[1].HTML, "Manicure")
	assert.Contains(t, sent[1].HTML, "Primeira vez")
}

func TestBookingService_BookRequiresLogin(t *testing.T) {
	for name, sess := range map[string]*session.Session{
		"anonymous session": {ID: "anon"},
		"no session":        nil,
	} {
		t.Run(name, func(t *testing.T) {
			f := newBookingFixture()
			lookups := 0
			f.services.GetByIDFunc = func(ctx context.Context, id int64) (*models.Service, error) {
				lookups++
				return nil, errors.New("must not be called")
			}

			_, err := f.service.Book(context.Background(), sess, 1, "2025-03-10T14:30", "")

			assert.ErrorIs(t, err, utils.ErrUnauthenticated)
			assert.Zero(t, lookups)
			assert.Empty(t, f.bookings.Bookings())
			assert.Empty(t, f.notifier.Sent())
		})
	}
}

func TestBookingService_BookValidation(t *testing.T) {
	tests := []struct {
		name      string
		serviceID int64
		when      string
		notes     string
		field     string
	}{
		{"missing service", 0, "2025-03-10T14:30", "", "servico_id"},
		{"missing time", 1, "  ", "", "datahora"},
		{"day first format", 1, "10/03/2025", "", "datahora"},
		{"with seconds", 1, "2025-03-10T14:30:00", "", "datahora"},
		{"space separator", 1, "2025-03-10 14:30", "", "datahora"},
		{"unknown service", 99, "2025-03-10T14:30", "", "servico_id"},
		{"notes too long", 1, "2025-03-10T14:30", strings.Repeat("x", 1001), "observacoes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newBookingFixture()

			_, err := f.service.Book(context.Background(), loggedIn(7, "ana@example.com", "Ana"), tt.serviceID, tt.when, tt.notes)

			var appErr *utils.AppError
			require.ErrorAs(t, err, &appErr)
			assert.ErrorIs(t, err, utils.ErrValidation)
			assert.Equal(t, tt.field, appErr.Field)
			assert.Empty(t, f.bookings.Bookings())
			assert.Empty(t, f.notifier.Sent())
		})
	}
}

func TestBookingService_BookPersistenceFailure(t *testing.T) {
	f := newBookingFixture()
	f.bookings.CreateFunc = func(ctx context.Context, booking *models.Booking) error {
		return errors.New("Error 1452: foreign key constraint fails")
	}

	_, err := f.service.Book(context.Background(), loggedIn(7, "ana@example.com", "Ana"), 1, "2025-03-10T14:30", "")

	var appErr *utils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.ErrorIs(t, err, utils.ErrBooking)
	assert.NotContains(t, appErr.Message, "foreign key", "Driver detail must not reach the client")
	assert.Empty(t, f.notifier.Sent())
}

func TestBookingService_BookServiceLookupFailure(t *testing.T) {
	f := newBookingFixture()
	f.services.GetByIDFunc = func(ctx context.Context, id int64) (*models.Service, error) {
		return nil, utils.NewConnectionError(errors.New("no such host"))
	}

	_, err := f.service.Book(context.Background(), loggedIn(7, "ana@example.com", "Ana"), 1, "2025-03-10T14:30", "")

	assert.True(t, utils.IsConnectionError(err))
	assert.Empty(t, f.bookings.Bookings())
}

func TestBookingService_NoAdminAddress(t *testing.T) {
	f := newBookingFixture()
	f.service = NewBookingService(f.bookings, f.services, f.notifier, "")

	_, err := f.service.Book(context.Background(), loggedIn(7, "ana@example.com", "Ana"), 2, "2025-03-10T14:30", "")

	require.NoError(t, err)
	sent := f.notifier.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, notify.SubjectBookingClient, sent[0].Subject)
}

func TestBookingService_ConcurrentBookings(t *testing.T) {
	f := newBookingFixture()

	const clients = 20
	var wg sync.WaitGroup
	errs := make(chan error, clients)

	for i := 1; i <= clients; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			sess := loggedIn(id, fmt.Sprintf("cliente%d@example.com", id), fmt.Sprintf("Cliente %d", id))
			_, err := f.service.Book(context.Background(), sess, 1+id%2, "2025-03-10T14:30", "")
			errs <- err
		}(int64(i))
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}

	stored := f.bookings.Bookings()
	require.Len(t, stored, clients)

	owners := map[int64]bool{}
	ids := map[int64]bool{}
	for _, b := range stored {
		owners[b.ClientID] = true
		ids[b.ID] = true
	}
	assert.Len(t, owners, clients, "Each client owns exactly one booking")
	assert.Len(t, ids, clients, "Booking IDs must be distinct")
	assert.Len(t, f.notifier.Sent(), 2*clients)

	replyTo := map[string]bool{}
	for _, m := range f.notifier.Sent() {
		if m.Subject == notify.SubjectBookingAdmin {
			replyTo[m.ReplyTo] = true
		}
	}
	assert.Len(t, replyTo, clients, "Every alert must reply to its own client")
}

func TestBookingService_ListForClient(t *testing.T) {
	f := newBookingFixture()
	ana := loggedIn(7, "ana@example.com", "Ana")
	rui := loggedIn(8, "rui@example.com", "Rui")

	_, err := f.service.Book(context.Background(), ana, 1, "2025-03-10T14:30", "")
	require.NoError(t, err)
	_, err = f.service.Book(context.Background(), rui, 2, "2025-03-11T10:00", "")
	require.NoError(t, err)
	_, err = f.service.Book(context.Background(), ana, 2, "2025-03-12T09:00", "")
	require.NoError(t, err)

	list, err := f.service.ListForClient(context.Background(), ana)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, int64(3), list[0].ID)
	assert.Equal(t, int64(1), list[1].ID)

	_, err = f.service.ListForClient(context.Background(), &session.Session{ID: "anon"})
	assert.ErrorIs(t, err, utils.ErrUnauthenticated)
}
