package service

import (
	"context"
	"sync"

	"github.com/agendabeleza/backend/internal/models"
	"github.com/agendabeleza/backend/internal/utils"
)

// MockUserRepository is an in-memory UserRepository.
type MockUserRepository struct {
	mu           sync.Mutex
	usersByEmail map[string]*models.User
	nextID       int64
	writes       int

	GetByEmailFunc func(ctx context.Context, email string) (*models.User, error)
	CreateFunc     func(ctx context.Context, user *models.User) error
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		usersByEmail: make(map[string]*models.User),
		nextID:       1,
	}
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.writes++
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	if _, ok := m.usersByEmail[user.Email]; ok {
		return utils.NewDuplicateError("User", "email", user.Email)
	}

	user.ID = m.nextID
	m.nextID++
	stored := *user
	m.usersByEmail[user.Email] = &stored
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.usersByEmail {
		if u.ID == id {
			c := *u
			return &c, nil
		}
	}
	return nil, utils.NewNotFoundError("User", id)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.usersByEmail[email]
	if !ok {
		return nil, utils.NewNotFoundError("User", email)
	}
	c := *u
	return &c, nil
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, email, passwordHash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.writes++
	u, ok := m.usersByEmail[email]
	if !ok {
		return utils.NewNotFoundError("User", email)
	}
	u.PasswordHash = passwordHash
	return nil
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, ok := m.usersByEmail[email]
	return ok, nil
}

func (m *MockUserRepository) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}

// MockServiceRepository serves a fixed catalog.
type MockServiceRepository struct {
	services    []*models.Service
	searchTerms []string
	listCalls   int

	GetByIDFunc func(ctx context.Context, id int64) (*models.Service, error)
}

func (m *MockServiceRepository) List(ctx context.Context) ([]*models.Service, error) {
	m.listCalls++
	return m.services, nil
}

func (m *MockServiceRepository) Search(ctx context.Context, term string) ([]*models.Service, error) {
	m.searchTerms = append(m.searchTerms, term)
	return m.services[:1], nil
}

func (m *MockServiceRepository) GetByID(ctx context.Context, id int64) (*models.Service, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	for _, s := range m.services {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, utils.NewNotFoundError("Service", id)
}

// MockBookingRepository records inserted bookings.
type MockBookingRepository struct {
	mu       sync.Mutex
	bookings []*models.Booking
	nextID   int64

	CreateFunc func(ctx context.Context, booking *models.Booking) error
}

func (m *MockBookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.CreateFunc != nil {
		if err := m.CreateFunc(ctx, booking); err != nil {
			return err
		}
	}
	m.nextID++
	booking.ID = m.nextID
	stored := *booking
	m.bookings = append(m.bookings, &stored)
	return nil
}

func (m *MockBookingRepository) ListByClient(ctx context.Context, clientID int64) ([]*models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	result := []*models.Booking{}
	for i := len(m.bookings) - 1; i >= 0; i-- {
		if m.bookings[i].ClientID == clientID {
			result = append(result, m.bookings[i])
		}
	}
	return result, nil
}

func (m *MockBookingRepository) Bookings() []*models.Booking {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*models.Booking(nil), m.bookings...)
}

type sentMail struct {
	Subject    string
	Recipients []string
	HTML       string
	ReplyTo    string
}

// MockNotifier records queued emails.
type MockNotifier struct {
	mu   sync.Mutex
	sent []sentMail
}

func (m *MockNotifier) Send(subject string, recipients []string, htmlBody, replyTo string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentMail{subject, recipients, htmlBody, replyTo})
}

func (m *MockNotifier) Sent() []sentMail {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]sentMail(nil), m.sent...)
}
