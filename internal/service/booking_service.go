package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog/log"

	"github.com/agendabeleza/backend/internal/constants"
	"github.com/agendabeleza/backend/internal/models"
	"github.com/agendabeleza/backend/internal/notify"
	"github.com/agendabeleza/backend/internal/repository"
	"github.com/agendabeleza/backend/internal/session"
	"github.com/agendabeleza/backend/internal/utils"
)

// emailTimeLayout formats appointment times in notification emails.
const emailTimeLayout = "02/01/2006 15:04"

// BookingService records appointment requests and notifies both the
// client and the salon.
type BookingService struct {
	bookingRepo  repository.BookingRepository
	serviceRepo  repository.ServiceRepository
	notifier     Notifier
	adminAddress string
}

// NewBookingService creates a new BookingService. adminAddress receives
// the alert for every new booking.
func NewBookingService(
	bookingRepo repository.BookingRepository,
	serviceRepo repository.ServiceRepository,
	notifier Notifier,
	adminAddress string,
) *BookingService {
	return &BookingService{
		bookingRepo:  bookingRepo,
		serviceRepo:  serviceRepo,
		notifier:     notifier,
		adminAddress: adminAddress,
	}
}

// Book records a pending booking for the logged-in client and returns its ID.
//
// Anonymous sessions are rejected before any database access. The two
// notification emails are queued after the insert and never affect the
// result.
func (s *BookingService) Book(ctx context.Context, sess *session.Session, serviceID int64, whenRaw, notes string) (int64, error) {
	user, ok := sess.User()
	if !ok {
		return 0, utils.NewUnauthenticatedError()
	}

	if serviceID <= 0 {
		return 0, utils.NewValidationError("servico_id", "Select a service")
	}
	if strings.TrimSpace(whenRaw) == "" {
		return 0, utils.NewValidationError("datahora", "Select a date and time")
	}

	scheduledAt, err := models.ParseBookingTime(whenRaw)
	if err != nil {
		return 0, utils.NewValidationError("datahora", constants.MsgInvalidBookingTime)
	}

	notes = strings.TrimSpace(notes)
	if utf8.RuneCountInString(notes) > constants.MaxNotesLength {
		return 0, utils.NewValidationError("observacoes", "Notes are too long")
	}

	svc, err := s.serviceRepo.GetByID(ctx, serviceID)
	if err != nil {
		if utils.IsNotFoundError(err) {
			return 0, utils.NewValidationError("servico_id", constants.MsgUnknownService)
		}
		return 0, err
	}

	booking := models.NewBooking(user.UserID, svc.ID, scheduledAt, notes)
	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		log.Error().
			Err(err).
			Int64("user_id", user.UserID).
			Int64("service_id", svc.ID).
			Msg("Failed to create booking")
		return 0, utils.NewBookingError(err)
	}

	log.Info().
		Int64("booking_id", booking.ID).
		Int64("user_id", user.UserID).
		Int64("service_id", svc.ID).
		Time("scheduled_at", scheduledAt).
		Msg("Booking created")

	s.notify(user, svc, booking)

	return booking.ID, nil
}

// notify queues the client confirmation and the salon alert.
func (s *BookingService) notify(user *session.UserContext, svc *models.Service, booking *models.Booking) {
	when := booking.ScheduledAt.Format(emailTimeLayout)

	confirmation, err := notify.RenderBookingConfirmation(notify.BookingConfirmationData{
		Name:    user.Name,
		Service: svc.Name,
		When:    when,
	})
	if err != nil {
		log.Error().Err(err).Int64("booking_id", booking.ID).Msg("Failed to render booking confirmation")
	} else {
		s.notifier.Send(notify.SubjectBookingClient, []string{user.Email}, confirmation, "")
	}

	if s.adminAddress == "" {
		log.Warn().Int64("booking_id", booking.ID).Msg("No admin address configured, skipping booking alert")
		return
	}

	alert, err := notify.RenderBookingAlert(notify.BookingAlertData{
		ClientName:  user.Name,
		ClientEmail: user.Email,
		Service:     svc.Name,
		When:        when,
		Notes:       booking.Notes,
	})
	if err != nil {
		log.Error().Err(err).Int64("booking_id", booking.ID).Msg("Failed to render booking alert")
		return
	}
	s.notifier.Send(notify.SubjectBookingAdmin, []string{s.adminAddress}, alert, user.Email)
}

// ListForClient returns the bookings of the logged-in client, newest first.
func (s *BookingService) ListForClient(ctx context.Context, sess *session.Session) ([]*models.Booking, error) {
	user, ok := sess.User()
	if !ok {
		return nil, utils.NewUnauthenticatedError()
	}
	return s.bookingRepo.ListByClient(ctx, user.UserID)
}
