package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/agendabeleza/backend/internal/constants"
)

// BookingTimeLayout is the only accepted appointment time format (an HTML
// datetime-local value, without seconds or zone).
const BookingTimeLayout = "2006-01-02T15:04"

// BookingStatus is the lifecycle state of an appointment.
type BookingStatus string

const (
	BookingPending   BookingStatus = "Pendente"
	BookingConfirmed BookingStatus = "Confirmada"
	BookingCancelled BookingStatus = "Cancelada"
)

// Valid reports whether s is one of the known states.
func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCancelled:
		return true
	}
	return false
}

// ParseBookingStatus converts a persisted value into a BookingStatus.
func ParseBookingStatus(raw string) (BookingStatus, error) {
	s := BookingStatus(raw)
	if !s.Valid() {
		return "", fmt.Errorf("unknown booking status %q", raw)
	}
	return s, nil
}

// Booking is an appointment request made by a client for one service.
type Booking struct {
	ID          int64         `json:"id"`
	ClientID    int64         `json:"cliente_id"`
	ServiceID   int64         `json:"servico_id"`
	ServiceName string        `json:"servico,omitempty"`
	ScheduledAt time.Time     `json:"datahora"`
	Status      BookingStatus `json:"estado"`
	Notes       string        `json:"observacoes,omitempty"`
}

// NewBooking creates a pending booking.
func NewBooking(clientID, serviceID int64, scheduledAt time.Time, notes string) *Booking {
	return &Booking{
		ClientID:    clientID,
		ServiceID:   serviceID,
		ScheduledAt: scheduledAt,
		Status:      BookingPending,
		Notes:       notes,
	}
}

// TableName returns the database table name for the Booking model.
func (b *Booking) TableName() string {
	return constants.TableBookings
}

// BookingRequest is the booking form. Field presence and format are checked
// by the booking service so that the rules hold for every caller.
type BookingRequest struct {
	ServiceID int64  `json:"servico_id"`
	When      string `json:"datahora"`
	Notes     string `json:"observacoes" validate:"max=1000"`
}

// ParseBookingTime parses raw against BookingTimeLayout. The value is
// interpreted as local wall-clock time.
func ParseBookingTime(raw string) (time.Time, error) {
	return time.ParseInLocation(BookingTimeLayout, strings.TrimSpace(raw), time.Local)
}
