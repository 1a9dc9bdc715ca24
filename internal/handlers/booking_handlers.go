package handlers

import (
	"net/http"

	"github.com/agendabeleza/backend/internal/constants"
	"github.com/agendabeleza/backend/internal/models"
	"github.com/agendabeleza/backend/internal/session"
	"github.com/agendabeleza/backend/internal/utils"
)

// BookingHandler handles the gated booking routes
type BookingHandler struct {
	bookingService BookingServiceInterface
	catalogService CatalogServiceInterface
	gate           *session.Gate
}

// NewBookingHandler creates a new BookingHandler
func NewBookingHandler(bookingService BookingServiceInterface, catalogService CatalogServiceInterface, gate *session.Gate) *BookingHandler {
	return &BookingHandler{
		bookingService: bookingService,
		catalogService: catalogService,
		gate:           gate,
	}
}

// require admits logged-in callers. Anonymous callers are redirected to the
// login page and false is returned.
func (h *BookingHandler) require(w http.ResponseWriter, r *http.Request, intended string) bool {
	if _, redirect := h.gate.Require(w, r, intended); redirect != nil {
		utils.Redirect(w, redirect.Location, constants.MsgAuthRequired)
		return false
	}
	return true
}

// StartBooking is the entry point of the booking flow
func (h *BookingHandler) StartBooking(w http.ResponseWriter, r *http.Request) {
	if !h.require(w, r, constants.RouteBookings) {
		return
	}
	utils.Redirect(w, constants.RouteBookings, "")
}

// BookingForm lists the services that can be booked. Anyone may browse it;
// submitting a booking requires login.
func (h *BookingHandler) BookingForm(w http.ResponseWriter, r *http.Request) {
	services, err := h.catalogService.List(r.Context())
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"servicos":    services,
		"time_format": "YYYY-MM-DDTHH:MM",
	})
}

// CreateBooking records a booking for the logged-in client
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	if !h.require(w, r, constants.RouteBookings) {
		return
	}

	var req models.BookingRequest
	if err := utils.DecodeAndValidate(r, &req); err != nil {
		utils.HandleError(w, err)
		return
	}

	sess := session.FromContext(r.Context())
	if _, err := h.bookingService.Book(r.Context(), sess, req.ServiceID, req.When, req.Notes); err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.Redirect(w, constants.RouteMyBookings, constants.MsgBookingCreated)
}

// MyBookings lists the bookings of the logged-in client
func (h *BookingHandler) MyBookings(w http.ResponseWriter, r *http.Request) {
	if !h.require(w, r, constants.RouteMyBookings) {
		return
	}

	bookings, err := h.bookingService.ListForClient(r.Context(), session.FromContext(r.Context()))
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, bookings)
}
