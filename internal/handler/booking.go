package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/bookit/bookit/internal/model"
	"github.com/bookit/bookit/internal/queue"
	"github.com/bookit/bookit/internal/repository"
	"github.com/bookit/bookit/internal/service"
)

// BookingReader is the read side of the booking store, used by the
// confirmation page to fetch a booking after checkout.
type BookingReader interface {
	GetBookingByID(ctx context.Context, id string) (*model.Booking, error)
}

// EventPublisher publishes a confirmation event after a booking has
// committed.  A nil publisher disables eventing (tests, local runs
// without a broker).
type EventPublisher func(ctx context.Context, ev queue.BookingConfirmedEvent) error

// BookingHandler wires the checkout endpoint to the reservation core.
// The handler owns nothing but mapping: request binding on the way in,
// typed-outcome to status-code translation on the way out.  All
// capacity decisions happen inside the service and its store.
type BookingHandler struct {
	Reservations *service.ReservationService
	Bookings     BookingReader
	Publish      EventPublisher
}

// NewBookingHandler constructs a BookingHandler.  The reservation
// service and booking reader must be non-nil; publish may be nil.
func NewBookingHandler(reservations *service.ReservationService, bookings BookingReader, publish EventPublisher) *BookingHandler {
	if reservations == nil || bookings == nil {
		panic("nil dependency passed to NewBookingHandler")
	}
	return &BookingHandler{Reservations: reservations, Bookings: bookings, Publish: publish}
}

// bookingRequest mirrors the JSON body the checkout page submits.
type bookingRequest struct {
	SlotID        string  `json:"slotId"`
	CustomerName  string  `json:"customerName"`
	CustomerEmail string  `json:"customerEmail"`
	FinalPrice    float64 `json:"finalPrice"`
	PromoCodeUsed string  `json:"promoCodeUsed"`
}

// CreateBooking handles POST /api/bookings.  It performs exactly one
// reservation attempt and maps the typed outcomes onto status codes:
// 201 on success, 400 for validation failures, 404 for an unknown
// slot, 409 when the slot is sold out, 500 for persistence faults.
// Losing the capacity race is a normal business outcome and is never
// retried here.
func (h *BookingHandler) CreateBooking(c echo.Context) error {
	var body bookingRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "invalid request body"})
	}

	ctx := c.Request().Context()
	booking, err := h.Reservations.Reserve(ctx, service.ReserveRequest{
		SlotID:        body.SlotID,
		CustomerName:  body.CustomerName,
		CustomerEmail: body.CustomerEmail,
		FinalPrice:    body.FinalPrice,
		PromoCodeUsed: body.PromoCodeUsed,
	})
	if err != nil {
		var ve *service.ValidationError
		switch {
		case errors.As(err, &ve):
			return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": ve.Error()})
		case errors.Is(err, repository.ErrSlotNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "Slot not found."})
		case errors.Is(err, repository.ErrSlotFull):
			return c.JSON(http.StatusConflict, echo.Map{"success": false, "message": "This slot is fully booked/sold out."})
		default:
			c.Logger().Errorf("booking failed: %v", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Booking failed due to a server error."})
		}
	}

	// The booking is durable; a lost event must not fail the request.
	if h.Publish != nil {
		ev := queue.BookingConfirmedEvent{
			BookingID:     booking.ID,
			SlotID:        booking.SlotID,
			CustomerName:  booking.CustomerName,
			CustomerEmail: booking.CustomerEmail,
			FinalPrice:    booking.FinalPrice,
			ConfirmedAt:   booking.CreatedAt.Format(time.RFC3339),
		}
		if booking.PromoCodeUsed != nil {
			ev.PromoCodeUsed = *booking.PromoCodeUsed
		}
		if err := h.Publish(ctx, ev); err != nil {
			c.Logger().Warnf("booking %s: confirmation event not published: %v", booking.ID, err)
		}
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"success":   true,
		"message":   "Booking confirmed successfully!",
		"bookingId": booking.ID,
		"details":   booking,
	})
}

// GetBooking handles GET /api/bookings/:id.  The result page uses it
// to re-fetch a confirmation by its uuid.
func (h *BookingHandler) GetBooking(c echo.Context) error {
	id := c.Param("id")
	booking, err := h.Bookings.GetBookingByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Booking not found."})
		}
		c.Logger().Errorf("get booking %s: %v", id, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Could not retrieve booking."})
	}
	return c.JSON(http.StatusOK, booking)
}
