// Package service implements the reservation core: request validation
// and the atomic consumption of slot capacity, surfaced as typed
// outcomes for the HTTP facade to map onto status codes.
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bookit/bookit/internal/model"
)

// Store is the persistence contract the reservation core depends on.
// Reserve must execute the capacity check, the booked-count increment
// and the booking insert as one atomic unit: either all writes become
// visible or none do.  Implementations return
// repository.ErrSlotNotFound and repository.ErrSlotFull for the two
// business failures and any other error for infrastructure faults.
type Store interface {
	Reserve(ctx context.Context, b *model.Booking) error
}

// ValidationError reports a malformed or missing input field.  It is
// produced before any persistence access and handlers translate it
// into an HTTP 400 response.
type ValidationError struct {
	Field  string // request field that failed validation
	Reason string // human-readable description
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ReserveRequest carries the inputs of a single reservation attempt.
type ReserveRequest struct {
	SlotID        string
	CustomerName  string
	CustomerEmail string
	FinalPrice    float64
	PromoCodeUsed string // empty when no promo was applied
}

// ReservationService validates reservation requests and delegates the
// atomic reserve to the injected store.  The service is stateless and
// safe for concurrent use; the store's atomic unit is the only
// synchronization point between racing reservations.
type ReservationService struct {
	store Store
	now   func() time.Time // injectable clock for tests
}

// NewReservationService constructs a ReservationService around the
// given store.  The store must be non-nil.
func NewReservationService(store Store) *ReservationService {
	if store == nil {
		panic("nil store passed to NewReservationService")
	}
	return &ReservationService{store: store, now: time.Now}
}

// Reserve validates the request, builds the booking record and
// performs exactly one atomic reserve attempt against the store.
//
// Outcomes: a *ValidationError before any persistence access,
// repository.ErrSlotNotFound or repository.ErrSlotFull from the store
// (surfaced as-is, never retried), a wrapped persistence error for
// infrastructure faults, or the created booking.  A SlotFull outcome
// is a legitimate business result: the caller lost the capacity race.
func (s *ReservationService) Reserve(ctx context.Context, req ReserveRequest) (*model.Booking, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	b := &model.Booking{
		ID:            uuid.NewString(),
		SlotID:        req.SlotID,
		CustomerName:  strings.TrimSpace(req.CustomerName),
		CustomerEmail: strings.TrimSpace(req.CustomerEmail),
		FinalPrice:    req.FinalPrice,
		CreatedAt:     s.now().UTC(),
	}
	if code := strings.TrimSpace(req.PromoCodeUsed); code != "" {
		b.PromoCodeUsed = &code
	}

	if err := s.store.Reserve(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// validate checks every precondition of a reservation request.  Each
// failure names the offending field so the facade can report it.
func validate(req ReserveRequest) error {
	if strings.TrimSpace(req.SlotID) == "" {
		return &ValidationError{Field: "slotId", Reason: "is required"}
	}
	if strings.TrimSpace(req.CustomerName) == "" {
		return &ValidationError{Field: "customerName", Reason: "is required"}
	}
	email := strings.TrimSpace(req.CustomerEmail)
	if email == "" {
		return &ValidationError{Field: "customerEmail", Reason: "is required"}
	}
	if !validEmail(email) {
		return &ValidationError{Field: "customerEmail", Reason: "must look like name@domain.tld"}
	}
	if req.FinalPrice <= 0 {
		return &ValidationError{Field: "finalPrice", Reason: "must be a positive amount"}
	}
	return nil
}

// validEmail performs the cheap structural check the checkout flow
// needs: a non-empty local part, exactly one "@" split, and a domain
// containing a separator.  It is deliberately not an RFC validator.
func validEmail(s string) bool {
	at := strings.Index(s, "@")
	if at <= 0 || at != strings.LastIndex(s, "@") {
		return false
	}
	domain := s[at+1:]
	dot := strings.Index(domain, ".")
	// the domain separator must not lead or trail
	return dot > 0 && dot < len(domain)-1
}
