package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/bookit/bookit/internal/model"
)

// MemoryStore is an in-memory catalog store with the same semantics
// as the MySQL-backed repositories.  The reserve path runs under a
// single mutex, which makes the check-and-increment a serializable
// critical section equivalent to the conditional UPDATE used by
// BookingRepo.  It backs tests and local development without a
// database.
type MemoryStore struct {
	mu          sync.Mutex
	experiences map[string]model.Experience
	slots       map[string]*model.Slot
	bookings    map[string]model.Booking
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		experiences: make(map[string]model.Experience),
		slots:       make(map[string]*model.Slot),
		bookings:    make(map[string]model.Booking),
	}
}

// AddExperience inserts or replaces an experience in the catalog.
func (s *MemoryStore) AddExperience(e model.Experience) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.experiences[e.ID] = e
}

// AddSlot inserts or replaces a slot.  The copy is stored by value so
// callers cannot mutate shared state through the original.
func (s *MemoryStore) AddSlot(sl model.Slot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := sl
	s.slots[sl.ID] = &cp
}

// ListExperiences returns all experiences in unspecified order.
func (s *MemoryStore) ListExperiences(ctx context.Context) ([]model.Experience, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Experience, 0, len(s.experiences))
	for _, e := range s.experiences {
		out = append(out, e)
	}
	return out, nil
}

// GetExperience returns an experience by ID or ErrExperienceNotFound.
func (s *MemoryStore) GetExperience(ctx context.Context, id string) (*model.Experience, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.experiences[id]
	if !ok {
		return nil, ErrExperienceNotFound
	}
	return &e, nil
}

// ListAvailableSlots returns the experience's slots that still have
// spare capacity and start after now, ordered by start time ascending.
func (s *MemoryStore) ListAvailableSlots(ctx context.Context, experienceID string, now time.Time) ([]model.Slot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Slot, 0)
	for _, sl := range s.slots {
		if sl.ExperienceID != experienceID {
			continue
		}
		if sl.BookedCount >= sl.Capacity || !sl.StartTime.After(now) {
			continue
		}
		out = append(out, *sl)
	}
	// map iteration order is random; sort by start time
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

// GetSlot returns a copy of a slot by ID or ErrSlotNotFound.
func (s *MemoryStore) GetSlot(ctx context.Context, id string) (*model.Slot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sl, ok := s.slots[id]
	if !ok {
		return nil, ErrSlotNotFound
	}
	cp := *sl
	return &cp, nil
}

// Reserve consumes one unit of capacity on the booking's slot and
// records the booking.  The check and the increment happen under the
// store mutex, so concurrent calls on the same slot serialize and at
// most Capacity of them can ever succeed.
func (s *MemoryStore) Reserve(ctx context.Context, b *model.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sl, ok := s.slots[b.SlotID]
	if !ok {
		return ErrSlotNotFound
	}
	if sl.BookedCount >= sl.Capacity {
		return ErrSlotFull
	}
	sl.BookedCount++
	s.bookings[b.ID] = *b
	return nil
}

// GetBookingByID returns a booking by ID or ErrBookingNotFound.
func (s *MemoryStore) GetBookingByID(ctx context.Context, id string) (*model.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	if !ok {
		return nil, ErrBookingNotFound
	}
	return &b, nil
}

// CountBookingsBySlot returns the number of bookings referencing the
// given slot.  Used by tests to verify the conservation property
// between bookings and the slot's booked count.
func (s *MemoryStore) CountBookingsBySlot(ctx context.Context, slotID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, b := range s.bookings {
		if b.SlotID == slotID {
			n++
		}
	}
	return n
}
