package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookit/bookit/internal/model"
)

func newBooking(slotID string) *model.Booking {
	return &model.Booking{
		ID:            uuid.NewString(),
		SlotID:        slotID,
		CustomerName:  "Ada Lovelace",
		CustomerEmail: "ada@example.com",
		FinalPrice:    59.99,
		CreatedAt:     time.Now().UTC(),
	}
}

func seededStore(t *testing.T, capacity, booked uint32) *MemoryStore {
	t.Helper()
	s := NewMemoryStore()
	s.AddExperience(model.Experience{ID: "exp_city_tour", Title: "Historic City Walking Tour", Price: 59.99})
	s.AddSlot(model.Slot{
		ID:           "slot_a",
		ExperienceID: "exp_city_tour",
		StartTime:    time.Now().UTC().Add(24 * time.Hour),
		EndTime:      time.Now().UTC().Add(26 * time.Hour),
		Capacity:     capacity,
		BookedCount:  booked,
	})
	return s
}

func TestMemoryStoreReserve(t *testing.T) {
	s := seededStore(t, 2, 0)
	ctx := context.Background()

	require.NoError(t, s.Reserve(ctx, newBooking("slot_a")))

	sl, err := s.GetSlot(ctx, "slot_a")
	require.NoError(t, err)
	assert.Equal(t, uint32(1), sl.BookedCount)
	assert.Equal(t, 1, s.CountBookingsBySlot(ctx, "slot_a"))
}

func TestMemoryStoreReserveUnknownSlot(t *testing.T) {
	s := seededStore(t, 2, 0)
	ctx := context.Background()

	err := s.Reserve(ctx, newBooking("slot_missing"))
	assert.ErrorIs(t, err, ErrSlotNotFound)
	assert.Equal(t, 0, s.CountBookingsBySlot(ctx, "slot_missing"))
}

func TestMemoryStoreReserveFullSlotIsIdempotent(t *testing.T) {
	s := seededStore(t, 3, 3)
	ctx := context.Background()

	// a full slot rejects every attempt and never mutates state
	for i := 0; i < 5; i++ {
		err := s.Reserve(ctx, newBooking("slot_a"))
		assert.ErrorIs(t, err, ErrSlotFull)
	}
	sl, err := s.GetSlot(ctx, "slot_a")
	require.NoError(t, err)
	assert.Equal(t, uint32(3), sl.BookedCount)
	assert.Equal(t, 0, s.CountBookingsBySlot(ctx, "slot_a"))
}

func TestMemoryStoreReserveRace(t *testing.T) {
	// capacity C with C-1 already consumed: N concurrent attempts must
	// produce exactly one success and N-1 SlotFull outcomes.
	const n = 50
	s := seededStore(t, 5, 4)
	ctx := context.Background()

	var wg sync.WaitGroup
	results := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- s.Reserve(ctx, newBooking("slot_a"))
		}()
	}
	wg.Wait()
	close(results)

	var succeeded, full int
	for err := range results {
		switch {
		case err == nil:
			succeeded++
		case err == ErrSlotFull:
			full++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, n-1, full)

	sl, err := s.GetSlot(ctx, "slot_a")
	require.NoError(t, err)
	assert.Equal(t, uint32(5), sl.BookedCount)
}

func TestMemoryStoreConservation(t *testing.T) {
	// starting from an empty slot, bookings referencing the slot always
	// equal its booked count, even under contention
	const n = 20
	s := seededStore(t, 3, 0)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Reserve(ctx, newBooking("slot_a"))
		}()
	}
	wg.Wait()

	sl, err := s.GetSlot(ctx, "slot_a")
	require.NoError(t, err)
	assert.Equal(t, uint32(3), sl.BookedCount)
	assert.Equal(t, 3, s.CountBookingsBySlot(ctx, "slot_a"))
}

func TestMemoryStoreCatalogReads(t *testing.T) {
	s := seededStore(t, 2, 0)
	ctx := context.Background()
	now := time.Now().UTC()

	// sold-out and past slots must be filtered out of availability
	s.AddSlot(model.Slot{
		ID: "slot_full", ExperienceID: "exp_city_tour",
		StartTime: now.Add(48 * time.Hour), EndTime: now.Add(50 * time.Hour),
		Capacity: 4, BookedCount: 4,
	})
	s.AddSlot(model.Slot{
		ID: "slot_past", ExperienceID: "exp_city_tour",
		StartTime: now.Add(-2 * time.Hour), EndTime: now.Add(-1 * time.Hour),
		Capacity: 4, BookedCount: 0,
	})
	s.AddSlot(model.Slot{
		ID: "slot_later", ExperienceID: "exp_city_tour",
		StartTime: now.Add(72 * time.Hour), EndTime: now.Add(74 * time.Hour),
		Capacity: 4, BookedCount: 1,
	})

	slots, err := s.ListAvailableSlots(ctx, "exp_city_tour", now)
	require.NoError(t, err)
	require.Len(t, slots, 2)
	// ordered by start time ascending
	assert.Equal(t, "slot_a", slots[0].ID)
	assert.Equal(t, "slot_later", slots[1].ID)

	_, err = s.GetExperience(ctx, "exp_missing")
	assert.ErrorIs(t, err, ErrExperienceNotFound)

	exps, err := s.ListExperiences(ctx)
	require.NoError(t, err)
	assert.Len(t, exps, 1)
}

func TestMemoryStoreGetBookingByID(t *testing.T) {
	s := seededStore(t, 2, 0)
	ctx := context.Background()

	b := newBooking("slot_a")
	require.NoError(t, s.Reserve(ctx, b))

	got, err := s.GetBookingByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, b.ID, got.ID)
	assert.Equal(t, "slot_a", got.SlotID)

	_, err = s.GetBookingByID(ctx, "nope")
	assert.ErrorIs(t, err, ErrBookingNotFound)
}
