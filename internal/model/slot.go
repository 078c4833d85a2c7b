package model

import "time"

// Slot is a scheduled instance of an Experience with fixed time
// bounds and a fixed capacity.  BookedCount is the only mutable
// field in the catalog and is written exclusively by the atomic
// reserve operation.  The invariant 0 <= BookedCount <= Capacity
// must hold after every committed write.
//
// Fields:
//  ID           – primary key identifier.
//  ExperienceID – owning experience.
//  StartTime    – when the slot begins (UTC).
//  EndTime      – when the slot ends (must be after StartTime).
//  Capacity     – maximum number of bookings, always positive.
//  BookedCount  – units of capacity already consumed.
//  CreatedAt    – creation timestamp.
//  UpdatedAt    – last update timestamp.
type Slot struct {
	ID           string    `json:"id"`           // slots.id
	ExperienceID string    `json:"experienceId"` // slots.experience_id
	StartTime    time.Time `json:"startTime"`    // slots.start_time
	EndTime      time.Time `json:"endTime"`      // slots.end_time
	Capacity     uint32    `json:"capacity"`     // slots.capacity
	BookedCount  uint32    `json:"bookedCount"`  // slots.booked_count
	CreatedAt    time.Time `json:"-"`            // slots.created_at
	UpdatedAt    time.Time `json:"-"`            // slots.updated_at
}

// Remaining returns the number of units still bookable on the slot.
func (s *Slot) Remaining() uint32 {
	if s.BookedCount >= s.Capacity {
		return 0
	}
	return s.Capacity - s.BookedCount
}
