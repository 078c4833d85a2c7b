// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios. For
// example, ErrSlotFull signals that a reservation lost the capacity
// race on a slot, which is a legitimate business outcome rather
// than an infrastructure fault.
package repository

import "errors"

// ErrExperienceNotFound is returned when a catalog lookup references
// an experience that does not exist. Handlers should translate this
// into an HTTP 404 response.
var ErrExperienceNotFound = errors.New("experience not found")

// ErrSlotNotFound is returned when a reservation references a slot
// that does not exist. Handlers should translate this into an HTTP
// 404 response.
var ErrSlotNotFound = errors.New("slot not found")

// ErrBookingNotFound is returned when a booking lookup references an
// ID that does not exist. Handlers should translate this into an
// HTTP 404 response.
var ErrBookingNotFound = errors.New("booking not found")

// ErrSlotFull is returned when a reservation cannot proceed because
// the slot's booked count has reached its capacity. This is the
// expected outcome of losing a capacity race and handlers should
// translate it into an HTTP 409 response.
var ErrSlotFull = errors.New("slot is fully booked")
