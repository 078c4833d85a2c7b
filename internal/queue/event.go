// Package queue defines message payloads exchanged over the message broker
// plus the publisher and background consumer for booking confirmations.
package queue

// BookingConfirmedEvent is published when a reservation commits.  It
// carries enough information for downstream consumers to log, notify,
// or feed analytics without querying the primary database.
type BookingConfirmedEvent struct {
	BookingID       string  `json:"booking_id"`
	SlotID          string  `json:"slot_id"`
	ExperienceID    string  `json:"experience_id,omitempty"`
	ExperienceTitle string  `json:"experience_title,omitempty"`
	CustomerName    string  `json:"customer_name"`
	CustomerEmail   string  `json:"customer_email"`
	FinalPrice      float64 `json:"final_price"`
	PromoCodeUsed   string  `json:"promo_code_used,omitempty"`
	ConfirmedAt     string  `json:"confirmed_at"`
}
