package model

import "time"

// Booking records a customer's reservation of exactly one unit of
// capacity on a Slot.  A Booking row is created in the same atomic
// unit that increments the slot's BookedCount, so the number of
// bookings referencing a slot always equals that slot's count.
// Bookings are never mutated or deleted.
//
// Fields:
//  ID            – uuid generated at creation.
//  SlotID        – slot whose capacity was consumed.
//  CustomerName  – name supplied at checkout.
//  CustomerEmail – email supplied at checkout.
//  FinalPrice    – amount charged after any promo discount, positive.
//  PromoCodeUsed – promo code applied at checkout, if any.
//  CreatedAt     – creation timestamp.
type Booking struct {
	ID            string    `json:"id"`                      // bookings.id
	SlotID        string    `json:"slotId"`                  // bookings.slot_id
	CustomerName  string    `json:"customerName"`            // bookings.customer_name
	CustomerEmail string    `json:"customerEmail"`           // bookings.customer_email
	FinalPrice    float64   `json:"finalPrice"`              // bookings.final_price
	PromoCodeUsed *string   `json:"promoCodeUsed,omitempty"` // bookings.promo_code_used (nullable)
	CreatedAt     time.Time `json:"createdAt"`               // bookings.created_at
}
