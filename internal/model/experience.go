package model

import "time"

// Experience represents a bookable offering such as a tour or a
// class.  Experiences are seeded once and treated as immutable by
// the running service; only their slots carry mutable state.
//
// Fields:
//  ID          – primary key identifier (e.g. "exp_city_tour").
//  Title       – short display name of the offering.
//  Description – longer marketing copy shown on the detail page.
//  Price       – base price per person, always positive.
//  ImageURL    – reference to a cover image.
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type Experience struct {
	ID          string    `json:"id"`          // experiences.id
	Title       string    `json:"title"`       // experiences.title
	Description string    `json:"description"` // experiences.description
	Price       float64   `json:"price"`       // experiences.price
	ImageURL    string    `json:"imageUrl"`    // experiences.image_url
	CreatedAt   time.Time `json:"-"`           // experiences.created_at
	UpdatedAt   time.Time `json:"-"`           // experiences.updated_at
}
