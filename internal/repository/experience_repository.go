package repository // repository for catalog persistence

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/bookit/bookit/internal/model"
)

// ExperienceRepo provides read access to the experience catalog and
// its slots.  The catalog is seeded out of band and treated as
// read-only by the running service; slot booked counts are mutated
// only through BookingRepo.Reserve.
type ExperienceRepo struct {
	db *sql.DB
}

// NewExperienceRepo returns a new ExperienceRepo bound to the given database.
func NewExperienceRepo(db *sql.DB) *ExperienceRepo { return &ExperienceRepo{db: db} }

// ListExperiences returns all experiences ordered by title.  When the
// catalog is empty, an empty slice is returned.
func (r *ExperienceRepo) ListExperiences(ctx context.Context) ([]model.Experience, error) {
	const q = `SELECT id, title, description, price, image_url
               FROM experiences
               ORDER BY title`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Experience, 0)
	for rows.Next() {
		var e model.Experience
		if err := rows.Scan(&e.ID, &e.Title, &e.Description, &e.Price, &e.ImageURL); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetExperience returns a single experience by ID.  It returns
// ErrExperienceNotFound when no row matches.
func (r *ExperienceRepo) GetExperience(ctx context.Context, id string) (*model.Experience, error) {
	const q = `SELECT id, title, description, price, image_url, created_at, updated_at
               FROM experiences
               WHERE id = ?`
	var e model.Experience
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&e.ID, &e.Title, &e.Description, &e.Price, &e.ImageURL, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrExperienceNotFound
		}
		return nil, err
	}
	return &e, nil
}

// ListAvailableSlots returns the slots of an experience that still have
// spare capacity and start after the given reference time, ordered by
// start time ascending.  The availability filter compares the
// booked_count column against the capacity column of the same row,
// which MySQL supports directly in a WHERE clause.
func (r *ExperienceRepo) ListAvailableSlots(ctx context.Context, experienceID string, now time.Time) ([]model.Slot, error) {
	const q = `SELECT id, experience_id, start_time, end_time, capacity, booked_count
               FROM slots
               WHERE experience_id = ? AND booked_count < capacity AND start_time > ?
               ORDER BY start_time ASC`
	rows, err := r.db.QueryContext(ctx, q, experienceID, now.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Slot, 0)
	for rows.Next() {
		var s model.Slot
		if err := rows.Scan(&s.ID, &s.ExperienceID, &s.StartTime, &s.EndTime, &s.Capacity, &s.BookedCount); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
