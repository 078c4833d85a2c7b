// Command seed creates the BookIt schema and loads the demo catalog:
// two experiences with a handful of slots, including a nearly-full and
// a sold-out one so the availability filter and the conflict path can
// be exercised end to end.  Running it repeatedly is safe.
package main

import (
	"context"
	"database/sql"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/bookit/bookit/internal/config"
	"github.com/bookit/bookit/internal/database"
)

type seedSlot struct {
	id           string
	experienceID string
	startDay     int // days from now
	startHour    int
	endHour      int
	capacity     uint32
	bookedCount  uint32
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := database.EnsureSchema(ctx, db); err != nil {
		log.Fatalf("schema: %v", err)
	}

	log.Println("start seeding...")
	if err := seed(ctx, db); err != nil {
		log.Fatalf("seed: %v", err)
	}
	log.Println("seeding finished")
}

func seed(ctx context.Context, db *sql.DB) error {
	const upsertExp = `INSERT INTO experiences (id, title, description, price, image_url)
                       VALUES (?, ?, ?, ?, ?)
                       ON DUPLICATE KEY UPDATE id = id`
	experiences := []struct {
		id, title, description, imageURL string
		price                            float64
	}{
		{
			id:          "exp_city_tour",
			title:       "Historic City Walking Tour",
			description: "Explore the hidden alleys and major landmarks with a local historian. Comfortable shoes mandatory!",
			price:       59.99,
			imageURL:    "https://images.unsplash.com/photo-1549411930-b9df727a2068?q=80&w=2940&auto=format&fit=crop",
		},
		{
			id:          "exp_cooking_class",
			title:       "Italian Pasta Making Class",
			description: "Learn to make three authentic pasta shapes from scratch, followed by a delicious dinner.",
			price:       99.00,
			imageURL:    "https://images.unsplash.com/photo-1546536034-7546d03d01f8?q=80&w=2787&auto=format&fit=crop",
		},
	}
	for _, e := range experiences {
		if _, err := db.ExecContext(ctx, upsertExp, e.id, e.title, e.description, e.price, e.imageURL); err != nil {
			return err
		}
	}

	const upsertSlot = `INSERT INTO slots (id, experience_id, start_time, end_time, capacity, booked_count)
                        VALUES (?, ?, ?, ?, ?, ?)
                        ON DUPLICATE KEY UPDATE id = id`
	slots := []seedSlot{
		// available slot (tomorrow morning, plenty of room)
		{id: "slot_tour_1", experienceID: "exp_city_tour", startDay: 1, startHour: 10, endHour: 12, capacity: 10, bookedCount: 0},
		// almost full slot (one seat left after four bookings)
		{id: "slot_tour_2", experienceID: "exp_city_tour", startDay: 2, startHour: 14, endHour: 16, capacity: 5, bookedCount: 4},
		// sold out slot
		{id: "slot_tour_3", experienceID: "exp_city_tour", startDay: 5, startHour: 11, endHour: 13, capacity: 8, bookedCount: 8},
		{id: "slot_pasta_1", experienceID: "exp_cooking_class", startDay: 3, startHour: 18, endHour: 21, capacity: 12, bookedCount: 1},
		{id: "slot_pasta_2", experienceID: "exp_cooking_class", startDay: 4, startHour: 18, endHour: 21, capacity: 12, bookedCount: 0},
	}
	for _, s := range slots {
		start := futureDate(s.startDay, s.startHour)
		end := futureDate(s.startDay, s.endHour)
		if _, err := db.ExecContext(ctx, upsertSlot, s.id, s.experienceID, start, end, s.capacity, s.bookedCount); err != nil {
			return err
		}
	}
	return nil
}

// futureDate returns a UTC timestamp the given number of days ahead at
// the given whole hour.
func futureDate(days, hour int) time.Time {
	d := time.Now().UTC().AddDate(0, 0, days)
	return time.Date(d.Year(), d.Month(), d.Day(), hour, 0, 0, 0, time.UTC)
}
