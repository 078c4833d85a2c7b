package database

import (
	"context"
	"database/sql"
)

// schema lists the DDL statements for the catalog and booking tables.
// Statements are idempotent so the seeder can run repeatedly.  The
// booked_count <= capacity invariant is not declared as a database
// constraint; it is enforced by the conditional UPDATE in the reserve
// transaction, the only code path that writes booked_count.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS experiences (
        id          VARCHAR(64) PRIMARY KEY,
        title       VARCHAR(255) NOT NULL,
        description TEXT NOT NULL,
        price       DECIMAL(10,2) NOT NULL,
        image_url   TEXT NOT NULL,
        created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
        updated_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
    ) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS slots (
        id            VARCHAR(64) PRIMARY KEY,
        experience_id VARCHAR(64) NOT NULL,
        start_time    DATETIME NOT NULL,
        end_time      DATETIME NOT NULL,
        capacity      INT UNSIGNED NOT NULL,
        booked_count  INT UNSIGNED NOT NULL DEFAULT 0,
        created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
        updated_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
        CONSTRAINT fk_slots_experience FOREIGN KEY (experience_id) REFERENCES experiences (id),
        INDEX idx_slots_experience_start (experience_id, start_time)
    ) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS bookings (
        id              CHAR(36) PRIMARY KEY,
        slot_id         VARCHAR(64) NOT NULL,
        customer_name   VARCHAR(255) NOT NULL,
        customer_email  VARCHAR(255) NOT NULL,
        final_price     DECIMAL(10,2) NOT NULL,
        promo_code_used VARCHAR(64) NULL,
        created_at      DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
        CONSTRAINT fk_bookings_slot FOREIGN KEY (slot_id) REFERENCES slots (id),
        INDEX idx_bookings_slot (slot_id)
    ) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// EnsureSchema creates the application tables when they do not exist.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
