package database

import (
	"fmt"
	"log/slog"
)

func (db *DB) RunMigrations() error {
	slog.Info("Running database migrations...")

	migrations := []string{
		createTripsTable,
		createSeatsTable,
		createCancellationReasonsTable,
		createReservationsTable,
		createPaymentsTable,
		createAuditLogTable,
		createAutoCancellationLogTable,
		createNotificationQueueTable,
		createSettingsTable,
		seedCancellationReasons,
		seedSettings,
	}

	for i, migration := range migrations {
		slog.Info("Running migration", "step", i+1)
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}

	slog.Info("All migrations completed successfully")
	return nil
}

const createTripsTable = `
CREATE TABLE IF NOT EXISTS trips (
    id SERIAL PRIMARY KEY,
    origin VARCHAR(100) NOT NULL,
    destination VARCHAR(100) NOT NULL,
    departure_at TIMESTAMP NOT NULL,
    price_cents BIGINT NOT NULL,
    status VARCHAR(20) NOT NULL DEFAULT 'ACTIVE',
    created_at TIMESTAMP NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMP NOT NULL DEFAULT NOW(),

    CHECK (status IN ('ACTIVE', 'CANCELLED'))
);`

const createSeatsTable = `
CREATE TABLE IF NOT EXISTS seats (
    id SERIAL PRIMARY KEY,
    trip_id INTEGER NOT NULL REFERENCES trips(id) ON DELETE CASCADE,
    wagon INTEGER NOT NULL DEFAULT 1,
    seat_number INTEGER NOT NULL,
    label VARCHAR(20) NOT NULL DEFAULT '',
    occupied BOOLEAN NOT NULL DEFAULT FALSE,
    created_at TIMESTAMP NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMP NOT NULL DEFAULT NOW(),

    UNIQUE(trip_id, wagon, seat_number)
);`

const createCancellationReasonsTable = `
CREATE TABLE IF NOT EXISTS cancellation_reasons (
    id SERIAL PRIMARY KEY,
    label VARCHAR(255) NOT NULL
);`

const createReservationsTable = `
CREATE TABLE IF NOT EXISTS reservations (
    id SERIAL PRIMARY KEY,
    user_id INTEGER NOT NULL,
    trip_id INTEGER NOT NULL REFERENCES trips(id),
    seat_id INTEGER NOT NULL REFERENCES seats(id),
    price_cents BIGINT NOT NULL,
    status VARCHAR(20) NOT NULL DEFAULT 'RESERVED',
    payment_status VARCHAR(20) NOT NULL DEFAULT 'PENDING',
    reason_id INTEGER REFERENCES cancellation_reasons(id),
    reason_note TEXT,
    created_at TIMESTAMP NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMP NOT NULL DEFAULT NOW(),

    CHECK (status IN ('RESERVED', 'CANCELLED', 'COMPLETED')),
    CHECK (payment_status IN ('PENDING', 'PAID', 'REFUNDED'))
);
CREATE UNIQUE INDEX IF NOT EXISTS reservations_active_seat_idx
ON reservations (trip_id, seat_id) WHERE status <> 'CANCELLED';
CREATE INDEX IF NOT EXISTS reservations_pending_created_idx
ON reservations (created_at) WHERE status = 'RESERVED' AND payment_status = 'PENDING';`

const createPaymentsTable = `
CREATE TABLE IF NOT EXISTS payments (
    id SERIAL PRIMARY KEY,
    reservation_id INTEGER NOT NULL REFERENCES reservations(id),
    method VARCHAR(50) NOT NULL,
    amount_cents BIGINT NOT NULL,
    outcome VARCHAR(20) NOT NULL,
    reference VARCHAR(64) NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT NOW(),

    CHECK (outcome IN ('SUCCESS', 'FAILURE'))
);`

const createAuditLogTable = `
CREATE TABLE IF NOT EXISTS audit_log (
    id SERIAL PRIMARY KEY,
    entity_id INTEGER NOT NULL,
    action VARCHAR(50) NOT NULL,
    detail TEXT NOT NULL,
    actor VARCHAR(100) NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS audit_log_entity_idx ON audit_log (entity_id, created_at);`

const createAutoCancellationLogTable = `
CREATE TABLE IF NOT EXISTS auto_cancellation_log (
    id SERIAL PRIMARY KEY,
    reservation_id INTEGER NOT NULL REFERENCES reservations(id),
    trip_id INTEGER NOT NULL,
    seat_id INTEGER NOT NULL,
    detail TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT NOW()
);`

const createNotificationQueueTable = `
CREATE TABLE IF NOT EXISTS notification_queue (
    id SERIAL PRIMARY KEY,
    user_id INTEGER NOT NULL,
    reservation_id INTEGER REFERENCES reservations(id),
    message TEXT NOT NULL,
    delivered_at TIMESTAMP,
    created_at TIMESTAMP NOT NULL DEFAULT NOW()
);`

const createSettingsTable = `
CREATE TABLE IF NOT EXISTS settings (
    id INTEGER PRIMARY KEY DEFAULT 1,
    timeout_minutes INTEGER NOT NULL DEFAULT 30,
    updated_at TIMESTAMP NOT NULL DEFAULT NOW(),

    CHECK (id = 1),
    CHECK (timeout_minutes BETWEEN 1 AND 1440)
);`

const seedCancellationReasons = `
INSERT INTO cancellation_reasons (id, label)
VALUES (1, 'Changed travel plans'),
       (2, 'Booked by mistake'),
       (3, 'Found a better option'),
       (4, 'Trip cancelled by operator'),
       (5, 'Payment timeout')
ON CONFLICT (id) DO NOTHING;
SELECT setval('cancellation_reasons_id_seq', (SELECT MAX(id) FROM cancellation_reasons));`

const seedSettings = `
INSERT INTO settings (id, timeout_minutes) VALUES (1, 30)
ON CONFLICT (id) DO NOTHING;`
