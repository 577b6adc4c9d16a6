package database

import (
	"fmt"
	"log/slog"
)

func (db *DB) RunMigrations() error {
	slog.Info("Running database migrations...")

	migrations := []string{
		createEarthdistanceExtensions,
		createMoviesTable,
		createTheatersTable,
		createTheatersGeoIndex,
		createEventsTable,
		createEventsEndAtIndex,
		createEventLocationTable,
		createMembersTable,
		createTheaterSubscriptionsTable,
		createEventSubscriptionsTable,
		createNotificationHistoryTable,
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

const createEarthdistanceExtensions = `
CREATE EXTENSION IF NOT EXISTS cube;
CREATE EXTENSION IF NOT EXISTS earthdistance;`

const createMoviesTable = `
CREATE TABLE IF NOT EXISTS movies (
    title VARCHAR(255) PRIMARY KEY,
    image_url TEXT NOT NULL DEFAULT ''
);`

const createTheatersTable = `
CREATE TABLE IF NOT EXISTS theaters (
    id VARCHAR(50) PRIMARY KEY,
    brand VARCHAR(20) NOT NULL,
    name VARCHAR(100) NOT NULL,
    address VARCHAR(255) NOT NULL,
    latitude DOUBLE PRECISION NOT NULL,
    longitude DOUBLE PRECISION NOT NULL
);`

const createTheatersGeoIndex = `
CREATE INDEX IF NOT EXISTS idx_theaters_earth
    ON theaters USING gist (ll_to_earth(latitude, longitude));`

const createEventsTable = `
CREATE TABLE IF NOT EXISTS events (
    id VARCHAR(50) PRIMARY KEY,
    movie_title VARCHAR(255) NOT NULL REFERENCES movies(title),
    type VARCHAR(20) NOT NULL,
    title VARCHAR(500) NOT NULL,
    start_at TIMESTAMP NOT NULL,
    end_at TIMESTAMP NOT NULL,
    view_count INTEGER NOT NULL DEFAULT 0
);`

const createEventsEndAtIndex = `
CREATE INDEX IF NOT EXISTS idx_events_end_at ON events (end_at);`

const createEventLocationTable = `
CREATE TABLE IF NOT EXISTS event_location (
    id BIGSERIAL PRIMARY KEY,
    theater_id VARCHAR(50) NOT NULL REFERENCES theaters(id),
    event_id VARCHAR(50) NOT NULL REFERENCES events(id),
    status VARCHAR(50) NOT NULL DEFAULT 'UNKNOWN',
    updated_at TIMESTAMP NOT NULL DEFAULT NOW(),
    UNIQUE (theater_id, event_id)
);`

const createMembersTable = `
CREATE TABLE IF NOT EXISTS members (
    id BIGSERIAL PRIMARY KEY,
    email VARCHAR(255) UNIQUE NOT NULL,
    password_hash VARCHAR(64) NOT NULL,
    nickname VARCHAR(100) NOT NULL,
    fcm_token TEXT,
    notification_enabled BOOLEAN NOT NULL DEFAULT TRUE,
    created_at TIMESTAMP NOT NULL DEFAULT NOW()
);`

const createTheaterSubscriptionsTable = `
CREATE TABLE IF NOT EXISTS theater_subscriptions (
    id UUID PRIMARY KEY,
    member_id BIGINT NOT NULL REFERENCES members(id),
    theater_id VARCHAR(50) NOT NULL REFERENCES theaters(id),
    created_at TIMESTAMP NOT NULL DEFAULT NOW(),
    UNIQUE (member_id, theater_id)
);`

const createEventSubscriptionsTable = `
CREATE TABLE IF NOT EXISTS event_subscriptions (
    id UUID PRIMARY KEY,
    member_id BIGINT NOT NULL REFERENCES members(id),
    event_id VARCHAR(50) NOT NULL REFERENCES events(id),
    created_at TIMESTAMP NOT NULL DEFAULT NOW(),
    UNIQUE (member_id, event_id)
);`

const createNotificationHistoryTable = `
CREATE TABLE IF NOT EXISTS notification_history (
    id UUID PRIMARY KEY,
    member_id BIGINT NOT NULL REFERENCES members(id),
    title VARCHAR(255) NOT NULL,
    body TEXT NOT NULL,
    is_read BOOLEAN NOT NULL DEFAULT FALSE,
    created_at TIMESTAMP NOT NULL DEFAULT NOW()
);`
