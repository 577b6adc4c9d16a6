package repository

import (
	"context"
	"database/sql"
	"time"

	"cinecatch/internal/database"
	"cinecatch/internal/models"

	"github.com/lib/pq"
)

type EventLocationRepository struct {
	db *database.DB
}

func NewEventLocationRepository(db *database.DB) *EventLocationRepository {
	return &EventLocationRepository{db: db}
}

const locationRowColumns = `
	e.id, e.movie_title, COALESCE(m.image_url, ''), e.type, e.title, e.start_at, e.end_at, e.view_count,
	t.id, t.brand, t.name, t.address, t.latitude, t.longitude,
	el.status, el.updated_at`

const locationRowJoins = `
	FROM event_location el
	JOIN events e ON e.id = el.event_id
	JOIN movies m ON m.title = e.movie_title
	JOIN theaters t ON t.id = el.theater_id`

// FindByEventIDs returns all inventory rows of the given events. Rows are
// ordered by the parent event (newest start first) so grouping preserves
// the listing order, then by theater id within an event.
func (r *EventLocationRepository) FindByEventIDs(ctx context.Context, eventIDs []string) ([]models.EventLocationRow, error) {
	if len(eventIDs) == 0 {
		return nil, nil
	}

	query := `SELECT` + locationRowColumns + locationRowJoins + `
		WHERE el.event_id = ANY($1)
		ORDER BY e.start_at DESC, e.id, t.id`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(eventIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanLocationRows(rows)
}

// FindActiveByTheaterIDs returns the flat joined rows of all active events
// present at any of the given theaters.
func (r *EventLocationRepository) FindActiveByTheaterIDs(ctx context.Context, theaterIDs []string, now time.Time) ([]models.EventLocationRow, error) {
	if len(theaterIDs) == 0 {
		return nil, nil
	}

	query := `SELECT` + locationRowColumns + locationRowJoins + `
		WHERE el.theater_id = ANY($1)
		  AND e.end_at >= $2
		ORDER BY e.start_at DESC, e.id, t.id`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(theaterIDs), now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanLocationRows(rows)
}

// FindByEventAndTheaterIDs returns one event's rows restricted to the given theaters.
func (r *EventLocationRepository) FindByEventAndTheaterIDs(ctx context.Context, eventID string, theaterIDs []string) ([]models.EventLocationRow, error) {
	if len(theaterIDs) == 0 {
		return nil, nil
	}

	query := `SELECT` + locationRowColumns + locationRowJoins + `
		WHERE el.event_id = $1
		  AND el.theater_id = ANY($2)
		ORDER BY t.id`

	rows, err := r.db.QueryContext(ctx, query, eventID, pq.Array(theaterIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanLocationRows(rows)
}

// FindActiveByTheaterID returns the active events running at a single theater.
func (r *EventLocationRepository) FindActiveByTheaterID(ctx context.Context, theaterID string, now time.Time) ([]models.EventLocationRow, error) {
	query := `SELECT` + locationRowColumns + locationRowJoins + `
		WHERE el.theater_id = $1
		  AND e.end_at >= $2
		ORDER BY e.start_at DESC, e.id`

	rows, err := r.db.QueryContext(ctx, query, theaterID, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanLocationRows(rows)
}

func scanLocationRows(rows *sql.Rows) ([]models.EventLocationRow, error) {
	var result []models.EventLocationRow
	for rows.Next() {
		var row models.EventLocationRow
		var eventType, status string
		err := rows.Scan(
			&row.Event.ID,
			&row.Event.MovieTitle,
			&row.Event.MovieImage,
			&eventType,
			&row.Event.Title,
			&row.Event.StartAt,
			&row.Event.EndAt,
			&row.Event.ViewCount,
			&row.Theater.ID,
			&row.Theater.Brand,
			&row.Theater.Name,
			&row.Theater.Address,
			&row.Theater.Latitude,
			&row.Theater.Longitude,
			&status,
			&row.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		row.Event.Type = models.EventType(eventType)
		row.Status = models.NormalizeStatus(status)
		result = append(result, row)
	}
	return result, rows.Err()
}
