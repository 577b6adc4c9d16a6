package repository

import (
	"context"
	"database/sql"
	"time"

	"cinecatch/internal/database"
	"cinecatch/internal/models"
)

type EventRepository struct {
	db *database.DB
}

func NewEventRepository(db *database.DB) *EventRepository {
	return &EventRepository{db: db}
}

const eventColumns = `e.id, e.movie_title, COALESCE(m.image_url, ''), e.type, e.title, e.start_at, e.end_at, e.view_count`

// FindActive returns events whose end_at has not passed, newest start first.
func (r *EventRepository) FindActive(ctx context.Context, now time.Time) ([]models.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events e
		JOIN movies m ON m.title = e.movie_title
		WHERE e.end_at >= $1
		ORDER BY e.start_at DESC, e.id`

	rows, err := r.db.QueryContext(ctx, query, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEvents(rows)
}

func (r *EventRepository) GetByID(ctx context.Context, id string) (*models.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events e
		JOIN movies m ON m.title = e.movie_title
		WHERE e.id = $1`

	event := &models.Event{}
	var eventType string
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&event.ID,
		&event.MovieTitle,
		&event.MovieImage,
		&eventType,
		&event.Title,
		&event.StartAt,
		&event.EndAt,
		&event.ViewCount,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	event.Type = models.EventType(eventType)
	return event, nil
}

// IncrementViewCount bumps the detail-view counter. Best effort; callers
// treat failures as non-fatal.
func (r *EventRepository) IncrementViewCount(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE events SET view_count = view_count + 1 WHERE id = $1`, id)
	return err
}

// SearchByMovieTitle does case-sensitive substring matching over the movie
// title of active events, mirroring a SQL LIKE '%title%' containment.
func (r *EventRepository) SearchByMovieTitle(ctx context.Context, title string, now time.Time) ([]models.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events e
		JOIN movies m ON m.title = e.movie_title
		WHERE e.movie_title LIKE '%' || $1 || '%'
		  AND e.end_at >= $2
		ORDER BY e.start_at DESC, e.id`

	rows, err := r.db.QueryContext(ctx, query, title, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEvents(rows)
}

func scanEvents(rows *sql.Rows) ([]models.Event, error) {
	var events []models.Event
	for rows.Next() {
		var event models.Event
		var eventType string
		err := rows.Scan(
			&event.ID,
			&event.MovieTitle,
			&event.MovieImage,
			&eventType,
			&event.Title,
			&event.StartAt,
			&event.EndAt,
			&event.ViewCount,
		)
		if err != nil {
			return nil, err
		}
		event.Type = models.EventType(eventType)
		events = append(events, event)
	}
	return events, rows.Err()
}
