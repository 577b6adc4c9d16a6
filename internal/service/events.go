package service

import (
	"context"
	"fmt"
	"time"

	apperrors "cinecatch/internal/errors"
	"cinecatch/internal/logger"
	"cinecatch/internal/models"
)

// EventStore - event rows independent of any theater
type EventStore interface {
	FindActive(ctx context.Context, now time.Time) ([]models.Event, error)
	GetByID(ctx context.Context, id string) (*models.Event, error)
	IncrementViewCount(ctx context.Context, id string) error
	SearchByMovieTitle(ctx context.Context, title string, now time.Time) ([]models.Event, error)
}

// LocationStore - flat event/theater inventory rows the aggregator groups
type LocationStore interface {
	FindByEventIDs(ctx context.Context, eventIDs []string) ([]models.EventLocationRow, error)
	FindActiveByTheaterIDs(ctx context.Context, theaterIDs []string, now time.Time) ([]models.EventLocationRow, error)
	FindByEventAndTheaterIDs(ctx context.Context, eventID string, theaterIDs []string) ([]models.EventLocationRow, error)
	FindActiveByTheaterID(ctx context.Context, theaterID string, now time.Time) ([]models.EventLocationRow, error)
}

// EventService groups flat event-location rows into per-event views.
// Grouping preserves the storage ordering: events appear in the order their
// first row appears, theaters in row order within each event.
type EventService struct {
	events    EventStore
	locations LocationStore
	theaters  *TheaterService
	now       func() time.Time
}

func NewEventService(events EventStore, locations LocationStore, theaters *TheaterService) *EventService {
	return &EventService{
		events:    events,
		locations: locations,
		theaters:  theaters,
		now:       time.Now,
	}
}

// ListActive returns every active event with its full inventory. Events that
// have no event_location rows yet still appear, with an empty theater list.
func (s *EventService) ListActive(ctx context.Context) ([]models.EventView, error) {
	events, err := s.events.FindActive(ctx, s.now())
	if err != nil {
		return nil, fmt.Errorf("failed to list active events: %w", err)
	}
	if len(events) == 0 {
		return []models.EventView{}, nil
	}

	ids := make([]string, len(events))
	for i, ev := range events {
		ids[i] = ev.ID
	}
	rows, err := s.locations.FindByEventIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load event locations: %w", err)
	}

	byEvent := make(map[string][]models.TheaterInventory, len(events))
	for _, row := range rows {
		byEvent[row.Event.ID] = append(byEvent[row.Event.ID], inventoryOf(row))
	}

	views := make([]models.EventView, 0, len(events))
	for _, ev := range events {
		view := viewOf(ev)
		if inv := byEvent[ev.ID]; inv != nil {
			view.Theaters = inv
		}
		views = append(views, view)
	}
	return views, nil
}

// ListNearby returns the active events available at theaters around the
// point, grouped by event. With no theaters in range there is nothing to
// group, so storage is not consulted for locations at all.
func (s *EventService) ListNearby(ctx context.Context, filter models.GeoFilter) ([]models.EventView, error) {
	theaters, err := s.theaters.FindNearby(ctx, filter.Latitude, filter.Longitude, filter.Radius)
	if err != nil {
		return nil, err
	}
	if len(theaters) == 0 {
		return []models.EventView{}, nil
	}

	ids := make([]string, len(theaters))
	for i, t := range theaters {
		ids[i] = t.ID
	}
	rows, err := s.locations.FindActiveByTheaterIDs(ctx, ids, s.now())
	if err != nil {
		return nil, fmt.Errorf("failed to load nearby events: %w", err)
	}
	return groupByEvent(rows), nil
}

// GetDetail returns one event's view. With a geo filter the theater list is
// restricted to theaters in range; an event outside the filter's reach is
// still returned, just with an empty list. Without a filter the full
// inventory is included.
func (s *EventService) GetDetail(ctx context.Context, eventID string, filter *models.GeoFilter) (*models.EventView, error) {
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	if event == nil {
		return nil, fmt.Errorf("event %s: %w", eventID, apperrors.ErrNotFound)
	}

	// View counting never blocks or fails a detail read.
	if err := s.events.IncrementViewCount(ctx, eventID); err != nil {
		logger.WithContext(ctx).Warn("failed to increment view count", "event_id", eventID, "error", err)
	}

	view := viewOf(*event)

	var rows []models.EventLocationRow
	if filter == nil {
		rows, err = s.locations.FindByEventIDs(ctx, []string{eventID})
	} else {
		var theaters []models.Theater
		theaters, err = s.theaters.FindNearby(ctx, filter.Latitude, filter.Longitude, filter.Radius)
		if err != nil {
			return nil, err
		}
		if len(theaters) == 0 {
			return &view, nil
		}
		ids := make([]string, len(theaters))
		for i, t := range theaters {
			ids[i] = t.ID
		}
		rows, err = s.locations.FindByEventAndTheaterIDs(ctx, eventID, ids)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load event locations: %w", err)
	}

	for _, row := range rows {
		view.Theaters = append(view.Theaters, inventoryOf(row))
	}
	return &view, nil
}

// SearchByMovieTitle finds active events whose movie title contains the
// query, with full inventory per match.
func (s *EventService) SearchByMovieTitle(ctx context.Context, title string) ([]models.EventView, error) {
	if title == "" {
		return nil, fmt.Errorf("%w: movie title is required", apperrors.ErrInvalidArgument)
	}
	events, err := s.events.SearchByMovieTitle(ctx, title, s.now())
	if err != nil {
		return nil, fmt.Errorf("failed to search events: %w", err)
	}
	if len(events) == 0 {
		return []models.EventView{}, nil
	}

	ids := make([]string, len(events))
	for i, ev := range events {
		ids[i] = ev.ID
	}
	rows, err := s.locations.FindByEventIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load event locations: %w", err)
	}

	byEvent := make(map[string][]models.TheaterInventory, len(events))
	for _, row := range rows {
		byEvent[row.Event.ID] = append(byEvent[row.Event.ID], inventoryOf(row))
	}
	views := make([]models.EventView, 0, len(events))
	for _, ev := range events {
		view := viewOf(ev)
		if inv := byEvent[ev.ID]; inv != nil {
			view.Theaters = inv
		}
		views = append(views, view)
	}
	return views, nil
}

// ListForTheater returns the active events carried by a single theater.
func (s *EventService) ListForTheater(ctx context.Context, theaterID string) ([]models.TheaterEventView, error) {
	if _, err := s.theaters.GetByID(ctx, theaterID); err != nil {
		return nil, err
	}
	rows, err := s.locations.FindActiveByTheaterID(ctx, theaterID, s.now())
	if err != nil {
		return nil, fmt.Errorf("failed to load theater events: %w", err)
	}
	views := make([]models.TheaterEventView, 0, len(rows))
	for _, row := range rows {
		views = append(views, models.TheaterEventView{
			EventID:    row.Event.ID,
			Title:      row.Event.Title,
			MovieTitle: row.Event.MovieTitle,
			Type:       row.Event.Type,
			Status:     row.Status,
			ImageURL:   row.Event.MovieImage,
			StartAt:    row.Event.StartAt,
			EndAt:      row.Event.EndAt,
		})
	}
	return views, nil
}

// groupByEvent folds flat rows into one view per distinct event id,
// keeping first-appearance order for events and row order for theaters.
// Grouping the same rows twice yields the same result.
func groupByEvent(rows []models.EventLocationRow) []models.EventView {
	order := make([]string, 0, len(rows))
	grouped := make(map[string]*models.EventView, len(rows))
	for _, row := range rows {
		view, ok := grouped[row.Event.ID]
		if !ok {
			v := viewOf(row.Event)
			view = &v
			grouped[row.Event.ID] = view
			order = append(order, row.Event.ID)
		}
		view.Theaters = append(view.Theaters, inventoryOf(row))
	}

	views := make([]models.EventView, 0, len(order))
	for _, id := range order {
		views = append(views, *grouped[id])
	}
	return views
}

func viewOf(ev models.Event) models.EventView {
	return models.EventView{
		EventID:    ev.ID,
		MovieTitle: ev.MovieTitle,
		GoodsTitle: ev.Title,
		ImageURL:   ev.MovieImage,
		Type:       ev.Type,
		StartAt:    ev.StartAt,
		EndAt:      ev.EndAt,
		Theaters:   []models.TheaterInventory{},
	}
}

func inventoryOf(row models.EventLocationRow) models.TheaterInventory {
	return models.TheaterInventory{
		TheaterID:   row.Theater.ID,
		TheaterName: row.Theater.Name,
		Address:     row.Theater.Address,
		Latitude:    row.Theater.Latitude,
		Longitude:   row.Theater.Longitude,
		Status:      row.Status,
	}
}
