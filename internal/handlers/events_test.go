package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"cinecatch/internal/models"
	"cinecatch/internal/service"
)

type stubTheaterStore struct {
	nearby []models.Theater
	byID   map[string]*models.Theater
}

func (s *stubTheaterStore) FindNearby(ctx context.Context, lat, lng, radiusMeters float64) ([]models.Theater, error) {
	return s.nearby, nil
}

func (s *stubTheaterStore) GetByID(ctx context.Context, id string) (*models.Theater, error) {
	return s.byID[id], nil
}

func (s *stubTheaterStore) List(ctx context.Context, brand string) ([]models.Theater, error) {
	return s.nearby, nil
}

type stubEventStore struct {
	active []models.Event
	byID   map[string]*models.Event
}

func (s *stubEventStore) FindActive(ctx context.Context, now time.Time) ([]models.Event, error) {
	return s.active, nil
}

func (s *stubEventStore) GetByID(ctx context.Context, id string) (*models.Event, error) {
	return s.byID[id], nil
}

func (s *stubEventStore) IncrementViewCount(ctx context.Context, id string) error {
	return nil
}

func (s *stubEventStore) SearchByMovieTitle(ctx context.Context, title string, now time.Time) ([]models.Event, error) {
	return s.active, nil
}

type stubLocationStore struct {
	rows []models.EventLocationRow
}

func (s *stubLocationStore) FindByEventIDs(ctx context.Context, eventIDs []string) ([]models.EventLocationRow, error) {
	return s.rows, nil
}

func (s *stubLocationStore) FindActiveByTheaterIDs(ctx context.Context, theaterIDs []string, now time.Time) ([]models.EventLocationRow, error) {
	return s.rows, nil
}

func (s *stubLocationStore) FindByEventAndTheaterIDs(ctx context.Context, eventID string, theaterIDs []string) ([]models.EventLocationRow, error) {
	return s.rows, nil
}

func (s *stubLocationStore) FindActiveByTheaterID(ctx context.Context, theaterID string, now time.Time) ([]models.EventLocationRow, error) {
	return s.rows, nil
}

func setupRouter(theaters *stubTheaterStore, events *stubEventStore, locations *stubLocationStore) *gin.Engine {
	gin.SetMode(gin.TestMode)

	theaterService := service.NewTheaterService(theaters)
	services := &service.Services{
		Theaters: theaterService,
		Events:   service.NewEventService(events, locations, theaterService),
	}
	h := NewHandlers(services, nil)

	r := gin.New()
	api := r.Group("/api")
	{
		api.GET("/events", h.ListEvents)
		api.GET("/events/nearby", h.ListNearbyEvents)
		api.GET("/events/:eventId", h.GetEvent)
		api.GET("/theaters", h.ListTheaters)
		api.GET("/theaters/:theaterId", h.GetTheater)
		api.GET("/theaters/:theaterId/events", h.ListTheaterEvents)
	}
	return r
}

func get(t *testing.T, r *gin.Engine, path string) *httptest.ResponseRecorder {
	t.Helper()
	req, _ := http.NewRequest("GET", path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func locationRow(eventID, theaterID string) models.EventLocationRow {
	return models.EventLocationRow{
		Event:   models.Event{ID: eventID, MovieTitle: "Dune"},
		Theater: models.Theater{ID: theaterID},
		Status:  models.StatusAvailable,
	}
}

func TestListEventsNearbyDispatch(t *testing.T) {
	theaters := &stubTheaterStore{nearby: []models.Theater{{ID: "t1"}}}
	locations := &stubLocationStore{rows: []models.EventLocationRow{
		locationRow("e1", "t1"),
		locationRow("e2", "t1"),
	}}
	r := setupRouter(theaters, &stubEventStore{}, locations)

	w := get(t, r, "/api/events?lat=37.5&lng=127.0")

	assert.Equal(t, http.StatusOK, w.Code)

	var views []models.EventView
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &views))
	assert.Len(t, views, 2)
	assert.Equal(t, "e1", views[0].EventID)
}

func TestListEventsRejectsHalfCoordinates(t *testing.T) {
	r := setupRouter(&stubTheaterStore{}, &stubEventStore{}, &stubLocationStore{})

	w := get(t, r, "/api/events?lat=37.5")

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListEventsRejectsBadRadius(t *testing.T) {
	r := setupRouter(&stubTheaterStore{}, &stubEventStore{}, &stubLocationStore{})

	w := get(t, r, "/api/events?lat=37.5&lng=127.0&radius=-10")

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListEventsActiveList(t *testing.T) {
	events := &stubEventStore{active: []models.Event{{ID: "e1", MovieTitle: "Dune"}}}
	r := setupRouter(&stubTheaterStore{}, events, &stubLocationStore{})

	w := get(t, r, "/api/events")

	assert.Equal(t, http.StatusOK, w.Code)

	var views []models.EventView
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &views))
	assert.Len(t, views, 1)
	assert.NotNil(t, views[0].Theaters)
}

func TestListNearbyEventsRequiresCoordinates(t *testing.T) {
	r := setupRouter(&stubTheaterStore{}, &stubEventStore{}, &stubLocationStore{})

	w := get(t, r, "/api/events/nearby")

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetEventNotFound(t *testing.T) {
	r := setupRouter(&stubTheaterStore{}, &stubEventStore{byID: map[string]*models.Event{}}, &stubLocationStore{})

	w := get(t, r, "/api/events/missing")

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetEventWithGeoFilter(t *testing.T) {
	events := &stubEventStore{byID: map[string]*models.Event{"e1": {ID: "e1", MovieTitle: "Dune"}}}
	theaters := &stubTheaterStore{nearby: []models.Theater{{ID: "t1"}}}
	locations := &stubLocationStore{rows: []models.EventLocationRow{locationRow("e1", "t1")}}
	r := setupRouter(theaters, events, locations)

	w := get(t, r, "/api/events/e1?lat=37.5&lng=127.0&radius=3000")

	assert.Equal(t, http.StatusOK, w.Code)

	var view models.EventView
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.Equal(t, "e1", view.EventID)
	assert.Len(t, view.Theaters, 1)
}

func TestGetTheaterNotFound(t *testing.T) {
	r := setupRouter(&stubTheaterStore{byID: map[string]*models.Theater{}}, &stubEventStore{}, &stubLocationStore{})

	w := get(t, r, "/api/theaters/missing")

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListTheaterEvents(t *testing.T) {
	theaters := &stubTheaterStore{byID: map[string]*models.Theater{"t1": {ID: "t1", Name: "CGV Gangnam"}}}
	locations := &stubLocationStore{rows: []models.EventLocationRow{locationRow("e1", "t1")}}
	r := setupRouter(theaters, &stubEventStore{}, locations)

	w := get(t, r, "/api/theaters/t1/events")

	assert.Equal(t, http.StatusOK, w.Code)

	var views []models.TheaterEventView
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &views))
	assert.Len(t, views, 1)
	assert.Equal(t, models.StatusAvailable, views[0].Status)
}
