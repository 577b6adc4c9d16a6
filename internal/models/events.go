package models

import "time"

// NATS subjects
const (
	SubjectEventCreated          = "event.created"
	SubjectEventStatusChanged    = "event.status_changed"
	SubjectFavoriteStatusChanged = "event.favorite_status_changed"
	SubjectTokensInvalid         = "notification.tokens.invalid"
)

// EventCreatedMessage is published by the crawler when a theater gains a new event
type EventCreatedMessage struct {
	TheaterID   string    `json:"theater_id"`
	TheaterName string    `json:"theater_name"`
	EventTitle  string    `json:"event_title"`
	Timestamp   time.Time `json:"timestamp"`
}

// StatusChangedMessage is published by the crawler when an event_location row changes status
type StatusChangedMessage struct {
	TheaterID   string    `json:"theater_id"`
	TheaterName string    `json:"theater_name"`
	EventTitle  string    `json:"event_title"`
	NewStatus   string    `json:"new_status"`
	Timestamp   time.Time `json:"timestamp"`
}

// FavoriteStatusChangedMessage is published when a favorited event changes status anywhere
type FavoriteStatusChangedMessage struct {
	EventID    string    `json:"event_id"`
	EventTitle string    `json:"event_title"`
	NewStatus  string    `json:"new_status"`
	Timestamp  time.Time `json:"timestamp"`
}

// InvalidTokensMessage carries device tokens the push gateway reported as
// permanently undeliverable; the consumer clears them from members.
type InvalidTokensMessage struct {
	Tokens    []string  `json:"tokens"`
	Timestamp time.Time `json:"timestamp"`
}
