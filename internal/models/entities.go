package models

import (
	"time"

	"github.com/google/uuid"
)

// InventoryStatus is the per-theater stock state of an event.
// The enum is authoritative: values read from storage that do not match
// one of the constants are normalized to StatusUnknown.
type InventoryStatus string

const (
	StatusAvailable InventoryStatus = "AVAILABLE"
	StatusSoldOut   InventoryStatus = "SOLD_OUT"
	StatusScarce    InventoryStatus = "SCARCE"
	StatusUnknown   InventoryStatus = "UNKNOWN"
)

// Valid reports whether s is one of the known inventory statuses.
func (s InventoryStatus) Valid() bool {
	switch s {
	case StatusAvailable, StatusSoldOut, StatusScarce, StatusUnknown:
		return true
	}
	return false
}

// NormalizeStatus maps a raw storage value onto the enum, falling back to
// StatusUnknown for anything unrecognized.
func NormalizeStatus(raw string) InventoryStatus {
	s := InventoryStatus(raw)
	if s.Valid() {
		return s
	}
	return StatusUnknown
}

// EventType classifies a promotional event.
type EventType string

const (
	EventTypeGoods  EventType = "GOODS"
	EventTypeCoupon EventType = "COUPON"
	EventTypeGV     EventType = "GV"
)

// Theater is immutable reference data owned by the ingestion crawler.
type Theater struct {
	ID        string  `json:"id"`
	Brand     string  `json:"brand"`
	Name      string  `json:"name"`
	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Event is a promotional giveaway tied to a movie.
// An event is active while EndAt >= now.
type Event struct {
	ID         string    `json:"id"`
	MovieTitle string    `json:"movie_title"`
	MovieImage string    `json:"movie_image"`
	Type       EventType `json:"type"`
	Title      string    `json:"title"`
	StartAt    time.Time `json:"start_at"`
	EndAt      time.Time `json:"end_at"`
	ViewCount  int       `json:"view_count"`
}

// EventLocationRow is one flat joined row of the event_location table with
// its parent event and theater. The aggregator groups these by event id.
type EventLocationRow struct {
	Event     Event
	Theater   Theater
	Status    InventoryStatus
	UpdatedAt time.Time
}

// Member carries the notification-relevant member fields.
// FCMToken is nil once the cleanup worker has cleared an invalid token.
type Member struct {
	ID                  int64   `json:"id"`
	Email               string  `json:"email"`
	PasswordHash        string  `json:"-"`
	Nickname            string  `json:"nickname"`
	FCMToken            *string `json:"-"`
	NotificationEnabled bool    `json:"notification_enabled"`
}

// TheaterSubscription links a member to a theater. At most one row exists
// per (member, theater) pair.
type TheaterSubscription struct {
	ID        uuid.UUID `json:"id"`
	MemberID  int64     `json:"member_id"`
	TheaterID string    `json:"theater_id"`
	CreatedAt time.Time `json:"created_at"`
}

// EventSubscription is a member's favorite mark on an event. At most one row
// exists per (member, event) pair.
type EventSubscription struct {
	ID        uuid.UUID `json:"id"`
	MemberID  int64     `json:"member_id"`
	EventID   string    `json:"event_id"`
	CreatedAt time.Time `json:"created_at"`
}

// NotificationHistory records that a member was targeted by a fan-out.
// It does not imply the push was delivered.
type NotificationHistory struct {
	ID        uuid.UUID `json:"id"`
	MemberID  int64     `json:"member_id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}
