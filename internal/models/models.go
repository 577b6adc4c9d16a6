package models

import (
	"time"

	"github.com/google/uuid"
)

// TargetKind selects which subscription table a fan-out resolves against.
type TargetKind string

const (
	TargetTheater TargetKind = "THEATER"
	TargetEvent   TargetKind = "EVENT"
)

// GeoFilter restricts a query to theaters near a point.
// A nil Radius means the default radius applies.
type GeoFilter struct {
	Latitude  float64
	Longitude float64
	Radius    *float64
}

// TheaterInventory - one theater's stock line inside an EventView
type TheaterInventory struct {
	TheaterID   string          `json:"theater_id"`
	TheaterName string          `json:"theater_name"`
	Address     string          `json:"address"`
	Latitude    float64         `json:"latitude"`
	Longitude   float64         `json:"longitude"`
	Status      InventoryStatus `json:"status"`
}

// EventView - an event plus the theater inventory rows matching the query's
// theater filter. Derived, never persisted.
type EventView struct {
	EventID    string             `json:"event_id"`
	MovieTitle string             `json:"movie_title"`
	GoodsTitle string             `json:"goods_title"`
	ImageURL   string             `json:"image_url"`
	Type       EventType          `json:"type"`
	StartAt    time.Time          `json:"start_at"`
	EndAt      time.Time          `json:"end_at"`
	Theaters   []TheaterInventory `json:"theaters"`
}

// TheaterEventView - one active event as seen from a single theater's page
type TheaterEventView struct {
	EventID    string          `json:"event_id"`
	Title      string          `json:"title"`
	MovieTitle string          `json:"movie_title"`
	Type       EventType       `json:"type"`
	Status     InventoryStatus `json:"status"`
	ImageURL   string          `json:"image_url"`
	StartAt    time.Time       `json:"start_at"`
	EndAt      time.Time       `json:"end_at"`
}

// Recipient is one eligible fan-out target: a member with notifications
// enabled and a non-blank device token at resolution time.
type Recipient struct {
	MemberID int64
	Token    string
}

// DeliveryResult - fan-out summary returned to internal trigger callers
type DeliveryResult struct {
	Attempted int `json:"attempted"`
	Succeeded int `json:"succeeded"`
}

// EventUpdateRequest - payload of POST /api/internal/notifications/event-update
type EventUpdateRequest struct {
	TheaterID   string `json:"theater_id" binding:"required"`
	TheaterName string `json:"theater_name" binding:"required"`
	EventTitle  string `json:"event_title" binding:"required"`
}

// StatusChangeRequest - payload of POST /api/internal/notifications/status-change
type StatusChangeRequest struct {
	TheaterID   string `json:"theater_id" binding:"required"`
	TheaterName string `json:"theater_name" binding:"required"`
	EventTitle  string `json:"event_title" binding:"required"`
	NewStatus   string `json:"new_status" binding:"required"`
}

// FavoriteStatusChangeRequest - payload of POST /api/internal/notifications/favorite-status-change
type FavoriteStatusChangeRequest struct {
	EventID    string `json:"event_id" binding:"required"`
	EventTitle string `json:"event_title" binding:"required"`
	NewStatus  string `json:"new_status" binding:"required"`
}

// NotifyResponse - response body of the internal trigger endpoints
type NotifyResponse struct {
	Success   bool `json:"success"`
	Attempted int  `json:"attempted"`
	SentCount int  `json:"sent_count"`
}

// SubscriptionRequest - payload of POST /api/subscriptions
type SubscriptionRequest struct {
	TheaterID string `json:"theater_id" binding:"required"`
}

// SubscriptionResponse - one theater subscription of the calling member
type SubscriptionResponse struct {
	ID        uuid.UUID `json:"id"`
	TheaterID string    `json:"theater_id"`
	CreatedAt time.Time `json:"created_at"`
}

// FcmTokenRequest - payload of PUT /api/members/me/fcm-token
type FcmTokenRequest struct {
	Token string `json:"token" binding:"required"`
}

// NotificationSettingsRequest - payload of PUT /api/members/me/notification-settings
type NotificationSettingsRequest struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

// NotificationResponse - one history entry of the calling member
type NotificationResponse struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

// UnreadCountResponse - body of GET /api/notifications/unread-count
type UnreadCountResponse struct {
	Count int `json:"count"`
}
