package repository

import (
	"cinecatch/internal/database"
)

type Repositories struct {
	Theaters       *TheaterRepository
	Events         *EventRepository
	EventLocations *EventLocationRepository
	Members        *MemberRepository
	Subscriptions  *SubscriptionRepository
	Notifications  *NotificationRepository
}

func NewRepositories(db *database.DB) *Repositories {
	return &Repositories{
		Theaters:       NewTheaterRepository(db),
		Events:         NewEventRepository(db),
		EventLocations: NewEventLocationRepository(db),
		Members:        NewMemberRepository(db),
		Subscriptions:  NewSubscriptionRepository(db),
		Notifications:  NewNotificationRepository(db),
	}
}
