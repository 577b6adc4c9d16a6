package service

import (
	"time"

	"cinecatch/internal/external"
	"cinecatch/internal/repository"
)

// Services bundles the business layer for handler and consumer wiring.
type Services struct {
	Theaters      *TheaterService
	Events        *EventService
	Subscriptions *SubscriptionService
	Favorites     *FavoriteService
	Notifications *NotificationService
	Members       *MemberService
	Notify        *NotifyService
}

// NewServices wires the services onto the concrete repositories. publisher
// may be nil when no message broker is configured; token cleanup then runs
// in-process.
func NewServices(repos *repository.Repositories, push *external.PushClient, publisher Publisher, pushTimeout time.Duration) *Services {
	theaters := NewTheaterService(repos.Theaters)
	resolver := NewSubscriberResolver(repos.Subscriptions)

	return &Services{
		Theaters:      theaters,
		Events:        NewEventService(repos.Events, repos.EventLocations, theaters),
		Subscriptions: NewSubscriptionService(repos.Subscriptions, repos.Theaters, repos.Events),
		Favorites:     NewFavoriteService(repos.Subscriptions, repos.Events),
		Notifications: NewNotificationService(repos.Notifications),
		Members:       NewMemberService(repos.Members),
		Notify:        NewNotifyService(resolver, push, repos.Notifications, repos.Members, publisher, pushTimeout),
	}
}
