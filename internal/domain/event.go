package domain

import (
	"context"
	"time"
)

// Event is a catalog entry organizers publish. The attendance ledger only
// references it by ID.
// swagger:model Event
type Event struct {
	ID          string    `json:"event_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Venue       string    `json:"venue"`
	StartAt     time.Time `json:"start_at"`
	BannerURL   string    `json:"banner_url"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewEvent returns a new Event with the given fields. ID is set by the catalog service on create.
func NewEvent(title, description, venue, bannerURL, createdBy string, startAt, createdAt time.Time) *Event {
	return &Event{
		Title:       title,
		Description: description,
		Venue:       venue,
		StartAt:     startAt,
		BannerURL:   bannerURL,
		CreatedBy:   createdBy,
		CreatedAt:   createdAt,
	}
}

// EventRepository defines the interface for event storage
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	List(ctx context.Context) ([]*Event, error)
}

// CreateEventInput carries the fields an admin supplies when publishing an event.
type CreateEventInput struct {
	Title       string
	Description string
	Venue       string
	StartAt     time.Time
	BannerURL   string
}

// EventService defines the events catalog operations.
type EventService interface {
	CreateEvent(ctx context.Context, createdBy string, in CreateEventInput) (*Event, error)
	GetEvent(ctx context.Context, id string) (*Event, error)
	ListEvents(ctx context.Context) ([]*Event, error)
}
