package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"eventrsvp/internal/domain"
)

type eventService struct {
	eventRepo domain.EventRepository
}

// NewEventService creates the events catalog service.
func NewEventService(eventRepo domain.EventRepository) domain.EventService {
	return &eventService{eventRepo: eventRepo}
}

func (s *eventService) CreateEvent(ctx context.Context, createdBy string, in domain.CreateEventInput) (*domain.Event, error) {
	title := strings.TrimSpace(in.Title)
	venue := strings.TrimSpace(in.Venue)
	if title == "" || venue == "" || in.StartAt.IsZero() {
		return nil, fmt.Errorf("%w: title, venue, and start_at are required", domain.ErrInvalidInput)
	}

	event := domain.NewEvent(title, in.Description, venue, in.BannerURL, createdBy, in.StartAt.UTC(), time.Now().UTC())
	event.ID = uuid.NewString()
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	return event, nil
}

func (s *eventService) GetEvent(ctx context.Context, id string) (*domain.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

func (s *eventService) ListEvents(ctx context.Context) ([]*domain.Event, error) {
	events, err := s.eventRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return events, nil
}
