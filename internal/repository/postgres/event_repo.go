package postgres

import (
	"context"
	"database/sql"
	"errors"

	"eventrsvp/internal/domain"
)

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (event_id, title, description, venue, start_at, banner_url, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	var createdBy sql.NullString
	if e.CreatedBy != "" {
		createdBy = sql.NullString{String: e.CreatedBy, Valid: true}
	}
	_, err := r.DB.ExecContext(ctx, query, e.ID, e.Title, e.Description, e.Venue, e.StartAt, e.BannerURL, createdBy, e.CreatedAt)
	return err
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `
		SELECT event_id, title, description, venue, start_at, banner_url, created_by, created_at
		FROM events
		WHERE event_id = $1
	`
	e := &domain.Event{}
	var createdBy sql.NullString
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&e.ID, &e.Title, &e.Description, &e.Venue, &e.StartAt, &e.BannerURL, &createdBy, &e.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	e.CreatedBy = createdBy.String
	return e, nil
}

func (r *eventRepository) List(ctx context.Context) ([]*domain.Event, error) {
	query := `
		SELECT event_id, title, description, venue, start_at, banner_url, created_by, created_at
		FROM events
		ORDER BY start_at ASC
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]*domain.Event, 0)
	for rows.Next() {
		e := &domain.Event{}
		var createdBy sql.NullString
		if err := rows.Scan(&e.ID, &e.Title, &e.Description, &e.Venue, &e.StartAt, &e.BannerURL, &createdBy, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.CreatedBy = createdBy.String
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}
