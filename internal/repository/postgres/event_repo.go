package postgres

import (
	"context"
	"database/sql"
	"errors"

	"eventosia/internal/domain"
)

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{DB: db}
}

func (r *eventRepository) Create(ctx context.Context, event *domain.Event) error {
	query := `
		INSERT INTO events (name, created_at)
		VALUES ($1, NOW())
		RETURNING id_event, created_at
	`
	return r.DB.QueryRowContext(ctx, query, event.Name).Scan(&event.ID, &event.CreatedAt)
}

func (r *eventRepository) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	query := `
		SELECT id_event, name, created_at
		FROM events
		WHERE id_event = $1
	`
	event := &domain.Event{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(&event.ID, &event.Name, &event.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrEventNotFound
		}
		return nil, err
	}
	return event, nil
}
