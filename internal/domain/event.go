package domain

import (
	"context"
	"time"
)

// Event represents a managed event. Event CRUD lives outside this service;
// the invitation flow only needs existence checks and the display name.
// swagger:model Event
type Event struct {
	ID        int64     `json:"id_event"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// EventRepository defines the interface for event storage
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id int64) (*Event, error)
}
