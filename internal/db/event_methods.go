package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

const (
	createEventQuery = `INSERT INTO events (name, category, location, price)
						VALUES ($1, $2, $3, $4)
						RETURNING id, created_at, updated_at`

	getEventsQueryBaseFields = `SELECT id, name, category, location, price, created_at, updated_at FROM events`
	getEventsQuery           = getEventsQueryBaseFields + ` ORDER BY id`
	getEventByIdQuery        = getEventsQueryBaseFields + ` WHERE id = $1`
	countEventsQuery         = `SELECT COUNT(*) FROM events`
)

// CreateEvent создает новое событие.
func (s *PostgresStore) CreateEvent(parentCtx context.Context, event *Event) (*Event, error) {
	ctx, cancel := context.WithTimeout(parentCtx, 3*time.Second)
	defer cancel()

	err := s.db.QueryRow(
		ctx,
		createEventQuery,
		event.Name,
		event.Category,
		event.Location,
		event.Price,
	).Scan(&event.Id, &event.CreatedAt, &event.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	return event, nil
}

// GetEvents возвращает все события каталога.
func (s *PostgresStore) GetEvents(parentCtx context.Context) ([]*Event, error) {
	ctx, cancel := context.WithTimeout(parentCtx, 3*time.Second)
	defer cancel()

	rows, err := s.db.Query(ctx, getEventsQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to get events: %w", err)
	}
	defer rows.Close()

	events := make([]*Event, 0)
	for rows.Next() {
		event, err := scanIntoEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return events, nil
}

// GetEventByID возвращает событие по идентификатору.
func (s *PostgresStore) GetEventByID(parentCtx context.Context, id int64) (*Event, error) {
	ctx, cancel := context.WithTimeout(parentCtx, 3*time.Second)
	defer cancel()

	row := s.db.QueryRow(ctx, getEventByIdQuery, id)

	event := new(Event)
	err := row.Scan(
		&event.Id,
		&event.Name,
		&event.Category,
		&event.Location,
		&event.Price,
		&event.CreatedAt,
		&event.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("event with ID %d not found: %w", id, err)
		}
		return nil, fmt.Errorf("failed to get event %d: %w", id, err)
	}

	return event, nil
}

// CountEvents возвращает количество событий в каталоге.
func (s *PostgresStore) CountEvents(parentCtx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(parentCtx, 3*time.Second)
	defer cancel()

	var count int64
	if err := s.db.QueryRow(ctx, countEventsQuery).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count events: %w", err)
	}

	return count, nil
}

func scanIntoEvent(rows pgx.Rows) (*Event, error) {
	event := new(Event)
	err := rows.Scan(
		&event.Id,
		&event.Name,
		&event.Category,
		&event.Location,
		&event.Price,
		&event.CreatedAt,
		&event.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan event row: %w", err)
	}
	return event, nil
}
