package db

import "time"

// Event представляет событие в каталоге (PostgreSQL - источник истины,
// OpenSearch - поисковая проекция)
type Event struct {
	Id        int64
	Name      string
	Category  string
	Location  string
	Price     float64
	CreatedAt time.Time
	UpdatedAt *time.Time
}

// CreateEventParams содержит параметры для создания нового события
type CreateEventParams struct {
	Name     string
	Category string
	Location string
	Price    float64
}

// NewEventFromCreateRequest создает новый экземпляр Event на основе параметров создания
func NewEventFromCreateRequest(params CreateEventParams) *Event {
	return &Event{
		Name:     params.Name,
		Category: params.Category,
		Location: params.Location,
		Price:    params.Price,
	}
}
