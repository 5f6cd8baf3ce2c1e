package models

import (
	"github.com/rx3lixir/event-explorer/internal/db"
)

// FromDBEvent конвертирует db.Event в EventDocument для OpenSearch
func FromDBEvent(event *db.Event) *EventDocument {
	if event == nil {
		return nil
	}

	return &EventDocument{
		ID:        event.Id,
		EventName: event.Name,
		Category:  event.Category,
		Location:  event.Location,
		Price:     event.Price,
	}
}

// FromDBEvents конвертирует слайс db.Event в слайс EventDocument
func FromDBEvents(events []*db.Event) []*EventDocument {
	if events == nil {
		return nil
	}

	docs := make([]*EventDocument, 0, len(events))
	for _, event := range events {
		if doc := FromDBEvent(event); doc != nil {
			docs = append(docs, doc)
		}
	}
	return docs
}
