package models

import (
	"fmt"
	"strings"
)

// Validate проверяет корректность EventDocument
func (e *EventDocument) Validate() error {
	var errors []string

	if e.ID <= 0 {
		errors = append(errors, "id must be positive")
	}

	if strings.TrimSpace(e.EventName) == "" {
		errors = append(errors, "eventName is required")
	}

	if e.Price < 0 {
		errors = append(errors, "price cannot be negative")
	}

	if len(errors) > 0 {
		return fmt.Errorf("validation errors: %s", strings.Join(errors, ", "))
	}

	return nil
}
