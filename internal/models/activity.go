package models

import (
	"fmt"
	"time"
)

// Activity records the outcome of one attempted contact mutation.
type Activity struct {
	ID        string    `json:"id"`
	Op        string    `json:"op"`
	ContactID int64     `json:"contact_id"`
	Success   bool      `json:"success"`
	Message   string    `json:"message,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Validate checks that the activity can be persisted.
func (a Activity) Validate() error {
	if a.ID == "" {
		return fmt.Errorf("activity id is required")
	}
	if a.Op == "" {
		return fmt.Errorf("activity op is required")
	}
	if a.CreatedAt.IsZero() {
		return fmt.Errorf("activity timestamp is required")
	}
	return nil
}

// Status is a short human-readable outcome.
func (a Activity) Status() string {
	if a.Success {
		return "ok"
	}
	return "failed"
}
