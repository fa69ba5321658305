package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/desertthunder/rolodex/internal/models"
	"github.com/desertthunder/rolodex/internal/store"
)

// ActivityRecorder implements [store.Recorder] using [ActivityRepository].
//
// Each mutation attempt becomes one row; failures keep the error text in the message column.
type ActivityRecorder struct {
	repo  *ActivityRepository
	clock func() time.Time
}

var _ store.Recorder = (*ActivityRecorder)(nil)

// NewActivityRecorder creates a new ActivityRecorder with the given repository
func NewActivityRecorder(repo *ActivityRepository) *ActivityRecorder {
	return &ActivityRecorder{repo: repo, clock: time.Now}
}

// Record writes one journal entry for a mutation attempt.
func (a *ActivityRecorder) Record(ctx context.Context, op store.Op, contactID int64, err error) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	entry := &models.Activity{
		Op:        string(op),
		ContactID: contactID,
		Success:   err == nil,
		CreatedAt: a.clock().UTC(),
	}
	if err != nil {
		entry.Message = err.Error()
	}

	if err := a.repo.Create(entry); err != nil {
		return fmt.Errorf("failed to record %s: %w", op, err)
	}
	return nil
}
