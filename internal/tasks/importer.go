package tasks

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/desertthunder/rolodex/internal/models"
)

const (
	defaultWorkers = 4
	maxWorkers     = 16
)

// ErrSkipped marks rows that were never sent because the import was cancelled.
var ErrSkipped = errors.New("skipped")

// Creator creates one contact. [store.Store] satisfies it.
type Creator interface {
	Add(ctx context.Context, fields models.ContactFields) (models.Contact, error)
}

// RowResult is the outcome of one input row.
type RowResult struct {
	Row     int                  // 1-based position in the input
	Fields  models.ContactFields // Submitted fields
	Contact *models.Contact      // Created contact, nil on failure
	Err     error                // Validation, remote or cancellation error
}

// Status is a short human-readable outcome.
func (r RowResult) Status() string {
	switch {
	case r.Err == nil:
		return "created"
	case errors.Is(r.Err, ErrSkipped):
		return "skipped"
	default:
		return "failed"
	}
}

// ImportResult contains the per-row outcomes of [Importer.Run].
type ImportResult struct {
	Rows    []RowResult // In input order
	Created int
	Invalid int // Rows rejected before any request
	Failed  int // Rows the remote rejected
	Skipped int // Rows not attempted because ctx was cancelled
}

// ImportOpts configures an [Importer].
type ImportOpts struct {
	Workers   int     // Concurrent creates (default 4, max 16)
	RateLimit float64 // Creates per second; zero disables pacing
	DryRun    bool    // Validate only
}

// Importer bulk-creates contacts.
type Importer struct {
	creator Creator
	opts    ImportOpts
}

// NewImporter creates an importer that sends rows through creator.
func NewImporter(creator Creator, opts ImportOpts) *Importer {
	if opts.Workers <= 0 {
		opts.Workers = defaultWorkers
	}
	if opts.Workers > maxWorkers {
		opts.Workers = maxWorkers
	}
	return &Importer{creator: creator, opts: opts}
}

// Run validates rows, then creates the valid ones concurrently.
//
// Rows complete in completion order, so contacts land in the store in that order. A failed row
// does not stop the others. When ctx is cancelled, rows not yet started are marked [ErrSkipped]
// and ctx's error is returned with the partial result.
func (im *Importer) Run(ctx context.Context, rows []models.ContactFields, progress chan<- ProgressUpdate) (*ImportResult, error) {
	result := &ImportResult{Rows: make([]RowResult, len(rows))}

	valid := make([]int, 0, len(rows))
	for i, fields := range rows {
		result.Rows[i] = RowResult{Row: i + 1, Fields: fields}
		if err := fields.Validate(); err != nil {
			result.Rows[i].Err = err
			result.Invalid++
			continue
		}
		valid = append(valid, i)
	}
	sendProgress(progress, validatedUpdate(len(rows), result.Invalid))

	if im.opts.DryRun || len(valid) == 0 {
		return result, nil
	}

	var limiter *rate.Limiter
	if im.opts.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(im.opts.RateLimit), 1)
	}

	var (
		mu        sync.Mutex
		completed atomic.Int64
		total     = len(valid)
		g         errgroup.Group
	)
	g.SetLimit(im.opts.Workers)

	started := 0
	for _, i := range valid {
		if ctx.Err() != nil {
			break
		}
		started++

		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				mu.Lock()
				result.Rows[i].Err = errors.Join(ErrSkipped, err)
				mu.Unlock()
				return nil
			}
			if limiter != nil {
				if err := limiter.Wait(ctx); err != nil {
					mu.Lock()
					result.Rows[i].Err = errors.Join(ErrSkipped, err)
					mu.Unlock()
					return nil
				}
			}

			c, err := im.creator.Add(ctx, rows[i])
			step := int(completed.Add(1))

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.Rows[i].Err = err
				sendProgress(progress, createFailedUpdate(step, total, rows[i].Name, err))
				return nil
			}
			result.Rows[i].Contact = &c
			sendProgress(progress, createdUpdate(step, total, c))
			return nil
		})
	}
	g.Wait()

	for _, i := range valid[started:] {
		result.Rows[i].Err = errors.Join(ErrSkipped, ctx.Err())
	}

	for _, i := range valid {
		switch result.Rows[i].Status() {
		case "created":
			result.Created++
		case "skipped":
			result.Skipped++
		default:
			result.Failed++
		}
	}

	return result, ctx.Err()
}
