package main

import (
	"context"
	"fmt"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/rolodex/internal/formatter"
	"github.com/desertthunder/rolodex/internal/repositories"
	"github.com/desertthunder/rolodex/internal/shared"
)

// History prints the activity journal, newest first.
func (r *Runner) History(ctx context.Context, cmd *cli.Command) error {
	db, err := shared.OpenJournal(r.config.Database)
	if err != nil {
		return fmt.Errorf("failed to open activity journal: %w", err)
	}
	defer db.Close()

	repo := repositories.NewActivityRepository(db)

	if olderThan := cmd.Duration("prune"); olderThan > 0 {
		cutoff := time.Now().UTC().Add(-olderThan)
		n, err := repo.Prune(cutoff)
		if err != nil {
			return err
		}
		r.logger.Info("pruned activity", "removed", n, "before", cutoff)
		r.writePlain("✓ Removed %d entries older than %s\n", n, olderThan)
		return nil
	}

	var contactID *int64
	if cmd.IsSet("contact") {
		id := int64(cmd.Int("contact"))
		contactID = &id
	}

	entries, err := repo.List(contactID, int(cmd.Int("limit")))
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(entries, true)
	}
	if len(entries) == 0 {
		r.writePlain("No activity recorded\n")
		return nil
	}
	return r.writeBytes(formatter.ActivityTable(entries))
}
