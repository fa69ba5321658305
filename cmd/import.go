package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/rolodex/internal/formatter"
	"github.com/desertthunder/rolodex/internal/shared"
	"github.com/desertthunder/rolodex/internal/tasks"
)

// ContactsImport bulk-creates contacts from a CSV file.
func (r *Runner) ContactsImport(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("file")
	if path == "" {
		return fmt.Errorf("%w: CSV file path is required", shared.ErrMissingArgument)
	}

	rows, err := formatter.ReadCSVFile(path)
	if err != nil {
		return err
	}

	s, closeFn, err := r.loadedStore(ctx)
	if err != nil {
		return err
	}
	defer closeFn()

	importer := tasks.NewImporter(s, tasks.ImportOpts{
		Workers:   int(cmd.Int("workers")),
		RateLimit: cmd.Float("rate-limit"),
		DryRun:    cmd.Bool("dry-run"),
	})

	r.logger.Info("importing contacts", "file", path, "rows", len(rows))
	r.writePlainHeader(fmt.Sprintf("Importing %d rows from %s", len(rows), path))

	progress := make(chan tasks.ProgressUpdate, len(rows)+1)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progress {
			r.writePlain("%s\n", update.Message)
		}
	}()

	result, runErr := importer.Run(ctx, rows, progress)
	close(progress)
	<-done

	if result != nil {
		for _, row := range result.Rows {
			if row.Err != nil && !errors.Is(row.Err, tasks.ErrSkipped) {
				r.logger.Warn("row not imported", "row", row.Row, "name", row.Fields.Name, "error", row.Err)
			}
		}
		r.writePlainln("Created: %d  Invalid: %d  Failed: %d  Skipped: %d",
			result.Created, result.Invalid, result.Failed, result.Skipped)
	}

	if runErr != nil {
		return fmt.Errorf("import interrupted: %w", runErr)
	}
	return nil
}
