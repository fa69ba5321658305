package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/rolodex/internal/formatter"
	"github.com/desertthunder/rolodex/internal/tasks"
)

// ContactsExport writes the contact list in several formats plus a manifest.
func (r *Runner) ContactsExport(ctx context.Context, cmd *cli.Command) error {
	var formats []formatter.Format
	for _, name := range cmd.StringSlice("format") {
		f, err := formatter.ParseFormat(name)
		if err != nil {
			return err
		}
		formats = append(formats, f)
	}

	s, closeFn, err := r.loadedStore(ctx)
	if err != nil {
		return err
	}
	defer closeFn()

	contacts := s.Search(cmd.String("search"))

	progress := make(chan tasks.ProgressUpdate, len(formats)+2)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progress {
			r.writePlain("%s\n", update.Message)
		}
	}()

	result, err := tasks.BulkExport(ctx, progress, contacts, tasks.BulkExportOpts{
		Formats:   formats,
		OutputDir: cmd.String("output"),
		BaseName:  cmd.String("name"),
	})
	close(progress)
	<-done

	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	r.logger.Info("export complete", "dir", result.OutputDirectory, "contacts", result.ContactCount)
	r.writePlainln("Exported %d contacts (%d ok, %d failed)", result.ContactCount, result.SuccessCount, result.FailedCount)
	r.writePlain("Manifest: %s\n", result.ManifestFile)

	if cmd.Bool("json") {
		return r.writeJSON(result, true)
	}
	return nil
}
