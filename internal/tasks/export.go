package tasks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/desertthunder/rolodex/internal/formatter"
	"github.com/desertthunder/rolodex/internal/models"
	"github.com/desertthunder/rolodex/internal/shared"
)

// BulkExportOpts contains configuration for bulk contact exports.
type BulkExportOpts struct {
	Formats   []formatter.Format // Formats to write (default: csv, json)
	OutputDir string             // Output directory (default: contacts_export_{epoch})
	BaseName  string             // File name without extension (default: contacts)
}

// FormatExportResult is the outcome of writing one format.
type FormatExportResult struct {
	Format  formatter.Format `json:"format"`
	Path    string           `json:"path,omitempty"`
	Success bool             `json:"success"`
	Error   string           `json:"error,omitempty"`
}

// BulkExportResult contains the outcome of [BulkExport].
type BulkExportResult struct {
	OutputDirectory string               `json:"output_directory"`
	ManifestFile    string               `json:"manifest_file"`
	ExportedAt      time.Time            `json:"exported_at"`
	ContactCount    int                  `json:"contact_count"`
	SuccessCount    int                  `json:"success_count"`
	FailedCount     int                  `json:"failed_count"`
	Results         []FormatExportResult `json:"results"`
}

var extensions = map[formatter.Format]string{
	formatter.FormatTable:    ".table.txt",
	formatter.FormatCSV:      ".csv",
	formatter.FormatMarkdown: ".md",
	formatter.FormatText:     ".txt",
	formatter.FormatJSON:     ".json",
	formatter.FormatYAML:     ".yaml",
}

// BulkExport writes contacts once per format, concurrently, and records a manifest.json in the output directory.
//
// A failed format does not stop the others.
func BulkExport(ctx context.Context, progress chan<- ProgressUpdate, contacts []models.Contact, opts BulkExportOpts) (*BulkExportResult, error) {
	if len(opts.Formats) == 0 {
		opts.Formats = []formatter.Format{formatter.FormatCSV, formatter.FormatJSON}
	}
	if opts.OutputDir == "" {
		opts.OutputDir = fmt.Sprintf("contacts_export_%d", time.Now().Unix())
	}
	if opts.BaseName == "" {
		opts.BaseName = "contacts"
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	formats := make([]formatter.Format, 0, len(opts.Formats))
	for _, f := range opts.Formats {
		if !slices.Contains(formats, f) {
			formats = append(formats, f)
		}
	}
	result := &BulkExportResult{
		OutputDirectory: opts.OutputDir,
		ExportedAt:      time.Now().UTC(),
		ContactCount:    len(contacts),
		Results:         make([]FormatExportResult, len(formats)),
	}

	var (
		mu        sync.Mutex
		completed int
	)
	g, gctx := errgroup.WithContext(ctx)
	for i, format := range formats {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			res := FormatExportResult{Format: format}
			path := filepath.Join(opts.OutputDir, opts.BaseName+extensions[format])
			writeErr := formatter.WriteExport(contacts, format, path)
			if writeErr != nil {
				res.Error = writeErr.Error()
			} else {
				res.Path = path
				res.Success = true
			}

			mu.Lock()
			defer mu.Unlock()
			completed++
			result.Results[i] = res
			if res.Success {
				result.SuccessCount++
				sendProgress(progress, exportCompletedUpdate(completed, len(formats), path))
			} else {
				result.FailedCount++
				sendProgress(progress, exportFailedUpdate(completed, len(formats), string(format), writeErr))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return result, err
	}

	result.ManifestFile = filepath.Join(opts.OutputDir, "manifest.json")
	manifest, err := shared.MarshalJSON(result, true)
	if err != nil {
		return result, fmt.Errorf("failed to marshal manifest: %w", err)
	}
	if err := os.WriteFile(result.ManifestFile, manifest, 0644); err != nil {
		return result, fmt.Errorf("failed to write manifest: %w", err)
	}

	return result, nil
}
