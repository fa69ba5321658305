// Package tasks runs bulk contact operations with real-time progress reporting.
//
// # Core Operations
//
//  1. [Importer.Run] : bulk create
//     - Validates every row up front; invalid rows are reported, never sent
//     - Creates valid rows through a [Creator] (the contact store) with a bounded worker pool
//     - Optionally paces requests with a rate limiter
//     - Returns per-row outcomes in input order
//
//  2. [BulkExport] : write the contact list in several formats at once
//     - One file per format plus a manifest.json summarizing the run
//
// # Progress Reporting
//
// All operations use non-blocking channels for progress updates.
//
// The [ProgressUpdate] struct contains phase, step counters, messages, and optional data for advanced UI rendering.
// Updates use select with default to prevent blocking.
package tasks
