// Package repositories implements SQLite persistence for the activity journal.
//
// Key Implementations:
//   - [ActivityRepository] : append-only log of contact mutation attempts
//   - [ActivityRecorder] : adapts the repository to the store's Recorder hook
//
// The schema is owned by the embedded migrations in package shared; open the database with
// [shared.OpenJournal] so they are applied before use.
package repositories
