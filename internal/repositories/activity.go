package repositories

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/desertthunder/rolodex/internal/models"
	"github.com/desertthunder/rolodex/internal/shared"
)

// DefaultListLimit caps [ActivityRepository.List] when no limit is given.
const DefaultListLimit = 50

// ActivityRepository persists [models.Activity] rows.
type ActivityRepository struct {
	db *sql.DB
}

// NewActivityRepository creates a new [ActivityRepository] with the given database connection
func NewActivityRepository(db *sql.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

// Create inserts an activity, generating its ID and timestamp when unset
func (r *ActivityRepository) Create(a *models.Activity) error {
	if a.ID == "" {
		a.ID = shared.GenerateID()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}

	if err := a.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO activity (id, op, contact_id, success, message, created_at) VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query, a.ID, a.Op, a.ContactID, a.Success, a.Message, a.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert activity: %w", err)
	}

	return nil
}

// Get retrieves an activity by ID
func (r *ActivityRepository) Get(id string) (*models.Activity, error) {
	query := `
		SELECT id, op, contact_id, success, message, created_at
		FROM activity
		WHERE id = ?
	`

	a, err := scanActivity(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("activity not found: %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query activity: %w", err)
	}

	return a, nil
}

// List returns activity newest first.
//
// A non-nil contactID restricts results to that contact. A limit of zero or less uses [DefaultListLimit].
func (r *ActivityRepository) List(contactID *int64, limit int) ([]*models.Activity, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	var (
		where []string
		args  []any
	)
	if contactID != nil {
		where = append(where, "contact_id = ?")
		args = append(args, *contactID)
	}

	query := "SELECT id, op, contact_id, success, message, created_at FROM activity"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC, rowid DESC LIMIT ?"
	args = append(args, limit)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query activity: %w", err)
	}
	defer rows.Close()

	activities := []*models.Activity{}
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		activities = append(activities, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating activity: %w", err)
	}

	return activities, nil
}

// Count returns the number of journal entries
func (r *ActivityRepository) Count() (int, error) {
	var n int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM activity").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count activity: %w", err)
	}
	return n, nil
}

// Prune deletes entries created before cutoff and returns how many were removed
func (r *ActivityRepository) Prune(cutoff time.Time) (int64, error) {
	result, err := r.db.Exec("DELETE FROM activity WHERE created_at < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to prune activity: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get affected rows: %w", err)
	}
	return rows, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanActivity(s scanner) (*models.Activity, error) {
	var a models.Activity
	if err := s.Scan(&a.ID, &a.Op, &a.ContactID, &a.Success, &a.Message, &a.CreatedAt); err != nil {
		return nil, err
	}
	return &a, nil
}
