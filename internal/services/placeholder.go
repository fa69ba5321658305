// JSONPlaceholder [ContactService] implementation
//
// Talks to a /users resource with the JSONPlaceholder schema. The public instance accepts writes
// but does not persist them, which is fine for the store: it never re-fetches after a mutation.
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/desertthunder/rolodex/internal/models"
	"github.com/desertthunder/rolodex/internal/shared"
)

const usersPath = "/users"

// StatusError is returned when the remote answers with a non-success status.
type StatusError struct {
	Op         string // fetch, create, update or delete
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s failed: status %d", e.Op, e.StatusCode)
}

// Is makes every [StatusError] match [shared.ErrAPIRequest], and 5xx statuses also match
// [shared.ErrServiceUnavailable].
func (e *StatusError) Is(target error) bool {
	switch target {
	case shared.ErrAPIRequest:
		return true
	case shared.ErrServiceUnavailable:
		return e.StatusCode >= http.StatusInternalServerError
	}
	return false
}

// PlaceholderService implements [ContactService] over a JSONPlaceholder-style API.
type PlaceholderService struct {
	api *APIService
}

var _ ContactService = (*PlaceholderService)(nil)

// NewPlaceholderService creates a contacts client on top of api.
func NewPlaceholderService(api *APIService) *PlaceholderService {
	if api == nil {
		api = NewAPIService("", nil)
	}
	return &PlaceholderService{api: api}
}

// Name returns the service name.
func (p *PlaceholderService) Name() string {
	return "JSONPlaceholder"
}

// ListContacts retrieves and normalizes every user.
//
// Calls GET /users.
func (p *PlaceholderService) ListContacts(ctx context.Context) ([]models.Contact, error) {
	resp, err := p.api.Get(ctx, usersPath)
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, &StatusError{Op: "fetch", StatusCode: resp.StatusCode}
	}

	return NormalizeUsers(resp.Body)
}

// CreateContact sends the submitted fields and returns the id the remote assigned, if any.
//
// Calls POST /users.
func (p *PlaceholderService) CreateContact(ctx context.Context, fields models.ContactFields) (*int64, error) {
	data, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal contact: %w", err)
	}

	resp, err := p.api.Post(ctx, usersPath, data)
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, &StatusError{Op: "create", StatusCode: resp.StatusCode}
	}

	return decodeCreatedID(resp.Body)
}

// UpdateContact sends a partial update.
//
// Calls PATCH /users/{id}.
func (p *PlaceholderService) UpdateContact(ctx context.Context, id int64, patch models.ContactPatch) error {
	data, err := json.Marshal(patch)
	if err != nil {
		return fmt.Errorf("failed to marshal patch: %w", err)
	}

	resp, err := p.api.Patch(ctx, userPath(id), data)
	if err != nil {
		return err
	}
	if !resp.OK() {
		return &StatusError{Op: "update", StatusCode: resp.StatusCode}
	}
	return nil
}

// DeleteContact deletes a user.
//
// Calls DELETE /users/{id}.
func (p *PlaceholderService) DeleteContact(ctx context.Context, id int64) error {
	resp, err := p.api.Delete(ctx, userPath(id))
	if err != nil {
		return err
	}
	if !deleteAccepted(resp.StatusCode) {
		return &StatusError{Op: "delete", StatusCode: resp.StatusCode}
	}
	return nil
}

// deleteAccepted treats any 2xx as success; the placeholder API answers 200, others 204.
func deleteAccepted(status int) bool {
	return status >= http.StatusOK && status < http.StatusMultipleChoices
}

func userPath(id int64) string {
	return fmt.Sprintf("%s/%d", usersPath, id)
}

// decodeCreatedID reads the id from a create response.
//
// An empty body, a missing or null id, or an id that is not an integer yields nil; malformed JSON is an error.
func decodeCreatedID(body []byte) (*int64, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil, nil
	}

	var created struct {
		ID *int64 `json:"id"`
	}
	if err := json.Unmarshal(body, &created); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to decode create response: %w", err)
	}

	return created.ID, nil
}
