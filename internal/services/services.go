// package services defines interface ContactService for the remote contacts resource
//
// JSONPlaceholder-compatible /users APIs
package services

import (
	"context"

	"github.com/desertthunder/rolodex/internal/models"
)

// ContactService defines the remote resource the contact store proxies its CRUD calls to.
type ContactService interface {
	// ListContacts fetches every contact and normalizes it into [models.Contact].
	ListContacts(ctx context.Context) ([]models.Contact, error)

	// CreateContact sends a creation request.
	// Returns the id assigned by the remote, or nil when the response carries none.
	CreateContact(ctx context.Context, fields models.ContactFields) (*int64, error)

	// UpdateContact sends a partial update for id.
	UpdateContact(ctx context.Context, id int64, patch models.ContactPatch) error

	// DeleteContact sends a delete request for id.
	DeleteContact(ctx context.Context, id int64) error

	// Name returns the name of the service (e.g., "JSONPlaceholder")
	Name() string
}

// RemoteUser is the list-item shape served by the remote /users resource.
type RemoteUser struct {
	ID       int64          `json:"id"`
	Name     string         `json:"name"`
	Username string         `json:"username,omitempty"`
	Email    string         `json:"email"`
	Phone    string         `json:"phone"`
	Website  *string        `json:"website,omitempty"`
	Company  *RemoteCompany `json:"company,omitempty"`
	Address  *RemoteAddress `json:"address,omitempty"`
}

// RemoteCompany is the nested company object of a [RemoteUser].
type RemoteCompany struct {
	Name        *string `json:"name,omitempty"`
	CatchPhrase string  `json:"catchPhrase,omitempty"`
	BS          string  `json:"bs,omitempty"`
}

// RemoteAddress is the nested address object of a [RemoteUser].
type RemoteAddress struct {
	Street  string     `json:"street"`
	Suite   string     `json:"suite,omitempty"`
	City    string     `json:"city"`
	Zipcode string     `json:"zipcode"`
	Geo     *RemoteGeo `json:"geo,omitempty"`
}

// RemoteGeo holds coordinates as the placeholder API serves them (strings).
type RemoteGeo struct {
	Lat string `json:"lat"`
	Lng string `json:"lng"`
}
