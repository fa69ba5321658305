package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/desertthunder/rolodex/internal/models"
)

// NormalizeUser maps a [RemoteUser] onto the local [models.Contact] shape.
//
// The company object collapses to its name and the address object to "<street>, <city> <zipcode>".
// Absent objects and an absent website map to nil.
func NormalizeUser(u RemoteUser) models.Contact {
	c := models.Contact{
		ID:      u.ID,
		Name:    u.Name,
		Email:   u.Email,
		Phone:   u.Phone,
		Website: u.Website,
	}

	if u.Company != nil && u.Company.Name != nil {
		c.Company = models.StringPtr(*u.Company.Name)
	}

	if u.Address != nil {
		c.Address = models.StringPtr(FormatAddress(*u.Address))
	}

	return c
}

// FormatAddress renders an address as "<street>, <city> <zipcode>".
//
// Empty parts are dropped rather than leaving stray separators.
func FormatAddress(a RemoteAddress) string {
	tail := strings.TrimSpace(a.City + " " + a.Zipcode)
	switch {
	case a.Street == "":
		return tail
	case tail == "":
		return a.Street
	default:
		return a.Street + ", " + tail
	}
}

// ParseAddress is the inverse of [FormatAddress] for addresses written by hand,
// e.g. "123 Main St, Springfield 49007".
func ParseAddress(s string) RemoteAddress {
	street, rest, ok := strings.Cut(s, ", ")
	if !ok {
		return RemoteAddress{Street: strings.TrimSpace(s)}
	}

	a := RemoteAddress{Street: strings.TrimSpace(street)}
	rest = strings.TrimSpace(rest)
	if i := strings.LastIndex(rest, " "); i >= 0 {
		a.City, a.Zipcode = rest[:i], rest[i+1:]
	} else {
		a.City = rest
	}
	return a
}

// NormalizeUsers decodes a list response body.
//
// A well-formed body that is not a JSON array yields an empty list; malformed JSON is an error.
func NormalizeUsers(body []byte) ([]models.Contact, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return []models.Contact{}, nil
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("failed to decode response: invalid JSON")
	}
	if body[0] != '[' {
		return []models.Contact{}, nil
	}

	var users []RemoteUser
	if err := json.Unmarshal(body, &users); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	contacts := make([]models.Contact, len(users))
	for i, u := range users {
		contacts[i] = NormalizeUser(u)
	}
	return contacts, nil
}

// DenormalizeFields converts submitted contact fields into the remote shape, as the mock API stores them.
func DenormalizeFields(id int64, f models.ContactFields) RemoteUser {
	u := RemoteUser{ID: id, Name: f.Name, Email: f.Email, Phone: f.Phone, Website: f.Website}
	if f.Company != nil {
		u.Company = &RemoteCompany{Name: models.StringPtr(*f.Company)}
	}
	if f.Address != nil {
		a := ParseAddress(*f.Address)
		u.Address = &a
	}
	return u
}

// ApplyPatch merges a partial update into a remote user.
func ApplyPatch(u RemoteUser, p models.ContactPatch) RemoteUser {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Phone != nil {
		u.Phone = *p.Phone
	}
	if p.Website != nil {
		u.Website = models.StringPtr(*p.Website)
	}
	if p.Company != nil {
		var c RemoteCompany
		if u.Company != nil {
			c = *u.Company
		}
		c.Name = models.StringPtr(*p.Company)
		u.Company = &c
	}
	if p.Address != nil {
		a := ParseAddress(*p.Address)
		u.Address = &a
	}
	return u
}
