package models

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/desertthunder/rolodex/internal/shared"
)

// Contact is a person's identity and contact details.
type Contact struct {
	ID      int64   `json:"id" yaml:"id"`
	Name    string  `json:"name" yaml:"name"`
	Email   string  `json:"email" yaml:"email"`
	Phone   string  `json:"phone" yaml:"phone"`
	Website *string `json:"website,omitempty" yaml:"website,omitempty"`
	Company *string `json:"company,omitempty" yaml:"company,omitempty"`
	Address *string `json:"address,omitempty" yaml:"address,omitempty"`
}

// ContactFields holds the fields submitted when creating a contact.
type ContactFields struct {
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Phone   string  `json:"phone"`
	Website *string `json:"website,omitempty"`
	Company *string `json:"company,omitempty"`
	Address *string `json:"address,omitempty"`
}

// Validate reports which required fields are empty.
func (f ContactFields) Validate() error {
	var missing []string
	if strings.TrimSpace(f.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(f.Email) == "" {
		missing = append(missing, "email")
	}
	if strings.TrimSpace(f.Phone) == "" {
		missing = append(missing, "phone")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s required", shared.ErrInvalidInput, strings.Join(missing, ", "))
	}
	return nil
}

// Contact builds the [Contact] these fields describe under the given id.
func (f ContactFields) Contact(id int64) Contact {
	return Contact{
		ID:      id,
		Name:    f.Name,
		Email:   f.Email,
		Phone:   f.Phone,
		Website: f.Website,
		Company: f.Company,
		Address: f.Address,
	}
}

// Fields returns the editable fields of c, e.g. to pre-fill a form.
func (c Contact) Fields() ContactFields {
	return ContactFields{
		Name:    c.Name,
		Email:   c.Email,
		Phone:   c.Phone,
		Website: c.Website,
		Company: c.Company,
		Address: c.Address,
	}
}

// ContactPatch is a partial update. Nil fields are left unchanged.
type ContactPatch struct {
	Name    *string `json:"name,omitempty"`
	Email   *string `json:"email,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Website *string `json:"website,omitempty"`
	Company *string `json:"company,omitempty"`
	Address *string `json:"address,omitempty"`
}

// IsEmpty reports whether the patch changes nothing.
func (p ContactPatch) IsEmpty() bool {
	return p.Name == nil && p.Email == nil && p.Phone == nil &&
		p.Website == nil && p.Company == nil && p.Address == nil
}

// Apply returns c with every set field of p merged in.
func (p ContactPatch) Apply(c Contact) Contact {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Email != nil {
		c.Email = *p.Email
	}
	if p.Phone != nil {
		c.Phone = *p.Phone
	}
	if p.Website != nil {
		c.Website = StringPtr(*p.Website)
	}
	if p.Company != nil {
		c.Company = StringPtr(*p.Company)
	}
	if p.Address != nil {
		c.Address = StringPtr(*p.Address)
	}
	return c
}

// PatchFrom returns a patch that sets every field of f, as the edit form submits it.
func PatchFrom(f ContactFields) ContactPatch {
	return ContactPatch{
		Name:    StringPtr(f.Name),
		Email:   StringPtr(f.Email),
		Phone:   StringPtr(f.Phone),
		Website: f.Website,
		Company: f.Company,
		Address: f.Address,
	}
}

// FilterByName returns the contacts whose name contains query, ignoring case.
// An empty query matches everything.
func FilterByName(contacts []Contact, query string) []Contact {
	q := strings.ToLower(query)
	out := make([]Contact, 0, len(contacts))
	for _, c := range contacts {
		if strings.Contains(strings.ToLower(c.Name), q) {
			out = append(out, c)
		}
	}
	return out
}

// FindByID returns the first contact with the given id.
func FindByID(contacts []Contact, id int64) (Contact, bool) {
	for _, c := range contacts {
		if c.ID == id {
			return c, true
		}
	}
	return Contact{}, false
}

// Initial returns the upper-cased first letter of the name, used as an avatar.
func (c Contact) Initial() string {
	r, size := utf8.DecodeRuneInString(c.Name)
	if size == 0 {
		return "?"
	}
	return strings.ToUpper(string(r))
}

// StringPtr returns a pointer to a copy of s.
func StringPtr(s string) *string {
	return &s
}

// Deref returns *s, or fallback when s is nil or empty.
func Deref(s *string, fallback string) string {
	if s == nil || *s == "" {
		return fallback
	}
	return *s
}

// OptionalString returns nil for an empty string, otherwise a pointer to s.
func OptionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
