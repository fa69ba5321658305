package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/desertthunder/rolodex/internal/models"
)

// RequiredFieldsMessage is shown when a submitted form lacks a required field.
const RequiredFieldsMessage = "Name, email, and phone are required."

const (
	fieldName = iota
	fieldEmail
	fieldPhone
	fieldWebsite
	fieldCompany
	fieldAddress
	fieldCount
)

var fieldLabels = [fieldCount]string{"Name*", "Email*", "Phone*", "Website", "Company", "Address"}

// formModel holds the add/edit form. editing is nil when adding.
type formModel struct {
	inputs  []textinput.Model
	focus   int
	editing *models.Contact
	saving  bool
	err     string
}

func newForm(c *models.Contact) formModel {
	f := formModel{inputs: make([]textinput.Model, fieldCount), editing: c}
	for i := range f.inputs {
		in := textinput.New()
		in.Prompt = ""
		in.CharLimit = 0 // pre-filled values must round-trip untruncated
		in.Placeholder = strings.TrimSuffix(fieldLabels[i], "*")
		f.inputs[i] = in
	}

	if c != nil {
		f.inputs[fieldName].SetValue(c.Name)
		f.inputs[fieldEmail].SetValue(c.Email)
		f.inputs[fieldPhone].SetValue(c.Phone)
		f.inputs[fieldWebsite].SetValue(models.Deref(c.Website, ""))
		f.inputs[fieldCompany].SetValue(models.Deref(c.Company, ""))
		f.inputs[fieldAddress].SetValue(models.Deref(c.Address, ""))
	}

	f.inputs[fieldName].Focus()
	return f
}

func (f *formModel) value(i int) string {
	return strings.TrimSpace(f.inputs[i].Value())
}

// fields returns the submitted values. Empty optional fields are nil.
func (f *formModel) fields() models.ContactFields {
	return models.ContactFields{
		Name:    f.value(fieldName),
		Email:   f.value(fieldEmail),
		Phone:   f.value(fieldPhone),
		Website: models.OptionalString(f.value(fieldWebsite)),
		Company: models.OptionalString(f.value(fieldCompany)),
		Address: models.OptionalString(f.value(fieldAddress)),
	}
}

// patch returns only the fields that differ from the contact being edited.
// Clearing an optional field sends an empty string.
func (f *formModel) patch() models.ContactPatch {
	var p models.ContactPatch
	if f.editing == nil {
		return p
	}
	c := f.editing

	changed := func(i int, old string) *string {
		if v := f.value(i); v != old {
			return models.StringPtr(v)
		}
		return nil
	}
	p.Name = changed(fieldName, c.Name)
	p.Email = changed(fieldEmail, c.Email)
	p.Phone = changed(fieldPhone, c.Phone)
	p.Website = changed(fieldWebsite, models.Deref(c.Website, ""))
	p.Company = changed(fieldCompany, models.Deref(c.Company, ""))
	p.Address = changed(fieldAddress, models.Deref(c.Address, ""))
	return p
}

func (f *formModel) setFocus(i int) tea.Cmd {
	f.focus = (i + fieldCount) % fieldCount
	for j := range f.inputs {
		f.inputs[j].Blur()
	}
	return f.inputs[f.focus].Focus()
}

func (f *formModel) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}
