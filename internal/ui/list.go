package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"

	"github.com/desertthunder/rolodex/internal/models"
)

var _ list.Item = contactItem{}

// contactItem wraps [models.Contact] to implement [list.Item].
type contactItem struct {
	contact models.Contact
}

func (i contactItem) FilterValue() string { return i.contact.Name }
func (i contactItem) Title() string {
	return fmt.Sprintf("%s  %s", styles.avatar.Render(i.contact.Initial()), i.contact.Name)
}
func (i contactItem) Description() string {
	desc := i.contact.Email
	if i.contact.Company != nil && *i.contact.Company != "" {
		desc = fmt.Sprintf("%s • %s", desc, *i.contact.Company)
	}
	return desc
}

func contactItems(contacts []models.Contact) []list.Item {
	items := make([]list.Item, len(contacts))
	for i, c := range contacts {
		items[i] = contactItem{contact: c}
	}
	return items
}

func newContactList() list.Model {
	l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	return l
}
