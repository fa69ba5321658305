package ui

import (
	"github.com/desertthunder/rolodex/internal/models"
)

// contactsLoadedMsg reports the end of [ContactStore.Load]; err is nil when it was cancelled.
type contactsLoadedMsg struct {
	err error
}

// contactSavedMsg reports the end of an add or an edit.
type contactSavedMsg struct {
	contact models.Contact
	edited  bool
	err     error
}

// contactDeletedMsg reports the end of a delete.
type contactDeletedMsg struct {
	id  int64
	err error
}

// websiteOpenedMsg reports the outcome of launching the browser.
type websiteOpenedMsg struct {
	err error
}
