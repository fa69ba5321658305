// Package models defines the domain entities for rolodex.
//
// [Contact] is the only entity held by the contact store. Its optional fields are pointers so that
// "absent" and "empty" stay distinguishable all the way from the remote payload to the UI.
//
// Inputs to the store are expressed as explicit records:
//   - [ContactFields] : fields submitted when creating a contact
//   - [ContactPatch] : partial changes applied by an update, nil fields are left untouched
//
// [Activity] is a journal entry written for each mutation attempt and persisted by the repositories package.
package models
