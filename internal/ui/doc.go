// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a multi-view workflow over the contact store:
//  1. [ListView] : Browse contacts, filter by name, spinner during the initial fetch
//  2. [DetailView] : One contact's fields, with edit, delete and open-website actions
//  3. [ConfirmView] : Confirm a delete
//  4. [FormView] : Add or edit a contact
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern. Store calls run inside
// commands and report back through typed messages; after each, the model re-reads a [store.Snapshot].
// Failures are shown in a status line rather than ending the program.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, y/n, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
