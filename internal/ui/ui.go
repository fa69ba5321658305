package ui

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/desertthunder/rolodex/internal/models"
	"github.com/desertthunder/rolodex/internal/shared"
	"github.com/desertthunder/rolodex/internal/store"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	ListView ViewState = iota
	DetailView
	ConfirmView
	FormView
)

// ContactStore is the part of [store.Store] the TUI drives.
type ContactStore interface {
	Load(ctx context.Context) error
	Add(ctx context.Context, fields models.ContactFields) (models.Contact, error)
	Update(ctx context.Context, id int64, patch models.ContactPatch) error
	Delete(ctx context.Context, id int64) error
	Snapshot() store.Snapshot
}

// Model represents the TUI application state.
type Model struct {
	ctx        context.Context
	store      ContactStore
	logger     *log.Logger
	openURL    func(string) error
	view       ViewState
	width      int
	height     int
	contacts   []models.Contact
	visible    []models.Contact
	loading    bool
	list       list.Model
	search     textinput.Model
	spinner    spinner.Model
	selectedID int64
	deleting   bool
	form       formModel
	status     string
	statusErr  bool
	help       help.Model
	keys       keyMap
}

// NewModel creates a new TUI model over s. The initial fetch starts in [Model.Init].
func NewModel(ctx context.Context, s ContactStore, logger *log.Logger) *Model {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "Search by name"

	return &Model{
		ctx:     ctx,
		store:   s,
		logger:  logger,
		openURL: shared.OpenBrowser,
		view:    ListView,
		loading: true,
		list:    newContactList(),
		search:  search,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(styles.warn)),
		help:    help.New(),
		keys:    newKeyMap(),
	}
}

// Init starts the spinner and the initial fetch.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.load())
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width-4, msg.Height-8)
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch m.view {
		case ListView:
			return m.handleListKeys(msg)
		case DetailView:
			return m.handleDetailKeys(msg)
		case ConfirmView:
			return m.handleConfirmKeys(msg)
		case FormView:
			return m.handleFormKeys(msg)
		}

	case contactsLoadedMsg:
		m.refresh()
		if msg.err != nil {
			m.setError(msg.err)
		}
		return m, nil

	case contactSavedMsg:
		m.form.saving = false
		if msg.err != nil {
			m.form.err = errorText(msg.err)
			return m, nil
		}
		m.refresh()
		if msg.edited {
			m.setStatus(fmt.Sprintf("Updated %s", msg.contact.Name))
			m.view = DetailView
		} else {
			m.setStatus(fmt.Sprintf("Added %s", msg.contact.Name))
			m.view = ListView
		}
		return m, nil

	case contactDeletedMsg:
		m.deleting = false
		if msg.err != nil {
			m.setError(msg.err)
			m.view = DetailView
			return m, nil
		}
		m.refresh()
		m.setStatus("Contact deleted")
		m.view = ListView
		return m, nil

	case websiteOpenedMsg:
		if msg.err != nil {
			m.setError(msg.err)
		}
		return m, nil
	}

	return m.updateComponents(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	switch m.view {
	case ListView:
		return m.renderList()
	case DetailView:
		return m.renderDetail()
	case ConfirmView:
		return m.renderConfirm()
	case FormView:
		return m.renderForm()
	default:
		return ""
	}
}

func (m *Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.search.Focused() {
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc", "enter":
			m.search.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		m.applyFilter()
		return m, cmd
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "/":
		m.status = ""
		return m, m.search.Focus()
	case "esc":
		if m.search.Value() != "" {
			m.search.SetValue("")
			m.applyFilter()
		}
		return m, nil
	case "a":
		return m, m.openForm(nil)
	case "r":
		if m.loading {
			return m, nil
		}
		m.loading = true
		return m, tea.Batch(m.spinner.Tick, m.load())
	case "enter":
		if item, ok := m.list.SelectedItem().(contactItem); ok {
			m.selectedID = item.contact.ID
			m.status = ""
			m.view = DetailView
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	c, found := m.selected()

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.status = ""
		m.view = ListView
	case "e":
		if found {
			return m, m.openForm(&c)
		}
	case "d":
		if found {
			m.status = ""
			m.view = ConfirmView
		}
	case "o":
		if found && c.Website != nil {
			return m, m.openWebsite(*c.Website)
		}
	}
	return m, nil
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.deleting {
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "n", "esc":
		m.view = DetailView
	case "y":
		m.deleting = true
		return m, m.delete(m.selectedID)
	}
	return m, nil
}

func (m *Model) handleFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		if m.form.saving {
			return m, nil
		}
		if m.form.editing != nil {
			m.view = DetailView
		} else {
			m.view = ListView
		}
		return m, nil
	case "tab", "down":
		return m, m.form.setFocus(m.form.focus + 1)
	case "shift+tab", "up":
		return m, m.form.setFocus(m.form.focus - 1)
	case "ctrl+s":
		return m, m.submit()
	case "enter":
		if m.form.focus == fieldCount-1 {
			return m, m.submit()
		}
		return m, m.form.setFocus(m.form.focus + 1)
	}

	return m, m.form.update(msg)
}

func (m *Model) updateComponents(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case ListView:
		if m.search.Focused() {
			m.search, cmd = m.search.Update(msg)
			return m, cmd
		}
		m.list, cmd = m.list.Update(msg)
	case FormView:
		cmd = m.form.update(msg)
	}
	return m, cmd
}

func (m *Model) openForm(c *models.Contact) tea.Cmd {
	m.form = newForm(c)
	m.status = ""
	m.view = FormView
	return textinput.Blink
}

// submit validates the form and starts the save. It does nothing while a save or the initial load is in flight.
func (m *Model) submit() tea.Cmd {
	if m.form.saving || m.loading {
		return nil
	}

	fields := m.form.fields()
	if err := fields.Validate(); err != nil {
		m.form.err = RequiredFieldsMessage
		return nil
	}

	m.form.err = ""
	m.form.saving = true
	if m.form.editing != nil {
		return m.update(*m.form.editing, m.form.patch())
	}
	return m.add(fields)
}

// refresh re-reads the store and re-applies the search filter.
func (m *Model) refresh() {
	snap := m.store.Snapshot()
	m.contacts = snap.Contacts
	m.loading = snap.Loading
	m.applyFilter()
}

func (m *Model) applyFilter() {
	m.visible = models.FilterByName(m.contacts, m.search.Value())
	m.list.SetItems(contactItems(m.visible))
}

func (m *Model) selected() (models.Contact, bool) {
	return models.FindByID(m.contacts, m.selectedID)
}

func (m *Model) setStatus(s string) {
	m.status, m.statusErr = s, false
}

func (m *Model) setError(err error) {
	m.status, m.statusErr = errorText(err), true
	m.logger.Error("operation failed", "error", err)
}

// errorText prefers the store's user-facing message.
func errorText(err error) string {
	var opErr *store.OpError
	if errors.As(err, &opErr) {
		return opErr.Message()
	}
	return err.Error()
}

func (m *Model) load() tea.Cmd {
	ctx, s := m.ctx, m.store
	return func() tea.Msg {
		return contactsLoadedMsg{err: s.Load(ctx)}
	}
}

func (m *Model) add(fields models.ContactFields) tea.Cmd {
	ctx, s := m.ctx, m.store
	return func() tea.Msg {
		c, err := s.Add(ctx, fields)
		return contactSavedMsg{contact: c, err: err}
	}
}

func (m *Model) update(c models.Contact, patch models.ContactPatch) tea.Cmd {
	ctx, s := m.ctx, m.store
	return func() tea.Msg {
		if patch.IsEmpty() {
			return contactSavedMsg{contact: c, edited: true}
		}
		err := s.Update(ctx, c.ID, patch)
		return contactSavedMsg{contact: patch.Apply(c), edited: true, err: err}
	}
}

func (m *Model) delete(id int64) tea.Cmd {
	ctx, s := m.ctx, m.store
	return func() tea.Msg {
		return contactDeletedMsg{id: id, err: s.Delete(ctx, id)}
	}
}

func (m *Model) openWebsite(site string) tea.Cmd {
	open := m.openURL
	return func() tea.Msg {
		u, err := shared.WebsiteURL(site)
		if err != nil {
			return websiteOpenedMsg{err: err}
		}
		return websiteOpenedMsg{err: open(u)}
	}
}
