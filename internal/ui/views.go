package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/desertthunder/rolodex/internal/models"
)

func (m *Model) renderStatus() string {
	if m.status == "" {
		return ""
	}
	if m.statusErr {
		return "\n" + styles.err.Render(m.status)
	}
	return "\n" + styles.ok.Render(m.status)
}

func (m *Model) renderList() string {
	var b strings.Builder
	b.WriteString(styles.title.Render("Contacts"))
	b.WriteString("\n")
	b.WriteString(m.search.View())
	b.WriteString("\n\n")

	switch {
	case m.loading:
		fmt.Fprintf(&b, "%s Loading contacts...", m.spinner.View())
	case len(m.visible) == 0:
		b.WriteString(styles.help.Render("No contacts found"))
	default:
		b.WriteString(m.list.View())
	}

	b.WriteString(m.renderStatus())

	helpKeys := []key.Binding{m.keys.enter, m.keys.search, m.keys.add, m.keys.reload, m.keys.quit}
	if m.search.Focused() {
		helpKeys = []key.Binding{m.keys.back}
	}
	fmt.Fprintf(&b, "\n\n%s", m.help.ShortHelpView(helpKeys))
	return b.String()
}

func (m *Model) renderDetail() string {
	c, ok := m.selected()
	if !ok {
		helpView := m.help.ShortHelpView([]key.Binding{m.keys.back, m.keys.quit})
		return fmt.Sprintf("%s\n\n%s", styles.warn.Render("Contact not found."), helpView)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", styles.avatar.Render(c.Initial()), styles.title.Render(c.Name))

	row := func(label, value string) {
		fmt.Fprintf(&b, "%s %s\n", styles.label.Render(label), value)
	}
	row("Email", c.Email)
	row("Phone", c.Phone)
	row("Website", models.Deref(c.Website, "N/A"))
	row("Address", models.Deref(c.Address, "N/A"))
	row("Company", models.Deref(c.Company, "No Company"))

	b.WriteString(m.renderStatus())

	helpKeys := []key.Binding{m.keys.edit, m.keys.del, m.keys.back, m.keys.quit}
	if c.Website != nil {
		helpKeys = append([]key.Binding{m.keys.open}, helpKeys...)
	}
	fmt.Fprintf(&b, "\n\n%s", m.help.ShortHelpView(helpKeys))
	return b.String()
}

func (m *Model) renderConfirm() string {
	c, _ := m.selected()
	title := styles.title.Render(fmt.Sprintf("Delete %s?", c.Name))

	if m.deleting {
		return fmt.Sprintf("%s\n%s Deleting...", title, m.spinner.View())
	}

	helpView := m.help.ShortHelpView([]key.Binding{m.keys.yes, m.keys.no})
	return fmt.Sprintf("%s\nThis cannot be undone.\n\n%s", title, helpView)
}

func (m *Model) renderForm() string {
	var b strings.Builder

	title := "New Contact"
	if m.form.editing != nil {
		title = "Edit Contact"
	}
	b.WriteString(styles.title.Render(title))
	b.WriteString("\n")

	for i, in := range m.form.inputs {
		label := styles.label.Render(fieldLabels[i])
		if i == m.form.focus {
			label = styles.ok.Width(10).Render(fieldLabels[i])
		}
		fmt.Fprintf(&b, "%s %s\n", label, in.View())
	}

	switch {
	case m.form.saving:
		b.WriteString("\n" + styles.warn.Render("Saving..."))
	case m.loading:
		b.WriteString("\n" + styles.warn.Render("Waiting for contacts to load..."))
	case m.form.err != "":
		b.WriteString("\n" + styles.err.Render(m.form.err))
	}

	helpView := m.help.ShortHelpView([]key.Binding{m.keys.next, m.keys.prev, m.keys.save, m.keys.back})
	fmt.Fprintf(&b, "\n\n%s", helpView)
	return b.String()
}
