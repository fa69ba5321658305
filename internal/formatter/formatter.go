// package formatter renders contacts to various formats (table, CSV, Markdown, plain text, JSON, YAML)
// and parses CSV for bulk import
package formatter

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gopkg.in/yaml.v3"

	"github.com/desertthunder/rolodex/internal/models"
	"github.com/desertthunder/rolodex/internal/shared"
)

// Format names an export format.
type Format string

const (
	FormatTable    Format = "table"
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "markdown"
	FormatText     Format = "text"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
)

// Formats lists every supported format, in help-text order.
var Formats = []Format{FormatTable, FormatCSV, FormatMarkdown, FormatText, FormatJSON, FormatYAML}

// ParseFormat resolves a format name. "md", "txt" and "yml" are accepted as aliases.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "table":
		return FormatTable, nil
	case "csv":
		return FormatCSV, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "text", "txt":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("%w: unknown format %q", shared.ErrInvalidFlag, name)
}

// Export renders contacts in the given format.
func Export(contacts []models.Contact, format Format) ([]byte, error) {
	switch format {
	case FormatTable:
		return ExportToTable(contacts), nil
	case FormatCSV:
		return ExportToCSV(contacts)
	case FormatMarkdown:
		return ExportToMarkdown(contacts, "Contacts")
	case FormatText:
		return ExportToText(contacts)
	case FormatJSON:
		return ExportToJSON(contacts)
	case FormatYAML:
		return ExportToYAML(contacts)
	}
	return nil, fmt.Errorf("%w: unknown format %q", shared.ErrInvalidFlag, format)
}

// WriteExport renders contacts and writes them to path.
func WriteExport(contacts []models.Contact, format Format, path string) error {
	data, err := Export(contacts, format)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}
	return nil
}

// CSVHeaders are the columns written by [ExportToCSV] and understood by [ParseCSV].
var CSVHeaders = []string{"id", "name", "email", "phone", "website", "company", "address"}

// ExportToCSV converts contacts to CSV with a header row. Absent optional fields are empty cells.
func ExportToCSV(contacts []models.Contact) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(CSVHeaders); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, c := range contacts {
		record := []string{
			strconv.FormatInt(c.ID, 10),
			c.Name,
			c.Email,
			c.Phone,
			models.Deref(c.Website, ""),
			models.Deref(c.Company, ""),
			models.Deref(c.Address, ""),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown renders contacts as a Markdown document with one section per contact.
func ExportToMarkdown(contacts []models.Contact, title string) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "# %s\n\n", title)
	fmt.Fprintf(&buf, "**Contacts**: %d\n\n", len(contacts))

	for _, c := range contacts {
		fmt.Fprintf(&buf, "## %s\n\n", c.Name)
		fmt.Fprintf(&buf, "- **Email**: %s\n", c.Email)
		fmt.Fprintf(&buf, "- **Phone**: %s\n", c.Phone)
		if c.Website != nil && *c.Website != "" {
			fmt.Fprintf(&buf, "- **Website**: [%s](%s)\n", *c.Website, websiteLink(*c.Website))
		}
		fmt.Fprintf(&buf, "- **Company**: %s\n", models.Deref(c.Company, "No Company"))
		fmt.Fprintf(&buf, "- **Address**: %s\n\n", models.Deref(c.Address, "N/A"))
	}

	return buf.Bytes(), nil
}

func websiteLink(site string) string {
	if u, err := shared.WebsiteURL(site); err == nil {
		return u
	}
	return site
}

// ExportToText renders contacts as a numbered plain text list.
func ExportToText(contacts []models.Contact) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "Contacts: %d\n\n", len(contacts))
	for i, c := range contacts {
		fmt.Fprintf(&buf, "%d. %s <%s> %s\n", i+1, c.Name, c.Email, c.Phone)
	}

	return buf.Bytes(), nil
}

// ExportToJSON renders contacts as indented JSON. An empty list is "[]", never "null".
func ExportToJSON(contacts []models.Contact) ([]byte, error) {
	if contacts == nil {
		contacts = []models.Contact{}
	}
	data, err := shared.MarshalJSON(contacts, true)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return append(data, '\n'), nil
}

// ExportToYAML renders contacts as a YAML sequence.
func ExportToYAML(contacts []models.Contact) ([]byte, error) {
	if contacts == nil {
		contacts = []models.Contact{}
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(contacts); err != nil {
		return nil, fmt.Errorf("failed to marshal YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to marshal YAML: %w", err)
	}
	return buf.Bytes(), nil
}

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

// ExportToTable renders contacts as a bordered terminal table.
func ExportToTable(contacts []models.Contact) []byte {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "NAME", "EMAIL", "PHONE", "COMPANY").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	for _, c := range contacts {
		t.Row(strconv.FormatInt(c.ID, 10), c.Name, c.Email, c.Phone, models.Deref(c.Company, "-"))
	}

	return []byte(t.Render() + "\n")
}

// ActivityTable renders journal entries as a bordered terminal table.
func ActivityTable(entries []*models.Activity) []byte {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("TIME", "OP", "CONTACT", "STATUS", "MESSAGE").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	for _, a := range entries {
		t.Row(
			a.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			a.Op,
			strconv.FormatInt(a.ContactID, 10),
			a.Status(),
			a.Message,
		)
	}

	return []byte(t.Render() + "\n")
}

// ErrMissingColumn is returned by [ParseCSV] when a required column is absent from the header row.
var ErrMissingColumn = errors.New("missing required CSV column")

// ParseCSV reads contact rows for import. The first row is a header; columns are matched by name,
// ignoring case and order, and unknown columns (including "id") are ignored. Name, email and phone
// columns are required; optional cells that are empty become nil.
func ParseCSV(r io.Reader) ([]models.ContactFields, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return []models.ContactFields{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, required := range []string{"name", "email", "phone"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, required)
		}
	}

	cell := func(record []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	rows := []models.ContactFields{}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV record: %w", err)
		}

		rows = append(rows, models.ContactFields{
			Name:    cell(record, "name"),
			Email:   cell(record, "email"),
			Phone:   cell(record, "phone"),
			Website: models.OptionalString(cell(record, "website")),
			Company: models.OptionalString(cell(record, "company")),
			Address: models.OptionalString(cell(record, "address")),
		})
	}

	return rows, nil
}

// ReadCSVFile opens path and parses it with [ParseCSV].
func ReadCSVFile(path string) ([]models.ContactFields, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer f.Close()
	return ParseCSV(f)
}
