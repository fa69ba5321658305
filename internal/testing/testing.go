// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"sync"
	"testing"

	"github.com/desertthunder/rolodex/internal/models"
)

// SampleUsersJSON is a two-item /users response in the placeholder API's shape.
const SampleUsersJSON = `[
  {
    "id": 1,
    "name": "Leanne Graham",
    "username": "Bret",
    "email": "Sincere@april.biz",
    "address": {"street": "Kulas Light", "suite": "Apt. 556", "city": "Gwenborough", "zipcode": "92998-3874"},
    "phone": "1-770-736-8031",
    "company": {"name": "Romaguera-Crona"}
  },
  {
    "id": 2,
    "name": "Ervin Howell",
    "username": "Antonette",
    "email": "Shanna@melissa.tv",
    "phone": "010-692-6593 x09125",
    "website": "anastasia.net"
  }
]`

// MockContactService is an in-memory test double for services.ContactService.
//
// Errors are returned when set. When Block is non-nil, every call waits on it (or on ctx) first,
// which lets tests hold a request in flight.
type MockContactService struct {
	mu sync.Mutex

	Contacts  []models.Contact
	CreatedID *int64

	ListErr   error
	CreateErr error
	UpdateErr error
	DeleteErr error

	Block chan struct{}

	Calls   []string
	Created []models.ContactFields
	Patches map[int64]models.ContactPatch
	Deleted []int64
}

func (m *MockContactService) wait(ctx context.Context, call string) error {
	m.mu.Lock()
	m.Calls = append(m.Calls, call)
	block := m.Block
	m.mu.Unlock()

	if block == nil {
		return nil
	}
	select {
	case <-block:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (m *MockContactService) ListContacts(ctx context.Context) ([]models.Contact, error) {
	if err := m.wait(ctx, "list"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return append([]models.Contact(nil), m.Contacts...), nil
}

func (m *MockContactService) CreateContact(ctx context.Context, fields models.ContactFields) (*int64, error) {
	if err := m.wait(ctx, "create"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CreateErr != nil {
		return nil, m.CreateErr
	}
	m.Created = append(m.Created, fields)
	return m.CreatedID, nil
}

func (m *MockContactService) UpdateContact(ctx context.Context, id int64, patch models.ContactPatch) error {
	if err := m.wait(ctx, "update"); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	if m.Patches == nil {
		m.Patches = make(map[int64]models.ContactPatch)
	}
	m.Patches[id] = patch
	return nil
}

func (m *MockContactService) DeleteContact(ctx context.Context, id int64) error {
	if err := m.wait(ctx, "delete"); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	m.Deleted = append(m.Deleted, id)
	return nil
}

func (m *MockContactService) Name() string { return "mock" }

// CallCount returns how many times call ("list", "create", "update", "delete") was made.
func (m *MockContactService) CallCount(call string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.Calls {
		if c == call {
			n++
		}
	}
	return n
}

// ID returns a pointer to id, for [MockContactService.CreatedID].
func ID(id int64) *int64 { return &id }

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites int, target io.Writer) *LimitedWriter {
	return &LimitedWriter{maxWrites: maxWrites, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

func MustWriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write file %s: %v", path, err)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
