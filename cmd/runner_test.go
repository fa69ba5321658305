package main

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/rolodex/internal/models"
	"github.com/desertthunder/rolodex/internal/server"
	"github.com/desertthunder/rolodex/internal/services"
	"github.com/desertthunder/rolodex/internal/shared"
	tu "github.com/desertthunder/rolodex/internal/testing"
)

func testContacts() []models.Contact {
	return []models.Contact{
		{ID: 1, Name: "Leanne Graham", Email: "Sincere@april.biz", Phone: "1-770-736-8031", Company: models.StringPtr("Romaguera-Crona")},
		{ID: 2, Name: "Ervin Howell", Email: "Shanna@melissa.tv", Phone: "010-692-6593", Website: models.StringPtr("anastasia.net")},
	}
}

// testConfig keeps the activity journal inside the test's temp dir.
func testConfig(t *testing.T) *shared.Config {
	t.Helper()
	config := shared.DefaultConfig()
	config.Database.Path = filepath.Join(t.TempDir(), "rolodex.db")
	return config
}

type harness struct {
	runner  *Runner
	service *tu.MockContactService
	output  *bytes.Buffer
	input   *bytes.Buffer
	logs    *bytes.Buffer
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		service: &tu.MockContactService{Contacts: testContacts(), CreatedID: tu.ID(11)},
		output:  &bytes.Buffer{},
		input:   &bytes.Buffer{},
		logs:    &bytes.Buffer{},
	}
	h.runner = NewRunner(RunnerOpts{
		Config:  testConfig(t),
		Service: h.service,
		Logger:  shared.NewLogger(h.logs),
		Output:  h.output,
		Input:   h.input,
	})
	return h
}

func (h *harness) run(args ...string) error {
	app := &cli.Command{
		Name:      "rolodex",
		Commands:  h.runner.register(),
		Writer:    &bytes.Buffer{},
		ErrWriter: &bytes.Buffer{},
	}
	return app.Run(context.Background(), append([]string{"rolodex"}, args...))
}

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}
			httpClient := &http.Client{}
			api := services.NewAPIService("http://example.test", httpClient)
			service := &tu.MockContactService{}

			runner := NewRunner(RunnerOpts{
				Config:     config,
				Logger:     logger,
				Output:     output,
				HTTPClient: httpClient,
				API:        api,
				Service:    service,
			})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
			if runner.httpClient != httpClient {
				t.Error("expected httpClient to be set")
			}
			if runner.api != api {
				t.Error("expected api to be set")
			}
			if runner.service != service {
				t.Error("expected service to be set")
			}
		})

		t.Run("with nil config uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})

			if runner.config == nil {
				t.Error("expected default config to be set")
			}
			if runner.logger == nil {
				t.Error("expected default logger to be set")
			}
			if runner.output != os.Stdout {
				t.Error("expected output to default to os.Stdout")
			}
		})

		t.Run("builds placeholder service from config", func(t *testing.T) {
			config := shared.DefaultConfig()
			config.API.BaseURL = "http://localhost:9999/"

			runner := NewRunner(RunnerOpts{Config: config})

			if runner.api.BaseURL() != "http://localhost:9999" {
				t.Errorf("expected base URL from config, got %s", runner.api.BaseURL())
			}
			if _, ok := runner.service.(*services.PlaceholderService); !ok {
				t.Errorf("expected placeholder service, got %T", runner.service)
			}
		})

		t.Run("applies configured timeout", func(t *testing.T) {
			config := shared.DefaultConfig()
			config.API.Timeout = "3s"

			runner := NewRunner(RunnerOpts{Config: config})

			if runner.httpClient.Timeout.String() != "3s" {
				t.Errorf("expected 3s timeout, got %v", runner.httpClient.Timeout)
			}
		})

		t.Run("with configPath sets field", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{ConfigPath: "/test/path/config.toml"})

			if runner.configPath != "/test/path/config.toml" {
				t.Errorf("expected configPath to be set, got %s", runner.configPath)
			}
		})
	})

	t.Run("writeJSON", func(t *testing.T) {
		t.Run("writes formatted JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writeJSON(map[string]string{"key": "value"}, true); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			if !strings.Contains(result, `"key": "value"`) {
				t.Errorf("expected formatted JSON, got %s", result)
			}
			if !strings.HasSuffix(result, "\n") {
				t.Error("expected output to end with newline")
			}
		})

		t.Run("writes compact JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writeJSON(map[string]string{"key": "value"}, false); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			expected := `{"key":"value"}` + "\n"
			if output.String() != expected {
				t.Errorf("expected %q, got %q", expected, output.String())
			}
		})

		t.Run("handles marshal error with non-serializable data", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &bytes.Buffer{}})

			err := runner.writeJSON(make(chan int), false)
			if err == nil || !strings.Contains(err.Error(), "failed to marshal JSON") {
				t.Errorf("expected marshal error, got %v", err)
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &tu.FWriter{}})

			err := runner.writeJSON(map[string]string{"key": "value"}, false)
			if err == nil || !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})

		t.Run("handles newline write failure", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: tu.NewLimitedWriter(1, &bytes.Buffer{})})

			err := runner.writeJSON(map[string]string{"key": "value"}, false)
			if err == nil || !strings.Contains(err.Error(), "failed to write newline") {
				t.Errorf("expected newline write error, got %v", err)
			}
		})
	})

	t.Run("writePlain", func(t *testing.T) {
		t.Run("writes plain text successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writePlain("hello %s", "world"); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if output.String() != "hello world" {
				t.Errorf("expected 'hello world', got %q", output.String())
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &tu.FWriter{}})

			err := runner.writePlain("test")
			if err == nil || !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})
	})

	t.Run("register", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{})
		commands := runner.register()

		seen := map[string]bool{}
		for i, cmd := range commands {
			if cmd == nil {
				t.Fatalf("command at index %d is nil", i)
			}
			if seen[cmd.Name] {
				t.Errorf("duplicate command %q", cmd.Name)
			}
			seen[cmd.Name] = true
		}

		for _, name := range []string{"list", "show", "add", "update", "delete", "open", "import", "export", "history", "api", "serve", "setup", "tui"} {
			if !seen[name] {
				t.Errorf("expected %q to be registered", name)
			}
		}
	})

	t.Run("parseID", func(t *testing.T) {
		if id, err := parseID("42"); err != nil || id != 42 {
			t.Errorf("expected 42, got %d (%v)", id, err)
		}
		if _, err := parseID(""); !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
		if _, err := parseID("abc"); !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})

	t.Run("confirm", func(t *testing.T) {
		for input, want := range map[string]bool{"y\n": true, "YES\n": true, "n\n": false, "\n": false, "": false} {
			runner := NewRunner(RunnerOpts{Output: &bytes.Buffer{}, Input: strings.NewReader(input)})
			if got := runner.confirm("Sure?"); got != want {
				t.Errorf("confirm(%q) = %v, want %v", input, got, want)
			}
		}
	})
}

func TestContactCommands(t *testing.T) {
	t.Run("list as JSON", func(t *testing.T) {
		h := newHarness(t)

		if err := h.run("list", "--format", "json"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		out := h.output.String()
		if !strings.Contains(out, "Leanne Graham") || !strings.Contains(out, "Ervin Howell") {
			t.Errorf("expected both contacts, got %s", out)
		}
	})

	t.Run("list with search", func(t *testing.T) {
		h := newHarness(t)

		if err := h.run("list", "--search", "ervin", "--format", "csv"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		out := h.output.String()
		if strings.Contains(out, "Leanne") || !strings.Contains(out, "Ervin Howell") {
			t.Errorf("expected only Ervin, got %s", out)
		}
	})

	t.Run("list rejects unknown format", func(t *testing.T) {
		h := newHarness(t)

		if err := h.run("list", "--format", "xml"); !errors.Is(err, shared.ErrInvalidFlag) {
			t.Errorf("expected ErrInvalidFlag, got %v", err)
		}
		if h.service.CallCount("list") != 0 {
			t.Error("expected no fetch for an invalid format")
		}
	})

	t.Run("list reports fetch failure", func(t *testing.T) {
		h := newHarness(t)
		h.service.ListErr = errors.New("")

		err := h.run("list")
		if err == nil || err.Error() != "Failed to fetch contacts" {
			t.Errorf("expected fetch failure message, got %v", err)
		}
	})

	t.Run("show", func(t *testing.T) {
		h := newHarness(t)

		if err := h.run("show", "1"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		out := h.output.String()
		for _, want := range []string{"Leanne Graham", "Romaguera-Crona", "Website: N/A"} {
			if !strings.Contains(out, want) {
				t.Errorf("expected %q in output, got %s", want, out)
			}
		}
	})

	t.Run("show missing contact", func(t *testing.T) {
		h := newHarness(t)

		if err := h.run("show", "99"); !errors.Is(err, shared.ErrContactNotFound) {
			t.Errorf("expected ErrContactNotFound, got %v", err)
		}
	})

	t.Run("add", func(t *testing.T) {
		h := newHarness(t)

		err := h.run("add", "--name", "Ann Lee", "--email", "ann@x.com", "--phone", "555", "--company", "Acme")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(h.service.Created) != 1 {
			t.Fatalf("expected one create, got %d", len(h.service.Created))
		}
		created := h.service.Created[0]
		if created.Name != "Ann Lee" || models.Deref(created.Company, "") != "Acme" || created.Website != nil {
			t.Errorf("unexpected fields %+v", created)
		}
		if !strings.Contains(h.output.String(), "Added Ann Lee (ID: 11)") {
			t.Errorf("unexpected output %s", h.output.String())
		}
	})

	t.Run("add rejects blank required field", func(t *testing.T) {
		h := newHarness(t)

		err := h.run("add", "--name", "Ann", "--email", "  ", "--phone", "555")
		if !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
		if h.service.CallCount("create") != 0 {
			t.Error("expected no create request")
		}
	})

	t.Run("add failure is returned without being logged", func(t *testing.T) {
		h := newHarness(t)
		h.service.CreateErr = errors.New("")

		err := h.run("add", "--name", "Ann", "--email", "a@x", "--phone", "1")
		if err == nil || err.Error() != "Could not add contact" {
			t.Fatalf("expected add failure message, got %v", err)
		}
		if strings.Contains(h.logs.String(), "Could not add contact") {
			t.Errorf("expected the failure to be reported once by the caller, logs:\n%s", h.logs.String())
		}
	})

	t.Run("update sends only set flags", func(t *testing.T) {
		h := newHarness(t)

		if err := h.run("update", "--phone", "555-9", "--company", "", "1"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		patch := h.service.Patches[1]
		if patch.Name != nil || patch.Email != nil || patch.Website != nil {
			t.Errorf("expected unset fields to be nil, got %+v", patch)
		}
		if models.Deref(patch.Phone, "") != "555-9" || patch.Company == nil || *patch.Company != "" {
			t.Errorf("unexpected patch %+v", patch)
		}
	})

	t.Run("update without flags", func(t *testing.T) {
		h := newHarness(t)

		if err := h.run("update", "1"); !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
	})

	t.Run("update missing contact", func(t *testing.T) {
		h := newHarness(t)

		if err := h.run("update", "--name", "X", "99"); !errors.Is(err, shared.ErrContactNotFound) {
			t.Errorf("expected ErrContactNotFound, got %v", err)
		}
		if h.service.CallCount("update") != 0 {
			t.Error("expected no update request")
		}
	})

	t.Run("delete cancelled at prompt", func(t *testing.T) {
		h := newHarness(t)
		h.input.WriteString("n\n")

		if err := h.run("delete", "2"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if h.service.CallCount("delete") != 0 {
			t.Error("expected no delete request")
		}
		if !strings.Contains(h.output.String(), "Cancelled") {
			t.Errorf("unexpected output %s", h.output.String())
		}
	})

	t.Run("delete with yes flag", func(t *testing.T) {
		h := newHarness(t)

		if err := h.run("delete", "--yes", "2"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(h.service.Deleted) != 1 || h.service.Deleted[0] != 2 {
			t.Errorf("expected contact 2 deleted, got %v", h.service.Deleted)
		}
	})

	t.Run("delete failure", func(t *testing.T) {
		h := newHarness(t)
		h.service.DeleteErr = errors.New("")

		err := h.run("delete", "--yes", "2")
		if err == nil || err.Error() != "Could not delete contact" {
			t.Errorf("expected delete failure message, got %v", err)
		}
	})

	t.Run("open", func(t *testing.T) {
		h := newHarness(t)
		var opened string
		h.runner.openURL = func(u string) error { opened = u; return nil }

		if err := h.run("open", "2"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if opened != "https://anastasia.net" {
			t.Errorf("expected https://anastasia.net, got %q", opened)
		}
	})

	t.Run("open without website", func(t *testing.T) {
		h := newHarness(t)
		h.runner.openURL = func(string) error { t.Error("should not open"); return nil }

		if err := h.run("open", "1"); !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})
}

func TestImportExport(t *testing.T) {
	t.Run("import", func(t *testing.T) {
		h := newHarness(t)
		path := filepath.Join(t.TempDir(), "contacts.csv")
		tu.MustWriteFile(t, path, "name,email,phone,company\nAnn,ann@x.com,1,Acme\n,missing@x.com,2,\nBob,bob@x.com,3,\n")

		if err := h.run("import", "--workers", "2", path); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if h.service.CallCount("create") != 2 {
			t.Errorf("expected 2 creates, got %d", h.service.CallCount("create"))
		}
		if !strings.Contains(h.output.String(), "Created: 2  Invalid: 1  Failed: 0  Skipped: 0") {
			t.Errorf("unexpected summary %s", h.output.String())
		}
	})

	t.Run("import dry run", func(t *testing.T) {
		h := newHarness(t)
		path := filepath.Join(t.TempDir(), "contacts.csv")
		tu.MustWriteFile(t, path, "name,email,phone\nAnn,ann@x.com,1\n")

		if err := h.run("import", "--dry-run", path); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if h.service.CallCount("create") != 0 {
			t.Error("expected no creates on dry run")
		}
	})

	t.Run("import missing file argument", func(t *testing.T) {
		h := newHarness(t)

		if err := h.run("import"); !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
	})

	t.Run("export", func(t *testing.T) {
		h := newHarness(t)
		dir := filepath.Join(t.TempDir(), "out")

		if err := h.run("export", "--format", "csv", "--format", "md", "--output", dir); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		for _, name := range []string{"contacts.csv", "contacts.md", "manifest.json"} {
			if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
				t.Errorf("expected %s to exist: %v", name, err)
			}
		}
		if !strings.Contains(tu.MustReadFile(t, filepath.Join(dir, "contacts.csv")), "Leanne Graham") {
			t.Error("expected contacts in CSV export")
		}
	})
}

func TestHistory(t *testing.T) {
	h := newHarness(t)

	if err := h.run("add", "--name", "Ann", "--email", "a@x", "--phone", "1"); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	h.service.UpdateErr = errors.New("boom")
	if err := h.run("update", "--name", "L", "1"); err == nil {
		t.Fatal("expected update to fail")
	}

	h.output.Reset()
	if err := h.run("history", "--json"); err != nil {
		t.Fatalf("history failed: %v", err)
	}
	out := h.output.String()
	if !strings.Contains(out, `"op": "create"`) || !strings.Contains(out, `"op": "update"`) {
		t.Errorf("expected create and update entries, got %s", out)
	}
	if !strings.Contains(out, "boom") {
		t.Errorf("expected failure message in journal, got %s", out)
	}

	h.output.Reset()
	if err := h.run("history", "--contact", "1"); err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if strings.Contains(h.output.String(), "create") {
		t.Errorf("expected only contact 1 entries, got %s", h.output.String())
	}

	h.output.Reset()
	if err := h.run("history", "--prune", "1ns"); err != nil {
		t.Fatalf("prune failed: %v", err)
	}
	if !strings.Contains(h.output.String(), "Removed 2 entries") {
		t.Errorf("unexpected prune output %s", h.output.String())
	}
}

func TestAPICommands(t *testing.T) {
	users := server.NewUsersHandler(server.SeedUsers())
	ts := httptest.NewServer(server.NewMockAPI(users))
	defer ts.Close()

	newAPIRunner := func(out *bytes.Buffer) *harness {
		h := newHarness(t)
		h.runner.api = services.NewAPIService(ts.URL, ts.Client())
		h.output = out
		h.runner.output = out
		return h
	}

	t.Run("get", func(t *testing.T) {
		out := &bytes.Buffer{}
		h := newAPIRunner(out)

		if err := h.run("api", "get", "/users/1"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(out.String(), `"name": "Leanne Graham"`) {
			t.Errorf("expected pretty JSON user, got %s", out.String())
		}
	})

	t.Run("get not found", func(t *testing.T) {
		h := newAPIRunner(&bytes.Buffer{})

		if err := h.run("api", "get", "/users/999"); !errors.Is(err, shared.ErrAPIRequest) {
			t.Errorf("expected ErrAPIRequest, got %v", err)
		}
	})

	t.Run("post", func(t *testing.T) {
		out := &bytes.Buffer{}
		h := newAPIRunner(out)

		err := h.run("api", "post", "--data", `{"name":"Ann","email":"a@x","phone":"1"}`, "/users")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(out.String(), `"id": 6`) {
			t.Errorf("expected created id, got %s", out.String())
		}
	})

	t.Run("post invalid JSON", func(t *testing.T) {
		h := newAPIRunner(&bytes.Buffer{})

		if err := h.run("api", "post", "--data", "{", "/users"); !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})
}

func TestSetup(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.toml")
	dbPath := filepath.Join(dir, "journal.db")
	tu.MustWriteFile(t, configPath, "[database]\npath = \""+filepath.ToSlash(dbPath)+"\"\n")

	h := newHarness(t)
	if err := h.run("setup", "--config", configPath); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, err := os.Stat(dbPath); err != nil {
		t.Errorf("expected journal database to be created: %v", err)
	}
	if !strings.Contains(h.output.String(), "(0 entries)") {
		t.Errorf("unexpected output %s", h.output.String())
	}
}
