package shared

import (
	"errors"
	"os/exec"
	"testing"
)

func TestWebsiteURL(t *testing.T) {
	tc := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "bare domain", input: "hildegard.org", want: "https://hildegard.org"},
		{name: "http kept", input: "http://example.com/x", want: "http://example.com/x"},
		{name: "whitespace", input: "  anastasia.net ", want: "https://anastasia.net"},
		{name: "empty", input: "", wantErr: true},
		{name: "ftp scheme", input: "ftp://files.example.com", wantErr: true},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			got, err := WebsiteURL(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("WebsiteURL() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
			if got != tt.want {
				t.Errorf("WebsiteURL() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestOpenBrowser(t *testing.T) {
	origRuntime, origStart := getRuntime, startCommand
	t.Cleanup(func() { getRuntime, startCommand = origRuntime, origStart })

	var started []string
	startCommand = func(cmd *exec.Cmd) error {
		started = cmd.Args
		return nil
	}

	t.Run("linux uses xdg-open", func(t *testing.T) {
		getRuntime = func() string { return "linux" }
		if err := OpenBrowser("https://example.com"); err != nil {
			t.Fatalf("OpenBrowser() error = %v", err)
		}
		if len(started) != 2 || started[0] != "xdg-open" {
			t.Errorf("unexpected command %v", started)
		}
	})

	t.Run("unsupported platform", func(t *testing.T) {
		getRuntime = func() string { return "plan9" }
		if err := OpenBrowser("https://example.com"); err == nil {
			t.Error("expected error for unsupported platform")
		}
	})

	t.Run("start failure", func(t *testing.T) {
		getRuntime = func() string { return "darwin" }
		startCommand = func(*exec.Cmd) error { return errors.New("boom") }
		if err := OpenBrowser("https://example.com"); err == nil {
			t.Error("expected start error to propagate")
		}
	})
}
