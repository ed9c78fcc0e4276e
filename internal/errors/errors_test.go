package errors

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"testing"

	"github.com/julianstephens/tlview/internal/keyring"
	"github.com/julianstephens/tlview/internal/storage/postgres"
	"github.com/julianstephens/tlview/internal/watch"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"nil error", nil, ""},
		{"plain error", errors.New("reading plan: file does not exist"), "Error: reading plan: file does not exist"},
		{
			"wrapped sentinel gets a hint",
			fmt.Errorf("acquiring lock: %w", watch.ErrAlreadyWatching),
			"Error: acquiring lock: " + watch.ErrAlreadyWatching.Error() +
				"\nHint: stop the other 'tlview watch' or pass a different --out",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Format(tt.err); got != tt.expected {
				t.Errorf("Format(%v) = %q, want %q", tt.err, got, tt.expected)
			}
		})
	}
}

func TestHint(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"keyring empty", fmt.Errorf("resolve: %w", keyring.ErrNotFound), "tlview keyring set"},
		{"keyring unavailable", keyring.ErrKeyringUnavailable, "TLVIEW_DB_CONNECTION"},
		{"embedded password", fmt.Errorf("invalid --config: %w", postgres.ErrEmbeddedCredentials), "keyring or in TLVIEW_DB_CONNECTION"},
		{"second watcher", watch.ErrAlreadyWatching, "--out"},
		{"unknown", errors.New("disk full"), ""},
		{"nil", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Hint(tt.err)
			if tt.want == "" {
				if got != "" {
					t.Errorf("Hint(%v) = %q, want none", tt.err, got)
				}
				return
			}
			if !strings.Contains(got, tt.want) {
				t.Errorf("Hint(%v) = %q, want it to mention %q", tt.err, got, tt.want)
			}
		})
	}
}

func TestReport(t *testing.T) {
	var buf bytes.Buffer
	Report(&buf, nil)
	if buf.Len() != 0 {
		t.Errorf("Report(nil) wrote %q", buf.String())
	}

	Report(&buf, errors.New("boom"))
	if buf.String() != "Error: boom\n" {
		t.Errorf("Report() wrote %q, want %q", buf.String(), "Error: boom\n")
	}
}

// TestFatal runs Fatal in a helper process and checks the exit code and stderr.
func TestFatal(t *testing.T) {
	if os.Getenv("TLVIEW_TEST_FATAL") == "1" {
		Fatal(fmt.Errorf("opening store: %w", keyring.ErrNotFound))
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=^TestFatal$")
	cmd.Env = append(os.Environ(), "TLVIEW_TEST_FATAL=1")
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("Fatal() did not exit with an error: %v", err)
	}
	if exitErr.ExitCode() != 1 {
		t.Errorf("Fatal() exit code = %d, want 1", exitErr.ExitCode())
	}
	out := stderr.String()
	if !strings.Contains(out, "Error: opening store: ") || !strings.Contains(out, "Hint: ") {
		t.Errorf("Fatal() stderr = %q, want the error and a hint", out)
	}
}

func TestFatal_NilError(t *testing.T) {
	if os.Getenv("TLVIEW_TEST_FATAL_NIL") == "1" {
		Fatal(nil)
		os.Exit(0)
	}

	cmd := exec.Command(os.Args[0], "-test.run=^TestFatal_NilError$")
	cmd.Env = append(os.Environ(), "TLVIEW_TEST_FATAL_NIL=1")
	if err := cmd.Run(); err != nil {
		t.Errorf("Fatal(nil) should not exit, but got error: %v", err)
	}
}
