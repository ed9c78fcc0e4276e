package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/mitchellh/go-ps"
)

type fakeProcess struct {
	pid  int
	exec string
}

func (p fakeProcess) Pid() int           { return p.pid }
func (p fakeProcess) PPid() int          { return 1 }
func (p fakeProcess) Executable() string { return p.exec }

func withProcess(t *testing.T, fn func(int) (ps.Process, error)) {
	t.Helper()
	orig := findProcessFunc
	findProcessFunc = fn
	t.Cleanup(func() { findProcessFunc = orig })
}

func TestAcquireAndRelease(t *testing.T) {
	dir := t.TempDir()

	lock, err := Acquire(dir, "/tmp/out.html")
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}

	content, err := os.ReadFile(lock.Path())
	if err != nil {
		t.Fatalf("reading lockfile: %v", err)
	}
	parts := strings.Split(string(content), "|")
	if len(parts) != 3 {
		t.Fatalf("lockfile has %d fields, want 3: %q", len(parts), content)
	}
	if parts[1] != "/tmp/out.html" {
		t.Errorf("target = %q, want /tmp/out.html", parts[1])
	}

	if err := lock.Release(); err != nil {
		t.Fatalf("Release failed: %v", err)
	}
	if _, err := os.Stat(LockfilePath(dir, "/tmp/out.html")); !os.IsNotExist(err) {
		t.Errorf("lockfile still present after Release")
	}
	if err := lock.Release(); err != nil {
		t.Errorf("second Release returned %v", err)
	}
}

func TestAcquire_LiveHolder(t *testing.T) {
	dir := t.TempDir()
	withProcess(t, func(pid int) (ps.Process, error) {
		return fakeProcess{pid: pid, exec: "tlview"}, nil
	})

	if _, err := Acquire(dir, "out.html"); err != nil {
		t.Fatalf("first Acquire failed: %v", err)
	}
	_, err := Acquire(dir, "out.html")
	if !errors.Is(err, ErrAlreadyWatching) {
		t.Fatalf("second Acquire err = %v, want ErrAlreadyWatching", err)
	}
}

func TestAcquire_StaleHolder(t *testing.T) {
	tests := []struct {
		name    string
		content string
		proc    ps.Process
	}{
		{"dead process", "999999|out.html|2026-01-01T00:00:00Z", nil},
		{"other executable", "4242|out.html|2026-01-01T00:00:00Z", fakeProcess{pid: 4242, exec: "bash"}},
		{"malformed", "garbage", nil},
		{"bad pid", "abc|out.html|x", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			withProcess(t, func(int) (ps.Process, error) { return tt.proc, nil })

			path := LockfilePath(dir, "out.html")
			if err := os.WriteFile(path, []byte(tt.content), 0600); err != nil {
				t.Fatal(err)
			}

			lock, err := Acquire(dir, "out.html")
			if err != nil {
				t.Fatalf("Acquire failed: %v", err)
			}
			defer lock.Release()

			content, _ := os.ReadFile(path)
			if string(content) == tt.content {
				t.Errorf("stale lockfile was not replaced")
			}
		})
	}
}

func TestLockfilePath_PerTarget(t *testing.T) {
	a := LockfilePath("/x", "a.html")
	b := LockfilePath("/x", "b.html")
	if a == b {
		t.Errorf("different targets share lockfile %s", a)
	}
	if !strings.HasPrefix(filepath.Base(a), "tlview-watch-") || !strings.HasSuffix(a, ".lock") {
		t.Errorf("unexpected lockfile name %s", a)
	}
}

func TestNew_MissingFile(t *testing.T) {
	if _, err := New(filepath.Join(t.TempDir(), "nope.txt"), 0); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestRun_RendersOnStartAndChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plan.txt")
	if err := os.WriteFile(path, []byte("first"), 0644); err != nil {
		t.Fatal(err)
	}

	w, err := New(path, 10*time.Millisecond)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	var mu sync.Mutex
	var seen []string
	got := make(chan struct{}, 16)
	handle := func(text string) error {
		mu.Lock()
		seen = append(seen, text)
		mu.Unlock()
		got <- struct{}{}
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx, handle) }()

	waitFor := func(want string) {
		t.Helper()
		deadline := time.After(5 * time.Second)
		for {
			select {
			case <-got:
				mu.Lock()
				last := seen[len(seen)-1]
				mu.Unlock()
				if last == want {
					return
				}
			case <-deadline:
				t.Fatalf("timed out waiting for %q", want)
			}
		}
	}

	waitFor("first")

	if err := os.WriteFile(path, []byte("second"), 0644); err != nil {
		t.Fatal(err)
	}
	waitFor("second")

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestRun_HandlerErrorKeepsWatching(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plan.txt")
	if err := os.WriteFile(path, []byte("a"), 0644); err != nil {
		t.Fatal(err)
	}

	w, err := New(path, 10*time.Millisecond)
	if err != nil {
		t.Fatal(err)
	}

	calls := make(chan string, 16)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx, func(text string) error {
		calls <- text
		return errors.New("boom")
	})

	<-calls
	if err := os.WriteFile(path, []byte("b"), 0644); err != nil {
		t.Fatal(err)
	}
	deadline := time.After(5 * time.Second)
	for {
		select {
		case text := <-calls:
			if text == "b" {
				return
			}
		case <-deadline:
			t.Fatal("handler not called after error")
		}
	}
}
