package charts

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/julianstephens/tlview/internal/cli"
	"github.com/julianstephens/tlview/internal/logger"
	"github.com/julianstephens/tlview/internal/watch"
)

// ErrOutputIsInput is returned when --out names the watched file. Every write
// would trigger another render.
var ErrOutputIsInput = errors.New("output file is the watched file")

type WatchCmd struct {
	File     string        `arg:"" help:"Planner output file to watch."`
	Format   string        `short:"f" help:"Output format (terminal, html, json). Defaults to the stored default_format."`
	Out      string        `short:"o" help:"File to rewrite on every change. Defaults to FILE with the format's extension; - writes to standard output."`
	Width    int           `short:"w" help:"Terminal chart width in columns."`
	Debounce time.Duration `help:"Quiet period before re-rendering." default:"50ms"`
}

func (c *WatchCmd) Run(ctx *cli.Context) error {
	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return c.watch(sigCtx, ctx)
}

func (c *WatchCmd) watch(runCtx context.Context, ctx *cli.Context) error {
	view, err := newView(ctx, c.Format, c.Width, c.outPath())
	if err != nil {
		return err
	}
	out := c.outPath()
	if out == "" {
		out = defaultOutPath(c.File, view.Drawer().Name())
	}

	if out != "-" {
		if abs, err := filepath.Abs(out); err == nil {
			out = abs
		}
		if in, err := filepath.Abs(cli.ExpandPath(c.File)); err == nil && in == out {
			return fmt.Errorf("watching %s: %w", in, ErrOutputIsInput)
		}
		lockDir := ctx.ConfigDir
		if lockDir == "" {
			lockDir = os.TempDir()
		}
		lock, err := watch.Acquire(lockDir, out)
		if err != nil {
			return fmt.Errorf("watching %s: %w", out, err)
		}
		defer lock.Release()
	}

	w, err := watch.New(cli.ExpandPath(c.File), c.Debounce)
	if err != nil {
		return err
	}

	fmt.Fprintf(ctx.Stdout(), "Watching %s, writing %s (Ctrl+C to stop)\n", w.Path(), out)

	return w.Run(runCtx, func(text string) error {
		var buf bytes.Buffer
		data, err := view.Render(&buf, text)
		if err != nil {
			return err
		}
		if out == "-" {
			_, err = ctx.Stdout().Write(buf.Bytes())
			return err
		}
		if err := writeFileAtomic(out, buf.Bytes()); err != nil {
			return err
		}
		logger.Info("Chart updated", "out", out, "activities", len(data.Activities), "pass", data.PassID)
		return nil
	})
}

func (c *WatchCmd) outPath() string {
	return cli.ExpandPath(c.Out)
}

// defaultOutPath replaces the extension of input with one matching format.
func defaultOutPath(input, format string) string {
	ext := map[string]string{"terminal": ".txt", "html": ".html", "json": ".json"}[format]
	base := strings.TrimSuffix(input, filepath.Ext(input))
	if base+ext == input {
		base += ".chart"
	}
	return base + ext
}

func writeFileAtomic(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}
