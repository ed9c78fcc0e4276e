// Package chart draws a built timeline. Each back end turns the same
// models.ChartData into a different output: a colored Gantt chart for the
// terminal, a standalone page driving the Google Charts Timeline widget, or JSON.
package chart

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/julianstephens/tlview/internal/constants"
	"github.com/julianstephens/tlview/internal/models"
)

// ErrUnknownFormat is returned by ForFormat for a name with no back end.
var ErrUnknownFormat = errors.New("unknown chart format")

// Drawer is a chart back end.
type Drawer interface {
	// Name returns the output format the drawer produces.
	Name() string
	// EnsureLoaded prepares whatever the drawer needs before its first
	// draw. Calling it again is a no-op that returns the first result.
	EnsureLoaded() error
	// Draw writes one chart. It loads the drawer first if needed.
	Draw(w io.Writer, data models.ChartData) error
}

// ForFormat returns a new drawer for the named output format.
func ForFormat(format constants.OutputFormat) (Drawer, error) {
	switch format {
	case constants.FormatTerminal:
		return NewTerminalDrawer(nil), nil
	case constants.FormatHTML:
		return NewHTMLDrawer(), nil
	case constants.FormatJSON:
		return NewJSONDrawer(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// Formats lists the supported output formats.
func Formats() []constants.OutputFormat {
	return []constants.OutputFormat{constants.FormatTerminal, constants.FormatHTML, constants.FormatJSON}
}

// loader runs a drawer's load step at most once.
type loader struct {
	once  sync.Once
	err   error
	loads int // times the load step ran: 0 or 1
}

func (l *loader) ensure(load func() error) error {
	l.once.Do(func() {
		l.loads++
		l.err = load()
	})
	return l.err
}
