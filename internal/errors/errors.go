// Package errors turns command failures into terminal output and an exit code.
package errors

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"

	"github.com/julianstephens/tlview/internal/constants"
	"github.com/julianstephens/tlview/internal/keyring"
	"github.com/julianstephens/tlview/internal/logger"
	"github.com/julianstephens/tlview/internal/storage/postgres"
	"github.com/julianstephens/tlview/internal/watch"
)

// hints pairs sentinel errors with the action that usually resolves them.
var hints = []struct {
	err  error
	hint string
}{
	{keyring.ErrNotFound, "store a connection string with 'tlview keyring set'"},
	{keyring.ErrKeyringUnavailable, "set " + constants.ConnectionEnvVar + " instead of using the keyring"},
	{postgres.ErrEmbeddedCredentials, "keep the password in the keyring or in " + constants.ConnectionEnvVar},
	{watch.ErrAlreadyWatching, "stop the other 'tlview watch' or pass a different --out"},
}

// Hint returns a suggestion for a known failure, or "".
func Hint(err error) string {
	for _, h := range hints {
		if stderrors.Is(err, h.err) {
			return h.hint
		}
	}
	return ""
}

// Format formats an error message with a consistent "Error: " prefix,
// followed by a hint line when one is known.
func Format(err error) string {
	if err == nil {
		return ""
	}
	msg := fmt.Sprintf("Error: %v", err)
	if hint := Hint(err); hint != "" {
		msg += "\nHint: " + hint
	}
	return msg
}

// Report writes the formatted error to w. It writes nothing for a nil error.
func Report(w io.Writer, err error) {
	if err == nil {
		return
	}
	fmt.Fprintln(w, Format(err))
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		Report(os.Stderr, err)
		os.Exit(1)
	}
}
