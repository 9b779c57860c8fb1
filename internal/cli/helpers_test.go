package cli

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/roach88/assistant/internal/book"
	"github.com/roach88/assistant/internal/testutil"
)

// testToday is a Monday.
var testToday = testutil.Date(2024, time.June, 10)

// runCLI executes the root command with args and stdin.
// A temp --db and a missing --env-file are added unless args set them.
func runCLI(t *testing.T, stdin string, clock book.Clock, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	if clock == nil {
		clock = testutil.NewFixedClock(testToday)
	}
	full := []string{"--env-file", filepath.Join(t.TempDir(), "missing.env")}
	if !hasFlag(args, "--db") {
		full = append(full, "--db", filepath.Join(t.TempDir(), "test.db"))
	}
	full = append(full, args...)

	outBuf, errBuf := &bytes.Buffer{}, &bytes.Buffer{}
	cmd := newRootCommand(&RootOptions{Clock: clock})
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(outBuf)
	cmd.SetErr(errBuf)
	cmd.SetArgs(full)

	err = cmd.Execute()
	return outBuf.String(), errBuf.String(), err
}

func hasFlag(args []string, name string) bool {
	for _, a := range args {
		if a == name || strings.HasPrefix(a, name+"=") {
			return true
		}
	}
	return false
}

func tempDB(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "book.db")
}
