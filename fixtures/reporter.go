package fixtures

import (
	"context"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/composetest/composetest/compose"
)

// Reporter writes the captured output of a group of containers into the test
// report, so that service logs are visible next to the tests that ran against
// them.
type Reporter struct {
	// Out is the destination stream. Nil is not allowed; the Manager always
	// supplies one.
	Out io.Writer
}

// Report emits one block per container, in the order given (the Manager passes
// them name-sorted). Each block is a header naming the container, an underline
// of matching length, the log text, and a blank separator line.
//
// Output is append-only: a log that cannot be fetched or decoded is replaced
// with a placeholder for that container, and reporting continues with the rest.
func (r *Reporter) Report(ctx context.Context, containers []*compose.Container) {
	for _, c := range containers {
		header := fmt.Sprintf("Logs from %s:", c.Name)
		fmt.Fprintln(r.Out, header)
		fmt.Fprintln(r.Out, strings.Repeat("=", len(header)))
		fmt.Fprintln(r.Out, logText(ctx, c))
		fmt.Fprintln(r.Out)
	}
}

func logText(ctx context.Context, c *compose.Container) string {
	if c.Logs == nil {
		return "(no logs)"
	}
	data, err := c.Logs(ctx)
	if err != nil {
		return fmt.Sprintf("(could not read logs: %s)", err)
	}
	if len(data) == 0 {
		return "(no logs)"
	}
	return strings.ToValidUTF8(string(data), string(utf8.RuneError))
}
