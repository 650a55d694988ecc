package notifier

import (
	"context"
	"fmt"
	"io"
	"os"
	"unicode/utf8"
)

// DryRunNotifier prints what would be posted without actually posting
type DryRunNotifier struct {
	out io.Writer
}

// NewDryRunNotifier creates a new dry-run notifier writing to out (stdout when nil)
func NewDryRunNotifier(out io.Writer) *DryRunNotifier {
	if out == nil {
		out = os.Stdout
	}
	return &DryRunNotifier{out: out}
}

// Publish prints the status that would be posted
func (n *DryRunNotifier) Publish(_ context.Context, message string) error {
	fmt.Fprintln(n.out, "--- Status ---")
	fmt.Fprint(n.out, message)
	fmt.Fprintf(n.out, "\n(Length: %d characters)\n", utf8.RuneCountInString(message))
	return nil
}
