package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/bdxtown/agenda-digest/internal/event"
	"github.com/bdxtown/agenda-digest/internal/locale"
	"github.com/bdxtown/agenda-digest/internal/pipeline"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// WriteOutput writes the result in the specified format
func WriteOutput(w io.Writer, result *pipeline.Result, format OutputFormat, verbose bool) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatText:
		return writeText(w, result, verbose)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs results as JSON
func writeJSON(w io.Writer, result *pipeline.Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return encoder.Encode(result)
}

// writeText outputs results as human-readable text, grouped by source
func writeText(w io.Writer, result *pipeline.Result, verbose bool) error {
	fmt.Fprintf(w, "Window: %s - %s\n",
		locale.FormatNumeric(result.Window.Start), locale.FormatNumeric(result.Window.End))

	if len(result.Events) == 0 {
		fmt.Fprintln(w, "No events found.")
		return nil
	}

	bySource := make(map[string][]*event.Event)
	for _, evt := range result.Events {
		bySource[evt.Source] = append(bySource[evt.Source], evt)
	}

	sources := make([]string, 0, len(bySource))
	for source := range bySource {
		sources = append(sources, source)
	}
	sort.Strings(sources)

	for _, source := range sources {
		events := bySource[source]
		fmt.Fprintf(w, "\n%s (%d %s):\n", source, len(events), pluralize(len(events)))
		for _, evt := range events {
			if evt.Place != "" {
				fmt.Fprintf(w, "  %s: %s (%s)\n", evt.DisplayDate, evt.Title, evt.Place)
			} else {
				fmt.Fprintf(w, "  %s: %s\n", evt.DisplayDate, evt.Title)
			}
			if verbose {
				fmt.Fprintf(w, "       ID: %s\n", evt.ID)
				fmt.Fprintf(w, "       Link: %s\n", evt.Link)
			}
		}
	}
	fmt.Fprintf(w, "\nTotal: %d %s across %d sources\n", len(result.Events), pluralize(len(result.Events)), len(bySource))

	return nil
}

func pluralize(n int) string {
	if n == 1 {
		return "event"
	}
	return "events"
}
