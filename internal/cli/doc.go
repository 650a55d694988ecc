// Package cli implements the command-line interface for agenda-digest.
//
// The root command loads the YAML configuration, builds the sources, the
// normalizer and the selected publisher, runs one digest through the
// pipeline package and reports the result as text or JSON. It can also
// export the digest's events as an iCalendar file and push run metrics to a
// Pushgateway.
package cli
