// Package locale renders and decodes month names without touching the
// platform locale database, so dates format the same on every host.
package locale

import (
	"fmt"
	"time"
)

// Locale renders month names for a language.
type Locale interface {
	// ShortMonth returns the abbreviated month name, e.g. "janv." in French.
	ShortMonth(m time.Month) string
}

// Table is a Locale backed by a fixed list of twelve abbreviations.
type Table [12]string

// ShortMonth implements Locale
func (t Table) ShortMonth(m time.Month) string {
	if m < time.January || m > time.December {
		return ""
	}
	return t[m-1]
}

var (
	// French matches the fr-FR short month names used by the agenda page.
	French = Table{"janv.", "févr.", "mars", "avr.", "mai", "juin", "juil.", "août", "sept.", "oct.", "nov.", "déc."}

	// English uses the Go reference abbreviations, lowercased.
	English = Table{"jan", "feb", "mar", "apr", "may", "jun", "jul", "aug", "sep", "oct", "nov", "dec"}
)

// ByName returns the built-in locale for a language code ("fr" or "en").
func ByName(name string) (Locale, error) {
	switch name {
	case "fr", "fr-FR":
		return French, nil
	case "en", "en-US", "en-GB":
		return English, nil
	default:
		return nil, fmt.Errorf("unknown locale: %s", name)
	}
}

// MonthLookup maps a short month name back to its month.
type MonthLookup map[string]time.Month

// NewMonthLookup builds the reverse table by rendering every month of a
// reference year through l. Keys are the exact strings l emits.
func NewMonthLookup(l Locale) MonthLookup {
	lookup := make(MonthLookup, 12)
	for m := time.January; m <= time.December; m++ {
		ref := time.Date(1996, m, 12, 0, 0, 0, 0, time.UTC)
		lookup[l.ShortMonth(ref.Month())] = m
	}
	return lookup
}

// Month returns the month for abbrev. Matching is exact: case and
// punctuation must be what the locale renders.
func (ml MonthLookup) Month(abbrev string) (time.Month, bool) {
	m, ok := ml[abbrev]
	return m, ok
}

// FormatShort renders t as "02 janv. 2024".
func FormatShort(l Locale, t time.Time) string {
	return fmt.Sprintf("%02d %s %d", t.Day(), l.ShortMonth(t.Month()), t.Year())
}

// FormatNumeric renders t as day/month/year, "02/01/2024".
func FormatNumeric(t time.Time) string {
	return t.Format("02/01/2006")
}
