package locale

import (
	"testing"
	"time"
)

func TestNewMonthLookup_French(t *testing.T) {
	lookup := NewMonthLookup(French)

	if len(lookup) != 12 {
		t.Fatalf("lookup has %d entries, want 12", len(lookup))
	}

	tests := []struct {
		abbrev string
		want   time.Month
		wantOK bool
	}{
		{"janv.", time.January, true},
		{"févr.", time.February, true},
		{"mars", time.March, true},
		{"mai", time.May, true},
		{"août", time.August, true},
		{"déc.", time.December, true},
		{"Janv.", 0, false}, // case must match
		{"janv", 0, false},  // punctuation must match
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.abbrev, func(t *testing.T) {
			got, ok := lookup.Month(tt.abbrev)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("Month(%q) = %v, %v; want %v, %v", tt.abbrev, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

// fixedLocale stands in for any injected locale.
type fixedLocale struct{}

func (fixedLocale) ShortMonth(m time.Month) string { return "M" + m.String()[:3] }

func TestNewMonthLookup_InjectedLocale(t *testing.T) {
	lookup := NewMonthLookup(fixedLocale{})
	if m, ok := lookup.Month("MOct"); !ok || m != time.October {
		t.Errorf("Month(MOct) = %v, %v; want October, true", m, ok)
	}
}

func TestFormatShort(t *testing.T) {
	d := time.Date(2024, time.January, 2, 18, 30, 0, 0, time.UTC)

	if got := FormatShort(French, d); got != "02 janv. 2024" {
		t.Errorf("FormatShort(French) = %q, want %q", got, "02 janv. 2024")
	}
	if got := FormatShort(English, d); got != "02 jan 2024" {
		t.Errorf("FormatShort(English) = %q, want %q", got, "02 jan 2024")
	}
}

func TestFormatNumeric(t *testing.T) {
	d := time.Date(2024, time.January, 7, 0, 0, 0, 0, time.UTC)
	if got := FormatNumeric(d); got != "07/01/2024" {
		t.Errorf("FormatNumeric() = %q, want 07/01/2024", got)
	}
}

func TestByName(t *testing.T) {
	if l, err := ByName("fr"); err != nil || l.ShortMonth(time.July) != "juil." {
		t.Errorf("ByName(fr) = %v, %v", l, err)
	}
	if _, err := ByName("de"); err == nil {
		t.Error("ByName(de) expected error, got nil")
	}
}

func TestTable_OutOfRange(t *testing.T) {
	if got := French.ShortMonth(13); got != "" {
		t.Errorf("ShortMonth(13) = %q, want empty", got)
	}
}
