package event

import "time"

// DefaultWindowDays is how far past today the digest looks: today through today+6.
const DefaultWindowDays = 6

// Window is the range of calendar days covered by one digest. Both ends are
// inclusive. It is computed once per run and passed by value.
type Window struct {
	Start time.Time `json:"start"` // midnight of the first day
	End   time.Time `json:"end"`   // midnight of the last day
}

// NewWindow returns the window starting on now's calendar day in loc and
// ending days later.
func NewWindow(now time.Time, days int, loc *time.Location) Window {
	if loc == nil {
		loc = time.Local
	}
	local := now.In(loc)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	return Window{
		Start: start,
		End:   start.AddDate(0, 0, days),
	}
}

// Contains reports whether t falls on a day inside the window.
func (w Window) Contains(t time.Time) bool {
	local := t.In(w.Start.Location())
	day := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, w.Start.Location())
	return !day.Before(w.Start) && !day.After(w.End)
}

// Days returns the number of calendar days covered, ends included.
func (w Window) Days() int {
	return int(w.End.Sub(w.Start).Hours()/24+0.5) + 1
}
