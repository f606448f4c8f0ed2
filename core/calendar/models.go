package calendar

import "time"

// Term types
const (
	TermTypeSemester  = "semester"
	TermTypeTrimester = "trimester"
	TermTypeQuarter   = "quarter"
	TermTypeOther     = "other"
)

var AllTermTypes = []string{TermTypeSemester, TermTypeTrimester, TermTypeQuarter, TermTypeOther}

// DateRange is a closed interval of ISO "YYYY-MM-DD" date strings.
// The zero-padded fixed-width format makes string comparison chronological.
type DateRange struct {
	Start string `json:"start_date"`
	End   string `json:"end_date"`
}

// Overlaps reports whether two ranges conflict. The predicate is
// boundary-inclusive on matching bounds: two ranges sharing a start date or
// sharing an end date conflict even when they touch nowhere else. A range
// starting exactly where another ends does not. That asymmetry is observable
// existing behavior and is kept as-is.
func (r DateRange) Overlaps(o DateRange) bool {
	return (r.Start > o.Start && r.Start < o.End) ||
		(r.End > o.Start && r.End < o.End) ||
		(r.Start < o.Start && r.End > o.End) ||
		r.Start == o.Start ||
		r.End == o.End
}

// Contains reports whether `o` lies entirely within the range.
func (r DateRange) Contains(o DateRange) bool {
	return r.Start <= o.Start && o.End <= r.End
}

// ContainsDate reports whether the date lies within the range, bounds included.
func (r DateRange) ContainsDate(date string) bool {
	return r.Start <= date && date <= r.End
}

// Calendar is the date envelope for one school year.
// At most one calendar is active at a time.
type Calendar struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	StartDate string    `json:"start_date"`
	EndDate   string    `json:"end_date"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"` // UTC
	UpdatedAt time.Time `json:"updated_at"` // UTC
}

func (c Calendar) Range() DateRange {
	return DateRange{Start: c.StartDate, End: c.EndDate}
}

// Term is a named sub-range of a calendar, instructional or break.
// Non-break terms of the same calendar never overlap; at most one term per
// calendar is current.
type Term struct {
	ID         string    `json:"id"`
	CalendarID string    `json:"calendar_id"`
	Name       string    `json:"name"`
	StartDate  string    `json:"start_date"`
	EndDate    string    `json:"end_date"`
	IsBreak    bool      `json:"is_break"`
	TermType   string    `json:"term_type"`
	IsCurrent  bool      `json:"is_current"`
	CreatedAt  time.Time `json:"created_at"` // UTC
	UpdatedAt  time.Time `json:"updated_at"` // UTC
}

func (t Term) Range() DateRange {
	return DateRange{Start: t.StartDate, End: t.EndDate}
}

// Holiday is a dated annotation within a calendar. Holidays never suppress
// timetable entries; they only annotate rendered schedules.
type Holiday struct {
	ID         string    `json:"id"`
	CalendarID string    `json:"calendar_id"`
	Name       string    `json:"name"`
	Date       string    `json:"date"`
	Recurring  bool      `json:"recurring"`
	CreatedAt  time.Time `json:"created_at"` // UTC
	UpdatedAt  time.Time `json:"updated_at"` // UTC
}
