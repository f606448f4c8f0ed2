package timetable

import "time"

// Timeslot is a recurring daily/weekly time window, optionally pinned to a
// weekday and optionally flagged as a break period. Break timeslots can never
// be assigned a timetable entry.
type Timeslot struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	StartTime string    `json:"start_time"` // "HH:mm:ss"
	EndTime   string    `json:"end_time"`   // "HH:mm:ss"
	DayOfWeek *int      `json:"day_of_week,omitempty"`
	IsBreak   bool      `json:"is_break"`
	CreatedAt time.Time `json:"created_at"` // UTC
	UpdatedAt time.Time `json:"updated_at"` // UTC
}

// Entry assigns a class+subject+teacher (+room) to a day-of-week and timeslot.
// A recurring entry repeats every week indefinitely; a dated entry is valid
// only within its start/end date window.
type Entry struct {
	ID         string    `json:"id"`
	ClassID    string    `json:"class_id"`
	SubjectID  string    `json:"subject_id"`
	TeacherID  string    `json:"teacher_id"`
	TimeslotID string    `json:"timeslot_id"`
	RoomID     *string   `json:"room_id,omitempty"`
	DayOfWeek  int       `json:"day_of_week"` // 0 = Sunday .. 6 = Saturday
	Recurring  bool      `json:"recurring"`
	StartDate  *string   `json:"start_date,omitempty"` // dated entries only
	EndDate    *string   `json:"end_date,omitempty"`   // dated entries only
	CreatedAt  time.Time `json:"created_at"`           // UTC
	UpdatedAt  time.Time `json:"updated_at"`           // UTC
}

// ActiveOn reports whether the entry holds on a concrete date falling on
// `weekday`. Term and holiday membership are deliberately not consulted:
// breaks and holidays annotate schedules, they never suppress entries.
func (e Entry) ActiveOn(date string, weekday int) bool {
	if e.DayOfWeek != weekday {
		return false
	}
	if e.Recurring {
		return true
	}
	if e.StartDate == nil || e.EndDate == nil {
		return false
	}
	return *e.StartDate <= date && date <= *e.EndDate
}

// EntryFilter applies AND on its non-zero fields; a nil DayOfWeek matches all days.
type EntryFilter struct {
	ClassID    string
	SubjectID  string
	TeacherID  string
	TimeslotID string
	RoomID     string
	DayOfWeek  *int
}

// Match reports whether the entry satisfies every set filter field.
func (f EntryFilter) Match(e Entry) bool {
	if f.ClassID != "" && e.ClassID != f.ClassID {
		return false
	}
	if f.SubjectID != "" && e.SubjectID != f.SubjectID {
		return false
	}
	if f.TeacherID != "" && e.TeacherID != f.TeacherID {
		return false
	}
	if f.TimeslotID != "" && e.TimeslotID != f.TimeslotID {
		return false
	}
	if f.RoomID != "" && (e.RoomID == nil || *e.RoomID != f.RoomID) {
		return false
	}
	if f.DayOfWeek != nil && e.DayOfWeek != *f.DayOfWeek {
		return false
	}
	return true
}
