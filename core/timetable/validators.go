package timetable

import (
	"github.com/go-playground/validator/v10"
)

type NewTimeslot struct {
	Name      string `json:"name" validate:"required"`
	StartTime string `json:"start_time" validate:"required,clocktime"`
	EndTime   string `json:"end_time" validate:"required,clocktime"`
	DayOfWeek *int   `json:"day_of_week,omitempty" validate:"omitempty,dayofweek"`
	IsBreak   bool   `json:"is_break"`
}

func (nt NewTimeslot) Validate(validate *validator.Validate) error {
	return validate.Struct(nt)
}

type UpdateTimeslot struct {
	Name      string `json:"name" validate:"required"`
	StartTime string `json:"start_time" validate:"required,clocktime"`
	EndTime   string `json:"end_time" validate:"required,clocktime"`
	DayOfWeek *int   `json:"day_of_week,omitempty" validate:"omitempty,dayofweek"`
	IsBreak   bool   `json:"is_break"`
}

func (ut UpdateTimeslot) Validate(validate *validator.Validate) error {
	return validate.Struct(ut)
}

// NewEntry carries the full set of entry fields; dated entries (recurring=false)
// must supply both dates, recurring ones have any supplied dates cleared.
type NewEntry struct {
	ClassID    string  `json:"class_id" validate:"required"`
	SubjectID  string  `json:"subject_id" validate:"required"`
	TeacherID  string  `json:"teacher_id" validate:"required"`
	TimeslotID string  `json:"timeslot_id" validate:"required"`
	RoomID     *string `json:"room_id,omitempty"`
	DayOfWeek  int     `json:"day_of_week" validate:"dayofweek"`
	Recurring  bool    `json:"recurring"`
	StartDate  *string `json:"start_date,omitempty" validate:"omitempty,date"`
	EndDate    *string `json:"end_date,omitempty" validate:"omitempty,date"`
}

func (ne NewEntry) Validate(validate *validator.Validate) error {
	return validate.Struct(ne)
}

// UpdateEntry re-runs the NewEntry validation and replaces the record wholesale.
type UpdateEntry = NewEntry
