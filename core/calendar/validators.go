package calendar

import (
	"github.com/go-playground/validator/v10"
)

type NewCalendar struct {
	Name      string `json:"name" validate:"required"`
	StartDate string `json:"start_date" validate:"required,date"`
	EndDate   string `json:"end_date" validate:"required,date"`
	IsActive  bool   `json:"is_active"`
}

func (nc NewCalendar) Validate(validate *validator.Validate) error {
	return validate.Struct(nc)
}

type UpdateCalendar struct {
	Name      string `json:"name" validate:"required"`
	StartDate string `json:"start_date" validate:"required,date"`
	EndDate   string `json:"end_date" validate:"required,date"`
	IsActive  bool   `json:"is_active"`
}

func (uc UpdateCalendar) Validate(validate *validator.Validate) error {
	return validate.Struct(uc)
}

type NewTerm struct {
	CalendarID string `json:"calendar_id" validate:"required"`
	Name       string `json:"name" validate:"required"`
	StartDate  string `json:"start_date" validate:"required,date"`
	EndDate    string `json:"end_date" validate:"required,date"`
	IsBreak    bool   `json:"is_break"`
	TermType   string `json:"term_type" validate:"required,oneof=semester trimester quarter other"`
	IsCurrent  bool   `json:"is_current"`
}

func (nt NewTerm) Validate(validate *validator.Validate) error {
	return validate.Struct(nt)
}

type UpdateTerm struct {
	Name      string `json:"name" validate:"required"`
	StartDate string `json:"start_date" validate:"required,date"`
	EndDate   string `json:"end_date" validate:"required,date"`
	IsBreak   bool   `json:"is_break"`
	TermType  string `json:"term_type" validate:"required,oneof=semester trimester quarter other"`
	IsCurrent bool   `json:"is_current"`
}

func (ut UpdateTerm) Validate(validate *validator.Validate) error {
	return validate.Struct(ut)
}

type NewHoliday struct {
	CalendarID string `json:"calendar_id" validate:"required"`
	Name       string `json:"name" validate:"required"`
	Date       string `json:"date" validate:"required,date"`
	Recurring  bool   `json:"recurring"`
}

func (nh NewHoliday) Validate(validate *validator.Validate) error {
	return validate.Struct(nh)
}

type UpdateHoliday struct {
	Name      string `json:"name" validate:"required"`
	Date      string `json:"date" validate:"required,date"`
	Recurring bool   `json:"recurring"`
}

func (uh UpdateHoliday) Validate(validate *validator.Validate) error {
	return validate.Struct(uh)
}
