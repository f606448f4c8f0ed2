package inmemdb

import (
	"sort"

	"github.com/google/uuid"

	"github.com/DaddyBoye/School-Management-sub001/core/calendar"
)

type calendarRepository struct {
	db *calendarTable
}

func NewCalendarRepository(db *DB) calendar.Repository {
	return &calendarRepository{db: db.calendar}
}

func (r *calendarRepository) query() []calendar.Calendar {
	res := make([]calendar.Calendar, 0, len(r.db.t))
	for _, cal := range r.db.t {
		res = append(res, *cal)
	}
	sort.Slice(res, func(i, j int) bool {
		if res[i].StartDate != res[j].StartDate {
			return res[i].StartDate < res[j].StartDate
		}
		return res[i].ID < res[j].ID
	})
	return res
}

func (r *calendarRepository) CreateCalendar(cal calendar.Calendar) (calendar.Calendar, error) {
	r.db.mutex.Lock()
	defer r.db.mutex.Unlock()

	cal.ID = uuid.New().String()
	r.db.t[cal.ID] = &cal
	return cal, nil
}

func (r *calendarRepository) QueryAllCalendars() ([]calendar.Calendar, error) {
	r.db.mutex.RLock()
	defer r.db.mutex.RUnlock()
	return r.query(), nil
}

func (r *calendarRepository) GetCalendarByID(id string) (calendar.Calendar, error) {
	r.db.mutex.RLock()
	defer r.db.mutex.RUnlock()

	if cal, ok := r.db.t[id]; ok {
		return *cal, nil
	}
	return calendar.Calendar{}, calendar.ErrCalendarNotFound
}

func (r *calendarRepository) GetActiveCalendar() (calendar.Calendar, error) {
	r.db.mutex.RLock()
	defer r.db.mutex.RUnlock()

	for _, cal := range r.query() {
		if cal.IsActive {
			return cal, nil
		}
	}
	return calendar.Calendar{}, calendar.ErrCalendarNotFound
}

func (r *calendarRepository) UpdateCalendar(cal calendar.Calendar) (calendar.Calendar, error) {
	r.db.mutex.Lock()
	defer r.db.mutex.Unlock()

	if _, ok := r.db.t[cal.ID]; !ok {
		return calendar.Calendar{}, calendar.ErrCalendarNotFound
	}
	r.db.t[cal.ID] = &cal
	return cal, nil
}

func (r *calendarRepository) DeleteCalendar(id string) error {
	r.db.mutex.Lock()
	defer r.db.mutex.Unlock()

	delete(r.db.t, id)
	return nil
}

func (r *calendarRepository) ActivateCalendar(id string) error {
	r.db.mutex.Lock()
	defer r.db.mutex.Unlock()

	target, ok := r.db.t[id]
	if !ok {
		return calendar.ErrCalendarNotFound
	}
	for _, cal := range r.db.t {
		cal.IsActive = false
	}
	target.IsActive = true
	return nil
}

type termRepository struct {
	db *termTable
}

func NewTermRepository(db *DB) calendar.TermRepository {
	return &termRepository{db: db.term}
}

func (r *termRepository) queryByCalendar(calendarID string) []calendar.Term {
	res := make([]calendar.Term, 0)
	for _, term := range r.db.t {
		if term.CalendarID == calendarID {
			res = append(res, *term)
		}
	}
	sort.Slice(res, func(i, j int) bool {
		if res[i].StartDate != res[j].StartDate {
			return res[i].StartDate < res[j].StartDate
		}
		return res[i].ID < res[j].ID
	})
	return res
}

func (r *termRepository) CreateTerm(term calendar.Term) (calendar.Term, error) {
	r.db.mutex.Lock()
	defer r.db.mutex.Unlock()

	term.ID = uuid.New().String()
	r.db.t[term.ID] = &term
	return term, nil
}

func (r *termRepository) QueryTermsByCalendar(calendarID string) ([]calendar.Term, error) {
	r.db.mutex.RLock()
	defer r.db.mutex.RUnlock()
	return r.queryByCalendar(calendarID), nil
}

func (r *termRepository) GetTermByID(id string) (calendar.Term, error) {
	r.db.mutex.RLock()
	defer r.db.mutex.RUnlock()

	if term, ok := r.db.t[id]; ok {
		return *term, nil
	}
	return calendar.Term{}, calendar.ErrTermNotFound
}

func (r *termRepository) GetCurrentTerm(calendarID string) (calendar.Term, error) {
	r.db.mutex.RLock()
	defer r.db.mutex.RUnlock()

	for _, term := range r.queryByCalendar(calendarID) {
		if term.IsCurrent {
			return term, nil
		}
	}
	return calendar.Term{}, calendar.ErrTermNotFound
}

func (r *termRepository) UpdateTerm(term calendar.Term) (calendar.Term, error) {
	r.db.mutex.Lock()
	defer r.db.mutex.Unlock()

	if _, ok := r.db.t[term.ID]; !ok {
		return calendar.Term{}, calendar.ErrTermNotFound
	}
	r.db.t[term.ID] = &term
	return term, nil
}

func (r *termRepository) DeleteTerm(id string) error {
	r.db.mutex.Lock()
	defer r.db.mutex.Unlock()

	delete(r.db.t, id)
	return nil
}

func (r *termRepository) SetCurrentTerm(calendarID, termID string) error {
	r.db.mutex.Lock()
	defer r.db.mutex.Unlock()

	target, ok := r.db.t[termID]
	if !ok || target.CalendarID != calendarID {
		return calendar.ErrTermNotFound
	}
	for _, term := range r.db.t {
		if term.CalendarID == calendarID {
			term.IsCurrent = false
		}
	}
	target.IsCurrent = true
	return nil
}

type holidayRepository struct {
	db *holidayTable
}

func NewHolidayRepository(db *DB) calendar.HolidayRepository {
	return &holidayRepository{db: db.holiday}
}

func (r *holidayRepository) CreateHoliday(hol calendar.Holiday) (calendar.Holiday, error) {
	r.db.mutex.Lock()
	defer r.db.mutex.Unlock()

	hol.ID = uuid.New().String()
	r.db.t[hol.ID] = &hol
	return hol, nil
}

func (r *holidayRepository) QueryHolidaysByCalendar(calendarID string) ([]calendar.Holiday, error) {
	r.db.mutex.RLock()
	defer r.db.mutex.RUnlock()

	res := make([]calendar.Holiday, 0)
	for _, hol := range r.db.t {
		if hol.CalendarID == calendarID {
			res = append(res, *hol)
		}
	}
	sort.Slice(res, func(i, j int) bool {
		if res[i].Date != res[j].Date {
			return res[i].Date < res[j].Date
		}
		return res[i].ID < res[j].ID
	})
	return res, nil
}

func (r *holidayRepository) GetHolidayByID(id string) (calendar.Holiday, error) {
	r.db.mutex.RLock()
	defer r.db.mutex.RUnlock()

	if hol, ok := r.db.t[id]; ok {
		return *hol, nil
	}
	return calendar.Holiday{}, calendar.ErrHolidayNotFound
}

func (r *holidayRepository) UpdateHoliday(hol calendar.Holiday) (calendar.Holiday, error) {
	r.db.mutex.Lock()
	defer r.db.mutex.Unlock()

	if _, ok := r.db.t[hol.ID]; !ok {
		return calendar.Holiday{}, calendar.ErrHolidayNotFound
	}
	r.db.t[hol.ID] = &hol
	return hol, nil
}

func (r *holidayRepository) DeleteHoliday(id string) error {
	r.db.mutex.Lock()
	defer r.db.mutex.Unlock()

	delete(r.db.t, id)
	return nil
}
