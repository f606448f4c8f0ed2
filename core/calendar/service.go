package calendar

import (
	"errors"
	"time"

	"github.com/DaddyBoye/School-Management-sub001/core"
)

var (
	// errors
	ErrCalendarNotFound = errors.New("calendar not found")
	ErrTermNotFound     = errors.New("term not found")
	ErrHolidayNotFound  = errors.New("holiday not found")
)

type (
	Repository interface {
		CreateCalendar(cal Calendar) (Calendar, error)
		QueryAllCalendars() ([]Calendar, error)
		GetCalendarByID(id string) (Calendar, error)
		GetActiveCalendar() (Calendar, error)
		UpdateCalendar(cal Calendar) (Calendar, error)
		DeleteCalendar(id string) error
		// ActivateCalendar deactivates every other calendar then activates the
		// target. Implementations back both writes with one transaction or
		// lock where the store permits; otherwise the documented transient
		// race window between the two writes applies.
		ActivateCalendar(id string) error
	}

	TermRepository interface {
		CreateTerm(t Term) (Term, error)
		QueryTermsByCalendar(calendarID string) ([]Term, error)
		GetTermByID(id string) (Term, error)
		GetCurrentTerm(calendarID string) (Term, error)
		UpdateTerm(t Term) (Term, error)
		DeleteTerm(id string) error
		// SetCurrentTerm clears is_current on every other term of the calendar
		// then sets it on the target; same atomicity contract as ActivateCalendar.
		SetCurrentTerm(calendarID, termID string) error
	}

	HolidayRepository interface {
		CreateHoliday(h Holiday) (Holiday, error)
		QueryHolidaysByCalendar(calendarID string) ([]Holiday, error)
		GetHolidayByID(id string) (Holiday, error)
		UpdateHoliday(h Holiday) (Holiday, error)
		DeleteHoliday(id string) error
	}

	// Service owns SchoolCalendar records.
	Service struct {
		repo   Repository
		terms  TermRepository
		notify func() // called after every successful mutation; may be nil
	}

	// TermService owns CalendarTerm records nested in a calendar and enforces
	// the containment, non-overlap and current-term invariants.
	TermService struct {
		repo   TermRepository
		cals   Repository
		notify func()
	}

	// HolidayService owns Holiday records tied to a calendar.
	HolidayService struct {
		repo   HolidayRepository
		cals   Repository
		notify func()
	}
)

func NewService(repo Repository, terms TermRepository, notify func()) *Service {
	return &Service{repo: repo, terms: terms, notify: notify}
}

func NewTermService(repo TermRepository, cals Repository, notify func()) *TermService {
	return &TermService{repo: repo, cals: cals, notify: notify}
}

func NewHolidayService(repo HolidayRepository, cals Repository, notify func()) *HolidayService {
	return &HolidayService{repo: repo, cals: cals, notify: notify}
}

func (svc *Service) notifyChange() {
	if svc.notify != nil {
		svc.notify()
	}
}

func (svc *Service) Create(nc NewCalendar) (Calendar, error) {
	if nc.StartDate > nc.EndDate {
		return Calendar{}, core.NewErrorf(core.KindRangeViolation,
			"calendar %q starts after it ends (%s > %s)", nc.Name, nc.StartDate, nc.EndDate)
	}
	now := time.Now().UTC()
	cal := Calendar{
		Name:      core.CleanString(nc.Name),
		StartDate: nc.StartDate,
		EndDate:   nc.EndDate,
		CreatedAt: now,
		UpdatedAt: now,
	}
	cal, err := svc.repo.CreateCalendar(cal)
	if err != nil {
		return Calendar{}, err
	}
	if nc.IsActive {
		if err = svc.repo.ActivateCalendar(cal.ID); err != nil {
			return Calendar{}, err
		}
		cal.IsActive = true
	}
	svc.notifyChange()
	return cal, nil
}

func (svc *Service) QueryAll() ([]Calendar, error) {
	return svc.repo.QueryAllCalendars()
}

func (svc *Service) GetByID(id string) (Calendar, error) {
	return svc.repo.GetCalendarByID(id)
}

func (svc *Service) GetActive() (Calendar, error) {
	return svc.repo.GetActiveCalendar()
}

func (svc *Service) Update(id string, uc UpdateCalendar) (Calendar, error) {
	cal, err := svc.repo.GetCalendarByID(id)
	if err != nil {
		return Calendar{}, err
	}
	if uc.StartDate > uc.EndDate {
		return Calendar{}, core.NewErrorf(core.KindRangeViolation,
			"calendar %q starts after it ends (%s > %s)", uc.Name, uc.StartDate, uc.EndDate)
	}
	cal.Name = core.CleanString(uc.Name)
	cal.StartDate = uc.StartDate
	cal.EndDate = uc.EndDate
	cal.UpdatedAt = time.Now().UTC()
	cal, err = svc.repo.UpdateCalendar(cal)
	if err != nil {
		return Calendar{}, err
	}
	if uc.IsActive && !cal.IsActive {
		if err = svc.repo.ActivateCalendar(cal.ID); err != nil {
			return Calendar{}, err
		}
		cal.IsActive = true
	}
	svc.notifyChange()
	return cal, nil
}

// Delete removes a calendar. It is refused while the calendar still owns terms.
func (svc *Service) Delete(id string) error {
	cal, err := svc.repo.GetCalendarByID(id)
	if err != nil {
		return err
	}
	terms, err := svc.terms.QueryTermsByCalendar(id)
	if err != nil {
		return err
	}
	if len(terms) > 0 {
		return core.NewErrorf(core.KindReferentialBlock,
			"calendar %q still has %d term(s)", cal.Name, len(terms))
	}
	if err = svc.repo.DeleteCalendar(id); err != nil {
		return err
	}
	svc.notifyChange()
	return nil
}

// Activate makes the target the single active calendar.
func (svc *Service) Activate(id string) error {
	if _, err := svc.repo.GetCalendarByID(id); err != nil {
		return err
	}
	if err := svc.repo.ActivateCalendar(id); err != nil {
		return err
	}
	svc.notifyChange()
	return nil
}

// AutoSetActiveByDate activates the calendar whose range contains `today`.
// ErrCalendarNotFound is returned when no calendar contains the date.
func (svc *Service) AutoSetActiveByDate(today string) (Calendar, error) {
	cals, err := svc.repo.QueryAllCalendars()
	if err != nil {
		return Calendar{}, err
	}
	for _, cal := range cals {
		if cal.Range().ContainsDate(today) {
			if err = svc.repo.ActivateCalendar(cal.ID); err != nil {
				return Calendar{}, err
			}
			cal.IsActive = true
			svc.notifyChange()
			return cal, nil
		}
	}
	return Calendar{}, ErrCalendarNotFound
}

func (svc *TermService) notifyChange() {
	if svc.notify != nil {
		svc.notify()
	}
}

// checkRange enforces start <= end and containment in the owning calendar.
func (svc *TermService) checkRange(cal Calendar, name string, rng DateRange) error {
	if rng.Start > rng.End {
		return core.NewErrorf(core.KindRangeViolation,
			"term %q starts after it ends (%s > %s)", name, rng.Start, rng.End)
	}
	if !cal.Range().Contains(rng) {
		return core.NewErrorf(core.KindRangeViolation,
			"term %q (%s..%s) falls outside calendar %q (%s..%s)",
			name, rng.Start, rng.End, cal.Name, cal.StartDate, cal.EndDate)
	}
	return nil
}

// checkOverlap scans every other non-break term of the calendar with the
// boundary-inclusive predicate. Break terms are exempt on both sides.
func (svc *TermService) checkOverlap(calendarID, excludeID, name string, rng DateRange) error {
	terms, err := svc.repo.QueryTermsByCalendar(calendarID)
	if err != nil {
		return err
	}
	for _, other := range terms {
		if other.ID == excludeID || other.IsBreak {
			continue
		}
		if rng.Overlaps(other.Range()) {
			return core.NewErrorf(core.KindOverlap,
				"term %q (%s..%s) overlaps term %q (%s..%s)",
				name, rng.Start, rng.End, other.Name, other.StartDate, other.EndDate)
		}
	}
	return nil
}

func (svc *TermService) Add(nt NewTerm) (Term, error) {
	cal, err := svc.cals.GetCalendarByID(nt.CalendarID)
	if err != nil {
		return Term{}, err
	}
	rng := DateRange{Start: nt.StartDate, End: nt.EndDate}
	if err = svc.checkRange(cal, nt.Name, rng); err != nil {
		return Term{}, err
	}
	if !nt.IsBreak {
		if err = svc.checkOverlap(cal.ID, "", nt.Name, rng); err != nil {
			return Term{}, err
		}
	}
	now := time.Now().UTC()
	term := Term{
		CalendarID: cal.ID,
		Name:       core.CleanString(nt.Name),
		StartDate:  nt.StartDate,
		EndDate:    nt.EndDate,
		IsBreak:    nt.IsBreak,
		TermType:   nt.TermType,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	term, err = svc.repo.CreateTerm(term)
	if err != nil {
		return Term{}, err
	}
	if nt.IsCurrent {
		if err = svc.repo.SetCurrentTerm(cal.ID, term.ID); err != nil {
			return Term{}, err
		}
		term.IsCurrent = true
	}
	svc.notifyChange()
	return term, nil
}

// Edit reapplies the Add checks, excluding the term being edited from the
// overlap scan, and replaces the record wholesale.
func (svc *TermService) Edit(id string, ut UpdateTerm) (Term, error) {
	term, err := svc.repo.GetTermByID(id)
	if err != nil {
		return Term{}, err
	}
	cal, err := svc.cals.GetCalendarByID(term.CalendarID)
	if err != nil {
		return Term{}, err
	}
	rng := DateRange{Start: ut.StartDate, End: ut.EndDate}
	if err = svc.checkRange(cal, ut.Name, rng); err != nil {
		return Term{}, err
	}
	if !ut.IsBreak {
		if err = svc.checkOverlap(cal.ID, term.ID, ut.Name, rng); err != nil {
			return Term{}, err
		}
	}
	term.Name = core.CleanString(ut.Name)
	term.StartDate = ut.StartDate
	term.EndDate = ut.EndDate
	term.IsBreak = ut.IsBreak
	term.TermType = ut.TermType
	term.UpdatedAt = time.Now().UTC()
	term, err = svc.repo.UpdateTerm(term)
	if err != nil {
		return Term{}, err
	}
	if ut.IsCurrent && !term.IsCurrent {
		if err = svc.repo.SetCurrentTerm(cal.ID, term.ID); err != nil {
			return Term{}, err
		}
		term.IsCurrent = true
	}
	svc.notifyChange()
	return term, nil
}

func (svc *TermService) QueryByCalendar(calendarID string) ([]Term, error) {
	return svc.repo.QueryTermsByCalendar(calendarID)
}

func (svc *TermService) GetByID(id string) (Term, error) {
	return svc.repo.GetTermByID(id)
}

func (svc *TermService) GetCurrent(calendarID string) (Term, error) {
	return svc.repo.GetCurrentTerm(calendarID)
}

// Delete is unconditional; terms carry no delete guard.
func (svc *TermService) Delete(id string) error {
	if _, err := svc.repo.GetTermByID(id); err != nil {
		return err
	}
	if err := svc.repo.DeleteTerm(id); err != nil {
		return err
	}
	svc.notifyChange()
	return nil
}

// SetCurrent makes the target the single current term of its calendar. Calling
// it on the already-current term is a no-op.
func (svc *TermService) SetCurrent(id string) error {
	term, err := svc.repo.GetTermByID(id)
	if err != nil {
		return err
	}
	if err = svc.repo.SetCurrentTerm(term.CalendarID, term.ID); err != nil {
		return err
	}
	svc.notifyChange()
	return nil
}

// AutoSetCurrentByDate marks current the active calendar's term containing
// `today`, preferring instructional terms over breaks when both contain it.
// ErrTermNotFound is returned when no term contains the date.
func (svc *TermService) AutoSetCurrentByDate(today string) (Term, error) {
	cal, err := svc.cals.GetActiveCalendar()
	if err != nil {
		return Term{}, err
	}
	terms, err := svc.repo.QueryTermsByCalendar(cal.ID)
	if err != nil {
		return Term{}, err
	}
	var match *Term
	for i, term := range terms {
		if !term.Range().ContainsDate(today) {
			continue
		}
		if match == nil || (match.IsBreak && !term.IsBreak) {
			match = &terms[i]
		}
	}
	if match == nil {
		return Term{}, ErrTermNotFound
	}
	if err = svc.repo.SetCurrentTerm(cal.ID, match.ID); err != nil {
		return Term{}, err
	}
	match.IsCurrent = true
	svc.notifyChange()
	return *match, nil
}

func (svc *HolidayService) notifyChange() {
	if svc.notify != nil {
		svc.notify()
	}
}

func (svc *HolidayService) Add(nh NewHoliday) (Holiday, error) {
	cal, err := svc.cals.GetCalendarByID(nh.CalendarID)
	if err != nil {
		return Holiday{}, err
	}
	if !cal.Range().ContainsDate(nh.Date) {
		return Holiday{}, core.NewErrorf(core.KindRangeViolation,
			"holiday %q (%s) falls outside calendar %q (%s..%s)",
			nh.Name, nh.Date, cal.Name, cal.StartDate, cal.EndDate)
	}
	now := time.Now().UTC()
	hol := Holiday{
		CalendarID: cal.ID,
		Name:       core.CleanString(nh.Name),
		Date:       nh.Date,
		Recurring:  nh.Recurring,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	hol, err = svc.repo.CreateHoliday(hol)
	if err != nil {
		return Holiday{}, err
	}
	svc.notifyChange()
	return hol, nil
}

func (svc *HolidayService) Edit(id string, uh UpdateHoliday) (Holiday, error) {
	hol, err := svc.repo.GetHolidayByID(id)
	if err != nil {
		return Holiday{}, err
	}
	cal, err := svc.cals.GetCalendarByID(hol.CalendarID)
	if err != nil {
		return Holiday{}, err
	}
	if !cal.Range().ContainsDate(uh.Date) {
		return Holiday{}, core.NewErrorf(core.KindRangeViolation,
			"holiday %q (%s) falls outside calendar %q (%s..%s)",
			uh.Name, uh.Date, cal.Name, cal.StartDate, cal.EndDate)
	}
	hol.Name = core.CleanString(uh.Name)
	hol.Date = uh.Date
	hol.Recurring = uh.Recurring
	hol.UpdatedAt = time.Now().UTC()
	hol, err = svc.repo.UpdateHoliday(hol)
	if err != nil {
		return Holiday{}, err
	}
	svc.notifyChange()
	return hol, nil
}

func (svc *HolidayService) QueryByCalendar(calendarID string) ([]Holiday, error) {
	return svc.repo.QueryHolidaysByCalendar(calendarID)
}

func (svc *HolidayService) Delete(id string) error {
	if _, err := svc.repo.GetHolidayByID(id); err != nil {
		return err
	}
	if err := svc.repo.DeleteHoliday(id); err != nil {
		return err
	}
	svc.notifyChange()
	return nil
}
