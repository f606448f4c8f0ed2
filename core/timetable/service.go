package timetable

import (
	"errors"
	"time"

	"github.com/DaddyBoye/School-Management-sub001/core"
)

var (
	// errors
	ErrTimeslotNotFound = errors.New("timeslot not found")
	ErrEntryNotFound    = errors.New("timetable entry not found")
)

type (
	TimeslotRepository interface {
		CreateTimeslot(ts Timeslot) (Timeslot, error)
		// QueryAllTimeslots returns timeslots ordered by ascending start_time.
		QueryAllTimeslots() ([]Timeslot, error)
		GetTimeslotByID(id string) (Timeslot, error)
		UpdateTimeslot(ts Timeslot) (Timeslot, error)
		DeleteTimeslot(id string) error
	}

	EntryRepository interface {
		CreateEntry(e Entry) (Entry, error)
		// FilterEntries applies AND on available EntryFilter fields.
		FilterEntries(filter EntryFilter) ([]Entry, error)
		GetEntryByID(id string) (Entry, error)
		UpdateEntry(e Entry) (Entry, error)
		DeleteEntry(id string) error
	}

	// TimeslotService owns the timeslot catalog. Timeslots carry no
	// cross-record invariant; the is_break flag alone drives the scheduler's
	// rejection rule.
	TimeslotService struct {
		repo    TimeslotRepository
		entries EntryRepository
		notify  func()
	}

	// EntryService owns timetable entry assignments. The same teacher or room
	// may appear in two entries sharing a day and timeslot: the absence of a
	// double-booking guard is a deliberate allowance (co-teaching, shared
	// rooms), not a gap.
	EntryService struct {
		repo   EntryRepository
		slots  TimeslotRepository
		notify func()
	}
)

func NewTimeslotService(repo TimeslotRepository, entries EntryRepository, notify func()) *TimeslotService {
	return &TimeslotService{repo: repo, entries: entries, notify: notify}
}

func NewEntryService(repo EntryRepository, slots TimeslotRepository, notify func()) *EntryService {
	return &EntryService{repo: repo, slots: slots, notify: notify}
}

func (svc *TimeslotService) notifyChange() {
	if svc.notify != nil {
		svc.notify()
	}
}

func (svc *TimeslotService) Create(nt NewTimeslot) (Timeslot, error) {
	if nt.StartTime > nt.EndTime {
		return Timeslot{}, core.NewErrorf(core.KindRangeViolation,
			"timeslot %q starts after it ends (%s > %s)", nt.Name, nt.StartTime, nt.EndTime)
	}
	now := time.Now().UTC()
	ts := Timeslot{
		Name:      core.CleanString(nt.Name),
		StartTime: nt.StartTime,
		EndTime:   nt.EndTime,
		DayOfWeek: nt.DayOfWeek,
		IsBreak:   nt.IsBreak,
		CreatedAt: now,
		UpdatedAt: now,
	}
	ts, err := svc.repo.CreateTimeslot(ts)
	if err != nil {
		return Timeslot{}, err
	}
	svc.notifyChange()
	return ts, nil
}

func (svc *TimeslotService) QueryAll() ([]Timeslot, error) {
	return svc.repo.QueryAllTimeslots()
}

func (svc *TimeslotService) GetByID(id string) (Timeslot, error) {
	return svc.repo.GetTimeslotByID(id)
}

func (svc *TimeslotService) Update(id string, ut UpdateTimeslot) (Timeslot, error) {
	ts, err := svc.repo.GetTimeslotByID(id)
	if err != nil {
		return Timeslot{}, err
	}
	if ut.StartTime > ut.EndTime {
		return Timeslot{}, core.NewErrorf(core.KindRangeViolation,
			"timeslot %q starts after it ends (%s > %s)", ut.Name, ut.StartTime, ut.EndTime)
	}
	ts.Name = core.CleanString(ut.Name)
	ts.StartTime = ut.StartTime
	ts.EndTime = ut.EndTime
	ts.DayOfWeek = ut.DayOfWeek
	ts.IsBreak = ut.IsBreak
	ts.UpdatedAt = time.Now().UTC()
	ts, err = svc.repo.UpdateTimeslot(ts)
	if err != nil {
		return Timeslot{}, err
	}
	svc.notifyChange()
	return ts, nil
}

// Delete removes a timeslot. It is refused while any timetable entry still
// references the slot.
func (svc *TimeslotService) Delete(id string) error {
	ts, err := svc.repo.GetTimeslotByID(id)
	if err != nil {
		return err
	}
	refs, err := svc.entries.FilterEntries(EntryFilter{TimeslotID: id})
	if err != nil {
		return err
	}
	if len(refs) > 0 {
		return core.NewErrorf(core.KindReferentialBlock,
			"timeslot %q is still referenced by %d timetable entr(ies)", ts.Name, len(refs))
	}
	if err = svc.repo.DeleteTimeslot(id); err != nil {
		return err
	}
	svc.notifyChange()
	return nil
}

func (svc *EntryService) notifyChange() {
	if svc.notify != nil {
		svc.notify()
	}
}

// checkFields resolves the timeslot and applies the break and dated-entry
// rules shared by Create and Update. It returns the entry dates to persist:
// recurring entries have any supplied dates cleared.
func (svc *EntryService) checkFields(ne NewEntry) (start, end *string, err error) {
	ts, err := svc.slots.GetTimeslotByID(ne.TimeslotID)
	if err != nil {
		return nil, nil, err
	}
	if ts.IsBreak {
		return nil, nil, core.NewErrorf(core.KindBreakTimeslot,
			"timeslot %q is a break period and cannot be assigned a class", ts.Name)
	}
	if ne.Recurring {
		return nil, nil, nil
	}
	if ne.StartDate == nil || ne.EndDate == nil {
		return nil, nil, core.NewError(core.KindValidation,
			"a dated entry requires both start_date and end_date")
	}
	if *ne.StartDate > *ne.EndDate {
		return nil, nil, core.NewErrorf(core.KindRangeViolation,
			"entry starts after it ends (%s > %s)", *ne.StartDate, *ne.EndDate)
	}
	return ne.StartDate, ne.EndDate, nil
}

func (svc *EntryService) Create(ne NewEntry) (Entry, error) {
	start, end, err := svc.checkFields(ne)
	if err != nil {
		return Entry{}, err
	}
	now := time.Now().UTC()
	entry := Entry{
		ClassID:    ne.ClassID,
		SubjectID:  ne.SubjectID,
		TeacherID:  ne.TeacherID,
		TimeslotID: ne.TimeslotID,
		RoomID:     ne.RoomID,
		DayOfWeek:  ne.DayOfWeek,
		Recurring:  ne.Recurring,
		StartDate:  start,
		EndDate:    end,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	entry, err = svc.repo.CreateEntry(entry)
	if err != nil {
		return Entry{}, err
	}
	svc.notifyChange()
	return entry, nil
}

// Update re-runs the Create validation and replaces the record wholesale.
func (svc *EntryService) Update(id string, ue UpdateEntry) (Entry, error) {
	entry, err := svc.repo.GetEntryByID(id)
	if err != nil {
		return Entry{}, err
	}
	start, end, err := svc.checkFields(ue)
	if err != nil {
		return Entry{}, err
	}
	entry.ClassID = ue.ClassID
	entry.SubjectID = ue.SubjectID
	entry.TeacherID = ue.TeacherID
	entry.TimeslotID = ue.TimeslotID
	entry.RoomID = ue.RoomID
	entry.DayOfWeek = ue.DayOfWeek
	entry.Recurring = ue.Recurring
	entry.StartDate = start
	entry.EndDate = end
	entry.UpdatedAt = time.Now().UTC()
	entry, err = svc.repo.UpdateEntry(entry)
	if err != nil {
		return Entry{}, err
	}
	svc.notifyChange()
	return entry, nil
}

func (svc *EntryService) Filter(filter EntryFilter) ([]Entry, error) {
	return svc.repo.FilterEntries(filter)
}

func (svc *EntryService) GetByID(id string) (Entry, error) {
	return svc.repo.GetEntryByID(id)
}

// Delete is unconditional.
func (svc *EntryService) Delete(id string) error {
	if _, err := svc.repo.GetEntryByID(id); err != nil {
		return err
	}
	if err := svc.repo.DeleteEntry(id); err != nil {
		return err
	}
	svc.notifyChange()
	return nil
}

// RoomInUse reports whether any timetable entry still references the room.
// The room catalog lives outside this subsystem; its delete flow consults this
// guard before removing a room.
func (svc *EntryService) RoomInUse(roomID string) (bool, error) {
	refs, err := svc.repo.FilterEntries(EntryFilter{RoomID: roomID})
	if err != nil {
		return false, err
	}
	return len(refs) > 0, nil
}
