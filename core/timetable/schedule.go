package timetable

import (
	"fmt"
	"sort"
	"strconv"
	"sync"

	"github.com/DaddyBoye/School-Management-sub001/core"
	"github.com/DaddyBoye/School-Management-sub001/core/calendar"
)

// TimeslotGroup is one row of a rendered schedule: a timeslot and the entries
// assigned to it.
type TimeslotGroup struct {
	TimeslotID string   `json:"timeslot_id"`
	Timeslot   Timeslot `json:"timeslot"`
	Entries    []Entry  `json:"entries"`
}

// EntriesOn keeps the entries active on a concrete date falling on `weekday`:
// entries of that weekday which are recurring or whose date window contains
// the date. Term and holiday membership are not consulted.
func EntriesOn(date string, weekday int, entries []Entry) []Entry {
	res := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if e.ActiveOn(date, weekday) {
			res = append(res, e)
		}
	}
	return res
}

// GroupByTimeslot buckets entries by timeslot id, ordered by ascending
// start_time. Start times are zero-padded "HH:mm:ss" strings, so the
// lexicographic comparison equals chronological order. Entries referencing a
// timeslot missing from `slots` keep their bucket and sort last.
func GroupByTimeslot(entries []Entry, slots []Timeslot) []TimeslotGroup {
	byID := make(map[string]Timeslot, len(slots))
	for _, ts := range slots {
		byID[ts.ID] = ts
	}

	groups := make(map[string][]Entry)
	order := make([]string, 0)
	for _, e := range entries {
		if _, ok := groups[e.TimeslotID]; !ok {
			order = append(order, e.TimeslotID)
		}
		groups[e.TimeslotID] = append(groups[e.TimeslotID], e)
	}

	sortKey := func(id string) string {
		if ts, ok := byID[id]; ok {
			return ts.StartTime + " " + id
		}
		return "~" + id // '~' > '9': unresolved slots sort last
	}
	sort.SliceStable(order, func(i, j int) bool {
		return sortKey(order[i]) < sortKey(order[j])
	})

	res := make([]TimeslotGroup, 0, len(order))
	for _, id := range order {
		res = append(res, TimeslotGroup{TimeslotID: id, Timeslot: byID[id], Entries: groups[id]})
	}
	return res
}

// TermsOverlappingRange keeps the terms whose range conflicts with
// [start, end] under the boundary-inclusive predicate, regardless of is_break.
// It annotates a dated entry with the term(s) it falls in; the inclusive
// boundaries mean more than one term may legitimately match.
func TermsOverlappingRange(start, end string, terms []calendar.Term) []calendar.Term {
	rng := calendar.DateRange{Start: start, End: end}
	res := make([]calendar.Term, 0, len(terms))
	for _, t := range terms {
		if rng.Overlaps(t.Range()) {
			res = append(res, t)
		}
	}
	return res
}

// WeeklyDayEntries keeps the entries of one (timeslot, day) cell by plain
// equality, ignoring recurring/date bounds entirely. It renders the static
// weekly grid template and answers "what does a typical week look like";
// EntriesOn answers "what is true on calendar date X". The two are distinct
// operations and must stay that way.
func WeeklyDayEntries(entries []Entry, timeslotID string, dayOfWeek int) []Entry {
	res := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if e.TimeslotID == timeslotID && e.DayOfWeek == dayOfWeek {
			res = append(res, e)
		}
	}
	return res
}

// ScheduleService is the sole read surface exposed to the rendering layer.
// Its queries are pure and side-effect-free; results are memoized per
// (operation, arguments) key until Invalidate is called. Results computed
// while an invalidation lands are returned but never cached, so a stale
// in-flight read cannot shadow fresher data.
type ScheduleService struct {
	entries EntryRepository
	slots   TimeslotRepository
	terms   calendar.TermRepository

	mu    sync.Mutex
	gen   uint64
	cache map[string]interface{}
}

func NewScheduleService(entries EntryRepository, slots TimeslotRepository, terms calendar.TermRepository) *ScheduleService {
	return &ScheduleService{
		entries: entries,
		slots:   slots,
		terms:   terms,
		cache:   make(map[string]interface{}),
	}
}

// Invalidate drops every memoized result. The owning services call it after
// each successful mutation of the entry/timeslot/term collections.
func (svc *ScheduleService) Invalidate() {
	svc.mu.Lock()
	svc.gen++
	svc.cache = make(map[string]interface{})
	svc.mu.Unlock()
}

func (svc *ScheduleService) cached(key string, compute func() (interface{}, error)) (interface{}, error) {
	svc.mu.Lock()
	if val, ok := svc.cache[key]; ok {
		svc.mu.Unlock()
		return val, nil
	}
	gen := svc.gen
	svc.mu.Unlock()

	val, err := compute()
	if err != nil {
		return nil, err
	}

	svc.mu.Lock()
	if svc.gen == gen {
		svc.cache[key] = val
	}
	svc.mu.Unlock()
	return val, nil
}

// EntriesOnDate resolves which entries are active on a concrete date.
func (svc *ScheduleService) EntriesOnDate(date string) ([]Entry, error) {
	weekday, err := core.Weekday(date)
	if err != nil {
		return nil, core.NewErrorf(core.KindValidation, "invalid date %q", date)
	}
	val, err := svc.cached("day|"+date, func() (interface{}, error) {
		entries, err := svc.entries.FilterEntries(EntryFilter{DayOfWeek: &weekday})
		if err != nil {
			return nil, err
		}
		return EntriesOn(date, weekday, entries), nil
	})
	if err != nil {
		return nil, err
	}
	return val.([]Entry), nil
}

// DayView returns the entries active on a date grouped by timeslot, ordered by
// ascending start_time.
func (svc *ScheduleService) DayView(date string) ([]TimeslotGroup, error) {
	entries, err := svc.EntriesOnDate(date)
	if err != nil {
		return nil, err
	}
	val, err := svc.cached("dayview|"+date, func() (interface{}, error) {
		slots, err := svc.slots.QueryAllTimeslots()
		if err != nil {
			return nil, err
		}
		return GroupByTimeslot(entries, slots), nil
	})
	if err != nil {
		return nil, err
	}
	return val.([]TimeslotGroup), nil
}

// WeeklyGridCell returns the static weekly grid entries of one
// (timeslot, day) cell.
func (svc *ScheduleService) WeeklyGridCell(timeslotID string, dayOfWeek int) ([]Entry, error) {
	if dayOfWeek < 0 || dayOfWeek > 6 {
		return nil, core.NewErrorf(core.KindValidation, "invalid day of week %d", dayOfWeek)
	}
	key := "week|" + timeslotID + "|" + strconv.Itoa(dayOfWeek)
	val, err := svc.cached(key, func() (interface{}, error) {
		entries, err := svc.entries.FilterEntries(EntryFilter{TimeslotID: timeslotID, DayOfWeek: &dayOfWeek})
		if err != nil {
			return nil, err
		}
		return WeeklyDayEntries(entries, timeslotID, dayOfWeek), nil
	})
	if err != nil {
		return nil, err
	}
	return val.([]Entry), nil
}

// TermsForRange annotates a date range with the calendar's term(s) it overlaps.
// Term membership is always derived from the date ranges, never stored.
func (svc *ScheduleService) TermsForRange(calendarID, start, end string) ([]calendar.Term, error) {
	if !core.ValidDate(start) || !core.ValidDate(end) {
		return nil, core.NewErrorf(core.KindValidation, "invalid date range %q..%q", start, end)
	}
	key := fmt.Sprintf("terms|%s|%s|%s", calendarID, start, end)
	val, err := svc.cached(key, func() (interface{}, error) {
		terms, err := svc.terms.QueryTermsByCalendar(calendarID)
		if err != nil {
			return nil, err
		}
		return TermsOverlappingRange(start, end, terms), nil
	})
	if err != nil {
		return nil, err
	}
	return val.([]calendar.Term), nil
}
