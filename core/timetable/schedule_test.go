package timetable_test

import (
	"testing"

	"github.com/DaddyBoye/School-Management-sub001/core"
	"github.com/DaddyBoye/School-Management-sub001/core/calendar"
	"github.com/DaddyBoye/School-Management-sub001/core/timetable"
	inmemdb "github.com/DaddyBoye/School-Management-sub001/storage/database/inmem"
)

type scheduleFixture struct {
	calSvc   *calendar.Service
	termSvc  *calendar.TermService
	slotSvc  *timetable.TimeslotService
	entrySvc *timetable.EntryService
	schedSvc *timetable.ScheduleService
}

func setupSchedule(t *testing.T) *scheduleFixture {
	db, err := inmemdb.Open()
	if err != nil {
		t.Fatalf("inmemdb.Open() failed: %v", err)
	}
	calRepo := inmemdb.NewCalendarRepository(db)
	termRepo := inmemdb.NewTermRepository(db)
	slotRepo := inmemdb.NewTimeslotRepository(db)
	entryRepo := inmemdb.NewEntryRepository(db)

	schedSvc := timetable.NewScheduleService(entryRepo, slotRepo, termRepo)
	return &scheduleFixture{
		calSvc:   calendar.NewService(calRepo, termRepo, schedSvc.Invalidate),
		termSvc:  calendar.NewTermService(termRepo, calRepo, schedSvc.Invalidate),
		slotSvc:  timetable.NewTimeslotService(slotRepo, entryRepo, schedSvc.Invalidate),
		entrySvc: timetable.NewEntryService(entryRepo, slotRepo, schedSvc.Invalidate),
		schedSvc: schedSvc,
	}
}

func TestScheduleService_EntriesOnDate(t *testing.T) {
	fix := setupSchedule(t)

	period1 := createTimeslot(t, fix.slotSvc, "Period 1", "08:00:00", "09:00:00", false)

	recurring, err := fix.entrySvc.Create(newEntry(period1.ID))
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	dated := newEntry(period1.ID)
	dated.SubjectID = "subj-art"
	dated.Recurring = false
	dated.StartDate = strPtr("2024-09-01")
	dated.EndDate = strPtr("2024-09-30")
	datedEntry, err := fix.entrySvc.Create(dated)
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	has := func(entries []timetable.Entry, id string) bool {
		for _, e := range entries {
			if e.ID == id {
				return true
			}
		}
		return false
	}

	tests := []struct {
		name      string
		date      string
		recurring bool
		dated     bool
	}{
		{name: "monday inside window", date: "2024-09-02", recurring: true, dated: true},
		{name: "next monday inside window", date: "2024-09-09", recurring: true, dated: true},
		{name: "monday after window", date: "2024-10-07", recurring: true, dated: false},
		{name: "tuesday", date: "2024-09-03", recurring: false, dated: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, err := fix.schedSvc.EntriesOnDate(tt.date)
			if err != nil {
				t.Fatalf("EntriesOnDate() failed: %v", err)
			}
			if got := has(entries, recurring.ID); got != tt.recurring {
				t.Errorf("recurring entry present = %v, want %v", got, tt.recurring)
			}
			if got := has(entries, datedEntry.ID); got != tt.dated {
				t.Errorf("dated entry present = %v, want %v", got, tt.dated)
			}
		})
	}

	t.Run("invalid date", func(t *testing.T) {
		if _, err := fix.schedSvc.EntriesOnDate("02/09/2024"); !core.IsKind(err, core.KindValidation) {
			t.Errorf("EntriesOnDate() error = %v, want VALIDATION", err)
		}
	})
}

func TestScheduleService_DayView(t *testing.T) {
	fix := setupSchedule(t)

	period2 := createTimeslot(t, fix.slotSvc, "Period 2", "09:00:00", "10:00:00", false)
	period1 := createTimeslot(t, fix.slotSvc, "Period 1", "08:00:00", "09:00:00", false)

	for _, slotID := range []string{period1.ID, period2.ID, period1.ID} {
		ne := newEntry(slotID)
		if _, err := fix.entrySvc.Create(ne); err != nil {
			t.Fatalf("Create() failed: %v", err)
		}
	}

	groups, err := fix.schedSvc.DayView("2024-09-02") // a Monday
	if err != nil {
		t.Fatalf("DayView() failed: %v", err)
	}

	// every entry lands in exactly one group, none duplicated
	total := 0
	seen := make(map[string]bool)
	for _, g := range groups {
		for _, e := range g.Entries {
			if e.TimeslotID != g.TimeslotID {
				t.Errorf("entry %s in group %s", e.TimeslotID, g.TimeslotID)
			}
			if seen[e.ID] {
				t.Errorf("entry %s appears twice", e.ID)
			}
			seen[e.ID] = true
			total++
		}
	}
	if total != 3 {
		t.Errorf("DayView() holds %d entries, want 3", total)
	}

	// groups ordered by ascending start time
	for i := 1; i < len(groups); i++ {
		if groups[i-1].Timeslot.StartTime > groups[i].Timeslot.StartTime {
			t.Errorf("groups out of order: %q before %q", groups[i-1].Timeslot.Name, groups[i].Timeslot.Name)
		}
	}
}

func TestGroupByTimeslot_UnresolvedSlot(t *testing.T) {
	slots := []timetable.Timeslot{
		{ID: "s1", Name: "Period 1", StartTime: "08:00:00", EndTime: "09:00:00"},
	}
	entries := []timetable.Entry{
		{ID: "e1", TimeslotID: "ghost", DayOfWeek: 1, Recurring: true},
		{ID: "e2", TimeslotID: "s1", DayOfWeek: 1, Recurring: true},
	}

	groups := timetable.GroupByTimeslot(entries, slots)
	if len(groups) != 2 {
		t.Fatalf("GroupByTimeslot() = %d groups, want 2", len(groups))
	}
	// the entry keeps its bucket even though its slot is gone, and sorts last
	if groups[len(groups)-1].TimeslotID != "ghost" {
		t.Errorf("unresolved slot group sorted at %v, want last", groups)
	}
	if len(groups[1].Entries) != 1 || groups[1].Entries[0].ID != "e1" {
		t.Errorf("unresolved group entries = %+v, want [e1]", groups[1].Entries)
	}
}

func TestScheduleService_WeeklyGridCell(t *testing.T) {
	fix := setupSchedule(t)

	period1 := createTimeslot(t, fix.slotSvc, "Period 1", "08:00:00", "09:00:00", false)

	// a dated entry whose window is long past still belongs to the weekly grid
	stale := newEntry(period1.ID)
	stale.Recurring = false
	stale.StartDate = strPtr("2020-01-05")
	stale.EndDate = strPtr("2020-01-31")
	entry, err := fix.entrySvc.Create(stale)
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	cell, err := fix.schedSvc.WeeklyGridCell(period1.ID, 1)
	if err != nil {
		t.Fatalf("WeeklyGridCell() failed: %v", err)
	}
	if len(cell) != 1 || cell[0].ID != entry.ID {
		t.Errorf("WeeklyGridCell() = %+v, want the dated entry regardless of window", cell)
	}

	// while the dated view on a current Monday excludes it
	entries, err := fix.schedSvc.EntriesOnDate("2024-09-02")
	if err != nil {
		t.Fatalf("EntriesOnDate() failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("EntriesOnDate() = %d entries, want 0", len(entries))
	}

	t.Run("empty cell", func(t *testing.T) {
		cell, err := fix.schedSvc.WeeklyGridCell(period1.ID, 4)
		if err != nil {
			t.Fatalf("WeeklyGridCell() failed: %v", err)
		}
		if len(cell) != 0 {
			t.Errorf("WeeklyGridCell() = %d entries, want 0", len(cell))
		}
	})

	t.Run("invalid day", func(t *testing.T) {
		if _, err := fix.schedSvc.WeeklyGridCell(period1.ID, 7); !core.IsKind(err, core.KindValidation) {
			t.Errorf("WeeklyGridCell() error = %v, want VALIDATION", err)
		}
	})
}

func TestScheduleService_TermsForRange(t *testing.T) {
	fix := setupSchedule(t)

	cal, err := fix.calSvc.Create(calendar.NewCalendar{
		Name: "2024-2025", StartDate: "2024-09-01", EndDate: "2025-06-30", IsActive: true,
	})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	add := func(name, start, end string, isBreak bool) {
		if _, err := fix.termSvc.Add(calendar.NewTerm{
			CalendarID: cal.ID, Name: name, StartDate: start, EndDate: end,
			IsBreak: isBreak, TermType: calendar.TermTypeOther,
		}); err != nil {
			t.Fatalf("Add(%q) failed: %v", name, err)
		}
	}
	add("Fall", "2024-09-01", "2024-12-20", false)
	add("Winter Break", "2024-12-15", "2025-01-05", true)
	add("Spring", "2025-01-06", "2025-06-30", false)

	names := func(terms []calendar.Term) []string {
		res := make([]string, 0, len(terms))
		for _, t := range terms {
			res = append(res, t.Name)
		}
		return res
	}

	tests := []struct {
		name  string
		start string
		end   string
		want  int
	}{
		{name: "inside one term", start: "2024-10-01", end: "2024-10-31", want: 1},
		{name: "spans fall and break", start: "2024-12-10", end: "2024-12-30", want: 2},
		{name: "break terms are included", start: "2024-12-25", end: "2025-01-02", want: 1},
		{name: "shared end date with fall", start: "2024-11-01", end: "2024-12-20", want: 2},
		{name: "adjacent to break, overlaps spring only", start: "2025-01-05", end: "2025-01-10", want: 1},
		{name: "outside all terms", start: "2026-01-01", end: "2026-02-01", want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			terms, err := fix.schedSvc.TermsForRange(cal.ID, tt.start, tt.end)
			if err != nil {
				t.Fatalf("TermsForRange() failed: %v", err)
			}
			if len(terms) != tt.want {
				t.Errorf("TermsForRange() = %v, want %d terms", names(terms), tt.want)
			}
		})
	}

	t.Run("invalid range", func(t *testing.T) {
		if _, err := fix.schedSvc.TermsForRange(cal.ID, "bad", "2025-01-01"); !core.IsKind(err, core.KindValidation) {
			t.Errorf("TermsForRange() error = %v, want VALIDATION", err)
		}
	})
}

func TestScheduleService_CacheInvalidation(t *testing.T) {
	fix := setupSchedule(t)

	period1 := createTimeslot(t, fix.slotSvc, "Period 1", "08:00:00", "09:00:00", false)

	entries, err := fix.schedSvc.EntriesOnDate("2024-09-02")
	if err != nil {
		t.Fatalf("EntriesOnDate() failed: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("EntriesOnDate() = %d entries, want 0", len(entries))
	}

	// the mutation notifies the engine, dropping the memoized empty result
	if _, err = fix.entrySvc.Create(newEntry(period1.ID)); err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	entries, err = fix.schedSvc.EntriesOnDate("2024-09-02")
	if err != nil {
		t.Fatalf("EntriesOnDate() failed: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("EntriesOnDate() = %d entries after mutation, want 1", len(entries))
	}
}
