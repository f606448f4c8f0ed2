// Package inmemdb provides mutex-guarded in-memory repositories, used by
// tests and local development. Each clear-all-then-set write (active calendar,
// current term) runs under a single table lock, so the two-step race the
// remote store may exhibit cannot occur here.
package inmemdb

import (
	"sync"

	"github.com/DaddyBoye/School-Management-sub001/core/calendar"
	"github.com/DaddyBoye/School-Management-sub001/core/timetable"
)

type (
	DB struct {
		calendar *calendarTable
		term     *termTable
		holiday  *holidayTable
		timeslot *timeslotTable
		entry    *entryTable
	}

	calendarTable struct {
		t     map[string]*calendar.Calendar
		mutex sync.RWMutex
	}

	termTable struct {
		t     map[string]*calendar.Term
		mutex sync.RWMutex
	}

	holidayTable struct {
		t     map[string]*calendar.Holiday
		mutex sync.RWMutex
	}

	timeslotTable struct {
		t     map[string]*timetable.Timeslot
		mutex sync.RWMutex
	}

	entryTable struct {
		t     map[string]*timetable.Entry
		mutex sync.RWMutex
	}
)

func Open() (*DB, error) {
	db := &DB{
		calendar: &calendarTable{t: make(map[string]*calendar.Calendar)},
		term:     &termTable{t: make(map[string]*calendar.Term)},
		holiday:  &holidayTable{t: make(map[string]*calendar.Holiday)},
		timeslot: &timeslotTable{t: make(map[string]*timetable.Timeslot)},
		entry:    &entryTable{t: make(map[string]*timetable.Entry)},
	}
	return db, nil
}
