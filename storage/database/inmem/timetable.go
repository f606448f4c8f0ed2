package inmemdb

import (
	"sort"

	"github.com/google/uuid"

	"github.com/DaddyBoye/School-Management-sub001/core/timetable"
)

type timeslotRepository struct {
	db *timeslotTable
}

func NewTimeslotRepository(db *DB) timetable.TimeslotRepository {
	return &timeslotRepository{db: db.timeslot}
}

func (r *timeslotRepository) CreateTimeslot(ts timetable.Timeslot) (timetable.Timeslot, error) {
	r.db.mutex.Lock()
	defer r.db.mutex.Unlock()

	ts.ID = uuid.New().String()
	r.db.t[ts.ID] = &ts
	return ts, nil
}

func (r *timeslotRepository) QueryAllTimeslots() ([]timetable.Timeslot, error) {
	r.db.mutex.RLock()
	defer r.db.mutex.RUnlock()

	res := make([]timetable.Timeslot, 0, len(r.db.t))
	for _, ts := range r.db.t {
		res = append(res, *ts)
	}
	sort.Slice(res, func(i, j int) bool {
		if res[i].StartTime != res[j].StartTime {
			return res[i].StartTime < res[j].StartTime
		}
		return res[i].ID < res[j].ID
	})
	return res, nil
}

func (r *timeslotRepository) GetTimeslotByID(id string) (timetable.Timeslot, error) {
	r.db.mutex.RLock()
	defer r.db.mutex.RUnlock()

	if ts, ok := r.db.t[id]; ok {
		return *ts, nil
	}
	return timetable.Timeslot{}, timetable.ErrTimeslotNotFound
}

func (r *timeslotRepository) UpdateTimeslot(ts timetable.Timeslot) (timetable.Timeslot, error) {
	r.db.mutex.Lock()
	defer r.db.mutex.Unlock()

	if _, ok := r.db.t[ts.ID]; !ok {
		return timetable.Timeslot{}, timetable.ErrTimeslotNotFound
	}
	r.db.t[ts.ID] = &ts
	return ts, nil
}

func (r *timeslotRepository) DeleteTimeslot(id string) error {
	r.db.mutex.Lock()
	defer r.db.mutex.Unlock()

	delete(r.db.t, id)
	return nil
}

type entryRepository struct {
	db *entryTable
}

func NewEntryRepository(db *DB) timetable.EntryRepository {
	return &entryRepository{db: db.entry}
}

func (r *entryRepository) CreateEntry(e timetable.Entry) (timetable.Entry, error) {
	r.db.mutex.Lock()
	defer r.db.mutex.Unlock()

	e.ID = uuid.New().String()
	r.db.t[e.ID] = &e
	return e, nil
}

func (r *entryRepository) FilterEntries(filter timetable.EntryFilter) ([]timetable.Entry, error) {
	r.db.mutex.RLock()
	defer r.db.mutex.RUnlock()

	res := make([]timetable.Entry, 0)
	for _, e := range r.db.t {
		if filter.Match(*e) {
			res = append(res, *e)
		}
	}
	sort.Slice(res, func(i, j int) bool {
		if !res[i].CreatedAt.Equal(res[j].CreatedAt) {
			return res[i].CreatedAt.Before(res[j].CreatedAt)
		}
		return res[i].ID < res[j].ID
	})
	return res, nil
}

func (r *entryRepository) GetEntryByID(id string) (timetable.Entry, error) {
	r.db.mutex.RLock()
	defer r.db.mutex.RUnlock()

	if e, ok := r.db.t[id]; ok {
		return *e, nil
	}
	return timetable.Entry{}, timetable.ErrEntryNotFound
}

func (r *entryRepository) UpdateEntry(e timetable.Entry) (timetable.Entry, error) {
	r.db.mutex.Lock()
	defer r.db.mutex.Unlock()

	if _, ok := r.db.t[e.ID]; !ok {
		return timetable.Entry{}, timetable.ErrEntryNotFound
	}
	r.db.t[e.ID] = &e
	return e, nil
}

func (r *entryRepository) DeleteEntry(id string) error {
	r.db.mutex.Lock()
	defer r.db.mutex.Unlock()

	delete(r.db.t, id)
	return nil
}
