package sqlxrepos

import (
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/DaddyBoye/School-Management-sub001/core/timetable"
)

const timeslotColumns = `id, name, start_time::text AS start_time, end_time::text AS end_time,
	day_of_week, is_break, created_at, updated_at`

type timeslotRow struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	StartTime string    `db:"start_time"`
	EndTime   string    `db:"end_time"`
	DayOfWeek *int      `db:"day_of_week"`
	IsBreak   bool      `db:"is_break"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (row timeslotRow) toModel() timetable.Timeslot {
	return timetable.Timeslot{
		ID:        row.ID,
		Name:      row.Name,
		StartTime: row.StartTime,
		EndTime:   row.EndTime,
		DayOfWeek: row.DayOfWeek,
		IsBreak:   row.IsBreak,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

type timeslotRepository struct {
	repository
}

func NewTimeslotRepository(db *sqlx.DB, timeout time.Duration) timetable.TimeslotRepository {
	return &timeslotRepository{repository{db: db, timeout: timeout}}
}

func (r *timeslotRepository) CreateTimeslot(ts timetable.Timeslot) (timetable.Timeslot, error) {
	ctx, cancel := r.ctx()
	defer cancel()

	query := `INSERT INTO timeslots (name, start_time, end_time, day_of_week, is_break, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	var id string
	err := r.db.GetContext(ctx, &id, query,
		ts.Name, ts.StartTime, ts.EndTime, ts.DayOfWeek, ts.IsBreak, ts.CreatedAt, ts.UpdatedAt)
	if err != nil {
		return timetable.Timeslot{}, wrapErr(err, timetable.ErrTimeslotNotFound, "creating timeslot")
	}
	ts.ID = id
	return ts, nil
}

func (r *timeslotRepository) QueryAllTimeslots() ([]timetable.Timeslot, error) {
	ctx, cancel := r.ctx()
	defer cancel()

	var rows []timeslotRow
	query := `SELECT ` + timeslotColumns + ` FROM timeslots ORDER BY start_time, id`
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, wrapErr(err, timetable.ErrTimeslotNotFound, "querying timeslots")
	}
	res := make([]timetable.Timeslot, 0, len(rows))
	for _, row := range rows {
		res = append(res, row.toModel())
	}
	return res, nil
}

func (r *timeslotRepository) GetTimeslotByID(id string) (timetable.Timeslot, error) {
	ctx, cancel := r.ctx()
	defer cancel()

	var row timeslotRow
	query := `SELECT ` + timeslotColumns + ` FROM timeslots WHERE id = $1`
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		return timetable.Timeslot{}, wrapErr(err, timetable.ErrTimeslotNotFound, "getting timeslot")
	}
	return row.toModel(), nil
}

func (r *timeslotRepository) UpdateTimeslot(ts timetable.Timeslot) (timetable.Timeslot, error) {
	ctx, cancel := r.ctx()
	defer cancel()

	query := `UPDATE timeslots
		SET name = $1, start_time = $2, end_time = $3, day_of_week = $4, is_break = $5, updated_at = $6
		WHERE id = $7`
	res, err := r.db.ExecContext(ctx, query,
		ts.Name, ts.StartTime, ts.EndTime, ts.DayOfWeek, ts.IsBreak, ts.UpdatedAt, ts.ID)
	if err != nil {
		return timetable.Timeslot{}, wrapErr(err, timetable.ErrTimeslotNotFound, "updating timeslot")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return timetable.Timeslot{}, timetable.ErrTimeslotNotFound
	}
	return ts, nil
}

func (r *timeslotRepository) DeleteTimeslot(id string) error {
	ctx, cancel := r.ctx()
	defer cancel()

	_, err := r.db.ExecContext(ctx, `DELETE FROM timeslots WHERE id = $1`, id)
	return wrapErr(err, timetable.ErrTimeslotNotFound, "deleting timeslot")
}

const entryColumns = `id, class_id, subject_id, teacher_id, timeslot_id, room_id, day_of_week,
	recurring, start_date::text AS start_date, end_date::text AS end_date, created_at, updated_at`

type entryRow struct {
	ID         string    `db:"id"`
	ClassID    string    `db:"class_id"`
	SubjectID  string    `db:"subject_id"`
	TeacherID  string    `db:"teacher_id"`
	TimeslotID string    `db:"timeslot_id"`
	RoomID     *string   `db:"room_id"`
	DayOfWeek  int       `db:"day_of_week"`
	Recurring  bool      `db:"recurring"`
	StartDate  *string   `db:"start_date"`
	EndDate    *string   `db:"end_date"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

func (row entryRow) toModel() timetable.Entry {
	return timetable.Entry{
		ID:         row.ID,
		ClassID:    row.ClassID,
		SubjectID:  row.SubjectID,
		TeacherID:  row.TeacherID,
		TimeslotID: row.TimeslotID,
		RoomID:     row.RoomID,
		DayOfWeek:  row.DayOfWeek,
		Recurring:  row.Recurring,
		StartDate:  row.StartDate,
		EndDate:    row.EndDate,
		CreatedAt:  row.CreatedAt,
		UpdatedAt:  row.UpdatedAt,
	}
}

type entryRepository struct {
	repository
}

func NewEntryRepository(db *sqlx.DB, timeout time.Duration) timetable.EntryRepository {
	return &entryRepository{repository{db: db, timeout: timeout}}
}

func (r *entryRepository) CreateEntry(e timetable.Entry) (timetable.Entry, error) {
	ctx, cancel := r.ctx()
	defer cancel()

	query := `INSERT INTO timetable_entries
		(class_id, subject_id, teacher_id, timeslot_id, room_id, day_of_week, recurring,
		 start_date, end_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id`
	var id string
	err := r.db.GetContext(ctx, &id, query,
		e.ClassID, e.SubjectID, e.TeacherID, e.TimeslotID, e.RoomID, e.DayOfWeek, e.Recurring,
		e.StartDate, e.EndDate, e.CreatedAt, e.UpdatedAt)
	if err != nil {
		return timetable.Entry{}, wrapErr(err, timetable.ErrEntryNotFound, "creating entry")
	}
	e.ID = id
	return e, nil
}

func (r *entryRepository) FilterEntries(filter timetable.EntryFilter) ([]timetable.Entry, error) {
	ctx, cancel := r.ctx()
	defer cancel()

	conds := make([]string, 0, 6)
	args := make([]interface{}, 0, 6)
	addCond := func(col string, val interface{}) {
		args = append(args, val)
		conds = append(conds, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if filter.ClassID != "" {
		addCond("class_id", filter.ClassID)
	}
	if filter.SubjectID != "" {
		addCond("subject_id", filter.SubjectID)
	}
	if filter.TeacherID != "" {
		addCond("teacher_id", filter.TeacherID)
	}
	if filter.TimeslotID != "" {
		addCond("timeslot_id", filter.TimeslotID)
	}
	if filter.RoomID != "" {
		addCond("room_id", filter.RoomID)
	}
	if filter.DayOfWeek != nil {
		addCond("day_of_week", *filter.DayOfWeek)
	}

	query := `SELECT ` + entryColumns + ` FROM timetable_entries`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at, id"

	var rows []entryRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, wrapErr(err, timetable.ErrEntryNotFound, "filtering entries")
	}
	res := make([]timetable.Entry, 0, len(rows))
	for _, row := range rows {
		res = append(res, row.toModel())
	}
	return res, nil
}

func (r *entryRepository) GetEntryByID(id string) (timetable.Entry, error) {
	ctx, cancel := r.ctx()
	defer cancel()

	var row entryRow
	query := `SELECT ` + entryColumns + ` FROM timetable_entries WHERE id = $1`
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		return timetable.Entry{}, wrapErr(err, timetable.ErrEntryNotFound, "getting entry")
	}
	return row.toModel(), nil
}

func (r *entryRepository) UpdateEntry(e timetable.Entry) (timetable.Entry, error) {
	ctx, cancel := r.ctx()
	defer cancel()

	query := `UPDATE timetable_entries
		SET class_id = $1, subject_id = $2, teacher_id = $3, timeslot_id = $4, room_id = $5,
			day_of_week = $6, recurring = $7, start_date = $8, end_date = $9, updated_at = $10
		WHERE id = $11`
	res, err := r.db.ExecContext(ctx, query,
		e.ClassID, e.SubjectID, e.TeacherID, e.TimeslotID, e.RoomID,
		e.DayOfWeek, e.Recurring, e.StartDate, e.EndDate, e.UpdatedAt, e.ID)
	if err != nil {
		return timetable.Entry{}, wrapErr(err, timetable.ErrEntryNotFound, "updating entry")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return timetable.Entry{}, timetable.ErrEntryNotFound
	}
	return e, nil
}

func (r *entryRepository) DeleteEntry(id string) error {
	ctx, cancel := r.ctx()
	defer cancel()

	_, err := r.db.ExecContext(ctx, `DELETE FROM timetable_entries WHERE id = $1`, id)
	return wrapErr(err, timetable.ErrEntryNotFound, "deleting entry")
}
