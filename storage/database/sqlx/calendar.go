package sqlxrepos

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/DaddyBoye/School-Management-sub001/core/calendar"
)

const calendarColumns = `id, name, start_date::text AS start_date, end_date::text AS end_date,
	is_active, created_at, updated_at`

type calendarRow struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	StartDate string    `db:"start_date"`
	EndDate   string    `db:"end_date"`
	IsActive  bool      `db:"is_active"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (row calendarRow) toModel() calendar.Calendar {
	return calendar.Calendar{
		ID:        row.ID,
		Name:      row.Name,
		StartDate: row.StartDate,
		EndDate:   row.EndDate,
		IsActive:  row.IsActive,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

type calendarRepository struct {
	repository
}

func NewCalendarRepository(db *sqlx.DB, timeout time.Duration) calendar.Repository {
	return &calendarRepository{repository{db: db, timeout: timeout}}
}

func (r *repository) ctx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), r.timeout)
}

func (r *calendarRepository) CreateCalendar(cal calendar.Calendar) (calendar.Calendar, error) {
	ctx, cancel := r.ctx()
	defer cancel()

	query := `INSERT INTO school_calendars (name, start_date, end_date, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	var id string
	err := r.db.GetContext(ctx, &id, query,
		cal.Name, cal.StartDate, cal.EndDate, cal.IsActive, cal.CreatedAt, cal.UpdatedAt)
	if err != nil {
		return calendar.Calendar{}, wrapErr(err, calendar.ErrCalendarNotFound, "creating calendar")
	}
	cal.ID = id
	return cal, nil
}

func (r *calendarRepository) QueryAllCalendars() ([]calendar.Calendar, error) {
	ctx, cancel := r.ctx()
	defer cancel()

	var rows []calendarRow
	query := `SELECT ` + calendarColumns + ` FROM school_calendars ORDER BY start_date, id`
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, wrapErr(err, calendar.ErrCalendarNotFound, "querying calendars")
	}
	res := make([]calendar.Calendar, 0, len(rows))
	for _, row := range rows {
		res = append(res, row.toModel())
	}
	return res, nil
}

func (r *calendarRepository) GetCalendarByID(id string) (calendar.Calendar, error) {
	ctx, cancel := r.ctx()
	defer cancel()

	var row calendarRow
	query := `SELECT ` + calendarColumns + ` FROM school_calendars WHERE id = $1`
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		return calendar.Calendar{}, wrapErr(err, calendar.ErrCalendarNotFound, "getting calendar")
	}
	return row.toModel(), nil
}

func (r *calendarRepository) GetActiveCalendar() (calendar.Calendar, error) {
	ctx, cancel := r.ctx()
	defer cancel()

	var row calendarRow
	query := `SELECT ` + calendarColumns + ` FROM school_calendars WHERE is_active LIMIT 1`
	if err := r.db.GetContext(ctx, &row, query); err != nil {
		return calendar.Calendar{}, wrapErr(err, calendar.ErrCalendarNotFound, "getting active calendar")
	}
	return row.toModel(), nil
}

func (r *calendarRepository) UpdateCalendar(cal calendar.Calendar) (calendar.Calendar, error) {
	ctx, cancel := r.ctx()
	defer cancel()

	query := `UPDATE school_calendars
		SET name = $1, start_date = $2, end_date = $3, updated_at = $4
		WHERE id = $5`
	res, err := r.db.ExecContext(ctx, query, cal.Name, cal.StartDate, cal.EndDate, cal.UpdatedAt, cal.ID)
	if err != nil {
		return calendar.Calendar{}, wrapErr(err, calendar.ErrCalendarNotFound, "updating calendar")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return calendar.Calendar{}, calendar.ErrCalendarNotFound
	}
	return cal, nil
}

func (r *calendarRepository) DeleteCalendar(id string) error {
	ctx, cancel := r.ctx()
	defer cancel()

	_, err := r.db.ExecContext(ctx, `DELETE FROM school_calendars WHERE id = $1`, id)
	return wrapErr(err, calendar.ErrCalendarNotFound, "deleting calendar")
}

func (r *calendarRepository) ActivateCalendar(id string) error {
	ctx, cancel := r.ctx()
	defer cancel()

	// both writes in one transaction: no interleaving writer can observe
	// zero or two active calendars
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return wrapErr(err, calendar.ErrCalendarNotFound, "activating calendar")
	}
	if _, err = tx.ExecContext(ctx, `UPDATE school_calendars SET is_active = false WHERE id <> $1`, id); err != nil {
		_ = tx.Rollback()
		return wrapErr(err, calendar.ErrCalendarNotFound, "activating calendar")
	}
	res, err := tx.ExecContext(ctx, `UPDATE school_calendars SET is_active = true WHERE id = $1`, id)
	if err != nil {
		_ = tx.Rollback()
		return wrapErr(err, calendar.ErrCalendarNotFound, "activating calendar")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		_ = tx.Rollback()
		return calendar.ErrCalendarNotFound
	}
	return wrapErr(tx.Commit(), calendar.ErrCalendarNotFound, "activating calendar")
}

const termColumns = `id, calendar_id, name, start_date::text AS start_date, end_date::text AS end_date,
	is_break, term_type, is_current, created_at, updated_at`

type termRow struct {
	ID         string    `db:"id"`
	CalendarID string    `db:"calendar_id"`
	Name       string    `db:"name"`
	StartDate  string    `db:"start_date"`
	EndDate    string    `db:"end_date"`
	IsBreak    bool      `db:"is_break"`
	TermType   string    `db:"term_type"`
	IsCurrent  bool      `db:"is_current"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

func (row termRow) toModel() calendar.Term {
	return calendar.Term{
		ID:         row.ID,
		CalendarID: row.CalendarID,
		Name:       row.Name,
		StartDate:  row.StartDate,
		EndDate:    row.EndDate,
		IsBreak:    row.IsBreak,
		TermType:   row.TermType,
		IsCurrent:  row.IsCurrent,
		CreatedAt:  row.CreatedAt,
		UpdatedAt:  row.UpdatedAt,
	}
}

type termRepository struct {
	repository
}

func NewTermRepository(db *sqlx.DB, timeout time.Duration) calendar.TermRepository {
	return &termRepository{repository{db: db, timeout: timeout}}
}

func (r *termRepository) CreateTerm(term calendar.Term) (calendar.Term, error) {
	ctx, cancel := r.ctx()
	defer cancel()

	query := `INSERT INTO calendar_terms
		(calendar_id, name, start_date, end_date, is_break, term_type, is_current, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	var id string
	err := r.db.GetContext(ctx, &id, query,
		term.CalendarID, term.Name, term.StartDate, term.EndDate,
		term.IsBreak, term.TermType, term.IsCurrent, term.CreatedAt, term.UpdatedAt)
	if err != nil {
		return calendar.Term{}, wrapErr(err, calendar.ErrTermNotFound, "creating term")
	}
	term.ID = id
	return term, nil
}

func (r *termRepository) QueryTermsByCalendar(calendarID string) ([]calendar.Term, error) {
	ctx, cancel := r.ctx()
	defer cancel()

	var rows []termRow
	query := `SELECT ` + termColumns + ` FROM calendar_terms WHERE calendar_id = $1 ORDER BY start_date, id`
	if err := r.db.SelectContext(ctx, &rows, query, calendarID); err != nil {
		return nil, wrapErr(err, calendar.ErrTermNotFound, "querying terms")
	}
	res := make([]calendar.Term, 0, len(rows))
	for _, row := range rows {
		res = append(res, row.toModel())
	}
	return res, nil
}

func (r *termRepository) GetTermByID(id string) (calendar.Term, error) {
	ctx, cancel := r.ctx()
	defer cancel()

	var row termRow
	query := `SELECT ` + termColumns + ` FROM calendar_terms WHERE id = $1`
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		return calendar.Term{}, wrapErr(err, calendar.ErrTermNotFound, "getting term")
	}
	return row.toModel(), nil
}

func (r *termRepository) GetCurrentTerm(calendarID string) (calendar.Term, error) {
	ctx, cancel := r.ctx()
	defer cancel()

	var row termRow
	query := `SELECT ` + termColumns + ` FROM calendar_terms WHERE calendar_id = $1 AND is_current LIMIT 1`
	if err := r.db.GetContext(ctx, &row, query, calendarID); err != nil {
		return calendar.Term{}, wrapErr(err, calendar.ErrTermNotFound, "getting current term")
	}
	return row.toModel(), nil
}

func (r *termRepository) UpdateTerm(term calendar.Term) (calendar.Term, error) {
	ctx, cancel := r.ctx()
	defer cancel()

	query := `UPDATE calendar_terms
		SET name = $1, start_date = $2, end_date = $3, is_break = $4, term_type = $5, updated_at = $6
		WHERE id = $7`
	res, err := r.db.ExecContext(ctx, query,
		term.Name, term.StartDate, term.EndDate, term.IsBreak, term.TermType, term.UpdatedAt, term.ID)
	if err != nil {
		return calendar.Term{}, wrapErr(err, calendar.ErrTermNotFound, "updating term")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return calendar.Term{}, calendar.ErrTermNotFound
	}
	return term, nil
}

func (r *termRepository) DeleteTerm(id string) error {
	ctx, cancel := r.ctx()
	defer cancel()

	_, err := r.db.ExecContext(ctx, `DELETE FROM calendar_terms WHERE id = $1`, id)
	return wrapErr(err, calendar.ErrTermNotFound, "deleting term")
}

func (r *termRepository) SetCurrentTerm(calendarID, termID string) error {
	ctx, cancel := r.ctx()
	defer cancel()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return wrapErr(err, calendar.ErrTermNotFound, "setting current term")
	}
	if _, err = tx.ExecContext(ctx,
		`UPDATE calendar_terms SET is_current = false WHERE calendar_id = $1 AND id <> $2`,
		calendarID, termID); err != nil {
		_ = tx.Rollback()
		return wrapErr(err, calendar.ErrTermNotFound, "setting current term")
	}
	res, err := tx.ExecContext(ctx,
		`UPDATE calendar_terms SET is_current = true WHERE calendar_id = $1 AND id = $2`,
		calendarID, termID)
	if err != nil {
		_ = tx.Rollback()
		return wrapErr(err, calendar.ErrTermNotFound, "setting current term")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		_ = tx.Rollback()
		return calendar.ErrTermNotFound
	}
	return wrapErr(tx.Commit(), calendar.ErrTermNotFound, "setting current term")
}

const holidayColumns = `id, calendar_id, name, date::text AS date, recurring, created_at, updated_at`

type holidayRow struct {
	ID         string    `db:"id"`
	CalendarID string    `db:"calendar_id"`
	Name       string    `db:"name"`
	Date       string    `db:"date"`
	Recurring  bool      `db:"recurring"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

func (row holidayRow) toModel() calendar.Holiday {
	return calendar.Holiday{
		ID:         row.ID,
		CalendarID: row.CalendarID,
		Name:       row.Name,
		Date:       row.Date,
		Recurring:  row.Recurring,
		CreatedAt:  row.CreatedAt,
		UpdatedAt:  row.UpdatedAt,
	}
}

type holidayRepository struct {
	repository
}

func NewHolidayRepository(db *sqlx.DB, timeout time.Duration) calendar.HolidayRepository {
	return &holidayRepository{repository{db: db, timeout: timeout}}
}

func (r *holidayRepository) CreateHoliday(hol calendar.Holiday) (calendar.Holiday, error) {
	ctx, cancel := r.ctx()
	defer cancel()

	query := `INSERT INTO holidays (calendar_id, name, date, recurring, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	var id string
	err := r.db.GetContext(ctx, &id, query,
		hol.CalendarID, hol.Name, hol.Date, hol.Recurring, hol.CreatedAt, hol.UpdatedAt)
	if err != nil {
		return calendar.Holiday{}, wrapErr(err, calendar.ErrHolidayNotFound, "creating holiday")
	}
	hol.ID = id
	return hol, nil
}

func (r *holidayRepository) QueryHolidaysByCalendar(calendarID string) ([]calendar.Holiday, error) {
	ctx, cancel := r.ctx()
	defer cancel()

	var rows []holidayRow
	query := `SELECT ` + holidayColumns + ` FROM holidays WHERE calendar_id = $1 ORDER BY date, id`
	if err := r.db.SelectContext(ctx, &rows, query, calendarID); err != nil {
		return nil, wrapErr(err, calendar.ErrHolidayNotFound, "querying holidays")
	}
	res := make([]calendar.Holiday, 0, len(rows))
	for _, row := range rows {
		res = append(res, row.toModel())
	}
	return res, nil
}

func (r *holidayRepository) GetHolidayByID(id string) (calendar.Holiday, error) {
	ctx, cancel := r.ctx()
	defer cancel()

	var row holidayRow
	query := `SELECT ` + holidayColumns + ` FROM holidays WHERE id = $1`
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		return calendar.Holiday{}, wrapErr(err, calendar.ErrHolidayNotFound, "getting holiday")
	}
	return row.toModel(), nil
}

func (r *holidayRepository) UpdateHoliday(hol calendar.Holiday) (calendar.Holiday, error) {
	ctx, cancel := r.ctx()
	defer cancel()

	query := `UPDATE holidays SET name = $1, date = $2, recurring = $3, updated_at = $4 WHERE id = $5`
	res, err := r.db.ExecContext(ctx, query, hol.Name, hol.Date, hol.Recurring, hol.UpdatedAt, hol.ID)
	if err != nil {
		return calendar.Holiday{}, wrapErr(err, calendar.ErrHolidayNotFound, "updating holiday")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return calendar.Holiday{}, calendar.ErrHolidayNotFound
	}
	return hol, nil
}

func (r *holidayRepository) DeleteHoliday(id string) error {
	ctx, cancel := r.ctx()
	defer cancel()

	_, err := r.db.ExecContext(ctx, `DELETE FROM holidays WHERE id = $1`, id)
	return wrapErr(err, calendar.ErrHolidayNotFound, "deleting holiday")
}
