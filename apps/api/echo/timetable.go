package echoapi

import (
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/DaddyBoye/School-Management-sub001/core"
	"github.com/DaddyBoye/School-Management-sub001/core/calendar"
	"github.com/DaddyBoye/School-Management-sub001/core/timetable"
)

type timetableApi struct {
	slotSvc  *timetable.TimeslotService
	entrySvc *timetable.EntryService
	schedSvc *timetable.ScheduleService
	validate *validator.Validate
}

func registerTimetableAPI(
	g *echo.Group,
	slotSvc *timetable.TimeslotService,
	entrySvc *timetable.EntryService,
	schedSvc *timetable.ScheduleService,
	validate *validator.Validate,
) {
	api := timetableApi{
		slotSvc:  slotSvc,
		entrySvc: entrySvc,
		schedSvc: schedSvc,
		validate: validate,
	}

	sg := g.Group("/timeslots")
	sg.POST("", api.createTimeslot)
	sg.GET("", api.queryTimeslots)
	sg.GET("/:id", api.retrieveTimeslot)
	sg.PUT("/:id", api.updateTimeslot)
	sg.DELETE("/:id", api.destroyTimeslot)

	eg := g.Group("/entries")
	eg.POST("", api.createEntry)
	eg.GET("", api.queryEntries)
	eg.GET("/:id", api.retrieveEntry)
	eg.PUT("/:id", api.updateEntry)
	eg.DELETE("/:id", api.destroyEntry)

	rg := g.Group("/rooms")
	rg.GET("/:id/in-use", api.roomInUse)

	scg := g.Group("/schedule")
	scg.GET("/day/:date", api.dayView)
	scg.GET("/day/:date/entries", api.entriesOnDate)
	scg.GET("/week", api.weeklyGridCell)
	scg.GET("/terms", api.termsForRange)
}

// Timeslot handlers

func (api *timetableApi) createTimeslot(ctx echo.Context) error {
	var data timetable.NewTimeslot
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewTimeslot")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	ts, err := api.slotSvc.Create(data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, ts)
}

func (api *timetableApi) queryTimeslots(ctx echo.Context) error {
	slots, err := api.slotSvc.QueryAll()
	if err != nil {
		return errors.Wrap(err, "querying timeslots")
	}
	if slots == nil {
		slots = []timetable.Timeslot{}
	}
	return ctx.JSON(http.StatusOK, slots)
}

func (api *timetableApi) retrieveTimeslot(ctx echo.Context) error {
	ts, err := api.slotSvc.GetByID(ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, ts)
}

func (api *timetableApi) updateTimeslot(ctx echo.Context) error {
	var data timetable.UpdateTimeslot
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateTimeslot")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	ts, err := api.slotSvc.Update(ctx.Param("id"), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, ts)
}

func (api *timetableApi) destroyTimeslot(ctx echo.Context) error {
	if err := api.slotSvc.Delete(ctx.Param("id")); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

// Entry handlers

func (api *timetableApi) createEntry(ctx echo.Context) error {
	var data timetable.NewEntry
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewEntry")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	entry, err := api.entrySvc.Create(data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, entry)
}

func (api *timetableApi) queryEntries(ctx echo.Context) error {
	filter, err := bindEntryFilter(ctx)
	if err != nil {
		return err
	}

	entries, err := api.entrySvc.Filter(filter)
	if err != nil {
		return errors.Wrap(err, "querying entries")
	}
	if entries == nil {
		entries = []timetable.Entry{}
	}
	return ctx.JSON(http.StatusOK, entries)
}

func (api *timetableApi) retrieveEntry(ctx echo.Context) error {
	entry, err := api.entrySvc.GetByID(ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, entry)
}

func (api *timetableApi) updateEntry(ctx echo.Context) error {
	var data timetable.UpdateEntry
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateEntry")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	entry, err := api.entrySvc.Update(ctx.Param("id"), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, entry)
}

func (api *timetableApi) destroyEntry(ctx echo.Context) error {
	if err := api.entrySvc.Delete(ctx.Param("id")); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *timetableApi) roomInUse(ctx echo.Context) error {
	inUse, err := api.entrySvc.RoomInUse(ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "checking room usage")
	}
	return ctx.JSON(http.StatusOK, echo.Map{"in_use": inUse})
}

// Schedule handlers

func (api *timetableApi) dayView(ctx echo.Context) error {
	date := ctx.Param("date")
	if !core.ValidDate(date) {
		return core.NewValidationError(nil, core.FieldError{Field: "date", Error: "must be a valid date in YYYY-MM-DD format"})
	}

	groups, err := api.schedSvc.DayView(date)
	if err != nil {
		return errors.Wrap(err, "building day view")
	}
	if groups == nil {
		groups = []timetable.TimeslotGroup{}
	}
	return ctx.JSON(http.StatusOK, groups)
}

func (api *timetableApi) entriesOnDate(ctx echo.Context) error {
	date := ctx.Param("date")
	if !core.ValidDate(date) {
		return core.NewValidationError(nil, core.FieldError{Field: "date", Error: "must be a valid date in YYYY-MM-DD format"})
	}

	entries, err := api.schedSvc.EntriesOnDate(date)
	if err != nil {
		return errors.Wrap(err, "querying entries on date")
	}
	if entries == nil {
		entries = []timetable.Entry{}
	}
	return ctx.JSON(http.StatusOK, entries)
}

func (api *timetableApi) weeklyGridCell(ctx echo.Context) error {
	slotID := ctx.QueryParam("timeslot_id")
	if slotID == "" {
		return core.NewValidationError(nil, core.FieldError{Field: "timeslot_id", Error: "this field is required"})
	}
	day, err := strconv.Atoi(ctx.QueryParam("day_of_week"))
	if err != nil || day < 0 || day > 6 {
		return core.NewValidationError(nil, core.FieldError{Field: "day_of_week", Error: "must be a day of week between 0 (Sunday) and 6 (Saturday)"})
	}

	entries, err := api.schedSvc.WeeklyGridCell(slotID, day)
	if err != nil {
		return errors.Wrap(err, "querying weekly grid cell")
	}
	if entries == nil {
		entries = []timetable.Entry{}
	}
	return ctx.JSON(http.StatusOK, entries)
}

func (api *timetableApi) termsForRange(ctx echo.Context) error {
	calID := ctx.QueryParam("calendar_id")
	start := ctx.QueryParam("start")
	end := ctx.QueryParam("end")
	if calID == "" {
		return core.NewValidationError(nil, core.FieldError{Field: "calendar_id", Error: "this field is required"})
	}
	if !core.ValidDate(start) {
		return core.NewValidationError(nil, core.FieldError{Field: "start", Error: "must be a valid date in YYYY-MM-DD format"})
	}
	if !core.ValidDate(end) {
		return core.NewValidationError(nil, core.FieldError{Field: "end", Error: "must be a valid date in YYYY-MM-DD format"})
	}

	terms, err := api.schedSvc.TermsForRange(calID, start, end)
	if err != nil {
		return errors.Wrap(err, "querying terms for range")
	}
	if terms == nil {
		terms = []calendar.Term{}
	}
	return ctx.JSON(http.StatusOK, terms)
}

// bindEntryFilter reads the entry list filters off query params.
func bindEntryFilter(ctx echo.Context) (timetable.EntryFilter, error) {
	filter := timetable.EntryFilter{
		ClassID:    core.CleanString(ctx.QueryParam("class_id")),
		SubjectID:  core.CleanString(ctx.QueryParam("subject_id")),
		TeacherID:  core.CleanString(ctx.QueryParam("teacher_id")),
		TimeslotID: core.CleanString(ctx.QueryParam("timeslot_id")),
		RoomID:     core.CleanString(ctx.QueryParam("room_id")),
	}
	if raw := ctx.QueryParam("day_of_week"); raw != "" {
		day, err := strconv.Atoi(raw)
		if err != nil || day < 0 || day > 6 {
			return filter, core.NewValidationError(nil, core.FieldError{Field: "day_of_week", Error: "must be a day of week between 0 (Sunday) and 6 (Saturday)"})
		}
		filter.DayOfWeek = &day
	}
	return filter, nil
}
