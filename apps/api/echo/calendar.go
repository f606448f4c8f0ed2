package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/DaddyBoye/School-Management-sub001/core"
	"github.com/DaddyBoye/School-Management-sub001/core/calendar"
)

type calendarApi struct {
	svc      *calendar.Service
	termSvc  *calendar.TermService
	holSvc   *calendar.HolidayService
	validate *validator.Validate
}

func registerCalendarAPI(
	g *echo.Group,
	svc *calendar.Service,
	termSvc *calendar.TermService,
	holSvc *calendar.HolidayService,
	validate *validator.Validate,
) {
	api := calendarApi{
		svc:      svc,
		termSvc:  termSvc,
		holSvc:   holSvc,
		validate: validate,
	}

	cg := g.Group("/calendars")
	cg.POST("", api.create)
	cg.GET("", api.query)
	cg.GET("/active", api.retrieveActive)
	cg.POST("/auto-activate", api.autoActivate)

	dg := cg.Group("/:id")
	dg.GET("", api.retrieve)
	dg.PUT("", api.update)
	dg.DELETE("", api.destroy)
	dg.POST("/activate", api.activate)
	dg.GET("/terms", api.queryTerms)
	dg.GET("/terms/current", api.retrieveCurrentTerm)
	dg.GET("/holidays", api.queryHolidays)

	tg := g.Group("/terms")
	tg.POST("", api.createTerm)
	tg.POST("/auto-set-current", api.autoSetCurrentTerm)
	tg.GET("/:id", api.retrieveTerm)
	tg.PUT("/:id", api.updateTerm)
	tg.DELETE("/:id", api.destroyTerm)
	tg.POST("/:id/set-current", api.setCurrentTerm)

	hg := g.Group("/holidays")
	hg.POST("", api.createHoliday)
	hg.PUT("/:id", api.updateHoliday)
	hg.DELETE("/:id", api.destroyHoliday)
}

// Calendar handlers

func (api *calendarApi) create(ctx echo.Context) error {
	var data calendar.NewCalendar
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewCalendar")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	cal, err := api.svc.Create(data)
	if err != nil {
		return errors.Wrap(err, "creating calendar")
	}
	return ctx.JSON(http.StatusCreated, cal)
}

func (api *calendarApi) query(ctx echo.Context) error {
	cals, err := api.svc.QueryAll()
	if err != nil {
		return errors.Wrap(err, "querying calendars")
	}
	if cals == nil {
		cals = []calendar.Calendar{}
	}
	return ctx.JSON(http.StatusOK, cals)
}

func (api *calendarApi) retrieve(ctx echo.Context) error {
	cal, err := api.svc.GetByID(ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, cal)
}

func (api *calendarApi) retrieveActive(ctx echo.Context) error {
	cal, err := api.svc.GetActive()
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, cal)
}

func (api *calendarApi) update(ctx echo.Context) error {
	var data calendar.UpdateCalendar
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateCalendar")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	cal, err := api.svc.Update(ctx.Param("id"), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, cal)
}

func (api *calendarApi) destroy(ctx echo.Context) error {
	if err := api.svc.Delete(ctx.Param("id")); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *calendarApi) activate(ctx echo.Context) error {
	if err := api.svc.Activate(ctx.Param("id")); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *calendarApi) autoActivate(ctx echo.Context) error {
	cal, err := api.svc.AutoSetActiveByDate(core.Today())
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, cal)
}

// Term handlers

func (api *calendarApi) createTerm(ctx echo.Context) error {
	var data calendar.NewTerm
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewTerm")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	term, err := api.termSvc.Add(data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, term)
}

func (api *calendarApi) queryTerms(ctx echo.Context) error {
	terms, err := api.termSvc.QueryByCalendar(ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "querying terms")
	}
	if terms == nil {
		terms = []calendar.Term{}
	}
	return ctx.JSON(http.StatusOK, terms)
}

func (api *calendarApi) retrieveCurrentTerm(ctx echo.Context) error {
	term, err := api.termSvc.GetCurrent(ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, term)
}

func (api *calendarApi) retrieveTerm(ctx echo.Context) error {
	term, err := api.termSvc.GetByID(ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, term)
}

func (api *calendarApi) updateTerm(ctx echo.Context) error {
	var data calendar.UpdateTerm
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateTerm")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	term, err := api.termSvc.Edit(ctx.Param("id"), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, term)
}

func (api *calendarApi) destroyTerm(ctx echo.Context) error {
	if err := api.termSvc.Delete(ctx.Param("id")); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *calendarApi) setCurrentTerm(ctx echo.Context) error {
	if err := api.termSvc.SetCurrent(ctx.Param("id")); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *calendarApi) autoSetCurrentTerm(ctx echo.Context) error {
	term, err := api.termSvc.AutoSetCurrentByDate(core.Today())
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, term)
}

// Holiday handlers

func (api *calendarApi) createHoliday(ctx echo.Context) error {
	var data calendar.NewHoliday
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewHoliday")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	hol, err := api.holSvc.Add(data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, hol)
}

func (api *calendarApi) queryHolidays(ctx echo.Context) error {
	hols, err := api.holSvc.QueryByCalendar(ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "querying holidays")
	}
	if hols == nil {
		hols = []calendar.Holiday{}
	}
	return ctx.JSON(http.StatusOK, hols)
}

func (api *calendarApi) updateHoliday(ctx echo.Context) error {
	var data calendar.UpdateHoliday
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateHoliday")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	hol, err := api.holSvc.Edit(ctx.Param("id"), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, hol)
}

func (api *calendarApi) destroyHoliday(ctx echo.Context) error {
	if err := api.holSvc.Delete(ctx.Param("id")); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}
