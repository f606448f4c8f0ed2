package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"github.com/robfig/cron/v3"

	echoapi "github.com/DaddyBoye/School-Management-sub001/apps/api/echo"
	"github.com/DaddyBoye/School-Management-sub001/core"
	"github.com/DaddyBoye/School-Management-sub001/core/calendar"
	"github.com/DaddyBoye/School-Management-sub001/core/timetable"
	logsvc "github.com/DaddyBoye/School-Management-sub001/services/logger"
	"github.com/DaddyBoye/School-Management-sub001/storage/database"
	sqlxrepos "github.com/DaddyBoye/School-Management-sub001/storage/database/sqlx"
)

func main() {
	// =========================================================================
	// Set up Dependencies

	conf := core.NewConfig()

	// set up loggers
	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug)

	dbLogger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "DB : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	dbLogger.Enable(!conf.Debug)

	// set up DB
	db, err := setUpDB(conf)
	if err != nil {
		logger.Critical(fmt.Sprintf("setting up database: %v", err), err)
	}
	defer func() {
		if err = db.Close(); err != nil {
			dbLogger.Critical("Failed to close", err)
		}
	}()

	// set up repositories
	calRepo := sqlxrepos.NewCalendarRepository(db, conf.Database.Timeout)
	termRepo := sqlxrepos.NewTermRepository(db, conf.Database.Timeout)
	holRepo := sqlxrepos.NewHolidayRepository(db, conf.Database.Timeout)
	slotRepo := sqlxrepos.NewTimeslotRepository(db, conf.Database.Timeout)
	entryRepo := sqlxrepos.NewEntryRepository(db, conf.Database.Timeout)

	// set up services; every mutation invalidates the schedule cache
	schedSvc := timetable.NewScheduleService(entryRepo, slotRepo, termRepo)
	calSvc := calendar.NewService(calRepo, termRepo, schedSvc.Invalidate)
	termSvc := calendar.NewTermService(termRepo, calRepo, schedSvc.Invalidate)
	holSvc := calendar.NewHolidayService(holRepo, calRepo, schedSvc.Invalidate)
	slotSvc := timetable.NewTimeslotService(slotRepo, entryRepo, schedSvc.Invalidate)
	entrySvc := timetable.NewEntryService(entryRepo, slotRepo, schedSvc.Invalidate)

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	validate := validator.New()
	translator := newTranslator()
	core.InitValidators(validate, translator)

	// =========================================================================
	// Start Rollover Jobs
	//
	// The active calendar and current term track the wall clock; a nightly
	// job keeps them honest even when nobody edits anything.

	crond := cron.New()
	_, err = crond.AddFunc("5 0 * * *", func() {
		if _, err := calSvc.AutoSetActiveByDate(core.Today()); err != nil {
			logger.Warning(fmt.Sprintf("auto-activating calendar: %v", err), err)
		}
		if _, err := termSvc.AutoSetCurrentByDate(core.Today()); err != nil {
			logger.Warning(fmt.Sprintf("auto-setting current term: %v", err), err)
		}
	})
	if err != nil {
		logger.Critical(fmt.Sprintf("scheduling rollover job: %v", err), err)
	}
	crond.Start()
	defer crond.Stop()

	// =========================================================================
	// Start API Service

	server := echoapi.NewServer(
		echoapi.ServerDeps{
			Conf:        conf,
			Logger:      logger,
			CalendarSvc: calSvc,
			TermSvc:     termSvc,
			HolidaySvc:  holSvc,
			TimeslotSvc: slotSvc,
			EntrySvc:    entrySvc,
			ScheduleSvc: schedSvc,
			Validate:    validate,
			Translator:  translator,
		},
	)

	go func() {
		server.Start()
	}()

	// =========================================================================
	// Shutdown

	select {
	case err = <-server.Errors():
		logger.Critical(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		// asking listener to shutdown and shed load
		if err = server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Critical(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}

func setUpDB(conf *core.Config) (*sqlx.DB, error) {
	if err := database.CreateIfNotExist(conf); err != nil {
		return nil, err
	}

	db, err := database.Open(conf)
	if err != nil {
		return nil, err
	}

	if err = database.Migrate(db.DB); err != nil {
		return nil, err
	}
	return db, nil
}

func newTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}
