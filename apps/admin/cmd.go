package main

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/DaddyBoye/School-Management-sub001/core"
	"github.com/DaddyBoye/School-Management-sub001/core/calendar"
)

var errHelp = errors.New("help provided")

type commandLine struct {
	db      *sql.DB
	calSvc  *calendar.Service
	termSvc *calendar.TermService
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  migrate up|up-by-one|down|redo|status|version - run database migrations")
	fmt.Println("  rollover - activate the calendar and current term matching today's date")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	switch args[1] {
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])
	case "rollover":
		return cli.rollover()
	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) rollover() error {
	today := core.Today()

	cal, err := cli.calSvc.AutoSetActiveByDate(today)
	if err != nil {
		return err
	}
	fmt.Printf("active calendar: %s (%s .. %s)\n", cal.Name, cal.StartDate, cal.EndDate)

	term, err := cli.termSvc.AutoSetCurrentByDate(today)
	if err != nil {
		return err
	}
	fmt.Printf("current term: %s (%s .. %s)\n", term.Name, term.StartDate, term.EndDate)
	return nil
}
