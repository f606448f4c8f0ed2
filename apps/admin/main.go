package main

import (
	"log"
	"os"

	"github.com/DaddyBoye/School-Management-sub001/core"
	"github.com/DaddyBoye/School-Management-sub001/core/calendar"
	"github.com/DaddyBoye/School-Management-sub001/storage/database"
	sqlxrepos "github.com/DaddyBoye/School-Management-sub001/storage/database/sqlx"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf := core.NewConfig()

	// set up DB
	errAndDie(database.CreateIfNotExist(conf))
	db, err := database.Open(conf)
	errAndDie(err)
	defer db.Close()
	errAndDie(db.Ping())

	calRepo := sqlxrepos.NewCalendarRepository(db, conf.Database.Timeout)
	termRepo := sqlxrepos.NewTermRepository(db, conf.Database.Timeout)

	// start CLI
	cli := commandLine{
		db:      db.DB,
		calSvc:  calendar.NewService(calRepo, termRepo, nil),
		termSvc: calendar.NewTermService(termRepo, calRepo, nil),
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
