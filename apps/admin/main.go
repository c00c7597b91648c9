package main

import (
	"log"
	"os"

	"github.com/smarttrack/backend/core"
	"github.com/smarttrack/backend/core/school"
	"github.com/smarttrack/backend/core/user"
	logsvc "github.com/smarttrack/backend/services/logger"
	"github.com/smarttrack/backend/storage/kvstore"
	kvrepos "github.com/smarttrack/backend/storage/kvstore/repos"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf, err := core.NewConfig()
	errAndDie(err)

	// set up store
	store, err := kvstore.Open(conf)
	errAndDie(err)
	defer store.Close()

	db := kvrepos.NewDB(store, logsvc.NewStdLogger(logger))
	usrRepo := kvrepos.NewUserRepository(db)

	// start CLI
	cli := commandLine{
		store:     store,
		usrSvc:    user.NewService(usrRepo),
		schoolSvc: schoolService(db, usrRepo, conf),
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func schoolService(db *kvrepos.DB, usrRepo user.Repository, conf *core.Config) *school.Service {
	return school.NewService(
		kvrepos.NewSchoolRepository(db),
		usrRepo,
		kvrepos.NewAttendanceRepository(db),
		kvrepos.NewFeesRepository(db),
		kvrepos.NewLeaveRepository(db),
		logsvc.NewStdLogger(logger),
	)
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
