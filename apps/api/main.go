package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	echoapi "github.com/smarttrack/backend/apps/api/echo"
	"github.com/smarttrack/backend/core"
	"github.com/smarttrack/backend/core/attendance"
	"github.com/smarttrack/backend/core/fees"
	"github.com/smarttrack/backend/core/leave"
	"github.com/smarttrack/backend/core/notification"
	"github.com/smarttrack/backend/core/school"
	"github.com/smarttrack/backend/core/user"
	aigensvc "github.com/smarttrack/backend/services/aigen"
	emailsvc "github.com/smarttrack/backend/services/email"
	logsvc "github.com/smarttrack/backend/services/logger"
	notifysvc "github.com/smarttrack/backend/services/notify"
	"github.com/smarttrack/backend/storage/kvstore"
	kvrepos "github.com/smarttrack/backend/storage/kvstore/repos"
)

func main() {
	// =========================================================================
	// Set up Dependencies

	conf, err := core.NewConfig()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	// set up loggers
	var logger core.Logger
	std := log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	if conf.Debug {
		logger = logsvc.NewStdLogger(std)
	} else {
		logger = logsvc.NewRollbarLogger(std, conf)
	}
	logger.Enable(true)

	// set up store
	store, err := kvstore.Open(conf)
	if err != nil {
		log.Fatalf("opening store: %v", err)
	}
	defer func() {
		if err = store.Close(); err != nil {
			logger.Error("closing store", err)
		}
	}()
	if err = store.Initialize(); err != nil {
		log.Fatalf("initializing store: %v", err)
	}

	// set up repositories
	db := kvrepos.NewDB(store, logger)
	schoolRepo := kvrepos.NewSchoolRepository(db)
	userRepo := kvrepos.NewUserRepository(db)
	attRepo := kvrepos.NewAttendanceRepository(db)
	feesRepo := kvrepos.NewFeesRepository(db)
	leaveRepo := kvrepos.NewLeaveRepository(db)
	notifRepo := kvrepos.NewNotificationRepository(db)

	// set up services
	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService(conf, logger)
	} else {
		mailSvc = emailsvc.NewSendgridService(conf, logger)
	}

	var gen notification.Generator
	if conf.Genai.ApiKey != "" {
		gen, err = aigensvc.NewGenaiGenerator(context.Background(), conf)
		if err != nil {
			log.Fatalf("setting up generator: %v", err)
		}
	} else {
		logger.Info("no genai API key configured; using the rule-based generator")
		gen = aigensvc.NewDummyGenerator()
	}

	usrSvc := user.NewService(userRepo)
	schoolSvc := school.NewService(schoolRepo, userRepo, attRepo, feesRepo, leaveRepo, logger)
	attSvc := attendance.NewService(attRepo, userRepo)
	feeSvc := fees.NewService(feesRepo)
	leaveSvc := leave.NewService(leaveRepo, userRepo)
	notifSvc := notification.NewService(
		notifRepo, gen, notifysvc.NewSenders(mailSvc, logger), userRepo, attRepo, feesRepo, logger)

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	validate, translator := core.NewValidator()

	server := echoapi.NewServer(&echoapi.Options{
		Conf:            conf,
		Logger:          logger,
		Validate:        validate,
		Translator:      translator,
		SchoolSvc:       schoolSvc,
		UserSvc:         usrSvc,
		AttendanceSvc:   attSvc,
		FeeSvc:          feeSvc,
		LeaveSvc:        leaveSvc,
		NotificationSvc: notifSvc,
	})

	// =========================================================================
	// Start API Service

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info(fmt.Sprintf("API listening on %s", conf.Server.Address()))
		serverErrors <- server.Start()
	}()

	// =========================================================================
	// Shutdown

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err = <-serverErrors:
		log.Fatalf("server error: %v", err)

	case sig := <-shutdown:
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		if err = server.Stop(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)
		}
	}
}
