package main

import (
	"context"
	"database/sql"
	"expvar"
	"fmt"
	"log"
	"net/http"
	_ "net/http/pprof" // register /debug/pprof handlers
	"os"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	echoapi "github.com/trezcool/kocha/apps/api/echo"
	"github.com/trezcool/kocha/core"
	"github.com/trezcool/kocha/core/attendance"
	"github.com/trezcool/kocha/core/availability"
	"github.com/trezcool/kocha/core/drill"
	"github.com/trezcool/kocha/core/event"
	"github.com/trezcool/kocha/core/eventdrill"
	"github.com/trezcool/kocha/core/player"
	"github.com/trezcool/kocha/core/stats"
	"github.com/trezcool/kocha/core/team"
	emailsvc "github.com/trezcool/kocha/services/email"
	logsvc "github.com/trezcool/kocha/services/logger"
	"github.com/trezcool/kocha/storage/database"
	sqlxrepos "github.com/trezcool/kocha/storage/database/sqlx"
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
		logger.Fatal(fmt.Sprintf("setting up database: %v", err), err)
	}
	defer func() {
		if err = db.Close(); err != nil {
			dbLogger.Fatal("Failed to close", err)
		}
	}()

	// set up services
	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService(conf)
	} else {
		mailSvc = emailsvc.NewSendgridService(logger, conf)
	}

	teamRepo := sqlxrepos.NewTeamRepository(db)
	playerRepo := sqlxrepos.NewPlayerRepository(db)
	eventRepo := sqlxrepos.NewEventRepository(db)
	drillRepo := sqlxrepos.NewDrillRepository(db)
	eventDrillRepo := sqlxrepos.NewEventDrillRepository(db)

	teamSvc := team.NewService(teamRepo)
	playerSvc := player.NewService(playerRepo)
	eventSvc := event.NewService(eventRepo, teamRepo, playerRepo, mailSvc)
	drillSvc := drill.NewService(drillRepo)
	eventDrillSvc := eventdrill.NewService(eventDrillRepo, drillRepo)
	attendanceSvc := attendance.NewService(sqlxrepos.NewAttendanceRepository(db))
	availabilitySvc := availability.NewService(sqlxrepos.NewAvailabilityRepository(db))
	statsSvc := stats.NewService(sqlxrepos.NewStatsRepository(db))

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	validate := validator.New()
	translator := newTranslator()
	core.InitValidators(validate, translator)
	team.InitValidators(validate, translator)

	core.ParseEmailTemplates(logger, conf)

	// =========================================================================
	// Start Debug Service
	//
	// /debug/pprof - Added to the default mux by importing the net/http/pprof package.
	// /debug/vars - Added to the default mux by importing the expvar package.

	// Expose important info under /debug/vars.
	expvar.NewString("build").Set(conf.Build)
	expvar.NewString("env").Set(conf.Env)

	go func() {
		if err = http.ListenAndServe(conf.Server.DebugHost, http.DefaultServeMux); err != nil {
			logger.Error(fmt.Sprintf("debug server closed: %v", err), err)
		}
	}()

	// =========================================================================
	// Start API Service

	server := echoapi.NewServer(
		echoapi.ServerDeps{
			Conf:            conf,
			Logger:          logger,
			TeamSvc:         teamSvc,
			PlayerSvc:       playerSvc,
			EventSvc:        eventSvc,
			DrillSvc:        drillSvc,
			EventDrillSvc:   eventDrillSvc,
			AttendanceSvc:   attendanceSvc,
			AvailabilitySvc: availabilitySvc,
			StatsSvc:        statsSvc,
			Validate:        validate,
			Translator:      translator,
		},
	)

	go func() {
		server.Start()
	}()

	// =========================================================================
	// Shutdown

	select {
	case err = <-server.Errors():
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		// asking listener to shutdown and shed load
		if err = server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}

func setUpDB(conf *core.Config) (*sql.DB, error) {
	if err := database.CreateIfNotExist(conf); err != nil {
		return nil, err
	}

	db, err := database.Open(conf)
	if err != nil {
		return nil, err
	}

	if err = database.Migrate(db); err != nil {
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
