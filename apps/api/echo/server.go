package echoapi

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/trezcool/kocha/core"
	"github.com/trezcool/kocha/core/attendance"
	"github.com/trezcool/kocha/core/availability"
	"github.com/trezcool/kocha/core/drill"
	"github.com/trezcool/kocha/core/event"
	"github.com/trezcool/kocha/core/eventdrill"
	"github.com/trezcool/kocha/core/player"
	"github.com/trezcool/kocha/core/stats"
	"github.com/trezcool/kocha/core/team"
)

type (
	ServerDeps struct {
		Conf            *core.Config
		Logger          core.Logger
		TeamSvc         team.Service
		PlayerSvc       player.Service
		EventSvc        event.Service
		DrillSvc        drill.Service
		EventDrillSvc   eventdrill.Service
		AttendanceSvc   attendance.Service
		AvailabilitySvc availability.Service
		StatsSvc        stats.Service
		Validate        *validator.Validate
		Translator      ut.Translator
	}

	Server struct {
		deps       ServerDeps
		app        *echo.Echo
		errs       chan error
		shutdownCh chan os.Signal
	}
)

func NewServer(deps ServerDeps) *Server {
	s := &Server{
		deps:       deps,
		app:        echo.New(),
		errs:       make(chan error, 1),
		shutdownCh: make(chan os.Signal, 1),
	}
	signal.Notify(s.shutdownCh, syscall.SIGINT, syscall.SIGTERM)
	s.setup()
	return s
}

func (s *Server) setup() {
	conf := s.deps.Conf

	s.app.Pre(middleware.RemoveTrailingSlash())
	if !conf.TestMode {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.deps.Logger, s.deps.Translator, s.SignalShutdown)
	s.app.Debug = conf.Debug
	s.app.HideBanner = true

	s.app.GET("/", home)

	v1 := s.app.Group("/v1")
	jwt := middleware.JWTWithConfig(newAppJWTConfig(conf))

	registerTeamAPI(v1, jwt, &s.deps)
	registerPlayerAPI(v1, jwt, &s.deps)
	registerEventAPI(v1, jwt, &s.deps)
	registerEventDrillAPI(v1, jwt, &s.deps)
	registerDrillAPI(v1, jwt, &s.deps)
	registerAttendanceAPI(v1, jwt, &s.deps)
	registerAvailabilityAPI(v1, jwt, &s.deps)
	registerStatsAPI(v1, jwt, &s.deps)
}

func (s *Server) Start() {
	if err := s.app.Start(s.deps.Conf.Server.Host); err != nil && err != http.ErrServerClosed {
		s.errs <- err
	}
}

// Errors reports fatal server errors.
func (s *Server) Errors() <-chan error { return s.errs }

// ShutdownSignal reports OS termination signals and internal shutdown requests.
func (s *Server) ShutdownSignal() <-chan os.Signal { return s.shutdownCh }

// SignalShutdown requests a graceful shutdown, used when an integrity issue is identified.
func (s *Server) SignalShutdown() {
	s.shutdownCh <- syscall.SIGTERM
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *Server) Close() error {
	return s.app.Close()
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to Kocha API!")
}
