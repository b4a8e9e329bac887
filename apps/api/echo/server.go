package echoapi

import (
	"context"
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/trezcool/hustle/core"
	"github.com/trezcool/hustle/core/billing"
	"github.com/trezcool/hustle/core/challenge"
	"github.com/trezcool/hustle/core/curriculum"
	"github.com/trezcool/hustle/core/library"
	"github.com/trezcool/hustle/core/tracker"
	"github.com/trezcool/hustle/core/user"
)

type (
	Options struct {
		Conf           *core.Config
		Logger         core.Logger
		Validate       *validator.Validate
		Translator     ut.Translator
		Resolver       UserResolver
		SignalShutdown func()
		Deps           Deps
	}

	Deps struct {
		UserSvc       *user.Service
		CurriculumSvc *curriculum.Service
		LibrarySvc    *library.Service
		TrackerSvc    *tracker.Service
		ChallengeSvc  *challenge.Service
		BillingSvc    *billing.Service
	}

	Server interface {
		http.Handler
		Start() error
		Stop(context.Context) error
	}

	server struct {
		opts *Options
		app  *echo.Echo
	}
)

var _ Server = (*server)(nil)

func NewServer(opts *Options) Server {
	if opts.SignalShutdown == nil {
		opts.SignalShutdown = func() {}
	}
	s := &server{
		opts: opts,
		app:  echo.New(),
	}
	s.setup()
	return s
}

func (s *server) setup() {
	conf := s.opts.Conf

	s.app.HideBanner = true
	s.app.Pre(middleware.RemoveTrailingSlash())
	s.app.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: func() string { return uuid.New().String() },
	}))
	s.app.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: conf.Server.AllowedOrigins,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, adminKeyHeader},
	}))
	if !conf.Server.DisableRequestLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.opts.Logger, s.opts.Translator, s.opts.SignalShutdown)
	s.app.Debug = conf.Debug

	s.app.GET("/", s.home)

	api := s.app.Group("/api")
	currentUser := currentUserMiddleware(s.opts.Resolver, s.opts.Deps.UserSvc)
	admin := adminMiddleware(conf.Auth.AdminKey)
	deps := s.opts.Deps

	registerUserAPI(api, currentUser, deps.UserSvc, s.opts.Validate)
	registerCurriculumAPI(api, currentUser, admin, deps.CurriculumSvc, s.opts.Validate)
	registerLibraryAPI(api, currentUser, admin, deps.LibrarySvc, s.opts.Validate)
	registerTrackerAPI(api, currentUser, deps.TrackerSvc, s.opts.Validate)
	registerChallengeAPI(api, currentUser, deps.ChallengeSvc, s.opts.Validate)
	registerBillingAPI(api, currentUser, deps.BillingSvc, s.opts.Validate)
}

// Start blocks until the server stops. It returns http.ErrServerClosed after Stop.
func (s *server) Start() error {
	return s.app.Start(s.opts.Conf.Server.Host)
}

func (s *server) Stop(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func (s *server) home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to "+s.opts.Conf.AppName+" API!")
}
