package main

import (
	"context"
	"expvar"
	"fmt"
	"log"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/stripe/stripe-go/v72"

	echoapi "github.com/trezcool/hustle/apps/api/echo"
	"github.com/trezcool/hustle/core"
	"github.com/trezcool/hustle/core/billing"
	"github.com/trezcool/hustle/core/challenge"
	"github.com/trezcool/hustle/core/curriculum"
	"github.com/trezcool/hustle/core/library"
	"github.com/trezcool/hustle/core/tracker"
	"github.com/trezcool/hustle/core/user"
	billingsvc "github.com/trezcool/hustle/services/billing"
	emailsvc "github.com/trezcool/hustle/services/email"
	logsvc "github.com/trezcool/hustle/services/logger"
	"github.com/trezcool/hustle/storage/database"
	dummydb "github.com/trezcool/hustle/storage/database/dummy"
	sqlxrepos "github.com/trezcool/hustle/storage/database/sqlx"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

// repositories groups the storage of every domain, whichever engine backs it.
type repositories struct {
	users      user.Repository
	modules    curriculum.ModuleRepository
	progress   curriculum.ProgressRepository
	templates  library.Repository
	activities tracker.Repository
	challenge  challenge.Repository
	close      func() error
}

func run() error {
	// =========================================================================
	// Set up Dependencies

	conf := core.NewConfig()

	sink, err := logsvc.NewZap(conf.Debug, "api")
	if err != nil {
		return errors.Wrap(err, "building zap logger")
	}
	defer func() { _ = sink.Sync() }()
	logger := logsvc.NewRollbarLogger(sink, conf)

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	repos, err := setUpStorage(context.Background(), conf, logger)
	if err != nil {
		return errors.Wrap(err, "setting up storage")
	}
	defer func() {
		if err := repos.close(); err != nil {
			logger.Error(fmt.Sprintf("closing storage: %v", err), err)
		}
	}()

	var mailSvc core.EmailService
	if conf.SendgridApiKey == "" {
		mailSvc = emailsvc.NewConsoleService(conf, logger)
	} else {
		mailSvc = emailsvc.NewSendgridService(conf, logger)
	}

	var provider billing.Provider
	if conf.Billing.StripeSecretKey == "" {
		logger.Warn("no Stripe secret key configured; billing runs in mock mode")
		provider = billingsvc.NewMockProvider()
	} else {
		stripe.DefaultLeveledLogger = &stripe.LeveledLogger{Level: stripe.LevelError}
		provider = billingsvc.NewStripeProvider(conf.Billing.StripeSecretKey, conf.Billing.Currency, logger, nil)
	}

	var resolver echoapi.UserResolver
	switch conf.Auth.Mode {
	case core.AuthModeToken:
		resolver = echoapi.TokenUserResolver{Secret: []byte(conf.SecretKey)}
	default:
		resolver = echoapi.FixedUserResolver{UserID: conf.Auth.FixedUserID}
	}

	usrSvc := user.NewService(repos.users, mailSvc)
	currSvc := curriculum.NewService(repos.modules, repos.progress)

	// =========================================================================
	// Initialize App

	validate := validator.New()
	translator := newTranslator()
	core.InitValidators(validate, translator)
	user.InitValidators(validate, translator)
	curriculum.InitValidators(validate, translator)
	tracker.InitValidators(validate, translator)

	// =========================================================================
	// Start Debug Service
	//
	// /debug/pprof - Added to the default mux by importing the net/http/pprof package.
	// /debug/vars - Added to the default mux by importing the expvar package.

	// Expose important info under /debug/vars.
	expvar.NewString("build").Set(conf.Build)
	expvar.NewString("env").Set(conf.Env)
	expvar.NewString("dbEngine").Set(conf.Database.Engine)

	go func() {
		if err := http.ListenAndServe(conf.Server.DebugHost, http.DefaultServeMux); err != nil {
			logger.Error(fmt.Sprintf("debug server closed: %v", err), err)
		}
	}()

	// =========================================================================
	// Start API Service

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	server := echoapi.NewServer(&echoapi.Options{
		Conf:       conf,
		Logger:     logger,
		Validate:   validate,
		Translator: translator,
		Resolver:   resolver,
		SignalShutdown: func() {
			shutdown <- syscall.SIGTERM
		},
		Deps: echoapi.Deps{
			UserSvc:       usrSvc,
			CurriculumSvc: currSvc,
			LibrarySvc:    library.NewService(repos.templates),
			TrackerSvc:    tracker.NewService(repos.activities, currSvc),
			ChallengeSvc:  challenge.NewService(repos.challenge),
			BillingSvc:    billing.NewService(provider, usrSvc, conf.Billing.StripePriceID),
		},
	})

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info(fmt.Sprintf("API listening on %s", conf.Server.Host))
		serverErrors <- server.Start()
	}()

	// =========================================================================
	// Shutdown

	select {
	case err := <-serverErrors:
		return errors.Wrap(err, "server error")

	case sig := <-shutdown:
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Stop(ctx); err != nil {
			return errors.Wrap(err, "could not stop server gracefully")
		}
	}
	return nil
}

// setUpStorage opens the configured engine. The memory engine is seeded with demo data when enabled;
// postgres is migrated to the latest version and seeded only when empty.
func setUpStorage(ctx context.Context, conf *core.Config, logger core.Logger) (repositories, error) {
	switch conf.Database.Engine {
	case core.EnginePostgres:
		db, err := database.Open(ctx, conf.Database)
		if err != nil {
			return repositories{}, err
		}
		if err := database.Migrate(db, "up"); err != nil {
			_ = db.Close()
			return repositories{}, err
		}
		if conf.Database.Seed {
			seedPostgres(ctx, db, logger)
		}
		return repositories{
			users:      sqlxrepos.NewUserRepository(db),
			modules:    sqlxrepos.NewModuleRepository(db),
			progress:   sqlxrepos.NewProgressRepository(db),
			templates:  sqlxrepos.NewTemplateRepository(db),
			activities: sqlxrepos.NewActivityRepository(db),
			challenge:  sqlxrepos.NewChallengeRepository(db),
			close:      db.Close,
		}, nil

	case core.EngineMemory:
		db, err := dummydb.Open()
		if err != nil {
			return repositories{}, err
		}
		if conf.Database.Seed {
			if err := dummydb.Seed(ctx, db); err != nil {
				return repositories{}, errors.Wrap(err, "seeding demo data")
			}
			logger.Info("in-memory store seeded with demo data")
		}
		return repositories{
			users:      dummydb.NewUserRepository(db),
			modules:    dummydb.NewModuleRepository(db),
			progress:   dummydb.NewProgressRepository(db),
			templates:  dummydb.NewTemplateRepository(db),
			activities: dummydb.NewActivityRepository(db),
			challenge:  dummydb.NewChallengeRepository(db),
			close:      func() error { return nil },
		}, nil

	default:
		return repositories{}, errors.Errorf("unknown database engine %q", conf.Database.Engine)
	}
}

func seedPostgres(ctx context.Context, db *sqlx.DB, logger core.Logger) {
	var count int
	if err := db.GetContext(ctx, &count, "SELECT count(*) FROM users"); err != nil {
		logger.Error(fmt.Sprintf("checking users before seeding: %v", err), err)
		return
	}
	if count > 0 {
		return
	}
	if err := sqlxrepos.Seed(ctx, db); err != nil {
		logger.Error(fmt.Sprintf("seeding demo data: %v", err), err)
		return
	}
	logger.Info("database seeded with demo data")
}

func newTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}
