package main

import (
	"context"
	"fmt"
	"os"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/hustle/core"
	"github.com/trezcool/hustle/core/user"
	emailsvc "github.com/trezcool/hustle/services/email"
	logsvc "github.com/trezcool/hustle/services/logger"
	"github.com/trezcool/hustle/storage/database"
	sqlxrepos "github.com/trezcool/hustle/storage/database/sqlx"
)

func main() {
	conf := core.NewConfig()

	sink, err := logsvc.NewZap(conf.Debug, "admin")
	if err != nil {
		fmt.Fprintf(os.Stderr, "building logger: %v\n", err)
		os.Exit(1)
	}
	logger := logsvc.NewRollbarLogger(sink, conf)

	if conf.Database.Engine != core.EnginePostgres {
		logger.Fatal(fmt.Sprintf("admin commands need the %s engine (got %q)", core.EnginePostgres, conf.Database.Engine))
	}

	// set up DB
	db, err := database.Open(context.Background(), conf.Database)
	if err != nil {
		logger.Fatal(fmt.Sprintf("opening database: %v", err), err)
	}

	var mailSvc core.EmailService
	if conf.SendgridApiKey == "" {
		mailSvc = emailsvc.NewConsoleService(conf, logger)
	} else {
		mailSvc = emailsvc.NewSendgridService(conf, logger)
	}

	validate := validator.New()
	_en := en.New()
	translator, _ := ut.New(_en, _en).GetTranslator("en")
	core.InitValidators(validate, translator)
	user.InitValidators(validate, translator)

	// start CLI
	cli := commandLine{
		conf:     conf,
		usrSvc:   user.NewService(sqlxrepos.NewUserRepository(db), mailSvc),
		validate: validate,
		out:      os.Stdout,
		migrateFunc: func(command string, args ...string) error {
			return database.Migrate(db, command, args...)
		},
		seedFunc: func(ctx context.Context) error {
			return sqlxrepos.Seed(ctx, db)
		},
	}
	err = cli.run(os.Args)
	_ = db.Close()
	_ = sink.Sync()
	if err != nil {
		if err != errHelp {
			fmt.Fprintf(os.Stderr, "\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}
