package core

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	Config struct {
		AppName          string
		Env              string // DEV (local; default), TEST, QA, PROD
		Build            string
		Debug            bool
		TestMode         bool
		SecretKey        string
		DefaultFromEmail string
		FrontendBaseURL  string
		SendgridApiKey   string
		RollbarToken     string

		Server   ServerConfig
		Database DatabaseConfig
		Auth     AuthConfig
		Billing  BillingConfig
	}

	ServerConfig struct {
		Host               string
		DebugHost          string
		ShutdownTimeout    time.Duration
		DisableRequestLogs bool
		AllowedOrigins     []string
	}

	DatabaseConfig struct {
		Engine     string // memory | postgres
		Host       string
		Port       string
		User       string
		Password   string
		Name       string
		DisableTLS bool
		MaxConns   int
		Seed       bool
	}

	AuthConfig struct {
		Mode                 string // fixed | token
		FixedUserID          int
		AdminKey             string
		TokenExpirationDelta time.Duration
	}

	BillingConfig struct {
		StripeSecretKey string
		StripePriceID   string
		Currency        string
	}
)

const (
	EngineMemory   = "memory"
	EnginePostgres = "postgres"

	AuthModeFixed = "fixed"
	AuthModeToken = "token"
)

func (c DatabaseConfig) Address() string {
	return c.Host + ":" + c.Port
}

// NewConfig reads the configuration from defaults, the optional config/.env.<env> file and the environment.
// Environment variables are prefixed with the upper-cased env name, e.g. DEV_SERVER_HOST.
func NewConfig() *Config {
	v := viper.New()

	v.SetTypeByDefaultValue(true)
	v.SetDefault("appName", "Creative Hustle")
	v.SetDefault("build", "develop")
	v.SetDefault("debug", true)
	v.SetDefault("testMode", false)
	v.SetDefault("secretKey", "4r7$-gxk9)hustle+2=dz&uoq1(h!x)#*v7(#yg4h^$cegm2emy")
	v.SetDefault("defaultFromEmail", "noreply@localhost")
	v.SetDefault("frontendBaseURL", "http://localhost:5000")
	v.SetDefault("sendgridApiKey", "")
	v.SetDefault("rollbarToken", "")

	v.SetDefault("server.host", ":8000")
	v.SetDefault("server.debugHost", ":4000")
	v.SetDefault("server.shutdownTimeout", 5*time.Second)
	v.SetDefault("server.disableRequestLogs", false)
	v.SetDefault("server.allowedOrigins", []string{"*"})

	v.SetDefault("database.engine", EngineMemory)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.name", "hustle")
	v.SetDefault("database.disableTLS", true)
	v.SetDefault("database.maxConns", 5)
	v.SetDefault("database.seed", true)

	v.SetDefault("auth.mode", AuthModeFixed)
	v.SetDefault("auth.fixedUserId", 1)
	v.SetDefault("auth.adminKey", "")
	v.SetDefault("auth.tokenExpirationDelta", 7*24*time.Hour)

	v.SetDefault("billing.stripeSecretKey", "")
	v.SetDefault("billing.stripePriceId", "price_default")
	v.SetDefault("billing.currency", "usd")

	env := strings.ToUpper(os.Getenv("ENV"))
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		v.SetDefault("testMode", true)
	}
	v.SetEnvPrefix(env)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(ProjectRoot(), "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	v.AutomaticEnv()

	return &Config{
		AppName:          v.GetString("appName"),
		Env:              env,
		Build:            v.GetString("build"),
		Debug:            v.GetBool("debug"),
		TestMode:         v.GetBool("testMode"),
		SecretKey:        v.GetString("secretKey"),
		DefaultFromEmail: v.GetString("defaultFromEmail"),
		FrontendBaseURL:  v.GetString("frontendBaseURL"),
		SendgridApiKey:   v.GetString("sendgridApiKey"),
		RollbarToken:     v.GetString("rollbarToken"),
		Server: ServerConfig{
			Host:               v.GetString("server.host"),
			DebugHost:          v.GetString("server.debugHost"),
			ShutdownTimeout:    v.GetDuration("server.shutdownTimeout"),
			DisableRequestLogs: v.GetBool("server.disableRequestLogs"),
			AllowedOrigins:     v.GetStringSlice("server.allowedOrigins"),
		},
		Database: DatabaseConfig{
			Engine:     strings.ToLower(v.GetString("database.engine")),
			Host:       v.GetString("database.host"),
			Port:       v.GetString("database.port"),
			User:       v.GetString("database.user"),
			Password:   v.GetString("database.password"),
			Name:       v.GetString("database.name"),
			DisableTLS: v.GetBool("database.disableTLS"),
			MaxConns:   v.GetInt("database.maxConns"),
			Seed:       v.GetBool("database.seed"),
		},
		Auth: AuthConfig{
			Mode:                 strings.ToLower(v.GetString("auth.mode")),
			FixedUserID:          v.GetInt("auth.fixedUserId"),
			AdminKey:             v.GetString("auth.adminKey"),
			TokenExpirationDelta: v.GetDuration("auth.tokenExpirationDelta"),
		},
		Billing: BillingConfig{
			StripeSecretKey: v.GetString("billing.stripeSecretKey"),
			StripePriceID:   v.GetString("billing.stripePriceId"),
			Currency:        v.GetString("billing.currency"),
		},
	}
}
