package main

import (
	"context"
	"expvar"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"tourdash/internal/auth"
	"tourdash/internal/batch"
	"tourdash/internal/db"
	"tourdash/internal/docfield"
	"tourdash/internal/domain/storage"
	"tourdash/internal/mailer"
	"tourdash/internal/notifications"
	"tourdash/internal/ratelimiter"
	"tourdash/internal/reports"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func envString(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if val, exists := os.LookupEnv(key); exists && val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
		fmt.Printf("Invalid %s, defaulting to %d\n", key, fallback)
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if val, exists := os.LookupEnv(key); exists && val != "" {
		if parsed, err := strconv.ParseBool(val); err == nil {
			return parsed
		}
		fmt.Printf("Invalid %s, defaulting to %t\n", key, fallback)
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if val, exists := os.LookupEnv(key); exists && val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
		fmt.Printf("Invalid %s, defaulting to %s\n", key, fallback)
	}
	return fallback
}

// LoadRateLimiterConfig retrieves rate limiter settings from environment variables
func LoadRateLimiterConfig() ratelimiter.Config {
	return ratelimiter.Config{
		RequestsPerTimeFrame: envInt("RATE_LIMITER_REQUESTS_COUNT", 200),
		TimeFrame:            envDuration("RATE_LIMITER_TIME_FRAME", 5*time.Second),
		Enabled:              envBool("RATE_LIMITER_ENABLED", false),
	}
}

func loadConfig() (config, error) {
	loc, err := time.LoadLocation(envString("TIMEZONE", "Asia/Manila"))
	if err != nil {
		return config{}, fmt.Errorf("invalid TIMEZONE: %w", err)
	}

	return config{
		addr:            envString("ADDR", ":8080"),
		env:             envString("ENV", "development"),
		apiURL:          envString("EXTERNAL_URL", "localhost:8080"),
		fetchBatchSize:  envInt("FETCH_BATCH_SIZE", batch.DefaultSize),
		domesticCountry: envString("DOMESTIC_COUNTRY", "Philippines"),
		location:        loc,
		db: dbConfig{
			addr:        os.Getenv("DB_ADDR"),
			maxConns:    int32(envInt("DB_MAX_CONNS", 10)),
			maxIdleTime: envString("DB_MAX_IDLE_TIME", "15m"),
			migrate:     envBool("DB_MIGRATE", true),
		},
		auth: authConfig{
			basic: basicConfig{
				user: os.Getenv("AUTH_BASIC_USER"),
				pass: os.Getenv("AUTH_BASIC_PASS"),
			},
			token: tokenConfig{
				secret: os.Getenv("AUTH_TOKEN_SECRET"),
				iss:    envString("AUTH_TOKEN_ISS", "tourdash"),
			},
		},
		rateLimiter:   LoadRateLimiterConfig(),
		cloudinaryURL: os.Getenv("CLOUDINARY_URL"),
		mail: mailConfig{
			host:      os.Getenv("SMTP_HOST"),
			port:      envInt("SMTP_PORT", 587),
			username:  os.Getenv("SMTP_USERNAME"),
			password:  os.Getenv("SMTP_PASSWORD"),
			fromEmail: os.Getenv("SMTP_FROM_EMAIL"),
		},
		report: reportConfig{
			schedule:   os.Getenv("REPORT_SCHEDULE"),
			recipients: reports.ParseRecipients(os.Getenv("REPORT_RECIPIENTS")),
		},
		alerts: alertConfig{
			expoAccessToken: os.Getenv("EXPO_ACCESS_TOKEN"),
			interval:        envDuration("ALERT_INTERVAL", 0),
		},
	}, nil
}

// NewLogger creates a new zap logger with color.
func NewLogger() (*zap.SugaredLogger, error) {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder

	consoleEncoder := zapcore.NewConsoleEncoder(encoderCfg)
	level := zapcore.InfoLevel
	core := zapcore.NewCore(consoleEncoder, zapcore.NewMultiWriteSyncer(zapcore.AddSync(os.Stdout)), level)

	logger := zap.New(core)

	return logger.Sugar(), nil
}

var version = "0.3.0"

//	@title			Tour Dashboard API
//	@description	Ticket monitoring, aggregation and exports for tour operations.

//	@contact.name	API Support

//	@BasePath					/v1
//	@securityDefinitions.apikey	ApiKeyAuth
//	@in							header
//	@name						Authorization
//	@description

func main() {
	// a missing .env is fine; the environment may already be set
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file loaded:", err)
	}

	decimal.MarshalJSONWithoutQuotes = true

	cfg, err := loadConfig()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}
	docfield.Location = cfg.location

	logger, err := NewLogger()
	if err != nil {
		fmt.Println("Error creating logger:", err)
		return
	}
	defer logger.Sync()

	if cfg.auth.token.secret == "" {
		logger.Fatal("AUTH_TOKEN_SECRET is required")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Database
	pool, err := db.New(cfg.db.addr, cfg.db.maxConns, cfg.db.maxIdleTime)
	if err != nil {
		logger.Fatal(err)
	}
	defer pool.Close()
	logger.Info("database connection pool established")

	if cfg.db.migrate {
		if err := db.Migrate(ctx, pool); err != nil {
			logger.Fatal(err)
		}
	}

	store := storage.NewContainer(pool, cfg.fetchBatchSize)

	rateLimiter := ratelimiter.NewFixedWindowLimiter(
		cfg.rateLimiter.RequestsPerTimeFrame,
		cfg.rateLimiter.TimeFrame,
	)
	go rateLimiter.Run(ctx)

	jwtAuthenticator := auth.NewJWTAuthenticator(
		cfg.auth.token.secret,
		cfg.auth.token.iss,
		cfg.auth.token.iss,
	)

	app := &application{
		config:        cfg,
		logger:        logger,
		store:         store,
		authenticator: jwtAuthenticator,
		rateLimiter:   rateLimiter,
		clock:         time.Now,
	}

	reporter := &reports.Reporter{
		Tickets: store.Tickets,
		Lookups: store,
		Config: reports.Config{
			Schedule:        cfg.report.schedule,
			Recipients:      cfg.report.recipients,
			DomesticCountry: cfg.domesticCountry,
			Location:        cfg.location,
		},
		Logger: logger,
	}
	if cfg.cloudinaryURL != "" {
		cld, err := cloudinary.NewFromURL(cfg.cloudinaryURL)
		if err != nil {
			logger.Fatal(err)
		}
		reporter.Archiver = reports.NewCloudinaryArchiver(cld, "ticket-reports")
	}
	if cfg.mail.host != "" {
		reporter.Mailer = mailer.NewSMTP(cfg.mail.host, cfg.mail.port, cfg.mail.username, cfg.mail.password, cfg.mail.fromEmail)
	}
	if err := reporter.Start(ctx); err != nil {
		logger.Fatal(err)
	}

	if cfg.alerts.interval > 0 {
		alerter := notifications.NewAlerter(notifications.NewExpo(cfg.alerts.expoAccessToken), store.Tickets, store.Employees, logger)
		app.startAlertSweeps(ctx, alerter, cfg.alerts.interval)
	}

	//Metrics collected http://localhost:8080/v1/debug/vars
	expvar.NewString("version").Set(version)
	expvar.Publish("database", expvar.Func(func() any {
		return pool.Stat().TotalConns()
	}))
	expvar.Publish("goroutines", expvar.Func(func() any {
		return runtime.NumGoroutine()
	}))

	mux := app.mount()

	logger.Fatal(app.run(mux))
}
