package main

import (
	"context"
	"errors"
	"expvar"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tourdash/docs" // swagger docs
	"tourdash/internal/auth"
	"tourdash/internal/domain/storage"
	"tourdash/internal/ratelimiter"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
)

type application struct {
	config        config
	store         *storage.Container
	logger        *zap.SugaredLogger
	authenticator auth.Authenticator
	rateLimiter   ratelimiter.Limiter
	clock         func() time.Time
}

type config struct {
	addr            string
	db              dbConfig
	env             string
	apiURL          string
	fetchBatchSize  int
	domesticCountry string
	location        *time.Location
	auth            authConfig
	rateLimiter     ratelimiter.Config
	cloudinaryURL   string
	mail            mailConfig
	report          reportConfig
	alerts          alertConfig
}

type authConfig struct {
	basic basicConfig
	token tokenConfig
}

type tokenConfig struct {
	secret string
	iss    string
}

type basicConfig struct {
	user string
	pass string
}

type mailConfig struct {
	host      string
	port      int
	username  string
	password  string
	fromEmail string
}

type reportConfig struct {
	schedule   string
	recipients []string
}

type alertConfig struct {
	expoAccessToken string
	interval        time.Duration
}

type dbConfig struct {
	addr        string
	maxConns    int32
	maxIdleTime string
	migrate     bool
}

func (app *application) mount() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Use(app.RateLimiterMiddleware)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Route("/v1", func(r chi.Router) {
		r.With(app.BasicAuthMiddleware()).Get("/health", app.healthCheckHandler)
		docsURL := fmt.Sprintf("%s/swagger/doc.json", app.config.addr)
		r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL(docsURL)))

		r.With(app.BasicAuthMiddleware()).Get("/debug/vars", expvar.Handler().ServeHTTP)

		r.Group(func(r chi.Router) {
			r.Use(app.AuthTokenMiddleware)

			r.Route("/tickets", func(r chi.Router) {
				r.Get("/", app.listTicketsHandler)
				r.Post("/batch", app.batchTicketsHandler)
				r.Get("/{ticketID}", app.getTicketHandler)
				r.Delete("/{ticketID}", app.deleteTicketHandler)
			})

			r.Route("/dashboard", func(r chi.Router) {
				r.Get("/summary", app.dashboardSummaryHandler)
				r.Get("/statuses", app.dashboardStatusesHandler)
				r.Get("/daily", app.dashboardDailyHandler)
			})

			r.Route("/exports", func(r chi.Router) {
				r.Get("/tickets.xlsx", app.exportXLSXHandler)
				r.Get("/tickets.pdf", app.exportPDFHandler)
			})

			r.Route("/lookups", func(r chi.Router) {
				r.Get("/activities", app.lookupActivitiesHandler)
				r.Get("/providers", app.lookupProvidersHandler)
				r.Get("/employees", app.lookupEmployeesHandler)
				r.Get("/companies", app.lookupCompaniesHandler)
			})
		})
	})
	return r
}

func (app *application) run(mux http.Handler) error {
	docs.SwaggerInfo.Version = version
	docs.SwaggerInfo.Host = app.config.apiURL
	docs.SwaggerInfo.BasePath = "/v1"

	srv := &http.Server{
		Addr:         app.config.addr,
		Handler:      mux,
		WriteTimeout: time.Second * 30,
		ReadTimeout:  time.Second * 10,
		IdleTimeout:  time.Minute,
	}

	shutdown := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)

		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		app.logger.Infow("signal caught", "signal", s.String())

		shutdown <- srv.Shutdown(ctx)
	}()

	app.logger.Infow("server has started", "addr", app.config.addr, "env", app.config.env)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdown
	if err != nil {
		return err
	}

	app.logger.Infow("server has stopped", "addr", app.config.addr, "env", app.config.env)

	return nil
}
