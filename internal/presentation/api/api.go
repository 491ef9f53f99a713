package api

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

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"quizmatch/internal/infrastructure/configs"
	"quizmatch/internal/infrastructure/logging"
	"quizmatch/internal/infrastructure/metrics"
	healthHandler "quizmatch/internal/presentation/handler/health"
	quizzesHandler "quizmatch/internal/presentation/handler/quizzes"
	roomHandler "quizmatch/internal/presentation/handler/rooms"
)

type Application struct {
	config         configs.Config
	roomHandler    *roomHandler.Handler
	quizzesHandler *quizzesHandler.Handler
	healthHandler  *healthHandler.Handler
	logger         logging.Logger
	metrics        *metrics.Metrics
}

func NewApplication(
	config configs.Config,
	roomHandler *roomHandler.Handler,
	quizzesHandler *quizzesHandler.Handler,
	healthHandler *healthHandler.Handler,
	logger logging.Logger,
	m *metrics.Metrics,
) *Application {
	return &Application{
		config:         config,
		roomHandler:    roomHandler,
		quizzesHandler: quizzesHandler,
		healthHandler:  healthHandler,
		logger:         logger,
		metrics:        m,
	}
}

func (app *Application) Mount() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   app.allowedOrigins(),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))

	r.Use(app.loggerMiddleware)
	r.Use(app.prometheusMiddleware)

	r.Route("/api", func(r chi.Router) {
		r.Route("/rooms", func(r chi.Router) {
			r.Post("/", app.roomHandler.CreateRoomHandler)
			r.Get("/", app.roomHandler.ListRoomsHandler)
			r.Post("/join", app.roomHandler.JoinRoomHandler)
			r.Get("/{code}", app.roomHandler.GetRoomHandler)
			r.Put("/{code}", app.roomHandler.UpdateStatusHandler)
			r.Get("/{code}/events", app.roomHandler.RoomEventsHandler)
			r.Post("/{code}/quiz", app.roomHandler.AssignQuizHandler)
		})

		r.Route("/quizzes", func(r chi.Router) {
			r.Get("/", app.quizzesHandler.ListQuizzesHandler)
			r.Post("/", app.quizzesHandler.CreateQuizHandler)
			r.Get("/{quizId}", app.quizzesHandler.GetQuizDataHandler)
			r.Get("/{quizId}/html", app.quizzesHandler.GetQuizHTMLHandler)
			r.Post("/{quizId}/submit", app.quizzesHandler.SubmitAnswerHandler)
		})

		r.Get("/health", app.healthHandler.GetHealth)
		r.Get("/healthz", app.healthHandler.GetHealth)
		r.Get("/ready", app.healthHandler.GetHealth)
		r.Get("/live", app.healthHandler.GetHealth)
	})

	r.Handle("/metrics", metrics.Handler())
	r.Handle("/debug/vars", expvar.Handler())

	return otelhttp.NewHandler(r, "quizmatch")
}

func (app *Application) allowedOrigins() []string {
	if len(app.config.HTTP.AllowedOrigins) > 0 {
		return app.config.HTTP.AllowedOrigins
	}
	return []string{"*"}
}

func (app *Application) Run(mux http.Handler) error {
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", app.config.HTTP.Host, app.config.HTTP.Port),
		Handler:      mux,
		WriteTimeout: app.config.HTTP.WriteTimeout,
		ReadTimeout:  app.config.HTTP.ReadTimeout,
		IdleTimeout:  time.Minute,
	}

	shutdown := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)

		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		app.logger.Info(logging.General, logging.Shutdown, "signal caught", map[logging.ExtraKey]any{
			"signal": s.String(),
		})

		shutdown <- srv.Shutdown(ctx)
	}()

	app.logger.Info(logging.General, logging.Startup, "server has started", map[logging.ExtraKey]any{
		"addr": srv.Addr,
	})

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdown
	if err != nil {
		return err
	}

	app.logger.Info(logging.General, logging.Shutdown, "server has stopped", map[logging.ExtraKey]any{
		"addr": srv.Addr,
	})

	return nil
}
