package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"portfolio-service/internal/core/port"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type ServerConfig struct {
	Port               string
	CORSAllowedOrigins []string
}

type Server struct {
	httpServer *http.Server
	logger     port.LoggerPort
}

// NewRouter собирает маршруты страницы и JSON API.
func NewRouter(cfg ServerConfig, handlers *PortfolioHandlers, baseLogger port.LoggerPort) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP, LoggerMiddleware(baseLogger), middleware.Recoverer)

	r.Get("/healthz", handlers.HandleHealth)

	// HTML-страница и формы диалогов
	r.Get("/", handlers.HandlePage)
	r.Route("/ui/dialogs", func(r chi.Router) {
		r.Post("/", handlers.HandleUIOpenDialog)
		r.Post("/{id}/submit", handlers.HandleUISubmitDialog)
		r.Post("/{id}/reset", handlers.HandleUIResetDialog)
		r.Post("/{id}/close", handlers.HandleUICloseDialog)
	})

	r.Route("/api/v1", func(r chi.Router) {
		origins := cfg.CORSAllowedOrigins
		if len(origins) == 0 {
			origins = []string{"*"}
		}
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: origins,
			AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type", "X-Trace-ID"},
			ExposedHeaders: []string{"X-Trace-ID"},
			MaxAge:         300,
		}))

		r.Get("/properties", handlers.HandleListProperties)
		r.Post("/properties/reload", handlers.HandleReload)
		r.Get("/summary", handlers.HandleSummary)

		r.Route("/dialogs", func(r chi.Router) {
			r.Post("/", handlers.HandleOpenDialog)
			r.Get("/{id}", handlers.HandleGetDialog)
			r.Delete("/{id}", handlers.HandleCloseDialog)
			r.Post("/{id}/submit", handlers.HandleSubmitDialog)
			r.Post("/{id}/reset", handlers.HandleResetDialog)
		})
	})

	return r
}

func NewServer(cfg ServerConfig, handlers *PortfolioHandlers, baseLogger port.LoggerPort) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           NewRouter(cfg, handlers, baseLogger),
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger: baseLogger.WithFields(port.Fields{"component": "rest_server"}),
	}
}

// Start блокируется, пока сервер не остановлен.
func (s *Server) Start() error {
	s.logger.Info("Starting REST API server", port.Fields{"address": s.httpServer.Addr})
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		s.logger.Error("Could not start server", err, nil)
		return fmt.Errorf("could not start server: %w", err)
	}
	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping REST API server...", nil)
	return s.httpServer.Shutdown(ctx)
}
