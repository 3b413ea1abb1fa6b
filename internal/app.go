package internal

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	logger_adapter "portfolio-service/internal/adapters/logger"
	"portfolio-service/internal/adapters/memory"
	postgres_adapter "portfolio-service/internal/adapters/postgres"
	"portfolio-service/internal/adapters/postgrest"
	rabbitmq_adapter "portfolio-service/internal/adapters/rabbitmq"
	"portfolio-service/internal/adapters/rest"
	"portfolio-service/internal/adapters/sqlite"
	"portfolio-service/internal/configs"
	"portfolio-service/internal/contextkeys"
	"portfolio-service/internal/contracts"
	"portfolio-service/internal/core/dialog"
	"portfolio-service/internal/core/port"
	"portfolio-service/internal/core/portfolio"
	"portfolio-service/internal/core/usecase"
	fluentlogger "portfolio-service/pkg/fluent_logger"
	"portfolio-service/pkg/postgres"
	"portfolio-service/pkg/rabbitmq/rabbitmq_common"
	"portfolio-service/pkg/rabbitmq/rabbitmq_producer"

	"github.com/fluent/fluent-logger-golang/fluent"
)

const (
	initialLoadTimeout = 30 * time.Second
	shutdownTimeout    = 15 * time.Second
)

type App struct {
	config    *configs.AppConfig
	apiServer *rest.Server
	screen    *usecase.PortfolioScreenUseCase
	logger    port.LoggerPort
	baseLog   port.LoggerPort

	// закрываются в обратном порядке
	closers      []func() error
	fluentClient *fluent.Fluent
}

func NewApp() (*App, error) {
	appConfig, err := configs.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading application configuration: %w", err)
	}

	// --- 1. Логгеры ---
	activeLoggers := []port.LoggerPort{logger_adapter.NewSlogAdapter(logger_adapter.SlogConfig{
		Level:    parseLogLevel(appConfig.StdoutLogger.Level),
		IsJSON:   appConfig.StdoutLogger.IsJSON,
		UseColor: !appConfig.StdoutLogger.IsJSON,
	})}
	stdoutLogger := activeLoggers[0]

	var fluentClient *fluent.Fluent
	if appConfig.FluentBit.Enabled {
		fluentClient, err = fluentlogger.NewClient(fluentlogger.Config{
			Host:      appConfig.FluentBit.Host,
			Port:      appConfig.FluentBit.Port,
			TagPrefix: appConfig.AppName,
		})
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit client", err, nil)
			return nil, fmt.Errorf("failed to create fluentbit client: %w", err)
		}
		fluentAdapter, err := logger_adapter.NewFluentLoggerAdapter(fluentClient, parseLogLevel(appConfig.FluentBit.Level))
		if err != nil {
			_ = fluentClient.Close()
			return nil, err
		}
		activeLoggers = append(activeLoggers, fluentAdapter)
	}

	multiLogger, err := logger_adapter.NewMultiloggerAdapter(activeLoggers...)
	if err != nil {
		return nil, fmt.Errorf("failed to create multi-logger: %w", err)
	}
	baseLogger := multiLogger.WithFields(port.Fields{"service_name": appConfig.AppName})
	appLogger := baseLogger.WithFields(port.Fields{"component": "app"})
	appLogger.Info("Logger system initialized", port.Fields{
		"active_loggers": len(activeLoggers), "fluent_enabled": appConfig.FluentBit.Enabled,
	})

	app := &App{
		config:       appConfig,
		logger:       appLogger,
		baseLog:      baseLogger,
		fluentClient: fluentClient,
	}
	fail := func(err error) (*App, error) {
		app.closeAll()
		app.closeFluent()
		return nil, err
	}

	// --- 2. Хранилище и события ---
	store, err := app.buildStore(baseLogger)
	if err != nil {
		appLogger.Error("Failed to initialize property store", err, port.Fields{"driver": appConfig.Store.Driver})
		return fail(err)
	}

	var events port.PropertyEventsPort = usecase.NoopEvents{}
	if appConfig.RabbitMQ.Enabled {
		events, err = app.buildEvents(baseLogger)
		if err != nil {
			appLogger.Error("Failed to initialize event publisher", err, nil)
			return fail(err)
		}
	}

	validator, err := contracts.NewFormValidator()
	if err != nil {
		return fail(fmt.Errorf("failed to create form validator: %w", err))
	}

	// --- 3. Use cases ---
	repo, err := usecase.NewPropertyRepository(store, events)
	if err != nil {
		return fail(err)
	}
	listState := portfolio.NewListState()
	screen, err := usecase.NewPortfolioScreenUseCase(repo, listState)
	if err != nil {
		return fail(err)
	}
	registry, err := dialog.NewRegistry(repo, validator, listState)
	if err != nil {
		return fail(err)
	}
	appLogger.Info("All use cases initialized", nil)

	// --- 4. REST ---
	handlers, err := rest.NewPortfolioHandlers(screen, registry, appConfig.Screen.RentalEstimatePCM)
	if err != nil {
		return fail(err)
	}
	app.apiServer = rest.NewServer(rest.ServerConfig{
		Port:               appConfig.Rest.Port,
		CORSAllowedOrigins: appConfig.Rest.CORSAllowedOrigins,
	}, handlers, baseLogger)
	app.screen = screen

	return app, nil
}

func (a *App) buildStore(baseLogger port.LoggerPort) (port.PropertyStorePort, error) {
	cfg := a.config.Store
	switch cfg.Driver {
	case configs.StoreDriverPostgrest:
		return postgrest.NewClient(postgrest.Config{
			BaseURL: cfg.SupabaseURL,
			APIKey:  cfg.SupabaseKey,
			Table:   cfg.Table,
			Timeout: cfg.Timeout,
		})

	case configs.StoreDriverPostgres:
		ctx, cancel := context.WithTimeout(context.Background(), initialLoadTimeout)
		defer cancel()
		pool, err := postgres.NewClient(ctx, postgres.Config{DatabaseURL: cfg.DatabaseURL, PingTimeout: 5 * time.Second})
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, func() error { pool.Close(); return nil })
		adapter, err := postgres_adapter.NewPostgresStorageAdapter(pool, cfg.Table)
		if err != nil {
			return nil, err
		}
		if err := adapter.EnsureSchema(ctx); err != nil {
			return nil, err
		}
		return adapter, nil

	case configs.StoreDriverSQLite:
		adapter, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, adapter.Close)
		return adapter, nil

	case configs.StoreDriverMemory:
		baseLogger.Warn("Using in-memory property store, data is lost on restart", nil)
		return memory.NewPropertyStore(), nil
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
}

func (a *App) buildEvents(baseLogger port.LoggerPort) (port.PropertyEventsPort, error) {
	connBridge := rabbitmq_adapter.NewPkgLoggerBridge(baseLogger, "rabbitmq_conn_manager")
	connManager, err := rabbitmq_common.NewConnectionManager(context.Background(), rabbitmq_common.Config{URL: a.config.RabbitMQ.URL}, connBridge)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection manager: %w", err)
	}
	a.closers = append(a.closers, connManager.Close)

	producer, err := rabbitmq_producer.NewPublisher(rabbitmq_producer.PublisherConfig{
		Config:                   rabbitmq_common.Config{URL: a.config.RabbitMQ.URL},
		ExchangeName:             a.config.RabbitMQ.Exchange,
		ExchangeType:             "topic",
		DurableExchange:          true,
		DeclareExchangeIfMissing: true,
		Logger:                   rabbitmq_adapter.NewPkgLoggerBridge(baseLogger, "rabbitmq_producer"),
	}, connManager)
	if err != nil {
		return nil, fmt.Errorf("failed to create event producer: %w", err)
	}
	a.closers = append(a.closers, producer.Close)
	a.logger.Info("RabbitMQ event producer initialized", port.Fields{"exchange": a.config.RabbitMQ.Exchange})

	return rabbitmq_adapter.NewPropertyEventsPublisher(producer)
}

// Run загружает список, запускает HTTP-сервер и ждет сигнала завершения.
func (a *App) Run() error {
	defer func() {
		a.logger.Info("Shutdown sequence initiated...", nil)
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := a.apiServer.Stop(ctx); err != nil {
			a.logger.Error("Error during API server shutdown", err, nil)
		}
		a.closeAll()
		a.logger.Info("Application shut down gracefully.", nil)
		a.closeFluent()
	}()

	a.logger.Info("Application is starting...", nil)

	// Ошибка загрузки не останавливает приложение: страница остается в "Loading...".
	loadCtx, cancelLoad := context.WithTimeout(context.Background(), initialLoadTimeout)
	loadCtx = contextkeys.ContextWithLogger(loadCtx, a.baseLog.WithFields(port.Fields{"trace_id": "startup"}))
	if err := a.screen.Load(loadCtx); err != nil {
		a.logger.Error("Initial portfolio load failed", err, nil)
	}
	cancelLoad()

	serverErrors := make(chan error, 1)
	go func() {
		if err := a.apiServer.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	a.logger.Info("Application running. Waiting for signals or server error...", port.Fields{"port": a.config.Rest.Port})
	select {
	case receivedSignal := <-quit:
		a.logger.Warn("Received OS signal, shutting down...", port.Fields{"signal": receivedSignal.String()})
		return nil
	case err := <-serverErrors:
		a.logger.Error("HTTP server failed, shutting down", err, nil)
		return err
	}
}

func (a *App) closeAll() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.logger.Error("Error closing resource", err, nil)
		}
	}
	a.closers = nil
}

func (a *App) closeFluent() {
	if a.fluentClient == nil {
		return
	}
	if err := a.fluentClient.Close(); err != nil {
		// fluent уже может быть недоступен
		fmt.Printf("ERROR: Error closing fluent client: %v\n", err)
	}
	a.fluentClient = nil
}

func parseLogLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		log.Printf("Warning: Unknown log level '%s'. Defaulting to 'info'.", levelStr)
		return slog.LevelInfo
	}
}
