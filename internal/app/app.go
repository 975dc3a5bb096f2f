package app

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"net/http"
	"time"

	structValidator "github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/haguru/blogd/config"
	"github.com/haguru/blogd/internal/auth"
	"github.com/haguru/blogd/internal/blogservice"
	"github.com/haguru/blogd/internal/interfaces"
	appMetrics "github.com/haguru/blogd/internal/metrics"
	"github.com/haguru/blogd/internal/middleware"
	"github.com/haguru/blogd/internal/repository/constants"
	"github.com/haguru/blogd/internal/repository/mongorepo"
	"github.com/haguru/blogd/internal/repository/sqlrepo"
	"github.com/haguru/blogd/internal/routes"
	"github.com/haguru/blogd/internal/server"
	"github.com/haguru/blogd/internal/sessionservice"
	"github.com/haguru/blogd/internal/userservice"
	"github.com/haguru/blogd/pkg/databases/mongo"
	"github.com/haguru/blogd/pkg/databases/sqldb"
	"github.com/haguru/blogd/pkg/metrics"
	"github.com/haguru/blogd/pkg/zerolog"
)

// ShutdownTimeout bounds how long Run waits for in-flight requests on exit.
var ShutdownTimeout = 10 * time.Second

// App represents the main application, containing server and configuration.
// It initializes with a config file, validates settings, and manages routes.
type App struct {
	Server     interfaces.Server
	Config     *config.ServiceConfig
	Logger     interfaces.Logger
	Metrics    interfaces.Metrics
	Store      interfaces.Store
	privateKey *ecdsa.PrivateKey
}

// NewApp reads the config file at configPath, applies .env and environment
// overrides and builds the application.
func NewApp(ctx context.Context, configPath string) (*App, error) {
	cfg, err := config.ReadLocalConfig(configPath)
	if err != nil {
		return nil, err
	}
	if err := config.ApplyEnvOverrides(cfg, config.ENV_PATH); err != nil {
		return nil, fmt.Errorf("failed to load environment overrides: %w", err)
	}

	return NewAppFromConfig(ctx, cfg)
}

// NewAppFromConfig validates cfg and wires the store, services and routes.
func NewAppFromConfig(ctx context.Context, cfg *config.ServiceConfig) (*App, error) {
	validator := structValidator.New()
	if err := validator.Struct(cfg); err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}
	if cfg.Database.DSN() == "" {
		return nil, fmt.Errorf("validation error: no connection string for database type %q", cfg.Database.Type)
	}

	logger := zerolog.NewZerologLogger(cfg.ServiceName)
	logger.SetLevel(cfg.LogLevel)

	app := &App{
		Config: cfg,
		Logger: logger,
	}

	app.Metrics = app.initializeMetrics()

	if err := app.initializePrivateKey(); err != nil {
		return nil, fmt.Errorf("failed to initialize private key: %w", err)
	}

	store, err := app.initializeStore(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize store: %w", err)
	}
	app.Store = store

	if err := store.EnsureSchema(ctx); err != nil {
		_ = store.Close(ctx)
		return nil, fmt.Errorf("failed to ensure schema: %w", err)
	}

	userService := userservice.NewUserService(store.Users(), logger, validator)
	sessionService := sessionservice.NewSessionService(store.Sessions(), store.Users(),
		app.privateKey, cfg.Session.TTL, logger, app.Metrics)
	blogService := blogservice.NewBlogService(store.Posts(), logger, app.Metrics, validator)

	route := routes.NewRoute(app.Metrics, logger, userService, sessionService, blogService, cfg.Session)

	app.Server = server.NewServer(cfg.Host, cfg.Port, logger.WithContext(map[string]interface{}{"component": "http"}))
	app.Server.Use(
		otelhttp.NewMiddleware(cfg.ServiceName),
		middleware.RequestLogger(logger, app.Metrics),
		middleware.Recoverer(logger),
	)

	if err := route.Register(app.Server); err != nil {
		_ = store.Close(ctx)
		return nil, err
	}

	metricsHandler := promhttp.HandlerFor(
		app.Metrics.GetRegistry(),
		promhttp.HandlerOpts{})

	tracedMetricsHandler := otelhttp.NewHandler(metricsHandler, routes.MetricsRouteAPI)

	err = app.Server.AddRoute(routes.MetricsRouteAPI, tracedMetricsHandler.ServeHTTP, http.MethodGet)
	if err != nil {
		_ = store.Close(ctx)
		return nil, fmt.Errorf("failed to add metrics route: %w", err)
	}

	return app, nil
}

// Run serves HTTP until ctx is cancelled, then shuts the server down gracefully.
func (app *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := app.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}

	return <-errCh
}

// Close releases the database connection.
func (app *App) Close(ctx context.Context) error {
	if app.Store == nil {
		return nil
	}
	return app.Store.Close(ctx)
}

func (app *App) initializeMetrics() interfaces.Metrics {
	m := metrics.NewMetrics(app.Config.ServiceName)
	appMetrics.Register(m)
	return m
}

func (app *App) initializeStore(ctx context.Context) (interfaces.Store, error) {
	dbConfig := app.Config.Database

	switch dbConfig.Type {
	case config.DatabaseSQLite, config.DatabasePostgres:
		dialect := sqldb.SQLite
		if dbConfig.Type == config.DatabasePostgres {
			dialect = sqldb.Postgres
		}
		client := sqldb.NewClient(dialect, sqldb.Options{
			MaxOpenConns:    dbConfig.Postgres.Options.MaxOpenConns,
			MaxIdleConns:    dbConfig.Postgres.Options.MaxIdleConns,
			ConnMaxLifetime: dbConfig.Postgres.Options.ConnMaxLifetime,
		})
		if err := client.Connect(ctx, dbConfig.DSN()); err != nil {
			return nil, fmt.Errorf("failed to connect to %s: %w", dbConfig.Type, err)
		}
		app.Logger.Info("Connected to database", "type", dbConfig.Type)
		store, err := sqlrepo.NewStore(client)
		if err != nil {
			return nil, err
		}
		return store, nil

	case config.DatabaseMongo:
		mongoConfig := dbConfig.MongoDB
		if len(mongoConfig.ValidCollections) == 0 {
			mongoConfig.ValidCollections = []string{
				constants.UsersCollection,
				constants.BlogsCollection,
				constants.SessionsCollection,
			}
		}
		client, err := mongo.NewMongoDB(&mongoConfig, app.Logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize MongoDB client: %w", err)
		}
		if err := client.Connect(ctx, mongoConfig.DSN); err != nil {
			return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
		}
		store, err := mongorepo.NewStore(client)
		if err != nil {
			return nil, err
		}
		return store, nil

	default:
		return nil, fmt.Errorf("unsupported database type: %s", dbConfig.Type)
	}
}

func (app *App) initializePrivateKey() error {
	privateKey, created, err := auth.LoadOrCreateECDSAPrivateKey(app.Config.PrivateKeyPath)
	if err != nil {
		return err
	}
	if created {
		app.Logger.Warn("Generated new session signing key", "path", app.Config.PrivateKeyPath)
	}

	app.privateKey = privateKey
	return nil
}
