package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/adminboard/internal"
	"github.com/adminboard/internal/assets"
	"github.com/adminboard/internal/auth"
	"github.com/adminboard/internal/core/events"
	"github.com/adminboard/internal/feature"
	featurePostgres "github.com/adminboard/internal/feature/postgres"
	"github.com/adminboard/internal/permissions"
	"github.com/adminboard/internal/seeder"
	"github.com/adminboard/internal/session"
	sessionPostgres "github.com/adminboard/internal/session/postgres"
	"github.com/adminboard/internal/tables"
	"github.com/adminboard/internal/transport"
	"github.com/adminboard/internal/transport/middleware"
	"github.com/adminboard/internal/transport/rest"
	"github.com/adminboard/internal/user"
	userPostgres "github.com/adminboard/internal/user/postgres"
	"github.com/adminboard/pkg/logger"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config *internal.Config
	DB     *sqlx.DB
	Gorm   *gorm.DB
	Router *chi.Mux
	Logger *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	wireRoutes(deps)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("received signal, shutting down", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			deps.Logger.Error("database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("server stopped")
}

// wireRoutes builds every repository, service, handler and guard with plain
// constructor injection and hands them to the router.
func wireRoutes(deps *Dependencies) {
	lg := deps.Logger
	cfg := deps.Config
	base := transport.NewBaseHandler(lg)

	bus := events.NewEventBus(lg)
	events.RegisterAuditSubscriber(bus, lg)

	userRepo := userPostgres.NewUserRepository(deps.Gorm)
	sessionRepo := sessionPostgres.NewSessionRepository(deps.Gorm)
	featureRepo := featurePostgres.NewFeatureRepository(deps.Gorm)

	userService := user.NewService(userRepo, cfg.Security.BCryptCost)
	sessionService := session.NewService(sessionRepo, userRepo,
		cfg.Security.SessionValidity, cfg.Security.SnapshotTTL, lg)
	authService := auth.NewService(userService, sessionService, bus)
	featureService := feature.NewService(featureRepo, lg)
	tablesService := tables.NewService(deps.DB, lg)
	seederService := seeder.NewService(lg)

	guard := middleware.NewLoginGuard(authService, lg)
	perms := middleware.NewPermissionMiddleware(lg)

	handlers := rest.Handlers{
		Auth:        auth.NewHandler(authService),
		Features:    feature.NewHandler(base, featureService),
		Permissions: permissions.NewHandler(base),
		Tables:      tables.NewHandler(base, tablesService),
		Seeders:     seeder.NewHandler(base, seederService, userRepo),
		Assets:      assets.NewHandler(base, assets.NewDirStore(cfg.Assets.Dir)),
	}

	rest.RegisterAllRoutes(deps.Router, deps.DB, handlers, guard, perms,
		cfg.Server.AllowedOrigins, lg)
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(config.Observability.Logging.Level, config.Observability.Logging.Format)

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db.DB}), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize orm: %w", err)
	}

	return &Dependencies{
		Config: config,
		Logger: logger.L(),
		DB:     db,
		Gorm:   gormDB,
		Router: chi.NewRouter(),
	}, nil
}

func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}
