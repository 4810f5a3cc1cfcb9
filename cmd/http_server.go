package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/frahmantamala/enterprise-admin/internal"
	"github.com/frahmantamala/enterprise-admin/internal/attendance"
	attendancePostgres "github.com/frahmantamala/enterprise-admin/internal/attendance/postgres"
	"github.com/frahmantamala/enterprise-admin/internal/auth"
	authPostgres "github.com/frahmantamala/enterprise-admin/internal/auth/postgres"
	authRedis "github.com/frahmantamala/enterprise-admin/internal/auth/redis"
	"github.com/frahmantamala/enterprise-admin/internal/core/approval"
	"github.com/frahmantamala/enterprise-admin/internal/core/events"
	"github.com/frahmantamala/enterprise-admin/internal/leave"
	leavePostgres "github.com/frahmantamala/enterprise-admin/internal/leave/postgres"
	"github.com/frahmantamala/enterprise-admin/internal/mail"
	mailPostgres "github.com/frahmantamala/enterprise-admin/internal/mail/postgres"
	"github.com/frahmantamala/enterprise-admin/internal/metrics"
	"github.com/frahmantamala/enterprise-admin/internal/notice"
	noticePostgres "github.com/frahmantamala/enterprise-admin/internal/notice/postgres"
	"github.com/frahmantamala/enterprise-admin/internal/notification"
	"github.com/frahmantamala/enterprise-admin/internal/project"
	projectPostgres "github.com/frahmantamala/enterprise-admin/internal/project/postgres"
	"github.com/frahmantamala/enterprise-admin/internal/reimbursement"
	reimbursementPostgres "github.com/frahmantamala/enterprise-admin/internal/reimbursement/postgres"
	"github.com/frahmantamala/enterprise-admin/internal/transport"
	"github.com/frahmantamala/enterprise-admin/internal/transport/rest"
	"github.com/frahmantamala/enterprise-admin/internal/user"
	userPostgres "github.com/frahmantamala/enterprise-admin/internal/user/postgres"
	"github.com/frahmantamala/enterprise-admin/internal/worklog"
	worklogPostgres "github.com/frahmantamala/enterprise-admin/internal/worklog/postgres"
	"github.com/frahmantamala/enterprise-admin/pkg/logger"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	goredis "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
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
	Config  *internal.Config
	DB      *sqlx.DB
	Gorm    *gorm.DB
	Redis   *goredis.Client
	Router  *chi.Mux
	Logger  *slog.Logger
	closers []func() error
}

func (d *Dependencies) Close() {
	for i := len(d.closers) - 1; i >= 0; i-- {
		if err := d.closers[i](); err != nil {
			d.Logger.Error("failed to release resource", "error", err)
		}
	}
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}
	defer deps.Close()

	if err := setupRoutes(deps); err != nil {
		deps.Logger.Error("failed to set up routes", "error", err)
		return
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:              addr,
		Handler:           deps.Router,
		ReadHeaderTimeout: deps.Config.Server.ReadHeaderTimeout,
		ReadTimeout:       deps.Config.Server.ReadTimeout,
		WriteTimeout:      deps.Config.Server.WriteTimeout,
		IdleTimeout:       deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("Server shutdown error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			deps.Logger.Error("Server failed to start", "error", err)
			return
		}
	}

	deps.Logger.Info("Server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	deps := &Dependencies{
		Config:  config,
		DB:      db,
		Router:  chi.NewRouter(),
		Logger:  logger.LoggerWrapper(),
		closers: []func() error{db.Close},
	}

	deps.Gorm, err = initGorm(db)
	if err != nil {
		deps.Close()
		return nil, fmt.Errorf("failed to initialize gorm: %w", err)
	}

	if config.Session.Store == internal.SessionStoreRedis {
		deps.Redis = goredis.NewClient(&goredis.Options{
			Addr:     config.Session.Redis.Addr,
			Password: config.Session.Redis.Password,
			DB:       config.Session.Redis.DB,
		})
		deps.closers = append(deps.closers, deps.Redis.Close)
		if err := deps.Redis.Ping(context.Background()).Err(); err != nil {
			deps.Close()
			return nil, fmt.Errorf("failed to ping redis: %w", err)
		}
	}

	return deps, nil
}

// initDB opens the pgx-backed pool shared by sqlx, gorm and goose.
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return dbConn, nil
}

func initGorm(db *sqlx.DB) (*gorm.DB, error) {
	return gorm.Open(postgres.New(postgres.Config{Conn: db.DB}), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Warn),
	})
}

func sessionStore(deps *Dependencies) auth.SessionStore {
	if deps.Redis != nil {
		return authRedis.NewSessionStore(deps.Redis, deps.Config.Session.Redis.Prefix)
	}
	return authPostgres.NewSessionStore(deps.Gorm)
}

// notificationPublisher falls back to logging when notifications are off.
func notificationPublisher(deps *Dependencies) (notification.Publisher, error) {
	cfg := deps.Config.Notification
	if !cfg.Enabled {
		return notification.NewLogPublisher(deps.Logger), nil
	}

	conn, ch, err := notification.Dial(cfg.RabbitMQ.URL, cfg.RabbitMQ.Queue)
	if err != nil {
		return nil, err
	}
	deps.closers = append(deps.closers, conn.Close, ch.Close)
	return notification.NewAMQPPublisher(ch, cfg.RabbitMQ.Queue), nil
}

func setupRoutes(deps *Dependencies) error {
	cfg := deps.Config
	lg := deps.Logger
	base := transport.NewBaseHandler(lg)

	users := authPostgres.NewRepository(deps.Gorm)

	publisher, err := notificationPublisher(deps)
	if err != nil {
		return fmt.Errorf("failed to set up notifications: %w", err)
	}
	bus := events.NewEventBus(lg)
	notification.NewDispatcher(users, publisher, lg).Register(bus)

	var recorder approval.DecisionRecorder = approval.NopRecorder{}
	if cfg.Observability.Metrics.Enabled {
		recorder = metrics.NewApprovals()
	}

	authService := auth.NewService(users, sessionStore(deps), auth.NewJWTSigner(cfg.Session.Secret),
		cfg.Session.TTL, cfg.Security.BCryptCost, lg)
	projectService := project.NewService(projectPostgres.NewProjectRepository(deps.Gorm), users, lg)

	handlers := rest.Handlers{
		Health: rest.NewHealthHandler(healthChecks(deps)),
		Auth: auth.NewHandler(base, authService, auth.CookieOptions{
			Name:   cfg.Session.CookieName,
			Secure: cfg.Session.Secure,
		}),
		User: user.NewHandler(base, user.NewService(userPostgres.NewUserRepository(deps.Gorm),
			projectService, cfg.Security.BCryptCost, lg)),
		Project: project.NewHandler(base, projectService),
		Mail: mail.NewHandler(base, mail.NewService(mailPostgres.NewMailRepository(deps.Gorm),
			users, bus, lg)),
		Notice: notice.NewHandler(base, notice.NewService(noticePostgres.NewNoticeRepository(deps.Gorm), lg)),
		Reimbursement: reimbursement.NewHandler(base, reimbursement.NewService(
			reimbursementPostgres.NewReimbursementRepository(deps.Gorm), projectService, bus, recorder, lg)),
		Leave: leave.NewHandler(base, leave.NewService(
			leavePostgres.NewLeaveRepository(deps.Gorm), bus, recorder, lg)),
		Attendance: attendance.NewHandler(base, attendance.NewService(
			attendancePostgres.NewAttendanceRepository(deps.Gorm), lg)),
		WorkLog: worklog.NewHandler(base, worklog.NewService(
			worklogPostgres.NewWorkLogRepository(deps.Gorm), worklogPostgres.NewStatsRepository(deps.DB), lg)),
	}

	rest.RegisterAllRoutes(deps.Router, handlers, rest.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		MetricsEnabled: cfg.Observability.Metrics.Enabled,
		MetricsPath:    cfg.Observability.Metrics.Path,
	}, lg)
	return nil
}

func healthChecks(deps *Dependencies) map[string]rest.Check {
	checks := map[string]rest.Check{"postgres": deps.DB.PingContext}
	if deps.Redis != nil {
		checks["redis"] = func(ctx context.Context) error {
			return deps.Redis.Ping(ctx).Err()
		}
	}
	return checks
}
