package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/cmlabs-hris/attendance-kiosk/internal/config"
	"github.com/cmlabs-hris/attendance-kiosk/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-kiosk/internal/domain/employee"
	appHTTP "github.com/cmlabs-hris/attendance-kiosk/internal/handler/http"
	"github.com/cmlabs-hris/attendance-kiosk/internal/pkg/cron"
	"github.com/cmlabs-hris/attendance-kiosk/internal/pkg/jwt"
	"github.com/cmlabs-hris/attendance-kiosk/internal/pkg/sse"
	"github.com/cmlabs-hris/attendance-kiosk/internal/pkg/storage"
	"github.com/cmlabs-hris/attendance-kiosk/internal/repository/postgresql"
	"github.com/cmlabs-hris/attendance-kiosk/internal/repository/sqlite"
	attendanceService "github.com/cmlabs-hris/attendance-kiosk/internal/service/attendance"
	serviceAuth "github.com/cmlabs-hris/attendance-kiosk/internal/service/auth"
	dashboardService "github.com/cmlabs-hris/attendance-kiosk/internal/service/dashboard"
	employeeService "github.com/cmlabs-hris/attendance-kiosk/internal/service/employee"
	reportService "github.com/cmlabs-hris/attendance-kiosk/internal/service/report"
)

const version = "v1.0.0"

func main() {
	if err := run(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLevel(cfg.App.LogLevel),
	})).With(slog.String("app", "attendance-kiosk"), slog.String("env", cfg.App.Env)))

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		employeeRepo   employee.EmployeeRepository
		attendanceRepo attendance.AttendanceRepository
	)
	switch cfg.Database.Driver {
	case config.DriverSQLite:
		db, err := sqlite.Open(cfg.Database.SQLitePath)
		if err != nil {
			return fmt.Errorf("open sqlite: %w", err)
		}
		defer db.Close()
		employeeRepo = sqlite.NewEmployeeRepository(db)
		attendanceRepo = sqlite.NewAttendanceRepository(db)
		slog.Info("using sqlite store", "path", cfg.Database.SQLitePath)
	case config.DriverPostgres:
		db, err := postgresql.Open(ctx, cfg.DatabaseURL())
		if err != nil {
			return err
		}
		defer db.Close()
		employeeRepo = postgresql.NewEmployeeRepository(db)
		attendanceRepo = postgresql.NewAttendanceRepository(db)
		slog.Info("using postgres store", "host", cfg.Database.Host, "database", cfg.Database.Name)
	default:
		return fmt.Errorf("unsupported database driver: %s", cfg.Database.Driver)
	}

	exportStorage, err := storage.NewLocalStorage(cfg.Export.Dir)
	if err != nil {
		return fmt.Errorf("initialize export storage: %w", err)
	}

	JWTService := jwt.NewJWTService(cfg.Admin.TokenSecret, cfg.Admin.TokenTTL)
	hub := sse.NewHub()

	authService := serviceAuth.NewAuthService(cfg.Admin.Password, JWTService)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo, hub)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, employeeRepo, loc, hub)
	dashboardSvc := dashboardService.NewDashboardService(attendanceRepo, employeeRepo)
	reportSvc := reportService.NewReportService(attendanceRepo, exportStorage, loc)

	scheduler := cron.NewScheduler()
	scheduler.AddJob("prune-revoked-tokens", cfg.Jobs.TokenPruneInterval, cron.PruneRevokedTokens(JWTService))
	scheduler.AddJob("broadcast-daily-stats", cfg.Jobs.StatsBroadcastInterval, cron.BroadcastDailyStats(dashboardSvc, hub, loc, time.Now))
	schedulerDone := make(chan struct{})
	go func() {
		scheduler.Run(ctx)
		close(schedulerDone)
	}()
	defer func() {
		stop()
		<-schedulerDone
	}()

	router := appHTTP.NewRouter(
		appHTTP.RouterOptions{
			Env:            cfg.App.Env,
			Version:        version,
			AllowedOrigins: cfg.App.AllowedOrigins,
		},
		JWTService,
		appHTTP.Handlers{
			Auth:       appHTTP.NewAuthHandler(authService),
			Kiosk:      appHTTP.NewKioskHandler(attendanceSvc, employeeSvc),
			Employee:   appHTTP.NewEmployeeHandler(employeeSvc),
			Attendance: appHTTP.NewAttendanceHandler(attendanceSvc),
			Dashboard:  appHTTP.NewDashboardHandler(dashboardSvc, loc),
			Report:     appHTTP.NewReportHandler(reportSvc),
			Events:     appHTTP.NewEventHandler(hub, JWTService),
		},
	)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server running", "addr", srv.Addr, "timezone", loc.String())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
