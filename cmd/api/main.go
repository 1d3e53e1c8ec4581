package main

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

	"github.com/cmlabs-hris/attendance-desk/internal/config"
	appHTTP "github.com/cmlabs-hris/attendance-desk/internal/handler/http"
	"github.com/cmlabs-hris/attendance-desk/internal/pkg/cron"
	"github.com/cmlabs-hris/attendance-desk/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-desk/internal/pkg/jwt"
	"github.com/cmlabs-hris/attendance-desk/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/attendance-desk/internal/service/attendance"
	serviceAuth "github.com/cmlabs-hris/attendance-desk/internal/service/auth"
	dashboardService "github.com/cmlabs-hris/attendance-desk/internal/service/dashboard"
	departmentService "github.com/cmlabs-hris/attendance-desk/internal/service/department"
	employeeService "github.com/cmlabs-hris/attendance-desk/internal/service/employee"
	holidayService "github.com/cmlabs-hris/attendance-desk/internal/service/holiday"
	"github.com/cmlabs-hris/attendance-desk/migrations"
	"github.com/go-chi/httplog/v3"
)

func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.App.LogLevel)); err != nil {
		level = slog.LevelInfo
	}

	logFormat := httplog.SchemaECS.Concise(cfg.App.Env == "development")
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "attendance-desk"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(ctx, db, migrations.FS); err != nil {
		slog.Error("Failed to apply migrations", "error", err)
		os.Exit(1)
	}

	departmentRepo := postgresql.NewDepartmentRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	dashboardRepo := postgresql.NewDashboardRepository(db)

	location := cfg.App.Timezone
	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	authSvc := serviceAuth.NewAuthService(JWTService, cfg.Admin.Email, cfg.Admin.PasswordHash)
	departmentSvc := departmentService.NewDepartmentService(departmentRepo)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo, departmentRepo, location)
	holidaySvc := holidayService.NewHolidayService(holidayRepo)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, employeeRepo, holidayRepo, location)
	dashboardSvc := dashboardService.NewDashboardService(dashboardRepo, holidayRepo, location)

	router := appHTTP.NewRouter(logger, JWTService, cfg.CORS.AllowedOrigins, appHTTP.Handlers{
		Auth:       appHTTP.NewAuthHandler(authSvc),
		Dashboard:  appHTTP.NewDashboardHandler(dashboardSvc),
		Department: appHTTP.NewDepartmentHandler(departmentSvc),
		Employee:   appHTTP.NewEmployeeHandler(employeeSvc),
		Holiday:    appHTTP.NewHolidayHandler(holidaySvc),
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc),
	})

	scheduler := cron.NewScheduler(ctx)
	if cfg.Cron.MarkAbsentEnabled {
		cron.NewAttendanceJobs(attendanceSvc, location).RegisterJobs(scheduler, cfg.Cron.Interval)
	}
	scheduler.Start()

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Server running", "addr", server.Addr, "timezone", location.String())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Failed to shut down server", "error", err)
	}
	scheduler.Stop()
}
