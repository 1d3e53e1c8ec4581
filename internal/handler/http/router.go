package http

import (
	"log/slog"

	"github.com/cmlabs-hris/attendance-desk/internal/handler/http/middleware"
	"github.com/cmlabs-hris/attendance-desk/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

// Handlers groups every HTTP handler served by the router
type Handlers struct {
	Auth       AuthHandler
	Dashboard  DashboardHandler
	Department DepartmentHandler
	Employee   EmployeeHandler
	Holiday    HolidayHandler
	Attendance AttendanceHandler
}

func NewRouter(logger *slog.Logger, JWTService jwt.Service, allowedOrigins []string, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	// Requires authentication
	authRequired := func(r chi.Router) {
		r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
		r.Use(middleware.AuthRequired)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/login", h.Auth.Login)

		r.Get("/dashboard", h.Dashboard.GetDashboard)
		r.Get("/calendar/ranges", h.Attendance.Ranges)

		r.Route("/departments", func(r chi.Router) {
			r.Get("/", h.Department.List)
			r.Get("/{id}", h.Department.Get)

			r.Group(func(r chi.Router) {
				authRequired(r)
				r.Post("/", h.Department.Create)
				r.Put("/{id}", h.Department.Update)
				r.Delete("/{id}", h.Department.Delete)
			})
		})

		r.Route("/employees", func(r chi.Router) {
			r.Get("/", h.Employee.ListEmployees)
			r.Get("/{id}", h.Employee.GetEmployee)

			r.Group(func(r chi.Router) {
				authRequired(r)
				r.Post("/", h.Employee.CreateEmployee)
				r.Put("/{id}", h.Employee.UpdateEmployee)
				r.Delete("/{id}", h.Employee.DeleteEmployee)
			})
		})

		r.Route("/holidays", func(r chi.Router) {
			r.Get("/", h.Holiday.List)
			r.Get("/{id}", h.Holiday.Get)

			r.Group(func(r chi.Router) {
				authRequired(r)
				r.Post("/", h.Holiday.Create)
				r.Put("/{id}", h.Holiday.Update)
				r.Delete("/{id}", h.Holiday.Delete)
			})
		})

		r.Route("/attendance", func(r chi.Router) {
			r.Get("/", h.Attendance.List)
			r.Get("/calendar", h.Attendance.Calendar)
			r.Get("/day", h.Attendance.GetDay)
			r.Get("/matrix", h.Attendance.Matrix)
			r.Get("/matrix.pdf", h.Attendance.MatrixPDF)
			r.Get("/{id}", h.Attendance.Get)

			r.Group(func(r chi.Router) {
				authRequired(r)
				r.Post("/", h.Attendance.Record)
				r.Post("/day", h.Attendance.RecordDay)
				r.Delete("/{id}", h.Attendance.Delete)
			})
		})
	})
	return r
}
