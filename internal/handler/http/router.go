package http

import (
	"log/slog"
	"os"

	"github.com/cmlabs-hris/attendance-kiosk/internal/handler/http/middleware"
	"github.com/cmlabs-hris/attendance-kiosk/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

// RouterOptions carries the deployment settings the router needs.
type RouterOptions struct {
	Env            string
	Version        string
	AllowedOrigins []string
}

type Handlers struct {
	Auth       AuthHandler
	Kiosk      KioskHandler
	Employee   EmployeeHandler
	Attendance AttendanceHandler
	Dashboard  DashboardHandler
	Report     ReportHandler
	Events     EventHandler
}

func NewRouter(opts RouterOptions, JWTService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(opts.Env != "development")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "attendance-kiosk"),
		slog.String("version", opts.Version),
		slog.String("env", opts.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Post("/auth/verify", h.Auth.VerifyPassword)

		// Kiosk terminal, no session
		r.Route("/kiosk", func(r chi.Router) {
			r.Get("/employees", h.Kiosk.ListEmployees)
			r.Post("/check-in", h.Kiosk.CheckIn)
			r.Post("/check-out", h.Kiosk.CheckOut)
		})

		// Authenticates through the token query parameter
		r.Get("/events", h.Events.Stream)

		// Admin session required
		r.Group(func(r chi.Router) {
			// Sessions travel only in the Authorization header
			r.Use(jwtauth.Verify(JWTService.JWTAuth(), jwtauth.TokenFromHeader))
			r.Use(middleware.AuthRequired(JWTService))
			r.Use(middleware.AdminOnly)

			r.Post("/auth/logout", h.Auth.Logout)

			r.Route("/employees", func(r chi.Router) {
				r.Get("/", h.Employee.ListEmployees)
				r.Post("/", h.Employee.CreateEmployee)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", h.Employee.GetEmployee)
					r.Patch("/", h.Employee.UpdateEmployee)
					r.Delete("/", h.Employee.DeleteEmployee)
				})
			})

			r.Route("/records", func(r chi.Router) {
				r.Get("/", h.Attendance.List)
				r.Post("/export", h.Report.Export)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", h.Attendance.Get)
					r.Patch("/", h.Attendance.Update)
					r.Delete("/", h.Attendance.Delete)
				})
			})

			r.Get("/stats/daily", h.Dashboard.GetDailyStats)
		})
	})
	return r
}
