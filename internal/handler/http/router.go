package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/shifttracker/shifttracker-backend-go/internal/config"
	"github.com/shifttracker/shifttracker-backend-go/internal/handler/http/middleware"
	"github.com/shifttracker/shifttracker-backend-go/internal/pkg/jwt"
)

func NewRouter(
	cfg *config.Config,
	jwtService jwt.Service,
	authHandler AuthHandler,
	employeeHandler EmployeeHandler,
	scheduleHandler ScheduleHandler,
	attendanceHandler AttendanceHandler,
	timesheetHandler TimesheetHandler,
	leaveHandler LeaveHandler,
	dashboardHandler DashboardHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "shifttracker"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.App.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.RefreshToken)
			r.Post("/logout", authHandler.Logout)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/employees", func(r chi.Router) {
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManagement)
					r.Get("/", employeeHandler.List)
					r.Get("/{id}", employeeHandler.Get)
				})

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAdmin)
					r.Post("/", employeeHandler.Create)
					r.Put("/{id}", employeeHandler.Update)
				})
			})

			r.Route("/schedules", func(r chi.Router) {
				r.Use(middleware.RequireManagement)

				r.Route("/templates", func(r chi.Router) {
					r.Get("/", scheduleHandler.ListTemplates)
					r.Post("/", scheduleHandler.CreateTemplate)
					r.Delete("/{id}", scheduleHandler.DeleteTemplate)
				})

				r.Route("/assignments", func(r chi.Router) {
					r.Get("/", scheduleHandler.ListAssignments)
					r.Post("/", scheduleHandler.Assign)
					r.Delete("/{id}", scheduleHandler.DeleteAssignment)
				})
			})

			r.Route("/attendances", func(r chi.Router) {
				r.Post("/clock-in", attendanceHandler.ClockIn)
				r.Post("/clock-out", attendanceHandler.ClockOut)
				r.Post("/break/start", attendanceHandler.StartBreak)
				r.Post("/break/end", attendanceHandler.EndBreak)
				r.Get("/my", attendanceHandler.GetMyAttendance)
				r.Get("/{id}", attendanceHandler.Get)

				// Management only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManagement)
					r.Get("/", attendanceHandler.List)
					r.Put("/{id}", attendanceHandler.Update)
					r.Post("/{id}/approve", attendanceHandler.Approve)
					r.Post("/{id}/reject", attendanceHandler.Reject)
				})
			})

			r.Route("/timesheets", func(r chi.Router) {
				r.Get("/my", timesheetHandler.GetMyTimesheet)

				// Management only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManagement)
					r.Get("/", timesheetHandler.GetTimesheet)
					r.Get("/summary", timesheetHandler.GetSummary)
				})
			})

			r.Route("/leaves", func(r chi.Router) {
				r.Post("/", leaveHandler.Create)
				r.Get("/my", leaveHandler.GetMyRequests)

				// Management only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManagement)
					r.Get("/", leaveHandler.List)
					r.Post("/{id}/approve", leaveHandler.Approve)
					r.Post("/{id}/reject", leaveHandler.Reject)
				})
			})

			r.Route("/dashboard", func(r chi.Router) {
				r.Get("/my", dashboardHandler.GetMyDashboard)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManagement)
					r.Get("/", dashboardHandler.GetDashboard)
				})
			})
		})
	})

	return r
}
