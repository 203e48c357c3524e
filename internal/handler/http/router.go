package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/showroom-hq/backoffice-go/internal/handler/http/middleware"
	"github.com/showroom-hq/backoffice-go/internal/pkg/jwt"
)

func NewRouter(
	JWTService jwt.Service,
	attendanceHandler AttendanceHandler,
	penaltyHandler PenaltyHandler,
	settingsHandler SettingsHandler,
	salaryHandler SalaryHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "showroom-backoffice"),
		slog.String("version", "v1.0.0"),
		slog.String("env", "development"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
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

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Route("/attendance", func(r chi.Router) {
				r.Get("/", attendanceHandler.List)
				r.Post("/check-in", attendanceHandler.CheckIn)
				r.Post("/leave", attendanceHandler.MarkLeave)

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", attendanceHandler.Get)
					r.Post("/check-out", attendanceHandler.CheckOut)
					r.Post("/break/start", attendanceHandler.StartBreak)
					r.Post("/break/end", attendanceHandler.EndBreak)
					r.Delete("/leave", attendanceHandler.CancelLeave)
				})
			})

			r.Route("/penalty-settings", func(r chi.Router) {
				r.Get("/", settingsHandler.Get)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Put("/", settingsHandler.Update)
				})
			})

			r.Route("/penalties", func(r chi.Router) {
				r.Get("/", penaltyHandler.List)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", penaltyHandler.CreateManual)
					r.Delete("/day", penaltyHandler.RemoveForDay)
					r.Delete("/month", penaltyHandler.RemoveForMonth)
					r.Delete("/{id}", penaltyHandler.RemoveSingle)
				})
			})

			r.Route("/salary", func(r chi.Router) {
				r.Get("/calculate", salaryHandler.Calculate)
			})
		})
	})
	return r
}
