package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/nguyenthuong372100/WSP-internal/internal/handler/http/middleware"
	"github.com/nguyenthuong372100/WSP-internal/internal/pkg/jwt"
)

func NewRouter(jwtService jwt.Service, payslipHandler PayslipHandler, attendanceHandler AttendanceHandler) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "wsp-payroll"),
		slog.String("version", "v1.0.0"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
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
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/attendances", func(r chi.Router) {
				r.Post("/", attendanceHandler.Create)
			})
			r.Route("/attendance-links", func(r chi.Router) {
				r.Post("/{id}/toggle", attendanceHandler.ToggleApproval)
			})

			r.Route("/payslips", func(r chi.Router) {
				r.Get("/", payslipHandler.List)

				// Accountant only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAccountant)
					r.Post("/rates/refresh", payslipHandler.RefreshRates)
				})

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", payslipHandler.Get)
					r.Get("/attendance-links", payslipHandler.ListAttendanceLinks)
					r.Post("/confirm", payslipHandler.Confirm)

					// Accountant only
					r.Group(func(r chi.Router) {
						r.Use(middleware.RequireAccountant)
						r.Patch("/", payslipHandler.Update)
						r.Post("/duplicate", payslipHandler.Duplicate)
						r.Post("/generate", payslipHandler.Generate)
						r.Post("/transfer", payslipHandler.Transfer)
						r.Post("/done", payslipHandler.Done)
						r.Post("/revert", payslipHandler.Revert)
					})
				})
			})
		})
	})

	return r
}
