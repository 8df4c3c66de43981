package http

import (
	"log/slog"
	"os"

	"github.com/cmlabs-hris/clock-backend-go/internal/config"
	"github.com/cmlabs-hris/clock-backend-go/internal/domain/organization"
	"github.com/cmlabs-hris/clock-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/clock-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	cfg *config.Config,
	JWTService jwt.Service,
	clockHandler ClockHandler,
	nowBoardHandler NowBoardHandler,
	settingsHandler SettingsHandler,
	holidayYearHandler HolidayYearHandler,
	warningHandler WarningHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(cfg.App.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "clock-cmlabs"),
		slog.String("version", cfg.App.Version),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  cfg.SlogLevel(),
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		// Authenticated by the short-lived token in the query string
		r.Get("/clock/warnings/stream", warningHandler.Stream)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired)
			r.Use(middleware.RequireCompany)

			r.Route("/clock", func(r chi.Router) {
				r.Use(middleware.RequirePermission(organization.PermissionClockOwn))

				r.Get("/status", clockHandler.Status)
				r.Post("/clock-in", clockHandler.ClockIn)
				r.Post("/link-provisional-shift", clockHandler.LinkProvisionalShift)

				r.Route("/sessions/{id}", func(r chi.Router) {
					r.Get("/", clockHandler.GetSession)
					r.Get("/corrections", clockHandler.ListCorrections)
					r.Post("/start-break", clockHandler.StartBreak)
					r.Post("/end-break", clockHandler.EndBreak)
					r.Post("/change-shift-role", clockHandler.ChangeShiftRole)
					r.Post("/clock-out", clockHandler.ClockOut)

					r.With(middleware.RequirePermission(organization.PermissionClockCorrect)).
						Put("/times", clockHandler.EditTimes)
				})

				// Manager / owner
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(organization.PermissionClockViewAll))
					r.Get("/active", clockHandler.ListActive)
					r.Get("/warnings/token", warningHandler.StreamToken)
				})
			})

			r.Route("/now-board", func(r chi.Router) {
				r.Use(middleware.RequirePermission(organization.PermissionNowBoardView))
				r.Get("/", nowBoardHandler.Get)
				r.Get("/weekly", nowBoardHandler.Weekly)
			})

			r.Route("/attendance-settings", func(r chi.Router) {
				r.With(middleware.RequirePermission(organization.PermissionSettingsView)).
					Get("/", settingsHandler.Get)
				r.With(middleware.RequireOwner).
					Put("/", settingsHandler.Update)
			})

			r.Route("/holiday-years", func(r chi.Router) {
				r.Use(middleware.RequirePermission(organization.PermissionHolidayYearView))
				r.Get("/active", holidayYearHandler.GetActive)
				r.Get("/{id}/entitlements", holidayYearHandler.ListEntitlements)
				r.With(middleware.RequirePermission(organization.PermissionHolidayYearManage)).
					Post("/rollover", holidayYearHandler.Rollover)
			})
		})
	})
	return r
}
