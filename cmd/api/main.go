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
	"syscall"
	"time"

	"github.com/cmlabs-hris/clock-backend-go/internal/config"
	appHTTP "github.com/cmlabs-hris/clock-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/clock-backend-go/internal/pkg/cron"
	"github.com/cmlabs-hris/clock-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/clock-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/clock-backend-go/internal/pkg/keylock"
	"github.com/cmlabs-hris/clock-backend-go/internal/pkg/sse"
	"github.com/cmlabs-hris/clock-backend-go/internal/repository/postgresql"
	clockService "github.com/cmlabs-hris/clock-backend-go/internal/service/clock"
	holidayService "github.com/cmlabs-hris/clock-backend-go/internal/service/holiday"
	nowBoardService "github.com/cmlabs-hris/clock-backend-go/internal/service/nowboard"
	settingsService "github.com/cmlabs-hris/clock-backend-go/internal/service/settings"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolOptions{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		slog.Error("Error connecting to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	transactor := postgresql.NewTransactor(db)
	settingsRepo := postgresql.NewSettingsRepository(db)
	roleRepo := postgresql.NewRoleRepository(db)
	shiftRepo := postgresql.NewProvisionalShiftRepository(db)
	sessionRepo := postgresql.NewClockSessionRepository(db)
	correctionRepo := postgresql.NewClockCorrectionRepository(db)
	holidayYearRepo := postgresql.NewHolidayYearRepository(db)
	entitlementRepo := postgresql.NewHolidayEntitlementRepository(db)

	// One locker per process; advisory locks cover other instances.
	locks := keylock.New()
	hub := sse.NewHub()
	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	settingsSvc := settingsService.NewSettingsService(transactor, settingsRepo, locks)
	clockSvc := clockService.NewClockService(transactor, sessionRepo, correctionRepo, shiftRepo, roleRepo, settingsSvc, locks)
	nowBoardSvc := nowBoardService.NewNowBoardService(shiftRepo, sessionRepo, settingsSvc)
	holidaySvc := holidayService.NewHolidayYearService(transactor, holidayYearRepo, entitlementRepo, settingsSvc, locks)

	router := appHTTP.NewRouter(
		cfg,
		JWTService,
		appHTTP.NewClockHandler(clockSvc),
		appHTTP.NewNowBoardHandler(nowBoardSvc),
		appHTTP.NewSettingsHandler(settingsSvc),
		appHTTP.NewHolidayYearHandler(holidaySvc),
		appHTTP.NewWarningHandler(hub, JWTService),
	)

	scheduler := cron.NewScheduler()
	if cfg.Cron.Enabled {
		cron.NewClockJobs(sessionRepo, settingsSvc, hub, cfg.Cron.LongSessionInterval).RegisterJobs(scheduler)
		scheduler.Start(ctx)
	}

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		// Open event streams end when the process is signalled.
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("Server running", "addr", server.Addr, "env", cfg.App.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("Shutting down")
		scheduler.Stop()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}
}
