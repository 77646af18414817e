package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/rentbook/internal/config"
	"github.com/MrJamesThe3rd/rentbook/internal/database"
	"github.com/MrJamesThe3rd/rentbook/internal/export"
	"github.com/MrJamesThe3rd/rentbook/internal/history"
	historyStore "github.com/MrJamesThe3rd/rentbook/internal/history/store"
	rentbookHttp "github.com/MrJamesThe3rd/rentbook/internal/http"
	historyHandler "github.com/MrJamesThe3rd/rentbook/internal/http/history"
	invoiceHandler "github.com/MrJamesThe3rd/rentbook/internal/http/invoice"
	occupancyHandler "github.com/MrJamesThe3rd/rentbook/internal/http/occupancy"
	roomHandler "github.com/MrJamesThe3rd/rentbook/internal/http/room"
	settingsHandler "github.com/MrJamesThe3rd/rentbook/internal/http/settings"
	"github.com/MrJamesThe3rd/rentbook/internal/invoice"
	"github.com/MrJamesThe3rd/rentbook/internal/invoice/printable"
	invoiceStore "github.com/MrJamesThe3rd/rentbook/internal/invoice/store"
	"github.com/MrJamesThe3rd/rentbook/internal/occupancy"
	occupancyStore "github.com/MrJamesThe3rd/rentbook/internal/occupancy/store"
	"github.com/MrJamesThe3rd/rentbook/internal/room"
	roomStore "github.com/MrJamesThe3rd/rentbook/internal/room/store"
	"github.com/MrJamesThe3rd/rentbook/internal/settings"
	settingsCache "github.com/MrJamesThe3rd/rentbook/internal/settings/cache"
	settingsStore "github.com/MrJamesThe3rd/rentbook/internal/settings/store"
)

func main() {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(newLogger(cfg))

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if cfg.DB.Migrate {
		if err := database.Migrate(context.Background(), db); err != nil {
			slog.Error("failed to migrate database", "error", err)
			os.Exit(1)
		}
	}

	var (
		historyService   = history.NewService(historyStore.New(db))
		roomService      = room.NewService(roomStore.New(db), historyService)
		occupancyService = occupancy.NewService(occupancyStore.New(db), historyService)
		settingsService  = settings.NewService(settingsRepository(cfg, db), historyService)
		invoiceService   = invoice.NewService(
			invoiceStore.New(db),
			roomService,
			settingsService,
			historyService,
			invoice.PolicyFor(cfg.Invoice.StrictReadings),
		)
		printableService = printable.NewService(invoiceService, settingsService, cfg.App.Name)
		exportService    = export.NewService(invoiceService, settingsService, cfg.App.Name)
	)

	router := rentbookHttp.New(rentbookHttp.Handlers{
		Rooms:     roomHandler.NewHandler(roomService),
		Occupancy: occupancyHandler.NewHandler(occupancyService),
		Settings:  settingsHandler.NewHandler(settingsService),
		Invoices:  invoiceHandler.NewHandler(invoiceService, printableService, exportService),
		History:   historyHandler.NewHandler(historyService),
	}, cfg.Server.AllowedOrigins)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown failed", "error", err)
		}
	}()

	slog.Info("starting server", "addr", srv.Addr, "strict_readings", cfg.Invoice.StrictReadings)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel()}

	if cfg.Log.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}

	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

// settingsRepository wraps the Postgres store with a Redis read-through cache when REDIS_ADDR is set.
func settingsRepository(cfg *config.Config, db *sql.DB) settings.Repository {
	repo := settingsStore.New(db)
	if !cfg.CacheEnabled() {
		return repo
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	slog.Info("settings cache enabled", "addr", cfg.Redis.Addr, "ttl", cfg.Redis.TTL)

	return settingsCache.New(repo, settingsCache.NewRedisKVStore(client), cfg.Redis.TTL)
}
