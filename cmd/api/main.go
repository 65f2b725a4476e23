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

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/billkerfy/internal/app"
	"github.com/MrJamesThe3rd/billkerfy/internal/config"
	"github.com/MrJamesThe3rd/billkerfy/internal/database"
	billkerfyHttp "github.com/MrJamesThe3rd/billkerfy/internal/http"
	customerHandler "github.com/MrJamesThe3rd/billkerfy/internal/http/customer"
	dashboardHandler "github.com/MrJamesThe3rd/billkerfy/internal/http/dashboard"
	invoiceHandler "github.com/MrJamesThe3rd/billkerfy/internal/http/invoice"
	orgHandler "github.com/MrJamesThe3rd/billkerfy/internal/http/organization"
)

const shutdownTimeout = 10 * time.Second

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	a, err := app.New(cfg, db)
	if err != nil {
		slog.Error("failed to wire services", "error", err)
		os.Exit(1)
	}
	defer a.Close()

	var (
		orgH       = orgHandler.NewHandler(a.Organizations, a.Workspace)
		customerH  = customerHandler.NewHandler(a.Workspace, a.Importer, a.Billing)
		invoiceH   = invoiceHandler.NewHandler(a.Workspace, a.Invoices, a.Documents)
		dashboardH = dashboardHandler.NewHandler(a.Dashboard)
	)

	router := billkerfyHttp.New(cfg.CORS.AllowedOrigins, orgH, customerH, invoiceH, dashboardH)

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

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("failed to shut down server", "error", err)
		}
	}()

	if client := a.Events(); client != nil {
		go func() {
			err := client.Consume(ctx, a.InvalidateOnStatusChange)
			if err != nil && !errors.Is(err, context.Canceled) {
				slog.Error("status change consumer stopped", "error", err)
			}
		}()
	}

	slog.Info("starting server", "app", cfg.App.Name, "addr", srv.Addr)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
