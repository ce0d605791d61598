package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"farm-advisor/config"
	v1 "farm-advisor/internal/controllers/http/v1"
	"farm-advisor/internal/observability"
	"farm-advisor/internal/repositories"
	"farm-advisor/internal/services/advisor"
	"farm-advisor/internal/services/auth"
	"farm-advisor/pkg/httpserver"
	"farm-advisor/pkg/observe"
)

// @title Farm Advisor API
// @version 1.0.0
// @description Weather-driven farming advisory service: geocodes a place, fetches a 5-day forecast, and derives crop, irrigation, pest-risk, and yield-potential advice.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

// @tag.name Advisory
// @tag.description Weather and farming advisory operations
// @tag.name Accounts
// @tag.description Registration, login, and activity log
func main() {
	ctx, cancel := context.WithCancel(context.Background())

	cnf := config.NewConfig()

	writers := []io.Writer{os.Stdout}
	var sentryHook *observe.SentryHook
	if cnf.Log.SentryDSN != "" {
		sentryHook = observe.NewSentryHook(cnf.App.Env, cnf.App.Name, 0, cnf.App.Env != "prod", cnf.Log.SentryDSN)
		writers = append(writers, sentryHook)
	}

	l := observe.NewZapLogger(cnf.App.Name, writers...)
	if sentryHook != nil {
		sentryHook.SetLogger(l)
	}

	metrics := observability.NewMetrics()

	app := httpserver.InitFiberServer(cnf.App.Name)

	geo, forecast := repositories.InitWeatherRepositories(cnf, l, metrics)

	store, err := repositories.NewSQLiteAccountStore(cnf.Database.Path)
	if err != nil {
		l.Fatal("cannot open account store", map[string]any{"path": cnf.Database.Path, "err": err})
	}

	advisorService := advisor.NewService(geo, forecast, l, metrics)
	authService := auth.NewService(cnf, store, l, metrics)

	v1.NewRouter(
		app,
		advisorService,
		authService,
		l,
	)

	go func() {
		if err := app.Listen(":" + cnf.Server.Port); err != nil {
			l.Fatal("cannot run the server", map[string]any{"err": err})
		}
	}()

	l.Info("application started successfully", map[string]any{"port": cnf.Server.Port})

	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer func() {
		l.Warning("stopping application services")
		signal.Stop(sigCh)
		close(sigCh)

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		_ = app.ShutdownWithContext(shutdownCtx)
		if sentryHook != nil {
			sentryHook.Flush()
		}
		_ = l.Stop()
		cancel()
	}()

	select {
	case <-sigCh:
		fmt.Println("shutdown signal received")
	case <-ctx.Done():
	}
}
