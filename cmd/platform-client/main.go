package main

import (
	"context"
	"encoding/json"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"platform-client/internal/client"
	"platform-client/internal/config"
	"platform-client/internal/offline"
	"platform-client/internal/pkg/log"
	"platform-client/internal/session"
	"platform-client/internal/store/bolt"
)

// Константы для определения окружения.
const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	var (
		configPath string
		email      string
		password   string
	)
	flag.StringVar(&configPath, "config", "", "path to config file")
	flag.StringVar(&email, "email", "", "login email (optional)")
	flag.StringVar(&password, "password", "", "login password (optional)")
	flag.Parse()

	cfg := config.MustLoad(configPath)

	lg := setupLogger(cfg.Env)
	slog.SetDefault(lg)
	lg.Info("starting application", "env", cfg.Env)

	// Корневой контекст по сигналам.
	rootCtx, rootCancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer rootCancel()

	rootCtx = log.Into(rootCtx, lg)

	// Локальное хранилище учётных данных.
	st, err := bolt.New(cfg.Store.Path)
	if err != nil {
		lg.Error("store_open_failed", slog.String("err", err.Error()))
		os.Exit(1)
	}
	lg.Info("store_opened", slog.String("path", cfg.Store.Path))

	// Машина связности, клиент и оркестратор сессии.
	off := offline.NewManager(
		cfg.Offline.GracePeriod,
		offline.NewHTTPProber(cfg.API.BaseURL, cfg.Offline.ProbePath, cfg.Offline.ProbeTimeout),
	)
	api := client.New(cfg, st, off)
	sess := session.New(cfg, api, st, off)

	// Стартовая сверка состояния.
	view, err := sess.Init(rootCtx)
	if err != nil {
		lg.Error("session_init_failed", slog.String("err", err.Error()))
		_ = st.Close()
		os.Exit(1)
	}

	// Опциональный вход по флагам.
	if !view.IsAuthenticated && email != "" && password != "" {
		view, err = sess.Login(rootCtx, email, password)
		if err != nil {
			lg.Error("login_failed", slog.String("err", err.Error()))
			_ = st.Close()
			os.Exit(1)
		}
	}

	printView(view)

	// Ожидание сигнала завершения.
	<-rootCtx.Done()
	lg.Info("shutdown_requested")

	// Завершение процесса без разлогина: сессия переживает перезапуск.
	sess.Close()
	if err := st.Close(); err != nil {
		lg.Error("store_close_failed", slog.String("err", err.Error()))
	}

	lg.Info("client_stopped")
	os.Exit(0)
}

// printView печатает текущее представление сессии в stdout.
func printView(view any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(view)
}

// setupLogger настраивает slog по окружению.
func setupLogger(env string) *slog.Logger {
	var lg *slog.Logger

	switch env {
	case envLocal:
		lg = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envDev:
		lg = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envProd:
		lg = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	default:
		lg = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	}

	return lg
}
