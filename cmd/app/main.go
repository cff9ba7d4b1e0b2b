package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"island_go/internal/app"
	"island_go/internal/engine"
	"island_go/internal/infra"
	"island_go/internal/infra/gateway"

	_ "net/http/pprof" // For pprof profiling
)

func main() {
	configPath := flag.String("config", app.DefaultConfigPath, "path to config file")
	pprofAddr := flag.String("pprof", "", "pprof listen address, disabled when empty")
	flag.Parse()

	// 1. System Bootstrapping
	bootstrap := app.NewBootstrap()
	if err := bootstrap.Initialize(*configPath); err != nil {
		slog.Error("Bootstrapping failed", slog.Any("error", err))
		os.Exit(1)
	}
	defer bootstrap.Close()
	cfg := bootstrap.Config

	// 2. Pprof Server (for performance profiling)
	if *pprofAddr != "" {
		go func() {
			slog.Info("Pprof server started", slog.String("addr", *pprofAddr))
			if err := http.ListenAndServe(*pprofAddr, nil); err != nil {
				slog.Error("Pprof server failed", slog.Any("error", err))
			}
		}()
	}

	// 3. Graceful Shutdown Context
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 4. Trader & Gateway
	trader := engine.NewTraderFromConfig(cfg, engine.WithLogger(bootstrap.Logger))
	srv := gateway.NewServer(trader, cfg.Gateway.ReadLimit, infra.GlobalMetrics, bootstrap.Logger)

	slog.InfoContext(ctx, "Trader gateway starting. Press Ctrl+C to exit.")
	if err := srv.ListenAndServe(ctx, cfg.Gateway.ListenAddr); err != nil {
		slog.Error("Gateway failed", slog.Any("error", err))
		os.Exit(1)
	}

	snap := infra.GlobalMetrics.Snapshot()
	slog.Info("Shutting down gracefully",
		slog.Uint64("ticks", snap.TicksProcessed),
		slog.Uint64("orders", snap.OrdersEmitted),
		slog.Uint64("state_resets", snap.StateResets))
}
