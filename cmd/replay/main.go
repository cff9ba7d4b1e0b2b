package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"island_go/internal/analysis"
	"island_go/internal/app"
	"island_go/internal/engine"
	"island_go/internal/infra/storage"
	"island_go/internal/replay"
)

func main() {
	configPath := flag.String("config", app.DefaultConfigPath, "path to config file")
	day := flag.Int("day", 0, "day to replay")
	persist := flag.Bool("save", false, "store the run record in the analysis database")
	flag.Parse()

	bootstrap := app.NewBootstrap()
	if err := bootstrap.Initialize(*configPath); err != nil {
		slog.Error("Bootstrapping failed", slog.Any("error", err))
		os.Exit(1)
	}
	defer bootstrap.Close()
	cfg := bootstrap.Config

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loader := analysis.NewLoader(rune(cfg.Analysis.Separator[0]))
	source := analysis.PricesPath(cfg.Analysis.DataDir, cfg.Analysis.Round, *day)
	rows, err := loader.LoadPrices(source)
	if err != nil {
		slog.Error("Failed to load prices", slog.String("path", source), slog.Any("error", err))
		os.Exit(1)
	}

	trader := engine.NewTraderFromConfig(cfg, engine.WithLogger(bootstrap.Logger))
	report, err := replay.New(trader, nil, bootstrap.Logger).Run(ctx, replay.BuildTicks(rows))
	if err != nil {
		slog.Error("Replay failed", slog.Any("error", err))
		os.Exit(1)
	}

	symbols := make([]string, 0, len(report.OrdersBySymbol))
	for sym := range report.OrdersBySymbol {
		symbols = append(symbols, sym)
	}
	sort.Strings(symbols)
	for _, sym := range symbols {
		slog.Info("Orders by product", slog.String("symbol", sym), slog.Int("orders", report.OrdersBySymbol[sym]))
	}

	if !*persist {
		return
	}
	store, err := bootstrap.OpenStorage()
	if err != nil {
		slog.Error("Failed to open storage", slog.Any("error", err))
		os.Exit(1)
	}
	run := &storage.ReplayRun{
		ID:                report.RunID,
		Source:            source,
		Ticks:             report.Ticks,
		Orders:            report.Orders,
		LiquidityFailures: report.LiquidityFailures,
		StartedAt:         report.StartedAt,
		FinishedAt:        report.FinishedAt,
	}
	if err := store.SaveReplayRun(run); err != nil {
		slog.Error("Failed to save replay run", slog.Any("error", err))
		os.Exit(1)
	}
	slog.Info("Replay run saved", slog.String("run_id", run.ID))
}
