package main

import (
	"flag"
	"log/slog"
	"os"

	"island_go/internal/analysis"
	"island_go/internal/app"
	"island_go/internal/infra/storage"
)

func main() {
	configPath := flag.String("config", app.DefaultConfigPath, "path to config file")
	persist := flag.Bool("save", false, "store summaries in the analysis database")
	flag.Parse()

	bootstrap := app.NewBootstrap()
	if err := bootstrap.Initialize(*configPath); err != nil {
		slog.Error("Bootstrapping failed", slog.Any("error", err))
		os.Exit(1)
	}
	defer bootstrap.Close()
	cfg := bootstrap.Config

	var store *storage.Storage
	if *persist {
		var err error
		if store, err = bootstrap.OpenStorage(); err != nil {
			slog.Error("Failed to open storage", slog.Any("error", err))
			os.Exit(1)
		}
	}

	loader := analysis.NewLoader(rune(cfg.Analysis.Separator[0]))
	failed := false
	for _, day := range cfg.Analysis.Days {
		report, err := loader.BuildDayReport(cfg.Analysis.DataDir, cfg.Analysis.Round, day)
		if err != nil {
			// One unreadable day does not hide the others
			slog.Error("Failed to analyze day", slog.Int("day", day), slog.Any("error", err))
			failed = true
			continue
		}
		if _, err := report.WriteTo(os.Stdout); err != nil {
			slog.Error("Failed to write report", slog.Any("error", err))
			os.Exit(1)
		}
		if store != nil {
			if err := store.SaveDayReport(cfg.Analysis.Round, report); err != nil {
				slog.Error("Failed to save report", slog.Int("day", day), slog.Any("error", err))
				failed = true
			}
		}
	}

	if failed {
		os.Exit(1)
	}
}
