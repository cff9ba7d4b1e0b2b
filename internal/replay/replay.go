package replay

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"island_go/internal/domain"
	"island_go/internal/engine"

	"github.com/google/uuid"
)

// Runner is the per-tick entry point being replayed.
type Runner interface {
	Run(ctx context.Context, state domain.TradingState) (engine.Result, error)
}

// TickResult is the trader's answer for one replayed tick.
type TickResult struct {
	Day       int
	Timestamp int64
	Orders    map[string][]domain.Order
}

// Report summarizes a replay.
type Report struct {
	RunID             string
	Ticks             int
	Orders            int
	LiquidityFailures int
	OrdersBySymbol    map[string]int
	Results           []TickResult
	TraderData        string
	StartedAt         time.Time
	FinishedAt        time.Time
}

// Replayer feeds ticks to a Runner, threading TraderData from one result
// into the next state. Positions are held at their initial values.
type Replayer struct {
	runner    Runner
	positions map[string]int
	logger    *slog.Logger
}

// New creates a replayer. positions may be nil.
func New(runner Runner, positions map[string]int, logger *slog.Logger) *Replayer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Replayer{runner: runner, positions: positions, logger: logger}
}

// Run replays ticks in order. It stops early when ctx is cancelled and
// returns the partial report together with the context error.
func (r *Replayer) Run(ctx context.Context, ticks []Tick) (*Report, error) {
	report := &Report{
		RunID:          uuid.NewString(),
		OrdersBySymbol: make(map[string]int),
		Results:        make([]TickResult, 0, len(ticks)),
		StartedAt:      time.Now(),
	}
	defer func() { report.FinishedAt = time.Now() }()

	traderData := ""
	for _, tick := range ticks {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		state := tick.State
		state.TraderData = traderData
		state.Position = r.positionsFor(state)

		for _, depth := range state.OrderDepths {
			if _, _, err := depth.Touch(); errors.Is(err, domain.ErrNoLiquidity) {
				report.LiquidityFailures++
			}
		}

		res, err := r.runner.Run(ctx, state)
		if err != nil {
			return report, fmt.Errorf("replay day %d ts %d: %w", tick.Day, state.Timestamp, err)
		}
		traderData = res.TraderData

		report.Ticks++
		for sym, orders := range res.Orders {
			report.Orders += len(orders)
			report.OrdersBySymbol[sym] += len(orders)
		}
		report.Results = append(report.Results, TickResult{
			Day:       tick.Day,
			Timestamp: state.Timestamp,
			Orders:    res.Orders,
		})
	}

	report.TraderData = traderData
	r.logger.InfoContext(ctx, "Replay finished",
		slog.String("run_id", report.RunID),
		slog.Int("ticks", report.Ticks),
		slog.Int("orders", report.Orders),
		slog.Int("liquidity_failures", report.LiquidityFailures))
	return report, nil
}

func (r *Replayer) positionsFor(state domain.TradingState) map[string]int {
	pos := make(map[string]int, len(state.OrderDepths))
	for sym := range state.OrderDepths {
		if p, ok := r.positions[sym]; ok {
			pos[sym] = p
		}
	}
	return pos
}
