package infra

import (
	"sync/atomic"
	"time"
)

// Metrics counts trader activity. Safe for concurrent use.
type Metrics struct {
	// Counters
	ticksProcessed    atomic.Uint64
	ordersEmitted     atomic.Uint64
	liquidityFailures atomic.Uint64
	stateResets       atomic.Uint64
	errorsTotal       atomic.Uint64

	// Latency tracking
	latencySumNs atomic.Int64
	latencyCount atomic.Uint64

	// Gauges
	activeConnections atomic.Int32
}

// GlobalMetrics is the singleton metrics instance.
var GlobalMetrics = &Metrics{}

// RecordTick records one processed tick with its latency and order count.
func (m *Metrics) RecordTick(latencyNs int64, orders int) {
	m.ticksProcessed.Add(1)
	m.ordersEmitted.Add(uint64(orders))
	m.latencySumNs.Add(latencyNs)
	m.latencyCount.Add(1)
}

// RecordLiquidityFailure records a product skipped for lack of a bid or ask.
func (m *Metrics) RecordLiquidityFailure() {
	m.liquidityFailures.Add(1)
}

// RecordStateReset records a trader data blob that had to be discarded.
func (m *Metrics) RecordStateReset() {
	m.stateResets.Add(1)
}

// RecordError records an error occurrence.
func (m *Metrics) RecordError() {
	m.errorsTotal.Add(1)
}

// IncrementConnections increments active connections by 1.
func (m *Metrics) IncrementConnections() {
	m.activeConnections.Add(1)
}

// DecrementConnections decrements active connections by 1.
func (m *Metrics) DecrementConnections() {
	m.activeConnections.Add(-1)
}

// MetricsSnapshot is a point-in-time view of all metrics.
type MetricsSnapshot struct {
	TicksProcessed    uint64    `json:"ticks_processed"`
	OrdersEmitted     uint64    `json:"orders_emitted"`
	LiquidityFailures uint64    `json:"liquidity_failures"`
	StateResets       uint64    `json:"state_resets"`
	ErrorsTotal       uint64    `json:"errors_total"`
	AvgLatencyNs      int64     `json:"avg_latency_ns"`
	ActiveConnections int32     `json:"active_connections"`
	Timestamp         time.Time `json:"timestamp"`
}

// Snapshot returns current metrics as a snapshot.
func (m *Metrics) Snapshot() MetricsSnapshot {
	var avgLatency int64
	count := m.latencyCount.Load()
	if count > 0 {
		avgLatency = m.latencySumNs.Load() / int64(count)
	}

	return MetricsSnapshot{
		TicksProcessed:    m.ticksProcessed.Load(),
		OrdersEmitted:     m.ordersEmitted.Load(),
		LiquidityFailures: m.liquidityFailures.Load(),
		StateResets:       m.stateResets.Load(),
		ErrorsTotal:       m.errorsTotal.Load(),
		AvgLatencyNs:      avgLatency,
		ActiveConnections: m.activeConnections.Load(),
		Timestamp:         time.Now(),
	}
}

// Reset clears all metrics (for testing).
func (m *Metrics) Reset() {
	m.ticksProcessed.Store(0)
	m.ordersEmitted.Store(0)
	m.liquidityFailures.Store(0)
	m.stateResets.Store(0)
	m.errorsTotal.Store(0)
	m.latencySumNs.Store(0)
	m.latencyCount.Store(0)
	m.activeConnections.Store(0)
}
