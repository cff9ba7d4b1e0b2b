// Package gateway exposes the trader over a WebSocket: one TradingState in,
// one Result out, per text frame.
package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"island_go/internal/domain"
	"island_go/internal/engine"
	"island_go/internal/infra"

	"github.com/gorilla/websocket"
)

const (
	writeWait       = 10 * time.Second
	shutdownTimeout = 5 * time.Second
)

// Runner processes one tick.
type Runner interface {
	Run(ctx context.Context, state domain.TradingState) (engine.Result, error)
}

type errorResponse struct {
	Error string `json:"error"`
}

// Server serves /ws and /healthz.
type Server struct {
	runner    Runner
	upgrader  websocket.Upgrader
	readLimit int64
	metrics   *infra.Metrics
	logger    *slog.Logger
}

// NewServer creates a gateway in front of runner.
func NewServer(runner Runner, readLimit int64, metrics *infra.Metrics, logger *slog.Logger) *Server {
	if metrics == nil {
		metrics = infra.GlobalMetrics
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		runner: runner,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		readLimit: readLimit,
		metrics:   metrics,
		logger:    logger,
	}
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleTicks)
	mux.HandleFunc("/healthz", s.handleHealth)
	return mux
}

// ListenAndServe blocks until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Gateway listening", slog.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("gateway listen: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("gateway shutdown: %w", err)
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(s.metrics.Snapshot())
}

// handleTicks processes frames strictly in arrival order on one connection.
func (s *Server) handleTicks(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("WebSocket upgrade failed", slog.Any("error", err))
		return
	}
	defer conn.Close()

	s.metrics.IncrementConnections()
	defer s.metrics.DecrementConnections()

	if s.readLimit > 0 {
		conn.SetReadLimit(s.readLimit)
	}

	remote := conn.RemoteAddr().String()
	s.logger.Info("Client connected", slog.String("remote", remote))

	ctx := r.Context()
	for {
		msgType, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Warn("Client read failed", slog.String("remote", remote), slog.Any("error", err))
			}
			s.logger.Info("Client disconnected", slog.String("remote", remote))
			return
		}
		if msgType != websocket.TextMessage {
			continue
		}

		reply := s.process(ctx, msg)

		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(reply); err != nil {
			s.logger.Warn("Client write failed", slog.String("remote", remote), slog.Any("error", err))
			return
		}
	}
}

// process turns one frame into the reply payload.
func (s *Server) process(ctx context.Context, msg []byte) any {
	var state domain.TradingState
	if err := json.Unmarshal(msg, &state); err != nil {
		s.metrics.RecordError()
		return errorResponse{Error: fmt.Sprintf("invalid trading state: %v", err)}
	}

	res, err := s.runner.Run(ctx, state)
	if err != nil {
		s.logger.ErrorContext(ctx, "Tick failed", slog.Int64("timestamp", state.Timestamp), slog.Any("error", err))
		return errorResponse{Error: err.Error()}
	}
	return res
}
