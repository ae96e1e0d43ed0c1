package handler

import (
	"context"
	"time"

	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/dtroode/xcard-server/internal/api/grpc/registrypb"
	"github.com/dtroode/xcard-server/internal/logger"
)

// Pinger reports store reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Health mirrors store reachability into the standard gRPC health service.
type Health struct {
	*health.Server
	pinger   Pinger
	interval time.Duration
	logger   *logger.Logger
}

func NewHealth(pinger Pinger, interval time.Duration, logger *logger.Logger) *Health {
	return &Health{
		Server:   health.NewServer(),
		pinger:   pinger,
		interval: interval,
		logger:   logger,
	}
}

// Probe pings the store once and records the resulting status for the
// overall server and the registry service.
func (h *Health) Probe(ctx context.Context) healthpb.HealthCheckResponse_ServingStatus {
	pctx, cancel := context.WithTimeout(ctx, h.interval)
	defer cancel()

	st := healthpb.HealthCheckResponse_SERVING
	if err := h.pinger.Ping(pctx); err != nil {
		h.logger.Warn("Health: store ping failed", "error", err)
		st = healthpb.HealthCheckResponse_NOT_SERVING
	}

	h.SetServingStatus("", st)
	h.SetServingStatus(registrypb.ServiceName, st)
	return st
}

// Run probes on every interval until ctx is done, then marks the server
// as not serving.
func (h *Health) Run(ctx context.Context) {
	h.Probe(ctx)

	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			h.Shutdown()
			return
		case <-ticker.C:
			h.Probe(ctx)
		}
	}
}
