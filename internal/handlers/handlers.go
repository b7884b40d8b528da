// Package handlers implements the HTTP surface of the withdrawal gateway.
package handlers

import (
	"context"
	"log/slog"

	"github.com/kgrady/boltcard-gateway/internal/service"
)

// HealthChecker reports backing store reachability.
type HealthChecker interface {
	PingContext(ctx context.Context) error
}

// Handler carries the service dependencies for all endpoints.
type Handler struct {
	withdrawService service.Withdrawer
	cardService     service.CardManager
	healthChecker   HealthChecker
	logger          *slog.Logger
}

// NewHandler creates a new Handler with injected service dependencies.
func NewHandler(
	withdrawService service.Withdrawer,
	cardService service.CardManager,
	healthChecker HealthChecker,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		withdrawService: withdrawService,
		cardService:     cardService,
		healthChecker:   healthChecker,
		logger:          logger,
	}
}
