package handlers

import (
	"log/slog"
	"net/http"

	"github.com/kgrady/boltcard-gateway/internal/api"
	"github.com/kgrady/boltcard-gateway/internal/config"
	"github.com/kgrady/boltcard-gateway/internal/middleware"
	"github.com/kgrady/boltcard-gateway/internal/service"
)

// NewRouter creates and configures the HTTP router with all routes and middleware.
func NewRouter(
	cfg *config.Config,
	withdrawService service.Withdrawer,
	cardService service.CardManager,
	healthChecker HealthChecker,
	logger *slog.Logger,
) http.Handler {
	handler := NewHandler(withdrawService, cardService, healthChecker, logger)

	mux := http.NewServeMux()
	api.RegisterDocsRoutes(mux)

	mux.HandleFunc("GET /health", handler.GetHealth)
	mux.HandleFunc("POST /api/v1/withdraw", handler.Withdraw(cfg.Node.ID))

	// Card management and the payment result callback require the shared
	// admin token; an open callback would let anyone flip payment statuses
	// and skew the limit windows.
	adminAuth := middleware.RequireJWT(cfg.Admin.JWTSecret, logger)
	mux.Handle("POST /api/v1/withdraw/{paymentId}/result", adminAuth(http.HandlerFunc(handler.ReportPaymentResult)))
	mux.Handle("POST /api/v1/cards", adminAuth(http.HandlerFunc(handler.CreateCard)))
	mux.Handle("GET /api/v1/cards", adminAuth(http.HandlerFunc(handler.ListCards)))
	mux.Handle("GET /api/v1/cards/{cardId}", adminAuth(http.HandlerFunc(handler.GetCard)))
	mux.Handle("POST /api/v1/cards/{cardId}/freeze", adminAuth(http.HandlerFunc(handler.FreezeCard)))
	mux.Handle("POST /api/v1/cards/{cardId}/unfreeze", adminAuth(http.HandlerFunc(handler.UnfreezeCard)))
	mux.Handle("POST /api/v1/cards/{cardId}/archive", adminAuth(http.HandlerFunc(handler.ArchiveCard)))
	mux.Handle("PUT /api/v1/cards/{cardId}/limits", adminAuth(http.HandlerFunc(handler.UpdateLimits)))
	mux.Handle("POST /api/v1/cards/{cardId}/counter", adminAuth(http.HandlerFunc(handler.ResetCounter)))

	return middleware.RequestLogging(logger)(mux)
}
