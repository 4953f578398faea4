package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/api/handlers"
	custommiddleware "github.com/ndewijer/Investment-Tracker-Backend/internal/api/middleware"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/config"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/service"
)

// Services groups the services the router exposes.
type Services struct {
	System      *service.SystemService
	Transaction *service.TransactionService
	Portfolio   *service.PortfolioService
	Price       *service.PriceService
	Snapshot    *service.SnapshotService
}

// NewRouter creates and configures the HTTP router
func NewRouter(services Services, cfg *config.Config, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.UserIdentity)
	r.Use(custommiddleware.Logger(logger))
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(services.System)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		r.Route("/transaction", func(r chi.Router) {
			transactionHandler := handlers.NewTransactionHandler(services.Transaction)
			r.Get("/", transactionHandler.AllTransactions)
			r.Post("/", transactionHandler.CreateTransaction)
			r.Post("/validate-sell", transactionHandler.ValidateSell)

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", transactionHandler.GetTransaction)
				r.Put("/", transactionHandler.UpdateTransaction)
				r.Delete("/", transactionHandler.DeleteTransaction)
			})
		})

		r.Route("/portfolio", func(r chi.Router) {
			portfolioHandler := handlers.NewPortfolioHandler(services.Portfolio, services.Snapshot)
			r.Get("/", portfolioHandler.Portfolio)
			r.Get("/positions", portfolioHandler.Positions)
			r.Get("/position/{symbol}", portfolioHandler.Position)
			r.Get("/history", portfolioHandler.PortfolioHistory)
		})

		r.Route("/price", func(r chi.Router) {
			priceHandler := handlers.NewPriceHandler(services.Price)
			r.Get("/", priceHandler.Prices)
			r.Put("/{symbol}", priceHandler.SetPrice)
		})
	})

	return r
}
