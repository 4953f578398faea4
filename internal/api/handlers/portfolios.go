package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/api/middleware"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/api/request"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/api/response"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/service"
)

// PortfolioHandler handles portfolio-related HTTP requests
type PortfolioHandler struct {
	portfolioService *service.PortfolioService
	snapshotService  *service.SnapshotService
}

// NewPortfolioHandler creates a new PortfolioHandler
func NewPortfolioHandler(portfolioService *service.PortfolioService, snapshotService *service.SnapshotService) *PortfolioHandler {
	return &PortfolioHandler{
		portfolioService: portfolioService,
		snapshotService:  snapshotService,
	}
}

// Portfolio handles GET requests for the caller's aggregated portfolio.
//
// Endpoint: GET /api/portfolio
// Response: 200 OK with Portfolio (open positions and totals)
// Error: 500 Internal Server Error if the portfolio cannot be calculated
func (h *PortfolioHandler) Portfolio(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())

	portfolio, err := h.portfolioService.GetPortfolio(r.Context(), userID)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToGetPortfolio.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, portfolio)
}

// Positions handles GET requests for the caller's positions.
//
// Endpoint: GET /api/portfolio/positions
// Query Parameters: include_closed (optional, boolean)
// Response: 200 OK with array of Position sorted by symbol
// Error: 400 Bad Request if include_closed is not a boolean
// Error: 500 Internal Server Error if positions cannot be calculated
func (h *PortfolioHandler) Positions(w http.ResponseWriter, r *http.Request) {
	includeClosed := false
	if param := r.URL.Query().Get("include_closed"); param != "" {
		parsed, err := strconv.ParseBool(param)
		if err != nil {
			response.RespondError(w, http.StatusBadRequest, "invalid include_closed parameter", err.Error())
			return
		}
		includeClosed = parsed
	}

	userID := middleware.UserIDFromContext(r.Context())
	positions, err := h.portfolioService.GetPositions(r.Context(), userID, includeClosed)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToGetPositions.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, positions)
}

// Position handles GET requests for a single symbol, open or closed.
//
// Endpoint: GET /api/portfolio/position/{symbol}
// Response: 200 OK with Position
// Error: 404 Not Found if the symbol was never traded
// Error: 500 Internal Server Error if the position cannot be calculated
func (h *PortfolioHandler) Position(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())
	symbol := chi.URLParam(r, "symbol")

	position, err := h.portfolioService.GetPosition(r.Context(), userID, symbol)
	if err != nil {
		if errors.Is(err, apperrors.ErrPositionNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrPositionNotFound.Error(), symbol)
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToGetPositions.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, position)
}

// PortfolioHistory handles GET requests for recorded daily portfolio totals.
//
// Endpoint: GET /api/portfolio/history
// Query Parameters: start_date, end_date (optional, YYYY-MM-DD; default is the last year)
// Response: 200 OK with array of PortfolioSnapshot, oldest first
// Error: 400 Bad Request if the date range is invalid
// Error: 500 Internal Server Error if retrieval fails
func (h *PortfolioHandler) PortfolioHistory(w http.ResponseWriter, r *http.Request) {
	dateRange, err := request.ParseDateRange(
		r.URL.Query().Get("start_date"),
		r.URL.Query().Get("end_date"),
		time.Now().UTC(),
	)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidDateRange.Error(), err.Error())
		return
	}

	userID := middleware.UserIDFromContext(r.Context())
	history, err := h.snapshotService.History(r.Context(), userID, dateRange.Start, dateRange.End)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToGetPortfolioHistory.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, history)
}
