package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/api/request"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/api/response"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/service"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/validation"
)

// PriceHandler handles HTTP requests for manually entered prices.
type PriceHandler struct {
	priceService *service.PriceService
}

// NewPriceHandler creates a new PriceHandler
func NewPriceHandler(priceService *service.PriceService) *PriceHandler {
	return &PriceHandler{
		priceService: priceService,
	}
}

// Prices handles GET requests for all stored prices.
//
// Endpoint: GET /api/price
// Response: 200 OK with array of Price sorted by symbol
// Error: 500 Internal Server Error if retrieval fails
func (h *PriceHandler) Prices(w http.ResponseWriter, r *http.Request) {
	prices, err := h.priceService.ListPrices(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrievePrices.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, prices)
}

// SetPrice handles PUT requests storing the current price of a symbol.
//
// Endpoint: PUT /api/price/{symbol}
// Request Body: SetPriceRequest (price, date)
// Response: 200 OK with Price
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 500 Internal Server Error if the price cannot be stored
func (h *PriceHandler) SetPrice(w http.ResponseWriter, r *http.Request) {
	symbol := chi.URLParam(r, "symbol")

	req, err := parseJSON[request.SetPriceRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateSetPrice(symbol, req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	price, err := h.priceService.SetPrice(r.Context(), symbol, req)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToUpdatePrice.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, price)
}
