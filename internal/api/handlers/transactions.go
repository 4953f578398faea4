package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/api/middleware"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/api/request"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/api/response"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/service"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/validation"
)

// TransactionHandler handles HTTP requests for transaction endpoints.
// It serves as the HTTP layer adapter, parsing requests and delegating
// business logic to the transactionService.
type TransactionHandler struct {
	transactionService *service.TransactionService
}

// NewTransactionHandler creates a new TransactionHandler with the provided service dependency.
func NewTransactionHandler(transactionService *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
	}
}

// AllTransactions handles GET requests to retrieve the caller's transactions in stored order.
//
// Endpoint: GET /api/transaction
// Query Parameters: symbol (optional) limits the result to one symbol
// Response: 200 OK with array of Transaction
// Error: 500 Internal Server Error if retrieval fails
func (h *TransactionHandler) AllTransactions(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())

	transactions, err := h.transactionService.ListTransactions(r.Context(), userID, r.URL.Query().Get("symbol"))
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveTransactions.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, transactions)
}

// GetTransaction handles GET requests to retrieve a single transaction by ID.
//
// Endpoint: GET /api/transaction/{uuid}
// Response: 200 OK with Transaction
// Error: 400 Bad Request if transaction ID is invalid (validated by middleware)
// Error: 404 Not Found if transaction not found
// Error: 500 Internal Server Error if retrieval fails
func (h *TransactionHandler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())
	transactionID := chi.URLParam(r, "uuid")

	transaction, err := h.transactionService.GetTransaction(r.Context(), userID, transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrTransactionNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrTransactionNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveTransaction.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, transaction)
}

// CreateTransaction handles POST requests to create a new transaction.
//
// Endpoint: POST /api/transaction
// Request Body: CreateTransactionRequest (symbol, date, type, quantity, pricePerShare, fees, notes, tags)
// Response: 201 Created with Transaction
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 422 Unprocessable Entity if a SELL exceeds the shares held
// Error: 500 Internal Server Error if creation fails
func (h *TransactionHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateTransactionRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateTransaction(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	userID := middleware.UserIDFromContext(r.Context())
	transaction, err := h.transactionService.CreateTransaction(r.Context(), userID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidQuantity) {
			response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
			return
		}
		if respondInsufficientShares(w, err) {
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to create transaction", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, transaction)
}

// UpdateTransaction handles PUT requests to update an existing transaction.
//
// Endpoint: PUT /api/transaction/{uuid}
// Request Body: UpdateTransactionRequest (all fields optional)
// Response: 200 OK with updated Transaction
// Error: 400 Bad Request if transaction ID is invalid (validated by middleware) or validation fails
// Error: 404 Not Found if transaction not found
// Error: 422 Unprocessable Entity if the edit leaves a SELL without enough shares
// Error: 500 Internal Server Error if update fails
func (h *TransactionHandler) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	transactionID := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.UpdateTransactionRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdateTransaction(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	userID := middleware.UserIDFromContext(r.Context())
	transaction, err := h.transactionService.UpdateTransaction(r.Context(), userID, transactionID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrTransactionNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrTransactionNotFound.Error(), err.Error())
			return
		}
		if errors.Is(err, apperrors.ErrInvalidQuantity) {
			response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
			return
		}
		if respondInsufficientShares(w, err) {
			return
		}

		response.RespondError(w, http.StatusInternalServerError, "failed to update transaction", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, transaction)
}

// DeleteTransaction handles DELETE requests to remove a transaction.
//
// Endpoint: DELETE /api/transaction/{uuid}
// Response: 204 No Content on successful deletion
// Error: 400 Bad Request if transaction ID is invalid (validated by middleware)
// Error: 404 Not Found if transaction not found
// Error: 422 Unprocessable Entity if later SELLs depend on the deleted BUY
// Error: 500 Internal Server Error if deletion fails
func (h *TransactionHandler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())
	transactionID := chi.URLParam(r, "uuid")

	err := h.transactionService.DeleteTransaction(r.Context(), userID, transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrTransactionNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrTransactionNotFound.Error(), err.Error())
			return
		}
		if respondInsufficientShares(w, err) {
			return
		}

		response.RespondError(w, http.StatusInternalServerError, "failed to delete transaction", err.Error())
		return
	}

	response.RespondNoContent(w)
}

// ValidateSell handles POST requests asking whether a SELL is possible.
// A rejected SELL is a successful answer, not an error.
//
// Endpoint: POST /api/transaction/validate-sell
// Request Body: ValidateSellRequest (symbol, quantity, excludeTransactionId)
// Response: 200 OK with SellValidation
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 500 Internal Server Error if transactions cannot be loaded
func (h *TransactionHandler) ValidateSell(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.ValidateSellRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateSellRequest(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	userID := middleware.UserIDFromContext(r.Context())
	result, err := h.transactionService.ValidateSell(r.Context(), userID, req)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveTransactions.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, result)
}
