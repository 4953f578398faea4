// Package middleware holds the chi middleware of the API: identity, request
// logging, CORS and path parameter checks.
package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/api/response"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/validation"
)

// ValidateUUIDMiddleware rejects requests whose {uuid} path parameter is
// missing or not a UUID with 400, so transaction handlers can trust the ID.
//
//	r.Route("/{uuid}", func(r chi.Router) {
//	    r.Use(middleware.ValidateUUIDMiddleware)
//	    r.Get("/", handler.GetTransaction)
//	})
func ValidateUUIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "uuid")
		if id == "" {
			response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidUUID.Error(), "transaction id is required")
			return
		}
		if err := validation.ValidateUUID(id); err != nil {
			response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidUUID.Error(), err.Error())
			return
		}
		next.ServeHTTP(w, r)
	})
}
