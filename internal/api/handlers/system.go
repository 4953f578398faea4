package handlers

import (
	"net/http"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/api/response"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/service"
)

// SystemHandler serves the health and version endpoints.
type SystemHandler struct {
	systemService *service.SystemService
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(systemService *service.SystemService) *SystemHandler {
	return &SystemHandler{
		systemService: systemService,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Error    string `json:"error,omitempty"`
}

// Health reports whether the database answers.
//
// Endpoint: GET /api/system/health
// Response: 200 OK with HealthResponse
// Error: 503 Service Unavailable with HealthResponse if the database is unreachable
func (h *SystemHandler) Health(w http.ResponseWriter, _ *http.Request) {
	if err := h.systemService.CheckHealth(); err != nil {
		response.RespondJSON(w, http.StatusServiceUnavailable, HealthResponse{
			Status:   "unhealthy",
			Database: "disconnected",
			Error:    err.Error(),
		})
		return
	}

	response.RespondJSON(w, http.StatusOK, HealthResponse{Status: "healthy", Database: "connected"})
}

// Version returns the application version, the applied migration version
// and which optional features are enabled.
//
// Endpoint: GET /api/system/version
// Response: 200 OK with model.VersionInfo
// Error: 500 Internal Server Error if the schema version cannot be read
func (h *SystemHandler) Version(w http.ResponseWriter, _ *http.Request) {
	info, err := h.systemService.CheckVersion()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToGetVersionInfo.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, info)
}
