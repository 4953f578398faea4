package response_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/api/response"
)

func TestRespondJSON(t *testing.T) {
	// WHY: Amounts must reach clients exactly as stored; a float would turn
	// 0.1 + 0.2 style sums into visible rounding noise.
	t.Run("decimals are encoded as strings", func(t *testing.T) {
		w := httptest.NewRecorder()

		response.RespondJSON(w, http.StatusOK, map[string]decimal.Decimal{
			"amount": decimal.RequireFromString("0.30000"),
		})

		if w.Header().Get("Content-Type") != "application/json" {
			t.Errorf("Expected JSON content type, got %q", w.Header().Get("Content-Type"))
		}
		if body := strings.TrimSpace(w.Body.String()); body != `{"amount":"0.3"}` {
			t.Errorf("Unexpected body %s", body)
		}
	})

	t.Run("encoding failure is logged", func(t *testing.T) {
		core, logs := observer.New(zapcore.ErrorLevel)
		t.Cleanup(zap.ReplaceGlobals(zap.New(core)))

		w := httptest.NewRecorder()
		response.RespondJSON(w, http.StatusOK, map[string]any{"channel": make(chan int)})

		if w.Code != http.StatusOK {
			t.Errorf("Expected status 200, got %d", w.Code)
		}
		if logs.Len() != 1 {
			t.Errorf("Expected 1 logged error, got %d", logs.Len())
		}
	})
}

func TestRespondError(t *testing.T) {
	w := httptest.NewRecorder()

	response.RespondError(w, http.StatusNotFound, "position not found", "AAPL")

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", w.Code)
	}
	var body response.ErrorResponse
	//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
	json.NewDecoder(w.Body).Decode(&body)
	if body.Error != "position not found" || body.Details != "AAPL" {
		t.Errorf("Unexpected error body: %+v", body)
	}
}

func TestRespondNoContent(t *testing.T) {
	w := httptest.NewRecorder()

	response.RespondNoContent(w)

	if w.Code != http.StatusNoContent || w.Body.Len() != 0 {
		t.Errorf("Expected empty 204, got %d with %q", w.Code, w.Body.String())
	}
}
