package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/model"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/repository"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/testutil"
)

func TestPortfolioHandler(t *testing.T) {
	setupHandler := func(t *testing.T) *PortfolioHandler {
		t.Helper()
		db := testutil.SetupTestDB(t)
		repo := repository.NewSQLiteTransactionRepository(db)

		// AAPL: open, 5 shares left at 100. MSFT: closed with a gain of 50.
		testutil.SaveTransactions(t, repo, model.LocalUserID,
			testutil.NewTransaction("AAPL").WithQuantity("10").WithPrice("100").Value(),
			testutil.NewTransaction("AAPL").Sell().WithQuantity("5").WithPrice("120").WithDate(testutil.Day(10)).Value(),
			testutil.NewTransaction("MSFT").WithQuantity("5").WithPrice("200").Value(),
			testutil.NewTransaction("MSFT").Sell().WithQuantity("5").WithPrice("210").WithDate(testutil.Day(20)).Value(),
		)
		testutil.CreatePrice(t, db, "AAPL", "130")
		testutil.CreateSnapshot(t, db, model.LocalUserID, testutil.Day(0), "1000")
		testutil.CreateSnapshot(t, db, model.LocalUserID, testutil.Day(1), "1000")
		testutil.CreateSnapshot(t, db, "someone-else", testutil.Day(1), "5")

		return NewPortfolioHandler(testutil.NewTestPortfolioService(t, db), testutil.NewTestSnapshotService(t, db))
	}

	// WHY: The portfolio lists open positions only, but realized results of
	// closed positions still belong in the totals.
	t.Run("Portfolio aggregates open and closed positions", func(t *testing.T) {
		handler := setupHandler(t)

		req := httptest.NewRequest(http.MethodGet, "/api/portfolio", nil)
		w := httptest.NewRecorder()

		handler.Portfolio(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var response model.Portfolio
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if len(response.Positions) != 1 || response.Positions[0].Symbol != "AAPL" {
			t.Fatalf("Expected only the AAPL position, got %+v", response.Positions)
		}

		checks := map[string]struct {
			got  decimal.Decimal
			want string
		}{
			"totalInvested":           {response.TotalInvested, "500"},
			"totalCurrentValue":       {response.TotalCurrentValue, "650"},
			"totalRealizedGainLoss":   {response.TotalRealizedGainLoss, "150"},
			"totalUnrealizedGainLoss": {response.TotalUnrealizedGainLoss, "150"},
			"totalGainLoss":           {response.TotalGainLoss, "300"},
		}
		for name, c := range checks {
			if !c.got.Equal(decimal.RequireFromString(c.want)) {
				t.Errorf("Expected %s %s, got %s", name, c.want, c.got)
			}
		}
	})

	t.Run("Positions hides closed positions by default", func(t *testing.T) {
		handler := setupHandler(t)

		req := httptest.NewRequest(http.MethodGet, "/api/portfolio/positions", nil)
		w := httptest.NewRecorder()

		handler.Positions(w, req)

		var response []model.Position
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if len(response) != 1 {
			t.Errorf("Expected 1 open position, got %d", len(response))
		}
	})

	t.Run("Positions includes closed positions on request", func(t *testing.T) {
		handler := setupHandler(t)

		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/portfolio/positions", map[string]string{"include_closed": "true"})
		w := httptest.NewRecorder()

		handler.Positions(w, req)

		var response []model.Position
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if len(response) != 2 {
			t.Fatalf("Expected 2 positions, got %d", len(response))
		}
		if response[1].Symbol != "MSFT" || !response[1].TotalShares.IsZero() {
			t.Errorf("Expected closed MSFT position last, got %+v", response[1])
		}
	})

	t.Run("Positions rejects invalid include_closed", func(t *testing.T) {
		handler := setupHandler(t)

		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/portfolio/positions", map[string]string{"include_closed": "maybe"})
		w := httptest.NewRecorder()

		handler.Positions(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", w.Code)
		}
	})

	t.Run("Position returns a valued position", func(t *testing.T) {
		handler := setupHandler(t)

		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/portfolio/position/aapl", map[string]string{"symbol": "aapl"})
		w := httptest.NewRecorder()

		handler.Position(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var response model.Position
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if response.CurrentValue == nil || !response.CurrentValue.Equal(decimal.RequireFromString("650")) {
			t.Errorf("Expected currentValue 650, got %v", response.CurrentValue)
		}
	})

	t.Run("Position without price stays unvalued", func(t *testing.T) {
		handler := setupHandler(t)

		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/portfolio/position/MSFT", map[string]string{"symbol": "MSFT"})
		w := httptest.NewRecorder()

		handler.Position(w, req)

		var response model.Position
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if response.CurrentValue != nil {
			t.Errorf("Expected no currentValue, got %v", response.CurrentValue)
		}
		if !response.RealizedGainLoss.Equal(decimal.RequireFromString("50")) {
			t.Errorf("Expected realizedGainLoss 50, got %s", response.RealizedGainLoss)
		}
	})

	t.Run("Position returns 404 for unknown symbol", func(t *testing.T) {
		handler := setupHandler(t)

		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/portfolio/position/TSLA", map[string]string{"symbol": "TSLA"})
		w := httptest.NewRecorder()

		handler.Position(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d", w.Code)
		}
	})

	t.Run("PortfolioHistory returns the caller's snapshots in range", func(t *testing.T) {
		handler := setupHandler(t)

		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/portfolio/history", map[string]string{
			"start_date": "2024-01-01",
			"end_date":   "2024-01-31",
		})
		w := httptest.NewRecorder()

		handler.PortfolioHistory(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var response []model.PortfolioSnapshot
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if len(response) != 2 {
			t.Fatalf("Expected 2 snapshots, got %d", len(response))
		}
		if !response[0].Date.Before(response[1].Date) {
			t.Error("Expected snapshots ordered by date")
		}
	})

	t.Run("PortfolioHistory rejects reversed range", func(t *testing.T) {
		handler := setupHandler(t)

		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/portfolio/history", map[string]string{
			"start_date": "2024-02-01",
			"end_date":   "2024-01-01",
		})
		w := httptest.NewRecorder()

		handler.PortfolioHistory(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", w.Code)
		}
	})
}
