package service_test

import (
	"context"
	"testing"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/repository"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/testutil"
)

func TestSnapshotService(t *testing.T) {
	ctx := context.Background()

	t.Run("record stores portfolio totals", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewSQLiteTransactionRepository(db)
		svc := testutil.NewTestSnapshotService(t, db)
		testutil.NewTransaction("AAPL").Build(t, repo, "user-1")
		testutil.CreatePrice(t, db, "AAPL", "110")

		snapshot, err := svc.Record(ctx, "user-1", testutil.Day(5))
		if err != nil {
			t.Fatalf("Record() returned unexpected error: %v", err)
		}
		if snapshot.Invested.String() != "1000" || snapshot.CurrentValue.String() != "1100" {
			t.Errorf("Unexpected snapshot totals: %+v", snapshot)
		}
		if snapshot.OpenPositions != 1 {
			t.Errorf("Expected 1 open position, got %d", snapshot.OpenPositions)
		}

		history, err := svc.History(ctx, "user-1", testutil.Day(0), testutil.Day(10))
		if err != nil {
			t.Fatalf("History() returned unexpected error: %v", err)
		}
		if len(history) != 1 || !history[0].Date.Equal(testutil.Day(5)) {
			t.Errorf("Expected one snapshot on day 5, got %+v", history)
		}
	})

	t.Run("record twice on the same date keeps one", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewSQLiteTransactionRepository(db)
		svc := testutil.NewTestSnapshotService(t, db)
		testutil.NewTransaction("AAPL").Build(t, repo, "user-1")

		for range 2 {
			if _, err := svc.Record(ctx, "user-1", testutil.Day(1)); err != nil {
				t.Fatalf("Record() returned unexpected error: %v", err)
			}
		}

		history, _ := svc.History(ctx, "user-1", testutil.Day(1), testutil.Day(1))
		if len(history) != 1 {
			t.Errorf("Expected 1 snapshot, got %d", len(history))
		}
	})

	// WHY: The scheduled job records every user in one pass; each user must
	// get their own snapshot.
	t.Run("record all covers every user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewSQLiteTransactionRepository(db)
		svc := testutil.NewTestSnapshotService(t, db)
		users := []string{"user-a", "user-b", "user-c", "user-d", "user-e"}
		for _, u := range users {
			testutil.NewTransaction("AAPL").Build(t, repo, u)
		}

		if err := svc.RecordAll(ctx, testutil.Day(3)); err != nil {
			t.Fatalf("RecordAll() returned unexpected error: %v", err)
		}

		for _, u := range users {
			history, err := svc.History(ctx, u, testutil.Day(3), testutil.Day(3))
			if err != nil {
				t.Fatalf("History() returned unexpected error: %v", err)
			}
			if len(history) != 1 {
				t.Errorf("%s: expected 1 snapshot, got %d", u, len(history))
			}
		}
	})

	t.Run("start rejects invalid schedule", func(t *testing.T) {
		svc := testutil.NewTestSnapshotService(t, testutil.SetupTestDB(t))

		if _, err := svc.Start("not a schedule"); err == nil {
			t.Error("Expected error for invalid schedule")
		}
	})

	t.Run("start with valid schedule", func(t *testing.T) {
		svc := testutil.NewTestSnapshotService(t, testutil.SetupTestDB(t))

		scheduler, err := svc.Start("0 22 * * *")
		if err != nil {
			t.Fatalf("Start() returned unexpected error: %v", err)
		}
		if len(scheduler.Entries()) != 1 {
			t.Errorf("Expected 1 scheduled entry, got %d", len(scheduler.Entries()))
		}
		<-scheduler.Stop().Done()
	})
}
