package repository_test

import (
	"context"
	"testing"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/repository"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/testutil"
)

func TestSnapshotRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("history is filtered by user and inclusive range", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		for day := 0; day < 5; day++ {
			testutil.CreateSnapshot(t, db, "user-1", testutil.Day(day), "100")
		}
		testutil.CreateSnapshot(t, db, "user-2", testutil.Day(2), "999")

		got, err := repository.NewSnapshotRepository(db).GetHistory(ctx, "user-1", testutil.Day(1), testutil.Day(3))
		if err != nil {
			t.Fatalf("GetHistory() returned unexpected error: %v", err)
		}
		if len(got) != 3 {
			t.Fatalf("Expected 3 snapshots, got %d", len(got))
		}
		for i, s := range got {
			if !s.Date.Equal(testutil.Day(i + 1)) {
				t.Errorf("snapshot %d: date %s, want %s", i, s.Date, testutil.Day(i+1))
			}
			if s.UserID != "user-1" {
				t.Errorf("snapshot %d: user %s", i, s.UserID)
			}
		}
	})

	// WHY: Recording twice on the same day (manual run plus cron) must not
	// produce duplicate history points.
	t.Run("upsert replaces same user and date", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		testutil.CreateSnapshot(t, db, "user-1", testutil.Day(0), "100")
		testutil.CreateSnapshot(t, db, "user-1", testutil.Day(0), "250")

		got, err := repository.NewSnapshotRepository(db).GetHistory(ctx, "user-1", testutil.Day(0), testutil.Day(0))
		if err != nil {
			t.Fatalf("GetHistory() returned unexpected error: %v", err)
		}
		if len(got) != 1 || got[0].Invested.String() != "250" {
			t.Errorf("Expected a single snapshot with invested 250, got %+v", got)
		}
	})
}
