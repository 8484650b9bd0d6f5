package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func mustSave(t *testing.T, store *Store, r Run) int64 {
	t.Helper()
	id, err := store.SaveRun(r)
	if err != nil {
		t.Fatalf("SaveRun(%+v) failed: %v", r, err)
	}
	return id
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsRuns(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	mustSave(t, store, Run{Outcome: OutcomeDefeat, Level: 2, Seconds: 40})
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()

	runs, err := store.RecentRuns(10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 1 || runs[0].Seconds != 40 {
		t.Errorf("runs after reopen = %+v", runs)
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	id := mustSave(t, store, Run{
		Player:    "alice",
		Outcome:   OutcomeVictory,
		Level:     5,
		Seconds:   120,
		Materials: 4,
		Seed:      42,
	})
	if id <= 0 {
		t.Errorf("SaveRun() id = %d", id)
	}

	runs, err := store.TopRuns(10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("Expected 1 run, got %d", len(runs))
	}
	r := runs[0]
	if r.ID != id || r.Player != "alice" || r.Outcome != OutcomeVictory || r.Level != 5 ||
		r.Seconds != 120 || r.Materials != 4 || r.Seed != 42 {
		t.Errorf("run round trip = %+v", r)
	}
	if r.CreatedAt.IsZero() {
		t.Error("CreatedAt not set")
	}
}

func TestStoreRejectsUnknownOutcome(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.SaveRun(Run{Outcome: "draw"}); err == nil {
		t.Error("SaveRun() accepted an unknown outcome")
	}
}

func TestStoreTopRunsRanking(t *testing.T) {
	store := openTestStore(t)

	mustSave(t, store, Run{Outcome: OutcomeDefeat, Level: 3, Seconds: 90})
	mustSave(t, store, Run{Outcome: OutcomeVictory, Level: 5, Seconds: 200})
	mustSave(t, store, Run{Outcome: OutcomeDefeat, Level: 3, Seconds: 150})
	mustSave(t, store, Run{Outcome: OutcomeDefeat, Level: 4, Seconds: 100})
	mustSave(t, store, Run{Outcome: OutcomeVictory, Level: 5, Seconds: 180})

	runs, err := store.TopRuns(10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}

	want := []struct {
		outcome Outcome
		seconds int
	}{
		{OutcomeVictory, 200},
		{OutcomeVictory, 180},
		{OutcomeDefeat, 100},
		{OutcomeDefeat, 150},
		{OutcomeDefeat, 90},
	}
	if len(runs) != len(want) {
		t.Fatalf("Expected %d runs, got %d", len(want), len(runs))
	}
	for i, w := range want {
		if runs[i].Outcome != w.outcome || runs[i].Seconds != w.seconds {
			t.Errorf("rank %d = %s/%ds, want %s/%ds", i+1, runs[i].Outcome, runs[i].Seconds, w.outcome, w.seconds)
		}
	}
}

func TestStoreTopRunsLimit(t *testing.T) {
	store := openTestStore(t)
	for i := range 15 {
		mustSave(t, store, Run{Outcome: OutcomeDefeat, Level: 1, Seconds: i})
	}

	runs, err := store.TopRuns(5)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 5 {
		t.Errorf("Expected 5 runs, got %d", len(runs))
	}

	runs, err = store.TopRuns(0)
	if err != nil {
		t.Fatalf("TopRuns(0) failed: %v", err)
	}
	if len(runs) != 10 {
		t.Errorf("Expected default limit of 10, got %d", len(runs))
	}
}

func TestStoreRecentRuns(t *testing.T) {
	store := openTestStore(t)
	for i := range 3 {
		mustSave(t, store, Run{Outcome: OutcomeDefeat, Level: 1, Seconds: 10 * (i + 1)})
	}

	runs, err := store.RecentRuns(2)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 2 || runs[0].Seconds != 30 || runs[1].Seconds != 20 {
		t.Errorf("RecentRuns(2) = %+v, want newest first", runs)
	}
}

func TestStoreBestRun(t *testing.T) {
	store := openTestStore(t)

	best, err := store.BestRun()
	if err != nil {
		t.Fatalf("BestRun() failed: %v", err)
	}
	if best != nil {
		t.Errorf("BestRun() on empty log = %+v, want nil", best)
	}

	mustSave(t, store, Run{Outcome: OutcomeDefeat, Level: 2, Seconds: 50})
	mustSave(t, store, Run{Outcome: OutcomeDefeat, Level: 4, Seconds: 30})

	best, err = store.BestRun()
	if err != nil {
		t.Fatalf("BestRun() failed: %v", err)
	}
	if best == nil || best.Level != 4 {
		t.Errorf("BestRun() = %+v, want the level 4 run", best)
	}
}

func TestStoreStats(t *testing.T) {
	store := openTestStore(t)

	stats, err := store.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.Runs != 0 || !stats.LastPlayed.IsZero() {
		t.Errorf("empty stats = %+v", stats)
	}

	mustSave(t, store, Run{Outcome: OutcomeDefeat, Level: 2, Seconds: 40})
	mustSave(t, store, Run{Outcome: OutcomeVictory, Level: 5, Seconds: 100})

	stats, err = store.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.Runs != 2 || stats.Victories != 1 || stats.BestSeconds != 100 || stats.AvgSeconds != 70 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed not set")
	}
}

func TestStoreClearRuns(t *testing.T) {
	store := openTestStore(t)
	mustSave(t, store, Run{Outcome: OutcomeDefeat, Level: 1, Seconds: 5})

	if err := store.ClearRuns(); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}

	runs, err := store.TopRuns(10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("Expected no runs after clear, got %d", len(runs))
	}
}

func TestStoreNestedPath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	// Verify nested directories were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
