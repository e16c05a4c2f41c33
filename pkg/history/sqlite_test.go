package history

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func testRecord(target string, started time.Time) *RunRecord {
	return &RunRecord{
		ID:         uuid.NewString(),
		Target:     target,
		StartedAt:  started,
		FinishedAt: started.Add(2 * time.Second),
		Policy:     "w,m,y",
		Leeway:     "1%",
		Scanned:    10,
		Kept:       7,
		Discarded:  3,
		Removed:    3,
		Status:     "ok",
	}
}

func TestStore_RecordAndGet(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	record := testRecord("nightly", time.Now().Truncate(time.Second))
	if err := store.RecordRun(ctx, record); err != nil {
		t.Fatalf("RecordRun() failed: %v", err)
	}

	got, err := store.GetRun(ctx, record.ID)
	if err != nil {
		t.Fatalf("GetRun() failed: %v", err)
	}
	if got == nil {
		t.Fatal("GetRun() returned nil for recorded run")
	}

	if got.Target != record.Target {
		t.Errorf("Target = %q, want %q", got.Target, record.Target)
	}
	if got.Kept != record.Kept || got.Discarded != record.Discarded {
		t.Errorf("counts = %d/%d, want %d/%d", got.Kept, got.Discarded, record.Kept, record.Discarded)
	}
	if !got.StartedAt.Equal(record.StartedAt) {
		t.Errorf("StartedAt = %v, want %v", got.StartedAt, record.StartedAt)
	}

	missing, err := store.GetRun(ctx, "no-such-run")
	if err != nil {
		t.Fatalf("GetRun() failed: %v", err)
	}
	if missing != nil {
		t.Errorf("GetRun() of unknown id = %+v, want nil", missing)
	}
}

func TestStore_RecordValidation(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	if err := store.RecordRun(ctx, nil); err == nil {
		t.Error("RecordRun(nil) succeeded, want error")
	}
	if err := store.RecordRun(ctx, &RunRecord{}); err == nil {
		t.Error("RecordRun() with empty id succeeded, want error")
	}
}

func TestStore_ListRuns(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	base := time.Now().Truncate(time.Second)
	for i := 0; i < 5; i++ {
		record := testRecord(fmt.Sprintf("target-%d", i), base.Add(time.Duration(i)*time.Minute))
		if err := store.RecordRun(ctx, record); err != nil {
			t.Fatalf("RecordRun() failed: %v", err)
		}
	}

	records, err := store.ListRuns(ctx, 3)
	if err != nil {
		t.Fatalf("ListRuns() failed: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("len(records) = %d, want 3", len(records))
	}

	// Newest first.
	if records[0].Target != "target-4" {
		t.Errorf("records[0].Target = %q, want %q", records[0].Target, "target-4")
	}
	for i := 1; i < len(records); i++ {
		if records[i].StartedAt.After(records[i-1].StartedAt) {
			t.Errorf("records not ordered newest first at index %d", i)
		}
	}
}

func TestStore_PruneRuns(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	base := time.Now().Truncate(time.Second)
	for i := 0; i < 10; i++ {
		record := testRecord("nightly", base.Add(time.Duration(i)*time.Minute))
		if err := store.RecordRun(ctx, record); err != nil {
			t.Fatalf("RecordRun() failed: %v", err)
		}
	}

	deleted, err := store.PruneRuns(ctx, 4)
	if err != nil {
		t.Fatalf("PruneRuns() failed: %v", err)
	}
	if deleted != 6 {
		t.Errorf("PruneRuns() deleted %d, want 6", deleted)
	}

	records, err := store.ListRuns(ctx, 100)
	if err != nil {
		t.Fatalf("ListRuns() failed: %v", err)
	}
	if len(records) != 4 {
		t.Errorf("len(records) after prune = %d, want 4", len(records))
	}

	// keep <= 0 is a no-op.
	if deleted, err := store.PruneRuns(ctx, 0); err != nil || deleted != 0 {
		t.Errorf("PruneRuns(0) = %d, %v; want 0, nil", deleted, err)
	}
}

func TestStore_OpenErrors(t *testing.T) {
	if _, err := Open(""); err == nil {
		t.Error("Open(\"\") succeeded, want error")
	}
}
