package timestamp

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestStat_Modified(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "backup.tar.gz")
	if err := os.WriteFile(path, []byte("data"), 0o644); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	want := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	if err := os.Chtimes(path, want, want); err != nil {
		t.Fatalf("Chtimes() failed: %v", err)
	}

	ts, err := Stat(Modified)
	if err != nil {
		t.Fatalf("Stat(Modified) failed: %v", err)
	}

	got, err := ts(path)
	if err != nil {
		t.Fatalf("timestamp func failed: %v", err)
	}
	if !got.Equal(want) {
		t.Errorf("mtime = %v, want %v", got, want)
	}
}

func TestStat_MissingFile(t *testing.T) {
	ts, err := Stat(Modified)
	if err != nil {
		t.Fatalf("Stat(Modified) failed: %v", err)
	}
	if _, err := ts(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("timestamp func succeeded for missing file, want error")
	}
}

func TestStat_UnknownSource(t *testing.T) {
	if _, err := Stat("birthtime"); err == nil {
		t.Error("Stat(\"birthtime\") succeeded, want error")
	}
}

func TestPattern(t *testing.T) {
	ts := Pattern("backup-2006-01-02.tar.gz", false)

	got, err := ts("backup-2026-03-15.tar.gz")
	if err != nil {
		t.Fatalf("pattern func failed: %v", err)
	}
	want := time.Date(2026, 3, 15, 0, 0, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Errorf("parsed time = %v, want %v", got, want)
	}

	if _, err := ts("not-a-backup"); err == nil {
		t.Error("pattern func succeeded for non-matching name, want error")
	}
}

func TestPattern_LeafOnly(t *testing.T) {
	ts := Pattern("2006-01-02", true)

	got, err := ts("/var/backups/nightly/2026-03-15")
	if err != nil {
		t.Fatalf("pattern func failed: %v", err)
	}
	want := time.Date(2026, 3, 15, 0, 0, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Errorf("parsed time = %v, want %v", got, want)
	}

	// Without leaf-only the directory prefix breaks the match.
	full := Pattern("2006-01-02", false)
	if _, err := full("/var/backups/nightly/2026-03-15"); err == nil {
		t.Error("pattern func matched full path, want error")
	}
}
