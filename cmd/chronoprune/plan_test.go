package main

import (
	"os"
	"path/filepath"
	"testing"

	"halcyon-ops/chronoprune/pkg/retain"
)

func TestGatherNames(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.tgz", "b.tgz"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o644); err != nil {
			t.Fatalf("WriteFile() failed: %v", err)
		}
	}

	names, err := gatherNames([]string{filepath.Join(dir, "*.tgz")}, true)
	if err != nil {
		t.Fatalf("gatherNames() failed: %v", err)
	}
	if len(names) != 2 {
		t.Errorf("len(names) = %d, want 2", len(names))
	}

	literal := []string{"one", "two"}
	names, err = gatherNames(literal, false)
	if err != nil {
		t.Fatalf("gatherNames() failed: %v", err)
	}
	if len(names) != 2 || names[0] != "one" {
		t.Errorf("gatherNames() = %v, want %v", names, literal)
	}
}

func TestPlanTimestampFunc(t *testing.T) {
	defer func() { planFlags.timeLayout, planFlags.useMtime = "", false }()

	planFlags.timeLayout = "backup-2006-01-02.tgz"
	ts, err := planTimestampFunc()
	if err != nil {
		t.Fatalf("planTimestampFunc() failed: %v", err)
	}
	when, err := ts("backup-2024-06-15.tgz")
	if err != nil {
		t.Fatalf("pattern func failed: %v", err)
	}
	if when.Year() != 2024 || when.Month() != 6 || when.Day() != 15 {
		t.Errorf("parsed time = %v, want 2024-06-15", when)
	}

	planFlags.timeLayout = ""
	planFlags.useMtime = true
	if ts, err = planTimestampFunc(); err != nil || ts == nil {
		t.Errorf("planTimestampFunc() with mtime = %v, want func", err)
	}
}

func TestPrintPlan_UnknownFormat(t *testing.T) {
	defer func() { planFlags.format = "text" }()

	planFlags.format = "xml"
	if err := printPlan(nil, nil); err == nil {
		t.Error("printPlan() accepted unknown format, want error")
	}
}

func TestItemNames(t *testing.T) {
	items := []retain.Item{{Name: "a"}, {Name: "b"}}
	got := itemNames(items)
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("itemNames() = %v, want [a b]", got)
	}
	if got := itemNames(nil); len(got) != 0 {
		t.Errorf("itemNames(nil) = %v, want empty", got)
	}
}
