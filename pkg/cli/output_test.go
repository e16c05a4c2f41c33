package cli

import (
	"strings"
	"testing"
)

func TestNewFormatter(t *testing.T) {
	if _, err := NewFormatter(FormatText); err != nil {
		t.Errorf("NewFormatter(text) failed: %v", err)
	}
	if _, err := NewFormatter(FormatJSON); err != nil {
		t.Errorf("NewFormatter(json) failed: %v", err)
	}
	if _, err := NewFormatter(""); err != nil {
		t.Errorf("NewFormatter(\"\") failed: %v", err)
	}
	if _, err := NewFormatter("xml"); err == nil {
		t.Error("NewFormatter(xml) succeeded, want error")
	}
}

func TestJSONFormatter(t *testing.T) {
	var sb strings.Builder
	f := &JSONFormatter{Indent: true}

	data := map[string]int{"kept": 3}
	if err := f.FormatTo(&sb, data); err != nil {
		t.Fatalf("FormatTo() failed: %v", err)
	}
	if !strings.Contains(sb.String(), `"kept": 3`) {
		t.Errorf("output = %q, want it to contain %q", sb.String(), `"kept": 3`)
	}
}

func TestTextFormatter(t *testing.T) {
	var sb strings.Builder
	f := &TextFormatter{}

	if err := f.FormatTo(&sb, "hello"); err != nil {
		t.Fatalf("FormatTo() failed: %v", err)
	}
	if sb.String() != "hello\n" {
		t.Errorf("output = %q, want %q", sb.String(), "hello\n")
	}
}
