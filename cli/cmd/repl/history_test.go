package repl

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestHistory_LoadMissing(t *testing.T) {
	h := NewHistory(filepath.Join(t.TempDir(), "history"))

	if err := h.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if h.Len() != 0 {
		t.Errorf("Len() = %d, want 0", h.Len())
	}
}

func TestHistory_Load(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history")

	content := "P:1 + 2\n" +
		"C:format json\n" +
		"garbage\n" +
		"P:\n" +
		"  P:[a, b]  \n"

	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	h := NewHistory(path)
	if err := h.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}

	want := []HistoryEntry{
		{Line: "1 + 2", Mode: modeParse},
		{Line: "format json", Mode: modeCtrl},
		{Line: "[a, b]", Mode: modeParse},
	}

	if got := h.Entries(); !slices.Equal(got, want) {
		t.Errorf("Entries() = %v, want %v", got, want)
	}
}

func TestHistory_Add(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history")
	h := NewHistory(path)

	adds := []struct {
		line string
		mode inputMode
	}{
		{"a", modeParse},
		{"  ", modeParse},
		{"help", modeCtrl},
		{"help", modeCtrl},
		{"b", modeParse},
		{"a", modeParse},
		{"a", modeCtrl},
	}

	for _, add := range adds {
		if err := h.Add(add.line, add.mode); err != nil {
			t.Fatalf("Add(%q): %v", add.line, err)
		}
	}

	want := []HistoryEntry{
		{Line: "help", Mode: modeCtrl},
		{Line: "b", Mode: modeParse},
		{Line: "a", Mode: modeParse},
		{Line: "a", Mode: modeCtrl},
	}

	if got := h.Entries(); !slices.Equal(got, want) {
		t.Fatalf("Entries() = %v, want %v", got, want)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	if got, wantFile := string(data), "C:help\nP:b\nP:a\nC:a\n"; got != wantFile {
		t.Errorf("file = %q, want %q", got, wantFile)
	}

	reloaded := NewHistory(path)
	if err := reloaded.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if got := reloaded.Entries(); !slices.Equal(got, want) {
		t.Errorf("reloaded Entries() = %v, want %v", got, want)
	}
}

func TestHistory_InMemory(t *testing.T) {
	h := NewHistory("")

	if err := h.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if err := h.Add("x", modeParse); err != nil {
		t.Fatalf("Add: %v", err)
	}

	if h.Len() != 1 {
		t.Errorf("Len() = %d, want 1", h.Len())
	}
}

func TestHistory_AddUnwritable(t *testing.T) {
	h := NewHistory(filepath.Join(t.TempDir(), "missing", "history"))

	err := h.Add("x", modeParse)
	if !errors.Is(err, ErrHistory) {
		t.Fatalf("Add = %v, want ErrHistory", err)
	}

	// The entry is kept in memory even though it could not be saved.
	if h.Len() != 1 {
		t.Errorf("Len() = %d, want 1", h.Len())
	}
}

func TestHistory_Entry(t *testing.T) {
	h := NewHistory("")
	_ = h.Add("x", modeParse)

	e, err := h.Entry(0)
	if err != nil || e.Line != "x" {
		t.Errorf("Entry(0) = %v, %v, want x", e, err)
	}

	for _, i := range []int{-1, 1} {
		if _, err := h.Entry(i); !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("Entry(%d) error = %v, want ErrOutOfBounds", i, err)
		}
	}
}
