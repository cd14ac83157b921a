package repl

import (
	"bufio"
	"log/slog"
	"os"
	"slices"
	"strings"
	"sync"
)

// HistoryEntry is one submitted line and the mode it was submitted in.
type HistoryEntry struct {
	Line string
	Mode inputMode
}

// modePrefix tags each line of the history file with its mode.
var modePrefix = map[inputMode]string{
	modeParse: "P:",
	modeCtrl:  "C:",
}

func (e HistoryEntry) encode() string { return modePrefix[e.Mode] + e.Line + "\n" }

func decodeEntry(line string) (HistoryEntry, bool) {
	line = strings.TrimSpace(line)

	for mode, prefix := range modePrefix {
		if s, ok := strings.CutPrefix(line, prefix); ok && s != "" {
			return HistoryEntry{Line: s, Mode: mode}, true
		}
	}

	return HistoryEntry{}, false
}

// History is the list of submitted lines, persisted to a file. The most
// recent submission of a line replaces any earlier one in the same mode.
//
// An empty path keeps history in memory only.
type History struct {
	path    string
	entries []HistoryEntry
	mu      sync.RWMutex
}

// NewHistory returns an empty history backed by the file at path.
func NewHistory(path string) *History {
	return &History{path: path}
}

// Load replaces the entries with those read from the history file. A
// missing file is an empty history. Unrecognized lines are skipped.
func (h *History) Load() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.entries = nil

	if h.path == "" {
		return nil
	}

	file, err := os.Open(h.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}

		return ErrHistory.Wrap(err).With(slog.String("path", h.path))
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if e, ok := decodeEntry(scanner.Text()); ok {
			h.entries = append(h.entries, e)
		}
	}

	if err := scanner.Err(); err != nil {
		return ErrHistory.Wrap(err).With(slog.String("path", h.path))
	}

	return nil
}

// Add records line in mode and persists it. Blank lines are ignored.
func (h *History) Add(line string, mode inputMode) error {
	e := HistoryEntry{Line: strings.TrimSpace(line), Mode: mode}
	if e.Line == "" {
		return nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if n := len(h.entries); n > 0 && h.entries[n-1] == e {
		return nil
	}

	i := slices.Index(h.entries, e)
	if i >= 0 {
		h.entries = slices.Delete(h.entries, i, i+1)
	}

	h.entries = append(h.entries, e)

	if h.path == "" {
		return nil
	}

	if i >= 0 {
		return h.rewrite()
	}

	return h.append(e)
}

// Entry returns the entry at index i; index 0 is the oldest.
func (h *History) Entry(i int) (HistoryEntry, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if i < 0 || i >= len(h.entries) {
		return HistoryEntry{}, ErrOutOfBounds.With(slog.Int("index", i))
	}

	return h.entries[i], nil
}

// Len returns the number of entries.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.entries)
}

// Entries returns a copy of all entries, oldest first.
func (h *History) Entries() []HistoryEntry {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return slices.Clone(h.entries)
}

// append writes e to the end of the file. h.mu must be held.
func (h *History) append(e HistoryEntry) error {
	file, err := os.OpenFile(h.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return ErrHistory.Wrap(err).With(slog.String("path", h.path))
	}
	defer file.Close()

	if _, err := file.WriteString(e.encode()); err != nil {
		return ErrHistory.Wrap(err).With(slog.String("path", h.path))
	}

	return nil
}

// rewrite replaces the file with the current entries. h.mu must be held.
func (h *History) rewrite() error {
	var b strings.Builder
	for _, e := range h.entries {
		b.WriteString(e.encode())
	}

	if err := os.WriteFile(h.path, []byte(b.String()), 0o600); err != nil {
		return ErrHistory.Wrap(err).With(slog.String("path", h.path))
	}

	return nil
}
