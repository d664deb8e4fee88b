// Package tui provides a Bubble Tea terminal UI for playing a game.
package tui

// History holds recent commands for up/down recall. The cursor counts
// backwards from the newest entry: zero means the player is typing fresh
// input, k means k entries back.
type History struct {
	entries []string
	max     int
	back    int
}

// NewHistory creates a history buffer that keeps at most max commands.
func NewHistory(max int) *History {
	return &History{max: max}
}

// Push records a command. Repeating the newest entry is a no-op, and the
// oldest entries fall off past the cap.
func (h *History) Push(cmd string) {
	if n := len(h.entries); n > 0 && h.entries[n-1] == cmd {
		return
	}
	h.entries = append(h.entries, cmd)
	if len(h.entries) > h.max {
		copy(h.entries, h.entries[1:])
		h.entries = h.entries[:h.max]
	}
}

// Prev steps toward older entries and returns the one under the cursor.
// At the oldest entry it stays put; on empty history it reports false.
func (h *History) Prev() (string, bool) {
	if len(h.entries) == 0 {
		return "", false
	}
	if h.back < len(h.entries) {
		h.back++
	}
	return h.entries[len(h.entries)-h.back], true
}

// Next steps toward newer entries. Stepping past the newest returns the
// player to fresh input, reported as ("", false).
func (h *History) Next() (string, bool) {
	if h.back <= 1 {
		h.back = 0
		return "", false
	}
	h.back--
	return h.entries[len(h.entries)-h.back], true
}

// ResetCursor returns the cursor to the fresh-input position.
func (h *History) ResetCursor() {
	h.back = 0
}
