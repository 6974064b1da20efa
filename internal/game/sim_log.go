package game

import (
	"fmt"
	"strings"
)

// SimLogEntry is one recorded event of a session.
type SimLogEntry struct {
	Turn     int
	Unit     string  // label e.g. "R0", "B3", or "--" for side-wide events
	Side     string  // "red", "blue", or "--"
	Category string  // spawn, move, base, unit, economy, turn, ai, game
	Key      string  // specific event name within the category
	Value    string  // human-readable detail
	NumVal   float64 // optional numeric value for threshold checks
}

// String formats the entry as a fixed-width log line.
//
//	[T=004] B1   move      moved            (2,3) → (3,4)
func (e SimLogEntry) String() string {
	return fmt.Sprintf("[T=%03d] %-4s %-9s %-16s %s",
		e.Turn, e.Unit, e.Category, e.Key, e.Value)
}

// SimLog collects structured events of a session. Unlike TurnLog (the
// on-screen ring buffer), SimLog is unbounded and machine-readable.
type SimLog struct {
	entries []SimLogEntry
	verbose bool
}

// NewSimLog creates a SimLog. If verbose is true, per-turn position and
// credit entries are also recorded.
func NewSimLog(verbose bool) *SimLog {
	return &SimLog{verbose: verbose}
}

// SetVerbose toggles recording of verbose entries.
func (sl *SimLog) SetVerbose(v bool) { sl.verbose = v }

// Add records a new entry.
func (sl *SimLog) Add(turn int, unit, side, category, key, value string, numVal float64) {
	sl.entries = append(sl.entries, SimLogEntry{
		Turn:     turn,
		Unit:     unit,
		Side:     side,
		Category: category,
		Key:      key,
		Value:    value,
		NumVal:   numVal,
	})
}

// AddVerbose records an entry only when verbose mode is on.
func (sl *SimLog) AddVerbose(turn int, unit, side, category, key, value string, numVal float64) {
	if !sl.verbose {
		return
	}
	sl.Add(turn, unit, side, category, key, value, numVal)
}

// Entries returns all recorded entries.
func (sl *SimLog) Entries() []SimLogEntry {
	return sl.entries
}

// Len is the number of recorded entries.
func (sl *SimLog) Len() int { return len(sl.entries) }

// where returns the entries keep accepts, in log order.
func (sl *SimLog) where(keep func(SimLogEntry) bool) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}

func matches(e SimLogEntry, category, key string) bool {
	return (category == "" || e.Category == category) && (key == "" || e.Key == key)
}

// Filter returns entries matching category and key; an empty string
// matches anything.
func (sl *SimLog) Filter(category, key string) []SimLogEntry {
	return sl.where(func(e SimLogEntry) bool { return matches(e, category, key) })
}

// FilterUnit returns the entries of one unit label.
func (sl *SimLog) FilterUnit(label string) []SimLogEntry {
	return sl.where(func(e SimLogEntry) bool { return e.Unit == label })
}

// FilterTurnRange returns the entries of turns from..to inclusive.
func (sl *SimLog) FilterTurnRange(from, to int) []SimLogEntry {
	return sl.where(func(e SimLogEntry) bool { return e.Turn >= from && e.Turn <= to })
}

func (sl *SimLog) CountCategory(category, key string) int {
	return len(sl.Filter(category, key))
}

// LastOf returns the latest entry matching category and key.
func (sl *SimLog) LastOf(category, key string) (SimLogEntry, bool) {
	for i := len(sl.entries) - 1; i >= 0; i-- {
		if matches(sl.entries[i], category, key) {
			return sl.entries[i], true
		}
	}
	return SimLogEntry{}, false
}

// HasEntry reports whether an entry matches category and key and has
// valueSubstr in its value.
func (sl *SimLog) HasEntry(category, key, valueSubstr string) bool {
	for _, e := range sl.entries {
		if matches(e, category, key) && strings.Contains(e.Value, valueSubstr) {
			return true
		}
	}
	return false
}

func formatEntries(entries []SimLogEntry) string {
	var sb strings.Builder
	for _, e := range entries {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Format renders the whole log, one entry per line.
func (sl *SimLog) Format() string { return formatEntries(sl.entries) }

// FormatRange renders the entries of turns from..to inclusive.
func (sl *SimLog) FormatRange(from, to int) string {
	return formatEntries(sl.FilterTurnRange(from, to))
}

// Summary returns a short human-readable summary of the world state.
func (sl *SimLog) Summary(w *World) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "--- Summary at T=%03d ---\n", w.Turn())
	for s := Side(0); s < sideCount; s++ {
		r := w.Roster(s)
		labels := make([]string, len(r.Units))
		for i, u := range r.Units {
			labels[i] = fmt.Sprintf("%s@%v", u.Label(), u.Tile())
		}
		bases := make([]string, len(r.Bases))
		for i, b := range r.Bases {
			bases[i] = b.String()
		}
		fmt.Fprintf(&sb, "%s: credits=%d  bases=[%s]  units=[%s]\n",
			s, r.Credits, strings.Join(bases, " "), strings.Join(labels, " "))
	}
	fmt.Fprintf(&sb, "Moves: %d  Captures: %d  Removed: %d\n",
		sl.CountCategory("move", "moved"), sl.CountCategory("base", "captured"), sl.CountCategory("unit", "removed"))
	if winner, over := w.Winner(); over {
		fmt.Fprintf(&sb, "Winner: %s\n", winner)
	} else {
		fmt.Fprintf(&sb, "To move: %s\n", w.ActiveSide())
	}
	return sb.String()
}
