package game

import (
	"fmt"

	"github.com/Garsondee/Hex-Skirmish/internal/event"
)

// TurnLogCapacity is the number of lines kept by a TurnLog.
const TurnLogCapacity = 60

// TurnEntry is a single line in the turn log.
type TurnEntry struct {
	Turn    int
	Label   string // e.g. "R1", "B3", or "--"
	Side    Side
	Message string
}

func (e TurnEntry) String() string {
	return fmt.Sprintf("%3d [%s] %s", e.Turn, e.Label, e.Message)
}

// TurnLog is a ring buffer of recent game events shown on screen.
type TurnLog struct {
	entries []TurnEntry
	head    int
	count   int

	world *World // followed world, nil when detached
	sub   event.Subscription
}

// NewTurnLog creates a turn log with a fixed capacity.
func NewTurnLog() *TurnLog {
	return &TurnLog{
		entries: make([]TurnEntry, TurnLogCapacity),
	}
}

// Add appends an entry to the log, overwriting the oldest once full.
func (tl *TurnLog) Add(turn int, label string, side Side, msg string) {
	tl.entries[tl.head] = TurnEntry{
		Turn:    turn,
		Label:   label,
		Side:    side,
		Message: msg,
	}
	tl.head = (tl.head + 1) % TurnLogCapacity
	if tl.count < TurnLogCapacity {
		tl.count++
	}
}

// Len is the number of stored entries.
func (tl *TurnLog) Len() int { return tl.count }

// Recent returns entries in chronological order (oldest first).
func (tl *TurnLog) Recent() []TurnEntry {
	result := make([]TurnEntry, tl.count)
	for i := 0; i < tl.count; i++ {
		idx := (tl.head - tl.count + i + TurnLogCapacity) % TurnLogCapacity
		result[i] = tl.entries[idx]
	}
	return result
}

// Follow subscribes the log to w's events so that every spawn, move,
// capture, removal and turn change gets a line. A log follows one world at
// a time; following a new one drops the old subscription.
func (tl *TurnLog) Follow(w *World) {
	tl.Unfollow()
	tl.world = w
	tl.sub = w.Events.SubscribeAll(event.ListenerFunc(tl.record),
		event.TurnStarted, event.UnitSpawned, event.UnitMoved,
		event.UnitRemoved, event.BaseCaptured, event.GameOver)
}

// Unfollow stops recording the followed world's events.
func (tl *TurnLog) Unfollow() {
	if tl.world == nil {
		return
	}
	tl.world.Events.Unsubscribe(tl.sub)
	tl.world = nil
}

func (tl *TurnLog) record(e event.Event) {
	turn := tl.world.Turn()
	switch d := e.Data.(type) {
	case TurnEvent:
		tl.Add(d.Turn, "--", d.Side, fmt.Sprintf("%s to move", d.Side))
	case UnitEvent:
		u := d.Unit
		switch e.Type {
		case event.UnitSpawned:
			tl.Add(turn, u.Label(), u.Side(), fmt.Sprintf("%s deployed at %v", u.Kind(), d.To))
		case event.UnitMoved:
			tl.Add(turn, u.Label(), u.Side(), fmt.Sprintf("%v → %v", d.From, d.To))
		case event.UnitRemoved:
			tl.Add(turn, u.Label(), u.Side(), "left the board")
		}
	case BaseEvent:
		tl.Add(turn, "--", d.To, fmt.Sprintf("captured base %v from %s", d.Base, d.From))
	case GameOverEvent:
		tl.Add(d.Turn, "--", d.Winner, fmt.Sprintf("%s wins", d.Winner))
	}
}
