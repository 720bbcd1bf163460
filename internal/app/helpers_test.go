package app

import (
	"testing"
	"time"

	"github.com/muurk/mvg/internal/mvg"
)

var testNow = time.Date(2024, time.March, 15, 8, 30, 45, 0, time.Local)

func newTestLoop(t *testing.T, capacity int) (*Loop, chan Request) {
	t.Helper()
	queue := make(chan Request, capacity)
	return NewLoop(NewState(testNow, DefaultDefaults()), DefaultKeyMap(), queue), queue
}

// press feeds named keys to the loop and returns the last result
func press(l *Loop, names ...string) StepResult {
	var res StepResult
	for _, name := range names {
		ev := KeyFromName(name)
		res = l.Step(&ev)
	}
	return res
}

// typeText feeds s to the loop one character at a time
func typeText(l *Loop, s string) {
	for _, r := range s {
		ev := KeyEvent{Name: string(r), Runes: []rune{r}}
		l.Step(&ev)
	}
}

func clearDraft(l *Loop) {
	for range l.State().Snapshot().Drafts[l.State().Snapshot().Focus] {
		press(l, "backspace")
	}
}

func connections(ids ...int64) []mvg.Connection {
	out := make([]mvg.Connection, len(ids))
	for i, id := range ids {
		out[i] = mvg.Connection{UniqueID: id}
	}
	return out
}
