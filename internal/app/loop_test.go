package app

import (
	"errors"
	"sync"
	"testing"

	"github.com/muurk/mvg/internal/mvg"
)

func enterNames(l *Loop, from, to string) {
	press(l, "i")
	typeText(l, from)
	press(l, "enter", "l", "i")
	typeText(l, to)
	press(l, "enter")
}

func TestSubmitSearch(t *testing.T) {
	l, queue := newTestLoop(t, 1)
	enterNames(l, "Dachau", "Hauptbahnhof")

	if res := press(l, "f"); !res.Enqueued {
		t.Fatal("f should enqueue a search")
	}
	if !l.State().Snapshot().Busy {
		t.Error("Busy = false right after submission, want true")
	}

	// Busy gates a second submission
	if res := press(l, " "); res.Enqueued {
		t.Error("second search enqueued while busy")
	}
	if len(queue) != 1 {
		t.Fatalf("queue length = %d, want 1", len(queue))
	}

	req := <-queue
	if req.Start != "Dachau" || req.Destination != "Hauptbahnhof" {
		t.Errorf("request names = %q/%q, want Dachau/Hauptbahnhof", req.Start, req.Destination)
	}
	if req.Modes != (Modes{Ubahn: true, Sbahn: true, Tram: true, Bus: true}) {
		t.Errorf("request modes = %+v, want all true", req.Modes)
	}
	if !req.When.Equal(testNow) || req.Arrival {
		t.Errorf("request time = %v arrival = %v", req.When, req.Arrival)
	}

	l.State().ApplyResults(connections(1, 2))
	snap := l.State().Snapshot()
	if snap.Busy || len(snap.Results) != 2 {
		t.Errorf("after write-back busy=%v results=%d, want false/2", snap.Busy, len(snap.Results))
	}
}

func TestSearchKeyIsTextWhileEditing(t *testing.T) {
	l, queue := newTestLoop(t, 1)
	enterNames(l, "Dachau", "Hauptbahnhof")

	press(l, "i")
	typeText(l, "f ")
	if len(queue) != 0 || l.State().Snapshot().Busy {
		t.Fatal("f/space inside Editing must be typed, not submitted")
	}
	if got := l.State().Snapshot().Destination; got != "Hauptbahnhof" {
		t.Errorf("Destination = %q, changed without a commit", got)
	}
}

func TestSubmitBlockedByInvalidInput(t *testing.T) {
	l, queue := newTestLoop(t, 1)

	press(l, "j", "k", "i")
	clearDraft(l)
	typeText(l, "99.99.2024")
	press(l, "enter")
	// A rejected commit keeps Editing open; force Normal to exercise the gate
	l.State().mu.Lock()
	l.State().mode = ModeNormal
	l.State().mu.Unlock()

	if res := press(l, "f"); res.Enqueued {
		t.Error("search submitted while the date is invalid")
	}
	if len(queue) != 0 || l.State().Snapshot().Busy {
		t.Error("invalid date must not raise Busy or enqueue")
	}
}

func TestSubmitQueueFull(t *testing.T) {
	l, queue := newTestLoop(t, 1)
	queue <- Request{Start: "stale"}

	if res := press(l, "f"); res.Enqueued {
		t.Fatal("search enqueued into a full queue")
	}
	snap := l.State().Snapshot()
	if snap.Busy {
		t.Error("Busy = true after a rejected submission")
	}
	if !errors.Is(snap.FetchErr, ErrQueueFull) {
		t.Errorf("FetchErr = %v, want ErrQueueFull", snap.FetchErr)
	}
}

func TestFailureClearsBusy(t *testing.T) {
	l, queue := newTestLoop(t, 1)
	l.State().ApplyResults(connections(1, 2, 3))
	press(l, "f")
	<-queue

	boom := errors.New("boom")
	l.State().ApplyFailure(boom)

	snap := l.State().Snapshot()
	if snap.Busy {
		t.Error("Busy = true after failure")
	}
	if !errors.Is(snap.FetchErr, boom) {
		t.Errorf("FetchErr = %v, want boom", snap.FetchErr)
	}
	if len(snap.Results) != 3 {
		t.Errorf("results = %d, want previous 3 kept", len(snap.Results))
	}

	// A new submission clears the error
	press(l, "f")
	if snap := l.State().Snapshot(); snap.FetchErr != nil || !snap.Busy {
		t.Errorf("after resubmit FetchErr=%v Busy=%v", snap.FetchErr, snap.Busy)
	}
}

func TestSelectionInLoop(t *testing.T) {
	l, _ := newTestLoop(t, 1)
	l.State().ApplyResults(connections(1, 2, 3))

	press(l, "j", "enter")
	press(l, "j")
	if got := l.State().Snapshot().Selection; got != 0 {
		t.Errorf("Selection after first j = %d, want 0", got)
	}
	press(l, "k")
	if got := l.State().Snapshot().Selection; got != 2 {
		t.Errorf("Selection after k = %d, want 2 (wrap)", got)
	}
	press(l, "down")
	if got := l.State().Snapshot().Selection; got != 0 {
		t.Errorf("Selection after down = %d, want 0 (wrap)", got)
	}
	if c, ok := l.State().Snapshot().Selected(); !ok || c.UniqueID != 1 {
		t.Errorf("Selected() = %v/%v, want connection 1", c.UniqueID, ok)
	}

	// Write-back clears the cursor
	l.State().ApplyResults(connections(7))
	if got := l.State().Snapshot().Selection; got != NoSelection {
		t.Errorf("Selection after write-back = %d, want none", got)
	}
}

func TestSelectionOnEmptyResults(t *testing.T) {
	l, _ := newTestLoop(t, 1)

	press(l, "j", "enter", "j", "k", "j")
	if got := l.State().Snapshot().Selection; got != NoSelection {
		t.Errorf("Selection on empty list = %d, want none", got)
	}
}

func TestSelectionClampedWhenResultsShrink(t *testing.T) {
	l, _ := newTestLoop(t, 1)
	s := l.State()
	s.ApplyResults(connections(1, 2, 3, 4, 5))

	press(l, "j", "enter", "k")
	if got := s.Snapshot().Selection; got != 0 {
		t.Fatalf("Selection = %d, want 0", got)
	}
	press(l, "k")
	if got := s.Snapshot().Selection; got != 4 {
		t.Fatalf("Selection = %d, want 4", got)
	}

	// Replace the list without going through ApplyResults
	s.mu.Lock()
	s.results = connections(8, 9)
	s.mu.Unlock()

	l.Step(nil)
	s.mu.Lock()
	got := s.selection
	s.mu.Unlock()
	if got != 1 {
		t.Errorf("Selection after shrink = %d, want 1", got)
	}

	press(l, "j")
	if got := s.Snapshot().Selection; got != 0 {
		t.Errorf("Selection after j = %d, want 0", got)
	}

	s.mu.Lock()
	s.results = nil
	s.mu.Unlock()
	if got := s.Snapshot().Selection; got != NoSelection {
		t.Errorf("Selection after emptying = %d, want none", got)
	}
}

func TestFramesCountEveryStep(t *testing.T) {
	l, _ := newTestLoop(t, 1)

	before := l.State().Snapshot().Frames
	for i := 0; i < 10; i++ {
		l.Step(nil)
	}
	press(l, "l")
	if got := l.State().Snapshot().Frames - before; got != 11 {
		t.Errorf("frames advanced by %d, want 11", got)
	}
}

func TestTicksNeverSeePartialResults(t *testing.T) {
	l, queue := newTestLoop(t, 1)
	s := l.State()
	old := connections(1, 2, 3)
	fresh := connections(10, 11, 12, 13)
	s.ApplyResults(old)

	enterNames(l, "Dachau", "Hauptbahnhof")
	if res := press(l, "f"); !res.Enqueued {
		t.Fatal("search not enqueued")
	}
	before := s.Snapshot().Frames

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		<-queue
		s.ApplyResults(fresh)
	}()

	for i := 0; i < 10; i++ {
		l.Step(nil)
		checkConsistent(t, s.Snapshot().Results, old, fresh)
	}
	wg.Wait()

	snap := s.Snapshot()
	if got := snap.Frames - before; got != 10 {
		t.Errorf("frames advanced by %d, want 10", got)
	}
	checkConsistent(t, snap.Results, fresh, fresh)
	if snap.Busy {
		t.Error("Busy = true after write-back")
	}
}

func checkConsistent(t *testing.T, got, a, b []mvg.Connection) {
	t.Helper()
	if sameIDs(got, a) || sameIDs(got, b) {
		return
	}
	t.Errorf("results %v are neither the old nor the new list", ids(got))
}

func sameIDs(x, y []mvg.Connection) bool {
	if len(x) != len(y) {
		return false
	}
	for i := range x {
		if x[i].UniqueID != y[i].UniqueID {
			return false
		}
	}
	return true
}

func ids(cs []mvg.Connection) []int64 {
	out := make([]int64, len(cs))
	for i, c := range cs {
		out[i] = c.UniqueID
	}
	return out
}
