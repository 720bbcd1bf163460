package app

import (
	"sync"
	"time"

	"github.com/muurk/mvg/internal/mvg"
)

// Defaults are the initial toggle values of a new session
type Defaults struct {
	Arrival bool
	Modes   Modes
}

// DefaultDefaults searches by departure time with every transport mode enabled
func DefaultDefaults() Defaults {
	return Defaults{Modes: AllModes()}
}

// State is the single mutable record shared by the render loop and the fetch coordinator.
// Every field is guarded by mu.
type State struct {
	mu sync.Mutex

	focus  Focus
	mode   Mode
	drafts map[Focus]string

	start       string
	destination string
	when        time.Time
	arrival     bool
	modes       Modes

	dateInvalid bool
	timeInvalid bool

	// Written only by the coordinator, except busy which is raised on submission
	results  []mvg.Connection
	busy     bool
	fetchErr error

	frames    uint64
	selection int
}

// NewState creates the session state: focus on Start, Normal mode, the search time set to
// now and the date/time drafts pre-filled from it.
func NewState(now time.Time, defaults Defaults) *State {
	return &State{
		focus: FocusStart,
		mode:  ModeNormal,
		drafts: map[Focus]string{
			FocusStart:       "",
			FocusDestination: "",
			FocusDate:        now.Format(DateLayout),
			FocusTime:        now.Format(TimeLayout),
		},
		when:      now,
		arrival:   defaults.Arrival,
		modes:     defaults.Modes,
		selection: NoSelection,
	}
}

// Snapshot is a consistent read-only copy of the state
type Snapshot struct {
	Focus  Focus
	Mode   Mode
	Drafts map[Focus]string

	Start       string
	Destination string
	When        time.Time
	Arrival     bool
	Modes       Modes

	DateInvalid bool
	TimeInvalid bool

	Results  []mvg.Connection
	Busy     bool
	FetchErr error

	Frames    uint64
	Selection int
}

// Snapshot copies the state under the lock
func (s *State) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.normalizeSelection()

	drafts := make(map[Focus]string, len(s.drafts))
	for f, d := range s.drafts {
		drafts[f] = d
	}

	results := make([]mvg.Connection, len(s.results))
	copy(results, s.results)

	return Snapshot{
		Focus:       s.focus,
		Mode:        s.mode,
		Drafts:      drafts,
		Start:       s.start,
		Destination: s.destination,
		When:        s.when,
		Arrival:     s.arrival,
		Modes:       s.modes,
		DateInvalid: s.dateInvalid,
		TimeInvalid: s.timeInvalid,
		Results:     results,
		Busy:        s.busy,
		FetchErr:    s.fetchErr,
		Frames:      s.frames,
		Selection:   s.selection,
	}
}

// Selected returns the connection under the cursor
func (s Snapshot) Selected() (mvg.Connection, bool) {
	if s.Selection < 0 || s.Selection >= len(s.Results) {
		return mvg.Connection{}, false
	}
	return s.Results[s.Selection], true
}

// ApplyResults replaces the result list after a successful search and clears the busy flag
func (s *State) ApplyResults(results []mvg.Connection) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.results = results
	s.selection = NoSelection
	s.busy = false
	s.fetchErr = nil
}

// ApplyFailure records a failed search and clears the busy flag. Previous results are kept.
func (s *State) ApplyFailure(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.busy = false
	s.fetchErr = err
}

// request builds a search from the committed values. The caller holds s.mu.
func (s *State) request() Request {
	return Request{
		Start:       s.start,
		Destination: s.destination,
		When:        s.when,
		Arrival:     s.arrival,
		Modes:       s.modes,
	}
}

// normalizeSelection keeps the cursor inside the result list. The caller holds s.mu.
func (s *State) normalizeSelection() {
	s.selection = Clamp(s.selection, len(s.results))
}
