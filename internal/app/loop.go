package app

import (
	"errors"

	"go.uber.org/zap"

	"github.com/muurk/mvg/internal/logging"
)

// ErrQueueFull is reported when a search is submitted while the queue has no room
var ErrQueueFull = errors.New("a route search is already queued")

// Loop runs the dispatch step of the render loop against a shared State
type Loop struct {
	state *State
	keys  KeyMap
	queue chan<- Request
}

// StepResult reports what a single iteration did
type StepResult struct {
	Quit     bool // a quit key was pressed
	Enqueued bool // a search request was handed to the coordinator
}

// NewLoop creates a loop that submits searches on queue
func NewLoop(state *State, keys KeyMap, queue chan<- Request) *Loop {
	return &Loop{state: state, keys: keys, queue: queue}
}

// State returns the state the loop mutates
func (l *Loop) State() *State {
	return l.state
}

// Keys returns the loop's key bindings
func (l *Loop) Keys() KeyMap {
	return l.keys
}

// Step runs one iteration: it dispatches ev (nil when the poll timed out), submits a
// search if one was requested and counts the frame, all in one critical section.
// It never blocks on the coordinator.
func (l *Loop) Step(ev *KeyEvent) StepResult {
	s := l.state
	s.mu.Lock()
	defer s.mu.Unlock()

	s.normalizeSelection()

	var res StepResult
	if ev != nil {
		switch s.dispatch(l.keys, *ev) {
		case outcomeQuit:
			res.Quit = true
		case outcomeFetch:
			res.Enqueued = l.submit()
		}
	}

	s.frames++
	return res
}

// submit hands the committed search to the coordinator. The caller holds the state lock.
func (l *Loop) submit() bool {
	s := l.state
	if s.busy {
		return false
	}
	if s.dateInvalid || s.timeInvalid {
		logging.Debug("Search blocked by invalid input",
			zap.Bool("date_invalid", s.dateInvalid),
			zap.Bool("time_invalid", s.timeInvalid),
		)
		return false
	}

	req := s.request()
	select {
	case l.queue <- req:
		s.busy = true
		s.fetchErr = nil
		logging.Debug("Search submitted",
			zap.String("from", req.Start),
			zap.String("to", req.Destination),
			zap.Time("when", req.When),
		)
		return true
	default:
		s.fetchErr = ErrQueueFull
		return false
	}
}
