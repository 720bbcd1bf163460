package app

import (
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/muurk/mvg/internal/logging"
)

// Input layouts for the date and time fields
const (
	DateLayout = "02.01.2006"
	TimeLayout = "15:04"
)

// Mode gates how key presses are interpreted
type Mode int

const (
	// ModeNormal moves focus and runs global commands
	ModeNormal Mode = iota
	// ModeEditing captures text into the focused draft buffer
	ModeEditing
	// ModeSelecting moves the route cursor
	ModeSelecting
)

// String returns the label shown in the status line
func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "NORMAL"
	case ModeEditing:
		return "EDIT"
	case ModeSelecting:
		return "SELECT"
	default:
		return "UNKNOWN"
	}
}

// Action is what a key press means in the current mode
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionActivate
	ActionMoveLeft
	ActionMoveDown
	ActionMoveUp
	ActionMoveRight
	ActionFetch
	ActionDismiss
	ActionType
	ActionErase
	ActionCommit
	ActionNext
	ActionPrev
)

type outcome int

const (
	outcomeNone outcome = iota
	outcomeQuit
	outcomeFetch
)

type modeAction struct {
	mode   Mode
	action Action
}

type handler func(s *State, ev KeyEvent) outcome

// transitions is the input mode machine. Pairs without an entry are ignored.
var transitions = map[modeAction]handler{
	{ModeNormal, ActionQuit}:      quit,
	{ModeNormal, ActionActivate}:  (*State).activate,
	{ModeNormal, ActionMoveLeft}:  move(DirLeft),
	{ModeNormal, ActionMoveDown}:  move(DirDown),
	{ModeNormal, ActionMoveUp}:    move(DirUp),
	{ModeNormal, ActionMoveRight}: move(DirRight),
	{ModeNormal, ActionFetch}:     fetch,
	{ModeNormal, ActionDismiss}:   (*State).dismiss,

	{ModeEditing, ActionQuit}:   quit,
	{ModeEditing, ActionType}:   (*State).typeRunes,
	{ModeEditing, ActionErase}:  (*State).erase,
	{ModeEditing, ActionCommit}: (*State).commit,

	{ModeSelecting, ActionQuit}:   quit,
	{ModeSelecting, ActionNext}:   (*State).advance,
	{ModeSelecting, ActionPrev}:   (*State).retreat,
	{ModeSelecting, ActionCommit}: (*State).leaveSelecting,
}

func quit(*State, KeyEvent) outcome  { return outcomeQuit }
func fetch(*State, KeyEvent) outcome { return outcomeFetch }

func move(dir Direction) handler {
	return func(s *State, _ KeyEvent) outcome {
		s.focus = NextFocus(s.focus, dir)
		return outcomeNone
	}
}

// dispatch routes one key press through the mode machine. The caller holds s.mu.
func (s *State) dispatch(keys KeyMap, ev KeyEvent) outcome {
	h, ok := transitions[modeAction{s.mode, keys.Resolve(s.mode, ev)}]
	if !ok {
		return outcomeNone
	}
	return h(s, ev)
}

func (s *State) activate(KeyEvent) outcome {
	switch s.focus.Activation() {
	case ActivateEdit:
		s.mode = ModeEditing
	case ActivateSelect:
		s.mode = ModeSelecting
	case ActivateToggle:
		s.toggle(s.focus)
	}
	return outcomeNone
}

func (s *State) toggle(f Focus) {
	switch f {
	case FocusArrival:
		s.arrival = !s.arrival
	case FocusUbahn:
		s.modes.Ubahn = !s.modes.Ubahn
	case FocusSbahn:
		s.modes.Sbahn = !s.modes.Sbahn
	case FocusTram:
		s.modes.Tram = !s.modes.Tram
	case FocusBus:
		s.modes.Bus = !s.modes.Bus
	}
}

func (s *State) dismiss(KeyEvent) outcome {
	s.fetchErr = nil
	return outcomeNone
}

func (s *State) typeRunes(ev KeyEvent) outcome {
	if s.focus.Editable() {
		s.drafts[s.focus] += string(ev.Runes)
	}
	return outcomeNone
}

func (s *State) erase(KeyEvent) outcome {
	if r := []rune(s.drafts[s.focus]); len(r) > 0 {
		s.drafts[s.focus] = string(r[:len(r)-1])
	}
	return outcomeNone
}

// commit copies the focused draft into its committed value. A draft that does not
// parse sets the field's invalid flag and keeps the machine in Editing.
func (s *State) commit(KeyEvent) outcome {
	draft := strings.TrimSpace(s.drafts[s.focus])

	switch s.focus {
	case FocusStart:
		s.start = s.drafts[FocusStart]

	case FocusDestination:
		s.destination = s.drafts[FocusDestination]

	case FocusDate:
		d, err := time.ParseInLocation(DateLayout, draft, s.when.Location())
		if err != nil {
			logging.Debug("Rejected date", zap.String("draft", draft), zap.Error(err))
			s.dateInvalid = true
			return outcomeNone
		}
		w := s.when
		s.when = time.Date(d.Year(), d.Month(), d.Day(), w.Hour(), w.Minute(), w.Second(), w.Nanosecond(), w.Location())
		s.dateInvalid = false

	case FocusTime:
		t, err := time.Parse(TimeLayout, draft)
		if err != nil {
			logging.Debug("Rejected time", zap.String("draft", draft), zap.Error(err))
			s.timeInvalid = true
			return outcomeNone
		}
		w := s.when
		s.when = time.Date(w.Year(), w.Month(), w.Day(), t.Hour(), t.Minute(), 0, 0, w.Location())
		s.timeInvalid = false
	}

	s.mode = ModeNormal
	return outcomeNone
}

func (s *State) advance(KeyEvent) outcome {
	s.selection = Advance(s.selection, len(s.results))
	return outcomeNone
}

func (s *State) retreat(KeyEvent) outcome {
	s.selection = Retreat(s.selection, len(s.results))
	return outcomeNone
}

func (s *State) leaveSelecting(KeyEvent) outcome {
	s.mode = ModeNormal
	return outcomeNone
}
