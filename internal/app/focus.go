package app

// Focus is the field or pane that currently receives directional and activation keys
type Focus int

const (
	FocusStart Focus = iota
	FocusDestination
	FocusDate
	FocusTime
	FocusArrival
	FocusUbahn
	FocusSbahn
	FocusTram
	FocusBus
	FocusResults
)

// Foci lists every focus in layout order
var Foci = []Focus{
	FocusStart, FocusDestination,
	FocusDate, FocusTime, FocusArrival, FocusUbahn, FocusSbahn, FocusTram, FocusBus,
	FocusResults,
}

// String returns the label shown for the focus
func (f Focus) String() string {
	switch f {
	case FocusStart:
		return "Start"
	case FocusDestination:
		return "Destination"
	case FocusDate:
		return "Date"
	case FocusTime:
		return "Time"
	case FocusArrival:
		return "Arrival"
	case FocusUbahn:
		return "U-Bahn"
	case FocusSbahn:
		return "S-Bahn"
	case FocusTram:
		return "Tram"
	case FocusBus:
		return "Bus"
	case FocusResults:
		return "Routes"
	default:
		return "Unknown"
	}
}

// Direction is one of the four movement keys
type Direction int

const (
	DirLeft Direction = iota
	DirDown
	DirUp
	DirRight
)

// Directions lists every direction
var Directions = []Direction{DirLeft, DirDown, DirUp, DirRight}

// String returns the vim key bound to the direction
func (d Direction) String() string {
	switch d {
	case DirLeft:
		return "h"
	case DirDown:
		return "j"
	case DirUp:
		return "k"
	case DirRight:
		return "l"
	default:
		return "?"
	}
}

type focusMove struct {
	from Focus
	dir  Direction
}

// focusGraph holds every defined move. A missing entry is a boundary.
//
//	Start ─ Destination
//	Date ─ Time ─ Arrival ─ U-Bahn ─ S-Bahn ─ Tram ─ Bus
//	Routes
var focusGraph = map[focusMove]Focus{
	{FocusStart, DirRight}:      FocusDestination,
	{FocusStart, DirDown}:       FocusResults,
	{FocusDestination, DirLeft}: FocusStart,
	{FocusDestination, DirDown}: FocusResults,

	{FocusDate, DirRight}:    FocusTime,
	{FocusTime, DirRight}:    FocusArrival,
	{FocusArrival, DirRight}: FocusUbahn,
	{FocusUbahn, DirRight}:   FocusSbahn,
	{FocusSbahn, DirRight}:   FocusTram,
	{FocusTram, DirRight}:    FocusBus,

	{FocusTime, DirLeft}:    FocusDate,
	{FocusArrival, DirLeft}: FocusTime,
	{FocusUbahn, DirLeft}:   FocusArrival,
	{FocusSbahn, DirLeft}:   FocusUbahn,
	{FocusTram, DirLeft}:    FocusSbahn,
	{FocusBus, DirLeft}:     FocusTram,

	{FocusDate, DirUp}:    FocusStart,
	{FocusTime, DirUp}:    FocusStart,
	{FocusArrival, DirUp}: FocusDestination,
	{FocusUbahn, DirUp}:   FocusDestination,
	{FocusSbahn, DirUp}:   FocusDestination,
	{FocusTram, DirUp}:    FocusDestination,
	{FocusBus, DirUp}:     FocusDestination,

	{FocusDate, DirDown}:    FocusResults,
	{FocusTime, DirDown}:    FocusResults,
	{FocusArrival, DirDown}: FocusResults,
	{FocusUbahn, DirDown}:   FocusResults,
	{FocusSbahn, DirDown}:   FocusResults,
	{FocusTram, DirDown}:    FocusResults,
	{FocusBus, DirDown}:     FocusResults,

	{FocusResults, DirUp}: FocusDate,
}

// NextFocus returns the focus reached by moving from current in dir.
// Moves off the edge of the layout leave the focus unchanged.
func NextFocus(current Focus, dir Direction) Focus {
	if next, ok := focusGraph[focusMove{current, dir}]; ok {
		return next
	}
	return current
}

// Activation is what the activation key does on a focus
type Activation int

const (
	ActivateEdit Activation = iota
	ActivateSelect
	ActivateToggle
)

// Activation classifies the focus by what the activation key does to it
func (f Focus) Activation() Activation {
	switch f {
	case FocusStart, FocusDestination, FocusDate, FocusTime:
		return ActivateEdit
	case FocusResults:
		return ActivateSelect
	default:
		return ActivateToggle
	}
}

// Editable reports whether the focus has a draft buffer
func (f Focus) Editable() bool {
	return f.Activation() == ActivateEdit
}
