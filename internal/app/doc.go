// Package app implements the interactive control loop of the route planner.
//
// A single State record holds focus, input mode, draft and committed field values,
// search toggles and the latest result list. It is shared between two activities:
//
//   - the render loop, which calls Loop.Step once per frame to dispatch at most one
//     key press and, on the search key, enqueue a Request
//   - the fetch coordinator, which drains that queue in the background and writes
//     results back with ApplyResults or ApplyFailure
//
// Both sides take the state's mutex for short critical sections only; the lock is
// never held across network I/O.
//
// # Focus and Modes
//
// Focus movement is a static table (NextFocus). Key interpretation depends on the
// input mode:
//
//	Normal     h/j/k/l move focus, i/enter activates, f/space searches, q quits
//	Editing    typed characters edit the draft, esc/enter commits
//	Selecting  j/k move the route cursor with wrap-around, esc/enter leaves
//
// Activating Start, Destination, Date or Time enters Editing, activating the route
// list enters Selecting and activating a toggle flips it in place. A date or time
// draft that does not parse marks the field invalid and keeps Editing open.
//
// # Rendering
//
// Views read State.Snapshot, a consistent copy taken under the lock, so a frame
// shows either the old result list or the new one, never a mix.
package app
