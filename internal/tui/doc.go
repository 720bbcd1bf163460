// Package tui implements the full-screen terminal interface of the route planner.
//
// The package is a thin driver around app.Loop built on Bubble Tea. Every poll tick
// (tea.Tick, 50ms by default) runs one idle loop iteration and every key press runs
// one iteration with that key. Rendering is read-only: View takes a State snapshot and
// draws it.
//
// # Layout
//
//	┌ Start ──────────────────┐┌ Destination ────────────┐
//	┌ Date ──┐┌ Time ──┐┌ Arrival ┐┌ U-Bahn ┐┌ S-Bahn ┐┌ Tram ┐┌ Bus ┐
//	┌ Routes (bubbles/table) ────────────┐┌ Details ──────┐
//	│ TIME  IN  DURATION  LINES  DELAY    ││ legs and      │
//	└────────────────────────────────────┘│ intermediate  │
//	┌ Notifications ─────────────────────┐│ stops         │
//	└────────────────────────────────────┘└───────────────┘
//	 MODE  spinner  help
//
// Invalid date or time input and failed searches replace the routes area with an
// inline error panel.
//
// # Framework Components
//
//   - bubbles/table: routes list
//   - bubbles/help: key bindings of the current input mode
//   - bubbles/spinner: search in progress
//   - lipgloss: styling and layout
//   - muesli/reflow: word-wrapping service messages
//
// # Usage Example
//
//	state := app.NewState(time.Now(), app.DefaultDefaults())
//	queue := make(chan app.Request, fetch.DefaultQueueSize)
//	loop := app.NewLoop(state, app.DefaultKeyMap(), queue)
//	coordinator := fetch.New(mvg.NewClient(), state, queue)
//
//	if err := tui.Run(ctx, loop, coordinator, tui.Options{AltScreen: true}); err != nil {
//	    return err
//	}
package tui
