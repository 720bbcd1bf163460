// Package ui renders styled output for the one-shot mvg commands.
//
// The interactive planner lives in package tui. The one-shot commands
// (routes, departures, notifications, config init) print once and exit,
// so they use Lipgloss boxes and uitable columns written straight to a
// writer instead of a Bubble Tea program.
//
// # Components
//
//   - Header: command banner showing the operation and its parameters
//   - Result: success, warning and failure boxes
//   - RenderTable: aligned columns for departures, routes and tickers
//   - Confirm: yes/no prompt used before overwriting files
//
// All of them are reached through a Printer:
//
//	p := ui.NewPrinter(cmd.OutOrStdout())
//	p.PrintHeader("Departures", "mvg departures Marienplatz",
//	    ui.Param{Key: "Station", Value: "Marienplatz, München"})
//	p.PrintTable(headers, rows, "No departures")
//
// # Logging
//
// Logging is controlled by MVG_LOG_LEVEL. When unset, zap logging is
// silent so the curated output stays clean.
package ui
