package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/muurk/mvg/internal/mvg"
)

// RouteColumns are the headers of the routes table
var RouteColumns = []string{"TIME", "IN", "DURATION", "LINES", "DELAY", "INFO"}

// RouteRow formats a connection as one routes table row, relative to now
func RouteRow(conn mvg.Connection, now time.Time) []string {
	origin := conn.Origin()
	return []string{
		FormatSpan(conn),
		strconv.Itoa(int(origin.PlannedDeparture.Sub(now) / time.Minute)),
		strconv.Itoa(int(conn.Duration() / time.Minute)),
		FormatLines(conn.Parts),
		FormatDelay(origin),
		FormatInfo(conn.Parts),
	}
}

// FormatSpan returns "HH:MM - HH:MM" for departure and arrival
func FormatSpan(conn mvg.Connection) string {
	if len(conn.Parts) == 0 {
		return ""
	}
	return fmt.Sprintf("%s - %s",
		conn.Origin().PlannedDeparture.Local().Format("15:04"),
		conn.Destination().PlannedDeparture.Local().Format("15:04"),
	)
}

// FormatLines lists the distinct line labels in travel order; walks show as "walk"
func FormatLines(parts []mvg.ConnectionPart) string {
	seen := make(map[string]bool, len(parts))
	var labels []string
	for _, p := range parts {
		label := p.Line.Label
		if p.IsWalk() {
			label = "walk"
		}
		if seen[label] {
			continue
		}
		seen[label] = true
		labels = append(labels, label)
	}
	return strings.Join(labels, ", ")
}

// FormatDelay returns the departure delay in minutes or "-" when there is none
func FormatDelay(origin mvg.Stop) string {
	if d := origin.DepartureDelay(); d != 0 {
		return strconv.Itoa(d)
	}
	return "-"
}

// FormatInfo joins the service messages of every leg as "label: message"
func FormatInfo(parts []mvg.ConnectionPart) string {
	var out []string
	for _, p := range parts {
		if len(p.Messages) == 0 {
			continue
		}
		out = append(out, fmt.Sprintf("%s: %s", p.Line.Label, strings.Join(p.Messages, " ")))
	}
	return strings.Join(out, "; ")
}

// DetailLines draws the legs of a connection with their intermediate stops
func DetailLines(conn mvg.Connection) []string {
	var lines []string
	for _, p := range conn.Parts {
		lines = append(lines, fmt.Sprintf("╭─ %s, %s", p.From.Name, clock(p.From.PlannedDeparture)))
		for _, s := range p.IntermediateStops {
			lines = append(lines, fmt.Sprintf("├──── %s, %s", s.Name, clock(s.PlannedDeparture)))
		}
		lines = append(lines, fmt.Sprintf("╰─ %s, %s", p.To.Name, clock(p.To.PlannedDeparture)))
	}
	return lines
}

func clock(t time.Time) string {
	return t.Local().Format("15:04")
}

// DepartureColumns are the headers of the departures table
var DepartureColumns = []string{"TIME", "IN", "LINE", "DESTINATION", "PLATFORM", "DELAY"}

// DepartureRow formats a departure as one table row, relative to now.
// The realtime estimate is preferred over the timetable when present.
func DepartureRow(d mvg.Departure, now time.Time) []string {
	at := d.PlannedDepartureTime.Time
	if d.Realtime && !d.RealtimeDepartureTime.IsZero() {
		at = d.RealtimeDepartureTime.Time
	}

	platform := "-"
	if d.Platform != 0 {
		platform = strconv.Itoa(d.Platform)
	}

	delay := "-"
	switch {
	case d.Cancelled:
		delay = "cancelled"
	case d.DelayInMinutes != 0:
		delay = strconv.Itoa(d.DelayInMinutes)
	}

	line := d.Label
	if d.Sev {
		line += " (SEV)"
	}

	return []string{
		clock(at),
		strconv.Itoa(int(at.Sub(now) / time.Minute)),
		line,
		d.Destination,
		platform,
		delay,
	}
}

// NotificationColumns are the headers of the service tickers table
var NotificationColumns = []string{"LINES", "TITLE", "SINCE"}

// NotificationRow formats a service ticker as one table row
func NotificationRow(n mvg.Notification) []string {
	since := "-"
	if !n.ActiveDuration.FromDate.IsZero() {
		since = n.ActiveDuration.FromDate.Local().Format("02.01. 15:04")
	}
	return []string{strings.Join(n.LineNames(), ", "), n.Title, since}
}
