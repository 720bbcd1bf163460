package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/muurk/mvg/internal/app"
	"github.com/muurk/mvg/internal/fetch"
	"github.com/muurk/mvg/internal/mvg"
	"github.com/muurk/mvg/internal/urls"
)

// Column shares of the routes table, in percent
var routeColumnShares = []int{20, 10, 14, 20, 10, 26}

// Option row shares: Date, Time, Arrival, U-Bahn, S-Bahn, Tram, Bus
var optionShares = []int{25, 25, 10, 10, 10, 10, 10}

// View renders the planner from a consistent snapshot of the shared state
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.Width == 0 || m.Height == 0 {
		return "Loading..."
	}
	if m.Width < MinTerminalWidth || m.Height < MinTerminalHeight {
		return fmt.Sprintf("Terminal too small (%dx%d), need at least %dx%d",
			m.Width, m.Height, MinTerminalWidth, MinTerminalHeight)
	}

	snap := m.loop.State().Snapshot()
	width := m.Width - 4
	// header, footer and outer border take six rows
	height := m.Height - 6

	top := lipgloss.JoinVertical(lipgloss.Left,
		m.renderInputs(snap, width),
		m.renderOptions(snap, width),
	)
	bodyHeight := height - lipgloss.Height(top)

	var body string
	if panel := m.renderErrorPanel(snap, width); panel != "" {
		body = panel
	} else {
		body = m.renderBody(snap, width, bodyHeight)
	}

	content := lipgloss.JoinVertical(lipgloss.Left, top, body)
	return RenderApplicationContainer(content, m.renderFooter(snap), m.Width, m.Height)
}

func (m Model) renderInputs(snap app.Snapshot, width int) string {
	half := width / 2
	return lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderField(snap, app.FocusStart, snap.Drafts[app.FocusStart], half, 1),
		m.renderField(snap, app.FocusDestination, snap.Drafts[app.FocusDestination], width-half, 1),
	)
}

func (m Model) renderOptions(snap app.Snapshot, width int) string {
	values := []string{
		snap.Drafts[app.FocusDate],
		snap.Drafts[app.FocusTime],
		checkbox(snap.Arrival),
		checkbox(snap.Modes.Ubahn),
		checkbox(snap.Modes.Sbahn),
		checkbox(snap.Modes.Tram),
		checkbox(snap.Modes.Bus),
	}
	foci := []app.Focus{
		app.FocusDate, app.FocusTime, app.FocusArrival,
		app.FocusUbahn, app.FocusSbahn, app.FocusTram, app.FocusBus,
	}

	widths := make([]int, len(foci))
	used := 0
	for i := range foci {
		widths[i] = width * optionShares[i] / 100
		if i == len(foci)-1 {
			widths[i] = width - used
		}
		used += widths[i]
	}

	// Narrow boxes wrap; render twice so every box in the row has the same height
	lines := 1
	for i, f := range foci {
		if h := lipgloss.Height(m.renderField(snap, f, values[i], widths[i], 0)) - 2; h > lines {
			lines = h
		}
	}

	boxes := make([]string, len(foci))
	for i, f := range foci {
		boxes[i] = m.renderField(snap, f, values[i], widths[i], lines)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, boxes...)
}

// renderField draws one bordered field. outer includes the border; lines is the
// inner height (0 = as tall as the content).
func (m Model) renderField(snap app.Snapshot, f app.Focus, value string, outer, lines int) string {
	focused := snap.Focus == f
	editing := focused && snap.Mode == app.ModeEditing
	if editing {
		value += "█"
	}
	style := fieldStyle(focused, editing).Width(outer - 2)
	if lines > 0 {
		style = style.Height(lines)
	}
	return style.Render(FieldTitleStyle.Render(f.String()) + " " + value)
}

func checkbox(on bool) string {
	if on {
		return "✓"
	}
	return "✗"
}

// renderBody lays out routes and notifications on the left and details on the right
func (m Model) renderBody(snap app.Snapshot, width, height int) string {
	leftWidth := width * 70 / 100
	rightWidth := width - leftWidth

	notesHeight := height / 4
	if notesHeight < 3 {
		notesHeight = 3
	}
	tableHeight := height - notesHeight

	left := lipgloss.JoinVertical(lipgloss.Left,
		m.renderRoutes(snap, leftWidth, tableHeight),
		m.renderNotifications(snap, leftWidth, notesHeight),
	)
	return lipgloss.JoinHorizontal(lipgloss.Top, left, m.renderDetails(snap, rightWidth, height))
}

func (m Model) renderRoutes(snap app.Snapshot, outer, height int) string {
	inner := outer - 4

	columns := make([]table.Column, len(RouteColumns))
	for i, title := range RouteColumns {
		columns[i] = table.Column{Title: title, Width: inner*routeColumnShares[i]/100 - 2}
	}

	now := m.now()
	rows := make([]table.Row, len(snap.Results))
	for i, conn := range snap.Results {
		rows[i] = table.Row(RouteRow(conn, now))
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(max(height-3, 1)),
		table.WithFocused(snap.Mode == app.ModeSelecting),
	)

	styles := table.DefaultStyles()
	styles.Header = styles.Header.Inherit(TableHeaderStyle)
	if snap.Selection >= 0 {
		styles.Selected = TableSelectedStyle
		t.SetCursor(snap.Selection)
	} else {
		styles.Selected = lipgloss.NewStyle()
	}
	t.SetStyles(styles)

	focused := snap.Focus == app.FocusResults
	return fieldStyle(focused, focused && snap.Mode == app.ModeSelecting).
		Width(outer - 2).
		Height(height - 2).
		Render(t.View())
}

func (m Model) renderNotifications(snap app.Snapshot, outer, height int) string {
	text := ""
	if conn, ok := snap.Selected(); ok {
		text = wordwrap.String(FormatInfo(conn.Parts), outer-4)
	}
	return FieldStyle.
		Width(outer - 2).
		Height(height - 2).
		MaxHeight(height).
		Render(FieldTitleStyle.Render("Notifications") + "\n" + text)
}

func (m Model) renderDetails(snap app.Snapshot, outer, height int) string {
	var lines []string
	if conn, ok := snap.Selected(); ok {
		lines = DetailLines(conn)
	}
	// Keep the pane inside its box; the first row is the title
	if limit := height - 3; limit >= 0 && len(lines) > limit {
		lines = lines[:limit]
	}
	return FieldStyle.
		Width(outer - 2).
		Height(height - 2).
		MaxHeight(height).
		Render(FieldTitleStyle.Render("Details") + "\n" + strings.Join(lines, "\n"))
}

// renderErrorPanel shows validation and search failures inline in place of the routes
func (m Model) renderErrorPanel(snap app.Snapshot, width int) string {
	var title, message, hint string
	switch {
	case snap.DateInvalid:
		title = "Date Error"
		message = "Please enter a valid date"
		hint = "Format: " + app.DateLayout + ", e.g. 01.06.2024"
	case snap.TimeInvalid:
		title = "Time Error"
		message = "Please enter a valid time"
		hint = "Format: " + app.TimeLayout + ", e.g. 17:05"
	case snap.FetchErr != nil:
		title = "Search Failed"
		message, hint = describeFetchError(snap.FetchErr)
		hint += "\n\nPress esc to dismiss."
	default:
		return ""
	}

	panelWidth := SafePanelWidth(64, width)
	body := lipgloss.JoinVertical(lipgloss.Left,
		"✗ "+title,
		"",
		wordwrap.String(message, panelWidth-6),
		"",
		HintStyle.Render(hint),
	)
	return ErrorBoxStyle.Width(panelWidth).Render(body)
}

func describeFetchError(err error) (string, string) {
	var resErr *fetch.ResolutionError
	switch {
	case errors.As(err, &resErr):
		return resErr.Error(), "Check the spelling or try a nearby station."
	case errors.Is(err, app.ErrQueueFull):
		return err.Error(), "Wait for the running search to finish."
	case mvg.IsNetworkError(err), mvg.IsHTTPError(err):
		return mvg.ShortMessage(err), mvg.TroubleshootingHint(err) + "\nService status: " + urls.ServiceStatus
	case mvg.IsParseError(err):
		return mvg.ShortMessage(err), mvg.TroubleshootingHint(err) + "\nWeb planner: " + urls.JourneyPlanner
	default:
		return mvg.ShortMessage(err), mvg.TroubleshootingHint(err)
	}
}

func (m Model) renderFooter(snap app.Snapshot) string {
	status := ModeStyle.Render(snap.Mode.String())
	if snap.Busy {
		status += " " + m.spinner.View() + " Fetching routes..."
	} else if n := len(snap.Results); n > 0 {
		status += StatusBarStyle.Render(fmt.Sprintf(" %d routes", n))
	}
	return status + "  " + m.help.View(m.loop.Keys().Help(snap.Mode))
}
