package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/muurk/mvg/internal/app"
	"github.com/muurk/mvg/internal/fetch"
	"github.com/muurk/mvg/internal/logging"
)

// DefaultPollInterval is how often the render loop ticks without input
const DefaultPollInterval = 50 * time.Millisecond

// RefreshMsg asks the program to redraw after a background write-back
type RefreshMsg struct{}

type tickMsg time.Time

// Options configure the terminal program
type Options struct {
	PollInterval time.Duration
	AltScreen    bool
	Now          func() time.Time // Clock used for the "IN" column (default time.Now)
}

// Model drives the render loop from Bubble Tea. It holds no application state of
// its own beyond terminal size; everything it draws comes from a State snapshot.
type Model struct {
	loop         *app.Loop
	help         help.Model
	spinner      spinner.Model
	pollInterval time.Duration
	now          func() time.Time
	quitting     bool

	Width  int
	Height int
}

// NewModel creates the planner screen around loop
func NewModel(loop *app.Loop, opts Options) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	interval := opts.PollInterval
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	return Model{
		loop:         loop,
		help:         help.New(),
		spinner:      s,
		pollInterval: interval,
		now:          now,
	}
}

// Init starts the poll ticker and the spinner
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.tick(), m.spinner.Tick)
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.pollInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update feeds key presses and idle ticks into the render loop
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.help.Width = msg.Width - 4
		return m, nil

	case tickMsg:
		m.loop.Step(nil)
		return m, m.tick()

	case tea.KeyMsg:
		ev := keyEvent(msg)
		if res := m.loop.Step(&ev); res.Quit {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case RefreshMsg:
		return m, nil
	}

	return m, nil
}

// keyEvent converts a Bubble Tea key message. Only plain character keys carry runes.
func keyEvent(msg tea.KeyMsg) app.KeyEvent {
	ev := app.KeyEvent{Name: msg.String()}
	if (msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace) && !msg.Alt {
		ev.Runes = msg.Runes
		if msg.Type == tea.KeySpace && len(ev.Runes) == 0 {
			ev.Runes = []rune{' '}
		}
	}
	return ev
}

// Run starts the fetch coordinator and the terminal program and blocks until the user
// quits. Background write-backs trigger a redraw.
func Run(ctx context.Context, loop *app.Loop, coordinator *fetch.Coordinator, opts Options) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	programOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if opts.AltScreen {
		programOpts = append(programOpts, tea.WithAltScreen())
	}
	program := tea.NewProgram(NewModel(loop, opts), programOpts...)

	coordinator.OnUpdate = func() { program.Send(RefreshMsg{}) }
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := coordinator.Run(ctx); err != nil && ctx.Err() == nil {
			logging.Error("Fetch coordinator stopped", zap.Error(err))
		}
	}()

	_, err := program.Run()
	cancel()
	<-done
	return err
}
