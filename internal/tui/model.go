// Package tui provides the Bubble Tea quiz interface.
package tui

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Nithya059/Tech-Titans-Sathvik-ar-quiz-trainer/internal/app"
	"github.com/Nithya059/Tech-Titans-Sathvik-ar-quiz-trainer/internal/quiz"
	"github.com/Nithya059/Tech-Titans-Sathvik-ar-quiz-trainer/internal/stats"
)

const (
	listFavorites = iota
	listRecent
)

// Model implements the Bubble Tea quiz UI over an app.Controller.
type Model struct {
	ctrl        *app.Controller
	events      chan app.Event
	unsubscribe func()

	width  int
	height int

	snap      app.Snapshot
	errMsg    string
	statsLine string

	spinner spinner.Model
	help    help.Model
	answers viewport.Model

	favTable    table.Model
	recentTable table.Model
	favCount    int
	recentCount int
	listFocus   int
}

var (
	titleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	textStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	footerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	correctStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A"))
	wrongStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Background(lipgloss.Color("#16A34A")).
			Padding(0, 1)
	optionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Background(lipgloss.Color("#2563EB")).
			Padding(0, 1)
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
)

type eventMsg app.Event

type captureDoneMsg struct {
	err error
}

// NewModel constructs the quiz TUI and subscribes it to ctrl.
func NewModel(ctrl *app.Controller) *Model {
	m := &Model{
		ctrl:        ctrl,
		events:      make(chan app.Event, 16),
		spinner:     spinner.New(spinner.WithSpinner(spinner.Dot)),
		help:        help.New(),
		answers:     viewport.New(0, 0),
		favTable:    newListTable(nil, nil, 0, 1),
		recentTable: newListTable(nil, nil, 0, 1),
	}
	m.unsubscribe = ctrl.Subscribe(func(ev app.Event) {
		select {
		case m.events <- ev:
		default:
		}
	})
	m.refresh()
	return m
}

// Close detaches the model from the controller.
func (m *Model) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
}

func waitForEvent(ch <-chan app.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return eventMsg(ev)
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(waitForEvent(m.events), m.spinner.Tick)
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.refresh()
		return m, nil
	case eventMsg:
		m.refresh()
		return m, waitForEvent(m.events)
	case captureDoneMsg:
		if msg.err != nil && !errors.Is(msg.err, app.ErrCameraOff) {
			m.setErr(msg.err)
		}
		m.refresh()
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		m.errMsg = ""
		cmd := m.handleKey(msg)
		m.refresh()
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	ctx := context.Background()
	switch m.snap.Screen {
	case app.ScreenHome:
		switch {
		case key.Matches(msg, keys.Quit):
			return tea.Quit
		case key.Matches(msg, keys.Scan):
			m.setErr(m.ctrl.GoTo(app.ScreenScan))
		case key.Matches(msg, keys.Library):
			m.listFocus = listFavorites
			m.setErr(m.ctrl.GoTo(app.ScreenLibrary))
		case key.Matches(msg, keys.Help):
			m.setErr(m.ctrl.GoTo(app.ScreenHelp))
		}
	case app.ScreenScan:
		switch {
		case key.Matches(msg, keys.CameraOn):
			m.setErr(m.ctrl.StartCamera(ctx))
		case key.Matches(msg, keys.CameraOff):
			m.ctrl.StopCamera()
		case key.Matches(msg, keys.Capture):
			if m.snap.Capturing {
				return nil
			}
			return m.captureCmd()
		case key.Matches(msg, keys.Back):
			m.setErr(m.ctrl.Back())
		}
	case app.ScreenQuiz:
		return m.handleQuizKey(ctx, msg)
	case app.ScreenScore:
		switch {
		case key.Matches(msg, keys.Answers):
			m.setErr(m.ctrl.ShowAnswers(quiz.FilterAll))
		case key.Matches(msg, keys.Back):
			m.setErr(m.ctrl.Back())
		case key.Matches(msg, keys.Home):
			m.setErr(m.ctrl.GoTo(app.ScreenHome))
		}
	case app.ScreenAnswer:
		switch {
		case key.Matches(msg, keys.ShowAll):
			m.setErr(m.ctrl.ShowAnswers(quiz.FilterAll))
		case key.Matches(msg, keys.ShowCorrect):
			m.setErr(m.ctrl.ShowAnswers(quiz.FilterCorrect))
		case key.Matches(msg, keys.ShowWrong):
			m.setErr(m.ctrl.ShowAnswers(quiz.FilterWrong))
		case key.Matches(msg, keys.SaveWrong):
			_, err := m.ctrl.SaveWrongAnswers(ctx)
			m.setErr(err)
		case key.Matches(msg, keys.Back):
			m.setErr(m.ctrl.Back())
		case key.Matches(msg, keys.Home):
			m.setErr(m.ctrl.GoTo(app.ScreenHome))
		default:
			var cmd tea.Cmd
			m.answers, cmd = m.answers.Update(msg)
			return cmd
		}
	case app.ScreenLibrary:
		return m.handleLibraryKey(ctx, msg)
	case app.ScreenHelp:
		if key.Matches(msg, keys.Back) {
			m.setErr(m.ctrl.Back())
		}
	}
	return nil
}

func (m *Model) handleQuizKey(ctx context.Context, msg tea.KeyMsg) tea.Cmd {
	completed := m.snap.SessionState == quiz.StateCompleted.String()
	switch {
	case key.Matches(msg, keys.Option):
		if completed {
			return nil
		}
		option := int(msg.Runes[0] - '1')
		m.setErr(m.ctrl.SelectAnswer(option))
	case key.Matches(msg, keys.Prev):
		m.setErr(m.ctrl.Previous())
	case key.Matches(msg, keys.Next):
		m.setErr(m.ctrl.Next())
	case key.Matches(msg, keys.Submit):
		if completed {
			m.setErr(m.ctrl.GoTo(app.ScreenScore))
			return nil
		}
		if m.snap.Question != nil && m.snap.Question.IsLast {
			_, err := m.ctrl.Submit(ctx)
			m.setErr(err)
		}
	case key.Matches(msg, keys.SaveOne):
		_, err := m.ctrl.SaveQuestion(ctx)
		m.setErr(err)
	case key.Matches(msg, keys.Back):
		m.setErr(m.ctrl.Back())
	case key.Matches(msg, keys.Home):
		m.setErr(m.ctrl.GoTo(app.ScreenHome))
	}
	return nil
}

func (m *Model) handleLibraryKey(ctx context.Context, msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Switch):
		m.listFocus = (m.listFocus + 1) % 2
	case key.Matches(msg, keys.Remove):
		if m.listFocus == listFavorites && m.favCount > 0 {
			m.setErr(m.ctrl.RemoveFavorite(ctx, m.favTable.Cursor()))
		}
		if m.listFocus == listRecent && m.recentCount > 0 {
			m.setErr(m.ctrl.RemoveRecentScan(ctx, m.recentTable.Cursor()))
		}
	case key.Matches(msg, keys.Clear):
		if m.listFocus == listFavorites {
			m.setErr(m.ctrl.ClearFavorites(ctx))
		} else {
			m.setErr(m.ctrl.ClearRecentScans(ctx))
		}
	case key.Matches(msg, keys.Back):
		m.setErr(m.ctrl.Back())
	default:
		var cmd tea.Cmd
		if m.listFocus == listFavorites {
			m.favTable, cmd = m.favTable.Update(msg)
		} else {
			m.recentTable, cmd = m.recentTable.Update(msg)
		}
		return cmd
	}
	return nil
}

func (m *Model) captureCmd() tea.Cmd {
	ctrl := m.ctrl
	return func() tea.Msg {
		return captureDoneMsg{err: ctrl.Capture(context.Background())}
	}
}

func (m *Model) setErr(err error) {
	if err == nil {
		return
	}
	log.Printf("%s: %v", m.snap.Screen, err)
	m.errMsg = err.Error()
}

func (m *Model) refresh() {
	m.snap = m.ctrl.Snapshot()
	switch m.snap.Screen {
	case app.ScreenHome:
		m.loadStatsLine()
	case app.ScreenAnswer:
		m.loadAnswers()
	case app.ScreenLibrary:
		m.loadLibrary()
	}
}

func (m *Model) loadStatsLine() {
	rec, err := m.ctrl.Library().Stats(context.Background())
	if err != nil {
		log.Printf("failed to load stats: %v", err)
		return
	}
	if rec == nil {
		m.statsLine = ""
		return
	}
	m.statsLine = stats.SummaryLine(*rec)
}

// View implements tea.Model.
func (m *Model) View() string {
	body := m.renderBody()
	if m.width == 0 || m.height == 0 {
		return body + "\n\n" + m.renderFooter()
	}
	footer := m.renderFooter()
	footerHeight := lipgloss.Height(footer)
	bodyHeight := m.height - footerHeight
	if bodyHeight < 1 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
	}
	top := lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, body)
	bottom := lipgloss.Place(m.width, footerHeight, lipgloss.Center, lipgloss.Bottom, footer)
	return top + "\n" + bottom
}

func (m *Model) renderFooter() string {
	lines := []string{}
	if m.errMsg != "" {
		lines = append(lines, errorStyle.Render(m.errMsg))
	}
	if m.snap.Screen == app.ScreenHome && m.statsLine != "" {
		lines = append(lines, footerStyle.Render(m.statsLine))
	}
	last := m.snap.Question != nil && m.snap.Question.IsLast
	lines = append(lines, m.help.ShortHelpView(keys.forScreen(m.snap.Screen, last)))
	return strings.Join(lines, "\n")
}

func (m *Model) contentWidth() int {
	if m.width == 0 {
		return 72
	}
	w := int(float64(m.width) * 0.70)
	if w < 20 {
		w = m.width
	}
	return w
}
