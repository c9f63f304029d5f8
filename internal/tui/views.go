package tui

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/Nithya059/Tech-Titans-Sathvik-ar-quiz-trainer/internal/app"
	"github.com/Nithya059/Tech-Titans-Sathvik-ar-quiz-trainer/internal/model"
	"github.com/Nithya059/Tech-Titans-Sathvik-ar-quiz-trainer/internal/quiz"
	"github.com/Nithya059/Tech-Titans-Sathvik-ar-quiz-trainer/internal/stats"
)

const (
	emptyFavorites = "No favourite questions saved yet."
	emptyRecent    = "No objects scanned yet."
)

var helpLines = []string{
	"1. Open Scan and start the camera.",
	"2. Hold a lab object steadily in front of it and capture.",
	"3. Answer the five safety questions generated for the detected object.",
	"4. Submit on the last question to see your score and statistics.",
	"5. Review answers, and save wrong ones to your library for revision.",
}

func (m *Model) renderBody() string {
	switch m.snap.Screen {
	case app.ScreenScan:
		return m.renderScan()
	case app.ScreenQuiz:
		return m.renderQuiz()
	case app.ScreenScore:
		return m.renderScore()
	case app.ScreenAnswer:
		return m.renderAnswers()
	case app.ScreenLibrary:
		return m.renderLibrary()
	case app.ScreenHelp:
		return m.renderHelp()
	default:
		return m.renderHome()
	}
}

func (m *Model) renderHome() string {
	lines := []string{
		titleStyle.Render("AR Safety Quiz Trainer"),
		"",
		textStyle.Render("Scan a lab object and test your safety knowledge about it."),
	}
	if m.statsLine == "" {
		lines = append(lines, "", mutedStyle.Render("No quizzes completed yet."))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderScan() string {
	camera := "Camera: off"
	if m.snap.CameraOn {
		camera = "Camera: on"
	}
	lines := []string{titleStyle.Render("Scan Object"), "", mutedStyle.Render(camera)}
	if m.snap.Status != "" {
		lines = append(lines, statusStyle.Render(m.snap.Status))
	}
	if m.snap.Capturing {
		lines = append(lines, m.spinner.View()+" Detecting...")
	} else if m.snap.Prediction != "" {
		lines = append(lines, textStyle.Render(m.snap.Prediction))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderQuiz() string {
	q := m.snap.Question
	if q == nil {
		return mutedStyle.Render("No quiz started.")
	}
	width := m.contentWidth()
	lines := []string{
		titleStyle.Render("Quiz – " + m.snap.Object),
		mutedStyle.Render(fmt.Sprintf("Question %d of %d", q.Number, q.Total)),
		"",
		textStyle.Render(strings.Join(wrapText(q.Text, width), "\n")),
		"",
	}
	for i, opt := range q.Options {
		label := wrapIndented(strconv.Itoa(i+1)+". ", opt, width-2)
		if i == q.Selected {
			lines = append(lines, selectedStyle.Render(label))
		} else {
			lines = append(lines, optionStyle.Render(label))
		}
	}
	if m.snap.SessionState == quiz.StateCompleted.String() {
		lines = append(lines, "", mutedStyle.Render("Quiz submitted. Press enter to return to your score."))
	}
	if m.snap.Status == app.StatusQuestionSaved {
		lines = append(lines, "", statusStyle.Render(m.snap.Status))
	}
	return lipgloss.NewStyle().Width(width).Render(strings.Join(lines, "\n"))
}

func (m *Model) renderScore() string {
	lines := []string{titleStyle.Render("Result – " + m.snap.Object), ""}
	if m.snap.Score != nil {
		lines = append(lines, textStyle.Render(stats.ScoreLine(*m.snap.Score)))
	}
	if m.snap.Stats != nil {
		lines = append(lines, mutedStyle.Render(stats.SummaryLine(*m.snap.Stats)))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderAnswers() string {
	tabs := []string{}
	for _, f := range []quiz.Filter{quiz.FilterAll, quiz.FilterCorrect, quiz.FilterWrong} {
		name := strings.ToUpper(string(f[:1])) + string(f[1:])
		if f == m.snap.Filter {
			tabs = append(tabs, activeNavStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveNavStyle.Render(name))
		}
	}
	header := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
	parts := []string{header, m.answers.View()}
	if m.snap.Status == app.StatusWrongSaved || m.snap.Status == app.StatusNothingWrong {
		parts = append(parts, statusStyle.Render(m.snap.Status))
	}
	return strings.Join(parts, "\n")
}

func (m *Model) loadAnswers() {
	width := m.contentWidth()
	m.answers.Width = width
	m.answers.Height = m.height - 8
	if m.answers.Height < 3 {
		m.answers.Height = 10
	}
	m.answers.SetContent(renderReview(m.snap.Review, width))
}

func renderReview(items []quiz.ReviewItem, width int) string {
	if len(items) == 0 {
		return mutedStyle.Render("Nothing to show for this filter.")
	}
	blocks := make([]string, 0, len(items))
	for _, item := range items {
		mark := correctStyle.Render("✔")
		if !item.Correct {
			mark = wrongStyle.Render("✘")
		}
		lines := []string{
			mark + " " + textStyle.Render(wrapIndented(fmt.Sprintf("Q%d. ", item.Number), item.Question, width-2)),
			wrapIndented("   Your answer: ", item.UserAnswer, width),
			wrapIndented("   Correct answer: ", item.CorrectAnswer, width),
			mutedStyle.Render(wrapIndented("   Why: ", item.Description, width)),
		}
		blocks = append(blocks, strings.Join(lines, "\n"))
	}
	return strings.Join(blocks, "\n\n")
}

func (m *Model) renderLibrary() string {
	favTitle := "Favourite questions"
	recentTitle := "Recently scanned"
	if m.listFocus == listFavorites {
		favTitle = activeNavStyle.Render(favTitle)
		recentTitle = inactiveNavStyle.Render(recentTitle)
	} else {
		favTitle = inactiveNavStyle.Render(favTitle)
		recentTitle = activeNavStyle.Render(recentTitle)
	}
	fav := mutedStyle.Render(emptyFavorites)
	if m.favCount > 0 {
		fav = m.favTable.View()
	}
	recent := mutedStyle.Render(emptyRecent)
	if m.recentCount > 0 {
		recent = m.recentTable.View()
	}
	return strings.Join([]string{favTitle, fav, "", recentTitle, recent}, "\n")
}

func (m *Model) loadLibrary() {
	ctx := context.Background()
	lib := m.ctrl.Library()
	width := m.contentWidth()
	height := (m.height - 12) / 2
	if height < 3 {
		height = 5
	}

	favs, err := lib.Favorites(ctx)
	if err != nil {
		log.Printf("failed to load favourites: %v", err)
	}
	recent, err := lib.RecentScans(ctx)
	if err != nil {
		log.Printf("failed to load recent scans: %v", err)
	}
	favCursor := m.favTable.Cursor()
	recentCursor := m.recentTable.Cursor()

	m.favCount = len(favs)
	m.recentCount = len(recent)
	m.favTable = newListTable(favoriteColumns(width), favoriteRows(favs), width, height)
	m.recentTable = newListTable(recentColumns(width), recentRows(recent), width, height)
	if m.favCount > 0 {
		m.favTable.SetCursor(clampCursor(favCursor, m.favCount))
	}
	if m.recentCount > 0 {
		m.recentTable.SetCursor(clampCursor(recentCursor, m.recentCount))
	}
	if m.listFocus == listFavorites {
		m.favTable.Focus()
	} else {
		m.recentTable.Focus()
	}
}

func clampCursor(cursor, n int) int {
	if cursor >= n {
		cursor = n - 1
	}
	if cursor < 0 {
		cursor = 0
	}
	return cursor
}

func favoriteColumns(width int) []table.Column {
	rest := width - 4 - 12 - 3
	if rest < 20 {
		rest = 20
	}
	return []table.Column{
		{Title: "#", Width: 3},
		{Title: "Object", Width: 12},
		{Title: "Question", Width: rest * 3 / 5},
		{Title: "Correct answer", Width: rest - rest*3/5},
	}
}

func favoriteRows(favs []model.FavoriteEntry) []table.Row {
	rows := make([]table.Row, 0, len(favs))
	for i, f := range favs {
		rows = append(rows, table.Row{strconv.Itoa(i + 1), f.Object, f.Question, f.Answer})
	}
	return rows
}

func recentColumns(width int) []table.Column {
	rest := width - 4 - 22 - 2
	if rest < 10 {
		rest = 10
	}
	return []table.Column{
		{Title: "#", Width: 3},
		{Title: "Time", Width: 22},
		{Title: "Object", Width: rest},
	}
}

func recentRows(recent []model.RecentScanEntry) []table.Row {
	rows := make([]table.Row, 0, len(recent))
	for i, r := range recent {
		rows = append(rows, table.Row{strconv.Itoa(i + 1), r.Time, r.Object})
	}
	return rows
}

func newListTable(columns []table.Column, rows []table.Row, width, height int) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(maxInt(1, height)),
	)
	if width > 0 {
		t.SetWidth(width)
	}
	t.SetStyles(listTableStyles())
	return t
}

func listTableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}

func (m *Model) renderHelp() string {
	lines := []string{titleStyle.Render("How to use"), ""}
	width := m.contentWidth()
	for _, l := range helpLines {
		lines = append(lines, textStyle.Render(wrapIndented("", l, width)))
	}
	return strings.Join(lines, "\n")
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
