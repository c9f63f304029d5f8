package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/Nithya059/Tech-Titans-Sathvik-ar-quiz-trainer/internal/app"
)

type keyMap struct {
	Quit        key.Binding
	Scan        key.Binding
	Library     key.Binding
	Help        key.Binding
	Back        key.Binding
	Home        key.Binding
	CameraOn    key.Binding
	CameraOff   key.Binding
	Capture     key.Binding
	Option      key.Binding
	Prev        key.Binding
	Next        key.Binding
	Submit      key.Binding
	SaveOne     key.Binding
	Answers     key.Binding
	ShowAll     key.Binding
	ShowCorrect key.Binding
	ShowWrong   key.Binding
	SaveWrong   key.Binding
	Switch      key.Binding
	Remove      key.Binding
	Clear       key.Binding
	Up          key.Binding
	Down        key.Binding
}

var keys = keyMap{
	Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Scan:        key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "scan object")),
	Library:     key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "library")),
	Help:        key.NewBinding(key.WithKeys("?", "h"), key.WithHelp("?", "help")),
	Back:        key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),
	Home:        key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "exit to home")),
	CameraOn:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "start camera")),
	CameraOff:   key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "stop camera")),
	Capture:     key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "capture")),
	Option:      key.NewBinding(key.WithKeys("1", "2", "3", "4"), key.WithHelp("1-4", "answer")),
	Prev:        key.NewBinding(key.WithKeys("left", "p"), key.WithHelp("←", "previous")),
	Next:        key.NewBinding(key.WithKeys("right", "n"), key.WithHelp("→", "next")),
	Submit:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
	SaveOne:     key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "save question")),
	Answers:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "view answers")),
	ShowAll:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "all")),
	ShowCorrect: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "correct")),
	ShowWrong:   key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "wrong")),
	SaveWrong:   key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "save wrong")),
	Switch:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch list")),
	Remove:      key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "remove")),
	Clear:       key.NewBinding(key.WithKeys("C"), key.WithHelp("C", "clear list")),
	Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑", "up")),
	Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓", "down")),
}

func (k keyMap) forScreen(s app.Screen, last bool) []key.Binding {
	switch s {
	case app.ScreenHome:
		return []key.Binding{k.Scan, k.Library, k.Help, k.Quit}
	case app.ScreenScan:
		return []key.Binding{k.CameraOn, k.CameraOff, k.Capture, k.Back}
	case app.ScreenQuiz:
		bindings := []key.Binding{k.Option, k.Prev, k.Next}
		if last {
			bindings = append(bindings, k.Submit)
		}
		return append(bindings, k.SaveOne, k.Back, k.Home)
	case app.ScreenScore:
		return []key.Binding{k.Answers, k.Back, k.Home}
	case app.ScreenAnswer:
		return []key.Binding{k.ShowAll, k.ShowCorrect, k.ShowWrong, k.SaveWrong, k.Up, k.Down, k.Back, k.Home}
	case app.ScreenLibrary:
		return []key.Binding{k.Switch, k.Up, k.Down, k.Remove, k.Clear, k.Back}
	default:
		return []key.Binding{k.Back}
	}
}
