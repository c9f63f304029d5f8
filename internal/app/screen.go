package app

import "fmt"

// Screen names one view of the application. Exactly one is active.
type Screen string

const (
	ScreenHome    Screen = "home"
	ScreenScan    Screen = "scan"
	ScreenQuiz    Screen = "quiz"
	ScreenScore   Screen = "score"
	ScreenAnswer  Screen = "answer"
	ScreenLibrary Screen = "library"
	ScreenHelp    Screen = "help"
)

// Screens lists every screen in menu order.
var Screens = []Screen{
	ScreenHome,
	ScreenScan,
	ScreenQuiz,
	ScreenScore,
	ScreenAnswer,
	ScreenLibrary,
	ScreenHelp,
}

// ParseScreen maps a name to a Screen.
func ParseScreen(name string) (Screen, error) {
	for _, s := range Screens {
		if string(s) == name {
			return s, nil
		}
	}
	return "", fmt.Errorf("unknown screen %q", name)
}

// Navigation reachable with GoTo. The quiz is entered by Capture, the score
// screen first by Submit, and the answer screen by ShowAnswers.
var transitions = map[Screen][]Screen{
	ScreenHome:    {ScreenScan, ScreenHelp, ScreenLibrary},
	ScreenScan:    {ScreenHome},
	ScreenQuiz:    {ScreenScan, ScreenHome, ScreenScore},
	ScreenScore:   {ScreenQuiz, ScreenHome},
	ScreenAnswer:  {ScreenScore, ScreenHome},
	ScreenLibrary: {ScreenHome},
	ScreenHelp:    {ScreenHome},
}

var backOf = map[Screen]Screen{
	ScreenScan:    ScreenHome,
	ScreenQuiz:    ScreenScan,
	ScreenScore:   ScreenQuiz,
	ScreenAnswer:  ScreenScore,
	ScreenLibrary: ScreenHome,
	ScreenHelp:    ScreenHome,
}

func canGo(from, to Screen) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}
