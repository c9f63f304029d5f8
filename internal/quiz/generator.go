// Package quiz builds safety quizzes and tracks a quiz attempt.
package quiz

import (
	"fmt"
	"strings"

	"github.com/Nithya059/Tech-Titans-Sathvik-ar-quiz-trainer/internal/model"
)

// QuestionCount is the number of questions Generate returns.
const QuestionCount = 5

// template holds one question pattern. Every %[1]s is replaced by the object label.
// The first option is the correct one.
type template struct {
	text    string
	options [model.OptionCount]string
}

var templates = [QuestionCount]template{
	{
		text: "What is the safe use of a %[1]s?",
		options: [model.OptionCount]string{
			"Using the %[1]s correctly",
			"Using the %[1]s randomly",
			"Ignoring all safety rules",
			"Throwing the %[1]s around",
		},
	},
	{
		text: "Which precaution is important while handling a %[1]s?",
		options: [model.OptionCount]string{
			"Wear proper lab PPE such as gloves and goggles",
			"Use it with wet or slippery hands",
			"Share it without cleaning",
			"Keep it near the edge of the table",
		},
	},
	{
		text: "When should a %[1]s NOT be used?",
		options: [model.OptionCount]string{
			"If it is cracked, damaged or unsafe",
			"Whenever a friend asks",
			"Whenever you are bored",
			"Whenever it looks shiny",
		},
	},
	{
		text: "Where should a %[1]s be stored after use?",
		options: [model.OptionCount]string{
			"In its proper storage area or rack",
			"On the floor",
			"In a random bag",
			"On top of unstable objects",
		},
	},
	{
		text: "Why should a %[1]s be handled gently?",
		options: [model.OptionCount]string{
			"To prevent spills, breakage and injuries",
			"Just for fun",
			"There is no reason",
			"To waste more time",
		},
	},
}

const explanationTemplate = "The %s must be handled carefully to avoid accidents and to follow proper laboratory safety rules."

// Generate returns the five safety questions for label.
// The correct option is always at index 0.
func Generate(label string) []model.Question {
	obj := strings.ToLower(label)
	why := Explanation(obj)
	questions := make([]model.Question, 0, len(templates))
	for _, tpl := range templates {
		q := model.Question{
			Text:         fill(tpl.text, obj),
			CorrectIndex: 0,
			Explanation:  why,
		}
		for i, opt := range tpl.options {
			q.Options[i] = fill(opt, obj)
		}
		questions = append(questions, q)
	}
	return questions
}

// Explanation returns the shared explanation text for an already lower-cased label.
func Explanation(obj string) string {
	return fmt.Sprintf(explanationTemplate, obj)
}

func fill(pattern, obj string) string {
	if !strings.Contains(pattern, "%[1]s") {
		return pattern
	}
	return fmt.Sprintf(pattern, obj)
}
