package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Nithya059/Tech-Titans-Sathvik-ar-quiz-trainer/internal/library"
	"github.com/Nithya059/Tech-Titans-Sathvik-ar-quiz-trainer/internal/model"
	"github.com/Nithya059/Tech-Titans-Sathvik-ar-quiz-trainer/internal/quiz"
	"github.com/Nithya059/Tech-Titans-Sathvik-ar-quiz-trainer/internal/stats"
)

var quizSaveWrong bool

func newQuizCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quiz <object>",
		Short: "Answer the safety quiz for an object in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  runQuizCmd,
	}
	cmd.Flags().BoolVar(&quizSaveWrong, "save-wrong", false, "save wrong answers to favourites after submitting")
	return cmd
}

func runQuizCmd(cmd *cobra.Command, args []string) error {
	if err := resolveOptions(cmd); err != nil {
		return err
	}
	lib, closeStore, err := openLibrary()
	if err != nil {
		return err
	}
	defer closeStore()
	return runTextQuiz(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), lib, args[0], quizSaveWrong)
}

// runTextQuiz asks every question once in order. Blank input skips a question.
func runTextQuiz(ctx context.Context, in io.Reader, out io.Writer, lib *library.Manager, object string, saveWrong bool) error {
	if ctx == nil {
		ctx = context.Background()
	}
	object = strings.TrimSpace(object)
	if object == "" {
		return fmt.Errorf("object must not be empty")
	}
	if _, err := lib.RecordScan(ctx, object); err != nil {
		logErrf("failed to record scan: %v\n", err)
	}

	session := quiz.NewSession()
	if err := session.Start(object, quiz.Generate(object)); err != nil {
		return fmt.Errorf("failed to start quiz: %w", err)
	}

	reader := bufio.NewReader(in)
	for i := 0; i < session.Len(); i++ {
		q, _ := session.Question(i)
		if err := printQuestion(out, i+1, session.Len(), q); err != nil {
			return err
		}
		option, err := readOption(reader, out)
		if err != nil {
			return err
		}
		if option != quiz.Unanswered {
			if err := session.SelectAnswer(option); err != nil {
				return fmt.Errorf("failed to record answer: %w", err)
			}
		}
		if !session.IsLast() {
			if err := session.Next(); err != nil {
				return fmt.Errorf("failed to advance quiz: %w", err)
			}
		}
	}

	score, err := session.Submit()
	if err != nil {
		return fmt.Errorf("failed to submit quiz: %w", err)
	}
	if _, err := fmt.Fprintln(out, stats.ScoreLine(score)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	rec, err := lib.RecordCompletion(ctx, score)
	if err != nil {
		logErrf("failed to save stats: %v\n", err)
	} else if _, err := fmt.Fprintln(out, stats.SummaryLine(rec)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	for _, item := range session.Review(quiz.FilterWrong) {
		if _, err := fmt.Fprintf(out, "\nQ%d. %s\n   Your answer: %s\n   Correct answer: %s\n   Why: %s\n",
			item.Number, item.Question, item.UserAnswer, item.CorrectAnswer, item.Description); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}

	if saveWrong {
		n, err := lib.SaveWrongAnswers(ctx, session)
		if err != nil {
			return fmt.Errorf("failed to save wrong answers: %w", err)
		}
		if _, err := fmt.Fprintf(out, "\nSaved %d question(s) to favourites.\n", n); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func printQuestion(out io.Writer, number, total int, q model.Question) error {
	lines := []string{"", fmt.Sprintf("Question %d of %d", number, total), q.Text}
	for i, opt := range q.Options {
		lines = append(lines, fmt.Sprintf("  %d. %s", i+1, opt))
	}
	if _, err := fmt.Fprintln(out, strings.Join(lines, "\n")); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// readOption prompts until it gets 1-4 or a blank line. EOF counts as blank.
func readOption(r *bufio.Reader, out io.Writer) (int, error) {
	for {
		if _, err := fmt.Fprintf(out, "Answer (1-%d, enter to skip): ", model.OptionCount); err != nil {
			return 0, fmt.Errorf("failed to write output: %w", err)
		}
		line, err := r.ReadString('\n')
		if err != nil && err != io.EOF {
			return 0, fmt.Errorf("failed to read answer: %w", err)
		}
		line = strings.TrimSpace(line)
		if line == "" {
			return quiz.Unanswered, nil
		}
		n, convErr := strconv.Atoi(line)
		if convErr == nil && n >= 1 && n <= model.OptionCount {
			return n - 1, nil
		}
		if err == io.EOF {
			return quiz.Unanswered, nil
		}
		if _, err := fmt.Fprintf(out, "Please enter a number between 1 and %d.\n", model.OptionCount); err != nil {
			return 0, fmt.Errorf("failed to write output: %w", err)
		}
	}
}
