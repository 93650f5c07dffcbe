package flows

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
)

type GenerateQuizInput struct {
	LearningTopic string `json:"learningTopic"`
}

type QuizQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
	IsBonus       bool     `json:"isBonus"`
}

type GenerateQuizOutput struct {
	Questions []QuizQuestion `json:"questions"`
}

func (f *Flows) GenerateQuiz(ctx context.Context, in GenerateQuizInput) (GenerateQuizOutput, error) {
	return f.quiz.Invoke(ctx, in)
}

const quizOptions = 4

func checkQuiz(out GenerateQuizOutput) error {
	if len(out.Questions) == 0 {
		return errors.New("quiz has no questions")
	}
	bonus := 0
	for i, q := range out.Questions {
		if len(q.Options) != quizOptions {
			return fmt.Errorf("question %d has %d options, want %d", i+1, len(q.Options), quizOptions)
		}
		if !slices.Contains(q.Options, q.CorrectAnswer) {
			return fmt.Errorf("question %d: correct answer is not one of its options", i+1)
		}
		if q.IsBonus {
			bonus++
		}
	}
	if bonus == 0 {
		return errors.New("quiz has no bonus question")
	}
	return nil
}

func adviseQuiz(out GenerateQuizOutput) []string {
	var notes []string
	if n := len(out.Questions); n != 10 {
		notes = append(notes, fmt.Sprintf("got %d questions, expected 10", n))
	}
	bonus := 0
	for _, q := range out.Questions {
		if q.IsBonus {
			bonus++
		}
	}
	if bonus != 1 {
		notes = append(notes, fmt.Sprintf("got %d bonus questions, expected 1", bonus))
	}
	return notes
}

type GenerateQuizTitleInput struct {
	LearningTopic string `json:"learningTopic"`
}

type GenerateQuizTitleOutput struct {
	Title string `json:"title"`
}

func (f *Flows) GenerateQuizTitle(ctx context.Context, in GenerateQuizTitleInput) (GenerateQuizTitleOutput, error) {
	return f.title.Invoke(ctx, in)
}

func adviseTitle(out GenerateQuizTitleOutput) []string {
	if n := len(strings.Fields(out.Title)); n == 0 || n > 5 {
		return []string{fmt.Sprintf("title has %d words, expected 1-5", n)}
	}
	return nil
}
