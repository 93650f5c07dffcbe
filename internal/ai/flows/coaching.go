package flows

import (
	"context"
	"fmt"
)

type ProvideDailyGrowthSuggestionsInput struct {
	CurrentProfileSummary string `json:"currentProfileSummary"`
	CareerField           string `json:"careerField"`
}

type ProvideDailyGrowthSuggestionsOutput struct {
	GrowthSuggestions []string `json:"growthSuggestions"`
}

func (f *Flows) ProvideDailyGrowthSuggestions(ctx context.Context, in ProvideDailyGrowthSuggestionsInput) (ProvideDailyGrowthSuggestionsOutput, error) {
	return f.growth.Invoke(ctx, in)
}

func adviseGrowth(out ProvideDailyGrowthSuggestionsOutput) []string {
	if n := len(out.GrowthSuggestions); n != 3 {
		return []string{fmt.Sprintf("got %d growth suggestions, expected 3", n)}
	}
	return nil
}

type ProvideJournalFeedbackInput struct {
	JournalContent string `json:"journalContent"`
}

type ProvideJournalFeedbackOutput struct {
	Advice []string `json:"advice"`
	Tasks  []string `json:"tasks"`
}

func (f *Flows) ProvideJournalFeedback(ctx context.Context, in ProvideJournalFeedbackInput) (ProvideJournalFeedbackOutput, error) {
	return f.journal.Invoke(ctx, in)
}

func adviseJournal(out ProvideJournalFeedbackOutput) []string {
	var notes []string
	if len(out.Advice) == 0 {
		notes = append(notes, "no advice items")
	}
	if len(out.Tasks) == 0 {
		notes = append(notes, "no task items")
	}
	return notes
}
