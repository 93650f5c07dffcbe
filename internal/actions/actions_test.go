package actions

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/growthdesk-backend/internal/ai/aierr"
	"github.com/yungbote/growthdesk-backend/internal/ai/aitest"
	"github.com/yungbote/growthdesk-backend/internal/ai/flows"
	"github.com/yungbote/growthdesk-backend/internal/platform/logger"
)

func newActions(t *testing.T, backend *aitest.Backend) *Actions {
	t.Helper()
	f, err := flows.New(logger.Nop(), backend)
	require.NoError(t, err)
	return New(logger.Nop(), f)
}

func encode(t *testing.T, v any) map[string]any {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))
	return m
}

func TestAboutSectionValidationFailure(t *testing.T) {
	backend := aitest.Returning(map[string]any{"aboutSection": "never"})
	a := newActions(t, backend)

	res := a.GenerateAboutSection(context.Background(), flows.GenerateAboutSectionInput{UserInput: "short"})
	assert.False(t, res.OK())
	assert.Equal(t, aierr.KindValidation, res.Kind())
	assert.Equal(t, "Invalid input: userInput must be at least 20 characters.", res.Error)
	assert.Equal(t, map[string]any{"error": res.Error}, encode(t, res))
	assert.Zero(t, backend.CallCount())
}

func TestNetworkFailureYieldsGenericMessage(t *testing.T) {
	a := newActions(t, aitest.Failing(errors.New("dial tcp 10.0.0.1:443: connect: connection refused")))
	ctx := context.Background()

	results := []interface {
		OK() bool
		Kind() aierr.Kind
	}{
		a.SuggestHeadline(ctx, flows.SuggestHeadlineInput{CareerField: "Marketing", Experience: "5 years in B2B SaaS"}),
		a.GenerateAboutSection(ctx, flows.GenerateAboutSectionInput{UserInput: "I build reliable distributed systems."}),
		a.GeneratePost(ctx, flows.GenerateLinkedInPostInput{Topic: "Promoted to staff engineer"}),
		a.SuggestHashtags(ctx, flows.SuggestHashtagsInput{PostContent: "Promoted to staff engineer"}),
		a.GetDailyGrowthSuggestions(ctx, flows.ProvideDailyGrowthSuggestionsInput{CurrentProfileSummary: "Staff engineer", CareerField: "IT"}),
		a.ParseResume(ctx, flows.ParseResumeInput{ResumeDataURI: "data:application/pdf;base64,JVBERi0xLjQK"}),
		a.GenerateQuiz(ctx, flows.GenerateQuizInput{LearningTopic: "Goroutines, channels and the select stmt"}),
		a.GenerateQuizTitle(ctx, flows.GenerateQuizTitleInput{LearningTopic: "Goroutines"}),
		a.ProvideJournalFeedback(ctx, flows.ProvideJournalFeedbackInput{JournalContent: "Finished chapter 4 today."}),
	}
	for i, res := range results {
		assert.Falsef(t, res.OK(), "result %d", i)
		assert.Equalf(t, aierr.KindUpstream, res.Kind(), "result %d", i)
		assert.Equalf(t, map[string]any{"error": GenericFailureMessage}, encode(t, res), "result %d", i)
	}
}

func TestContractViolationYieldsOnlyErrorField(t *testing.T) {
	a := newActions(t, aitest.Returning(map[string]any{"growthSuggestions": "not a list"}))

	res := a.GetDailyGrowthSuggestions(context.Background(), flows.ProvideDailyGrowthSuggestionsInput{
		CurrentProfileSummary: "Product designer with 4 years experience",
		CareerField:           "Design",
	})
	assert.Equal(t, aierr.KindContract, res.Kind())
	assert.Nil(t, res.Data.Suggestions)
	assert.Equal(t, map[string]any{"error": GenericFailureMessage}, encode(t, res))
}

func TestSuccessPayloadsAreReshaped(t *testing.T) {
	ctx := context.Background()

	growth := newActions(t, aitest.Returning(map[string]any{"growthSuggestions": []string{"a", "b", "c"}})).
		GetDailyGrowthSuggestions(ctx, flows.ProvideDailyGrowthSuggestionsInput{CurrentProfileSummary: "Product designer", CareerField: "Design"})
	require.True(t, growth.OK())
	assert.Equal(t, map[string]any{"suggestions": []any{"a", "b", "c"}}, encode(t, growth))

	quizBody := map[string]any{"questions": []map[string]any{{
		"question": "Q?", "options": []string{"A", "B", "C", "D"}, "correctAnswer": "A", "isBonus": true,
	}}}
	quiz := newActions(t, aitest.Returning(quizBody)).
		GenerateQuiz(ctx, flows.GenerateQuizInput{LearningTopic: "Goroutines, channels and the select stmt"})
	require.True(t, quiz.OK())
	got := encode(t, quiz)
	require.Contains(t, got, "quiz")
	assert.NotContains(t, got, "error")
	assert.Len(t, got["quiz"].(map[string]any)["questions"], 1)

	title := newActions(t, aitest.Returning(map[string]any{"title": "Go Channels Quiz"})).
		GenerateQuizTitle(ctx, flows.GenerateQuizTitleInput{LearningTopic: "Go channels"})
	assert.Equal(t, map[string]any{"title": "Go Channels Quiz"}, encode(t, title))

	headline := newActions(t, aitest.Returning(map[string]any{"headline": "Growth Marketer"})).
		SuggestHeadline(ctx, flows.SuggestHeadlineInput{CareerField: "Marketing", Experience: "5 years in B2B SaaS"})
	assert.Equal(t, map[string]any{"headline": "Growth Marketer"}, encode(t, headline))
}

type panickingCaps struct{ Capabilities }

func (panickingCaps) SuggestHeadline(context.Context, flows.SuggestHeadlineInput) (flows.SuggestHeadlineOutput, error) {
	panic("boom")
}

type plainErrCaps struct{ Capabilities }

func (plainErrCaps) SuggestHeadline(context.Context, flows.SuggestHeadlineInput) (flows.SuggestHeadlineOutput, error) {
	return flows.SuggestHeadlineOutput{}, errors.New("unclassified")
}

func TestUnclassifiedFailures(t *testing.T) {
	for name, caps := range map[string]Capabilities{"panic": panickingCaps{}, "plain error": plainErrCaps{}} {
		t.Run(name, func(t *testing.T) {
			res := New(logger.Nop(), caps).SuggestHeadline(context.Background(), flows.SuggestHeadlineInput{})
			assert.False(t, res.OK())
			assert.Equal(t, KindInternal, res.Kind())
			assert.Equal(t, map[string]any{"error": GenericFailureMessage}, encode(t, res))
		})
	}
}
