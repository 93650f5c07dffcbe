package flows

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/growthdesk-backend/internal/ai/aierr"
	"github.com/yungbote/growthdesk-backend/internal/ai/aitest"
	"github.com/yungbote/growthdesk-backend/internal/ai/prompts"
	"github.com/yungbote/growthdesk-backend/internal/platform/logger"
)

func newFlows(t *testing.T, backend *aitest.Backend) *Flows {
	t.Helper()
	f, err := New(logger.Nop(), backend)
	require.NoError(t, err)
	return f
}

func sampleQuiz(n int, bonusAt int) map[string]any {
	questions := make([]map[string]any, 0, n)
	for i := 0; i < n; i++ {
		questions = append(questions, map[string]any{
			"question":      fmt.Sprintf("Question %d?", i+1),
			"options":       []string{"A", "B", "C", "D"},
			"correctAnswer": "C",
			"isBonus":       i == bonusAt,
		})
	}
	return map[string]any{"questions": questions}
}

func TestEveryPromptSlotIsAnInputField(t *testing.T) {
	f := newFlows(t, aitest.Returning(map[string]any{}))
	all := f.Registry().All()
	require.Len(t, all, 9)

	for _, tmpl := range all {
		declared := map[string]bool{}
		for _, name := range tmpl.Input.FieldNames() {
			declared[name] = true
		}
		for _, slot := range tmpl.Slots {
			assert.Truef(t, declared[slot], "%s: slot %q is not an input field", tmpl.Name, slot)
		}
		assert.NotEmptyf(t, tmpl.Slots, "%s renders no input", tmpl.Name)
	}
}

func TestSuggestHeadlineWithoutCurrentHeadline(t *testing.T) {
	backend := aitest.Returning(map[string]any{"headline": "B2B SaaS Marketer | Demand Gen | Growth"})
	f := newFlows(t, backend)

	out, err := f.SuggestHeadline(context.Background(), SuggestHeadlineInput{
		CareerField: "Marketing",
		Experience:  "5 years in B2B SaaS",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Headline)

	req, ok := backend.LastCall()
	require.True(t, ok)
	assert.Contains(t, req.User, "Career Field: Marketing")
	assert.Contains(t, req.User, "Experience: 5 years in B2B SaaS")
	assert.Equal(t, "SuggestHeadlineOutput", req.SchemaName)
}

func TestGenerateAboutSectionRejectsShortInput(t *testing.T) {
	backend := aitest.Returning(map[string]any{"aboutSection": "never"})
	f := newFlows(t, backend)

	_, err := f.GenerateAboutSection(context.Background(), GenerateAboutSectionInput{UserInput: "short"})
	require.Error(t, err)
	kind, ok := aierr.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, aierr.KindValidation, kind)
	assert.Zero(t, backend.CallCount())
}

func TestGenerateLinkedInPostDefaultsTone(t *testing.T) {
	backend := aitest.Returning(map[string]any{"post": "Shipped it! #launch"})
	f := newFlows(t, backend)

	_, err := f.GenerateLinkedInPost(context.Background(), GenerateLinkedInPostInput{Topic: "We launched our new product"})
	require.NoError(t, err)
	req, _ := backend.LastCall()
	assert.Contains(t, req.User, "Tone: Professional")

	_, err = f.GenerateLinkedInPost(context.Background(), GenerateLinkedInPostInput{Topic: "We launched our new product", Tone: "Casual"})
	require.NoError(t, err)
	req, _ = backend.LastCall()
	assert.Contains(t, req.User, "Tone: Casual")
}

func TestParseResumeSendsAttachmentAndReturnsArrays(t *testing.T) {
	backend := aitest.Returning(map[string]any{
		"experience": []map[string]any{{
			"company": "Acme", "role": "Engineer", "duration": "2019-2023", "description": "Built things.",
		}},
		"education": []any{},
		"skills":    []string{"Go", "SQL"},
	})
	f := newFlows(t, backend)

	out, err := f.ParseResume(context.Background(), ParseResumeInput{ResumeDataURI: "data:application/pdf;base64,JVBERi0xLjQK"})
	require.NoError(t, err)
	require.Len(t, out.Experience, 1)
	assert.Equal(t, "Acme", out.Experience[0].Company)
	assert.NotNil(t, out.Education)
	assert.Empty(t, out.Education)
	assert.Equal(t, []string{"Go", "SQL"}, out.Skills)

	req, _ := backend.LastCall()
	require.Len(t, req.Media, 1)
	assert.Equal(t, "application/pdf", req.Media[0].MIMEType)
	assert.Contains(t, req.User, "[attached file 1: application/pdf]")
	assert.NotContains(t, req.User, "base64")
}

func TestParseResumeRejectsMissingList(t *testing.T) {
	backend := aitest.Returning(map[string]any{"experience": []any{}, "skills": []any{}})
	f := newFlows(t, backend)

	_, err := f.ParseResume(context.Background(), ParseResumeInput{ResumeDataURI: "data:application/pdf;base64,JVBERi0xLjQK"})
	assert.ErrorIs(t, err, aierr.ErrOutputContractViolated)
}

func TestParseResumeRejectsNonDataURI(t *testing.T) {
	backend := aitest.Returning(map[string]any{})
	f := newFlows(t, backend)

	_, err := f.ParseResume(context.Background(), ParseResumeInput{ResumeDataURI: "/tmp/resume.pdf"})
	assert.ErrorIs(t, err, aierr.ErrValidationFailed)
	assert.Zero(t, backend.CallCount())
}

func TestGenerateQuizStructure(t *testing.T) {
	backend := aitest.Returning(sampleQuiz(10, 9))
	f := newFlows(t, backend)

	topic := "Goroutines, channels and the select stmt"
	require.Len(t, topic, 40)
	out, err := f.GenerateQuiz(context.Background(), GenerateQuizInput{LearningTopic: topic})
	require.NoError(t, err)
	require.Len(t, out.Questions, 10)

	bonus := 0
	for _, q := range out.Questions {
		assert.Len(t, q.Options, 4)
		assert.Contains(t, q.Options, q.CorrectAnswer)
		if q.IsBonus {
			bonus++
		}
	}
	assert.GreaterOrEqual(t, bonus, 1)
}

func TestGenerateQuizContractViolations(t *testing.T) {
	topic := "Goroutines, channels and the select stmt"

	noBonus := sampleQuiz(10, -1)

	threeOptions := sampleQuiz(10, 0)
	threeOptions["questions"].([]map[string]any)[3]["options"] = []string{"A", "B", "C"}

	wrongAnswer := sampleQuiz(10, 0)
	wrongAnswer["questions"].([]map[string]any)[5]["correctAnswer"] = "E"

	for name, payload := range map[string]map[string]any{
		"no bonus":      noBonus,
		"three options": threeOptions,
		"wrong answer":  wrongAnswer,
		"empty":         {"questions": []any{}},
	} {
		t.Run(name, func(t *testing.T) {
			f := newFlows(t, aitest.Returning(payload))
			_, err := f.GenerateQuiz(context.Background(), GenerateQuizInput{LearningTopic: topic})
			assert.ErrorIs(t, err, aierr.ErrOutputContractViolated)
		})
	}
}

func TestGenerateQuizSoftBoundsDoNotFail(t *testing.T) {
	f := newFlows(t, aitest.Returning(sampleQuiz(7, 2)))
	out, err := f.GenerateQuiz(context.Background(), GenerateQuizInput{LearningTopic: strings.Repeat("x", 30)})
	require.NoError(t, err)
	assert.Len(t, out.Questions, 7)
}

func TestProvideJournalFeedbackReturnsArrays(t *testing.T) {
	backend := aitest.Returning(map[string]any{
		"advice": []string{"Review notes daily."},
		"tasks":  []string{"Finish module 3."},
	})
	f := newFlows(t, backend)

	out, err := f.ProvideJournalFeedback(context.Background(), ProvideJournalFeedbackInput{JournalContent: "ok today.."})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Advice)
	assert.NotEmpty(t, out.Tasks)
}

func TestSoftChecks(t *testing.T) {
	assert.Empty(t, adviseGrowth(ProvideDailyGrowthSuggestionsOutput{GrowthSuggestions: []string{"a", "b", "c"}}))
	assert.NotEmpty(t, adviseGrowth(ProvideDailyGrowthSuggestionsOutput{GrowthSuggestions: []string{"a"}}))
	assert.Empty(t, adviseHashtags(SuggestHashtagsOutput{Hashtags: []string{"#go", "#golang", "#backend"}}))
	assert.Len(t, adviseHashtags(SuggestHashtagsOutput{Hashtags: []string{"go", "#a b", "#c"}}), 2)
	assert.Empty(t, adviseTitle(GenerateQuizTitleOutput{Title: "Next.js App Router Quiz"}))
	assert.NotEmpty(t, adviseTitle(GenerateQuizTitleOutput{Title: "A Very Long Quiz Title Indeed"}))
	assert.NotEmpty(t, adviseJournal(ProvideJournalFeedbackOutput{Advice: []string{}, Tasks: []string{"x"}}))
}

func TestRemainingCapabilities(t *testing.T) {
	ctx := context.Background()

	hashtags, err := newFlows(t, aitest.Returning(map[string]any{"hashtags": []string{"#go"}})).
		SuggestHashtags(ctx, SuggestHashtagsInput{PostContent: "Learning Go generics this week"})
	require.NoError(t, err)
	assert.Equal(t, []string{"#go"}, hashtags.Hashtags)

	growth, err := newFlows(t, aitest.Returning(map[string]any{"growthSuggestions": []string{"a", "b", "c"}})).
		ProvideDailyGrowthSuggestions(ctx, ProvideDailyGrowthSuggestionsInput{CurrentProfileSummary: "Backend engineer", CareerField: "IT"})
	require.NoError(t, err)
	assert.Len(t, growth.GrowthSuggestions, 3)

	title, err := newFlows(t, aitest.Returning(map[string]any{"title": "Go Concurrency Quiz"})).
		GenerateQuizTitle(ctx, GenerateQuizTitleInput{LearningTopic: "Go"})
	require.Error(t, err, "learning topic below three characters")
	assert.Empty(t, title.Title)

	title, err = newFlows(t, aitest.Returning(map[string]any{"title": "Go Concurrency Quiz"})).
		GenerateQuizTitle(ctx, GenerateQuizTitleInput{LearningTopic: "Go concurrency"})
	require.NoError(t, err)
	assert.Equal(t, "Go Concurrency Quiz", title.Title)

	_, ok := newFlows(t, aitest.Returning(nil)).Registry().Lookup(prompts.PromptSuggestHashtags)
	assert.True(t, ok)
}

func TestBlankTextOutputIsContractViolation(t *testing.T) {
	ctx := context.Background()

	backend := aitest.Returning(map[string]any{"headline": ""})
	headline, err := newFlows(t, backend).SuggestHeadline(ctx, SuggestHeadlineInput{
		CareerField: "Data Science",
		Experience:  "3 years building ML models for healthcare",
	})
	assert.ErrorIs(t, err, aierr.ErrOutputContractViolated)
	assert.Empty(t, headline.Headline)
	assert.Equal(t, 1, backend.CallCount())

	_, err = newFlows(t, aitest.Returning(map[string]any{"title": "   "})).
		GenerateQuizTitle(ctx, GenerateQuizTitleInput{LearningTopic: "Go concurrency"})
	assert.ErrorIs(t, err, aierr.ErrOutputContractViolated)

	_, err = newFlows(t, aitest.Returning(map[string]any{"hashtags": []string{"#golang", ""}})).
		SuggestHashtags(ctx, SuggestHashtagsInput{PostContent: "Shipped our first Go service to production."})
	assert.ErrorIs(t, err, aierr.ErrOutputContractViolated)

	quiz := sampleQuiz(10, 9)
	quiz["questions"].([]map[string]any)[0]["question"] = "\n"
	_, err = newFlows(t, aitest.Returning(quiz)).
		GenerateQuiz(ctx, GenerateQuizInput{LearningTopic: strings.Repeat("goroutines and channels ", 2)})
	assert.ErrorIs(t, err, aierr.ErrOutputContractViolated)
}

func TestParseResumeAcceptsDataURIParameters(t *testing.T) {
	backend := aitest.Returning(map[string]any{"experience": []any{}, "education": []any{}, "skills": []string{"Go"}})
	f := newFlows(t, backend)

	_, err := f.ParseResume(context.Background(), ParseResumeInput{ResumeDataURI: "data:application/pdf;name=cv.pdf;base64,JVBERi0xLjQK"})
	require.NoError(t, err)

	req, ok := backend.LastCall()
	require.True(t, ok)
	require.Len(t, req.Media, 1)
	assert.Equal(t, "application/pdf", req.Media[0].MIMEType)
	assert.Equal(t, []byte("%PDF-1.4\n"), req.Media[0].Data)
}
