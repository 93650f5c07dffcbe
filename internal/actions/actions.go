// Package actions is the boundary between callers and the AI capabilities.
// Every failure below it is caught here and turned into a uniform error result.
package actions

import (
	"context"
	"errors"
	"strings"

	"github.com/yungbote/growthdesk-backend/internal/ai/aierr"
	"github.com/yungbote/growthdesk-backend/internal/ai/flows"
	"github.com/yungbote/growthdesk-backend/internal/ai/schema"
	"github.com/yungbote/growthdesk-backend/internal/platform/logger"
)

const GenericFailureMessage = "Failed to get a response from the AI. Please try again."

type Capabilities interface {
	SuggestHeadline(ctx context.Context, in flows.SuggestHeadlineInput) (flows.SuggestHeadlineOutput, error)
	GenerateAboutSection(ctx context.Context, in flows.GenerateAboutSectionInput) (flows.GenerateAboutSectionOutput, error)
	GenerateLinkedInPost(ctx context.Context, in flows.GenerateLinkedInPostInput) (flows.GenerateLinkedInPostOutput, error)
	SuggestHashtags(ctx context.Context, in flows.SuggestHashtagsInput) (flows.SuggestHashtagsOutput, error)
	ProvideDailyGrowthSuggestions(ctx context.Context, in flows.ProvideDailyGrowthSuggestionsInput) (flows.ProvideDailyGrowthSuggestionsOutput, error)
	ParseResume(ctx context.Context, in flows.ParseResumeInput) (flows.ParseResumeOutput, error)
	GenerateQuiz(ctx context.Context, in flows.GenerateQuizInput) (flows.GenerateQuizOutput, error)
	GenerateQuizTitle(ctx context.Context, in flows.GenerateQuizTitleInput) (flows.GenerateQuizTitleOutput, error)
	ProvideJournalFeedback(ctx context.Context, in flows.ProvideJournalFeedbackInput) (flows.ProvideJournalFeedbackOutput, error)
}

type Actions struct {
	log  *logger.Logger
	caps Capabilities
}

func New(log *logger.Logger, caps Capabilities) *Actions {
	if log == nil {
		log = logger.Nop()
	}
	return &Actions{log: log.With("service", "AIActions"), caps: caps}
}

type HeadlinePayload struct {
	Headline string `json:"headline"`
}

type AboutSectionPayload struct {
	AboutSection string `json:"aboutSection"`
}

type PostPayload struct {
	Post string `json:"post"`
}

type HashtagsPayload struct {
	Hashtags []string `json:"hashtags"`
}

type SuggestionsPayload struct {
	Suggestions []string `json:"suggestions"`
}

type QuizPayload struct {
	Quiz flows.GenerateQuizOutput `json:"quiz"`
}

func (a *Actions) SuggestHeadline(ctx context.Context, in flows.SuggestHeadlineInput) Result[HeadlinePayload] {
	return run(ctx, a, "suggest_headline", in, a.caps.SuggestHeadline, func(out flows.SuggestHeadlineOutput) HeadlinePayload {
		return HeadlinePayload{Headline: out.Headline}
	})
}

func (a *Actions) GenerateAboutSection(ctx context.Context, in flows.GenerateAboutSectionInput) Result[AboutSectionPayload] {
	return run(ctx, a, "generate_about_section", in, a.caps.GenerateAboutSection, func(out flows.GenerateAboutSectionOutput) AboutSectionPayload {
		return AboutSectionPayload{AboutSection: out.AboutSection}
	})
}

func (a *Actions) GeneratePost(ctx context.Context, in flows.GenerateLinkedInPostInput) Result[PostPayload] {
	return run(ctx, a, "generate_post", in, a.caps.GenerateLinkedInPost, func(out flows.GenerateLinkedInPostOutput) PostPayload {
		return PostPayload{Post: out.Post}
	})
}

func (a *Actions) SuggestHashtags(ctx context.Context, in flows.SuggestHashtagsInput) Result[HashtagsPayload] {
	return run(ctx, a, "suggest_hashtags", in, a.caps.SuggestHashtags, func(out flows.SuggestHashtagsOutput) HashtagsPayload {
		return HashtagsPayload{Hashtags: out.Hashtags}
	})
}

func (a *Actions) GetDailyGrowthSuggestions(ctx context.Context, in flows.ProvideDailyGrowthSuggestionsInput) Result[SuggestionsPayload] {
	return run(ctx, a, "daily_growth_suggestions", in, a.caps.ProvideDailyGrowthSuggestions, func(out flows.ProvideDailyGrowthSuggestionsOutput) SuggestionsPayload {
		return SuggestionsPayload{Suggestions: out.GrowthSuggestions}
	})
}

func (a *Actions) ParseResume(ctx context.Context, in flows.ParseResumeInput) Result[flows.ParseResumeOutput] {
	return run(ctx, a, "parse_resume", in, a.caps.ParseResume, identity[flows.ParseResumeOutput])
}

func (a *Actions) GenerateQuiz(ctx context.Context, in flows.GenerateQuizInput) Result[QuizPayload] {
	return run(ctx, a, "generate_quiz", in, a.caps.GenerateQuiz, func(out flows.GenerateQuizOutput) QuizPayload {
		return QuizPayload{Quiz: out}
	})
}

func (a *Actions) GenerateQuizTitle(ctx context.Context, in flows.GenerateQuizTitleInput) Result[flows.GenerateQuizTitleOutput] {
	return run(ctx, a, "generate_quiz_title", in, a.caps.GenerateQuizTitle, identity[flows.GenerateQuizTitleOutput])
}

func (a *Actions) ProvideJournalFeedback(ctx context.Context, in flows.ProvideJournalFeedbackInput) Result[flows.ProvideJournalFeedbackOutput] {
	return run(ctx, a, "journal_feedback", in, a.caps.ProvideJournalFeedback, identity[flows.ProvideJournalFeedbackOutput])
}

func identity[T any](v T) T { return v }

func run[In, Out, P any](
	ctx context.Context,
	a *Actions,
	action string,
	in In,
	call func(context.Context, In) (Out, error),
	shape func(Out) P,
) (res Result[P]) {
	defer func() {
		if rec := recover(); rec != nil {
			a.log.Error("ai action panicked", "action", action, "panic", rec)
			res = failed[P](KindInternal, GenericFailureMessage)
		}
	}()

	out, err := call(ctx, in)
	if err != nil {
		kind, msg := translate(err)
		a.log.Error("ai action failed", "action", action, "kind", string(kind), "error", err)
		return failed[P](kind, msg)
	}
	return ok(shape(out))
}

// translate picks the user-facing message for err. Only input validation
// failures are specific; everything else gets the generic message.
func translate(err error) (aierr.Kind, string) {
	kind, classified := aierr.KindOf(err)
	if !classified {
		return KindInternal, GenericFailureMessage
	}
	if kind != aierr.KindValidation {
		return kind, GenericFailureMessage
	}
	var verr *schema.ValidationError
	if errors.As(err, &verr) && len(verr.Violations) > 0 {
		parts := make([]string, 0, len(verr.Violations))
		for _, v := range verr.Violations {
			parts = append(parts, v.String())
		}
		return kind, "Invalid input: " + strings.Join(parts, "; ") + "."
	}
	return kind, "Invalid input."
}
