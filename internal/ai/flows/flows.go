// Package flows exposes one typed function per AI capability.
package flows

import (
	"fmt"

	"github.com/yungbote/growthdesk-backend/internal/ai/invoker"
	"github.com/yungbote/growthdesk-backend/internal/ai/prompts"
	"github.com/yungbote/growthdesk-backend/internal/platform/llm"
	"github.com/yungbote/growthdesk-backend/internal/platform/logger"
)

type Flows struct {
	registry *prompts.Registry

	headline *invoker.Invoker[SuggestHeadlineInput, SuggestHeadlineOutput]
	about    *invoker.Invoker[GenerateAboutSectionInput, GenerateAboutSectionOutput]
	post     *invoker.Invoker[GenerateLinkedInPostInput, GenerateLinkedInPostOutput]
	hashtags *invoker.Invoker[SuggestHashtagsInput, SuggestHashtagsOutput]
	growth   *invoker.Invoker[ProvideDailyGrowthSuggestionsInput, ProvideDailyGrowthSuggestionsOutput]
	journal  *invoker.Invoker[ProvideJournalFeedbackInput, ProvideJournalFeedbackOutput]
	resume   *invoker.Invoker[ParseResumeInput, ParseResumeOutput]
	quiz     *invoker.Invoker[GenerateQuizInput, GenerateQuizOutput]
	title    *invoker.Invoker[GenerateQuizTitleInput, GenerateQuizTitleOutput]
}

// New compiles every capability prompt and binds it to backend. It fails when
// a prompt references a slot its input shape does not declare.
func New(log *logger.Logger, backend llm.Backend) (*Flows, error) {
	if log == nil {
		log = logger.Nop()
	}
	log = log.With("service", "AIFlows")

	reg := prompts.NewRegistry()
	for _, s := range Specs() {
		t, err := prompts.MakeTemplate(s)
		if err != nil {
			return nil, fmt.Errorf("compile prompt: %w", err)
		}
		reg.Register(t)
	}
	tmpl := func(name prompts.PromptName) prompts.Template {
		t, _ := reg.Lookup(name)
		return t
	}

	return &Flows{
		registry: reg,
		headline: invoker.New[SuggestHeadlineInput, SuggestHeadlineOutput](log, backend, tmpl(prompts.PromptSuggestHeadline)),
		about:    invoker.New[GenerateAboutSectionInput, GenerateAboutSectionOutput](log, backend, tmpl(prompts.PromptGenerateAboutSection)),
		post:     invoker.New[GenerateLinkedInPostInput, GenerateLinkedInPostOutput](log, backend, tmpl(prompts.PromptGenerateLinkedInPost)),
		hashtags: invoker.New[SuggestHashtagsInput, SuggestHashtagsOutput](log, backend, tmpl(prompts.PromptSuggestHashtags),
			invoker.WithAdvice(adviseHashtags)),
		growth: invoker.New[ProvideDailyGrowthSuggestionsInput, ProvideDailyGrowthSuggestionsOutput](log, backend, tmpl(prompts.PromptDailyGrowthSuggestions),
			invoker.WithAdvice(adviseGrowth)),
		journal: invoker.New[ProvideJournalFeedbackInput, ProvideJournalFeedbackOutput](log, backend, tmpl(prompts.PromptJournalFeedback),
			invoker.WithAdvice(adviseJournal)),
		resume: invoker.New[ParseResumeInput, ParseResumeOutput](log, backend, tmpl(prompts.PromptParseResume),
			invoker.WithCheck(checkResume)),
		quiz: invoker.New[GenerateQuizInput, GenerateQuizOutput](log, backend, tmpl(prompts.PromptGenerateQuiz),
			invoker.WithCheck(checkQuiz), invoker.WithAdvice(adviseQuiz)),
		title: invoker.New[GenerateQuizTitleInput, GenerateQuizTitleOutput](log, backend, tmpl(prompts.PromptGenerateQuizTitle),
			invoker.WithAdvice(adviseTitle)),
	}, nil
}

// Registry lists the compiled prompts for introspection.
func (f *Flows) Registry() *prompts.Registry { return f.registry }
