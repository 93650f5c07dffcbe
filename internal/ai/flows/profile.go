package flows

import "context"

type SuggestHeadlineInput struct {
	CareerField     string `json:"careerField"`
	CurrentHeadline string `json:"currentHeadline,omitempty"`
	Experience      string `json:"experience"`
}

type SuggestHeadlineOutput struct {
	Headline string `json:"headline"`
}

func (f *Flows) SuggestHeadline(ctx context.Context, in SuggestHeadlineInput) (SuggestHeadlineOutput, error) {
	return f.headline.Invoke(ctx, in)
}

type GenerateAboutSectionInput struct {
	UserInput string `json:"userInput"`
}

type GenerateAboutSectionOutput struct {
	AboutSection string `json:"aboutSection"`
}

func (f *Flows) GenerateAboutSection(ctx context.Context, in GenerateAboutSectionInput) (GenerateAboutSectionOutput, error) {
	return f.about.Invoke(ctx, in)
}
