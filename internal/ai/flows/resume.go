package flows

import (
	"context"
	"errors"
)

type ParseResumeInput struct {
	ResumeDataURI string `json:"resumeDataUri"`
}

type Experience struct {
	Company     string `json:"company"`
	Role        string `json:"role"`
	Duration    string `json:"duration"`
	Description string `json:"description"`
}

type Education struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Duration    string `json:"duration"`
}

type ParseResumeOutput struct {
	Experience []Experience `json:"experience"`
	Education  []Education  `json:"education"`
	Skills     []string     `json:"skills"`
}

func (f *Flows) ParseResume(ctx context.Context, in ParseResumeInput) (ParseResumeOutput, error) {
	return f.resume.Invoke(ctx, in)
}

// checkResume guarantees the three lists are present, so callers always see
// arrays and never null.
func checkResume(out ParseResumeOutput) error {
	if out.Experience == nil || out.Education == nil || out.Skills == nil {
		return errors.New("resume output must contain experience, education and skills lists")
	}
	return nil
}
