package flows

import (
	"github.com/yungbote/growthdesk-backend/internal/ai/prompts"
	"github.com/yungbote/growthdesk-backend/internal/ai/schema"
)

// Specs declares every capability prompt together with its input and output shapes.
func Specs() []prompts.Spec {
	return []prompts.Spec{
		// ---------- Profile copy ----------

		{
			Name:    prompts.PromptSuggestHeadline,
			Version: 1,
			Input: schema.Define("SuggestHeadlineInput", "",
				schema.String("careerField", "The career field of the user.").MinLen(2),
				schema.String("currentHeadline", "The user's current LinkedIn headline, if any.").Opt(),
				schema.String("experience", "A brief summary of the user's professional experience.").MinLen(10),
			),
			Output: schema.Define("SuggestHeadlineOutput", "",
				schema.String("headline", "A suggested professional and attention-grabbing LinkedIn headline.").Required(),
			),
			System: `
You are a professional career coach specializing in LinkedIn profile optimization.
Suggest one new LinkedIn headline that is professional and attention-grabbing.`,
			User: `
Based on the user's career field, current headline (if any), and experience, suggest a new LinkedIn headline.

Career Field: {{.careerField}}
Current Headline: {{.currentHeadline}}
Experience: {{.experience}}

Return only the headline text in the headline field.`,
		},

		{
			Name:    prompts.PromptGenerateAboutSection,
			Version: 1,
			Input: schema.Define("GenerateAboutSectionInput", "",
				schema.String("userInput", "Details about the user and what they want to convey in their about section.").MinLen(20),
			),
			Output: schema.Define("GenerateAboutSectionOutput", "",
				schema.String("aboutSection", "The generated About Me section for LinkedIn.").Required(),
			),
			System: `
You are a LinkedIn expert.
Craft a compelling and professional "About Me" section for a LinkedIn profile.`,
			User: `
Write the About section from the user's input. Make it engaging and highlight their key skills and experiences.

User Input: {{.userInput}}`,
		},

		// ---------- Posts ----------

		{
			Name:    prompts.PromptGenerateLinkedInPost,
			Version: 1,
			Input: schema.Define("GenerateLinkedInPostInput", "",
				schema.String("topic", "The topic or achievement to generate a LinkedIn post about.").MinLen(10),
				schema.String("tone", "The tone of the post, e.g. Professional, Casual, Enthusiastic.").Opt(),
			),
			Output: schema.Define("GenerateLinkedInPostOutput", "",
				schema.String("post", "The generated LinkedIn post with relevant hashtags.").Required(),
			),
			System: `
You are a professional social media manager specializing in LinkedIn.
Write engaging, well-structured posts.`,
			User: `
Based on the provided topic or achievement, generate a LinkedIn post.
Include relevant and trending hashtags to maximize reach and engagement.

Tone: {{if .tone}}{{.tone}}{{else}}Professional{{end}}
Topic/Achievement: {{.topic}}`,
		},

		{
			Name:    prompts.PromptSuggestHashtags,
			Version: 1,
			Input: schema.Define("SuggestHashtagsInput", "",
				schema.String("postContent", "The LinkedIn post to suggest hashtags for.").MinLen(10),
			),
			Output: schema.Define("SuggestHashtagsOutput", "",
				schema.Texts("hashtags", "Relevant hashtags, each starting with #."),
			),
			System: `
You are a LinkedIn content strategist.
Pick hashtags that maximize reach for a post without being spammy.`,
			User: `
Suggest 5 to 8 relevant hashtags for the following LinkedIn post.
Each hashtag must start with # and contain no spaces.
Mix broad and niche hashtags.

Post:
{{.postContent}}`,
		},

		// ---------- Coaching ----------

		{
			Name:    prompts.PromptDailyGrowthSuggestions,
			Version: 1,
			Input: schema.Define("ProvideDailyGrowthSuggestionsInput", "",
				schema.String("currentProfileSummary", "A summary of the user's current LinkedIn profile, including headline, about section, and recent activity.").MinLen(10),
				schema.String("careerField", "The user's career field or industry, e.g. software engineering, marketing.").MinLen(2),
			),
			Output: schema.Define("ProvideDailyGrowthSuggestionsOutput", "",
				schema.Texts("growthSuggestions", "A list of daily growth suggestions tailored to the user's profile and career field."),
			),
			System: `
You are a LinkedIn growth expert.
Give actionable and specific suggestions that improve profile visibility.`,
			User: `
Given the user's profile summary and career field, provide 3 daily growth suggestions to improve their profile visibility.

Profile Summary: {{.currentProfileSummary}}
Career Field: {{.careerField}}

Example suggestions:
- Update your headline to include relevant keywords.
- Engage with posts from industry leaders.
- Share a post about a recent achievement or learning experience.`,
		},

		{
			Name:    prompts.PromptJournalFeedback,
			Version: 1,
			Input: schema.Define("ProvideJournalFeedbackInput", "",
				schema.String("journalContent", "The combined content of a daily journal entry, including reflections and course progress notes.").MinLen(10),
			),
			Output: schema.Define("ProvideJournalFeedbackOutput", "",
				schema.Texts("advice", "A list of actionable pieces of advice based on the journal entry."),
				schema.Texts("tasks", "A list of concrete tasks or to-do items."),
			),
			System: `
You are a professional career coach and mentor.
Analyze journal entries about the user's reflections and progress in their online courses.`,
			User: `
Based on the entry, provide:
1. A list of 2-3 actionable pieces of advice to help them improve their skills, learning process, or career trajectory.
2. A to-do list of 2-3 concrete, simple tasks they can do to act on your advice.

Journal Entry:
"{{.journalContent}}"`,
		},

		// ---------- Documents ----------

		{
			Name:    prompts.PromptParseResume,
			Version: 1,
			Input: schema.Define("ParseResumeInput", "",
				schema.Media("resumeDataUri", "A resume file as a data URI with a MIME type and base64 payload."),
			),
			Output: schema.Define("ParseResumeOutput", "",
				schema.List("experience", "The extracted work experience.", schema.Record(
					schema.String("company", "The name of the company."),
					schema.String("role", "The role or title."),
					schema.String("duration", "The duration of the employment."),
					schema.String("description", "A summary of the responsibilities and achievements."),
				)),
				schema.List("education", "The extracted education history.", schema.Record(
					schema.String("institution", "The name of the educational institution."),
					schema.String("degree", "The degree or qualification obtained."),
					schema.String("duration", "The duration of the study."),
				)),
				schema.Strings("skills", "A list of extracted skills."),
			),
			System: `
You are an expert resume parser.
Extract only what the document states.`,
			User: `
Extract the work experience, education, and skills from the provided resume.
Use empty lists for sections the resume does not contain.

Resume: {{.resumeDataUri}}`,
		},

		// ---------- Learning ----------

		{
			Name:    prompts.PromptGenerateQuiz,
			Version: 1,
			Input: schema.Define("GenerateQuizInput", "",
				schema.String("learningTopic", "The topic the user has learned about.").MinLen(30),
			),
			Output: schema.Define("GenerateQuizOutput", "",
				schema.List("questions", "An array of quiz questions.", schema.Record(
					schema.String("question", "The quiz question.").Required(),
					schema.Texts("options", "An array of 4 multiple-choice options."),
					schema.String("correctAnswer", "The correct answer, copied exactly from the options.").Required(),
					schema.Bool("isBonus", "Whether this is a bonus question worth extra points."),
				)),
			),
			System: `
You are an expert quiz creator.
Write multiple-choice questions that test real understanding.`,
			User: `
Based on the following learning topic, generate a multiple-choice quiz with 10 questions to test the user's knowledge.

The quiz should consist of:
- 9 standard questions.
- 1 "bonus" question that is slightly more difficult than the others.

Each question must have exactly 4 options, and correctAnswer must be one of them.

Learning Topic: {{.learningTopic}}`,
		},

		{
			Name:    prompts.PromptGenerateQuizTitle,
			Version: 1,
			Input: schema.Define("GenerateQuizTitleInput", "",
				schema.String("learningTopic", "The topic the user has learned about.").MinLen(3),
			),
			Output: schema.Define("GenerateQuizTitleOutput", "",
				schema.String("title", "The generated formal title for the quiz.").Required(),
			),
			System: `
You are an expert at creating concise and professional titles.`,
			User: `
Based on the following learning topic, generate a short, formal title for a quiz.
The title should be no more than 5 words.

Example:
Topic: "a javascript program to create a pyramid pattern"
Title: "JavaScript Pyramid Program Quiz"

Topic: "I learned about the Next.js App Router and how server components work."
Title: "Next.js App Router Quiz"

Learning Topic: {{.learningTopic}}`,
		},
	}
}
