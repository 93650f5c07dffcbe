package prompts

type PromptName string

const (
	// Profile copy
	PromptSuggestHeadline      PromptName = "suggest_headline"
	PromptGenerateAboutSection PromptName = "generate_about_section"

	// Posts
	PromptGenerateLinkedInPost PromptName = "generate_linkedin_post"
	PromptSuggestHashtags      PromptName = "suggest_hashtags"

	// Coaching
	PromptDailyGrowthSuggestions PromptName = "daily_growth_suggestions"
	PromptJournalFeedback        PromptName = "journal_feedback"

	// Documents
	PromptParseResume PromptName = "parse_resume"

	// Learning
	PromptGenerateQuiz      PromptName = "generate_quiz"
	PromptGenerateQuizTitle PromptName = "generate_quiz_title"
)
