package flows

import (
	"context"
	"fmt"
	"strings"
)

type GenerateLinkedInPostInput struct {
	Topic string `json:"topic"`
	Tone  string `json:"tone,omitempty"`
}

type GenerateLinkedInPostOutput struct {
	Post string `json:"post"`
}

func (f *Flows) GenerateLinkedInPost(ctx context.Context, in GenerateLinkedInPostInput) (GenerateLinkedInPostOutput, error) {
	return f.post.Invoke(ctx, in)
}

type SuggestHashtagsInput struct {
	PostContent string `json:"postContent"`
}

type SuggestHashtagsOutput struct {
	Hashtags []string `json:"hashtags"`
}

func (f *Flows) SuggestHashtags(ctx context.Context, in SuggestHashtagsInput) (SuggestHashtagsOutput, error) {
	return f.hashtags.Invoke(ctx, in)
}

func adviseHashtags(out SuggestHashtagsOutput) []string {
	var notes []string
	if n := len(out.Hashtags); n < 3 || n > 10 {
		notes = append(notes, fmt.Sprintf("got %d hashtags, expected 3-10", n))
	}
	for _, tag := range out.Hashtags {
		if !strings.HasPrefix(tag, "#") || strings.ContainsAny(tag, " \t") {
			notes = append(notes, fmt.Sprintf("malformed hashtag %q", tag))
		}
	}
	return notes
}
