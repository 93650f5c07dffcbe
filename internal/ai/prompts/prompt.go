package prompts

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/yungbote/growthdesk-backend/internal/platform/llm"
)

// Prompt is a fully rendered prompt, ready for a single backend call.
type Prompt struct {
	Name       string
	Version    int
	System     string
	User       string
	SchemaName string
	Schema     map[string]any
	Media      []llm.Media
}

func (p Prompt) Fingerprint() string {
	h := sha256.Sum256([]byte(
		strings.TrimSpace(p.Name) + "|" +
			strconv.Itoa(p.Version) + "|" +
			strings.TrimSpace(p.System) + "|" +
			strings.TrimSpace(p.User),
	))
	return hex.EncodeToString(h[:])
}

func (p Prompt) Request() llm.JSONRequest {
	return llm.JSONRequest{
		Name:       p.Name,
		System:     p.System,
		User:       p.User,
		SchemaName: p.SchemaName,
		Schema:     p.Schema,
		Media:      p.Media,
	}
}
