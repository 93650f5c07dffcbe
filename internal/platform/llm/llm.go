// Package llm holds the request types shared by the model backends.
package llm

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

// Media is a binary attachment sent alongside the rendered prompt.
type Media struct {
	MIMEType string
	Data     []byte
}

// DataURI re-encodes the attachment as a base64 data URI.
func (m Media) DataURI() string {
	return "data:" + m.MIMEType + ";base64," + base64.StdEncoding.EncodeToString(m.Data)
}

func (m Media) IsImage() bool { return strings.HasPrefix(m.MIMEType, "image/") }

// JSONRequest is a single structured-output generation call.
type JSONRequest struct {
	Name       string
	System     string
	User       string
	SchemaName string
	Schema     map[string]any
	Media      []Media
}

// Backend produces one JSON object constrained by req.Schema per call.
type Backend interface {
	GenerateJSON(ctx context.Context, req JSONRequest) (map[string]any, error)
}

var ErrBadDataURI = errors.New("invalid data URI")

// ErrMalformedOutput marks a backend answer that arrived but is not a JSON
// object (unparseable text, an empty answer or a refusal).
var ErrMalformedOutput = errors.New("malformed model output")

// ParseDataURI decodes "data:<mime>[;<param>=<value>]*;base64,<payload>".
func ParseDataURI(raw string) (Media, error) {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "data:") {
		return Media{}, fmt.Errorf("%w: missing data: prefix", ErrBadDataURI)
	}
	header, payload, ok := strings.Cut(s[len("data:"):], ",")
	if !ok {
		return Media{}, fmt.Errorf("%w: missing payload separator", ErrBadDataURI)
	}
	// Parameters such as charset or name may sit between the MIME type and
	// the base64 marker, which is always last.
	params := strings.Split(header, ";")
	if len(params) < 2 || !strings.EqualFold(strings.TrimSpace(params[len(params)-1]), "base64") {
		return Media{}, fmt.Errorf("%w: payload must be base64 encoded", ErrBadDataURI)
	}
	mime := strings.ToLower(strings.TrimSpace(params[0]))
	if mime == "" || !strings.Contains(mime, "/") {
		return Media{}, fmt.Errorf("%w: missing MIME type", ErrBadDataURI)
	}
	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(payload))
	if err != nil {
		return Media{}, fmt.Errorf("%w: %v", ErrBadDataURI, err)
	}
	if len(data) == 0 {
		return Media{}, fmt.Errorf("%w: empty payload", ErrBadDataURI)
	}
	return Media{MIMEType: mime, Data: data}, nil
}
