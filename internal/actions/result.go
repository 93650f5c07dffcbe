package actions

import (
	"encoding/json"

	"github.com/yungbote/growthdesk-backend/internal/ai/aierr"
)

// KindInternal marks failures that carry no aierr classification.
const KindInternal aierr.Kind = "internal"

// Result is either a success payload or a failure message, never both.
// It encodes as the bare payload on success and as exactly {"error": msg} on failure.
type Result[T any] struct {
	Data  T
	Error string

	failed bool
	kind   aierr.Kind
}

func ok[T any](data T) Result[T] {
	return Result[T]{Data: data}
}

func failed[T any](kind aierr.Kind, msg string) Result[T] {
	return Result[T]{Error: msg, failed: true, kind: kind}
}

func (r Result[T]) OK() bool { return !r.failed }

// Kind reports the failure kind, or "" on success. It is meant for choosing a
// transport status, not for display.
func (r Result[T]) Kind() aierr.Kind { return r.kind }

func (r Result[T]) MarshalJSON() ([]byte, error) {
	if r.failed {
		return json.Marshal(struct {
			Error string `json:"error"`
		}{Error: r.Error})
	}
	return json.Marshal(r.Data)
}
