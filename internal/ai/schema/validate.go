package schema

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/yungbote/growthdesk-backend/internal/platform/llm"
)

type Violation struct {
	Path    string
	Message string
}

func (v Violation) String() string {
	if v.Path == "" {
		return v.Message
	}
	return v.Path + " " + v.Message
}

// ValidationError lists every field that failed validation against a shape.
type ValidationError struct {
	Schema     string
	Violations []Violation
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, v.String())
	}
	return fmt.Sprintf("%s: %s", e.Schema, strings.Join(parts, "; "))
}

// Validate checks v against the shape. Keys not declared by the shape are ignored.
func (o Object) Validate(v map[string]any) error {
	var out []Violation
	if v == nil {
		out = append(out, Violation{Message: "must be an object"})
	} else {
		validateFields("", o.Fields, v, &out)
	}
	if len(out) == 0 {
		return nil
	}
	return &ValidationError{Schema: o.Name, Violations: out}
}

func validateFields(prefix string, fields []Field, obj map[string]any, out *[]Violation) {
	for _, f := range fields {
		validateValue(joinPath(prefix, f.Name), f, obj[f.Name], out)
	}
}

func validateValue(path string, f Field, v any, out *[]Violation) {
	add := func(format string, args ...any) {
		*out = append(*out, Violation{Path: path, Message: fmt.Sprintf(format, args...)})
	}
	if v == nil {
		if !f.Optional {
			add("is required")
		}
		return
	}

	switch f.Kind {
	case KindString:
		s, ok := v.(string)
		if !ok {
			add("must be a string")
			return
		}
		if f.Optional && s == "" {
			return
		}
		if f.NonBlank && strings.TrimSpace(s) == "" {
			add("must not be blank")
			return
		}
		if f.MinLength > 0 && utf8.RuneCountInString(s) < f.MinLength {
			add("must be at least %d characters", f.MinLength)
		}
	case KindMedia:
		s, ok := v.(string)
		if !ok {
			add("must be a string")
			return
		}
		if _, err := llm.ParseDataURI(s); err != nil {
			add("must be a base64 data URI with a MIME type (%v)", err)
		}
	case KindEnum:
		s, ok := v.(string)
		if !ok {
			add("must be a string")
			return
		}
		for _, allowed := range f.Enum {
			if s == allowed {
				return
			}
		}
		add("must be one of %s", strings.Join(f.Enum, ", "))
	case KindBoolean:
		if _, ok := v.(bool); !ok {
			add("must be a boolean")
		}
	case KindNumber, KindInteger:
		n, ok := toFloat(v)
		if !ok {
			add("must be a number")
			return
		}
		if f.Kind == KindInteger && n != math.Trunc(n) {
			add("must be an integer")
			return
		}
		if f.Min != nil && n < *f.Min {
			add("must be at least %v", *f.Min)
		}
		if f.Max != nil && n > *f.Max {
			add("must be at most %v", *f.Max)
		}
	case KindArray:
		items, ok := v.([]any)
		if !ok {
			add("must be a list")
			return
		}
		if len(items) < f.MinItems {
			add("must have at least %d items", f.MinItems)
		}
		if f.MaxItems > 0 && len(items) > f.MaxItems {
			add("must have at most %d items", f.MaxItems)
		}
		if f.Items == nil {
			return
		}
		for i, item := range items {
			validateValue(fmt.Sprintf("%s[%d]", path, i), *f.Items, item, out)
		}
	case KindObject:
		obj, ok := v.(map[string]any)
		if !ok {
			add("must be an object")
			return
		}
		validateFields(path, f.Fields, obj, out)
	default:
		add("has unsupported kind %q", f.Kind)
	}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

func joinPath(prefix, name string) string {
	switch {
	case prefix == "":
		return name
	case name == "":
		return prefix
	default:
		return prefix + "." + name
	}
}
