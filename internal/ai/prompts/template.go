package prompts

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/yungbote/growthdesk-backend/internal/ai/schema"
	"github.com/yungbote/growthdesk-backend/internal/platform/llm"
)

// Template is a compiled Spec. It is immutable and safe for concurrent use.
type Template struct {
	Name    PromptName
	Version int
	Input   schema.Object
	Output  schema.Object
	Slots   []string

	system *template.Template
	user   *template.Template
}

// Bind renders the template for an already validated input value. Optional
// fields the caller left out render as the empty string; media fields render
// as an attachment marker and are returned as attachments on the Prompt.
func (t Template) Bind(in map[string]any) (Prompt, error) {
	if t.system == nil || t.user == nil {
		return Prompt{}, fmt.Errorf("prompt %s is not compiled", t.Name)
	}

	data := make(map[string]any, len(t.Input.Fields))
	var media []llm.Media
	for _, f := range t.Input.Fields {
		v, ok := in[f.Name]
		if f.Kind == schema.KindMedia {
			raw, _ := v.(string)
			if raw == "" {
				data[f.Name] = ""
				continue
			}
			m, err := llm.ParseDataURI(raw)
			if err != nil {
				return Prompt{}, fmt.Errorf("%s: %w", f.Name, err)
			}
			media = append(media, m)
			data[f.Name] = fmt.Sprintf("[attached file %d: %s]", len(media), m.MIMEType)
			continue
		}
		if !ok || v == nil {
			data[f.Name] = ""
			continue
		}
		data[f.Name] = v
	}

	system, err := execute(t.system, data)
	if err != nil {
		return Prompt{}, fmt.Errorf("%s system render: %w", t.Name, err)
	}
	user, err := execute(t.user, data)
	if err != nil {
		return Prompt{}, fmt.Errorf("%s user render: %w", t.Name, err)
	}

	return Prompt{
		Name:       string(t.Name),
		Version:    t.Version,
		System:     system,
		User:       user,
		SchemaName: strings.TrimSpace(t.Output.Name),
		Schema:     t.Output.JSONSchema(),
		Media:      media,
	}, nil
}

func execute(t *template.Template, data map[string]any) (string, error) {
	var b bytes.Buffer
	if err := t.Execute(&b, data); err != nil {
		return "", err
	}
	return strings.TrimSpace(b.String()), nil
}
