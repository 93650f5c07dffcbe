package schema

// JSONSchema renders the shape in the strict structured-output dialect: every
// object lists all of its properties as required and forbids extra keys, and
// optional properties become nullable instead of omittable.
func (o Object) JSONSchema() map[string]any {
	s := objectSchema(o.Fields)
	if o.Description != "" {
		s["description"] = o.Description
	}
	return s
}

func objectSchema(fields []Field) map[string]any {
	props := make(map[string]any, len(fields))
	required := make([]string, 0, len(fields))
	for _, f := range fields {
		props[f.Name] = fieldSchema(f)
		required = append(required, f.Name)
	}
	return map[string]any{
		"type":                 "object",
		"properties":           props,
		"required":             required,
		"additionalProperties": false,
	}
}

func fieldSchema(f Field) map[string]any {
	var s map[string]any
	switch f.Kind {
	case KindString, KindMedia:
		s = map[string]any{"type": "string"}
	case KindNumber:
		s = map[string]any{"type": "number"}
	case KindInteger:
		s = map[string]any{"type": "integer"}
	case KindBoolean:
		s = map[string]any{"type": "boolean"}
	case KindEnum:
		values := make([]any, 0, len(f.Enum))
		for _, v := range f.Enum {
			values = append(values, v)
		}
		s = map[string]any{"type": "string", "enum": values}
	case KindArray:
		s = map[string]any{"type": "array"}
		if f.Items != nil {
			s["items"] = fieldSchema(*f.Items)
		}
	case KindObject:
		s = objectSchema(f.Fields)
	default:
		s = map[string]any{}
	}

	if f.Optional {
		s = nullable(s)
	}
	if f.Description != "" {
		s["description"] = f.Description
	}
	return s
}

func nullable(s map[string]any) map[string]any {
	switch t := s["type"].(type) {
	case string:
		if t == "array" || t == "object" {
			return map[string]any{"anyOf": []any{s, map[string]any{"type": "null"}}}
		}
		s["type"] = []any{t, "null"}
		if enum, ok := s["enum"].([]any); ok {
			s["enum"] = append(enum, nil)
		}
	}
	return s
}
