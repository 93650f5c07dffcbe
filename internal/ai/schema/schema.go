// Package schema declares the input and output shapes of an AI capability.
//
// A shape is plain data: an Object holding typed Fields. The same declaration
// validates caller input, validates model output and emits the strict JSON
// schema handed to the model as a structured-output constraint.
package schema

type Kind string

const (
	KindString  Kind = "string"
	KindNumber  Kind = "number"
	KindInteger Kind = "integer"
	KindBoolean Kind = "boolean"
	KindEnum    Kind = "enum"
	KindArray   Kind = "array"
	KindObject  Kind = "object"
	// KindMedia is a string holding a base64 data URI that travels to the
	// model as a file attachment instead of prompt text.
	KindMedia Kind = "media"
)

type Field struct {
	Name        string
	Kind        Kind
	Description string
	Optional    bool

	// NonBlank rejects strings that are empty once surrounding whitespace is trimmed.
	NonBlank  bool
	MinLength int
	Min       *float64
	Max       *float64
	MinItems  int
	MaxItems  int // 0 means unbounded

	Enum   []string
	Items  *Field
	Fields []Field
}

func String(name, description string) Field {
	return Field{Name: name, Kind: KindString, Description: description}
}

func Integer(name, description string) Field {
	return Field{Name: name, Kind: KindInteger, Description: description}
}

func Bool(name, description string) Field {
	return Field{Name: name, Kind: KindBoolean, Description: description}
}

func Enum(name, description string, values ...string) Field {
	return Field{Name: name, Kind: KindEnum, Description: description, Enum: values}
}

func Media(name, description string) Field {
	return Field{Name: name, Kind: KindMedia, Description: description}
}

// List declares an ordered list whose elements match item. The item's name is ignored.
func List(name, description string, item Field) Field {
	item.Name = ""
	item.Optional = false
	return Field{Name: name, Kind: KindArray, Description: description, Items: &item}
}

// Strings is shorthand for a list of plain strings.
func Strings(name, description string) Field {
	return List(name, description, Field{Kind: KindString})
}

// Texts is a list of strings where every element must carry text.
func Texts(name, description string) Field {
	return List(name, description, Field{Kind: KindString, NonBlank: true})
}

// Nested declares a named object field.
func Nested(name, description string, fields ...Field) Field {
	return Field{Name: name, Kind: KindObject, Description: description, Fields: fields}
}

// Record declares an anonymous object, for use as a List item.
func Record(fields ...Field) Field {
	return Field{Kind: KindObject, Fields: fields}
}

func (f Field) Opt() Field {
	f.Optional = true
	return f
}

// Required rejects blank strings as well as missing ones.
func (f Field) Required() Field {
	f.NonBlank = true
	return f
}

func (f Field) MinLen(n int) Field {
	f.MinLength = n
	return f
}

func (f Field) Between(min, max float64) Field {
	f.Min = &min
	f.Max = &max
	return f
}

// Count bounds the number of list elements; max 0 leaves it unbounded.
func (f Field) Count(min, max int) Field {
	f.MinItems = min
	f.MaxItems = max
	return f
}

type Object struct {
	Name        string
	Description string
	Fields      []Field
}

func Define(name, description string, fields ...Field) Object {
	return Object{Name: name, Description: description, Fields: fields}
}

func (o Object) Field(name string) (Field, bool) {
	for _, f := range o.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

func (o Object) FieldNames() []string {
	out := make([]string, 0, len(o.Fields))
	for _, f := range o.Fields {
		out = append(out, f.Name)
	}
	return out
}

func (o Object) MediaFields() []string {
	var out []string
	for _, f := range o.Fields {
		if f.Kind == KindMedia {
			out = append(out, f.Name)
		}
	}
	return out
}
