package prompts

import (
	"fmt"
	"sort"
	"strings"
	"text/template"
	"text/template/parse"

	"github.com/yungbote/growthdesk-backend/internal/ai/schema"
)

// Spec is the declaration each capability writes once.
// System and User are Go templates addressing input fields as {{.fieldName}}.
type Spec struct {
	Name    PromptName
	Version int
	Input   schema.Object
	Output  schema.Object
	System  string
	User    string
}

// MakeTemplate compiles a Spec. Every slot referenced by System or User must be
// a field of the input shape.
func MakeTemplate(s Spec) (Template, error) {
	if strings.TrimSpace(string(s.Name)) == "" {
		return Template{}, fmt.Errorf("missing prompt name")
	}
	if s.Version <= 0 {
		return Template{}, fmt.Errorf("invalid version for %s", s.Name)
	}
	if strings.TrimSpace(s.Output.Name) == "" {
		return Template{}, fmt.Errorf("missing output schema name for %s", s.Name)
	}
	if len(s.Output.Fields) == 0 {
		return Template{}, fmt.Errorf("empty output schema for %s", s.Name)
	}
	sysT, err := template.New("system").Option("missingkey=error").Parse(s.System)
	if err != nil {
		return Template{}, fmt.Errorf("%s system template parse: %w", s.Name, err)
	}
	userT, err := template.New("user").Option("missingkey=error").Parse(s.User)
	if err != nil {
		return Template{}, fmt.Errorf("%s user template parse: %w", s.Name, err)
	}

	declared := map[string]bool{}
	for _, name := range s.Input.FieldNames() {
		declared[name] = true
	}
	slots := map[string]bool{}
	collectSlots(sysT.Tree.Root, slots)
	collectSlots(userT.Tree.Root, slots)

	var unknown []string
	for slot := range slots {
		if !declared[slot] {
			unknown = append(unknown, slot)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return Template{}, fmt.Errorf("%s references undeclared input fields: %s", s.Name, strings.Join(unknown, ", "))
	}

	names := make([]string, 0, len(slots))
	for slot := range slots {
		names = append(names, slot)
	}
	sort.Strings(names)

	return Template{
		Name:    s.Name,
		Version: s.Version,
		Input:   s.Input,
		Output:  s.Output,
		Slots:   names,
		system:  sysT,
		user:    userT,
	}, nil
}

// collectSlots records the first identifier of every {{.field}} reference.
func collectSlots(node parse.Node, out map[string]bool) {
	switch n := node.(type) {
	case nil:
		return
	case *parse.ListNode:
		if n == nil {
			return
		}
		for _, c := range n.Nodes {
			collectSlots(c, out)
		}
	case *parse.ActionNode:
		collectSlots(n.Pipe, out)
	case *parse.PipeNode:
		if n == nil {
			return
		}
		for _, cmd := range n.Cmds {
			collectSlots(cmd, out)
		}
	case *parse.CommandNode:
		for _, arg := range n.Args {
			collectSlots(arg, out)
		}
	case *parse.FieldNode:
		if len(n.Ident) > 0 {
			out[n.Ident[0]] = true
		}
	case *parse.ChainNode:
		collectSlots(n.Node, out)
	case *parse.IfNode:
		collectBranch(&n.BranchNode, out)
	case *parse.RangeNode:
		collectBranch(&n.BranchNode, out)
	case *parse.WithNode:
		collectBranch(&n.BranchNode, out)
	case *parse.TemplateNode:
		collectSlots(n.Pipe, out)
	}
}

func collectBranch(b *parse.BranchNode, out map[string]bool) {
	collectSlots(b.Pipe, out)
	collectSlots(b.List, out)
	collectSlots(b.ElseList, out)
}

// RegisterSpec compiles s and registers it, panicking on a malformed Spec.
func (r *Registry) RegisterSpec(s Spec) Template {
	t, err := MakeTemplate(s)
	if err != nil {
		panic(err)
	}
	r.Register(t)
	return t
}
