package emit

import (
	"fmt"

	"github.com/jorge-barreto/loom/internal/ir"
)

// inlines renders a run of inline nodes.
func (e *Emitter) inlines(ns []ir.Inline) string {
	var out string
	for _, n := range ns {
		out += e.inline(n)
	}
	return out
}

func (e *Emitter) inline(n ir.Inline) string {
	switch v := n.(type) {
	case *ir.Text:
		return v.Value
	case *ir.Bold:
		return "**" + e.inlines(v.Children) + "**"
	case *ir.Italic:
		return "*" + e.inlines(v.Children) + "*"
	case *ir.InlineCode:
		return "`" + v.Value + "`"
	case *ir.Link:
		return "[" + e.inlines(v.Children) + "](" + v.URL + ")"
	case *ir.LineBreak:
		return "\n"
	default:
		panic(fmt.Sprintf("emit: unhandled inline node %T", n))
	}
}
