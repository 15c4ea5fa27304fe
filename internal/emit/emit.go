// Package emit renders an ir.Document to Markdown/XML text. Emission is
// deterministic and does no I/O. The node dispatch is exhaustive over the
// closed variant sets in package ir: an unknown node kind panics rather
// than silently dropping content.
package emit

import (
	"fmt"
	"strings"

	"github.com/jorge-barreto/loom/internal/ir"
)

// Emitter renders documents. The zero value uses the subshell condition
// dialect. An Emitter carries the list-nesting stack for the duration of
// one Emit call and must not be shared by concurrent Emit calls; a fresh
// Emitter per call is always safe.
type Emitter struct {
	Dialect Dialect

	lists []listCtx
}

type listCtx struct {
	ordered bool
	index   int
}

// Emit renders the document. Top-level blocks are joined with a blank line
// and the output ends with exactly one trailing newline. An empty document
// renders to the empty string.
func (e *Emitter) Emit(doc *ir.Document) string {
	var parts []string
	if doc.Frontmatter != nil && len(doc.Frontmatter.Fields) > 0 {
		parts = append(parts, renderFrontmatter(doc.Frontmatter))
	}
	for _, b := range doc.Blocks {
		parts = append(parts, e.block(b))
	}
	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, "\n\n") + "\n"
}

// block renders a single block without a trailing newline.
func (e *Emitter) block(b ir.Block) string {
	switch n := b.(type) {
	case *ir.Heading:
		return strings.Repeat("#", n.Level) + " " + e.inlines(n.Children)
	case *ir.Paragraph:
		return e.inlines(n.Children)
	case *ir.List:
		return e.list(n)
	case *ir.CodeBlock:
		return "```" + n.Language + "\n" + n.Content + "\n```"
	case *ir.Blockquote:
		return prefixLines(e.blocks(n.Children), "> ", ">")
	case *ir.Table:
		return renderTable(n)
	case *ir.XMLBlock:
		return e.xmlBlock(n)
	case *ir.ThematicBreak:
		return "---"
	case *ir.Raw:
		return n.Content
	case *ir.Group:
		return e.blocks(n.Children)
	case *ir.Indent:
		pad := strings.Repeat(" ", n.Spaces)
		return prefixLines(e.blocks(n.Children), pad, "")
	case *ir.If:
		return "**If " + Prose(n.Condition) + ":**\n\n" + e.blocks(n.Children)
	case *ir.Else:
		return "**Otherwise:**\n\n" + e.blocks(n.Children)
	case *ir.Loop:
		header := fmt.Sprintf("**Loop up to %d times", n.Max)
		if n.CounterVar != "" {
			header += fmt.Sprintf(" (counter: $%s)", n.CounterVar)
		}
		header += ":**"
		return header + "\n\n" + e.blocks(n.Children)
	case *ir.Break:
		if n.Message != "" {
			return "**Break out of the loop:** " + n.Message
		}
		return "**Break out of the loop.**"
	case *ir.Return:
		return renderReturn(n)
	case *ir.AskUser:
		return e.askUser(n)
	case *ir.RuntimeCall:
		return e.runtimeCall(n)
	case *ir.SpawnAgent:
		return e.spawnAgent(n)
	case *ir.Assign:
		return e.assign(n)
	case *ir.AssignGroup:
		return e.assignGroup(n)
	case *ir.ExecutionContext:
		return e.executionContext(n)
	case *ir.TaskDef:
		return e.taskDef(n)
	case *ir.TaskPipeline:
		return e.taskPipeline(n)
	case *ir.Team:
		return e.team(n)
	default:
		panic(fmt.Sprintf("emit: unhandled block node %T", b))
	}
}

// blocks renders children joined with a blank line.
func (e *Emitter) blocks(bs []ir.Block) string {
	parts := make([]string, len(bs))
	for i, b := range bs {
		parts[i] = e.block(b)
	}
	return strings.Join(parts, "\n\n")
}

// list renders a list using the nesting stack. Depth d (1-based stack
// height) indents by 2*(d-1) spaces; ordered numbering is independent per
// level and starts at Start (default 1).
func (e *Emitter) list(l *ir.List) string {
	start := l.Start
	if start == 0 {
		start = 1
	}
	e.lists = append(e.lists, listCtx{ordered: l.Ordered, index: start})
	defer func() { e.lists = e.lists[:len(e.lists)-1] }()

	indent := strings.Repeat("  ", len(e.lists)-1)
	ctx := &e.lists[len(e.lists)-1]

	var lines []string
	for _, item := range l.Items {
		lines = append(lines, e.listItem(item, ctx, indent))
	}
	return strings.Join(lines, "\n")
}

func (e *Emitter) listItem(item *ir.ListItem, ctx *listCtx, indent string) string {
	marker := "-"
	if ctx.ordered {
		marker = fmt.Sprintf("%d.", ctx.index)
		ctx.index++
	}

	var lines []string
	rest := item.Children

	// The first paragraph-like child goes on the marker line.
	if len(rest) > 0 {
		if p, ok := rest[0].(*ir.Paragraph); ok {
			lines = append(lines, indent+marker+" "+e.inlines(p.Children))
			rest = rest[1:]
		} else {
			lines = append(lines, indent+marker)
		}
	} else {
		lines = append(lines, indent+marker)
	}

	for _, child := range rest {
		if nested, ok := child.(*ir.List); ok {
			// Nested lists indent themselves via the stack.
			lines = append(lines, e.list(nested))
			continue
		}
		lines = append(lines, prefixLines(e.block(child), indent+"  ", ""))
	}
	return strings.Join(lines, "\n")
}

func renderTable(t *ir.Table) string {
	var sb strings.Builder
	if len(t.Headers) > 0 {
		sb.WriteString(tableRow(t.Headers))
		sb.WriteByte('\n')
		sep := make([]string, len(t.Headers))
		for i := range sep {
			sep[i] = "---"
		}
		sb.WriteString(tableRow(sep))
		if len(t.Rows) > 0 {
			sb.WriteByte('\n')
		}
	}
	for i, row := range t.Rows {
		sb.WriteString(tableRow(row))
		if i < len(t.Rows)-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func tableRow(cells []string) string {
	return "| " + strings.Join(cells, " | ") + " |"
}

// xmlBlock renders matching open/close tags with attributes in insertion
// order. Attribute values are escaped.
func (e *Emitter) xmlBlock(x *ir.XMLBlock) string {
	var open strings.Builder
	open.WriteByte('<')
	open.WriteString(x.Name)
	for _, a := range x.Attrs {
		open.WriteByte(' ')
		open.WriteString(a.Name)
		open.WriteString(`="`)
		open.WriteString(escapeAttr(a.Value))
		open.WriteByte('"')
	}
	open.WriteByte('>')

	body := strings.Trim(e.blocks(x.Children), "\n")
	if body == "" {
		return open.String() + "\n</" + x.Name + ">"
	}
	return open.String() + "\n" + body + "\n</" + x.Name + ">"
}

func escapeAttr(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, `"`, "&quot;")
	return s
}

func renderReturn(n *ir.Return) string {
	out := "**Return"
	if n.Status != "" {
		out += " with status `" + n.Status + "`"
	}
	if n.Message != "" {
		out += ":** " + n.Message
	} else {
		out += ".**"
	}
	return out
}

// prefixLines prepends prefix to every non-blank line and blankPrefix to
// blank lines. An empty blankPrefix leaves blank lines untouched.
func prefixLines(s, prefix, blankPrefix string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line == "" {
			if blankPrefix != "" {
				lines[i] = blankPrefix
			}
			continue
		}
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}
