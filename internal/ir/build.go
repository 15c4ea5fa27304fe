package ir

import "github.com/google/uuid"

// Constructors for the shapes the front end builds constantly. They keep
// document assembly code flat; nothing here is required by the emitter.

// T wraps a string as a Text inline.
func T(s string) *Text { return &Text{Value: s} }

// Inlines wraps plain strings as a []Inline.
func Inlines(ss ...string) []Inline {
	out := make([]Inline, len(ss))
	for i, s := range ss {
		out[i] = T(s)
	}
	return out
}

// H builds a heading with plain-text content.
func H(level int, text string) *Heading {
	return &Heading{Level: level, Children: []Inline{T(text)}}
}

// Para builds a paragraph with plain-text content.
func Para(text string) *Paragraph {
	return &Paragraph{Children: []Inline{T(text)}}
}

// Items builds a list whose items are single plain-text paragraphs.
func Items(ordered bool, texts ...string) *List {
	l := &List{Ordered: ordered}
	for _, t := range texts {
		l.Items = append(l.Items, &ListItem{Children: []Block{Para(t)}})
	}
	return l
}

// NewTaskDef mints a task with a fresh UUID.
func NewTaskDef(subject, description string) *TaskDef {
	return &TaskDef{
		TaskID:      uuid.NewString(),
		Subject:     subject,
		Description: description,
	}
}

// RefOf builds a variable reference condition from a dotted path.
func RefOf(varName string, path ...string) *Ref {
	return &Ref{Var: varName, Path: path}
}
