// Package ir defines the document tree compiled by the emitter and the
// condition AST used by control-flow nodes. The variant sets are closed:
// the marker methods restrict implementations to this package, and the
// emitter treats an unknown node as a programming error.
package ir

// Document is the root of one compilation unit. It is built once by the
// front end and never mutated afterwards.
type Document struct {
	Frontmatter *Frontmatter
	Blocks      []Block
}

// Block is the interface for all block-level nodes.
type Block interface {
	aBlock()
}

// Inline is the interface for all inline nodes.
type Inline interface {
	anInline()
}

type block struct{}

func (block) aBlock() {}

type inline struct{}

func (inline) anInline() {}

// ----------------------------------------------------------------------------
// Content blocks

// Heading is an ATX heading. Level must be 1..6; the producer is responsible
// for bounds, the emitter does not reclamp.
type Heading struct {
	block
	Level    int
	Children []Inline
}

type Paragraph struct {
	block
	Children []Inline
}

// List holds ordered or unordered items. Start overrides the first ordinal
// of an ordered list; zero means 1.
type List struct {
	block
	Ordered bool
	Start   int
	Items   []*ListItem
}

// ListItem may contain nested List blocks.
type ListItem struct {
	block
	Children []Block
}

// CodeBlock content is opaque: it is emitted byte-for-byte, never escaped.
type CodeBlock struct {
	block
	Language string
	Content  string
}

type Blockquote struct {
	block
	Children []Block
}

type Table struct {
	block
	Headers []string
	Rows    [][]string
}

// XMLBlock renders as <Name attr="v">…</Name>. Attribute order follows
// slice order.
type XMLBlock struct {
	block
	Name     string
	Attrs    []Attr
	Children []Block
}

type Attr struct {
	Name  string
	Value string
}

type ThematicBreak struct {
	block
}

// Raw content is emitted verbatim.
type Raw struct {
	block
	Content string
}

// Group renders its children as if they were spliced into the parent.
type Group struct {
	block
	Children []Block
}

// Indent prefixes every emitted line of its children with Spaces spaces.
type Indent struct {
	block
	Spaces   int
	Children []Block
}

// ----------------------------------------------------------------------------
// Control / runtime blocks

type If struct {
	block
	Condition Condition
	Children  []Block
}

type Else struct {
	block
	Children []Block
}

// Loop renders a bounded repeat instruction. CounterVar, when set, names the
// variable the interpreter increments.
type Loop struct {
	block
	Max        int
	CounterVar string
	Children   []Block
}

type Break struct {
	block
	Message string
}

type Return struct {
	block
	Status  string
	Message string
}

type AskOption struct {
	Label       string
	Value       string
	Description string
}

type AskUser struct {
	block
	Question  string
	Header    string
	Options   []AskOption
	OutputVar string
}

// RuntimeCall invokes a bundled runtime function through the generated CLI.
// Args keep declaration order so rendering is stable.
type RuntimeCall struct {
	block
	FnName    string
	Args      []Arg
	OutputVar string
}

type SpawnAgent struct {
	block
	Agent       string
	Model       string
	Description string
	Prompt      string
	Input       []Arg
	OutputVar   string
	LoadFromFile string
}

type Assign struct {
	block
	VariableName string
	Source       AssignSource
	Comment      string
}

type AssignGroup struct {
	block
	Assignments []*Assign
}

// ExecutionContext declares the working paths an instruction group runs under.
type ExecutionContext struct {
	block
	Paths    []string
	Prefix   string
	Children []Block
}

// ----------------------------------------------------------------------------
// Swarm blocks

// TaskDef describes one unit of work in a pipeline. TaskID is a UUID.
type TaskDef struct {
	block
	TaskID       string
	Subject      string
	Description  string
	ActiveForm   string
	BlockedByIDs []string
}

type TaskPipeline struct {
	block
	Title    string
	Children []*TaskDef
}

type Teammate struct {
	Name        string
	AgentType   string
	Model       string
	Prompt      string
}

type Team struct {
	block
	TeamName    string
	Description string
	Children    []*Teammate
}

// ----------------------------------------------------------------------------
// Inline nodes

type Text struct {
	inline
	Value string
}

type Bold struct {
	inline
	Children []Inline
}

type Italic struct {
	inline
	Children []Inline
}

type InlineCode struct {
	inline
	Value string
}

type Link struct {
	inline
	Children []Inline
	URL      string
}

type LineBreak struct {
	inline
}
