package ir

// Condition is the recursive AST used by if blocks and loop guards.
type Condition interface {
	aCondition()
}

type condition struct{}

func (condition) aCondition() {}

// Ref reads a variable, optionally descending into a field path.
// Truthy means non-empty, not "null", not "false".
type Ref struct {
	condition
	Var  string
	Path []string
}

type Literal struct {
	condition
	Value bool
}

type Not struct {
	condition
	Operand Condition
}

type And struct {
	condition
	Left  Condition
	Right Condition
}

type Or struct {
	condition
	Left  Condition
	Right Condition
}

// Eq compares a condition's value against a JSON scalar (string, number,
// bool, or nil).
type Eq struct {
	condition
	Left  Condition
	Right any
}

type Neq struct {
	condition
	Left  Condition
	Right any
}

// FileExists is true when the path held by Var names an existing file.
type FileExists struct {
	condition
	Var string
}

// DirExists is true when the path held by Var names an existing directory.
type DirExists struct {
	condition
	Var string
}

// CompareOp is the operator of a numeric Compare node.
type CompareOp int

const (
	OpGT CompareOp = iota
	OpGTE
	OpLT
	OpLTE
)

type Compare struct {
	condition
	Op    CompareOp
	Left  Condition
	Right float64
}
