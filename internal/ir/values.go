package ir

// ArgValue is the value of a named argument on RuntimeCall and SpawnAgent
// nodes: a literal JSON value, a variable reference, or a free-text
// expression the interpreter evaluates.
type ArgValue interface {
	anArgValue()
}

type argValue struct{}

func (argValue) anArgValue() {}

// Arg is a named argument. Arguments are a slice, not a map, so rendering
// order matches declaration order.
type Arg struct {
	Name  string
	Value ArgValue
}

// LiteralArg wraps any JSON-serializable value.
type LiteralArg struct {
	argValue
	Value any
}

// RefArg references a variable, optionally a field path within it.
type RefArg struct {
	argValue
	Var  string
	Path []string
}

// ExprArg carries an expression string plus a human-readable description
// for the argument table.
type ExprArg struct {
	argValue
	Expr        string
	Description string
}

// ----------------------------------------------------------------------------
// Assignment sources

// AssignSource is the right-hand side of an Assign node.
type AssignSource interface {
	anAssignSource()
}

type assignSource struct{}

func (assignSource) anAssignSource() {}

// BashSource captures the stdout of a shell command.
type BashSource struct {
	assignSource
	Command string
}

// ValueSource binds a literal JSON value.
type ValueSource struct {
	assignSource
	Value any
}

// EnvSource reads an environment variable with an optional default.
type EnvSource struct {
	assignSource
	Name    string
	Default string
}

// FileSource reads a file's contents.
type FileSource struct {
	assignSource
	Path string
}

// RuntimeFnSource calls a bundled runtime function.
type RuntimeFnSource struct {
	assignSource
	FnName string
	Args   []Arg
}
