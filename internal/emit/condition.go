package emit

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/jorge-barreto/loom/internal/ir"
)

// Dialect selects the executable form of a compiled condition. It is an
// explicit choice per call site, never inferred from the node kind.
type Dialect int

const (
	// DialectSubshell compiles refs to $(echo "$VAR" | jq -r '.path')
	// subshells and operators to shell test expressions.
	DialectSubshell Dialect = iota
	// DialectInterpolated emits refs as literal $VAR.path tokens and
	// leaves resolution and evaluation to the host environment. It exists
	// to avoid spawning a subshell and jq per conditional.
	DialectInterpolated
)

// Prose renders a condition for human-readable annotations:
// $VAR.path, &&, ||, !, ===, !==, >, >=, <, <=.
func Prose(c ir.Condition) string {
	switch n := c.(type) {
	case *ir.Ref:
		return refToken(n)
	case *ir.Literal:
		return strconv.FormatBool(n.Value)
	case *ir.Not:
		return "!" + proseGroup(n.Operand)
	case *ir.And:
		return proseGroup(n.Left) + " && " + proseGroup(n.Right)
	case *ir.Or:
		return proseGroup(n.Left) + " || " + proseGroup(n.Right)
	case *ir.Eq:
		return Prose(n.Left) + " === " + jsonScalar(n.Right)
	case *ir.Neq:
		return Prose(n.Left) + " !== " + jsonScalar(n.Right)
	case *ir.Compare:
		return Prose(n.Left) + " " + compareOpProse(n.Op) + " " + formatNumber(n.Right)
	case *ir.FileExists:
		return "$" + n.Var
	case *ir.DirExists:
		return "$" + n.Var
	default:
		panic(fmt.Sprintf("emit: unhandled condition node %T", c))
	}
}

// proseGroup parenthesizes boolean combinators so nesting stays readable.
func proseGroup(c ir.Condition) string {
	switch c.(type) {
	case *ir.And, *ir.Or:
		return "(" + Prose(c) + ")"
	}
	return Prose(c)
}

// Executable renders a condition in the selected dialect. The interpolated
// dialect matches the prose form token-for-token: the host resolves
// $VAR.path tokens and evaluates the expression itself.
func Executable(c ir.Condition, d Dialect) string {
	if d == DialectInterpolated {
		return Prose(c)
	}
	return subshell(c)
}

func subshell(c ir.Condition) string {
	switch n := c.(type) {
	case *ir.Ref:
		v := subshellRef(n)
		return fmt.Sprintf(`[ %s != "" ] && [ %s != "null" ] && [ %s != "false" ]`, v, v, v)
	case *ir.Literal:
		return strconv.FormatBool(n.Value)
	case *ir.Not:
		return "! ( " + subshell(n.Operand) + " )"
	case *ir.And:
		return subshellGroup(n.Left) + " && " + subshellGroup(n.Right)
	case *ir.Or:
		return subshellGroup(n.Left) + " || " + subshellGroup(n.Right)
	case *ir.Eq:
		return fmt.Sprintf(`[ %s = "%s" ]`, subshellOperand(n.Left), scalarText(n.Right))
	case *ir.Neq:
		return fmt.Sprintf(`[ %s != "%s" ]`, subshellOperand(n.Left), scalarText(n.Right))
	case *ir.Compare:
		return fmt.Sprintf("[ %s %s %s ]",
			subshellOperand(n.Left), compareOpShell(n.Op), formatNumber(n.Right))
	case *ir.FileExists:
		return `[ -f "$` + n.Var + `" ]`
	case *ir.DirExists:
		return `[ -d "$` + n.Var + `" ]`
	default:
		panic(fmt.Sprintf("emit: unhandled condition node %T", c))
	}
}

func subshellGroup(c ir.Condition) string {
	switch c.(type) {
	case *ir.Or:
		return "( " + subshell(c) + " )"
	}
	return subshell(c)
}

// subshellOperand renders the left side of a comparison. Comparisons are
// defined against refs; a non-ref operand falls back to its truthiness
// expression, which keeps the output a valid shell word.
func subshellOperand(c ir.Condition) string {
	if r, ok := c.(*ir.Ref); ok {
		return subshellRef(r)
	}
	return `"$(` + subshell(c) + ` && echo true || echo false)"`
}

// subshellRef produces a double-quoted shell word for a ref's value.
func subshellRef(r *ir.Ref) string {
	if len(r.Path) == 0 {
		return `"$` + r.Var + `"`
	}
	return fmt.Sprintf(`"$(echo "$%s" | jq -r '%s')"`, r.Var, jqPath(r.Path))
}

func jqPath(path []string) string {
	return "." + strings.Join(path, ".")
}

// refToken is the prose / host-interpolated form of a ref.
func refToken(r *ir.Ref) string {
	tok := "$" + r.Var
	if len(r.Path) > 0 {
		tok += "." + strings.Join(r.Path, ".")
	}
	return tok
}

func compareOpProse(op ir.CompareOp) string {
	switch op {
	case ir.OpGT:
		return ">"
	case ir.OpGTE:
		return ">="
	case ir.OpLT:
		return "<"
	case ir.OpLTE:
		return "<="
	default:
		panic(fmt.Sprintf("emit: unhandled compare op %d", op))
	}
}

func compareOpShell(op ir.CompareOp) string {
	switch op {
	case ir.OpGT:
		return "-gt"
	case ir.OpGTE:
		return "-ge"
	case ir.OpLT:
		return "-lt"
	case ir.OpLTE:
		return "-le"
	default:
		panic(fmt.Sprintf("emit: unhandled compare op %d", op))
	}
}

// jsonScalar renders a comparison operand as JSON ("x", 3, true, null).
func jsonScalar(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("emit: unencodable scalar %v: %v", v, err))
	}
	return string(data)
}

// scalarText renders a comparison operand as the bare text jq -r would
// print for it.
func scalarText(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case nil:
		return "null"
	case bool:
		return strconv.FormatBool(x)
	case float64:
		return formatNumber(x)
	case int:
		return strconv.Itoa(x)
	default:
		return fmt.Sprintf("%v", x)
	}
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
