package emit

import (
	"testing"

	"github.com/jorge-barreto/loom/internal/ir"
)

func TestProse_Ref(t *testing.T) {
	if got := Prose(ir.RefOf("VAR")); got != "$VAR" {
		t.Fatalf("got %q", got)
	}
	if got := Prose(ir.RefOf("VAR", "path", "to", "field")); got != "$VAR.path.to.field" {
		t.Fatalf("got %q", got)
	}
}

func TestProse_Operators(t *testing.T) {
	cases := []struct {
		cond ir.Condition
		want string
	}{
		{&ir.Literal{Value: true}, "true"},
		{&ir.Literal{Value: false}, "false"},
		{&ir.And{Left: ir.RefOf("X"), Right: ir.RefOf("Y")}, "$X && $Y"},
		{&ir.Or{Left: ir.RefOf("X"), Right: ir.RefOf("Y")}, "$X || $Y"},
		{&ir.Not{Operand: ir.RefOf("X")}, "!$X"},
		{
			&ir.Not{Operand: &ir.And{Left: ir.RefOf("A"), Right: ir.RefOf("B")}},
			"!($A && $B)",
		},
		{
			&ir.And{
				Left:  &ir.Or{Left: ir.RefOf("A"), Right: ir.RefOf("B")},
				Right: ir.RefOf("C"),
			},
			"($A || $B) && $C",
		},
		{&ir.Eq{Left: ir.RefOf("STATUS", "code"), Right: "ok"}, `$STATUS.code === "ok"`},
		{&ir.Eq{Left: ir.RefOf("N"), Right: 3}, "$N === 3"},
		{&ir.Neq{Left: ir.RefOf("MODE"), Right: nil}, "$MODE !== null"},
		{&ir.Compare{Op: ir.OpGT, Left: ir.RefOf("COUNT"), Right: 3}, "$COUNT > 3"},
		{&ir.Compare{Op: ir.OpGTE, Left: ir.RefOf("COUNT"), Right: 1.5}, "$COUNT >= 1.5"},
		{&ir.Compare{Op: ir.OpLT, Left: ir.RefOf("COUNT"), Right: 10}, "$COUNT < 10"},
		{&ir.Compare{Op: ir.OpLTE, Left: ir.RefOf("COUNT"), Right: 0}, "$COUNT <= 0"},
	}
	for _, c := range cases {
		if got := Prose(c.cond); got != c.want {
			t.Fatalf("got %q, want %q", got, c.want)
		}
	}
}

func TestSubshell_RefTruthiness(t *testing.T) {
	got := Executable(ir.RefOf("V"), DialectSubshell)
	want := `[ "$V" != "" ] && [ "$V" != "null" ] && [ "$V" != "false" ]`
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestSubshell_RefPathUsesJq(t *testing.T) {
	got := Executable(ir.RefOf("RESULT", "ok"), DialectSubshell)
	ref := `"$(echo "$RESULT" | jq -r '.ok')"`
	want := "[ " + ref + ` != "" ] && [ ` + ref + ` != "null" ] && [ ` + ref + ` != "false" ]`
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestSubshell_Comparisons(t *testing.T) {
	cases := []struct {
		cond ir.Condition
		want string
	}{
		{
			&ir.Compare{Op: ir.OpGT, Left: ir.RefOf("N", "count"), Right: 3},
			`[ "$(echo "$N" | jq -r '.count')" -gt 3 ]`,
		},
		{
			&ir.Compare{Op: ir.OpLTE, Left: ir.RefOf("N"), Right: 2},
			`[ "$N" -le 2 ]`,
		},
		{
			&ir.Eq{Left: ir.RefOf("S"), Right: "ok"},
			`[ "$S" = "ok" ]`,
		},
		{
			&ir.Neq{Left: ir.RefOf("S", "status"), Right: "failed"},
			`[ "$(echo "$S" | jq -r '.status')" != "failed" ]`,
		},
		{
			&ir.Eq{Left: ir.RefOf("B"), Right: true},
			`[ "$B" = "true" ]`,
		},
	}
	for _, c := range cases {
		if got := Executable(c.cond, DialectSubshell); got != c.want {
			t.Fatalf("got %q, want %q", got, c.want)
		}
	}
}

func TestSubshell_BooleanCombinators(t *testing.T) {
	cond := &ir.And{
		Left:  &ir.Eq{Left: ir.RefOf("A"), Right: "x"},
		Right: &ir.Or{
			Left:  &ir.Eq{Left: ir.RefOf("B"), Right: "y"},
			Right: &ir.Literal{Value: true},
		},
	}
	got := Executable(cond, DialectSubshell)
	want := `[ "$A" = "x" ] && ( [ "$B" = "y" ] || true )`
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestSubshell_Not(t *testing.T) {
	got := Executable(&ir.Not{Operand: &ir.Eq{Left: ir.RefOf("A"), Right: "x"}}, DialectSubshell)
	want := `! ( [ "$A" = "x" ] )`
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestPathTests(t *testing.T) {
	cond := &ir.And{
		Left:  &ir.FileExists{Var: "X"},
		Right: &ir.DirExists{Var: "Y"},
	}

	if got, want := Prose(cond), "$X && $Y"; got != want {
		t.Fatalf("prose: got %q, want %q", got, want)
	}
	got := Executable(cond, DialectSubshell)
	want := `[ -f "$X" ] && [ -d "$Y" ]`
	if got != want {
		t.Fatalf("subshell: got %q, want %q", got, want)
	}
	if got := Executable(cond, DialectInterpolated); got != "$X && $Y" {
		t.Fatalf("interpolated: got %q", got)
	}
}

func TestInterpolated_MatchesProse(t *testing.T) {
	conds := []ir.Condition{
		ir.RefOf("VAR", "a", "b"),
		&ir.And{Left: ir.RefOf("X"), Right: &ir.Eq{Left: ir.RefOf("Y", "z"), Right: "v"}},
		&ir.Compare{Op: ir.OpGTE, Left: ir.RefOf("N"), Right: 7},
	}
	for _, c := range conds {
		if got, want := Executable(c, DialectInterpolated), Prose(c); got != want {
			t.Fatalf("interpolated %q != prose %q", got, want)
		}
	}
}
