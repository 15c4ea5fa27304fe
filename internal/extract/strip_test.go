package extract

import (
	"strings"
	"testing"
)

func TestBodyStart_NoReturnType(t *testing.T) {
	src := "function f(a, b) { return a; }"
	idx := bodyStart(src)
	if idx < 0 || src[idx] != '{' {
		t.Fatalf("bodyStart = %d", idx)
	}
	if !strings.HasPrefix(src[idx:], "{ return a; }") {
		t.Fatalf("wrong brace: %q", src[idx:])
	}
}

func TestBodyStart_NestedReturnType(t *testing.T) {
	src := "async function f(a: string): Promise<{ a: number; b: string[] }> { return null; }"
	idx := bodyStart(src)
	if idx < 0 {
		t.Fatal("no body found")
	}
	if !strings.HasPrefix(src[idx:], "{ return null; }") {
		t.Fatalf("body start landed inside the return type: %q", src[idx:])
	}
}

func TestBodyStart_ObjectLiteralReturnType(t *testing.T) {
	src := "function f(): { ok: boolean } { return { ok: true }; }"
	idx := bodyStart(src)
	if idx < 0 || !strings.HasPrefix(src[idx:], "{ return { ok: true }; }") {
		t.Fatalf("got %q", src[idx:])
	}
}

func TestBodyStart_ParenthesizedParamTypes(t *testing.T) {
	src := "function f(cb: (x: number) => void): void { cb(1); }"
	idx := bodyStart(src)
	if idx < 0 || !strings.HasPrefix(src[idx:], "{ cb(1); }") {
		t.Fatalf("got %q", src[idx:])
	}
}

func TestParamNames(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"a: string, b: number", []string{"a", "b"}},
		{"input: { id: string; n: number }, flag: boolean", []string{"input", "flag"}},
		{"a = 5, b: string = 'x'", []string{"a", "b"}},
		{"opt?: Config", []string{"opt"}},
		{"...rest: string[]", []string{"...rest"}},
		{"", nil},
		{"m: Map<string, number>", []string{"m"}},
		{"cb: (x: number) => void, flag: boolean", []string{"cb", "flag"}},
	}
	for _, c := range cases {
		got := paramNames(c.in)
		if len(got) != len(c.want) {
			t.Fatalf("paramNames(%q) = %v, want %v", c.in, got, c.want)
		}
		for i := range got {
			if got[i] != c.want[i] {
				t.Fatalf("paramNames(%q) = %v, want %v", c.in, got, c.want)
			}
		}
	}
}

func TestStripBodyTypes_VarAnnotations(t *testing.T) {
	in := "const x: Map<string, number> = new Map();\nlet y: string;\nvar z: number = 1;"
	got := stripBodyTypes(in)
	want := "const x = new Map();\nlet y;\nvar z = 1;"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

// A function-type annotation contains '=>'; its '>' must not unbalance
// the depth scan and swallow the initializer or later statements.
func TestStripBodyTypes_FunctionTypeAnnotation(t *testing.T) {
	cases := []struct{ in, want string }{
		{
			"const handler: (x: number) => void = (x) => use(x);\nrun();",
			"const handler = (x) => use(x);\nrun();",
		},
		{
			"const hooks: Map<string, () => void> = new Map();",
			"const hooks = new Map();",
		},
	}
	for _, c := range cases {
		if got := stripBodyTypes(c.in); got != c.want {
			t.Fatalf("stripBodyTypes(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestStripBodyTypes_AsCasts(t *testing.T) {
	cases := []struct{ in, want string }{
		{"const a = data as Config;", "const a = data;"},
		{"return x as unknown as string;", "return x;"},
		{"const opts = { deep: true } as const;", "const opts = { deep: true };"},
		{"use(value as Promise<{ ok: boolean }>);", "use(value);"},
	}
	for _, c := range cases {
		if got := stripBodyTypes(c.in); got != c.want {
			t.Fatalf("stripBodyTypes(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestStripBodyTypes_PrefixCast(t *testing.T) {
	got := stripBodyTypes("const n = <number>value; f(<Foo<T>>x);")
	want := "const n = value; f(x);"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestStripBodyTypes_ArrowAnnotations(t *testing.T) {
	cases := []struct{ in, want string }{
		{
			"const f = (a: string, b: Config): Promise<void> => run(a, b);",
			"const f = (a, b) => run(a, b);",
		},
		{
			"items.map((x: Item) => x.id);",
			"items.map((x) => x.id);",
		},
		{
			"const g = (a, b) => a + b;",
			"const g = (a, b) => a + b;",
		},
	}
	for _, c := range cases {
		if got := stripBodyTypes(c.in); got != c.want {
			t.Fatalf("stripBodyTypes(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestStripBodyTypes_ObjectLiteralsUntouched(t *testing.T) {
	in := "return { a: x, b: [input.id], nested: { c: 1 } };"
	if got := stripBodyTypes(in); got != in {
		t.Fatalf("object literal was rewritten: %q", got)
	}
}

// A Promise<{...}> return type must leave zero colons and angle
// brackets ahead of the body brace.
func TestScan_FullErasure(t *testing.T) {
	src := `export async function demo(input: { id: string }, count: number = 3): Promise<{ a: number; b: string[] }> {
  const x: number = count as number;
  return { a: x, b: [input.id] };
}
`
	sf := ScanSource("demo.ts", src)
	if len(sf.Functions) != 1 {
		t.Fatalf("got %d functions", len(sf.Functions))
	}
	fn := sf.Functions[0]
	if !fn.IsAsync {
		t.Fatal("async flag lost")
	}
	if len(fn.Params) != 2 || fn.Params[0] != "input" || fn.Params[1] != "count" {
		t.Fatalf("params = %v", fn.Params)
	}

	sig := fn.Source[:strings.IndexByte(fn.Source, '{')]
	if strings.ContainsAny(sig, ":<>") {
		t.Fatalf("type syntax survived in signature: %q", sig)
	}
	if !strings.Contains(fn.Source, "const x = count;") {
		t.Fatalf("body not erased: %q", fn.Source)
	}
	if !strings.Contains(fn.Source, "return { a: x, b: [input.id] };") {
		t.Fatalf("body content damaged: %q", fn.Source)
	}
}
