// Package extract discovers exported functions and constants in
// TypeScript-like runtime sources, erases their type syntax, and renames
// them for namespace safety. It deliberately stops far short of a type
// checker: the goal is erasure, not validation.
package extract

import (
	"regexp"
	"strings"
)

// SourceFile is the scanned shape of one runtime module.
type SourceFile struct {
	Path      string
	Functions []FunctionDecl
	Constants []ConstantDecl
	Imports   []string
}

// FunctionDecl is a discovered exported function with type syntax erased.
type FunctionDecl struct {
	Name    string
	Params  []string
	IsAsync bool
	Source  string
}

// ConstantDecl is a discovered exported literal constant. Value holds the
// literal source text with any `as Type` suffix removed.
type ConstantDecl struct {
	Name  string
	Value string
}

var (
	importRe  = regexp.MustCompile(`^import\s+(?:type\s+)?(?:[^'"]*?from\s+)?['"]([^'"]+)['"]`)
	funcRe    = regexp.MustCompile(`^export\s+(async\s+)?function\s+([A-Za-z_$][\w$]*)`)
	constRe   = regexp.MustCompile(`^export\s+const\s+([A-Za-z_$][\w$]*)(\s*:\s*[^=]*?)?\s*=\s*`)
	arrowHead = regexp.MustCompile(`^(async\s*)?(\(|function\b|[A-Za-z_$][\w$]*\s*=>)`)
)

// ScanSource discovers top-level exported declarations and import
// specifiers in source text. Only depth-zero statement starts are
// considered; nested and non-exported declarations are ignored.
func ScanSource(path, src string) *SourceFile {
	sf := &SourceFile{Path: path}
	for _, start := range statementStarts(src) {
		rest := src[start:]
		if m := importRe.FindStringSubmatch(rest); m != nil {
			sf.Imports = append(sf.Imports, m[1])
			continue
		}
		if m := funcRe.FindStringSubmatchIndex(rest); m != nil {
			if fn := scanFunctionDecl(rest, m); fn != nil {
				sf.Functions = append(sf.Functions, *fn)
			}
			continue
		}
		if m := constRe.FindStringSubmatchIndex(rest); m != nil {
			name := rest[m[2]:m[3]]
			init := rest[m[1]:]
			if arrowHead.MatchString(init) {
				if fn := scanConstFunction(name, init); fn != nil {
					sf.Functions = append(sf.Functions, *fn)
				}
				continue
			}
			if value, ok := scanLiteral(init); ok {
				sf.Constants = append(sf.Constants, ConstantDecl{Name: name, Value: value})
			}
		}
	}
	return sf
}

// scanFunctionDecl extracts an `export [async] function name(...)` decl
// and erases its type syntax.
func scanFunctionDecl(src string, m []int) *FunctionDecl {
	isAsync := m[2] >= 0
	name := src[m[4]:m[5]]

	bodyOpen := bodyStart(src)
	if bodyOpen < 0 {
		return nil
	}
	bodyClose := matchBrace(src, bodyOpen)
	if bodyClose < 0 {
		return nil
	}

	paramOpen := strings.IndexByte(src, '(')
	paramClose := matchParen(src, paramOpen)
	params := paramNames(src[paramOpen+1 : paramClose])
	body := stripBodyTypes(src[bodyOpen+1 : bodyClose])

	var sb strings.Builder
	if isAsync {
		sb.WriteString("async ")
	}
	sb.WriteString("function " + name + "(" + strings.Join(params, ", ") + ") {")
	sb.WriteString(body)
	sb.WriteString("}")

	return &FunctionDecl{Name: name, Params: params, IsAsync: isAsync, Source: sb.String()}
}

// scanConstFunction extracts an `export const name = <arrow/function>` decl.
func scanConstFunction(name, init string) *FunctionDecl {
	end := initializerEnd(init)
	value := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(init[:end]), ";"))
	isAsync := strings.HasPrefix(value, "async")

	var params []string
	open := strings.IndexByte(value, '(')
	if arrow := strings.Index(value, "=>"); arrow >= 0 && (open < 0 || open > arrow) {
		// Single-parameter arrow without parens.
		head := strings.TrimSpace(strings.TrimPrefix(value[:arrow], "async"))
		params = []string{strings.TrimSpace(head)}
	} else if open >= 0 {
		if closeIdx := matchParen(value, open); closeIdx > open {
			params = paramNames(value[open+1 : closeIdx])
		}
	}

	stripped := stripBodyTypes(value)
	return &FunctionDecl{
		Name:    name,
		Params:  params,
		IsAsync: isAsync,
		Source:  "const " + name + " = " + stripped + ";",
	}
}

// scanLiteral captures an object/array/string/number/boolean literal
// initializer. Any `as Type` / `as const` suffix is stripped before the
// value is stored. Returns ok=false for initializers that are not plain
// literals (identifiers, calls, new expressions).
func scanLiteral(init string) (string, bool) {
	if init == "" {
		return "", false
	}
	c := init[0]
	isLiteral := c == '{' || c == '[' || c == '"' || c == '\'' || c == '`' ||
		c == '-' || (c >= '0' && c <= '9') ||
		strings.HasPrefix(init, "true") || strings.HasPrefix(init, "false")
	if !isLiteral {
		return "", false
	}
	end := initializerEnd(init)
	value := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(init[:end]), ";"))
	value = strings.TrimSpace(stripAsCasts(value))
	return value, true
}

// initializerEnd finds the end of an initializer expression: the first
// depth-0 ';' or, failing that, the end of the text.
func initializerEnd(s string) int {
	depth := 0
	var inStr byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inStr != 0 {
			if c == '\\' {
				i++
			} else if c == inStr {
				inStr = 0
			}
			continue
		}
		switch c {
		case '"', '\'', '`':
			inStr = c
		case '{', '(', '[':
			depth++
		case '}', ')', ']':
			depth--
		case ';':
			if depth == 0 {
				return i + 1
			}
		}
	}
	return len(s)
}

// matchBrace returns the index of the '}' matching the '{' at open,
// skipping string literals.
func matchBrace(s string, open int) int {
	depth := 0
	var inStr byte
	for i := open; i < len(s); i++ {
		c := s[i]
		if inStr != 0 {
			if c == '\\' {
				i++
			} else if c == inStr {
				inStr = 0
			}
			continue
		}
		switch c {
		case '"', '\'', '`':
			inStr = c
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// statementStarts returns the offsets of depth-zero line starts, skipping
// lines inside braces, strings, and comments.
func statementStarts(src string) []int {
	var starts []int
	depth := 0
	var inStr byte
	inLineComment := false
	inBlockComment := false
	atLineStart := true

	for i := 0; i < len(src); i++ {
		c := src[i]

		if atLineStart && depth == 0 && inStr == 0 && !inBlockComment {
			starts = append(starts, i)
		}
		atLineStart = false

		switch {
		case inLineComment:
			if c == '\n' {
				inLineComment = false
				atLineStart = true
			}
		case inBlockComment:
			if c == '*' && i+1 < len(src) && src[i+1] == '/' {
				inBlockComment = false
				i++
			} else if c == '\n' {
				atLineStart = true
			}
		case inStr != 0:
			if c == '\\' {
				i++
			} else if c == inStr {
				inStr = 0
			} else if c == '\n' {
				atLineStart = true
			}
		default:
			switch c {
			case '"', '\'', '`':
				inStr = c
			case '/':
				if i+1 < len(src) {
					switch src[i+1] {
					case '/':
						inLineComment = true
					case '*':
						inBlockComment = true
					}
				}
			case '{', '(', '[':
				depth++
			case '}', ')', ']':
				depth--
			case '\n':
				atLineStart = true
			}
		}
	}
	return starts
}
