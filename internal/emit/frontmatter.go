package emit

import (
	"fmt"
	"strings"

	"github.com/jorge-barreto/loom/internal/ir"
)

// renderFrontmatter writes literal YAML rather than going through a
// serializer: generic marshalers over-quote, and the frontmatter is a
// byte-level contract.
func renderFrontmatter(fm *ir.Frontmatter) string {
	var sb strings.Builder
	sb.WriteString("---\n")
	for _, f := range fm.Fields {
		switch v := f.Value.(type) {
		case ir.Scalar:
			sb.WriteString(f.Key + ": " + yamlScalar(string(v)) + "\n")
		case ir.ScalarList:
			sb.WriteString(f.Key + ":\n")
			for _, item := range v {
				sb.WriteString("- " + yamlScalar(item) + "\n")
			}
		case ir.ObjectList:
			sb.WriteString(f.Key + ":\n")
			for _, obj := range v {
				for i, entry := range obj {
					prefix := "  "
					if i == 0 {
						prefix = "- "
					}
					sb.WriteString(prefix + entry.Key + ": " + yamlScalar(entry.Value) + "\n")
				}
			}
		default:
			panic(fmt.Sprintf("emit: unhandled frontmatter value %T", f.Value))
		}
	}
	sb.WriteString("---")
	return sb.String()
}

// yamlSpecialLead are characters that force quoting when they start a scalar.
const yamlSpecialLead = "!&*-:?#|>@%`\"'{}[],"

// yamlScalar emits a bare scalar unless it contains ": ", starts with a
// YAML special character, or contains a quote or newline, in which case it
// is double-quoted with internal quotes and newlines escaped.
func yamlScalar(s string) string {
	if s == "" {
		return `""`
	}
	needsQuote := strings.Contains(s, ": ") ||
		strings.ContainsAny(s, "\"\n") ||
		strings.ContainsRune(yamlSpecialLead, rune(s[0])) ||
		s[0] == ' '
	if !needsQuote {
		return s
	}
	escaped := strings.ReplaceAll(s, `"`, `\"`)
	escaped = strings.ReplaceAll(escaped, "\n", `\n`)
	return `"` + escaped + `"`
}
