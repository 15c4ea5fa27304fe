package extract

import (
	"regexp"
	"strings"
)

// ApplyNamespace renames every function in fns to ${namespace}_${name},
// both in its own declaration and at call sites to sibling functions in
// the same namespace. The call-site match requires a bare identifier
// followed by '(' and excludes .name( so property and method access is
// never rewritten. Returns a new map keyed by the namespaced names.
func ApplyNamespace(namespace string, fns map[string]Function) map[string]Function {
	out := make(map[string]Function, len(fns))
	for name, fn := range fns {
		body := fn.Body
		for sibling := range fns {
			body = renameCalls(body, sibling, namespace+"_"+sibling)
		}
		fn.Name = namespace + "_" + name
		fn.Body = renameDecl(body, name, fn.Name)
		out[fn.Name] = fn
	}
	return out
}

// renameDecl rewrites the declaration's own name.
func renameDecl(body, oldName, newName string) string {
	re := regexp.MustCompile(`\b(function\s+|const\s+)` + regexp.QuoteMeta(oldName) + `\b`)
	return re.ReplaceAllString(body, "${1}"+newName)
}

// renameCalls rewrites bare call sites of oldName. A preceding '.' marks
// property access and is left alone. The replacement runs twice: the
// prefix character is part of the match, so adjacent calls like f(f(x))
// hide the inner site from the first pass. newName starts where oldName
// did and cannot rematch.
func renameCalls(body, oldName, newName string) string {
	re := regexp.MustCompile(`(^|[^.\w$])` + regexp.QuoteMeta(oldName) + `\s*\(`)
	rename := func(m string) string {
		prefix, rest, _ := strings.Cut(m, oldName)
		return prefix + newName + rest
	}
	body = re.ReplaceAllStringFunc(body, rename)
	return re.ReplaceAllStringFunc(body, rename)
}
