package extract

import (
	"regexp"
	"strings"
)

// Type erasure over raw source text. There is no TypeScript parser behind
// this: the functions below re-derive just enough structure with
// bracket-depth tracking to cut annotations out of an extracted string.

// bodyStart returns the index of the function-body opening brace, scanning
// past the parameter list and an optional return-type annotation. The
// return type may itself contain balanced <>, [], {} (for example
// Promise<{ foo: string }>); a '{' inside that nesting is not the body.
// Returns -1 if no body brace is found.
func bodyStart(decl string) int {
	open := strings.IndexByte(decl, '(')
	if open < 0 {
		return -1
	}

	// Skip the parameter list.
	depth := 0
	i := open
	for ; i < len(decl); i++ {
		switch decl[i] {
		case '(':
			depth++
		case ')':
			depth--
		}
		if depth == 0 && decl[i] == ')' {
			i++
			break
		}
	}

	// Skip whitespace; without a ':' the next '{' is the body.
	for i < len(decl) && isSpace(decl[i]) {
		i++
	}
	if i >= len(decl) {
		return -1
	}
	if decl[i] != ':' {
		if decl[i] == '{' {
			return i
		}
		if idx := strings.IndexByte(decl[i:], '{'); idx >= 0 {
			return idx + i
		}
		return -1
	}

	// Return-type annotation. Track <>, [], {} nesting; the first '{' at
	// depth zero that is not the leading token of the type is the body.
	i++
	for i < len(decl) && isSpace(decl[i]) {
		i++
	}
	typeDepth := 0
	first := true
	for ; i < len(decl); i++ {
		c := decl[i]
		switch c {
		case '<':
			typeDepth++
		case '>':
			if i > 0 && decl[i-1] == '=' {
				continue // arrow, not a generic close
			}
			typeDepth--
		case '[', '(':
			typeDepth++
		case ']', ')':
			typeDepth--
		case '{':
			if typeDepth == 0 && !first {
				return i
			}
			typeDepth++
		case '}':
			typeDepth--
		}
		if !isSpace(c) {
			first = false
		}
	}
	return -1
}

// paramNames extracts parameter names from a parameter-list string
// (without the surrounding parens). Each parameter is cut at its first
// depth-0 colon; default values and trailing type text are dropped.
func paramNames(params string) []string {
	var names []string
	for _, raw := range splitTopLevel(params, ',') {
		name := raw
		if idx := topLevelIndex(raw, ':'); idx >= 0 {
			name = raw[:idx]
		}
		if idx := topLevelIndex(name, '='); idx >= 0 {
			name = name[:idx]
		}
		name = strings.TrimSuffix(strings.TrimSpace(name), "?")
		if name != "" {
			names = append(names, name)
		}
	}
	return names
}

// splitTopLevel splits s on sep occurrences at bracket depth zero.
func splitTopLevel(s string, sep byte) []string {
	var parts []string
	depth := 0
	last := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '{', '<', '(', '[':
			depth++
		case '}', ')', ']':
			depth--
		case '>':
			if i == 0 || s[i-1] != '=' { // the '>' of '=>' closes nothing
				depth--
			}
		case sep:
			if depth == 0 {
				parts = append(parts, s[last:i])
				last = i + 1
			}
		}
	}
	if tail := s[last:]; strings.TrimSpace(tail) != "" {
		parts = append(parts, tail)
	}
	return parts
}

// topLevelIndex returns the index of the first c at bracket depth zero.
func topLevelIndex(s string, c byte) int {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '{', '<', '(', '[':
			depth++
		case '}', ')', ']':
			depth--
		case '>':
			if i == 0 || s[i-1] != '=' {
				depth--
			}
		default:
			if s[i] == c && depth == 0 {
				return i
			}
		}
	}
	return -1
}

var (
	varDeclRe   = regexp.MustCompile(`\b(const|let|var)\s+([A-Za-z_$][\w$]*)\s*:`)
	asCastRe    = regexp.MustCompile(`\s+as\s+(const\b)?`)
	prefixCastRe = regexp.MustCompile(`([=(,]\s*|\breturn\s+)<[A-Za-z_$][\w$]*(?:<[^<>]*>)?(?:\[\])*>\s*`)
)

// stripBodyTypes erases type syntax inside a function body: variable
// declaration annotations, as-casts, <Type> prefix casts, and arrow
// function annotations.
func stripBodyTypes(body string) string {
	body = stripVarAnnotations(body)
	body = stripAsCasts(body)
	body = prefixCastRe.ReplaceAllString(body, "$1")
	body = stripArrowAnnotations(body)
	return body
}

// stripVarAnnotations removes `: Type` from const/let/var declarations,
// cutting at the first depth-0 '=', ';', or newline.
func stripVarAnnotations(body string) string {
	for {
		loc := varDeclRe.FindStringSubmatchIndex(body)
		if loc == nil {
			return body
		}
		colon := loc[1] - 1 // the ':' matched at the end of the pattern
		end := colon + 1
		depth := 0
		for ; end < len(body); end++ {
			c := body[end]
			switch c {
			case '{', '<', '(', '[':
				depth++
			case '}', ')', ']':
				depth--
			case '>':
				if end > 0 && body[end-1] == '=' {
					break // arrow in a function type, not a generic close
				}
				depth--
			case '=', ';', '\n':
				if depth == 0 && !(c == '=' && end+1 < len(body) && body[end+1] == '>') {
					goto cut
				}
			}
		}
	cut:
		if end < len(body) && body[end] == '=' {
			body = body[:colon] + " " + body[end:]
		} else {
			body = body[:colon] + body[end:]
		}
	}
}

// stripAsCasts removes `as Type`, `as Type<...>`, and `as const` suffixes.
func stripAsCasts(body string) string {
	for {
		loc := asCastRe.FindStringSubmatchIndex(body)
		if loc == nil {
			return body
		}
		end := loc[1]
		if loc[2] < 0 { // not `as const`: consume the type expression
			end = typeEnd(body, end)
		}
		body = body[:loc[0]] + body[end:]
	}
}

// typeEnd scans forward past a type expression starting at i, stopping at
// the first depth-0 character that cannot continue a type.
func typeEnd(s string, i int) int {
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	depth := 0
	for ; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '<' || c == '[' || c == '{' || c == '(':
			depth++
		case c == '>' || c == ']' || c == '}' || c == ')':
			if depth == 0 {
				return i
			}
			depth--
		case depth > 0:
			// anything goes inside nesting
		case isIdentChar(c) || c == '.':
			// type continues
		case c == ' ':
			// a space continues the type only before a bracket or union
			j := i
			for j < len(s) && s[j] == ' ' {
				j++
			}
			if j < len(s) && (s[j] == '|' || s[j] == '&') {
				i = j
				continue
			}
			return i
		case c == '|' || c == '&':
			// union/intersection continues
		default:
			return i
		}
	}
	return i
}

// stripArrowAnnotations rewrites `(params): Ret =>` arrows inside a body
// to `(names) =>`, using the same depth tracking as top-level functions.
func stripArrowAnnotations(body string) string {
	var out strings.Builder
	i := 0
	for i < len(body) {
		open := strings.IndexByte(body[i:], '(')
		if open < 0 {
			out.WriteString(body[i:])
			break
		}
		open += i

		closeIdx := matchParen(body, open)
		if closeIdx < 0 {
			out.WriteString(body[i:])
			break
		}

		// After ')': optional `: Type`, then `=>` marks an arrow.
		j := closeIdx + 1
		for j < len(body) && isSpace(body[j]) {
			j++
		}
		hadType := false
		if j < len(body) && body[j] == ':' {
			j = typeEnd(body, j+1)
			hadType = true
			for j < len(body) && isSpace(body[j]) {
				j++
			}
		}
		if j+1 < len(body) && body[j] == '=' && body[j+1] == '>' {
			params := body[open+1 : closeIdx]
			names := paramNames(params)
			out.WriteString(body[i:open])
			out.WriteString("(" + strings.Join(names, ", ") + ")")
			if hadType {
				out.WriteString(" ")
			} else {
				out.WriteString(body[closeIdx+1 : j])
			}
			i = j
			continue
		}

		out.WriteString(body[i : open+1])
		i = open + 1
	}
	return out.String()
}

// matchParen returns the index of the ')' matching the '(' at open.
func matchParen(s string, open int) int {
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isIdentChar(c byte) bool {
	return c == '_' || c == '$' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
