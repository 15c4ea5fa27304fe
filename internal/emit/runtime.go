package emit

import (
	"fmt"
	"strings"

	"github.com/jorge-barreto/loom/internal/ir"
)

// Rendering for the runtime-facing node kinds: instructions a downstream
// interpreter executes rather than plain document content.

func (e *Emitter) askUser(n *ir.AskUser) string {
	var parts []string
	if n.Header != "" {
		parts = append(parts, "### "+n.Header)
	}
	parts = append(parts, "**Ask the user:** "+n.Question)

	if len(n.Options) > 0 {
		var lines []string
		for _, opt := range n.Options {
			line := fmt.Sprintf("- **%s** (`%s`)", opt.Label, opt.Value)
			if opt.Description != "" {
				line += " — " + opt.Description
			}
			lines = append(lines, line)
		}
		parts = append(parts, strings.Join(lines, "\n"))
	}

	parts = append(parts, fmt.Sprintf("Store the selected value in `$%s`.", n.OutputVar))
	return strings.Join(parts, "\n\n")
}

func (e *Emitter) runtimeCall(n *ir.RuntimeCall) string {
	var parts []string
	parts = append(parts, "### Call `"+n.FnName+"`")

	if len(n.Args) > 0 {
		rows := make([][]string, len(n.Args))
		for i, a := range n.Args {
			rows[i] = []string{a.Name, argSource(a.Value)}
		}
		parts = append(parts, renderTable(&ir.Table{
			Headers: []string{"Argument", "Source"},
			Rows:    rows,
		}))
	}

	cmd := fmt.Sprintf("node runtime.js %s '%s'", n.FnName, e.jsonArgs(n.Args))
	parts = append(parts, "```bash\n"+cmd+"\n```")

	if n.OutputVar != "" {
		parts = append(parts, fmt.Sprintf("Store the JSON result in `$%s`.", n.OutputVar))
	}
	return strings.Join(parts, "\n\n")
}

// jsonArgs builds the JSON argument string for the generated CLI. Literal
// values embed as JSON; refs embed as jq subshells or $VAR.path tokens per
// the active dialect; expressions embed verbatim.
func (e *Emitter) jsonArgs(args []ir.Arg) string {
	if len(args) == 0 {
		return "{}"
	}
	pairs := make([]string, len(args))
	for i, a := range args {
		pairs[i] = fmt.Sprintf("%q: %s", a.Name, e.argValue(a.Value))
	}
	return "{" + strings.Join(pairs, ", ") + "}"
}

func (e *Emitter) argValue(v ir.ArgValue) string {
	switch a := v.(type) {
	case *ir.LiteralArg:
		return jsonScalar(a.Value)
	case *ir.RefArg:
		ref := &ir.Ref{Var: a.Var, Path: a.Path}
		if e.Dialect == DialectInterpolated {
			return refToken(ref)
		}
		if len(a.Path) == 0 {
			return `'"$` + a.Var + `"'`
		}
		return fmt.Sprintf(`$(echo "$%s" | jq -c '%s')`, a.Var, jqPath(a.Path))
	case *ir.ExprArg:
		return a.Expr
	default:
		panic(fmt.Sprintf("emit: unhandled argument value %T", v))
	}
}

// argSource is the human-readable form for the argument table.
func argSource(v ir.ArgValue) string {
	switch a := v.(type) {
	case *ir.LiteralArg:
		return "`" + jsonScalar(a.Value) + "`"
	case *ir.RefArg:
		return "`" + refToken(&ir.Ref{Var: a.Var, Path: a.Path}) + "`"
	case *ir.ExprArg:
		if a.Description != "" {
			return a.Description
		}
		return "`" + a.Expr + "`"
	default:
		panic(fmt.Sprintf("emit: unhandled argument value %T", v))
	}
}

// genericAgentType is the subagent type forced when the prompt is loaded
// from a file at run time.
const genericAgentType = "general-purpose"

func (e *Emitter) spawnAgent(n *ir.SpawnAgent) string {
	agent := n.Agent
	prompt := e.spawnPrompt(n)
	if n.LoadFromFile != "" {
		agent = genericAgentType
		prompt = fmt.Sprintf("%q + %s", "First read the file at "+n.LoadFromFile+" and follow its instructions. ", prompt)
		if n.Prompt == "" && len(n.Input) == 0 {
			prompt = fmt.Sprintf("%q", "First read the file at "+n.LoadFromFile+" and follow its instructions.")
		}
	}

	call := fmt.Sprintf("Task(prompt=%s, subagent_type=%q, model=%q, description=%q)",
		prompt, agent, n.Model, n.Description)
	out := "```\n" + call + "\n```"

	if n.OutputVar != "" {
		out += fmt.Sprintf("\n\nStore the agent's final response in `$%s`.", n.OutputVar)
	}
	return out
}

// spawnPrompt builds the prompt expression for a Task call. A single
// variable-reference input concatenates directly onto the prefix instead
// of wrapping in XML, so the value is not serialized twice. Multiple
// properties each become their own <name>value</name> fragment.
func (e *Emitter) spawnPrompt(n *ir.SpawnAgent) string {
	if n.Prompt != "" {
		return fmt.Sprintf("%q", n.Prompt)
	}
	if len(n.Input) == 1 {
		if ref, ok := n.Input[0].Value.(*ir.RefArg); ok {
			prefix := n.Input[0].Name + ": "
			return fmt.Sprintf("%q + %s", prefix, refToken(&ir.Ref{Var: ref.Var, Path: ref.Path}))
		}
	}
	var frags []string
	for _, a := range n.Input {
		frags = append(frags, fmt.Sprintf("<%s>%s</%s>", a.Name, e.inputText(a.Value), a.Name))
	}
	return fmt.Sprintf("%q", strings.Join(frags, "\n"))
}

func (e *Emitter) inputText(v ir.ArgValue) string {
	switch a := v.(type) {
	case *ir.LiteralArg:
		if s, ok := a.Value.(string); ok {
			return s
		}
		return jsonScalar(a.Value)
	case *ir.RefArg:
		return refToken(&ir.Ref{Var: a.Var, Path: a.Path})
	case *ir.ExprArg:
		return a.Expr
	default:
		panic(fmt.Sprintf("emit: unhandled argument value %T", v))
	}
}

func (e *Emitter) assign(n *ir.Assign) string {
	return "```bash\n" + e.assignLines(n) + "\n```"
}

func (e *Emitter) assignGroup(n *ir.AssignGroup) string {
	lines := make([]string, len(n.Assignments))
	for i, a := range n.Assignments {
		lines[i] = e.assignLines(a)
	}
	return "```bash\n" + strings.Join(lines, "\n") + "\n```"
}

// assignLines renders one variable binding, with its comment line when set.
func (e *Emitter) assignLines(n *ir.Assign) string {
	var rhs string
	switch s := n.Source.(type) {
	case *ir.BashSource:
		rhs = "$(" + s.Command + ")"
	case *ir.ValueSource:
		rhs = "'" + jsonScalar(s.Value) + "'"
	case *ir.EnvSource:
		if s.Default != "" {
			rhs = fmt.Sprintf("\"${%s:-%s}\"", s.Name, s.Default)
		} else {
			rhs = fmt.Sprintf("\"$%s\"", s.Name)
		}
	case *ir.FileSource:
		rhs = fmt.Sprintf("$(cat %s)", s.Path)
	case *ir.RuntimeFnSource:
		rhs = fmt.Sprintf("$(node runtime.js %s '%s')", s.FnName, e.jsonArgs(s.Args))
	default:
		panic(fmt.Sprintf("emit: unhandled assignment source %T", n.Source))
	}

	line := n.VariableName + "=" + rhs
	if n.Comment != "" {
		return "# " + n.Comment + "\n" + line
	}
	return line
}

func (e *Emitter) executionContext(n *ir.ExecutionContext) string {
	var parts []string
	header := "**Execution context"
	if n.Prefix != "" {
		header += " (prefix: `" + n.Prefix + "`)"
	}
	header += ":**"
	parts = append(parts, header)

	if len(n.Paths) > 0 {
		lines := make([]string, len(n.Paths))
		for i, p := range n.Paths {
			lines[i] = "- `" + p + "`"
		}
		parts = append(parts, strings.Join(lines, "\n"))
	}
	if len(n.Children) > 0 {
		parts = append(parts, e.blocks(n.Children))
	}
	return strings.Join(parts, "\n\n")
}

func (e *Emitter) taskDef(n *ir.TaskDef) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "- **%s** (`%s`)", n.Subject, n.TaskID)
	if n.Description != "" {
		sb.WriteString("\n  " + n.Description)
	}
	if n.ActiveForm != "" {
		sb.WriteString("\n  Active form: " + n.ActiveForm)
	}
	if len(n.BlockedByIDs) > 0 {
		sb.WriteString("\n  Blocked by: `" + strings.Join(n.BlockedByIDs, "`, `") + "`")
	}
	return sb.String()
}

func (e *Emitter) taskPipeline(n *ir.TaskPipeline) string {
	var parts []string
	if n.Title != "" {
		parts = append(parts, "### "+n.Title)
	}
	lines := make([]string, len(n.Children))
	for i, task := range n.Children {
		lines[i] = e.taskDef(task)
	}
	parts = append(parts, strings.Join(lines, "\n"))
	return strings.Join(parts, "\n\n")
}

func (e *Emitter) team(n *ir.Team) string {
	x := &ir.XMLBlock{
		Name:  "team",
		Attrs: []ir.Attr{{Name: "name", Value: n.TeamName}},
	}
	if n.Description != "" {
		x.Attrs = append(x.Attrs, ir.Attr{Name: "description", Value: n.Description})
	}
	for _, tm := range n.Children {
		member := &ir.XMLBlock{
			Name: "teammate",
			Attrs: []ir.Attr{
				{Name: "name", Value: tm.Name},
				{Name: "agent", Value: tm.AgentType},
			},
		}
		if tm.Model != "" {
			member.Attrs = append(member.Attrs, ir.Attr{Name: "model", Value: tm.Model})
		}
		if tm.Prompt != "" {
			member.Children = []ir.Block{&ir.Raw{Content: tm.Prompt}}
		}
		x.Children = append(x.Children, member)
	}
	return e.xmlBlock(x)
}
