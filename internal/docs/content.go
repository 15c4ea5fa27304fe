package docs

var topics = []Topic{
	{
		Name:    "quickstart",
		Title:   "Quick Start",
		Summary: "Getting started with loom",
		Content: topicQuickstart,
	},
	{
		Name:    "config",
		Title:   "Configuration Reference",
		Summary: "loom.yaml schema, fields, and defaults",
		Content: topicConfig,
	},
	{
		Name:    "extraction",
		Title:   "Function Extraction",
		Summary: "How TypeScript modules are scanned and type-stripped",
		Content: topicExtraction,
	},
	{
		Name:    "bundling",
		Title:   "Bundling Strategies",
		Summary: "Single-script vs code-split output",
		Content: topicBundling,
	},
	{
		Name:    "cli-protocol",
		Title:   "Runtime CLI Protocol",
		Summary: "Invoking bundled functions from workflows",
		Content: topicProtocol,
	},
	{
		Name:    "conditions",
		Title:   "Condition Dialects",
		Summary: "Subshell and interpolated condition compilation",
		Content: topicConditions,
	},
}

const topicQuickstart = `QUICK START

1. Initialize a project:

     loom init

   This writes a loom.yaml and an example runtime module under runtime/.

2. Write runtime functions as exported TypeScript functions:

     // runtime/git-tools.ts
     export async function commitAll(message: string): Promise<void> { ... }

3. Build:

     loom build

   Outputs land in dist/ by default: the runtime script, a manifest.json
   describing the build, and runtime.md listing every invocable function.

4. Invoke a function:

     node dist/runtime.js git_tools_commitAll '{"message":"wip"}'

Run 'loom doctor' if the build complains about the environment.`

const topicConfig = `CONFIGURATION REFERENCE

loom.yaml lives at the project root and is found by walking up from the
current directory.

  name: my-workflows        # required
  runtime-dir: runtime      # scanned for .ts modules when 'modules' is omitted
  modules:
    - path: runtime/git.ts  # relative to the project root
      namespace: git        # default: derived from the file name
      functions: [commitAll]  # default: every exported function
  bundler:
    strategy: single        # single | split
    outfile: dist/runtime.js  # single strategy
    outdir: dist            # split strategy and shared artifacts
  dialect: subshell         # subshell | interpolated

Namespaces must be valid identifiers and unique across modules. A file
named git-tools.ts derives the namespace git_tools.`

const topicExtraction = `FUNCTION EXTRACTION

loom reads each configured module and collects its exported functions
and exported literal constants. Relative imports are followed (a .js
specifier maps back to the .ts source); bare package imports are
skipped. An import that cannot be resolved produces a warning, not an
error.

Type annotations are stripped by character-level scanning, so the
collected source is plain JavaScript: parameter and return types,
variable annotations, 'as' casts, and arrow-function annotations are
all removed. Code inside string literals and comments is never touched.

Every collected function is renamed to <namespace>_<name>, and calls
between functions of the same module are rewritten to match. Method
calls like obj.save() are left alone.`

const topicBundling = `BUNDLING STRATEGIES

single (default)
  One entry imports every module and exports a registry mapping
  namespaced names to implementations. esbuild produces one
  self-contained ESM script with the CLI wrapper appended. Written to
  bundler.outfile.

split
  Each module bundles to its own chunk (<namespace>.js) in
  bundler.outdir, built concurrently. A generated dispatcher
  (runtime.js) parses the namespaced function name, dynamically imports
  the right chunk, and invokes the function. Chunks only load when
  used.

Both strategies run esbuild as an external binary targeting node 18,
ESM format, with node built-ins external. Bundler diagnostics are
collected as build warnings; only a missing binary aborts the build.`

const topicProtocol = `RUNTIME CLI PROTOCOL

Invocation:

  node runtime.js <functionName> '<jsonArgs>'

The function name is the namespaced form, e.g. git_tools_commitAll.
The second argument is a single JSON object; it may be omitted for
functions that take no arguments.

On success the result is printed as exactly one JSON line on stdout.
Everything else goes to stderr with exit code 1:

  - no function name: usage plus the available function list
  - unknown function: "Unknown function: <name>"
  - malformed JSON:   "Invalid JSON arguments: <details>"
  - function throw:   "Function error: <message>"

The code-split dispatcher additionally supports 'runtime.js --list' to
print known namespaces and exit 0.`

const topicConditions = `CONDITION DIALECTS

Conditions attached to document control flow compile in two forms.

Prose form (always available) renders for humans:

  $RESULT.status == "ok" && $RETRIES < 3

subshell dialect compiles to POSIX test commands, reading variable
paths through jq:

  [ "$(echo "$RESULT" | jq -r '.status')" = "ok" ] && [ "$RETRIES" -lt 3 ]

A bare variable reference is truthy when it is non-empty, not "null",
and not "false".

interpolated dialect emits the prose form unchanged, for hosts that
substitute $VAR.path tokens before evaluation.`
