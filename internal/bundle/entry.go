package bundle

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// singleEntrySource builds the entry module for the single-script
// strategy: a star import per runtime module and a registry mapping
// every namespaced function name to its implementation.
func singleEntrySource(files []RuntimeFileInfo) string {
	var b strings.Builder
	b.WriteString("// Generated entry. Do not edit.\n")
	for _, f := range files {
		fmt.Fprintf(&b, "import * as %s from %s;\n", f.Namespace, jsString(f.SourcePath))
	}
	b.WriteString("\nexport const registry = {\n")
	for _, f := range files {
		for _, fn := range f.ExportedFunctions {
			fmt.Fprintf(&b, "  %s: %s.%s,\n", jsString(f.Namespace+"_"+fn), f.Namespace, fn)
		}
	}
	b.WriteString("};\n")
	return b.String()
}

// splitEntrySource builds the per-namespace entry for the code-split
// strategy. A plain re-export keeps the chunk's exports under their
// original names; the dispatcher does the namespace translation.
func splitEntrySource(f RuntimeFileInfo) string {
	return "// Generated entry. Do not edit.\nexport * from " + jsString(f.SourcePath) + ";\n"
}

// cliMain is the invocation protocol appended to the single-script
// bundle. It expects a `registry` binding in scope. String
// concatenation instead of template literals keeps the source free of
// `${` so it survives expandVars unchanged.
const cliMain = `var cliArgv = process.argv.slice(2);
var fnName = cliArgv[0];
var rawArgs = cliArgv[1];

function listFunctions() {
  return Object.keys(registry).sort().join(", ");
}

if (!fnName) {
  console.error("Usage: node runtime.js <functionName> '<jsonArgs>'");
  console.error("Available functions: " + listFunctions());
  process.exit(1);
}

var fn = registry[fnName];
if (typeof fn !== "function") {
  console.error("Unknown function: " + fnName);
  console.error("Available functions: " + listFunctions());
  process.exit(1);
}

var fnArgs = {};
if (rawArgs !== undefined && rawArgs !== "") {
  try {
    fnArgs = JSON.parse(rawArgs);
  } catch (err) {
    console.error("Invalid JSON arguments: " + err.message);
    process.exit(1);
  }
}

Promise.resolve(fn(fnArgs)).then(function (result) {
  console.log(JSON.stringify(result));
}).catch(function (err) {
  console.error("Function error: " + (err && err.message ? err.message : err));
  process.exit(1);
});
`

const dispatcherTemplate = `// Generated dispatcher. Chunks load on demand.
var namespaces = ${NAMESPACES};

var cliArgv = process.argv.slice(2);
var fnName = cliArgv[0];
var rawArgs = cliArgv[1];

function usage() {
  console.error("Usage: node runtime.js <functionName> '<jsonArgs>'");
  console.error("Namespaces: " + namespaces.join(", "));
}

if (!fnName) {
  usage();
  process.exit(1);
}

if (fnName === "--list") {
  console.log(namespaces.join("\n"));
  process.exit(0);
}

var ns = "";
for (var i = 0; i < namespaces.length; i++) {
  var n = namespaces[i];
  if (fnName.indexOf(n + "_") === 0 && n.length > ns.length) {
    ns = n;
  }
}
if (!ns) {
  console.error("Unknown function: " + fnName);
  console.error("Function names use the form <namespace>_<function>.");
  usage();
  process.exit(1);
}
var local = fnName.slice(ns.length + 1);

var fnArgs = {};
if (rawArgs !== undefined && rawArgs !== "") {
  try {
    fnArgs = JSON.parse(rawArgs);
  } catch (err) {
    console.error("Invalid JSON arguments: " + err.message);
    process.exit(1);
  }
}

import("./" + ns + ".js").then(function (mod) {
  var fn = mod[local];
  if (typeof fn !== "function") {
    console.error("Unknown function: " + fnName);
    process.exit(1);
  }
  return Promise.resolve(fn(fnArgs)).then(function (result) {
    console.log(JSON.stringify(result));
  });
}).catch(function (err) {
  console.error("Function error: " + (err && err.message ? err.message : err));
  process.exit(1);
});
`

// dispatcherSource renders the code-split dispatcher with the sorted
// namespace list baked in.
func dispatcherSource(files []RuntimeFileInfo) string {
	names := make([]string, 0, len(files))
	for _, f := range files {
		names = append(names, f.Namespace)
	}
	sort.Strings(names)
	raw, _ := json.Marshal(names)
	return expandVars(dispatcherTemplate, map[string]string{
		"NAMESPACES": string(raw),
	})
}

var exportStmtRe = regexp.MustCompile(`(?m)^export\s*\{([^{}]*)\};\s*$`)

// bindRegistry rewrites esbuild's trailing ESM export statement so the
// registry is a plain top-level binding the CLI wrapper can reference.
// esbuild may emit either `export { registry };` or an aliased form
// like `export { entry_default as registry };`. When no registry
// binding can be found the bundle is returned with an empty registry
// shim and a warning.
func bindRegistry(bundled string) (string, string) {
	matches := exportStmtRe.FindAllStringSubmatchIndex(bundled, -1)
	for i := len(matches) - 1; i >= 0; i-- {
		m := matches[i]
		inner := bundled[m[2]:m[3]]
		local, ok := registryBinding(inner)
		if !ok {
			continue
		}
		var repl string
		if local != "registry" {
			repl = "var registry = " + local + ";"
		}
		return bundled[:m[0]] + repl + bundled[m[1]:], ""
	}
	return bundled + "var registry = {};\n",
		"bundle: could not locate registry export; functions will not be invocable"
}

func registryBinding(inner string) (string, bool) {
	for _, entry := range strings.Split(inner, ",") {
		fields := strings.Fields(entry)
		switch {
		case len(fields) == 1 && fields[0] == "registry":
			return "registry", true
		case len(fields) == 3 && fields[1] == "as" && fields[2] == "registry":
			return fields[0], true
		}
	}
	return "", false
}

func jsString(s string) string {
	raw, _ := json.Marshal(s)
	return string(raw)
}
