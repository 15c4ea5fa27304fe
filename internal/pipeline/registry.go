package pipeline

import (
	"fmt"

	"github.com/jorge-barreto/loom/internal/config"
	"github.com/jorge-barreto/loom/internal/emit"
	"github.com/jorge-barreto/loom/internal/ir"
)

// registryDoc builds the human-readable runtime registry written next
// to the bundles. It documents every invocable function and the CLI
// protocol for calling it.
func registryDoc(cfg *config.Config, modules []ModuleManifest) *ir.Document {
	doc := &ir.Document{
		Frontmatter: &ir.Frontmatter{},
	}
	doc.Frontmatter.Set("name", ir.Scalar(cfg.Name))
	doc.Frontmatter.Set("strategy", ir.Scalar(cfg.Bundler.Strategy))

	doc.Blocks = append(doc.Blocks,
		ir.H(1, "Runtime registry"),
		ir.Para("Generated function inventory. Invoke any function below through the runtime script; the result is a single JSON line on stdout."),
	)

	table := &ir.Table{Headers: []string{"Function", "Namespace", "Source"}}
	for _, m := range modules {
		for _, fn := range m.Functions {
			table.Rows = append(table.Rows, []string{
				"`" + fn + "`", m.Namespace, m.Path,
			})
		}
	}
	doc.Blocks = append(doc.Blocks, ir.H(2, "Functions"), table)

	script := cfg.Bundler.Outfile
	if cfg.Bundler.Strategy == config.StrategySplit {
		script = cfg.Bundler.Outdir + "/runtime.js"
	}
	doc.Blocks = append(doc.Blocks,
		ir.H(2, "Invocation"),
		&ir.CodeBlock{
			Language: "bash",
			Content:  fmt.Sprintf("node %s <functionName> '<jsonArgs>'", script),
		},
	)

	return doc
}

// emitDialect maps the configured condition dialect to the emitter's.
func emitDialect(d string) emit.Dialect {
	if d == config.DialectInterpolated {
		return emit.DialectInterpolated
	}
	return emit.DialectSubshell
}
