package ux

import (
	"fmt"
)

// ModuleSummary is one row of the build summary display.
type ModuleSummary struct {
	Namespace string
	Path      string
	Functions int
}

// RenderSummary prints the full build summary display.
func RenderSummary(name, strategy string, modules []ModuleSummary, outputs []string) {
	fmt.Printf("%sProject:%s  %s\n", Bold, Reset, name)
	fmt.Printf("%sStrategy:%s %s\n", Bold, Reset, strategy)

	if len(modules) > 0 {
		fmt.Printf("\n%sModules:%s\n", Bold, Reset)
		for _, m := range modules {
			fmt.Printf("  %s%-20s%s %s %s(%d functions)%s\n",
				Cyan, m.Namespace, Reset, m.Path, Dim, m.Functions, Reset)
		}
	}

	if len(outputs) > 0 {
		fmt.Printf("\n%sOutputs:%s\n", Bold, Reset)
		for _, o := range outputs {
			fmt.Printf("  %s\n", o)
		}
	}
	fmt.Println()
}
