package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/jorge-barreto/loom/internal/config"
	"github.com/jorge-barreto/loom/internal/doctor"
	"github.com/jorge-barreto/loom/internal/docs"
	"github.com/jorge-barreto/loom/internal/pipeline"
	"github.com/jorge-barreto/loom/internal/scaffold"
	"github.com/jorge-barreto/loom/internal/ux"
	cli "github.com/urfave/cli/v3"
)

func main() {
	app := &cli.Command{
		Name:        "loom",
		Usage:       "Compile TypeScript runtime modules into invocable workflow bundles",
		Description: "Run 'loom docs' for documentation on configuration, extraction, bundling, and the runtime CLI protocol.",
		Commands: []*cli.Command{
			initCmd(),
			buildCmd(),
			doctorCmd(),
			docsCmd(),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%serror:%s %v\n", ux.Red, ux.Reset, err)
		os.Exit(1)
	}
}

func buildCmd() *cli.Command {
	return &cli.Command{
		Name:  "build",
		Usage: "Extract, bundle, and write the runtime outputs",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "dry-run", Usage: "Print the build plan without executing"},
			&cli.BoolFlag{Name: "verbose", Usage: "Structured build logging"},
			&cli.StringFlag{Name: "esbuild", Usage: "Path to the esbuild binary"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			projectRoot, err := findProjectRoot()
			if err != nil {
				return err
			}

			cfg, err := config.Load(filepath.Join(projectRoot, "loom.yaml"), projectRoot)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			if cmd.Bool("dry-run") {
				lines, err := pipeline.Plan(cfg, projectRoot)
				if err != nil {
					return err
				}
				fmt.Printf("\n%sBuild plan for %s:%s\n\n", ux.Bold, cfg.Name, ux.Reset)
				for i, line := range lines {
					fmt.Printf("  %s%d.%s %s\n", ux.Dim, i+1, ux.Reset, line)
				}
				fmt.Println()
				return nil
			}

			log := zap.NewNop()
			if cmd.Bool("verbose") {
				log, err = zap.NewDevelopment()
				if err != nil {
					return err
				}
				defer log.Sync()
			}

			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
			defer stop()

			start := time.Now()
			ux.StepHeader(0, 1, "build")
			res, err := pipeline.Build(ctx, cfg, projectRoot, pipeline.Options{
				Esbuild: cmd.String("esbuild"),
				Logger:  log,
			})
			if err != nil {
				ux.StepFail("build", err.Error())
				return err
			}
			ux.StepDone("build", time.Since(start))

			summary := make([]ux.ModuleSummary, 0, len(res.Manifest.Modules))
			for _, m := range res.Manifest.Modules {
				summary = append(summary, ux.ModuleSummary{
					Namespace: m.Namespace,
					Path:      m.Path,
					Functions: len(m.Functions),
				})
			}
			fmt.Println()
			ux.RenderSummary(cfg.Name, cfg.Bundler.Strategy, summary, res.Outputs)
			ux.WarningList(res.Warnings)
			ux.Success(len(res.Outputs))
			return nil
		},
	}
}

func doctorCmd() *cli.Command {
	return &cli.Command{
		Name:  "doctor",
		Usage: "Check the environment needed for a build",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			projectRoot, err := findProjectRoot()
			if err != nil {
				return err
			}
			if !doctor.Run(ctx, projectRoot) {
				return fmt.Errorf("environment checks failed")
			}
			return nil
		},
	}
}

func initCmd() *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Initialize a loom.yaml and example runtime module",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			dir, err := os.Getwd()
			if err != nil {
				return err
			}
			return scaffold.Init(dir)
		},
	}
}

func docsCmd() *cli.Command {
	return &cli.Command{
		Name:      "docs",
		Usage:     "Show documentation",
		ArgsUsage: "[topic]",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			name := cmd.Args().First()
			if name == "" {
				fmt.Print("\nAvailable topics:\n\n")
				for _, t := range docs.All() {
					fmt.Printf("  %-14s %s\n", t.Name, t.Summary)
				}
				fmt.Println("\nRun 'loom docs <topic>' to read a topic.")
				return nil
			}
			t, err := docs.Get(name)
			if err != nil {
				return err
			}
			fmt.Print(t.Content)
			return nil
		},
	}
}

// findProjectRoot walks up from cwd looking for loom.yaml.
func findProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "loom.yaml")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no loom.yaml found (searched from cwd to root)")
		}
		dir = parent
	}
}
