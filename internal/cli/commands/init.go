package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tsinit-dev/tsinit/internal/cli/config"
	"github.com/tsinit-dev/tsinit/internal/scaffold"
	"github.com/tsinit-dev/tsinit/internal/scheme"
)

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Scaffold a TypeScript project",
		Long: `Create or update the configuration files of a TypeScript project.

This creates or converges:
  - package.json with default scripts and pinned dev dependencies
  - tsconfig.json matching the resolved module scheme
  - eslint.config.mjs, .editorconfig, .gitignore
  - src/index.ts starter file

Existing values are never overwritten. Every write is idempotent, so
re-running converges instead of duplicating.`,
		Example: `  # Initialize the current directory
  tsinit init

  # Initialize a new directory as an ES module project
  tsinit init my-app --module module

  # Force CommonJS output regardless of existing signals
  tsinit init --module commonjs`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			return RunInit(cmd, dir)
		},
	}
	return cmd
}

// RunInit executes the scaffolding sequence in dir. It is shared by
// the init subcommand and the bare root invocation.
func RunInit(cmd *cobra.Command, dir string) error {
	cfg := getConfig(cmd.Context())

	// Validate the preference before any mutation.
	pref, err := scheme.ParsePreference(cfg.Module)
	if err != nil {
		return err
	}

	r := getRenderer(cmd)
	logger := config.GetLogger(cmd.Context())

	if dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	s := scaffold.New(dir,
		scaffold.WithReporter(func(format string, args ...any) {
			r.StatusLine(fmt.Sprintf(format, args...), "success", "")
		}),
		scaffold.WithLogger(logger),
	)

	sch, err := s.Run(cmd.Context(), pref)
	if err != nil {
		return fmt.Errorf("failed to initialize project: %w", err)
	}

	r.Println("")
	r.Success(fmt.Sprintf("TypeScript project initialized (%s)", sch))
	r.Println("")
	r.Println("Next steps:")
	r.Println("  1. Run 'npm install' to fetch dev dependencies")
	r.Println("  2. Edit src/index.ts")
	r.Println("  3. Run 'npm run build' to compile")
	r.Println("  4. Run 'npm start' to execute the compiled output")

	return nil
}
