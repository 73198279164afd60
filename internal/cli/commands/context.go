// Package commands implements the tsinit subcommands.
package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/tsinit-dev/tsinit/internal/cli/config"
	"github.com/tsinit-dev/tsinit/internal/cli/output"
)

// configKey is used to store config in context.
type configKey struct{}

// rendererKey is used to store the renderer in context.
type rendererKey struct{}

// WithConfig stores the loaded config in the context. Called by the
// root command before any subcommand runs.
func WithConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// WithRenderer stores the renderer in the context.
func WithRenderer(ctx context.Context, r *output.Renderer) context.Context {
	return context.WithValue(ctx, rendererKey{}, r)
}

// getConfig retrieves the config from the command context, falling
// back to defaults so commands stay runnable in isolation (tests).
func getConfig(ctx context.Context) *config.Config {
	if c, ok := ctx.Value(configKey{}).(*config.Config); ok {
		return c
	}
	return &config.Config{
		Module:       config.DefaultModule,
		OutputFormat: config.DefaultOutput,
	}
}

// getRenderer retrieves the renderer from the command context, or
// builds one from the command's output streams.
func getRenderer(cmd *cobra.Command) *output.Renderer {
	if r, ok := cmd.Context().Value(rendererKey{}).(*output.Renderer); ok {
		return r
	}
	cfg := getConfig(cmd.Context())
	return output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.OutputFormat))
}
