// Package main provides scry-lite, a command line front end for generating
// study packs from text files, standard input or web articles.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/phrazzld/scry-lite/internal/config"
	"github.com/phrazzld/scry-lite/internal/platform/logger"
	"github.com/spf13/cobra"
)

// rootOptions are the flags shared by every command.
type rootOptions struct {
	configFile string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "scry-lite",
		Short:         "Generate study packs without a language model",
		Long:          "scry-lite turns plain text or a web article into a summary, an easy-language rewrite, flashcards and a multiple-choice quiz.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.configFile, "config", "", "Path to a config.yaml (defaults to ./config.yaml when present)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "Log level: debug, info, warn or error")

	root.AddCommand(
		newGenerateCmd(opts),
		newExtractCmd(opts),
		newWebhookCmd(opts),
	)
	return root
}

// load reads the tooling configuration and builds a text logger on the
// command's stderr.
func (o *rootOptions) load(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	cfg, err := config.LoadTooling(o.configFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	log, err := logger.SetupWithWriter(config.ServerConfig{LogLevel: o.logLevel, LogFormat: "text"}, cmd.ErrOrStderr())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logger: %w", err)
	}
	return cfg, log, nil
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
