package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/thep200/github-showcase/cfg"
	"github.com/thep200/github-showcase/internal/app"
	"github.com/thep200/github-showcase/pkg/log"
)

var version = "dev"

var (
	flagConfig string
	flagDebug  bool
)

var rootCmd = &cobra.Command{
	Use:           "run",
	Short:         "Build a GitHub showcase from an account's repositories",
	Long:          "run loads an account's repositories, resolves featured and spotlight rails and renders them with README previews.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "github-showcase %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config file")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "log every request")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(railsCmd)
	rootCmd.AddCommand(gridCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(publishCmd)
}

// bootstrap loads the config once, without live reload, and builds the
// pipeline.
func bootstrap() (*app.App, error) {
	loader := cfg.NewViperLoader(flagConfig)
	config, err := loader.DisableWatch().Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	logger := log.NewCslLogger()
	logger.SetDebug(config.App.Debug || flagDebug)

	return app.New(logger, config)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
