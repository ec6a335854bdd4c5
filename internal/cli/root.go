// Package cli wires the assistant's commands: crawling the docs,
// chunking them, serving the HTTP API and asking one-shot questions.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/deepanshu-yd/avalanche-dev-assistant/config"
	"github.com/deepanshu-yd/avalanche-dev-assistant/internal/logger"
)

var (
	cfgFile string
	verbose bool
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "avalanche-dev-assistant",
	Short: "Documentation Q&A assistant for Avalanche developers",
	Long: `avalanche-dev-assistant crawls the Avalanche developer documentation,
chunks it into a retrievable corpus and answers developer questions over
it, either from the command line or over HTTP.

Example usage:
  avalanche-dev-assistant crawl                  # Fetch the docs
  avalanche-dev-assistant chunk                  # Build the chunk corpus
  avalanche-dev-assistant ask "What is a subnet?"
  avalanche-dev-assistant serve                  # Start the HTTP API`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error

		if cfgFile != "" {
			cfg, err = config.Load(cfgFile)
		} else {
			wd, werr := os.Getwd()
			if werr != nil {
				return fmt.Errorf("failed to get working directory: %w", werr)
			}
			cfg, err = config.LoadFromDir(wd)
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		logger.SetVerbose(verbose)
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./assistant.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

func GetConfig() *config.Config {
	return cfg
}
