// Package cli holds the seo-analyzer commands.
package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"go-seo-analyzer/internal/config"
	"go-seo-analyzer/internal/logger"
)

var (
	logLevel string

	cfg *config.Config
	log *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "seo-analyzer",
	Short: "On-page SEO and keyword analysis for a single URL",
	Long: `seo-analyzer fetches one web page, reads its on-page SEO elements
(title, meta description, meta keywords, headings) and ranks the words
of its text by frequency, both as written and lemmatized.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error); overrides LOG_LEVEL")
}

func setup(cmd *cobra.Command, _ []string) error {
	c, err := config.Load()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("log-level") {
		c.LogLevel = logLevel
	}
	cfg = c
	log = logger.NewWithWriter(cmd.ErrOrStderr(), cfg.LogLevel)
	return nil
}

// Execute runs the root command until it returns or the process is signalled.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
