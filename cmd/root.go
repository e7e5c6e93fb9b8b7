// Package cmd implements the CLI commands for StylePipe using Cobra.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gaurav-prasanna/stylepipe/core/config"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	flagVerbose bool

	cfg *config.Config
	log = logrus.New()
)

var rootCmd = &cobra.Command{
	Use:   "stylepipe",
	Short: "StylePipe — extract a website's design system",
	Long: `StylePipe fetches a page and its stylesheets, aggregates colors, typography,
spacing, layout patterns and CSS variables, collapses inline styles into
generated classes and writes a design-system report.

Usage:
  stylepipe extract <url> [flags]
  stylepipe discover <url>
  stylepipe replicate <url> [flags]`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configureLogger(log, flagVerbose)

		loaded, err := config.Load()
		if err != nil {
			return err
		}
		if err := loaded.Validate(); err != nil {
			return err
		}
		cfg = loaded
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Show debug logging")
}

// configureLogger sends structured logs to stderr so stdout carries only
// progress lines.
func configureLogger(l *logrus.Logger, verbose bool) {
	l.SetOutput(os.Stderr)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	l.SetLevel(logrus.InfoLevel)
	if verbose {
		l.SetLevel(logrus.DebugLevel)
	}
}

// Execute runs the root command. Interrupts cancel in-flight work.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
