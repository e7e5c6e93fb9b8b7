package cmd

import (
	"fmt"
	"os"

	"github.com/gaurav-prasanna/stylepipe/core/analyze"
	"github.com/gaurav-prasanna/stylepipe/core/output"
	"github.com/gaurav-prasanna/stylepipe/core/render"
	"github.com/gaurav-prasanna/stylepipe/core/replicate"
	"github.com/spf13/cobra"
)

var (
	flagProvider      string
	flagModel         string
	flagReplicaOutDir string
	flagSavePrompt    bool
)

var replicateCmd = &cobra.Command{
	Use:   "replicate <url>",
	Short: "Rebuild a page as a single HTML file with a generative model",
	Long: `Replicate analyzes a page, assembles a single-file document from its cleaned
markup and consolidated CSS, and asks a generative model to reproduce it.

Examples:
  stylepipe replicate https://example.com
  stylepipe replicate https://example.com --provider openai --model gpt-4o`,
	Args: cobra.ExactArgs(1),
	RunE: runReplicate,
}

func init() {
	rootCmd.AddCommand(replicateCmd)

	replicateCmd.Flags().StringVar(&flagProvider, "provider", "", "AI provider: claude, openai (default: from env or claude)")
	replicateCmd.Flags().StringVar(&flagModel, "model", "", "Specific model override")
	replicateCmd.Flags().StringVar(&flagReplicaOutDir, "output_dir", "", "Output directory (default: current directory)")
	replicateCmd.Flags().BoolVar(&flagSavePrompt, "save-prompt", false, "Also write the document sent to the model")
}

func runReplicate(cmd *cobra.Command, args []string) error {
	pageURL, err := parseTarget(args[0])
	if err != nil {
		return err
	}

	// Flags override the environment.
	opts := replicate.Options{
		Provider: cfg.Replicate.Provider,
		Model:    cfg.Replicate.Model,
	}
	if flagProvider != "" {
		opts.Provider = flagProvider
	}
	if flagModel != "" {
		opts.Model = flagModel
	}
	keys := *cfg
	keys.Replicate.Provider = opts.Provider
	opts.APIKey = keys.APIKey()

	replicator, err := replicate.New(opts)
	if err != nil {
		return err
	}

	writer, err := output.New(flagReplicaOutDir)
	if err != nil {
		return fmt.Errorf("initializing output writer: %w", err)
	}

	ctx := cmd.Context()
	fmt.Fprintf(os.Stdout, "Analyzing %s...\n", pageURL)
	analyzer := analyze.New(newFetcher(cfg), nil,
		analyze.WithLogger(log),
		analyze.WithMaxConcurrentFetches(cfg.Fetch.MaxConcurrent),
	)
	res, err := analyzer.Analyze(ctx, []string{pageURL})
	if err != nil {
		return describeAnalyzeError(err)
	}

	prompt := render.SingleFile(res)
	if flagSavePrompt {
		path, err := writer.WriteReport(pageURL, []byte(prompt), ".prompt.html")
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "✓ Written: %s\n", path)
	}

	fmt.Fprintf(os.Stdout, "Generating replication...\n")
	log.WithField("url", pageURL).WithField("provider", opts.Provider).Debug("Sending replication prompt")
	html, err := replicator.Replicate(ctx, prompt)
	if err != nil {
		return fmt.Errorf("replicate: %w", err)
	}

	path, err := writer.WriteReport(pageURL, []byte(html), ".replica.html")
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "✓ Written: %s\n", path)
	return nil
}
