// Package cmd — extract command.
// This is the main command that orchestrates the pipeline:
// discover → analyze (fetch, tokens, dedupe, screenshots) → render → write.
//
// It handles flag validation, renderer selection and the single-report /
// --package modes.
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/gaurav-prasanna/stylepipe/core"
	"github.com/gaurav-prasanna/stylepipe/core/analyze"
	"github.com/gaurav-prasanna/stylepipe/core/fetch"
	"github.com/gaurav-prasanna/stylepipe/core/output"
	"github.com/gaurav-prasanna/stylepipe/core/render"
	"github.com/gaurav-prasanna/stylepipe/crawl"
	"github.com/spf13/cobra"
)

// Flag variables.
var (
	flagPages         []string
	flagDiscover      bool
	flagMarkdown      bool
	flagJSON          bool
	flagPDF           bool
	flagPrompt        bool
	flagTokens        bool
	flagPackage       bool
	flagOutputDir     string
	flagClassPrefix   string
	flagNoScreenshots bool
)

var extractCmd = &cobra.Command{
	Use:   "extract <url>",
	Short: "Extract the design system of a URL",
	Long: `Extract fetches a webpage and its stylesheets, summarizes the design tokens,
collapses inline styles into generated classes and writes the result in the
specified output format.

Examples:
  stylepipe extract https://example.com --markdown
  stylepipe extract https://example.com --discover --pdf
  stylepipe extract https://example.com --pages https://example.com/pricing --json
  stylepipe extract https://example.com --package --output_dir ./out`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	// Page selection flags.
	extractCmd.Flags().StringSliceVar(&flagPages, "pages", nil, "Additional pages to screenshot")
	extractCmd.Flags().BoolVar(&flagDiscover, "discover", false, "Rank same-site links and screenshot the top pages")

	// Output format flags (mutually exclusive).
	extractCmd.Flags().BoolVar(&flagMarkdown, "markdown", false, "Output the Markdown report")
	extractCmd.Flags().BoolVar(&flagJSON, "json", false, "Output structured JSON")
	extractCmd.Flags().BoolVar(&flagPDF, "pdf", false, "Output the PDF report")
	extractCmd.Flags().BoolVar(&flagPrompt, "prompt", false, "Output the single-file replication HTML")
	extractCmd.Flags().BoolVar(&flagTokens, "tokens", false, "Output the design tokens as YAML")
	extractCmd.Flags().BoolVar(&flagPackage, "package", false, "Output a directory with every artifact")

	extractCmd.Flags().StringVar(&flagOutputDir, "output_dir", "", "Output directory (default: current directory)")
	extractCmd.Flags().StringVar(&flagClassPrefix, "class-prefix", "", "Prefix for generated inline-style classes (default \"s\")")
	extractCmd.Flags().BoolVar(&flagNoScreenshots, "no-screenshots", false, "Skip page screenshots")
}

func runExtract(cmd *cobra.Command, args []string) error {
	// --- Validate flags ---
	if err := validateExtractFlags(); err != nil {
		return err
	}

	pageURL, err := parseTarget(args[0])
	if err != nil {
		return err
	}

	writer, err := output.New(flagOutputDir)
	if err != nil {
		return fmt.Errorf("initializing output writer: %w", err)
	}

	ctx := cmd.Context()
	fetcher := newFetcher(cfg)

	pages := []string{pageURL}
	switch {
	case flagDiscover:
		fmt.Fprintf(os.Stdout, "Discovering pages from %s...\n", pageURL)
		pages = crawl.Discover(ctx, fetcher, pageURL, log)
		fmt.Fprintf(os.Stdout, "Sampling %d page(s)\n", len(pages))
	case len(flagPages) > 0:
		for _, p := range flagPages {
			extra, err := parseTarget(p)
			if err != nil {
				return err
			}
			pages = append(pages, extra)
		}
	}

	var shots core.Screenshotter
	if !flagNoScreenshots {
		s, release := newScreenshotter(cfg)
		defer release()
		shots = s
	}

	opts := []analyze.Option{
		analyze.WithLogger(log),
		analyze.WithMaxConcurrentFetches(cfg.Fetch.MaxConcurrent),
	}
	if flagClassPrefix != "" {
		opts = append(opts, analyze.WithClassPrefix(flagClassPrefix))
	}

	fmt.Fprintf(os.Stdout, "Analyzing %s...\n", pageURL)
	res, err := analyze.New(fetcher, shots, opts...).Analyze(ctx, pages)
	if err != nil {
		return describeAnalyzeError(err)
	}
	fmt.Fprintf(os.Stdout, "Found %d stylesheet(s), %d color(s), %d screenshot(s)\n",
		res.StylesheetCount, len(res.ColorPalette), len(res.Screenshots))
	if res.InaccessibleSheets > 0 {
		fmt.Fprintf(os.Stdout, "  %d stylesheet(s) could not be fetched\n", res.InaccessibleSheets)
	}

	if flagPackage {
		dir, err := writer.WritePackage(res,
			render.NewMarkdownRenderer(),
			render.NewJSONRenderer(),
			render.NewPDFRenderer(),
			render.NewPromptRenderer(),
			render.NewTokensRenderer(),
		)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "✓ Written: %s\n", dir)
		return nil
	}

	renderer, err := selectRenderer()
	if err != nil {
		return err
	}
	data, err := renderer.Render(res)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	path, err := writer.WriteReport(pageURL, data, renderer.Extension())
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "✓ Written: %s\n", path)
	return nil
}

// describeAnalyzeError adds a hint for the common failure modes.
func describeAnalyzeError(err error) error {
	var statusErr *fetch.StatusError
	if errors.As(err, &statusErr) {
		return fmt.Errorf("%w (the site answered %d; try STYLEPIPE_PROXY_URL if it blocks direct requests)", err, statusErr.StatusCode)
	}
	return err
}

// validateExtractFlags checks that exactly one output format is chosen and
// that --pages and --discover are not both specified.
func validateExtractFlags() error {
	// Check mutually exclusive page selection flags.
	if flagDiscover && len(flagPages) > 0 {
		return fmt.Errorf("--pages and --discover are mutually exclusive")
	}
	if len(flagPages) > crawl.MaxAuxiliaryPages {
		return fmt.Errorf("at most %d additional pages allowed (got %d)", crawl.MaxAuxiliaryPages, len(flagPages))
	}

	// Count output formats.
	formatCount := 0
	for _, set := range []bool{flagMarkdown, flagJSON, flagPDF, flagPrompt, flagTokens, flagPackage} {
		if set {
			formatCount++
		}
	}

	if formatCount == 0 {
		return fmt.Errorf("exactly one output format is required: --markdown, --json, --pdf, --prompt, --tokens, or --package")
	}
	if formatCount > 1 {
		return fmt.Errorf("only one output format allowed per run (got %d)", formatCount)
	}

	return nil
}

// selectRenderer creates the appropriate Renderer based on flags.
func selectRenderer() (core.Renderer, error) {
	switch {
	case flagMarkdown:
		return render.NewMarkdownRenderer(), nil
	case flagJSON:
		return render.NewJSONRenderer(), nil
	case flagPDF:
		return render.NewPDFRenderer(), nil
	case flagPrompt:
		return render.NewPromptRenderer(), nil
	case flagTokens:
		return render.NewTokensRenderer(), nil
	default:
		return nil, fmt.Errorf("no output format selected")
	}
}
