package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/gaurav-prasanna/stylepipe/crawl"
	"github.com/spf13/cobra"
)

var flagLimit int

var discoverCmd = &cobra.Command{
	Use:   "discover <url>",
	Short: "List the same-site pages StylePipe would sample",
	Long: `Discover fetches a page, scores its same-origin links by where they appear
(navigation, content or elsewhere) and what they say, and prints the ranked
candidates.

Example:
  stylepipe discover https://example.com --limit 10`,
	Args: cobra.ExactArgs(1),
	RunE: runDiscover,
}

func init() {
	rootCmd.AddCommand(discoverCmd)
	discoverCmd.Flags().IntVar(&flagLimit, "limit", crawl.MaxAuxiliaryPages, "Number of candidates to print (0 for all)")
}

func runDiscover(cmd *cobra.Command, args []string) error {
	if flagLimit < 0 {
		return fmt.Errorf("--limit cannot be negative")
	}
	pageURL, err := parseTarget(args[0])
	if err != nil {
		return err
	}
	origin, err := crawl.Origin(pageURL)
	if err != nil {
		return fmt.Errorf("parsing URL: %w", err)
	}

	res, err := newFetcher(cfg).Fetch(cmd.Context(), pageURL)
	if err != nil {
		return fmt.Errorf("fetch: %w", err)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(res.Body))
	if err != nil {
		return fmt.Errorf("parsing HTML: %w", err)
	}

	links := crawl.Score(doc, origin, pageURL)
	n := len(links)
	if flagLimit > 0 {
		n = min(n, flagLimit)
	}
	ranked := crawl.Top(links, n)

	fmt.Fprintf(os.Stdout, "Found %d candidate page(s) on %s\n", len(links), pageURL)
	for i, l := range ranked {
		fmt.Fprintf(os.Stdout, "%2d. [%3d] %-10s %s  %q\n", i+1, l.Score, l.Origin, l.URL, l.Text)
	}
	return nil
}
