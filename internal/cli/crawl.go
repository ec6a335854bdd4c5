package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/deepanshu-yd/avalanche-dev-assistant/internal/adapter/crawler"
)

var crawlInput string

var crawlCmd = &cobra.Command{
	Use:   "crawl",
	Short: "Fetch the Avalanche docs into the raw corpus",
	Long: `Crawl the configured documentation sites breadth-first and store each
page as markdown under the raw docs directory. The crawl remembers
visited pages across runs, so re-running only fetches new ones.

With --input, no network is used: documents are copied from a local
directory into the raw corpus instead.

Examples:
  avalanche-dev-assistant crawl                 # Crawl the configured seeds
  avalanche-dev-assistant crawl --input ./docs  # Ingest a local docs tree`,
	Args: cobra.NoArgs,
	RunE: runCrawl,
}

func init() {
	crawlCmd.Flags().StringVar(&crawlInput, "input", "", "ingest documents from a local directory instead of crawling")
	rootCmd.AddCommand(crawlCmd)
}

func runCrawl(cmd *cobra.Command, _ []string) error {
	cfg := GetConfig()

	if crawlInput != "" {
		count, err := crawler.IngestLocal(crawlInput, cfg.Docs.RawDir)
		if err != nil {
			return fmt.Errorf("local ingest failed: %w", err)
		}
		fmt.Printf("Ingested %d documents into %s\n", count, cfg.Docs.RawDir)
		return nil
	}

	state, err := crawler.OpenState(cfg.Docs.CrawlStateFile)
	if err != nil {
		return fmt.Errorf("failed to open crawl state: %w", err)
	}
	defer state.Close()

	fetcher := crawler.NewHTTPFetcher(time.Duration(cfg.Docs.FetchTimeout) * time.Second)
	c := crawler.New(fetcher, state, cfg.Docs.RawDir, crawler.Options{
		AllowedDomains: cfg.Docs.AllowedDomains,
		MaxPages:       cfg.Docs.MaxPages,
		MaxDepth:       cfg.Docs.MaxDepth,
		Concurrency:    cfg.Docs.Concurrency,
	})

	fmt.Printf("Crawling %d seeds (max %d pages, depth %d)...\n",
		len(cfg.Docs.Seeds), cfg.Docs.MaxPages, cfg.Docs.MaxDepth)

	pages, err := c.Run(cmd.Context(), cfg.Docs.Seeds)
	if err != nil {
		return fmt.Errorf("crawl failed: %w", err)
	}

	fmt.Printf("Crawled %d pages into %s\n", pages, cfg.Docs.RawDir)
	return nil
}
