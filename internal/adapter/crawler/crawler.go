// Package crawler fetches documentation pages from the allowed domains,
// converts them to readable text and saves them into the raw-docs tree
// for chunking. The crawl is bounded by a page budget, a depth budget, a
// concurrency cap and a request rate limit.
package crawler

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"golang.org/x/time/rate"

	"github.com/deepanshu-yd/avalanche-dev-assistant/internal/domain"
	"github.com/deepanshu-yd/avalanche-dev-assistant/internal/logger"
	"github.com/deepanshu-yd/avalanche-dev-assistant/internal/port"
)

var (
	hrefRe   = regexp.MustCompile(`href="([^"#]+)"`)
	unsafeRe = regexp.MustCompile(`(?i)[^a-z0-9/_-]+`)
	schemeRe = regexp.MustCompile(`^https?://`)
)

// Options bounds a crawl run.
type Options struct {
	AllowedDomains []string
	MaxPages       int
	MaxDepth       int
	Concurrency    int
	// RequestsPerSecond throttles outbound fetches across all workers.
	RequestsPerSecond float64
}

// Crawler walks the documentation sites breadth-first from seed URLs.
type Crawler struct {
	fetcher port.Fetcher
	state   *State
	outDir  string
	opts    Options
	limiter *rate.Limiter
}

type target struct {
	url   string
	depth int
}

func New(fetcher port.Fetcher, state *State, outDir string, opts Options) *Crawler {
	if opts.MaxPages <= 0 {
		opts.MaxPages = 150
	}
	if opts.MaxDepth < 0 {
		opts.MaxDepth = 2
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = 3
	}
	if opts.RequestsPerSecond <= 0 {
		opts.RequestsPerSecond = 4
	}
	return &Crawler{
		fetcher: fetcher,
		state:   state,
		outDir:  outDir,
		opts:    opts,
		limiter: rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), opts.Concurrency),
	}
}

// Run crawls from the seeds until the page budget is exhausted or the
// frontier empties. Returns the number of pages saved this run.
func (c *Crawler) Run(ctx context.Context, seeds []string) (int, error) {
	if err := os.MkdirAll(c.outDir, 0755); err != nil {
		return 0, fmt.Errorf("failed to create output directory: %w", err)
	}

	var queue []target
	for _, seed := range seeds {
		u, ok := normalizeURL(seed)
		if !ok || !c.allowed(u) {
			logger.Warn("skipping seed outside allowed domains: %s", seed)
			continue
		}
		first, err := c.state.MarkSeen(u)
		if err != nil {
			return 0, err
		}
		if first {
			queue = append(queue, target{url: u, depth: 0})
		}
	}
	if len(queue) == 0 {
		return 0, fmt.Errorf("no crawlable seeds")
	}

	processed := 0
	for len(queue) > 0 && processed < c.opts.MaxPages {
		batchSize := c.opts.Concurrency
		if batchSize > len(queue) {
			batchSize = len(queue)
		}
		if remaining := c.opts.MaxPages - processed; batchSize > remaining {
			batchSize = remaining
		}
		batch := queue[:batchSize]
		queue = queue[batchSize:]

		type fetched struct {
			target target
			links  []string
			saved  bool
		}
		results := make([]fetched, len(batch))

		var wg sync.WaitGroup
		for i, tgt := range batch {
			wg.Add(1)
			go func(i int, tgt target) {
				defer wg.Done()
				results[i].target = tgt

				if err := c.limiter.Wait(ctx); err != nil {
					return
				}
				body, err := c.fetcher.Fetch(ctx, tgt.url)
				if err != nil {
					logger.Warn("fetch %s: %v", tgt.url, err)
					return
				}

				md := HTMLToMarkdown(body)
				file, err := c.savePage(tgt.url, md)
				if err != nil {
					logger.Warn("save %s: %v", tgt.url, err)
					return
				}
				if err := c.state.AddPage(domain.CrawledPage{URL: tgt.url, File: file}); err != nil {
					logger.Warn("manifest %s: %v", tgt.url, err)
				}
				results[i].saved = true

				if tgt.depth < c.opts.MaxDepth {
					results[i].links = extractLinks(body, tgt.url)
				}
			}(i, tgt)
		}
		wg.Wait()

		if err := ctx.Err(); err != nil {
			return processed, err
		}

		for _, res := range results {
			if !res.saved {
				continue
			}
			processed++
			for _, link := range res.links {
				if !c.allowed(link) {
					continue
				}
				first, err := c.state.MarkSeen(link)
				if err != nil {
					return processed, err
				}
				if !first {
					continue
				}
				if processed+len(queue) >= c.opts.MaxPages {
					break
				}
				queue = append(queue, target{url: link, depth: res.target.depth + 1})
			}
		}
	}

	logger.Info("crawl finished: %d pages saved to %s", processed, c.outDir)
	return processed, nil
}

func (c *Crawler) allowed(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	host := u.Hostname()
	for _, d := range c.opts.AllowedDomains {
		if host == d {
			return true
		}
	}
	return false
}

// savePage writes the converted page under the output directory with a
// provenance header, deriving a filesystem-safe path from the URL.
func (c *Crawler) savePage(pageURL, content string) (string, error) {
	name := schemeRe.ReplaceAllString(pageURL, "")
	name = unsafeRe.ReplaceAllString(name, "_")
	name = strings.TrimRight(name, "/")
	if name == "" {
		name = "index"
	}

	path := filepath.Join(c.outDir, filepath.FromSlash(name)+".md")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", err
	}

	header := fmt.Sprintf("<!-- source: %s -->\n\n", pageURL)
	if err := os.WriteFile(path, []byte(header+CleanDocument(content)+"\n"), 0644); err != nil {
		return "", err
	}
	return path, nil
}

// extractLinks pulls href targets out of the raw HTML and resolves them
// against the page URL. Naive by design; the allow-list and seen-set do
// the real filtering.
func extractLinks(body, base string) []string {
	baseURL, err := url.Parse(base)
	if err != nil {
		return nil
	}

	var links []string
	for _, m := range hrefRe.FindAllStringSubmatch(body, -1) {
		ref, err := url.Parse(strings.TrimSpace(m[1]))
		if err != nil {
			continue
		}
		abs := baseURL.ResolveReference(ref).String()
		if normalized, ok := normalizeURL(abs); ok {
			links = append(links, normalized)
		}
	}
	return links
}

// normalizeURL canonicalizes a URL for the seen-set: lowercased scheme
// and host, fragment dropped, trailing slash trimmed.
func normalizeURL(raw string) (string, bool) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" {
		return "", false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", false
	}
	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	u.Fragment = ""
	u.Path = strings.TrimRight(u.Path, "/")
	return u.String(), true
}
