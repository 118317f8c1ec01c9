// Package arxiv fetches recent papers from the arXiv Atom API.
package arxiv

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mmcdole/gofeed"

	"arxivscout/internal/core"
	"arxivscout/internal/logger"
)

// DefaultBaseURL is the arXiv API query endpoint.
const DefaultBaseURL = "http://export.arxiv.org/api/query"

// Options configures the arXiv client.
type Options struct {
	BaseURL    string        // Query endpoint
	MaxResults int           // Maximum entries per query
	SortBy     string        // "relevance", "lastUpdatedDate", or "submittedDate"
	SortOrder  string        // "ascending" or "descending"
	Timeout    time.Duration // Per-request HTTP timeout
	MaxRetries int           // Total fetch attempts before giving up
	RetryDelay time.Duration // Pause between attempts
}

// DefaultOptions returns sensible defaults.
func DefaultOptions() Options {
	return Options{
		BaseURL:    DefaultBaseURL,
		MaxResults: 50,
		SortBy:     "submittedDate",
		SortOrder:  "descending",
		Timeout:    30 * time.Second,
		MaxRetries: 3,
		RetryDelay: 2 * time.Second,
	}
}

// Client queries the arXiv API and parses its Atom responses into papers.
type Client struct {
	httpClient *http.Client
	parser     *gofeed.Parser
	options    Options
}

// NewClient creates an arXiv client with the given options.
func NewClient(options Options) *Client {
	if options.BaseURL == "" {
		options.BaseURL = DefaultBaseURL
	}
	if options.MaxResults <= 0 {
		options.MaxResults = DefaultOptions().MaxResults
	}
	if options.MaxRetries <= 0 {
		options.MaxRetries = DefaultOptions().MaxRetries
	}
	return &Client{
		httpClient: &http.Client{Timeout: options.Timeout},
		parser:     gofeed.NewParser(),
		options:    options,
	}
}

// NewClientWithDefaults creates an arXiv client with default options.
func NewClientWithDefaults() *Client {
	return NewClient(DefaultOptions())
}

// Search fetches entries matching the query and parses them into papers.
// Entries that carry no usable content are skipped rather than failing the
// whole batch.
func (c *Client) Search(ctx context.Context, query string) ([]core.Paper, error) {
	logger.Info("Fetching papers from arXiv", "query", query)

	feed, err := c.fetchFeed(ctx, c.queryURL(query))
	if err != nil {
		return nil, err
	}

	return c.parseItems(feed.Items), nil
}

// queryURL builds the API request URL for the query.
func (c *Client) queryURL(query string) string {
	params := url.Values{}
	params.Set("search_query", query)
	params.Set("start", "0")
	params.Set("max_results", strconv.Itoa(c.options.MaxResults))
	params.Set("sortBy", c.options.SortBy)
	params.Set("sortOrder", c.options.SortOrder)
	return c.options.BaseURL + "?" + params.Encode()
}

// fetchFeed performs the HTTP request with the retry policy applied. The
// arXiv API returns transient errors under load.
func (c *Client) fetchFeed(ctx context.Context, requestURL string) (*gofeed.Feed, error) {
	var lastErr error
	for attempt := 0; attempt < c.options.MaxRetries; attempt++ {
		if attempt > 0 {
			logger.Warn("Retrying arXiv fetch", "attempt", attempt+1, "error", lastErr.Error())
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.options.RetryDelay):
			}
		}

		feed, err := c.fetchOnce(ctx, requestURL)
		if err == nil {
			return feed, nil
		}
		lastErr = err
	}
	return nil, fmt.Errorf("failed to fetch from arXiv after %d attempts: %w", c.options.MaxRetries, lastErr)
}

func (c *Client) fetchOnce(ctx context.Context, requestURL string) (*gofeed.Feed, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "arxivscout/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("arXiv returned status %d", resp.StatusCode)
	}

	feed, err := c.parser.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Atom feed: %w", err)
	}
	return feed, nil
}

// parseItems converts feed entries into papers.
func (c *Client) parseItems(items []*gofeed.Item) []core.Paper {
	papers := make([]core.Paper, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		paper := parseItem(item)
		if paper.Title == "" && paper.Abstract == "" {
			continue
		}
		papers = append(papers, paper)
	}

	logger.Info("Parsed papers from feed entries", "papers", len(papers), "entries", len(items))
	return papers
}

// parseItem converts one Atom entry into a paper. The arXiv feed wraps
// titles and abstracts across lines, so whitespace is normalized.
func parseItem(item *gofeed.Item) core.Paper {
	var authors []string
	for _, author := range item.Authors {
		if author != nil && author.Name != "" {
			authors = append(authors, author.Name)
		}
	}

	var published time.Time
	if item.PublishedParsed != nil {
		published = item.PublishedParsed.UTC()
	}

	return core.Paper{
		ID:         paperID(item),
		Title:      collapseWhitespace(item.Title),
		Abstract:   collapseWhitespace(item.Description),
		Authors:    authors,
		Published:  published,
		PDFLink:    pdfLink(item),
		Categories: item.Categories,
	}
}

// paperID creates a deterministic ID for a paper based on its entry URL.
func paperID(item *gofeed.Item) string {
	entryURL := item.Link
	if entryURL == "" {
		entryURL = item.GUID
	}
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(entryURL)).String()
}

// pdfLink picks the entry's PDF link, falling back to rewriting the abstract
// page URL the way arXiv mirrors it.
func pdfLink(item *gofeed.Item) string {
	for _, link := range item.Links {
		if strings.Contains(link, "/pdf/") {
			return link
		}
	}
	if strings.Contains(item.Link, "/abs/") {
		return strings.Replace(item.Link, "/abs/", "/pdf/", 1)
	}
	return ""
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
