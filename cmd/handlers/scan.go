package handlers

import (
	"context"
	"fmt"
	"os"

	"arxivscout/internal/arxiv"
	"arxivscout/internal/config"
	"arxivscout/internal/filters"
	"arxivscout/internal/insight"
	"arxivscout/internal/llm"
	"arxivscout/internal/logger"
	"arxivscout/internal/render"

	"github.com/spf13/cobra"
)

// defaultQuery covers the energy tech fields the scout targets by default.
const defaultQuery = "all:energy OR all:renewable OR all:solar OR all:wind OR all:battery"

// NewScanCmd creates the scan command that runs the scouting pipeline
func NewScanCmd() *cobra.Command {
	scanCmd := &cobra.Command{
		Use:   "scan",
		Short: "Fetch, filter, and summarize recent arXiv papers",
		Long: `Runs the scouting pipeline end to end:

1. Fetch recent papers from the arXiv API
2. Keep papers published within the lookback window
3. Keep papers whose abstract mentions the configured keywords
4. Summarize the newest N abstracts with Gemini
5. Write a dated Markdown report

Examples:
  arxivscout scan
  arxivscout scan --query "all:battery" --months 2 --top-n 3
  arxivscout scan --keywords solar --keywords photovoltaic`,
		Run: scanRunFunc,
	}

	scanCmd.Flags().String("query", defaultQuery, "arXiv search query")
	scanCmd.Flags().Int("max-results", 0, "Maximum number of papers to fetch (default from config)")
	scanCmd.Flags().Int("months", 0, "Keep papers newer than this many months (default from config)")
	scanCmd.Flags().StringSlice("keywords", nil, "Abstract keywords to filter by (default: energy tech list)")
	scanCmd.Flags().Int("top-n", 0, "Number of top papers to summarize (default from config)")
	scanCmd.Flags().String("output", "", "Output directory for reports (default from config)")

	return scanCmd
}

func scanRunFunc(cmd *cobra.Command, args []string) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := config.Get()

	query, _ := cmd.Flags().GetString("query")
	maxResults, _ := cmd.Flags().GetInt("max-results")
	months, _ := cmd.Flags().GetInt("months")
	keywords, _ := cmd.Flags().GetStringSlice("keywords")
	topN, _ := cmd.Flags().GetInt("top-n")
	outputDir, _ := cmd.Flags().GetString("output")

	// Flags override config; config supplies the rest.
	if maxResults <= 0 {
		maxResults = cfg.Arxiv.MaxResults
	}
	if months <= 0 {
		months = cfg.Filters.Months
	}
	if len(keywords) == 0 {
		keywords = cfg.Filters.Keywords
	}
	if len(keywords) == 0 {
		keywords = filters.DefaultEnergyTechKeywords()
	}
	if topN <= 0 {
		topN = cfg.Filters.TopN
	}
	if outputDir == "" {
		outputDir = cfg.Output.Directory
	}

	logger.Info("[Step 1/6] Initializing clients")
	arxivClient := arxiv.NewClient(arxiv.Options{
		BaseURL:    cfg.Arxiv.BaseURL,
		MaxResults: maxResults,
		SortBy:     cfg.Arxiv.SortBy,
		SortOrder:  cfg.Arxiv.SortOrder,
		Timeout:    cfg.Arxiv.TimeoutDuration(),
		MaxRetries: cfg.Arxiv.MaxRetries,
		RetryDelay: cfg.Arxiv.RetryDelayDuration(),
	})

	llmClient, err := llm.NewClient(ctx, cfg.AI.Gemini.Model)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	summarizer := insight.NewSummarizer(llmClient)

	logger.Info("[Step 2/6] Fetching papers from arXiv", "query", query, "max_results", maxResults)
	papers, err := arxivClient.Search(ctx, query)
	if err != nil {
		logger.Error("Failed to fetch papers from arXiv", err)
		os.Exit(1)
	}
	if len(papers) == 0 {
		logger.Warn("No papers found. Try adjusting --query or --max-results.")
		return
	}

	logger.Info("[Step 3/6] Applying filters", "months", months, "keywords", len(keywords))
	papers = filters.FilterByMonths(papers, months)
	papers = filters.FilterByAbstractKeywords(papers, keywords)
	papers = filters.SortByNewest(papers)
	if len(papers) == 0 {
		logger.Warn("No papers passed the filters. Try adjusting filters.")
		return
	}

	logger.Info("[Step 4/6] Selecting top papers", "top_n", topN, "available", len(papers))
	if len(papers) > topN {
		papers = papers[:topN]
	}

	logger.Info("[Step 5/6] Summarizing papers with Gemini", "count", len(papers), "model", llmClient.ModelName())
	items := make([]render.ReportData, 0, len(papers))
	for i, paper := range papers {
		logger.Info("Summarizing paper", "index", i+1, "total", len(papers), "title", truncate(paper.Title, 60))
		if paper.Abstract == "" {
			logger.Warn("Paper has no abstract", "index", i+1)
		}
		record := summarizer.SummarizeAbstract(ctx, paper.Abstract)
		paper.Insight = &record
		items = append(items, render.ReportData{Paper: paper, Insight: record})
	}

	logger.Info("[Step 6/6] Generating Markdown report")
	reportPath, err := render.RenderMarkdownReport(items, outputDir)
	if err != nil {
		logger.Error("Failed to write report", err)
		os.Exit(1)
	}

	logger.Info("Report saved", "path", reportPath, "papers", len(items))
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
