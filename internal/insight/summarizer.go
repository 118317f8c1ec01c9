package insight

import (
	"context"
	"fmt"
	"strings"

	"arxivscout/internal/core"
	"arxivscout/internal/logger"
)

// NoAbstractSummary is the sentinel summary returned for blank abstracts.
const NoAbstractSummary = "No abstract available for summarization."

// errorSummaryTemplate embeds the upstream failure description as
// user-visible diagnostic text.
const errorSummaryTemplate = "Error generating summary: %s. Please check API key and network connection."

// LLMClient is the minimal text-generation surface the summarizer needs.
type LLMClient interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// Summarizer turns paper abstracts into structured insight records.
type Summarizer struct {
	llm LLMClient
}

// NewSummarizer creates a summarizer backed by the given LLM client.
func NewSummarizer(llm LLMClient) *Summarizer {
	return &Summarizer{llm: llm}
}

// SummarizeAbstract generates and parses an insight record for one abstract.
// It never returns an error: a blank abstract short-circuits to a sentinel
// record without calling the model, and an upstream failure is surfaced as
// diagnostic text in the summary field rather than propagated.
func (s *Summarizer) SummarizeAbstract(ctx context.Context, abstract string) core.Insight {
	if strings.TrimSpace(abstract) == "" {
		logger.Warn("Empty abstract provided")
		return emptyAbstractInsight()
	}

	prompt := BuildSummarizationPrompt(abstract)
	raw, err := s.llm.GenerateText(ctx, prompt)
	if err != nil {
		logger.Error("Error summarizing abstract", err)
		return errorInsight(err)
	}

	return Parse(strings.TrimSpace(raw))
}

// emptyAbstractInsight is the sentinel record for blank abstracts.
func emptyAbstractInsight() core.Insight {
	record := emptyInsight()
	record.Summary = NoAbstractSummary
	return record
}

// errorInsight is the sentinel record for upstream generation failures.
func errorInsight(err error) core.Insight {
	record := emptyInsight()
	record.Summary = fmt.Sprintf(errorSummaryTemplate, err)
	return record
}
