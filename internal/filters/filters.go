// Package filters narrows fetched papers by recency and topical relevance.
package filters

import (
	"sort"
	"strings"
	"time"

	"arxivscout/internal/core"
	"arxivscout/internal/logger"
)

// FilterByMonths keeps papers published within the last N months, counting a
// month as 30 days.
func FilterByMonths(papers []core.Paper, months int) []core.Paper {
	cutoff := time.Now().UTC().AddDate(0, 0, -months*30)
	filtered := FilterSince(papers, cutoff)

	logger.Info("Filtered papers by recency", "kept", len(filtered), "total", len(papers), "months", months)
	return filtered
}

// FilterSince keeps papers published on or after the cutoff. Papers without
// a parsed publication date are dropped.
func FilterSince(papers []core.Paper, cutoff time.Time) []core.Paper {
	filtered := make([]core.Paper, 0, len(papers))
	for _, paper := range papers {
		if !paper.Published.IsZero() && !paper.Published.Before(cutoff) {
			filtered = append(filtered, paper)
		}
	}
	return filtered
}

// FilterByAbstractKeywords keeps papers whose abstract contains at least one
// of the keywords, case-insensitively. An empty keyword list keeps every
// paper; a paper with a blank abstract never matches.
func FilterByAbstractKeywords(papers []core.Paper, keywords []string) []core.Paper {
	if len(papers) == 0 || len(keywords) == 0 {
		return papers
	}

	lowered := make([]string, len(keywords))
	for i, kw := range keywords {
		lowered[i] = strings.ToLower(kw)
	}

	filtered := make([]core.Paper, 0, len(papers))
	for _, paper := range papers {
		if matchesKeywords(paper.Abstract, lowered) {
			filtered = append(filtered, paper)
		}
	}

	logger.Info("Filtered papers by abstract keywords", "kept", len(filtered), "total", len(papers))
	return filtered
}

func matchesKeywords(abstract string, keywords []string) bool {
	if abstract == "" {
		return false
	}
	abstract = strings.ToLower(abstract)
	for _, kw := range keywords {
		if strings.Contains(abstract, kw) {
			return true
		}
	}
	return false
}

// SortByNewest returns a copy of the papers sorted by publication date,
// newest first. Papers without a date sort last.
func SortByNewest(papers []core.Paper) []core.Paper {
	sorted := make([]core.Paper, len(papers))
	copy(sorted, papers)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Published.After(sorted[j].Published)
	})
	return sorted
}

// DefaultEnergyTechKeywords returns the default keyword list for energy
// technology research.
func DefaultEnergyTechKeywords() []string {
	return []string{
		"energy",
		"renewable",
		"solar",
		"wind",
		"battery",
		"storage",
		"grid",
		"power",
		"efficiency",
		"sustainable",
		"photovoltaic",
		"turbine",
		"fuel cell",
		"hydrogen",
		"electric",
		"generation",
		"transmission",
		"distribution",
	}
}
