// Package render writes scouting reports to disk as Markdown.
package render

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"arxivscout/internal/core"
)

// ReportData pairs a paper with its generated insight for rendering.
type ReportData struct {
	Paper   core.Paper
	Insight core.Insight
}

// RenderMarkdownReport creates a dated markdown report for the given papers
// and returns the path it was written to. An empty item list still produces
// a report with an explanatory stub.
func RenderMarkdownReport(items []ReportData, outputDir string) (string, error) {
	dateStr := time.Now().UTC().Format("2006-01-02")
	filename := fmt.Sprintf("report_%s.md", dateStr)

	if outputDir == "" {
		outputDir = "reports" // Default output directory
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
	}

	filePath := filepath.Join(outputDir, filename)

	var md strings.Builder
	md.WriteString(fmt.Sprintf("# Energy Tech Research Report - %s\n\n", dateStr))

	if len(items) == 0 {
		md.WriteString("No papers matched the current filters.\n")
	} else {
		for i, item := range items {
			writePaperSection(&md, i+1, item)
		}
	}

	if err := os.WriteFile(filePath, []byte(md.String()), 0644); err != nil {
		return "", fmt.Errorf("failed to write report file %s: %w", filePath, err)
	}

	return filePath, nil
}

func writePaperSection(md *strings.Builder, index int, item ReportData) {
	paper := item.Paper

	md.WriteString(fmt.Sprintf("## %d. %s\n\n", index, paper.Title))
	if len(paper.Authors) > 0 {
		md.WriteString(fmt.Sprintf("**Authors:** %s\n\n", strings.Join(paper.Authors, ", ")))
	}
	if !paper.Published.IsZero() {
		md.WriteString(fmt.Sprintf("**Published:** %s\n\n", paper.Published.Format("2006-01-02")))
	}
	if paper.PDFLink != "" {
		md.WriteString(fmt.Sprintf("**PDF:** %s\n\n", paper.PDFLink))
	}

	md.WriteString(fmt.Sprintf("**Insight Summary:** %s\n\n", item.Insight.Summary))
	writeBulletList(md, "Key Innovations", item.Insight.KeyInnovations)
	writeBulletList(md, "Novel Methods", item.Insight.NovelMethods)
	writeBulletList(md, "Potential Applications", item.Insight.PotentialApplications)
	if len(item.Insight.ExtractedKeywords) > 0 {
		md.WriteString(fmt.Sprintf("**Keywords:** %s\n\n", strings.Join(item.Insight.ExtractedKeywords, ", ")))
	}

	md.WriteString("---\n\n")
}

func writeBulletList(md *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	md.WriteString(fmt.Sprintf("**%s:**\n\n", title))
	for _, item := range items {
		md.WriteString(fmt.Sprintf("- %s\n", item))
	}
	md.WriteString("\n")
}
