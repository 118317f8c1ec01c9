// Package insight builds summarization prompts and parses the loosely
// formatted text the model returns into structured insight records.
package insight

import (
	"strings"

	"arxivscout/internal/core"
)

// section identifies which labeled block of the model output is being scanned.
type section int

const (
	sectionNone section = iota
	sectionSummary
	sectionInnovations
	sectionMethods
	sectionApplications
	sectionKeywords
)

const summaryHeader = "Insight Summary:"

// headerRule maps a verbatim header prefix to its canonical section.
type headerRule struct {
	prefix  string
	section section
}

// headerTable is the closed set of recognized section headers, matched
// case-sensitively as prefixes of the trimmed line. The methods section
// accepts two header variants as synonyms.
var headerTable = []headerRule{
	{summaryHeader, sectionSummary},
	{"Key Innovations:", sectionInnovations},
	{"Novel Methods / Techniques:", sectionMethods},
	{"Novel Methods:", sectionMethods},
	{"Potential Applications:", sectionApplications},
	{"Extracted Keywords:", sectionKeywords},
}

const (
	// FallbackSummary is used when no summary content can be recovered at all.
	FallbackSummary = "Unable to generate insight summary."
	// fallbackSummaryLimit caps the paragraph fallback, in runes.
	fallbackSummaryLimit = 500
	// maxKeywords caps extracted keywords at flush time.
	maxKeywords = 8
)

// scanState carries the scanner position between lines: the section currently
// being accumulated and the fragments collected for it so far.
type scanState struct {
	section section
	buffer  []string
}

// Parse converts raw model output into an Insight record. It is a total
// function: any malformed input yields a best-effort partial record, never
// an error. Sections are delimited by the headers in headerTable; content
// accumulated for a section is committed when the next header appears or
// the input ends.
func Parse(raw string) core.Insight {
	record := emptyInsight()
	state := scanState{section: sectionNone}

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)

		if rule, ok := matchHeader(line); ok {
			flush(&record, state)
			state = scanState{section: rule.section}
			// Only the summary header may carry content after the colon.
			if rule.section == sectionSummary {
				if rest := strings.TrimSpace(strings.TrimPrefix(line, rule.prefix)); rest != "" {
					state.buffer = append(state.buffer, rest)
				}
			}
			continue
		}

		state.buffer = accumulate(state.section, state.buffer, line)
	}
	flush(&record, state)

	if record.Summary == "" {
		record.Summary = fallbackSummary(raw)
	}
	return record
}

// matchHeader reports whether the trimmed line starts a new section.
func matchHeader(line string) (headerRule, bool) {
	for _, rule := range headerTable {
		if strings.HasPrefix(line, rule.prefix) {
			return rule, true
		}
	}
	return headerRule{}, false
}

// accumulate applies one content line to the buffer according to the active
// section. Lines before the first header are ignored, and non-bullet lines
// inside bullet sections are silently discarded.
func accumulate(sec section, buffer []string, line string) []string {
	switch sec {
	case sectionSummary:
		if line != "" {
			buffer = append(buffer, line)
		}
	case sectionInnovations, sectionMethods, sectionApplications:
		if strings.HasPrefix(line, "-") || strings.HasPrefix(line, "*") {
			if item := strings.TrimSpace(strings.TrimLeft(line, "-* ")); item != "" {
				buffer = append(buffer, item)
			}
		}
	case sectionKeywords:
		switch {
		case strings.HasPrefix(line, "-"):
			buffer = append(buffer, splitKeywords(strings.TrimLeft(line, "- "))...)
		case strings.Contains(line, ","):
			buffer = append(buffer, splitKeywords(line)...)
		}
	}
	return buffer
}

// splitKeywords comma-splits a keywords fragment, trimming each token and
// dropping empties.
func splitKeywords(s string) []string {
	var keywords []string
	for _, kw := range strings.Split(s, ",") {
		if kw = strings.TrimSpace(kw); kw != "" {
			keywords = append(keywords, kw)
		}
	}
	return keywords
}

// flush commits the accumulated buffer into the record field for the section
// that just ended. An empty buffer is a no-op, so a duplicate header can
// never erase a value set by an earlier non-empty flush.
func flush(record *core.Insight, state scanState) {
	if len(state.buffer) == 0 {
		return
	}
	switch state.section {
	case sectionSummary:
		record.Summary = strings.TrimSpace(strings.Join(state.buffer, " "))
	case sectionInnovations:
		record.KeyInnovations = state.buffer
	case sectionMethods:
		record.NovelMethods = state.buffer
	case sectionApplications:
		record.PotentialApplications = state.buffer
	case sectionKeywords:
		if len(state.buffer) > maxKeywords {
			state.buffer = state.buffer[:maxKeywords]
		}
		record.ExtractedKeywords = state.buffer
	}
}

// fallbackSummary recovers a summary from header-less output: the first
// non-blank paragraph truncated to fallbackSummaryLimit runes, or the fixed
// placeholder when the input holds no paragraphs at all.
func fallbackSummary(raw string) string {
	for _, para := range strings.Split(raw, "\n\n") {
		if para = strings.TrimSpace(para); para != "" {
			if runes := []rune(para); len(runes) > fallbackSummaryLimit {
				return string(runes[:fallbackSummaryLimit])
			}
			return para
		}
	}
	return FallbackSummary
}

// emptyInsight returns a record with every field present and empty. Sequence
// fields are non-nil so downstream consumers always see them.
func emptyInsight() core.Insight {
	return core.Insight{
		KeyInnovations:        []string{},
		NovelMethods:          []string{},
		PotentialApplications: []string{},
		ExtractedKeywords:     []string{},
	}
}
