package insight

import (
	"fmt"
	"reflect"
	"strings"
	"testing"
)

const wellFormedResponse = `Insight Summary:
This method improves turbine efficiency by 12%.
Key Innovations:
- Adaptive blade pitch control
Novel Methods:
- Reinforcement-learning controller
Potential Applications:
- Offshore wind farms
Extracted Keywords:
- wind, turbine, reinforcement learning, control
`

func TestParseWellFormedResponse(t *testing.T) {
	record := Parse(wellFormedResponse)

	if record.Summary != "This method improves turbine efficiency by 12%." {
		t.Errorf("Unexpected summary: %q", record.Summary)
	}
	if !reflect.DeepEqual(record.KeyInnovations, []string{"Adaptive blade pitch control"}) {
		t.Errorf("Unexpected key innovations: %v", record.KeyInnovations)
	}
	if !reflect.DeepEqual(record.NovelMethods, []string{"Reinforcement-learning controller"}) {
		t.Errorf("Unexpected novel methods: %v", record.NovelMethods)
	}
	if !reflect.DeepEqual(record.PotentialApplications, []string{"Offshore wind farms"}) {
		t.Errorf("Unexpected potential applications: %v", record.PotentialApplications)
	}
	expectedKeywords := []string{"wind", "turbine", "reinforcement learning", "control"}
	if !reflect.DeepEqual(record.ExtractedKeywords, expectedKeywords) {
		t.Errorf("Unexpected keywords: %v", record.ExtractedKeywords)
	}
}

func TestParseSummaryTextAfterHeaderColon(t *testing.T) {
	record := Parse("Insight Summary: Grid batteries get cheaper.\nKey Innovations:\n- Thinner electrodes")

	if record.Summary != "Grid batteries get cheaper." {
		t.Errorf("Expected summary seeded from header line, got %q", record.Summary)
	}
	if len(record.KeyInnovations) != 1 {
		t.Errorf("Expected 1 innovation, got %v", record.KeyInnovations)
	}
}

func TestParseMultilineSummaryJoinedWithSpaces(t *testing.T) {
	raw := "Insight Summary:\nFirst sentence.\nSecond sentence.\n\nThird sentence."
	record := Parse(raw)

	expected := "First sentence. Second sentence. Third sentence."
	if record.Summary != expected {
		t.Errorf("Expected %q, got %q", expected, record.Summary)
	}
}

func TestParseKeywordsTruncatedToEight(t *testing.T) {
	raw := "Extracted Keywords:\n- a, b, c, d, e\n- f, g, h, i, j, k"
	record := Parse(raw)

	if len(record.ExtractedKeywords) != 8 {
		t.Fatalf("Expected 8 keywords, got %d: %v", len(record.ExtractedKeywords), record.ExtractedKeywords)
	}
	expected := []string{"a", "b", "c", "d", "e", "f", "g", "h"}
	if !reflect.DeepEqual(record.ExtractedKeywords, expected) {
		t.Errorf("Expected first 8 keywords in order, got %v", record.ExtractedKeywords)
	}
}

func TestParseKeywordsCommaLineWithoutDash(t *testing.T) {
	record := Parse("Extracted Keywords:\nalpha, beta,gamma")

	expected := []string{"alpha", "beta", "gamma"}
	if !reflect.DeepEqual(record.ExtractedKeywords, expected) {
		t.Errorf("Expected %v, got %v", expected, record.ExtractedKeywords)
	}
}

func TestParseKeywordsLineWithoutDashOrCommaDropped(t *testing.T) {
	record := Parse("Extracted Keywords:\nsolitary keyword")

	if len(record.ExtractedKeywords) != 0 {
		t.Errorf("Expected no keywords, got %v", record.ExtractedKeywords)
	}
}

func TestParseNonBulletedLinesDroppedInBulletSections(t *testing.T) {
	raw := `Key Innovations:
- First innovation
this stray line should be dropped
- Second innovation`
	record := Parse(raw)

	expected := []string{"First innovation", "Second innovation"}
	if !reflect.DeepEqual(record.KeyInnovations, expected) {
		t.Errorf("Expected %v, got %v", expected, record.KeyInnovations)
	}
}

func TestParseAsteriskBulletsAccepted(t *testing.T) {
	record := Parse("Potential Applications:\n* Microgrid control\n* Demand response")

	expected := []string{"Microgrid control", "Demand response"}
	if !reflect.DeepEqual(record.PotentialApplications, expected) {
		t.Errorf("Expected %v, got %v", expected, record.PotentialApplications)
	}
}

func TestParseNovelMethodsHeaderSynonyms(t *testing.T) {
	for _, header := range []string{"Novel Methods / Techniques:", "Novel Methods:"} {
		record := Parse(header + "\n- Physics-informed training")
		if !reflect.DeepEqual(record.NovelMethods, []string{"Physics-informed training"}) {
			t.Errorf("Header %q: expected one method, got %v", header, record.NovelMethods)
		}
	}
}

func TestParseContentBeforeFirstHeaderIgnored(t *testing.T) {
	raw := "- stray bullet\npreamble text\nKey Innovations:\n- Real item"
	record := Parse(raw)

	if !reflect.DeepEqual(record.KeyInnovations, []string{"Real item"}) {
		t.Errorf("Expected only the item after the header, got %v", record.KeyInnovations)
	}
}

func TestParseNoHeadersFallsBackToFirstParagraph(t *testing.T) {
	raw := "The model was trained on turbine telemetry.\nIt beat the baseline.\n\nSecond paragraph here."
	record := Parse(raw)

	expected := "The model was trained on turbine telemetry.\nIt beat the baseline."
	if record.Summary != expected {
		t.Errorf("Expected first paragraph as summary, got %q", record.Summary)
	}
	if len(record.KeyInnovations) != 0 || len(record.NovelMethods) != 0 ||
		len(record.PotentialApplications) != 0 || len(record.ExtractedKeywords) != 0 {
		t.Error("Sequence fields must stay empty when no headers are present")
	}
}

func TestParseFallbackParagraphTruncatedTo500(t *testing.T) {
	record := Parse(strings.Repeat("x", 800))

	if got := len([]rune(record.Summary)); got != 500 {
		t.Errorf("Expected fallback summary of 500 runes, got %d", got)
	}
}

func TestParseEmptyInputUsesFallbackString(t *testing.T) {
	for _, raw := range []string{"", "   ", "\n\n \n"} {
		record := Parse(raw)
		if record.Summary != FallbackSummary {
			t.Errorf("Input %q: expected %q, got %q", raw, FallbackSummary, record.Summary)
		}
	}
}

func TestParseSequenceFieldsAlwaysPresent(t *testing.T) {
	record := Parse("no structure at all")

	if record.KeyInnovations == nil || record.NovelMethods == nil ||
		record.PotentialApplications == nil || record.ExtractedKeywords == nil {
		t.Error("Sequence fields must be non-nil even when empty")
	}
}

func TestParseDuplicateHeaderOverwrites(t *testing.T) {
	raw := `Key Innovations:
- Old item
Key Innovations:
- New item`
	record := Parse(raw)

	if !reflect.DeepEqual(record.KeyInnovations, []string{"New item"}) {
		t.Errorf("Later duplicate header should overwrite, got %v", record.KeyInnovations)
	}
}

func TestParseEmptyDuplicateHeaderDoesNotClear(t *testing.T) {
	raw := `Key Innovations:
- Kept item
Key Innovations:
Extracted Keywords:
- one, two`
	record := Parse(raw)

	if !reflect.DeepEqual(record.KeyInnovations, []string{"Kept item"}) {
		t.Errorf("Empty duplicate header must not clear earlier flush, got %v", record.KeyInnovations)
	}
}

// renderTemplate re-serializes a record into the same labeled format the
// parser consumes, for round-trip checks.
func renderTemplate(summary string, innovations, methods, applications, keywords []string) string {
	var b strings.Builder
	b.WriteString("Insight Summary:\n" + summary + "\n")
	b.WriteString("Key Innovations:\n")
	for _, item := range innovations {
		fmt.Fprintf(&b, "- %s\n", item)
	}
	b.WriteString("Novel Methods / Techniques:\n")
	for _, item := range methods {
		fmt.Fprintf(&b, "- %s\n", item)
	}
	b.WriteString("Potential Applications:\n")
	for _, item := range applications {
		fmt.Fprintf(&b, "- %s\n", item)
	}
	b.WriteString("Extracted Keywords:\n- " + strings.Join(keywords, ", ") + "\n")
	return b.String()
}

func TestParseRoundTripStability(t *testing.T) {
	first := Parse(wellFormedResponse)

	again := Parse(renderTemplate(
		first.Summary,
		first.KeyInnovations,
		first.NovelMethods,
		first.PotentialApplications,
		first.ExtractedKeywords,
	))

	if !reflect.DeepEqual(first, again) {
		t.Errorf("Round trip changed the record:\nfirst: %+v\nagain: %+v", first, again)
	}
}
