package insight

import "fmt"

// summarizationPromptTemplate requests the exact five-section labeled format
// that Parse recognizes. The abstract is substituted verbatim.
const summarizationPromptTemplate = `You are an expert research analyst specializing in Energy Technology and AI.
Analyze the following arXiv paper abstract and generate an insight-oriented summary.

Your task:
- Do NOT rewrite the abstract
- Identify what is truly new or innovative
- Explain potential impact in practical energy systems
- Extract meaningful technical keywords (not generic terms)

Abstract:
%s

Generate your response in the EXACT format below (do not deviate):

Insight Summary:
<2-4 sentences written as an expert insight, focusing on innovation, novelty, and impact>

Key Innovations:
- <bullet point 1>
- <bullet point 2>

Novel Methods / Techniques:
- <bullet point 1>
- <bullet point 2>

Potential Applications:
- <bullet point 1>
- <bullet point 2>

Extracted Keywords:
- keyword1, keyword2, keyword3, keyword4, keyword5
`

// BuildSummarizationPrompt returns the instruction text for summarizing the
// given abstract. Deterministic; the abstract content is not validated here.
func BuildSummarizationPrompt(abstract string) string {
	return fmt.Sprintf(summarizationPromptTemplate, abstract)
}
