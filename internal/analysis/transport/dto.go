// Package transport defines request/response DTOs for the analysis module.
package transport

// Verdict values produced by the credibility analysis.
const (
	VerdictReal       = "real"
	VerdictFake       = "fake"
	VerdictUnverified = "unverified"
)

// AnalyzeRequest is the body of POST /analyze. Either URL or Text must be
// provided; when both are present Text takes precedence over page extraction.
type AnalyzeRequest struct {
	URL  string `json:"url" validate:"omitempty,url,max=2048"`
	Text string `json:"text" validate:"omitempty,max=100000"`
}

// LocalizedSummary carries the verdict summary translated into the language
// detected on the analyzed content. Omitted for English input.
type LocalizedSummary struct {
	Language    string   `json:"language"`
	Reasoning   string   `json:"reasoning"`
	KeyInsights []string `json:"key_insights"`
}

// AnalyzeResponse is the verdict document. The same shape is persisted as
// result_json in analysis_results, so cached and fresh responses are
// byte-compatible apart from the Cached flag.
type AnalyzeResponse struct {
	URL              string            `json:"url,omitempty"`
	Verdict          string            `json:"verdict"`
	ConfidenceScore  float64           `json:"confidence_score"`
	Reasoning        string            `json:"reasoning"`
	KeyInsights      []string          `json:"key_insights"`
	SourcesChecked   []string          `json:"sources_checked"`
	LocalizedSummary *LocalizedSummary `json:"localized_summary,omitempty"`
	Cached           bool              `json:"cached"`
}

// ModelVerdict is the JSON document the model is instructed to emit.
type ModelVerdict struct {
	Verdict         string   `json:"verdict"`
	ConfidenceScore float64  `json:"confidence_score"`
	Reasoning       string   `json:"reasoning"`
	KeyInsights     []string `json:"key_insights"`
	SourcesChecked  []string `json:"sources_checked"`
}

// SearchResult is one Programmable Search hit passed to the model.
type SearchResult struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
}

// FactCheckClaim is one reviewed claim from the Fact Check Tools API.
type FactCheckClaim struct {
	Text      string `json:"text"`
	Claimant  string `json:"claimant,omitempty"`
	Publisher string `json:"publisher"`
	Title     string `json:"title"`
	URL       string `json:"url"`
	Rating    string `json:"rating"`
}
