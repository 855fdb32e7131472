package agent

import (
	"fmt"
	"strings"

	"truthscope_backend/internal/analysis/transport"
	"truthscope_backend/platform/sanitize"
)

// promptTextLimit bounds the article text embedded in the user message so
// the tool context always fits alongside it.
const promptTextLimit = 12000

func systemPrompt() string {
	return `You are a misinformation analyst for news content from India and worldwide.
You receive an article (or claim text) together with pre-gathered evidence:
the credibility verdict for the source domain, related news search results,
and published fact checks. You may call the provided tools to gather more
evidence: lookup_domain for another source's credibility, search_news for
corroborating coverage, search_fact_checks for reviewed claims.

Weigh the evidence conservatively:
- A domain verdict of "fake" is a strong signal; "real" raises baseline trust
  but does not validate a specific claim.
- Corroboration by multiple independent reputable outlets supports "real".
- A matching fact check rating of false/misleading supports "fake".
- When evidence is thin or conflicting, answer "unverified" with a low
  confidence score. Never guess.

Respond with ONLY a JSON object, no prose and no Markdown fences:
{
  "verdict": "real" | "fake" | "unverified",
  "confidence_score": <number between 0 and 1>,
  "reasoning": "<2-4 sentence explanation in English>",
  "key_insights": ["<short bullet>", ...],
  "sources_checked": ["<url or source name>", ...]
}`
}

// buildUserMessage assembles the analysis prompt from the article and the
// pre-gathered tool context.
func buildUserMessage(input Input) string {
	var b strings.Builder

	b.WriteString("Analyze the credibility of the following content.\n\n")
	if input.URL != "" {
		fmt.Fprintf(&b, "URL: %s\n", input.URL)
	}
	if input.Title != "" {
		fmt.Fprintf(&b, "Title: %s\n", input.Title)
	}
	fmt.Fprintf(&b, "\nContent:\n%s\n", sanitize.Truncate(input.Text, promptTextLimit))

	fmt.Fprintf(&b, "\nSource domain verdict: %s", input.DomainVerdict)
	if input.DomainVerdict == transport.VerdictReal || input.DomainVerdict == transport.VerdictFake {
		b.WriteString(" (curated list)")
	}
	b.WriteString("\n")

	if len(input.SearchResults) > 0 {
		b.WriteString("\nRelated news results:\n")
		for _, r := range input.SearchResults {
			fmt.Fprintf(&b, "- %s (%s): %s\n", r.Title, r.Link, r.Snippet)
		}
	} else {
		b.WriteString("\nRelated news results: none found\n")
	}

	if len(input.FactChecks) > 0 {
		b.WriteString("\nPublished fact checks:\n")
		for _, fc := range input.FactChecks {
			fmt.Fprintf(&b, "- %q rated %q by %s (%s)\n", fc.Text, fc.Rating, fc.Publisher, fc.URL)
		}
	} else {
		b.WriteString("\nPublished fact checks: none found\n")
	}

	b.WriteString("\nReturn the verdict JSON now.")
	return b.String()
}
