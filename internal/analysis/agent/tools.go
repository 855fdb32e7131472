package agent

import (
	"context"

	"google.golang.org/adk/tool"
	"google.golang.org/adk/tool/functiontool"

	"truthscope_backend/internal/analysis/client"
	"truthscope_backend/internal/analysis/transport"
	verdictsservice "truthscope_backend/internal/verdicts/service"
	"truthscope_backend/platform/logger"
)

// ToolDependencies contains the connectors the agent tools call into.
// Search and FactCheck may be nil when the connector is not configured.
type ToolDependencies struct {
	Verdicts  *verdictsservice.Service
	Search    *client.SearchClient
	FactCheck *client.FactCheckClient
	Log       *logger.Logger
}

// LookupDomainInput is the argument schema of the lookup_domain tool.
type LookupDomainInput struct {
	URL string `json:"url"`
}

// LookupDomainOutput is the result of a domain credibility lookup.
type LookupDomainOutput struct {
	Domain  string `json:"domain"`
	Verdict string `json:"verdict"`
	Source  string `json:"source,omitempty"`
}

// SearchNewsInput is the argument schema of the search_news tool.
type SearchNewsInput struct {
	Query string `json:"query"`
}

// SearchNewsOutput carries search hits back to the model.
type SearchNewsOutput struct {
	Results []transport.SearchResult `json:"results"`
	Note    string                   `json:"note,omitempty"`
}

// SearchFactChecksInput is the argument schema of the search_fact_checks tool.
type SearchFactChecksInput struct {
	Claim string `json:"claim"`
}

// SearchFactChecksOutput carries reviewed claims back to the model.
type SearchFactChecksOutput struct {
	Claims []transport.FactCheckClaim `json:"claims"`
	Note   string                     `json:"note,omitempty"`
}

func buildTools(deps *ToolDependencies) ([]tool.Tool, error) {
	lookupDomain, err := functiontool.New(functiontool.Config{
		Name:        "lookup_domain",
		Description: "Looks up the credibility verdict for a news source domain against the curated list. Pass any URL from that source. Returns real, fake, not_found, or invalid_url.",
	}, func(ctx tool.Context, input LookupDomainInput) (LookupDomainOutput, error) {
		result := deps.Verdicts.Lookup(context.Background(), input.URL)
		return LookupDomainOutput{
			Domain:  result.Domain,
			Verdict: result.Verdict,
			Source:  result.Source,
		}, nil
	})
	if err != nil {
		return nil, err
	}

	searchNews, err := functiontool.New(functiontool.Config{
		Name:        "search_news",
		Description: "Searches recent news coverage for a query and returns the top results with titles, links, and snippets. Use this to find corroborating or contradicting reporting.",
	}, func(ctx tool.Context, input SearchNewsInput) (SearchNewsOutput, error) {
		if deps.Search == nil {
			return SearchNewsOutput{Note: "news search is not configured"}, nil
		}
		results, err := deps.Search.Search(context.Background(), input.Query)
		if err != nil {
			return SearchNewsOutput{Note: "news search is temporarily unavailable"}, nil
		}
		return SearchNewsOutput{Results: results}, nil
	})
	if err != nil {
		return nil, err
	}

	searchFactChecks, err := functiontool.New(functiontool.Config{
		Name:        "search_fact_checks",
		Description: "Searches published fact checks for a specific claim and returns the reviewing publisher, its rating, and a link. Use this for checkable factual claims.",
	}, func(ctx tool.Context, input SearchFactChecksInput) (SearchFactChecksOutput, error) {
		if deps.FactCheck == nil {
			return SearchFactChecksOutput{Note: "fact check search is not configured"}, nil
		}
		claims, err := deps.FactCheck.SearchClaims(context.Background(), []string{input.Claim})
		if err != nil {
			return SearchFactChecksOutput{Note: "fact check search is temporarily unavailable"}, nil
		}
		return SearchFactChecksOutput{Claims: claims}, nil
	})
	if err != nil {
		return nil, err
	}

	return []tool.Tool{lookupDomain, searchNews, searchFactChecks}, nil
}
