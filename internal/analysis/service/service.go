// Package service implements the credibility analysis pipeline.
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"truthscope_backend/internal/analysis/agent"
	"truthscope_backend/internal/analysis/client"
	"truthscope_backend/internal/analysis/extract"
	"truthscope_backend/internal/analysis/localize"
	"truthscope_backend/internal/analysis/repository"
	"truthscope_backend/internal/analysis/transport"
	"truthscope_backend/internal/events"
	verdictsservice "truthscope_backend/internal/verdicts/service"
	"truthscope_backend/platform/apperr"
	"truthscope_backend/platform/logger"
	"truthscope_backend/platform/sanitize"
	"truthscope_backend/platform/validator"
)

// Claim extraction bounds for the fact check lookup.
const (
	maxClaimQueries   = 3
	minClaimLength    = 40
	searchQueryLength = 200
)

// RefreshScheduler enqueues background re-analysis of a cached URL.
type RefreshScheduler interface {
	ScheduleAnalysisRefresh(ctx context.Context, url string) error
}

// Service orchestrates the analysis pipeline: cache, extraction, tool
// context, the analyst agent, localization, and persistence.
type Service struct {
	repo      repository.Repository
	extractor *extract.Extractor
	verdicts  *verdictsservice.Service
	search    *client.SearchClient
	factCheck *client.FactCheckClient
	localizer *localize.Localizer
	analyst   *agent.Analyst
	bus       events.Bus
	val       *validator.Validator
	refresh   RefreshScheduler
	cacheTTL  time.Duration
	log       *logger.Logger
}

// Deps bundles the pipeline dependencies. Search, FactCheck, and Localizer
// may be nil when the connector is not configured.
type Deps struct {
	Repo      repository.Repository
	Extractor *extract.Extractor
	Verdicts  *verdictsservice.Service
	Search    *client.SearchClient
	FactCheck *client.FactCheckClient
	Localizer *localize.Localizer
	Analyst   *agent.Analyst
	Bus       events.Bus
	Validator *validator.Validator
	Refresh   RefreshScheduler
	CacheTTL  time.Duration
	Log       *logger.Logger
}

// New creates the analysis service.
func New(deps Deps) *Service {
	if deps.CacheTTL <= 0 {
		deps.CacheTTL = 24 * time.Hour
	}

	return &Service{
		repo:      deps.Repo,
		extractor: deps.Extractor,
		verdicts:  deps.Verdicts,
		search:    deps.Search,
		factCheck: deps.FactCheck,
		localizer: deps.Localizer,
		analyst:   deps.Analyst,
		bus:       deps.Bus,
		val:       deps.Validator,
		refresh:   deps.Refresh,
		cacheTTL:  deps.CacheTTL,
		log:       deps.Log,
	}
}

// Analyze runs the full pipeline for a request, serving fresh cache hits
// without re-analysis.
func (s *Service) Analyze(ctx context.Context, req transport.AnalyzeRequest) (transport.AnalyzeResponse, error) {
	req.URL = strings.TrimSpace(req.URL)
	req.Text = strings.TrimSpace(req.Text)

	if req.URL == "" && req.Text == "" {
		return transport.AnalyzeResponse{}, apperr.BadRequest("either url or text is required")
	}
	if err := s.val.Struct(req); err != nil {
		return transport.AnalyzeResponse{}, err
	}

	if req.URL != "" {
		if cached, ok := s.cachedResult(ctx, req.URL); ok {
			s.log.AnalysisEvent("text", req.URL, cached.Verdict, true)
			return cached, nil
		}
	}

	return s.analyze(ctx, req.URL, req.Text)
}

// Refresh re-runs the pipeline for a previously analyzed URL, bypassing the
// cache. Used by the background refresh job.
func (s *Service) Refresh(ctx context.Context, url string) error {
	_, err := s.analyze(ctx, url, "")
	return err
}

func (s *Service) cachedResult(ctx context.Context, url string) (transport.AnalyzeResponse, bool) {
	cached, err := s.repo.GetByURL(ctx, url)
	if err != nil {
		if !apperr.Is(err, apperr.KindNotFound) {
			s.log.DatabaseError("analysis cache lookup", err)
		}
		return transport.AnalyzeResponse{}, false
	}
	age := time.Since(cached.CreatedAt)
	if age > s.cacheTTL {
		return transport.AnalyzeResponse{}, false
	}

	// A hit past half its lifetime is served but queued for re-analysis.
	if age > s.cacheTTL/2 && s.refresh != nil {
		if err := s.refresh.ScheduleAnalysisRefresh(ctx, url); err != nil {
			s.log.UpstreamError("asynq", "schedule refresh", err)
		}
	}

	result := cached.Result
	result.Cached = true
	return result, true
}

func (s *Service) analyze(ctx context.Context, url, text string) (transport.AnalyzeResponse, error) {
	var title string
	if text == "" {
		article, err := s.extractor.Fetch(ctx, url)
		if err != nil {
			return transport.AnalyzeResponse{}, err
		}
		title = article.Title
		text = article.Text
	}

	toolCtx, err := s.gatherToolContext(ctx, url, title, text)
	if err != nil {
		return transport.AnalyzeResponse{}, err
	}

	verdict, err := s.analyst.Analyze(ctx, agent.Input{
		URL:           url,
		Title:         title,
		Text:          text,
		DomainVerdict: toolCtx.domainVerdict,
		SearchResults: toolCtx.searchResults,
		FactChecks:    toolCtx.factChecks,
	})
	if err != nil {
		if errors.Is(err, agent.ErrBadModelOutput) {
			s.log.UpstreamError("gemini", "verdict decode", err)
			return transport.AnalyzeResponse{}, apperr.Internal("the model returned an invalid verdict")
		}
		return transport.AnalyzeResponse{}, apperr.Upstream("analysis model unavailable", err)
	}

	response := transport.AnalyzeResponse{
		URL:             url,
		Verdict:         verdict.Verdict,
		ConfidenceScore: verdict.ConfidenceScore,
		Reasoning:       verdict.Reasoning,
		KeyInsights:     verdict.KeyInsights,
		SourcesChecked:  s.sourcesChecked(verdict, toolCtx),
	}

	// A failed translation downgrades the response, it does not fail it.
	if s.localizer != nil {
		summary, locErr := s.localizer.Summarize(ctx, text, verdict)
		if locErr != nil {
			s.log.UpstreamError("translate", "summarize", locErr)
		} else {
			response.LocalizedSummary = summary
		}
	}

	if url != "" {
		if err := s.repo.Upsert(ctx, url, response); err != nil {
			s.log.DatabaseError("analysis cache upsert", err)
		}
	}

	s.log.AnalysisEvent("text", url, response.Verdict, false)
	s.bus.Publish(ctx, events.AnalysisCompleted{
		BaseEvent:  events.NewBaseEvent(),
		URL:        url,
		Verdict:    response.Verdict,
		Confidence: response.ConfidenceScore,
		Cached:     false,
	})

	return response, nil
}

type toolContext struct {
	domainVerdict string
	searchResults []transport.SearchResult
	factChecks    []transport.FactCheckClaim
}

// gatherToolContext runs the three evidence lookups concurrently. A failure
// of a configured connector aborts the analysis as an upstream error.
func (s *Service) gatherToolContext(ctx context.Context, url, title, text string) (toolContext, error) {
	var result toolContext

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if url == "" {
			result.domainVerdict = transport.VerdictUnverified
			return nil
		}
		result.domainVerdict = s.verdicts.Lookup(gctx, url).Verdict
		return nil
	})

	if s.search != nil {
		g.Go(func() error {
			hits, err := s.search.Search(gctx, searchQuery(title, text))
			if err != nil {
				return apperr.Upstream("news search unavailable", err)
			}
			result.searchResults = hits
			return nil
		})
	}

	if s.factCheck != nil {
		g.Go(func() error {
			claims, err := s.factCheck.SearchClaims(gctx, claimCandidates(text))
			if err != nil {
				return apperr.Upstream("fact check search unavailable", err)
			}
			result.factChecks = claims
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return toolContext{}, err
	}
	return result, nil
}

func (s *Service) sourcesChecked(verdict transport.ModelVerdict, toolCtx toolContext) []string {
	if len(verdict.SourcesChecked) > 0 {
		return verdict.SourcesChecked
	}

	var sources []string
	for _, hit := range toolCtx.searchResults {
		sources = append(sources, hit.Link)
	}
	for _, fc := range toolCtx.factChecks {
		if fc.URL != "" {
			sources = append(sources, fc.URL)
		}
	}
	return sources
}

// PurgeOlderThan removes cached results created before the cutoff.
func (s *Service) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	return s.repo.DeleteOlderThan(ctx, cutoff)
}

// StaleURLs lists cached URLs older than the given time, oldest first.
func (s *Service) StaleURLs(ctx context.Context, olderThan time.Time, limit int) ([]string, error) {
	return s.repo.ListStaleURLs(ctx, olderThan, limit)
}

// searchQuery prefers the article title and falls back to the text head.
func searchQuery(title, text string) string {
	if title != "" {
		return title
	}
	return sanitize.Truncate(sanitize.CollapseWhitespace(text), searchQueryLength)
}

// claimCandidates picks up to three sentence-sized claims from the text for
// the fact check lookup. Short fragments are skipped; when nothing qualifies
// the text head is used as a single claim.
func claimCandidates(text string) []string {
	text = sanitize.CollapseWhitespace(text)

	var claims []string
	for _, sentence := range splitSentences(text) {
		if len(sentence) < minClaimLength {
			continue
		}
		claims = append(claims, sentence)
		if len(claims) == maxClaimQueries {
			break
		}
	}

	if len(claims) == 0 && text != "" {
		claims = append(claims, text)
	}
	return claims
}

func splitSentences(text string) []string {
	var (
		sentences []string
		start     int
	)
	for i, r := range text {
		if r != '.' && r != '!' && r != '?' && r != '।' {
			continue
		}
		sentence := strings.TrimSpace(text[start : i+len(string(r))])
		if sentence != "" {
			sentences = append(sentences, sentence)
		}
		start = i + len(string(r))
	}
	if tail := strings.TrimSpace(text[start:]); tail != "" {
		sentences = append(sentences, tail)
	}
	return sentences
}
