package service

import (
	"context"
	"testing"
	"time"

	"truthscope_backend/internal/analysis/repository"
	"truthscope_backend/internal/analysis/transport"
	"truthscope_backend/platform/apperr"
	"truthscope_backend/platform/logger"
	"truthscope_backend/platform/validator"
)

type fakeAnalysisRepo struct {
	results map[string]repository.CachedResult
}

func (f *fakeAnalysisRepo) GetByURL(_ context.Context, url string) (repository.CachedResult, error) {
	cached, ok := f.results[url]
	if !ok {
		return repository.CachedResult{}, apperr.NotFound("analysis result not found")
	}
	return cached, nil
}

func (f *fakeAnalysisRepo) Upsert(_ context.Context, url string, result transport.AnalyzeResponse) error {
	f.results[url] = repository.CachedResult{URL: url, Result: result, CreatedAt: time.Now()}
	return nil
}

func (f *fakeAnalysisRepo) DeleteOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	var deleted int64
	for url, cached := range f.results {
		if cached.CreatedAt.Before(cutoff) {
			delete(f.results, url)
			deleted++
		}
	}
	return deleted, nil
}

func (f *fakeAnalysisRepo) ListStaleURLs(_ context.Context, olderThan time.Time, limit int) ([]string, error) {
	var urls []string
	for url, cached := range f.results {
		if cached.CreatedAt.Before(olderThan) && len(urls) < limit {
			urls = append(urls, url)
		}
	}
	return urls, nil
}

type fakeRefresh struct {
	scheduled []string
}

func (f *fakeRefresh) ScheduleAnalysisRefresh(_ context.Context, url string) error {
	f.scheduled = append(f.scheduled, url)
	return nil
}

func newCacheTestService(repo repository.Repository, refresh RefreshScheduler, ttl time.Duration) *Service {
	return New(Deps{
		Repo:      repo,
		Validator: validator.New(),
		Refresh:   refresh,
		CacheTTL:  ttl,
		Log:       logger.New("test"),
	})
}

func TestAnalyze_RequiresURLOrText(t *testing.T) {
	svc := newCacheTestService(&fakeAnalysisRepo{results: map[string]repository.CachedResult{}}, nil, time.Hour)

	_, err := svc.Analyze(context.Background(), transport.AnalyzeRequest{URL: "   ", Text: ""})
	if !apperr.Is(err, apperr.KindBadRequest) {
		t.Fatalf("expected bad request, got %v", err)
	}
}

func TestAnalyze_RejectsMalformedURL(t *testing.T) {
	svc := newCacheTestService(&fakeAnalysisRepo{results: map[string]repository.CachedResult{}}, nil, time.Hour)

	if _, err := svc.Analyze(context.Background(), transport.AnalyzeRequest{URL: "not-a-url"}); err == nil {
		t.Fatal("expected validation error for malformed URL")
	}
}

func TestAnalyze_FreshCacheHit(t *testing.T) {
	url := "https://example.com/article"
	repo := &fakeAnalysisRepo{results: map[string]repository.CachedResult{
		url: {
			URL:       url,
			Result:    transport.AnalyzeResponse{URL: url, Verdict: transport.VerdictReal, ConfidenceScore: 0.8, Reasoning: "matches wire reports"},
			CreatedAt: time.Now().Add(-5 * time.Minute),
		},
	}}
	refresh := &fakeRefresh{}
	svc := newCacheTestService(repo, refresh, 24*time.Hour)

	resp, err := svc.Analyze(context.Background(), transport.AnalyzeRequest{URL: url})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !resp.Cached {
		t.Fatal("expected cached flag on served hit")
	}
	if resp.Verdict != transport.VerdictReal {
		t.Fatalf("unexpected verdict %q", resp.Verdict)
	}
	if len(refresh.scheduled) != 0 {
		t.Fatalf("fresh hit must not schedule a refresh, got %v", refresh.scheduled)
	}
}

func TestAnalyze_HalfStaleHitSchedulesRefresh(t *testing.T) {
	url := "https://example.com/aging-article"
	repo := &fakeAnalysisRepo{results: map[string]repository.CachedResult{
		url: {
			URL:       url,
			Result:    transport.AnalyzeResponse{URL: url, Verdict: transport.VerdictUnverified, Reasoning: "weak signals"},
			CreatedAt: time.Now().Add(-14 * time.Hour),
		},
	}}
	refresh := &fakeRefresh{}
	svc := newCacheTestService(repo, refresh, 24*time.Hour)

	resp, err := svc.Analyze(context.Background(), transport.AnalyzeRequest{URL: url})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !resp.Cached {
		t.Fatal("half-stale hit must still be served from cache")
	}
	if len(refresh.scheduled) != 1 || refresh.scheduled[0] != url {
		t.Fatalf("expected one scheduled refresh for %s, got %v", url, refresh.scheduled)
	}
}

func TestPurgeOlderThan(t *testing.T) {
	repo := &fakeAnalysisRepo{results: map[string]repository.CachedResult{
		"https://example.com/old": {CreatedAt: time.Now().Add(-48 * time.Hour)},
		"https://example.com/new": {CreatedAt: time.Now()},
	}}
	svc := newCacheTestService(repo, nil, 24*time.Hour)

	deleted, err := svc.PurgeOlderThan(context.Background(), time.Now().Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deleted != 1 {
		t.Fatalf("expected 1 deleted row, got %d", deleted)
	}
	if _, ok := repo.results["https://example.com/new"]; !ok {
		t.Fatal("fresh row must survive the purge")
	}
}
