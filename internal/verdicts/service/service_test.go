package service

import (
	"context"
	"testing"

	"truthscope_backend/internal/verdicts/repository"
	"truthscope_backend/internal/verdicts/transport"
	"truthscope_backend/platform/apperr"
	"truthscope_backend/platform/logger"
	"truthscope_backend/platform/validator"
)

func TestNormalizeDomain(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want string
		ok   bool
	}{
		{"full url", "https://www.thehindu.com/news/article123.html", "thehindu.com", true},
		{"bare domain", "altnews.in", "altnews.in", true},
		{"uppercase with port", "HTTP://News.Example.COM:8080/path", "news.example.com", true},
		{"path without scheme", "ndtv.com/india-news?id=4", "ndtv.com", true},
		{"www stripped", "www.bbc.co.uk", "bbc.co.uk", true},
		{"whitespace", "  https://opindia.com  ", "opindia.com", true},
		{"empty", "", "", false},
		{"no dot", "localhost", "", false},
		{"scheme only", "https://", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := NormalizeDomain(tc.raw)
			if ok != tc.ok {
				t.Fatalf("expected ok=%v, got %v", tc.ok, ok)
			}
			if got != tc.want {
				t.Fatalf("expected domain %q, got %q", tc.want, got)
			}
		})
	}
}

type fakeVerdictRepo struct {
	verdicts map[string]repository.DomainVerdict
	upserted []repository.DomainVerdict
}

func (f *fakeVerdictRepo) Get(_ context.Context, domain string) (repository.DomainVerdict, error) {
	v, ok := f.verdicts[domain]
	if !ok {
		return repository.DomainVerdict{}, apperr.NotFound("domain verdict not found")
	}
	return v, nil
}

func (f *fakeVerdictRepo) Upsert(_ context.Context, v repository.DomainVerdict) error {
	f.upserted = append(f.upserted, v)
	return nil
}

func (f *fakeVerdictRepo) BulkUpsert(_ context.Context, verdicts []repository.DomainVerdict) (int, error) {
	f.upserted = append(f.upserted, verdicts...)
	return len(verdicts), nil
}

func newTestService(repo repository.Repository) *Service {
	return New(repo, validator.New(), logger.New("test"))
}

func TestLookup_KnownDomain(t *testing.T) {
	repo := &fakeVerdictRepo{verdicts: map[string]repository.DomainVerdict{
		"thehindu.com": {Domain: "thehindu.com", Verdict: repository.VerdictReal, Source: "curated"},
	}}
	svc := newTestService(repo)

	resp := svc.Lookup(context.Background(), "https://www.thehindu.com/news/some-article")
	if resp.Verdict != transport.StatusReal {
		t.Fatalf("expected verdict %q, got %q", transport.StatusReal, resp.Verdict)
	}
	if resp.Domain != "thehindu.com" {
		t.Fatalf("expected domain thehindu.com, got %q", resp.Domain)
	}
}

func TestLookup_UnknownDomainIsNotFound(t *testing.T) {
	svc := newTestService(&fakeVerdictRepo{verdicts: map[string]repository.DomainVerdict{}})

	resp := svc.Lookup(context.Background(), "https://unknown-site.example")
	if resp.Verdict != transport.StatusNotFound {
		t.Fatalf("expected verdict %q, got %q", transport.StatusNotFound, resp.Verdict)
	}
}

func TestLookup_UnparsableURLNeverErrors(t *testing.T) {
	svc := newTestService(&fakeVerdictRepo{verdicts: map[string]repository.DomainVerdict{}})

	resp := svc.Lookup(context.Background(), "not a url at all")
	if resp.Verdict != transport.StatusInvalidURL {
		t.Fatalf("expected verdict %q, got %q", transport.StatusInvalidURL, resp.Verdict)
	}
}

func TestSeed_SkipsInvalidEntries(t *testing.T) {
	repo := &fakeVerdictRepo{verdicts: map[string]repository.DomainVerdict{}}
	svc := newTestService(repo)

	file := transport.SeedFile{Verdicts: []transport.SeedEntry{
		{Domain: "altnews.in", Verdict: "real", Source: "curated"},
		{Domain: "fakenewssite.example", Verdict: "fake"},
		{Domain: "", Verdict: "real"},
		{Domain: "somewhere.example", Verdict: "maybe"},
	}}

	result, err := svc.Seed(context.Background(), file)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Written != 2 {
		t.Fatalf("expected 2 written, got %d", result.Written)
	}
	if result.Skipped != 2 {
		t.Fatalf("expected 2 skipped, got %d", result.Skipped)
	}
	if len(repo.upserted) != 2 {
		t.Fatalf("expected 2 upserted rows, got %d", len(repo.upserted))
	}
}
