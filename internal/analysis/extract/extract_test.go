package extract

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"truthscope_backend/platform/apperr"
)

const samplePage = `<!DOCTYPE html>
<html>
<head>
	<title>Flood Relief Reaches Stranded Villages</title>
	<style>body { color: red; }</style>
	<script>var tracking = true;</script>
</head>
<body>
	<nav>Home | Politics | Sports</nav>
	<header>Daily Example</header>
	<article>
		<h1>Flood Relief Reaches Stranded Villages</h1>
		<p>Rescue teams delivered supplies to twelve villages on Tuesday.</p>
		<p>Officials said water levels are expected to recede this week.</p>
	</article>
	<aside>Related stories</aside>
	<footer>Copyright Daily Example</footer>
</body>
</html>`

func TestParse_ExtractsTitleAndBody(t *testing.T) {
	article, err := Parse(strings.NewReader(samplePage))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if article.Title != "Flood Relief Reaches Stranded Villages" {
		t.Fatalf("unexpected title: %q", article.Title)
	}
	if !strings.Contains(article.Text, "Rescue teams delivered supplies to twelve villages on Tuesday.") {
		t.Fatalf("expected body paragraph in text, got %q", article.Text)
	}
	if !strings.Contains(article.Text, "water levels are expected to recede") {
		t.Fatalf("expected second paragraph in text, got %q", article.Text)
	}
}

func TestParse_SkipsBoilerplateElements(t *testing.T) {
	article, err := Parse(strings.NewReader(samplePage))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, boilerplate := range []string{"var tracking", "color: red", "Home | Politics", "Related stories", "Copyright"} {
		if strings.Contains(article.Text, boilerplate) {
			t.Fatalf("boilerplate %q leaked into article text: %q", boilerplate, article.Text)
		}
	}
}

func TestFetch_ServesParsedArticle(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ua := r.Header.Get("User-Agent"); !strings.HasPrefix(ua, "TruthScope/") {
			t.Errorf("unexpected user agent: %q", ua)
		}
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(samplePage))
	}))
	defer srv.Close()

	article, err := New(Config{}).Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if article.Title == "" || article.Text == "" {
		t.Fatalf("expected populated article, got %+v", article)
	}
}

func TestFetch_Non2xxIsUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := New(Config{}).Fetch(context.Background(), srv.URL)
	if !apperr.Is(err, apperr.KindUpstream) {
		t.Fatalf("expected upstream error, got %v", err)
	}
}

func TestFetch_EmptyPageIsBadRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html><head><script>x</script></head><body></body></html>"))
	}))
	defer srv.Close()

	_, err := New(Config{}).Fetch(context.Background(), srv.URL)
	if !apperr.Is(err, apperr.KindBadRequest) {
		t.Fatalf("expected bad request error, got %v", err)
	}
}
