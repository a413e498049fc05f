package source

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"go.uber.org/zap"

	"careertracker/internal/profile"
)

var testProfile = profile.Snapshot{
	UserID:          1,
	Skills:          []string{"Python", "SQL"},
	PreferredRoles:  []string{"Backend Developer"},
	TargetCountries: []string{"finland"},
}

func newTestAdapter(t *testing.T, kind Kind, url string) Adapter {
	t.Helper()

	adapter, err := NewAdapter(Config{
		Name:     "test-board",
		URL:      url,
		Kind:     string(kind),
		Location: "Remote",
	}, zap.NewNop())
	if err != nil {
		t.Fatalf("building adapter: %v", err)
	}
	return adapter
}

func TestParseKind(t *testing.T) {
	for _, valid := range []string{"bespoke_json", "tagged_json", "feed"} {
		if _, err := ParseKind(valid); err != nil {
			t.Fatalf("ParseKind(%q): %v", valid, err)
		}
	}
	if _, err := ParseKind("rss"); err == nil {
		t.Fatalf("expected an error for unknown kind")
	}
}

func TestNewAdapterRejectsUnknownKind(t *testing.T) {
	if _, err := NewAdapter(Config{Name: "bad", Kind: "soap"}, zap.NewNop()); err == nil {
		t.Fatalf("expected an error")
	}
}

func TestBespokeAdapter(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"results": [
			{"title": "Backend Developer", "company": {"name": "Acme"}, "applyUrl": "https://acme.example/apply", "description": "We need Python", "requirements": "and SQL"},
			{"company": {"name": "NoURL Inc"}, "description": "python"},
			{"title": "Data Analyst", "jobUrl": "https://globex.example/jobs/2", "description": "strong SQL"},
			{"title": "Marketing Intern", "jobUrl": "https://spam.example/3", "description": "social media"}
		]}`)
	}))
	defer server.Close()

	adapter := newTestAdapter(t, KindBespokeJSON, server.URL)
	candidates := adapter.Fetch(context.Background(), testProfile)

	if len(candidates) != 2 {
		t.Fatalf("got %d candidates, want 2", len(candidates))
	}

	first := candidates[0]
	if first.URL != "https://acme.example/apply" {
		t.Fatalf("got url %q, want applyUrl", first.URL)
	}
	if first.Company != "Acme" {
		t.Fatalf("got company %q", first.Company)
	}
	if first.Location != "Remote" {
		t.Fatalf("got location %q, want the configured constant", first.Location)
	}
	if first.Description != "We need Python and SQL" {
		t.Fatalf("got description %q", first.Description)
	}
	if !reflect.DeepEqual(first.Tags, []string{"Python", "SQL"}) {
		t.Fatalf("got tags %v", first.Tags)
	}

	second := candidates[1]
	if second.URL != "https://globex.example/jobs/2" {
		t.Fatalf("expected jobUrl fallback, got %q", second.URL)
	}
	if second.Company != "Unknown" {
		t.Fatalf("got company %q, want Unknown", second.Company)
	}
}

func TestBespokeAdapterBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	adapter := newTestAdapter(t, KindBespokeJSON, server.URL)
	if got := adapter.Fetch(context.Background(), testProfile); got != nil {
		t.Fatalf("got %v, want nil on bad status", got)
	}
}

func TestBespokeAdapterMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"results": "oops"`)
	}))
	defer server.Close()

	adapter := newTestAdapter(t, KindBespokeJSON, server.URL)
	if got := adapter.Fetch(context.Background(), testProfile); got != nil {
		t.Fatalf("got %v, want nil on malformed body", got)
	}
}

func TestTaggedAdapter(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"data": [
			{"title": "Backend Developer", "company_name": "Initech", "url": "https://initech.example/1", "tags": ["Python", "Django"]},
			{"title": "Accountant", "company_name": "Initech", "url": "https://initech.example/2", "tags": ["excel"]},
			{"title": "No URL", "tags": ["Python"]}
		]}`)
	}))
	defer server.Close()

	adapter := newTestAdapter(t, KindTaggedJSON, server.URL)
	candidates := adapter.Fetch(context.Background(), testProfile)

	if len(candidates) != 1 {
		t.Fatalf("got %d candidates, want 1", len(candidates))
	}

	c := candidates[0]
	if c.Company != "Initech" {
		t.Fatalf("got company %q", c.Company)
	}
	if c.Description != "Python Django" {
		t.Fatalf("got description %q, want joined tags", c.Description)
	}
	if !reflect.DeepEqual(c.Tags, []string{"Python", "Django"}) {
		t.Fatalf("got tags %v, want provider tags untouched", c.Tags)
	}
}

func feedXML(extra int) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0"?><rss version="2.0"><channel><title>Jobs</title>`)
	b.WriteString(`<item>
		<title>Backend Developer at Nordic</title>
		<link>https://nordic.example/jobs/1</link>
		<author>jobs@nordic.example (Nordic Oy)</author>
		<description>Python role in Finland</description>
	</item>`)
	for i := 0; i < extra; i++ {
		fmt.Fprintf(&b, `<item>
			<title>Python Developer %d</title>
			<link>https://feed.example/jobs/%d</link>
			<description>remote python work</description>
		</item>`, i, i)
	}
	b.WriteString(`</channel></rss>`)
	return b.String()
}

func TestFeedAdapter(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		fmt.Fprint(w, feedXML(0))
	}))
	defer server.Close()

	adapter := newTestAdapter(t, KindFeed, server.URL)
	candidates := adapter.Fetch(context.Background(), testProfile)

	if len(candidates) != 1 {
		t.Fatalf("got %d candidates, want 1", len(candidates))
	}

	c := candidates[0]
	if c.Location != "Finland" {
		t.Fatalf("got location %q, want inferred Finland", c.Location)
	}
	if c.Company != "Nordic Oy" {
		t.Fatalf("got company %q, want the feed author", c.Company)
	}
	if !reflect.DeepEqual(c.Tags, []string{"Python"}) {
		t.Fatalf("got tags %v", c.Tags)
	}
}

func TestFeedAdapterCapsEntries(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		fmt.Fprint(w, feedXML(30))
	}))
	defer server.Close()

	adapter := newTestAdapter(t, KindFeed, server.URL)
	candidates := adapter.Fetch(context.Background(), testProfile)

	if len(candidates) != maxFeedEntries {
		t.Fatalf("got %d candidates, want %d", len(candidates), maxFeedEntries)
	}
}

func TestFeedAdapterBrokenFeed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, "not xml at all")
	}))
	defer server.Close()

	adapter := newTestAdapter(t, KindFeed, server.URL)
	if got := adapter.Fetch(context.Background(), testProfile); got != nil {
		t.Fatalf("got %v, want nil on broken feed", got)
	}
}
