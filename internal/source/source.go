// Package source contains one adapter per external job board. An adapter
// knows a single provider wire format and turns it into normalized
// candidates. Adapters never let an error escape: any network, status or
// parse failure is logged and yields an empty candidate list so the
// orchestrator can carry on with the remaining sources.
package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"careertracker/internal/job"
	"careertracker/internal/profile"
)

// FetchTimeout bounds every network call made by an adapter.
const FetchTimeout = 15 * time.Second

// Kind selects the parsing strategy for a source. It is an explicit
// configuration discriminator, not derived from the URL.
type Kind string

const (
	// KindBespokeJSON is a REST API with a top-level results array.
	KindBespokeJSON Kind = "bespoke_json"
	// KindTaggedJSON is a REST API with a data array carrying pre-built tags.
	KindTaggedJSON Kind = "tagged_json"
	// KindFeed is an RSS or Atom feed.
	KindFeed Kind = "feed"
)

// ParseKind validates a kind string from configuration.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindBespokeJSON, KindTaggedJSON, KindFeed:
		return Kind(s), nil
	}
	return "", fmt.Errorf("unknown source kind %q", s)
}

// Config describes one configured job board.
type Config struct {
	Name string `mapstructure:"name"`
	URL  string `mapstructure:"url"`
	Kind string `mapstructure:"kind"`
	// Location is the constant stored for JSON APIs that do not return one.
	Location string `mapstructure:"location"`
}

// Adapter fetches and normalizes postings from a single provider, applying
// the shared pre-filter with the profile's roles and skills.
type Adapter interface {
	Name() string
	Fetch(ctx context.Context, p profile.Snapshot) []job.Candidate
}

// NewAdapter builds the adapter matching the configured kind.
func NewAdapter(cfg Config, logger *zap.Logger) (Adapter, error) {
	kind, err := ParseKind(cfg.Kind)
	if err != nil {
		return nil, fmt.Errorf("source %q: %w", cfg.Name, err)
	}

	client := &http.Client{Timeout: FetchTimeout}
	log := logger.With(zap.String("source", cfg.Name))

	switch kind {
	case KindBespokeJSON:
		return &bespokeAdapter{cfg: cfg, client: client, logger: log}, nil
	case KindTaggedJSON:
		return &taggedAdapter{cfg: cfg, client: client, logger: log}, nil
	default:
		return &feedAdapter{cfg: cfg, client: client, logger: log}, nil
	}
}

// getJSON issues a GET against the source URL and decodes the body into
// target. A non-200 status is an error.
func getJSON(ctx context.Context, client *http.Client, url string, target any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("bad status: %s", resp.Status)
	}

	return json.NewDecoder(resp.Body).Decode(target)
}
