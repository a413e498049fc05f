package source

import (
	"context"
	"net/http"
	"strings"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"

	"careertracker/internal/job"
	"careertracker/internal/match"
	"careertracker/internal/profile"
)

// bespokeAdapter reads a REST API whose body carries a top-level "results"
// array. The provider does not return a location, so the configured constant
// is stored instead.
type bespokeAdapter struct {
	cfg    Config
	client *http.Client
	logger *zap.Logger
}

type bespokeItem struct {
	Title   string `json:"title"`
	Company struct {
		Name string `json:"name"`
	} `json:"company"`
	ApplyURL     string `json:"applyUrl"`
	JobURL       string `json:"jobUrl"`
	Description  string `json:"description"`
	Requirements string `json:"requirements"`
}

func (a *bespokeAdapter) Name() string { return a.cfg.Name }

func (a *bespokeAdapter) Fetch(ctx context.Context, p profile.Snapshot) []job.Candidate {
	var payload struct {
		Results []map[string]any `json:"results"`
	}
	if err := getJSON(ctx, a.client, a.cfg.URL, &payload); err != nil {
		a.logger.Warn("fetching source failed", zap.Error(err))
		return nil
	}

	var items []bespokeItem
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  &items,
		TagName: "json",
	})
	if err == nil {
		err = decoder.Decode(payload.Results)
	}
	if err != nil {
		a.logger.Warn("decoding source payload failed", zap.Error(err))
		return nil
	}

	var candidates []job.Candidate
	for _, item := range items {
		title := item.Title
		if title == "" {
			title = "No title"
		}

		company := item.Company.Name
		if company == "" {
			company = "Unknown"
		}

		url := item.ApplyURL
		if url == "" {
			url = item.JobURL
		}
		if url == "" {
			a.logger.Debug("skipping posting without url", zap.String("title", title))
			continue
		}

		desc := strings.TrimSpace(item.Description + " " + item.Requirements)
		if !match.PreFilter(title, title+" "+desc, p.PreferredRoles, p.Skills) {
			continue
		}

		candidates = append(candidates, job.Candidate{
			Title:       title,
			Company:     company,
			Location:    a.cfg.Location,
			Source:      a.cfg.Name,
			URL:         url,
			Description: desc,
			Tags:        match.Keywords(desc, p.Skills),
		})
	}

	return candidates
}
