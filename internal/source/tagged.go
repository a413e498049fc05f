package source

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"careertracker/internal/job"
	"careertracker/internal/match"
	"careertracker/internal/profile"
)

// taggedAdapter reads a REST API whose body carries a "data" array with
// pre-built tags, so no keyword extraction is needed.
type taggedAdapter struct {
	cfg    Config
	client *http.Client
	logger *zap.Logger
}

type taggedItem struct {
	Title       string   `json:"title"`
	CompanyName string   `json:"company_name"`
	URL         string   `json:"url"`
	Tags        []string `json:"tags"`
}

func (a *taggedAdapter) Name() string { return a.cfg.Name }

func (a *taggedAdapter) Fetch(ctx context.Context, p profile.Snapshot) []job.Candidate {
	var payload struct {
		Data []taggedItem `json:"data"`
	}
	if err := getJSON(ctx, a.client, a.cfg.URL, &payload); err != nil {
		a.logger.Warn("fetching source failed", zap.Error(err))
		return nil
	}

	var candidates []job.Candidate
	for _, item := range payload.Data {
		if item.URL == "" {
			continue
		}

		company := item.CompanyName
		if company == "" {
			company = "Unknown"
		}

		desc := strings.Join(item.Tags, " ")
		if !match.PreFilter(item.Title, item.Title+" "+desc, p.PreferredRoles, p.Skills) {
			continue
		}

		candidates = append(candidates, job.Candidate{
			Title:       item.Title,
			Company:     company,
			Location:    a.cfg.Location,
			Source:      a.cfg.Name,
			URL:         item.URL,
			Description: desc,
			Tags:        item.Tags,
		})
	}

	return candidates
}
