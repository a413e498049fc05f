package source

import (
	"context"
	"net/http"

	"github.com/mmcdole/gofeed"
	"go.uber.org/zap"

	"careertracker/internal/job"
	"careertracker/internal/match"
	"careertracker/internal/profile"
)

// maxFeedEntries caps how many entries are read from a single feed.
const maxFeedEntries = 20

// feedAdapter reads an RSS or Atom feed. Feeds carry no structured location,
// so one is inferred by scanning the entry text for the profile's target
// countries.
type feedAdapter struct {
	cfg    Config
	client *http.Client
	logger *zap.Logger
}

func (a *feedAdapter) Name() string { return a.cfg.Name }

func (a *feedAdapter) Fetch(ctx context.Context, p profile.Snapshot) []job.Candidate {
	parser := gofeed.NewParser()
	parser.Client = a.client

	feed, err := parser.ParseURLWithContext(a.cfg.URL, ctx)
	if err != nil {
		a.logger.Warn("parsing feed failed", zap.Error(err))
		return nil
	}

	items := feed.Items
	if len(items) > maxFeedEntries {
		items = items[:maxFeedEntries]
	}

	var candidates []job.Candidate
	for _, item := range items {
		if item.Link == "" {
			continue
		}

		title := item.Title
		if title == "" {
			title = "No title"
		}

		desc := item.Description
		if desc == "" {
			desc = item.Content
		}

		company := "Unknown"
		switch {
		case item.Author != nil && item.Author.Name != "":
			company = item.Author.Name
		case len(item.Authors) > 0 && item.Authors[0].Name != "":
			company = item.Authors[0].Name
		}

		if !match.PreFilter(title, title+" "+desc, p.PreferredRoles, p.Skills) {
			continue
		}

		candidates = append(candidates, job.Candidate{
			Title:       title,
			Company:     company,
			Location:    match.InferLocation(title+" "+desc, p.TargetCountries),
			Source:      a.cfg.Name,
			URL:         item.Link,
			Description: desc,
			Tags:        match.Keywords(desc+" "+title, p.Skills),
		})
	}

	return candidates
}
