// Package fetch orchestrates one aggregation pass: every profile against
// every configured source, with deduplicated persistence and a best-effort
// digest per user.
package fetch

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"careertracker/internal/job"
	"careertracker/internal/notify"
	"careertracker/internal/profile"
	"careertracker/internal/source"
)

// Locker serializes scheduled passes across processes. Optional: without one,
// overlapping runs are still safe because inserts dedup at the storage layer.
type Locker interface {
	TryLock(ctx context.Context) (bool, error)
	Unlock(ctx context.Context) error
}

// Summary reports the outcome of one pass.
type Summary struct {
	NewPostings int `json:"new_postings"`
}

// Runner wires the pipeline together. Adapters and stores are injected so
// tests can supply fakes.
type Runner struct {
	profiles profile.Store
	store    job.Store
	adapters []source.Adapter
	notifier notify.Notifier
	locker   Locker
	logger   *zap.Logger
}

func NewRunner(profiles profile.Store, store job.Store, adapters []source.Adapter, notifier notify.Notifier, locker Locker, logger *zap.Logger) *Runner {
	return &Runner{
		profiles: profiles,
		store:    store,
		adapters: adapters,
		notifier: notifier,
		locker:   locker,
		logger:   logger,
	}
}

// Run executes one full pass and returns the number of postings inserted
// across all users. The only fatal condition is failing to load the profile
// list; every per-source and per-posting problem is logged and skipped.
func (r *Runner) Run(ctx context.Context) (Summary, error) {
	if r.locker != nil {
		acquired, err := r.locker.TryLock(ctx)
		if err != nil {
			// A broken lock backend must not stop aggregation.
			r.logger.Warn("acquiring run lock failed, continuing unlocked", zap.Error(err))
		} else if !acquired {
			r.logger.Info("skipping pass", zap.String("reason", "another run holds the lock"))
			return Summary{}, nil
		} else {
			defer func() {
				if err := r.locker.Unlock(ctx); err != nil {
					r.logger.Warn("releasing run lock failed", zap.Error(err))
				}
			}()
		}
	}

	profiles, err := r.profiles.ListAll(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("loading profiles: %w", err)
	}

	total := 0
	for _, p := range profiles {
		p = p.Sanitized()
		fresh := r.collect(ctx, p)
		total += len(fresh)
		r.sendDigest(ctx, p, fresh)
	}

	r.logger.Info("fetch pass complete", zap.Int("new_postings", total))
	return Summary{NewPostings: total}, nil
}

// collect runs every source for one profile and returns the postings that
// were actually inserted. A failing source contributes nothing and the loop
// moves on.
func (r *Runner) collect(ctx context.Context, p profile.Snapshot) []job.Posting {
	var fresh []job.Posting
	for _, adapter := range r.adapters {
		candidates := adapter.Fetch(ctx, p)

		accepted := 0
		for _, c := range candidates {
			inserted, posting, err := r.store.Insert(ctx, p.UserID, c)
			if err != nil {
				r.logger.Warn("persisting posting failed",
					zap.Int64("user_id", p.UserID),
					zap.String("url", c.URL),
					zap.Error(err),
				)
				continue
			}
			if inserted {
				fresh = append(fresh, *posting)
				accepted++
			}
		}

		r.logger.Debug("source processed",
			zap.Int64("user_id", p.UserID),
			zap.String("source", adapter.Name()),
			zap.Int("candidates", len(candidates)),
			zap.Int("inserted", accepted),
		)
	}
	return fresh
}

// sendDigest notifies the user about new postings. Failures are logged and
// swallowed so a dead mail transport never affects the rest of the pass.
func (r *Runner) sendDigest(ctx context.Context, p profile.Snapshot, fresh []job.Posting) {
	if len(fresh) == 0 || !p.NotificationsEnabled || p.ContactAddress == "" || r.notifier == nil {
		return
	}

	subject, body := notify.Digest(displayName(p), fresh)
	if err := r.notifier.Send(ctx, p.ContactAddress, subject, body); err != nil {
		r.logger.Warn("sending digest failed",
			zap.Int64("user_id", p.UserID),
			zap.Error(err),
		)
		return
	}

	r.logger.Info("digest sent",
		zap.Int64("user_id", p.UserID),
		zap.Int("postings", len(fresh)),
	)
}

func displayName(p profile.Snapshot) string {
	if p.Name != "" {
		return p.Name
	}
	if at := strings.IndexByte(p.ContactAddress, '@'); at > 0 {
		return p.ContactAddress[:at]
	}
	return "there"
}
