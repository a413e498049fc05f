// Package notify sends best-effort email digests for newly found postings.
package notify

import (
	"context"
	"fmt"
	"strings"

	"careertracker/internal/job"
)

// digestLimit caps how many postings appear in the digest body. Everything
// beyond the cap is still persisted, just not listed in the email.
const digestLimit = 10

// Notifier delivers a single message. Failures must be tolerated by callers:
// the fetch pipeline never rolls back or stops because a digest was lost.
type Notifier interface {
	Send(ctx context.Context, to, subject, body string) error
}

// Digest renders the subject and plain-text body for a batch of new postings.
func Digest(name string, postings []job.Posting) (subject, body string) {
	subject = fmt.Sprintf("New jobs alert (%d found)", len(postings))

	shown := postings
	if len(shown) > digestLimit {
		shown = shown[:digestLimit]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\nWe found %d new jobs for you:\n\n", name, len(postings))
	for _, p := range shown {
		fmt.Fprintf(&b, "• %s\n  %s — %s\n  → %s\n\n", p.Title, p.Company, p.Location, p.URL)
	}
	b.WriteString("Good luck!\n— Career Tracker")

	return subject, b.String()
}
