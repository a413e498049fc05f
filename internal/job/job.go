// Package job defines the persisted posting entity and its store contract.
package job

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// MaxDescriptionRunes caps the stored description length.
const MaxDescriptionRunes = 1000

// ErrNotFound is returned when a posting does not exist for the given user.
var ErrNotFound = errors.New("posting not found")

type Status string

const (
	StatusNew     Status = "new"
	StatusSaved   Status = "saved"
	StatusApplied Status = "applied"
	StatusIgnored Status = "ignored"
)

// ParseStatus validates a raw status string coming from the API.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusNew, StatusSaved, StatusApplied, StatusIgnored:
		return Status(s), nil
	}
	return "", fmt.Errorf("unknown posting status %q", s)
}

// Candidate is a normalized posting produced by a source adapter. It has no
// identity yet and its description is untruncated.
type Candidate struct {
	Title       string
	Company     string
	Location    string
	Source      string
	URL         string
	Description string
	Tags        []string
}

// Posting is a job posting persisted for a single user. The (UserID, URL)
// pair is the dedup key: a posting is never inserted twice for the same pair.
type Posting struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Title       string    `json:"title"`
	Company     string    `json:"company"`
	Location    string    `json:"location"`
	Source      string    `json:"source"`
	URL         string    `json:"url"`
	Description string    `json:"description"`
	Tags        []string  `json:"tags"`
	PostedAt    time.Time `json:"posted_at"`
	Status      Status    `json:"status"`
}

// NewPosting builds the posting that would be persisted for a candidate:
// description truncated, status new, posted date set to now.
func NewPosting(userID int64, c Candidate) Posting {
	return Posting{
		UserID:      userID,
		Title:       c.Title,
		Company:     c.Company,
		Location:    c.Location,
		Source:      c.Source,
		URL:         c.URL,
		Description: Truncate(c.Description, MaxDescriptionRunes),
		Tags:        c.Tags,
		PostedAt:    time.Now().UTC(),
		Status:      StatusNew,
	}
}

// Truncate returns the first limit runes of s.
func Truncate(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

// ListFilter narrows a posting listing. Location and Source match as
// case-insensitive substrings; an empty field means no filtering.
type ListFilter struct {
	Status   Status
	Location string
	Source   string
}

// Store persists postings. Insert must enforce the (userID, URL) uniqueness at
// the storage layer: a conflicting insert reports inserted=false without error.
type Store interface {
	Insert(ctx context.Context, userID int64, c Candidate) (inserted bool, p *Posting, err error)
	List(ctx context.Context, userID int64, f ListFilter) ([]Posting, error)
	Get(ctx context.Context, userID, id int64) (*Posting, error)
	UpdateStatus(ctx context.Context, userID, id int64, s Status) error
	Delete(ctx context.Context, userID, id int64) error
}
