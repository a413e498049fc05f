// Package profile holds the read-only user preference snapshot consumed by the
// fetch pipeline. Profiles are owned by the settings surface; the pipeline
// never mutates them.
package profile

import (
	"context"
	"errors"
	"strings"
)

// ErrNotFound is returned when no profile exists for the given user.
var ErrNotFound = errors.New("profile not found")

// Snapshot is one user's matching preferences, taken once per fetch pass.
type Snapshot struct {
	UserID               int64    `json:"user_id"`
	Name                 string   `json:"name"`
	CurrentRole          string   `json:"current_role"`
	Skills               []string `json:"skills"`
	PreferredRoles       []string `json:"preferred_roles"`
	TargetCountries      []string `json:"target_countries"`
	NotificationsEnabled bool     `json:"notifications_enabled"`
	ContactAddress       string   `json:"contact_address"`
}

// Sanitized returns a copy with every list entry trimmed and empties dropped.
// Nil lists degrade to empty ones so a malformed profile never fails a run.
func (s Snapshot) Sanitized() Snapshot {
	s.Skills = cleaned(s.Skills)
	s.PreferredRoles = cleaned(s.PreferredRoles)
	s.TargetCountries = cleaned(s.TargetCountries)
	s.ContactAddress = strings.TrimSpace(s.ContactAddress)
	return s
}

func cleaned(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// Store loads and saves profile snapshots.
type Store interface {
	ListAll(ctx context.Context) ([]Snapshot, error)
	Get(ctx context.Context, userID int64) (*Snapshot, error)
	Upsert(ctx context.Context, s Snapshot) error
}
