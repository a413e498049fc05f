package ai

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"careertracker/internal/job"
	"careertracker/internal/profile"
)

type stubDrafter struct {
	prompt string
	reply  string
	err    error
}

func (d *stubDrafter) Draft(_ context.Context, prompt string) (string, error) {
	d.prompt = prompt
	return d.reply, d.err
}

func (d *stubDrafter) Model() string { return "stub" }

var testProfile = profile.Snapshot{
	Name:           "Maria",
	CurrentRole:    "Junior Developer",
	Skills:         []string{"Python", "SQL"},
	PreferredRoles: []string{"Backend Developer"},
}

var testPosting = job.Posting{
	ID:          42,
	Title:       "Backend Developer",
	Company:     "Acme",
	Location:    "Finland",
	Description: "We build backend systems in Python.",
	Tags:        []string{"Python"},
}

func TestCVPrompt(t *testing.T) {
	drafter := &stubDrafter{reply: "## CV"}
	writer := NewWriter(drafter, zap.NewNop())

	got, err := writer.CV(context.Background(), testProfile, testPosting)
	if err != nil {
		t.Fatalf("CV: %v", err)
	}
	if got != "## CV" {
		t.Fatalf("got %q", got)
	}

	for _, want := range []string{"Maria", "Junior Developer", "Python, SQL", "Backend Developer", "Acme", "Finland"} {
		if !strings.Contains(drafter.prompt, want) {
			t.Fatalf("prompt missing %q:\n%s", want, drafter.prompt)
		}
	}
}

func TestCoverLetterPrompt(t *testing.T) {
	drafter := &stubDrafter{reply: "Dear Acme"}
	writer := NewWriter(drafter, zap.NewNop())

	got, err := writer.CoverLetter(context.Background(), testProfile, testPosting)
	if err != nil {
		t.Fatalf("CoverLetter: %v", err)
	}
	if got != "Dear Acme" {
		t.Fatalf("got %q", got)
	}
	if !strings.Contains(drafter.prompt, "cover letter") {
		t.Fatalf("prompt missing instructions:\n%s", drafter.prompt)
	}
}

func TestCVTruncatesLongDescription(t *testing.T) {
	drafter := &stubDrafter{reply: "ok"}
	writer := NewWriter(drafter, zap.NewNop())

	long := testPosting
	long.Description = strings.Repeat("x", 5000)

	if _, err := writer.CV(context.Background(), testProfile, long); err != nil {
		t.Fatalf("CV: %v", err)
	}
	if strings.Contains(drafter.prompt, strings.Repeat("x", cvDescriptionRunes+1)) {
		t.Fatalf("description was not truncated")
	}
}

func TestWriterPropagatesDrafterError(t *testing.T) {
	drafter := &stubDrafter{err: errors.New("quota exceeded")}
	writer := NewWriter(drafter, zap.NewNop())

	if _, err := writer.CV(context.Background(), testProfile, testPosting); err == nil {
		t.Fatalf("expected the drafter error to propagate")
	}
}
