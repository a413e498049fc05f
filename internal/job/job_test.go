package job

import (
	"strings"
	"testing"
)

func TestParseStatus(t *testing.T) {
	for _, valid := range []string{"new", "saved", "applied", "ignored"} {
		s, err := ParseStatus(valid)
		if err != nil {
			t.Fatalf("ParseStatus(%q): %v", valid, err)
		}
		if string(s) != valid {
			t.Fatalf("got %q, want %q", s, valid)
		}
	}

	if _, err := ParseStatus("archived"); err == nil {
		t.Fatalf("expected an error for unknown status")
	}
	if _, err := ParseStatus(""); err == nil {
		t.Fatalf("expected an error for empty status")
	}
}

func TestTruncate(t *testing.T) {
	long := strings.Repeat("a", 1500)
	if got := Truncate(long, MaxDescriptionRunes); len([]rune(got)) != MaxDescriptionRunes {
		t.Fatalf("got %d runes, want %d", len([]rune(got)), MaxDescriptionRunes)
	}

	if got := Truncate("short", MaxDescriptionRunes); got != "short" {
		t.Fatalf("got %q, want unchanged string", got)
	}

	// Limits count runes, not bytes.
	if got := Truncate("ääää", 2); got != "ää" {
		t.Fatalf("got %q, want %q", got, "ää")
	}

	if got := Truncate("anything", 0); got != "" {
		t.Fatalf("got %q, want empty string", got)
	}
}

func TestNewPosting(t *testing.T) {
	c := Candidate{
		Title:       "Backend Developer",
		Company:     "Acme",
		URL:         "https://example.com/jobs/1",
		Description: strings.Repeat("x", 2000),
		Tags:        []string{"Python"},
	}

	p := NewPosting(7, c)

	if p.UserID != 7 {
		t.Fatalf("got user id %d, want 7", p.UserID)
	}
	if p.Status != StatusNew {
		t.Fatalf("got status %q, want %q", p.Status, StatusNew)
	}
	if len([]rune(p.Description)) != MaxDescriptionRunes {
		t.Fatalf("description not truncated: %d runes", len([]rune(p.Description)))
	}
	if p.PostedAt.IsZero() {
		t.Fatalf("expected posted date to be set")
	}
}
