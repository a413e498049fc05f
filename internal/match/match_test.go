package match

import (
	"reflect"
	"testing"

	"careertracker/internal/job"
	"careertracker/internal/profile"
)

func TestPreFilter(t *testing.T) {
	roles := []string{"Backend Developer", "Data Engineer"}
	skills := []string{"Python", "SQL"}

	if !PreFilter("Senior Backend Developer", "Senior Backend Developer", roles, skills) {
		t.Fatalf("expected role in title to pass the pre-filter")
	}

	if !PreFilter("Software Engineer", "Software Engineer we need python experience", roles, skills) {
		t.Fatalf("expected skill in text to pass the pre-filter")
	}

	if PreFilter("Marketing Intern", "Marketing Intern social media campaigns", roles, skills) {
		t.Fatalf("expected unrelated posting to be rejected")
	}

	if PreFilter("Anything", "anything", nil, nil) {
		t.Fatalf("expected empty profile lists to reject everything")
	}
}

func TestKeywordsPreservesProfileOrder(t *testing.T) {
	skills := []string{"Python", "SQL", "Django", "Kubernetes"}
	text := "We use Django on top of PostgreSQL, so strong SQL and python skills required"

	got := Keywords(text, skills)
	want := []string{"Python", "SQL", "Django"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestKeywordsDropsDuplicates(t *testing.T) {
	got := Keywords("go go go", []string{"Go", "go"})
	want := []string{"Go"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestKeywordsEmptyText(t *testing.T) {
	if got := Keywords("", []string{"Python"}); got != nil {
		t.Fatalf("got %v, want nil", got)
	}
}

func TestInferLocation(t *testing.T) {
	countries := []string{"finland", "Germany"}

	if got := InferLocation("remote position in FINLAND", countries); got != "Finland" {
		t.Fatalf("got %q, want Finland", got)
	}

	if got := InferLocation("work from anywhere", countries); got != DefaultLocation {
		t.Fatalf("got %q, want %q", got, DefaultLocation)
	}

	if got := InferLocation("", nil); got != DefaultLocation {
		t.Fatalf("got %q, want %q", got, DefaultLocation)
	}
}

func TestScore(t *testing.T) {
	p := profile.Snapshot{
		PreferredRoles:  []string{"Backend Developer"},
		Skills:          []string{"Python", "SQL", "Docker"},
		TargetCountries: []string{"Germany"},
	}
	post := job.Posting{
		Title:    "Senior Backend Developer",
		Location: "Germany",
		Tags:     []string{"Python", "SQL"},
	}

	// location +1, role +1, two matching tags +2
	if got := Score(p, post); got != 4 {
		t.Fatalf("got score %d, want 4", got)
	}
}

func TestScoreLocationMatchesOnce(t *testing.T) {
	p := profile.Snapshot{TargetCountries: []string{"Germany", "Germany"}}
	post := job.Posting{Location: "Germany"}

	if got := Score(p, post); got != 1 {
		t.Fatalf("got score %d, want 1", got)
	}
}

func TestScoreZero(t *testing.T) {
	p := profile.Snapshot{
		PreferredRoles:  []string{"Backend Developer"},
		Skills:          []string{"Python"},
		TargetCountries: []string{"Germany"},
	}
	post := job.Posting{
		Title:    "Marketing Intern",
		Location: "Spain",
		Tags:     []string{"social media"},
	}

	if got := Score(p, post); got != 0 {
		t.Fatalf("got score %d, want 0", got)
	}
}

func TestLabel(t *testing.T) {
	cases := []struct {
		score int
		want  string
	}{
		{0, LabelLow},
		{1, LabelMid},
		{2, LabelMid},
		{3, LabelHigh},
		{7, LabelHigh},
	}

	for _, tc := range cases {
		if got := Label(tc.score); got != tc.want {
			t.Fatalf("score %d: got %q, want %q", tc.score, got, tc.want)
		}
	}
}
