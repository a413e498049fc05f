package notify

import (
	"fmt"
	"strings"
	"testing"

	"careertracker/internal/job"
)

func TestDigest(t *testing.T) {
	postings := []job.Posting{
		{Title: "Backend Developer", Company: "Acme", Location: "Finland", URL: "https://example.com/1"},
		{Title: "Data Engineer", Company: "Globex", Location: "Germany", URL: "https://example.com/2"},
	}

	subject, body := Digest("Maria", postings)

	if subject != "New jobs alert (2 found)" {
		t.Fatalf("got subject %q", subject)
	}
	if !strings.Contains(body, "Hi Maria,") {
		t.Fatalf("greeting missing from body:\n%s", body)
	}
	if !strings.Contains(body, "Backend Developer") || !strings.Contains(body, "https://example.com/2") {
		t.Fatalf("postings missing from body:\n%s", body)
	}
	if !strings.Contains(body, "Good luck!") {
		t.Fatalf("signature missing from body:\n%s", body)
	}
}

func TestDigestCapsListedPostings(t *testing.T) {
	postings := make([]job.Posting, 15)
	for i := range postings {
		postings[i] = job.Posting{
			Title: fmt.Sprintf("Job %d", i),
			URL:   fmt.Sprintf("https://example.com/%d", i),
		}
	}

	subject, body := Digest("Maria", postings)

	// The subject reports the full count, the body lists only the cap.
	if subject != "New jobs alert (15 found)" {
		t.Fatalf("got subject %q", subject)
	}
	if got := strings.Count(body, "•"); got != digestLimit {
		t.Fatalf("got %d listed postings, want %d", got, digestLimit)
	}
	if strings.Contains(body, "Job 10") {
		t.Fatalf("posting beyond the cap leaked into the body")
	}
}
