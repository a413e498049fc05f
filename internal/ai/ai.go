// Package ai drafts application materials (CV, cover letter) for a posting.
package ai

import "context"

// Drafter generates text from a prompt. The only implementation is the Gemini
// generator; tests use a stub.
type Drafter interface {
	Draft(ctx context.Context, prompt string) (string, error)
	Model() string
}
