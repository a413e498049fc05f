package ai

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"careertracker/internal/job"
	"careertracker/internal/profile"
)

// Description caps keep prompts within a sane token budget.
const (
	cvDescriptionRunes     = 3000
	letterDescriptionRunes = 2500
)

const cvPromptTemplate = `Generate a professional, ATS-friendly CV in clean Markdown format.

Candidate Profile:
- Name: %s
- Current Role: %s
- Key Skills: %s
- Target Roles: %s

Target Job:
- Title: %s
- Company: %s
- Location: %s
- Skills Required: %s
- Job Description: %s

Requirements:
- Tailor the CV to this job
- Strong opening summary
- Highlight matching skills first
- Use clean Markdown (##, -, **bold**)
- Output ONLY the CV, no extra text`

const letterPromptTemplate = `Write a professional cover letter in plain text (no Markdown) for:

Name: %s
Current Role: %s
Key Skills: %s

Applying for:
Job Title: %s
Company: %s
Location: %s

Job Description (summary): %s

Instructions:
- Sound confident and enthusiastic
- Highlight the 2-3 strongest matching skills
- Mention why the candidate is excited about this company
- End with a call to action
- Keep under 400 words, natural human tone`

// Writer turns a profile and a posting into drafted application materials.
// The drafter handle is injected; its lifecycle belongs to the process entry
// point.
type Writer struct {
	drafter Drafter
	logger  *zap.Logger
}

func NewWriter(drafter Drafter, logger *zap.Logger) *Writer {
	return &Writer{
		drafter: drafter,
		logger:  logger.With(zap.String("ai_model", drafter.Model())),
	}
}

// CV drafts a tailored CV in Markdown.
func (w *Writer) CV(ctx context.Context, p profile.Snapshot, post job.Posting) (string, error) {
	prompt := fmt.Sprintf(cvPromptTemplate,
		candidateName(p),
		p.CurrentRole,
		strings.Join(p.Skills, ", "),
		strings.Join(p.PreferredRoles, ", "),
		post.Title,
		post.Company,
		post.Location,
		strings.Join(post.Tags, ", "),
		job.Truncate(post.Description, cvDescriptionRunes),
	)

	w.logger.Debug("drafting cv", zap.Int64("posting_id", post.ID))
	return w.drafter.Draft(ctx, prompt)
}

// CoverLetter drafts a plain-text cover letter.
func (w *Writer) CoverLetter(ctx context.Context, p profile.Snapshot, post job.Posting) (string, error) {
	prompt := fmt.Sprintf(letterPromptTemplate,
		candidateName(p),
		p.CurrentRole,
		strings.Join(p.Skills, ", "),
		post.Title,
		post.Company,
		post.Location,
		job.Truncate(post.Description, letterDescriptionRunes),
	)

	w.logger.Debug("drafting cover letter", zap.Int64("posting_id", post.ID))
	return w.drafter.Draft(ctx, prompt)
}

func candidateName(p profile.Snapshot) string {
	if p.Name != "" {
		return p.Name
	}
	return "the candidate"
}
