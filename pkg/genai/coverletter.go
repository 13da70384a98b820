package genai

import (
	"context"
	"fmt"
	"strings"
)

// Profile is the applicant context a cover letter is written from.
type Profile struct {
	Industry        string
	ExperienceYears int
	Skills          []string
	Bio             string
}

// Job describes the posting a cover letter targets.
type Job struct {
	CompanyName string
	JobTitle    string
	Description string
}

const coverLetterPrompt = `Write a professional cover letter for a %s position at %s.

About the candidate:
- Industry: %s
- Years of experience: %d
- Skills: %s
- Professional background: %s

Job description:
%s

Requirements:
1. Use a professional, enthusiastic tone.
2. Highlight relevant skills and experience.
3. Show understanding of the company's needs.
4. Keep it under 400 words.
5. Format it in markdown as a proper business letter.`

// CoverLetter generates a markdown cover letter for profile applying to job.
// Failures surface to the caller; there is no canned fallback letter.
func (c *Client) CoverLetter(ctx context.Context, profile Profile, job Job) (string, error) {
	prompt := fmt.Sprintf(coverLetterPrompt,
		job.JobTitle, job.CompanyName,
		profile.Industry, profile.ExperienceYears,
		strings.Join(profile.Skills, ", "), profile.Bio,
		job.Description,
	)

	raw, err := c.complete(ctx, "You are an expert career writing assistant.", prompt)
	if err != nil {
		return "", err
	}
	letter := strings.TrimSpace(raw)
	if letter == "" {
		return "", fmt.Errorf("empty cover letter for %s at %s: %w", job.JobTitle, job.CompanyName, ErrGenerationFailed)
	}
	return letter, nil
}
