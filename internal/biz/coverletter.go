package biz

import (
	"context"
	"time"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	readability "github.com/go-shiori/go-readability"

	"github.com/iWorld-y/career_coach/pkg/genai"
)

// CoverLetter is a generated letter kept for the user to revisit.
type CoverLetter struct {
	ID             int
	UserID         int
	CompanyName    string
	JobTitle       string
	JobDescription string
	Content        string // markdown
	Status         string
	CreatedAt      time.Time
}

// CoverLetterInput is what the user supplies to generate a letter. When
// JobDescription is empty and JobURL is set, the posting body is fetched.
type CoverLetterInput struct {
	CompanyName    string
	JobTitle       string
	JobDescription string
	JobURL         string
}

// CoverLetterRepo persists cover letters per user.
type CoverLetterRepo interface {
	CreateCoverLetter(ctx context.Context, cl *CoverLetter) (int, error)
	ListCoverLetters(ctx context.Context, userID int) ([]*CoverLetter, error)
	// GetCoverLetter returns a kratos NotFound error when the letter does not
	// exist or belongs to another user.
	GetCoverLetter(ctx context.Context, id, userID int) (*CoverLetter, error)
	DeleteCoverLetter(ctx context.Context, id, userID int) error
}

// LetterGenerator is the slice of the genai client the letter flow needs.
type LetterGenerator interface {
	CoverLetter(ctx context.Context, profile genai.Profile, job genai.Job) (string, error)
}

// PostingFetcher extracts the readable body of a job posting URL.
type PostingFetcher func(url string) (string, error)

// FetchPosting is the default PostingFetcher, built on go-readability.
func FetchPosting(url string) (string, error) {
	article, err := readability.FromURL(url, 30*time.Second)
	if err != nil {
		return "", err
	}
	return article.TextContent, nil
}

// maxPostingLen caps fetched posting bodies to keep prompts inside the
// model's context window.
const maxPostingLen = 6000

// CoverLetterUseCase generates and manages cover letters.
type CoverLetterUseCase struct {
	users UserRepo
	repo  CoverLetterRepo
	gen   LetterGenerator
	fetch PostingFetcher
	log   *log.Helper
}

// NewCoverLetterUseCase creates the cover letter business logic.
func NewCoverLetterUseCase(users UserRepo, repo CoverLetterRepo, gen LetterGenerator, logger log.Logger) *CoverLetterUseCase {
	return &CoverLetterUseCase{
		users: users,
		repo:  repo,
		gen:   gen,
		fetch: FetchPosting,
		log:   log.NewHelper(logger),
	}
}

// Generate writes a letter for the user against the given posting. Unlike
// the quiz flow, generation failure surfaces to the caller.
func (uc *CoverLetterUseCase) Generate(ctx context.Context, username string, in CoverLetterInput) (*CoverLetter, error) {
	u, err := uc.users.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	description := in.JobDescription
	if description == "" && in.JobURL != "" {
		fetched, ferr := uc.fetch(in.JobURL)
		if ferr != nil {
			uc.log.WithContext(ctx).Warnf("posting fetch failed for %q, generating without description: %v", in.JobURL, ferr)
		} else {
			if len(fetched) > maxPostingLen {
				fetched = fetched[:maxPostingLen]
			}
			description = fetched
		}
	}

	content, err := uc.gen.CoverLetter(ctx,
		genai.Profile{
			Industry:        u.Industry,
			ExperienceYears: u.Experience,
			Skills:          u.Skills,
			Bio:             u.Bio,
		},
		genai.Job{
			CompanyName: in.CompanyName,
			JobTitle:    in.JobTitle,
			Description: description,
		},
	)
	if err != nil {
		return nil, errors.ServiceUnavailable("GENERATION_FAILED", "cover letter generation failed").WithCause(err)
	}

	cl := &CoverLetter{
		UserID:         u.ID,
		CompanyName:    in.CompanyName,
		JobTitle:       in.JobTitle,
		JobDescription: description,
		Content:        content,
		Status:         "completed",
	}
	id, err := uc.repo.CreateCoverLetter(ctx, cl)
	if err != nil {
		return nil, err
	}
	cl.ID = id
	return cl, nil
}

// List returns the user's letters, newest first.
func (uc *CoverLetterUseCase) List(ctx context.Context, username string) ([]*CoverLetter, error) {
	u, err := uc.users.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return uc.repo.ListCoverLetters(ctx, u.ID)
}

// Get returns one letter owned by the user.
func (uc *CoverLetterUseCase) Get(ctx context.Context, username string, id int) (*CoverLetter, error) {
	u, err := uc.users.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return uc.repo.GetCoverLetter(ctx, id, u.ID)
}

// Delete removes one letter owned by the user.
func (uc *CoverLetterUseCase) Delete(ctx context.Context, username string, id int) error {
	u, err := uc.users.GetUserByUsername(ctx, username)
	if err != nil {
		return err
	}
	return uc.repo.DeleteCoverLetter(ctx, id, u.ID)
}
