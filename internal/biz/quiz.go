package biz

import (
	"context"
	"time"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/career_coach/pkg/genai"
)

// QuestionResult is one answered question inside a saved assessment.
type QuestionResult struct {
	Question    string `json:"question"`
	Answer      string `json:"answer"`
	UserAnswer  string `json:"user_answer"`
	IsCorrect   bool   `json:"is_correct"`
	Explanation string `json:"explanation"`
}

// Assessment is a completed quiz attempt.
type Assessment struct {
	ID             int
	UserID         int
	QuizScore      float64
	Questions      []QuestionResult
	Category       string
	ImprovementTip string
	CreatedAt      time.Time
}

// AssessmentRepo persists quiz attempts.
type AssessmentRepo interface {
	SaveAssessment(ctx context.Context, a *Assessment) (int, error)
	ListAssessments(ctx context.Context, userID int) ([]*Assessment, error)
}

// QuizGenerator is the slice of the genai client the quiz flow needs.
type QuizGenerator interface {
	InterviewQuiz(ctx context.Context, industry string, skills []string) ([]genai.Question, error)
	ImprovementTip(ctx context.Context, industry string, wrong []genai.WrongAnswer) (string, error)
}

// PlaceholderQuiz is the canned single-question quiz served when generation
// fails completely. The quiz flow never blocks the user on a model outage.
func PlaceholderQuiz() []genai.Question {
	return []genai.Question{{
		Question:      "Which practice most improves your chances in a technical interview?",
		Options:       []string{"Memorizing framework APIs", "Practicing problems out loud", "Reading job postings", "Rewriting your resume daily"},
		CorrectAnswer: "Practicing problems out loud",
		Explanation:   "Interviewers evaluate how you reason through a problem, and speaking through your approach is the skill that transfers.",
	}}
}

// QuizUseCase generates practice quizzes and records their results.
type QuizUseCase struct {
	users UserRepo
	repo  AssessmentRepo
	gen   QuizGenerator
	log   *log.Helper
}

// NewQuizUseCase creates the quiz business logic.
func NewQuizUseCase(users UserRepo, repo AssessmentRepo, gen QuizGenerator, logger log.Logger) *QuizUseCase {
	return &QuizUseCase{users: users, repo: repo, gen: gen, log: log.NewHelper(logger)}
}

// Generate builds a quiz for the user's industry and skills. On any
// generation failure it returns the placeholder quiz instead of an error.
func (uc *QuizUseCase) Generate(ctx context.Context, username string) ([]genai.Question, error) {
	u, err := uc.users.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	questions, err := uc.gen.InterviewQuiz(ctx, u.Industry, u.Skills)
	if err != nil {
		uc.log.WithContext(ctx).Warnf("quiz generation failed for industry %q, serving placeholder: %v", u.Industry, err)
		return PlaceholderQuiz(), nil
	}
	return questions, nil
}

// SaveResult persists a finished quiz. Wrong answers are summarized into an
// improvement tip; tip generation failure is logged and the assessment is
// saved without one.
func (uc *QuizUseCase) SaveResult(ctx context.Context, username string, results []QuestionResult, score float64) (*Assessment, error) {
	u, err := uc.users.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	var wrong []genai.WrongAnswer
	for _, r := range results {
		if !r.IsCorrect {
			wrong = append(wrong, genai.WrongAnswer{
				Question:      r.Question,
				UserAnswer:    r.UserAnswer,
				CorrectAnswer: r.Answer,
			})
		}
	}

	tip := ""
	if len(wrong) > 0 {
		tip, err = uc.gen.ImprovementTip(ctx, u.Industry, wrong)
		if err != nil {
			uc.log.WithContext(ctx).Warnf("improvement tip generation failed for %q: %v", username, err)
			tip = ""
		}
	}

	a := &Assessment{
		UserID:         u.ID,
		QuizScore:      score,
		Questions:      results,
		Category:       "Technical",
		ImprovementTip: tip,
	}
	id, err := uc.repo.SaveAssessment(ctx, a)
	if err != nil {
		return nil, err
	}
	a.ID = id
	return a, nil
}

// ListResults returns the user's past assessments.
func (uc *QuizUseCase) ListResults(ctx context.Context, username string) ([]*Assessment, error) {
	u, err := uc.users.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return uc.repo.ListAssessments(ctx, u.ID)
}
