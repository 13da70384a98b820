package biz

import (
	"context"
	"sync"

	"github.com/go-kratos/kratos/v2/errors"

	"github.com/iWorld-y/career_coach/pkg/genai"
)

// memInsightRepo is an in-memory InsightRepo counting writes.
type memInsightRepo struct {
	mu      sync.Mutex
	records map[string]*Insight
	upserts int
	findErr error
	saveErr error
}

func newMemInsightRepo() *memInsightRepo {
	return &memInsightRepo{records: map[string]*Insight{}}
}

func (m *memInsightRepo) FindByIndustry(_ context.Context, industry string) (*Insight, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.findErr != nil {
		return nil, m.findErr
	}
	rec, ok := m.records[industry]
	if !ok {
		return nil, errors.NotFound("INSIGHT_NOT_FOUND", "insight not found")
	}
	cp := *rec
	return &cp, nil
}

func (m *memInsightRepo) Upsert(_ context.Context, insight *Insight) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.upserts++
	cp := *insight
	m.records[insight.Industry] = &cp
	return nil
}

func (m *memInsightRepo) ListIndustries(_ context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	industries := make([]string, 0, len(m.records))
	for k := range m.records {
		industries = append(industries, k)
	}
	return industries, nil
}

// fakeOutlookGen scripts IndustryOutlook responses and counts calls.
type fakeOutlookGen struct {
	calls int
	fn    func(industry string) (*genai.Outlook, error)
}

func (f *fakeOutlookGen) IndustryOutlook(_ context.Context, industry string, _ []string) (*genai.Outlook, error) {
	f.calls++
	return f.fn(industry)
}

func sampleOutlook() *genai.Outlook {
	return &genai.Outlook{
		SalaryRanges:      []genai.SalaryRange{{Role: "Backend Engineer", Min: 90000, Max: 180000, Median: 130000, Location: "US"}},
		GrowthRate:        4.5,
		DemandLevel:       "HIGH",
		TopSkills:         []string{"Go", "Postgres"},
		MarketOutlook:     "POSITIVE",
		KeyTrends:         []string{"AI tooling"},
		RecommendedSkills: []string{"Kubernetes"},
	}
}

// memUserRepo is an in-memory UserRepo recording the last tx arguments.
type memUserRepo struct {
	users map[string]*User

	txCalls     int
	txInsight   *Insight
	txIndustry  string
	txSkills    []string
	txBio       string
	txExperienc int
	txErr       error
}

func newMemUserRepo(users ...*User) *memUserRepo {
	m := &memUserRepo{users: map[string]*User{}}
	for i, u := range users {
		if u.ID == 0 {
			u.ID = i + 1
		}
		m.users[u.Username] = u
	}
	return m
}

func (m *memUserRepo) CreateUser(_ context.Context, u *User) error {
	if _, ok := m.users[u.Username]; ok {
		return errors.Conflict("USER_EXISTS", "username taken")
	}
	u.ID = len(m.users) + 1
	m.users[u.Username] = u
	return nil
}

func (m *memUserRepo) GetUserByUsername(_ context.Context, username string) (*User, error) {
	u, ok := m.users[username]
	if !ok {
		return nil, errors.NotFound("USER_NOT_FOUND", "user not found")
	}
	cp := *u
	return &cp, nil
}

func (m *memUserRepo) UpdateProfileTx(_ context.Context, id int, industry string, experience int, bio string, skills []string, insight *Insight) error {
	m.txCalls++
	m.txIndustry = industry
	m.txExperienc = experience
	m.txBio = bio
	m.txSkills = skills
	m.txInsight = insight
	return m.txErr
}

// fakeQuizGen scripts the quiz generator.
type fakeQuizGen struct {
	quizCalls int
	quizFn    func(industry string, skills []string) ([]genai.Question, error)
	tipFn     func(wrong []genai.WrongAnswer) (string, error)
}

func (f *fakeQuizGen) InterviewQuiz(_ context.Context, industry string, skills []string) ([]genai.Question, error) {
	f.quizCalls++
	return f.quizFn(industry, skills)
}

func (f *fakeQuizGen) ImprovementTip(_ context.Context, _ string, wrong []genai.WrongAnswer) (string, error) {
	if f.tipFn == nil {
		return "", nil
	}
	return f.tipFn(wrong)
}

// memAssessmentRepo is an in-memory AssessmentRepo.
type memAssessmentRepo struct {
	saved []*Assessment
}

func (m *memAssessmentRepo) SaveAssessment(_ context.Context, a *Assessment) (int, error) {
	cp := *a
	m.saved = append(m.saved, &cp)
	return len(m.saved), nil
}

func (m *memAssessmentRepo) ListAssessments(_ context.Context, userID int) ([]*Assessment, error) {
	var out []*Assessment
	for _, a := range m.saved {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

// fakeLetterGen scripts the cover letter generator.
type fakeLetterGen struct {
	calls   int
	lastJob genai.Job
	fn      func(job genai.Job) (string, error)
}

func (f *fakeLetterGen) CoverLetter(_ context.Context, _ genai.Profile, job genai.Job) (string, error) {
	f.calls++
	f.lastJob = job
	return f.fn(job)
}

// memCoverLetterRepo is an in-memory CoverLetterRepo.
type memCoverLetterRepo struct {
	letters []*CoverLetter
}

func (m *memCoverLetterRepo) CreateCoverLetter(_ context.Context, cl *CoverLetter) (int, error) {
	cp := *cl
	cp.ID = len(m.letters) + 1
	m.letters = append(m.letters, &cp)
	return cp.ID, nil
}

func (m *memCoverLetterRepo) ListCoverLetters(_ context.Context, userID int) ([]*CoverLetter, error) {
	var out []*CoverLetter
	for _, cl := range m.letters {
		if cl.UserID == userID {
			out = append(out, cl)
		}
	}
	return out, nil
}

func (m *memCoverLetterRepo) GetCoverLetter(_ context.Context, id, userID int) (*CoverLetter, error) {
	for _, cl := range m.letters {
		if cl.ID == id && cl.UserID == userID {
			return cl, nil
		}
	}
	return nil, errors.NotFound("COVER_LETTER_NOT_FOUND", "cover letter not found")
}

func (m *memCoverLetterRepo) DeleteCoverLetter(_ context.Context, id, userID int) error {
	for i, cl := range m.letters {
		if cl.ID == id && cl.UserID == userID {
			m.letters = append(m.letters[:i], m.letters[i+1:]...)
			return nil
		}
	}
	return errors.NotFound("COVER_LETTER_NOT_FOUND", "cover letter not found")
}
