package service

import (
	"context"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	kjwt "github.com/go-kratos/kratos/v2/middleware/auth/jwt"
	"github.com/golang-jwt/jwt/v5"

	"github.com/iWorld-y/career_coach/internal/batch"
	"github.com/iWorld-y/career_coach/internal/biz"
	"github.com/iWorld-y/career_coach/pkg/genai"
)

// Operation names used for route registration and middleware matching.
const (
	OperationRegister       = "/career.v1.Career/Register"
	OperationLogin          = "/career.v1.Career/Login"
	OperationGetProfile     = "/career.v1.Career/GetProfile"
	OperationUpdateProfile  = "/career.v1.Career/UpdateProfile"
	OperationGetInsights    = "/career.v1.Career/GetInsights"
	OperationCreateLetter   = "/career.v1.Career/CreateCoverLetter"
	OperationListLetters    = "/career.v1.Career/ListCoverLetters"
	OperationGetLetter      = "/career.v1.Career/GetCoverLetter"
	OperationDeleteLetter   = "/career.v1.Career/DeleteCoverLetter"
	OperationGenerateQuiz   = "/career.v1.Career/GenerateQuiz"
	OperationSaveQuizResult = "/career.v1.Career/SaveQuizResult"
	OperationListResults    = "/career.v1.Career/ListQuizResults"
	OperationTriggerRefresh = "/career.v1.Career/TriggerRefresh"
)

// CareerService exposes every coaching flow over HTTP.
type CareerService struct {
	ucUser    *biz.UserUseCase
	ucInsight *biz.InsightUseCase
	ucLetter  *biz.CoverLetterUseCase
	ucQuiz    *biz.QuizUseCase
	refresher *batch.Refresher
	log       *log.Helper
}

// NewCareerService wires the service facade.
func NewCareerService(ucUser *biz.UserUseCase, ucInsight *biz.InsightUseCase, ucLetter *biz.CoverLetterUseCase, ucQuiz *biz.QuizUseCase, refresher *batch.Refresher, logger log.Logger) *CareerService {
	return &CareerService{
		ucUser:    ucUser,
		ucInsight: ucInsight,
		ucLetter:  ucLetter,
		ucQuiz:    ucQuiz,
		refresher: refresher,
		log:       log.NewHelper(logger),
	}
}

// usernameFromContext reads the username claim set by the JWT middleware.
func usernameFromContext(ctx context.Context) (string, error) {
	claims, ok := kjwt.FromContext(ctx)
	if !ok {
		return "", errors.Unauthorized("AUTH_REQUIRED", "missing token")
	}
	mc, ok := claims.(jwt.MapClaims)
	if !ok {
		return "", errors.Unauthorized("AUTH_REQUIRED", "malformed claims")
	}
	username, _ := mc["username"].(string)
	if username == "" {
		return "", errors.Unauthorized("AUTH_REQUIRED", "malformed claims")
	}
	return username, nil
}

type RegisterReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RegisterReply struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (s *CareerService) Register(ctx context.Context, req *RegisterReq) (*RegisterReply, error) {
	if req.Username == "" || req.Password == "" {
		return nil, errors.BadRequest("INVALID_CREDENTIALS", "username and password are required")
	}
	if err := s.ucUser.Register(ctx, req.Username, req.Password); err != nil {
		return nil, err
	}
	return &RegisterReply{Success: true, Message: "success"}, nil
}

type LoginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginReply struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

func (s *CareerService) Login(ctx context.Context, req *LoginReq) (*LoginReply, error) {
	token, err := s.ucUser.Login(ctx, req.Username, req.Password)
	if err != nil {
		return nil, err
	}
	return &LoginReply{Token: token, Username: req.Username}, nil
}

type ProfileReply struct {
	Username   string   `json:"username"`
	Industry   string   `json:"industry"`
	Experience int      `json:"experience"`
	Bio        string   `json:"bio"`
	Skills     []string `json:"skills"`
}

func (s *CareerService) GetProfile(ctx context.Context, _ *struct{}) (*ProfileReply, error) {
	username, err := usernameFromContext(ctx)
	if err != nil {
		return nil, err
	}
	u, err := s.ucUser.GetProfile(ctx, username)
	if err != nil {
		return nil, err
	}
	return &ProfileReply{
		Username:   u.Username,
		Industry:   u.Industry,
		Experience: u.Experience,
		Bio:        u.Bio,
		Skills:     u.Skills,
	}, nil
}

type UpdateProfileReq struct {
	Industry   string   `json:"industry"`
	Experience int      `json:"experience"`
	Bio        string   `json:"bio"`
	Skills     []string `json:"skills"`
}

func (s *CareerService) UpdateProfile(ctx context.Context, req *UpdateProfileReq) (*ProfileReply, error) {
	username, err := usernameFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.ucUser.UpdateProfile(ctx, username, req.Industry, req.Experience, req.Bio, req.Skills); err != nil {
		return nil, err
	}
	return &ProfileReply{
		Username:   username,
		Industry:   req.Industry,
		Experience: req.Experience,
		Bio:        req.Bio,
		Skills:     req.Skills,
	}, nil
}

type InsightReply struct {
	Industry          string              `json:"industry"`
	SalaryRanges      []genai.SalaryRange `json:"salary_ranges"`
	GrowthRate        float64             `json:"growth_rate"`
	DemandLevel       string              `json:"demand_level"`
	TopSkills         []string            `json:"top_skills"`
	MarketOutlook     string              `json:"market_outlook"`
	KeyTrends         []string            `json:"key_trends"`
	RecommendedSkills []string            `json:"recommended_skills"`
	LastUpdated       string              `json:"last_updated"`
	NextUpdate        string              `json:"next_update"`
}

func (s *CareerService) GetInsights(ctx context.Context, _ *struct{}) (*InsightReply, error) {
	username, err := usernameFromContext(ctx)
	if err != nil {
		return nil, err
	}
	u, err := s.ucUser.GetProfile(ctx, username)
	if err != nil {
		return nil, err
	}
	rec, err := s.ucInsight.GetByIndustry(ctx, u.Industry)
	if err != nil {
		return nil, err
	}
	return insightReply(rec), nil
}

func insightReply(rec *biz.Insight) *InsightReply {
	return &InsightReply{
		Industry:          rec.Industry,
		SalaryRanges:      rec.SalaryRanges,
		GrowthRate:        rec.GrowthRate,
		DemandLevel:       rec.DemandLevel,
		TopSkills:         rec.TopSkills,
		MarketOutlook:     rec.MarketOutlook,
		KeyTrends:         rec.KeyTrends,
		RecommendedSkills: rec.RecommendedSkills,
		LastUpdated:       rec.LastUpdated.Format("2006-01-02T15:04:05Z07:00"),
		NextUpdate:        rec.NextUpdate.Format("2006-01-02T15:04:05Z07:00"),
	}
}

type CreateCoverLetterReq struct {
	CompanyName    string `json:"company_name"`
	JobTitle       string `json:"job_title"`
	JobDescription string `json:"job_description"`
	JobURL         string `json:"job_url"`
}

type CoverLetterReply struct {
	ID             int    `json:"id"`
	CompanyName    string `json:"company_name"`
	JobTitle       string `json:"job_title"`
	JobDescription string `json:"job_description"`
	Content        string `json:"content"`
	Status         string `json:"status"`
	CreatedAt      string `json:"created_at"`
}

func coverLetterReply(cl *biz.CoverLetter) *CoverLetterReply {
	return &CoverLetterReply{
		ID:             cl.ID,
		CompanyName:    cl.CompanyName,
		JobTitle:       cl.JobTitle,
		JobDescription: cl.JobDescription,
		Content:        cl.Content,
		Status:         cl.Status,
		CreatedAt:      cl.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

func (s *CareerService) CreateCoverLetter(ctx context.Context, req *CreateCoverLetterReq) (*CoverLetterReply, error) {
	username, err := usernameFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if req.CompanyName == "" || req.JobTitle == "" {
		return nil, errors.BadRequest("INVALID_JOB", "company name and job title are required")
	}
	cl, err := s.ucLetter.Generate(ctx, username, biz.CoverLetterInput{
		CompanyName:    req.CompanyName,
		JobTitle:       req.JobTitle,
		JobDescription: req.JobDescription,
		JobURL:         req.JobURL,
	})
	if err != nil {
		return nil, err
	}
	return coverLetterReply(cl), nil
}

type ListCoverLettersReply struct {
	CoverLetters []*CoverLetterReply `json:"cover_letters"`
}

func (s *CareerService) ListCoverLetters(ctx context.Context, _ *struct{}) (*ListCoverLettersReply, error) {
	username, err := usernameFromContext(ctx)
	if err != nil {
		return nil, err
	}
	letters, err := s.ucLetter.List(ctx, username)
	if err != nil {
		return nil, err
	}
	out := make([]*CoverLetterReply, 0, len(letters))
	for _, cl := range letters {
		out = append(out, coverLetterReply(cl))
	}
	return &ListCoverLettersReply{CoverLetters: out}, nil
}

func (s *CareerService) GetCoverLetter(ctx context.Context, id int) (*CoverLetterReply, error) {
	username, err := usernameFromContext(ctx)
	if err != nil {
		return nil, err
	}
	cl, err := s.ucLetter.Get(ctx, username, id)
	if err != nil {
		return nil, err
	}
	return coverLetterReply(cl), nil
}

type DeleteCoverLetterReply struct {
	Success bool `json:"success"`
}

func (s *CareerService) DeleteCoverLetter(ctx context.Context, id int) (*DeleteCoverLetterReply, error) {
	username, err := usernameFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.ucLetter.Delete(ctx, username, id); err != nil {
		return nil, err
	}
	return &DeleteCoverLetterReply{Success: true}, nil
}

type QuizReply struct {
	Questions []genai.Question `json:"questions"`
}

func (s *CareerService) GenerateQuiz(ctx context.Context, _ *struct{}) (*QuizReply, error) {
	username, err := usernameFromContext(ctx)
	if err != nil {
		return nil, err
	}
	questions, err := s.ucQuiz.Generate(ctx, username)
	if err != nil {
		return nil, err
	}
	return &QuizReply{Questions: questions}, nil
}

type SaveQuizResultReq struct {
	Questions []biz.QuestionResult `json:"questions"`
	Score     float64              `json:"score"`
}

type AssessmentReply struct {
	ID             int                  `json:"id"`
	QuizScore      float64              `json:"quiz_score"`
	Questions      []biz.QuestionResult `json:"questions"`
	Category       string               `json:"category"`
	ImprovementTip string               `json:"improvement_tip"`
	CreatedAt      string               `json:"created_at"`
}

func assessmentReply(a *biz.Assessment) *AssessmentReply {
	return &AssessmentReply{
		ID:             a.ID,
		QuizScore:      a.QuizScore,
		Questions:      a.Questions,
		Category:       a.Category,
		ImprovementTip: a.ImprovementTip,
		CreatedAt:      a.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

func (s *CareerService) SaveQuizResult(ctx context.Context, req *SaveQuizResultReq) (*AssessmentReply, error) {
	username, err := usernameFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if len(req.Questions) == 0 {
		return nil, errors.BadRequest("EMPTY_RESULT", "no answered questions submitted")
	}
	a, err := s.ucQuiz.SaveResult(ctx, username, req.Questions, req.Score)
	if err != nil {
		return nil, err
	}
	return assessmentReply(a), nil
}

type ListQuizResultsReply struct {
	Assessments []*AssessmentReply `json:"assessments"`
}

func (s *CareerService) ListQuizResults(ctx context.Context, _ *struct{}) (*ListQuizResultsReply, error) {
	username, err := usernameFromContext(ctx)
	if err != nil {
		return nil, err
	}
	assessments, err := s.ucQuiz.ListResults(ctx, username)
	if err != nil {
		return nil, err
	}
	out := make([]*AssessmentReply, 0, len(assessments))
	for _, a := range assessments {
		out = append(out, assessmentReply(a))
	}
	return &ListQuizResultsReply{Assessments: out}, nil
}

type TriggerRefreshReply struct {
	Success bool `json:"success"`
}

// TriggerRefresh runs the full batch refresh immediately instead of waiting
// for the next scheduled run.
func (s *CareerService) TriggerRefresh(ctx context.Context, _ *struct{}) (*TriggerRefreshReply, error) {
	if _, err := usernameFromContext(ctx); err != nil {
		return nil, err
	}
	if err := s.refresher.RunOnce(ctx); err != nil {
		return nil, err
	}
	return &TriggerRefreshReply{Success: true}, nil
}
