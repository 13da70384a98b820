package server

import (
	"github.com/google/wire"

	"github.com/iWorld-y/career_coach/internal/batch"
	"github.com/iWorld-y/career_coach/internal/biz"
	"github.com/iWorld-y/career_coach/internal/data"
	"github.com/iWorld-y/career_coach/internal/service"
	"github.com/iWorld-y/career_coach/pkg/genai"
)

// ProviderSet wires the whole application graph.
var ProviderSet = wire.NewSet(
	// Server providers
	NewHTTPServer,
	NewCoachLogger,
	NewChatModel,
	NewGenAIClient,
	NewSearcher,
	NewRateLimiter,

	// Data providers
	data.NewData,
	data.NewUserRepo,
	data.NewInsightRepo,
	data.NewCoverLetterRepo,
	data.NewAssessmentRepo,

	// Business logic providers
	biz.NewRefreshPolicy,
	biz.NewInsightUseCase,
	biz.NewUserUseCase,
	biz.NewQuizUseCase,
	biz.NewCoverLetterUseCase,

	// Batch providers
	batch.NewRefresher,
	batch.NewScheduler,

	// Service providers
	service.NewCareerService,

	// The one genai client backs every generator interface.
	wire.Bind(new(biz.OutlookGenerator), new(*genai.Client)),
	wire.Bind(new(biz.QuizGenerator), new(*genai.Client)),
	wire.Bind(new(biz.LetterGenerator), new(*genai.Client)),
)
