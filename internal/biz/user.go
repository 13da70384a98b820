package biz

import (
	"context"
	"time"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/iWorld-y/career_coach/internal/conf"
)

// User is a registered job seeker and their coaching profile.
type User struct {
	ID           int
	Username     string
	PasswordHash string
	Industry     string
	Experience   int // years
	Bio          string
	Skills       []string
}

// UserRepo persists users.
type UserRepo interface {
	CreateUser(ctx context.Context, u *User) error
	GetUserByUsername(ctx context.Context, username string) (*User, error)
	// UpdateProfileTx updates the user's profile and, when insight is non-nil,
	// upserts that insight record in the same transaction.
	UpdateProfileTx(ctx context.Context, id int, industry string, experience int, bio string, skills []string, insight *Insight) error
}

// UserUseCase handles registration, login and profile maintenance.
type UserUseCase struct {
	repo     UserRepo
	insights InsightRepo
	gen      OutlookGenerator
	policy   RefreshPolicy
	jwtKey   string
	log      *log.Helper
}

// NewUserUseCase creates the user business logic.
func NewUserUseCase(repo UserRepo, insights InsightRepo, gen OutlookGenerator, policy RefreshPolicy, auth *conf.Auth, logger log.Logger) *UserUseCase {
	jwtKey := "default-secret"
	if auth != nil && auth.JwtKey != "" {
		jwtKey = auth.JwtKey
	}
	return &UserUseCase{
		repo:     repo,
		insights: insights,
		gen:      gen,
		policy:   policy,
		jwtKey:   jwtKey,
		log:      log.NewHelper(logger),
	}
}

// JWTKey exposes the signing key for the server-side token middleware.
func (uc *UserUseCase) JWTKey() string { return uc.jwtKey }

// Register creates a user with a bcrypt-hashed password.
func (uc *UserUseCase) Register(ctx context.Context, username, password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return uc.repo.CreateUser(ctx, &User{
		Username:     username,
		PasswordHash: string(hashedPassword),
	})
}

// Login verifies the password and returns a signed JWT.
func (uc *UserUseCase) Login(ctx context.Context, username, password string) (string, error) {
	u, err := uc.repo.GetUserByUsername(ctx, username)
	if err != nil {
		return "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return "", errors.Unauthorized("AUTH_FAILED", "invalid password")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"username": u.Username,
		"exp":      time.Now().Add(time.Hour * 24).Unix(),
	})
	return token.SignedString([]byte(uc.jwtKey))
}

// GetProfile returns the user's profile.
func (uc *UserUseCase) GetProfile(ctx context.Context, username string) (*User, error) {
	return uc.repo.GetUserByUsername(ctx, username)
}

// UpdateProfile updates the coaching profile. When the new industry has no
// insight record yet, one is generated first — outside the transaction, so
// the slow model call never holds a database transaction open — and then the
// insight upsert and the profile update commit atomically.
func (uc *UserUseCase) UpdateProfile(ctx context.Context, username, industry string, experience int, bio string, skills []string) error {
	u, err := uc.repo.GetUserByUsername(ctx, username)
	if err != nil {
		return err
	}

	var fresh *Insight
	if industry != "" {
		_, err := uc.insights.FindByIndustry(ctx, industry)
		switch {
		case err == nil:
			// Record exists; the fetcher and the weekly job keep it fresh.
		case errors.IsNotFound(err):
			outlook, gerr := uc.gen.IndustryOutlook(ctx, industry, nil)
			if gerr != nil {
				return errors.ServiceUnavailable("GENERATION_FAILED", "industry outlook generation failed").WithCause(gerr)
			}
			fresh = InsightFromOutlook(industry, outlook, uc.policy.Now(), uc.policy.TTL)
		default:
			return err
		}
	}

	return uc.repo.UpdateProfileTx(ctx, u.ID, industry, experience, bio, skills, fresh)
}
