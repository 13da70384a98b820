package server

import (
	"context"
	"strconv"
	"time"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	kjwt "github.com/go-kratos/kratos/v2/middleware/auth/jwt"
	"github.com/go-kratos/kratos/v2/middleware/recovery"
	"github.com/go-kratos/kratos/v2/middleware/selector"
	"github.com/go-kratos/kratos/v2/transport/http"
	jwtv5 "github.com/golang-jwt/jwt/v5"

	"github.com/iWorld-y/career_coach/internal/biz"
	"github.com/iWorld-y/career_coach/internal/conf"
	"github.com/iWorld-y/career_coach/internal/service"
)

// publicOperations are reachable without a token.
var publicOperations = map[string]bool{
	service.OperationRegister: true,
	service.OperationLogin:    true,
}

func authRequired(_ context.Context, operation string) bool {
	return !publicOperations[operation]
}

// NewHTTPServer builds the kratos HTTP server and registers every route.
func NewHTTPServer(c *conf.Server, svc *service.CareerService, ucUser *biz.UserUseCase, logger log.Logger) *http.Server {
	authMiddleware := selector.Server(
		kjwt.Server(
			func(token *jwtv5.Token) (interface{}, error) {
				return []byte(ucUser.JWTKey()), nil
			},
			kjwt.WithSigningMethod(jwtv5.SigningMethodHS256),
			kjwt.WithClaims(func() jwtv5.Claims { return jwtv5.MapClaims{} }),
		),
	).Match(authRequired).Build()

	var opts = []http.ServerOption{
		http.Middleware(
			recovery.Recovery(),
			authMiddleware,
		),
	}
	if c.Http.Addr != "" {
		opts = append(opts, http.Address(c.Http.Addr))
	}
	if c.Http.Timeout != "" {
		if d, err := time.ParseDuration(c.Http.Timeout); err == nil {
			opts = append(opts, http.Timeout(d))
		}
	}

	srv := http.NewServer(opts...)
	registerRoutes(srv, svc)
	return srv
}

func registerRoutes(srv *http.Server, svc *service.CareerService) {
	r := srv.Route("/api")

	r.POST("/register", handle(service.OperationRegister, func(ctx http.Context) (interface{}, error) {
		var req service.RegisterReq
		if err := ctx.Bind(&req); err != nil {
			return nil, err
		}
		return invoke(ctx, func(c context.Context) (interface{}, error) {
			return svc.Register(c, &req)
		})
	}))

	r.POST("/login", handle(service.OperationLogin, func(ctx http.Context) (interface{}, error) {
		var req service.LoginReq
		if err := ctx.Bind(&req); err != nil {
			return nil, err
		}
		return invoke(ctx, func(c context.Context) (interface{}, error) {
			return svc.Login(c, &req)
		})
	}))

	r.GET("/profile", handle(service.OperationGetProfile, func(ctx http.Context) (interface{}, error) {
		return invoke(ctx, func(c context.Context) (interface{}, error) {
			return svc.GetProfile(c, nil)
		})
	}))

	r.PUT("/profile", handle(service.OperationUpdateProfile, func(ctx http.Context) (interface{}, error) {
		var req service.UpdateProfileReq
		if err := ctx.Bind(&req); err != nil {
			return nil, err
		}
		return invoke(ctx, func(c context.Context) (interface{}, error) {
			return svc.UpdateProfile(c, &req)
		})
	}))

	r.GET("/insights", handle(service.OperationGetInsights, func(ctx http.Context) (interface{}, error) {
		return invoke(ctx, func(c context.Context) (interface{}, error) {
			return svc.GetInsights(c, nil)
		})
	}))

	r.POST("/cover-letters", handle(service.OperationCreateLetter, func(ctx http.Context) (interface{}, error) {
		var req service.CreateCoverLetterReq
		if err := ctx.Bind(&req); err != nil {
			return nil, err
		}
		return invoke(ctx, func(c context.Context) (interface{}, error) {
			return svc.CreateCoverLetter(c, &req)
		})
	}))

	r.GET("/cover-letters", handle(service.OperationListLetters, func(ctx http.Context) (interface{}, error) {
		return invoke(ctx, func(c context.Context) (interface{}, error) {
			return svc.ListCoverLetters(c, nil)
		})
	}))

	r.GET("/cover-letters/{id}", handle(service.OperationGetLetter, func(ctx http.Context) (interface{}, error) {
		id, err := pathID(ctx)
		if err != nil {
			return nil, err
		}
		return invoke(ctx, func(c context.Context) (interface{}, error) {
			return svc.GetCoverLetter(c, id)
		})
	}))

	r.DELETE("/cover-letters/{id}", handle(service.OperationDeleteLetter, func(ctx http.Context) (interface{}, error) {
		id, err := pathID(ctx)
		if err != nil {
			return nil, err
		}
		return invoke(ctx, func(c context.Context) (interface{}, error) {
			return svc.DeleteCoverLetter(c, id)
		})
	}))

	r.POST("/quiz", handle(service.OperationGenerateQuiz, func(ctx http.Context) (interface{}, error) {
		return invoke(ctx, func(c context.Context) (interface{}, error) {
			return svc.GenerateQuiz(c, nil)
		})
	}))

	r.POST("/quiz/results", handle(service.OperationSaveQuizResult, func(ctx http.Context) (interface{}, error) {
		var req service.SaveQuizResultReq
		if err := ctx.Bind(&req); err != nil {
			return nil, err
		}
		return invoke(ctx, func(c context.Context) (interface{}, error) {
			return svc.SaveQuizResult(c, &req)
		})
	}))

	r.GET("/quiz/results", handle(service.OperationListResults, func(ctx http.Context) (interface{}, error) {
		return invoke(ctx, func(c context.Context) (interface{}, error) {
			return svc.ListQuizResults(c, nil)
		})
	}))

	r.POST("/admin/refresh", handle(service.OperationTriggerRefresh, func(ctx http.Context) (interface{}, error) {
		return invoke(ctx, func(c context.Context) (interface{}, error) {
			return svc.TriggerRefresh(c, nil)
		})
	}))
}

// handle runs fn under the named operation so middleware can match on it.
func handle(operation string, fn func(ctx http.Context) (interface{}, error)) http.HandlerFunc {
	return func(ctx http.Context) error {
		http.SetOperation(ctx, operation)
		out, err := fn(ctx)
		if err != nil {
			return err
		}
		return ctx.Result(200, out)
	}
}

// invoke routes the call through the server middleware chain.
func invoke(ctx http.Context, fn func(c context.Context) (interface{}, error)) (interface{}, error) {
	h := ctx.Middleware(func(c context.Context, _ interface{}) (interface{}, error) {
		return fn(c)
	})
	return h(ctx, nil)
}

func pathID(ctx http.Context) (int, error) {
	raw := ctx.Vars().Get("id")
	id, err := strconv.Atoi(raw)
	if err != nil || id < 1 {
		return 0, errors.BadRequest("INVALID_ID", "id must be a positive integer")
	}
	return id, nil
}
