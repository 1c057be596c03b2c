package explore

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"skillloop/internal/core/auth"
	"skillloop/internal/domain"
	httpez "skillloop/internal/transport/http/ez"
	mdw "skillloop/internal/transport/http/middleware"
)

type Module struct {
	svc   *Service
	jwter *auth.JWTer
}

func NewModule(svc *Service, jwter *auth.JWTer) *Module {
	return &Module{svc: svc, jwter: jwter}
}

func (m *Module) MountAPI(g *gin.RouterGroup) {
	// 目录与榜单不要求登录，落地页直接能渲染
	ezPublic := httpez.New(g)

	httpez.RegisterAction[struct{}, []domain.Skill](ezPublic, httpez.Action[struct{}, []domain.Skill]{
		Method: http.MethodGet,
		Path:   "/skills",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) ([]domain.Skill, error) {
			return m.svc.Catalog(c.Request.Context())
		},
	})

	httpez.RegisterAction[struct{}, []domain.User](ezPublic, httpez.Action[struct{}, []domain.User]{
		Method: http.MethodGet,
		Path:   "/leaderboard",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) ([]domain.User, error) {
			return m.svc.Leaderboard(c.Request.Context())
		},
	})

	authed := g.Group("")
	authed.Use(mdw.AuthJWT(m.jwter, ""))
	ezAuth := httpez.New(authed)

	type mentorsIn struct {
		Skill  string `form:"skill" binding:"max=32"`
		Search string `form:"search" binding:"max=128"`
	}
	httpez.RegisterAction[mentorsIn, []domain.User](ezAuth, httpez.Action[mentorsIn, []domain.User]{
		Method: http.MethodGet,
		Path:   "/mentors",
		Binder: httpez.BindQuery,
		Auth:   true,
		Handler: func(c *gin.Context, in *mentorsIn) ([]domain.User, error) {
			return m.svc.Mentors(c.Request.Context(), in.Skill, in.Search)
		},
	})
}
