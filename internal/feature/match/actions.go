package match

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
	authed := g.Group("")
	authed.Use(mdw.AuthJWT(m.jwter, ""))
	ez := httpez.New(authed)

	// 推荐严格以登录者为键，拿不到别人的推荐
	httpez.RegisterAction[struct{}, []domain.MatchSuggestion](ez, httpez.Action[struct{}, []domain.MatchSuggestion]{
		Method: http.MethodGet,
		Path:   "/matches",
		Binder: httpez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, _ *struct{}) ([]domain.MatchSuggestion, error) {
			return m.svc.Suggest(c.Request.Context(), c.GetString("userId"))
		},
	})

	type searchIn struct {
		Q string `form:"q" binding:"max=128"`
	}
	httpez.RegisterAction[searchIn, []domain.User](ez, httpez.Action[searchIn, []domain.User]{
		Method: http.MethodGet,
		Path:   "/mentors/search",
		Binder: httpez.BindQuery,
		Auth:   true,
		Handler: func(c *gin.Context, in *searchIn) ([]domain.User, error) {
			return m.svc.Search(c.Request.Context(), in.Q)
		},
	})
}
