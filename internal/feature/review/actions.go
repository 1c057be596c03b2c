package review

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"skillloop/internal/core/auth"
	"skillloop/internal/domain"
	httpez "skillloop/internal/transport/http/ez"
	mdw "skillloop/internal/transport/http/middleware"
)

// Module 评价只读：查某个用户收到的评价。
type Module struct {
	store domain.Store
	jwter *auth.JWTer
}

func NewModule(store domain.Store, jwter *auth.JWTer) *Module {
	return &Module{store: store, jwter: jwter}
}

func (m *Module) MountAPI(g *gin.RouterGroup) {
	authed := g.Group("")
	authed.Use(mdw.AuthJWT(m.jwter, ""))
	ez := httpez.New(authed)

	httpez.RegisterAction[struct{}, []domain.Review](ez, httpez.Action[struct{}, []domain.Review]{
		Method: http.MethodGet,
		Path:   "/users/:id/reviews",
		Binder: httpez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, _ *struct{}) ([]domain.Review, error) {
			u, err := m.store.Users().FindByID(c.Request.Context(), c.Param("id"))
			if err != nil {
				return nil, err
			}
			if u == nil {
				return nil, domain.ErrUserNotFound
			}
			return m.store.Reviews().ListByReviewee(c.Request.Context(), u.ID)
		},
	})
}
