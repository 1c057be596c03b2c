package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"skillloop/internal/core/cache"
	"skillloop/internal/domain"
	httpez "skillloop/internal/transport/http/ez"
)

// Module 运营后台，挂在 admin 引擎下（引擎层已做 ADMIN 角色门禁）。
type Module struct {
	svc   *Service
	cache *cache.Cache
}

func NewModule(svc *Service, c *cache.Cache) *Module {
	return &Module{svc: svc, cache: c}
}

func (m *Module) MountAdmin(g *gin.RouterGroup) {
	ez := httpez.New(g)

	httpez.RegisterAction[struct{}, *Stats](ez, httpez.Action[struct{}, *Stats]{
		Method: http.MethodGet,
		Path:   "/stats",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (*Stats, error) {
			return m.svc.Stats(c.Request.Context())
		},
	})

	type usersIn struct {
		Search string `form:"search" binding:"max=128"`
	}
	httpez.RegisterAction[usersIn, []domain.User](ez, httpez.Action[usersIn, []domain.User]{
		Method: http.MethodGet,
		Path:   "/users",
		Binder: httpez.BindQuery,
		Handler: func(c *gin.Context, in *usersIn) ([]domain.User, error) {
			return m.svc.Users(c.Request.Context(), in.Search)
		},
	})

	type banIn struct {
		Banned bool `json:"banned"`
	}
	httpez.RegisterAction[banIn, *domain.User](ez, httpez.Action[banIn, *domain.User]{
		Method: http.MethodPost,
		Path:   "/users/:id/ban",
		Binder: httpez.BindJSON,
		Handler: func(c *gin.Context, in *banIn) (*domain.User, error) {
			u, err := m.svc.SetBanned(c.Request.Context(), c.Param("id"), in.Banned)
			if err != nil {
				return nil, err
			}
			// 封禁状态影响榜单和推荐，相关缓存立即失效
			m.cache.Invalidate(c.Request.Context(),
				cache.KeyLeaderboard, cache.KeySuggestions+u.ID)
			return u, nil
		},
	})
}
