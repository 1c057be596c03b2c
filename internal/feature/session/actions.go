package session

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"skillloop/internal/core/auth"
	"skillloop/internal/core/cache"
	"skillloop/internal/domain"
	httpez "skillloop/internal/transport/http/ez"
	mdw "skillloop/internal/transport/http/middleware"
)

type Module struct {
	svc   *Service
	jwter *auth.JWTer
	cache *cache.Cache
}

func NewModule(svc *Service, jwter *auth.JWTer, c *cache.Cache) *Module {
	return &Module{svc: svc, jwter: jwter, cache: c}
}

func (m *Module) MountAPI(g *gin.RouterGroup) {
	authed := g.Group("")
	authed.Use(mdw.AuthJWT(m.jwter, ""))
	ez := httpez.New(authed)

	type requestIn struct {
		MentorID        string             `json:"mentorId" binding:"required"`
		SkillID         string             `json:"skillId" binding:"required"`
		DurationMinutes int                `json:"durationMinutes" binding:"required"`
		Mode            domain.SessionMode `json:"mode"`
		Note            string             `json:"note" binding:"max=1024"`
		ScheduledAt     *time.Time         `json:"scheduledAt"`
	}
	httpez.RegisterAction[requestIn, *domain.Session](ez, httpez.Action[requestIn, *domain.Session]{
		Method: http.MethodPost,
		Path:   "/sessions",
		Binder: httpez.BindJSON,
		Auth:   true,
		Handler: func(c *gin.Context, in *requestIn) (*domain.Session, error) {
			req := RequestInput{
				LearnerID:       c.GetString("userId"),
				MentorID:        in.MentorID,
				SkillID:         in.SkillID,
				DurationMinutes: in.DurationMinutes,
				Mode:            in.Mode,
				Note:            in.Note,
			}
			if in.ScheduledAt != nil {
				req.ScheduledAt = *in.ScheduledAt
			}
			return m.svc.Request(c.Request.Context(), req)
		},
	})

	httpez.RegisterAction[struct{}, []domain.Session](ez, httpez.Action[struct{}, []domain.Session]{
		Method: http.MethodGet,
		Path:   "/sessions",
		Binder: httpez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, _ *struct{}) ([]domain.Session, error) {
			return m.svc.ListMine(c.Request.Context(), c.GetString("userId"))
		},
	})

	type statusIn struct {
		Status domain.SessionStatus `json:"status" binding:"required"`
	}
	httpez.RegisterAction[statusIn, *domain.Session](ez, httpez.Action[statusIn, *domain.Session]{
		Method: http.MethodPut,
		Path:   "/sessions/:id/status",
		Binder: httpez.BindJSON,
		Auth:   true,
		Handler: func(c *gin.Context, in *statusIn) (*domain.Session, error) {
			sess, err := m.svc.UpdateStatus(c.Request.Context(), c.Param("id"), in.Status, c.GetString("userId"))
			if err != nil {
				return nil, err
			}
			// 积分变动后排行榜缓存立即过期
			if in.Status == domain.StatusCompleted {
				m.cache.Invalidate(c.Request.Context(), cache.KeyLeaderboard)
			}
			return sess, nil
		},
	})
}
