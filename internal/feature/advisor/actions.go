package advisor

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"skillloop/internal/core/auth"
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

type textOut struct {
	Text string `json:"text"`
}

func (m *Module) MountAPI(g *gin.RouterGroup) {
	authed := g.Group("")
	authed.Use(mdw.AuthJWT(m.jwter, ""))
	ez := httpez.New(authed)

	httpez.RegisterAction[struct{}, Persona](ez, httpez.Action[struct{}, Persona]{
		Method: http.MethodGet,
		Path:   "/advisor/persona",
		Binder: httpez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, _ *struct{}) (Persona, error) {
			return m.svc.PersonaFor(c.Request.Context(), c.GetString("userId")), nil
		},
	})

	type roadmapIn struct {
		Skill string `form:"skill" binding:"required,max=64"`
	}
	httpez.RegisterAction[roadmapIn, textOut](ez, httpez.Action[roadmapIn, textOut]{
		Method: http.MethodGet,
		Path:   "/advisor/roadmap",
		Binder: httpez.BindQuery,
		Auth:   true,
		Handler: func(c *gin.Context, in *roadmapIn) (textOut, error) {
			return textOut{Text: m.svc.Roadmap(c.Request.Context(), in.Skill)}, nil
		},
	})

	httpez.RegisterAction[struct{}, textOut](ez, httpez.Action[struct{}, textOut]{
		Method: http.MethodGet,
		Path:   "/advisor/pulse",
		Binder: httpez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, _ *struct{}) (textOut, error) {
			return textOut{Text: m.svc.Pulse(c.Request.Context())}, nil
		},
	})

	httpez.RegisterAction[struct{}, textOut](ez, httpez.Action[struct{}, textOut]{
		Method: http.MethodGet,
		Path:   "/sessions/:id/agenda",
		Binder: httpez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, _ *struct{}) (textOut, error) {
			return textOut{Text: m.svc.Agenda(c.Request.Context(), c.Param("id"), c.GetString("userId"))}, nil
		},
	})

	httpez.RegisterAction[struct{}, textOut](ez, httpez.Action[struct{}, textOut]{
		Method: http.MethodGet,
		Path:   "/advisor/advice",
		Binder: httpez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, _ *struct{}) (textOut, error) {
			return textOut{Text: m.svc.Advice(c.Request.Context(), c.GetString("userId"))}, nil
		},
	})
}
