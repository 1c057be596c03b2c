package account

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"skillloop/internal/core/auth"
	"skillloop/internal/domain"
	httpez "skillloop/internal/transport/http/ez"
	mdw "skillloop/internal/transport/http/middleware"
)

// Module 账号模块：/auth/signup /auth/login /me /me/onboarding /me/skills
type Module struct {
	svc   *Service
	jwter *auth.JWTer
	db    *gorm.DB // /me/skills CRUD 用；测试里可以传 nil，不挂该组路由
}

func NewModule(svc *Service, jwter *auth.JWTer, db *gorm.DB) *Module {
	return &Module{svc: svc, jwter: jwter, db: db}
}

func (m *Module) Priority() int { return 10 } // 认证路由先挂

type credsOut struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

func (m *Module) MountAPI(g *gin.RouterGroup) {
	ezPublic := httpez.New(g)

	type signupIn struct {
		Name     string `json:"name" binding:"required,max=64"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=6"`
	}
	httpez.RegisterAction[signupIn, credsOut](ezPublic, httpez.Action[signupIn, credsOut]{
		Method: http.MethodPost,
		Path:   "/auth/signup",
		Binder: httpez.BindJSON,
		Handler: func(c *gin.Context, in *signupIn) (credsOut, error) {
			u, tok, err := m.svc.Signup(c.Request.Context(), in.Name, in.Email, in.Password)
			if err != nil {
				return credsOut{}, err
			}
			return credsOut{Token: tok, User: u}, nil
		},
	})

	type loginIn struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	httpez.RegisterAction[loginIn, credsOut](ezPublic, httpez.Action[loginIn, credsOut]{
		Method: http.MethodPost,
		Path:   "/auth/login",
		Binder: httpez.BindJSON,
		Handler: func(c *gin.Context, in *loginIn) (credsOut, error) {
			u, tok, err := m.svc.Login(c.Request.Context(), in.Email, in.Password)
			if err != nil {
				return credsOut{}, err
			}
			return credsOut{Token: tok, User: u}, nil
		},
	})

	authed := g.Group("")
	authed.Use(mdw.AuthJWT(m.jwter, ""))
	ezAuth := httpez.New(authed)

	httpez.RegisterAction[struct{}, *domain.User](ezAuth, httpez.Action[struct{}, *domain.User]{
		Method: http.MethodGet,
		Path:   "/me",
		Binder: httpez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, _ *struct{}) (*domain.User, error) {
			return m.svc.Profile(c.Request.Context(), c.GetString("userId"))
		},
	})

	type onboardingIn struct {
		Branch       string       `json:"branch" binding:"required,max=64"`
		Year         int          `json:"year" binding:"min=0,max=6"`
		Bio          string       `json:"bio" binding:"max=512"`
		Availability string       `json:"availability" binding:"max=191"`
		Skills       []SkillInput `json:"skills" binding:"dive"`
	}
	httpez.RegisterAction[onboardingIn, *domain.User](ezAuth, httpez.Action[onboardingIn, *domain.User]{
		Method: http.MethodPut,
		Path:   "/me/onboarding",
		Binder: httpez.BindJSON,
		Auth:   true,
		Handler: func(c *gin.Context, in *onboardingIn) (*domain.User, error) {
			return m.svc.CompleteOnboarding(c.Request.Context(),
				c.GetString("userId"), in.Branch, in.Year, in.Bio, in.Availability, in.Skills)
		},
	})

	if m.db != nil {
		httpez.Crud(httpez.CrudConfig[domain.UserSkill]{
			DB:    m.db,
			Group: authed,
			Path:  "/me/skills",
			New:   func() *domain.UserSkill { return &domain.UserSkill{} },
			Hooks: httpez.CrudHooks[domain.UserSkill]{
				BeforeCreate: func(c *gin.Context, e *domain.UserSkill) error {
					return m.svc.NormalizeSkillEntry(c.Request.Context(), e)
				},
				BeforeUpdate: func(c *gin.Context, e *domain.UserSkill) error {
					return m.svc.NormalizeSkillEntry(c.Request.Context(), e)
				},
			},
			OwnerField: "UserID",
		})
	}
}
