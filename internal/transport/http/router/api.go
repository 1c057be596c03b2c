package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"skillloop/internal/ai"
	"skillloop/internal/core/auth"
	"skillloop/internal/core/cache"
	"skillloop/internal/core/config"
	"skillloop/internal/domain"
	"skillloop/internal/feature/account"
	"skillloop/internal/feature/advisor"
	"skillloop/internal/feature/explore"
	"skillloop/internal/feature/match"
	"skillloop/internal/feature/review"
	"skillloop/internal/feature/session"
	mdw "skillloop/internal/transport/http/middleware"
)

// Deps 两个引擎共用的依赖集合。Gen 未配置时传 nil，
// 所有 AI 功能自动退化到本地 fallback。
type Deps struct {
	Log   *zap.Logger
	DB    *gorm.DB
	Store domain.Store
	JWTer *auth.JWTer
	Cache *cache.Cache
	Gen   ai.Generator
	Cfg   *config.Config
}

func NewAPIEngine(d Deps) *gin.Engine {
	r := gin.New()

	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(200, 400),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(16<<20),
		mdw.Timeout(10*time.Second),
		mdw.Recovery(d.Log),
		mdw.Metrics(),
		mdw.AccessLog(d.Log),
		cors.New(cors.Config{
			AllowOrigins:     []string{"*"},
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			ExposeHeaders:    []string{mdw.KeyRequestID},
			MaxAge:           12 * time.Hour,
			AllowCredentials: false,
		}),
	)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })

	// 功能模块
	accountSvc := account.NewService(d.Store, d.JWTer, d.Cfg.Campus.EmailDomain, d.Cfg.Campus.InitialPoints, d.Log)
	sessionSvc := session.NewService(d.Store, d.Log)
	matchSvc := match.NewService(d.Store, d.Gen, d.Cache, d.Log)
	advisorSvc := advisor.NewService(d.Store, d.Gen, d.Log)
	exploreSvc := explore.NewService(d.Store, d.Cache, d.Log)

	Register(account.NewModule(accountSvc, d.JWTer, d.DB))
	Register(session.NewModule(sessionSvc, d.JWTer, d.Cache))
	Register(match.NewModule(matchSvc, d.JWTer))
	Register(advisor.NewModule(advisorSvc, d.JWTer))
	Register(explore.NewModule(exploreSvc, d.JWTer))
	Register(review.NewModule(d.Store, d.JWTer))

	api := r.Group("/api/v1")
	MountAllAPI(api)

	return r
}
