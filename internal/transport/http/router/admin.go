package router

import (
	"net/http"
	"time"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"skillloop/internal/domain"
	"skillloop/internal/feature/admin"
	mdw "skillloop/internal/transport/http/middleware"
)

// NewAdminEngine 运营端引擎。流量小，日志走 ginzap 全量记录，
// /metrics 也只在这里暴露，不开到用户端。
func NewAdminEngine(d Deps) *gin.Engine {
	r := gin.New()

	r.Use(
		mdw.RequestID(),
		ginzap.Ginzap(d.Log, time.RFC3339, true),
		ginzap.RecoveryWithZap(d.Log, true),
		mdw.MaxBodyBytes(4<<20),
		mdw.Timeout(15*time.Second),
	)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	adminSvc := admin.NewService(d.Store, d.DB, d.Log)
	Register(admin.NewModule(adminSvc, d.Cache))

	grp := r.Group("/admin/v1")
	grp.Use(mdw.AuthJWT(d.JWTer, domain.RoleAdmin))
	MountAllAdmin(grp)

	return r
}
