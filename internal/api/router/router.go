package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Mohammed-ye12/Attendance-APP/config"
	"github.com/Mohammed-ye12/Attendance-APP/internal/api/handler"
	"github.com/Mohammed-ye12/Attendance-APP/internal/api/middleware"
	"github.com/Mohammed-ye12/Attendance-APP/internal/api/validation"
	"github.com/Mohammed-ye12/Attendance-APP/internal/model"
	"github.com/Mohammed-ye12/Attendance-APP/pkg/jwt"
	"github.com/Mohammed-ye12/Attendance-APP/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
// rdb 为 nil 时登录限流与 Token 黑名单均不生效
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) (*gin.Engine, error) {
	gin.SetMode(gin.ReleaseMode)

	if err := validation.Register(); err != nil {
		return nil, err
	}

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Server.MaxBodyBytes))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	loginLimit := middleware.RateLimit(rdb, cfg.Auth.LoginRateLimit, cfg.Auth.LoginRateWindow, logger)

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 枚举数据（公开）
		meta := v1.Group("/meta")
		{
			meta.GET("/registration-options", h.Meta.RegistrationOptions)
			meta.GET("/shift-types", h.Meta.ShiftTypes)
		}

		// 身份模块（无需认证）
		identities := v1.Group("/identities")
		{
			identities.GET("/resolve/:code", h.Identity.Resolve)
			identities.POST("/register", loginLimit, h.Identity.Register)
		}

		// 认证模块（无需认证）
		auth := v1.Group("/auth")
		{
			auth.POST("/employee", loginLimit, h.Auth.LoginEmployee)
			auth.POST("/manager", loginLimit, h.Auth.LoginManager)
			auth.POST("/hr", loginLimit, h.Auth.LoginHR)
			auth.POST("/admin", loginLimit, h.Auth.LoginAdmin)
			auth.GET("/managers", h.Auth.ListManagers)
		}

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb, logger))
		{
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.Me)

			// 身份审批
			authorized.GET("/identities", middleware.RoleAuth(model.SessionHR, model.SessionAdmin), h.Identity.List)
			authorized.POST("/identities/:id/approve", middleware.RoleAuth(model.SessionAdmin), h.Identity.Approve)
			authorized.DELETE("/identities/:id", middleware.RoleAuth(model.SessionAdmin), h.Identity.Reject)

			// 班次登记
			shifts := authorized.Group("/shifts")
			{
				shifts.POST("", middleware.RoleAuth(model.SessionEmployee), h.Shift.Submit)
				shifts.GET("", h.Shift.List) // 范围由 Service 层按角色限定
				shifts.GET("/calendar.ics", middleware.RoleAuth(model.SessionEmployee), h.Shift.Calendar)
				shifts.POST("/:id/approve", middleware.RoleAuth(model.SessionManager), h.Shift.Approve)
				shifts.POST("/:id/reject", middleware.RoleAuth(model.SessionManager), h.Shift.Reject)
			}

			// 看板
			dashboard := authorized.Group("/dashboard")
			{
				dashboard.GET("/manager", middleware.RoleAuth(model.SessionManager), h.Dashboard.Manager)
				dashboard.GET("/hr", middleware.RoleAuth(model.SessionHR, model.SessionAdmin), h.Dashboard.HR)
				dashboard.GET("/admin", middleware.RoleAuth(model.SessionAdmin), h.Dashboard.Admin)
			}

			// 导出
			export := authorized.Group("/export")
			{
				export.GET("/entries", middleware.RoleAuth(model.SessionHR, model.SessionAdmin), h.Export.ExportEntries)
			}
		}
	}

	return r, nil
}
