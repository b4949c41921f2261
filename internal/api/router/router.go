package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Dydymerho/SMD-Project-sub002/config"
	"github.com/Dydymerho/SMD-Project-sub002/internal/api/handler"
	"github.com/Dydymerho/SMD-Project-sub002/internal/api/middleware"
	"github.com/Dydymerho/SMD-Project-sub002/pkg/jwt"
	"github.com/Dydymerho/SMD-Project-sub002/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(12 << 20)) // 文档上传上限 10MB，留出 multipart 余量

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证）
		auth := v1.Group("/auth")
		{
			auth.POST("/register", middleware.RateLimit(rdb, 10, time.Minute), h.Auth.Register)
			auth.POST("/login", middleware.RateLimit(rdb, 20, time.Minute), h.Auth.Login)
			auth.POST("/refresh", h.Auth.RefreshToken)
		}

		// 目录查询（公开只读）
		catalog := v1.Group("/catalog")
		{
			catalog.GET("/subjects", h.Catalog.ListSubjects)
			catalog.GET("/subjects/:code", h.Catalog.GetSubject)
			catalog.GET("/subjects/:code/prerequisite-chain", h.Catalog.PrerequisiteChain)
			catalog.GET("/subjects/:code/related", h.Catalog.RelatedSubjects)
			catalog.GET("/subjects/:code/ordering-check", h.Catalog.CheckOrdering)
			catalog.GET("/credits", h.Catalog.TotalCredits)
			catalog.GET("/semesters", h.Catalog.SemestersPresent)
		}

		// 参考数据（公开只读）
		v1.GET("/courses", h.Course.ListCourses)
		v1.GET("/programs", h.Course.ListPrograms)
		v1.GET("/subjects", h.Catalog.ListSubjects)

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			// 认证模块（需要认证）
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.GetCurrentUser)

			// 目录快照重建（管理员）
			authorized.POST("/catalog/rebuild", middleware.RoleAuth("admin"), h.Catalog.Rebuild)

			// 课程关注
			authorized.POST("/courses/:id/follow", h.Course.Follow)
			authorized.DELETE("/courses/:id/follow", h.Course.Unfollow)

			// 教学大纲模块
			syllabi := authorized.Group("/syllabi")
			{
				syllabi.POST("", h.Syllabus.Create)
				syllabi.GET("/:id", h.Syllabus.Get)
				syllabi.POST("/:id/clos", h.Syllabus.AddCLOs)
				syllabi.POST("/:id/assessments", h.Syllabus.AddAssessments)
				syllabi.POST("/:id/session-plans", h.Syllabus.AddSessionPlans)
				syllabi.POST("/:id/materials", h.Syllabus.AddMaterials)

				// 导出
				syllabi.GET("/:id/export/excel", h.Export.ExportExcel)
				syllabi.GET("/:id/export/ics", h.Export.ExportICS)
			}

			// AI 文档抽取模块
			extractions := authorized.Group("/extractions")
			{
				extractions.POST("", middleware.RateLimit(rdb, 10, time.Minute), h.Extraction.Submit)
				extractions.GET("/:id", h.Extraction.GetStatus)
				extractions.DELETE("/:id", h.Extraction.Cancel)
			}

			// 草稿模块
			drafts := authorized.Group("/drafts")
			{
				drafts.PUT("/:id", h.Draft.Save)
				drafts.GET("/:id", h.Draft.Get)
				drafts.PATCH("/:id", h.Draft.Patch)
				drafts.DELETE("/:id", h.Draft.Discard)
			}
		}
	}

	return r
}
