package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"classtime/backend/config"
	"classtime/backend/internal/api/handler"
	"classtime/backend/internal/api/middleware"
	"classtime/backend/internal/timegrid"
	"classtime/backend/pkg/jwt"
	"classtime/backend/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	registerValidators()

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(1 << 20))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证，带速率限制）
		auth := v1.Group("/auth")
		auth.Use(middleware.RateLimit(rdb, 10, time.Minute))
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/register", h.Auth.Register)
			auth.POST("/refresh", h.Auth.RefreshToken)
		}

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			// 认证模块（需要认证）
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.Me)

			// 教师模块
			teachers := authorized.Group("/teachers")
			{
				teachers.GET("", h.Teacher.ListTeachers)
				teachers.GET("/:id", h.Teacher.GetTeacher)
				teachers.POST("", middleware.RoleAuth("admin"), h.Teacher.CreateTeacher)
				teachers.PUT("/:id", middleware.RoleAuth("admin"), h.Teacher.UpdateTeacher)
				teachers.DELETE("/:id", middleware.RoleAuth("admin"), h.Teacher.DeleteTeacher)
			}

			// 科目模块
			subjects := authorized.Group("/subjects")
			{
				subjects.GET("", h.Subject.ListSubjects)
				subjects.GET("/:id", h.Subject.GetSubject)
				subjects.POST("", middleware.RoleAuth("admin"), h.Subject.CreateSubject)
				subjects.PUT("/:id", middleware.RoleAuth("admin"), h.Subject.UpdateSubject)
				subjects.DELETE("/:id", middleware.RoleAuth("admin"), h.Subject.DeleteSubject)
			}

			// 班级模块
			classes := authorized.Group("/classes")
			{
				classes.GET("", h.Class.ListClasses)
				classes.GET("/:id", h.Class.GetClass)
				classes.POST("", middleware.RoleAuth("admin"), h.Class.CreateClass)
				classes.PUT("/:id", middleware.RoleAuth("admin"), h.Class.UpdateClass)
				classes.DELETE("/:id", middleware.RoleAuth("admin"), h.Class.DeleteClass)
			}

			// 教室模块
			rooms := authorized.Group("/rooms")
			{
				rooms.GET("", h.Room.ListRooms)
				rooms.GET("/:id", h.Room.GetRoom)
				rooms.POST("", middleware.RoleAuth("admin"), h.Room.CreateRoom)
				rooms.PUT("/:id", middleware.RoleAuth("admin"), h.Room.UpdateRoom)
				rooms.DELETE("/:id", middleware.RoleAuth("admin"), h.Room.DeleteRoom)
			}

			// 课表模块
			schedule := authorized.Group("/schedule")
			{
				schedule.GET("/week", h.Schedule.WeekGrid)
				schedule.GET("/end-time-options", h.Schedule.EndTimeOptions)
				schedule.GET("/slots", h.Schedule.ListSlots)
				schedule.GET("/slots/:id", h.Schedule.GetSlot)
				schedule.POST("/slots", middleware.RoleAuth("admin"), h.Schedule.CreateSlot)
				schedule.PUT("/slots/:id", middleware.RoleAuth("admin"), h.Schedule.UpdateSlot)
				schedule.DELETE("/slots/:id", middleware.RoleAuth("admin"), h.Schedule.DeleteSlot)
			}

			// 公告模块
			announcements := authorized.Group("/announcements")
			{
				announcements.GET("", h.Announcement.ListAnnouncements)
				announcements.GET("/:id", h.Announcement.GetAnnouncement)
				announcements.POST("", middleware.RoleAuth("admin"), h.Announcement.CreateAnnouncement)
				announcements.PUT("/:id", h.Announcement.UpdateAnnouncement) // 作者或 admin（Service 层鉴权）
				announcements.DELETE("/:id", middleware.RoleAuth("admin"), h.Announcement.DeleteAnnouncement)
			}

			// 调课模块
			swaps := authorized.Group("/swaps")
			{
				swaps.GET("", middleware.RoleAuth("admin"), h.Swap.ListSwaps)
				swaps.GET("/incoming", h.Swap.ListIncomingSwaps)
				swaps.GET("/:id", h.Swap.GetSwap)
				swaps.POST("", h.Swap.CreateSwap)
				swaps.POST("/:id/resolve", h.Swap.ResolveSwap) // 被请求教师或 admin（Service 层鉴权）
			}

			// 导出模块
			export := authorized.Group("/export")
			{
				export.GET("/xlsx", h.Export.ExportXLSX)
				export.GET("/ics", h.Export.ExportICS)
			}

			// 排课助手模块
			authorized.POST("/assistant/chat", h.Assistant.Chat)

			// 日历同步模块
			calendar := authorized.Group("/calendar")
			{
				calendar.POST("/sync", h.Calendar.Sync)
				calendar.DELETE("/slots/:id", h.Calendar.Remove)
				calendar.GET("/auth", h.Calendar.AuthStatus)
			}
		}
	}

	return r
}

// registerValidators 注册自定义字段校验器
// hhmm: 校验 "HH:MM" 格式的时间字符串
func registerValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
		_, err := timegrid.ParseTimeOfDay(fl.Field().String())
		return err == nil
	})
}
