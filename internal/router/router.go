package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/campusbridge/portal-api/internal/handler"
	"github.com/campusbridge/portal-api/internal/middleware"
	"github.com/campusbridge/portal-api/internal/models"
	"github.com/campusbridge/portal-api/internal/service"
	"github.com/campusbridge/portal-api/pkg/config"
	"github.com/campusbridge/portal-api/pkg/logger"
	corsmiddleware "github.com/campusbridge/portal-api/pkg/middleware/cors"
	reqidmiddleware "github.com/campusbridge/portal-api/pkg/middleware/requestid"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Approvals *handler.ApprovalHandler
	Exams     *handler.ExamHandler
	Syllabus  *handler.SyllabusHandler
	AI        *handler.AIHandler
	Dashboard *handler.DashboardHandler
}

// Setup configures the Gin engine with all route groups and middlewares.
func Setup(
	cfg *config.Config,
	logr *zap.Logger,
	authService *service.AuthService,
	metricsService *service.MetricsService,
	handlers *Handlers,
) *gin.Engine {
	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	if metricsService != nil {
		r.Use(middleware.Metrics(metricsService))
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	if metricsService != nil {
		r.GET("/metrics", gin.WrapH(metricsService.Handler()))
	}

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group("/api/v1")

	// Syllabus catalog is static reference data, readable by any
	// authenticated user.
	syllabusAPI := api.Group("/syllabus")
	syllabusAPI.Use(middleware.JWT(authService))
	{
		syllabusAPI.GET("", handlers.Syllabus.Codes)
		syllabusAPI.GET("/:code", handlers.Syllabus.Course)
		syllabusAPI.GET("/:code/units", handlers.Syllabus.Units)
	}

	adminAPI := api.Group("/admin")
	adminAPI.Use(middleware.JWT(authService), middleware.RequireRoles(models.RoleAdmin))
	{
		approvals := adminAPI.Group("/approvals/:kind")
		approvals.Use(middleware.AllowApprovalKinds(
			models.KindTeacherApplication,
			models.KindStudentApplication,
			models.KindSubjectRequest,
		))
		approvals.GET("", handlers.Approvals.List)
		approvals.GET("/pending", handlers.Approvals.Pending)
		approvals.POST("/:id/approve", handlers.Approvals.Approve)
		approvals.POST("/:id/reject", handlers.Approvals.Reject)

		adminAPI.GET("/syllabus/:code/export", handlers.Syllabus.Export)
	}

	teacherAPI := api.Group("/teachers")
	teacherAPI.Use(middleware.JWT(authService), middleware.RequireRoles(models.RoleTeacher))
	{
		approvals := teacherAPI.Group("/approvals/:kind")
		approvals.Use(middleware.AllowApprovalKinds(models.KindEnrollmentRequest))
		approvals.GET("", handlers.Approvals.List)
		approvals.GET("/pending", handlers.Approvals.Pending)
		approvals.POST("/:id/approve", handlers.Approvals.Approve)
		approvals.POST("/:id/reject", handlers.Approvals.Reject)
	}

	studentAPI := api.Group("/students")
	studentAPI.Use(middleware.JWT(authService), middleware.RequireRoles(models.RoleStudent))
	{
		studentAPI.GET("/dashboard", handlers.Dashboard.Student)

		studentAPI.GET("/exams", handlers.Exams.Assessments)
		studentAPI.POST("/exams/:id/start", handlers.Exams.Start)
		studentAPI.GET("/exam-attempts/:id", handlers.Exams.Attempt)
		studentAPI.PUT("/exam-attempts/:id/answer", handlers.Exams.Answer)
		studentAPI.POST("/exam-attempts/:id/file", handlers.Exams.Upload)
		studentAPI.POST("/exam-attempts/:id/submit", handlers.Exams.Submit)
		studentAPI.POST("/exam-attempts/:id/cancel", handlers.Exams.Cancel)

		if handlers.AI != nil {
			studentAPI.POST("/ai/resources", handlers.AI.Resources)
			studentAPI.POST("/ai/quiz", handlers.AI.Quiz)
		}
	}

	return r
}
