package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/DSEENAIAH/campus-preparation-backend/internal/config"
	"github.com/DSEENAIAH/campus-preparation-backend/internal/handler"
	"github.com/DSEENAIAH/campus-preparation-backend/internal/middleware"
	"github.com/DSEENAIAH/campus-preparation-backend/internal/response"
	"github.com/DSEENAIAH/campus-preparation-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth          *handler.AuthHandler
	StudentPortal *handler.StudentPortalHandler
	StudentMgmt   *handler.StudentManagementHandler
	Test          *handler.TestHandler
	Result        *handler.ResultHandler
	Dashboard     *handler.DashboardHandler
	WS            *handler.WSHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Apply brotli middleware globally.
	router.Use(middleware.Brotli())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// Rate limiter for auth routes (30 requests per minute per IP).
	authLimiter := middleware.NewRateLimiter(30, time.Minute)

	// ─── 1. Auth Group (Public, Rate Limited) ──────────────────────────
	auth := router.Group("/api/v1/auth")
	auth.Use(authLimiter.Middleware())
	{
		auth.POST("/student/login", handlers.Auth.StudentLogin)
		auth.POST("/admin/login", handlers.Auth.AdminLogin)
		auth.POST("/admin/signup", handlers.Auth.AdminSignup)

		// Authenticated profile routes
		auth.POST("/student/logout", middleware.RequireStudentJWT(authService), handlers.Auth.StudentLogout)
		auth.GET("/student/me", middleware.RequireStudentJWT(authService), handlers.Auth.GetStudentProfile)
		auth.GET("/admin/me", middleware.RequireAdmin(authService), handlers.Auth.GetAdminProfile)
	}

	// ─── 2. Student Group (JWT + Single Device) ────────────────────────
	studentAPI := router.Group("/api/v1/student")
	studentAPI.Use(
		middleware.RequireStudentJWT(authService),
		middleware.CheckSingleDeviceSession(authService),
	)
	{
		studentAPI.GET("/tests", handlers.StudentPortal.ListTests)
		studentAPI.POST("/results", handlers.StudentPortal.SubmitResult)
		studentAPI.GET("/tests/:id/progress", handlers.StudentPortal.GetProgress)
		studentAPI.PUT("/tests/:id/progress", handlers.StudentPortal.SaveProgress)
	}

	// ─── 3. WebSocket Group (Admin WS Auth) ────────────────────────────
	ws := router.Group("/ws/v1")
	ws.Use(middleware.RequireAdmin(authService))
	{
		ws.GET("/admin/results/monitor", handlers.WS.ResultsMonitorStream)
	}

	// ─── 4. Admin Group (Identity Provider Token) ──────────────────────
	adminAPI := router.Group("/api/v1/admin")
	adminAPI.Use(middleware.RequireAdmin(authService))
	{
		// Student management
		adminAPI.GET("/students", handlers.StudentMgmt.ListStudents)
		adminAPI.POST("/students", handlers.StudentMgmt.CreateStudent)
		adminAPI.PUT("/students/:id", handlers.StudentMgmt.UpdateStudent)
		adminAPI.DELETE("/students/:id", handlers.StudentMgmt.DeleteStudent)
		adminAPI.POST("/students/:id/reset-session", handlers.StudentMgmt.ResetStudentSession)

		// Test management
		adminAPI.GET("/tests", handlers.Test.ListTests)
		adminAPI.POST("/tests", handlers.Test.CreateTest)
		adminAPI.GET("/tests/:id", handlers.Test.GetTest)
		adminAPI.PUT("/tests/:id", handlers.Test.UpdateTest)
		adminAPI.DELETE("/tests/:id", handlers.Test.DeleteTest)

		// Results
		adminAPI.GET("/results", handlers.Result.ListResults)
		adminAPI.GET("/results/export/csv", handlers.Result.ExportCSV)
		adminAPI.GET("/results/export/xlsx", handlers.Result.ExportXLSX)
		adminAPI.GET("/results/:id", handlers.Result.GetResult)
		adminAPI.DELETE("/results/:id", handlers.Result.DeleteResult)

		// Dashboard
		adminAPI.GET("/dashboard", handlers.Dashboard.GetSummary)
		adminAPI.GET("/progress", handlers.Dashboard.ListProgress)
	}

	return router
}
