package routes

import (
	"net/http"
	"time"

	"insurance-app/config"
	"insurance-app/database"
	adminapi "insurance-app/internal/api/admin"
	authapi "insurance-app/internal/api/auth"
	subscriptionsapi "insurance-app/internal/api/subscriptions"
	"insurance-app/internal/app/http/middleware"
	"insurance-app/internal/domain/users"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "running",
			"message":   "API MyCorisLife OK",
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true, "ts": time.Now().UnixMilli()})
	})
	r.GET("/test-db", func(c *gin.Context) {
		sqlDB, err := database.DB.DB()
		if err == nil {
			err = sqlDB.Ping()
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "error", "message": "Database unreachable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "success"})
	})

	// Uploaded identity documents, read-only.
	r.Static("/api/uploads", config.UPLOAD_DIR)

	public := r.Group("/api/auth")
	public.Use(middleware.SanitizeAndCleanInputMiddleware())
	public.POST("/register", authapi.Register)
	public.POST("/login", authapi.Login)

	authed := r.Group("/api/auth")
	authed.Use(middleware.AuthMiddleware())
	authed.GET("/profile", authapi.Profile)
	authed.POST("/register-commercial", middleware.RequireRole(users.RoleAdmin), authapi.RegisterCommercial)

	subs := r.Group("/api/subscriptions")
	subs.Use(middleware.AuthMiddleware())
	subs.POST("/create", subscriptionsapi.Create)
	subs.PUT("/:id/status", subscriptionsapi.UpdateStatus)
	subs.POST("/:id/upload-document", subscriptionsapi.UploadDocument)
	subs.GET("/user/propositions", subscriptionsapi.ListPropositions)
	subs.GET("/user/contrats", subscriptionsapi.ListContrats)
	subs.GET("/user/subscriptions", subscriptionsapi.ListAll)
	subs.GET("/:id", subscriptionsapi.GetOne)

	admin := r.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRole(users.RoleAdmin))
	admin.GET("/users", adminapi.ListAllUsers)
	admin.GET("/subscriptions", adminapi.ListAllSubscriptions)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"status":       "error",
			"message":      "Endpoint not found",
			"requestedUrl": c.Request.URL.Path,
		})
	})
}
