package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"smatching/handlers"
	"smatching/middleware"
)

// HandlerBundle groups the handlers the routes need.
type HandlerBundle struct {
	Users      *handlers.UserHandler
	Conditions *handlers.ConditionHandler
	Notices    *handlers.NoticeHandler
	Admin      *handlers.AdminHandler
}

// RegisterUserRoutes registers account, session, alert-settings, and
// notification endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/users")
	{
		api.POST("/register", hb.Users.SignUp)
		api.POST("/login", hb.Users.SignIn)

		// Protected routes.
		api.Use(middleware.JWTAuthUserMiddleware())
		api.POST("/logout", hb.Users.SignOut)
		api.GET("/me", hb.Users.GetProfile)
		api.DELETE("/me", hb.Users.DeleteAccount)
		api.PUT("/fcm-token", hb.Users.UpdateFCMToken)
		api.GET("/notifications", hb.Users.ListNotifications)
		api.GET("/notifications/unchecked", hb.Users.UncheckedCount)
		api.GET("/alert", hb.Users.GetAlertSettings)
		api.PUT("/alert/cond", hb.Users.ToggleCondAlert)
		api.PUT("/alert/talk", hb.Users.ToggleTalkAlert)
		api.POST("/picture", hb.Users.UploadProfilePicture)
		api.DELETE("/picture", hb.Users.DeleteProfilePicture)
	}
}

// RegisterConditionRoutes registers the saved-condition endpoints.
func RegisterConditionRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/conditions")
	{
		api.Use(middleware.JWTAuthUserMiddleware())
		api.GET("", hb.Conditions.ListMine)
		api.POST("", hb.Conditions.Create)
		api.GET("/:conditionId", hb.Conditions.Get)
		api.PUT("/:conditionId", hb.Conditions.Update)
		api.DELETE("/:conditionId", hb.Conditions.Delete)
		api.PUT("/:conditionId/alert", hb.Conditions.ToggleAlert)
		api.GET("/:conditionId/notices/count", hb.Conditions.NoticeCount)
		api.GET("/:conditionId/notices", hb.Conditions.Notices)
	}
}

// RegisterNoticeRoutes registers the user-facing notice endpoints.
func RegisterNoticeRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/notices")
	{
		api.Use(middleware.JWTAuthUserMiddleware())
		api.GET("", hb.Notices.List)
		api.GET("/count", hb.Notices.Count)
		api.GET("/scraped", hb.Notices.ListScraped)
		api.GET("/:noticeId", hb.Notices.Detail)
		api.GET("/:noticeId/scrap", hb.Notices.ScrapState)
		api.PUT("/:noticeId/scrap", hb.Notices.ToggleScrap)
	}
}

// RegisterAdminRoutes registers the publishing endpoints.
func RegisterAdminRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/admin")
	{
		api.Use(middleware.JWTAuthAdminMiddleware())
		api.POST("/notices", hb.Admin.AddNotice)
		api.GET("/notices", hb.Admin.ListNotices)
		api.GET("/notices/:noticeId", hb.Admin.GetNotice)
		api.DELETE("/notices/:noticeId", hb.Admin.InvalidateNotice)
		api.POST("/scans/run", hb.Admin.RunScans)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and
// middleware.
func RegisterRoutes(r *gin.Engine, hb *HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimitMiddleware())

	RegisterHealthRoute(r)
	RegisterUserRoutes(r, hb)
	RegisterConditionRoutes(r, hb)
	RegisterNoticeRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
}
