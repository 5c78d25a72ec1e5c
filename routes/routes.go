package routes

import (
	"net/http"
	"time"

	"skillbridge/handlers"
	"skillbridge/middleware"
	"skillbridge/models"
	"skillbridge/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterWizardRoutes registers the signup wizard endpoints. The wizard is
// public; sessions are addressed by their opaque IDs.
func RegisterWizardRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/signup")
	{
		api.POST("/sessions", hb.StartSessionHandler)

		session := api.Group("/sessions/:id")
		session.GET("", hb.GetSessionHandler)
		session.POST("/advance", hb.AdvanceHandler)
		session.POST("/retreat", hb.RetreatHandler)
		session.POST("/submit", hb.SubmitHandler)

		session.POST("/attachments/:slot", hb.AttachHandler)
		session.DELETE("/attachments/:slot", hb.DetachHandler)

		session.POST("/education", hb.AddEducationRowHandler)
		session.PUT("/education/:index", hb.UpdateEducationRowHandler)
		session.DELETE("/education/:index", hb.RemoveEducationRowHandler)
		session.POST("/experience", hb.AddExperienceRowHandler)
		session.PUT("/experience/:index", hb.UpdateExperienceRowHandler)
		session.DELETE("/experience/:index", hb.RemoveExperienceRowHandler)
		session.PUT("/fresher", hb.SetFresherHandler)
	}
}

// RegisterJobSeekerRoutes registers job-seeker account endpoints.
func RegisterJobSeekerRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/job-seeker")
	{
		api.POST("/send-email-otp", hb.JobSeekerSendEmailOTPHandler)
		api.POST("/verify-email", hb.JobSeekerVerifyEmailHandler)
		api.POST("/signup", hb.JobSeekerRegisterHandler)
		api.POST("/login", hb.JobSeekerLoginHandler)
		api.POST("/forgot-password", hb.JobSeekerResetPasswordHandler)
		api.POST("/reset-password", hb.JobSeekerResetPasswordHandler)

		// Protected routes (Require Authentication)
		api.Use(middleware.JWTAuthMiddleware(string(models.RoleJobSeeker), hb.Tokens))
		api.GET("/profile", hb.JobSeekerGetProfileHandler)
		api.PATCH("/profile", hb.JobSeekerUpdateProfileHandler)
		api.DELETE("/account", hb.JobSeekerDeleteHandler)
		api.POST("/logout", hb.JobSeekerLogoutHandler)
	}
}

// RegisterBusinessRoutes registers business account endpoints.
func RegisterBusinessRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/business")
	{
		api.POST("/send-email-otp", hb.BusinessSendEmailOTPHandler)
		api.POST("/verify-email", hb.BusinessVerifyEmailHandler)
		api.POST("/signup", hb.BusinessRegisterHandler)
		api.POST("/login", hb.BusinessLoginHandler)
		api.POST("/forgot-password", hb.BusinessResetPasswordHandler)
		api.POST("/reset-password", hb.BusinessResetPasswordHandler)

		// Protected routes (Require Authentication)
		api.Use(middleware.JWTAuthMiddleware(string(models.RoleBusiness), hb.Tokens))
		api.GET("/profile", hb.BusinessGetProfileHandler)
		api.PATCH("/profile", hb.BusinessUpdateProfileHandler)
		api.DELETE("/account", hb.BusinessDeleteHandler)
		api.POST("/logout", hb.BusinessLogoutHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":   "ok",
			"message":  "Hi, I'm SkillBridge",
			"services": utils.GetHealthStatus(),
		})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterWizardRoutes(r, hb)
	RegisterJobSeekerRoutes(r, hb)
	RegisterBusinessRoutes(r, hb)
	RegisterHealthRoute(r)
}
