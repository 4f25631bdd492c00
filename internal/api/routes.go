package api

import (
	"net/http"
	"runcoach/internal/service"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	userService service.UserService,
	chatService service.ChatService,
	planService service.PlanService,
) {

	authHandler := NewAuthHandler(authService)
	userHandler := NewUserHandler(userService)
	chatHandler := NewChatHandler(chatService)
	planHandler := NewPlanHandler(planService)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiGroup := router.Group("/api")
	{
		apiGroup.POST("/register", authHandler.Register)
		apiGroup.POST("/login", authHandler.Login)
	}

	protected := apiGroup.Group("")
	protected.Use(authMiddleware)
	{
		// --- Profile & activity ---
		protected.GET("/user-info", userHandler.GetUserInfo)
		protected.GET("/user-activity", userHandler.GetUserActivity)
		protected.POST("/user-activity", userHandler.RecordActivity)
		protected.POST("/profile/picture", userHandler.UploadProfilePicture)

		// --- AI coach ---
		protected.POST("/chat", chatHandler.Chat)

		// --- Training plan pipeline ---
		planGroup := protected.Group("/training-plan")
		{
			planGroup.POST("/generate", planHandler.Generate)
			planGroup.POST("/download-ics", planHandler.DownloadICS)
		}
	}
}
