package api

import (
	"net/http"

	"t3chadvance/coaching-app/internal/domain"
	"t3chadvance/coaching-app/internal/service"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	coachingService service.CoachingService,
	notificationService service.NotificationService,
	quizService service.QuizService,
	videoService service.VideoService,
	successPathService service.SuccessPathService,
	businessPlanService service.BusinessPlanService,
) {

	authHandler := NewAuthHandler(authService, notificationService)
	coachingHandler := NewCoachingHandler(coachingService)
	notificationHandler := NewNotificationHandler(notificationService)
	quizHandler := NewQuizHandler(quizService)
	videoHandler := NewVideoHandler(videoService)
	successPathHandler := NewSuccessPathHandler(successPathService)
	businessPlanHandler := NewBusinessPlanHandler(businessPlanService)

	authMiddleware := AuthMiddleware(jwtSecret)
	adminOnly := RoleMiddleware(domain.RoleAdmin, domain.RoleSuperAdmin)
	superAdminOnly := RoleMiddleware(domain.RoleSuperAdmin)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", func(c *gin.Context) {
			userIDStr, err := getUserIDFromContext(c)
			if err != nil {
				abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
				return
			}
			role, _ := getUserRoleFromContext(c)
			c.JSON(http.StatusOK, gin.H{"userId": userIDStr, "role": role})
		})

		// --- Coaching Routes ---
		coachingGroup := protected.Group("/coaching")
		{
			// Any authenticated user can book a slot.
			coachingGroup.POST("", coachingHandler.CreateBooking)

			// Review and approval are super-admin operations.
			coachingGroup.GET("", superAdminOnly, coachingHandler.GetBookings)
			coachingGroup.GET("/search", superAdminOnly, coachingHandler.SearchBookings)
			coachingGroup.GET("/stats", superAdminOnly, coachingHandler.GetStats)
			coachingGroup.GET("/:id", superAdminOnly, coachingHandler.GetBookingByID)
			coachingGroup.PUT("/status/:id", superAdminOnly, coachingHandler.UpdateSlotStatus)
			coachingGroup.PUT("/:id", superAdminOnly, coachingHandler.UpdateBooking)
			coachingGroup.DELETE("/:id", superAdminOnly, coachingHandler.DeleteBooking)
		}

		// --- Notification Routes ---
		notificationGroup := protected.Group("/notification")
		{
			notificationGroup.POST("/token", notificationHandler.SaveToken)
			notificationGroup.POST("/send", superAdminOnly, notificationHandler.SendNotification)
			notificationGroup.PATCH("/read/:id", notificationHandler.MarkAsRead)
			notificationGroup.GET("/unread/:userId", notificationHandler.GetUnread)
			notificationGroup.GET("", superAdminOnly, notificationHandler.GetAll)
		}

		// --- Quiz Routes ---
		quizGroup := protected.Group("/quiz")
		{
			quizGroup.GET("", quizHandler.GetQuizzes)
			quizGroup.POST("", adminOnly, quizHandler.CreateQuiz)
			quizGroup.PUT("/:id", adminOnly, quizHandler.UpdateQuiz)
			quizGroup.DELETE("/:id", adminOnly, quizHandler.DeleteQuiz)
		}

		// --- Video Routes ---
		videoGroup := protected.Group("/video")
		{
			// Playlist routes registered before /:id so "playlists" is
			// never swallowed by the id parameter.
			videoGroup.GET("/playlists", videoHandler.GetPlaylists)
			videoGroup.POST("/playlists", adminOnly, videoHandler.CreatePlaylist)
			videoGroup.GET("/playlists/:id", videoHandler.GetPlaylistByID)
			videoGroup.DELETE("/playlists/:id", adminOnly, videoHandler.DeletePlaylist)
			videoGroup.POST("/playlists/:id/videos", adminOnly, videoHandler.AddVideoToPlaylist)

			videoGroup.GET("", videoHandler.GetVideos)
			videoGroup.POST("", adminOnly, videoHandler.CreateVideo)
			videoGroup.POST("/upload-url", adminOnly, videoHandler.RequestUploadURL)
			videoGroup.GET("/:id", videoHandler.GetVideoByID)
			videoGroup.PUT("/:id", adminOnly, videoHandler.UpdateVideo)
			videoGroup.DELETE("/:id", adminOnly, videoHandler.DeleteVideo)
		}

		// --- Success Path Routes ---
		successPathGroup := protected.Group("/success-path")
		{
			successPathGroup.GET("", successPathHandler.GetCategories)
			successPathGroup.GET("/:category", successPathHandler.GetCategoryByName)
			successPathGroup.POST("", adminOnly, successPathHandler.AddQuestion)
			successPathGroup.PUT("/:category/questions/:questionId", adminOnly, successPathHandler.UpdateQuestion)
			successPathGroup.DELETE("/:category/questions/:questionId", adminOnly, successPathHandler.DeleteQuestion)
		}

		// --- Business Plan Routes ---
		businessPlanGroup := protected.Group("/business-plan")
		{
			businessPlanGroup.POST("", businessPlanHandler.SaveResponse)
			businessPlanGroup.GET("/:userId", businessPlanHandler.GetResponse)
			businessPlanGroup.GET("/pdf/:userId", businessPlanHandler.GeneratePDF)
		}
	}
}
