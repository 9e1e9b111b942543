package routes

import (
	"time"

	"calmwave/handlers"
	"calmwave/middleware"
	"calmwave/models"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", handlers.HealthHandler)
}

// RegisterAuthRoutes registers the public account endpoints.
func RegisterAuthRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	api.POST("/auth/register", hb.Auth.RegisterHandler)
}

// RegisterUserRoutes registers profile and therapist directory endpoints.
func RegisterUserRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	me := api.Group("/users/me")
	{
		me.GET("", hb.Users.GetMeHandler)
		me.PUT("", hb.Users.UpdateMeHandler)
		me.POST("/image", hb.Users.UploadImageHandler)
		me.PUT("/fcm-token", hb.Users.UpdateFCMTokenHandler)
	}

	therapists := api.Group("/therapists")
	{
		therapists.GET("", hb.Users.ListTherapistsHandler)
		therapists.GET("/:id", hb.Users.GetTherapistHandler)
		therapists.GET("/:id/ratings", hb.Bookings.TherapistRatingHandler)
	}
}

// RegisterCheckInRoutes registers mood check-in endpoints.
func RegisterCheckInRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	checkins := api.Group("/checkins")
	{
		checkins.POST("", hb.CheckIns.RecordHandler)
		checkins.GET("", hb.CheckIns.RecentHandler)
		checkins.GET("/dashboard", hb.CheckIns.DashboardHandler)
	}
}

// RegisterBookingRoutes registers appointment endpoints.
func RegisterBookingRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	bookings := api.Group("/bookings")
	{
		bookings.POST("", middleware.RequireRole(models.RoleUser), hb.Bookings.CreateHandler)
		bookings.GET("/mine", hb.Bookings.ListMineHandler)
		bookings.GET("/progress", hb.Bookings.ProgressHandler)
		bookings.POST("/:id/feedback", hb.Bookings.FeedbackHandler)

		therapist := bookings.Group("", middleware.RequireRole(models.RoleTherapist))
		therapist.GET("/therapist", hb.Bookings.ListTherapistHandler)
		therapist.PATCH("/:id/status", hb.Bookings.UpdateStatusHandler)
	}
}

// RegisterChatRoutes registers community channel endpoints.
func RegisterChatRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	channels := api.Group("/channels")
	{
		channels.GET("", hb.Chat.ListChannelsHandler)
		channels.POST("", hb.Chat.CreateChannelHandler)
		channels.GET("/:id/messages", hb.Chat.ListMessagesHandler)
		channels.POST("/:id/messages", hb.Chat.PostMessageHandler)
	}
}

// RegisterArticleRoutes registers article endpoints. Writing is for therapists.
func RegisterArticleRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	articles := api.Group("/articles")
	{
		articles.GET("", hb.Articles.ListHandler)
		articles.GET("/:id", hb.Articles.GetHandler)
		articles.POST("", middleware.RequireRole(models.RoleTherapist), hb.Articles.CreateHandler)
	}
}

// RegisterStorageRoutes registers file link endpoints.
func RegisterStorageRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	api.GET("/storage/signed-url", hb.Storage.SignedURLHandler)
}

// RegisterRoutes wires every route group onto the engine.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, maxRequestsPerMin int) {
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposeHeaders:   []string{"Content-Length", middleware.RequestIDHeader},
		MaxAge:          12 * time.Hour,
	}))

	RegisterHealthRoute(r)

	api := r.Group("/api")

	// Public: registration by IP, the websocket by its ticket.
	public := api.Group("", middleware.RateLimitMiddleware(maxRequestsPerMin))
	RegisterAuthRoutes(public, hb)
	public.GET("/stream", hb.Stream.ServeStream)

	protected := api.Group("", hb.AuthMiddleware, middleware.RateLimitMiddleware(maxRequestsPerMin))
	protected.POST("/stream/ticket", hb.Stream.TicketHandler)
	RegisterUserRoutes(protected, hb)
	RegisterCheckInRoutes(protected, hb)
	RegisterBookingRoutes(protected, hb)
	RegisterChatRoutes(protected, hb)
	RegisterArticleRoutes(protected, hb)
	RegisterStorageRoutes(protected, hb)
}
