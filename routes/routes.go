package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"hotel-reservation-backend/controllers"
	"hotel-reservation-backend/middleware"
	"hotel-reservation-backend/services"
)

func parseCorsOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

func SetupRouter(
	ac *controllers.AuthController,
	rc *controllers.ReservationController,
	rt *controllers.RoomTypeController,
	an *controllers.AnalyticsController,
	uc *controllers.UploadController,
	sessions services.SessionStore,
) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestLogger(), gin.Recovery())
	r.Static("/uploads", "./uploads")

	origins := parseCorsOrigins()
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	requireSession := middleware.RequireSession(sessions)

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", ac.Register)
			auth.POST("/login", ac.Login)
			auth.POST("/logout", ac.Logout)
			auth.GET("/me", requireSession, ac.Me)
		}

		// Public catalog browsing.
		roomTypes := api.Group("/room-types")
		{
			roomTypes.GET("", rt.GetRoomTypes)
			roomTypes.GET("/:id", rt.GetRoomType)
			roomTypes.GET("/:id/images", rt.GetImages)
			roomTypes.GET("/:id/rates", rt.GetRates)
		}

		// Guest reservation area.
		reservations := api.Group("/users/reservations", requireSession)
		{
			reservations.POST("", rc.CreateReservation)

			// "me" must be registered before "/:id"
			reservations.GET("/me", rc.GetMyReservations)

			reservations.GET("/:id", rc.GetMyReservation)
			reservations.PATCH("/:id", rc.CancelReservation)
		}

		admin := api.Group("/admin", requireSession, middleware.RequireAdmin())
		{
			admin.GET("/reservations", rc.GetAllReservations)
			admin.PATCH("/reservations/:id/confirm", rc.ConfirmReservation)
			admin.PATCH("/reservations/:id/checkin", rc.CheckInReservation)
			admin.PATCH("/reservations/:id/checkout", rc.CheckOutReservation)

			admin.POST("/room-types", rt.CreateRoomType)
			admin.PATCH("/room-types/:id", rt.UpdateRoomType)
			admin.DELETE("/room-types/:id", rt.DeleteRoomType)
			admin.POST("/room-types/:id/images", rt.AddImage)
			admin.POST("/room-types/:id/rates", rt.SetRate)
			admin.PATCH("/room-types/images/:imageId/primary", rt.SetPrimaryImage)
			admin.DELETE("/room-types/images/:imageId", rt.DeleteImage)

			admin.GET("/analytics", an.GetAnalytics)
			admin.POST("/upload", uc.Upload)
		}
	}

	return r
}
