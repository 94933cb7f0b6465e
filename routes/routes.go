package routes

import (
	"os"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"canchaclub-backend/config"
	"canchaclub-backend/controllers"
	"canchaclub-backend/utils"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	origins := []string{"http://localhost:5173", "http://localhost:3000"}
	if env := os.Getenv("ALLOWED_ORIGINS"); env != "" {
		origins = strings.Split(env, ",")
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	r.GET("/api/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "message": "Server is running"})
	})

	auth := r.Group("/api/auth")
	{
		auth.POST("/login", controllers.Login)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/verify", controllers.Verify)
	}

	// Court catalog, public for the booking page
	canchas := r.Group("/api/canchas")
	{
		canchas.GET("", controllers.GetCourts)
		canchas.GET("/tipo/:tipo", controllers.GetCourtsByType)
		canchas.GET("/:id", controllers.GetCourt)
	}

	reservas := r.Group("/api/reservas")
	{
		// Public booking flow
		reservas.GET("/disponibilidad", controllers.CheckAvailability)
		reservas.POST("", controllers.CreateReservation)

		// Admin dashboard
		admin := reservas.Group("")
		admin.Use(utils.AuthMiddleware())
		{
			admin.GET("", controllers.GetReservations)
			admin.POST("/manual", controllers.CreateManualReservation)
			admin.PATCH("/:id/pago", controllers.UpdatePayment)
			admin.DELETE("/:id", controllers.CancelReservation)

			admin.POST("/recurrente", controllers.CreateRecurringReservation)
			admin.GET("/recurrente", controllers.GetRecurringReservations)
			admin.DELETE("/recurrente/:id", controllers.DeleteRecurringReservation)
		}
	}

	return r
}
