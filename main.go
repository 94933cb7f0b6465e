package main

import (
	"fmt"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"canchaclub-backend/config"
	"canchaclub-backend/models"
	"canchaclub-backend/routes"
	"canchaclub-backend/services"
)

func init() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	config.ConnectDB()

	config.DB.AutoMigrate(
		&models.Court{},
		&models.Reservation{},
		&models.RecurringReservation{},
		&models.AdminUser{},
	)
}

func main() {
	bootstrapAdmin()

	renewal := services.NewRenewalService(config.DB)
	renewal.StartScheduler()

	port := os.Getenv("PORT")
	if port == "" {
		port = "3001"
	}
	r := routes.SetupRouter()
	printRoutes(r)
	r.Run(":" + port)
}

// bootstrapAdmin seeds the first dashboard account from the environment so a
// fresh deployment can log in.
func bootstrapAdmin() {
	username := os.Getenv("ADMIN_USERNAME")
	password := os.Getenv("ADMIN_PASSWORD")
	if username == "" || password == "" {
		return
	}

	var count int64
	config.DB.Model(&models.AdminUser{}).Where("username = ?", username).Count(&count)
	if count > 0 {
		return
	}

	admin := models.AdminUser{
		Username: username,
		Password: password, // Hashed in BeforeCreate hook
		Name:     "Administrador",
	}
	if err := config.DB.Create(&admin).Error; err != nil {
		log.Printf("Failed to seed admin user: %v", err)
		return
	}
	log.Printf("Seeded admin user %q", username)
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
