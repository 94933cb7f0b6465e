// controllers/auth.go
package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"canchaclub-backend/config"
	"canchaclub-backend/models"
	"canchaclub-backend/utils"
)

type LoginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login authenticates a dashboard admin and returns a JWT
func Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Usuario y contraseña son requeridos")
		return
	}

	username := strings.TrimSpace(input.Username)

	var user models.AdminUser
	result := config.DB.Where("username = ? AND is_active = ?", username, true).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusUnauthorized, "Credenciales inválidas")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Error en el login")
		}
		return
	}

	if !utils.CheckPasswordHash(input.Password, user.Password) {
		utils.RespondWithError(c, http.StatusUnauthorized, "Credenciales inválidas")
		return
	}

	token, err := utils.GenerateToken(user.ID.String(), user.Username)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Error al generar el token")
		return
	}

	// Update last login
	now := time.Now()
	config.DB.Model(&user).Update("last_login", &now)

	c.JSON(http.StatusOK, gin.H{
		"message": "Login exitoso",
		"token":   token,
		"user":    gin.H{"username": user.Username},
	})
}

// Verify confirms the presented token is still valid. Runs behind the auth
// middleware, so reaching it means the token checked out.
func Verify(c *gin.Context) {
	username, _ := c.Get("username")
	c.JSON(http.StatusOK, gin.H{
		"valid": true,
		"user":  gin.H{"username": username},
	})
}
