// controllers/court.go
package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"canchaclub-backend/config"
	"canchaclub-backend/models"
	"canchaclub-backend/utils"
)

// GetCourts returns all active courts ordered by type and name
func GetCourts(c *gin.Context) {
	var courts []models.Court
	if err := config.DB.
		Where("activa = ?", true).
		Order("tipo").
		Order("nombre").
		Find(&courts).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Error al obtener las canchas")
		return
	}

	c.JSON(http.StatusOK, courts)
}

// GetCourtsByType returns active courts of a single type
func GetCourtsByType(c *gin.Context) {
	courtType := c.Param("tipo")

	var courts []models.Court
	if err := config.DB.
		Where("activa = ? AND tipo = ?", true, courtType).
		Order("nombre").
		Find(&courts).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Error al obtener las canchas")
		return
	}

	c.JSON(http.StatusOK, courts)
}

// GetCourt returns a single active court by ID
func GetCourt(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "ID de cancha inválido")
		return
	}

	var court models.Court
	if err := config.DB.
		Where("activa = ?", true).
		First(&court, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Cancha no encontrada")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Error al obtener la cancha")
		}
		return
	}

	c.JSON(http.StatusOK, court)
}
