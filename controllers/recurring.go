// controllers/recurring.go
package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"canchaclub-backend/services"
	"canchaclub-backend/utils"
)

// CreateRecurringReservation creates a weekly pattern and expands it into
// upcoming reservations
func CreateRecurringReservation(c *gin.Context) {
	var input services.RecurringReservationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Entrada inválida: "+err.Error())
		return
	}

	result, err := bookingService().CreateRecurring(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err, "Error al crear la reserva recurrente")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":          "Reserva recurrente creada",
		"patron":           result.Pattern,
		"generadas":        len(result.Generated),
		"fallidas":         len(result.Failed),
		"fechas_generadas": result.Generated,
		"fechas_fallidas":  result.Failed,
	})
}

// GetRecurringReservations lists active patterns
func GetRecurringReservations(c *gin.Context) {
	patterns, err := bookingService().ListRecurring(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "Error al obtener las reservas recurrentes")
		return
	}

	c.JSON(http.StatusOK, patterns)
}

// DeleteRecurringReservation removes a pattern and its future generated
// reservations
func DeleteRecurringReservation(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "ID de patrón inválido")
		return
	}

	if err := bookingService().DeleteRecurring(c.Request.Context(), uint(id)); err != nil {
		respondServiceError(c, err, "Error al eliminar la reserva recurrente")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Reserva recurrente eliminada y turnos futuros liberados"})
}
