// controllers/reservation.go
package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"

	"canchaclub-backend/config"
	"canchaclub-backend/services"
	"canchaclub-backend/utils"
)

var (
	notifierOnce sync.Once
	notifier     *services.Notifier
)

// bookingService builds the core engine over the shared connection. The
// notifier is resolved once, after the environment has been loaded.
func bookingService() *services.BookingService {
	notifierOnce.Do(func() {
		notifier = services.NewNotifierFromEnv()
	})
	return services.NewBookingService(config.DB, notifier)
}

// respondServiceError maps the service error taxonomy onto HTTP statuses.
// Store failures stay generic; the cause only goes to the log.
func respondServiceError(c *gin.Context, err error, fallback string) {
	var verr services.ValidationError
	var cerr services.ConflictError
	var nerr services.NotFoundError

	switch {
	case errors.As(err, &verr):
		utils.RespondWithError(c, http.StatusBadRequest, verr.Error())
	case errors.As(err, &cerr):
		utils.RespondWithError(c, http.StatusConflict, "Este horario ya está ocupado")
	case errors.As(err, &nerr):
		utils.RespondWithError(c, http.StatusNotFound, nerr.Error())
	default:
		log.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		utils.RespondWithError(c, http.StatusInternalServerError, fallback)
	}
}

// CheckAvailability returns the slot grid for a court and date
func CheckAvailability(c *gin.Context) {
	courtParam := c.Query("cancha_id")
	date := c.Query("fecha")
	if courtParam == "" || date == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "Se requiere cancha_id y fecha")
		return
	}

	courtID, err := strconv.ParseUint(courtParam, 10, 32)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "cancha_id inválido")
		return
	}

	slots, err := bookingService().Availability(c.Request.Context(), uint(courtID), date)
	if err != nil {
		respondServiceError(c, err, "Error al verificar disponibilidad")
		return
	}

	c.JSON(http.StatusOK, slots)
}

// CreateReservation handles the public customer booking
func CreateReservation(c *gin.Context) {
	var input services.CreateReservationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Entrada inválida: "+err.Error())
		return
	}

	reservation, err := bookingService().CreateReservation(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err, "Error al crear la reserva")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Reserva creada exitosamente",
		"reserva": reservation,
	})
}

// CreateManualReservation handles admin-created courtesy bookings
func CreateManualReservation(c *gin.Context) {
	var input services.ManualReservationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Entrada inválida: "+err.Error())
		return
	}

	reservation, err := bookingService().CreateManualReservation(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err, "Error al crear la reserva manual")
		return
	}

	c.JSON(http.StatusCreated, reservation)
}

// GetReservations lists reservations for the admin dashboard, optionally
// filtered by date and court
func GetReservations(c *gin.Context) {
	filters := services.ReservationFilters{Date: c.Query("fecha")}
	if courtParam := c.Query("cancha_id"); courtParam != "" {
		courtID, err := strconv.ParseUint(courtParam, 10, 32)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "cancha_id inválido")
			return
		}
		filters.CourtID = uint(courtID)
	}

	reservations, err := bookingService().ListReservations(c.Request.Context(), filters)
	if err != nil {
		respondServiceError(c, err, "Error al obtener las reservas")
		return
	}

	c.JSON(http.StatusOK, reservations)
}

type updatePaymentInput struct {
	PaymentState string `json:"estado_pago"`
}

// UpdatePayment changes a reservation's payment state and recomputes the
// paid amount
func UpdatePayment(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "ID de reserva inválido")
		return
	}

	var input updatePaymentInput
	if err := c.ShouldBindJSON(&input); err != nil || input.PaymentState == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "Estado de pago inválido")
		return
	}

	reservation, err := bookingService().UpdatePaymentState(c.Request.Context(), uint(id), input.PaymentState)
	if err != nil {
		respondServiceError(c, err, "Error al actualizar el pago")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Estado de pago actualizado",
		"reserva": reservation,
	})
}

// CancelReservation frees a booked slot
func CancelReservation(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "ID de reserva inválido")
		return
	}

	if err := bookingService().CancelReservation(c.Request.Context(), uint(id)); err != nil {
		respondServiceError(c, err, "Error al cancelar la reserva")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Reserva cancelada exitosamente"})
}
