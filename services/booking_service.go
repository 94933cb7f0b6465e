// services/booking_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"gorm.io/gorm"

	"canchaclub-backend/models"
	"canchaclub-backend/utils"
)

// Daily booking window: one-hour slots from 17:00 inclusive to 23:00
// exclusive.
const (
	openingHour = 17
	closingHour = 23
)

// Weekly occurrences generated per recurring pattern (about 3 months).
const recurrenceWeeks = 12

// BookingService owns slot availability, reservation admission and the
// recurring pattern lifecycle. All state lives in the injected store; the
// service itself is safe for concurrent use.
type BookingService struct {
	db       *gorm.DB
	notifier *Notifier
}

func NewBookingService(db *gorm.DB, notifier *Notifier) *BookingService {
	return &BookingService{db: db, notifier: notifier}
}

// SlotStatus is one entry of the availability grid.
type SlotStatus struct {
	Time      string `json:"horario"`
	Available bool   `json:"disponible"`
}

// Availability lists every slot of the daily window with its occupancy for
// the given court and date. Cancelled reservations do not block a slot.
func (s *BookingService) Availability(ctx context.Context, courtID uint, date string) ([]SlotStatus, error) {
	var taken []models.Reservation
	if err := s.db.WithContext(ctx).
		Select("horario_inicio").
		Where("cancha_id = ? AND fecha = ?", courtID, date).
		Find(&taken).Error; err != nil {
		return nil, storeErr(err)
	}

	occupied := make(map[string]bool, len(taken))
	for _, r := range taken {
		// Stored times carry seconds; compare on HH:MM only.
		occupied[utils.ShortTime(r.StartTime)] = true
	}

	slots := make([]SlotStatus, 0, closingHour-openingHour)
	for hour := openingHour; hour < closingHour; hour++ {
		slot := fmt.Sprintf("%02d:00", hour)
		slots = append(slots, SlotStatus{Time: slot, Available: !occupied[slot]})
	}
	return slots, nil
}

// CreateReservationInput is the customer-facing booking payload.
type CreateReservationInput struct {
	CourtID        uint   `json:"cancha_id"`
	Date           string `json:"fecha"`
	StartTime      string `json:"horario_inicio"`
	ClientName     string `json:"cliente_nombre"`
	ClientWhatsApp string `json:"cliente_whatsapp"`
	PaymentState   string `json:"estado_pago"`
}

// CreateReservation admits a customer booking: resolves the court price,
// derives end time and amounts, and inserts unless the slot is taken.
func (s *BookingService) CreateReservation(ctx context.Context, in CreateReservationInput) (*models.Reservation, error) {
	var missing []string
	if in.CourtID == 0 {
		missing = append(missing, "cancha_id")
	}
	if in.Date == "" {
		missing = append(missing, "fecha")
	}
	if in.StartTime == "" {
		missing = append(missing, "horario_inicio")
	}
	if in.ClientName == "" {
		missing = append(missing, "cliente_nombre")
	}
	if in.ClientWhatsApp == "" {
		missing = append(missing, "cliente_whatsapp")
	}
	if in.PaymentState == "" {
		missing = append(missing, "estado_pago")
	}
	if len(missing) > 0 {
		return nil, ValidationError{Fields: missing}
	}
	if in.PaymentState != models.PaymentFull && in.PaymentState != models.PaymentDeposit {
		return nil, ValidationError{Message: "Estado de pago inválido"}
	}
	if _, err := utils.ParseDateAtNoon(in.Date); err != nil {
		return nil, ValidationError{Message: "Fecha inválida"}
	}
	startTime, err := utils.NormalizeTime(in.StartTime)
	if err != nil {
		return nil, ValidationError{Message: "Horario inválido"}
	}

	var court models.Court
	if err := s.db.WithContext(ctx).
		Where("activa = ?", true).
		First(&court, in.CourtID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundError{Message: "Cancha no encontrada"}
		}
		return nil, storeErr(err)
	}

	endTime, _ := utils.AddOneHour(startTime)
	total := court.HourlyPrice

	res := &models.Reservation{
		CourtID:        in.CourtID,
		Date:           in.Date,
		StartTime:      startTime,
		EndTime:        endTime,
		ClientName:     in.ClientName,
		ClientWhatsApp: in.ClientWhatsApp,
		PaymentState:   in.PaymentState,
		AmountPaid:     amountFor(in.PaymentState, total),
		AmountTotal:    total,
		Kind:           models.KindCustomer,
	}
	if err := s.insertSlot(ctx, res); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		go s.notifier.SendBookingConfirmation(res, &court)
	}
	return res, nil
}

// ManualReservationInput is the admin-created booking payload. Payment is
// always courtesy with zero amounts.
type ManualReservationInput struct {
	CourtID        uint   `json:"cancha_id"`
	Date           string `json:"fecha"`
	StartTime      string `json:"horario_inicio"`
	ClientName     string `json:"cliente_nombre"`
	ClientWhatsApp string `json:"cliente_whatsapp"`
	AdminNotes     string `json:"notas_admin"`
}

func (s *BookingService) CreateManualReservation(ctx context.Context, in ManualReservationInput) (*models.Reservation, error) {
	var missing []string
	if in.CourtID == 0 {
		missing = append(missing, "cancha_id")
	}
	if in.Date == "" {
		missing = append(missing, "fecha")
	}
	if in.StartTime == "" {
		missing = append(missing, "horario_inicio")
	}
	if in.ClientName == "" {
		missing = append(missing, "cliente_nombre")
	}
	if len(missing) > 0 {
		return nil, ValidationError{Fields: missing}
	}
	if _, err := utils.ParseDateAtNoon(in.Date); err != nil {
		return nil, ValidationError{Message: "Fecha inválida"}
	}
	startTime, err := utils.NormalizeTime(in.StartTime)
	if err != nil {
		return nil, ValidationError{Message: "Horario inválido"}
	}

	whatsapp := in.ClientWhatsApp
	if whatsapp == "" {
		whatsapp = "N/A"
	}
	endTime, _ := utils.AddOneHour(startTime)

	res := &models.Reservation{
		CourtID:        in.CourtID,
		Date:           in.Date,
		StartTime:      startTime,
		EndTime:        endTime,
		ClientName:     in.ClientName,
		ClientWhatsApp: whatsapp,
		PaymentState:   models.PaymentCourtesy,
		AmountPaid:     0,
		AmountTotal:    0,
		Kind:           models.KindAdmin,
		AdminNotes:     in.AdminNotes,
	}
	if err := s.insertSlot(ctx, res); err != nil {
		return nil, err
	}
	return res, nil
}

// RecurringReservationInput creates a weekly pattern. The declared
// dia_semana must be present but is never trusted; the effective weekday is
// recomputed from fecha_inicio.
type RecurringReservationInput struct {
	CourtID        uint   `json:"cancha_id"`
	ClientName     string `json:"cliente_nombre"`
	ClientWhatsApp string `json:"cliente_whatsapp"`
	Weekday        *int   `json:"dia_semana"`
	StartTime      string `json:"horario_inicio"`
	StartDate      string `json:"fecha_inicio"`
	AdminNotes     string `json:"notas_admin"`
}

// RecurringResult reports the pattern and the per-week outcome. Generated
// plus failed always covers every attempted week; partial generation is a
// normal operating condition, not an error.
type RecurringResult struct {
	Pattern   *models.RecurringReservation `json:"patron"`
	Generated []string                     `json:"fechas_generadas"`
	Failed    []string                     `json:"fechas_fallidas"`
}

func (s *BookingService) CreateRecurring(ctx context.Context, in RecurringReservationInput) (*RecurringResult, error) {
	var missing []string
	if in.CourtID == 0 {
		missing = append(missing, "cancha_id")
	}
	if in.ClientName == "" {
		missing = append(missing, "cliente_nombre")
	}
	if in.Weekday == nil {
		missing = append(missing, "dia_semana")
	}
	if in.StartTime == "" {
		missing = append(missing, "horario_inicio")
	}
	if len(missing) > 0 {
		return nil, ValidationError{Fields: missing}
	}

	startDate := in.StartDate
	if startDate == "" {
		startDate = utils.Today()
	}
	anchor, err := utils.ParseDateAtNoon(startDate)
	if err != nil {
		return nil, ValidationError{Message: "Fecha de inicio inválida"}
	}
	startTime, err := utils.NormalizeTime(in.StartTime)
	if err != nil {
		return nil, ValidationError{Message: "Horario inválido"}
	}

	// The client-declared weekday has historically been off by one under
	// timezone skew. The anchored start date is the authority.
	weekday := int(anchor.Weekday())

	pattern := &models.RecurringReservation{
		CourtID:        in.CourtID,
		ClientName:     in.ClientName,
		ClientWhatsApp: in.ClientWhatsApp,
		Weekday:        weekday,
		StartTime:      startTime,
		StartDate:      utils.FormatDate(anchor),
		Notes:          in.AdminNotes,
		Active:         true,
	}
	if err := s.db.WithContext(ctx).Create(pattern).Error; err != nil {
		return nil, storeErr(err)
	}

	generated, failed := s.generateOccurrences(ctx, pattern, anchor, recurrenceWeeks)
	return &RecurringResult{Pattern: pattern, Generated: generated, Failed: failed}, nil
}

// generateOccurrences attempts one reservation per week starting at from.
// Every week is attempted regardless of earlier outcomes; weeks that are
// already booked (or fail to insert) are reported as failed dates.
func (s *BookingService) generateOccurrences(ctx context.Context, pattern *models.RecurringReservation, from time.Time, weeks int) (generated, failed []string) {
	generated = []string{}
	failed = []string{}
	endTime, err := utils.AddOneHour(pattern.StartTime)
	if err != nil {
		log.Printf("Pattern #%d has an invalid start time %q: %v", pattern.ID, pattern.StartTime, err)
		return
	}

	whatsapp := pattern.ClientWhatsApp
	if whatsapp == "" {
		whatsapp = "N/A"
	}
	notes := strings.TrimSpace(fmt.Sprintf("Generada por patrón recurrente #%d. %s", pattern.ID, pattern.Notes))

	for i := 0; i < weeks; i++ {
		date := utils.FormatDate(from.AddDate(0, 0, 7*i))

		taken, err := s.slotTaken(ctx, pattern.CourtID, date, pattern.StartTime)
		if err != nil {
			log.Printf("Pattern #%d: availability check failed for %s: %v", pattern.ID, date, err)
			failed = append(failed, date)
			continue
		}
		if taken {
			failed = append(failed, date)
			continue
		}

		patternID := pattern.ID
		res := &models.Reservation{
			CourtID:        pattern.CourtID,
			Date:           date,
			StartTime:      pattern.StartTime,
			EndTime:        endTime,
			ClientName:     pattern.ClientName + " (Fijo)",
			ClientWhatsApp: whatsapp,
			PaymentState:   models.PaymentCourtesy,
			AmountPaid:     0,
			AmountTotal:    0,
			Kind:           models.KindRecurring,
			AdminNotes:     notes,
			PatternID:      &patternID,
		}
		if err := s.db.WithContext(ctx).Create(res).Error; err != nil {
			// A duplicate key here means another writer won the slot
			// between the check and the insert.
			log.Printf("Pattern #%d: could not generate reservation for %s: %v", pattern.ID, date, err)
			failed = append(failed, date)
			continue
		}
		generated = append(generated, date)
	}
	return generated, failed
}

// ListRecurring returns active patterns ordered by weekday and start time.
func (s *BookingService) ListRecurring(ctx context.Context) ([]models.RecurringReservation, error) {
	var patterns []models.RecurringReservation
	if err := s.db.WithContext(ctx).
		Preload("Court").
		Where("activa = ?", true).
		Order("dia_semana asc").
		Order("horario_inicio asc").
		Find(&patterns).Error; err != nil {
		return nil, storeErr(err)
	}
	return patterns, nil
}

// DeleteRecurring removes a pattern and releases its future generated
// reservations. Past occurrences are kept as historical record.
func (s *BookingService) DeleteRecurring(ctx context.Context, id uint) error {
	var pattern models.RecurringReservation
	if err := s.db.WithContext(ctx).First(&pattern, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NotFoundError{Message: "Patrón no encontrado"}
		}
		return storeErr(err)
	}

	if err := s.db.WithContext(ctx).Delete(&pattern).Error; err != nil {
		return storeErr(err)
	}

	// The pattern FK is the authoritative link; court and start time stay
	// in the predicate as guards against a mislinked row.
	if err := s.db.WithContext(ctx).
		Where("patron_id = ? AND cancha_id = ? AND horario_inicio = ? AND tipo_reserva = ? AND fecha >= ?",
			pattern.ID, pattern.CourtID, pattern.StartTime, models.KindRecurring, utils.Today()).
		Delete(&models.Reservation{}).Error; err != nil {
		// The pattern is the lifecycle owner; orphaned future instances
		// are recoverable, so teardown still succeeds.
		log.Printf("Failed to release future reservations for pattern #%d: %v", pattern.ID, err)
	}
	return nil
}

// UpdatePaymentState recomputes the paid amount from the reservation's
// stored total, not the current catalog price.
func (s *BookingService) UpdatePaymentState(ctx context.Context, id uint, state string) (*models.Reservation, error) {
	switch state {
	case models.PaymentFull, models.PaymentDeposit, models.PaymentPending, models.PaymentCourtesy:
	default:
		return nil, ValidationError{Message: "Estado de pago inválido"}
	}

	var res models.Reservation
	if err := s.db.WithContext(ctx).First(&res, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundError{Message: "Reserva no encontrada"}
		}
		return nil, storeErr(err)
	}

	res.PaymentState = state
	res.AmountPaid = amountFor(state, res.AmountTotal)
	if err := s.db.WithContext(ctx).Save(&res).Error; err != nil {
		return nil, storeErr(err)
	}
	return &res, nil
}

// CancelReservation soft deletes, freeing the slot immediately.
func (s *BookingService) CancelReservation(ctx context.Context, id uint) error {
	var res models.Reservation
	if err := s.db.WithContext(ctx).First(&res, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NotFoundError{Message: "Reserva no encontrada"}
		}
		return storeErr(err)
	}
	if err := s.db.WithContext(ctx).Delete(&res).Error; err != nil {
		return storeErr(err)
	}
	return nil
}

// ReservationFilters narrows the admin listing.
type ReservationFilters struct {
	Date    string
	CourtID uint
}

// ListReservations returns reservations newest date first, then by start
// time, with court display fields joined.
func (s *BookingService) ListReservations(ctx context.Context, f ReservationFilters) ([]models.Reservation, error) {
	q := s.db.WithContext(ctx).
		Preload("Court").
		Order("fecha desc").
		Order("horario_inicio asc")
	if f.Date != "" {
		q = q.Where("fecha = ?", f.Date)
	}
	if f.CourtID != 0 {
		q = q.Where("cancha_id = ?", f.CourtID)
	}

	var out []models.Reservation
	if err := q.Find(&out).Error; err != nil {
		return nil, storeErr(err)
	}
	return out, nil
}

// slotTaken reports whether a live reservation occupies the slot. The match
// truncates stored times to HH:MM since older rows carry seconds.
func (s *BookingService) slotTaken(ctx context.Context, courtID uint, date, startTime string) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).
		Model(&models.Reservation{}).
		Where("cancha_id = ? AND fecha = ? AND substr(horario_inicio, 1, 5) = ?",
			courtID, date, utils.ShortTime(startTime)).
		Count(&count).Error; err != nil {
		return false, storeErr(err)
	}
	return count > 0, nil
}

// insertSlot enforces the no-double-booking invariant. The lookup is a fast
// path for a friendly error; the partial unique index on (cancha_id, fecha,
// horario_inicio) is the authority under concurrent writers, surfacing as a
// duplicate-key error.
func (s *BookingService) insertSlot(ctx context.Context, res *models.Reservation) error {
	taken, err := s.slotTaken(ctx, res.CourtID, res.Date, res.StartTime)
	if err != nil {
		return err
	}
	if taken {
		return ConflictError{CourtID: res.CourtID, Date: res.Date, Time: res.StartTime}
	}

	if err := s.db.WithContext(ctx).Create(res).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ConflictError{CourtID: res.CourtID, Date: res.Date, Time: res.StartTime}
		}
		return storeErr(err)
	}
	return nil
}

func amountFor(state string, total float64) float64 {
	switch state {
	case models.PaymentFull:
		return total
	case models.PaymentDeposit:
		return math.Round(total*50) / 100
	default:
		return 0
	}
}
