// services/renewal_service.go
package services

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"canchaclub-backend/models"
	"canchaclub-backend/utils"
)

// RenewalService keeps active recurring patterns topped up to a full
// 12-week horizon. Expansion only happens once when a pattern is created, so
// without this job the generated window silently runs out after three
// months.
type RenewalService struct {
	db      *gorm.DB
	booking *BookingService
}

func NewRenewalService(db *gorm.DB) *RenewalService {
	return &RenewalService{
		db:      db,
		booking: NewBookingService(db, nil),
	}
}

func (s *RenewalService) StartScheduler() {
	c := cron.New()

	// Run every Monday at 6 AM
	c.AddFunc("0 6 * * 1", func() {
		s.RenewAll(context.Background())
	})

	c.Start()
	log.Println("Recurring renewal scheduler started")
}

// RenewAll extends every active pattern. Weeks that already have their
// reservation (or are otherwise booked) are simply skipped by the same
// collision rules used at creation.
func (s *RenewalService) RenewAll(ctx context.Context) {
	var patterns []models.RecurringReservation
	if err := s.db.WithContext(ctx).Where("activa = ?", true).Find(&patterns).Error; err != nil {
		log.Printf("Failed to fetch recurring patterns: %v", err)
		return
	}

	for i := range patterns {
		s.renewPattern(ctx, &patterns[i])
	}
}

func (s *RenewalService) renewPattern(ctx context.Context, p *models.RecurringReservation) {
	next, err := nextOccurrence(p, time.Now())
	if err != nil {
		log.Printf("Pattern #%d has an invalid start date %q: %v", p.ID, p.StartDate, err)
		return
	}

	generated, _ := s.booking.generateOccurrences(ctx, p, next, recurrenceWeeks)
	if len(generated) > 0 {
		log.Printf("Pattern #%d: generated %d upcoming reservations", p.ID, len(generated))
	}
}

// nextOccurrence returns the first pattern date on or after now's day.
func nextOccurrence(p *models.RecurringReservation, now time.Time) (time.Time, error) {
	anchor, err := utils.ParseDateAtNoon(p.StartDate)
	if err != nil {
		return time.Time{}, err
	}

	days := utils.DaysBetween(anchor, now)
	if days <= 0 {
		return anchor, nil
	}
	weeks := (days + 6) / 7
	return anchor.AddDate(0, 0, weeks*7), nil
}
