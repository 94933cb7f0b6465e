// models/recurring.go
package models

import (
	"time"

	"gorm.io/gorm"
)

// RecurringReservation is a weekly booking pattern. Weekday is always
// recomputed server-side from StartDate (0=domingo .. 6=sábado); the value a
// client declares is never trusted.
type RecurringReservation struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	CourtID        uint   `gorm:"column:cancha_id;not null;index" json:"cancha_id"`
	ClientName     string `gorm:"column:cliente_nombre;not null" json:"cliente_nombre"`
	ClientWhatsApp string `gorm:"column:cliente_whatsapp" json:"cliente_whatsapp"`
	Weekday        int    `gorm:"column:dia_semana;not null" json:"dia_semana"`
	StartTime      string `gorm:"column:horario_inicio;size:8;not null" json:"horario_inicio"`
	StartDate      string `gorm:"column:fecha_inicio;size:10;not null" json:"fecha_inicio"`
	Notes          string `gorm:"column:notas;type:text" json:"notas,omitempty"`

	// Active pauses generation without deleting the pattern. Teardown soft
	// deletes the row itself. Always set explicitly on create; a column
	// default would swallow an explicit false.
	Active bool `gorm:"column:activa" json:"activa"`

	Court     Court         `gorm:"foreignKey:CourtID" json:"canchas,omitempty"`
	Instances []Reservation `gorm:"foreignKey:PatternID" json:"-"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"-"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (RecurringReservation) TableName() string {
	return "reservas_recurrentes"
}
