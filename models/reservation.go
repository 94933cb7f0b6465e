// models/reservation.go
package models

import (
	"time"

	"gorm.io/gorm"
)

// Payment states accepted on the wire. "seña" is a 50% deposit, "cortesia"
// is a zero-amount booking (manual and recurring reservations).
const (
	PaymentFull     = "completo"
	PaymentDeposit  = "seña"
	PaymentPending  = "pendiente"
	PaymentCourtesy = "cortesia"
)

// Reservation kinds.
const (
	KindCustomer  = "cliente"
	KindAdmin     = "admin"
	KindRecurring = "recurrente"
)

// Reservation is a single one-hour slot on a court. Dates and times are
// stored as timezone-naive strings ("2006-01-02", "15:04:05"), matching the
// wire format the frontend already speaks.
//
// The partial unique index on (cancha_id, fecha, horario_inicio) is the
// authoritative no-double-booking guard; cancelled rows are soft deleted and
// fall out of it, so a freed slot can be rebooked.
type Reservation struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	CourtID   uint   `gorm:"column:cancha_id;not null;uniqueIndex:idx_reservas_slot,priority:1,where:deleted_at IS NULL" json:"cancha_id"`
	Date      string `gorm:"column:fecha;size:10;not null;uniqueIndex:idx_reservas_slot,priority:2" json:"fecha"`
	StartTime string `gorm:"column:horario_inicio;size:8;not null;uniqueIndex:idx_reservas_slot,priority:3" json:"horario_inicio"`
	EndTime   string `gorm:"column:horario_fin;size:8;not null" json:"horario_fin"`

	ClientName     string `gorm:"column:cliente_nombre;not null" json:"cliente_nombre"`
	ClientWhatsApp string `gorm:"column:cliente_whatsapp" json:"cliente_whatsapp"`

	PaymentState string  `gorm:"column:estado_pago;type:varchar(20);not null;default:'pendiente'" json:"estado_pago"`
	AmountPaid   float64 `gorm:"column:monto_pagado;type:decimal(10,2);default:0.0" json:"monto_pagado"`
	AmountTotal  float64 `gorm:"column:monto_total;type:decimal(10,2);default:0.0" json:"monto_total"`

	Kind       string `gorm:"column:tipo_reserva;type:varchar(20);not null;default:'cliente';index" json:"tipo_reserva"`
	AdminNotes string `gorm:"column:notas_admin;type:text" json:"notas_admin,omitempty"`

	// PatternID links recurring instances to the pattern that generated
	// them. The textual tag in AdminNotes is kept for display only.
	PatternID *uint `gorm:"column:patron_id;index" json:"patron_id,omitempty"`

	Court Court `gorm:"foreignKey:CourtID" json:"canchas,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"-"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Reservation) TableName() string {
	return "reservas"
}
