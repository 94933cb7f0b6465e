package models

// Court is read-mostly catalog data; reservations reference it for pricing
// and display. Column and JSON names keep the schema the frontend already
// speaks.
type Court struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Name        string  `gorm:"column:nombre;not null" json:"nombre"`
	Type        string  `gorm:"column:tipo;not null;index" json:"tipo"`
	HourlyPrice float64 `gorm:"column:precio_hora;type:decimal(10,2);not null" json:"precio_hora"`
	// No column default: with one, GORM drops a zero-value false from the
	// insert and the row comes back active.
	Active bool `gorm:"column:activa" json:"activa"`

	Reservations []Reservation `gorm:"foreignKey:CourtID" json:"-"`
}

func (Court) TableName() string {
	return "canchas"
}
