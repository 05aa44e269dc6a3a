package model

// InvoiceRow — строка счёта. Sum считается один раз при создании
// (Quantity * Amount) и дальше не пересчитывается: строки неизменяемы,
// что сохраняет инвариант кешированного TotalSum счёта.
type InvoiceRow struct {
	ID        int64 `gorm:"primaryKey"`
	InvoiceID int64 `gorm:"not null;index"`

	Description string  `gorm:"not null"`
	Quantity    float64 `gorm:"not null"`
	Amount      float64 `gorm:"not null"`
	Sum         float64 `gorm:"not null"`
}
