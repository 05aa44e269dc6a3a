package model

import "time"

// User — владелец учётной записи. Корень цепочки владения:
// User -> Customer -> Invoice -> InvoiceRow.
type User struct {
	ID int64 `gorm:"primaryKey"`

	Name        string `gorm:"uniqueIndex;not null"`
	Address     string
	Email       string `gorm:"not null"`
	Password    string `gorm:"not null"` // bcrypt-хеш
	PhoneNumber string

	// Токен текущей сессии, перезаписывается при каждом логине.
	Token string

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Связи
	Customers []Customer `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}
