package model

import "time"

// Customer — клиент пользователя. Email уникален только среди «живых»
// клиентов одного пользователя, поэтому ограничение проверяется в сервисе,
// а не на уровне схемы.
type Customer struct {
	ID     int64 `gorm:"primaryKey"`
	UserID int64 `gorm:"not null;index"` // ссылка на users.id

	Name        string `gorm:"not null"`
	Address     string
	Email       string `gorm:"not null"`
	Password    string // легаси-поле, для аутентификации не используется
	PhoneNumber string

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Мягкое удаление: флаг + отметка времени на одной записи.
	// «Живые» выборки фильтруют по флагу, не по DeletedAt.
	DeletedAt *time.Time
	IsDeleted bool `gorm:"not null;default:false"`

	// Связи
	Invoices []Invoice `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}
