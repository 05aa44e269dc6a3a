package model

import "time"

// Статусы счёта. Переходы между статусами не ограничены: допускается любой
// запрошенный статус, проверяется только сама строка статуса. Статус влияет
// лишь на изменяемость счёта (см. IsMutable).
const (
	StatusCreated   = "Created"
	StatusSent      = "Sent"
	StatusReceived  = "Received"
	StatusPaid      = "Paid"
	StatusCancelled = "Cancelled"
	StatusRejected  = "Rejected"
)

// Invoice — счёт клиента. TotalSum — кешированный агрегат по строкам,
// поддерживается инкрементально при добавлении/удалении строк.
type Invoice struct {
	ID         int64  `gorm:"primaryKey"`
	CustomerID *int64 `gorm:"index"` // nullable для осиротевших счетов

	Title    string `gorm:"not null"`
	Comment  string
	Status   string  `gorm:"not null"`
	TotalSum float64 `gorm:"not null;default:0"`

	// StartDate проставляется при переходе в Received, EndDate — в Paid.
	StartDate *time.Time
	EndDate   *time.Time

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	DeletedAt *time.Time
	IsDeleted bool `gorm:"not null;default:false"`

	// Связи
	Rows []InvoiceRow `gorm:"foreignKey:InvoiceID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// IsMutable сообщает, допускает ли текущий статус редактирование,
// удаление и архивирование счёта. Смена статуса и операции над строками
// этим правилом не ограничиваются.
func (i *Invoice) IsMutable() bool {
	switch i.Status {
	case StatusSent, StatusReceived, StatusPaid:
		return false
	}
	return true
}
