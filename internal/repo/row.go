package repo

import (
	"InvoiceAPI/internal/model"
	"context"

	"gorm.io/gorm"
)

// RowRepository — леджер строк счёта. Вставка/удаление строки и корректировка
// кешированного TotalSum счёта выполняются в одной транзакции, корректировка —
// атомарным UPDATE ... SET total_sum = total_sum ± ?, чтобы параллельные
// добавления к одному счёту не теряли инкременты.
type RowRepository interface {
	// GetInInvoice возвращает строку, принадлежащую счёту.
	GetInInvoice(ctx context.Context, invoiceID, rowID int64) (*model.InvoiceRow, error)

	// Add вставляет строку и увеличивает TotalSum счёта на row.Sum.
	Add(ctx context.Context, row *model.InvoiceRow) error

	// Remove удаляет строку и уменьшает TotalSum счёта на row.Sum.
	Remove(ctx context.Context, row *model.InvoiceRow) error
}

type rowRepo struct {
	db *gorm.DB
}

// NewRowRepository создаёт реализацию репозитория для InvoiceRow.
func NewRowRepository(db *gorm.DB) RowRepository {
	return &rowRepo{db: db}
}

func (r *rowRepo) GetInInvoice(ctx context.Context, invoiceID, rowID int64) (*model.InvoiceRow, error) {
	var row model.InvoiceRow
	err := r.db.WithContext(ctx).
		Where("id = ? AND invoice_id = ?", rowID, invoiceID).
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *rowRepo) Add(ctx context.Context, row *model.InvoiceRow) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(row).Error; err != nil {
			return err
		}
		return tx.Model(&model.Invoice{}).
			Where("id = ?", row.InvoiceID).
			UpdateColumn("total_sum", gorm.Expr("total_sum + ?", row.Sum)).Error
	})
}

func (r *rowRepo) Remove(ctx context.Context, row *model.InvoiceRow) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(row).Error; err != nil {
			return err
		}
		return tx.Model(&model.Invoice{}).
			Where("id = ?", row.InvoiceID).
			UpdateColumn("total_sum", gorm.Expr("total_sum - ?", row.Sum)).Error
	})
}
