package repo

import (
	"InvoiceAPI/internal/model"
	"context"

	"gorm.io/gorm"
)

// InvoiceFilter — опциональный текстовый фильтр листинга счетов.
type InvoiceFilter struct {
	Title string
}

var invoiceSortColumns = map[string]string{
	"Id":        "id",
	"TotalSum":  "total_sum",
	"StartDate": "start_date",
	"EndDate":   "end_date",
	"CreatedAt": "created_at",
	"UpdatedAt": "updated_at",
}

// InvoiceRepository — контракт доступа к Invoice. Выборки ограничены
// клиентом-владельцем; счёт чужого клиента неотличим от несуществующего.
type InvoiceRepository interface {
	Create(ctx context.Context, inv *model.Invoice) error

	// GetOwned возвращает живой счёт клиента вместе со строками.
	GetOwned(ctx context.Context, customerID, invoiceID int64) (*model.Invoice, error)

	Save(ctx context.Context, inv *model.Invoice) error

	// Delete жёстко удаляет счёт вместе со строками.
	Delete(ctx context.Context, inv *model.Invoice) error

	// List возвращает страницу живых счетов клиента (со строками) и общее
	// число записей, подпадающих под фильтр.
	List(ctx context.Context, customerID int64, f InvoiceFilter, opts ListOptions) ([]model.Invoice, int64, error)
}

type invoiceRepo struct {
	db *gorm.DB
}

// NewInvoiceRepository создаёт реализацию репозитория для Invoice.
func NewInvoiceRepository(db *gorm.DB) InvoiceRepository {
	return &invoiceRepo{db: db}
}

func (r *invoiceRepo) Create(ctx context.Context, inv *model.Invoice) error {
	return r.db.WithContext(ctx).Create(inv).Error
}

func (r *invoiceRepo) GetOwned(ctx context.Context, customerID, invoiceID int64) (*model.Invoice, error) {
	var inv model.Invoice
	err := r.db.WithContext(ctx).
		Where("id = ? AND customer_id = ? AND is_deleted = ?", invoiceID, customerID, false).
		Preload("Rows").
		First(&inv).Error
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *invoiceRepo) Save(ctx context.Context, inv *model.Invoice) error {
	return r.db.WithContext(ctx).Omit("Rows").Save(inv).Error
}

func (r *invoiceRepo) Delete(ctx context.Context, inv *model.Invoice) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("invoice_id = ?", inv.ID).Delete(&model.InvoiceRow{}).Error; err != nil {
			return err
		}
		return tx.Delete(inv).Error
	})
}

func (r *invoiceRepo) List(ctx context.Context, customerID int64, f InvoiceFilter, opts ListOptions) ([]model.Invoice, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Invoice{}).
		Where("customer_id = ? AND is_deleted = ?", customerID, false)

	if f.Title != "" {
		q = q.Where("title LIKE ?", "%"+f.Title+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if order, ok := orderClause(invoiceSortColumns, opts.SortKey, opts.SortDir); ok {
		q = q.Order(order)
	}

	var items []model.Invoice
	err := q.Preload("Rows").Offset(opts.offset()).Limit(opts.PageSize).Find(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}
