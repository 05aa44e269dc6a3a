package repo

import (
	"InvoiceAPI/internal/model"
	"context"

	"gorm.io/gorm"
)

// CustomerFilter — опциональные текстовые фильтры листинга клиентов.
// Пустая строка — no-op; непустые условия объединяются по AND.
type CustomerFilter struct {
	Name    string
	Address string
}

// customerSortColumns — допустимые ключи сортировки клиентов.
var customerSortColumns = map[string]string{
	"Id":        "id",
	"CreatedAt": "created_at",
	"UpdatedAt": "updated_at",
}

// CustomerRepository — контракт доступа к Customer. Все выборки ограничены
// владельцем: клиент чужого пользователя неотличим от несуществующего.
type CustomerRepository interface {
	Create(ctx context.Context, c *model.Customer) error

	// GetOwned возвращает живого (не архивированного) клиента пользователя.
	GetOwned(ctx context.Context, userID, customerID int64) (*model.Customer, error)

	// FindLiveByEmail ищет живого клиента пользователя по email.
	FindLiveByEmail(ctx context.Context, userID int64, email string) (*model.Customer, error)

	Save(ctx context.Context, c *model.Customer) error

	// Delete жёстко удаляет клиента вместе со счетами и их строками.
	Delete(ctx context.Context, c *model.Customer) error

	// List возвращает страницу живых клиентов пользователя и общее число
	// записей, подпадающих под фильтр (без учёта нарезки).
	List(ctx context.Context, userID int64, f CustomerFilter, opts ListOptions) ([]model.Customer, int64, error)

	// ListWithInvoices возвращает всех живых клиентов пользователя с их
	// живыми счетами и строками, без пагинации (для отчёта).
	ListWithInvoices(ctx context.Context, userID int64) ([]model.Customer, error)
}

type customerRepo struct {
	db *gorm.DB
}

// NewCustomerRepository создаёт реализацию репозитория для Customer.
func NewCustomerRepository(db *gorm.DB) CustomerRepository {
	return &customerRepo{db: db}
}

func (r *customerRepo) Create(ctx context.Context, c *model.Customer) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *customerRepo) GetOwned(ctx context.Context, userID, customerID int64) (*model.Customer, error) {
	var c model.Customer
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ? AND is_deleted = ?", customerID, userID, false).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *customerRepo) FindLiveByEmail(ctx context.Context, userID int64, email string) (*model.Customer, error) {
	var c model.Customer
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND email = ? AND is_deleted = ?", userID, email, false).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *customerRepo) Save(ctx context.Context, c *model.Customer) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *customerRepo) Delete(ctx context.Context, c *model.Customer) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		invoiceIDs := tx.Model(&model.Invoice{}).Select("id").Where("customer_id = ?", c.ID)
		if err := tx.Where("invoice_id IN (?)", invoiceIDs).Delete(&model.InvoiceRow{}).Error; err != nil {
			return err
		}
		if err := tx.Where("customer_id = ?", c.ID).Delete(&model.Invoice{}).Error; err != nil {
			return err
		}
		return tx.Delete(c).Error
	})
}

func (r *customerRepo) List(ctx context.Context, userID int64, f CustomerFilter, opts ListOptions) ([]model.Customer, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Customer{}).
		Where("user_id = ? AND is_deleted = ?", userID, false)

	if f.Name != "" {
		q = q.Where("name LIKE ?", "%"+f.Name+"%")
	}
	if f.Address != "" {
		q = q.Where("address LIKE ?", "%"+f.Address+"%")
	}

	// totalCount считается по фильтру до сортировки и нарезки
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if order, ok := orderClause(customerSortColumns, opts.SortKey, opts.SortDir); ok {
		q = q.Order(order)
	}

	var items []model.Customer
	if err := q.Offset(opts.offset()).Limit(opts.PageSize).Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *customerRepo) ListWithInvoices(ctx context.Context, userID int64) ([]model.Customer, error) {
	var items []model.Customer
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_deleted = ?", userID, false).
		Preload("Invoices", "is_deleted = ?", false).
		Preload("Invoices.Rows").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
