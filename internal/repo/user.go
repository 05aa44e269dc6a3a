package repo

import (
	"InvoiceAPI/internal/model"
	"context"

	"gorm.io/gorm"
)

// UserRepository — контракт доступа к User для слоя сервиса.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByName(ctx context.Context, name string) (*model.User, error)
	Save(ctx context.Context, user *model.User) error

	// Delete удаляет пользователя вместе со всеми его клиентами,
	// счетами и строками счетов в одной транзакции.
	Delete(ctx context.Context, user *model.User) error
}

type userRepo struct {
	db *gorm.DB
}

// NewUserRepository создаёт реализацию репозитория для User.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepo) GetByID(ctx context.Context, id int64) (*model.User, error) {
	var u model.User
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepo) GetByName(ctx context.Context, name string) (*model.User, error) {
	var u model.User
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepo) Save(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *userRepo) Delete(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// подзапросы строятся заново для каждого выражения,
		// повторное использование builder'а в gorm небезопасно
		invoiceIDs := tx.Model(&model.Invoice{}).Select("id").
			Where("customer_id IN (?)", tx.Model(&model.Customer{}).Select("id").Where("user_id = ?", user.ID))

		if err := tx.Where("invoice_id IN (?)", invoiceIDs).Delete(&model.InvoiceRow{}).Error; err != nil {
			return err
		}
		if err := tx.Where("customer_id IN (?)",
			tx.Model(&model.Customer{}).Select("id").Where("user_id = ?", user.ID),
		).Delete(&model.Invoice{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", user.ID).Delete(&model.Customer{}).Error; err != nil {
			return err
		}
		return tx.Delete(user).Error
	})
}
