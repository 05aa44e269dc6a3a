package repo

import (
	"InvoiceAPI/internal/model"
	"context"
	"testing"

	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"
)

// newTestDB инициализирует in-memory SQLite (modernc.org/sqlite) для тестов
// репозитория. Имя базы уникально на тест, чтобы данные не перетекали
// между тестами через общий кеш.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dial := gormsqlite.Dialector{DriverName: "sqlite", DSN: "file:" + t.Name() + "?mode=memory&cache=shared"}
	db, err := gorm.Open(dial, &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite (modernc): %v", err)
	}
	// Миграции для всех моделей, используемых в репозиториях
	if err := db.AutoMigrate(&model.User{}, &model.Customer{}, &model.Invoice{}, &model.InvoiceRow{}); err != nil {
		t.Fatalf("failed to automigrate: %v", err)
	}
	return db
}

// seedUser создаёт пользователя напрямую через gorm, минуя репозиторий.
func seedUser(t *testing.T, db *gorm.DB, name string) *model.User {
	t.Helper()
	u := &model.User{Name: name, Email: name + "@test.local", Password: "hash"}
	if err := db.WithContext(context.Background()).Create(u).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return u
}

func seedCustomer(t *testing.T, db *gorm.DB, userID int64, name, email string) *model.Customer {
	t.Helper()
	c := &model.Customer{UserID: userID, Name: name, Email: email}
	if err := db.WithContext(context.Background()).Create(c).Error; err != nil {
		t.Fatalf("failed to seed customer: %v", err)
	}
	return c
}

func seedInvoice(t *testing.T, db *gorm.DB, customerID int64, title string) *model.Invoice {
	t.Helper()
	inv := &model.Invoice{CustomerID: &customerID, Title: title, Status: model.StatusCreated}
	if err := db.WithContext(context.Background()).Create(inv).Error; err != nil {
		t.Fatalf("failed to seed invoice: %v", err)
	}
	return inv
}
