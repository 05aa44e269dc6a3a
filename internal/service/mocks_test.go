package service

import (
	"InvoiceAPI/internal/model"
	"InvoiceAPI/internal/repo"
	"context"

	"github.com/stretchr/testify/mock"
)

// моки репозиториев, общие для тестов сервисного слоя

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*model.User, error) {
	args := m.Called(ctx, id)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) GetByName(ctx context.Context, name string) (*model.User, error) {
	args := m.Called(ctx, name)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) Save(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepo) Delete(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

var _ repo.UserRepository = (*mockUserRepo)(nil)

type mockCustomerRepo struct{ mock.Mock }

func (m *mockCustomerRepo) Create(ctx context.Context, c *model.Customer) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *mockCustomerRepo) GetOwned(ctx context.Context, userID, customerID int64) (*model.Customer, error) {
	args := m.Called(ctx, userID, customerID)
	if c, ok := args.Get(0).(*model.Customer); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCustomerRepo) FindLiveByEmail(ctx context.Context, userID int64, email string) (*model.Customer, error) {
	args := m.Called(ctx, userID, email)
	if c, ok := args.Get(0).(*model.Customer); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCustomerRepo) Save(ctx context.Context, c *model.Customer) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *mockCustomerRepo) Delete(ctx context.Context, c *model.Customer) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *mockCustomerRepo) List(ctx context.Context, userID int64, f repo.CustomerFilter, opts repo.ListOptions) ([]model.Customer, int64, error) {
	args := m.Called(ctx, userID, f, opts)
	if items, ok := args.Get(0).([]model.Customer); ok {
		return items, args.Get(1).(int64), args.Error(2)
	}
	return nil, args.Get(1).(int64), args.Error(2)
}

func (m *mockCustomerRepo) ListWithInvoices(ctx context.Context, userID int64) ([]model.Customer, error) {
	args := m.Called(ctx, userID)
	if items, ok := args.Get(0).([]model.Customer); ok {
		return items, args.Error(1)
	}
	return nil, args.Error(1)
}

var _ repo.CustomerRepository = (*mockCustomerRepo)(nil)

type mockInvoiceRepo struct{ mock.Mock }

func (m *mockInvoiceRepo) Create(ctx context.Context, inv *model.Invoice) error {
	args := m.Called(ctx, inv)
	return args.Error(0)
}

func (m *mockInvoiceRepo) GetOwned(ctx context.Context, customerID, invoiceID int64) (*model.Invoice, error) {
	args := m.Called(ctx, customerID, invoiceID)
	if inv, ok := args.Get(0).(*model.Invoice); ok {
		return inv, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockInvoiceRepo) Save(ctx context.Context, inv *model.Invoice) error {
	args := m.Called(ctx, inv)
	return args.Error(0)
}

func (m *mockInvoiceRepo) Delete(ctx context.Context, inv *model.Invoice) error {
	args := m.Called(ctx, inv)
	return args.Error(0)
}

func (m *mockInvoiceRepo) List(ctx context.Context, customerID int64, f repo.InvoiceFilter, opts repo.ListOptions) ([]model.Invoice, int64, error) {
	args := m.Called(ctx, customerID, f, opts)
	if items, ok := args.Get(0).([]model.Invoice); ok {
		return items, args.Get(1).(int64), args.Error(2)
	}
	return nil, args.Get(1).(int64), args.Error(2)
}

var _ repo.InvoiceRepository = (*mockInvoiceRepo)(nil)

type mockRowRepo struct{ mock.Mock }

func (m *mockRowRepo) GetInInvoice(ctx context.Context, invoiceID, rowID int64) (*model.InvoiceRow, error) {
	args := m.Called(ctx, invoiceID, rowID)
	if row, ok := args.Get(0).(*model.InvoiceRow); ok {
		return row, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRowRepo) Add(ctx context.Context, row *model.InvoiceRow) error {
	args := m.Called(ctx, row)
	return args.Error(0)
}

func (m *mockRowRepo) Remove(ctx context.Context, row *model.InvoiceRow) error {
	args := m.Called(ctx, row)
	return args.Error(0)
}

var _ repo.RowRepository = (*mockRowRepo)(nil)
