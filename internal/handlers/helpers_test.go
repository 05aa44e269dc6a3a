package handlers_test

import (
	"InvoiceAPI/internal/config"
	"InvoiceAPI/internal/handlers"
	"InvoiceAPI/internal/middleware"
	"InvoiceAPI/internal/model"
	"InvoiceAPI/internal/repo"
	"InvoiceAPI/internal/service"
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

// моки репозиториев для тестов хендлеров: сервисы и роутер настоящие

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

// testRepos — набор моков одного теста. Незаполненные поля получают
// пустые моки-заглушки.
type testRepos struct {
	users     *mockUserRepo
	customers *mockCustomerRepo
	invoices  *mockInvoiceRepo
	rows      *mockRowRepo
}

const testSecret = "test-secret"

func newTestRouter(t *testing.T, r testRepos) http.Handler {
	t.Helper()
	if r.users == nil {
		r.users = new(mockUserRepo)
	}
	if r.customers == nil {
		r.customers = new(mockCustomerRepo)
	}
	if r.invoices == nil {
		r.invoices = new(mockInvoiceRepo)
	}
	if r.rows == nil {
		r.rows = new(mockRowRepo)
	}

	cfg := &config.Config{AuthSecret: testSecret, TokenTTLHours: 1}
	logger := zap.NewNop().Sugar()

	userSvc := service.NewUserService(r.users)
	customerSvc := service.NewCustomerService(r.customers)
	invoiceSvc := service.NewInvoiceService(r.customers, r.invoices)
	rowSvc := service.NewRowService(r.customers, r.invoices, r.rows)
	reportSvc := service.NewReportService(r.customers)

	h := handlers.NewHandler(userSvc, customerSvc, invoiceSvc, rowSvc, reportSvc, logger, cfg)
	return h.Router
}

func addAuthHeader(t *testing.T, req *http.Request, userID int64) {
	t.Helper()
	token, err := middleware.NewToken(userID, "caller@test.local", testSecret, time.Hour)
	if err != nil {
		t.Fatalf("failed to mint token: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
}
