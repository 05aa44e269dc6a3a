package service

import (
	"InvoiceAPI/internal/model"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

func newInvoiceFixture(status string) (*mockCustomerRepo, *mockInvoiceRepo, *InvoiceService) {
	mc := new(mockCustomerRepo)
	mi := new(mockInvoiceRepo)
	mc.On("GetOwned", mock.Anything, int64(1), int64(7)).
		Return(&model.Customer{ID: 7, UserID: 1, Name: "Acme", Email: "acme@test.local"}, nil)
	customerID := int64(7)
	mi.On("GetOwned", mock.Anything, int64(7), int64(3)).
		Return(&model.Invoice{ID: 3, CustomerID: &customerID, Title: "Work", Status: status}, nil)
	return mc, mi, NewInvoiceService(mc, mi)
}

func TestInvoiceService_Create(t *testing.T) {
	ctx := context.Background()
	mc, mi, svc := newInvoiceFixture(model.StatusCreated)

	mi.On("Create", mock.Anything, mock.MatchedBy(func(inv *model.Invoice) bool {
		// новый счёт всегда начинает в Created с нулевым агрегатом
		return inv.Status == model.StatusCreated && inv.TotalSum == 0 && *inv.CustomerID == 7
	})).Return(nil).Once()

	inv, c, err := svc.Create(ctx, 1, 7, "Work", "comment")
	assert.NoError(t, err)
	assert.Equal(t, model.StatusCreated, inv.Status)
	assert.Equal(t, "Acme", c.Name)
	mc.AssertExpectations(t)
	mi.AssertExpectations(t)
}

func TestInvoiceService_Get_BrokenOwnershipChain(t *testing.T) {
	ctx := context.Background()
	mc := new(mockCustomerRepo)
	mi := new(mockInvoiceRepo)
	svc := NewInvoiceService(mc, mi)

	// клиент другого пользователя: цепочка владения рвётся на первом звене
	mc.On("GetOwned", mock.Anything, int64(2), int64(7)).
		Return((*model.Customer)(nil), gorm.ErrRecordNotFound).Once()

	inv, c, err := svc.Get(ctx, 2, 7, 3)
	assert.Nil(t, inv)
	assert.Nil(t, c)
	assert.ErrorIs(t, err, ErrNotFound)
	mc.AssertExpectations(t)
}

func TestInvoiceService_ChangeStatus_Stamps(t *testing.T) {
	ctx := context.Background()

	t.Run("received stamps start date", func(t *testing.T) {
		_, mi, svc := newInvoiceFixture(model.StatusSent)
		mi.On("Save", mock.Anything, mock.Anything).Return(nil).Once()

		inv, _, err := svc.ChangeStatus(ctx, 1, 7, 3, model.StatusReceived)
		assert.NoError(t, err)
		assert.Equal(t, model.StatusReceived, inv.Status)
		assert.NotNil(t, inv.StartDate)
		assert.Nil(t, inv.EndDate)
	})

	t.Run("paid stamps end date", func(t *testing.T) {
		_, mi, svc := newInvoiceFixture(model.StatusReceived)
		mi.On("Save", mock.Anything, mock.Anything).Return(nil).Once()

		inv, _, err := svc.ChangeStatus(ctx, 1, 7, 3, model.StatusPaid)
		assert.NoError(t, err)
		assert.Equal(t, model.StatusPaid, inv.Status)
		assert.NotNil(t, inv.EndDate)
	})

	t.Run("other statuses stamp nothing", func(t *testing.T) {
		_, mi, svc := newInvoiceFixture(model.StatusCreated)
		mi.On("Save", mock.Anything, mock.Anything).Return(nil).Once()

		inv, _, err := svc.ChangeStatus(ctx, 1, 7, 3, model.StatusCancelled)
		assert.NoError(t, err)
		assert.Nil(t, inv.StartDate)
		assert.Nil(t, inv.EndDate)
	})
}

func TestInvoiceService_ChangeStatus_AnyTransitionAllowed(t *testing.T) {
	ctx := context.Background()

	// переходы не ограничены таблицей: Paid -> Created тоже допустим
	_, mi, svc := newInvoiceFixture(model.StatusPaid)
	mi.On("Save", mock.Anything, mock.Anything).Return(nil).Once()

	inv, _, err := svc.ChangeStatus(ctx, 1, 7, 3, model.StatusCreated)
	assert.NoError(t, err)
	assert.Equal(t, model.StatusCreated, inv.Status)
	mi.AssertExpectations(t)
}

func TestInvoiceService_MutabilityGate(t *testing.T) {
	ctx := context.Background()

	locked := []string{model.StatusSent, model.StatusReceived, model.StatusPaid}
	for _, status := range locked {
		t.Run("update locked in "+status, func(t *testing.T) {
			_, _, svc := newInvoiceFixture(status)
			_, _, err := svc.Update(ctx, 1, 7, 3, InvoiceEdit{Title: "New"})
			assert.ErrorIs(t, err, ErrStatusLocked)
		})
		t.Run("archive locked in "+status, func(t *testing.T) {
			_, _, svc := newInvoiceFixture(status)
			_, _, err := svc.Archive(ctx, 1, 7, 3)
			assert.ErrorIs(t, err, ErrStatusLocked)
		})
		t.Run("delete locked in "+status, func(t *testing.T) {
			_, _, svc := newInvoiceFixture(status)
			_, _, err := svc.Delete(ctx, 1, 7, 3)
			assert.ErrorIs(t, err, ErrStatusLocked)
		})
	}

	open := []string{model.StatusCreated, model.StatusCancelled, model.StatusRejected}
	for _, status := range open {
		t.Run("update allowed in "+status, func(t *testing.T) {
			_, mi, svc := newInvoiceFixture(status)
			mi.On("Save", mock.Anything, mock.Anything).Return(nil).Once()

			inv, _, err := svc.Update(ctx, 1, 7, 3, InvoiceEdit{Title: "New"})
			assert.NoError(t, err)
			assert.Equal(t, "New", inv.Title)
		})
	}
}

func TestInvoiceService_Update_PartialEdit(t *testing.T) {
	ctx := context.Background()
	_, mi, svc := newInvoiceFixture(model.StatusCreated)
	mi.On("Save", mock.Anything, mock.Anything).Return(nil).Once()

	// пустой Title не затирает существующий
	inv, _, err := svc.Update(ctx, 1, 7, 3, InvoiceEdit{Comment: "updated"})
	assert.NoError(t, err)
	assert.Equal(t, "Work", inv.Title)
	assert.Equal(t, "updated", inv.Comment)
}

func TestInvoiceService_Archive(t *testing.T) {
	ctx := context.Background()
	_, mi, svc := newInvoiceFixture(model.StatusCreated)
	mi.On("Save", mock.Anything, mock.MatchedBy(func(inv *model.Invoice) bool {
		return inv.IsDeleted && inv.DeletedAt != nil
	})).Return(nil).Once()

	inv, _, err := svc.Archive(ctx, 1, 7, 3)
	assert.NoError(t, err)
	assert.True(t, inv.IsDeleted)
	mi.AssertExpectations(t)
}

func TestInvoiceService_Export(t *testing.T) {
	ctx := context.Background()

	t.Run("empty invoice rejected", func(t *testing.T) {
		_, _, svc := newInvoiceFixture(model.StatusCreated)
		inv, c, err := svc.Export(ctx, 1, 7, 3)
		assert.Nil(t, inv)
		assert.Nil(t, c)
		assert.ErrorIs(t, err, ErrEmptyInvoice)
	})

	t.Run("ok with rows", func(t *testing.T) {
		mc := new(mockCustomerRepo)
		mi := new(mockInvoiceRepo)
		svc := NewInvoiceService(mc, mi)

		customerID := int64(7)
		mc.On("GetOwned", mock.Anything, int64(1), int64(7)).
			Return(&model.Customer{ID: 7, Name: "Acme"}, nil).Once()
		mi.On("GetOwned", mock.Anything, int64(7), int64(3)).
			Return(&model.Invoice{
				ID: 3, CustomerID: &customerID, Title: "Work", Status: model.StatusSent,
				TotalSum: 10,
				Rows:     []model.InvoiceRow{{ID: 1, Description: "w", Quantity: 2, Amount: 5, Sum: 10}},
			}, nil).Once()

		inv, c, err := svc.Export(ctx, 1, 7, 3)
		assert.NoError(t, err)
		assert.Len(t, inv.Rows, 1)
		assert.Equal(t, "Acme", c.Name)
	})
}
