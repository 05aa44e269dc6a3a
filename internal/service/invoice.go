package service

import (
	"InvoiceAPI/internal/model"
	"InvoiceAPI/internal/repo"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

// InvoiceService инкапсулирует жизненный цикл счёта. Каждая операция сначала
// проходит цепочку владения user -> customer -> invoice; обрыв на любом
// звене — ErrNotFound.
type InvoiceService struct {
	customers repo.CustomerRepository
	invoices  repo.InvoiceRepository
}

func NewInvoiceService(customers repo.CustomerRepository, invoices repo.InvoiceRepository) *InvoiceService {
	return &InvoiceService{customers: customers, invoices: invoices}
}

// InvoiceEdit — частичное редактирование: пустые поля не трогаются.
type InvoiceEdit struct {
	Title   string
	Comment string
}

func (s *InvoiceService) customer(ctx context.Context, userID, customerID int64) (*model.Customer, error) {
	c, err := s.customers.GetOwned(ctx, userID, customerID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *InvoiceService) invoice(ctx context.Context, customerID, invoiceID int64) (*model.Invoice, error) {
	inv, err := s.invoices.GetOwned(ctx, customerID, invoiceID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return inv, nil
}

// Create создаёт счёт в статусе Created.
func (s *InvoiceService) Create(ctx context.Context, userID, customerID int64, title, comment string) (*model.Invoice, *model.Customer, error) {
	c, err := s.customer(ctx, userID, customerID)
	if err != nil {
		return nil, nil, err
	}

	inv := &model.Invoice{
		CustomerID: &c.ID,
		Title:      title,
		Comment:    comment,
		Status:     model.StatusCreated,
	}
	if err := s.invoices.Create(ctx, inv); err != nil {
		return nil, nil, err
	}
	return inv, c, nil
}

// Get возвращает живой счёт клиента вместе со строками.
func (s *InvoiceService) Get(ctx context.Context, userID, customerID, invoiceID int64) (*model.Invoice, *model.Customer, error) {
	c, err := s.customer(ctx, userID, customerID)
	if err != nil {
		return nil, nil, err
	}
	inv, err := s.invoice(ctx, customerID, invoiceID)
	if err != nil {
		return nil, nil, err
	}
	return inv, c, nil
}

// Update частично редактирует счёт. Статусы Sent/Received/Paid
// запрещают редактирование.
func (s *InvoiceService) Update(ctx context.Context, userID, customerID, invoiceID int64, edit InvoiceEdit) (*model.Invoice, *model.Customer, error) {
	inv, c, err := s.Get(ctx, userID, customerID, invoiceID)
	if err != nil {
		return nil, nil, err
	}
	if !inv.IsMutable() {
		return nil, nil, ErrStatusLocked
	}

	if edit.Title != "" {
		inv.Title = edit.Title
	}
	if edit.Comment != "" {
		inv.Comment = edit.Comment
	}
	inv.UpdatedAt = time.Now()

	if err := s.invoices.Save(ctx, inv); err != nil {
		return nil, nil, err
	}
	return inv, c, nil
}

// ChangeStatus устанавливает любой запрошенный статус без таблицы переходов
// (проверок «откуда куда» нет). Received проставляет StartDate, Paid —
// EndDate; UpdatedAt обновляется всегда. Правилом изменяемости смена
// статуса не ограничена.
func (s *InvoiceService) ChangeStatus(ctx context.Context, userID, customerID, invoiceID int64, status string) (*model.Invoice, *model.Customer, error) {
	inv, c, err := s.Get(ctx, userID, customerID, invoiceID)
	if err != nil {
		return nil, nil, err
	}

	now := time.Now()
	if status != "" {
		inv.Status = status
		switch status {
		case model.StatusReceived:
			inv.StartDate = &now
		case model.StatusPaid:
			inv.EndDate = &now
		}
	}
	inv.UpdatedAt = now

	if err := s.invoices.Save(ctx, inv); err != nil {
		return nil, nil, err
	}
	return inv, c, nil
}

// Archive мягко удаляет счёт; он остаётся доступен только прямым запросом
// для истории. Статусы Sent/Received/Paid запрещают архивирование.
func (s *InvoiceService) Archive(ctx context.Context, userID, customerID, invoiceID int64) (*model.Invoice, *model.Customer, error) {
	inv, c, err := s.Get(ctx, userID, customerID, invoiceID)
	if err != nil {
		return nil, nil, err
	}
	if !inv.IsMutable() {
		return nil, nil, ErrStatusLocked
	}

	now := time.Now()
	inv.IsDeleted = true
	inv.DeletedAt = &now
	inv.UpdatedAt = now

	if err := s.invoices.Save(ctx, inv); err != nil {
		return nil, nil, err
	}
	return inv, c, nil
}

// Delete жёстко удаляет счёт со строками. Статусы Sent/Received/Paid
// запрещают удаление.
func (s *InvoiceService) Delete(ctx context.Context, userID, customerID, invoiceID int64) (*model.Invoice, *model.Customer, error) {
	inv, c, err := s.Get(ctx, userID, customerID, invoiceID)
	if err != nil {
		return nil, nil, err
	}
	if !inv.IsMutable() {
		return nil, nil, ErrStatusLocked
	}
	if err := s.invoices.Delete(ctx, inv); err != nil {
		return nil, nil, err
	}
	return inv, c, nil
}

// List возвращает страницу живых счетов клиента с метаданными.
func (s *InvoiceService) List(ctx context.Context, userID, customerID int64, f repo.InvoiceFilter, opts repo.ListOptions) ([]model.Invoice, *model.Customer, PageMeta, error) {
	c, err := s.customer(ctx, userID, customerID)
	if err != nil {
		return nil, nil, PageMeta{}, err
	}
	items, total, err := s.invoices.List(ctx, customerID, f, opts)
	if err != nil {
		return nil, nil, PageMeta{}, err
	}
	return items, c, newPageMeta(opts.Page, opts.PageSize, total), nil
}

// Export возвращает счёт для выгрузки в PDF. Счёт без строк выгрузить
// нельзя — ErrEmptyInvoice.
func (s *InvoiceService) Export(ctx context.Context, userID, customerID, invoiceID int64) (*model.Invoice, *model.Customer, error) {
	inv, c, err := s.Get(ctx, userID, customerID, invoiceID)
	if err != nil {
		return nil, nil, err
	}
	if len(inv.Rows) == 0 {
		return nil, nil, ErrEmptyInvoice
	}
	return inv, c, nil
}
