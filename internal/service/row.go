package service

import (
	"InvoiceAPI/internal/model"
	"InvoiceAPI/internal/repo"
	"context"
	"errors"

	"gorm.io/gorm"
)

// RowService инкапсулирует леджер строк счёта. Операции над строками
// намеренно не проверяют изменяемость счёта: статусная блокировка действует
// только на edit/delete/archive самого счёта.
type RowService struct {
	customers repo.CustomerRepository
	invoices  repo.InvoiceRepository
	rows      repo.RowRepository
}

func NewRowService(customers repo.CustomerRepository, invoices repo.InvoiceRepository, rows repo.RowRepository) *RowService {
	return &RowService{customers: customers, invoices: invoices, rows: rows}
}

func (s *RowService) guard(ctx context.Context, userID, customerID, invoiceID int64) (*model.Invoice, *model.Customer, error) {
	c, err := s.customers.GetOwned(ctx, userID, customerID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, ErrNotFound
	}
	if err != nil {
		return nil, nil, err
	}
	inv, err := s.invoices.GetOwned(ctx, customerID, invoiceID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, ErrNotFound
	}
	if err != nil {
		return nil, nil, err
	}
	return inv, c, nil
}

// Add создаёт строку с Sum = quantity*amount и в той же транзакции
// увеличивает TotalSum счёта. Возвращает строку и счёт с уже обновлённым
// агрегатом.
func (s *RowService) Add(ctx context.Context, userID, customerID, invoiceID int64, description string, quantity, amount float64) (*model.InvoiceRow, *model.Invoice, *model.Customer, error) {
	inv, c, err := s.guard(ctx, userID, customerID, invoiceID)
	if err != nil {
		return nil, nil, nil, err
	}

	row := &model.InvoiceRow{
		InvoiceID:   inv.ID,
		Description: description,
		Quantity:    quantity,
		Amount:      amount,
		Sum:         quantity * amount,
	}
	if err := s.rows.Add(ctx, row); err != nil {
		return nil, nil, nil, err
	}

	inv.TotalSum += row.Sum
	inv.Rows = append(inv.Rows, *row)
	return row, inv, c, nil
}

// Remove удаляет строку счёта и в той же транзакции уменьшает TotalSum.
func (s *RowService) Remove(ctx context.Context, userID, customerID, invoiceID, rowID int64) (*model.InvoiceRow, *model.Invoice, *model.Customer, error) {
	inv, c, err := s.guard(ctx, userID, customerID, invoiceID)
	if err != nil {
		return nil, nil, nil, err
	}

	row, err := s.rows.GetInInvoice(ctx, invoiceID, rowID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, nil, ErrNotFound
	}
	if err != nil {
		return nil, nil, nil, err
	}

	if err := s.rows.Remove(ctx, row); err != nil {
		return nil, nil, nil, err
	}

	inv.TotalSum -= row.Sum
	kept := inv.Rows[:0]
	for _, r := range inv.Rows {
		if r.ID != row.ID {
			kept = append(kept, r)
		}
	}
	inv.Rows = kept
	return row, inv, c, nil
}
