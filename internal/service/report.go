package service

import (
	"InvoiceAPI/internal/model"
	"InvoiceAPI/internal/repo"
	"context"
)

// ReportService отдаёт сводку по живым клиентам пользователя
// с их живыми счетами и строками.
type ReportService struct {
	customers repo.CustomerRepository
}

func NewReportService(customers repo.CustomerRepository) *ReportService {
	return &ReportService{customers: customers}
}

// Customers возвращает отчётный список. Пустой список — ErrNotFound,
// как в остальных операциях чтения.
func (s *ReportService) Customers(ctx context.Context, userID int64) ([]model.Customer, error) {
	items, err := s.customers.ListWithInvoices(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrNotFound
	}
	return items, nil
}
