package handlers

import (
	"InvoiceAPI/internal/service"
	"net/http"

	"go.uber.org/zap"
)

// ReportHandler отдаёт сводный отчёт по клиентам с вложенными счетами.
type ReportHandler struct {
	ReportService *service.ReportService
	Logger        *zap.SugaredLogger
}

func NewReportHandler(reportService *service.ReportService, logger *zap.SugaredLogger) *ReportHandler {
	return &ReportHandler{ReportService: reportService, Logger: logger}
}

type CustomerReportDTO struct {
	Customer CustomerDTO  `json:"customer"`
	Invoices []InvoiceDTO `json:"invoices"`
}

// Customers возвращает живых клиентов пользователя со всеми их живыми
// счетами и строками.
func (h *ReportHandler) Customers(w http.ResponseWriter, r *http.Request) {
	c, ok := caller(w, r)
	if !ok {
		return
	}

	items, err := h.ReportService.Customers(r.Context(), c.ID)
	if err != nil {
		h.Logger.Warnw("Customers report: failed", "user_id", c.ID, "error", err)
		writeServiceError(w, err)
		return
	}

	report := make([]CustomerReportDTO, 0, len(items))
	for i := range items {
		cust := &items[i]
		entry := CustomerReportDTO{
			Customer: newCustomerDTO(cust),
			Invoices: make([]InvoiceDTO, 0, len(cust.Invoices)),
		}
		for j := range cust.Invoices {
			entry.Invoices = append(entry.Invoices, newInvoiceDTO(&cust.Invoices[j], cust))
		}
		report = append(report, entry)
	}
	writeJSON(w, http.StatusOK, report)
}
