package handlers

import (
	"InvoiceAPI/internal/service"
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// RowHandler обрабатывает строки счёта. Ответ всегда содержит строку и
// счёт с уже пересчитанным TotalSum, чтобы клиенту не нужен был второй
// запрос.
type RowHandler struct {
	RowService *service.RowService
	Logger     *zap.SugaredLogger
	Validate   *validator.Validate
}

func NewRowHandler(rowService *service.RowService, logger *zap.SugaredLogger, validate *validator.Validate) *RowHandler {
	return &RowHandler{RowService: rowService, Logger: logger, Validate: validate}
}

type RowCreateRequest struct {
	Description string  `json:"description" validate:"required"`
	Quantity    float64 `json:"quantity" validate:"required,gt=0"`
	Amount      float64 `json:"amount" validate:"required,gt=0"`
}

type RowResponse struct {
	Row     RowDTO     `json:"row"`
	Invoice InvoiceDTO `json:"invoice"`
}

// Add добавляет строку в счёт.
func (h *RowHandler) Add(w http.ResponseWriter, r *http.Request) {
	c, ok := caller(w, r)
	if !ok {
		return
	}
	customerID, ok := pathID(w, r, "customerID")
	if !ok {
		return
	}
	invoiceID, ok := pathID(w, r, "invoiceID")
	if !ok {
		return
	}

	var req RowCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if err := h.Validate.Struct(req); err != nil {
		h.Logger.Warnw("Add row: validation failed", "error", err)
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	row, inv, owner, err := h.RowService.Add(r.Context(), c.ID, customerID, invoiceID, req.Description, req.Quantity, req.Amount)
	if err != nil {
		h.Logger.Warnw("Add row: failed", "user_id", c.ID, "invoice_id", invoiceID, "error", err)
		writeServiceError(w, err)
		return
	}

	h.Logger.Infow("row added", "invoice_id", inv.ID, "row_id", row.ID, "sum", row.Sum)
	writeJSON(w, http.StatusCreated, RowResponse{
		Row:     newRowDTO(row),
		Invoice: newInvoiceDTO(inv, owner),
	})
}

// Remove удаляет строку счёта.
func (h *RowHandler) Remove(w http.ResponseWriter, r *http.Request) {
	c, ok := caller(w, r)
	if !ok {
		return
	}
	customerID, ok := pathID(w, r, "customerID")
	if !ok {
		return
	}
	invoiceID, ok := pathID(w, r, "invoiceID")
	if !ok {
		return
	}
	rowID, ok := pathID(w, r, "rowID")
	if !ok {
		return
	}

	row, inv, owner, err := h.RowService.Remove(r.Context(), c.ID, customerID, invoiceID, rowID)
	if err != nil {
		h.Logger.Warnw("Remove row: failed", "user_id", c.ID, "invoice_id", invoiceID, "row_id", rowID, "error", err)
		writeServiceError(w, err)
		return
	}

	h.Logger.Infow("row removed", "invoice_id", inv.ID, "row_id", row.ID, "sum", row.Sum)
	writeJSON(w, http.StatusOK, RowResponse{
		Row:     newRowDTO(row),
		Invoice: newInvoiceDTO(inv, owner),
	})
}
