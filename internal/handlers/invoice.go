package handlers

import (
	"InvoiceAPI/internal/model"
	"InvoiceAPI/internal/pdf"
	"InvoiceAPI/internal/repo"
	"InvoiceAPI/internal/service"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// InvoiceHandler обрабатывает жизненный цикл счёта и выгрузку PDF.
type InvoiceHandler struct {
	InvoiceService *service.InvoiceService
	Logger         *zap.SugaredLogger
	Validate       *validator.Validate
}

func NewInvoiceHandler(invoiceService *service.InvoiceService, logger *zap.SugaredLogger, validate *validator.Validate) *InvoiceHandler {
	return &InvoiceHandler{InvoiceService: invoiceService, Logger: logger, Validate: validate}
}

type InvoiceCreateRequest struct {
	Title   string `json:"title" validate:"required"`
	Comment string `json:"comment"`
}

type InvoiceEditRequest struct {
	Title   string `json:"title"`
	Comment string `json:"comment"`
}

type InvoiceStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=Created Sent Received Paid Cancelled Rejected"`
}

type RowDTO struct {
	ID          int64   `json:"id"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Amount      float64 `json:"amount"`
	Sum         float64 `json:"sum"`
}

func newRowDTO(r *model.InvoiceRow) RowDTO {
	return RowDTO{
		ID:          r.ID,
		Description: r.Description,
		Quantity:    r.Quantity,
		Amount:      r.Amount,
		Sum:         r.Sum,
	}
}

type InvoiceDTO struct {
	ID            int64      `json:"id"`
	Title         string     `json:"title"`
	Comment       string     `json:"comment"`
	Status        string     `json:"status"`
	TotalSum      float64    `json:"total_sum"`
	CustomerName  string     `json:"customer_name"`
	CustomerEmail string     `json:"customer_email"`
	StartDate     *time.Time `json:"start_date"`
	EndDate       *time.Time `json:"end_date"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	Rows          []RowDTO   `json:"rows"`
}

func newInvoiceDTO(inv *model.Invoice, c *model.Customer) InvoiceDTO {
	dto := InvoiceDTO{
		ID:            inv.ID,
		Title:         inv.Title,
		Comment:       inv.Comment,
		Status:        inv.Status,
		TotalSum:      inv.TotalSum,
		CustomerName:  c.Name,
		CustomerEmail: c.Email,
		StartDate:     inv.StartDate,
		EndDate:       inv.EndDate,
		CreatedAt:     inv.CreatedAt,
		UpdatedAt:     inv.UpdatedAt,
		Rows:          make([]RowDTO, 0, len(inv.Rows)),
	}
	for i := range inv.Rows {
		dto.Rows = append(dto.Rows, newRowDTO(&inv.Rows[i]))
	}
	return dto
}

type InvoiceListResponse struct {
	Items []InvoiceDTO `json:"items"`
	Meta  pageMetaDTO  `json:"meta"`
}

// Create создаёт счёт клиента в статусе Created.
func (h *InvoiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	c, ok := caller(w, r)
	if !ok {
		return
	}
	customerID, ok := pathID(w, r, "customerID")
	if !ok {
		return
	}

	var req InvoiceCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if err := h.Validate.Struct(req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	inv, owner, err := h.InvoiceService.Create(r.Context(), c.ID, customerID, req.Title, req.Comment)
	if err != nil {
		h.Logger.Warnw("Create invoice: failed", "user_id", c.ID, "customer_id", customerID, "error", err)
		writeServiceError(w, err)
		return
	}
	h.Logger.Infow("invoice created", "user_id", c.ID, "invoice_id", inv.ID)
	writeJSON(w, http.StatusCreated, newInvoiceDTO(inv, owner))
}

// Get возвращает живой счёт со строками.
func (h *InvoiceHandler) Get(w http.ResponseWriter, r *http.Request) {
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

	inv, owner, err := h.InvoiceService.Get(r.Context(), c.ID, customerID, invoiceID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newInvoiceDTO(inv, owner))
}

// Edit частично редактирует заголовок и комментарий счёта.
func (h *InvoiceHandler) Edit(w http.ResponseWriter, r *http.Request) {
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

	var req InvoiceEditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	inv, owner, err := h.InvoiceService.Update(r.Context(), c.ID, customerID, invoiceID, service.InvoiceEdit{
		Title:   req.Title,
		Comment: req.Comment,
	})
	if err != nil {
		h.Logger.Warnw("Edit invoice: failed", "user_id", c.ID, "invoice_id", invoiceID, "error", err)
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newInvoiceDTO(inv, owner))
}

// ChangeStatus устанавливает запрошенный статус счёта.
func (h *InvoiceHandler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
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

	var req InvoiceStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if err := h.Validate.Struct(req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	inv, owner, err := h.InvoiceService.ChangeStatus(r.Context(), c.ID, customerID, invoiceID, req.Status)
	if err != nil {
		h.Logger.Warnw("ChangeStatus: failed", "user_id", c.ID, "invoice_id", invoiceID, "error", err)
		writeServiceError(w, err)
		return
	}
	h.Logger.Infow("invoice status changed", "invoice_id", inv.ID, "status", inv.Status)
	writeJSON(w, http.StatusOK, newInvoiceDTO(inv, owner))
}

// Archive мягко удаляет счёт.
func (h *InvoiceHandler) Archive(w http.ResponseWriter, r *http.Request) {
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

	inv, owner, err := h.InvoiceService.Archive(r.Context(), c.ID, customerID, invoiceID)
	if err != nil {
		h.Logger.Warnw("Archive invoice: failed", "user_id", c.ID, "invoice_id", invoiceID, "error", err)
		writeServiceError(w, err)
		return
	}
	h.Logger.Infow("invoice archived", "invoice_id", inv.ID)
	writeJSON(w, http.StatusOK, newInvoiceDTO(inv, owner))
}

// Delete жёстко удаляет счёт со строками.
func (h *InvoiceHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

	inv, owner, err := h.InvoiceService.Delete(r.Context(), c.ID, customerID, invoiceID)
	if err != nil {
		h.Logger.Warnw("Delete invoice: failed", "user_id", c.ID, "invoice_id", invoiceID, "error", err)
		writeServiceError(w, err)
		return
	}
	h.Logger.Infow("invoice deleted", "invoice_id", inv.ID)
	writeJSON(w, http.StatusOK, newInvoiceDTO(inv, owner))
}

// List возвращает страницу живых счетов клиента с фильтром SearchByTitle,
// сортировкой model/type и нарезкой page/pageSize.
func (h *InvoiceHandler) List(w http.ResponseWriter, r *http.Request) {
	c, ok := caller(w, r)
	if !ok {
		return
	}
	customerID, ok := pathID(w, r, "customerID")
	if !ok {
		return
	}
	opts, ok := listOptions(w, r)
	if !ok {
		return
	}

	filter := repo.InvoiceFilter{Title: r.URL.Query().Get("SearchByTitle")}

	items, owner, meta, err := h.InvoiceService.List(r.Context(), c.ID, customerID, filter, opts)
	if err != nil {
		h.Logger.Errorw("List invoices: failed", "user_id", c.ID, "customer_id", customerID, "error", err)
		writeServiceError(w, err)
		return
	}

	resp := InvoiceListResponse{
		Items: make([]InvoiceDTO, 0, len(items)),
		Meta:  newPageMetaDTO(meta),
	}
	for i := range items {
		resp.Items = append(resp.Items, newInvoiceDTO(&items[i], owner))
	}
	writeJSON(w, http.StatusOK, resp)
}

// Download выгружает печатную форму счёта в PDF.
func (h *InvoiceHandler) Download(w http.ResponseWriter, r *http.Request) {
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

	inv, owner, err := h.InvoiceService.Export(r.Context(), c.ID, customerID, invoiceID)
	if err != nil {
		h.Logger.Warnw("Download invoice: failed", "user_id", c.ID, "invoice_id", invoiceID, "error", err)
		writeServiceError(w, err)
		return
	}

	data := pdf.InvoiceData{
		InvoiceID:     inv.ID,
		Title:         inv.Title,
		Comment:       inv.Comment,
		Status:        inv.Status,
		CustomerName:  owner.Name,
		CustomerEmail: owner.Email,
		TotalSum:      inv.TotalSum,
		StartDate:     inv.StartDate,
		EndDate:       inv.EndDate,
		CreatedAt:     inv.CreatedAt,
		Rows:          make([]pdf.RowData, 0, len(inv.Rows)),
	}
	for _, row := range inv.Rows {
		data.Rows = append(data.Rows, pdf.RowData{
			Description: row.Description,
			Quantity:    row.Quantity,
			Amount:      row.Amount,
			Sum:         row.Sum,
		})
	}

	doc, err := pdf.Render(data)
	if err != nil {
		h.Logger.Errorw("Download invoice: render failed", "invoice_id", inv.ID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=Invoice_%d.pdf", inv.ID))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(doc); err != nil {
		h.Logger.Errorw("Download invoice: write failed", "invoice_id", inv.ID, "error", err)
	}
}
