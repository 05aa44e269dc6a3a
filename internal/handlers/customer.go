package handlers

import (
	"InvoiceAPI/internal/model"
	"InvoiceAPI/internal/repo"
	"InvoiceAPI/internal/service"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// CustomerHandler обрабатывает CRUD и листинг клиентов.
type CustomerHandler struct {
	CustomerService *service.CustomerService
	Logger          *zap.SugaredLogger
	Validate        *validator.Validate
}

func NewCustomerHandler(customerService *service.CustomerService, logger *zap.SugaredLogger, validate *validator.Validate) *CustomerHandler {
	return &CustomerHandler{CustomerService: customerService, Logger: logger, Validate: validate}
}

type CustomerCreateRequest struct {
	Name        string `json:"name" validate:"required"`
	Address     string `json:"address"`
	Email       string `json:"email" validate:"required,email"`
	PhoneNumber string `json:"phone_number"`
	Password    string `json:"password" validate:"required"`
}

type CustomerEditRequest struct {
	Name        string `json:"name"`
	Address     string `json:"address"`
	Email       string `json:"email" validate:"omitempty,email"`
	PhoneNumber string `json:"phone_number"`
}

type CustomerDTO struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Address     string    `json:"address"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phone_number"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func newCustomerDTO(c *model.Customer) CustomerDTO {
	return CustomerDTO{
		ID:          c.ID,
		Name:        c.Name,
		Address:     c.Address,
		Email:       c.Email,
		PhoneNumber: c.PhoneNumber,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

type CustomerListResponse struct {
	Items []CustomerDTO `json:"items"`
	Meta  pageMetaDTO   `json:"meta"`
}

// Create создаёт клиента текущего пользователя.
func (h *CustomerHandler) Create(w http.ResponseWriter, r *http.Request) {
	c, ok := caller(w, r)
	if !ok {
		return
	}

	var req CustomerCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if err := h.Validate.Struct(req); err != nil {
		h.Logger.Warnw("Create customer: validation failed", "error", err)
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	created, err := h.CustomerService.Create(r.Context(), c.ID, service.CustomerInput{
		Name:        req.Name,
		Address:     req.Address,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Password:    req.Password,
	})
	if err != nil {
		h.Logger.Warnw("Create customer: failed", "user_id", c.ID, "error", err)
		writeServiceError(w, err)
		return
	}

	h.Logger.Infow("customer created", "user_id", c.ID, "customer_id", created.ID)
	writeJSON(w, http.StatusCreated, newCustomerDTO(created))
}

// Get возвращает живого клиента текущего пользователя.
func (h *CustomerHandler) Get(w http.ResponseWriter, r *http.Request) {
	c, ok := caller(w, r)
	if !ok {
		return
	}
	customerID, ok := pathID(w, r, "customerID")
	if !ok {
		return
	}

	found, err := h.CustomerService.Get(r.Context(), c.ID, customerID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newCustomerDTO(found))
}

// Edit частично обновляет клиента.
func (h *CustomerHandler) Edit(w http.ResponseWriter, r *http.Request) {
	c, ok := caller(w, r)
	if !ok {
		return
	}
	customerID, ok := pathID(w, r, "customerID")
	if !ok {
		return
	}

	var req CustomerEditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if err := h.Validate.Struct(req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	updated, err := h.CustomerService.Update(r.Context(), c.ID, customerID, service.CustomerEdit{
		Name:        req.Name,
		Address:     req.Address,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		h.Logger.Warnw("Edit customer: failed", "user_id", c.ID, "customer_id", customerID, "error", err)
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newCustomerDTO(updated))
}

// Delete жёстко удаляет клиента со счетами и строками.
func (h *CustomerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	c, ok := caller(w, r)
	if !ok {
		return
	}
	customerID, ok := pathID(w, r, "customerID")
	if !ok {
		return
	}

	deleted, err := h.CustomerService.Delete(r.Context(), c.ID, customerID)
	if err != nil {
		h.Logger.Warnw("Delete customer: failed", "user_id", c.ID, "customer_id", customerID, "error", err)
		writeServiceError(w, err)
		return
	}
	h.Logger.Infow("customer deleted", "user_id", c.ID, "customer_id", customerID)
	writeJSON(w, http.StatusOK, newCustomerDTO(deleted))
}

// Archive мягко удаляет клиента.
func (h *CustomerHandler) Archive(w http.ResponseWriter, r *http.Request) {
	c, ok := caller(w, r)
	if !ok {
		return
	}
	customerID, ok := pathID(w, r, "customerID")
	if !ok {
		return
	}

	archived, err := h.CustomerService.Archive(r.Context(), c.ID, customerID)
	if err != nil {
		h.Logger.Warnw("Archive customer: failed", "user_id", c.ID, "customer_id", customerID, "error", err)
		writeServiceError(w, err)
		return
	}
	h.Logger.Infow("customer archived", "user_id", c.ID, "customer_id", customerID)
	writeJSON(w, http.StatusOK, newCustomerDTO(archived))
}

// List возвращает страницу клиентов с фильтрами SearchByName/SearchByAddress,
// сортировкой model/type и нарезкой page/pageSize.
func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	c, ok := caller(w, r)
	if !ok {
		return
	}
	opts, ok := listOptions(w, r)
	if !ok {
		return
	}

	filter := repo.CustomerFilter{
		Name:    r.URL.Query().Get("SearchByName"),
		Address: r.URL.Query().Get("SearchByAddress"),
	}

	items, meta, err := h.CustomerService.List(r.Context(), c.ID, filter, opts)
	if err != nil {
		h.Logger.Errorw("List customers: failed", "user_id", c.ID, "error", err)
		writeServiceError(w, err)
		return
	}

	resp := CustomerListResponse{
		Items: make([]CustomerDTO, 0, len(items)),
		Meta:  newPageMetaDTO(meta),
	}
	for i := range items {
		resp.Items = append(resp.Items, newCustomerDTO(&items[i]))
	}
	writeJSON(w, http.StatusOK, resp)
}
