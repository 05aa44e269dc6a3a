package handlers

import (
	"InvoiceAPI/internal/middleware"
	"InvoiceAPI/internal/repo"
	"InvoiceAPI/internal/service"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeServiceError сопоставляет доменные ошибки сервиса с HTTP-кодами.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	case errors.Is(err, service.ErrConflict):
		http.Error(w, "already exists", http.StatusConflict)
	case errors.Is(err, service.ErrStatusLocked):
		http.Error(w, "invoice status does not allow this operation", http.StatusUnprocessableEntity)
	case errors.Is(err, service.ErrEmptyInvoice):
		http.Error(w, "invoice has no rows", http.StatusUnprocessableEntity)
	case errors.Is(err, service.ErrBadCredentials):
		http.Error(w, "bad credentials", http.StatusUnauthorized)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// caller достаёт вызывающего из контекста; его отсутствие — 401.
func caller(w http.ResponseWriter, r *http.Request) (middleware.Caller, bool) {
	c, ok := middleware.GetCallerFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return middleware.Caller{}, false
	}
	return c, true
}

// pathID разбирает числовой параметр пути. Нечисловой id
// неотличим от несуществующего.
func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "not found", http.StatusNotFound)
		return 0, false
	}
	return id, true
}

// listOptions разбирает page/pageSize/model/type из query-параметров.
// Страница и размер по умолчанию 1 и 10; значения меньше единицы — 400.
func listOptions(w http.ResponseWriter, r *http.Request) (repo.ListOptions, bool) {
	opts := repo.ListOptions{
		Page:     1,
		PageSize: 10,
		SortKey:  r.URL.Query().Get("model"),
		SortDir:  r.URL.Query().Get("type"),
	}

	if raw := r.URL.Query().Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			http.Error(w, "invalid page", http.StatusBadRequest)
			return repo.ListOptions{}, false
		}
		opts.Page = page
	}
	if raw := r.URL.Query().Get("pageSize"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil || size < 1 {
			http.Error(w, "invalid pageSize", http.StatusBadRequest)
			return repo.ListOptions{}, false
		}
		opts.PageSize = size
	}
	return opts, true
}

// pageMetaDTO — метаданные страницы в ответе листинга.
type pageMetaDTO struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalPages int `json:"total_pages"`
}

func newPageMetaDTO(m service.PageMeta) pageMetaDTO {
	return pageMetaDTO{Page: m.Page, PageSize: m.PageSize, TotalPages: m.TotalPages}
}
