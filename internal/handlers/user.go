package handlers

import (
	"InvoiceAPI/internal/config"
	"InvoiceAPI/internal/middleware"
	"InvoiceAPI/internal/model"
	"InvoiceAPI/internal/service"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// UserHandler обрабатывает регистрацию, вход и профиль пользователя.
type UserHandler struct {
	UserService *service.UserService
	Logger      *zap.SugaredLogger
	Config      *config.Config
	Validate    *validator.Validate
}

func NewUserHandler(userService *service.UserService, logger *zap.SugaredLogger, cfg *config.Config, validate *validator.Validate) *UserHandler {
	return &UserHandler{UserService: userService, Logger: logger, Config: cfg, Validate: validate}
}

type RegisterRequest struct {
	Name        string `json:"name" validate:"required"`
	Address     string `json:"address"`
	Email       string `json:"email" validate:"required,email"`
	PhoneNumber string `json:"phone_number"`
	Password    string `json:"password" validate:"required,min=6"`
}

type LoginRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UserEditRequest struct {
	Name        string `json:"name"`
	Address     string `json:"address"`
	Email       string `json:"email" validate:"omitempty,email"`
	PhoneNumber string `json:"phone_number"`
}

type ChangePasswordRequest struct {
	NewPassword string `json:"new_password" validate:"required,min=6"`
}

type UserDTO struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Address     string    `json:"address"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phone_number"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func newUserDTO(u *model.User) UserDTO {
	return UserDTO{
		ID:          u.ID,
		Name:        u.Name,
		Address:     u.Address,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

// Register регистрация пользователя
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if err := h.Validate.Struct(req); err != nil {
		h.Logger.Warnw("Register: validation failed", "error", err)
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	u, err := h.UserService.Register(r.Context(), service.UserInput{
		Name:        req.Name,
		Address:     req.Address,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Password:    req.Password,
	})
	if err != nil {
		h.Logger.Warnw("Register: failed", "name", req.Name, "error", err)
		writeServiceError(w, err)
		return
	}

	h.Logger.Infow("user registered", "user_id", u.ID)
	writeJSON(w, http.StatusCreated, newUserDTO(u))
}

// Login выдаёт токен по имени, email и паролю. Токен сохраняется
// на записи пользователя как токен текущей сессии.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if err := h.Validate.Struct(req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	u, err := h.UserService.Login(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		h.Logger.Warnw("Login: failed", "name", req.Name, "error", err)
		writeServiceError(w, err)
		return
	}

	token, err := middleware.NewToken(u.ID, u.Email, h.Config.AuthSecret, h.Config.TokenTTL())
	if err != nil {
		h.Logger.Errorw("Login: token issue failed", "user_id", u.ID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if err := h.UserService.StoreToken(r.Context(), u, token); err != nil {
		h.Logger.Errorw("Login: token store failed", "user_id", u.ID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	h.Logger.Infow("user logged in", "user_id", u.ID)
	writeJSON(w, http.StatusOK, map[string]string{"access_token": token})
}

// Info профиль текущего пользователя
func (h *UserHandler) Info(w http.ResponseWriter, r *http.Request) {
	c, ok := caller(w, r)
	if !ok {
		return
	}

	u, err := h.UserService.GetByID(r.Context(), c.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newUserDTO(u))
}

// EditProfile частично обновляет профиль: пустые поля не трогаются.
func (h *UserHandler) EditProfile(w http.ResponseWriter, r *http.Request) {
	c, ok := caller(w, r)
	if !ok {
		return
	}

	var req UserEditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if err := h.Validate.Struct(req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	u, err := h.UserService.UpdateProfile(r.Context(), c.ID, service.UserEdit{
		Name:        req.Name,
		Address:     req.Address,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		h.Logger.Warnw("EditProfile: failed", "user_id", c.ID, "error", err)
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newUserDTO(u))
}

// ChangePassword смена пароля текущего пользователя
func (h *UserHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	c, ok := caller(w, r)
	if !ok {
		return
	}

	var req ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if err := h.Validate.Struct(req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	if err := h.UserService.ChangePassword(r.Context(), c.ID, req.NewPassword); err != nil {
		h.Logger.Warnw("ChangePassword: failed", "user_id", c.ID, "error", err)
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// DeleteProfile удаляет пользователя вместе со всеми его данными.
func (h *UserHandler) DeleteProfile(w http.ResponseWriter, r *http.Request) {
	c, ok := caller(w, r)
	if !ok {
		return
	}

	if err := h.UserService.Delete(r.Context(), c.ID); err != nil {
		h.Logger.Errorw("DeleteProfile: failed", "user_id", c.ID, "error", err)
		writeServiceError(w, err)
		return
	}
	h.Logger.Infow("user deleted", "user_id", c.ID)
	w.WriteHeader(http.StatusOK)
}
