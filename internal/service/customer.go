package service

import (
	"InvoiceAPI/internal/model"
	"InvoiceAPI/internal/repo"
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// PageMeta — метаданные страницы листинга.
type PageMeta struct {
	Page       int
	PageSize   int
	TotalPages int
}

func newPageMeta(page, pageSize int, total int64) PageMeta {
	return PageMeta{
		Page:       page,
		PageSize:   pageSize,
		TotalPages: int((total + int64(pageSize) - 1) / int64(pageSize)),
	}
}

// CustomerService инкапсулирует работу с клиентами пользователя.
// Все операции ограничены владельцем: чужой клиент — ErrNotFound.
type CustomerService struct {
	customers repo.CustomerRepository
}

func NewCustomerService(customers repo.CustomerRepository) *CustomerService {
	return &CustomerService{customers: customers}
}

// CustomerInput — данные создания клиента.
type CustomerInput struct {
	Name        string
	Address     string
	Email       string
	PhoneNumber string
	Password    string
}

// CustomerEdit — частичное редактирование: пустые поля не трогаются.
type CustomerEdit struct {
	Name        string
	Address     string
	Email       string
	PhoneNumber string
}

// Create создаёт клиента. Email должен быть свободен среди живых клиентов
// этого пользователя; архивированные не учитываются.
func (s *CustomerService) Create(ctx context.Context, userID int64, in CustomerInput) (*model.Customer, error) {
	if _, err := s.customers.FindLiveByEmail(ctx, userID, in.Email); err == nil {
		return nil, ErrConflict
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// легаси-поле, хешируется для совместимости со старой схемой
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	c := &model.Customer{
		UserID:      userID,
		Name:        in.Name,
		Address:     in.Address,
		Email:       in.Email,
		Password:    string(hash),
		PhoneNumber: in.PhoneNumber,
	}
	if err := s.customers.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Get возвращает живого клиента пользователя или ErrNotFound.
func (s *CustomerService) Get(ctx context.Context, userID, customerID int64) (*model.Customer, error) {
	c, err := s.customers.GetOwned(ctx, userID, customerID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Update частично обновляет клиента.
func (s *CustomerService) Update(ctx context.Context, userID, customerID int64, edit CustomerEdit) (*model.Customer, error) {
	c, err := s.Get(ctx, userID, customerID)
	if err != nil {
		return nil, err
	}

	if edit.Name != "" {
		c.Name = edit.Name
	}
	if edit.Address != "" {
		c.Address = edit.Address
	}
	if edit.Email != "" {
		c.Email = edit.Email
	}
	if edit.PhoneNumber != "" {
		c.PhoneNumber = edit.PhoneNumber
	}
	c.UpdatedAt = time.Now()

	if err := s.customers.Save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Archive мягко удаляет клиента: флаг и отметка времени, запись остаётся.
func (s *CustomerService) Archive(ctx context.Context, userID, customerID int64) (*model.Customer, error) {
	c, err := s.Get(ctx, userID, customerID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	c.IsDeleted = true
	c.DeletedAt = &now
	c.UpdatedAt = now

	if err := s.customers.Save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Delete жёстко удаляет клиента со счетами и строками.
func (s *CustomerService) Delete(ctx context.Context, userID, customerID int64) (*model.Customer, error) {
	c, err := s.Get(ctx, userID, customerID)
	if err != nil {
		return nil, err
	}
	if err := s.customers.Delete(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// List возвращает страницу живых клиентов пользователя с метаданными.
// Страница за пределами диапазона — пустой список с корректной метой.
func (s *CustomerService) List(ctx context.Context, userID int64, f repo.CustomerFilter, opts repo.ListOptions) ([]model.Customer, PageMeta, error) {
	items, total, err := s.customers.List(ctx, userID, f, opts)
	if err != nil {
		return nil, PageMeta{}, err
	}
	return items, newPageMeta(opts.Page, opts.PageSize, total), nil
}
