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

// UserService инкапсулирует регистрацию, аутентификацию и работу с профилем.
type UserService struct {
	users repo.UserRepository
}

func NewUserService(users repo.UserRepository) *UserService {
	return &UserService{users: users}
}

// UserInput — данные регистрации.
type UserInput struct {
	Name        string
	Address     string
	Email       string
	PhoneNumber string
	Password    string
}

// UserEdit — частичное редактирование профиля: пустые поля не трогаются.
type UserEdit struct {
	Name        string
	Address     string
	Email       string
	PhoneNumber string
}

// Register создаёт пользователя. Имя должно быть свободно.
func (s *UserService) Register(ctx context.Context, in UserInput) (*model.User, error) {
	if _, err := s.users.GetByName(ctx, in.Name); err == nil {
		return nil, ErrConflict
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &model.User{
		Name:        in.Name,
		Address:     in.Address,
		Email:       in.Email,
		Password:    string(hash),
		PhoneNumber: in.PhoneNumber,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Login проверяет имя, email и пароль. Несуществующее имя — ErrNotFound,
// неверный email или пароль — ErrBadCredentials.
func (s *UserService) Login(ctx context.Context, name, email, password string) (*model.User, error) {
	u, err := s.users.GetByName(ctx, name)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if u.Email != email {
		return nil, ErrBadCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
		return nil, ErrBadCredentials
	}
	return u, nil
}

// StoreToken сохраняет токен текущей сессии на записи пользователя.
func (s *UserService) StoreToken(ctx context.Context, u *model.User, token string) error {
	u.Token = token
	return s.users.Save(ctx, u)
}

// GetByID возвращает пользователя или ErrNotFound.
func (s *UserService) GetByID(ctx context.Context, id int64) (*model.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

// UpdateProfile частично обновляет профиль. Новое имя должно быть свободно.
func (s *UserService) UpdateProfile(ctx context.Context, id int64, edit UserEdit) (*model.User, error) {
	u, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if edit.Name != "" && edit.Name != u.Name {
		if _, err := s.users.GetByName(ctx, edit.Name); err == nil {
			return nil, ErrConflict
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		u.Name = edit.Name
	}
	if edit.Address != "" {
		u.Address = edit.Address
	}
	if edit.Email != "" {
		u.Email = edit.Email
	}
	if edit.PhoneNumber != "" {
		u.PhoneNumber = edit.PhoneNumber
	}
	u.UpdatedAt = time.Now()

	if err := s.users.Save(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// ChangePassword перехеширует и сохраняет новый пароль.
func (s *UserService) ChangePassword(ctx context.Context, id int64, newPassword string) error {
	u, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hash)
	u.UpdatedAt = time.Now()
	return s.users.Save(ctx, u)
}

// Delete жёстко удаляет пользователя со всеми клиентами, счетами и строками.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	u, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	return s.users.Delete(ctx, u)
}
