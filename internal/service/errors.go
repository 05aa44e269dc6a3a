package service

import "errors"

// Ошибки доменного уровня. Хендлеры сопоставляют их с HTTP-кодами
// через errors.Is.
var (
	// ErrNotFound — сущность отсутствует либо не принадлежит цепочке
	// владения вызывающего. Случаи намеренно неразличимы.
	ErrNotFound = errors.New("not found")

	// ErrConflict — нарушено правило уникальности (имя пользователя,
	// email живого клиента).
	ErrConflict = errors.New("already exists")

	// ErrStatusLocked — статус счёта запрещает редактирование,
	// удаление или архивирование.
	ErrStatusLocked = errors.New("invoice status does not allow this operation")

	// ErrEmptyInvoice — счёт без строк нельзя выгрузить в PDF.
	ErrEmptyInvoice = errors.New("invoice has no rows")

	// ErrBadCredentials — неверная пара логин/пароль.
	ErrBadCredentials = errors.New("bad credentials")
)
