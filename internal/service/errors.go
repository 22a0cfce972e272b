package service

import "errors"

// Ошибки бизнес-логики. Хэндлеры сопоставляют их с HTTP-статусами через errors.Is.
var (
	// ErrNotFound - запись не существует либо принадлежит другому пользователю.
	// Оба случая неразличимы для вызывающего, чтобы не раскрывать факт существования.
	ErrNotFound = errors.New("not found")

	// ErrEmailTaken - пользователь с таким email уже зарегистрирован
	ErrEmailTaken = errors.New("user with this email already exists")

	// ErrInvalidCredentials - неверный email или пароль
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrUserInactive - учетная запись деактивирована
	ErrUserInactive = errors.New("user account is disabled")

	// ErrIncidentClosed - попытка изменить закрытый инцидент
	ErrIncidentClosed = errors.New("cannot edit a closed incident")

	// ErrAlreadyClosed - попытка закрыть уже закрытый инцидент
	ErrAlreadyClosed = errors.New("incident is already closed")

	// ErrIncidentIDTaken - сгенерированный incident_id уже занят (гонка при вставке)
	ErrIncidentIDTaken = errors.New("incident id already taken")

	// ErrIncidentIDExhausted - не удалось подобрать свободный incident_id за отведенное число попыток
	ErrIncidentIDExhausted = errors.New("incident id space exhausted")
)
