package v1

import (
	"time"
)

// RegisterRequest DTO для регистрации пользователя
// @Description DTO для регистрации пользователя
type RegisterRequest struct {
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	PasswordConfirm string `json:"password_confirm" validate:"required,eqfield=Password"`
	FirstName       string `json:"first_name" validate:"required,max=100"`
	LastName        string `json:"last_name" validate:"required,max=100"`
	PhoneNumber     string `json:"phone_number,omitempty" validate:"omitempty,max=15"`
	Address         string `json:"address,omitempty"`
	Pincode         string `json:"pincode,omitempty" validate:"omitempty,max=10"`
	City            string `json:"city,omitempty" validate:"omitempty,max=100"`
	Country         string `json:"country,omitempty" validate:"omitempty,max=100"`
}

// LoginRequest DTO для входа
// @Description DTO для входа
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest DTO для обновления профиля
// @Description DTO для обновления профиля
type UpdateProfileRequest struct {
	FirstName   string `json:"first_name" validate:"required,max=100"`
	LastName    string `json:"last_name" validate:"required,max=100"`
	PhoneNumber string `json:"phone_number,omitempty" validate:"omitempty,max=15"`
	Address     string `json:"address,omitempty"`
	Pincode     string `json:"pincode,omitempty" validate:"omitempty,max=10"`
	City        string `json:"city,omitempty" validate:"omitempty,max=100"`
	Country     string `json:"country,omitempty" validate:"omitempty,max=100"`
}

// UserResponse DTO для ответа с профилем пользователя
// @Description DTO для ответа с профилем пользователя
type UserResponse struct {
	ID          int64     `json:"id"`
	Email       string    `json:"email"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	PhoneNumber string    `json:"phone_number,omitempty"`
	Address     string    `json:"address,omitempty"`
	Pincode     string    `json:"pincode,omitempty"`
	City        string    `json:"city,omitempty"`
	Country     string    `json:"country,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	LastLogin   time.Time `json:"last_login"`
}

// AuthResponse DTO для ответа на регистрацию и вход
// @Description DTO для ответа на регистрацию и вход
type AuthResponse struct {
	User    *UserResponse `json:"user"`
	Token   string        `json:"token"`
	Message string        `json:"message"`
}

// CreateIncidentRequest DTO для создания инцидента
// @Description DTO для создания инцидента
type CreateIncidentRequest struct {
	ReporterType string `json:"reporter_type" validate:"required,oneof=ENTERPRISE GOVERNMENT"`
	Details      string `json:"details" validate:"required"`
	Priority     string `json:"priority,omitempty" validate:"omitempty,oneof=HIGH MEDIUM LOW"`
}

// UpdateIncidentRequest DTO для обновления инцидента
// @Description DTO для обновления инцидента
type UpdateIncidentRequest struct {
	Details  string `json:"details" validate:"required"`
	Priority string `json:"priority" validate:"required,oneof=HIGH MEDIUM LOW"`
	Status   string `json:"status" validate:"required,oneof=OPEN IN_PROGRESS CLOSED"`
}

// IncidentResponse DTO для ответа с информацией об инциденте
// @Description DTO для ответа с информацией об инциденте
type IncidentResponse struct {
	ID           int64     `json:"id"`
	IncidentID   string    `json:"incident_id"`
	ReporterID   int64     `json:"reporter_id"`
	ReporterType string    `json:"reporter_type"`
	Details      string    `json:"details"`
	Priority     string    `json:"priority"`
	Status       string    `json:"status"`
	ReportedAt   time.Time `json:"reported_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	IsEditable   bool      `json:"is_editable"`
}

// CloseIncidentResponse DTO для ответа на закрытие инцидента
// @Description DTO для ответа на закрытие инцидента
type CloseIncidentResponse struct {
	Message  string            `json:"message"`
	Incident *IncidentResponse `json:"incident"`
}

// PincodeResponse DTO для ответа на разрешение почтового индекса
// @Description DTO для ответа на разрешение почтового индекса
type PincodeResponse struct {
	Pincode string `json:"pincode"`
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
}
