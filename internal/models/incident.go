package models

import (
	"time"
)

// Статусы инцидента
const (
	StatusOpen       = "OPEN"
	StatusInProgress = "IN_PROGRESS"
	StatusClosed     = "CLOSED"
)

// Приоритеты инцидента
const (
	PriorityHigh   = "HIGH"
	PriorityMedium = "MEDIUM"
	PriorityLow    = "LOW"
)

// Типы заявителей
const (
	ReporterEnterprise = "ENTERPRISE"
	ReporterGovernment = "GOVERNMENT"
)

type Incident struct {
	ID           int64     `json:"id"`
	IncidentID   string    `json:"incident_id"`
	ReporterID   int64     `json:"reporter_id"`
	ReporterType string    `json:"reporter_type"`
	Details      string    `json:"details"`
	Priority     string    `json:"priority"`
	Status       string    `json:"status"`
	ReportedAt   time.Time `json:"reported_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// IsEditable проверяет, можно ли редактировать инцидент (закрытый - неизменяем)
func (i *Incident) IsEditable() bool {
	return i.Status != StatusClosed
}

// IncidentStats - агрегированная статистика инцидентов одного заявителя
type IncidentStats struct {
	Total      int `json:"total_incidents"`
	Open       int `json:"open_incidents"`
	InProgress int `json:"in_progress_incidents"`
	Closed     int `json:"closed_incidents"`
	High       int `json:"high_priority"`
	Medium     int `json:"medium_priority"`
	Low        int `json:"low_priority"`
}
