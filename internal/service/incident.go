package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/rmg-labs/incident-service/internal/models"
	"github.com/rmg-labs/incident-service/internal/observability"
	"github.com/sirupsen/logrus"
)

// incidentIDMaxRetries ограничивает перебор при коллизиях сгенерированного incident_id.
// Уникальный индекс в бд остается источником истины, проверка переносится на вставку.
const incidentIDMaxRetries = 10

// IncidentRepository определяет контракт для работы с бд инцидентов.
// Все выборки и мутации ограничены записями конкретного заявителя (reporterID).
type IncidentRepository interface {
	Create(ctx context.Context, incident *models.Incident) error
	GetByID(ctx context.Context, reporterID, id int64) (*models.Incident, error)
	GetByIncidentID(ctx context.Context, reporterID int64, incidentID string) (*models.Incident, error)
	Update(ctx context.Context, incident *models.Incident) error
	Delete(ctx context.Context, reporterID, id int64) error
	ListByReporter(ctx context.Context, reporterID int64, page, pageSize int) ([]*models.Incident, error)
	StatsByReporter(ctx context.Context, reporterID int64) (*models.IncidentStats, error)
}

// IncidentService определяет контракт для бизнес-логики управления инцидентами
type IncidentService interface {
	CreateIncident(ctx context.Context, incident *models.Incident) error
	GetIncident(ctx context.Context, reporterID, id int64) (*models.Incident, error)
	UpdateIncident(ctx context.Context, reporterID, id int64, details, priority, status string) (*models.Incident, error)
	DeleteIncident(ctx context.Context, reporterID, id int64) error
	ListIncidents(ctx context.Context, reporterID int64, page, pageSize int) ([]*models.Incident, error)
	SearchIncident(ctx context.Context, reporterID int64, incidentID string) (*models.Incident, error)
	GetStats(ctx context.Context, reporterID int64) (*models.IncidentStats, error)
	CloseIncident(ctx context.Context, reporterID, id int64) (*models.Incident, error)
}

type incidentService struct {
	repo    IncidentRepository
	logger  *logrus.Logger
	metrics *observability.Metrics
	now     func() time.Time
}

func NewIncidentService(repo IncidentRepository, logger *logrus.Logger, metrics *observability.Metrics) IncidentService {
	return &incidentService{
		repo:    repo,
		logger:  logger,
		metrics: metrics,
		now:     time.Now,
	}
}

// CreateIncident создает инцидент со сгенерированным incident_id.
// Коллизия уникального индекса трактуется как сигнал перегенерировать идентификатор.
func (s *incidentService) CreateIncident(ctx context.Context, incident *models.Incident) error {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "incident",
		"method":      "CreateIncident",
		"reporter_id": incident.ReporterID,
	})
	log.Info("Attempting to create a new incident")

	if incident.Priority == "" {
		incident.Priority = models.PriorityMedium
	}
	incident.Status = models.StatusOpen

	for attempt := 0; attempt < incidentIDMaxRetries; attempt++ {
		incident.IncidentID = s.generateIncidentID()

		err := s.repo.Create(ctx, incident)
		if err == nil {
			if s.metrics != nil {
				s.metrics.IncidentsCreated.Inc()
			}
			log.WithField("incident_id", incident.IncidentID).Info("Incident created successfully")
			return nil
		}
		if errors.Is(err, ErrIncidentIDTaken) {
			log.WithField("incident_id", incident.IncidentID).Warn("Incident ID collision, regenerating")
			if s.metrics != nil {
				s.metrics.IncidentIDCollisions.Inc()
			}
			continue
		}
		log.WithError(err).Error("Failed to create incident in repository")
		return fmt.Errorf("service: could not create incident: %w", err)
	}

	log.Error("Incident ID space exhausted")
	return ErrIncidentIDExhausted
}

// generateIncidentID формирует идентификатор вида RMG + 5 случайных цифр + текущий год
func (s *incidentService) generateIncidentID() string {
	return fmt.Sprintf("RMG%05d%d", rand.Intn(100000), s.now().Year())
}

// GetIncident возвращает инцидент заявителя по числовому id
func (s *incidentService) GetIncident(ctx context.Context, reporterID, id int64) (*models.Incident, error) {
	incident, err := s.repo.GetByID(ctx, reporterID, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("service: could not get incident: %w", err)
	}
	return incident, nil
}

// UpdateIncident обновляет инцидент по схеме read-modify-write.
// Запрет на изменение закрытого инцидента проверяется по текущему состоянию в бд,
// а не только по данным запроса.
func (s *incidentService) UpdateIncident(ctx context.Context, reporterID, id int64, details, priority, status string) (*models.Incident, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "incident",
		"method":      "UpdateIncident",
		"reporter_id": reporterID,
		"id":          id,
	})
	log.Info("Attempting to update incident")

	existing, err := s.repo.GetByID(ctx, reporterID, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			log.Warn("Attempted to update a non-existent incident")
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("service: could not get incident for update: %w", err)
	}

	if !existing.IsEditable() {
		log.Warn("Attempted to edit a closed incident")
		return nil, ErrIncidentClosed
	}

	existing.Details = details
	existing.Priority = priority
	existing.Status = status

	if err := s.repo.Update(ctx, existing); err != nil {
		// Параллельное закрытие между чтением и записью
		if errors.Is(err, ErrIncidentClosed) {
			log.Warn("Incident was closed concurrently during update")
			return nil, ErrIncidentClosed
		}
		log.WithError(err).Error("Failed to update incident in repository")
		return nil, fmt.Errorf("service: could not update incident: %w", err)
	}

	if s.metrics != nil && status == models.StatusClosed {
		s.metrics.IncidentsClosed.Inc()
	}
	log.Info("Incident updated successfully")
	return existing, nil
}

// DeleteIncident удаляет инцидент заявителя
func (s *incidentService) DeleteIncident(ctx context.Context, reporterID, id int64) error {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "incident",
		"method":      "DeleteIncident",
		"reporter_id": reporterID,
		"id":          id,
	})
	log.Info("Attempting to delete incident")

	if err := s.repo.Delete(ctx, reporterID, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			log.Warn("Attempted to delete a non-existent incident")
			return ErrNotFound
		}
		log.WithError(err).Error("Failed to delete incident in repository")
		return fmt.Errorf("service: could not delete incident: %w", err)
	}

	log.Info("Incident deleted successfully")
	return nil
}

// ListIncidents возвращает инциденты заявителя с пагинацией
func (s *incidentService) ListIncidents(ctx context.Context, reporterID int64, page, pageSize int) ([]*models.Incident, error) {
	if page < 1 {
		page = 1
	}

	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	log := s.logger.WithFields(logrus.Fields{
		"service":     "incident",
		"method":      "ListIncidents",
		"reporter_id": reporterID,
		"page":        page,
		"page_size":   pageSize,
	})
	log.Info("Listing incidents")

	incidents, err := s.repo.ListByReporter(ctx, reporterID, page, pageSize)
	if err != nil {
		log.WithError(err).Error("Failed to list incidents from repository")
		return nil, fmt.Errorf("service: could not list incidents: %w", err)
	}

	log.WithField("count", len(incidents)).Info("Incidents listed successfully")
	return incidents, nil
}

// SearchIncident ищет инцидент заявителя по точному совпадению incident_id
func (s *incidentService) SearchIncident(ctx context.Context, reporterID int64, incidentID string) (*models.Incident, error) {
	incident, err := s.repo.GetByIncidentID(ctx, reporterID, incidentID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("service: could not search incident: %w", err)
	}
	return incident, nil
}

// GetStats возвращает агрегированную статистику инцидентов заявителя
func (s *incidentService) GetStats(ctx context.Context, reporterID int64) (*models.IncidentStats, error) {
	stats, err := s.repo.StatsByReporter(ctx, reporterID)
	if err != nil {
		return nil, fmt.Errorf("service: could not get incident stats: %w", err)
	}
	return stats, nil
}

// CloseIncident переводит инцидент в терминальный статус CLOSED.
// Повторное закрытие отклоняется отдельной ошибкой "already closed".
func (s *incidentService) CloseIncident(ctx context.Context, reporterID, id int64) (*models.Incident, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "incident",
		"method":      "CloseIncident",
		"reporter_id": reporterID,
		"id":          id,
	})
	log.Info("Attempting to close incident")

	incident, err := s.repo.GetByID(ctx, reporterID, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			log.Warn("Attempted to close a non-existent incident")
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("service: could not get incident for close: %w", err)
	}

	if incident.Status == models.StatusClosed {
		log.Warn("Attempted to close an already closed incident")
		return nil, ErrAlreadyClosed
	}

	incident.Status = models.StatusClosed
	if err := s.repo.Update(ctx, incident); err != nil {
		// Параллельное закрытие между чтением и записью
		if errors.Is(err, ErrIncidentClosed) {
			log.Warn("Incident was closed concurrently during close")
			return nil, ErrAlreadyClosed
		}
		log.WithError(err).Error("Failed to close incident in repository")
		return nil, fmt.Errorf("service: could not close incident: %w", err)
	}

	if s.metrics != nil {
		s.metrics.IncidentsClosed.Inc()
	}
	log.Info("Incident closed successfully")
	return incident, nil
}
