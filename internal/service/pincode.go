package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rmg-labs/incident-service/internal/models"
	"github.com/rmg-labs/incident-service/internal/observability"
	"github.com/sirupsen/logrus"
)

// PincodeRepository определяет контракт для локального справочника индексов
type PincodeRepository interface {
	GetByPincode(ctx context.Context, pincode string) (*models.PincodeData, error)
	Upsert(ctx context.Context, data *models.PincodeData) error
}

// PincodeProvider определяет контракт для внешнего провайдера почтовых индексов
type PincodeProvider interface {
	Lookup(ctx context.Context, pincode string) (*models.PincodeData, error)
}

// PincodeService определяет контракт для разрешения почтовых индексов
type PincodeService interface {
	Lookup(ctx context.Context, pincode string) (*models.PincodeData, error)
}

type pincodeService struct {
	repo      PincodeRepository
	providers []PincodeProvider
	logger    *logrus.Logger
	metrics   *observability.Metrics
}

func NewPincodeService(repo PincodeRepository, providers []PincodeProvider, logger *logrus.Logger, metrics *observability.Metrics) PincodeService {
	return &pincodeService{
		repo:      repo,
		providers: providers,
		logger:    logger,
		metrics:   metrics,
	}
}

// Lookup разрешает почтовый индекс: сначала локальный справочник,
// затем внешние провайдеры в порядке приоритета. Успешный внешний результат
// сохраняется локально, чтобы следующий запрос обслуживался из справочника.
func (s *pincodeService) Lookup(ctx context.Context, pincode string) (*models.PincodeData, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "pincode",
		"method":  "Lookup",
		"pincode": pincode,
	})

	data, err := s.repo.GetByPincode(ctx, pincode)
	if err == nil {
		s.countLookup("local", "hit")
		log.Debug("Pincode resolved from local table")
		return data, nil
	}
	if !errors.Is(err, ErrNotFound) {
		log.WithError(err).Error("Failed to query local pincode table")
		return nil, fmt.Errorf("service: could not query pincode table: %w", err)
	}
	s.countLookup("local", "miss")

	for _, provider := range s.providers {
		data, err := provider.Lookup(ctx, pincode)
		if err != nil {
			// Ошибки провайдера не фатальны, переходим к следующему
			s.countLookup("external", "error")
			log.WithError(err).Warn("External pincode provider failed")
			continue
		}

		s.countLookup("external", "hit")
		// Сохраняем результат локально; неудача записи не влияет на ответ
		if err := s.repo.Upsert(ctx, data); err != nil {
			log.WithError(err).Warn("Failed to persist externally resolved pincode")
		}

		log.Info("Pincode resolved from external provider")
		return data, nil
	}

	log.Info("Pincode not found")
	return nil, ErrNotFound
}

func (s *pincodeService) countLookup(source, outcome string) {
	if s.metrics != nil {
		s.metrics.PincodeLookups.WithLabelValues(source, outcome).Inc()
	}
}
