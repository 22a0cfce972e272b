package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rmg-labs/incident-service/internal/models"
	"github.com/rmg-labs/incident-service/internal/service"
)

type IncidentRepository struct {
	db *pgxpool.Pool
}

func NewIncidentRepository(db *pgxpool.Pool) service.IncidentRepository {
	return &IncidentRepository{
		db: db,
	}
}

// Create создает новую запись об инциденте в бд.
// Нарушение уникального индекса incident_id возвращается как service.ErrIncidentIDTaken,
// чтобы сервис мог перегенерировать идентификатор.
func (r *IncidentRepository) Create(ctx context.Context, incident *models.Incident) error {
	query := `
		INSERT INTO incidents (incident_id, reporter_id, reporter_type, details, priority, status)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, reported_at, updated_at;
	`
	err := r.db.QueryRow(ctx, query,
		incident.IncidentID,
		incident.ReporterID,
		incident.ReporterType,
		incident.Details,
		incident.Priority,
		incident.Status,
	).Scan(&incident.ID, &incident.ReportedAt, &incident.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return service.ErrIncidentIDTaken
		}
		return fmt.Errorf("failed to create incident: %w", err)
	}
	return nil
}

// GetByID возвращает инцидент по числовому id в пределах записей заявителя.
// Чужой инцидент неотличим от несуществующего.
func (r *IncidentRepository) GetByID(ctx context.Context, reporterID, id int64) (*models.Incident, error) {
	incident := &models.Incident{}
	query := `
		SELECT
			id,
			incident_id,
			reporter_id,
			reporter_type,
			details,
			priority,
			status,
			reported_at,
			updated_at
		FROM incidents
		WHERE id = $1 AND reporter_id = $2;
	`
	err := r.db.QueryRow(ctx, query, id, reporterID).Scan(
		&incident.ID,
		&incident.IncidentID,
		&incident.ReporterID,
		&incident.ReporterType,
		&incident.Details,
		&incident.Priority,
		&incident.Status,
		&incident.ReportedAt,
		&incident.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, service.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get incident by id: %w", err)
	}
	return incident, nil
}

// GetByIncidentID возвращает инцидент по точному совпадению сгенерированного идентификатора
func (r *IncidentRepository) GetByIncidentID(ctx context.Context, reporterID int64, incidentID string) (*models.Incident, error) {
	incident := &models.Incident{}
	query := `
		SELECT
			id,
			incident_id,
			reporter_id,
			reporter_type,
			details,
			priority,
			status,
			reported_at,
			updated_at
		FROM incidents
		WHERE incident_id = $1 AND reporter_id = $2;
	`
	err := r.db.QueryRow(ctx, query, incidentID, reporterID).Scan(
		&incident.ID,
		&incident.IncidentID,
		&incident.ReporterID,
		&incident.ReporterType,
		&incident.Details,
		&incident.Priority,
		&incident.Status,
		&incident.ReportedAt,
		&incident.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, service.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get incident by incident_id: %w", err)
	}
	return incident, nil
}

// Update обновляет изменяемые поля инцидента в пределах записей заявителя.
// Условие status <> 'CLOSED' защищает от гонки: закрытие между чтением
// и записью не может быть перезаписано правкой.
func (r *IncidentRepository) Update(ctx context.Context, incident *models.Incident) error {
	query := `
		UPDATE incidents SET
			details = $1,
			priority = $2,
			status = $3,
			updated_at = NOW()
		WHERE id = $4 AND reporter_id = $5 AND status <> 'CLOSED';
	`
	cmdTag, err := r.db.Exec(ctx, query,
		incident.Details,
		incident.Priority,
		incident.Status,
		incident.ID,
		incident.ReporterID,
	)
	if err != nil {
		return fmt.Errorf("failed to update incident: %w", err)
	}

	// RowsAffected() == 0: либо инцидента не существует, либо он уже закрыт.
	// Перечитываем запись, чтобы различить эти случаи.
	if cmdTag.RowsAffected() == 0 {
		existing, err := r.GetByID(ctx, incident.ReporterID, incident.ID)
		if err != nil {
			return err
		}
		if existing.Status == models.StatusClosed {
			return service.ErrIncidentClosed
		}
		return service.ErrNotFound
	}
	return nil
}

// Delete удаляет инцидент заявителя
func (r *IncidentRepository) Delete(ctx context.Context, reporterID, id int64) error {
	query := `
		DELETE FROM incidents
		WHERE id = $1 AND reporter_id = $2;
	`
	cmdTag, err := r.db.Exec(ctx, query, id, reporterID)
	if err != nil {
		return fmt.Errorf("failed to delete incident: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return service.ErrNotFound
	}
	return nil
}

// ListByReporter возвращает инциденты заявителя с пагинацией, новые первыми
func (r *IncidentRepository) ListByReporter(ctx context.Context, reporterID int64, page, pageSize int) ([]*models.Incident, error) {
	// рассчитываем смещение
	offset := (page - 1) * pageSize

	query := `
		SELECT
			id,
			incident_id,
			reporter_id,
			reporter_type,
			details,
			priority,
			status,
			reported_at,
			updated_at
		FROM incidents
		WHERE reporter_id = $1
		ORDER BY reported_at DESC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.db.Query(ctx, query, reporterID, pageSize, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list incidents: %w", err)
	}
	defer rows.Close()

	incidents := make([]*models.Incident, 0)
	for rows.Next() {
		incident := &models.Incident{}
		err := rows.Scan(
			&incident.ID,
			&incident.IncidentID,
			&incident.ReporterID,
			&incident.ReporterType,
			&incident.Details,
			&incident.Priority,
			&incident.Status,
			&incident.ReportedAt,
			&incident.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan incident row: %w", err)
		}
		incidents = append(incidents, incident)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error list iteration: %w", err)
	}
	return incidents, nil
}

// StatsByReporter возвращает агрегированные счетчики инцидентов заявителя
func (r *IncidentRepository) StatsByReporter(ctx context.Context, reporterID int64) (*models.IncidentStats, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'OPEN'),
			COUNT(*) FILTER (WHERE status = 'IN_PROGRESS'),
			COUNT(*) FILTER (WHERE status = 'CLOSED'),
			COUNT(*) FILTER (WHERE priority = 'HIGH'),
			COUNT(*) FILTER (WHERE priority = 'MEDIUM'),
			COUNT(*) FILTER (WHERE priority = 'LOW')
		FROM incidents
		WHERE reporter_id = $1;
	`
	stats := &models.IncidentStats{}
	err := r.db.QueryRow(ctx, query, reporterID).Scan(
		&stats.Total,
		&stats.Open,
		&stats.InProgress,
		&stats.Closed,
		&stats.High,
		&stats.Medium,
		&stats.Low,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get incident stats: %w", err)
	}
	return stats, nil
}
