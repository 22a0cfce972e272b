package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rmg-labs/incident-service/internal/models"
	"github.com/rmg-labs/incident-service/internal/service"
)

type PincodeRepository struct {
	db *pgxpool.Pool
}

func NewPincodeRepository(db *pgxpool.Pool) service.PincodeRepository {
	return &PincodeRepository{
		db: db,
	}
}

// GetByPincode возвращает запись справочника по почтовому индексу
func (r *PincodeRepository) GetByPincode(ctx context.Context, pincode string) (*models.PincodeData, error) {
	data := &models.PincodeData{}
	query := `
		SELECT pincode, city, state, country
		FROM pincode_data
		WHERE pincode = $1;
	`
	err := r.db.QueryRow(ctx, query, pincode).Scan(
		&data.Pincode,
		&data.City,
		&data.State,
		&data.Country,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, service.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get pincode data: %w", err)
	}
	return data, nil
}

// Upsert идемпотентно сохраняет запись справочника.
// Существующая запись по тому же индексу не перезаписывается.
func (r *PincodeRepository) Upsert(ctx context.Context, data *models.PincodeData) error {
	query := `
		INSERT INTO pincode_data (pincode, city, state, country)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (pincode) DO NOTHING;
	`
	if _, err := r.db.Exec(ctx, query,
		data.Pincode,
		data.City,
		data.State,
		data.Country,
	); err != nil {
		return fmt.Errorf("failed to upsert pincode data: %w", err)
	}
	return nil
}
