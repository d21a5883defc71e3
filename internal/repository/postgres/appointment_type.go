package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/soulconnect/patient-api/internal/model"
	"github.com/soulconnect/patient-api/internal/repository"
)

type appointmentTypeRepository struct {
	db *sqlx.DB
}

func NewAppointmentTypeRepository(db *sqlx.DB) repository.AppointmentTypeRepository {
	return &appointmentTypeRepository{db: db}
}

func (r *appointmentTypeRepository) List(ctx context.Context) ([]*model.AppointmentType, error) {
	query := `SELECT id, name FROM appointment_types ORDER BY name ASC`
	types := []*model.AppointmentType{}
	err := r.db.SelectContext(ctx, &types, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointment types: %w", err)
	}
	return types, nil
}
