package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/soulconnect/patient-api/internal/model"
)

type PatientRepository interface {
	Create(ctx context.Context, patient *model.Patient) error
	Get(ctx context.Context, id uuid.UUID) (*model.Patient, error)
	// GetByIdentificationNumber returns (nil, nil) when no patient holds
	// the given identification number.
	GetByIdentificationNumber(ctx context.Context, number string) (*model.Patient, error)
	Update(ctx context.Context, patient *model.Patient) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*model.Patient, error)
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]*model.Patient, error)
}

type AppointmentRepository interface {
	Create(ctx context.Context, appointment *model.Appointment) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*model.Appointment, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.Appointment, error)
}

type AppointmentTypeRepository interface {
	List(ctx context.Context) ([]*model.AppointmentType, error)
}

type OutboxRepository interface {
	Create(ctx context.Context, event *model.OutboxEvent) error
	GetPendingEvents(ctx context.Context, limit int) ([]*model.OutboxEvent, error)
	MarkProcessed(ctx context.Context, id uuid.UUID) error
	MarkFailed(ctx context.Context, id uuid.UUID, errMessage string) error
	DeleteProcessedBefore(ctx context.Context, before time.Time) (int64, error)
}
