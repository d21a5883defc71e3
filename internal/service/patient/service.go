package patient

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/soulconnect/patient-api/pkg/errors"

	"github.com/soulconnect/patient-api/internal/model"
	"github.com/soulconnect/patient-api/internal/repository"
)

// Service enforces the patient consistency rules: identification numbers
// are unique across all patients, updates are a full field replace, and
// deletes are idempotent.
type Service interface {
	Create(ctx context.Context, req *model.PatientRequest) (*model.Patient, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Patient, error)
	GetByIdentificationNumber(ctx context.Context, number string) (*model.Patient, error)
	Update(ctx context.Context, id uuid.UUID, req *model.PatientRequest) (*model.Patient, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*model.Patient, error)
}

type service struct {
	repo repository.PatientRepository
}

func NewService(repo repository.PatientRepository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req *model.PatientRequest) (*model.Patient, error) {
	existing, err := s.repo.GetByIdentificationNumber(ctx, req.IdentificationNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to check identification number: %w", err)
	}
	if existing != nil {
		return nil, apperrors.NewConflict("identification number already registered", nil)
	}

	now := time.Now()
	patient := &model.Patient{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	req.Apply(patient)

	// The check above is not atomic with the insert; the store's unique
	// index decides concurrent duplicates and the repository surfaces
	// them as the same conflict error.
	if err := s.repo.Create(ctx, patient); err != nil {
		return nil, err
	}
	return patient, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*model.Patient, error) {
	return s.repo.Get(ctx, id)
}

func (s *service) GetByIdentificationNumber(ctx context.Context, number string) (*model.Patient, error) {
	patient, err := s.repo.GetByIdentificationNumber(ctx, number)
	if err != nil {
		return nil, fmt.Errorf("failed to get patient by identification number: %w", err)
	}
	if patient == nil {
		return nil, apperrors.NewNotFound("patient", nil)
	}
	return patient, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, req *model.PatientRequest) (*model.Patient, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	// A patient reasserting its own identification number is not a
	// conflict; only another holder of the same number is.
	holder, err := s.repo.GetByIdentificationNumber(ctx, req.IdentificationNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to check identification number: %w", err)
	}
	if holder != nil && holder.ID != id {
		return nil, apperrors.NewConflict("identification number already registered", nil)
	}

	req.Apply(existing)
	existing.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// Delete succeeds whether or not the patient exists.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *service) List(ctx context.Context) ([]*model.Patient, error) {
	return s.repo.List(ctx)
}
