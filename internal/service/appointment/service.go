package appointment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/soulconnect/patient-api/pkg/errors"

	"github.com/soulconnect/patient-api/internal/model"
	"github.com/soulconnect/patient-api/internal/repository"
)

// Service creates and lists appointments. Every appointment must
// reference an existing patient at creation time; there is no update
// operation and deletes are idempotent.
type Service interface {
	Create(ctx context.Context, req *model.AppointmentRequest) (*model.Appointment, error)
	List(ctx context.Context, patientID *uuid.UUID) ([]*model.Appointment, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo        repository.AppointmentRepository
	patientRepo repository.PatientRepository
}

func NewService(repo repository.AppointmentRepository, patientRepo repository.PatientRepository) Service {
	return &service{repo: repo, patientRepo: patientRepo}
}

func (s *service) Create(ctx context.Context, req *model.AppointmentRequest) (*model.Appointment, error) {
	if req.Date == nil || req.Time == nil {
		return nil, apperrors.NewBadRequest("date and time are required", nil)
	}

	patient, err := s.patientRepo.Get(ctx, req.PatientID)
	if err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = model.AppointmentStatusPending
	}

	appointment := &model.Appointment{
		ID:        uuid.New(),
		Date:      *req.Date,
		Time:      *req.Time,
		Specialty: req.Specialty,
		Status:    status,
		PatientID: patient.ID,
		Patient:   patient,
		CreatedAt: time.Now(),
	}

	if err := s.repo.Create(ctx, appointment); err != nil {
		return nil, err
	}
	return appointment, nil
}

func (s *service) List(ctx context.Context, patientID *uuid.UUID) ([]*model.Appointment, error) {
	var (
		appointments []*model.Appointment
		err          error
	)
	if patientID != nil {
		appointments, err = s.repo.ListByPatient(ctx, *patientID)
	} else {
		appointments, err = s.repo.List(ctx)
	}
	if err != nil {
		return nil, err
	}

	if err := s.attachPatients(ctx, appointments); err != nil {
		return nil, err
	}
	return appointments, nil
}

// Delete succeeds whether or not the appointment exists.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// attachPatients resolves the referenced patients with a single batched
// lookup. Appointments whose patient has since been deleted keep a nil
// patient; the reference is only guaranteed at creation time.
func (s *service) attachPatients(ctx context.Context, appointments []*model.Appointment) error {
	if len(appointments) == 0 {
		return nil
	}

	seen := make(map[uuid.UUID]struct{}, len(appointments))
	ids := make([]uuid.UUID, 0, len(appointments))
	for _, apt := range appointments {
		if _, ok := seen[apt.PatientID]; ok {
			continue
		}
		seen[apt.PatientID] = struct{}{}
		ids = append(ids, apt.PatientID)
	}

	patients, err := s.patientRepo.ListByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("failed to resolve appointment patients: %w", err)
	}

	byID := make(map[uuid.UUID]*model.Patient, len(patients))
	for _, p := range patients {
		byID[p.ID] = p
	}
	for _, apt := range appointments {
		apt.Patient = byID[apt.PatientID]
	}
	return nil
}
