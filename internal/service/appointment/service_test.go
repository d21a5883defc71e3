package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/soulconnect/patient-api/pkg/errors"

	"github.com/soulconnect/patient-api/internal/model"
)

type fakeAppointmentRepo struct {
	appointments map[uuid.UUID]*model.Appointment
}

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{appointments: make(map[uuid.UUID]*model.Appointment)}
}

func (r *fakeAppointmentRepo) Create(_ context.Context, a *model.Appointment) error {
	cp := *a
	cp.Patient = nil
	r.appointments[a.ID] = &cp
	return nil
}

func (r *fakeAppointmentRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.appointments, id)
	return nil
}

func (r *fakeAppointmentRepo) List(_ context.Context) ([]*model.Appointment, error) {
	out := make([]*model.Appointment, 0, len(r.appointments))
	for _, a := range r.appointments {
		cp := *a
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeAppointmentRepo) ListByPatient(_ context.Context, patientID uuid.UUID) ([]*model.Appointment, error) {
	out := []*model.Appointment{}
	for _, a := range r.appointments {
		if a.PatientID == patientID {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out, nil
}

type fakePatientRepo struct {
	patients map[uuid.UUID]*model.Patient
}

func newFakePatientRepo() *fakePatientRepo {
	return &fakePatientRepo{patients: make(map[uuid.UUID]*model.Patient)}
}

func (r *fakePatientRepo) add() *model.Patient {
	p := &model.Patient{
		ID:                   uuid.New(),
		FirstName:            "Ana",
		LastName:             "Ruiz",
		IdentificationNumber: uuid.NewString(),
		IdentificationType:   model.IdentificationTypeNationalID,
		DateOfBirth:          model.NewDate(1990, time.January, 1),
	}
	r.patients[p.ID] = p
	return p
}

func (r *fakePatientRepo) Create(_ context.Context, p *model.Patient) error {
	r.patients[p.ID] = p
	return nil
}

func (r *fakePatientRepo) Get(_ context.Context, id uuid.UUID) (*model.Patient, error) {
	p, ok := r.patients[id]
	if !ok {
		return nil, apperrors.NewNotFound("patient", nil)
	}
	return p, nil
}

func (r *fakePatientRepo) GetByIdentificationNumber(_ context.Context, number string) (*model.Patient, error) {
	for _, p := range r.patients {
		if p.IdentificationNumber == number {
			return p, nil
		}
	}
	return nil, nil
}

func (r *fakePatientRepo) Update(_ context.Context, p *model.Patient) error {
	r.patients[p.ID] = p
	return nil
}

func (r *fakePatientRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.patients, id)
	return nil
}

func (r *fakePatientRepo) List(_ context.Context) ([]*model.Patient, error) {
	out := make([]*model.Patient, 0, len(r.patients))
	for _, p := range r.patients {
		out = append(out, p)
	}
	return out, nil
}

func (r *fakePatientRepo) ListByIDs(_ context.Context, ids []uuid.UUID) ([]*model.Patient, error) {
	out := []*model.Patient{}
	for _, id := range ids {
		if p, ok := r.patients[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func newRequest(patientID uuid.UUID) *model.AppointmentRequest {
	date := model.NewDate(2026, time.March, 10)
	tod := model.TimeOfDay{Hour: 9, Minute: 0}
	return &model.AppointmentRequest{
		Date:      &date,
		Time:      &tod,
		Specialty: "Cardiología",
		PatientID: patientID,
	}
}

func TestCreateAppointmentDefaultsToPending(t *testing.T) {
	patientRepo := newFakePatientRepo()
	patient := patientRepo.add()
	repo := newFakeAppointmentRepo()
	svc := NewService(repo, patientRepo)

	apt, err := svc.Create(context.Background(), newRequest(patient.ID))
	require.NoError(t, err)

	assert.Equal(t, model.AppointmentStatusPending, apt.Status)
	assert.NotEqual(t, uuid.Nil, apt.ID)
	assert.False(t, apt.CreatedAt.IsZero())
	require.NotNil(t, apt.Patient)
	assert.Equal(t, patient.ID, apt.Patient.ID)
	assert.Len(t, repo.appointments, 1)
}

func TestCreateAppointmentKeepsExplicitStatus(t *testing.T) {
	patientRepo := newFakePatientRepo()
	patient := patientRepo.add()
	svc := NewService(newFakeAppointmentRepo(), patientRepo)

	req := newRequest(patient.ID)
	req.Status = model.AppointmentStatusCompleted

	apt, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusCompleted, apt.Status)
}

func TestCreateAppointmentRequiresDateAndTime(t *testing.T) {
	patientRepo := newFakePatientRepo()
	patient := patientRepo.add()
	repo := newFakeAppointmentRepo()
	svc := NewService(repo, patientRepo)

	req := newRequest(patient.ID)
	req.Date = nil

	_, err := svc.Create(context.Background(), req)
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrBadRequest, appErr.Code)

	req = newRequest(patient.ID)
	req.Time = nil

	_, err = svc.Create(context.Background(), req)
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrBadRequest, appErr.Code)
	assert.Empty(t, repo.appointments)
}

func TestCreateAppointmentUnknownPatient(t *testing.T) {
	repo := newFakeAppointmentRepo()
	svc := NewService(repo, newFakePatientRepo())

	_, err := svc.Create(context.Background(), newRequest(uuid.New()))
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
	assert.Empty(t, repo.appointments)
}

func TestListAppointmentsFiltersByPatient(t *testing.T) {
	patientRepo := newFakePatientRepo()
	first := patientRepo.add()
	second := patientRepo.add()
	svc := NewService(newFakeAppointmentRepo(), patientRepo)

	_, err := svc.Create(context.Background(), newRequest(first.ID))
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), newRequest(first.ID))
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), newRequest(second.ID))
	require.NoError(t, err)

	filtered, err := svc.List(context.Background(), &first.ID)
	require.NoError(t, err)
	assert.Len(t, filtered, 2)
	for _, apt := range filtered {
		assert.Equal(t, first.ID, apt.PatientID)
		require.NotNil(t, apt.Patient)
		assert.Equal(t, first.ID, apt.Patient.ID)
	}

	all, err := svc.List(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestListAppointmentsToleratesDeletedPatient(t *testing.T) {
	patientRepo := newFakePatientRepo()
	patient := patientRepo.add()
	svc := NewService(newFakeAppointmentRepo(), patientRepo)

	_, err := svc.Create(context.Background(), newRequest(patient.ID))
	require.NoError(t, err)

	// The existence invariant only holds at creation time.
	require.NoError(t, patientRepo.Delete(context.Background(), patient.ID))

	all, err := svc.List(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Nil(t, all[0].Patient)
}

func TestDeleteAppointmentIdempotent(t *testing.T) {
	patientRepo := newFakePatientRepo()
	patient := patientRepo.add()
	repo := newFakeAppointmentRepo()
	svc := NewService(repo, patientRepo)

	assert.NoError(t, svc.Delete(context.Background(), uuid.New()))

	apt, err := svc.Create(context.Background(), newRequest(patient.ID))
	require.NoError(t, err)

	assert.NoError(t, svc.Delete(context.Background(), apt.ID))
	assert.NoError(t, svc.Delete(context.Background(), apt.ID))
	assert.Empty(t, repo.appointments)
}
