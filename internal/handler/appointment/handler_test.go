package appointment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/soulconnect/patient-api/pkg/errors"

	"github.com/soulconnect/patient-api/internal/model"
)

type stubService struct {
	appointment *model.Appointment
	err         error
	deleted     []uuid.UUID
	listedBy    []*uuid.UUID
}

func (s *stubService) Create(_ context.Context, _ *model.AppointmentRequest) (*model.Appointment, error) {
	return s.appointment, s.err
}

func (s *stubService) List(_ context.Context, patientID *uuid.UUID) ([]*model.Appointment, error) {
	s.listedBy = append(s.listedBy, patientID)
	if s.err != nil {
		return nil, s.err
	}
	return []*model.Appointment{s.appointment}, nil
}

func (s *stubService) Delete(_ context.Context, id uuid.UUID) error {
	s.deleted = append(s.deleted, id)
	return s.err
}

func setupRouter(svc *stubService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	NewHandler(svc, nil).RegisterRoutes(engine.Group("/api"))
	return engine
}

func sampleAppointment() *model.Appointment {
	return &model.Appointment{
		ID:        uuid.New(),
		Date:      model.NewDate(2026, time.March, 10),
		Time:      model.TimeOfDay{Hour: 9, Minute: 30},
		Specialty: "Cardiología",
		Status:    model.AppointmentStatusPending,
		PatientID: uuid.New(),
		CreatedAt: time.Now(),
	}
}

func validBody(patientID uuid.UUID) []byte {
	body, _ := json.Marshal(map[string]interface{}{
		"date":      "2026-03-10",
		"time":      "09:30",
		"specialty": "Cardiología",
		"patientId": patientID,
	})
	return body
}

func TestCreateAppointmentReturns201(t *testing.T) {
	apt := sampleAppointment()
	router := setupRouter(&stubService{appointment: apt})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/appointments", bytes.NewReader(validBody(apt.PatientID)))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Success bool              `json:"success"`
		Data    model.Appointment `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, model.AppointmentStatusPending, resp.Data.Status)
}

func TestCreateAppointmentUnknownPatientReturns404(t *testing.T) {
	router := setupRouter(&stubService{err: apperrors.NewNotFound("patient", nil)})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/appointments", bytes.NewReader(validBody(uuid.New())))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateAppointmentMissingFieldsReturns400(t *testing.T) {
	router := setupRouter(&stubService{appointment: sampleAppointment()})

	body, _ := json.Marshal(map[string]interface{}{"specialty": "Cardiología"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/appointments", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateAppointmentOmittedDateAndTimeReturns400(t *testing.T) {
	router := setupRouter(&stubService{appointment: sampleAppointment()})

	body, _ := json.Marshal(map[string]interface{}{
		"specialty": "Cardiología",
		"patientId": uuid.New(),
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/appointments", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateAppointmentAcceptsMidnight(t *testing.T) {
	router := setupRouter(&stubService{appointment: sampleAppointment()})

	body, _ := json.Marshal(map[string]interface{}{
		"date":      "2026-03-10",
		"time":      "00:00",
		"specialty": "Cardiología",
		"patientId": uuid.New(),
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/appointments", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestListAppointmentsPassesPatientFilter(t *testing.T) {
	svc := &stubService{appointment: sampleAppointment()}
	router := setupRouter(svc)

	id := uuid.New()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/appointments?patientId=%s", id), nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, svc.listedBy, 1)
	require.NotNil(t, svc.listedBy[0])
	assert.Equal(t, id, *svc.listedBy[0])
}

func TestListAppointmentsWithoutFilter(t *testing.T) {
	svc := &stubService{appointment: sampleAppointment()}
	router := setupRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/appointments", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, svc.listedBy, 1)
	assert.Nil(t, svc.listedBy[0])
}

func TestListAppointmentsInvalidPatientIDReturns400(t *testing.T) {
	router := setupRouter(&stubService{appointment: sampleAppointment()})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/appointments?patientId=nope", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteAppointmentUnknownIDReturns200(t *testing.T) {
	svc := &stubService{}
	router := setupRouter(svc)

	id := uuid.New()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/api/appointments/%s", id), nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []uuid.UUID{id}, svc.deleted)
}
