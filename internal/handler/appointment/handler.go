package appointment

import (
	"encoding/json"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/soulconnect/patient-api/pkg/httputil"

	"github.com/soulconnect/patient-api/internal/model"
	"github.com/soulconnect/patient-api/internal/repository"
	"github.com/soulconnect/patient-api/internal/service/appointment"
)

type Handler struct {
	service    appointment.Service
	outboxRepo repository.OutboxRepository
}

func NewHandler(service appointment.Service, outboxRepo repository.OutboxRepository) *Handler {
	return &Handler{
		service:    service,
		outboxRepo: outboxRepo,
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	appointments := r.Group("/appointments")
	{
		appointments.GET("", h.ListAppointments)
		appointments.POST("", h.CreateAppointment)
		appointments.DELETE("/:id", h.DeleteAppointment)
	}
}

func (h *Handler) ListAppointments(c *gin.Context) {
	var patientID *uuid.UUID
	if raw := c.Query("patientId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			httputil.RespondWithBadRequest(c, "invalid patient ID")
			return
		}
		patientID = &id
	}

	appointments, err := h.service.List(c.Request.Context(), patientID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, appointments)
}

func (h *Handler) CreateAppointment(c *gin.Context) {
	var req model.AppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithBindingError(c, err)
		return
	}

	apt, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	h.recordEvent(c, model.EventAppointmentCreated, apt)
	httputil.RespondWithCreated(c, apt)
}

// DeleteAppointment always returns 200; deleting an unknown id is a no-op.
// The deletion event is recorded either way, so consumers may see events
// for ids that never existed.
func (h *Handler) DeleteAppointment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithBadRequest(c, "invalid appointment ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	h.recordEvent(c, model.EventAppointmentDeleted, gin.H{"id": id})
	httputil.RespondWithSuccess(c, nil)
}

func (h *Handler) recordEvent(c *gin.Context, eventType string, payload interface{}) {
	if h.outboxRepo == nil {
		return
	}

	data, err := json.Marshal(payload)
	if err != nil {
		log.Error().Err(err).Str("event_type", eventType).Msg("failed to marshal outbox payload")
		return
	}
	if err := h.outboxRepo.Create(c.Request.Context(), &model.OutboxEvent{
		EventType: eventType,
		Payload:   data,
	}); err != nil {
		log.Error().Err(err).Str("event_type", eventType).Msg("failed to create outbox event")
	}
}
