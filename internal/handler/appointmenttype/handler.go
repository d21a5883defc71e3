package appointmenttype

import (
	"github.com/gin-gonic/gin"

	"github.com/soulconnect/patient-api/pkg/httputil"

	"github.com/soulconnect/patient-api/internal/service/appointmenttype"
)

type Handler struct {
	service appointmenttype.Service
}

func NewHandler(service appointmenttype.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/appointment-types", h.ListAppointmentTypes)
}

func (h *Handler) ListAppointmentTypes(c *gin.Context) {
	types, err := h.service.List(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, types)
}
