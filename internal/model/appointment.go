package model

import (
	"time"

	"github.com/google/uuid"
)

type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "PENDING"
	AppointmentStatusCompleted AppointmentStatus = "COMPLETED"
	AppointmentStatusCancelled AppointmentStatus = "CANCELLED"
)

// Appointment is a scheduled clinical encounter tied to exactly one
// patient. Appointments are never updated in place: status is set at
// creation and the only mutation is deletion.
type Appointment struct {
	ID        uuid.UUID         `db:"id" json:"id"`
	Date      Date              `db:"date" json:"date"`
	Time      TimeOfDay         `db:"time" json:"time"`
	Specialty string            `db:"specialty" json:"specialty"`
	Status    AppointmentStatus `db:"status" json:"status"`
	PatientID uuid.UUID         `db:"patient_id" json:"patientId"`
	Patient   *Patient          `db:"-" json:"patient,omitempty"`
	CreatedAt time.Time         `db:"created_at" json:"createdAt"`
}

// AppointmentRequest is the creation payload. The patient is referenced
// by id only; the server resolves it and never accepts a patient object
// in the body. Date and Time are pointers: the validator does not apply
// required to nested struct values, and a nil pointer is the only way to
// tell an omitted time from a legitimate "00:00".
type AppointmentRequest struct {
	Date      *Date             `json:"date" binding:"required"`
	Time      *TimeOfDay        `json:"time" binding:"required"`
	Specialty string            `json:"specialty" binding:"required,max=80"`
	Status    AppointmentStatus `json:"status" binding:"omitempty,oneof=PENDING COMPLETED CANCELLED"`
	PatientID uuid.UUID         `json:"patientId" binding:"required"`
}

// AppointmentType is read-only reference data, listed name-ascending.
type AppointmentType struct {
	ID   uuid.UUID `db:"id" json:"id"`
	Name string    `db:"name" json:"name"`
}
