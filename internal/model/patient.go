package model

import (
	"time"

	"github.com/google/uuid"
)

// IdentificationType is the kind of identity document a patient carries.
type IdentificationType string

const (
	IdentificationTypeNationalID IdentificationType = "CC"
	IdentificationTypeMinorID    IdentificationType = "TI"
	IdentificationTypeForeignID  IdentificationType = "CE"
)

// Patient is the subject of care. identification_number is unique across
// all patients and enforced both by a precondition check and by the
// store's unique index.
type Patient struct {
	ID                   uuid.UUID          `db:"id" json:"id"`
	FirstName            string             `db:"first_name" json:"firstName"`
	LastName             string             `db:"last_name" json:"lastName"`
	IdentificationNumber string             `db:"identification_number" json:"identificationNumber"`
	IdentificationType   IdentificationType `db:"identification_type" json:"identificationType"`
	DateOfBirth          Date               `db:"date_of_birth" json:"dateOfBirth"`
	Email                *string            `db:"email" json:"email,omitempty"`
	PhoneNumber          *string            `db:"phone" json:"phoneNumber,omitempty"`

	// Demographics and address
	Eps                     *string `db:"eps" json:"eps,omitempty"`
	Address                 *string `db:"address" json:"address,omitempty"`
	SexBiological           *string `db:"sex_biological" json:"sexBiological,omitempty"`
	GenderIdentity          *string `db:"gender_identity" json:"genderIdentity,omitempty"`
	MaritalStatus           *string `db:"marital_status" json:"maritalStatus,omitempty"`
	EducationLevel          *string `db:"education_level" json:"educationLevel,omitempty"`
	Occupation              *string `db:"occupation" json:"occupation,omitempty"`
	EmergencyContactName    *string `db:"emergency_contact_name" json:"emergencyContactName,omitempty"`
	EmergencyContactPhone   *string `db:"emergency_contact_phone" json:"emergencyContactPhone,omitempty"`
	City                    *string `db:"city" json:"city,omitempty"`
	Municipality            *string `db:"municipality" json:"municipality,omitempty"`
	Neighborhood            *string `db:"neighborhood" json:"neighborhood,omitempty"`
	PostalCode              *string `db:"postal_code" json:"postalCode,omitempty"`
	HousingType             *string `db:"housing_type" json:"housingType,omitempty"`
	SocioeconomicStratum    *int    `db:"socioeconomic_stratum" json:"socioeconomicStratum,omitempty"`
	ResidenceDurationMonths *int    `db:"residence_duration_months" json:"residenceDurationMonths,omitempty"`

	// Vitals
	BloodType                *string  `db:"blood_type" json:"bloodType,omitempty"`
	HeightCm                 *float64 `db:"height_cm" json:"heightCm,omitempty"`
	WeightKg                 *float64 `db:"weight_kg" json:"weightKg,omitempty"`
	AbdominalCircumferenceCm *float64 `db:"abdominal_circumference_cm" json:"abdominalCircumferenceCm,omitempty"`
	HeartRateBpm             *int     `db:"heart_rate_bpm" json:"heartRateBpm,omitempty"`
	RespiratoryRateRpm       *int     `db:"respiratory_rate_rpm" json:"respiratoryRateRpm,omitempty"`
	BloodPressureSys         *int     `db:"blood_pressure_sys" json:"bloodPressureSys,omitempty"`
	BloodPressureDia         *int     `db:"blood_pressure_dia" json:"bloodPressureDia,omitempty"`
	TemperatureC             *float64 `db:"temperature_c" json:"temperatureC,omitempty"`
	Spo2                     *int     `db:"spo2" json:"spo2,omitempty"`

	// Clinical history
	Allergies         *string `db:"allergies" json:"allergies,omitempty"`
	Medications       *string `db:"medications" json:"medications,omitempty"`
	Surgeries         *string `db:"surgeries" json:"surgeries,omitempty"`
	FamilyHistory     *string `db:"family_history" json:"familyHistory,omitempty"`
	Habits            *string `db:"habits" json:"habits,omitempty"`
	Vaccines          *string `db:"vaccines" json:"vaccines,omitempty"`
	ChronicConditions *string `db:"chronic_conditions" json:"chronicConditions,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// PatientRequest carries every mutable patient field. The same payload
// shape serves create and full-replace update.
type PatientRequest struct {
	FirstName            string             `json:"firstName" binding:"required,max=50"`
	LastName             string             `json:"lastName" binding:"required,max=50"`
	IdentificationNumber string             `json:"identificationNumber" binding:"required,max=20"`
	IdentificationType   IdentificationType `json:"identificationType" binding:"required,oneof=CC TI CE"`
	// Pointer so the required binding fires on an omitted field; the
	// validator skips required on nested struct values.
	DateOfBirth *Date `json:"dateOfBirth" binding:"required"`
	Email                *string            `json:"email" binding:"omitempty,email"`
	PhoneNumber          *string            `json:"phoneNumber"`

	Eps                     *string `json:"eps"`
	Address                 *string `json:"address"`
	SexBiological           *string `json:"sexBiological"`
	GenderIdentity          *string `json:"genderIdentity"`
	MaritalStatus           *string `json:"maritalStatus"`
	EducationLevel          *string `json:"educationLevel"`
	Occupation              *string `json:"occupation"`
	EmergencyContactName    *string `json:"emergencyContactName"`
	EmergencyContactPhone   *string `json:"emergencyContactPhone"`
	City                    *string `json:"city"`
	Municipality            *string `json:"municipality"`
	Neighborhood            *string `json:"neighborhood"`
	PostalCode              *string `json:"postalCode"`
	HousingType             *string `json:"housingType"`
	SocioeconomicStratum    *int    `json:"socioeconomicStratum"`
	ResidenceDurationMonths *int    `json:"residenceDurationMonths"`

	BloodType                *string  `json:"bloodType"`
	HeightCm                 *float64 `json:"heightCm"`
	WeightKg                 *float64 `json:"weightKg"`
	AbdominalCircumferenceCm *float64 `json:"abdominalCircumferenceCm"`
	HeartRateBpm             *int     `json:"heartRateBpm"`
	RespiratoryRateRpm       *int     `json:"respiratoryRateRpm"`
	BloodPressureSys         *int     `json:"bloodPressureSys"`
	BloodPressureDia         *int     `json:"bloodPressureDia"`
	TemperatureC             *float64 `json:"temperatureC"`
	Spo2                     *int     `json:"spo2"`

	Allergies         *string `json:"allergies"`
	Medications       *string `json:"medications"`
	Surgeries         *string `json:"surgeries"`
	FamilyHistory     *string `json:"familyHistory"`
	Habits            *string `json:"habits"`
	Vaccines          *string `json:"vaccines"`
	ChronicConditions *string `json:"chronicConditions"`
}

// Apply overwrites every mutable field of p with the request values.
// Update is a full replace: fields absent from the payload reset to their
// zero value. ID and CreatedAt are never touched here.
func (r *PatientRequest) Apply(p *Patient) {
	p.FirstName = r.FirstName
	p.LastName = r.LastName
	p.IdentificationNumber = r.IdentificationNumber
	p.IdentificationType = r.IdentificationType
	if r.DateOfBirth != nil {
		p.DateOfBirth = *r.DateOfBirth
	}
	p.Email = r.Email
	p.PhoneNumber = r.PhoneNumber
	p.Eps = r.Eps
	p.Address = r.Address
	p.SexBiological = r.SexBiological
	p.GenderIdentity = r.GenderIdentity
	p.MaritalStatus = r.MaritalStatus
	p.EducationLevel = r.EducationLevel
	p.Occupation = r.Occupation
	p.EmergencyContactName = r.EmergencyContactName
	p.EmergencyContactPhone = r.EmergencyContactPhone
	p.City = r.City
	p.Municipality = r.Municipality
	p.Neighborhood = r.Neighborhood
	p.PostalCode = r.PostalCode
	p.HousingType = r.HousingType
	p.SocioeconomicStratum = r.SocioeconomicStratum
	p.ResidenceDurationMonths = r.ResidenceDurationMonths
	p.BloodType = r.BloodType
	p.HeightCm = r.HeightCm
	p.WeightKg = r.WeightKg
	p.AbdominalCircumferenceCm = r.AbdominalCircumferenceCm
	p.HeartRateBpm = r.HeartRateBpm
	p.RespiratoryRateRpm = r.RespiratoryRateRpm
	p.BloodPressureSys = r.BloodPressureSys
	p.BloodPressureDia = r.BloodPressureDia
	p.TemperatureC = r.TemperatureC
	p.Spo2 = r.Spo2
	p.Allergies = r.Allergies
	p.Medications = r.Medications
	p.Surgeries = r.Surgeries
	p.FamilyHistory = r.FamilyHistory
	p.Habits = r.Habits
	p.Vaccines = r.Vaccines
	p.ChronicConditions = r.ChronicConditions
}
