package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	apperrors "github.com/soulconnect/patient-api/pkg/errors"

	"github.com/soulconnect/patient-api/internal/model"
	"github.com/soulconnect/patient-api/internal/repository"
)

const patientColumns = `
	id, first_name, last_name, identification_number, identification_type,
	date_of_birth, email, phone, eps, address, sex_biological, gender_identity,
	marital_status, education_level, occupation, emergency_contact_name,
	emergency_contact_phone, city, municipality, neighborhood, postal_code,
	housing_type, socioeconomic_stratum, residence_duration_months, blood_type,
	height_cm, weight_kg, abdominal_circumference_cm, heart_rate_bpm,
	respiratory_rate_rpm, blood_pressure_sys, blood_pressure_dia, temperature_c,
	spo2, allergies, medications, surgeries, family_history, habits, vaccines,
	chronic_conditions, created_at, updated_at`

type patientRepository struct {
	db *sqlx.DB
}

func NewPatientRepository(db *sqlx.DB) repository.PatientRepository {
	return &patientRepository{db: db}
}

func (r *patientRepository) Create(ctx context.Context, patient *model.Patient) error {
	query := `
		INSERT INTO patients (
			id, first_name, last_name, identification_number, identification_type,
			date_of_birth, email, phone, eps, address, sex_biological, gender_identity,
			marital_status, education_level, occupation, emergency_contact_name,
			emergency_contact_phone, city, municipality, neighborhood, postal_code,
			housing_type, socioeconomic_stratum, residence_duration_months, blood_type,
			height_cm, weight_kg, abdominal_circumference_cm, heart_rate_bpm,
			respiratory_rate_rpm, blood_pressure_sys, blood_pressure_dia, temperature_c,
			spo2, allergies, medications, surgeries, family_history, habits, vaccines,
			chronic_conditions, created_at, updated_at
		) VALUES (
			:id, :first_name, :last_name, :identification_number, :identification_type,
			:date_of_birth, :email, :phone, :eps, :address, :sex_biological, :gender_identity,
			:marital_status, :education_level, :occupation, :emergency_contact_name,
			:emergency_contact_phone, :city, :municipality, :neighborhood, :postal_code,
			:housing_type, :socioeconomic_stratum, :residence_duration_months, :blood_type,
			:height_cm, :weight_kg, :abdominal_circumference_cm, :heart_rate_bpm,
			:respiratory_rate_rpm, :blood_pressure_sys, :blood_pressure_dia, :temperature_c,
			:spo2, :allergies, :medications, :surgeries, :family_history, :habits, :vaccines,
			:chronic_conditions, :created_at, :updated_at
		)
	`
	_, err := r.db.NamedExecContext(ctx, query, patient)
	if err != nil {
		if isUniqueViolation(err, "patients_identification_number_key") {
			return apperrors.NewConflict("identification number already registered", err)
		}
		return fmt.Errorf("failed to create patient: %w", err)
	}
	return nil
}

func (r *patientRepository) Get(ctx context.Context, id uuid.UUID) (*model.Patient, error) {
	query := `SELECT` + patientColumns + ` FROM patients WHERE id = $1`
	var patient model.Patient
	err := r.db.GetContext(ctx, &patient, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFound("patient", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}
	return &patient, nil
}

func (r *patientRepository) GetByIdentificationNumber(ctx context.Context, number string) (*model.Patient, error) {
	query := `SELECT` + patientColumns + ` FROM patients WHERE identification_number = $1`
	var patient model.Patient
	err := r.db.GetContext(ctx, &patient, query, number)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get patient by identification number: %w", err)
	}
	return &patient, nil
}

func (r *patientRepository) Update(ctx context.Context, patient *model.Patient) error {
	query := `
		UPDATE patients SET
			first_name = :first_name,
			last_name = :last_name,
			identification_number = :identification_number,
			identification_type = :identification_type,
			date_of_birth = :date_of_birth,
			email = :email,
			phone = :phone,
			eps = :eps,
			address = :address,
			sex_biological = :sex_biological,
			gender_identity = :gender_identity,
			marital_status = :marital_status,
			education_level = :education_level,
			occupation = :occupation,
			emergency_contact_name = :emergency_contact_name,
			emergency_contact_phone = :emergency_contact_phone,
			city = :city,
			municipality = :municipality,
			neighborhood = :neighborhood,
			postal_code = :postal_code,
			housing_type = :housing_type,
			socioeconomic_stratum = :socioeconomic_stratum,
			residence_duration_months = :residence_duration_months,
			blood_type = :blood_type,
			height_cm = :height_cm,
			weight_kg = :weight_kg,
			abdominal_circumference_cm = :abdominal_circumference_cm,
			heart_rate_bpm = :heart_rate_bpm,
			respiratory_rate_rpm = :respiratory_rate_rpm,
			blood_pressure_sys = :blood_pressure_sys,
			blood_pressure_dia = :blood_pressure_dia,
			temperature_c = :temperature_c,
			spo2 = :spo2,
			allergies = :allergies,
			medications = :medications,
			surgeries = :surgeries,
			family_history = :family_history,
			habits = :habits,
			vaccines = :vaccines,
			chronic_conditions = :chronic_conditions,
			updated_at = :updated_at
		WHERE id = :id
	`
	_, err := r.db.NamedExecContext(ctx, query, patient)
	if err != nil {
		if isUniqueViolation(err, "patients_identification_number_key") {
			return apperrors.NewConflict("identification number already registered", err)
		}
		return fmt.Errorf("failed to update patient: %w", err)
	}
	return nil
}

// Delete is deliberately unconditional: deleting an id that does not
// exist is a successful no-op.
func (r *patientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM patients WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete patient: %w", err)
	}
	return nil
}

func (r *patientRepository) List(ctx context.Context) ([]*model.Patient, error) {
	query := `SELECT` + patientColumns + ` FROM patients ORDER BY created_at DESC`
	patients := []*model.Patient{}
	err := r.db.SelectContext(ctx, &patients, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	return patients, nil
}

func (r *patientRepository) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]*model.Patient, error) {
	if len(ids) == 0 {
		return []*model.Patient{}, nil
	}

	query, args, err := sqlx.In(`SELECT`+patientColumns+` FROM patients WHERE id IN (?)`, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to build patient lookup query: %w", err)
	}
	query = r.db.Rebind(query)

	patients := []*model.Patient{}
	if err := r.db.SelectContext(ctx, &patients, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list patients by ids: %w", err)
	}
	return patients, nil
}
