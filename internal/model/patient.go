package model

import (
	"time"

	"github.com/google/uuid"
)

// Patient is the medical-intake record owned by one UserAccount. Exactly one
// patient is created per account during registration; this flow defines no
// update path.
type Patient struct {
	ID                     uuid.UUID `json:"id"`
	UserID                 uuid.UUID `json:"user_id"`
	BirthDate              time.Time `json:"birth_date"`
	Gender                 string    `json:"gender"`
	Address                string    `json:"address"`
	Occupation             string    `json:"occupation"`
	EmergencyContactName   string    `json:"emergency_contact_name"`
	EmergencyContactNumber string    `json:"emergency_contact_number"`
	PrimaryPhysician       string    `json:"primary_physician"`
	InsuranceProvider      string    `json:"insurance_provider"`
	InsurancePolicyNumber  string    `json:"insurance_policy_number"`
	Allergies              string    `json:"allergies,omitempty"`
	CurrentMedication      string    `json:"current_medication,omitempty"`
	FamilyMedicalHistory   string    `json:"family_medical_history,omitempty"`
	PastMedicalHistory     string    `json:"past_medical_history,omitempty"`
	IdentificationType     string    `json:"identification_type,omitempty"`
	IdentificationNumber   string    `json:"identification_number,omitempty"`
	TreatmentConsent       bool      `json:"treatment_consent"`
	DisclosureConsent      bool      `json:"disclosure_consent"`
	PrivacyConsent         bool      `json:"privacy_consent"`
	CreatedAt              time.Time `json:"created_at"`
	UpdatedAt              time.Time `json:"updated_at"`
}

// DocumentRef describes an identification document attached at registration.
// Only the descriptor is validated here; file storage is out of scope.
type DocumentRef struct {
	FileName string `json:"file_name" validate:"required"`
	Size     int64  `json:"size" validate:"lt=1048576"`
}

// RegisterPatientRequest carries the registration form.
type RegisterPatientRequest struct {
	UserID                  string        `json:"user_id" validate:"required,uuid"`
	Username                string        `json:"username" validate:"required,min=2,max=50"`
	Email                   string        `json:"email" validate:"required,email"`
	Phone                   string        `json:"phone" validate:"required,phone"`
	BirthDate               time.Time     `json:"birth_date" validate:"required"`
	Gender                  string        `json:"gender" validate:"required,oneof=Male Female Other"`
	Address                 string        `json:"address" validate:"required,min=5"`
	Occupation              string        `json:"occupation" validate:"required,min=3"`
	EmergencyContactName    string        `json:"emergency_contact_name" validate:"required,min=3"`
	EmergencyContactNumber  string        `json:"emergency_contact_number" validate:"required,phone"`
	PrimaryPhysician        string        `json:"primary_physician" validate:"required,min=3"`
	InsuranceProvider       string        `json:"insurance_provider" validate:"required,min=3"`
	InsurancePolicyNumber   string        `json:"insurance_policy_number" validate:"required,min=3"`
	Allergies               string        `json:"allergies,omitempty"`
	CurrentMedication       string        `json:"current_medication,omitempty"`
	FamilyMedicalHistory    string        `json:"family_medical_history,omitempty"`
	PastMedicalHistory      string        `json:"past_medical_history,omitempty"`
	IdentificationType      string        `json:"identification_type,omitempty" validate:"omitempty,idtype"`
	IdentificationNumber    string        `json:"identification_number,omitempty" validate:"omitempty,min=3,max=50"`
	IdentificationDocuments []DocumentRef `json:"identification_documents,omitempty" validate:"omitempty,max=1,dive"`
	TreatmentConsent        bool          `json:"treatment_consent" validate:"consent"`
	DisclosureConsent       bool          `json:"disclosure_consent" validate:"consent"`
	PrivacyConsent          bool          `json:"privacy_consent" validate:"consent"`
}
