// Package flow maps orchestration outcomes to navigation targets. It holds
// no state; clients follow the returned destination after each call.
package flow

import "github.com/google/uuid"

// Kind names a logical destination on the route surface.
type Kind string

const (
	KindRegister       Kind = "register"
	KindNewAppointment Kind = "new-appointment"
	KindConfirmation   Kind = "confirmation"
	KindDashboard      Kind = "dashboard"
	KindLockedGate     Kind = "locked-gate"
)

// Destination is a navigation target parameterized by the opaque identifiers
// the orchestration produced.
type Destination struct {
	Kind          Kind   `json:"destination"`
	UserID        string `json:"user_id,omitempty"`
	PatientID     string `json:"patient_id,omitempty"`
	AppointmentID string `json:"appointment_id,omitempty"`
}

// Register sends the client to the patient registration form for an account.
func Register(userID uuid.UUID) Destination {
	return Destination{Kind: KindRegister, UserID: userID.String()}
}

// NewAppointment sends the client to the appointment request form for an
// already registered patient.
func NewAppointment(patientID uuid.UUID) Destination {
	return Destination{Kind: KindNewAppointment, PatientID: patientID.String()}
}

// Confirmation sends the client to the confirmation view for a newly created
// appointment.
func Confirmation(userID, appointmentID uuid.UUID) Destination {
	return Destination{
		Kind:          KindConfirmation,
		UserID:        userID.String(),
		AppointmentID: appointmentID.String(),
	}
}

// Dashboard sends an unlocked admin to the dashboard.
func Dashboard() Destination {
	return Destination{Kind: KindDashboard}
}

// LockedGate sends the client back to the locked entry point.
func LockedGate() Destination {
	return Destination{Kind: KindLockedGate}
}
