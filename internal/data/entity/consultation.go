package entity

import (
	"time"

	"github.com/google/uuid"
)

type ConsultationStatus string

const (
	ConsultationStatusPending   ConsultationStatus = "pending"
	ConsultationStatusCompleted ConsultationStatus = "completed"
	ConsultationStatusCancelled ConsultationStatus = "cancelled"
)

// Consultation records a doctor consultation and its fee split. The fee is
// snapshotted from the doctor at booking; AdminCommission + DoctorShare
// always equals TotalFee exactly.
type Consultation struct {
	BaseVersioned
	PatientID          uuid.UUID          `db:"patient_id"`
	DoctorID           uuid.UUID          `db:"doctor_id"`
	DoctorName         string             `db:"doctor_name"`
	ProblemDescription string             `db:"problem_description"`
	ConsultationDate   time.Time          `db:"consultation_date"`
	TotalFee           int64              `db:"total_fee"`
	AdminCommission    int64              `db:"admin_commission"`
	DoctorShare        int64              `db:"doctor_share"`
	Status             ConsultationStatus `db:"status"`
	PaymentStatus      string             `db:"payment_status"`
}

// Payment is simulated: consultations are settled at creation.
const ConsultationPaymentSettled = "settled"

func (s ConsultationStatus) CanTransitionTo(next ConsultationStatus) bool {
	return s == ConsultationStatusPending &&
		(next == ConsultationStatusCompleted || next == ConsultationStatusCancelled)
}
