package response

import (
	"time"

	"postjourney/internal/data/entity"
)

type ConsultationResponse struct {
	ID                 string                    `json:"id"`
	PatientID          string                    `json:"patient_id"`
	DoctorID           string                    `json:"doctor_id"`
	DoctorName         string                    `json:"doctor_name"`
	ProblemDescription string                    `json:"problem_description"`
	ConsultationDate   string                    `json:"consultation_date"`
	TotalFee           int64                     `json:"total_fee"`
	AdminCommission    int64                     `json:"admin_commission"`
	DoctorShare        int64                     `json:"doctor_share"`
	Status             entity.ConsultationStatus `json:"status"`
	PaymentStatus      string                    `json:"payment_status"`
	CreatedAt          time.Time                 `json:"created_at"`
}

type DoctorResponse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Specialization string `json:"specialization"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Fee            int64  `json:"fee"`
	ImageURL       string `json:"image_url,omitempty"`
}

func ConsultationToResponse(c *entity.Consultation) ConsultationResponse {
	return ConsultationResponse{
		ID:                 c.ID.String(),
		PatientID:          c.PatientID.String(),
		DoctorID:           c.DoctorID.String(),
		DoctorName:         c.DoctorName,
		ProblemDescription: c.ProblemDescription,
		ConsultationDate:   c.ConsultationDate.Format("2006-01-02"),
		TotalFee:           c.TotalFee,
		AdminCommission:    c.AdminCommission,
		DoctorShare:        c.DoctorShare,
		Status:             c.Status,
		PaymentStatus:      c.PaymentStatus,
		CreatedAt:          c.CreatedAt,
	}
}

func DoctorToResponse(d *entity.Doctor) DoctorResponse {
	return DoctorResponse{
		ID:             d.ID.String(),
		Name:           d.Name,
		Specialization: d.Specialization,
		Email:          d.Email,
		Phone:          d.Phone,
		Fee:            d.Fee,
		ImageURL:       d.ImageURL,
	}
}
