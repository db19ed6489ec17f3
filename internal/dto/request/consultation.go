package request

type BookConsultationRequest struct {
	DoctorID           string `json:"doctor_id" validate:"required,uuid4"`
	ProblemDescription string `json:"problem_description" validate:"required,min=2"`
	ConsultationDate   string `json:"consultation_date" validate:"required,datetime=2006-01-02"`
}

type UpdateConsultationStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=completed cancelled"`
}

type CreateDoctorRequest struct {
	Name           string `json:"name" validate:"required,min=2,max=120"`
	Specialization string `json:"specialization" validate:"required"`
	Email          string `json:"email" validate:"required,email"`
	Phone          string `json:"phone" validate:"required"`
	Fee            int64  `json:"fee" validate:"required,min=0"`
	ImageURL       string `json:"image_url,omitempty"`
}
