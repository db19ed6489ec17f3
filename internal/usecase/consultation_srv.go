package usecase

import (
	"context"
	"time"

	"postjourney/internal/data/entity"
	"postjourney/internal/data/repository"
	"postjourney/internal/dto/request"
	"postjourney/internal/dto/response"
	"postjourney/pkg/apperror"
	"postjourney/pkg/database"
	"postjourney/pkg/utils"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ConsultationService interface {
	CreateDoctor(ctx context.Context, req *request.CreateDoctorRequest) (*response.DoctorResponse, error)
	ListDoctors(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.DoctorResponse], error)
	GetDoctor(ctx context.Context, doctorID string) (*response.DoctorResponse, error)

	BookConsultation(ctx context.Context, patientID string, req *request.BookConsultationRequest) (*response.ConsultationResponse, error)
	GetConsultation(ctx context.Context, actorID, role, consultationID string) (*response.ConsultationResponse, error)
	GetPatientConsultations(ctx context.Context, patientID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ConsultationResponse], error)
	UpdateStatus(ctx context.Context, consultationID string, req *request.UpdateConsultationStatusRequest) (*response.ConsultationResponse, error)
}

type consultationService struct {
	db     database.PgxIface
	repo   *repository.Repository
	ledger LedgerService
	config *utils.Config
	log    *zap.Logger
}

func NewConsultationService(db database.PgxIface, repo *repository.Repository, ledger LedgerService, config *utils.Config, log *zap.Logger) ConsultationService {
	return &consultationService{
		db:     db,
		repo:   repo,
		ledger: ledger,
		config: config,
		log:    log.With(zap.String("service", "consultation")),
	}
}

func (s *consultationService) CreateDoctor(ctx context.Context, req *request.CreateDoctorRequest) (*response.DoctorResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create doctor validation failed", zap.Any("errors", errs))
		return nil, apperror.ValidationFields("validation failed: "+utils.FormatValidationErrors(errs), errs)
	}

	now := time.Now()
	doctor := &entity.Doctor{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:           req.Name,
		Specialization: req.Specialization,
		Email:          req.Email,
		Phone:          req.Phone,
		Fee:            req.Fee,
		ImageURL:       req.ImageURL,
	}

	if err := s.repo.Doctor.Create(ctx, doctor); err != nil {
		return nil, err
	}

	s.log.Info("Doctor created",
		zap.String("doctor_id", doctor.ID.String()),
		zap.String("name", doctor.Name),
		zap.Int64("fee", doctor.Fee),
	)

	resp := response.DoctorToResponse(doctor)
	return &resp, nil
}

func (s *consultationService) ListDoctors(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.DoctorResponse], error) {
	doctors, err := s.repo.Doctor.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		return nil, err
	}

	total, err := s.repo.Doctor.Count(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]response.DoctorResponse, len(doctors))
	for i, doctor := range doctors {
		responses[i] = response.DoctorToResponse(doctor)
	}

	return response.NewPaginatedResponse(responses, req.Page, req.PerPage, total), nil
}

func (s *consultationService) GetDoctor(ctx context.Context, doctorID string) (*response.DoctorResponse, error) {
	id, err := uuid.Parse(doctorID)
	if err != nil {
		return nil, apperror.Validation("invalid doctor ID format " + doctorID)
	}

	doctor, err := s.repo.Doctor.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, apperror.NotFound("doctor", doctorID)
	}

	resp := response.DoctorToResponse(doctor)
	return &resp, nil
}

func (s *consultationService) BookConsultation(ctx context.Context, patientID string, req *request.BookConsultationRequest) (*response.ConsultationResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Book consultation validation failed", zap.Any("errors", errs))
		return nil, apperror.ValidationFields("validation failed: "+utils.FormatValidationErrors(errs), errs)
	}

	patientUUID, err := uuid.Parse(patientID)
	if err != nil {
		return nil, apperror.Validation("invalid patient ID format " + patientID)
	}

	doctorID, err := uuid.Parse(req.DoctorID)
	if err != nil {
		return nil, apperror.Validation("invalid doctor ID format " + req.DoctorID)
	}

	consultationDate, err := time.Parse(dateLayout, req.ConsultationDate)
	if err != nil {
		return nil, apperror.Validation("invalid consultation date " + req.ConsultationDate)
	}

	doctor, err := s.repo.Doctor.FindByID(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, apperror.NotFound("doctor", req.DoctorID)
	}

	// Fee snapshot and split are fixed at booking; repricing the doctor
	// never touches existing consultations.
	commission, share := entity.SplitFee(doctor.Fee, s.config.Commission.RateBps)

	now := time.Now()
	consultation := &entity.Consultation{
		BaseVersioned: entity.BaseVersioned{
			Base: entity.Base{
				ID:        uuid.New(),
				CreatedAt: now,
				UpdatedAt: now,
			},
			Version: 1,
		},
		PatientID:          patientUUID,
		DoctorID:           doctor.ID,
		DoctorName:         doctor.Name,
		ProblemDescription: req.ProblemDescription,
		ConsultationDate:   consultationDate,
		TotalFee:           doctor.Fee,
		AdminCommission:    commission,
		DoctorShare:        share,
		Status:             entity.ConsultationStatusPending,
		PaymentStatus:      entity.ConsultationPaymentSettled,
	}

	err = database.WithTx(ctx, s.db, func(tx pgx.Tx) error {
		if err := s.repo.Consultation.Create(ctx, tx, consultation); err != nil {
			return err
		}
		_, err := s.ledger.Record(ctx, tx, RecordParams{
			ReferenceID:   consultation.ID,
			ReferenceType: entity.ReferenceConsultationSplit,
			FromUser:      s.adminAccountID(),
			ToUser:        doctor.ID,
			Amount:        share,
			PaymentMethod: "wallet",
			Status:        entity.TransactionStatusCompleted,
			Notes:         "doctor share for consultation with " + doctor.Name,
			Metadata: map[string]string{
				"total_fee":  utils.FormatInt(doctor.Fee),
				"commission": utils.FormatInt(commission),
				"share":      utils.FormatInt(share),
			},
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Consultation booked",
		zap.String("consultation_id", consultation.ID.String()),
		zap.String("patient_id", patientID),
		zap.String("doctor_id", req.DoctorID),
		zap.Int64("total_fee", doctor.Fee),
		zap.Int64("commission", commission),
		zap.Int64("doctor_share", share),
	)

	resp := response.ConsultationToResponse(consultation)
	return &resp, nil
}

func (s *consultationService) GetConsultation(ctx context.Context, actorID, role, consultationID string) (*response.ConsultationResponse, error) {
	consultation, err := s.loadConsultation(ctx, consultationID)
	if err != nil {
		return nil, err
	}

	if role != "admin" {
		actorUUID, err := uuid.Parse(actorID)
		if err != nil {
			return nil, apperror.Validation("invalid actor ID format " + actorID)
		}
		if consultation.PatientID != actorUUID {
			return nil, apperror.NotFound("consultation", consultationID)
		}
	}

	resp := response.ConsultationToResponse(consultation)
	return &resp, nil
}

func (s *consultationService) GetPatientConsultations(ctx context.Context, patientID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ConsultationResponse], error) {
	patientUUID, err := uuid.Parse(patientID)
	if err != nil {
		return nil, apperror.Validation("invalid patient ID format " + patientID)
	}

	consultations, err := s.repo.Consultation.FindByPatientID(ctx, patientUUID, req.Limit(), req.Offset())
	if err != nil {
		return nil, err
	}

	total, err := s.repo.Consultation.CountByPatientID(ctx, patientUUID)
	if err != nil {
		return nil, err
	}

	responses := make([]response.ConsultationResponse, len(consultations))
	for i, consultation := range consultations {
		responses[i] = response.ConsultationToResponse(consultation)
	}

	return response.NewPaginatedResponse(responses, req.Page, req.PerPage, total), nil
}

func (s *consultationService) UpdateStatus(ctx context.Context, consultationID string, req *request.UpdateConsultationStatusRequest) (*response.ConsultationResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, apperror.ValidationFields("validation failed: "+utils.FormatValidationErrors(errs), errs)
	}

	consultation, err := s.loadConsultation(ctx, consultationID)
	if err != nil {
		return nil, err
	}

	target := entity.ConsultationStatus(req.Status)
	if !consultation.Status.CanTransitionTo(target) {
		return nil, apperror.Conflict("consultation %s cannot move from %s to %s", consultationID, string(consultation.Status), string(target))
	}

	err = database.WithTx(ctx, s.db, func(tx pgx.Tx) error {
		if target == entity.ConsultationStatusCancelled {
			// Cancelled consultations hand the settled fee back; the split
			// record flips to refunded rather than being deleted.
			if err := s.ledger.MarkRefundedByReference(ctx, tx, consultation.ID, entity.ReferenceConsultationSplit); err != nil {
				return err
			}
		}
		return s.repo.Consultation.UpdateStatusCAS(ctx, tx, consultation.ID, consultation.Version, target)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Consultation status updated",
		zap.String("consultation_id", consultationID),
		zap.String("from", string(consultation.Status)),
		zap.String("to", string(target)),
	)

	consultation.Status = target
	consultation.Version++
	resp := response.ConsultationToResponse(consultation)
	return &resp, nil
}

func (s *consultationService) loadConsultation(ctx context.Context, consultationID string) (*entity.Consultation, error) {
	id, err := uuid.Parse(consultationID)
	if err != nil {
		return nil, apperror.Validation("invalid consultation ID format " + consultationID)
	}

	consultation, err := s.repo.Consultation.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if consultation == nil {
		return nil, apperror.NotFound("consultation", consultationID)
	}
	return consultation, nil
}

func (s *consultationService) adminAccountID() uuid.UUID {
	id, err := uuid.Parse(s.config.Commission.AdminAccountID)
	if err != nil {
		return uuid.Nil
	}
	return id
}
