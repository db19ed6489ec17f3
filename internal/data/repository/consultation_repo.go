package repository

import (
	"context"
	"fmt"

	"postjourney/internal/data/entity"
	"postjourney/pkg/apperror"
	"postjourney/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ConsultationRepository interface {
	Create(ctx context.Context, q database.Querier, consultation *entity.Consultation) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Consultation, error)
	FindByPatientID(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*entity.Consultation, error)
	CountByPatientID(ctx context.Context, patientID uuid.UUID) (int64, error)
	UpdateStatusCAS(ctx context.Context, q database.Querier, id uuid.UUID, version int64, status entity.ConsultationStatus) error
}

type consultationRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewConsultationRepository(db database.PgxIface, log *zap.Logger) ConsultationRepository {
	return &consultationRepository{
		db:  db,
		log: log.With(zap.String("repository", "consultation")),
	}
}

const consultationColumns = `id, patient_id, doctor_id, doctor_name, problem_description,
	consultation_date, total_fee, admin_commission, doctor_share, status, payment_status,
	version, created_at, updated_at`

func scanConsultation(row pgx.Row) (*entity.Consultation, error) {
	var c entity.Consultation
	err := row.Scan(
		&c.ID,
		&c.PatientID,
		&c.DoctorID,
		&c.DoctorName,
		&c.ProblemDescription,
		&c.ConsultationDate,
		&c.TotalFee,
		&c.AdminCommission,
		&c.DoctorShare,
		&c.Status,
		&c.PaymentStatus,
		&c.Version,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *consultationRepository) Create(ctx context.Context, q database.Querier, consultation *entity.Consultation) error {
	query := `
		INSERT INTO consultations (id, patient_id, doctor_id, doctor_name, problem_description,
			consultation_date, total_fee, admin_commission, doctor_share, status, payment_status,
			version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err := q.Exec(ctx, query,
		consultation.ID,
		consultation.PatientID,
		consultation.DoctorID,
		consultation.DoctorName,
		consultation.ProblemDescription,
		consultation.ConsultationDate,
		consultation.TotalFee,
		consultation.AdminCommission,
		consultation.DoctorShare,
		consultation.Status,
		consultation.PaymentStatus,
		consultation.Version,
		consultation.CreatedAt,
		consultation.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create consultation",
			zap.Error(err),
			zap.String("patient_id", consultation.PatientID.String()),
			zap.String("doctor_id", consultation.DoctorID.String()),
		)
		return fmt.Errorf("create consultation with doctor %s: %w", consultation.DoctorID.String(), err)
	}

	return nil
}

func (r *consultationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Consultation, error) {
	query := `SELECT ` + consultationColumns + ` FROM consultations WHERE id = $1`

	consultation, err := scanConsultation(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find consultation by ID",
			zap.Error(err),
			zap.String("consultation_id", id.String()),
		)
		return nil, fmt.Errorf("find consultation by ID %s: %w", id.String(), err)
	}

	return consultation, nil
}

func (r *consultationRepository) FindByPatientID(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*entity.Consultation, error) {
	query := `
		SELECT ` + consultationColumns + `
		FROM consultations
		WHERE patient_id = $1
		ORDER BY consultation_date DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, patientID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find consultations by patient ID",
			zap.Error(err),
			zap.String("patient_id", patientID.String()),
		)
		return nil, fmt.Errorf("find consultations by patient ID %s: %w", patientID.String(), err)
	}
	defer rows.Close()

	var consultations []*entity.Consultation
	for rows.Next() {
		consultation, err := scanConsultation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan consultation row: %w", err)
		}
		consultations = append(consultations, consultation)
	}

	return consultations, rows.Err()
}

func (r *consultationRepository) CountByPatientID(ctx context.Context, patientID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM consultations WHERE patient_id = $1`

	var count int64
	if err := r.db.QueryRow(ctx, query, patientID).Scan(&count); err != nil {
		r.log.Error("Failed to count consultations by patient ID",
			zap.Error(err),
			zap.String("patient_id", patientID.String()),
		)
		return 0, fmt.Errorf("count consultations by patient ID %s: %w", patientID.String(), err)
	}

	return count, nil
}

func (r *consultationRepository) UpdateStatusCAS(ctx context.Context, q database.Querier, id uuid.UUID, version int64, status entity.ConsultationStatus) error {
	query := `
		UPDATE consultations
		SET status = $3, version = version + 1, updated_at = NOW()
		WHERE id = $1 AND version = $2
	`

	result, err := q.Exec(ctx, query, id, version, status)
	if err != nil {
		r.log.Error("Failed to update consultation status",
			zap.Error(err),
			zap.String("consultation_id", id.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update consultation %s status to %s: %w", id.String(), string(status), err)
	}

	if result.RowsAffected() == 0 {
		return apperror.Conflict("consultation %s was modified concurrently", id.String())
	}

	return nil
}
