package repository

import (
	"context"
	"fmt"

	"postjourney/internal/data/entity"
	"postjourney/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type DoctorRepository interface {
	Create(ctx context.Context, doctor *entity.Doctor) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Doctor, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.Doctor, error)
	Count(ctx context.Context) (int64, error)
}

type doctorRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewDoctorRepository(db database.PgxIface, log *zap.Logger) DoctorRepository {
	return &doctorRepository{
		db:  db,
		log: log.With(zap.String("repository", "doctor")),
	}
}

func (r *doctorRepository) Create(ctx context.Context, doctor *entity.Doctor) error {
	query := `
		INSERT INTO doctors (id, name, specialization, email, phone, fee, image_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Exec(ctx, query,
		doctor.ID,
		doctor.Name,
		doctor.Specialization,
		doctor.Email,
		doctor.Phone,
		doctor.Fee,
		doctor.ImageURL,
		doctor.CreatedAt,
		doctor.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create doctor",
			zap.Error(err),
			zap.String("email", doctor.Email),
		)
		return fmt.Errorf("create doctor %s: %w", doctor.Email, err)
	}

	return nil
}

func (r *doctorRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Doctor, error) {
	query := `
		SELECT id, name, specialization, email, phone, fee, image_url, created_at, updated_at
		FROM doctors
		WHERE id = $1
	`

	var doctor entity.Doctor
	err := r.db.QueryRow(ctx, query, id).Scan(
		&doctor.ID,
		&doctor.Name,
		&doctor.Specialization,
		&doctor.Email,
		&doctor.Phone,
		&doctor.Fee,
		&doctor.ImageURL,
		&doctor.CreatedAt,
		&doctor.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find doctor by ID",
			zap.Error(err),
			zap.String("doctor_id", id.String()),
		)
		return nil, fmt.Errorf("find doctor by ID %s: %w", id.String(), err)
	}

	return &doctor, nil
}

func (r *doctorRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.Doctor, error) {
	query := `
		SELECT id, name, specialization, email, phone, fee, image_url, created_at, updated_at
		FROM doctors
		ORDER BY name
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to find doctors", zap.Error(err))
		return nil, fmt.Errorf("find doctors: %w", err)
	}
	defer rows.Close()

	var doctors []*entity.Doctor
	for rows.Next() {
		var doctor entity.Doctor
		err := rows.Scan(
			&doctor.ID,
			&doctor.Name,
			&doctor.Specialization,
			&doctor.Email,
			&doctor.Phone,
			&doctor.Fee,
			&doctor.ImageURL,
			&doctor.CreatedAt,
			&doctor.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan doctor row", zap.Error(err))
			return nil, fmt.Errorf("scan doctor row: %w", err)
		}
		doctors = append(doctors, &doctor)
	}

	return doctors, rows.Err()
}

func (r *doctorRepository) Count(ctx context.Context) (int64, error) {
	query := `SELECT COUNT(*) FROM doctors`

	var count int64
	if err := r.db.QueryRow(ctx, query).Scan(&count); err != nil {
		r.log.Error("Failed to count doctors", zap.Error(err))
		return 0, fmt.Errorf("count doctors: %w", err)
	}

	return count, nil
}
