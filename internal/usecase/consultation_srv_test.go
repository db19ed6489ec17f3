package usecase

import (
	"context"
	"testing"

	"postjourney/internal/data/entity"
	"postjourney/internal/dto/request"
	"postjourney/pkg/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateDoctor(t *testing.T) {
	env := newTestEnv()

	doctor, err := env.consultation.CreateDoctor(context.Background(), &request.CreateDoctorRequest{
		Name:           "Dr. Vikram Shah",
		Specialization: "Orthopedics",
		Email:          "vikram.shah@example.com",
		Phone:          "9111111111",
		Fee:            750,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(750), doctor.Fee)
	assert.Len(t, env.doctors.doctors, 1)
}

func TestCreateDoctorRejectsBadEmail(t *testing.T) {
	env := newTestEnv()

	_, err := env.consultation.CreateDoctor(context.Background(), &request.CreateDoctorRequest{
		Name:           "Dr. Vikram Shah",
		Specialization: "Orthopedics",
		Email:          "not-an-email",
		Phone:          "9111111111",
		Fee:            750,
	})

	var validationErr *apperror.ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestBookConsultationSplitsFee(t *testing.T) {
	env := newTestEnv()
	patient := uuid.New()
	doctor := env.seedDoctor(500)

	consultation, err := env.consultation.BookConsultation(context.Background(), patient.String(),
		&request.BookConsultationRequest{
			DoctorID:           doctor.ID.String(),
			ProblemDescription: "persistent cough",
			ConsultationDate:   "2024-02-10",
		})
	require.NoError(t, err)

	assert.Equal(t, int64(500), consultation.TotalFee)
	assert.Equal(t, int64(100), consultation.AdminCommission)
	assert.Equal(t, int64(400), consultation.DoctorShare)
	assert.Equal(t, entity.ConsultationStatusPending, consultation.Status)
	assert.Equal(t, entity.ConsultationPaymentSettled, consultation.PaymentStatus)
	assert.Equal(t, doctor.Name, consultation.DoctorName)

	// Doctor share recorded in the ledger.
	records, err := env.transactions.FindByReference(context.Background(), uuid.MustParse(consultation.ID), entity.ReferenceConsultationSplit)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, int64(400), records[0].Amount)
	assert.Equal(t, doctor.ID, records[0].ToUser)
	assert.Equal(t, entity.TransactionStatusCompleted, records[0].Status)
	assert.Equal(t, "100", records[0].Metadata["commission"])
}

func TestBookConsultationUnknownDoctor(t *testing.T) {
	env := newTestEnv()

	_, err := env.consultation.BookConsultation(context.Background(), uuid.New().String(),
		&request.BookConsultationRequest{
			DoctorID:           uuid.New().String(),
			ProblemDescription: "persistent cough",
			ConsultationDate:   "2024-02-10",
		})

	var notFoundErr *apperror.NotFoundError
	require.ErrorAs(t, err, &notFoundErr)
}

func TestConsultationFeeSnapshotSurvivesRepricing(t *testing.T) {
	env := newTestEnv()
	doctor := env.seedDoctor(500)

	consultation, err := env.consultation.BookConsultation(context.Background(), uuid.New().String(),
		&request.BookConsultationRequest{
			DoctorID:           doctor.ID.String(),
			ProblemDescription: "follow-up",
			ConsultationDate:   "2024-02-10",
		})
	require.NoError(t, err)

	env.doctors.doctors[doctor.ID].Fee = 900

	found, err := env.consultation.GetConsultation(context.Background(), consultation.PatientID, "patient", consultation.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(500), found.TotalFee)
}

func TestConsultationComplete(t *testing.T) {
	env := newTestEnv()
	doctor := env.seedDoctor(500)

	consultation, err := env.consultation.BookConsultation(context.Background(), uuid.New().String(),
		&request.BookConsultationRequest{
			DoctorID:           doctor.ID.String(),
			ProblemDescription: "persistent cough",
			ConsultationDate:   "2024-02-10",
		})
	require.NoError(t, err)

	completed, err := env.consultation.UpdateStatus(context.Background(), consultation.ID,
		&request.UpdateConsultationStatusRequest{Status: "completed"})
	require.NoError(t, err)
	assert.Equal(t, entity.ConsultationStatusCompleted, completed.Status)

	// Completed is terminal.
	_, err = env.consultation.UpdateStatus(context.Background(), consultation.ID,
		&request.UpdateConsultationStatusRequest{Status: "cancelled"})
	var conflictErr *apperror.ConflictError
	require.ErrorAs(t, err, &conflictErr)
}

func TestConsultationCancelRefundsSplit(t *testing.T) {
	env := newTestEnv()
	doctor := env.seedDoctor(500)

	consultation, err := env.consultation.BookConsultation(context.Background(), uuid.New().String(),
		&request.BookConsultationRequest{
			DoctorID:           doctor.ID.String(),
			ProblemDescription: "persistent cough",
			ConsultationDate:   "2024-02-10",
		})
	require.NoError(t, err)

	cancelled, err := env.consultation.UpdateStatus(context.Background(), consultation.ID,
		&request.UpdateConsultationStatusRequest{Status: "cancelled"})
	require.NoError(t, err)
	assert.Equal(t, entity.ConsultationStatusCancelled, cancelled.Status)

	records, err := env.transactions.FindByReference(context.Background(), uuid.MustParse(consultation.ID), entity.ReferenceConsultationSplit)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, entity.TransactionStatusRefunded, records[0].Status)
}

func TestGetConsultationHiddenFromStrangers(t *testing.T) {
	env := newTestEnv()
	patient := uuid.New()
	doctor := env.seedDoctor(500)

	consultation, err := env.consultation.BookConsultation(context.Background(), patient.String(),
		&request.BookConsultationRequest{
			DoctorID:           doctor.ID.String(),
			ProblemDescription: "persistent cough",
			ConsultationDate:   "2024-02-10",
		})
	require.NoError(t, err)

	_, err = env.consultation.GetConsultation(context.Background(), uuid.New().String(), "patient", consultation.ID)
	var notFoundErr *apperror.NotFoundError
	require.ErrorAs(t, err, &notFoundErr)

	_, err = env.consultation.GetConsultation(context.Background(), uuid.New().String(), "admin", consultation.ID)
	require.NoError(t, err)
}

func TestGetPatientConsultations(t *testing.T) {
	env := newTestEnv()
	patient := uuid.New()
	doctor := env.seedDoctor(500)

	for i := 0; i < 2; i++ {
		_, err := env.consultation.BookConsultation(context.Background(), patient.String(),
			&request.BookConsultationRequest{
				DoctorID:           doctor.ID.String(),
				ProblemDescription: "check-up",
				ConsultationDate:   "2024-02-10",
			})
		require.NoError(t, err)
	}

	page, err := env.consultation.GetPatientConsultations(context.Background(), patient.String(), &request.PaginatedRequest{Page: 1, PerPage: 10})
	require.NoError(t, err)
	assert.Len(t, page.Data, 2)
	assert.Equal(t, int64(2), page.Pagination.Total)
}
