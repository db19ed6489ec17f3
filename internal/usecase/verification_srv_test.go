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

func TestVerificationSubmitAndApprove(t *testing.T) {
	env := newTestEnv()
	provider := uuid.New()
	admin := uuid.New()

	submitted, err := env.verification.Submit(context.Background(), provider.String(),
		&request.SubmitVerificationRequest{DocumentRef: "docs/gst-cert.pdf"})
	require.NoError(t, err)
	assert.Equal(t, entity.VerificationPending, submitted.Status)

	approved, err := env.verification.Decide(context.Background(), admin.String(), provider.String(),
		&request.DecideVerificationRequest{Approve: true})
	require.NoError(t, err)
	assert.Equal(t, entity.VerificationApproved, approved.Status)
	assert.Equal(t, admin.String(), approved.VerifiedBy)
	assert.NotNil(t, approved.VerifiedAt)
}

func TestVerificationStatusDefaultsUnsubmitted(t *testing.T) {
	env := newTestEnv()

	status, err := env.verification.GetStatus(context.Background(), uuid.New().String())
	require.NoError(t, err)

	assert.Equal(t, entity.VerificationUnsubmitted, status.Status)
}

func TestVerificationDoubleSubmitRejected(t *testing.T) {
	env := newTestEnv()
	provider := uuid.New()

	_, err := env.verification.Submit(context.Background(), provider.String(),
		&request.SubmitVerificationRequest{DocumentRef: "docs/a.pdf"})
	require.NoError(t, err)

	// Pending and approved submissions cannot be replaced.
	_, err = env.verification.Submit(context.Background(), provider.String(),
		&request.SubmitVerificationRequest{DocumentRef: "docs/b.pdf"})
	var conflictErr *apperror.ConflictError
	require.ErrorAs(t, err, &conflictErr)
}

func TestVerificationResubmitAfterRejection(t *testing.T) {
	env := newTestEnv()
	provider := uuid.New()
	admin := uuid.New()

	_, err := env.verification.Submit(context.Background(), provider.String(),
		&request.SubmitVerificationRequest{DocumentRef: "docs/a.pdf"})
	require.NoError(t, err)

	rejected, err := env.verification.Decide(context.Background(), admin.String(), provider.String(),
		&request.DecideVerificationRequest{Approve: false, Reason: "document unreadable"})
	require.NoError(t, err)
	assert.Equal(t, entity.VerificationRejected, rejected.Status)
	assert.Equal(t, "document unreadable", rejected.RejectionReason)

	// Resubmission resets the decision.
	resubmitted, err := env.verification.Submit(context.Background(), provider.String(),
		&request.SubmitVerificationRequest{DocumentRef: "docs/a-v2.pdf"})
	require.NoError(t, err)
	assert.Equal(t, entity.VerificationPending, resubmitted.Status)
	assert.Empty(t, resubmitted.RejectionReason)
	assert.Empty(t, resubmitted.VerifiedBy)
}

func TestVerificationRejectionRequiresReason(t *testing.T) {
	env := newTestEnv()
	provider := uuid.New()

	_, err := env.verification.Submit(context.Background(), provider.String(),
		&request.SubmitVerificationRequest{DocumentRef: "docs/a.pdf"})
	require.NoError(t, err)

	_, err = env.verification.Decide(context.Background(), uuid.New().String(), provider.String(),
		&request.DecideVerificationRequest{Approve: false})

	var validationErr *apperror.ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestVerificationDecideRequiresPending(t *testing.T) {
	env := newTestEnv()
	provider := uuid.New()
	admin := uuid.New()

	_, err := env.verification.Decide(context.Background(), admin.String(), provider.String(),
		&request.DecideVerificationRequest{Approve: true})
	var notFoundErr *apperror.NotFoundError
	require.ErrorAs(t, err, &notFoundErr)

	_, err = env.verification.Submit(context.Background(), provider.String(),
		&request.SubmitVerificationRequest{DocumentRef: "docs/a.pdf"})
	require.NoError(t, err)
	_, err = env.verification.Decide(context.Background(), admin.String(), provider.String(),
		&request.DecideVerificationRequest{Approve: true})
	require.NoError(t, err)

	// Deciding an already-approved submission conflicts.
	_, err = env.verification.Decide(context.Background(), admin.String(), provider.String(),
		&request.DecideVerificationRequest{Approve: false, Reason: "changed my mind"})
	var conflictErr *apperror.ConflictError
	require.ErrorAs(t, err, &conflictErr)
}

func TestVerificationPendingQueue(t *testing.T) {
	env := newTestEnv()

	for i := 0; i < 3; i++ {
		_, err := env.verification.Submit(context.Background(), uuid.New().String(),
			&request.SubmitVerificationRequest{DocumentRef: "docs/x.pdf"})
		require.NoError(t, err)
	}

	page, err := env.verification.ListPending(context.Background(), &request.PaginatedRequest{Page: 1, PerPage: 10})
	require.NoError(t, err)
	assert.Len(t, page.Data, 3)
	assert.Equal(t, int64(3), page.Pagination.Total)
}
