package usecase

import (
	"context"
	"testing"

	"postjourney/internal/data/entity"
	"postjourney/pkg/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedgerRecordDefaultsPending(t *testing.T) {
	env := newTestEnv()

	record, err := env.ledger.Record(context.Background(), &fakeDB{}, RecordParams{
		ReferenceID:   uuid.New(),
		ReferenceType: entity.ReferenceBooking,
		FromUser:      uuid.New(),
		ToUser:        uuid.New(),
		Amount:        1000,
		PaymentMethod: "upi",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.TransactionStatusPending, record.Status)
	assert.Equal(t, int64(1), record.Version)
}

func TestLedgerRecordRejectsNegativeAmount(t *testing.T) {
	env := newTestEnv()

	_, err := env.ledger.Record(context.Background(), &fakeDB{}, RecordParams{
		ReferenceID:   uuid.New(),
		ReferenceType: entity.ReferenceBooking,
		Amount:        -1,
	})

	var validationErr *apperror.ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestLedgerUpdateStatusEdges(t *testing.T) {
	env := newTestEnv()

	record, err := env.ledger.Record(context.Background(), &fakeDB{}, RecordParams{
		ReferenceID:   uuid.New(),
		ReferenceType: entity.ReferenceBooking,
		Amount:        1000,
	})
	require.NoError(t, err)

	// pending -> refunded skips completed.
	_, err = env.ledger.UpdateStatus(context.Background(), record.ID.String(), entity.TransactionStatusRefunded)
	var conflictErr *apperror.ConflictError
	require.ErrorAs(t, err, &conflictErr)

	completed, err := env.ledger.UpdateStatus(context.Background(), record.ID.String(), entity.TransactionStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, entity.TransactionStatusCompleted, completed.Status)

	refunded, err := env.ledger.UpdateStatus(context.Background(), record.ID.String(), entity.TransactionStatusRefunded)
	require.NoError(t, err)
	assert.Equal(t, entity.TransactionStatusRefunded, refunded.Status)

	// Refunded is final.
	_, err = env.ledger.UpdateStatus(context.Background(), record.ID.String(), entity.TransactionStatusCompleted)
	require.ErrorAs(t, err, &conflictErr)
}

func TestLedgerMarkRefundedByReferenceSkipsNonCompleted(t *testing.T) {
	env := newTestEnv()
	referenceID := uuid.New()

	completed, err := env.ledger.Record(context.Background(), &fakeDB{}, RecordParams{
		ReferenceID:   referenceID,
		ReferenceType: entity.ReferenceBooking,
		Amount:        500,
		Status:        entity.TransactionStatusCompleted,
	})
	require.NoError(t, err)

	pending, err := env.ledger.Record(context.Background(), &fakeDB{}, RecordParams{
		ReferenceID:   referenceID,
		ReferenceType: entity.ReferenceBooking,
		Amount:        200,
	})
	require.NoError(t, err)

	require.NoError(t, env.ledger.MarkRefundedByReference(context.Background(), &fakeDB{}, referenceID, entity.ReferenceBooking))

	assert.Equal(t, entity.TransactionStatusRefunded, env.transactions.records[completed.ID].Status)
	assert.Equal(t, entity.TransactionStatusPending, env.transactions.records[pending.ID].Status)
}

func TestLedgerGetTransactionNotFound(t *testing.T) {
	env := newTestEnv()

	_, err := env.ledger.GetTransaction(context.Background(), uuid.New().String())

	var notFoundErr *apperror.NotFoundError
	require.ErrorAs(t, err, &notFoundErr)
}
