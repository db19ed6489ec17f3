package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBookingStatusTransitions(t *testing.T) {
	legal := []struct {
		from BookingStatus
		to   BookingStatus
	}{
		{BookingStatusPending, BookingStatusConfirmed},
		{BookingStatusPending, BookingStatusCancelled},
		{BookingStatusConfirmed, BookingStatusInProgress},
		{BookingStatusConfirmed, BookingStatusCancelled},
		{BookingStatusInProgress, BookingStatusCompleted},
	}

	for _, edge := range legal {
		assert.True(t, edge.from.CanTransitionTo(edge.to),
			"%s -> %s should be legal", edge.from, edge.to)
	}

	illegal := []struct {
		from BookingStatus
		to   BookingStatus
	}{
		{BookingStatusPending, BookingStatusCompleted},
		{BookingStatusPending, BookingStatusInProgress},
		{BookingStatusInProgress, BookingStatusCancelled},
		{BookingStatusCompleted, BookingStatusCancelled},
		{BookingStatusCompleted, BookingStatusCompleted},
		{BookingStatusCancelled, BookingStatusPending},
	}

	for _, edge := range illegal {
		assert.False(t, edge.from.CanTransitionTo(edge.to),
			"%s -> %s should be illegal", edge.from, edge.to)
	}
}

func TestBookingStatusTerminal(t *testing.T) {
	assert.True(t, BookingStatusCompleted.Terminal())
	assert.True(t, BookingStatusCancelled.Terminal())
	assert.False(t, BookingStatusPending.Terminal())
	assert.False(t, BookingStatusConfirmed.Terminal())
	assert.False(t, BookingStatusInProgress.Terminal())
}

func TestPaymentMethodIsOnline(t *testing.T) {
	assert.True(t, PaymentMethodUPI.IsOnline())
	assert.True(t, PaymentMethodCard.IsOnline())
	assert.True(t, PaymentMethodNetbanking.IsOnline())
	assert.True(t, PaymentMethodWallet.IsOnline())
	assert.False(t, PaymentMethodCOD.IsOnline())
}

func TestConsultationStatusTransitions(t *testing.T) {
	assert.True(t, ConsultationStatusPending.CanTransitionTo(ConsultationStatusCompleted))
	assert.True(t, ConsultationStatusPending.CanTransitionTo(ConsultationStatusCancelled))
	assert.False(t, ConsultationStatusCompleted.CanTransitionTo(ConsultationStatusCancelled))
	assert.False(t, ConsultationStatusCancelled.CanTransitionTo(ConsultationStatusPending))
}

func TestTransactionStatusTransitions(t *testing.T) {
	assert.True(t, TransactionStatusPending.CanTransitionTo(TransactionStatusCompleted))
	assert.True(t, TransactionStatusPending.CanTransitionTo(TransactionStatusFailed))
	assert.True(t, TransactionStatusCompleted.CanTransitionTo(TransactionStatusRefunded))
	assert.False(t, TransactionStatusFailed.CanTransitionTo(TransactionStatusCompleted))
	assert.False(t, TransactionStatusRefunded.CanTransitionTo(TransactionStatusCompleted))
	assert.False(t, TransactionStatusPending.CanTransitionTo(TransactionStatusRefunded))
}

func TestVerificationCanSubmit(t *testing.T) {
	assert.True(t, VerificationUnsubmitted.CanSubmit())
	assert.True(t, VerificationRejected.CanSubmit())
	assert.False(t, VerificationPending.CanSubmit())
	assert.False(t, VerificationApproved.CanSubmit())
}
