package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/Madhav-Gupta-28/upi-paysim-backend-go/models"
	"github.com/Madhav-Gupta-28/upi-paysim-backend-go/store"
)

func sampleRequest() models.CreateTransactionRequest {
	return models.CreateTransactionRequest{
		Amount:        decimal.NewFromFloat(4560.00),
		SenderUPIID:   "user@upi",
		ReceiverUPIID: "merchant@upi",
		SenderName:    "John Doe",
		ReceiverName:  "Merchant Account",
		SenderPhone:   "+919876543210",
		ReceiverPhone: "+919876543211",
	}
}

// testStoreConformance exercises the TransactionStore contract against any
// backend. Integration tests reuse it against real Mongo and DynamoDB
// containers.
func testStoreConformance(t *testing.T, s store.TransactionStore) {
	ctx := context.Background()

	t.Run("create returns pending with fields intact", func(t *testing.T) {
		req := sampleRequest()
		tx, err := s.Create(ctx, req)
		require.NoError(t, err)
		require.NotEmpty(t, tx.ID)
		require.Equal(t, models.StatusPending, tx.Status)
		require.True(t, req.Amount.Equal(tx.Amount))
		require.Equal(t, req.SenderUPIID, tx.SenderUPIID)
		require.Equal(t, req.ReceiverUPIID, tx.ReceiverUPIID)
		require.Equal(t, req.SenderName, tx.SenderName)
		require.Equal(t, req.ReceiverName, tx.ReceiverName)
		require.Equal(t, req.SenderPhone, tx.SenderPhone)
		require.Equal(t, req.ReceiverPhone, tx.ReceiverPhone)
		require.False(t, tx.CreatedAt.IsZero())
		require.Nil(t, tx.UpdatedAt)
	})

	t.Run("create then get round-trips", func(t *testing.T) {
		created, err := s.Create(ctx, sampleRequest())
		require.NoError(t, err)

		got, err := s.Get(ctx, created.ID)
		require.NoError(t, err)
		require.Equal(t, created.ID, got.ID)
		require.Equal(t, created.Status, got.Status)
		require.True(t, created.Amount.Equal(got.Amount))
		require.Equal(t, created.SenderUPIID, got.SenderUPIID)
		// Backends may truncate timestamps to millisecond precision.
		require.WithinDuration(t, created.CreatedAt, got.CreatedAt, time.Millisecond)
	})

	t.Run("update status sets updated_at", func(t *testing.T) {
		created, err := s.Create(ctx, sampleRequest())
		require.NoError(t, err)

		updated, err := s.UpdateStatus(ctx, created.ID, models.StatusSuccess)
		require.NoError(t, err)
		require.Equal(t, models.StatusSuccess, updated.Status)
		require.NotNil(t, updated.UpdatedAt)
		require.False(t, updated.UpdatedAt.Before(updated.CreatedAt))

		got, err := s.Get(ctx, created.ID)
		require.NoError(t, err)
		require.Equal(t, models.StatusSuccess, got.Status)
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		_, err := s.Get(ctx, "UNKNOWNID")
		require.ErrorIs(t, err, store.ErrTransactionNotFound)

		_, err = s.UpdateStatus(ctx, "UNKNOWNID", models.StatusFailed)
		require.ErrorIs(t, err, store.ErrTransactionNotFound)
	})

	t.Run("rejects statuses outside the enum", func(t *testing.T) {
		created, err := s.Create(ctx, sampleRequest())
		require.NoError(t, err)

		_, err = s.UpdateStatus(ctx, created.ID, models.TransactionStatus("refunded"))
		require.ErrorIs(t, err, store.ErrInvalidStatus)

		_, err = s.UpdateStatus(ctx, created.ID, models.StatusPending)
		require.ErrorIs(t, err, store.ErrInvalidStatus)

		got, err := s.Get(ctx, created.ID)
		require.NoError(t, err)
		require.Equal(t, models.StatusPending, got.Status)
	})

	t.Run("terminal state is frozen", func(t *testing.T) {
		created, err := s.Create(ctx, sampleRequest())
		require.NoError(t, err)

		_, err = s.UpdateStatus(ctx, created.ID, models.StatusFailed)
		require.NoError(t, err)

		_, err = s.UpdateStatus(ctx, created.ID, models.StatusSuccess)
		require.ErrorIs(t, err, store.ErrAlreadyFinal)

		got, err := s.Get(ctx, created.ID)
		require.NoError(t, err)
		require.Equal(t, models.StatusFailed, got.Status)
	})
}
