package store

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/Madhav-Gupta-28/upi-paysim-backend-go/models"
)

var (
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrInvalidStatus       = errors.New("invalid transaction status")
	ErrAlreadyFinal        = errors.New("transaction already in a terminal state")
)

// TransactionStore owns every transaction record for the life of the process.
// No other component mutates records directly.
type TransactionStore interface {
	Create(ctx context.Context, req models.CreateTransactionRequest) (*models.Transaction, error)
	Get(ctx context.Context, id string) (*models.Transaction, error)
	UpdateStatus(ctx context.Context, id string, status models.TransactionStatus) (*models.Transaction, error)
}

// NewTransactionID returns a fresh transaction ID. UUID-backed so uniqueness
// is a guarantee, uppercased to keep the ID shape of the original API.
func NewTransactionID() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
}
