package models

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Amounts go over the wire as JSON numbers, same as the browser client sends them.
	decimal.MarshalJSONWithoutQuotes = true
}

type TransactionStatus string

const (
	StatusPending TransactionStatus = "pending"
	StatusSuccess TransactionStatus = "success"
	StatusFailed  TransactionStatus = "failed"
)

// Terminal reports whether no further status transitions are allowed.
func (s TransactionStatus) Terminal() bool {
	return s == StatusSuccess || s == StatusFailed
}

// ValidTarget reports whether s is an acceptable target for a status update.
func (s TransactionStatus) ValidTarget() bool {
	return s == StatusSuccess || s == StatusFailed
}

type Transaction struct {
	ID            string            `json:"id"`
	Amount        decimal.Decimal   `json:"amount"`
	SenderUPIID   string            `json:"sender_upi_id"`
	ReceiverUPIID string            `json:"receiver_upi_id"`
	SenderName    string            `json:"sender_name"`
	ReceiverName  string            `json:"receiver_name"`
	SenderPhone   string            `json:"sender_phone"`
	ReceiverPhone string            `json:"receiver_phone"`
	Status        TransactionStatus `json:"status"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     *time.Time        `json:"updated_at,omitempty"`
}

type CreateTransactionRequest struct {
	Amount        decimal.Decimal `json:"amount"`
	SenderUPIID   string          `json:"sender_upi_id"`
	ReceiverUPIID string          `json:"receiver_upi_id"`
	SenderName    string          `json:"sender_name"`
	ReceiverName  string          `json:"receiver_name"`
	SenderPhone   string          `json:"sender_phone"`
	ReceiverPhone string          `json:"receiver_phone"`
}

type UpdateStatusRequest struct {
	Status TransactionStatus `json:"status"`
}
