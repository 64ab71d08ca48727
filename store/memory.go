package store

import (
	"context"
	"sync"
	"time"

	"github.com/Madhav-Gupta-28/upi-paysim-backend-go/models"
)

var _ TransactionStore = (*MemoryStore)(nil)

// MemoryStore keeps all transactions in a process-wide map. The RWMutex
// serializes read-modify-write of a transaction's status so racing updates
// cannot be lost.
type MemoryStore struct {
	mu           sync.RWMutex
	transactions map[string]models.Transaction
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		transactions: make(map[string]models.Transaction),
	}
}

func (s *MemoryStore) Create(ctx context.Context, req models.CreateTransactionRequest) (*models.Transaction, error) {
	tx := models.Transaction{
		ID:            NewTransactionID(),
		Amount:        req.Amount,
		SenderUPIID:   req.SenderUPIID,
		ReceiverUPIID: req.ReceiverUPIID,
		SenderName:    req.SenderName,
		ReceiverName:  req.ReceiverName,
		SenderPhone:   req.SenderPhone,
		ReceiverPhone: req.ReceiverPhone,
		Status:        models.StatusPending,
		CreatedAt:     time.Now().UTC(),
	}

	s.mu.Lock()
	s.transactions[tx.ID] = tx
	s.mu.Unlock()

	return &tx, nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*models.Transaction, error) {
	s.mu.RLock()
	tx, ok := s.transactions[id]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrTransactionNotFound
	}
	return &tx, nil
}

func (s *MemoryStore) UpdateStatus(ctx context.Context, id string, status models.TransactionStatus) (*models.Transaction, error) {
	if !status.ValidTarget() {
		return nil, ErrInvalidStatus
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, ok := s.transactions[id]
	if !ok {
		return nil, ErrTransactionNotFound
	}
	if tx.Status.Terminal() {
		return nil, ErrAlreadyFinal
	}

	now := time.Now().UTC()
	tx.Status = status
	tx.UpdatedAt = &now
	s.transactions[id] = tx

	return &tx, nil
}

// Len reports the number of stored transactions.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.transactions)
}
