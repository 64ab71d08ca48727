package store_test

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Madhav-Gupta-28/upi-paysim-backend-go/store"
)

func TestMemoryStoreConformance(t *testing.T) {
	testStoreConformance(t, store.NewMemoryStore())
}

func TestMemoryStoreCreateGeneratesUniqueIDs(t *testing.T) {
	s := store.NewMemoryStore()
	ctx := context.Background()

	const n = 1000
	seen := make(map[string]bool, n)
	for i := 0; i < n; i++ {
		tx, err := s.Create(ctx, sampleRequest())
		require.NoError(t, err)
		require.False(t, seen[tx.ID], "duplicate id %s", tx.ID)
		seen[tx.ID] = true
	}
	require.Equal(t, n, s.Len())
}

func TestMemoryStoreConcurrentCreates(t *testing.T) {
	s := store.NewMemoryStore()
	ctx := context.Background()

	const workers = 16
	const perWorker = 50

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				if _, err := s.Create(ctx, sampleRequest()); err != nil {
					t.Errorf("create failed: %v", err)
				}
			}
		}()
	}
	wg.Wait()

	require.Equal(t, workers*perWorker, s.Len())
}

func TestMemoryStoreRepeatedGetIsByteIdentical(t *testing.T) {
	s := store.NewMemoryStore()
	ctx := context.Background()

	created, err := s.Create(ctx, sampleRequest())
	require.NoError(t, err)

	first, err := s.Get(ctx, created.ID)
	require.NoError(t, err)
	firstJSON, err := json.Marshal(first)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		again, err := s.Get(ctx, created.ID)
		require.NoError(t, err)
		againJSON, err := json.Marshal(again)
		require.NoError(t, err)
		require.Equal(t, string(firstJSON), string(againJSON))
	}
}

func TestMemoryStoreGetReturnsCopies(t *testing.T) {
	s := store.NewMemoryStore()
	ctx := context.Background()

	created, err := s.Create(ctx, sampleRequest())
	require.NoError(t, err)

	got, err := s.Get(ctx, created.ID)
	require.NoError(t, err)
	got.SenderName = "Mallory"

	again, err := s.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "John Doe", again.SenderName)
}
