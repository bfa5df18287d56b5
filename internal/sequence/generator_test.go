package sequence

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/nutribakery/internal/sequence/domain"
	"github.com/tair/nutribakery/pkg/apperr"
)

type memoryCounters struct {
	mu     sync.Mutex
	values map[string]int64
	err    error
}

func newMemoryCounters() *memoryCounters {
	return &memoryCounters{values: map[string]int64{}}
}

func (m *memoryCounters) Increment(_ context.Context, name string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return 0, m.err
	}
	m.values[name]++
	return m.values[name], nil
}

func TestAllocateStartsAtOneAndIncrements(t *testing.T) {
	gen := NewGenerator(newMemoryCounters())
	ctx := context.Background()

	first, err := gen.Allocate(ctx, domain.PrefixProduct)
	require.NoError(t, err)
	assert.Equal(t, "NBP_001", first)

	second, err := gen.Allocate(ctx, domain.PrefixProduct)
	require.NoError(t, err)
	assert.Equal(t, "NBP_002", second)

	user, err := gen.Allocate(ctx, domain.PrefixUser)
	require.NoError(t, err)
	assert.Equal(t, "NBU_001", user)
}

func TestAllocateConcurrentCallersGetDistinctIDs(t *testing.T) {
	gen := NewGenerator(newMemoryCounters())
	ctx := context.Background()

	const n = 50
	ids := make(chan string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id, err := gen.Allocate(ctx, domain.PrefixProduct)
			assert.NoError(t, err)
			ids <- id
		}()
	}
	wg.Wait()
	close(ids)

	seen := map[string]bool{}
	for id := range ids {
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
	assert.Len(t, seen, n)
	assert.True(t, seen["NBP_001"])
	assert.True(t, seen["NBP_050"])
}

func TestAllocateStorageFailure(t *testing.T) {
	counters := newMemoryCounters()
	counters.err = errors.New("connection refused")
	gen := NewGenerator(counters)

	id, err := gen.Allocate(context.Background(), domain.PrefixProduct)
	assert.Empty(t, id)
	assert.True(t, apperr.Is(err, apperr.KindStorage))
	assert.Equal(t, "error generating unique ID", apperr.MessageOf(err, ""))
}

func TestAllocateRequiresPrefix(t *testing.T) {
	_, err := NewGenerator(newMemoryCounters()).Allocate(context.Background(), "  ")
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "NBP_007", Format("NBP", 7))
	assert.Equal(t, "NBU_120", Format("NBU", 120))
	assert.Equal(t, "NBP_1000", Format("NBP", 1000))
}
