package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_SetGet(t *testing.T) {
	s := NewMemoryStore(100)
	defer s.Close()
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "k", "v", time.Minute))

	val, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", val)
}

func TestMemoryStore_Miss(t *testing.T) {
	s := NewMemoryStore(100)
	defer s.Close()

	_, err := s.Get(context.Background(), "absent")
	assert.ErrorIs(t, err, ErrMiss)
}

func TestMemoryStore_Expiry(t *testing.T) {
	s := NewMemoryStore(100)
	defer s.Close()
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "k", "v", 10*time.Millisecond))

	time.Sleep(30 * time.Millisecond)

	_, err := s.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrMiss)
}

func TestMemoryStore_Delete(t *testing.T) {
	s := NewMemoryStore(100)
	defer s.Close()
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "k", "v", time.Minute))
	require.NoError(t, s.Delete(ctx, "k"))

	_, err := s.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrMiss)
}

func TestMemoryStore_Overwrite(t *testing.T) {
	s := NewMemoryStore(100)
	defer s.Close()
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "k", "old", time.Minute))
	require.NoError(t, s.Set(ctx, "k", "new", time.Minute))

	val, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "new", val)
	assert.Equal(t, 1, s.Len())
}

func TestMemoryStore_CapEvictsSoonestExpiry(t *testing.T) {
	s := NewMemoryStore(3)
	defer s.Close()
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "short", "v", time.Minute))
	require.NoError(t, s.Set(ctx, "medium", "v", time.Hour))
	require.NoError(t, s.Set(ctx, "long", "v", 24*time.Hour))

	// Store is full; the next insert must evict the entry closest to
	// expiry, not an arbitrary one.
	require.NoError(t, s.Set(ctx, "extra", "v", time.Hour))

	assert.Equal(t, 3, s.Len())

	_, err := s.Get(ctx, "short")
	assert.ErrorIs(t, err, ErrMiss)

	for _, key := range []string{"medium", "long", "extra"} {
		_, err := s.Get(ctx, key)
		assert.NoError(t, err, "key %s should survive eviction", key)
	}
}

func TestMemoryStore_Sweep(t *testing.T) {
	s := NewMemoryStore(100)
	defer s.Close()
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "expired", "v", time.Millisecond))
	require.NoError(t, s.Set(ctx, "fresh", "v", time.Hour))

	time.Sleep(10 * time.Millisecond)
	s.sweep()

	assert.Equal(t, 1, s.Len())
}

func TestMemoryStore_ConcurrentAccess(t *testing.T) {
	s := NewMemoryStore(1000)
	defer s.Close()
	ctx := context.Background()

	done := make(chan struct{})
	for g := 0; g < 8; g++ {
		g := g
		go func() {
			defer func() { done <- struct{}{} }()
			for i := 0; i < 100; i++ {
				key := fmt.Sprintf("g%d-k%d", g, i)
				_ = s.Set(ctx, key, "v", time.Minute)
				_, _ = s.Get(ctx, key)
			}
		}()
	}
	for g := 0; g < 8; g++ {
		<-done
	}

	assert.Equal(t, 800, s.Len())
}

func TestFingerprint(t *testing.T) {
	a := Fingerprint("some content")
	b := Fingerprint("some content")
	c := Fingerprint("other content")

	assert.Equal(t, a, b, "identical input must fingerprint identically")
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 16)
}
