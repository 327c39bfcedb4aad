package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_GetOrLoad(t *testing.T) {
	s := New[int](time.Minute)
	var calls int32
	load := func(ctx context.Context) (int, error) {
		atomic.AddInt32(&calls, 1)
		return 42, nil
	}

	v, hit, err := s.GetOrLoad(context.Background(), "k", load)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, 42, v)

	v, hit, err = s.GetOrLoad(context.Background(), "k", load)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, 42, v)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestStore_Expiry(t *testing.T) {
	s := New[string](time.Minute)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	_, _, err := s.GetOrLoad(context.Background(), "k", func(ctx context.Context) (string, error) { return "a", nil })
	require.NoError(t, err)

	_, ok := s.Get("k")
	assert.True(t, ok)

	now = now.Add(2 * time.Minute)
	_, ok = s.Get("k")
	assert.False(t, ok)
}

func TestStore_Clear(t *testing.T) {
	s := New[int](time.Hour)
	_, _, _ = s.GetOrLoad(context.Background(), "a", func(ctx context.Context) (int, error) { return 1, nil })
	_, _, _ = s.GetOrLoad(context.Background(), "b", func(ctx context.Context) (int, error) { return 2, nil })
	assert.Equal(t, 2, s.Len())

	s.Clear()
	assert.Equal(t, 0, s.Len())
	_, ok := s.Get("a")
	assert.False(t, ok)
}

func TestStore_Disabled(t *testing.T) {
	s := New[int](0)
	var calls int
	for i := 0; i < 3; i++ {
		_, hit, err := s.GetOrLoad(context.Background(), "k", func(ctx context.Context) (int, error) {
			calls++
			return calls, nil
		})
		require.NoError(t, err)
		assert.False(t, hit)
	}
	assert.Equal(t, 3, calls)
	assert.Equal(t, 0, s.Len())
}

func TestStore_LoadError(t *testing.T) {
	s := New[int](time.Hour)
	_, _, err := s.GetOrLoad(context.Background(), "k", func(ctx context.Context) (int, error) {
		return 0, errors.New("db down")
	})
	assert.EqualError(t, err, "db down")
	assert.Equal(t, 0, s.Len())
}

func TestStore_Stampede(t *testing.T) {
	s := New[int](time.Hour)
	var calls int32
	release := make(chan struct{})

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, _ = s.GetOrLoad(context.Background(), "k", func(ctx context.Context) (int, error) {
				atomic.AddInt32(&calls, 1)
				<-release
				return 1, nil
			})
		}()
	}

	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.LessOrEqual(t, atomic.LoadInt32(&calls), int32(2))
}

func TestStore_ClearDuringLoad(t *testing.T) {
	s := New[int](time.Hour)
	started := make(chan struct{})
	release := make(chan struct{})

	done := make(chan int)
	go func() {
		v, _, _ := s.GetOrLoad(context.Background(), "k", func(ctx context.Context) (int, error) {
			close(started)
			<-release
			return 1, nil
		})
		done <- v
	}()

	<-started
	s.Clear()
	close(release)
	assert.Equal(t, 1, <-done)

	_, ok := s.Get("k")
	assert.False(t, ok, "value loaded before Clear must not be cached")

	v, hit, err := s.GetOrLoad(context.Background(), "k", func(ctx context.Context) (int, error) { return 2, nil })
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, 2, v)
}

func TestStore_ClearStartsFreshFlight(t *testing.T) {
	s := New[int](time.Hour)
	started := make(chan struct{})
	release := make(chan struct{})
	defer close(release)

	go func() {
		_, _, _ = s.GetOrLoad(context.Background(), "k", func(ctx context.Context) (int, error) {
			close(started)
			<-release
			return 1, nil
		})
	}()

	<-started
	s.Clear()

	v, hit, err := s.GetOrLoad(context.Background(), "k", func(ctx context.Context) (int, error) { return 2, nil })
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, 2, v)
}
