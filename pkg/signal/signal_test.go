package signal

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignal_Set(t *testing.T) {
	instance := New("stopRequested")

	assert.False(t, instance.IsSet())
	assert.Equal(t, "stopRequested", instance.String())

	assert.True(t, instance.Set())
	assert.True(t, instance.IsSet())
	assert.False(t, instance.Set())
	assert.True(t, instance.IsSet())

	select {
	case <-instance.Done():
	default:
		t.Fatal("done channel not closed")
	}
}

func TestSignal_Set_concurrent(t *testing.T) {
	instance := New("voiceDetected")

	var changed atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if instance.Set() {
				changed.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), changed.Load())
	assert.True(t, instance.IsSet())
}

func TestSignals_FirstSet(t *testing.T) {
	a, b := New("a"), New("b")
	instance := Signals{a, b}

	assert.False(t, instance.AnySet())
	assert.Nil(t, instance.FirstSet())

	b.Set()
	assert.True(t, instance.AnySet())
	assert.Same(t, b, instance.FirstSet())

	a.Set()
	assert.Same(t, a, instance.FirstSet())
}

func TestSignals_Context(t *testing.T) {
	a, b := New("a"), New("b")

	ctx, cancel := Signals{a, b}.Context(context.Background())
	defer cancel()

	require.NoError(t, ctx.Err())
	b.Set()

	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("context not canceled after signal was raised")
	}
}

func TestSignals_Sleep(t *testing.T) {
	a := New("a")
	instance := Signals{a}

	assert.True(t, instance.Sleep(context.Background(), 5*time.Millisecond))

	go func() {
		time.Sleep(10 * time.Millisecond)
		a.Set()
	}()
	start := time.Now()
	assert.False(t, instance.Sleep(context.Background(), 5*time.Second))
	assert.Less(t, time.Since(start), time.Second)

	assert.False(t, instance.Sleep(context.Background(), 0))
}
