package process

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTerminable struct {
	name       string
	delay      time.Duration
	err        error
	terminated atomic.Int32
}

func (this *fakeTerminable) Terminate(grace time.Duration) error {
	this.terminated.Add(1)
	if this.delay > 0 {
		d := this.delay
		if d > grace {
			d = grace
		}
		time.Sleep(d)
	}
	return this.err
}

func (this *fakeTerminable) String() string {
	return this.name
}

func TestRegistry_Register(t *testing.T) {
	var instance Registry

	a := &fakeTerminable{name: "a"}
	b := &fakeTerminable{name: "b"}
	require.NoError(t, instance.Register(a))
	require.NoError(t, instance.Register(b))
	assert.Equal(t, 2, instance.Len())

	drained := instance.Drain()
	assert.Equal(t, []Terminable{a, b}, drained)
	assert.Equal(t, 0, instance.Len())

	assert.Equal(t, ErrRegistryClosed, instance.Register(&fakeTerminable{name: "c"}))
	assert.Empty(t, instance.Drain())
}

func TestRegistry_Register_concurrent(t *testing.T) {
	var instance Registry

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, instance.Register(&fakeTerminable{name: fmt.Sprint(i)}))
		}()
	}
	wg.Wait()

	assert.Len(t, instance.Drain(), 20)
}

func TestRegistry_TerminateAll_parallel(t *testing.T) {
	var instance Registry

	grace := 200 * time.Millisecond
	var all []*fakeTerminable
	for i := 0; i < 5; i++ {
		v := &fakeTerminable{name: fmt.Sprint(i), delay: time.Hour}
		all = append(all, v)
		require.NoError(t, instance.Register(v))
	}

	start := time.Now()
	require.NoError(t, instance.TerminateAll(grace))
	assert.Less(t, time.Since(start), 3*grace)

	for _, v := range all {
		assert.Equal(t, int32(1), v.terminated.Load())
	}
}

func TestRegistry_TerminateAll_failureDoesNotBlockOthers(t *testing.T) {
	var instance Registry

	expectedErr := errors.New("expected")
	a := &fakeTerminable{name: "a", err: expectedErr}
	b := &fakeTerminable{name: "b"}
	require.NoError(t, instance.Register(a))
	require.NoError(t, instance.Register(b))

	actualErr := instance.TerminateAll(10 * time.Millisecond)
	require.ErrorIs(t, actualErr, expectedErr)
	assert.Contains(t, actualErr.Error(), "cannot terminate a")
	assert.Equal(t, int32(1), a.terminated.Load())
	assert.Equal(t, int32(1), b.terminated.Load())

	assert.Equal(t, ErrRegistryClosed, instance.Register(b))
}

func TestRegistry_TerminateAll_empty(t *testing.T) {
	var instance Registry

	assert.NoError(t, instance.TerminateAll(time.Second))
}
