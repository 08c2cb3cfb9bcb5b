package circuit_breaker_test

import (
	"errors"
	"testing"
	"time"

	"github.com/Astemirdum/hotel-reservation/pkg/circuit_breaker"
	"github.com/stretchr/testify/require"
)

func Test_circuitBreaker_Call(t *testing.T) {
	t.Parallel()
	ok := func() error { return nil }
	errBroker := errors.New("broker down")
	fail := func() error { return errBroker }

	cb := circuit_breaker.New(circuit_breaker.Config{
		Window:        4,
		FailureRatio:  0.5,
		Cooldown:      time.Minute,
		RecoveryCalls: 2,
	})
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	circuit_breaker.SetClock(cb, func() time.Time { return now })

	for i := 0; i < 10; i++ {
		require.NoError(t, cb.Call(ok))
	}
	require.Equal(t, circuit_breaker.Closed, cb.State())

	require.ErrorIs(t, cb.Call(fail), errBroker)
	require.Equal(t, circuit_breaker.Closed, cb.State())
	require.ErrorIs(t, cb.Call(fail), errBroker)
	require.Equal(t, circuit_breaker.Open, cb.State())

	called := false
	err := cb.Call(func() error { called = true; return nil })
	require.ErrorIs(t, err, circuit_breaker.ErrOpen)
	require.False(t, called)

	// cooldown elapsed, one failing probe opens it again
	now = now.Add(2 * time.Minute)
	require.ErrorIs(t, cb.Call(fail), errBroker)
	require.Equal(t, circuit_breaker.Open, cb.State())

	now = now.Add(2 * time.Minute)
	require.NoError(t, cb.Call(ok))
	require.Equal(t, circuit_breaker.HalfOpen, cb.State())
	require.NoError(t, cb.Call(ok))
	require.Equal(t, circuit_breaker.Closed, cb.State())
}

func Test_circuitBreaker_Reset(t *testing.T) {
	t.Parallel()
	cb := circuit_breaker.New(circuit_breaker.Config{Window: 1, FailureRatio: 1, Cooldown: time.Hour, RecoveryCalls: 1})
	require.Error(t, cb.Call(func() error { return errors.New("x") }))
	require.Equal(t, circuit_breaker.Open, cb.State())
	cb.Reset()
	require.Equal(t, circuit_breaker.Closed, cb.State())
	require.Equal(t, "closed", cb.State().String())
}
