package circuit_breaker

import "time"

// SetClock swaps the time source of a breaker built by New.
func SetClock(cb CircuitBreaker, now func() time.Time) {
	cb.(*circuitBreaker).now = now
}
