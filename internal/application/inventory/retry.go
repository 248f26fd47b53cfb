package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/jhoicas/inventory-tracker/internal/domain"
)

// RetryPolicy reintentos ante domain.ErrConcurrencyConflict (deadlock, serialización, lock timeout).
type RetryPolicy struct {
	MaxAttempts int
	Backoff     time.Duration // se duplica en cada intento
}

// DefaultRetryPolicy 3 intentos con backoff corto.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: 3, Backoff: 20 * time.Millisecond}
}

// WithRetry ejecuta fn y la repite solo si devuelve un conflicto de concurrencia.
// Respeta la cancelación del contexto entre intentos.
func WithRetry(ctx context.Context, p RetryPolicy, fn func() error) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	wait := p.Backoff

	var err error
	for i := 0; i < attempts; i++ {
		if err = fn(); err == nil || !errors.Is(err, domain.ErrConcurrencyConflict) {
			return err
		}
		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
		wait *= 2
	}
	return err
}
