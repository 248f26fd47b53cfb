package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/inventory-tracker/internal/domain"
)

func TestInsufficientStockError_EsComparableConSentinel(t *testing.T) {
	var err error = &domain.InsufficientStockError{ItemID: "i1", Requested: 5, Available: 2}
	wrapped := fmt.Errorf("ajustar: %w", err)

	assert.True(t, errors.Is(wrapped, domain.ErrInsufficientStock))
	assert.False(t, errors.Is(wrapped, domain.ErrNotFound))
	assert.Contains(t, err.Error(), "5")
	assert.Contains(t, err.Error(), "2")

	var detail *domain.InsufficientStockError
	assert.True(t, errors.As(wrapped, &detail))
	assert.Equal(t, 2, detail.Available)
}

func TestInvalidOrderStateError_EsComparableConSentinel(t *testing.T) {
	err := &domain.InvalidOrderStateError{OrderID: "po1", Status: "received", Action: "recibir"}

	assert.ErrorIs(t, err, domain.ErrInvalidOrderState)
	assert.Contains(t, err.Error(), "received")
}
