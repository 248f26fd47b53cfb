package inventory_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-tracker/internal/domain"
	"github.com/jhoicas/inventory-tracker/internal/domain/entity"
	"github.com/jhoicas/inventory-tracker/internal/domain/inventory"
)

func TestApplyDelta(t *testing.T) {
	next, err := inventory.ApplyDelta("i1", 10, -7)
	require.NoError(t, err)
	assert.Equal(t, 3, next)

	next, err = inventory.ApplyDelta("i1", 3, -3)
	require.NoError(t, err)
	assert.Equal(t, 0, next, "llegar exactamente a cero es válido")

	next, err = inventory.ApplyDelta("i1", 3, 5)
	require.NoError(t, err)
	assert.Equal(t, 8, next)
}

func TestApplyDelta_Negativo(t *testing.T) {
	next, err := inventory.ApplyDelta("i1", 3, -5)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 3, next, "la cantidad no cambia si falla")

	var detail *domain.InsufficientStockError
	require.True(t, errors.As(err, &detail))
	assert.Equal(t, 5, detail.Requested)
	assert.Equal(t, 3, detail.Available)
}

func TestApplyDelta_Cero(t *testing.T) {
	_, err := inventory.ApplyDelta("i1", 3, 0)
	assert.ErrorIs(t, err, domain.ErrZeroDelta)
}

func TestNewMovement_CumpleInvariante(t *testing.T) {
	ref := "PO-1"
	now := time.Now()
	m := inventory.NewMovement("m1", "i1", 10, -7, inventory.MovementSpec{
		Type:            entity.MovementSold,
		ReferenceNumber: &ref,
	}, now)

	assert.Equal(t, 10, m.QuantityBefore)
	assert.Equal(t, 3, m.QuantityAfter)
	assert.Equal(t, m.QuantityBefore+m.QuantityChange, m.QuantityAfter)
	assert.Equal(t, entity.MovementSold, m.Type)
	assert.Equal(t, "PO-1", *m.ReferenceNumber)
	assert.Nil(t, m.Reason)
	assert.Equal(t, now, m.CreatedAt)
}
