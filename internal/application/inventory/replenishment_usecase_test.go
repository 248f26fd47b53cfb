package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-tracker/internal/application/inventory"
	"github.com/jhoicas/inventory-tracker/internal/domain/entity"
	"github.com/jhoicas/inventory-tracker/internal/infrastructure/memory"
)

func seedLowStock(t *testing.T, store *memory.Store, id, name string, qty, reorder int) {
	t.Helper()
	require.NoError(t, store.Items().Create(context.Background(), &entity.InventoryItem{
		ID:           id,
		Name:         name,
		Category:     "ferretería",
		CostPrice:    decimal.NewFromInt(3),
		Price:        decimal.NewFromInt(5),
		Quantity:     qty,
		ReorderLevel: reorder,
		CreatedAt:    time.Now(),
	}))
}

func TestIdealStock(t *testing.T) {
	assert.Equal(t, 8, inventory.IdealStock(5))
	assert.Equal(t, 6, inventory.IdealStock(4))
	assert.Equal(t, 0, inventory.IdealStock(0))
}

func TestGenerateReplenishmentList(t *testing.T) {
	store := memory.NewStore()
	seedLowStock(t, store, "a", "Tornillos", 4, 10) // 40 %
	seedLowStock(t, store, "b", "Tuercas", 0, 4)    // agotado
	seedLowStock(t, store, "c", "Clavos", 9, 10)    // 90 %
	seedLowStock(t, store, "d", "Arandelas", 50, 10)

	uc := inventory.NewReplenishmentUseCase(store.Levels())
	list, err := uc.GenerateReplenishmentList(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, list, 3)

	assert.Equal(t, "b", list[0].ItemID)
	assert.Equal(t, 1, list[0].Priority)
	assert.Equal(t, 6, list[0].SuggestedOrderQty)
	assert.True(t, list[0].EstimatedOrderCost.Equal(decimal.NewFromInt(18)))

	assert.Equal(t, "a", list[1].ItemID)
	assert.Equal(t, 11, list[1].SuggestedOrderQty)
	assert.Equal(t, "c", list[2].ItemID)
	assert.Equal(t, 6, list[2].SuggestedOrderQty)
}

func TestGenerateReplenishmentList_Vacio(t *testing.T) {
	uc := inventory.NewReplenishmentUseCase(memory.NewStore().Levels())
	list, err := uc.GenerateReplenishmentList(context.Background(), "")
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}
