package analytics_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-tracker/internal/application/analytics"
	"github.com/jhoicas/inventory-tracker/internal/application/dto"
	"github.com/jhoicas/inventory-tracker/internal/application/inventory"
	"github.com/jhoicas/inventory-tracker/internal/application/purchasing"
	"github.com/jhoicas/inventory-tracker/internal/domain/entity"
	"github.com/jhoicas/inventory-tracker/internal/infrastructure/memory"
)

func TestGetSummary(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	for _, it := range []entity.InventoryItem{
		{ID: "a", Name: "A", Quantity: 10, ReorderLevel: 2, CostPrice: decimal.NewFromInt(3), Price: decimal.NewFromInt(5)},
		{ID: "b", Name: "B", Quantity: 1, ReorderLevel: 4, CostPrice: decimal.NewFromInt(10), Price: decimal.NewFromInt(20)},
		{ID: "c", Name: "C", Quantity: 0, ReorderLevel: 0, CostPrice: decimal.NewFromInt(1), Price: decimal.NewFromInt(1)},
	} {
		it := it
		it.CreatedAt = time.Now()
		require.NoError(t, store.Items().Create(ctx, &it))
	}
	ledger := inventory.NewLedgerUseCase(store, store.Items(), store.Movements(), nil)
	_, err := ledger.AdjustQuantity(ctx, inventory.AdjustInput{ItemID: "a", Delta: -2, Type: entity.MovementSold})
	require.NoError(t, err)
	_, err = ledger.AdjustQuantity(ctx, inventory.AdjustInput{ItemID: "a", Delta: -1, Type: entity.MovementSold})
	require.NoError(t, err)
	_, err = ledger.AdjustQuantity(ctx, inventory.AdjustInput{ItemID: "b", Delta: 1, Type: entity.MovementReturned})
	require.NoError(t, err)

	sup, err := purchasing.NewSupplierUseCase(store.Suppliers()).Create(ctx, dto.CreateSupplierRequest{Name: "P"})
	require.NoError(t, err)
	orders := purchasing.NewPurchaseOrderUseCase(store, store.PurchaseOrders(), store.Suppliers(), store.Items(), ledger, nil)
	_, err = orders.Create(ctx, dto.CreatePurchaseOrderRequest{
		SupplierID: sup.ID,
		Items:      []dto.PurchaseOrderItemRequest{{ItemID: "b", QuantityOrdered: 4, UnitPrice: decimal.NewFromInt(10)}},
	})
	require.NoError(t, err)

	got, err := analytics.NewDashboardUseCase(store.Levels(), "usd").GetSummary(ctx)
	require.NoError(t, err)

	// a: 7 u, b: 2 u, c: 0 u
	assert.Equal(t, 3, got.ItemCount)
	assert.Equal(t, 9, got.UnitsOnHand)
	assert.True(t, got.ValueAtCost.Equal(decimal.NewFromInt(41)), got.ValueAtCost.String())
	assert.True(t, got.ValueAtPrice.Equal(decimal.NewFromInt(75)), got.ValueAtPrice.String())
	assert.Equal(t, "$41.00", got.ValueAtCostText)
	assert.Equal(t, 1, got.LowStockCount)
	assert.Equal(t, 1, got.OutOfStockCount)
	assert.Equal(t, 1, got.OpenPurchaseOrders)
	assert.True(t, got.OpenPurchaseOrderValue.Equal(decimal.NewFromInt(40)))

	require.Len(t, got.MovementsByType, 2)
	assert.Equal(t, "returned", got.MovementsByType[0].MovementType)
	assert.Equal(t, "sold", got.MovementsByType[1].MovementType)
	assert.Equal(t, 2, got.MovementsByType[1].Count)
	assert.Equal(t, -3, got.MovementsByType[1].NetUnits)

	require.Len(t, got.RecentMovements, 3)
	assert.Equal(t, "b", got.RecentMovements[0].ItemID)
	assert.NotEmpty(t, got.PeriodLabel)
}
