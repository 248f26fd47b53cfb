package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-tracker/internal/domain/entity"
)

func TestParseMovementType_ConjuntoCerrado(t *testing.T) {
	for _, s := range []string{"received", "sold", "adjusted", "returned", "damaged", "transferred"} {
		mt, err := entity.ParseMovementType(s)
		require.NoError(t, err, s)
		assert.Equal(t, s, mt.String())
		assert.True(t, mt.Valid())
	}

	_, err := entity.ParseMovementType("SOLD")
	assert.Error(t, err, "los tipos distinguen mayúsculas")
	_, err = entity.ParseMovementType("")
	assert.Error(t, err)
	assert.False(t, entity.MovementType("stolen").Valid())
}

func TestPOStatus_Transiciones(t *testing.T) {
	cases := []struct {
		status                          entity.POStatus
		receive, cancel, del, terminal bool
	}{
		{entity.POStatusDraft, true, true, true, false},
		{entity.POStatusPending, true, true, true, false},
		{entity.POStatusReceived, false, false, false, true},
		{entity.POStatusCancelled, false, false, true, true},
	}
	for _, c := range cases {
		assert.Equal(t, c.receive, c.status.CanReceive(), "receive %s", c.status)
		assert.Equal(t, c.cancel, c.status.CanCancel(), "cancel %s", c.status)
		assert.Equal(t, c.del, c.status.CanDelete(), "delete %s", c.status)
		assert.Equal(t, c.terminal, c.status.IsTerminal(), "terminal %s", c.status)
	}

	_, ok := entity.ParsePOStatus("shipped")
	assert.False(t, ok)
}

func TestPurchaseOrder_ComputeTotal(t *testing.T) {
	po := &entity.PurchaseOrder{Items: []*entity.PurchaseOrderItem{
		{ItemID: "a", QuantityOrdered: 5, UnitPrice: decimal.NewFromInt(2)},
		{ItemID: "b", QuantityOrdered: 3, UnitPrice: decimal.NewFromInt(4)},
	}}
	assert.True(t, po.ComputeTotal().Equal(decimal.NewFromInt(22)))
}

func TestInventoryItem_IsLowStock(t *testing.T) {
	item := &entity.InventoryItem{Quantity: 3, ReorderLevel: 5}
	assert.True(t, item.IsLowStock())
	item.Quantity = 6
	assert.False(t, item.IsLowStock())
	item.ReorderLevel = 0
	item.Quantity = 0
	assert.False(t, item.IsLowStock(), "sin nivel de reorden no hay alerta")
}
