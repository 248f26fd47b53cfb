package memory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventory-tracker/internal/domain/entity"
	"github.com/jhoicas/inventory-tracker/internal/domain/repository"
)

// LevelRepo implementa repository.InventoryLevelRepository y repository.AnalyticsRepository.
type LevelRepo struct{ s *Store }

func (r *LevelRepo) onOrderLocked() map[string]int {
	onOrder := make(map[string]int)
	for id, o := range r.s.st.orders {
		if o.Status.IsTerminal() {
			continue
		}
		for _, l := range r.s.st.lines[id] {
			onOrder[l.ItemID] += l.QuantityOrdered - l.QuantityReceived
		}
	}
	return onOrder
}

func (r *LevelRepo) GetItemsBelowReorderLevel(_ context.Context, category string) ([]repository.ReplenishmentItem, error) {
	r.s.dataMu.RLock()
	defer r.s.dataMu.RUnlock()
	onOrder := r.onOrderLocked()
	out := make([]repository.ReplenishmentItem, 0)
	for _, it := range r.s.st.items {
		if it.IsDeleted() || !it.IsLowStock() {
			continue
		}
		if category != "" && it.Category != category {
			continue
		}
		ri := repository.ReplenishmentItem{
			ItemID:       it.ID,
			ItemName:     it.Name,
			Category:     it.Category,
			Quantity:     it.Quantity,
			ReorderLevel: it.ReorderLevel,
			CostPrice:    it.CostPrice,
			Price:        it.Price,
			OnOrder:      onOrder[it.ID],
		}
		if it.SKU != nil {
			ri.SKU = *it.SKU
		}
		if it.SupplierID != nil {
			ri.SupplierID = *it.SupplierID
		}
		out = append(out, ri)
	}
	sort.Slice(out, func(i, j int) bool {
		di := out[i].ReorderLevel - out[i].Quantity
		dj := out[j].ReorderLevel - out[j].Quantity
		if di != dj {
			return di > dj
		}
		return out[i].ItemName < out[j].ItemName
	})
	return out, nil
}

func (r *LevelRepo) GetInventorySummary(_ context.Context) (repository.InventorySummary, error) {
	r.s.dataMu.RLock()
	defer r.s.dataMu.RUnlock()
	sum := repository.InventorySummary{ValueAtCost: decimal.Zero, ValueAtPrice: decimal.Zero}
	for _, it := range r.s.st.items {
		if it.IsDeleted() {
			continue
		}
		q := decimal.NewFromInt(int64(it.Quantity))
		sum.ItemCount++
		sum.UnitsOnHand += it.Quantity
		sum.ValueAtCost = sum.ValueAtCost.Add(it.CostPrice.Mul(q))
		sum.ValueAtPrice = sum.ValueAtPrice.Add(it.Price.Mul(q))
		if it.IsLowStock() {
			sum.LowStockCount++
		}
		if it.Quantity == 0 {
			sum.OutOfStockCount++
		}
	}
	return sum, nil
}

func (r *LevelRepo) GetPurchaseOrderSummary(_ context.Context) (repository.PurchaseOrderSummary, error) {
	r.s.dataMu.RLock()
	defer r.s.dataMu.RUnlock()
	sum := repository.PurchaseOrderSummary{OpenValue: decimal.Zero}
	for _, o := range r.s.st.orders {
		if o.Status.IsTerminal() {
			continue
		}
		sum.OpenCount++
		sum.OpenValue = sum.OpenValue.Add(o.TotalAmount)
	}
	return sum, nil
}

func (r *LevelRepo) GetMovementCounts(_ context.Context, start, end time.Time) ([]repository.MovementTypeCount, error) {
	r.s.dataMu.RLock()
	defer r.s.dataMu.RUnlock()
	byType := make(map[entity.MovementType]*repository.MovementTypeCount)
	for _, sm := range r.s.st.movements {
		if sm.m.CreatedAt.Before(start) || sm.m.CreatedAt.After(end) {
			continue
		}
		c, ok := byType[sm.m.Type]
		if !ok {
			c = &repository.MovementTypeCount{Type: sm.m.Type}
			byType[sm.m.Type] = c
		}
		c.Count++
		c.NetUnits += sm.m.QuantityChange
	}
	out := make([]repository.MovementTypeCount, 0, len(byType))
	for _, c := range byType {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Type < out[j].Type })
	return out, nil
}

func (r *LevelRepo) ListRecentMovements(_ context.Context, limit int) ([]*entity.StockMovement, error) {
	return r.s.Movements().Recent(limit), nil
}
