package inventory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventory-tracker/internal/application/dto"
	"github.com/jhoicas/inventory-tracker/internal/domain/repository"
)

// ReplenishmentUseCase genera la lista de reposición a partir de los artículos en o bajo su nivel de reorden.
type ReplenishmentUseCase struct {
	levelRepo repository.InventoryLevelRepository
}

// NewReplenishmentUseCase construye el caso de uso de reposición.
func NewReplenishmentUseCase(levelRepo repository.InventoryLevelRepository) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{levelRepo: levelRepo}
}

// IdealStock nivel objetivo tras reponer: reorder_level × 1.5, redondeado hacia arriba.
func IdealStock(reorderLevel int) int {
	return (reorderLevel*3 + 1) / 2
}

// GenerateReplenishmentList devuelve los artículos bajo nivel de reorden con la cantidad sugerida
// de pedido (descontando lo ya pedido en órdenes abiertas) y un ranking de prioridad.
// category puede ser vacío para considerar todo el catálogo.
func (uc *ReplenishmentUseCase) GenerateReplenishmentList(ctx context.Context, category string) ([]dto.ReplenishmentSuggestionDTO, error) {
	rawItems, err := uc.levelRepo.GetItemsBelowReorderLevel(ctx, category)
	if err != nil {
		return nil, err
	}
	if len(rawItems) == 0 {
		return []dto.ReplenishmentSuggestionDTO{}, nil
	}

	suggestions := make([]dto.ReplenishmentSuggestionDTO, 0, len(rawItems))
	for _, item := range rawItems {
		ideal := IdealStock(item.ReorderLevel)
		suggested := ideal - item.Quantity - item.OnOrder
		if suggested < 0 {
			suggested = 0
		}

		suggestions = append(suggestions, dto.ReplenishmentSuggestionDTO{
			ItemID:             item.ItemID,
			SKU:                item.SKU,
			ItemName:           item.ItemName,
			Category:           item.Category,
			SupplierID:         item.SupplierID,
			Quantity:           item.Quantity,
			ReorderLevel:       item.ReorderLevel,
			OnOrder:            item.OnOrder,
			IdealStock:         ideal,
			SuggestedOrderQty:  suggested,
			UnitCost:           item.CostPrice,
			EstimatedOrderCost: item.CostPrice.Mul(decimal.NewFromInt(int64(suggested))),
		})
	}

	// Primero los agotados, luego mayor déficit relativo (quantity / reorder_level más bajo).
	sort.SliceStable(suggestions, func(i, j int) bool {
		a, b := suggestions[i], suggestions[j]
		if (a.Quantity == 0) != (b.Quantity == 0) {
			return a.Quantity == 0
		}
		// a.Quantity/a.ReorderLevel < b.Quantity/b.ReorderLevel sin división
		ra := a.Quantity * b.ReorderLevel
		rb := b.Quantity * a.ReorderLevel
		if ra != rb {
			return ra < rb
		}
		return a.SuggestedOrderQty > b.SuggestedOrderQty
	})

	for i := range suggestions {
		suggestions[i].Priority = i + 1
	}

	return suggestions, nil
}
