package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventory-tracker/internal/application/dto"
	"github.com/jhoicas/inventory-tracker/internal/application/inventory"
	"github.com/jhoicas/inventory-tracker/internal/domain"
	"github.com/jhoicas/inventory-tracker/internal/domain/entity"
	"github.com/jhoicas/inventory-tracker/internal/domain/repository"
)

// Motivo del movimiento que registra la cantidad inicial de un artículo.
const initialStockReason = "stock inicial"

// ItemLedger integra el registro de artículos con el ledger (misma transacción).
type ItemLedger interface {
	AdjustInTx(
		ctx context.Context,
		itemRepo repository.ItemRepository,
		movRepo repository.StockMovementRepository,
		in inventory.AdjustInput,
	) (*entity.StockMovement, error)
}

// ItemUseCase casos de uso CRUD para artículos. Quantity solo cambia vía ledger.
type ItemUseCase struct {
	txRunner inventory.TxRunner
	repo     repository.ItemRepository
	ledger   ItemLedger
}

// NewItemUseCase construye el caso de uso.
func NewItemUseCase(txRunner inventory.TxRunner, repo repository.ItemRepository, ledger ItemLedger) *ItemUseCase {
	return &ItemUseCase{txRunner: txRunner, repo: repo, ledger: ledger}
}

func validatePrices(price, cost decimal.Decimal) error {
	if price.LessThan(decimal.Zero) || cost.LessThan(decimal.Zero) {
		return fmt.Errorf("%w: precios no pueden ser negativos", domain.ErrInvalidInput)
	}
	return nil
}

func normalizeSKU(sku *string) *string {
	if sku == nil {
		return nil
	}
	s := strings.TrimSpace(*sku)
	if s == "" {
		return nil
	}
	return &s
}

// Create crea el artículo con quantity 0 y, si la cantidad inicial es positiva,
// registra un movimiento "adjusted" en la misma transacción.
func (uc *ItemUseCase) Create(ctx context.Context, actor string, in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name requerido", domain.ErrInvalidInput)
	}
	if in.Quantity < 0 || in.ReorderLevel < 0 {
		return nil, fmt.Errorf("%w: quantity y reorder_level no pueden ser negativos", domain.ErrInvalidInput)
	}
	if err := validatePrices(in.Price, in.CostPrice); err != nil {
		return nil, err
	}
	sku := normalizeSKU(in.SKU)
	if sku != nil {
		existing, err := uc.repo.GetBySKU(ctx, *sku)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, domain.ErrDuplicate
		}
	}

	now := time.Now()
	item := &entity.InventoryItem{
		ID:           uuid.New().String(),
		Name:         name,
		SKU:          sku,
		Description:  in.Description,
		Category:     in.Category,
		Price:        in.Price,
		CostPrice:    in.CostPrice,
		ReorderLevel: in.ReorderLevel,
		SupplierID:   in.SupplierID,
		Quantity:     0,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err := uc.txRunner.Run(ctx, func(itemRepo repository.ItemRepository, movRepo repository.StockMovementRepository) error {
		if err := itemRepo.Create(ctx, item); err != nil {
			return err
		}
		if in.Quantity == 0 {
			return nil
		}
		reason := initialStockReason
		adj := inventory.AdjustInput{
			ItemID: item.ID,
			Delta:  in.Quantity,
			Type:   entity.MovementAdjusted,
			Reason: &reason,
		}
		if actor != "" {
			adj.Actor = &actor
		}
		m, err := uc.ledger.AdjustInTx(ctx, itemRepo, movRepo, adj)
		if err != nil {
			return err
		}
		item.Quantity = m.QuantityAfter
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// GetByID obtiene un artículo vivo por ID.
func (uc *ItemUseCase) GetByID(ctx context.Context, id string) (*dto.ItemResponse, error) {
	item, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil || item.IsDeleted() {
		return nil, domain.ErrNotFound
	}
	return toItemResponse(item), nil
}

// Update actualiza los campos descriptivos. Si Quantity cambia, la diferencia se registra en el ledger
// como "adjusted" con MovementReason, en la misma transacción que la edición.
func (uc *ItemUseCase) Update(ctx context.Context, id, actor string, in dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	if in.Quantity != nil && *in.Quantity < 0 {
		return nil, fmt.Errorf("%w: quantity no puede ser negativa", domain.ErrInvalidInput)
	}

	var updated *entity.InventoryItem
	err := uc.txRunner.Run(ctx, func(itemRepo repository.ItemRepository, movRepo repository.StockMovementRepository) error {
		item, err := itemRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if item == nil || item.IsDeleted() {
			return domain.ErrNotFound
		}
		if err := applyItemChanges(item, in); err != nil {
			return err
		}
		if item.SKU != nil {
			other, err := itemRepo.GetBySKU(ctx, *item.SKU)
			if err != nil {
				return err
			}
			if other != nil && other.ID != item.ID {
				return domain.ErrDuplicate
			}
		}
		item.UpdatedAt = time.Now()
		if err := itemRepo.Update(ctx, item); err != nil {
			return err
		}

		if in.Quantity != nil && *in.Quantity != item.Quantity {
			adj := inventory.AdjustInput{
				ItemID: item.ID,
				Delta:  *in.Quantity - item.Quantity,
				Type:   entity.MovementAdjusted,
				Reason: in.MovementReason,
			}
			if actor != "" {
				adj.Actor = &actor
			}
			m, err := uc.ledger.AdjustInTx(ctx, itemRepo, movRepo, adj)
			if err != nil {
				return err
			}
			item.Quantity = m.QuantityAfter
		}
		updated = item
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toItemResponse(updated), nil
}

func applyItemChanges(item *entity.InventoryItem, in dto.UpdateItemRequest) error {
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return fmt.Errorf("%w: name vacío", domain.ErrInvalidInput)
		}
		item.Name = name
	}
	if in.SKU != nil {
		item.SKU = normalizeSKU(in.SKU)
	}
	if in.Description != nil {
		item.Description = *in.Description
	}
	if in.Category != nil {
		item.Category = *in.Category
	}
	if in.Price != nil {
		item.Price = *in.Price
	}
	if in.CostPrice != nil {
		item.CostPrice = *in.CostPrice
	}
	if in.ReorderLevel != nil {
		if *in.ReorderLevel < 0 {
			return fmt.Errorf("%w: reorder_level negativo", domain.ErrInvalidInput)
		}
		item.ReorderLevel = *in.ReorderLevel
	}
	if in.SupplierID != nil {
		if *in.SupplierID == "" {
			item.SupplierID = nil
		} else {
			item.SupplierID = in.SupplierID
		}
	}
	return validatePrices(item.Price, item.CostPrice)
}

// List lista artículos vivos con filtros y paginación (skip/limit).
func (uc *ItemUseCase) List(ctx context.Context, filter repository.ItemFilter, page dto.PageRequest) (*dto.ItemListResponse, error) {
	page.Normalize()
	list, err := uc.repo.List(ctx, filter, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ItemResponse, 0, len(list))
	for _, it := range list {
		items = append(items, *toItemResponse(it))
	}
	return &dto.ItemListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Delete da de baja el artículo (tombstone). Sus movimientos y líneas de orden se conservan.
func (uc *ItemUseCase) Delete(ctx context.Context, id string) error {
	item, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if item == nil || item.IsDeleted() {
		return domain.ErrNotFound
	}
	return uc.repo.SoftDelete(ctx, id, time.Now())
}

func toItemResponse(it *entity.InventoryItem) *dto.ItemResponse {
	if it == nil {
		return nil
	}
	return &dto.ItemResponse{
		ID:           it.ID,
		Name:         it.Name,
		SKU:          it.SKU,
		Description:  it.Description,
		Category:     it.Category,
		Price:        it.Price,
		CostPrice:    it.CostPrice,
		ReorderLevel: it.ReorderLevel,
		SupplierID:   it.SupplierID,
		Quantity:     it.Quantity,
		LowStock:     it.IsLowStock(),
		CreatedAt:    it.CreatedAt,
		UpdatedAt:    it.UpdatedAt,
	}
}
