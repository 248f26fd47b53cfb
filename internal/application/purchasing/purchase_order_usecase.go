package purchasing

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventory-tracker/internal/application/dto"
	"github.com/jhoicas/inventory-tracker/internal/application/inventory"
	"github.com/jhoicas/inventory-tracker/internal/domain"
	"github.com/jhoicas/inventory-tracker/internal/domain/entity"
	"github.com/jhoicas/inventory-tracker/internal/domain/repository"
	"github.com/jhoicas/inventory-tracker/pkg/logger"
)

// PurchaseOrderUseCase ciclo de vida de las órdenes de compra:
// draft|pending -> received (mueve inventario) o cancelled (sin efecto en inventario).
type PurchaseOrderUseCase struct {
	txRunner     PurchasingTxRunner
	poRepo       repository.PurchaseOrderRepository
	supplierRepo repository.SupplierRepository
	itemRepo     repository.ItemRepository
	ledger       StockAdjuster
	log          *logger.Logger
	retry        inventory.RetryPolicy
	now          func() time.Time
}

// NewPurchaseOrderUseCase construye el caso de uso inyectando todas sus dependencias.
func NewPurchaseOrderUseCase(
	txRunner PurchasingTxRunner,
	poRepo repository.PurchaseOrderRepository,
	supplierRepo repository.SupplierRepository,
	itemRepo repository.ItemRepository,
	ledger StockAdjuster,
	log *logger.Logger,
) *PurchaseOrderUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &PurchaseOrderUseCase{
		txRunner:     txRunner,
		poRepo:       poRepo,
		supplierRepo: supplierRepo,
		itemRepo:     itemRepo,
		ledger:       ledger,
		log:          log,
		retry:        inventory.DefaultRetryPolicy(),
		now:          time.Now,
	}
}

// WithRetryPolicy reemplaza la política de reintentos de Receive.
func (uc *PurchaseOrderUseCase) WithRetryPolicy(p inventory.RetryPolicy) *PurchaseOrderUseCase {
	uc.retry = p
	return uc
}

// NewPONumber genera PO-YYYYMMDD-XXXXXX.
func NewPONumber(at time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))[:6]
	return fmt.Sprintf("PO-%s-%s", at.Format("20060102"), suffix)
}

// Create valida proveedor y artículos y persiste la orden con sus líneas en una transacción.
// total_amount se calcula aquí y no se recalcula después.
func (uc *PurchaseOrderUseCase) Create(ctx context.Context, in dto.CreatePurchaseOrderRequest) (*dto.PurchaseOrderResponse, error) {
	status := entity.POStatusPending
	if in.Status != "" {
		st, ok := entity.ParsePOStatus(in.Status)
		if !ok || st.IsTerminal() {
			return nil, fmt.Errorf("%w: una orden nueva solo puede ser draft o pending", domain.ErrInvalidInput)
		}
		status = st
	}
	if in.SupplierID == "" {
		return nil, fmt.Errorf("%w: supplier_id requerido", domain.ErrInvalidInput)
	}
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: la orden necesita al menos una línea", domain.ErrInvalidInput)
	}

	supplier, err := uc.supplierRepo.GetByID(ctx, in.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, fmt.Errorf("%w: proveedor %s", domain.ErrNotFound, in.SupplierID)
	}

	now := uc.now()
	po := &entity.PurchaseOrder{
		ID:               uuid.New().String(),
		PONumber:         NewPONumber(now),
		SupplierID:       supplier.ID,
		Status:           status,
		Notes:            in.Notes,
		ExpectedDelivery: in.ExpectedDelivery,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	for i, l := range in.Items {
		if l.ItemID == "" || l.QuantityOrdered <= 0 || l.UnitPrice.LessThan(decimal.Zero) {
			return nil, fmt.Errorf("%w: línea %d inválida", domain.ErrInvalidInput, i+1)
		}
		item, err := uc.itemRepo.GetByID(ctx, l.ItemID)
		if err != nil {
			return nil, err
		}
		if item == nil || item.IsDeleted() {
			return nil, fmt.Errorf("%w: artículo %s", domain.ErrNotFound, l.ItemID)
		}
		po.Items = append(po.Items, &entity.PurchaseOrderItem{
			ID:              uuid.New().String(),
			PurchaseOrderID: po.ID,
			ItemID:          l.ItemID,
			QuantityOrdered: l.QuantityOrdered,
			UnitPrice:       l.UnitPrice,
		})
	}
	po.TotalAmount = po.ComputeTotal()

	err = uc.txRunner.RunPurchasing(ctx, func(_ repository.ItemRepository, _ repository.StockMovementRepository, poRepo repository.PurchaseOrderRepository) error {
		if err := poRepo.Create(ctx, po); err != nil {
			return err
		}
		for _, line := range po.Items {
			if err := poRepo.CreateItem(ctx, line); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("po_number", po.PONumber).Str("status", string(po.Status)).
		Str("total", po.TotalAmount.StringFixed(2)).Msg("orden de compra creada")
	return toPurchaseOrderResponse(po, supplier.Name), nil
}

// Receive marca la orden como recibida y suma al inventario cada línea en una sola transacción.
// Si cualquier línea falla no queda ningún movimiento y la orden conserva su estado.
func (uc *PurchaseOrderUseCase) Receive(ctx context.Context, id, actor string) (*dto.PurchaseOrderResponse, error) {
	var received *entity.PurchaseOrder
	err := inventory.WithRetry(ctx, uc.retry, func() error {
		return uc.txRunner.RunPurchasing(ctx, func(
			itemRepo repository.ItemRepository,
			movRepo repository.StockMovementRepository,
			poRepo repository.PurchaseOrderRepository,
		) error {
			po, err := poRepo.GetForUpdate(ctx, id)
			if err != nil {
				return err
			}
			if po == nil {
				return domain.ErrNotFound
			}
			if !po.Status.CanReceive() {
				return &domain.InvalidOrderStateError{OrderID: po.PONumber, Status: string(po.Status), Action: "recibir"}
			}

			// Orden de bloqueo determinista entre recepciones concurrentes.
			lines := append([]*entity.PurchaseOrderItem(nil), po.Items...)
			sort.SliceStable(lines, func(i, j int) bool { return lines[i].ItemID < lines[j].ItemID })

			ref := po.PONumber
			reason := "Recepción OC " + po.PONumber
			in := inventory.AdjustInput{
				Type:            entity.MovementReceived,
				Reason:          &reason,
				ReferenceNumber: &ref,
			}
			if actor != "" {
				in.Actor = &actor
			}
			for _, line := range lines {
				in.ItemID = line.ItemID
				in.Delta = line.QuantityOrdered
				if _, err := uc.ledger.AdjustInTx(ctx, itemRepo, movRepo, in); err != nil {
					return fmt.Errorf("recibir línea %s: %w", line.ItemID, err)
				}
				if err := poRepo.UpdateItemReceived(ctx, line.ID, line.QuantityOrdered); err != nil {
					return err
				}
				line.QuantityReceived = line.QuantityOrdered
			}

			now := uc.now()
			po.Status = entity.POStatusReceived
			po.ReceivedAt = &now
			po.UpdatedAt = now
			if err := poRepo.Update(ctx, po); err != nil {
				return err
			}
			received = po
			return nil
		})
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("purchase_order_id", id).Msg("recepción de orden rechazada")
		return nil, err
	}
	uc.log.Info().Str("po_number", received.PONumber).Int("lines", len(received.Items)).Msg("orden de compra recibida")
	return toPurchaseOrderResponse(received, uc.supplierName(ctx, received.SupplierID)), nil
}

// Cancel draft|pending -> cancelled. No toca inventario.
func (uc *PurchaseOrderUseCase) Cancel(ctx context.Context, id string) (*dto.PurchaseOrderResponse, error) {
	var cancelled *entity.PurchaseOrder
	err := uc.txRunner.RunPurchasing(ctx, func(_ repository.ItemRepository, _ repository.StockMovementRepository, poRepo repository.PurchaseOrderRepository) error {
		po, err := poRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if po == nil {
			return domain.ErrNotFound
		}
		if !po.Status.CanCancel() {
			return &domain.InvalidOrderStateError{OrderID: po.PONumber, Status: string(po.Status), Action: "cancelar"}
		}
		po.Status = entity.POStatusCancelled
		po.UpdatedAt = uc.now()
		if err := poRepo.Update(ctx, po); err != nil {
			return err
		}
		cancelled = po
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toPurchaseOrderResponse(cancelled, uc.supplierName(ctx, cancelled.SupplierID)), nil
}

// Update edita notas y fecha esperada de una orden abierta. El único cambio de estado admitido es draft -> pending.
func (uc *PurchaseOrderUseCase) Update(ctx context.Context, id string, in dto.UpdatePurchaseOrderRequest) (*dto.PurchaseOrderResponse, error) {
	var updated *entity.PurchaseOrder
	err := uc.txRunner.RunPurchasing(ctx, func(_ repository.ItemRepository, _ repository.StockMovementRepository, poRepo repository.PurchaseOrderRepository) error {
		po, err := poRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if po == nil {
			return domain.ErrNotFound
		}
		if po.Status.IsTerminal() {
			return &domain.InvalidOrderStateError{OrderID: po.PONumber, Status: string(po.Status), Action: "editar"}
		}
		if in.Status != nil && *in.Status != string(po.Status) {
			next, ok := entity.ParsePOStatus(*in.Status)
			if !ok {
				return fmt.Errorf("%w: estado %q", domain.ErrInvalidInput, *in.Status)
			}
			if next != entity.POStatusPending || po.Status != entity.POStatusDraft {
				return &domain.InvalidOrderStateError{OrderID: po.PONumber, Status: string(po.Status), Action: "cambiar a " + string(next)}
			}
			po.Status = next
		}
		if in.Notes != nil {
			po.Notes = *in.Notes
		}
		if in.ExpectedDelivery != nil {
			po.ExpectedDelivery = in.ExpectedDelivery
		}
		po.UpdatedAt = uc.now()
		if err := poRepo.Update(ctx, po); err != nil {
			return err
		}
		updated = po
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toPurchaseOrderResponse(updated, uc.supplierName(ctx, updated.SupplierID)), nil
}

// Delete borra la orden y sus líneas. Una orden recibida no se borra.
func (uc *PurchaseOrderUseCase) Delete(ctx context.Context, id string) error {
	return uc.txRunner.RunPurchasing(ctx, func(_ repository.ItemRepository, _ repository.StockMovementRepository, poRepo repository.PurchaseOrderRepository) error {
		po, err := poRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if po == nil {
			return domain.ErrNotFound
		}
		if !po.Status.CanDelete() {
			return &domain.InvalidOrderStateError{OrderID: po.PONumber, Status: string(po.Status), Action: "eliminar"}
		}
		return poRepo.Delete(ctx, id)
	})
}

// GetByID devuelve la orden con sus líneas y el nombre del proveedor.
func (uc *PurchaseOrderUseCase) GetByID(ctx context.Context, id string) (*dto.PurchaseOrderResponse, error) {
	po, err := uc.poRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if po == nil {
		return nil, domain.ErrNotFound
	}
	return toPurchaseOrderResponse(po, uc.supplierName(ctx, po.SupplierID)), nil
}

// supplierName nombre del proveedor para la respuesta; vacío si ya no existe o falla la lectura.
func (uc *PurchaseOrderUseCase) supplierName(ctx context.Context, supplierID string) string {
	sup, err := uc.supplierRepo.GetByID(ctx, supplierID)
	if err != nil {
		uc.log.Warn().Err(err).Str("supplier_id", supplierID).Msg("no se pudo leer el proveedor de la orden")
		return ""
	}
	if sup == nil {
		return ""
	}
	return sup.Name
}

// List lista órdenes con filtros opcionales de estado y proveedor.
func (uc *PurchaseOrderUseCase) List(ctx context.Context, status, supplierID string, page dto.PageRequest) (*dto.PurchaseOrderListResponse, error) {
	filter := repository.PurchaseOrderFilter{SupplierID: supplierID}
	if status != "" {
		st, ok := entity.ParsePOStatus(status)
		if !ok {
			return nil, fmt.Errorf("%w: estado %q", domain.ErrInvalidInput, status)
		}
		filter.Status = st
	}
	page.Normalize()
	list, err := uc.poRepo.List(ctx, filter, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string)
	items := make([]dto.PurchaseOrderResponse, 0, len(list))
	for _, po := range list {
		name, ok := names[po.SupplierID]
		if !ok {
			name = uc.supplierName(ctx, po.SupplierID)
			names[po.SupplierID] = name
		}
		items = append(items, *toPurchaseOrderResponse(po, name))
	}
	return &dto.PurchaseOrderListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

func toPurchaseOrderResponse(po *entity.PurchaseOrder, supplierName string) *dto.PurchaseOrderResponse {
	out := &dto.PurchaseOrderResponse{
		ID:               po.ID,
		PONumber:         po.PONumber,
		SupplierID:       po.SupplierID,
		SupplierName:     supplierName,
		Status:           string(po.Status),
		TotalAmount:      po.TotalAmount,
		Notes:            po.Notes,
		ExpectedDelivery: po.ExpectedDelivery,
		ReceivedAt:       po.ReceivedAt,
		CreatedAt:        po.CreatedAt,
		UpdatedAt:        po.UpdatedAt,
		Items:            make([]dto.PurchaseOrderItemResponse, 0, len(po.Items)),
	}
	for _, l := range po.Items {
		out.Items = append(out.Items, dto.PurchaseOrderItemResponse{
			ID:               l.ID,
			ItemID:           l.ItemID,
			QuantityOrdered:  l.QuantityOrdered,
			QuantityReceived: l.QuantityReceived,
			UnitPrice:        l.UnitPrice,
			Subtotal:         l.Subtotal(),
		})
	}
	return out
}
