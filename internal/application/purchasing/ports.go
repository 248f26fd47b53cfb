package purchasing

import (
	"context"

	"github.com/jhoicas/inventory-tracker/internal/application/inventory"
	"github.com/jhoicas/inventory-tracker/internal/domain/entity"
	"github.com/jhoicas/inventory-tracker/internal/domain/repository"
)

// PurchasingTxRunner ejecuta una función dentro de una transacción que incluye los repos del ledger y de órdenes.
type PurchasingTxRunner interface {
	RunPurchasing(ctx context.Context, fn func(
		itemRepo repository.ItemRepository,
		movRepo repository.StockMovementRepository,
		poRepo repository.PurchaseOrderRepository,
	) error) error
}

// StockAdjuster integra la recepción de órdenes con el ledger.
// AdjustInTx usa los repositorios del caller (misma transacción); si retorna error el caller hace rollback.
type StockAdjuster interface {
	AdjustInTx(
		ctx context.Context,
		itemRepo repository.ItemRepository,
		movRepo repository.StockMovementRepository,
		in inventory.AdjustInput,
	) (*entity.StockMovement, error)
}

// PurchaseOrderLineForPDF línea de la orden enriquecida con los datos del artículo.
type PurchaseOrderLineForPDF struct {
	entity.PurchaseOrderItem
	ItemName string
	SKU      string
}

// PurchaseOrderPDFGenerator genera el documento imprimible de una orden de compra.
type PurchaseOrderPDFGenerator interface {
	GeneratePurchaseOrderPDF(
		ctx context.Context,
		po *entity.PurchaseOrder,
		supplier *entity.Supplier,
		lines []PurchaseOrderLineForPDF,
	) ([]byte, error)
}
