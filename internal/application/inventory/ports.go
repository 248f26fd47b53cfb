package inventory

import (
	"context"

	"github.com/jhoicas/inventory-tracker/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza atomicidad entre la escritura de cantidad y el movimiento del ledger.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		itemRepo repository.ItemRepository,
		movRepo repository.StockMovementRepository,
	) error) error
}

// AlertSink recibe las alertas de stock bajo. La entrega (email, webhook) queda fuera del servicio.
type AlertSink interface {
	Notify(ctx context.Context, alert LowStockAlert) error
}
