package repository

import (
	"context"

	"github.com/jhoicas/inventory-tracker/internal/domain/entity"
)

// PurchaseOrderFilter filtros del listado de órdenes.
type PurchaseOrderFilter struct {
	Status     entity.POStatus
	SupplierID string
}

// PurchaseOrderRepository define el puerto de persistencia para órdenes de compra y sus líneas.
type PurchaseOrderRepository interface {
	Create(ctx context.Context, po *entity.PurchaseOrder) error
	CreateItem(ctx context.Context, line *entity.PurchaseOrderItem) error
	// GetByID devuelve la orden con sus líneas; nil si no existe.
	GetByID(ctx context.Context, id string) (*entity.PurchaseOrder, error)
	// GetForUpdate igual que GetByID pero bloquea la cabecera (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.PurchaseOrder, error)
	Update(ctx context.Context, po *entity.PurchaseOrder) error
	UpdateItemReceived(ctx context.Context, lineID string, quantityReceived int) error
	List(ctx context.Context, filter PurchaseOrderFilter, limit, offset int) ([]*entity.PurchaseOrder, error)
	Delete(ctx context.Context, id string) error
}
