package purchasing

import (
	"context"
	"fmt"

	"github.com/jhoicas/inventory-tracker/internal/domain"
	"github.com/jhoicas/inventory-tracker/internal/domain/repository"
)

// PDFUseCase genera el documento imprimible de una orden de compra.
type PDFUseCase struct {
	poRepo       repository.PurchaseOrderRepository
	supplierRepo repository.SupplierRepository
	itemRepo     repository.ItemRepository
	generator    PurchaseOrderPDFGenerator
}

// NewPDFUseCase construye el caso de uso inyectando todas sus dependencias.
func NewPDFUseCase(
	poRepo repository.PurchaseOrderRepository,
	supplierRepo repository.SupplierRepository,
	itemRepo repository.ItemRepository,
	generator PurchaseOrderPDFGenerator,
) *PDFUseCase {
	return &PDFUseCase{
		poRepo:       poRepo,
		supplierRepo: supplierRepo,
		itemRepo:     itemRepo,
		generator:    generator,
	}
}

// DownloadPurchaseOrderPDF carga orden, proveedor y artículos y genera el PDF.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - domain.ErrNotFound         si la orden no existe.
func (uc *PDFUseCase) DownloadPurchaseOrderPDF(ctx context.Context, id string) (pdfBytes []byte, filename string, err error) {
	po, err := uc.poRepo.GetByID(ctx, id)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener orden: %w", err)
	}
	if po == nil {
		return nil, "", domain.ErrNotFound
	}

	supplier, err := uc.supplierRepo.GetByID(ctx, po.SupplierID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener proveedor: %w", err)
	}
	if supplier == nil {
		return nil, "", fmt.Errorf("pdf: proveedor %s: %w", po.SupplierID, domain.ErrNotFound)
	}

	lines := make([]PurchaseOrderLineForPDF, 0, len(po.Items))
	for _, l := range po.Items {
		line := PurchaseOrderLineForPDF{PurchaseOrderItem: *l, ItemName: "Artículo " + l.ItemID}
		// los artículos dados de baja conservan su nombre en el documento
		if item, iErr := uc.itemRepo.GetByID(ctx, l.ItemID); iErr == nil && item != nil {
			line.ItemName = item.Name
			if item.SKU != nil {
				line.SKU = *item.SKU
			}
		}
		lines = append(lines, line)
	}

	pdfBytes, err = uc.generator.GeneratePurchaseOrderPDF(ctx, po, supplier, lines)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	return pdfBytes, fmt.Sprintf("orden_compra_%s.pdf", po.PONumber), nil
}
