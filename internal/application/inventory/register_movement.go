package inventory

import (
	"context"

	"github.com/jhoicas/inventory-tracker/internal/application/dto"
	"github.com/jhoicas/inventory-tracker/internal/domain"
	"github.com/jhoicas/inventory-tracker/internal/domain/entity"
)

// AdjustFromRequest adapta el request HTTP al caso de uso AdjustQuantity.
// actor es el user_id del token, vacío si la petición es anónima.
func (uc *LedgerUseCase) AdjustFromRequest(ctx context.Context, itemID, actor string, in dto.AdjustQuantityRequest) (*dto.StockMovementResponse, error) {
	mt, err := entity.ParseMovementType(in.MovementType)
	if err != nil {
		return nil, domain.ErrInvalidMovementType
	}
	input := AdjustInput{
		ItemID:          itemID,
		Delta:           in.Delta,
		Type:            mt,
		Reason:          in.Reason,
		ReferenceNumber: in.ReferenceNumber,
	}
	if actor != "" {
		input.Actor = &actor
	}
	m, err := uc.AdjustQuantity(ctx, input)
	if err != nil {
		return nil, err
	}
	out := ToMovementResponse(m)
	return &out, nil
}

// ListMovementsPage devuelve la página de movimientos en formato de respuesta.
func (uc *LedgerUseCase) ListMovementsPage(ctx context.Context, itemID string, page dto.PageRequest) (*dto.MovementListResponse, error) {
	limit, offset := NormalizeMovementPage(page.Limit, page.Offset)
	list, err := uc.ListMovements(ctx, itemID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StockMovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, ToMovementResponse(m))
	}
	return &dto.MovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// ToMovementResponse convierte un movimiento de dominio al DTO.
func ToMovementResponse(m *entity.StockMovement) dto.StockMovementResponse {
	return dto.StockMovementResponse{
		ID:              m.ID,
		ItemID:          m.ItemID,
		QuantityChange:  m.QuantityChange,
		QuantityBefore:  m.QuantityBefore,
		QuantityAfter:   m.QuantityAfter,
		MovementType:    m.Type.String(),
		Reason:          m.Reason,
		ReferenceNumber: m.ReferenceNumber,
		CreatedAt:       m.CreatedAt,
		CreatedBy:       m.CreatedBy,
	}
}
