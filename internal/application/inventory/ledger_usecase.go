package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/inventory-tracker/internal/domain"
	"github.com/jhoicas/inventory-tracker/internal/domain/entity"
	"github.com/jhoicas/inventory-tracker/internal/domain/inventory"
	"github.com/jhoicas/inventory-tracker/internal/domain/repository"
	"github.com/jhoicas/inventory-tracker/pkg/logger"
)

// Paginación de movimientos.
const (
	DefaultMovementLimit = 50
	MaxMovementLimit     = 200
)

// LedgerUseCase es el único punto de escritura de quantity.
// Cada ajuste bloquea la fila del artículo (SELECT FOR UPDATE), valida la regla del ledger,
// actualiza la cantidad e inserta el movimiento en la misma transacción.
type LedgerUseCase struct {
	txRunner TxRunner
	itemRepo repository.ItemRepository
	movRepo  repository.StockMovementRepository
	log      *logger.Logger
	retry    RetryPolicy
	now      func() time.Time
	newID    func() string
}

// NewLedgerUseCase construye el caso de uso del libro de movimientos.
func NewLedgerUseCase(
	txRunner TxRunner,
	itemRepo repository.ItemRepository,
	movRepo repository.StockMovementRepository,
	log *logger.Logger,
) *LedgerUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &LedgerUseCase{
		txRunner: txRunner,
		itemRepo: itemRepo,
		movRepo:  movRepo,
		log:      log,
		retry:    DefaultRetryPolicy(),
		now:      time.Now,
		newID:    func() string { return uuid.New().String() },
	}
}

// WithRetryPolicy reemplaza la política de reintentos ante conflictos de concurrencia.
func (uc *LedgerUseCase) WithRetryPolicy(p RetryPolicy) *LedgerUseCase {
	uc.retry = p
	return uc
}

// AdjustInput entrada de AdjustQuantity.
type AdjustInput struct {
	ItemID          string
	Delta           int
	Type            entity.MovementType
	Reason          *string
	ReferenceNumber *string
	Actor           *string
}

func (in AdjustInput) validate() error {
	if in.ItemID == "" {
		return fmt.Errorf("%w: item_id requerido", domain.ErrInvalidInput)
	}
	if in.Delta == 0 {
		return domain.ErrZeroDelta
	}
	if !in.Type.Valid() {
		return domain.ErrInvalidMovementType
	}
	return nil
}

// AdjustQuantity aplica delta a la cantidad del artículo y registra el movimiento.
// Si la cantidad quedaría negativa devuelve *domain.InsufficientStockError sin escribir nada.
func (uc *LedgerUseCase) AdjustQuantity(ctx context.Context, in AdjustInput) (*entity.StockMovement, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	var movement *entity.StockMovement
	err := WithRetry(ctx, uc.retry, func() error {
		return uc.txRunner.Run(ctx, func(itemRepo repository.ItemRepository, movRepo repository.StockMovementRepository) error {
			m, err := uc.AdjustInTx(ctx, itemRepo, movRepo, in)
			if err != nil {
				return err
			}
			movement = m
			return nil
		})
	})
	if err != nil {
		uc.log.Warn().Err(err).
			Str("item_id", in.ItemID).
			Int("delta", in.Delta).
			Str("movement_type", in.Type.String()).
			Msg("ajuste de inventario rechazado")
		return nil, err
	}

	uc.log.Info().
		Str("item_id", movement.ItemID).
		Str("movement_id", movement.ID).
		Str("movement_type", movement.Type.String()).
		Int("before", movement.QuantityBefore).
		Int("after", movement.QuantityAfter).
		Msg("movimiento registrado")
	return movement, nil
}

// AdjustInTx ejecuta la regla del ledger con repositorios atados a la transacción del caller
// (recepción de órdenes, alta y edición de artículos). No reintenta: eso le toca al dueño de la tx.
func (uc *LedgerUseCase) AdjustInTx(
	ctx context.Context,
	itemRepo repository.ItemRepository,
	movRepo repository.StockMovementRepository,
	in AdjustInput,
) (*entity.StockMovement, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	item, err := itemRepo.GetForUpdate(ctx, in.ItemID)
	if err != nil {
		return nil, err
	}
	if item == nil || item.IsDeleted() {
		return nil, domain.ErrNotFound
	}

	next, err := inventory.ApplyDelta(item.ID, item.Quantity, in.Delta)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	if err := itemRepo.SetQuantity(ctx, item.ID, next, now); err != nil {
		return nil, err
	}

	movement := inventory.NewMovement(uc.newID(), item.ID, item.Quantity, in.Delta, inventory.MovementSpec{
		Type:            in.Type,
		Reason:          in.Reason,
		ReferenceNumber: in.ReferenceNumber,
		CreatedBy:       in.Actor,
	}, now)
	if err := movRepo.Create(ctx, movement); err != nil {
		return nil, err
	}
	return movement, nil
}

// ListMovements devuelve los movimientos del artículo, el más reciente primero.
// Un artículo dado de baja conserva su historial consultable.
func (uc *LedgerUseCase) ListMovements(ctx context.Context, itemID string, limit, offset int) ([]*entity.StockMovement, error) {
	item, err := uc.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	limit, offset = NormalizeMovementPage(limit, offset)
	return uc.movRepo.ListByItem(ctx, itemID, limit, offset)
}

// NormalizeMovementPage aplica el límite por defecto y el máximo.
func NormalizeMovementPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultMovementLimit
	}
	if limit > MaxMovementLimit {
		limit = MaxMovementLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
