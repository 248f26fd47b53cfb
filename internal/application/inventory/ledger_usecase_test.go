package inventory_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-tracker/internal/application/inventory"
	"github.com/jhoicas/inventory-tracker/internal/domain"
	"github.com/jhoicas/inventory-tracker/internal/domain/entity"
	"github.com/jhoicas/inventory-tracker/internal/domain/repository"
	"github.com/jhoicas/inventory-tracker/internal/infrastructure/memory"
)

func newLedger(t *testing.T) (*inventory.LedgerUseCase, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	uc := inventory.NewLedgerUseCase(store, store.Items(), store.Movements(), nil).
		WithRetryPolicy(inventory.RetryPolicy{MaxAttempts: 3, Backoff: time.Millisecond})
	return uc, store
}

func seedItem(t *testing.T, store *memory.Store, id string, qty int) {
	t.Helper()
	now := time.Now()
	require.NoError(t, store.Items().Create(context.Background(), &entity.InventoryItem{
		ID:        id,
		Name:      "Artículo " + id,
		Price:     decimal.NewFromInt(10),
		CostPrice: decimal.NewFromInt(6),
		Quantity:  qty,
		CreatedAt: now,
		UpdatedAt: now,
	}))
}

func quantityOf(t *testing.T, store *memory.Store, id string) int {
	t.Helper()
	it, err := store.Items().GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, it)
	return it.Quantity
}

func TestAdjustQuantity_Venta(t *testing.T) {
	uc, store := newLedger(t)
	seedItem(t, store, "i1", 10)

	m, err := uc.AdjustQuantity(context.Background(), inventory.AdjustInput{
		ItemID: "i1", Delta: -7, Type: entity.MovementSold,
	})
	require.NoError(t, err)
	assert.Equal(t, 10, m.QuantityBefore)
	assert.Equal(t, 3, m.QuantityAfter)
	assert.Equal(t, -7, m.QuantityChange)
	assert.Equal(t, 3, quantityOf(t, store, "i1"))

	list, err := uc.ListMovements(context.Background(), "i1", 0, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, m.ID, list[0].ID)
}

func TestAdjustQuantity_StockInsuficienteNoEscribe(t *testing.T) {
	uc, store := newLedger(t)
	seedItem(t, store, "i1", 3)

	_, err := uc.AdjustQuantity(context.Background(), inventory.AdjustInput{
		ItemID: "i1", Delta: -5, Type: entity.MovementSold,
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	var detail *domain.InsufficientStockError
	require.True(t, errors.As(err, &detail))
	assert.Equal(t, 5, detail.Requested)
	assert.Equal(t, 3, detail.Available)

	assert.Equal(t, 3, quantityOf(t, store, "i1"))
	list, err := uc.ListMovements(context.Background(), "i1", 0, 0)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestAdjustQuantity_Validaciones(t *testing.T) {
	uc, store := newLedger(t)
	seedItem(t, store, "i1", 3)
	ctx := context.Background()

	_, err := uc.AdjustQuantity(ctx, inventory.AdjustInput{ItemID: "i1", Delta: 0, Type: entity.MovementAdjusted})
	assert.ErrorIs(t, err, domain.ErrZeroDelta)

	_, err = uc.AdjustQuantity(ctx, inventory.AdjustInput{ItemID: "i1", Delta: 1, Type: "stolen"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.AdjustQuantity(ctx, inventory.AdjustInput{ItemID: "nope", Delta: 1, Type: entity.MovementAdjusted})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.AdjustQuantity(ctx, inventory.AdjustInput{Delta: 1, Type: entity.MovementAdjusted})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAdjustQuantity_ArticuloDadoDeBaja(t *testing.T) {
	uc, store := newLedger(t)
	seedItem(t, store, "i1", 3)
	require.NoError(t, store.Items().SoftDelete(context.Background(), "i1", time.Now()))

	_, err := uc.AdjustQuantity(context.Background(), inventory.AdjustInput{ItemID: "i1", Delta: 1, Type: entity.MovementReturned})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// el historial sigue consultable
	_, err = uc.ListMovements(context.Background(), "i1", 0, 0)
	assert.NoError(t, err)
}

func TestAdjustQuantity_FalloAlRegistrarMovimientoRevierte(t *testing.T) {
	uc, store := newLedger(t)
	seedItem(t, store, "i1", 4)
	store.FailMovementsWhen(func(*entity.StockMovement) error { return errors.New("disco lleno") })

	_, err := uc.AdjustQuantity(context.Background(), inventory.AdjustInput{ItemID: "i1", Delta: 2, Type: entity.MovementReceived})
	require.Error(t, err)
	assert.Equal(t, 4, quantityOf(t, store, "i1"), "la cantidad no cambia si el movimiento falla")
}

func TestAdjustQuantity_ConcurrenteNoDejaNegativo(t *testing.T) {
	uc, store := newLedger(t)
	seedItem(t, store, "i1", 1)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.AdjustQuantity(context.Background(), inventory.AdjustInput{
				ItemID: "i1", Delta: -1, Type: entity.MovementSold,
			})
		}(i)
	}
	wg.Wait()

	ok, insufficient := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, domain.ErrInsufficientStock):
			insufficient++
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, insufficient)
	assert.Equal(t, 0, quantityOf(t, store, "i1"))

	list, err := uc.ListMovements(context.Background(), "i1", 0, 0)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestAdjustQuantity_CantidadIgualASumaDeMovimientos(t *testing.T) {
	uc, store := newLedger(t)
	seedItem(t, store, "i1", 0)
	ctx := context.Background()

	deltas := []int{5, -2, 10, -13, 4, -1}
	for _, d := range deltas {
		mt := entity.MovementReceived
		if d < 0 {
			mt = entity.MovementSold
		}
		_, err := uc.AdjustQuantity(ctx, inventory.AdjustInput{ItemID: "i1", Delta: d, Type: mt})
		require.NoError(t, err)
	}
	// este dejaría -4
	_, err := uc.AdjustQuantity(ctx, inventory.AdjustInput{ItemID: "i1", Delta: -7, Type: entity.MovementDamaged})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	list, err := uc.ListMovements(ctx, "i1", 0, 0)
	require.NoError(t, err)
	require.Len(t, list, len(deltas))

	sum := 0
	for i, m := range list {
		sum += m.QuantityChange
		assert.Equal(t, m.QuantityBefore+m.QuantityChange, m.QuantityAfter)
		if i > 0 {
			// más reciente primero: el anterior en la lista parte de donde terminó este
			assert.Equal(t, m.QuantityAfter, list[i-1].QuantityBefore)
		}
	}
	assert.Equal(t, quantityOf(t, store, "i1"), sum)
}

func TestListMovements_Paginacion(t *testing.T) {
	uc, store := newLedger(t)
	seedItem(t, store, "i1", 0)
	for i := 0; i < 5; i++ {
		_, err := uc.AdjustQuantity(context.Background(), inventory.AdjustInput{ItemID: "i1", Delta: 1, Type: entity.MovementReceived})
		require.NoError(t, err)
	}

	first, err := uc.ListMovements(context.Background(), "i1", 2, 0)
	require.NoError(t, err)
	require.Len(t, first, 2)
	assert.Equal(t, 5, first[0].QuantityAfter)
	assert.Equal(t, 4, first[1].QuantityAfter)

	last, err := uc.ListMovements(context.Background(), "i1", 2, 4)
	require.NoError(t, err)
	require.Len(t, last, 1)
	assert.Equal(t, 1, last[0].QuantityAfter)

	_, err = uc.ListMovements(context.Background(), "nope", 0, 0)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestNormalizeMovementPage(t *testing.T) {
	l, o := inventory.NormalizeMovementPage(0, -3)
	assert.Equal(t, inventory.DefaultMovementLimit, l)
	assert.Equal(t, 0, o)
	l, _ = inventory.NormalizeMovementPage(1000, 0)
	assert.Equal(t, inventory.MaxMovementLimit, l)
}

// conflictRunner devuelve ErrConcurrencyConflict las primeras n veces.
type conflictRunner struct {
	inner     inventory.TxRunner
	conflicts int
	calls     int
}

func (r *conflictRunner) Run(ctx context.Context, fn func(repository.ItemRepository, repository.StockMovementRepository) error) error {
	r.calls++
	if r.calls <= r.conflicts {
		return fmt.Errorf("tx: %w", domain.ErrConcurrencyConflict)
	}
	return r.inner.Run(ctx, fn)
}

func TestAdjustQuantity_ReintentaConflictos(t *testing.T) {
	store := memory.NewStore()
	seedItem(t, store, "i1", 2)
	runner := &conflictRunner{inner: store, conflicts: 2}
	uc := inventory.NewLedgerUseCase(runner, store.Items(), store.Movements(), nil).
		WithRetryPolicy(inventory.RetryPolicy{MaxAttempts: 3, Backoff: time.Millisecond})

	_, err := uc.AdjustQuantity(context.Background(), inventory.AdjustInput{ItemID: "i1", Delta: 1, Type: entity.MovementReturned})
	require.NoError(t, err)
	assert.Equal(t, 3, runner.calls)
	assert.Equal(t, 3, quantityOf(t, store, "i1"))

	runner = &conflictRunner{inner: store, conflicts: 5}
	uc = inventory.NewLedgerUseCase(runner, store.Items(), store.Movements(), nil).
		WithRetryPolicy(inventory.RetryPolicy{MaxAttempts: 3, Backoff: time.Millisecond})
	_, err = uc.AdjustQuantity(context.Background(), inventory.AdjustInput{ItemID: "i1", Delta: 1, Type: entity.MovementReturned})
	assert.ErrorIs(t, err, domain.ErrConcurrencyConflict)
	assert.Equal(t, 3, runner.calls)
}

func TestWithRetry_RespetaCancelacion(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	err := inventory.WithRetry(ctx, inventory.RetryPolicy{MaxAttempts: 5, Backoff: time.Hour}, func() error {
		calls++
		cancel()
		return domain.ErrConcurrencyConflict
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)

	calls = 0
	err = inventory.WithRetry(context.Background(), inventory.DefaultRetryPolicy(), func() error {
		calls++
		return domain.ErrNotFound
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 1, calls, "solo se reintentan conflictos")
}
