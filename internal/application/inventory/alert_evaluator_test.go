package inventory_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-tracker/internal/application/inventory"
	"github.com/jhoicas/inventory-tracker/internal/domain/entity"
	"github.com/jhoicas/inventory-tracker/internal/infrastructure/memory"
)

type recordingSink struct {
	mu     sync.Mutex
	alerts []inventory.LowStockAlert
}

func (s *recordingSink) Notify(_ context.Context, a inventory.LowStockAlert) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.alerts = append(s.alerts, a)
	return nil
}

func (s *recordingSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.alerts)
}

func TestAlertEvaluator_SoloAlertaCambios(t *testing.T) {
	store := memory.NewStore()
	seedLowStock(t, store, "a", "Tornillos", 2, 5)
	seedLowStock(t, store, "b", "Clavos", 20, 5)
	ledger := inventory.NewLedgerUseCase(store, store.Items(), store.Movements(), nil)

	sink := &recordingSink{}
	ev := inventory.NewAlertEvaluator(store.Levels(), sink, time.Minute, nil)
	ctx := context.Background()

	emitted, err := ev.Evaluate(ctx)
	require.NoError(t, err)
	require.Len(t, emitted, 1)
	assert.Equal(t, "a", emitted[0].ItemID)
	assert.Equal(t, 2, emitted[0].Quantity)

	// sin cambios: no se repite
	emitted, err = ev.Evaluate(ctx)
	require.NoError(t, err)
	assert.Empty(t, emitted)

	_, err = ledger.AdjustQuantity(ctx, inventory.AdjustInput{ItemID: "a", Delta: -1, Type: entity.MovementSold})
	require.NoError(t, err)
	emitted, err = ev.Evaluate(ctx)
	require.NoError(t, err)
	require.Len(t, emitted, 1)
	assert.Equal(t, 1, emitted[0].Quantity)

	// el evaluador solo lee
	it, err := store.Items().GetByID(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, 1, it.Quantity)
	assert.Equal(t, 2, sink.count())
}

func TestAlertEvaluator_RunSeDetieneConContexto(t *testing.T) {
	store := memory.NewStore()
	seedLowStock(t, store, "a", "Tornillos", 0, 5)
	sink := &recordingSink{}
	ev := inventory.NewAlertEvaluator(store.Levels(), sink, 10*time.Millisecond, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		ev.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool { return sink.count() == 1 }, time.Second, 5*time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run no terminó tras cancelar el contexto")
	}
}
