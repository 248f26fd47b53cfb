package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-tracker/internal/application/dto"
	"github.com/jhoicas/inventory-tracker/internal/application/inventory"
	"github.com/jhoicas/inventory-tracker/internal/application/usecase"
	"github.com/jhoicas/inventory-tracker/internal/domain"
	"github.com/jhoicas/inventory-tracker/internal/domain/entity"
	"github.com/jhoicas/inventory-tracker/internal/domain/repository"
	"github.com/jhoicas/inventory-tracker/internal/infrastructure/memory"
)

func newItemUseCase() (*usecase.ItemUseCase, *memory.Store) {
	store := memory.NewStore()
	ledger := inventory.NewLedgerUseCase(store, store.Items(), store.Movements(), nil)
	return usecase.NewItemUseCase(store, store.Items(), ledger), store
}

func movementsOf(t *testing.T, store *memory.Store, itemID string) []*entity.StockMovement {
	t.Helper()
	movs, err := store.Movements().ListByItem(context.Background(), itemID, 0, 0)
	require.NoError(t, err)
	return movs
}

func TestCreate_CantidadInicialPasaPorElLedger(t *testing.T) {
	uc, store := newItemUseCase()
	ctx := context.Background()

	got, err := uc.Create(ctx, "u1", dto.CreateItemRequest{Name: "Tornillo", Quantity: 12, Price: decimal.NewFromInt(1)})
	require.NoError(t, err)
	assert.Equal(t, 12, got.Quantity)

	movs := movementsOf(t, store, got.ID)
	require.Len(t, movs, 1)
	m := movs[0]
	assert.Equal(t, entity.MovementAdjusted, m.Type)
	assert.Equal(t, 0, m.QuantityBefore)
	assert.Equal(t, 12, m.QuantityChange)
	assert.Equal(t, 12, m.QuantityAfter)
	require.NotNil(t, m.Reason)
	assert.Equal(t, "stock inicial", *m.Reason)
	require.NotNil(t, m.CreatedBy)
	assert.Equal(t, "u1", *m.CreatedBy)
}

func TestCreate_SinCantidadNoRegistraMovimiento(t *testing.T) {
	uc, store := newItemUseCase()

	got, err := uc.Create(context.Background(), "", dto.CreateItemRequest{Name: "Tuerca"})
	require.NoError(t, err)
	assert.Equal(t, 0, got.Quantity)
	assert.Empty(t, movementsOf(t, store, got.ID))
}

func TestCreate_ProveedorInexistente(t *testing.T) {
	uc, _ := newItemUseCase()
	ghost := "no-existe"

	_, err := uc.Create(context.Background(), "", dto.CreateItemRequest{Name: "Arandela", SupplierID: &ghost})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdate_CambioDeCantidadRegistraAjuste(t *testing.T) {
	uc, store := newItemUseCase()
	ctx := context.Background()
	item, err := uc.Create(ctx, "", dto.CreateItemRequest{Name: "Bisagra", Quantity: 10})
	require.NoError(t, err)

	qty, reason := 4, "conteo físico"
	got, err := uc.Update(ctx, item.ID, "u2", dto.UpdateItemRequest{Quantity: &qty, MovementReason: &reason})
	require.NoError(t, err)
	assert.Equal(t, 4, got.Quantity)

	movs := movementsOf(t, store, item.ID)
	require.Len(t, movs, 2, "stock inicial más el ajuste")
	m := movs[0]
	assert.Equal(t, entity.MovementAdjusted, m.Type)
	assert.Equal(t, 10, m.QuantityBefore)
	assert.Equal(t, -6, m.QuantityChange)
	assert.Equal(t, 4, m.QuantityAfter)
	require.NotNil(t, m.Reason)
	assert.Equal(t, reason, *m.Reason)
	require.NotNil(t, m.CreatedBy)
	assert.Equal(t, "u2", *m.CreatedBy)
}

func TestUpdate_SinCambioDeCantidadNoRegistraMovimiento(t *testing.T) {
	uc, store := newItemUseCase()
	ctx := context.Background()
	item, err := uc.Create(ctx, "", dto.CreateItemRequest{Name: "Bisagra", Quantity: 10})
	require.NoError(t, err)

	same, name := 10, "Bisagra reforzada"
	got, err := uc.Update(ctx, item.ID, "", dto.UpdateItemRequest{Name: &name, Quantity: &same})
	require.NoError(t, err)
	assert.Equal(t, name, got.Name)
	assert.Equal(t, 10, got.Quantity)
	assert.Len(t, movementsOf(t, store, item.ID), 1)

	category := "herrajes"
	_, err = uc.Update(ctx, item.ID, "", dto.UpdateItemRequest{Category: &category})
	require.NoError(t, err)
	assert.Len(t, movementsOf(t, store, item.ID), 1)
}

func TestUpdate_FalloDelLedgerRevierteLaEdicion(t *testing.T) {
	uc, store := newItemUseCase()
	ctx := context.Background()
	item, err := uc.Create(ctx, "", dto.CreateItemRequest{Name: "Cerradura", Quantity: 3})
	require.NoError(t, err)

	errLedger := errors.New("insert falló")
	store.FailMovementsWhen(func(*entity.StockMovement) error { return errLedger })

	qty, name := 8, "Cerradura doble"
	_, err = uc.Update(ctx, item.ID, "", dto.UpdateItemRequest{Name: &name, Quantity: &qty})
	require.ErrorIs(t, err, errLedger)

	got, err := uc.GetByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "Cerradura", got.Name, "la edición descriptiva se revierte con el ledger")
	assert.Equal(t, 3, got.Quantity)
	assert.Len(t, movementsOf(t, store, item.ID), 1)
}

func TestUpdate_CantidadNegativaOArticuloInexistente(t *testing.T) {
	uc, _ := newItemUseCase()
	ctx := context.Background()

	neg := -1
	_, err := uc.Update(ctx, "x", "", dto.UpdateItemRequest{Quantity: &neg})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	name := "x"
	_, err = uc.Update(ctx, "no-existe", "", dto.UpdateItemRequest{Name: &name})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestList_LimiteMaximo(t *testing.T) {
	uc, _ := newItemUseCase()

	out, err := uc.List(context.Background(), repository.ItemFilter{}, dto.PageRequest{Limit: 100000000})
	require.NoError(t, err)
	assert.Equal(t, dto.MaxPageLimit, out.Page.Limit)
}
