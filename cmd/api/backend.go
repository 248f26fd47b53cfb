package main

import (
	"context"
	"fmt"

	"github.com/jhoicas/inventory-tracker/internal/application/inventory"
	"github.com/jhoicas/inventory-tracker/internal/application/purchasing"
	"github.com/jhoicas/inventory-tracker/internal/domain/repository"
	"github.com/jhoicas/inventory-tracker/internal/infrastructure/memory"
	"github.com/jhoicas/inventory-tracker/internal/infrastructure/postgres"
	"github.com/jhoicas/inventory-tracker/pkg/config"
	"github.com/jhoicas/inventory-tracker/pkg/logger"
)

// txRunner cubre las transacciones del ledger y las de compras.
type txRunner interface {
	inventory.TxRunner
	purchasing.PurchasingTxRunner
}

// backend repositorios fuera de transacción más el runner transaccional del driver elegido.
type backend struct {
	items     repository.ItemRepository
	movements repository.StockMovementRepository
	orders    repository.PurchaseOrderRepository
	suppliers repository.SupplierRepository
	levels    repository.InventoryLevelRepository
	analytics repository.AnalyticsRepository
	tx        txRunner
	close     func()
}

// openBackend construye el backend según DB_DRIVER (postgres | memory).
func openBackend(ctx context.Context, cfg config.DBConfig, log *logger.Logger) (*backend, error) {
	if cfg.Driver == "memory" {
		log.Warn().Msg("DB_DRIVER=memory: los datos se pierden al detener el proceso")
		store := memory.NewStore()
		return &backend{
			items:     store.Items(),
			movements: store.Movements(),
			orders:    store.PurchaseOrders(),
			suppliers: store.Suppliers(),
			levels:    store.Levels(),
			analytics: store.Levels(),
			tx:        store,
			close:     func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	if cfg.AutoMigrate {
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		log.Info().Msg("esquema de base de datos actualizado")
	}
	return &backend{
		items:     postgres.NewItemRepository(pool),
		movements: postgres.NewStockMovementRepository(pool),
		orders:    postgres.NewPurchaseOrderRepository(pool),
		suppliers: postgres.NewSupplierRepository(pool),
		levels:    postgres.NewInventoryLevelRepository(pool),
		analytics: postgres.NewAnalyticsRepository(pool),
		tx:        postgres.NewTxRunner(pool, cfg.LockTimeout()),
		close:     pool.Close,
	}, nil
}
