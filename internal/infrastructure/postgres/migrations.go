package postgres

import (
	"context"
	"fmt"
)

// schema sentencias idempotentes en orden de dependencia.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS suppliers (
		id           TEXT PRIMARY KEY,
		name         TEXT NOT NULL,
		contact_name TEXT NOT NULL DEFAULT '',
		email        TEXT NOT NULL DEFAULT '',
		phone        TEXT NOT NULL DEFAULT '',
		address      TEXT NOT NULL DEFAULT '',
		created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at   TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS inventory_items (
		id            TEXT PRIMARY KEY,
		name          TEXT NOT NULL,
		sku           TEXT UNIQUE,
		description   TEXT NOT NULL DEFAULT '',
		category      TEXT NOT NULL DEFAULT '',
		price         NUMERIC(14,2) NOT NULL DEFAULT 0 CHECK (price >= 0),
		cost_price    NUMERIC(14,2) NOT NULL DEFAULT 0 CHECK (cost_price >= 0),
		reorder_level INTEGER NOT NULL DEFAULT 0 CHECK (reorder_level >= 0),
		supplier_id   TEXT REFERENCES suppliers(id),
		quantity      INTEGER NOT NULL DEFAULT 0 CHECK (quantity >= 0),
		deleted_at    TIMESTAMPTZ,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_inventory_items_category ON inventory_items (category) WHERE deleted_at IS NULL`,
	`CREATE TABLE IF NOT EXISTS stock_movements (
		seq              BIGSERIAL UNIQUE,
		id               TEXT PRIMARY KEY,
		item_id          TEXT NOT NULL REFERENCES inventory_items(id),
		quantity_change  INTEGER NOT NULL CHECK (quantity_change <> 0),
		quantity_before  INTEGER NOT NULL CHECK (quantity_before >= 0),
		quantity_after   INTEGER NOT NULL CHECK (quantity_after >= 0),
		movement_type    TEXT NOT NULL CHECK (movement_type IN ('received','sold','adjusted','returned','damaged','transferred')),
		reason           TEXT,
		reference_number TEXT,
		created_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
		created_by       TEXT,
		CHECK (quantity_after = quantity_before + quantity_change)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_stock_movements_item ON stock_movements (item_id, created_at DESC, seq DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_stock_movements_reference ON stock_movements (reference_number) WHERE reference_number IS NOT NULL`,
	`CREATE TABLE IF NOT EXISTS purchase_orders (
		id                TEXT PRIMARY KEY,
		po_number         TEXT NOT NULL UNIQUE,
		supplier_id       TEXT NOT NULL REFERENCES suppliers(id),
		status            TEXT NOT NULL CHECK (status IN ('draft','pending','received','cancelled')),
		total_amount      NUMERIC(14,2) NOT NULL DEFAULT 0,
		notes             TEXT NOT NULL DEFAULT '',
		expected_delivery TIMESTAMPTZ,
		received_at       TIMESTAMPTZ,
		created_at        TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at        TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS purchase_order_items (
		id                TEXT PRIMARY KEY,
		purchase_order_id TEXT NOT NULL REFERENCES purchase_orders(id) ON DELETE CASCADE,
		item_id           TEXT NOT NULL REFERENCES inventory_items(id),
		quantity_ordered  INTEGER NOT NULL CHECK (quantity_ordered > 0),
		quantity_received INTEGER NOT NULL DEFAULT 0 CHECK (quantity_received >= 0),
		unit_price        NUMERIC(14,2) NOT NULL CHECK (unit_price >= 0)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_purchase_order_items_order ON purchase_order_items (purchase_order_id)`,
}

// Migrate crea el esquema si no existe. Se ejecuta al arrancar la API.
func Migrate(ctx context.Context, q Querier) error {
	for i, stmt := range schema {
		if _, err := q.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migración %d: %w", i+1, err)
		}
	}
	return nil
}
