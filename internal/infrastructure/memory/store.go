// Package memory implementa los puertos de persistencia en memoria.
// Sirve para tests y para ejecutar el servicio sin PostgreSQL (DB_DRIVER=memory).
// Las transacciones se serializan con un mutex global y trabajan sobre una copia del estado
// que solo se publica al confirmar; fuera de ellas nadie ve sus escrituras pendientes.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/inventory-tracker/internal/domain"
	"github.com/jhoicas/inventory-tracker/internal/domain/entity"
	"github.com/jhoicas/inventory-tracker/internal/domain/repository"
)

type state struct {
	items     map[string]entity.InventoryItem
	movements []storedMovement
	orders    map[string]entity.PurchaseOrder
	lines     map[string][]entity.PurchaseOrderItem // purchase_order_id -> líneas
	suppliers map[string]entity.Supplier
	seq       int64
}

type storedMovement struct {
	seq int64
	m   entity.StockMovement
}

func (s *state) clone() *state {
	c := &state{
		items:     make(map[string]entity.InventoryItem, len(s.items)),
		movements: append([]storedMovement(nil), s.movements...),
		orders:    make(map[string]entity.PurchaseOrder, len(s.orders)),
		lines:     make(map[string][]entity.PurchaseOrderItem, len(s.lines)),
		suppliers: make(map[string]entity.Supplier, len(s.suppliers)),
		seq:       s.seq,
	}
	for k, v := range s.items {
		c.items[k] = v
	}
	for k, v := range s.orders {
		c.orders[k] = v
	}
	for k, v := range s.lines {
		c.lines[k] = append([]entity.PurchaseOrderItem(nil), v...)
	}
	for k, v := range s.suppliers {
		c.suppliers[k] = v
	}
	return c
}

// Store estado compartido de todos los repositorios en memoria.
type Store struct {
	txMu   sync.Mutex // una transacción a la vez; las escrituras fuera de transacción también lo toman
	dataMu sync.RWMutex
	st     *state // estado confirmado

	// hook opcional para simular fallos del ledger
	failMovementOn func(m *entity.StockMovement) error
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{st: &state{
		items:     make(map[string]entity.InventoryItem),
		orders:    make(map[string]entity.PurchaseOrder),
		lines:     make(map[string][]entity.PurchaseOrderItem),
		suppliers: make(map[string]entity.Supplier),
	}}
}

// FailMovementsWhen instala un hook que puede rechazar la inserción de movimientos.
func (s *Store) FailMovementsWhen(fn func(m *entity.StockMovement) error) {
	s.dataMu.Lock()
	s.failMovementOn = fn
	s.dataMu.Unlock()
}

func (s *Store) movementHook() func(m *entity.StockMovement) error {
	s.dataMu.RLock()
	defer s.dataMu.RUnlock()
	return s.failMovementOn
}

// Items repositorio de artículos.
func (s *Store) Items() *ItemRepo { return &ItemRepo{view{s: s}} }

// Movements repositorio del ledger.
func (s *Store) Movements() *MovementRepo { return &MovementRepo{view{s: s}} }

// PurchaseOrders repositorio de órdenes de compra.
func (s *Store) PurchaseOrders() *PurchaseOrderRepo { return &PurchaseOrderRepo{view{s: s}} }

// Suppliers repositorio de proveedores.
func (s *Store) Suppliers() *SupplierRepo { return &SupplierRepo{view{s: s}} }

// Levels consultas de niveles de stock.
func (s *Store) Levels() *LevelRepo { return &LevelRepo{s: s} }

// Run implementa inventory.TxRunner.
func (s *Store) Run(ctx context.Context, fn func(repository.ItemRepository, repository.StockMovementRepository) error) error {
	return s.tx(ctx, func(v view) error { return fn(&ItemRepo{v}, &MovementRepo{v}) })
}

// RunPurchasing implementa purchasing.PurchasingTxRunner.
func (s *Store) RunPurchasing(ctx context.Context, fn func(repository.ItemRepository, repository.StockMovementRepository, repository.PurchaseOrderRepository) error) error {
	return s.tx(ctx, func(v view) error { return fn(&ItemRepo{v}, &MovementRepo{v}, &PurchaseOrderRepo{v}) })
}

// tx ejecuta fn sobre una copia de trabajo privada. Solo si fn termina sin error
// la copia reemplaza al estado confirmado; si falla se descarta.
func (s *Store) tx(ctx context.Context, fn func(v view) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}

	s.dataMu.RLock()
	work := s.st.clone()
	s.dataMu.RUnlock()

	if err := fn(view{s: s, tx: work}); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.dataMu.Lock()
	s.st = work
	s.dataMu.Unlock()
	return nil
}

// view da acceso al estado confirmado o, dentro de una transacción, a su copia de trabajo.
type view struct {
	s  *Store
	tx *state
}

func (v view) read(fn func(st *state)) {
	if v.tx != nil {
		fn(v.tx)
		return
	}
	v.s.dataMu.RLock()
	defer v.s.dataMu.RUnlock()
	fn(v.s.st)
}

// write fuera de transacción espera a la transacción en curso y confirma en el acto.
func (v view) write(fn func(st *state) error) error {
	if v.tx != nil {
		return fn(v.tx)
	}
	v.s.txMu.Lock()
	defer v.s.txMu.Unlock()
	v.s.dataMu.Lock()
	defer v.s.dataMu.Unlock()
	return fn(v.s.st)
}

// ItemRepo implementa repository.ItemRepository.
type ItemRepo struct{ view }

func (r *ItemRepo) Create(_ context.Context, item *entity.InventoryItem) error {
	return r.write(func(st *state) error {
		if _, ok := st.items[item.ID]; ok {
			return domain.ErrDuplicate
		}
		if item.SKU != nil && st.skuTaken(*item.SKU, item.ID) {
			return domain.ErrDuplicate
		}
		if err := st.checkItemSupplier(item.SupplierID); err != nil {
			return err
		}
		st.items[item.ID] = *item
		return nil
	})
}

func (s *state) skuTaken(sku, exceptID string) bool {
	for id, it := range s.items {
		if id != exceptID && it.SKU != nil && *it.SKU == sku {
			return true
		}
	}
	return false
}

// checkItemSupplier replica la FK inventory_items.supplier_id de PostgreSQL.
func (s *state) checkItemSupplier(supplierID *string) error {
	if supplierID == nil {
		return nil
	}
	if _, ok := s.suppliers[*supplierID]; !ok {
		return fmt.Errorf("%w: proveedor inexistente", domain.ErrInvalidInput)
	}
	return nil
}

func (r *ItemRepo) GetByID(_ context.Context, id string) (*entity.InventoryItem, error) {
	var out *entity.InventoryItem
	r.read(func(st *state) {
		if it, ok := st.items[id]; ok {
			out = &it
		}
	})
	return out, nil
}

func (r *ItemRepo) GetBySKU(_ context.Context, sku string) (*entity.InventoryItem, error) {
	var out *entity.InventoryItem
	r.read(func(st *state) {
		for _, it := range st.items {
			if it.SKU != nil && *it.SKU == sku {
				cp := it
				out = &cp
				return
			}
		}
	})
	return out, nil
}

// GetForUpdate en memoria equivale a GetByID: el mutex de transacción ya serializa.
func (r *ItemRepo) GetForUpdate(ctx context.Context, id string) (*entity.InventoryItem, error) {
	return r.GetByID(ctx, id)
}

func (r *ItemRepo) Update(_ context.Context, item *entity.InventoryItem) error {
	return r.write(func(st *state) error {
		cur, ok := st.items[item.ID]
		if !ok {
			return domain.ErrNotFound
		}
		if item.SKU != nil && st.skuTaken(*item.SKU, item.ID) {
			return domain.ErrDuplicate
		}
		if err := st.checkItemSupplier(item.SupplierID); err != nil {
			return err
		}
		next := *item
		next.Quantity = cur.Quantity
		next.DeletedAt = cur.DeletedAt
		next.CreatedAt = cur.CreatedAt
		st.items[item.ID] = next
		return nil
	})
}

func (r *ItemRepo) SetQuantity(_ context.Context, id string, quantity int, at time.Time) error {
	return r.write(func(st *state) error {
		it, ok := st.items[id]
		if !ok {
			return domain.ErrNotFound
		}
		if quantity < 0 {
			return &domain.InsufficientStockError{ItemID: id, Requested: it.Quantity - quantity, Available: it.Quantity}
		}
		it.Quantity = quantity
		it.UpdatedAt = at
		st.items[id] = it
		return nil
	})
}

func (r *ItemRepo) List(_ context.Context, f repository.ItemFilter, limit, offset int) ([]*entity.InventoryItem, error) {
	out := make([]*entity.InventoryItem, 0)
	r.read(func(st *state) {
		for _, it := range st.items {
			if it.IsDeleted() {
				continue
			}
			if f.Category != "" && it.Category != f.Category {
				continue
			}
			if f.SupplierID != "" && (it.SupplierID == nil || *it.SupplierID != f.SupplierID) {
				continue
			}
			if f.LowStock && !it.IsLowStock() {
				continue
			}
			if f.Search != "" && !strings.Contains(strings.ToLower(it.Name), strings.ToLower(f.Search)) {
				continue
			}
			cp := it
			out = append(out, &cp)
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return page(out, limit, offset), nil
}

func (r *ItemRepo) SoftDelete(_ context.Context, id string, at time.Time) error {
	return r.write(func(st *state) error {
		it, ok := st.items[id]
		if !ok || it.IsDeleted() {
			return domain.ErrNotFound
		}
		it.DeletedAt = &at
		it.UpdatedAt = at
		st.items[id] = it
		return nil
	})
}

// MovementRepo implementa repository.StockMovementRepository.
type MovementRepo struct{ view }

func (r *MovementRepo) Create(_ context.Context, m *entity.StockMovement) error {
	if hook := r.s.movementHook(); hook != nil {
		if err := hook(m); err != nil {
			return err
		}
	}
	return r.write(func(st *state) error {
		if _, ok := st.items[m.ItemID]; !ok {
			return domain.ErrNotFound
		}
		st.seq++
		st.movements = append(st.movements, storedMovement{seq: st.seq, m: *m})
		return nil
	})
}

func (r *MovementRepo) ListByItem(_ context.Context, itemID string, limit, offset int) ([]*entity.StockMovement, error) {
	return r.filter(func(m entity.StockMovement) bool { return m.ItemID == itemID }, limit, offset), nil
}

func (r *MovementRepo) ListByReference(_ context.Context, ref string) ([]*entity.StockMovement, error) {
	return r.filter(func(m entity.StockMovement) bool {
		return m.ReferenceNumber != nil && *m.ReferenceNumber == ref
	}, 0, 0), nil
}

// Recent últimos movimientos de todo el catálogo.
func (r *MovementRepo) Recent(limit int) []*entity.StockMovement {
	return r.filter(func(entity.StockMovement) bool { return true }, limit, 0)
}

func (r *MovementRepo) filter(keep func(entity.StockMovement) bool, limit, offset int) []*entity.StockMovement {
	matched := make([]storedMovement, 0)
	r.read(func(st *state) {
		for _, sm := range st.movements {
			if keep(sm.m) {
				matched = append(matched, sm)
			}
		}
	})
	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if !a.m.CreatedAt.Equal(b.m.CreatedAt) {
			return a.m.CreatedAt.After(b.m.CreatedAt)
		}
		return a.seq > b.seq
	})
	out := make([]*entity.StockMovement, 0, len(matched))
	for _, sm := range matched {
		cp := sm.m
		out = append(out, &cp)
	}
	return page(out, limit, offset)
}

func page[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return list[:0]
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}
