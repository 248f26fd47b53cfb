package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/inventory-tracker/internal/domain"
	"github.com/jhoicas/inventory-tracker/internal/domain/entity"
	"github.com/jhoicas/inventory-tracker/internal/domain/repository"
)

// PurchaseOrderRepo implementa repository.PurchaseOrderRepository.
type PurchaseOrderRepo struct{ view }

func (r *PurchaseOrderRepo) Create(_ context.Context, po *entity.PurchaseOrder) error {
	return r.write(func(st *state) error {
		for _, o := range st.orders {
			if o.ID == po.ID || o.PONumber == po.PONumber {
				return domain.ErrDuplicate
			}
		}
		if _, ok := st.suppliers[po.SupplierID]; !ok {
			return fmt.Errorf("%w: proveedor inexistente", domain.ErrNotFound)
		}
		cp := *po
		cp.Items = nil
		st.orders[po.ID] = cp
		return nil
	})
}

func (r *PurchaseOrderRepo) CreateItem(_ context.Context, line *entity.PurchaseOrderItem) error {
	return r.write(func(st *state) error {
		if _, ok := st.orders[line.PurchaseOrderID]; !ok {
			return domain.ErrNotFound
		}
		if _, ok := st.items[line.ItemID]; !ok {
			return domain.ErrNotFound
		}
		st.lines[line.PurchaseOrderID] = append(st.lines[line.PurchaseOrderID], *line)
		return nil
	})
}

func (r *PurchaseOrderRepo) GetByID(_ context.Context, id string) (*entity.PurchaseOrder, error) {
	var out *entity.PurchaseOrder
	r.read(func(st *state) {
		o, ok := st.orders[id]
		if !ok {
			return
		}
		lines := st.lines[id]
		o.Items = make([]*entity.PurchaseOrderItem, 0, len(lines))
		for i := range lines {
			l := lines[i]
			o.Items = append(o.Items, &l)
		}
		out = &o
	})
	return out, nil
}

func (r *PurchaseOrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	return r.GetByID(ctx, id)
}

func (r *PurchaseOrderRepo) Update(_ context.Context, po *entity.PurchaseOrder) error {
	return r.write(func(st *state) error {
		if _, ok := st.orders[po.ID]; !ok {
			return domain.ErrNotFound
		}
		cp := *po
		cp.Items = nil
		st.orders[po.ID] = cp
		return nil
	})
}

func (r *PurchaseOrderRepo) UpdateItemReceived(_ context.Context, lineID string, qty int) error {
	return r.write(func(st *state) error {
		for _, lines := range st.lines {
			for i := range lines {
				if lines[i].ID == lineID {
					lines[i].QuantityReceived = qty
					return nil
				}
			}
		}
		return domain.ErrNotFound
	})
}

func (r *PurchaseOrderRepo) List(_ context.Context, f repository.PurchaseOrderFilter, limit, offset int) ([]*entity.PurchaseOrder, error) {
	out := make([]*entity.PurchaseOrder, 0)
	r.read(func(st *state) {
		for _, o := range st.orders {
			if f.Status != "" && o.Status != f.Status {
				continue
			}
			if f.SupplierID != "" && o.SupplierID != f.SupplierID {
				continue
			}
			cp := o
			out = append(out, &cp)
		}
	})
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].PONumber > out[j].PONumber
	})
	return page(out, limit, offset), nil
}

func (r *PurchaseOrderRepo) Delete(_ context.Context, id string) error {
	return r.write(func(st *state) error {
		if _, ok := st.orders[id]; !ok {
			return domain.ErrNotFound
		}
		delete(st.orders, id)
		delete(st.lines, id)
		return nil
	})
}

// SupplierRepo implementa repository.SupplierRepository.
type SupplierRepo struct{ view }

func (r *SupplierRepo) Create(_ context.Context, sup *entity.Supplier) error {
	return r.write(func(st *state) error {
		if _, ok := st.suppliers[sup.ID]; ok {
			return domain.ErrDuplicate
		}
		st.suppliers[sup.ID] = *sup
		return nil
	})
}

func (r *SupplierRepo) GetByID(_ context.Context, id string) (*entity.Supplier, error) {
	var out *entity.Supplier
	r.read(func(st *state) {
		if sup, ok := st.suppliers[id]; ok {
			out = &sup
		}
	})
	return out, nil
}

func (r *SupplierRepo) Update(_ context.Context, sup *entity.Supplier) error {
	return r.write(func(st *state) error {
		if _, ok := st.suppliers[sup.ID]; !ok {
			return domain.ErrNotFound
		}
		st.suppliers[sup.ID] = *sup
		return nil
	})
}

func (r *SupplierRepo) List(_ context.Context, limit, offset int) ([]*entity.Supplier, error) {
	var out []*entity.Supplier
	r.read(func(st *state) {
		out = make([]*entity.Supplier, 0, len(st.suppliers))
		for _, sup := range st.suppliers {
			cp := sup
			out = append(out, &cp)
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return page(out, limit, offset), nil
}

func (r *SupplierRepo) Delete(_ context.Context, id string) error {
	return r.write(func(st *state) error {
		if _, ok := st.suppliers[id]; !ok {
			return domain.ErrNotFound
		}
		if st.supplierReferenced(id) {
			return fmt.Errorf("%w: el proveedor tiene registros asociados", domain.ErrInvalidInput)
		}
		delete(st.suppliers, id)
		return nil
	})
}

func (r *SupplierRepo) IsReferenced(_ context.Context, id string) (bool, error) {
	referenced := false
	r.read(func(st *state) { referenced = st.supplierReferenced(id) })
	return referenced, nil
}

func (s *state) supplierReferenced(id string) bool {
	for _, o := range s.orders {
		if o.SupplierID == id {
			return true
		}
	}
	for _, it := range s.items {
		if it.SupplierID != nil && *it.SupplierID == id {
			return true
		}
	}
	return false
}
