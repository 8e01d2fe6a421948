package movements

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-multibodega/internal/application/ports"
	"github.com/jhoicas/inventario-multibodega/internal/domain"
	"github.com/jhoicas/inventario-multibodega/internal/domain/entity"
	"github.com/jhoicas/inventario-multibodega/internal/domain/repository"
)

// fakeStore es un almacén en memoria por tenant para probar el motor sin
// base de datos. Las escrituras de movimientos dentro de WithTx se revierten
// si fn devuelve error, imitando el rollback real.
type fakeStore struct {
	products   map[int64]*entity.Product
	warehouses map[int64]*entity.Warehouse
	clients    map[int64]*entity.Client
	users      map[int64]*entity.User
	movements  []*entity.Movement
	nextMovID  int64
	createErr  error // si está seteado, Create de movimientos falla con este error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		products:   map[int64]*entity.Product{},
		warehouses: map[int64]*entity.Warehouse{},
		clients:    map[int64]*entity.Client{},
		users:      map[int64]*entity.User{},
	}
}

// fakeSessions implementa ports.SessionRunner sobre un fakeStore por tenant.
type fakeSessions struct {
	stores map[string]*fakeStore
}

func newFakeSessions(tenants ...string) *fakeSessions {
	s := &fakeSessions{stores: map[string]*fakeStore{}}
	for _, t := range tenants {
		s.stores[t] = newFakeStore()
	}
	return s
}

func (s *fakeSessions) store(tenant string) *fakeStore { return s.stores[tenant] }

func (s *fakeSessions) repos(st *fakeStore) ports.Repos {
	return ports.Repos{
		Movements:  &fakeMovements{st: st},
		Ledger:     &fakeLedger{st: st},
		Products:   &fakeProducts{st: st},
		Warehouses: &fakeWarehouses{st: st},
		Clients:    &fakeClients{st: st},
		Users:      &fakeUsers{st: st},
	}
}

func (s *fakeSessions) WithSession(_ context.Context, tenant string, fn func(ports.Repos) error) error {
	st, ok := s.stores[tenant]
	if !ok {
		return domain.ErrNotFound
	}
	return fn(s.repos(st))
}

func (s *fakeSessions) WithTx(_ context.Context, tenant string, fn func(ports.Repos) error) error {
	st, ok := s.stores[tenant]
	if !ok {
		return domain.ErrNotFound
	}
	snapshot := make([]*entity.Movement, len(st.movements))
	copy(snapshot, st.movements)
	snapID := st.nextMovID
	if err := fn(s.repos(st)); err != nil {
		st.movements = snapshot
		st.nextMovID = snapID
		return err
	}
	return nil
}

type fakeMovements struct{ st *fakeStore }

func (f *fakeMovements) Create(_ context.Context, m *entity.Movement) error {
	if f.st.createErr != nil {
		return f.st.createErr
	}
	f.st.nextMovID++
	m.ID = f.st.nextMovID
	cp := *m
	f.st.movements = append(f.st.movements, &cp)
	return nil
}

func (f *fakeMovements) detail(m *entity.Movement) *entity.MovementDetail {
	d := &entity.MovementDetail{Movement: *m}
	if p, ok := f.st.products[m.ProductID]; ok {
		d.ProductCode = p.Code
		d.ProductDescription = p.Description
	}
	if w, ok := f.st.warehouses[m.WarehouseID]; ok {
		d.WarehouseName = w.Name
	}
	return d
}

func (f *fakeMovements) GetByID(_ context.Context, id int64) (*entity.MovementDetail, error) {
	for _, m := range f.st.movements {
		if m.ID == id {
			return f.detail(m), nil
		}
	}
	return nil, nil
}

func (f *fakeMovements) Update(_ context.Context, m *entity.Movement) error {
	for i, cur := range f.st.movements {
		if cur.ID == m.ID {
			cp := *m
			f.st.movements[i] = &cp
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeMovements) Delete(_ context.Context, id int64) error {
	for i, m := range f.st.movements {
		if m.ID == id {
			f.st.movements = append(f.st.movements[:i], f.st.movements[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeMovements) List(_ context.Context, fl repository.MovementFilter, _, _ int) ([]*entity.MovementDetail, int64, error) {
	var out []*entity.MovementDetail
	for _, m := range f.st.movements {
		if fl.Type != "" && m.Type != fl.Type {
			continue
		}
		if fl.ProductID != 0 && m.ProductID != fl.ProductID {
			continue
		}
		if fl.WarehouseID != 0 && m.WarehouseID != fl.WarehouseID {
			continue
		}
		out = append(out, f.detail(m))
	}
	return out, int64(len(out)), nil
}

func (f *fakeMovements) ListByProductCode(_ context.Context, code string) ([]*entity.MovementDetail, error) {
	var out []*entity.MovementDetail
	for _, m := range f.st.movements {
		if p, ok := f.st.products[m.ProductID]; ok && p.Code == code {
			out = append(out, f.detail(m))
		}
	}
	return out, nil
}

type fakeLedger struct{ st *fakeStore }

func (f *fakeLedger) StockOf(_ context.Context, productID, warehouseID int64) (decimal.Decimal, error) {
	return f.stockExcluding(productID, warehouseID, 0), nil
}

func (f *fakeLedger) StockOfExcluding(_ context.Context, productID, warehouseID, movementID int64) (decimal.Decimal, error) {
	return f.stockExcluding(productID, warehouseID, movementID), nil
}

func (f *fakeLedger) stockExcluding(productID, warehouseID, excludeID int64) decimal.Decimal {
	stock := decimal.Zero
	for _, m := range f.st.movements {
		if m.ProductID != productID || m.WarehouseID != warehouseID || m.ID == excludeID {
			continue
		}
		stock = stock.Add(m.SignedQuantity())
	}
	return stock
}

func (f *fakeLedger) KardexRows(_ context.Context, productID int64) ([]*entity.MovementDetail, error) {
	mv := &fakeMovements{st: f.st}
	var out []*entity.MovementDetail
	for _, m := range f.st.movements {
		if m.ProductID == productID {
			out = append(out, mv.detail(m))
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date.Equal(out[j].Date) {
			return out[i].ID < out[j].ID
		}
		return out[i].Date.Before(out[j].Date)
	})
	return out, nil
}

func (f *fakeLedger) GeneralInventory(_ context.Context, fl repository.InventoryFilter) ([]*entity.InventoryRow, error) {
	type key struct{ productID, warehouseID int64 }
	rows := map[key]*entity.InventoryRow{}
	for _, m := range f.st.movements {
		k := key{m.ProductID, m.WarehouseID}
		row, ok := rows[k]
		if !ok {
			row = &entity.InventoryRow{
				ProductID:   m.ProductID,
				WarehouseID: m.WarehouseID,
				Stock:       decimal.Zero,
			}
			if p := f.st.products[m.ProductID]; p != nil {
				row.ProductCode = p.Code
				row.ProductDescription = p.Description
			}
			if w := f.st.warehouses[m.WarehouseID]; w != nil {
				row.WarehouseName = w.Name
			}
			rows[k] = row
		}
		row.Stock = row.Stock.Add(m.SignedQuantity())
		row.TotalMovements++
	}
	var out []*entity.InventoryRow
	for _, row := range rows {
		if fl.WarehouseID != 0 && row.WarehouseID != fl.WarehouseID {
			continue
		}
		if fl.ProductID != 0 && row.ProductID != fl.ProductID {
			continue
		}
		if !fl.IncludeZero && !row.Stock.GreaterThan(decimal.Zero) {
			continue
		}
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductCode < out[j].ProductCode })
	return out, nil
}

func (f *fakeLedger) CountByProduct(_ context.Context, productID int64) (int64, error) {
	var n int64
	for _, m := range f.st.movements {
		if m.ProductID == productID {
			n++
		}
	}
	return n, nil
}

func (f *fakeLedger) CountByWarehouse(_ context.Context, warehouseID int64) (int64, error) {
	var n int64
	for _, m := range f.st.movements {
		if m.WarehouseID == warehouseID {
			n++
		}
	}
	return n, nil
}

func (f *fakeLedger) CountByClient(_ context.Context, clientID int64) (int64, error) {
	var n int64
	for _, m := range f.st.movements {
		if m.ClientID != nil && *m.ClientID == clientID {
			n++
		}
	}
	return n, nil
}

func (f *fakeLedger) CountBetween(_ context.Context, from, to time.Time) (int64, error) {
	var n int64
	for _, m := range f.st.movements {
		if !m.Date.Before(from) && m.Date.Before(to) {
			n++
		}
	}
	return n, nil
}

func (f *fakeLedger) Recent(_ context.Context, limit int) ([]*entity.MovementDetail, error) {
	mv := &fakeMovements{st: f.st}
	var out []*entity.MovementDetail
	for i := len(f.st.movements) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, mv.detail(f.st.movements[i]))
	}
	return out, nil
}

type fakeProducts struct{ st *fakeStore }

func (f *fakeProducts) Create(_ context.Context, p *entity.Product) error {
	f.st.products[p.ID] = p
	return nil
}

func (f *fakeProducts) GetByID(_ context.Context, id int64) (*entity.Product, error) {
	return f.st.products[id], nil
}

func (f *fakeProducts) GetByCode(_ context.Context, code string) (*entity.Product, error) {
	for _, p := range f.st.products {
		if p.Code == code {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakeProducts) GetForUpdate(_ context.Context, id int64) (*entity.Product, error) {
	return f.st.products[id], nil
}

func (f *fakeProducts) Update(_ context.Context, p *entity.Product) error {
	f.st.products[p.ID] = p
	return nil
}

func (f *fakeProducts) Delete(_ context.Context, id int64) error {
	delete(f.st.products, id)
	return nil
}

func (f *fakeProducts) List(_ context.Context, _ string, _, _ int) ([]*entity.Product, int64, error) {
	var out []*entity.Product
	for _, p := range f.st.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

func (f *fakeProducts) Count(_ context.Context) (int64, error) {
	return int64(len(f.st.products)), nil
}

type fakeWarehouses struct{ st *fakeStore }

func (f *fakeWarehouses) Create(_ context.Context, w *entity.Warehouse) error {
	f.st.warehouses[w.ID] = w
	return nil
}

func (f *fakeWarehouses) GetByID(_ context.Context, id int64) (*entity.Warehouse, error) {
	return f.st.warehouses[id], nil
}

func (f *fakeWarehouses) Update(_ context.Context, w *entity.Warehouse) error {
	f.st.warehouses[w.ID] = w
	return nil
}

func (f *fakeWarehouses) Delete(_ context.Context, id int64) error {
	delete(f.st.warehouses, id)
	return nil
}

func (f *fakeWarehouses) List(_ context.Context) ([]*entity.Warehouse, error) {
	var out []*entity.Warehouse
	for _, w := range f.st.warehouses {
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeWarehouses) Count(_ context.Context) (int64, error) {
	return int64(len(f.st.warehouses)), nil
}

type fakeClients struct{ st *fakeStore }

func (f *fakeClients) Create(_ context.Context, c *entity.Client) error {
	f.st.clients[c.ID] = c
	return nil
}

func (f *fakeClients) GetByID(_ context.Context, id int64) (*entity.Client, error) {
	return f.st.clients[id], nil
}

func (f *fakeClients) Update(_ context.Context, c *entity.Client) error {
	f.st.clients[c.ID] = c
	return nil
}

func (f *fakeClients) Delete(_ context.Context, id int64) error {
	delete(f.st.clients, id)
	return nil
}

func (f *fakeClients) List(_ context.Context, _ string, _, _ int) ([]*entity.Client, int64, error) {
	var out []*entity.Client
	for _, c := range f.st.clients {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

func (f *fakeClients) Count(_ context.Context) (int64, error) {
	return int64(len(f.st.clients)), nil
}

type fakeUsers struct{ st *fakeStore }

func (f *fakeUsers) Create(_ context.Context, u *entity.User) error {
	f.st.users[u.ID] = u
	return nil
}

func (f *fakeUsers) GetByID(_ context.Context, id int64) (*entity.User, error) {
	return f.st.users[id], nil
}

func (f *fakeUsers) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range f.st.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUsers) Update(_ context.Context, u *entity.User) error {
	f.st.users[u.ID] = u
	return nil
}
