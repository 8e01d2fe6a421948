package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-multibodega/internal/application/ports"
	"github.com/jhoicas/inventario-multibodega/internal/domain"
	"github.com/jhoicas/inventario-multibodega/internal/domain/entity"
	"github.com/jhoicas/inventario-multibodega/internal/domain/repository"
)

// catalogStore agrupa el estado en memoria de un tenant para los tests del
// catálogo. Los contadores de movimientos se fijan a mano por entidad.
type catalogStore struct {
	units      map[int64]*entity.Unit
	products   map[int64]*entity.Product
	warehouses map[int64]*entity.Warehouse
	clients    map[int64]*entity.Client
	nextID     int64

	movementsByProduct   map[int64]int64
	movementsByWarehouse map[int64]int64
	movementsByClient    map[int64]int64
}

func newCatalogStore() *catalogStore {
	return &catalogStore{
		units:                map[int64]*entity.Unit{},
		products:             map[int64]*entity.Product{},
		warehouses:           map[int64]*entity.Warehouse{},
		clients:              map[int64]*entity.Client{},
		nextID:               1,
		movementsByProduct:   map[int64]int64{},
		movementsByWarehouse: map[int64]int64{},
		movementsByClient:    map[int64]int64{},
	}
}

func (s *catalogStore) id() int64 {
	id := s.nextID
	s.nextID++
	return id
}

// fakeCatalogSessions implementa ports.SessionRunner con un store por tenant.
type fakeCatalogSessions struct {
	stores map[string]*catalogStore
}

func newFakeCatalogSessions() *fakeCatalogSessions {
	return &fakeCatalogSessions{stores: map[string]*catalogStore{}}
}

func (f *fakeCatalogSessions) store(tenant string) *catalogStore {
	st, ok := f.stores[tenant]
	if !ok {
		st = newCatalogStore()
		f.stores[tenant] = st
	}
	return st
}

func (f *fakeCatalogSessions) repos(tenant string) ports.Repos {
	st := f.store(tenant)
	return ports.Repos{
		Units:      &fakeUnits{st: st},
		Products:   &fakeProducts{st: st},
		Warehouses: &fakeWarehouses{st: st},
		Clients:    &fakeClients{st: st},
		Ledger:     &fakeCatalogLedger{st: st},
	}
}

func (f *fakeCatalogSessions) WithSession(ctx context.Context, tenantKey string, fn func(r ports.Repos) error) error {
	return fn(f.repos(tenantKey))
}

func (f *fakeCatalogSessions) WithTx(ctx context.Context, tenantKey string, fn func(r ports.Repos) error) error {
	return fn(f.repos(tenantKey))
}

type fakeUnits struct{ st *catalogStore }

func (r *fakeUnits) Create(ctx context.Context, u *entity.Unit) error {
	cp := *u
	cp.ID = r.st.id()
	r.st.units[cp.ID] = &cp
	*u = cp
	return nil
}

func (r *fakeUnits) GetByID(ctx context.Context, id int64) (*entity.Unit, error) {
	u, ok := r.st.units[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUnits) Update(ctx context.Context, u *entity.Unit) error {
	if _, ok := r.st.units[u.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *u
	r.st.units[u.ID] = &cp
	return nil
}

func (r *fakeUnits) Delete(ctx context.Context, id int64) error {
	delete(r.st.units, id)
	return nil
}

func (r *fakeUnits) List(ctx context.Context) ([]*entity.Unit, error) {
	out := make([]*entity.Unit, 0, len(r.st.units))
	for _, u := range r.st.units {
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeUnits) CountProducts(ctx context.Context, unitID int64) (int64, error) {
	var n int64
	for _, p := range r.st.products {
		if p.UnitID == unitID {
			n++
		}
	}
	return n, nil
}

type fakeProducts struct{ st *catalogStore }

func (r *fakeProducts) Create(ctx context.Context, p *entity.Product) error {
	for _, existing := range r.st.products {
		if existing.Code == p.Code {
			return domain.ErrDuplicate
		}
	}
	cp := *p
	cp.ID = r.st.id()
	cp.CreatedAt = time.Now()
	r.st.products[cp.ID] = &cp
	*p = cp
	return nil
}

func (r *fakeProducts) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	p, ok := r.st.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProducts) GetByCode(ctx context.Context, code string) (*entity.Product, error) {
	for _, p := range r.st.products {
		if p.Code == code {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeProducts) GetForUpdate(ctx context.Context, id int64) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeProducts) Update(ctx context.Context, p *entity.Product) error {
	if _, ok := r.st.products[p.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *p
	r.st.products[p.ID] = &cp
	return nil
}

func (r *fakeProducts) Delete(ctx context.Context, id int64) error {
	delete(r.st.products, id)
	return nil
}

func (r *fakeProducts) List(ctx context.Context, search string, page, limit int) ([]*entity.Product, int64, error) {
	// Match por substring simple; el despojo de acentos ya lo hizo el caso de uso.
	out := []*entity.Product{}
	for _, p := range r.st.products {
		if search == "" || containsFold(p.Code, search) || containsFold(p.Description, search) {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeProducts) Count(ctx context.Context) (int64, error) {
	return int64(len(r.st.products)), nil
}

type fakeWarehouses struct{ st *catalogStore }

func (r *fakeWarehouses) Create(ctx context.Context, w *entity.Warehouse) error {
	for _, existing := range r.st.warehouses {
		if existing.Name == w.Name {
			return domain.ErrDuplicate
		}
	}
	cp := *w
	cp.ID = r.st.id()
	r.st.warehouses[cp.ID] = &cp
	*w = cp
	return nil
}

func (r *fakeWarehouses) GetByID(ctx context.Context, id int64) (*entity.Warehouse, error) {
	w, ok := r.st.warehouses[id]
	if !ok {
		return nil, nil
	}
	cp := *w
	return &cp, nil
}

func (r *fakeWarehouses) Update(ctx context.Context, w *entity.Warehouse) error {
	if _, ok := r.st.warehouses[w.ID]; !ok {
		return domain.ErrNotFound
	}
	for _, existing := range r.st.warehouses {
		if existing.ID != w.ID && existing.Name == w.Name {
			return domain.ErrDuplicate
		}
	}
	cp := *w
	r.st.warehouses[w.ID] = &cp
	return nil
}

func (r *fakeWarehouses) Delete(ctx context.Context, id int64) error {
	delete(r.st.warehouses, id)
	return nil
}

func (r *fakeWarehouses) List(ctx context.Context) ([]*entity.Warehouse, error) {
	out := make([]*entity.Warehouse, 0, len(r.st.warehouses))
	for _, w := range r.st.warehouses {
		cp := *w
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeWarehouses) Count(ctx context.Context) (int64, error) {
	return int64(len(r.st.warehouses)), nil
}

type fakeClients struct{ st *catalogStore }

func (r *fakeClients) Create(ctx context.Context, c *entity.Client) error {
	cp := *c
	cp.ID = r.st.id()
	cp.CreatedAt = time.Now()
	r.st.clients[cp.ID] = &cp
	*c = cp
	return nil
}

func (r *fakeClients) GetByID(ctx context.Context, id int64) (*entity.Client, error) {
	c, ok := r.st.clients[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *fakeClients) Update(ctx context.Context, c *entity.Client) error {
	if _, ok := r.st.clients[c.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *c
	r.st.clients[c.ID] = &cp
	return nil
}

func (r *fakeClients) Delete(ctx context.Context, id int64) error {
	delete(r.st.clients, id)
	return nil
}

func (r *fakeClients) List(ctx context.Context, search string, page, limit int) ([]*entity.Client, int64, error) {
	out := []*entity.Client{}
	for _, c := range r.st.clients {
		if search == "" || containsFold(c.Name, search) {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeClients) Count(ctx context.Context) (int64, error) {
	return int64(len(r.st.clients)), nil
}

// fakeCatalogLedger solo implementa los contadores de guarda; el resto de
// la superficie no se usa desde el catálogo.
type fakeCatalogLedger struct{ st *catalogStore }

func (r *fakeCatalogLedger) StockOf(ctx context.Context, productID, warehouseID int64) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

func (r *fakeCatalogLedger) StockOfExcluding(ctx context.Context, productID, warehouseID, movementID int64) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

func (r *fakeCatalogLedger) KardexRows(ctx context.Context, productID int64) ([]*entity.MovementDetail, error) {
	return nil, nil
}

func (r *fakeCatalogLedger) GeneralInventory(ctx context.Context, f repository.InventoryFilter) ([]*entity.InventoryRow, error) {
	return nil, nil
}

func (r *fakeCatalogLedger) CountByProduct(ctx context.Context, productID int64) (int64, error) {
	return r.st.movementsByProduct[productID], nil
}

func (r *fakeCatalogLedger) CountByWarehouse(ctx context.Context, warehouseID int64) (int64, error) {
	return r.st.movementsByWarehouse[warehouseID], nil
}

func (r *fakeCatalogLedger) CountByClient(ctx context.Context, clientID int64) (int64, error) {
	return r.st.movementsByClient[clientID], nil
}

func (r *fakeCatalogLedger) CountBetween(ctx context.Context, from, to time.Time) (int64, error) {
	return 0, nil
}

func (r *fakeCatalogLedger) Recent(ctx context.Context, limit int) ([]*entity.MovementDetail, error) {
	return nil, nil
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
