// Package analytics arma los agregados de conveniencia del dashboard.
package analytics

import (
	"context"
	"time"

	"github.com/jhoicas/inventario-multibodega/internal/application/ports"
	"github.com/jhoicas/inventario-multibodega/internal/domain/entity"
	"github.com/jhoicas/inventario-multibodega/internal/domain/repository"
)

const recentLimit = 10

// Dashboard resumen operativo de un tenant. Todos los números salen de
// agregaciones en vivo sobre el libro de movimientos y el catálogo.
type Dashboard struct {
	TotalProducts   int64
	TotalWarehouses int64
	TotalClients    int64
	MovementsToday  int64
	MovementsMonth  int64
	Recent          []*entity.MovementDetail
	LowStock        []*entity.InventoryRow
}

// UseCase caso de uso del dashboard.
type UseCase struct {
	sessions ports.SessionRunner
}

// NewUseCase construye el caso de uso.
func NewUseCase(sessions ports.SessionRunner) *UseCase {
	return &UseCase{sessions: sessions}
}

// Dashboard calcula el resumen del tenant en una sola sesión.
func (uc *UseCase) Dashboard(ctx context.Context, tenant string) (*Dashboard, error) {
	var d Dashboard
	err := uc.sessions.WithSession(ctx, tenant, func(r ports.Repos) error {
		var err error
		if d.TotalProducts, err = r.Products.Count(ctx); err != nil {
			return err
		}
		if d.TotalWarehouses, err = r.Warehouses.Count(ctx); err != nil {
			return err
		}
		if d.TotalClients, err = r.Clients.Count(ctx); err != nil {
			return err
		}

		now := time.Now()
		startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		if d.MovementsToday, err = r.Ledger.CountBetween(ctx, startOfDay, startOfDay.AddDate(0, 0, 1)); err != nil {
			return err
		}
		if d.MovementsMonth, err = r.Ledger.CountBetween(ctx, startOfMonth, startOfMonth.AddDate(0, 1, 0)); err != nil {
			return err
		}

		if d.Recent, err = r.Ledger.Recent(ctx, recentLimit); err != nil {
			return err
		}
		d.LowStock, err = r.Ledger.GeneralInventory(ctx, repository.InventoryFilter{LowStockOnly: true})
		return err
	})
	if err != nil {
		return nil, err
	}
	return &d, nil
}
