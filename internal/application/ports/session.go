// Package ports define los puertos que la capa de aplicación exige a la
// infraestructura.
package ports

import (
	"context"

	"github.com/jhoicas/inventario-multibodega/internal/domain/repository"
)

// Repos agrupa los repositorios atados a una misma conexión (o transacción)
// ya configurada con el esquema del tenant.
type Repos struct {
	Movements  repository.MovementRepository
	Ledger     repository.LedgerRepository
	Products   repository.ProductRepository
	Warehouses repository.WarehouseRepository
	Clients    repository.ClientRepository
	Units      repository.UnitRepository
	Users      repository.UserRepository
}

// SessionRunner es la única vía de acceso a datos de un tenant. Cada llamada
// abre una conexión, fija el esquema del tenant, ejecuta fn y libera la
// conexión incondicionalmente. WithTx además envuelve fn en una transacción:
// commit al retornar nil, rollback (y el error original) en caso contrario.
//
// El tenant viaja siempre como parámetro explícito; ningún componente guarda
// estado de tenant entre requests.
type SessionRunner interface {
	WithSession(ctx context.Context, tenantKey string, fn func(r Repos) error) error
	WithTx(ctx context.Context, tenantKey string, fn func(r Repos) error) error
}
