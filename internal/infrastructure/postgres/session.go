package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/inventario-multibodega/internal/application/ports"
	"github.com/jhoicas/inventario-multibodega/internal/tenant"
)

var _ ports.SessionRunner = (*SessionManager)(nil)

// SessionManager implementa ports.SessionRunner sobre pgxpool: por cada
// llamada adquiere una conexión, fija el search_path del tenant y la devuelve
// al pool pase lo que pase. Nadie más toca el pool directamente.
type SessionManager struct {
	pool *pgxpool.Pool
}

// NewSessionManager construye el manager con el pool.
func NewSessionManager(pool *pgxpool.Pool) *SessionManager {
	return &SessionManager{pool: pool}
}

// bindRepos construye el bundle de repositorios atados a la conexión o tx.
func bindRepos(q Querier) ports.Repos {
	return ports.Repos{
		Movements:  NewMovementRepository(q),
		Ledger:     NewLedgerRepository(q),
		Products:   NewProductRepository(q),
		Warehouses: NewWarehouseRepository(q),
		Clients:    NewClientRepository(q),
		Units:      NewUnitRepository(q),
		Users:      NewUserRepository(q),
	}
}

// WithSession ejecuta fn con una conexión cuyo search_path apunta al esquema
// del tenant seguido de public. El search_path se restablece antes de devolver
// la conexión al pool: las conexiones se reutilizan entre tenants.
func (m *SessionManager) WithSession(ctx context.Context, tenantKey string, fn func(r ports.Repos) error) error {
	conn, err := m.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire conn: %w", err)
	}
	defer func() {
		// El esquema viene de la whitelist estática, nunca del caller.
		_, _ = conn.Exec(context.Background(), "RESET search_path")
		conn.Release()
	}()

	schema := tenant.SchemaFor(tenantKey)
	if _, err := conn.Exec(ctx, fmt.Sprintf("SET search_path TO %s, public", schema)); err != nil {
		return fmt.Errorf("set search_path %s: %w", schema, err)
	}
	return fn(bindRepos(conn))
}

// WithTx ejecuta fn dentro de una transacción con el esquema del tenant.
// SET LOCAL limita el search_path a la transacción, así que el commit o el
// rollback lo revierten solos. Commit al retornar nil; rollback y el error
// original de fn en caso contrario.
func (m *SessionManager) WithTx(ctx context.Context, tenantKey string, fn func(r ports.Repos) error) error {
	conn, err := m.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire conn: %w", err)
	}
	defer conn.Release()

	tx, err := conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	schema := tenant.SchemaFor(tenantKey)
	if _, err := tx.Exec(ctx, fmt.Sprintf("SET LOCAL search_path TO %s, public", schema)); err != nil {
		return fmt.Errorf("set search_path %s: %w", schema, err)
	}

	if err := fn(bindRepos(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
