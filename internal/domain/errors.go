package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias de infraestructura).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el correo ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrInvalidOperation   = errors.New("operación no permitida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrUnbalancedSplit    = errors.New("la cantidad total no coincide con la suma de los destinos")
)

// InsufficientStockError lleva el stock disponible y el solicitado para que el
// llamador pueda informar ambos valores. errors.Is(err, ErrInsufficientStock)
// sigue funcionando a través de Unwrap.
type InsufficientStockError struct {
	ProductCode string
	Available   decimal.Decimal
	Requested   decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente de %s: disponible %s, solicitado %s",
		e.ProductCode, e.Available.String(), e.Requested.String())
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// NotFoundError identifica el recurso y el tenant donde no se encontró.
type NotFoundError struct {
	Resource string
	ID       int64
	Tenant   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s con ID %d no encontrado en %s", e.Resource, e.ID, e.Tenant)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }
