package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrDuplicate           = errors.New("recurso duplicado")
	ErrUnauthorized        = errors.New("no autorizado")
	ErrZeroDelta           = errors.New("el ajuste no modifica la cantidad")
	ErrInsufficientStock   = errors.New("stock insuficiente")
	ErrInvalidOrderState   = errors.New("estado de la orden no permite la operación")
	ErrConcurrencyConflict = errors.New("conflicto de concurrencia, reintente")

	// ErrInvalidMovementType es un ErrInvalidInput.
	ErrInvalidMovementType = fmt.Errorf("%w: tipo de movimiento desconocido", ErrInvalidInput)
)

// InsufficientStockError detalle de un ajuste que dejaría la cantidad en negativo.
// errors.Is(err, ErrInsufficientStock) es verdadero.
type InsufficientStockError struct {
	ItemID    string
	Requested int // unidades que se intentaron retirar (positivo)
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente: se solicitan %d unidades y solo hay %d en stock", e.Requested, e.Available)
}

// Is permite comparar con ErrInsufficientStock.
func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}

// InvalidOrderStateError transición no permitida sobre una orden de compra.
type InvalidOrderStateError struct {
	OrderID string
	Status  string
	Action  string
}

func (e *InvalidOrderStateError) Error() string {
	return fmt.Sprintf("no se puede %s la orden %s en estado %q", e.Action, e.OrderID, e.Status)
}

// Is permite comparar con ErrInvalidOrderState.
func (e *InvalidOrderStateError) Is(target error) bool {
	return target == ErrInvalidOrderState
}
