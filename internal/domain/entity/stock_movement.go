package entity

import (
	"fmt"
	"time"
)

// MovementType clasifica un movimiento de stock. Conjunto cerrado: usar ParseMovementType.
type MovementType string

// Tipos de movimiento de inventario.
const (
	MovementReceived    MovementType = "received"    // entrada por compra
	MovementSold        MovementType = "sold"        // salida por venta
	MovementAdjusted    MovementType = "adjusted"    // ajuste manual o conteo
	MovementReturned    MovementType = "returned"    // devolución de cliente
	MovementDamaged     MovementType = "damaged"     // merma o daño
	MovementTransferred MovementType = "transferred" // traslado
)

var movementTypes = map[MovementType]struct{}{
	MovementReceived:    {},
	MovementSold:        {},
	MovementAdjusted:    {},
	MovementReturned:    {},
	MovementDamaged:     {},
	MovementTransferred: {},
}

// ParseMovementType convierte un string en MovementType; error si no es uno de los seis tipos.
func ParseMovementType(s string) (MovementType, error) {
	t := MovementType(s)
	if _, ok := movementTypes[t]; !ok {
		return "", fmt.Errorf("tipo de movimiento desconocido: %q", s)
	}
	return t, nil
}

// Valid indica si t pertenece al conjunto de tipos.
func (t MovementType) Valid() bool {
	_, ok := movementTypes[t]
	return ok
}

func (t MovementType) String() string { return string(t) }

// StockMovement registro inmutable de un cambio de cantidad.
// Invariante: QuantityAfter = QuantityBefore + QuantityChange.
type StockMovement struct {
	ID              string
	ItemID          string
	QuantityChange  int
	QuantityBefore  int
	QuantityAfter   int
	Type            MovementType
	Reason          *string
	ReferenceNumber *string // ej. número de orden de compra
	CreatedAt       time.Time
	CreatedBy       *string
}
