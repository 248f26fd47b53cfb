// Package currency formatea montos decimales con el símbolo y separadores de la moneda configurada.
package currency

import (
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DefaultCode moneda usada cuando la configuración no indica otra o el código es desconocido.
const DefaultCode = "USD"

// Normalize devuelve el código ISO en mayúsculas, o DefaultCode si go-money no lo conoce.
func Normalize(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" || money.GetCurrency(code) == nil {
		return DefaultCode
	}
	return code
}

// Format representa amount en la moneda code, ej: "$1,234.50" para USD.
// El monto se redondea a las unidades menores de la moneda.
func Format(amount decimal.Decimal, code string) string {
	code = Normalize(code)
	cur := money.New(0, code).Currency()
	minor := amount.Round(int32(cur.Fraction)).Shift(int32(cur.Fraction))
	return cur.Formatter().Format(minor.IntPart())
}
