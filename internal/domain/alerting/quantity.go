package alerting

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/medstock-api/internal/domain/entity"
)

// numericPrefix reconoce el prefijo numérico más largo, igual que parseFloat en el frontend
// ("12.50", " 3 ", "4kg" → 4, "1e2" → 100).
var numericPrefix = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// parseQuantity convierte el string de una línea de stock con rango float64.
// inf es +1/-1 cuando el valor desborda (Infinity); ok=false cuando no hay prefijo numérico (NaN).
// Acotar a float64 evita reescalar decimales con exponentes arbitrarios.
func parseQuantity(s string) (d decimal.Decimal, inf int, ok bool) {
	m := numericPrefix.FindString(strings.TrimSpace(s))
	if m == "" {
		return decimal.Zero, 0, false
	}
	f, err := strconv.ParseFloat(m, 64)
	switch {
	case math.IsInf(f, 1):
		return decimal.Zero, 1, true
	case math.IsInf(f, -1):
		return decimal.Zero, -1, true
	case err != nil:
		return decimal.Zero, 0, false
	}
	return decimal.NewFromFloat(f), 0, true
}

// quantityTotal suma de cantidades con semántica NaN/Infinity:
// una cantidad ilegible invalida el total, +Inf y -Inf juntos también.
type quantityTotal struct {
	sum     decimal.Decimal
	inf     int
	invalid bool
}

func (q *quantityTotal) add(raw string) {
	d, inf, ok := parseQuantity(raw)
	switch {
	case !ok:
		q.invalid = true
	case inf != 0:
		if q.inf != 0 && q.inf != inf {
			q.invalid = true
		}
		q.inf = inf
	case q.inf == 0:
		q.sum = q.sum.Add(d)
	}
}

// isZero solo para totales finitos.
func (q quantityTotal) isZero() bool {
	return !q.invalid && q.inf == 0 && q.sum.IsZero()
}

// lessThan: -Inf es menor que cualquier umbral, +Inf nunca.
func (q quantityTotal) lessThan(threshold decimal.Decimal) bool {
	switch {
	case q.invalid || q.inf > 0:
		return false
	case q.inf < 0:
		return true
	}
	return q.sum.LessThan(threshold)
}

func (q quantityTotal) String() string {
	switch {
	case q.invalid:
		return "NaN"
	case q.inf > 0:
		return "Infinity"
	case q.inf < 0:
		return "-Infinity"
	}
	return q.sum.String()
}

// float devuelve el total como *float64; nil si es inválido o infinito (JSON no los admite).
func (q quantityTotal) float() *float64 {
	if q.invalid || q.inf != 0 {
		return nil
	}
	f := q.sum.InexactFloat64()
	return &f
}

func sumQuantities(lines []*entity.StockLine) quantityTotal {
	var t quantityTotal
	for _, l := range lines {
		t.add(l.Quantity)
	}
	return t
}
