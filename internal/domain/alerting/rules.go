package alerting

import "github.com/shopspring/decimal"

// Rules umbrales de clasificación.
type Rules struct {
	// ExpiringSoonDays: vencimiento dentro de [now, now+N días] → prioridad high.
	ExpiringSoonDays int
	// ExpiringWatchDays: vencimiento dentro de (now+soon, now+N días] → prioridad medium.
	ExpiringWatchDays int
	// LowStockThreshold: consumibles con 0 < cantidad < umbral → stock bajo.
	LowStockThreshold decimal.Decimal
}

// DefaultRules umbrales de referencia: 30 días, 90 días, 5 unidades.
func DefaultRules() Rules {
	return Rules{
		ExpiringSoonDays:  30,
		ExpiringWatchDays: 90,
		LowStockThreshold: decimal.NewFromInt(5),
	}
}

// normalize reemplaza valores no válidos por los de referencia.
func (r Rules) normalize() Rules {
	def := DefaultRules()
	if r.ExpiringSoonDays <= 0 {
		r.ExpiringSoonDays = def.ExpiringSoonDays
	}
	if r.ExpiringWatchDays <= 0 {
		r.ExpiringWatchDays = def.ExpiringWatchDays
	}
	if r.ExpiringWatchDays < r.ExpiringSoonDays {
		r.ExpiringWatchDays = r.ExpiringSoonDays
	}
	if r.LowStockThreshold.LessThanOrEqual(decimal.Zero) {
		r.LowStockThreshold = def.LowStockThreshold
	}
	return r
}
