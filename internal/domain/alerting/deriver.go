// Package alerting calcula las alertas de vencimiento y stock bajo a partir de
// las colecciones de inventario. Todo es puro y síncrono: sin I/O, sin estado.
package alerting

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/jhoicas/medstock-api/internal/domain/entity"
)

const (
	titleExpired  = "Expired batch"
	titleExpiring = "Batch expiring soon"
	titleOutStock = "Out of stock"
	titleLowStock = "Low stock warning"

	dateLayout = "2006-01-02"
)

// Deriver calcula la lista ordenada de alertas. Es seguro para uso concurrente:
// solo lee sus reglas.
type Deriver struct {
	rules Rules
}

// NewDeriver construye el derivador con las reglas indicadas (valores inválidos → referencia).
func NewDeriver(rules Rules) *Deriver {
	return &Deriver{rules: rules.normalize()}
}

// Rules devuelve las reglas efectivas.
func (d *Deriver) Rules() Rules { return d.rules }

// ExpiredID, ExpiringID y LowStockID construyen los IDs determinísticos de alerta.
func ExpiredID(batchID int64) string  { return "expired-" + strconv.FormatInt(batchID, 10) }
func ExpiringID(batchID int64) string { return "expiring-" + strconv.FormatInt(batchID, 10) }
func LowStockID(itemID int64) string  { return "low-stock-" + strconv.FormatInt(itemID, 10) }

// Derive devuelve todas las alertas (reconocidas o no) ordenadas por prioridad.
//
// now se captura una vez por el llamador; acked no se modifica.
// Si faltan Items, Batches o StockLines devuelve una lista vacía.
func (d *Deriver) Derive(snap entity.Snapshot, acked entity.AckSet, now time.Time) []entity.Alert {
	if !snap.Ready() {
		return []entity.Alert{}
	}
	ix := NewIndex(snap)
	alerts := make([]entity.Alert, 0)

	alerts = d.appendExpiry(alerts, snap.Batches, ix, acked, now)
	alerts = d.appendLowStock(alerts, snap.Items, ix, acked, now)

	sort.SliceStable(alerts, func(i, j int) bool {
		return alerts[i].Priority.Rank() < alerts[j].Priority.Rank()
	})
	return alerts
}

func (d *Deriver) appendExpiry(out []entity.Alert, batches []entity.Batch, ix *Index, acked entity.AckSet, now time.Time) []entity.Alert {
	soon := now.AddDate(0, 0, d.rules.ExpiringSoonDays)
	watch := now.AddDate(0, 0, d.rules.ExpiringWatchDays)

	for i := range batches {
		b := &batches[i]
		if b.ExpiresAt == nil {
			continue
		}
		item, ok := ix.items[b.Item]
		if !ok {
			continue
		}
		exp := *b.ExpiresAt

		var (
			id       string
			typ      entity.AlertType
			priority entity.AlertPriority
			title    string
			desc     string
		)
		switch {
		case exp.Before(now):
			id, typ, priority, title = ExpiredID(b.ID), entity.AlertExpired, entity.PriorityCritical, titleExpired
			desc = fmt.Sprintf("Batch #%d of %s expired on %s", b.ID, item.Name, exp.Format(dateLayout))
		case !exp.After(soon):
			id, typ, priority, title = ExpiringID(b.ID), entity.AlertExpiring, entity.PriorityHigh, titleExpiring
			desc = fmt.Sprintf("Batch #%d of %s expires on %s", b.ID, item.Name, exp.Format(dateLayout))
		case !exp.After(watch):
			id, typ, priority, title = ExpiringID(b.ID), entity.AlertExpiring, entity.PriorityMedium, titleExpiring
			desc = fmt.Sprintf("Batch #%d of %s expires on %s", b.ID, item.Name, exp.Format(dateLayout))
		default:
			continue
		}

		lines := ix.linesByBatch[b.ID]
		batchID := b.ID
		out = append(out, entity.Alert{
			ID:           id,
			Type:         typ,
			Title:        title,
			Description:  desc,
			Item:         item.Name,
			ItemID:       item.ID,
			Location:     ix.firstLocation(lines, LocationUnknown),
			Date:         exp,
			Priority:     priority,
			Acknowledged: acked.Has(id),
			BatchID:      &batchID,
			Quantity:     sumQuantities(lines).float(),
		})
	}
	return out
}

func (d *Deriver) appendLowStock(out []entity.Alert, items []entity.Item, ix *Index, acked entity.AckSet, now time.Time) []entity.Alert {
	for i := range items {
		item := &items[i]
		lines := ix.linesByItem[item.ID]
		total := sumQuantities(lines)
		if total.invalid {
			// NaN no es 0 ni menor que el umbral.
			continue
		}

		var (
			priority entity.AlertPriority
			title    string
			desc     string
		)
		switch {
		case total.isZero():
			priority, title = entity.PriorityCritical, titleOutStock
			desc = fmt.Sprintf("%s is out of stock", item.Name)
		case item.IsConsumable && total.lessThan(d.rules.LowStockThreshold):
			priority, title = entity.PriorityHigh, titleLowStock
			desc = fmt.Sprintf("Only %s unit(s) of %s left", total.String(), item.Name)
		default:
			continue
		}

		id := LowStockID(item.ID)
		out = append(out, entity.Alert{
			ID:           id,
			Type:         entity.AlertLowStock,
			Title:        title,
			Description:  desc,
			Item:         item.Name,
			ItemID:       item.ID,
			Location:     ix.firstLocation(lines, LocationUnassigned),
			Date:         now,
			Priority:     priority,
			Acknowledged: acked.Has(id),
			Quantity:     total.float(),
		})
	}
	return out
}
