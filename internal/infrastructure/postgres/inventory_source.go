package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/medstock-api/internal/domain/entity"
	"github.com/jhoicas/medstock-api/internal/domain/repository"
)

var _ repository.InventorySource = (*InventorySource)(nil)

// InventorySource lee las colecciones de inventario desde PostgreSQL.
// Cada método es una consulta independiente, sin transacción común.
type InventorySource struct {
	q Querier
}

// NewInventorySource construye el adaptador. Pasar pool o tx (Querier).
func NewInventorySource(q Querier) *InventorySource {
	return &InventorySource{q: q}
}

func (s *InventorySource) Items(ctx context.Context) ([]entity.Item, error) {
	list, err := queryAll(ctx, s.q,
		`SELECT id, name, is_consumable FROM items ORDER BY id`,
		func(r scanner, it *entity.Item) error {
			return r.Scan(&it.ID, &it.Name, &it.IsConsumable)
		})
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return list, nil
}

func (s *InventorySource) Batches(ctx context.Context) ([]entity.Batch, error) {
	list, err := queryAll(ctx, s.q,
		`SELECT id, item_id, expires_at FROM batches ORDER BY id`,
		func(r scanner, b *entity.Batch) error {
			return r.Scan(&b.ID, &b.Item, &b.ExpiresAt)
		})
	if err != nil {
		return nil, fmt.Errorf("list batches: %w", err)
	}
	return list, nil
}

// StockLines escanea quantity (NUMERIC) con el codec shopspring y lo expone como string decimal.
func (s *InventorySource) StockLines(ctx context.Context) ([]entity.StockLine, error) {
	list, err := queryAll(ctx, s.q,
		`SELECT id, item_id, batch_id, lot_instance_id, quantity FROM stock_lines ORDER BY id`,
		func(r scanner, l *entity.StockLine) error {
			var qty decimal.Decimal
			if err := r.Scan(&l.ID, &l.Item, &l.Batch, &l.LotInstance, &qty); err != nil {
				return err
			}
			l.Quantity = qty.String()
			return nil
		})
	if err != nil {
		return nil, fmt.Errorf("list stock lines: %w", err)
	}
	return list, nil
}

func (s *InventorySource) Sites(ctx context.Context) ([]entity.Site, error) {
	list, err := queryAll(ctx, s.q,
		`SELECT id, name FROM sites ORDER BY id`,
		func(r scanner, st *entity.Site) error {
			return r.Scan(&st.ID, &st.Name)
		})
	if err != nil {
		return nil, fmt.Errorf("list sites: %w", err)
	}
	return list, nil
}

func (s *InventorySource) Locations(ctx context.Context) ([]entity.Location, error) {
	list, err := queryAll(ctx, s.q,
		`SELECT id, site_id, name FROM locations ORDER BY id`,
		func(r scanner, l *entity.Location) error {
			return r.Scan(&l.ID, &l.Site, &l.Name)
		})
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	return list, nil
}

func (s *InventorySource) LotInstances(ctx context.Context) ([]entity.LotInstance, error) {
	list, err := queryAll(ctx, s.q,
		`SELECT id, container_id FROM lot_instances ORDER BY id`,
		func(r scanner, l *entity.LotInstance) error {
			return r.Scan(&l.ID, &l.Container)
		})
	if err != nil {
		return nil, fmt.Errorf("list lot instances: %w", err)
	}
	return list, nil
}

func (s *InventorySource) Containers(ctx context.Context) ([]entity.Container, error) {
	list, err := queryAll(ctx, s.q,
		`SELECT id, location_id FROM containers ORDER BY id`,
		func(r scanner, c *entity.Container) error {
			return r.Scan(&c.ID, &c.Location)
		})
	if err != nil {
		return nil, fmt.Errorf("list containers: %w", err)
	}
	return list, nil
}
