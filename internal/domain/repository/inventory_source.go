package repository

import (
	"context"

	"github.com/jhoicas/medstock-api/internal/domain/entity"
)

// InventorySource define el puerto de lectura de las colecciones de inventario (DIP).
// Cada colección se obtiene de forma independiente: no hay consistencia transaccional entre ellas.
type InventorySource interface {
	Items(ctx context.Context) ([]entity.Item, error)
	Batches(ctx context.Context) ([]entity.Batch, error)
	StockLines(ctx context.Context) ([]entity.StockLine, error)
	Sites(ctx context.Context) ([]entity.Site, error)
	Locations(ctx context.Context) ([]entity.Location, error)
	LotInstances(ctx context.Context) ([]entity.LotInstance, error)
	Containers(ctx context.Context) ([]entity.Container, error)
}

// CollectionInvalidator lo implementan las fuentes con caché: descarta las colecciones
// indicadas para que la próxima lectura vaya al origen.
type CollectionInvalidator interface {
	Invalidate(ctx context.Context, collections ...string) error
}
