package alerts

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/medstock-api/internal/domain"
	"github.com/jhoicas/medstock-api/internal/domain/entity"
	"github.com/jhoicas/medstock-api/internal/domain/repository"
)

// LoadSnapshot lee las siete colecciones en paralelo.
//
// Si falla una colección obligatoria (items, batches, stock_lines) devuelve ErrSourceUnavailable.
// Si falla una opcional, se registra y queda nil: la ubicación degrada a los textos por defecto.
func LoadSnapshot(ctx context.Context, src repository.InventorySource, log zerolog.Logger) (entity.Snapshot, error) {
	var snap entity.Snapshot
	g, gctx := errgroup.WithContext(ctx)

	fetch(gctx, g, log, entity.CollectionItems, true, &snap.Items, src.Items)
	fetch(gctx, g, log, entity.CollectionBatches, true, &snap.Batches, src.Batches)
	fetch(gctx, g, log, entity.CollectionStockLines, true, &snap.StockLines, src.StockLines)
	fetch(gctx, g, log, entity.CollectionSites, false, &snap.Sites, src.Sites)
	fetch(gctx, g, log, entity.CollectionLocations, false, &snap.Locations, src.Locations)
	fetch(gctx, g, log, entity.CollectionLotInstances, false, &snap.LotInstances, src.LotInstances)
	fetch(gctx, g, log, entity.CollectionContainers, false, &snap.Containers, src.Containers)

	if err := g.Wait(); err != nil {
		return entity.Snapshot{}, err
	}
	return snap, nil
}

func fetch[T any](
	ctx context.Context,
	g *errgroup.Group,
	log zerolog.Logger,
	name string,
	required bool,
	dst *[]T,
	fn func(context.Context) ([]T, error),
) {
	g.Go(func() error {
		list, err := fn(ctx)
		if err != nil {
			if required {
				return fmt.Errorf("%w: %s: %w", domain.ErrSourceUnavailable, name, err)
			}
			log.Warn().Err(err).Str("collection", name).Msg("colección opcional no disponible")
			return nil
		}
		if list == nil {
			list = []T{}
		}
		*dst = list
		return nil
	})
}
