package alerting

import "github.com/jhoicas/medstock-api/internal/domain/entity"

// Textos de ubicación cuando la cadena de referencias no resuelve.
const (
	LocationUnknown    = "Inconnu"
	LocationUnassigned = "Non assigne"
)

// Index mapas id → registro construidos una sola vez por derivación.
// Evita recorrer las colecciones por cada alerta.
type Index struct {
	items        map[int64]*entity.Item
	stockLines   map[int64]*entity.StockLine
	lotInstances map[int64]*entity.LotInstance
	containers   map[int64]*entity.Container
	locations    map[int64]*entity.Location
	sites        map[int64]*entity.Site

	linesByBatch map[int64][]*entity.StockLine
	linesByItem  map[int64][]*entity.StockLine
}

// NewIndex indexa el snapshot. Las colecciones opcionales ausentes quedan como mapas vacíos.
func NewIndex(s entity.Snapshot) *Index {
	ix := &Index{
		items:        make(map[int64]*entity.Item, len(s.Items)),
		stockLines:   make(map[int64]*entity.StockLine, len(s.StockLines)),
		lotInstances: make(map[int64]*entity.LotInstance, len(s.LotInstances)),
		containers:   make(map[int64]*entity.Container, len(s.Containers)),
		locations:    make(map[int64]*entity.Location, len(s.Locations)),
		sites:        make(map[int64]*entity.Site, len(s.Sites)),
		linesByBatch: make(map[int64][]*entity.StockLine),
		linesByItem:  make(map[int64][]*entity.StockLine),
	}
	for i := range s.Items {
		ix.items[s.Items[i].ID] = &s.Items[i]
	}
	for i := range s.StockLines {
		l := &s.StockLines[i]
		ix.stockLines[l.ID] = l
		ix.linesByItem[l.Item] = append(ix.linesByItem[l.Item], l)
		if l.Batch != nil {
			ix.linesByBatch[*l.Batch] = append(ix.linesByBatch[*l.Batch], l)
		}
	}
	for i := range s.LotInstances {
		ix.lotInstances[s.LotInstances[i].ID] = &s.LotInstances[i]
	}
	for i := range s.Containers {
		ix.containers[s.Containers[i].ID] = &s.Containers[i]
	}
	for i := range s.Locations {
		ix.locations[s.Locations[i].ID] = &s.Locations[i]
	}
	for i := range s.Sites {
		ix.sites[s.Sites[i].ID] = &s.Sites[i]
	}
	return ix
}

// LocationOf resuelve el texto de ubicación de una línea de stock recorriendo
// StockLine → LotInstance → Container → Location → Site.
//
// Contenedor inexistente y contenedor sin ubicación devuelven el mismo texto (LocationUnassigned).
func (ix *Index) LocationOf(stockLineID int64) string {
	line, ok := ix.stockLines[stockLineID]
	if !ok {
		return LocationUnknown
	}
	lot, ok := ix.lotInstances[line.LotInstance]
	if !ok {
		return LocationUnknown
	}
	container, ok := ix.containers[lot.Container]
	if !ok || container.Location == nil {
		return LocationUnassigned
	}
	loc, ok := ix.locations[*container.Location]
	if !ok {
		return LocationUnknown
	}
	if site, ok := ix.sites[loc.Site]; ok {
		return site.Name + " - " + loc.Name
	}
	return loc.Name
}

// firstLocation ubicación de la primera línea, o fallback si no hay líneas.
func (ix *Index) firstLocation(lines []*entity.StockLine, fallback string) string {
	if len(lines) == 0 {
		return fallback
	}
	return ix.LocationOf(lines[0].ID)
}
