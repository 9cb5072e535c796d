package entity

// Colecciones con nombre estable, usadas como clave de caché e invalidación.
const (
	CollectionItems        = "items"
	CollectionBatches      = "batches"
	CollectionStockLines   = "stock_lines"
	CollectionSites        = "sites"
	CollectionLocations    = "locations"
	CollectionLotInstances = "lot_instances"
	CollectionContainers   = "containers"
)

// AllCollections lista las colecciones en orden de carga.
var AllCollections = []string{
	CollectionItems,
	CollectionBatches,
	CollectionStockLines,
	CollectionSites,
	CollectionLocations,
	CollectionLotInstances,
	CollectionContainers,
}

// IsCollection indica si name es una colección conocida.
func IsCollection(name string) bool {
	for _, c := range AllCollections {
		if c == name {
			return true
		}
	}
	return false
}

// Snapshot agrupa las colecciones leídas del proveedor de datos.
//
// Un slice nil significa "colección no disponible" (aún cargando o falló);
// un slice vacío no-nil significa "disponible y sin registros".
// Items, Batches y StockLines son obligatorias; el resto solo enriquece la ubicación.
// Las colecciones no son consistentes entre sí: cada una puede venir de un fetch distinto.
type Snapshot struct {
	Items        []Item
	Batches      []Batch
	StockLines   []StockLine
	Sites        []Site
	Locations    []Location
	LotInstances []LotInstance
	Containers   []Container
}

// Ready indica si las colecciones obligatorias están cargadas.
func (s Snapshot) Ready() bool {
	return s.Items != nil && s.Batches != nil && s.StockLines != nil
}
