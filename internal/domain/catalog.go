package domain

// Category classifies a simulated urban occurrence.
type Category string

const (
	CategoryTraffic Category = "traffic"
	CategoryTourist Category = "tourist"
	CategoryFlood   Category = "flood"
)

// Categories returns every category in stable presentation order.
func Categories() []Category {
	return []Category{CategoryTraffic, CategoryTourist, CategoryFlood}
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryTraffic, CategoryTourist, CategoryFlood:
		return true
	}
	return false
}

// Label returns the human-readable category name used in API payloads
// and AI prompts.
func (c Category) Label() string {
	switch c {
	case CategoryTraffic:
		return "Heavy Traffic"
	case CategoryTourist:
		return "Tourist Concentration"
	case CategoryFlood:
		return "Flood Risk"
	}
	return ""
}

// AreaLabel returns the generic geographic-area tag attached to every
// record of the category.
func (c Category) AreaLabel() string {
	switch c {
	case CategoryTraffic:
		return "Traffic Area"
	case CategoryTourist:
		return "Tourist Area"
	case CategoryFlood:
		return "Flood Area"
	}
	return ""
}

// Geo represents a WGS-84 latitude/longitude coordinate pair.
type Geo struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Region is a selectable city with a map center and default zoom.
type Region struct {
	Name   string `json:"name"`
	Center Geo    `json:"center"`
	Zoom   int    `json:"zoom"`
}

// PointOfInterest is a named fixed location inside a region, associated
// with exactly one category. Coordinates are absolute; for non-featured
// regions they are computed once from the region center at catalog
// construction.
type PointOfInterest struct {
	Name     string   `json:"name"`
	Area     string   `json:"area"`
	Category Category `json:"category"`
	Geo      Geo      `json:"geo"`
}

// FeaturedRegion is the one region with hand-placed points of interest.
const FeaturedRegion = "João Pessoa, PB"

var regions = []Region{
	{Name: FeaturedRegion, Center: Geo{Lat: -7.1197, Lon: -34.8450}, Zoom: 12},
	{Name: "Recife, PE", Center: Geo{Lat: -8.0476, Lon: -34.8769}, Zoom: 11},
	{Name: "Natal, RN", Center: Geo{Lat: -5.7950, Lon: -35.2110}, Zoom: 11},
	{Name: "São Paulo, SP", Center: Geo{Lat: -23.5505, Lon: -46.6333}, Zoom: 10},
	{Name: "Rio de Janeiro, RJ", Center: Geo{Lat: -22.9068, Lon: -43.1729}, Zoom: 11},
	{Name: "Brasília, DF", Center: Geo{Lat: -15.7797, Lon: -47.9297}, Zoom: 10},
	{Name: "Salvador, BA", Center: Geo{Lat: -12.9714, Lon: -38.5014}, Zoom: 11},
	{Name: "Curitiba, PR", Center: Geo{Lat: -25.4284, Lon: -49.2733}, Zoom: 11},
	{Name: "Sergipe, SE", Center: Geo{Lat: -10.9472, Lon: -37.0731}, Zoom: 11},
	{Name: "Lagarto, SE", Center: Geo{Lat: -10.9031, Lon: -37.6464}, Zoom: 12},
}

// Hand-placed locations for the featured region.
var featuredPoints = map[Category][]PointOfInterest{
	CategoryTraffic: {
		{Name: "Av. Epitácio Pessoa (Centro)", Geo: Geo{Lat: -7.1166, Lon: -34.8385}},
		{Name: "Av. Ruy Carneiro (Miramar)", Geo: Geo{Lat: -7.1200, Lon: -34.8450}},
		{Name: "BR-230 (Acesso Gauchinha)", Geo: Geo{Lat: -7.1350, Lon: -34.8850}},
		{Name: "Av. Beira Rio (Bancários)", Geo: Geo{Lat: -7.1000, Lon: -34.8700}},
	},
	CategoryTourist: {
		{Name: "Praia de Tambaú", Geo: Geo{Lat: -7.1187, Lon: -34.8090}},
		{Name: "Praia de Cabo Branco", Geo: Geo{Lat: -7.1300, Lon: -34.7950}},
		{Name: "Farol do Cabo Branco", Geo: Geo{Lat: -7.1490, Lon: -34.7930}},
		{Name: "Parque da Lagoa (Centro)", Geo: Geo{Lat: -7.1070, Lon: -34.8800}},
	},
	CategoryFlood: {
		{Name: "Bessa (próximo à BR)", Geo: Geo{Lat: -7.0900, Lon: -34.8500}},
		{Name: "Bancários (área baixa)", Geo: Geo{Lat: -7.1000, Lon: -34.8700}},
		{Name: "Padre Zé (trechos)", Geo: Geo{Lat: -7.1250, Lon: -34.8600}},
	},
}

type pointOffset struct {
	name   string
	latOff float64
	lonOff float64
}

// Generic offset template shared by every non-featured region.
var genericOffsets = map[Category][]pointOffset{
	CategoryTraffic: {
		{name: "Av. Principal Norte", latOff: 0.02, lonOff: 0.01},
		{name: "Av. Principal Sul", latOff: -0.015, lonOff: 0.005},
		{name: "Anel Viário Leste", latOff: 0.005, lonOff: -0.025},
	},
	CategoryTourist: {
		{name: "Ponto Turístico Principal", latOff: 0.01, lonOff: -0.03},
		{name: "Praça Histórica Central", latOff: -0.005, lonOff: 0.002},
	},
	CategoryFlood: {
		{name: "Área de Baixo Relevo 1", latOff: 0.008, lonOff: -0.018},
		{name: "Região Próxima ao Rio", latOff: -0.012, lonOff: 0.01},
	},
}

// Catalog resolves regions and their per-category points of interest.
// All tables are computed once at construction and never mutated.
type Catalog struct {
	regions []Region
	byName  map[string]Region
	points  map[string]map[Category][]PointOfInterest
}

// NewCatalog builds the static scenario catalog. Non-featured regions get
// their points of interest computed from the generic offset template.
func NewCatalog() *Catalog {
	c := &Catalog{
		regions: regions,
		byName:  make(map[string]Region, len(regions)),
		points:  make(map[string]map[Category][]PointOfInterest, len(regions)),
	}
	for _, r := range c.regions {
		c.byName[r.Name] = r
		c.points[r.Name] = buildPoints(r)
	}
	return c
}

func buildPoints(r Region) map[Category][]PointOfInterest {
	out := make(map[Category][]PointOfInterest, len(Categories()))
	for _, cat := range Categories() {
		if r.Name == FeaturedRegion {
			pts := make([]PointOfInterest, len(featuredPoints[cat]))
			copy(pts, featuredPoints[cat])
			for i := range pts {
				pts[i].Category = cat
				pts[i].Area = cat.AreaLabel()
			}
			out[cat] = pts
			continue
		}
		offs := genericOffsets[cat]
		pts := make([]PointOfInterest, 0, len(offs))
		for _, o := range offs {
			pts = append(pts, PointOfInterest{
				Name:     o.name,
				Area:     cat.AreaLabel(),
				Category: cat,
				Geo:      Geo{Lat: r.Center.Lat + o.latOff, Lon: r.Center.Lon + o.lonOff},
			})
		}
		out[cat] = pts
	}
	return out
}

// Regions returns every selectable region in catalog order.
func (c *Catalog) Regions() []Region {
	out := make([]Region, len(c.regions))
	copy(out, c.regions)
	return out
}

// Region looks up a region by name.
func (c *Catalog) Region(name string) (Region, bool) {
	r, ok := c.byName[name]
	return r, ok
}

// PointsOfInterest returns the ordered point list for (region, category).
// The slice is shared; callers must not mutate it.
func (c *Catalog) PointsOfInterest(region string, cat Category) []PointOfInterest {
	return c.points[region][cat]
}

// PointCount returns the total number of points of interest across all
// categories for a region. Used for record-count accounting.
func (c *Catalog) PointCount(region string) int {
	var n int
	for _, cat := range Categories() {
		n += len(c.points[region][cat])
	}
	return n
}
