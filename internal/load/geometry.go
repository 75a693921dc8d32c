package load

// Geometry is the internal size of a room and its door, in metres.
type Geometry struct {
	Length     float64 `json:"length"`
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	DoorWidth  float64 `json:"doorWidth"`
	DoorHeight float64 `json:"doorHeight"`
}

// Areas are the heat-transfer surfaces of a room, in m².
type Areas struct {
	Wall    float64 `json:"wall"`
	Ceiling float64 `json:"ceiling"`
	Floor   float64 `json:"floor"`
	Door    float64 `json:"door"`
}

func (g Geometry) Volume() float64 {
	return g.Length * g.Width * g.Height
}

func (g Geometry) Areas() Areas {
	return Areas{
		Wall:    2 * (g.Length + g.Width) * g.Height,
		Ceiling: g.Length * g.Width,
		Floor:   g.Length * g.Width,
		Door:    g.DoorWidth * g.DoorHeight,
	}
}

func (g Geometry) validate() error {
	return firstErr(
		requireNonNegative("length", g.Length),
		requireNonNegative("width", g.Width),
		requireNonNegative("height", g.Height),
		requireNonNegative("doorWidth", g.DoorWidth),
		requireNonNegative("doorHeight", g.DoorHeight),
	)
}

// SurfaceLoads splits transmission through walls, ceiling and floor.
type SurfaceLoads struct {
	Walls   float64 `json:"walls"`
	Ceiling float64 `json:"ceiling"`
	Floor   float64 `json:"floor"`
	Total   float64 `json:"total"`
}

func newSurfaceLoads(walls, ceiling, floor float64) SurfaceLoads {
	return SurfaceLoads{Walls: walls, Ceiling: ceiling, Floor: floor, Total: walls + ceiling + floor}
}

// ProductStages is the three-stage freezing load of a product.
type ProductStages struct {
	SensibleAbove float64 `json:"sensibleAbove"`
	Latent        float64 `json:"latent"`
	SensibleBelow float64 `json:"sensibleBelow"`
	Total         float64 `json:"total"`
}

func newProductStages(above, latent, below float64) ProductStages {
	return ProductStages{SensibleAbove: above, Latent: latent, SensibleBelow: below, Total: above + latent + below}
}

// utilization is load as a percentage of capacity; an empty room reports zero.
func utilization(load, capacity float64) float64 {
	if capacity <= 0 {
		return 0
	}
	return load / capacity * 100
}
