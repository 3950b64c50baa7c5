package game

// Platform is an axis-aligned rectangle that is solid from above only:
// players land on it while falling and pass through it from below.
type Platform struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Bounds are the stage limits. Left/right/top clamp movement; crossing
// Bottom costs a stock.
type Bounds struct {
	Left   float64 `json:"left"`
	Right  float64 `json:"right"`
	Top    float64 `json:"top"`
	Bottom float64 `json:"bottom"`
}

// Stage is static configuration, immutable at runtime. Platform order
// matters: collision resolution walks platforms in declaration order and the
// first match wins.
type Stage struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Platforms []Platform `json:"platforms"`
	Bounds    Bounds     `json:"bounds"`
}

// SpawnPoint is where players respawn after losing a stock: horizontal
// center of the stage, just below the top boundary.
func (s Stage) SpawnPoint() Vec2 {
	return spawnPoint(s.Bounds)
}

// DefaultStageID is used for new rooms and as the fallback for unknown ids.
const DefaultStageID = "battlefield"

var stages = []Stage{
	{
		ID:   "battlefield",
		Name: "Battlefield",
		Platforms: []Platform{
			{X: 300, Y: 500, Width: 600, Height: 20},
			{X: 400, Y: 350, Width: 200, Height: 15},
			{X: 200, Y: 400, Width: 150, Height: 15},
			{X: 850, Y: 400, Width: 150, Height: 15},
		},
		Bounds: Bounds{Left: 0, Right: 1280, Top: 0, Bottom: 800},
	},
	{
		ID:   "final_destination",
		Name: "Final Destination",
		Platforms: []Platform{
			{X: 200, Y: 500, Width: 880, Height: 20},
		},
		Bounds: Bounds{Left: 0, Right: 1280, Top: 0, Bottom: 800},
	},
	{
		ID:   "small_battlefield",
		Name: "Small Battlefield",
		Platforms: []Platform{
			{X: 350, Y: 500, Width: 500, Height: 20},
			{X: 450, Y: 350, Width: 150, Height: 15},
			{X: 650, Y: 350, Width: 150, Height: 15},
		},
		Bounds: Bounds{Left: 0, Right: 1280, Top: 0, Bottom: 800},
	},
	{
		ID:   "castle",
		Name: "Castle",
		Platforms: []Platform{
			{X: 300, Y: 500, Width: 680, Height: 20},
			{X: 200, Y: 400, Width: 200, Height: 15},
			{X: 500, Y: 350, Width: 150, Height: 15},
			{X: 800, Y: 450, Width: 150, Height: 15},
			{X: 650, Y: 250, Width: 100, Height: 15},
		},
		Bounds: Bounds{Left: 0, Right: 1280, Top: 0, Bottom: 800},
	},
}

// Stages returns the full stage catalog.
func Stages() []Stage {
	out := make([]Stage, len(stages))
	copy(out, stages)
	return out
}

// StageByID returns the stage for the given id, falling back to the default
// stage for unknown ids. Selection never fails.
func StageByID(id string) Stage {
	for _, s := range stages {
		if s.ID == id {
			return s
		}
	}
	return stages[0]
}

// ValidStageID reports whether id names a stage in the catalog.
func ValidStageID(id string) bool {
	for _, s := range stages {
		if s.ID == id {
			return true
		}
	}
	return false
}
