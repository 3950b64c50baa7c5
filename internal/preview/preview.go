// Package preview renders a room snapshot to a PNG for the HTTP surface.
// Room list UIs poll these images as lightweight spectate thumbnails.
package preview

import (
	"bytes"
	"fmt"
	"image/png"

	"brawl/internal/game"

	"github.com/fogleman/gg"
)

// Half the stage coordinate space; thumbnails don't need full resolution.
const scale = 0.5

// Player box colors, assigned by roster order.
var playerColors = [][3]float64{
	{0.91, 0.30, 0.24},
	{0.18, 0.55, 0.88},
	{0.20, 0.72, 0.36},
	{0.95, 0.77, 0.06},
}

// Render draws the stage and players into a PNG.
func Render(stage game.Stage, players []game.Player) ([]byte, error) {
	w := int(float64(stage.Bounds.Right-stage.Bounds.Left) * scale)
	h := int(float64(stage.Bounds.Bottom-stage.Bounds.Top) * scale)
	dc := gg.NewContext(w, h)

	// Background
	dc.SetRGB(0.10, 0.10, 0.16)
	dc.Clear()

	// Platforms
	dc.SetRGB(0.35, 0.35, 0.45)
	for _, p := range stage.Platforms {
		dc.DrawRectangle(p.X*scale, p.Y*scale, p.Width*scale, p.Height*scale)
		dc.Fill()
	}

	// Players
	for i, p := range players {
		if p.Out() {
			continue
		}
		c := playerColors[i%len(playerColors)]
		dc.SetRGB(c[0], c[1], c[2])
		dc.DrawRectangle(
			(p.Position.X-game.HalfWidth)*scale,
			(p.Position.Y-game.HalfHeight)*scale,
			2*game.HalfWidth*scale,
			2*game.HalfHeight*scale,
		)
		dc.Fill()

		dc.SetRGB(1, 1, 1)
		label := fmt.Sprintf("%s %.0f%%", p.Username, p.Damage)
		dc.DrawStringAnchored(label, p.Position.X*scale, (p.Position.Y-game.HalfHeight)*scale-6, 0.5, 0.5)
	}

	// Stage name
	dc.SetRGB(0.7, 0.7, 0.7)
	dc.DrawStringAnchored(stage.Name, float64(w)/2, 12, 0.5, 0.5)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dc.Image()); err != nil {
		return nil, fmt.Errorf("encode preview: %w", err)
	}
	return buf.Bytes(), nil
}
