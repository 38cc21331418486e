package layout

// Viewport is the render surface the tree should be fitted into.
type Viewport struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Fit is the scale and translation that centers a built tree in a viewport.
// Applying it is the renderer's job; computing it changes nothing about the
// tree.
type Fit struct {
	Scale   float64 `json:"scale"`
	OffsetX float64 `json:"offset_x"`
	OffsetY float64 `json:"offset_y"`
}

const fitMargin = 0.9

// FitToViewport computes the bounding box of every node coordinate in the
// tree, pads it, and derives the scale and centering offsets. Scale never
// exceeds 0.9 so a small tree is not blown up past natural size.
func FitToViewport(t *Tree, vp Viewport, padding float64) Fit {
	coords := collectCoords(t)
	if len(coords) == 0 || vp.Width <= 0 || vp.Height <= 0 {
		return Fit{Scale: 1}
	}

	minX, minY := coords[0][0], coords[0][1]
	maxX, maxY := minX, minY
	for _, c := range coords[1:] {
		if c[0] < minX {
			minX = c[0]
		}
		if c[0] > maxX {
			maxX = c[0]
		}
		if c[1] < minY {
			minY = c[1]
		}
		if c[1] > maxY {
			maxY = c[1]
		}
	}

	boxWidth := maxX - minX + 2*padding
	boxHeight := maxY - minY + 2*padding
	if boxWidth <= 0 {
		boxWidth = 1
	}
	if boxHeight <= 0 {
		boxHeight = 1
	}

	scale := vp.Width / boxWidth
	if vertical := vp.Height / boxHeight; vertical < scale {
		scale = vertical
	}
	if scale > 1 {
		scale = 1
	}
	scale *= fitMargin

	centerX := (minX + maxX) / 2
	centerY := (minY + maxY) / 2
	return Fit{
		Scale:   scale,
		OffsetX: vp.Width/2 - scale*centerX,
		OffsetY: vp.Height/2 - scale*centerY,
	}
}

func collectCoords(t *Tree) [][2]float64 {
	var coords [][2]float64
	var walk func(n *Node)
	walk = func(n *Node) {
		if n == nil {
			return
		}
		coords = append(coords, [2]float64{n.X, n.Y})
		if n.Spouse != nil {
			coords = append(coords, [2]float64{n.Spouse.X, n.Spouse.Y})
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	for _, root := range t.Roots {
		walk(root)
	}
	return coords
}
