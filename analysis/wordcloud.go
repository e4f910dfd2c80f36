package analysis

import (
	"math"
	"math/rand"
)

// WordCloudNode is a placed word-cloud label. Positions are final once Layout
// returns.
type WordCloudNode struct {
	Text     string  `json:"text"`
	Count    int     `json:"count"`
	FontSize float64 `json:"fontSize"`
	Color    string  `json:"color"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Radius   float64 `json:"radius"`
}

// LayoutConfig bounds the word-cloud canvas and relaxation.
type LayoutConfig struct {
	Width       float64
	Height      float64
	MinFontSize float64
	MaxFontSize float64
	Iterations  int
	// Seed makes placement reproducible; the same seed and input yield the
	// same layout.
	Seed int64
}

// DefaultLayoutConfig returns the dashboard's canvas settings.
func DefaultLayoutConfig() LayoutConfig {
	return LayoutConfig{
		Width:       800,
		Height:      500,
		MinFontSize: 14,
		MaxFontSize: 64,
		Iterations:  120,
	}
}

var palette = []string{
	"#2563eb", "#dc2626", "#16a34a", "#d97706", "#7c3aed",
	"#0891b2", "#db2777", "#65a30d", "#ea580c", "#4f46e5",
}

const (
	labelPadding = 4.0
	// centerPull is the fraction of the distance to the canvas center a node
	// drifts each relaxation step.
	centerPull = 0.01
)

// Layout places ranked word frequencies on the canvas. Font size scales
// linearly with count up to the maximum observed count, and an iterative
// relaxation pushes overlapping labels apart while weakly pulling every label
// toward the center. Final coordinates are clamped so no node extends past the
// canvas edge.
func Layout(freqs []WordFrequency, cfg LayoutConfig) []WordCloudNode {
	if len(freqs) == 0 {
		return []WordCloudNode{}
	}

	maxCount := freqs[0].Count
	for _, f := range freqs {
		if f.Count > maxCount {
			maxCount = f.Count
		}
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	nodes := make([]WordCloudNode, len(freqs))
	for i, f := range freqs {
		size := cfg.MinFontSize
		if maxCount > 0 {
			size += (cfg.MaxFontSize - cfg.MinFontSize) * float64(f.Count) / float64(maxCount)
		}
		// Approximate rendered text width at ~0.6em per rune.
		width := size * 0.6 * float64(len([]rune(f.Word)))
		radius := math.Max(size*0.7, width/2+labelPadding)
		// A label can never be wider than the canvas itself.
		radius = math.Min(radius, math.Min(cfg.Width, cfg.Height)/2)

		nodes[i] = WordCloudNode{
			Text:     f.Word,
			Count:    f.Count,
			FontSize: size,
			Color:    palette[i%len(palette)],
			X:        radius + rng.Float64()*(cfg.Width-2*radius),
			Y:        radius + rng.Float64()*(cfg.Height-2*radius),
			Radius:   radius,
		}
	}

	cx, cy := cfg.Width/2, cfg.Height/2
	for step := 0; step < cfg.Iterations; step++ {
		for i := range nodes {
			for j := i + 1; j < len(nodes); j++ {
				dx := nodes[j].X - nodes[i].X
				dy := nodes[j].Y - nodes[i].Y
				dist := math.Hypot(dx, dy)
				minDist := nodes[i].Radius + nodes[j].Radius
				if dist >= minDist {
					continue
				}
				if dist == 0 {
					// Coincident centers: separate along a fixed axis.
					dx, dy, dist = 1, 0, 1
				}
				push := (minDist - dist) / 2
				ux, uy := dx/dist, dy/dist
				nodes[i].X -= ux * push
				nodes[i].Y -= uy * push
				nodes[j].X += ux * push
				nodes[j].Y += uy * push
			}
		}
		for i := range nodes {
			nodes[i].X += (cx - nodes[i].X) * centerPull
			nodes[i].Y += (cy - nodes[i].Y) * centerPull
		}
	}

	for i := range nodes {
		nodes[i].X = clamp(nodes[i].X, nodes[i].Radius, cfg.Width-nodes[i].Radius)
		nodes[i].Y = clamp(nodes[i].Y, nodes[i].Radius, cfg.Height-nodes[i].Radius)
	}
	return nodes
}
