package analysis

import (
	"math"
	"testing"
)

func TestLayoutClampsToCanvas(t *testing.T) {
	freqs := []WordFrequency{
		{Word: "appropriations", Count: 42},
		{Word: "tax", Count: 30},
		{Word: "budget", Count: 30},
		{Word: "committee", Count: 12},
		{Word: "oversight", Count: 7},
		{Word: "amendment", Count: 3},
		{Word: "veto", Count: 1},
	}
	cfg := DefaultLayoutConfig()
	cfg.Seed = 7

	nodes := Layout(freqs, cfg)
	if len(nodes) != len(freqs) {
		t.Fatalf("Expected %d nodes, got %d", len(freqs), len(nodes))
	}
	for _, n := range nodes {
		if n.X < n.Radius || n.X > cfg.Width-n.Radius {
			t.Errorf("Node %q x=%v radius=%v escapes canvas width %v", n.Text, n.X, n.Radius, cfg.Width)
		}
		if n.Y < n.Radius || n.Y > cfg.Height-n.Radius {
			t.Errorf("Node %q y=%v radius=%v escapes canvas height %v", n.Text, n.Y, n.Radius, cfg.Height)
		}
	}
}

func TestLayoutFontSizeInterpolation(t *testing.T) {
	freqs := []WordFrequency{
		{Word: "first", Count: 10},
		{Word: "middle", Count: 5},
		{Word: "last", Count: 1},
	}
	cfg := DefaultLayoutConfig()

	nodes := Layout(freqs, cfg)
	if nodes[0].FontSize != cfg.MaxFontSize {
		t.Errorf("Max-count node font size = %v, want %v", nodes[0].FontSize, cfg.MaxFontSize)
	}
	if nodes[0].FontSize <= nodes[1].FontSize || nodes[1].FontSize <= nodes[2].FontSize {
		t.Errorf("Font sizes not monotonic: %v, %v, %v", nodes[0].FontSize, nodes[1].FontSize, nodes[2].FontSize)
	}
	wantMid := cfg.MinFontSize + (cfg.MaxFontSize-cfg.MinFontSize)*0.5
	if math.Abs(nodes[1].FontSize-wantMid) > 1e-9 {
		t.Errorf("Mid-count node font size = %v, want %v", nodes[1].FontSize, wantMid)
	}
}

func TestLayoutDeterministicWithSeed(t *testing.T) {
	freqs := []WordFrequency{
		{Word: "funding", Count: 9},
		{Word: "rights", Count: 6},
		{Word: "reform", Count: 2},
	}
	cfg := DefaultLayoutConfig()
	cfg.Seed = 42

	first := Layout(freqs, cfg)
	second := Layout(freqs, cfg)
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("Node %d differs between identically seeded runs: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestLayoutResolvesOverlap(t *testing.T) {
	freqs := []WordFrequency{
		{Word: "one", Count: 5},
		{Word: "two", Count: 5},
	}
	cfg := LayoutConfig{Width: 800, Height: 500, MinFontSize: 14, MaxFontSize: 32, Iterations: 200, Seed: 1}

	nodes := Layout(freqs, cfg)
	dist := math.Hypot(nodes[0].X-nodes[1].X, nodes[0].Y-nodes[1].Y)
	if dist < (nodes[0].Radius+nodes[1].Radius)*0.5 {
		t.Errorf("Nodes still heavily overlapping after relaxation: dist=%v radii=%v+%v",
			dist, nodes[0].Radius, nodes[1].Radius)
	}
}

func TestLayoutEmptyInput(t *testing.T) {
	nodes := Layout(nil, DefaultLayoutConfig())
	if len(nodes) != 0 {
		t.Errorf("Expected no nodes for empty input, got %d", len(nodes))
	}
}
