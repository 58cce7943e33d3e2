package viz

import (
	"strings"
	"testing"
)

func TestCanvasSetAndClear(t *testing.T) {
	c := NewCanvas(4, 2)
	c.Set(0, 0)
	c.Set(1, 3)

	if c.Grid[0][0] != blank|0x1|0x80 {
		t.Errorf("unexpected cell %U", c.Grid[0][0])
	}
	if !c.Lit(0, 0) || !c.Lit(1, 3) || c.Lit(1, 0) {
		t.Error("Lit does not match set pixels")
	}

	c.Clear()
	if c.Grid[0][0] != blank {
		t.Error("clear did not reset cell")
	}
}

func TestCanvasOutOfBounds(t *testing.T) {
	c := NewCanvas(2, 2)
	c.Paint(-1, 0, "#ffffff")
	c.Paint(0, -1, "#ffffff")
	c.Paint(4, 0, "#ffffff")
	c.Paint(0, 8, "#ffffff")

	for _, row := range c.Grid {
		for _, cell := range row {
			if cell != blank {
				t.Fatal("out of bounds paint changed the grid")
			}
		}
	}
}

func TestCanvasDrawLine(t *testing.T) {
	c := NewCanvas(10, 2)
	c.DrawLine(0, 0, 19, 0, "#ff0000")
	for x := 0; x < 20; x++ {
		if !c.Lit(x, 0) {
			t.Fatalf("pixel %d not lit", x)
		}
	}
	if c.Colors[0][5] != "#ff0000" {
		t.Errorf("line did not colour cells, got %q", c.Colors[0][5])
	}
}

func TestCanvasCircles(t *testing.T) {
	c := NewCanvas(20, 10)
	c.DrawCircle(20, 20, 8, "#00ff00")

	for _, p := range [][2]int{{28, 20}, {12, 20}, {20, 28}, {20, 12}} {
		if !c.Lit(p[0], p[1]) {
			t.Errorf("circle point %v not lit", p)
		}
	}
	if c.Lit(20, 20) {
		t.Error("outline should not fill the centre")
	}

	c.FillCircle(20, 20, 3, "#00ff00")
	if !c.Lit(20, 20) || !c.Lit(22, 21) {
		t.Error("filled circle missing interior pixels")
	}
}

func TestCanvasRender(t *testing.T) {
	c := NewCanvas(3, 1)
	c.Paint(0, 0, "#ff0000")

	rendered := c.Render()
	if strings.Count(rendered, "\n") != 1 {
		t.Errorf("expected one line, got %q", rendered)
	}
	if !strings.Contains(rendered, string(blank)) || !strings.HasSuffix(rendered, "\n") {
		t.Errorf("unexpected render %q", rendered)
	}
}
