package viewport_test

import (
	"fmt"
	"testing"

	"github.com/tzneal/vikcoord/viewport"
)

type recordingCanvas struct {
	ops []string
}

func (c *recordingCanvas) DrawLine(x1, y1, x2, y2 int) {
	c.ops = append(c.ops, fmt.Sprintf("line %d,%d %d,%d", x1, y1, x2, y2))
}

func (c *recordingCanvas) DrawRectangle(filled bool, x, y, w, h int) {
	c.ops = append(c.ops, fmt.Sprintf("rect %v %d,%d %dx%d", filled, x, y, w, h))
}

func (c *recordingCanvas) DrawText(x, y int, text string) {
	c.ops = append(c.ops, fmt.Sprintf("text %d,%d %s", x, y, text))
}

func TestLineVisible(t *testing.T) {
	v := viewport.New(800, 600)
	tests := []struct {
		name           string
		x1, y1, x2, y2 int
		want           bool
	}{
		{"inside", 10, 10, 100, 100, true},
		{"crossing", -50, 300, 900, 300, true},
		{"both left", -10, 0, -1, 500, false},
		{"both above", 0, -5, 700, -1, false},
		{"both right", 801, 0, 900, 500, false},
		{"both below", 0, 601, 700, 700, false},
		{"on the edge", 800, 600, 900, 700, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := v.LineVisible(tc.x1, tc.y1, tc.x2, tc.y2); got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestDrawClipping(t *testing.T) {
	v := viewport.New(800, 600)
	c := &recordingCanvas{}

	v.DrawLine(c, 0, 0, 10, 10)
	v.DrawLine(c, -10, -10, -5, 500)
	v.DrawRectangle(c, true, -9, 609, 5, 5)
	v.DrawRectangle(c, false, -10, 0, 5, 5)
	v.DrawText(c, 899, -99, "label")
	v.DrawText(c, 900, 0, "gone")

	want := []string{
		"line 0,0 10,10",
		"rect true -9,609 5x5",
		"text 899,-99 label",
	}
	if len(c.ops) != len(want) {
		t.Fatalf("expected %v, got %v", want, c.ops)
	}
	for i := range want {
		if c.ops[i] != want[i] {
			t.Fatalf("expected %q, got %q", want[i], c.ops[i])
		}
	}
}
