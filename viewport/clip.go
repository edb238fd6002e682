package viewport

// Canvas is a pixel surface the view's drawing helpers write to.
type Canvas interface {
	DrawLine(x1, y1, x2, y2 int)
	DrawRectangle(filled bool, x, y, w, h int)
	DrawText(x, y int, text string)
}

// slack around the view within which shapes anchored off screen may still
// show part of themselves
const (
	rectSlack  = 10
	labelSlack = 100
)

// LineVisible reports whether the segment may cross the view. It is false
// only when both ends lie beyond the same edge.
func (v *Viewport) LineVisible(x1, y1, x2, y2 int) bool {
	return !((x1 < 0 && x2 < 0) || (y1 < 0 && y2 < 0) ||
		(x1 > v.width && x2 > v.width) || (y1 > v.height && y2 > v.height))
}

// RectVisible reports whether a rectangle anchored at (x, y) is worth
// drawing.
func (v *Viewport) RectVisible(x, y int) bool {
	return v.nearView(x, y, rectSlack)
}

// LabelVisible reports whether text anchored at (x, y) is worth drawing.
func (v *Viewport) LabelVisible(x, y int) bool {
	return v.nearView(x, y, labelSlack)
}

func (v *Viewport) nearView(x, y, slack int) bool {
	return x > -slack && x < v.width+slack && y > -slack && y < v.height+slack
}

// DrawLine draws the segment on c unless it is provably off screen.
func (v *Viewport) DrawLine(c Canvas, x1, y1, x2, y2 int) {
	if v.LineVisible(x1, y1, x2, y2) {
		c.DrawLine(x1, y1, x2, y2)
	}
}

// DrawRectangle draws a w x h rectangle at (x, y) when it is near the view.
func (v *Viewport) DrawRectangle(c Canvas, filled bool, x, y, w, h int) {
	if v.RectVisible(x, y) {
		c.DrawRectangle(filled, x, y, w, h)
	}
}

// DrawText draws text at (x, y) when it is near the view.
func (v *Viewport) DrawText(c Canvas, x, y int, text string) {
	if v.LabelVisible(x, y) {
		c.DrawText(x, y, text)
	}
}
