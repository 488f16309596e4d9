package svg

import (
	"bytes"
	"fmt"

	svgo "github.com/ajstarks/svgo/float"

	"observation-quiz/internal/domain"
)

// Frame colors.
const (
	gradientFrom = "#0F172A"
	gradientTo   = "#1D4ED8"
	frameInset   = 24
	frameRadius  = 20
)

const dropShadow = `<feDropShadow dx="0" dy="2" stdDeviation="1.8" flood-color="rgba(0,0,0,0.36)" />`

// ShapeAttr is the attribute naming each object group's shape kind.
const ShapeAttr = "data-shape"

// drawObject writes a single placed object as a translated, rotated group.
func drawObject(canvas *svgo.SVG, o domain.PlacedObject) error {
	c := o.Center()
	canvas.Group(
		attr(ShapeAttr, o.Kind.Name()),
		attr("transform", fmt.Sprintf("translate(%s %s) rotate(%s)", f(c.X), f(c.Y), f(o.Rotation))),
	)
	if err := drawShape(canvas, o.Kind, o.Size, o.Color, domain.PanelColor); err != nil {
		return err
	}
	canvas.Gend()
	return nil
}

// RenderScene renders the complete image for s: gradient background, rounded
// inner frame, and every object inside one drop-shadow group. Definition ids are
// suffixed with the scene index so images can be inlined side by side.
func RenderScene(s *domain.Scene) ([]byte, error) {
	var buf bytes.Buffer
	canvas := svgo.New(&buf)
	w, h := float64(s.Width), float64(s.Height)
	gradientID := fmt.Sprintf("bg%d", s.Index)
	shadowID := fmt.Sprintf("shadow%d", s.Index)

	canvas.Startview(w, h, 0, 0, w, h)
	canvas.Def()
	canvas.LinearGradient(gradientID, 0, 0, 100, 100, []svgo.Offcolor{
		{Offset: 0, Color: gradientFrom, Opacity: 1},
		{Offset: 100, Color: gradientTo, Opacity: 1},
	})
	canvas.Filter(shadowID, `x="-20%"`, `y="-20%"`, `width="140%"`, `height="140%"`)
	fmt.Fprintln(canvas.Writer, dropShadow)
	canvas.Fend()
	canvas.DefEnd()

	canvas.Rect(0, 0, w, h, attr("fill", "url(#"+gradientID+")"))
	canvas.Roundrect(frameInset, frameInset, w-2*frameInset, h-2*frameInset, frameRadius, frameRadius,
		`fill="rgba(255,255,255,0.045)"`, `stroke="rgba(255,255,255,0.22)"`)
	canvas.Group(attr("filter", "url(#"+shadowID+")"))
	for _, o := range s.Objects {
		if err := drawObject(canvas, o); err != nil {
			return nil, fmt.Errorf("render object in cell %d of scene %d: %w", o.Cell, s.Index, err)
		}
	}
	canvas.Gend()
	canvas.End()
	return buf.Bytes(), nil
}
