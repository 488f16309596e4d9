// Package svg renders shapes and scenes as SVG markup.
//
// All functions are pure: the same inputs always produce byte-identical output.
// Coordinates are printed with two decimals.
package svg

import (
	"fmt"
	"math"

	svgo "github.com/ajstarks/svgo/float"

	"observation-quiz/internal/domain"
)

const outline = `stroke="rgba(255,255,255,0.55)"`

const faceInk = "#1F2937"

// snap rounds v to the printed precision. Negative zero becomes zero.
func snap(v float64) float64 {
	r := math.Round(v*100) / 100
	if r == 0 {
		return 0
	}
	return r
}

// f formats a coordinate for hand-built path data.
func f(v float64) string {
	return fmt.Sprintf("%.2f", snap(v))
}

func attr(name, value string) string {
	return fmt.Sprintf(`%s="%s"`, name, value)
}

func coords(pts []domain.Point) (xs, ys []float64) {
	xs = make([]float64, len(pts))
	ys = make([]float64, len(pts))
	for i, p := range pts {
		xs[i], ys[i] = snap(p.X), snap(p.Y)
	}
	return xs, ys
}

// drawShape writes kind onto canvas, centered on the origin and scaled to size.
// panel is the background color used for cutouts (the crescent's occluding disc).
func drawShape(canvas *svgo.SVG, kind domain.ShapeKind, size float64, fill, panel string) error {
	fillAttr := attr("fill", fill)
	switch kind {
	case domain.Circle:
		canvas.Circle(0, 0, snap(size*0.5), fillAttr, outline, `stroke-width="1.4"`)
	case domain.Square:
		side := snap(size * 0.92)
		hs := snap(size * 0.46)
		rx := snap(size * 0.10)
		canvas.Roundrect(-hs, -hs, side, side, rx, rx, fillAttr, outline, `stroke-width="1.4"`)
	case domain.Triangle:
		xs, ys := coords(TrianglePoints(size))
		canvas.Polygon(xs, ys, fillAttr, outline, `stroke-width="1.4"`)
	case domain.Star:
		xs, ys := coords(StarPoints(size*0.55, size*0.24))
		canvas.Polygon(xs, ys, fillAttr, outline, `stroke-width="1.4"`)
	case domain.Diamond:
		xs, ys := coords(DiamondPoints(size))
		canvas.Polygon(xs, ys, fillAttr, outline, `stroke-width="1.4"`)
	case domain.Plus:
		long, thick := snap(size*0.95), snap(size*0.28)
		hl, ht := snap(size*0.475), snap(size*0.14)
		canvas.Roundrect(-hl, -ht, long, thick, ht, ht, fillAttr)
		canvas.Roundrect(-ht, -hl, thick, long, ht, ht, fillAttr)
	case domain.Arrow:
		xs, ys := coords(ArrowPoints(size))
		canvas.Polygon(xs, ys, fillAttr, outline, `stroke-width="1.2"`)
	case domain.Heart:
		canvas.Path(HeartPath(size), fillAttr, outline, `stroke-width="1.2"`)
	case domain.Moon:
		canvas.Circle(0, 0, snap(size*0.50), fillAttr)
		canvas.Circle(snap(size*0.20), snap(-size*0.02), snap(size*0.42), attr("fill", panel))
	case domain.Smile:
		drawSmile(canvas, size, fillAttr)
	default:
		return domain.NewUnknownShapeError(kind)
	}
	return nil
}

func drawSmile(canvas *svgo.SVG, size float64, fillAttr string) {
	eyeR := snap(size * 0.08)
	eyeDX := snap(size * 0.18)
	eyeDY := snap(-size * 0.12)
	mouthW := size * 0.38
	mouthY := size * 0.14
	ink := attr("fill", faceInk)

	canvas.Circle(0, 0, snap(size*0.50), fillAttr, outline, `stroke-width="1.4"`)
	canvas.Circle(-eyeDX, eyeDY, eyeR, ink)
	canvas.Circle(eyeDX, eyeDY, eyeR, ink)
	mouth := fmt.Sprintf("M %s %s Q 0 %s %s %s", f(-mouthW), f(mouthY), f(size*0.34), f(mouthW), f(mouthY))
	canvas.Path(mouth, `fill="none"`, attr("stroke", faceInk), `stroke-width="2.2"`, `stroke-linecap="round"`)
}

// StarPoints returns the ten vertices of a five-pointed star, alternating outer
// and inner radius every 36 degrees starting straight up.
func StarPoints(outerR, innerR float64) []domain.Point {
	pts := make([]domain.Point, 10)
	for i := range pts {
		angle := -math.Pi/2 + float64(i)*(math.Pi/5)
		r := outerR
		if i%2 == 1 {
			r = innerR
		}
		pts[i] = domain.Point{X: r * math.Cos(angle), Y: r * math.Sin(angle)}
	}
	return pts
}

// TrianglePoints returns an upward triangle whose centroid sits near the origin.
func TrianglePoints(size float64) []domain.Point {
	h := size * 0.96
	return []domain.Point{
		{X: 0, Y: -h * 0.58},
		{X: h * 0.52, Y: h * 0.40},
		{X: -h * 0.52, Y: h * 0.40},
	}
}

// DiamondPoints returns a square rotated 45 degrees, top vertex first.
func DiamondPoints(size float64) []domain.Point {
	half := size * 0.5
	return []domain.Point{{X: 0, Y: -half}, {X: half, Y: 0}, {X: 0, Y: half}, {X: -half, Y: 0}}
}

// ArrowPoints returns a right-pointing block arrow.
func ArrowPoints(size float64) []domain.Point {
	s := size
	return []domain.Point{
		{X: -0.50 * s, Y: -0.18 * s},
		{X: 0.08 * s, Y: -0.18 * s},
		{X: 0.08 * s, Y: -0.38 * s},
		{X: 0.55 * s, Y: 0},
		{X: 0.08 * s, Y: 0.38 * s},
		{X: 0.08 * s, Y: 0.18 * s},
		{X: -0.50 * s, Y: 0.18 * s},
	}
}

// HeartPath returns the closed outline of a heart as three cubic segments:
// bottom tip to left lobe, across the notch, and right lobe back to the tip.
func HeartPath(size float64) string {
	r := size * 0.24
	y := size * 0.08
	return fmt.Sprintf("M 0 %s C %s %s, %s %s, %s %s C %s %s, %s %s, %s %s C %s %s, %s %s, 0 %s Z",
		f(size*0.42),
		f(-size*0.55), f(size*0.05), f(-size*0.60), f(-size*0.35), f(-r), f(-y),
		f(-size*0.02), f(-size*0.42), f(size*0.02), f(-size*0.42), f(r), f(-y),
		f(size*0.60), f(-size*0.35), f(size*0.55), f(size*0.05), f(size*0.42),
	)
}
