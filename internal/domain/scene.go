package domain

// Fixed canvas and placement parameters.
const (
	CanvasWidth  = 960
	CanvasHeight = 600
	PanelColor   = "#0B1A34"

	GridMarginX = 52
	GridMarginY = 70
	GridColumns = 12
	GridRows    = 8

	MinObjectSize = 28.0
	MaxObjectSize = 42.0
	MaxJitter     = 8.0

	WideRotation   = 28.0
	NarrowRotation = 8.0

	MinDistractorKinds = 3
	MaxDistractorKinds = 6
)

// Palette holds the fill colors objects are drawn in.
var Palette = []string{
	"#60A5FA", // blue
	"#F87171", // red
	"#34D399", // green
	"#FBBF24", // yellow
	"#A78BFA", // purple
	"#22D3EE", // cyan
	"#FB7185", // rose
	"#F97316", // orange
	"#4ADE80", // lime
	"#C084FC", // violet
}

// Point is a position on the logical canvas.
type Point struct {
	X float64
	Y float64
}

// PlacedObject is one shape instance on a scene.
type PlacedObject struct {
	Cell     int // grid cell index, unique within a scene
	Position Point
	Kind     ShapeKind
	Color    string
	Size     float64
	JitterX  float64
	JitterY  float64
	Rotation float64 // degrees
}

// Center returns the jittered drawing position.
func (o PlacedObject) Center() Point {
	return Point{X: o.Position.X + o.JitterX, Y: o.Position.Y + o.JitterY}
}

// Scene is the full set of objects composing one item's image.
type Scene struct {
	Index   int
	Target  ShapeKind
	Width   int
	Height  int
	Objects []PlacedObject
}

// CountKind returns how many objects on the scene are of the given kind.
func (s *Scene) CountKind(kind ShapeKind) int {
	n := 0
	for _, o := range s.Objects {
		if o.Kind == kind {
			n++
		}
	}
	return n
}
