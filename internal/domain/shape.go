package domain

import "fmt"

// ShapeKind identifies one of the decorative shapes that can be placed on a scene.
type ShapeKind int

const (
	Star ShapeKind = iota
	Triangle
	Square
	Circle
	Heart
	Smile
	Arrow
	Diamond
	Plus
	Moon
)

// ShapeKinds lists every shape in enumeration order. Target shapes are assigned
// round-robin from this slice, so its order is part of the dataset contract.
var ShapeKinds = []ShapeKind{Star, Triangle, Square, Circle, Heart, Smile, Arrow, Diamond, Plus, Moon}

var shapeNames = map[ShapeKind]string{
	Star:     "star",
	Triangle: "triangle",
	Square:   "square",
	Circle:   "circle",
	Heart:    "heart",
	Smile:    "smile",
	Arrow:    "arrow",
	Diamond:  "diamond",
	Plus:     "plus",
	Moon:     "moon",
}

// Plural display labels used inside question text.
var shapeLabels = map[ShapeKind]string{
	Star:     "النجوم",
	Triangle: "المثلثات",
	Square:   "المربعات",
	Circle:   "الدوائر",
	Heart:    "القلوب",
	Smile:    "الوجوه المبتسمة",
	Arrow:    "الأسهم",
	Diamond:  "المعينات",
	Plus:     "علامات الزائد",
	Moon:     "الأهلة",
}

// Name returns the stable machine name of the shape ("star", "moon", ...).
func (k ShapeKind) Name() string {
	if n, ok := shapeNames[k]; ok {
		return n
	}
	return fmt.Sprintf("shape(%d)", int(k))
}

// Label returns the plural Arabic label used in questions.
func (k ShapeKind) Label() string {
	return shapeLabels[k]
}

func (k ShapeKind) String() string {
	return k.Name()
}

// Valid reports whether k belongs to the closed enumeration.
func (k ShapeKind) Valid() bool {
	_, ok := shapeNames[k]
	return ok
}

// RotationSensitive reports whether the shape loses its identity when rotated
// noticeably (faces and crescents).
func (k ShapeKind) RotationSensitive() bool {
	return k == Smile || k == Moon
}

// MaxRotation returns the absolute rotation bound in degrees allowed for the shape.
func (k ShapeKind) MaxRotation() float64 {
	if k.RotationSensitive() {
		return NarrowRotation
	}
	return WideRotation
}

// ParseShapeKind maps a machine name back to its ShapeKind.
func ParseShapeKind(name string) (ShapeKind, error) {
	for k, n := range shapeNames {
		if n == name {
			return k, nil
		}
	}
	return 0, NewInvalidInputError(fmt.Sprintf("unknown shape name: %q", name))
}
