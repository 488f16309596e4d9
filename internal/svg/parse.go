package svg

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"

	"observation-quiz/internal/domain"
)

// ParsedObject is an object group read back from a rendered image.
type ParsedObject struct {
	Kind     domain.ShapeKind
	X        float64
	Y        float64
	Rotation float64
}

var transformRe = regexp.MustCompile(`^translate\((-?[0-9.]+) (-?[0-9.]+)\) rotate\((-?[0-9.]+)\)$`)

// ParseTransform reads the translate/rotate pair written by Object.
func ParseTransform(s string) (x, y, rotation float64, err error) {
	m := transformRe.FindStringSubmatch(s)
	if m == nil {
		return 0, 0, 0, fmt.Errorf("unrecognised transform %q", s)
	}
	vals := make([]float64, 3)
	for i := range vals {
		if vals[i], err = strconv.ParseFloat(m[i+1], 64); err != nil {
			return 0, 0, 0, fmt.Errorf("parse transform %q: %w", s, err)
		}
	}
	return vals[0], vals[1], vals[2], nil
}

// ParseObjects extracts every shape-tagged group from an image rendered by RenderScene.
func ParseObjects(data []byte) ([]ParsedObject, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	var objects []ParsedObject
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decode svg: %w", err)
		}
		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "g" {
			continue
		}
		var shapeName, transform string
		for _, a := range start.Attr {
			switch a.Name.Local {
			case ShapeAttr:
				shapeName = a.Value
			case "transform":
				transform = a.Value
			}
		}
		if shapeName == "" {
			continue
		}
		kind, err := domain.ParseShapeKind(shapeName)
		if err != nil {
			return nil, err
		}
		x, y, rot, err := ParseTransform(transform)
		if err != nil {
			return nil, err
		}
		objects = append(objects, ParsedObject{Kind: kind, X: x, Y: y, Rotation: rot})
	}
	return objects, nil
}
