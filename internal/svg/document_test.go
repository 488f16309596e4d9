package svg

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"observation-quiz/internal/domain"
)

func testScene() *domain.Scene {
	return &domain.Scene{
		Index:  3,
		Target: domain.Heart,
		Width:  domain.CanvasWidth,
		Height: domain.CanvasHeight,
		Objects: []domain.PlacedObject{
			{Cell: 0, Position: domain.Point{X: 52, Y: 70}, Kind: domain.Heart, Color: "#F87171", Size: 30, JitterX: 1.5, JitterY: -2.25, Rotation: -12.5},
			{Cell: 5, Position: domain.Point{X: 300, Y: 200}, Kind: domain.Moon, Color: "#60A5FA", Size: 40, Rotation: 4},
		},
	}
}

func TestRenderScene(t *testing.T) {
	out, err := RenderScene(testScene())
	require.NoError(t, err)
	doc := string(out)

	assert.True(t, strings.HasPrefix(doc, `<?xml version="1.0"?>`))
	assert.Contains(t, doc, `<svg width="960.00" height="600.00"`)
	assert.Contains(t, doc, `viewBox="0.00 0.00 960.00 600.00"`)
	assert.Contains(t, doc, `xmlns="http://www.w3.org/2000/svg"`)
	assert.Contains(t, doc, `<linearGradient id="bg3" x1="0%" y1="0%" x2="100%" y2="100%">`)
	assert.Contains(t, doc, `<stop offset="100%" stop-color="#1D4ED8" stop-opacity="1.00"/>`)
	assert.Contains(t, doc, `<filter id="shadow3" x="-20%" y="-20%" width="140%" height="140%" >`)
	assert.Contains(t, doc, `<feDropShadow dx="0" dy="2" stdDeviation="1.8"`)
	assert.Contains(t, doc, `<rect x="0.00" y="0.00" width="960.00" height="600.00" fill="url(#bg3)" />`)
	assert.Contains(t, doc, `<rect x="24.00" y="24.00" width="912.00" height="552.00" rx="20.00" ry="20.00"`)
	assert.Contains(t, doc, `<g filter="url(#shadow3)" >`)
	assert.Contains(t, doc, `<g data-shape="heart" transform="translate(53.50 67.75) rotate(-12.50)" >`)
	assert.True(t, strings.HasSuffix(doc, "</g>\n</svg>\n"))

	again, err := RenderScene(testScene())
	require.NoError(t, err)
	assert.Equal(t, out, again)
}

func TestRenderScene_RoundTrip(t *testing.T) {
	out, err := RenderScene(testScene())
	require.NoError(t, err)

	objs, err := ParseObjects(out)
	require.NoError(t, err)
	require.Len(t, objs, 2)
	assert.Equal(t, ParsedObject{Kind: domain.Heart, X: 53.5, Y: 67.75, Rotation: -12.5}, objs[0])
	assert.Equal(t, ParsedObject{Kind: domain.Moon, X: 300, Y: 200, Rotation: 4}, objs[1])
}

func TestRenderScene_UnknownShape(t *testing.T) {
	s := testScene()
	s.Objects[1].Kind = domain.ShapeKind(77)
	_, err := RenderScene(s)
	require.Error(t, err)
	assert.Equal(t, domain.ErrUnknownShape, domain.CodeOf(err))
}

func TestParseTransform(t *testing.T) {
	tests := []struct {
		in      string
		x, y, r float64
		wantErr bool
	}{
		{"translate(10.00 20.50) rotate(-3.25)", 10, 20.5, -3.25, false},
		{"translate(1 2)", 0, 0, 0, true},
		{"scale(2)", 0, 0, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			x, y, r, err := ParseTransform(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, []float64{tt.x, tt.y, tt.r}, []float64{x, y, r})
		})
	}
}
