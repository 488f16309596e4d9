// Package scene places target and distractor shapes on a grid of candidate cells.
package scene

import (
	"fmt"
	"math/rand/v2"

	"observation-quiz/internal/domain"
	"observation-quiz/internal/util"
)

// Grid returns the candidate positions, row-major, evenly covering the canvas
// interior inside the fixed margins.
func Grid() []domain.Point {
	stepX := float64(domain.CanvasWidth-2*domain.GridMarginX) / float64(domain.GridColumns-1)
	stepY := float64(domain.CanvasHeight-2*domain.GridMarginY) / float64(domain.GridRows-1)
	points := make([]domain.Point, 0, domain.GridColumns*domain.GridRows)
	for r := 0; r < domain.GridRows; r++ {
		for c := 0; c < domain.GridColumns; c++ {
			points = append(points, domain.Point{
				X: domain.GridMarginX + float64(c)*stepX,
				Y: domain.GridMarginY + float64(r)*stepY,
			})
		}
	}
	return points
}

// Compose builds scene index with exactly targetCount objects of kind target and
// totalCount objects overall, each in its own grid cell. All randomness is drawn
// from r in a fixed order so equal seeds give equal scenes.
func Compose(index int, target domain.ShapeKind, targetCount, totalCount int, r *rand.Rand) (*domain.Scene, error) {
	if !target.Valid() {
		return nil, domain.NewUnknownShapeError(target)
	}
	grid := Grid()
	if targetCount < 0 || targetCount >= totalCount {
		return nil, domain.NewInvalidInputError(fmt.Sprintf("target count %d must be below total count %d", targetCount, totalCount))
	}
	if totalCount > len(grid) {
		return nil, domain.NewInvalidInputError(fmt.Sprintf("total count %d exceeds %d grid cells", totalCount, len(grid)))
	}

	cells, err := util.SampleIndices(r, len(grid), totalCount)
	if err != nil {
		return nil, domain.NewInternalError("sample grid cells", err)
	}
	targetSlots, err := util.SampleIndices(r, totalCount, targetCount)
	if err != nil {
		return nil, domain.NewInternalError("sample target slots", err)
	}
	isTarget := make(map[int]bool, targetCount)
	for _, i := range targetSlots {
		isTarget[i] = true
	}

	active := distractorKinds(target, r)

	objects := make([]domain.PlacedObject, 0, totalCount)
	for i, cell := range cells {
		kind := target
		if !isTarget[i] {
			kind = util.Choice(r, active)
		}
		maxRot := kind.MaxRotation()
		objects = append(objects, domain.PlacedObject{
			Cell:     cell,
			Position: grid[cell],
			Kind:     kind,
			Color:    util.Choice(r, domain.Palette),
			Size:     util.Uniform(r, domain.MinObjectSize, domain.MaxObjectSize),
			JitterX:  util.Uniform(r, -domain.MaxJitter, domain.MaxJitter),
			JitterY:  util.Uniform(r, -domain.MaxJitter, domain.MaxJitter),
			Rotation: util.Uniform(r, -maxRot, maxRot),
		})
	}

	return &domain.Scene{
		Index:   index,
		Target:  target,
		Width:   domain.CanvasWidth,
		Height:  domain.CanvasHeight,
		Objects: objects,
	}, nil
}

// distractorKinds picks the rotating subset of non-target shapes used for one scene.
func distractorKinds(target domain.ShapeKind, r *rand.Rand) []domain.ShapeKind {
	others := make([]domain.ShapeKind, 0, len(domain.ShapeKinds)-1)
	for _, k := range domain.ShapeKinds {
		if k != target {
			others = append(others, k)
		}
	}
	util.Shuffle(r, others)
	n := util.IntBetween(r, domain.MinDistractorKinds, domain.MaxDistractorKinds)
	return others[:n]
}
