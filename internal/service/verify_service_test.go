package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"observation-quiz/internal/domain"
	"observation-quiz/internal/scene"
	"observation-quiz/internal/svg"
)

func TestVerifyService_GeneratedDatasetPasses(t *testing.T) {
	ctx := context.Background()
	out := newFileOutput(t, t.TempDir())
	_, err := NewBatchService(out.images, out.dataset, nil, out.cfg, zaptest.NewLogger(t)).Generate(ctx)
	require.NoError(t, err)

	report, err := NewVerifyService(out.dataset, zaptest.NewLogger(t)).Verify(ctx)
	require.NoError(t, err)
	assert.Equal(t, 200, report.Items)
	assert.True(t, report.OK(), "%v", report.Violations)
}

func TestVerifyService_DetectsWrongAnswer(t *testing.T) {
	ctx := context.Background()
	out := newFileOutput(t, t.TempDir())
	_, err := NewBatchService(out.images, out.dataset, nil, out.cfg, zaptest.NewLogger(t)).Generate(ctx)
	require.NoError(t, err)

	ds, err := out.dataset.Read(ctx)
	require.NoError(t, err)
	ds.Questions[4].Answer = "99"
	require.NoError(t, out.dataset.Write(ctx, ds))

	report, err := NewVerifyService(out.dataset, zaptest.NewLogger(t)).Verify(ctx)
	require.NoError(t, err)
	require.Len(t, report.Violations, 1)
	assert.Equal(t, 5, report.Violations[0].Index)
	assert.Contains(t, report.Violations[0].Message, "answer says 99")
}

// handScene builds a scene with targets hearts among ten squares.
func handScene(t *testing.T, targets int, smileRotation float64) []byte {
	t.Helper()
	grid := scene.Grid()
	s := &domain.Scene{Index: 1, Target: domain.Heart, Width: domain.CanvasWidth, Height: domain.CanvasHeight}
	for i := 0; i < targets; i++ {
		s.Objects = append(s.Objects, domain.PlacedObject{Cell: i, Position: grid[i], Kind: domain.Heart, Color: domain.Palette[0], Size: 30})
	}
	for i := 0; i < 10; i++ {
		c := targets + i
		s.Objects = append(s.Objects, domain.PlacedObject{Cell: c, Position: grid[c], Kind: domain.Square, Color: domain.Palette[1], Size: 30, Rotation: -27})
	}
	c := targets + 10
	s.Objects = append(s.Objects, domain.PlacedObject{Cell: c, Position: grid[c], Kind: domain.Smile, Color: domain.Palette[2], Size: 30, Rotation: smileRotation})
	data, err := svg.RenderScene(s)
	require.NoError(t, err)
	return data
}

func TestVerifyService_ItemChecks(t *testing.T) {
	item := func(answer, image string) domain.QuizItem {
		return domain.QuizItem{
			Question:   domain.QuestionText(domain.Heart),
			Answer:     answer,
			Difficulty: domain.Easy,
			Subtopic:   domain.Subtopic,
			Image:      image,
			ImageAlt:   domain.ImageAltText(1),
		}
	}

	tests := []struct {
		name    string
		items   []domain.QuizItem
		images  map[string][]byte
		wantMsg []string
	}{
		{
			name:   "consistent",
			items:  []domain.QuizItem{item("4", "/i/observation-001.svg")},
			images: map[string][]byte{"/i/observation-001.svg": handScene(t, 4, 5)},
		},
		{
			name:    "smile rotated past narrow bound",
			items:   []domain.QuizItem{item("4", "/i/observation-001.svg")},
			images:  map[string][]byte{"/i/observation-001.svg": handScene(t, 4, -20)},
			wantMsg: []string{"smile rotated -20.00, bound is 8"},
		},
		{
			name:    "count mismatch",
			items:   []domain.QuizItem{item("5", "/i/observation-001.svg")},
			images:  map[string][]byte{"/i/observation-001.svg": handScene(t, 4, 0)},
			wantMsg: []string{"image shows 4 heart, answer says 5"},
		},
		{
			name:    "missing image",
			items:   []domain.QuizItem{item("4", "/i/observation-404.svg")},
			images:  map[string][]byte{},
			wantMsg: []string{"image unreadable"},
		},
		{
			name:    "non numeric answer",
			items:   []domain.QuizItem{item("four", "/i/observation-001.svg")},
			images:  map[string][]byte{"/i/observation-001.svg": handScene(t, 4, 0)},
			wantMsg: []string{`invalid record: answer: "four" is not a plain positive integer`},
		},
		{
			name: "duplicate image",
			items: []domain.QuizItem{
				item("4", "/i/observation-001.svg"),
				item("4", "/i/observation-001.svg"),
			},
			images:  map[string][]byte{"/i/observation-001.svg": handScene(t, 4, 0)},
			wantMsg: []string{"image also used by item 1"},
		},
		{
			name:    "unparsable image",
			items:   []domain.QuizItem{item("4", "/i/observation-001.svg")},
			images:  map[string][]byte{"/i/observation-001.svg": []byte(`<svg><g data-shape="hexagon" transform="translate(1 2) rotate(0)"></g></svg>`)},
			wantMsg: []string{"image unparsable"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader := &memoryDatasetReader{ds: domain.NewDataset(tt.items), images: tt.images}
			report, err := NewVerifyService(reader, zaptest.NewLogger(t)).Verify(context.Background())
			require.NoError(t, err)
			require.Len(t, report.Violations, len(tt.wantMsg), "%v", report.Violations)
			for i, msg := range tt.wantMsg {
				assert.Contains(t, report.Violations[i].Message, msg)
			}
		})
	}
}

func TestVerifyService_TooFewDistractors(t *testing.T) {
	grid := scene.Grid()
	s := &domain.Scene{Index: 1, Target: domain.Star, Width: domain.CanvasWidth, Height: domain.CanvasHeight}
	for i := 0; i < 6; i++ {
		kind := domain.Star
		if i >= 4 {
			kind = domain.Circle
		}
		s.Objects = append(s.Objects, domain.PlacedObject{Cell: i, Position: grid[i], Kind: kind, Color: domain.Palette[0], Size: 30})
	}
	data, err := svg.RenderScene(s)
	require.NoError(t, err)

	reader := &memoryDatasetReader{
		ds: domain.NewDataset([]domain.QuizItem{{
			Question:   domain.QuestionText(domain.Star),
			Answer:     "4",
			Difficulty: domain.Easy,
			Subtopic:   domain.Subtopic,
			Image:      "/i/observation-002.svg",
			ImageAlt:   domain.ImageAltText(1),
		}}),
		images: map[string][]byte{"/i/observation-002.svg": data},
	}
	report, err := NewVerifyService(reader, zaptest.NewLogger(t)).Verify(context.Background())
	require.NoError(t, err)
	require.Len(t, report.Violations, 1)
	assert.Contains(t, report.Violations[0].Message, "only 2 distractors")
	assert.Equal(t, "item 1 (/i/observation-002.svg): only 2 distractors, need at least 8", report.Violations[0].String())
}
