package repository

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"observation-quiz/internal/domain"
)

func sampleDataset() *domain.Dataset {
	return domain.NewDataset([]domain.QuizItem{
		{
			Question:   domain.QuestionText(domain.Star),
			Answer:     "5",
			Difficulty: domain.Easy,
			Subtopic:   domain.Subtopic,
			Image:      "/observation-images/observation-001.svg",
			ImageAlt:   domain.ImageAltText(1),
		},
	})
}

func TestEncodeDataset_StableFormatting(t *testing.T) {
	data, err := EncodeDataset(sampleDataset())
	require.NoError(t, err)

	want := `{
  "id": "observation-power",
  "title": "قوة الملاحظة",
  "description": "200 سؤال بصري بصور متنوعة (نجوم، مثلثات، وجوه، قلوب، أسهم وغيرها) مع إجابات عدّ دقيقة.",
  "questions": [
    {
      "question": "انظر إلى الصورة جيدًا: كم عدد النجوم؟",
      "answer": "5",
      "difficulty": "سهل",
      "subtopic": "عدّ العناصر المتنوعة",
      "image": "/observation-images/observation-001.svg",
      "imageAlt": "صورة قوة الملاحظة رقم 1"
    }
  ]
}
`
	assert.Equal(t, want, string(data))
}

func TestDatasetFileAdapter_WriteAndRead(t *testing.T) {
	root := t.TempDir()
	ctx := context.Background()
	images := NewImageFileAdapter(filepath.Join(root, "public", "observation-images"))
	path := filepath.Join(root, "src", "data", "questions", "observation-power.json")
	adapter := NewDatasetFileAdapter(path, images, "/observation-images")

	require.NoError(t, adapter.Write(ctx, sampleDataset()))
	got, err := adapter.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, sampleDataset(), got)

	// no temp files left behind
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "observation-power.json", entries[0].Name())

	// rewrite replaces content
	ds := sampleDataset()
	ds.Questions[0].Answer = "6"
	require.NoError(t, adapter.Write(ctx, ds))
	got, err = adapter.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, "6", got.Questions[0].Answer)
}

func TestDatasetFileAdapter_ReadImage(t *testing.T) {
	root := t.TempDir()
	ctx := context.Background()
	images := NewImageFileAdapter(root)
	require.NoError(t, images.Save(ctx, "observation-001.svg", []byte("<svg/>")))
	_, err := images.Commit(ctx)
	require.NoError(t, err)
	adapter := NewDatasetFileAdapter(filepath.Join(root, "ds.json"), images, "/observation-images")

	data, err := adapter.ReadImage(ctx, "/observation-images/observation-001.svg")
	require.NoError(t, err)
	assert.Equal(t, "<svg/>", string(data))

	_, err = adapter.ReadImage(ctx, "/elsewhere/observation-001.svg")
	assert.Equal(t, domain.ErrInvalidInput, domain.CodeOf(err))
}

func TestDatasetFileAdapter_ReadErrors(t *testing.T) {
	root := t.TempDir()
	ctx := context.Background()
	path := filepath.Join(root, "ds.json")
	adapter := NewDatasetFileAdapter(path, NewImageFileAdapter(root), "/observation-images")

	_, err := adapter.Read(ctx)
	assert.Equal(t, domain.ErrStorage, domain.CodeOf(err))

	require.NoError(t, os.WriteFile(path, []byte(`{"questions": [{"difficulty": "impossible"}]}`), 0o644))
	_, err = adapter.Read(ctx)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "decode"))
}
