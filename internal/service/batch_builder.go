package service

import (
	"fmt"
	"math/rand/v2"
	"sort"
	"strconv"
	"strings"

	"observation-quiz/internal/cache"
	"observation-quiz/internal/config"
	"observation-quiz/internal/domain"
	"observation-quiz/internal/scene"
	"observation-quiz/internal/svg"
	"observation-quiz/internal/util"
)

// RenderedImage is one image waiting to be written.
type RenderedImage struct {
	Name string
	Data []byte
}

// Batch is a fully generated, not yet persisted run.
type Batch struct {
	Dataset      *domain.Dataset
	Images       []RenderedImage
	Scenes       []*domain.Scene
	Difficulties []domain.Difficulty
}

// DifficultySequence returns the tier of every item: exactly mix.Easy easy
// labels, mix.Medium medium and mix.Hard hard, shuffled with r.
func DifficultySequence(r *rand.Rand, mix config.DifficultyMix) []domain.Difficulty {
	seq := make([]domain.Difficulty, 0, mix.Total())
	for _, d := range domain.Difficulties {
		for i := 0; i < mix.Counts()[d]; i++ {
			seq = append(seq, d)
		}
	}
	util.Shuffle(r, seq)
	return seq
}

// TargetFor returns the shape counted in item index (1-based). Shapes rotate
// through the enumeration so every kind is used equally often.
func TargetFor(index int) domain.ShapeKind {
	return domain.ShapeKinds[(index-1)%len(domain.ShapeKinds)]
}

// BuildBatch generates every scene, image and record for gen. The random
// stream is consumed in a fixed order: difficulty shuffle first, then per item
// target count, total count and the scene itself.
func BuildBatch(gen config.GeneratorConfig, imageURLPrefix string) (*Batch, error) {
	r := util.NewRand(gen.Seed)
	difficulties := DifficultySequence(r, gen.DifficultyMix)
	if len(difficulties) < gen.ItemCount {
		return nil, domain.NewConsistencyError(fmt.Sprintf("difficulty sequence has %d labels for %d items", len(difficulties), gen.ItemCount))
	}

	b := &Batch{
		Images:       make([]RenderedImage, 0, gen.ItemCount),
		Scenes:       make([]*domain.Scene, 0, gen.ItemCount),
		Difficulties: make([]domain.Difficulty, 0, gen.ItemCount),
	}
	items := make([]domain.QuizItem, 0, gen.ItemCount)

	for i := 1; i <= gen.ItemCount; i++ {
		difficulty := difficulties[i-1]
		target := TargetFor(i)
		params := difficulty.Params()

		targetCount := util.IntBetween(r, params.Target.Min, params.Target.Max)
		totalRange := params.TotalRangeFor(targetCount)
		totalCount := util.IntBetween(r, totalRange.Min, totalRange.Max)

		sc, err := scene.Compose(i, target, targetCount, totalCount, r)
		if err != nil {
			return nil, fmt.Errorf("compose item %d: %w", i, err)
		}
		if err := checkScene(sc, targetCount, totalCount); err != nil {
			return nil, err
		}
		data, err := svg.RenderScene(sc)
		if err != nil {
			return nil, fmt.Errorf("render item %d: %w", i, err)
		}

		name := cache.ImageFileName(i)
		b.Images = append(b.Images, RenderedImage{Name: name, Data: data})
		b.Scenes = append(b.Scenes, sc)
		b.Difficulties = append(b.Difficulties, difficulty)
		items = append(items, domain.QuizItem{
			Question:   domain.QuestionText(target),
			Answer:     strconv.Itoa(targetCount),
			Difficulty: difficulty,
			Subtopic:   domain.Subtopic,
			Image:      cache.ImageURL(imageURLPrefix, name),
			ImageAlt:   domain.ImageAltText(i),
		})
	}

	b.Dataset = domain.NewDataset(items)
	if err := CheckDistribution(items, gen); err != nil {
		return nil, err
	}
	return b, nil
}

func checkScene(sc *domain.Scene, targetCount, totalCount int) error {
	if got := sc.CountKind(sc.Target); got != targetCount {
		return domain.NewConsistencyError(fmt.Sprintf("item %d: scene holds %d %s, want %d", sc.Index, got, sc.Target, targetCount))
	}
	if len(sc.Objects) != totalCount {
		return domain.NewConsistencyError(fmt.Sprintf("item %d: scene holds %d objects, want %d", sc.Index, len(sc.Objects), totalCount))
	}
	if totalCount-targetCount < domain.SafetyMargin {
		return domain.NewConsistencyError(fmt.Sprintf("item %d: only %d distractors", sc.Index, totalCount-targetCount))
	}
	return nil
}

// CheckDistribution verifies the realised batch: the item count, the exact
// per-tier multiplicities and the equal per-shape share. Any mismatch means the
// generator itself is wrong and the batch must not be written.
func CheckDistribution(items []domain.QuizItem, gen config.GeneratorConfig) error {
	var problems []string

	if len(items) != gen.ItemCount {
		problems = append(problems, fmt.Sprintf("expected %d questions, got %d", gen.ItemCount, len(items)))
	}

	diffCounts := make(map[domain.Difficulty]int)
	shapeCounts := make(map[domain.ShapeKind]int)
	for i, it := range items {
		diffCounts[it.Difficulty]++
		kind, ok := domain.TargetFromQuestion(it.Question)
		if !ok {
			problems = append(problems, fmt.Sprintf("question %d has no recognised target shape", i+1))
			continue
		}
		shapeCounts[kind]++
	}

	for d, want := range gen.DifficultyMix.Counts() {
		if diffCounts[d] != want {
			problems = append(problems, fmt.Sprintf("difficulty %s: got %d, want %d", d, diffCounts[d], want))
		}
	}
	for d, n := range diffCounts {
		if _, known := gen.DifficultyMix.Counts()[d]; !known {
			problems = append(problems, fmt.Sprintf("unexpected difficulty %d used %d times", int(d), n))
		}
	}

	perShape := gen.ItemCount / len(domain.ShapeKinds)
	for _, k := range domain.ShapeKinds {
		if shapeCounts[k] != perShape {
			problems = append(problems, fmt.Sprintf("shape %s: got %d, want %d", k, shapeCounts[k], perShape))
		}
	}

	if len(problems) > 0 {
		sort.Strings(problems)
		return domain.NewConsistencyError("batch distribution mismatch: " + strings.Join(problems, "; "))
	}
	return nil
}
