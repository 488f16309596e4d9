package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"observation-quiz/internal/config"
	"observation-quiz/internal/domain"
	"observation-quiz/internal/monitoring"
	"observation-quiz/internal/util"
)

// batchService implements the domain.BatchService interface.
type batchService struct {
	images  domain.ImageStore
	writer  domain.DatasetWriter
	metrics *monitoring.Metrics
	cfg     *config.Config
	logger  *zap.Logger
}

// NewBatchService creates a new instance of batchService. metrics may be nil.
func NewBatchService(
	images domain.ImageStore,
	writer domain.DatasetWriter,
	metrics *monitoring.Metrics,
	cfg *config.Config,
	logger *zap.Logger,
) domain.BatchService {
	return &batchService{
		images:  images,
		writer:  writer,
		metrics: metrics,
		cfg:     cfg,
		logger:  logger,
	}
}

// Generate builds the whole batch in memory and checks it before touching the
// previous output. Images are staged and committed together, then the dataset
// file is written last.
func (s *batchService) Generate(ctx context.Context) (summary *domain.GenerationSummary, err error) {
	start := time.Now()
	runID := util.NewULID()
	log := s.logger.With(zap.String("run_id", runID))
	log.Info("Starting observation quiz generation",
		zap.Uint64("seed", s.cfg.Generator.Seed),
		zap.Int("item_count", s.cfg.Generator.ItemCount),
	)

	if s.metrics != nil {
		defer func() {
			s.metrics.RunDuration.Set(time.Since(start).Seconds())
			if err == nil {
				s.metrics.LastRunSuccess.Set(1)
			} else {
				s.metrics.LastRunSuccess.Set(0)
			}
			if path := s.cfg.Metrics.Textfile; path != "" {
				if wErr := s.metrics.WriteTextfile(path); wErr != nil {
					log.Warn("Failed to export metrics", zap.Error(wErr))
				}
			}
		}()
	}

	batch, err := BuildBatch(s.cfg.Generator, s.cfg.Output.ImageURLPrefix)
	if err != nil {
		log.Error("Batch generation failed, nothing written", zap.Error(err))
		return nil, err
	}
	for i, sc := range batch.Scenes {
		log.Debug("Composed scene",
			zap.Int("index", sc.Index),
			zap.String("difficulty", batch.Difficulties[i].String()),
			zap.String("target", sc.Target.Name()),
			zap.String("answer", batch.Dataset.Questions[i].Answer),
			zap.Int("objects", len(sc.Objects)),
		)
	}

	if err := s.images.Discard(ctx); err != nil {
		log.Error("Failed to reset image staging area", zap.Error(err))
		return nil, fmt.Errorf("failed to reset image staging area: %w", err)
	}
	for _, img := range batch.Images {
		if err := s.images.Save(ctx, img.Name, img.Data); err != nil {
			log.Error("Failed to stage image, previous output left in place", zap.String("image", img.Name), zap.Error(err))
			if dErr := s.images.Discard(ctx); dErr != nil {
				log.Error("Failed to discard staged images", zap.Error(dErr))
			}
			return nil, fmt.Errorf("failed to write image %s: %w", img.Name, err)
		}
	}

	removed, err := s.images.Commit(ctx)
	if err != nil {
		log.Error("Failed to publish images", zap.Int("removed", removed), zap.Error(err))
		return nil, fmt.Errorf("failed to publish images: %w", err)
	}
	log.Info("Published images", zap.Int("images", len(batch.Images)), zap.Int("stale_removed", removed))

	if err := s.writer.Write(ctx, batch.Dataset); err != nil {
		log.Error("Failed to write dataset", zap.Error(err))
		return nil, fmt.Errorf("failed to write dataset: %w", err)
	}

	summary = summarize(runID, batch)
	if s.metrics != nil {
		s.metrics.ImagesRemoved.Add(float64(removed))
		for i, sc := range batch.Scenes {
			s.metrics.ObserveScene(batch.Difficulties[i], sc)
		}
	}

	diffFields := make([]zap.Field, 0, len(domain.Difficulties))
	for _, d := range domain.Difficulties {
		diffFields = append(diffFields, zap.Int(d.String(), summary.Difficulties[d]))
	}
	shapeFields := make([]zap.Field, 0, len(domain.ShapeKinds))
	for _, k := range domain.ShapeKinds {
		shapeFields = append(shapeFields, zap.Int(k.Name(), summary.Targets[k]))
	}
	log.Info("Observation quiz generation completed",
		zap.Int("images", len(batch.Images)),
		zap.Int("questions", summary.Items),
		zap.Int("objects", summary.Objects),
		zap.Dict("difficulty", diffFields...),
		zap.Dict("targets", shapeFields...),
		zap.Duration("elapsed", time.Since(start)),
	)
	return summary, nil
}

func summarize(runID string, b *Batch) *domain.GenerationSummary {
	sum := &domain.GenerationSummary{
		RunID:        runID,
		Items:        len(b.Dataset.Questions),
		Difficulties: make(map[domain.Difficulty]int),
		Targets:      make(map[domain.ShapeKind]int),
	}
	for i, sc := range b.Scenes {
		sum.Difficulties[b.Difficulties[i]]++
		sum.Targets[sc.Target]++
		sum.Objects += len(sc.Objects)
	}
	return sum
}
