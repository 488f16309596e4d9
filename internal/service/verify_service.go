package service

import (
	"context"
	"fmt"
	"math"
	"strconv"

	"go.uber.org/zap"

	"observation-quiz/internal/domain"
	"observation-quiz/internal/svg"
	"observation-quiz/internal/validation"
)

// Violation describes one item whose image disagrees with its record.
type Violation struct {
	Index   int    // 1-based position in the dataset
	Image   string // image reference from the record
	Message string
}

func (v Violation) String() string {
	return fmt.Sprintf("item %d (%s): %s", v.Index, v.Image, v.Message)
}

// VerifyReport is the outcome of checking a written dataset against its images.
type VerifyReport struct {
	Items      int
	Violations []Violation
}

// OK reports whether no violations were found.
func (r *VerifyReport) OK() bool {
	return len(r.Violations) == 0
}

// VerifyService re-reads a written dataset and checks every image against the
// answer recorded for it.
type VerifyService struct {
	reader    domain.DatasetReader
	validator *validation.Validator
	logger    *zap.Logger
}

// NewVerifyService creates a new instance of VerifyService
func NewVerifyService(reader domain.DatasetReader, logger *zap.Logger) *VerifyService {
	return &VerifyService{reader: reader, validator: validation.NewValidator(), logger: logger}
}

// Verify checks, for every item, that the image holds exactly answer objects of
// the questioned shape, at least SafetyMargin distractors, and that every
// rotation respects its shape's bound. Storage and decoding failures of the
// dataset file itself are returned as errors; per-item problems are reported.
func (s *VerifyService) Verify(ctx context.Context) (*VerifyReport, error) {
	ds, err := s.reader.Read(ctx)
	if err != nil {
		return nil, err
	}
	report := &VerifyReport{Items: len(ds.Questions)}
	if ds.ID != domain.DatasetID {
		report.Violations = append(report.Violations, Violation{Message: fmt.Sprintf("dataset id %q, want %q", ds.ID, domain.DatasetID)})
	}

	seen := make(map[string]int, len(ds.Questions))
	for i, q := range ds.Questions {
		idx := i + 1
		add := func(format string, args ...any) {
			report.Violations = append(report.Violations, Violation{Index: idx, Image: q.Image, Message: fmt.Sprintf(format, args...)})
		}

		if prev, dup := seen[q.Image]; dup {
			add("image also used by item %d", prev)
		}
		seen[q.Image] = idx

		if errs := s.validator.ValidateQuizItem(q); len(errs) > 0 {
			add("invalid record: %v", errs)
			continue
		}
		target, ok := domain.TargetFromQuestion(q.Question)
		if !ok {
			add("question does not name a known shape")
			continue
		}
		answer, err := strconv.Atoi(q.Answer)
		if err != nil {
			add("answer %q is not a number", q.Answer)
			continue
		}

		data, err := s.reader.ReadImage(ctx, q.Image)
		if err != nil {
			add("image unreadable: %v", err)
			continue
		}
		objects, err := svg.ParseObjects(data)
		if err != nil {
			add("image unparsable: %v", err)
			continue
		}

		targets := 0
		for _, o := range objects {
			if o.Kind == target {
				targets++
			}
			if math.Abs(o.Rotation) > o.Kind.MaxRotation() {
				add("%s rotated %.2f, bound is %.0f", o.Kind, o.Rotation, o.Kind.MaxRotation())
			}
		}
		if targets != answer {
			add("image shows %d %s, answer says %d", targets, target, answer)
		}
		if len(objects)-targets < domain.SafetyMargin {
			add("only %d distractors, need at least %d", len(objects)-targets, domain.SafetyMargin)
		}
	}

	if report.OK() {
		s.logger.Info("Dataset verified", zap.Int("items", report.Items))
	} else {
		s.logger.Warn("Dataset verification found problems",
			zap.Int("items", report.Items),
			zap.Int("violations", len(report.Violations)),
		)
	}
	return report, nil
}
