package validation

import (
	"fmt"
	"path"
	"regexp"
	"strings"

	"observation-quiz/internal/domain"
)

// FieldError describes one invalid field of a record.
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects every FieldError found in a record.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	parts := make([]string, len(v))
	for i, e := range v {
		parts[i] = e.Error()
	}
	return strings.Join(parts, "; ")
}

var (
	answerPattern    = regexp.MustCompile(`^[1-9][0-9]*$`)
	imageNamePattern = regexp.MustCompile(`^observation-[0-9]{3,}\.svg$`)
)

// Validator checks dataset records for the shape the front end relies on.
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateQuizItem validates a single dataset record.
func (v *Validator) ValidateQuizItem(item domain.QuizItem) ValidationErrors {
	var errors ValidationErrors

	if strings.TrimSpace(item.Question) == "" {
		errors = append(errors, FieldError{"question", "is required"})
	}

	// the front end compares user input to answer as an exact string
	if !answerPattern.MatchString(item.Answer) {
		errors = append(errors, FieldError{"answer", fmt.Sprintf("%q is not a plain positive integer", item.Answer)})
	}

	if item.Difficulty.Label() == "" {
		errors = append(errors, FieldError{"difficulty", fmt.Sprintf("unknown tier %d", int(item.Difficulty))})
	}

	if strings.TrimSpace(item.Subtopic) == "" {
		errors = append(errors, FieldError{"subtopic", "is required"})
	}

	if !strings.HasPrefix(item.Image, "/") {
		errors = append(errors, FieldError{"image", fmt.Sprintf("%q is not root-relative", item.Image)})
	} else if !imageNamePattern.MatchString(path.Base(item.Image)) {
		errors = append(errors, FieldError{"image", fmt.Sprintf("%q does not name a generated image", item.Image)})
	}

	if strings.TrimSpace(item.ImageAlt) == "" {
		errors = append(errors, FieldError{"imageAlt", "is required"})
	}

	return errors
}
