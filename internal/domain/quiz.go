package domain

import "fmt"

// Fixed dataset text.
const (
	DatasetID          = "observation-power"
	DatasetTitle       = "قوة الملاحظة"
	DatasetDescription = "200 سؤال بصري بصور متنوعة (نجوم، مثلثات، وجوه، قلوب، أسهم وغيرها) مع إجابات عدّ دقيقة."
	Subtopic           = "عدّ العناصر المتنوعة"
)

// QuizItem is one counting question. Field order fixes the JSON key order.
type QuizItem struct {
	Question   string     `json:"question"`
	Answer     string     `json:"answer"`
	Difficulty Difficulty `json:"difficulty"`
	Subtopic   string     `json:"subtopic"`
	Image      string     `json:"image"`
	ImageAlt   string     `json:"imageAlt"`
}

// Dataset is the serialized output of a run.
type Dataset struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Questions   []QuizItem `json:"questions"`
}

// NewDataset wraps items with the fixed header.
func NewDataset(items []QuizItem) *Dataset {
	return &Dataset{
		ID:          DatasetID,
		Title:       DatasetTitle,
		Description: DatasetDescription,
		Questions:   items,
	}
}

// QuestionText builds the question for a target shape.
func QuestionText(kind ShapeKind) string {
	return fmt.Sprintf("انظر إلى الصورة جيدًا: كم عدد %s؟", kind.Label())
}

// ImageAltText builds the accessibility description for item index (1-based).
func ImageAltText(index int) string {
	return fmt.Sprintf("صورة قوة الملاحظة رقم %d", index)
}

// TargetFromQuestion recovers the target shape from a question built by QuestionText.
func TargetFromQuestion(question string) (ShapeKind, bool) {
	for _, k := range ShapeKinds {
		if QuestionText(k) == question {
			return k, true
		}
	}
	return 0, false
}
