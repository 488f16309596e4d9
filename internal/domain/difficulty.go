package domain

import "fmt"

// Difficulty is one of the three ordered tiers.
type Difficulty int

const (
	Easy Difficulty = iota + 1
	Medium
	Hard
)

// Difficulties lists the tiers in ascending order.
var Difficulties = []Difficulty{Easy, Medium, Hard}

// IntRange is an inclusive integer interval.
type IntRange struct {
	Min int
	Max int
}

// Contains reports whether v lies within the closed interval.
func (r IntRange) Contains(v int) bool {
	return v >= r.Min && v <= r.Max
}

// TierParams bounds how many target and total objects an item of a tier holds.
type TierParams struct {
	Target IntRange
	Total  IntRange
}

// SafetyMargin is the minimum number of distractors on every scene.
const SafetyMargin = 8

var tierParams = map[Difficulty]TierParams{
	Easy:   {Target: IntRange{4, 7}, Total: IntRange{16, 22}},
	Medium: {Target: IntRange{8, 12}, Total: IntRange{24, 30}},
	Hard:   {Target: IntRange{13, 18}, Total: IntRange{32, 40}},
}

var difficultyLabels = map[Difficulty]string{
	Easy:   "سهل",
	Medium: "متوسط",
	Hard:   "صعب",
}

// Params returns the target/total ranges for the tier.
func (d Difficulty) Params() TierParams {
	return tierParams[d]
}

// Label returns the Arabic tier label written to the dataset.
func (d Difficulty) Label() string {
	return difficultyLabels[d]
}

func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	}
	return fmt.Sprintf("difficulty(%d)", int(d))
}

// ParseDifficulty accepts either the English key ("easy") or the Arabic label.
func ParseDifficulty(s string) (Difficulty, error) {
	for _, d := range Difficulties {
		if s == d.String() || s == d.Label() {
			return d, nil
		}
	}
	return 0, NewInvalidInputError(fmt.Sprintf("unknown difficulty: %q", s))
}

// MarshalText writes the Arabic label.
func (d Difficulty) MarshalText() ([]byte, error) {
	label, ok := difficultyLabels[d]
	if !ok {
		return nil, NewInvalidInputError(fmt.Sprintf("unknown difficulty: %d", int(d)))
	}
	return []byte(label), nil
}

// UnmarshalText reads either form accepted by ParseDifficulty.
func (d *Difficulty) UnmarshalText(text []byte) error {
	parsed, err := ParseDifficulty(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// TotalRangeFor narrows the tier's total range for a realised target count so
// that at least SafetyMargin distractors are always present.
func (p TierParams) TotalRangeFor(targetCount int) IntRange {
	lo := p.Total.Min
	if targetCount+SafetyMargin > lo {
		lo = targetCount + SafetyMargin
	}
	return IntRange{Min: lo, Max: p.Total.Max}
}
