package core

import "fmt"

// Difficulty is the level an interview question is pitched at.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// ParseDifficulty validates a difficulty string.
func ParseDifficulty(s string) (Difficulty, error) {
	switch Difficulty(s) {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return Difficulty(s), nil
	default:
		return "", fmt.Errorf("unknown difficulty %q", s)
	}
}

// DifficultyForSeniority maps a candidate's seniority to the starting
// difficulty of the session. Unknown seniorities start at medium.
func DifficultyForSeniority(seniority string) Difficulty {
	switch seniority {
	case SeniorityJunior:
		return DifficultyEasy
	case SenioritySenior:
		return DifficultyHard
	default:
		return DifficultyMedium
	}
}

// Easier returns the next difficulty one step down. Easy stays easy.
func (d Difficulty) Easier() Difficulty {
	switch d {
	case DifficultyHard:
		return DifficultyMedium
	case DifficultyMedium:
		return DifficultyEasy
	default:
		return DifficultyEasy
	}
}

// Harder returns the next difficulty one step up. Hard stays hard.
func (d Difficulty) Harder() Difficulty {
	switch d {
	case DifficultyEasy:
		return DifficultyMedium
	case DifficultyMedium:
		return DifficultyHard
	default:
		return DifficultyHard
	}
}

// Adjust applies a coach recommendation, moving at most one step.
func (d Difficulty) Adjust(rec Recommendation) Difficulty {
	switch rec {
	case RecommendEasier:
		return d.Easier()
	case RecommendHarder:
		return d.Harder()
	default:
		return d
	}
}

// Recommendation is the coach's advice on where the next question should sit
// relative to the current difficulty.
type Recommendation string

const (
	RecommendEasier Recommendation = "easier"
	RecommendSame   Recommendation = "same"
	RecommendHarder Recommendation = "harder"
)

// NormalizeRecommendation coerces arbitrary model output into a valid
// recommendation. Anything unrecognized means "same".
func NormalizeRecommendation(s string) Recommendation {
	switch Recommendation(s) {
	case RecommendEasier, RecommendSame, RecommendHarder:
		return Recommendation(s)
	default:
		return RecommendSame
	}
}

// Recognized seniority levels offered at session setup.
const (
	SeniorityJunior = "Junior"
	SeniorityMid    = "Mid"
	SenioritySenior = "Senior"
)

// Seniorities lists the selectable seniority levels in display order.
func Seniorities() []string {
	return []string{SeniorityJunior, SeniorityMid, SenioritySenior}
}
