package game

import (
	"github.com/myrjola/whodunit/internal/models"
	"math"
)

// Question-count scoring policy: up to efficientQuestionLimit questions cost nothing,
// each question beyond it costs linearDecayPenalty points, and each question beyond
// steepDecayThreshold costs steepDecayPenalty points, flooring at zero.
const (
	maxComponentScore      = 50.0
	efficientQuestionLimit = 10
	steepDecayThreshold    = 20
	linearDecayPenalty     = 2.5
	steepDecayPenalty      = 5.0
)

// Score rates a solved game out of 100 points. The average question quality scales into
// a 0-50 quality component and the question count maps onto a 0-50 efficiency component.
// The function is pure; it never consults the collaborators.
func Score(questionCount int, avgQuality float64) models.ScoreInfo {
	qualityScore := maxComponentScore * (avgQuality / 100)

	var countScore float64
	switch {
	case questionCount <= efficientQuestionLimit:
		countScore = maxComponentScore
	case questionCount <= steepDecayThreshold:
		countScore = maxComponentScore - float64(questionCount-efficientQuestionLimit)*linearDecayPenalty
	default:
		countScore = math.Max(0,
			maxComponentScore/2-float64(questionCount-steepDecayThreshold)*steepDecayPenalty)
	}

	totalScore := qualityScore + countScore

	var grade string
	switch {
	case totalScore >= 90:
		grade = "S"
	case totalScore >= 80:
		grade = "A"
	case totalScore >= 70:
		grade = "B"
	case totalScore >= 60:
		grade = "C"
	default:
		grade = "D"
	}

	return models.ScoreInfo{
		TotalScore:    round1(totalScore),
		QualityScore:  round1(qualityScore),
		CountScore:    round1(countScore),
		Grade:         grade,
		QuestionCount: questionCount,
		AvgQuality:    round1(avgQuality),
	}
}

// round1 rounds to one decimal place.
func round1(f float64) float64 {
	return math.Round(f*10) / 10
}
