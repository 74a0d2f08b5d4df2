package models

// ScoreInfo is the terminal rating of a solved game. TotalScore splits evenly into a
// question-quality component and a question-count component, both out of 50.
type ScoreInfo struct {
	TotalScore    float64 `json:"total_score"`
	QualityScore  float64 `json:"quality_score"`
	CountScore    float64 `json:"count_score"`
	Grade         string  `json:"grade"`
	QuestionCount int     `json:"question_count"`
	AvgQuality    float64 `json:"avg_quality"`
}
