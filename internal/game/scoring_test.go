package game

import (
	"github.com/stretchr/testify/require"
	"testing"
)

func TestScore(t *testing.T) {
	tests := []struct {
		name          string
		questionCount int
		avgQuality    float64
		wantQuality   float64
		wantCount     float64
		wantTotal     float64
		wantGrade     string
	}{
		{
			name:          "perfect efficient game",
			questionCount: 10,
			avgQuality:    100,
			wantQuality:   50.0,
			wantCount:     50.0,
			wantTotal:     100.0,
			wantGrade:     "S",
		},
		{
			name:          "linear decay reaches 25 at twenty questions",
			questionCount: 20,
			avgQuality:    80,
			wantQuality:   40.0,
			wantCount:     25.0,
			wantTotal:     65.0,
			wantGrade:     "C",
		},
		{
			name:          "count component floors at zero",
			questionCount: 25,
			avgQuality:    0,
			wantQuality:   0.0,
			wantCount:     0.0,
			wantTotal:     0.0,
			wantGrade:     "D",
		},
		{
			name:          "single question",
			questionCount: 1,
			avgQuality:    60,
			wantQuality:   30.0,
			wantCount:     50.0,
			wantTotal:     80.0,
			wantGrade:     "A",
		},
		{
			name:          "eleventh question starts the linear decay",
			questionCount: 11,
			avgQuality:    100,
			wantQuality:   50.0,
			wantCount:     47.5,
			wantTotal:     97.5,
			wantGrade:     "S",
		},
		{
			name:          "count beyond the floor stays at zero",
			questionCount: 40,
			avgQuality:    90,
			wantQuality:   45.0,
			wantCount:     0.0,
			wantTotal:     45.0,
			wantGrade:     "D",
		},
		{
			name:          "grade B boundary",
			questionCount: 10,
			avgQuality:    40,
			wantQuality:   20.0,
			wantCount:     50.0,
			wantTotal:     70.0,
			wantGrade:     "B",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Score(tt.questionCount, tt.avgQuality)
			require.InDelta(t, tt.wantQuality, got.QualityScore, 0.001)
			require.InDelta(t, tt.wantCount, got.CountScore, 0.001)
			require.InDelta(t, tt.wantTotal, got.TotalScore, 0.001)
			require.Equal(t, tt.wantGrade, got.Grade)
			require.Equal(t, tt.questionCount, got.QuestionCount)
		})
	}
}

func TestScoreMonotonicity(t *testing.T) {
	t.Run("count component never increases with more questions", func(t *testing.T) {
		prev := Score(1, 50).CountScore
		for count := 2; count <= 60; count++ {
			current := Score(count, 50).CountScore
			require.LessOrEqual(t, current, prev, "count %d", count)
			prev = current
		}
	})

	t.Run("quality component never decreases with better questions", func(t *testing.T) {
		prev := Score(15, 0).QualityScore
		for quality := 1; quality <= 100; quality++ {
			current := Score(15, float64(quality)).QualityScore
			require.GreaterOrEqual(t, current, prev, "quality %d", quality)
			prev = current
		}
	})
}
