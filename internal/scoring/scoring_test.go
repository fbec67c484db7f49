package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/greenbdg/africaesg/backend/internal/model"
)

func TestCalculate(t *testing.T) {
	scores := Calculate(&model.ESGInput{
		CompanyName:         "Acme",
		Period:              "2024-Q1",
		CarbonEmissionsTons: 18500,
		SocialScoreRaw:      70,
		GovernanceScoreRaw:  82,
	})

	// e = 100 - (18500/1000)*0.5 = 90.75 -> 90.8
	assert.Equal(t, 90.8, scores.EScore)
	// s = 70*0.9 + 10 = 73
	assert.Equal(t, 73.0, scores.SScore)
	// g = 82*0.85 + 15 = 84.7
	assert.Equal(t, 84.7, scores.GScore)
	// mean of the unrounded components, rounded once
	assert.Equal(t, 82.8, scores.OverallScore)

	assert.Equal(t, "Acme", scores.CompanyName)
	assert.Equal(t, "2024-Q1", scores.Period)
	assert.Contains(t, scores.Methodology, "e_score")
}

func TestCalculateEnvironmentalCap(t *testing.T) {
	scores := Calculate(&model.ESGInput{CompanyName: "Clean", Period: "2024"})
	assert.Equal(t, 100.0, scores.EScore)
}
