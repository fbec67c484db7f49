// Package scoring computes pillar and composite ESG scores from submitted
// metrics.
package scoring

import (
	"math"

	"github.com/greenbdg/africaesg/backend/internal/model"
)

// Calculate derives pillar scores from one metrics submission. The
// environmental score discounts 0.5 points per thousand tonnes of carbon
// and is capped at 100; social and governance rescale their raw 0-100
// inputs onto narrower bands. Overall is the plain mean of the three.
func Calculate(in *model.ESGInput) *model.ESGScores {
	eScore := math.Min(100, 100-(in.CarbonEmissionsTons/1000)*0.5)
	sScore := in.SocialScoreRaw*0.9 + 10
	gScore := in.GovernanceScoreRaw*0.85 + 15
	overall := (eScore + sScore + gScore) / 3

	return &model.ESGScores{
		CompanyName:  in.CompanyName,
		Period:       in.Period,
		EScore:       round1(eScore),
		SScore:       round1(sScore),
		GScore:       round1(gScore),
		OverallScore: round1(overall),
		Methodology: map[string]string{
			"e_score": "Based on carbon intensity and resource efficiency",
			"s_score": "Based on social metrics and stakeholder engagement",
			"g_score": "Based on governance structure and compliance",
		},
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
