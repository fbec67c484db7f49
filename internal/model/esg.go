package model

import "fmt"

// ESGInput is one submitted set of company sustainability metrics.
type ESGInput struct {
	CompanyName          string  `json:"company_name"`
	Period               string  `json:"period"`
	CarbonEmissionsTons  float64 `json:"carbon_emissions_tons"`
	EnergyConsumptionMWh float64 `json:"energy_consumption_mwh"`
	WaterUseM3           float64 `json:"water_use_m3"`
	WasteGeneratedTons   float64 `json:"waste_generated_tons"`
	FuelLitres           float64 `json:"fuel_litres"`
	SocialScoreRaw       float64 `json:"social_score_raw"`
	GovernanceScoreRaw   float64 `json:"governance_score_raw"`
}

// Validate rejects structurally invalid submissions at the boundary.
func (in *ESGInput) Validate() error {
	if in.CompanyName == "" {
		return fmt.Errorf("company_name is required")
	}
	if in.Period == "" {
		return fmt.Errorf("period is required")
	}
	nonNegative := map[string]float64{
		"carbon_emissions_tons":  in.CarbonEmissionsTons,
		"energy_consumption_mwh": in.EnergyConsumptionMWh,
		"water_use_m3":           in.WaterUseM3,
		"waste_generated_tons":   in.WasteGeneratedTons,
		"fuel_litres":            in.FuelLitres,
	}
	for name, v := range nonNegative {
		if v < 0 {
			return fmt.Errorf("%s must be non-negative", name)
		}
	}
	if in.SocialScoreRaw < 0 || in.SocialScoreRaw > 100 {
		return fmt.Errorf("social_score_raw must be between 0 and 100")
	}
	if in.GovernanceScoreRaw < 0 || in.GovernanceScoreRaw > 100 {
		return fmt.Errorf("governance_score_raw must be between 0 and 100")
	}
	return nil
}

// ESGScores are the computed pillar scores for one input.
type ESGScores struct {
	CompanyName  string            `json:"company_name"`
	Period       string            `json:"period"`
	EScore       float64           `json:"e_score"`
	SScore       float64           `json:"s_score"`
	GScore       float64           `json:"g_score"`
	OverallScore float64           `json:"overall_score"`
	Methodology  map[string]string `json:"methodology,omitempty"`
}

// ESGInsights is the narrative block returned alongside scores.
type ESGInsights struct {
	Overall       string   `json:"overall"`
	Environmental []string `json:"environmental"`
	Social        []string `json:"social"`
	Governance    []string `json:"governance"`
}
