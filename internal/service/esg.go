package service

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/greenbdg/africaesg/backend/internal/model"
	"github.com/greenbdg/africaesg/backend/internal/scoring"
)

func (s *Service) handleAnalyse(w http.ResponseWriter, r *http.Request) {
	var input model.ESGInput
	if err := decodeJSON(r, &input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := input.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	scores := scoring.Calculate(&input)

	result := model.ESGInsights{
		Overall: fmt.Sprintf(
			"Overall ESG performance for %s shows promising results with opportunities in environmental efficiency.",
			input.CompanyName),
		Environmental: []string{
			fmt.Sprintf("Carbon emissions of %v tons indicate need for a decarbonization strategy.", input.CarbonEmissionsTons),
			fmt.Sprintf("Energy consumption at %v MWh suggests efficiency opportunities.", input.EnergyConsumptionMWh),
			fmt.Sprintf("Water usage of %v m³ highlights potential for conservation measures.", input.WaterUseM3),
		},
		Social: []string{
			fmt.Sprintf("Social score of %.1f reflects solid employee and community engagement.", scores.SScore),
			"Consider expanding supplier diversity programs.",
			"Employee wellness initiatives could further boost social performance.",
		},
		Governance: []string{
			fmt.Sprintf("Governance score of %.1f indicates strong compliance framework.", scores.GScore),
			"Consider enhancing board diversity and transparency reporting.",
			"Risk management processes appear robust.",
		},
	}

	s.state.SetESGInput(toMap(&input))
	s.pushLive()

	writeJSON(w, http.StatusOK, map[string]any{
		"scores":   scores,
		"insights": result,
	})
}

func (s *Service) handleESGData(w http.ResponseWriter, r *http.Request) {
	data := demoDashboardData(s.nowISO())

	env, _ := data["environmentalMetrics"].(map[string]any)
	if env == nil {
		env = map[string]any{}
	}
	invoices := s.state.Invoices()
	rows := s.state.UploadedRows()
	env["uploadedInvoiceData"] = invoices
	env["invoiceCount"] = len(invoices)
	env["uploadedRows"] = rows
	env["uploadedRowsCount"] = len(rows)
	data["environmentalMetrics"] = env

	writeJSON(w, http.StatusOK, map[string]any{
		"mockData": data,
		"insights": []string{
			"Environmental performance baseline reflects current energy and water use, emissions, waste and fuel consumption derived from your latest ESG dataset.",
			"Comparable African industrial peers typically target steady reductions in water intensity and emissions over a 3–5 year horizon, with growing use of water recycling.",
			"Against this benchmark, your environmental profile shows clear opportunities to improve water efficiency, reduce carbon exposure and strengthen waste and fuel management.",
			"Prioritise high-impact efficiency projects at the most water-intensive sites to reduce both cost and environmental impact.",
			"Investigate key water streams for reduction, recycling or beneficiation opportunities that support circular economy outcomes.",
		},
		"uploaded_date": s.nowISO(),
	})
}

// demoDashboardData is the static dataset behind the demo dashboard view.
func demoDashboardData(nowISO string) map[string]any {
	return map[string]any{
		"summary": map[string]any{
			"company":      "AfricaESG Demo Corp",
			"reportPeriod": "2024-Q1",
			"overallScore": 72,
			"rating":       "B",
			"lastUpdated":  nowISO,
		},
		"metrics": map[string]any{
			"carbonEmissions":      18500.0,
			"energyConsumption":    1250.0,
			"renewableEnergy":      15.5,
			"waterUsage":           55000.0,
			"wasteGenerated":       180.0,
			"recyclingRate":        65.0,
			"fuelConsumption":      50000.0,
			"supplierDiversity":    20.0,
			"employeeSatisfaction": 78.0,
			"communityInvestment":  250000.0,
			"boardDiversity":       35.0,
			"ethicsCompliance":     90.0,
			"transparencyScore":    82.0,
		},
		"environmentalMetrics": map[string]any{
			"energyConsumption": "1,156,250 kWh",
			"renewableEnergy":   "0.0%",
			"carbonEmissions":   "18,500 t CO₂e",
			"monthlyAverage":    "0 kWh",
			"peakConsumption":   "0 kWh",
			"waterUsage":        "12,500 m³",
			"waterEfficiency":   "2.5 m³/unit",
		},
		"socialMetrics": map[string]any{
			"supplierDiversity":  20.0,
			"employeeEngagement": 78.0,
			"communityPrograms":  8.0,
		},
		"governanceMetrics": map[string]any{
			"corporateGovernance": "Strong",
			"iso9001Compliance":   "ISO 9001 Certified",
			"boardIndependence":   "60%",
			"ethicsViolations":    "0",
			"auditFrequency":      "Quarterly",
			"riskManagement":      "Comprehensive",
			"governanceScore":     80,
			"supplierCompliance":  85,
			"auditCompletion":     92,
			"transparencyScore":   82,
		},
	}
}

// toMap round-trips a struct through JSON into its wire-shaped map form.
func toMap(v any) map[string]any {
	raw, err := json.Marshal(v)
	if err != nil {
		return map[string]any{}
	}
	out := map[string]any{}
	_ = json.Unmarshal(raw, &out)
	return out
}
