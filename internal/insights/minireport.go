package insights

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/greenbdg/africaesg/backend/internal/model"
)

// MiniReportPayload is the context handed to the mini-report generator.
type MiniReportPayload struct {
	CompanyName     string         `json:"company_name"`
	Period          string         `json:"period"`
	Summary         map[string]any `json:"summary"`
	Metrics         map[string]any `json:"metrics"`
	InvoiceBaseline map[string]any `json:"invoice_baseline"`
}

// MiniReport is the four-part narrative block shown on the dashboard.
type MiniReport struct {
	Baseline               string   `json:"baseline"`
	Benchmark              string   `json:"benchmark"`
	PerformanceVsBenchmark string   `json:"performance_vs_benchmark"`
	AIRecommendations      []string `json:"ai_recommendations"`
}

const maxRecommendations = 6

var braceRe = regexp.MustCompile(`(?s)\{.*\}`)

// renewable share may arrive under several spellings depending on which
// frontend widget submitted the metrics.
var renewableKeys = []string{
	"renewableEnergy", "renewable_energy", "renewableEnergyShare", "renewable_energy_share",
}

// MiniReport resolves the dashboard mini-report. It first asks the model in
// strict JSON mode, then retries free-form and scans for an embedded JSON
// object, and finally falls back to a heuristic report built from the
// payload itself. The bool reports whether the model produced the report.
func (r *Resolver) MiniReport(ctx context.Context, payload MiniReportPayload) (MiniReport, bool) {
	req := miniReportRequest(payload)

	data, err := r.completeJSON(ctx, req)
	if err != nil {
		req.JSONMode = false
		data, err = r.completeJSON(ctx, req)
	}
	if err != nil {
		if !errors.Is(err, ErrNotConfigured) {
			r.log.Warn().Err(err).Msg("model mini-report generation failed, serving heuristic report")
		}
		return heuristicMiniReport(payload), false
	}

	report := MiniReport{
		Baseline:               strings.TrimSpace(stringField(data, "baseline")),
		Benchmark:              strings.TrimSpace(stringField(data, "benchmark")),
		PerformanceVsBenchmark: strings.TrimSpace(stringField(data, "performance_vs_benchmark")),
	}
	if recs, ok := data["ai_recommendations"].([]any); ok {
		for _, rec := range recs {
			s := strings.TrimSpace(listMarkerRe.ReplaceAllString(fmt.Sprint(rec), ""))
			if s != "" {
				report.AIRecommendations = append(report.AIRecommendations, s)
			}
		}
	}
	if len(report.AIRecommendations) > maxRecommendations {
		report.AIRecommendations = report.AIRecommendations[:maxRecommendations]
	}
	return report, true
}

// completeJSON runs one completion and decodes the first JSON object found
// in the answer.
func (r *Resolver) completeJSON(ctx context.Context, req CompletionRequest) (map[string]any, error) {
	raw, err := r.gen.Complete(ctx, req)
	if err != nil {
		return nil, err
	}

	var data map[string]any
	if err := json.Unmarshal([]byte(raw), &data); err == nil {
		return data, nil
	}
	if m := braceRe.FindString(raw); m != "" {
		if err := json.Unmarshal([]byte(m), &data); err == nil {
			return data, nil
		}
	}
	return nil, fmt.Errorf("no JSON object in model output")
}

// heuristicMiniReport assembles a report from the payload alone. When a
// renewable-share metric is present and below the indicative 20%% peer
// threshold, the performance line and lead recommendation call it out.
func heuristicMiniReport(payload MiniReportPayload) MiniReport {
	invoiceKeys := make([]string, 0, len(payload.InvoiceBaseline))
	for k := range payload.InvoiceBaseline {
		invoiceKeys = append(invoiceKeys, k)
	}
	sort.Strings(invoiceKeys)
	if len(invoiceKeys) > 8 {
		invoiceKeys = invoiceKeys[:8]
	}
	keysNote := strings.Join(invoiceKeys, ", ")
	if keysNote == "" {
		keysNote = "none"
	}

	report := MiniReport{
		Baseline: "Baseline compiled from available ESG snapshot and invoice baseline. " +
			"Invoice baseline keys available: " + keysNote + ".",
		Benchmark: "Typical peer band (indicative): renewable share 20–35%, steady reductions in energy and water intensity over a 3–5 year horizon.",
		PerformanceVsBenchmark: "Performance vs benchmark cannot be precisely assessed without sector and revenue/production denominators, " +
			"but invoice-based energy/water baselines can be used to track trend and intensity once denominators are provided.",
		AIRecommendations: []string{
			"Confirm monthly baselines from invoices (energy kWh, water m³, charges) and lock the reporting boundary (sites/meters).",
			"Implement demand management and efficiency actions at peak-consumption sites (load shifting, HVAC optimisation, VSDs).",
			"Improve water efficiency through leak detection, metering, and reuse where feasible.",
			"Start a renewable pathway: on-site solar PV feasibility + green procurement options.",
		},
	}

	if share, ok := renewableShare(payload.Metrics); ok && share < 20 {
		report.PerformanceVsBenchmark = fmt.Sprintf(
			"Renewable share appears below a 20%% indicative peer threshold (current: %.1f%%).", share)
		report.AIRecommendations = append(
			[]string{"Prioritise increasing renewable share toward 20–25% through solar PV and/or wheeling where available."},
			report.AIRecommendations...,
		)
	}
	return report
}

// renewableShare finds the first renewable-share metric under any known key
// and coerces it to a percentage. Unparseable values are ignored.
func renewableShare(metrics map[string]any) (float64, bool) {
	for _, key := range renewableKeys {
		v, present := metrics[key]
		if !present {
			continue
		}
		if s, isStr := v.(string); isStr {
			v = strings.TrimSpace(strings.ReplaceAll(s, "%", ""))
		}
		return model.ParseNumber(v)
	}
	return 0, false
}

func stringField(data map[string]any, key string) string {
	if v, ok := data[key]; ok && v != nil {
		return fmt.Sprint(v)
	}
	return ""
}
