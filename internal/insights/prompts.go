package insights

import (
	"encoding/json"
	"fmt"
)

// Pillar identifies one ESG dimension.
type Pillar string

const (
	PillarEnvironmental Pillar = "environmental"
	PillarSocial        Pillar = "social"
	PillarGovernance    Pillar = "governance"
)

type pillarSpec struct {
	label     string
	themes    string
	maxTokens int
}

var pillarSpecs = map[Pillar]pillarSpec{
	PillarEnvironmental: {
		label:     "Environmental (E)",
		themes:    "Cover energy, emissions, water, waste, efficiency, renewables and transition/cost risk.",
		maxTokens: 650,
	},
	PillarSocial: {
		label:     "Social (S)",
		themes:    "Cover themes: employee engagement, human capital, safety, supplier diversity, community investment.",
		maxTokens: 600,
	},
	PillarGovernance: {
		label:     "Governance (G)",
		themes:    "Cover ethics/compliance, audits, board oversight/independence, transparency and risk oversight.",
		maxTokens: 650,
	},
}

// pillarRequest builds the chat exchange asking for 4-7 newline-separated
// dashboard insights over the supplied metrics.
func pillarRequest(pillar Pillar, metrics map[string]any) CompletionRequest {
	spec := pillarSpecs[pillar]

	system := fmt.Sprintf(
		"You are an ESG and sustainability reporting assistant focused on the %s pillar. "+
			"Write short, board-level narrative insights for ESG dashboards and listed-company style reports. "+
			"Tone: professional, neutral, concise; African context where relevant.",
		spec.label,
	)

	metricsJSON := marshalIndent(metrics)
	user := fmt.Sprintf(
		"Below is a JSON object containing a company's %s metrics.\n\n"+
			"%s\n\n"+
			"Generate 4 to 7 concise insights for an ESG %s dashboard. %s\n\n"+
			"Requirements:\n"+
			"- Each insight must be 1–2 sentences.\n"+
			"- Data-linked where possible.\n"+
			"- Do NOT number and do NOT use bullet characters.\n"+
			"- Return only insights separated by newlines.",
		pillar, metricsJSON, titleWord(pillar), spec.themes,
	)

	return CompletionRequest{
		System:      system,
		User:        user,
		Temperature: 0.4,
		MaxTokens:   spec.maxTokens,
	}
}

// miniReportRequest builds the strict-JSON mini-report exchange.
func miniReportRequest(payload MiniReportPayload) CompletionRequest {
	system := "You are an ESG analyst producing a concise mini-report for an ESG dashboard. " +
		"Tone: board-level, neutral, specific, data-linked where possible, African context where relevant. " +
		"Output MUST be valid JSON only."

	user := fmt.Sprintf(
		"Using the following JSON payload (summary, KPI metrics, and invoice baseline if available), "+
			"produce an ESG mini report.\n\n"+
			"%s\n\n"+
			"Return ONLY valid JSON with EXACT keys:\n"+
			`{ "baseline": string, "benchmark": string, "performance_vs_benchmark": string, `+
			`"ai_recommendations": [string, string, string, string] }`+"\n"+
			"Rules:\n"+
			"- Keep each field concise.\n"+
			"- Recommendations must be action-oriented (4 items).\n"+
			"- No markdown, bullets, or extra keys.\n",
		marshalIndent(payload),
	)

	return CompletionRequest{
		System:      system,
		User:        user,
		Temperature: 0.35,
		MaxTokens:   700,
		JSONMode:    true,
	}
}

func marshalIndent(v any) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(b)
}

func titleWord(p Pillar) string {
	switch p {
	case PillarEnvironmental:
		return "Environmental"
	case PillarSocial:
		return "Social"
	case PillarGovernance:
		return "Governance"
	}
	return string(p)
}
