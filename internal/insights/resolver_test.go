package insights

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGenerator returns canned completions in order, or a fixed error.
type fakeGenerator struct {
	outputs []string
	err     error
	calls   int
}

func (f *fakeGenerator) Complete(_ context.Context, _ CompletionRequest) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	if len(f.outputs) == 0 {
		return "", nil
	}
	out := f.outputs[0]
	if len(f.outputs) > 1 {
		f.outputs = f.outputs[1:]
	}
	return out, nil
}

func newTestResolver(gen Generator) *Resolver {
	return NewResolver(gen, zerolog.Nop())
}

func TestCleanLines(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{
			name: "strips list markers",
			in:   "- first insight\n* second insight\n3. third insight\n2) fourth insight",
			want: []string{"first insight", "second insight", "third insight", "fourth insight"},
		},
		{
			name: "drops blanks and duplicates preserving order",
			in:   "alpha\n\n  \nbeta\nalpha\ngamma\nbeta",
			want: []string{"alpha", "beta", "gamma"},
		},
		{
			name: "duplicates are case sensitive",
			in:   "Alpha\nalpha",
			want: []string{"Alpha", "alpha"},
		},
		{
			name: "marker-only lines vanish",
			in:   "1.\n- \nreal content",
			want: []string{"real content"},
		},
		{
			name: "empty input",
			in:   "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanLines(tt.in))
		})
	}
}

func TestPillarInsightsLive(t *testing.T) {
	gen := &fakeGenerator{outputs: []string{"- energy trending down\n- water stable\n- energy trending down"}}
	r := newTestResolver(gen)

	result := r.PillarInsights(context.Background(), PillarEnvironmental, map[string]any{"energy": 100})
	assert.True(t, result.Live)
	assert.Equal(t, []string{"energy trending down", "water stable"}, result.Insights)
}

func TestPillarInsightsFallbackOnError(t *testing.T) {
	r := newTestResolver(&fakeGenerator{err: errors.New("rate limited")})

	for _, pillar := range []Pillar{PillarEnvironmental, PillarSocial, PillarGovernance} {
		result := r.PillarInsights(context.Background(), pillar, nil)
		assert.False(t, result.Live)
		assert.Equal(t, FallbackInsights(pillar), result.Insights)
	}
}

func TestPillarInsightsFallbackOnEmptyOutput(t *testing.T) {
	r := newTestResolver(&fakeGenerator{outputs: []string{"  \n- \n"}})

	result := r.PillarInsights(context.Background(), PillarSocial, nil)
	assert.False(t, result.Live)
	assert.Equal(t, FallbackInsights(PillarSocial), result.Insights)
}

func TestPillarInsightsNotConfigured(t *testing.T) {
	gen := NewOpenAIGenerator("", "gpt-4o-mini")
	require.False(t, gen.Configured())

	r := newTestResolver(gen)
	result := r.PillarInsights(context.Background(), PillarGovernance, nil)
	assert.False(t, result.Live)
	assert.Equal(t, governanceFallback, result.Insights)
}

func TestFallbackInsightsReturnsCopy(t *testing.T) {
	a := FallbackInsights(PillarSocial)
	a[0] = "mutated"
	assert.NotEqual(t, a[0], FallbackInsights(PillarSocial)[0])
}

func TestMiniReportFromModel(t *testing.T) {
	gen := &fakeGenerator{outputs: []string{`{
		"baseline": "Baseline text.",
		"benchmark": "Benchmark text.",
		"performance_vs_benchmark": "On track.",
		"ai_recommendations": ["- do A", "2) do B", "", "do C", "do D", "do E", "do F", "do G"]
	}`}}
	r := newTestResolver(gen)

	report, live := r.MiniReport(context.Background(), MiniReportPayload{})
	assert.True(t, live)
	assert.Equal(t, "Baseline text.", report.Baseline)
	assert.Equal(t, "On track.", report.PerformanceVsBenchmark)
	// Markers stripped, empties dropped, capped at 6.
	assert.Equal(t, []string{"do A", "do B", "do C", "do D", "do E", "do F"}, report.AIRecommendations)
	assert.Equal(t, 1, gen.calls)
}

func TestMiniReportBraceScanRetry(t *testing.T) {
	gen := &fakeGenerator{outputs: []string{
		"sorry, here is prose with no JSON",
		`Here you go: {"baseline": "B", "benchmark": "X", "performance_vs_benchmark": "P", "ai_recommendations": ["r1"]} hope that helps`,
	}}
	r := newTestResolver(gen)

	report, live := r.MiniReport(context.Background(), MiniReportPayload{})
	assert.True(t, live)
	assert.Equal(t, "B", report.Baseline)
	assert.Equal(t, []string{"r1"}, report.AIRecommendations)
	assert.Equal(t, 2, gen.calls)
}

func TestMiniReportHeuristicFallback(t *testing.T) {
	r := newTestResolver(&fakeGenerator{err: errors.New("boom")})

	report, live := r.MiniReport(context.Background(), MiniReportPayload{
		Metrics:         map[string]any{"recyclingRate": 65.0},
		InvoiceBaseline: map[string]any{"total_energy_kwh": 125000.0},
	})
	assert.False(t, live)
	assert.Contains(t, report.Baseline, "total_energy_kwh")
	assert.Contains(t, report.Benchmark, "renewable share 20–35%")
	assert.Len(t, report.AIRecommendations, 4)
}

func TestMiniReportHeuristicBaselineKeyOrder(t *testing.T) {
	r := newTestResolver(&fakeGenerator{err: errors.New("boom")})

	payload := MiniReportPayload{
		InvoiceBaseline: map[string]any{
			"water_m3": 1, "total_energy_kwh": 2, "charges": 3,
			"water_cost": 4, "demand_kva": 5, "carbon": 6,
			"period": 7, "sites": 8, "tariff": 9, "meters": 10,
		},
	}

	report, _ := r.MiniReport(context.Background(), payload)
	assert.Contains(t, report.Baseline,
		"carbon, charges, demand_kva, meters, period, sites, tariff, total_energy_kwh",
		"key list is sorted and capped at eight entries")
	assert.NotContains(t, report.Baseline, "water_m3")
	assert.NotContains(t, report.Baseline, "water_cost")

	again, _ := r.MiniReport(context.Background(), payload)
	assert.Equal(t, report.Baseline, again.Baseline, "baseline is stable across calls")
}

func TestMiniReportHeuristicLowRenewableShare(t *testing.T) {
	r := newTestResolver(&fakeGenerator{err: errors.New("boom")})

	report, _ := r.MiniReport(context.Background(), MiniReportPayload{
		Metrics: map[string]any{"renewableEnergyShare": "15%"},
	})
	assert.Contains(t, report.PerformanceVsBenchmark, "15.0%")
	assert.Contains(t, report.PerformanceVsBenchmark, "below a 20% indicative peer threshold")
	require.Len(t, report.AIRecommendations, 5)
	assert.Contains(t, report.AIRecommendations[0], "Prioritise increasing renewable share")
}

func TestMiniReportHeuristicUnparseableShare(t *testing.T) {
	r := newTestResolver(&fakeGenerator{err: errors.New("boom")})

	report, _ := r.MiniReport(context.Background(), MiniReportPayload{
		Metrics: map[string]any{"renewable_energy": "unknown"},
	})
	// Parse failures are silent: the generic performance line stays.
	assert.Contains(t, report.PerformanceVsBenchmark, "cannot be precisely assessed")
	assert.Len(t, report.AIRecommendations, 4)
}

func TestStripCodeFence(t *testing.T) {
	fenced := "```json\n{\"a\": 1}\n```"
	assert.Equal(t, `{"a": 1}`, stripCodeFence(fenced))
	assert.Equal(t, "plain", stripCodeFence("plain"))
}
