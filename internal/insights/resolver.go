package insights

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
)

// Resolver turns metric payloads into narrative insight lists. Every path
// returns usable text: model output when the generator succeeds, static
// fallback text otherwise.
type Resolver struct {
	gen Generator
	log zerolog.Logger
}

// NewResolver wires a resolver over the given generator.
func NewResolver(gen Generator, log zerolog.Logger) *Resolver {
	return &Resolver{gen: gen, log: log}
}

// PillarResult is the outcome of one pillar resolution. Live reports
// whether the insights came from the model rather than the static list.
type PillarResult struct {
	Insights []string
	Live     bool
}

// PillarInsights resolves commentary for one pillar. Generator failure and
// empty model output both degrade to the static fallback; neither is
// surfaced to the caller as an error.
func (r *Resolver) PillarInsights(ctx context.Context, pillar Pillar, metrics map[string]any) PillarResult {
	out, err := r.gen.Complete(ctx, pillarRequest(pillar, metrics))
	if err != nil {
		if !errors.Is(err, ErrNotConfigured) {
			r.log.Warn().Err(err).Str("pillar", string(pillar)).
				Msg("model insight generation failed, serving static insights")
		}
		return PillarResult{Insights: FallbackInsights(pillar)}
	}

	lines := CleanLines(out)
	if len(lines) == 0 {
		r.log.Warn().Str("pillar", string(pillar)).
			Msg("model returned empty insights, serving static insights")
		return PillarResult{Insights: FallbackInsights(pillar)}
	}
	return PillarResult{Insights: lines, Live: true}
}
