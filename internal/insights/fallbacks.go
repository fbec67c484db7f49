package insights

// Static pillar commentary served whenever the model path is unavailable or
// returns nothing usable. The lists are curated, not generated.

var environmentalFallback = []string{
	"Invoice-based energy and water baselines provide a stronger monthly trend signal than point-in-time ESG snapshots.",
	"Where peak demand is elevated versus average consumption, demand management and load shifting can reduce cost exposure.",
	"Water usage and water cost should be tracked together to identify efficiency gains and tariff risk.",
	"Carbon exposure can be estimated from electricity consumption using a consistent emission factor until verified site factors are available.",
	"Renewable share improvements (PV, wheeling, procurement) reduce both cost volatility and emissions intensity over time.",
}

var socialFallback = []string{
	"Employee engagement indicators suggest stable workforce sentiment; strengthen feedback loops and manager enablement to sustain momentum.",
	"Supplier diversity signals progress, with opportunities to expand local supplier development and verification of diverse spend.",
	"Community programme activity is visible; link investment to outcomes (jobs, skills, learner support) to strengthen impact reporting.",
	"Formalise safety and wellbeing leading indicators to complement lagging incident metrics.",
	"Strengthen human rights screening and grievance channels across high-risk suppliers and sites.",
}

var governanceFallback = []string{
	"Governance controls appear stable with consistent assurance cycles; strengthen evidence trails to improve auditability of ESG KPIs.",
	"Board oversight structures support accountability; align board skills and committee mandates to material ESG risks and strategy.",
	"Transparency practices can be improved through clearer KPI definitions, controls and periodic disclosure cadence.",
	"Ethics and compliance monitoring should prioritize third-party risk and supplier adherence to codes of conduct.",
	"Risk coverage can be strengthened through formal risk registers, control testing and documented remediation tracking.",
}

// FallbackInsights returns a copy of the static list for the pillar, so
// callers can append or reorder without mutating the canonical text.
func FallbackInsights(pillar Pillar) []string {
	var src []string
	switch pillar {
	case PillarEnvironmental:
		src = environmentalFallback
	case PillarSocial:
		src = socialFallback
	case PillarGovernance:
		src = governanceFallback
	default:
		return nil
	}
	out := make([]string, len(src))
	copy(out, src)
	return out
}
