// Package evaluator scores one candidate hero for one side at one point
// in the draft (spec.md §4.C): a six-component blend of meta strength,
// counter potential, synergy/feasibility delta, deny value, flexibility
// and post-pick feasibility, weighted by how far into the draft the pick
// falls. Grounded on the teacher's matchmaking_service.go multi-factor
// comfort scoring, which blends several normalized sub-scores into one
// final number the same way.
package evaluator

import (
	"github.com/dom/draft-advisor/internal/domain"
	"github.com/dom/draft-advisor/internal/numeric"
	"github.com/dom/draft-advisor/internal/solver"
	"github.com/dom/draft-advisor/internal/store"
)

// Phase buckets the draft by how many picks the acting side already has.
type Phase string

const (
	PhaseEarly Phase = "early"
	PhaseMid   Phase = "mid"
	PhaseLate  Phase = "late"
)

type weights struct {
	meta, counter, synergy, deny, flex, feasibility float64
}

var phaseWeights = map[Phase]weights{
	PhaseEarly: {meta: 0.40, counter: 0.11, synergy: 0.06, deny: 0.14, flex: 0.15, feasibility: 0.14},
	PhaseMid:   {meta: 0.29, counter: 0.27, synergy: 0.18, deny: 0.12, flex: 0.09, feasibility: 0.05},
	PhaseLate:  {meta: 0.18, counter: 0.32, synergy: 0.23, deny: 0.09, flex: 0.01, feasibility: 0.17},
}

// DeterminePhase buckets next_pick_count = len(picks[side]) + 1 per
// spec.md §4.C.
func DeterminePhase(currentPickCount int) Phase {
	nextPickCount := currentPickCount + 1
	switch {
	case nextPickCount <= 2:
		return PhaseEarly
	case nextPickCount <= 4:
		return PhaseMid
	default:
		return PhaseLate
	}
}

// Components holds the six raw sub-scores, each already clamped to its
// natural range ([0,1] for feasibility is scaled to 100 before blending).
type Components struct {
	Meta        float64
	Counter     float64
	Synergy     float64
	Deny        float64
	Flex        float64
	Feasibility float64
}

// Result is the full evaluator output for one candidate.
type Result struct {
	Hero           string
	Side           domain.Side
	Score          float64
	TierScore      float64
	PredictedRoles []domain.Role
	Components     Components
	Reasons        []string
	Phase          Phase
	Feasible       bool
}

// Evaluate scores hero as a pick for side, given side's own picks and
// the opposing side's picks. There is no separate ban mode: the
// recommender scores a ban by evaluating the hero as the opponent's pick
// and layers its own role-fit bonus on top (spec.md §4.E), so Evaluate
// always computes the plain six-component pick-style score.
func Evaluate(s *store.Store, side domain.Side, ownPicks, enemyPicks []string, hero string) Result {
	profile, known := s.Get(hero)

	before := solver.Solve(ownPicks, s)
	after := solver.Solve(append(append([]string{}, ownPicks...), hero), s)

	predictedRoles := after.HeroRoleOptions[hero]
	if len(predictedRoles) == 0 && known {
		predictedRoles = profile.PossibleRoles
	}

	feasible := after.IsFeasible
	components := Components{}

	components.Meta = metaScore(predictedRoles, profile, known)
	components.Counter = counterScore(enemyPicks, profile, known)
	components.Synergy = synergyScore(before, after, feasible)
	components.Deny = denyScore(ownPicks, components.Meta, profile, known)
	components.Flex = flexScore(profile, known)
	components.Feasibility = after.FeasibilityScore * 100

	phase := DeterminePhase(len(ownPicks))
	score := blend(phase, components)

	tierScore := 0.0
	if known {
		tierScore = profile.BestTierScore
	}

	return Result{
		Hero:           hero,
		Side:           side,
		Score:          numeric.Round4(score),
		TierScore:      tierScore,
		PredictedRoles: predictedRoles,
		Components:     components,
		Reasons:        reasons(components),
		Phase:          phase,
		Feasible:       components.Feasibility > 0,
	}
}

func metaScore(predictedRoles []domain.Role, profile *domain.HeroProfile, known bool) float64 {
	if !known || profile == nil {
		return domain.DefaultRolePower * 100
	}
	if len(predictedRoles) == 0 {
		return profile.BaseMeta
	}
	best := -1.0
	for _, role := range predictedRoles {
		meta, ok := profile.RoleMeta[role]
		if !ok {
			meta = profile.BaseMeta
		}
		if meta > best {
			best = meta
		}
	}
	return best
}

func counterScore(enemyPicks []string, profile *domain.HeroProfile, known bool) float64 {
	if len(enemyPicks) == 0 {
		return 50
	}
	if !known || profile == nil {
		return 50
	}
	diffs := make([]float64, 0, len(enemyPicks))
	for _, enemy := range enemyPicks {
		d := profile.StrongAgainst[enemy] - profile.CounteredBy[enemy]
		diffs = append(diffs, d)
	}
	return numeric.Clamp100(50 + numeric.Mean(diffs)*100*0.60)
}

func synergyScore(before, after solver.Result, feasibleAfter bool) float64 {
	if !feasibleAfter {
		return 0
	}
	deltaOpen := float64(len(before.OpenRoles) - len(after.OpenRoles))
	if deltaOpen < 0 {
		deltaOpen = 0
	}
	deltaFeas := after.FeasibilityScore - before.FeasibilityScore
	return numeric.Clamp100(45 + 16*deltaOpen + 65*deltaFeas)
}

// denyScore is the candidate's own value as a pick for side: the mean of
// its strong_against value toward each hero side already picked (spec.md
// §4.C — strong_against is keyed on the candidate's profile, not each
// own pick's profile, since the map is not symmetric).
func denyScore(ownPicks []string, meta float64, profile *domain.HeroProfile, known bool) float64 {
	if len(ownPicks) == 0 || !known || profile == nil {
		return numeric.Clamp100(0.65 * meta)
	}
	vals := make([]float64, 0, len(ownPicks))
	for _, own := range ownPicks {
		vals = append(vals, profile.StrongAgainst[own]*100)
	}
	return numeric.Clamp100(numeric.Mean(vals))
}

// flexScore uses the candidate's full possible-role set, not the
// roles it was assignable to after solving (spec.md §4.C; the original
// draft_v2_engine.py reads len(profile.possibleRoles) directly). An
// unknown hero is treated as eligible for all five roles, matching the
// solver's own unknown-hero fallback.
func flexScore(profile *domain.HeroProfile, known bool) float64 {
	n := len(domain.AllRoles)
	if known && profile != nil {
		n = len(profile.PossibleRoles)
	}
	if n == 0 {
		return 0
	}
	return (float64(n-1) / 4.0) * 100
}

func blend(phase Phase, c Components) float64 {
	w := phaseWeights[phase]
	return w.meta*c.Meta + w.counter*c.Counter + w.synergy*c.Synergy +
		w.deny*c.Deny + w.flex*c.Flex + w.feasibility*c.Feasibility
}

// reasons produces up to three short human-readable explanations keyed
// on fixed thresholds, per spec.md §4.C.
func reasons(c Components) []string {
	var out []string
	if c.Counter >= 62 {
		out = append(out, "strong counter into the enemy composition")
	}
	if c.Synergy >= 62 {
		out = append(out, "opens up the team composition")
	}
	if c.Flex >= 45 {
		out = append(out, "flexible across multiple roles")
	}
	if len(out) == 0 {
		out = append(out, "stable meta pick")
	}
	if len(out) > 3 {
		out = out[:3]
	}
	return out
}
