// Package recommender implements the assign and recommend operations
// (spec.md §4.E): assign wraps the role-feasibility solver directly;
// recommend derives the current sequence action, scores every legal
// candidate with the evaluator, and — on the pick branch — runs a
// shallow beam search with an enemy-best-response penalty so suggestions
// account for what the opponent can do next. Grounded on the teacher's
// matchmaking_service.go top-N candidate selection and stable-sort
// tie-breaking habits.
package recommender

import (
	"sort"

	"github.com/dom/draft-advisor/internal/domain"
	"github.com/dom/draft-advisor/internal/evaluator"
	"github.com/dom/draft-advisor/internal/numeric"
	"github.com/dom/draft-advisor/internal/sequence"
	"github.com/dom/draft-advisor/internal/solver"
	"github.com/dom/draft-advisor/internal/store"
)

// Params bounds the recommend operation's search, configurable via
// environment variables (spec.md §9) and defaulted by internal/config.
type Params struct {
	BeamWidth     int
	EnemyTopN     int
	PenaltyFactor float64
}

// DefaultParams matches spec.md §4.E's stated defaults.
var DefaultParams = Params{BeamWidth: 6, EnemyTopN: 4, PenaltyFactor: 0.25}

const banTopK = 12
const pickTopK = 6

// AssignResult is the output of the assign operation.
type AssignResult struct {
	Assignment       map[domain.Role]string
	IsFeasible       bool
	FeasibilityScore float64
	OpenRoles        []domain.Role
	EnumerationCount int
}

// Assign runs the solver for heroes on one side and reports the result
// shape spec.md §4.E's assign mode calls for.
func Assign(heroes []string, s *store.Store) AssignResult {
	result := solver.Solve(heroes, s)
	return AssignResult{
		Assignment:       result.BestAssignment,
		IsFeasible:       result.IsFeasible,
		FeasibilityScore: result.FeasibilityScore,
		OpenRoles:        result.OpenRoles,
		EnumerationCount: result.ValidAssignments,
	}
}

// Candidate is one ranked recommendation.
type Candidate struct {
	Hero             string
	Score            float64
	TierScore        float64
	PredictedRoles   []domain.Role
	Components       evaluator.Components
	Reasons          []string
	BaseScore        float64
	Phase            evaluator.Phase
	LookaheadPenalty float64
}

// Recommendation is the full recommend-operation output.
type Recommendation struct {
	Action      *sequence.Action
	AllyAssign  AssignResult
	EnemyAssign AssignResult
	Candidates  []Candidate
	Complete    bool
}

// Recommend derives the current action from state and, unless the
// script is complete, scores every legal candidate hero and returns the
// top suggestions for that action. allHeroes is the full catalogue of
// hero names to consider (spec.md's profile_store.keys).
func Recommend(state domain.DraftState, s *store.Store, allHeroes []string, params Params) Recommendation {
	ally := Assign(state.Picks[domain.SideAlly], s)
	enemy := Assign(state.Picks[domain.SideEnemy], s)

	action := sequence.CurrentAction(state)
	if action == nil {
		return Recommendation{AllyAssign: ally, EnemyAssign: enemy, Complete: true}
	}

	legal := sequence.LegalCandidates(allHeroes, state)

	var candidates []Candidate
	if action.Type == domain.ActionTypeBan {
		candidates = recommendBans(state, s, legal, action.Side)
	} else {
		candidates = recommendPicks(state, s, legal, action.Side, params)
	}

	return Recommendation{
		Action:      action,
		AllyAssign:  ally,
		EnemyAssign: enemy,
		Candidates:  candidates,
	}
}

// recommendBans scores each candidate as if the opposing side picked it
// (to measure threat), adds a role-fit bonus toward the opponent's open
// roles, and returns the top 12.
func recommendBans(state domain.DraftState, s *store.Store, legal []string, banningSide domain.Side) []Candidate {
	opponent := banningSide.Opponent()
	opponentAssign := solver.Solve(state.Picks[opponent], s)

	out := make([]Candidate, 0, len(legal))
	for _, hero := range legal {
		eval := evaluator.Evaluate(s, opponent, state.Picks[opponent], state.Picks[banningSide], hero)
		if !eval.Feasible {
			continue
		}
		bonus := roleFitBonus(eval.PredictedRoles, opponentAssign.OpenRoles)
		out = append(out, toCandidate(eval, eval.Score+bonus))
	}

	sortByScore(out)
	return topK(out, banTopK)
}

func roleFitBonus(predictedRoles, enemyOpenRoles []domain.Role) float64 {
	openSet := make(map[domain.Role]bool, len(enemyOpenRoles))
	for _, r := range enemyOpenRoles {
		openSet[r] = true
	}
	overlap := 0
	for _, r := range predictedRoles {
		if openSet[r] {
			overlap++
		}
	}
	raw := float64(overlap) / float64(len(domain.AllRoles)) * 15
	return numeric.ClampN(raw, 15)
}

// recommendPicks sorts legal candidates by (best_tier_score, base_score),
// takes the top beam_width, and for each simulates applying the pick; if
// the enemy picks next, it penalizes the candidate by the enemy's mean
// best-response score.
func recommendPicks(state domain.DraftState, s *store.Store, legal []string, pickingSide domain.Side, params Params) []Candidate {
	opponent := pickingSide.Opponent()

	base := make([]Candidate, 0, len(legal))
	for _, hero := range legal {
		eval := evaluator.Evaluate(s, pickingSide, state.Picks[pickingSide], state.Picks[opponent], hero)
		if !eval.Feasible {
			continue
		}
		base = append(base, toCandidate(eval, eval.Score))
	}

	sort.SliceStable(base, func(i, j int) bool {
		if base[i].TierScore != base[j].TierScore {
			return base[i].TierScore > base[j].TierScore
		}
		return base[i].BaseScore > base[j].BaseScore
	})
	beam := topK(base, params.BeamWidth)

	for i := range beam {
		next := sequence.Apply(state, beam[i].Hero)
		nextAction := sequence.CurrentAction(next)
		if nextAction == nil || nextAction.Side != opponent || nextAction.Type != domain.ActionTypePick {
			beam[i].Score = beam[i].BaseScore
			continue
		}

		responseMean := enemyBestResponseMean(next, s, legal, opponent, pickingSide, params.EnemyTopN)
		penalty := params.PenaltyFactor * responseMean
		beam[i].LookaheadPenalty = numeric.Round4(penalty)
		beam[i].Score = numeric.Round4(beam[i].BaseScore - penalty)
	}

	sort.SliceStable(beam, func(i, j int) bool {
		if beam[i].TierScore != beam[j].TierScore {
			return beam[i].TierScore > beam[j].TierScore
		}
		return beam[i].Score > beam[j].Score
	})
	return topK(beam, pickTopK)
}

func enemyBestResponseMean(state domain.DraftState, s *store.Store, allHeroes []string, enemySide, opposingSide domain.Side, topN int) float64 {
	legal := sequence.LegalCandidates(allHeroes, state)
	scores := make([]float64, 0, len(legal))
	for _, hero := range legal {
		eval := evaluator.Evaluate(s, enemySide, state.Picks[enemySide], state.Picks[opposingSide], hero)
		if !eval.Feasible {
			continue
		}
		scores = append(scores, eval.Score)
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(scores)))
	if len(scores) > topN {
		scores = scores[:topN]
	}
	return numeric.Mean(scores)
}

func toCandidate(eval evaluator.Result, score float64) Candidate {
	return Candidate{
		Hero:           eval.Hero,
		Score:          numeric.Round4(score),
		TierScore:      eval.TierScore,
		PredictedRoles: eval.PredictedRoles,
		Components:     eval.Components,
		Reasons:        eval.Reasons,
		BaseScore:      eval.Score,
		Phase:          eval.Phase,
	}
}

func sortByScore(candidates []Candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].TierScore != candidates[j].TierScore {
			return candidates[i].TierScore > candidates[j].TierScore
		}
		return candidates[i].Score > candidates[j].Score
	})
}

func topK(candidates []Candidate, k int) []Candidate {
	if len(candidates) > k {
		return candidates[:k]
	}
	return candidates
}
