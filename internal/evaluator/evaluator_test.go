package evaluator_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dom/draft-advisor/internal/domain"
	"github.com/dom/draft-advisor/internal/evaluator"
	"github.com/dom/draft-advisor/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	dir := t.TempDir()

	rolePool := `{
		"roles": ["top", "jungle", "mid", "carry", "support"],
		"heroes": {
			"Ace":   {"possibleRoles": ["mid"]},
			"Bolt":  {"possibleRoles": ["top"]},
			"Cinder": {"possibleRoles": ["jungle"]},
			"Dart":  {"possibleRoles": ["carry"]},
			"Echo":  {"possibleRoles": ["support"]},
			"Flex1": {"possibleRoles": ["mid", "top"]}
		}
	}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "hero_role_pool.json"), []byte(rolePool), 0o644))

	tierList := `{"roles": {
		"mid": {"heroDetails": [
			{"hero":"Ace","tier":"S","stats":{"pickWinCount":60,"pickCount":100,"banCount":20,"winRate":0.55},
				"counters":{"strongAgainst":[{"hero":"Bolt","winRate":0.75,"encounters":20}],"counteredBy":[{"hero":"Cinder","opponentWinRate":0.2,"encounters":20}]}},
			{"hero":"Flex1","tier":"B"}
		]},
		"top": {"heroDetails": [
			{"hero":"Bolt","tier":"B","stats":{"pickWinCount":10,"pickCount":30,"banCount":2,"winRate":0.48}},
			{"hero":"Flex1","tier":"B"}
		]},
		"jungle": {"heroDetails": [{"hero":"Cinder","tier":"A","stats":{"pickWinCount":30,"pickCount":55,"banCount":5,"winRate":0.5}}]},
		"carry": {"heroDetails": [{"hero":"Dart","tier":"A","stats":{"pickWinCount":30,"pickCount":55,"banCount":5,"winRate":0.5}}]},
		"support": {"heroDetails": [{"hero":"Echo","tier":"A","stats":{"pickWinCount":30,"pickCount":55,"banCount":5,"winRate":0.5}}]}
	}}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "hero_tier_list.json"), []byte(tierList), 0o644))

	s, err := store.New(dir, true)
	require.NoError(t, err)
	return s
}

func TestDeterminePhase_Buckets(t *testing.T) {
	assert.Equal(t, evaluator.PhaseEarly, evaluator.DeterminePhase(0))
	assert.Equal(t, evaluator.PhaseEarly, evaluator.DeterminePhase(1))
	assert.Equal(t, evaluator.PhaseMid, evaluator.DeterminePhase(2))
	assert.Equal(t, evaluator.PhaseMid, evaluator.DeterminePhase(3))
	assert.Equal(t, evaluator.PhaseLate, evaluator.DeterminePhase(4))
}

func TestEvaluate_EmptyStateFirstPickIsFeasible(t *testing.T) {
	s := newTestStore(t)
	result := evaluator.Evaluate(s, domain.SideAlly, nil, nil, "ace")
	assert.True(t, result.Feasible)
	assert.Equal(t, evaluator.PhaseEarly, result.Phase)
	assert.InDelta(t, 88.0, result.TierScore, 0.001)
	assert.GreaterOrEqual(t, result.Components.Feasibility, 0.0)
	assert.NotEmpty(t, result.Reasons)
}

func TestEvaluate_CounterScoreRewardsStrongAgainst(t *testing.T) {
	s := newTestStore(t)
	result := evaluator.Evaluate(s, domain.SideAlly, nil, []string{"bolt"}, "ace")
	assert.Greater(t, result.Components.Counter, 50.0)
}

func TestEvaluate_UnknownHeroFallsBackToDefaults(t *testing.T) {
	s := newTestStore(t)
	result := evaluator.Evaluate(s, domain.SideAlly, nil, nil, "ghost")
	assert.Equal(t, 0.0, result.TierScore)
	assert.InDelta(t, domain.DefaultRolePower*100, result.Components.Meta, 0.001)
}

func TestEvaluate_InfeasibleAfterAddScoresZeroSynergy(t *testing.T) {
	s := newTestStore(t)
	// ace, bolt, cinder, dart already fill mid/top/jungle/carry; echo is the
	// only remaining eligible hero for support, and ace is mid-only so
	// stacking a second mid-only hero alongside it can't be placed.
	result := evaluator.Evaluate(s, domain.SideAlly, []string{"ace", "bolt", "cinder", "dart", "echo"}, nil, "ace")
	assert.False(t, result.Feasible)
	assert.Equal(t, 0.0, result.Components.Synergy)
}

// TestEvaluate_DenyUsesCandidateStrongAgainstOwnPicks guards against
// looking up strong_against on the wrong side of the relationship: the
// map is keyed on the candidate's profile, not each own pick's profile.
func TestEvaluate_DenyUsesCandidateStrongAgainstOwnPicks(t *testing.T) {
	s := newTestStore(t)
	// ace.strongAgainst[bolt] = 0.75 (win rate 0.75, encounters 20 -> min(20/5,1)=1).
	// bolt carries no strongAgainst entry for ace at all, so the buggy
	// direction would score 0 here.
	result := evaluator.Evaluate(s, domain.SideAlly, []string{"bolt"}, nil, "ace")
	assert.InDelta(t, 75.0, result.Components.Deny, 0.001)
}

// TestEvaluate_FlexUsesFullPossibleRolesNotPredicted guards against
// flex collapsing once a side is partially constrained: Flex1 is
// eligible for two roles, but once "ace" has already taken mid, solving
// predicts only "top" for Flex1 — flex must still reflect the full
// two-role eligibility, not the one-role prediction.
func TestEvaluate_FlexUsesFullPossibleRolesNotPredicted(t *testing.T) {
	s := newTestStore(t)
	result := evaluator.Evaluate(s, domain.SideAlly, []string{"ace"}, nil, "flex1")
	require.Len(t, result.PredictedRoles, 1, "mid is already taken by ace, so flex1 predicts only top")
	assert.InDelta(t, 25.0, result.Components.Flex, 0.001)
}
