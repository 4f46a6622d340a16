package solver_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dom/draft-advisor/internal/domain"
	"github.com/dom/draft-advisor/internal/solver"
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
			"Top1":   {"possibleRoles": ["top"]},
			"Jg1":    {"possibleRoles": ["jungle"]},
			"Mid1":   {"possibleRoles": ["mid", "top"]},
			"Carry1": {"possibleRoles": ["carry"]},
			"Sup1":   {"possibleRoles": ["support"]},
			"Flex1":  {"possibleRoles": ["top", "jungle", "mid", "carry", "support"]}
		}
	}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "hero_role_pool.json"), []byte(rolePool), 0o644))
	tierList := `{"roles": {
		"top": {"heroDetails": [{"hero":"Top1","tier":"A"},{"hero":"Mid1","tier":"A"},{"hero":"Flex1","tier":"B"}]},
		"jungle": {"heroDetails": [{"hero":"Jg1","tier":"A"},{"hero":"Flex1","tier":"B"}]},
		"mid": {"heroDetails": [{"hero":"Mid1","tier":"S"},{"hero":"Flex1","tier":"B"}]},
		"carry": {"heroDetails": [{"hero":"Carry1","tier":"A"},{"hero":"Flex1","tier":"B"}]},
		"support": {"heroDetails": [{"hero":"Sup1","tier":"A"},{"hero":"Flex1","tier":"B"}]}
	}}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "hero_tier_list.json"), []byte(tierList), 0o644))

	s, err := store.New(dir, true)
	require.NoError(t, err)
	return s
}

func TestSolve_EmptyIsTriviallyFeasible(t *testing.T) {
	s := newTestStore(t)
	result := solver.Solve(nil, s)
	assert.True(t, result.IsFeasible)
	assert.Equal(t, 1.0, result.FeasibilityScore)
	assert.Len(t, result.OpenRoles, len(domain.AllRoles))
}

func TestSolve_FiveDistinctSpecialistsIsFeasible(t *testing.T) {
	s := newTestStore(t)
	result := solver.Solve([]string{"top1", "jg1", "mid1", "carry1", "sup1"}, s)
	require.True(t, result.IsFeasible)
	assert.Equal(t, 1, result.ValidAssignments)
	assert.Empty(t, result.OpenRoles)
	assert.Equal(t, "mid1", result.BestAssignment[domain.RoleMid])
	assert.Equal(t, "top1", result.BestAssignment[domain.RoleTop])
}

func TestSolve_TwoHeroesWantingSameRoleIsInfeasible(t *testing.T) {
	s := newTestStore(t)
	result := solver.Solve([]string{"top1", "jg1", "jg1"}, s)
	// Jg1 appears twice and only fits jungle: no assignment can place
	// both copies since roles are distinct slots.
	assert.False(t, result.IsFeasible)
	assert.Equal(t, 0, result.ValidAssignments)
}

func TestSolve_FlexHeroFillsOpenSlot(t *testing.T) {
	s := newTestStore(t)
	result := solver.Solve([]string{"top1", "jg1", "mid1", "carry1", "flex1"}, s)
	require.True(t, result.IsFeasible)
	assert.Equal(t, "flex1", result.BestAssignment[domain.RoleSupport])
}

func TestSolve_UnknownHeroGetsAllFiveRolesAtDefaultPower(t *testing.T) {
	s := newTestStore(t)
	result := solver.Solve([]string{"ghost"}, s)
	assert.True(t, result.IsFeasible)
	assert.ElementsMatch(t, domain.AllRoles, result.HeroRoleOptions["ghost"])
}
