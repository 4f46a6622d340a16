package store_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/dom/draft-advisor/internal/advisorerr"
	"github.com/dom/draft-advisor/internal/domain"
	"github.com/dom/draft-advisor/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigDir(t *testing.T, rolePool, overrides, tierList any) string {
	t.Helper()
	dir := t.TempDir()

	write := func(name string, v any) {
		if v == nil {
			return
		}
		data, err := json.Marshal(v)
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), data, 0o644))
	}

	write("hero_role_pool.json", rolePool)
	write("hero_role_pool_overrides.json", overrides)
	write("hero_tier_list.json", tierList)
	return dir
}

func basicRolePool() map[string]any {
	return map[string]any{
		"version": "1",
		"source":  "test",
		"roles":   []string{"top", "jungle", "mid", "carry", "support"},
		"heroes": map[string]any{
			"Alpha": map[string]any{
				"possibleRoles": []string{"Mid", "Top"},
				"rolePower":     map[string]float64{"mid": 0.8, "top": 0.6},
				"tags":          []string{"Mage", "Mage"},
			},
			"Beta": map[string]any{
				"possibleRoles": []string{"support"},
			},
		},
	}
}

func basicTierList() map[string]any {
	return map[string]any{
		"roles": map[string]any{
			"mid": map[string]any{
				"heroDetails": []map[string]any{
					{
						"hero":  "Alpha",
						"tier":  "S",
						"stats": map[string]any{"pickWinCount": 50, "pickCount": 100, "banCount": 10, "winRate": 0.52},
						"counters": map[string]any{
							"strongAgainst": []map[string]any{{"hero": "Beta", "winRate": 0.8, "encounters": 10}},
							"counteredBy":   []map[string]any{{"hero": "Beta", "opponentWinRate": 0.1, "encounters": 10}},
						},
					},
				},
			},
			"support": map[string]any{
				"heroDetails": []map[string]any{
					{
						"hero":  "Beta",
						"tier":  "A",
						"stats": map[string]any{"pickWinCount": 20, "pickCount": 40, "banCount": 2, "winRate": 0.5},
					},
				},
			},
		},
	}
}

func TestBuild_RoleMetaAndCountersWithinBounds(t *testing.T) {
	dir := writeConfigDir(t, basicRolePool(), nil, basicTierList())

	s, err := store.New(dir, true)
	require.NoError(t, err)

	alpha, ok := s.Get("alpha")
	require.True(t, ok)
	assert.ElementsMatch(t, []string{"mage"}, alpha.SortedTags())
	assert.Equal(t, 88.0, alpha.BestTierScore) // S tier anchor

	for _, role := range alpha.PossibleRoles {
		meta := alpha.RoleMeta[role]
		assert.GreaterOrEqual(t, meta, 0.0)
		assert.LessOrEqual(t, meta, 100.0)
	}
	assert.GreaterOrEqual(t, alpha.BaseMeta, 0.0)
	assert.LessOrEqual(t, alpha.BaseMeta, 100.0)

	for _, v := range alpha.StrongAgainst {
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, 1.0)
	}
}

func TestBuild_MissingRoleFailsValidation(t *testing.T) {
	rolePool := basicRolePool()
	heroes := rolePool["heroes"].(map[string]any)
	heroes["Gamma"] = map[string]any{
		"possibleRoles": []string{"unknown-role"},
	}

	dir := writeConfigDir(t, rolePool, nil, basicTierList())

	_, err := store.New(dir, true)
	require.Error(t, err)
	var configErr *advisorerr.ConfigError
	require.ErrorAs(t, err, &configErr)
}

func TestBuild_FallbackProfileForUnmappedHero(t *testing.T) {
	tierList := basicTierList()
	roles := tierList["roles"].(map[string]any)
	mid := roles["mid"].(map[string]any)
	details := mid["heroDetails"].([]map[string]any)
	details = append(details, map[string]any{
		"hero":  "Orphan",
		"tier":  "B",
		"stats": map[string]any{"pickWinCount": 1, "pickCount": 2, "banCount": 0, "winRate": 0.5},
	})
	mid["heroDetails"] = details

	dir := writeConfigDir(t, basicRolePool(), nil, tierList)

	s, err := store.New(dir, true)
	require.NoError(t, err)

	orphan, ok := s.Get("orphan")
	require.True(t, ok)
	assert.Contains(t, orphan.SortedTags(), "unmapped")
	assert.Equal(t, 60.0, orphan.RoleMeta["mid"]) // tier B anchor, fallback profiles use tier score alone

	warnings := s.Warnings()
	assert.NotEmpty(t, warnings)
}

func TestBuild_OverrideWipesIncompatiblePowers(t *testing.T) {
	rolePool := basicRolePool()
	override := map[string]any{
		"heroes": map[string]any{
			"Alpha": map[string]any{
				"possibleRoles": []string{"support"},
			},
		},
	}

	dir := writeConfigDir(t, rolePool, override, basicTierList())

	s, err := store.New(dir, true)
	require.NoError(t, err)

	alpha, ok := s.Get("alpha")
	require.True(t, ok)
	assert.Equal(t, []string{"support"}, roleStrings(alpha.PossibleRoles))
	_, hasMidPower := alpha.RolePower["mid"]
	assert.False(t, hasMidPower)
	assert.Equal(t, 0.70, alpha.RolePower["support"])
}

func roleStrings(roles []domain.Role) []string {
	out := make([]string, len(roles))
	for i, r := range roles {
		out[i] = r.String()
	}
	return out
}
