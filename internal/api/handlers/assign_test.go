package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/dom/draft-advisor/internal/api/handlers"
	"github.com/dom/draft-advisor/internal/recommender"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T) *handlers.Handler {
	t.Helper()
	dir := t.TempDir()

	rolePool := `{"roles": ["top","jungle","mid","carry","support"], "heroes": {
		"Ace": {"possibleRoles": ["mid"]},
		"Bolt": {"possibleRoles": ["top"]},
		"Cinder": {"possibleRoles": ["jungle"]},
		"Dart": {"possibleRoles": ["carry"]},
		"Echo": {"possibleRoles": ["support"]}
	}}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "hero_role_pool.json"), []byte(rolePool), 0o644))

	tierList := `{"roles": {
		"mid": {"heroDetails": [{"hero":"Ace","tier":"A"}]},
		"top": {"heroDetails": [{"hero":"Bolt","tier":"A"}]},
		"jungle": {"heroDetails": [{"hero":"Cinder","tier":"A"}]},
		"carry": {"heroDetails": [{"hero":"Dart","tier":"A"}]},
		"support": {"heroDetails": [{"hero":"Echo","tier":"A"}]}
	}}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "hero_tier_list.json"), []byte(tierList), 0o644))

	return handlers.New(dir, recommender.DefaultParams, nil, nil)
}

type assignResponseBody struct {
	Assignment       map[string]string `json:"assignment"`
	IsFeasible       bool               `json:"isFeasible"`
	FeasibilityScore float64            `json:"feasibilityScore"`
	Warnings         []string           `json:"warnings"`
}

func doAssign(t *testing.T, h *handlers.Handler, body string) (*http.Response, assignResponseBody) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/draft/assign", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	h.Assign(rec, req)

	resp := rec.Result()
	var parsed assignResponseBody
	if resp.StatusCode == http.StatusOK {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&parsed))
	}
	return resp, parsed
}

func TestAssign_ListFormIsFeasible(t *testing.T) {
	h := newTestHandler(t)
	resp, body := doAssign(t, h, `{"heroes": ["ace", "bolt", "cinder", "dart", "echo"]}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, body.IsFeasible)
	assert.Len(t, body.Assignment, 5)
}

// TestAssign_LegacyObjectFormIsAdapted exercises spec.md §9's "mixed
// single-hero/object input" adapter: a role->hero object must be
// accepted exactly like the equivalent list of hero names.
func TestAssign_LegacyObjectFormIsAdapted(t *testing.T) {
	h := newTestHandler(t)
	resp, body := doAssign(t, h, `{"heroes": {"mid": "ace", "top": "bolt", "jungle": "cinder", "carry": "dart", "support": "echo"}}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, body.IsFeasible)
	assert.Len(t, body.Assignment, 5)
}

func TestAssign_TooManyHeroesIsRequestError(t *testing.T) {
	h := newTestHandler(t)
	resp, _ := doAssign(t, h, `{"heroes": ["ace", "bolt", "cinder", "dart", "echo", "ghost"]}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAssign_UnknownHeroIsWarningNotError(t *testing.T) {
	h := newTestHandler(t)
	resp, body := doAssign(t, h, `{"heroes": ["ace", "ghost"]}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body.Warnings, "unknown hero: ghost")
}
