package handlers

import (
	"encoding/json"
	"net/http"
	"sort"

	"github.com/dom/draft-advisor/internal/advisorerr"
	"github.com/dom/draft-advisor/internal/domain"
	"github.com/dom/draft-advisor/internal/recommender"
)

// assignRequest accepts heroes/picks as either a plain list of names or
// a legacy role->hero object, per spec.md §9 ("Mixed single-hero/object
// input on assign"). Both decode through rawHeroes; the adapter below
// normalises either shape into a plain list before it reaches the core.
type assignRequest struct {
	Heroes  rawHeroes `json:"heroes"`
	Picks   rawHeroes `json:"picks"`
	Side    string    `json:"side"`
	Refresh bool      `json:"refresh"`
}

// rawHeroes decodes either a `["hero1", "hero2"]` list or a legacy
// `{"top": "hero1", "mid": "hero2"}` role->hero object into a plain
// slice of hero names. The core (internal/recommender, internal/solver)
// only ever sees the list form; this adapter lives at the HTTP boundary
// per spec.md §9.
type rawHeroes []string

func (r *rawHeroes) UnmarshalJSON(data []byte) error {
	var asList []string
	if err := json.Unmarshal(data, &asList); err == nil {
		*r = asList
		return nil
	}

	var asObject map[string]string
	if err := json.Unmarshal(data, &asObject); err != nil {
		return err
	}
	roles := make([]string, 0, len(asObject))
	for role := range asObject {
		roles = append(roles, role)
	}
	sort.Strings(roles)
	out := make([]string, 0, len(asObject))
	for _, role := range roles {
		out = append(out, asObject[role])
	}
	*r = out
	return nil
}

type assignResponse struct {
	Assignment       map[domain.Role]string `json:"assignment"`
	IsFeasible       bool                   `json:"isFeasible"`
	FeasibilityScore float64                `json:"feasibilityScore"`
	OpenRoles        []domain.Role          `json:"openRoles"`
	EnumerationCount int                    `json:"enumerationCount"`
	Warnings         []string               `json:"warnings,omitempty"`
}

// Assign handles POST /draft/assign?debug=bool.
func (h *Handler) Assign(w http.ResponseWriter, r *http.Request) {
	var req assignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Assign", advisorerr.NewRequestError("malformed request body: %v", err))
		return
	}

	heroes := []string(req.Heroes)
	if len(heroes) == 0 {
		heroes = []string(req.Picks)
	}
	if len(heroes) > 5 {
		writeError(w, "Assign", advisorerr.NewRequestError("at most 5 heroes per side, got %d", len(heroes)))
		return
	}
	if req.Side != "" && !domain.Side(req.Side).IsValid() {
		writeError(w, "Assign", advisorerr.NewRequestError("invalid side %q", req.Side))
		return
	}

	s, err := h.loadStore(req.Refresh)
	if err != nil {
		writeError(w, "Assign", err)
		return
	}

	unknown := s.Unresolved(heroes)
	result := recommender.Assign(heroes, s)

	writeJSON(w, assignResponse{
		Assignment:       result.Assignment,
		IsFeasible:       result.IsFeasible,
		FeasibilityScore: result.FeasibilityScore,
		OpenRoles:        result.OpenRoles,
		EnumerationCount: result.EnumerationCount,
		Warnings:         advisorerr.CapWarnings(unknownWarnings(unknown)),
	})
}

func unknownWarnings(unknown []string) []string {
	if len(unknown) == 0 {
		return nil
	}
	out := make([]string, len(unknown))
	for i, hero := range unknown {
		out[i] = "unknown hero: " + hero
	}
	return out
}
