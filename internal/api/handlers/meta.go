package handlers

import (
	"net/http"

	"github.com/dom/draft-advisor/internal/domain"
	"github.com/dom/draft-advisor/internal/evaluator"
	"github.com/dom/draft-advisor/internal/sequence"
)

type metaResponse struct {
	Engine      string            `json:"engine"`
	Status      string            `json:"status"`
	GeneratedAt string            `json:"generatedAt"`
	Sequence    metaSequence      `json:"sequence"`
	RolePool    metaRolePool      `json:"rolePool"`
	Scoring     metaScoring       `json:"scoring"`
	Warnings    []string          `json:"warnings"`
}

type metaSequence struct {
	Key   string          `json:"key"`
	Steps []sequence.Step `json:"steps"`
}

type metaRolePool struct {
	Version        string                `json:"version"`
	Source         string                `json:"source"`
	Roles          []domain.Role         `json:"roles"`
	HeroesCount    int                   `json:"heroesCount"`
	FlexHeroeCount int                   `json:"flexHeroesCount"`
	Coverage       map[domain.Role]int   `json:"coverage"`
}

type metaScoring struct {
	Components   []string                     `json:"components"`
	PhaseWeights map[evaluator.Phase]weightsJSON `json:"phaseWeights"`
}

type weightsJSON struct {
	Meta        float64 `json:"meta"`
	Counter     float64 `json:"counter"`
	Synergy     float64 `json:"synergy"`
	Deny        float64 `json:"deny"`
	Flex        float64 `json:"flex"`
	Feasibility float64 `json:"feasibility"`
}

// Meta handles GET /draft/meta?refresh=bool.
func (h *Handler) Meta(w http.ResponseWriter, r *http.Request) {
	refresh := r.URL.Query().Get("refresh") == "true"

	s, err := h.loadStore(refresh)
	if err != nil {
		writeError(w, "Meta", err)
		return
	}

	resp := metaResponse{
		Engine:      "draft-advisor",
		Status:      "ok",
		GeneratedAt: nowRFC3339(),
		Sequence: metaSequence{
			Key:   "fixed-15-step",
			Steps: sequence.Script,
		},
		RolePool: metaRolePool{
			Version:        s.Version(),
			Source:         s.Source(),
			Roles:          domain.AllRoles,
			HeroesCount:    s.Len(),
			FlexHeroeCount: s.FlexHeroCount(),
			Coverage:       s.RoleCoverage(),
		},
		Scoring: metaScoring{
			Components: []string{"meta", "counter", "synergy", "deny", "flex", "feasibility"},
			PhaseWeights: map[evaluator.Phase]weightsJSON{
				evaluator.PhaseEarly: {Meta: 0.40, Counter: 0.11, Synergy: 0.06, Deny: 0.14, Flex: 0.15, Feasibility: 0.14},
				evaluator.PhaseMid:   {Meta: 0.29, Counter: 0.27, Synergy: 0.18, Deny: 0.12, Flex: 0.09, Feasibility: 0.05},
				evaluator.PhaseLate:  {Meta: 0.18, Counter: 0.32, Synergy: 0.23, Deny: 0.09, Flex: 0.01, Feasibility: 0.17},
			},
		},
		Warnings: s.Warnings(),
	}

	writeJSON(w, resp)
}
