package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/dom/draft-advisor/internal/advisorerr"
	"github.com/dom/draft-advisor/internal/domain"
	"github.com/dom/draft-advisor/internal/recommender"
	"github.com/dom/draft-advisor/internal/sequence"
)

type sidePair struct {
	Ally  []string `json:"ally"`
	Enemy []string `json:"enemy"`
}

type lookaheadOverride struct {
	Enabled       bool    `json:"enabled"`
	BeamWidth     int     `json:"beamWidth"`
	EnemyTopN     int     `json:"enemyTopN"`
	PenaltyFactor float64 `json:"penaltyFactor"`
}

type recommendRequest struct {
	Picks          sidePair           `json:"picks"`
	Bans           sidePair           `json:"bans"`
	TurnIndex      int                `json:"turnIndex"`
	ActionProgress int                `json:"actionProgress"`
	Lookahead      *lookaheadOverride `json:"lookahead"`
	Refresh        bool               `json:"refresh"`
	Debug          bool               `json:"debug"`
}

type actionResponse struct {
	Index     int    `json:"index"`
	Text      string `json:"text"`
	Limit     int    `json:"limit"`
	Progress  int    `json:"progress"`
	Remaining int    `json:"remaining"`
}

type recommendResponse struct {
	Action      *actionResponse             `json:"action"`
	Ally        assignResponse              `json:"ally"`
	Enemy       assignResponse              `json:"enemy"`
	Candidates  []recommender.Candidate     `json:"candidates"`
	Message     string                      `json:"message,omitempty"`
	Warnings    []string                    `json:"warnings,omitempty"`
}

// Recommend handles POST /draft/recommend?debug=bool.
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	var req recommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Recommend", advisorerr.NewRequestError("malformed request body: %v", err))
		return
	}

	rawState := domain.DraftState{
		Picks:          map[domain.Side][]string{domain.SideAlly: req.Picks.Ally, domain.SideEnemy: req.Picks.Enemy},
		Bans:           map[domain.Side][]string{domain.SideAlly: req.Bans.Ally, domain.SideEnemy: req.Bans.Enemy},
		TurnIndex:      req.TurnIndex,
		ActionProgress: req.ActionProgress,
	}

	state, err := sequence.Normalise(rawState)
	if err != nil {
		writeError(w, "Recommend", err)
		return
	}

	s, err := h.loadStore(req.Refresh)
	if err != nil {
		writeError(w, "Recommend", err)
		return
	}

	params := h.Params
	if req.Lookahead != nil && req.Lookahead.Enabled {
		if req.Lookahead.BeamWidth > 0 {
			params.BeamWidth = req.Lookahead.BeamWidth
		}
		if req.Lookahead.EnemyTopN > 0 {
			params.EnemyTopN = req.Lookahead.EnemyTopN
		}
		if req.Lookahead.PenaltyFactor > 0 {
			params.PenaltyFactor = req.Lookahead.PenaltyFactor
		}
	}

	allHeroes := s.Keys()
	rec := recommender.Recommend(state, s, allHeroes, params)

	unknown := s.Unresolved(allUsedHeroes(state))

	resp := recommendResponse{
		Ally:       assignResultToResponse(rec.AllyAssign),
		Enemy:      assignResultToResponse(rec.EnemyAssign),
		Candidates: rec.Candidates,
		Warnings:   advisorerr.CapWarnings(unknownWarnings(unknown)),
	}
	if rec.Complete {
		resp.Message = "sequence complete"
	} else {
		resp.Action = &actionResponse{
			Index:     rec.Action.Index,
			Text:      rec.Action.Text(),
			Limit:     rec.Action.Limit,
			Progress:  rec.Action.Progress,
			Remaining: rec.Action.Remaining,
		}
	}

	writeJSON(w, resp)
}

func assignResultToResponse(result recommender.AssignResult) assignResponse {
	return assignResponse{
		Assignment:       result.Assignment,
		IsFeasible:       result.IsFeasible,
		FeasibilityScore: result.FeasibilityScore,
		OpenRoles:        result.OpenRoles,
		EnumerationCount: result.EnumerationCount,
	}
}

func allUsedHeroes(state domain.DraftState) []string {
	used := state.AllUsedHeroes()
	out := make([]string, 0, len(used))
	for hero := range used {
		out = append(out, hero)
	}
	return out
}
