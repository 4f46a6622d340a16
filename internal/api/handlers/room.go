package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	ws "github.com/gorilla/websocket"

	"github.com/dom/draft-advisor/internal/advisorerr"
	"github.com/dom/draft-advisor/internal/domain"
	"github.com/dom/draft-advisor/internal/recommender"
	"github.com/dom/draft-advisor/internal/repository"
	"github.com/dom/draft-advisor/internal/room"
)

var upgrader = ws.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for development
	},
}

type roomStateBody struct {
	Picks sidePair `json:"picks"`
	Bans  sidePair `json:"bans"`
}

type roomResponse struct {
	RoomCode   string                  `json:"roomCode"`
	State      roomStateBody           `json:"state"`
	Action     *actionResponse         `json:"action"`
	Candidates []recommender.Candidate `json:"candidates,omitempty"`
	Message    string                  `json:"message,omitempty"`
}

// CreateRoom handles POST /draft/room/{code}: create-or-fetch, gated by
// the auth guard at the router level when JWT_SECRET is configured.
func (h *Handler) CreateRoom(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	if code == "" {
		writeError(w, "CreateRoom", advisorerr.NewRequestError("room code required"))
		return
	}

	rm := h.Hub.GetOrCreate(code)

	s, err := h.loadStore(false)
	if err != nil {
		writeError(w, "CreateRoom", err)
		return
	}

	rec := recommender.Recommend(rm.State(), s, s.Keys(), h.Params)
	writeJSON(w, roomToResponse(rm, rec))
}

type applyRequest struct {
	Hero string `json:"hero"`
}

// Apply handles POST /draft/room/{code}/apply: applies hero to the
// room's live action, records an advisory log entry comparing the
// chosen hero against what was recommended, and broadcasts the new
// state to every websocket subscriber.
func (h *Handler) Apply(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	rm := h.Hub.Get(code)
	if rm == nil {
		writeError(w, "Apply", advisorerr.NewRequestError("room %q does not exist", code))
		return
	}

	var req applyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Apply", advisorerr.NewRequestError("malformed request body: %v", err))
		return
	}

	s, err := h.loadStore(false)
	if err != nil {
		writeError(w, "Apply", err)
		return
	}
	allHeroes := s.Keys()

	before := rm.State()
	beforeRec := recommender.Recommend(before, s, allHeroes, h.Params)

	action, candidates, err := rm.Apply(s, allHeroes, h.Params, req.Hero)
	if err != nil {
		writeError(w, "Apply", advisorerr.NewInternal(err))
		return
	}

	h.recordAdvisory(code, beforeRec, req.Hero)

	resp := roomResponse{RoomCode: code, State: stateBody(rm.State()), Candidates: candidates}
	if action == nil {
		resp.Message = "sequence complete"
	} else {
		resp.Action = &actionResponse{
			Index:     action.Index,
			Text:      action.Text(),
			Limit:     action.Limit,
			Progress:  action.Progress,
			Remaining: action.Remaining,
		}
	}
	writeJSON(w, resp)
}

// WS handles GET /draft/room/{code}/ws: upgrades to a websocket
// connection that receives a JSON message every time the room advances.
func (h *Handler) WS(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	rm := h.Hub.GetOrCreate(code)

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ERROR [handlers.WS]: upgrade failed: %v", err)
		return
	}

	updates := rm.Subscribe()
	client := room.NewClient(conn, updates)
	defer rm.Unsubscribe(updates)
	client.Run()
}

// recordAdvisory writes a best-effort advisory log entry comparing the
// top-ranked recommendation for the pre-apply state against the hero the
// caller actually chose. A no-op when the sequence was already complete
// or nothing was recommended.
func (h *Handler) recordAdvisory(code string, beforeRec recommender.Recommendation, chosen string) {
	if beforeRec.Complete || beforeRec.Action == nil {
		return
	}

	entry := &repository.AdvisoryLogEntry{
		ID:         uuid.New(),
		RoomCode:   code,
		TurnIndex:  beforeRec.Action.Index,
		Side:       string(beforeRec.Action.Side),
		ActionType: string(beforeRec.Action.Type),
		ChosenHero: &chosen,
	}
	if len(beforeRec.Candidates) > 0 {
		top := beforeRec.Candidates[0]
		entry.RecommendedHero = &top.Hero
		entry.RecommendedScore = &top.Score
	}
	repository.WriteAsync(h.AdvisoryRepo, entry)
}

func roomToResponse(rm *room.Room, rec recommender.Recommendation) roomResponse {
	resp := roomResponse{
		RoomCode:   rm.Code,
		State:      stateBody(rm.State()),
		Candidates: rec.Candidates,
	}
	if rec.Complete || rec.Action == nil {
		resp.Message = "sequence complete"
		return resp
	}
	resp.Action = &actionResponse{
		Index:     rec.Action.Index,
		Text:      rec.Action.Text(),
		Limit:     rec.Action.Limit,
		Progress:  rec.Action.Progress,
		Remaining: rec.Action.Remaining,
	}
	return resp
}

func stateBody(state domain.DraftState) roomStateBody {
	return roomStateBody{
		Picks: sidePair{Ally: state.Picks[domain.SideAlly], Enemy: state.Picks[domain.SideEnemy]},
		Bans:  sidePair{Ally: state.Bans[domain.SideAlly], Enemy: state.Bans[domain.SideEnemy]},
	}
}
