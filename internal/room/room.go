// Package room implements the draft room (spec.md §4.G): a lightweight,
// in-memory session wrapping one sequence-engine state per room code,
// broadcasting the current action and top recommendation to connected
// websocket clients whenever the state advances. Grounded on the
// corpus's internal/websocket Hub/Room/DraftStateManager split, but
// without any database-backed phase persistence or per-connection
// team/session lookups — the room only multiplexes one sequence-engine
// state across observers.
package room

import (
	"sync"
	"time"

	"github.com/dom/draft-advisor/internal/domain"
	"github.com/dom/draft-advisor/internal/recommender"
	"github.com/dom/draft-advisor/internal/sequence"
	"github.com/dom/draft-advisor/internal/store"
)

// Update is broadcast to every subscriber of a room whenever its state
// advances.
type Update struct {
	RoomCode string                  `json:"roomCode"`
	Action   *sequence.Action        `json:"action"`
	Top      []recommender.Candidate `json:"top"`
	Complete bool                    `json:"complete"`
}

// Room wraps one sequence-engine state for a single room code. Not
// persisted — lost on process restart by design (spec.md §4.G, §3).
type Room struct {
	Code      string
	UpdatedAt time.Time

	mu    sync.Mutex
	state domain.DraftState

	subMu       sync.Mutex
	subscribers map[chan Update]struct{}
}

// New returns an empty room at the start of the sequence.
func New(code string) *Room {
	return &Room{
		Code:        code,
		UpdatedAt:   time.Now(),
		state:       domain.NewDraftState(),
		subscribers: make(map[chan Update]struct{}),
	}
}

// State returns a copy of the room's current draft state.
func (r *Room) State() domain.DraftState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state.Clone()
}

// Apply assigns hero to the room's current live action (running D then
// E, per spec.md §4.G), broadcasts the resulting update to every
// subscriber, and returns the new current action and top
// recommendations. A duplicate hero is a no-op, matching D.Apply.
func (r *Room) Apply(s *store.Store, allHeroes []string, params recommender.Params, hero string) (*sequence.Action, []recommender.Candidate, error) {
	r.mu.Lock()
	r.state = sequence.Apply(r.state, hero)
	r.UpdatedAt = time.Now()
	next := r.state.Clone()
	r.mu.Unlock()

	rec := recommender.Recommend(next, s, allHeroes, params)

	r.broadcast(Update{
		RoomCode: r.Code,
		Action:   rec.Action,
		Top:      rec.Candidates,
		Complete: rec.Complete,
	})

	return rec.Action, rec.Candidates, nil
}

// Subscribe registers a buffered channel that receives every future
// broadcast until Unsubscribe is called. Buffered so a slow reader
// cannot block Apply (spec.md §5).
func (r *Room) Subscribe() chan Update {
	ch := make(chan Update, 8)
	r.subMu.Lock()
	r.subscribers[ch] = struct{}{}
	r.subMu.Unlock()
	return ch
}

// Unsubscribe removes and closes ch.
func (r *Room) Unsubscribe(ch chan Update) {
	r.subMu.Lock()
	defer r.subMu.Unlock()
	if _, ok := r.subscribers[ch]; ok {
		delete(r.subscribers, ch)
		close(ch)
	}
}

func (r *Room) broadcast(update Update) {
	r.subMu.Lock()
	defer r.subMu.Unlock()
	for ch := range r.subscribers {
		select {
		case ch <- update:
		default:
			// Slow subscriber; drop rather than block the apply path.
		}
	}
}
