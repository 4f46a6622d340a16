package sequence

import (
	"sort"

	"github.com/dom/draft-advisor/internal/advisorerr"
	"github.com/dom/draft-advisor/internal/domain"
)

// Action describes the live step a caller must act on, or nil when the
// script is exhausted.
type Action struct {
	Index     int
	Type      domain.ActionType
	Side      domain.Side
	Limit     int
	Progress  int
	Remaining int
}

// Text renders a short human-readable description, e.g. "ally ban".
func (a *Action) Text() string {
	if a == nil {
		return "sequence complete"
	}
	return string(a.Side) + " " + string(a.Type)
}

// Normalise validates and cleans a caller-supplied draft state per
// spec.md §4.D: sides must not overlap, a hero cannot appear in both a
// pick and a ban, and each side's list is deduplicated while preserving
// order. Returns a *advisorerr.RequestError on invariant violations.
func Normalise(state domain.DraftState) (domain.DraftState, error) {
	out := domain.NewDraftState()

	seen := make(map[string]string)
	for _, side := range []domain.Side{domain.SideAlly, domain.SideEnemy} {
		for _, hero := range state.Picks[side] {
			if err := checkAndMark(seen, hero, string(side)+" picks"); err != nil {
				return domain.DraftState{}, err
			}
			out.Picks[side] = appendUnique(out.Picks[side], hero)
		}
	}
	for _, side := range []domain.Side{domain.SideAlly, domain.SideEnemy} {
		for _, hero := range state.Bans[side] {
			if err := checkAndMark(seen, hero, string(side)+" bans"); err != nil {
				return domain.DraftState{}, err
			}
			out.Bans[side] = appendUnique(out.Bans[side], hero)
		}
	}

	out.TurnIndex = state.TurnIndex
	if out.TurnIndex < 0 {
		out.TurnIndex = 0
	}
	out.ActionProgress = state.ActionProgress
	if out.ActionProgress < 0 {
		out.ActionProgress = 0
	}

	return out, nil
}

func checkAndMark(seen map[string]string, hero string, list string) error {
	if prior, ok := seen[hero]; ok && prior != list {
		return advisorerr.NewRequestError("hero %q appears in both %s and %s", hero, prior, list)
	}
	seen[hero] = list
	return nil
}

func appendUnique(list []string, hero string) []string {
	for _, existing := range list {
		if existing == hero {
			return list
		}
	}
	return append(list, hero)
}

// CurrentAction walks the script from state.TurnIndex per spec.md §4.D,
// capping each step's count by how many slots its side has left, and
// skipping steps whose effective limit has already been satisfied by
// ActionProgress. Returns nil once the script is exhausted.
func CurrentAction(state domain.DraftState) *Action {
	idx := state.TurnIndex
	progress := state.ActionProgress

	for idx < TotalSteps {
		step := Script[idx]

		var taken int
		if step.Type == domain.ActionTypeBan {
			taken = len(state.Bans[step.Side])
		} else {
			taken = len(state.Picks[step.Side])
		}
		remaining := RosterSize - taken + progress
		limit := step.Count
		if remaining < limit {
			limit = remaining
		}
		if limit < 0 {
			limit = 0
		}

		if limit > progress {
			return &Action{
				Index:     idx,
				Type:      step.Type,
				Side:      step.Side,
				Limit:     limit,
				Progress:  progress,
				Remaining: limit - progress,
			}
		}

		idx++
		progress = 0
	}

	return nil
}

// Apply advances state by assigning hero to the current live action. It
// is a no-op (state returned unchanged) if hero already appears anywhere
// in the state, or if the script is already complete.
func Apply(state domain.DraftState, hero string) domain.DraftState {
	action := CurrentAction(state)
	if action == nil || state.IsUsed(hero) {
		return state
	}

	next := state.Clone()
	if action.Type == domain.ActionTypeBan {
		next.Bans[action.Side] = append(next.Bans[action.Side], hero)
	} else {
		next.Picks[action.Side] = append(next.Picks[action.Side], hero)
	}
	next.TurnIndex = action.Index
	next.ActionProgress = action.Progress + 1

	// Re-derive: if the step is now fully consumed, promote to the next
	// live step so callers always see a fresh "current action" after Apply.
	if following := CurrentAction(next); following != nil {
		next.TurnIndex = following.Index
		next.ActionProgress = following.Progress
	} else {
		next.TurnIndex = TotalSteps
		next.ActionProgress = 0
	}

	return next
}

// LegalCandidates returns heroNames minus every hero already used
// anywhere in state, sorted for deterministic enumeration order.
func LegalCandidates(heroNames []string, state domain.DraftState) []string {
	used := state.AllUsedHeroes()
	out := make([]string, 0, len(heroNames))
	for _, name := range heroNames {
		if _, ok := used[name]; !ok {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}
