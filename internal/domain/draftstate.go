package domain

// DraftState is a request-scoped value: advancing it always produces a
// fresh copy, never a mutation in place, so that handlers can be reasoned
// about without aliasing concerns (spec.md §3, "Lifecycles").
type DraftState struct {
	Picks         map[Side][]string
	Bans          map[Side][]string
	TurnIndex     int
	ActionProgress int
}

// NewDraftState returns an empty, normalised draft state at the start of
// the sequence.
func NewDraftState() DraftState {
	return DraftState{
		Picks: map[Side][]string{SideAlly: {}, SideEnemy: {}},
		Bans:  map[Side][]string{SideAlly: {}, SideEnemy: {}},
	}
}

// Clone returns a deep copy of the state so callers can mutate the copy
// freely without touching the original.
func (s DraftState) Clone() DraftState {
	out := DraftState{
		Picks:          map[Side][]string{SideAlly: cloneList(s.Picks[SideAlly]), SideEnemy: cloneList(s.Picks[SideEnemy])},
		Bans:           map[Side][]string{SideAlly: cloneList(s.Bans[SideAlly]), SideEnemy: cloneList(s.Bans[SideEnemy])},
		TurnIndex:      s.TurnIndex,
		ActionProgress: s.ActionProgress,
	}
	return out
}

func cloneList(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}

// AllUsedHeroes returns every hero name appearing in either side's picks
// or bans.
func (s DraftState) AllUsedHeroes() map[string]struct{} {
	used := make(map[string]struct{})
	for _, side := range []Side{SideAlly, SideEnemy} {
		for _, hero := range s.Picks[side] {
			used[hero] = struct{}{}
		}
		for _, hero := range s.Bans[side] {
			used[hero] = struct{}{}
		}
	}
	return used
}

// IsUsed reports whether hero already appears anywhere in the state.
func (s DraftState) IsUsed(hero string) bool {
	_, used := s.AllUsedHeroes()[hero]
	return used
}
