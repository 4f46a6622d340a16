// Package solver implements the role-feasibility solver (spec.md §4.B):
// given up to five heroes, decide whether they can be simultaneously
// assigned to the five distinct roles, and if so return the
// maximum-power assignment plus the set of roles each hero could occupy
// across any valid assignment.
//
// The search is a depth-first match over a small bipartite graph. Heroes
// are ordered most-constrained-first to bound branching, and the walk is
// plain recursion bounded to a fixed depth of 5 (spec.md §9, "Deep
// search state" — there is no unbounded recursion risk since a draft
// side never holds more than five heroes), mirroring how the teacher's
// matchmaking search (findBestRoleAssignment) favors small,
// allocation-free enumeration over unbounded recursion.
package solver

import (
	"sort"

	"github.com/dom/draft-advisor/internal/domain"
	"github.com/dom/draft-advisor/internal/numeric"
	"github.com/dom/draft-advisor/internal/store"
)

// Result is the outcome of solving the feasibility problem for one side.
type Result struct {
	IsFeasible       bool
	ValidAssignments int
	BestAssignment   map[domain.Role]string
	OpenRoles        []domain.Role
	FeasibilityScore float64
	HeroRoleOptions  map[string][]domain.Role
}

type candidateHero struct {
	name  string
	roles []domain.Role
	power map[domain.Role]float64
}

// Solve decides whether heroes (up to 5 names) can be assigned to the
// five roles in domain.AllRoles, each hero restricted to its eligible
// role set from s. Heroes unknown to s are given all five roles at
// domain.UnknownHeroRolePower, per spec.md §4.B.
func Solve(heroes []string, s *store.Store) Result {
	n := len(heroes)
	if n == 0 {
		return Result{
			IsFeasible:       true,
			FeasibilityScore: 1.0,
			BestAssignment:   map[domain.Role]string{},
			OpenRoles:        append([]domain.Role{}, domain.AllRoles...),
			HeroRoleOptions:  map[string][]domain.Role{},
		}
	}

	candidates := make([]candidateHero, n)
	for i, name := range heroes {
		candidates[i] = buildCandidate(name, s)
	}

	// Most-constrained-first ordering bounds branching (spec.md §4.B.1).
	sort.SliceStable(candidates, func(i, j int) bool {
		return len(candidates[i].roles) < len(candidates[j].roles)
	})

	w := &walker{
		candidates:      candidates,
		usedRole:        make(map[domain.Role]bool),
		assignment:      make(map[domain.Role]string),
		heroRoleOptions: make(map[string]map[domain.Role]bool),
	}
	for _, c := range candidates {
		w.heroRoleOptions[c.name] = make(map[domain.Role]bool)
	}

	w.run(0)

	result := Result{
		ValidAssignments: w.validAssignments,
		IsFeasible:       w.validAssignments > 0,
		BestAssignment:   map[domain.Role]string{},
		HeroRoleOptions:  make(map[string][]domain.Role, n),
	}

	if w.validAssignments > 0 {
		result.BestAssignment = w.bestAssignment
	}

	usedRoles := make(map[domain.Role]bool, len(result.BestAssignment))
	for role := range result.BestAssignment {
		usedRoles[role] = true
	}
	for _, role := range domain.AllRoles {
		if !usedRoles[role] {
			result.OpenRoles = append(result.OpenRoles, role)
		}
	}

	for name, roles := range w.heroRoleOptions {
		options := make([]domain.Role, 0, len(roles))
		for _, role := range domain.AllRoles {
			if roles[role] {
				options = append(options, role)
			}
		}
		result.HeroRoleOptions[name] = options
	}
	// Heroes that appear more than once in the input collapse to one
	// entry in heroRoleOptions; make sure every requested name still
	// has a (possibly empty) slot.
	for _, name := range heroes {
		if _, ok := result.HeroRoleOptions[name]; !ok {
			result.HeroRoleOptions[name] = []domain.Role{}
		}
	}

	result.FeasibilityScore = feasibilityScore(w.validAssignments, w.bestScore, n)

	return result
}

func buildCandidate(name string, s *store.Store) candidateHero {
	profile, ok := s.Get(name)
	if !ok {
		power := make(map[domain.Role]float64, len(domain.AllRoles))
		for _, role := range domain.AllRoles {
			power[role] = domain.UnknownHeroRolePower
		}
		return candidateHero{
			name:  name,
			roles: append([]domain.Role{}, domain.AllRoles...),
			power: power,
		}
	}
	return candidateHero{
		name:  name,
		roles: profile.PossibleRoles,
		power: profile.RolePower,
	}
}

// walker runs the DFS. It is reused for a single Solve call and never
// shared across goroutines.
type walker struct {
	candidates []candidateHero
	usedRole   map[domain.Role]bool
	assignment map[domain.Role]string

	validAssignments int
	bestScore        float64
	bestAssignment   map[domain.Role]string

	heroRoleOptions map[string]map[domain.Role]bool
}

// run performs the DFS starting at candidate index idx, recursing one
// frame per candidate and bounded to the at-most-5 depth a draft side
// ever requires.
func (w *walker) run(idx int) {
	if idx == len(w.candidates) {
		w.recordComplete()
		return
	}

	c := w.candidates[idx]
	for _, role := range domain.AllRoles {
		if w.usedRole[role] || !containsRole(c.roles, role) {
			continue
		}
		w.usedRole[role] = true
		w.assignment[role] = c.name
		w.run(idx + 1)
		delete(w.assignment, role)
		w.usedRole[role] = false
	}
}

func (w *walker) recordComplete() {
	w.validAssignments++

	score := 0.0
	for role, name := range w.assignment {
		for _, c := range w.candidates {
			if c.name == name {
				score += c.power[role]
			}
		}
		w.heroRoleOptions[name][role] = true
	}

	if w.bestAssignment == nil || score > w.bestScore {
		w.bestScore = score
		w.bestAssignment = make(map[domain.Role]string, len(w.assignment))
		for role, name := range w.assignment {
			w.bestAssignment[role] = name
		}
	}
}

func containsRole(roles []domain.Role, target domain.Role) bool {
	for _, r := range roles {
		if r == target {
			return true
		}
	}
	return false
}

// feasibilityScore implements spec.md §4.B's blend: 0.45 weight on the
// fraction of valid assignments out of the maximum possible (a
// permutation of n roles out of len(domain.AllRoles)), 0.55 weight on
// the best assignment's average per-hero power.
func feasibilityScore(validAssignments int, bestScore float64, n int) float64 {
	if n == 0 {
		return 1.0
	}
	maxPermutations := numeric.Permutations(len(domain.AllRoles), n)
	fractionValid := float64(validAssignments) / maxPermutations
	avgPower := bestScore / float64(n)
	return numeric.Round4(numeric.Clamp01(0.45*fractionValid + 0.55*avgPower))
}
