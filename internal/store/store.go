// Package store implements the hero profile store (spec.md §4.A): an
// immutable, in-memory catalogue of hero eligibility, role power, meta
// strength and counter relationships, built once from the role-pool and
// tier-list source files and cached by their modification fingerprints.
package store

import (
	"sort"

	"github.com/dom/draft-advisor/internal/domain"
)

// Store is a read-only view over one build generation of the hero
// profile catalogue. Store values are cheap to construct and safe for
// concurrent use — they only ever read from the generation they were
// handed at construction time.
type Store struct {
	gen *Generation
}

// New builds (or fetches from cache) the hero profile store rooted at
// dir. Passing refresh bypasses the cache and forces a rebuild. This is
// the explicit constructor spec.md §9 calls for — tests should use it
// directly rather than reaching through a process-wide singleton.
func New(dir string, refresh bool) (*Store, error) {
	gen, err := cacheFor(dir).getOrBuild(dir, refresh)
	if err != nil {
		return nil, err
	}
	return &Store{gen: gen}, nil
}

// Get returns the profile for hero (already-normalised lowercase name)
// and whether it was found.
func (s *Store) Get(hero string) (*domain.HeroProfile, bool) {
	profile, ok := s.gen.Heroes[hero]
	return profile, ok
}

// Keys returns every hero name in the store, sorted for deterministic
// iteration (spec.md §9, determinism guarantees).
func (s *Store) Keys() []string {
	return s.gen.Keys()
}

// Warnings returns the warnings produced when this generation was built.
func (s *Store) Warnings() []string {
	out := make([]string, len(s.gen.Warnings))
	copy(out, s.gen.Warnings)
	return out
}

// Version returns the role pool source document's version string.
func (s *Store) Version() string {
	return s.gen.Version
}

// Source returns the role pool source document's source string.
func (s *Store) Source() string {
	return s.gen.Source
}

// Len reports how many heroes the store holds.
func (s *Store) Len() int {
	return len(s.gen.Heroes)
}

// FlexHeroCount reports how many heroes are eligible for more than one
// role, used by the /draft/meta coverage summary.
func (s *Store) FlexHeroCount() int {
	count := 0
	for _, profile := range s.gen.Heroes {
		if profile.IsFlex() {
			count++
		}
	}
	return count
}

// RoleCoverage reports, per role, how many heroes are eligible for it.
func (s *Store) RoleCoverage() map[domain.Role]int {
	coverage := make(map[domain.Role]int, len(domain.AllRoles))
	for _, role := range domain.AllRoles {
		coverage[role] = 0
	}
	for _, profile := range s.gen.Heroes {
		for _, role := range profile.PossibleRoles {
			coverage[role]++
		}
	}
	return coverage
}

// Unresolved filters heroNames down to those absent from the store,
// sorted, used by handlers to build the UnknownHero warning list.
func (s *Store) Unresolved(heroNames []string) []string {
	var unknown []string
	for _, name := range heroNames {
		if _, ok := s.gen.Heroes[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)
	return unknown
}
