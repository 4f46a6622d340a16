package store

import (
	"sort"

	"github.com/dom/draft-advisor/internal/domain"
)

// RolePoolDocument is hero_role_pool.json, the base catalogue of which
// roles each hero may occupy and how strong it is mechanically at each.
type RolePoolDocument struct {
	Version string                     `json:"version"`
	Source  string                     `json:"source"`
	Roles   []string                   `json:"roles"`
	Heroes  map[string]RolePoolHero    `json:"heroes"`
}

type RolePoolHero struct {
	PossibleRoles []string           `json:"possibleRoles"`
	RolePower     map[string]float64 `json:"rolePower"`
	Tags          []string           `json:"tags"`
}

// OverrideDocument patches individual hero entries in the base role pool.
// Same shape as RolePoolDocument's heroes map, validated the same way.
type OverrideDocument struct {
	Heroes map[string]RolePoolHero `json:"heroes"`
}

// TierListDocument is hero_tier_list.json, the per-role breakdown of tier
// grade, pick/ban/win statistics, and counter relationships.
type TierListDocument struct {
	Roles map[string]TierListRole `json:"roles"`
}

type TierListRole struct {
	HeroDetails []TierListHeroDetail `json:"heroDetails"`
}

type TierListHeroDetail struct {
	Hero     string          `json:"hero"`
	Tier     string          `json:"tier"`
	Score    float64         `json:"score"`
	Stats    TierListStats    `json:"stats"`
	Counters TierListCounters `json:"counters"`
}

type TierListStats struct {
	PickWinCount int     `json:"pickWinCount"`
	PickCount    int     `json:"pickCount"`
	BanCount     int     `json:"banCount"`
	WinRate      float64 `json:"winRate"`
}

type TierListCounters struct {
	StrongAgainst []TierListStrongAgainst `json:"strongAgainst"`
	CounteredBy   []TierListCounteredBy   `json:"counteredBy"`
}

type TierListStrongAgainst struct {
	Hero       string  `json:"hero"`
	WinRate    float64 `json:"winRate"`
	Encounters int     `json:"encounters"`
}

type TierListCounteredBy struct {
	Hero             string  `json:"hero"`
	OpponentWinRate  float64 `json:"opponentWinRate"`
	Encounters       int     `json:"encounters"`
}

// Generation is one immutable build of the hero profile catalogue plus
// the warnings its build produced, keyed by the fingerprints of the
// source files that produced it.
type Generation struct {
	Heroes       map[string]*domain.HeroProfile
	Warnings     []string
	Fingerprints [3]int64
	Version      string
	Source       string
}

// Keys returns every hero name in the generation, sorted, for
// deterministic iteration order (spec.md §9, "Tie-breaking").
func (g *Generation) Keys() []string {
	keys := make([]string, 0, len(g.Heroes))
	for name := range g.Heroes {
		keys = append(keys, name)
	}
	sort.Strings(keys)
	return keys
}
