package store

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/dom/draft-advisor/internal/advisorerr"
	"github.com/dom/draft-advisor/internal/domain"
	"github.com/dom/draft-advisor/internal/numeric"
)

// role-meta blend weights (spec.md §3): tier score 42%, normalised
// pick-win count 28%, normalised pick count 12%, normalised ban count 8%,
// role-power×100 10%. They sum to 1.0.
const (
	weightTier     = 0.42
	weightPickWin  = 0.28
	weightPick     = 0.12
	weightBan      = 0.08
	weightRolePower = 0.10
)

// build reads the three source documents from dir, validates and merges
// them, and returns the resulting generation. Any validation failure is
// returned as a *advisorerr.ConfigError; I/O and JSON errors are wrapped
// the same way.
func build(dir string) (*Generation, error) {
	rolePoolPath, overridePath, tierListPath := sourcePaths(dir)

	rolePool, err := readRolePool(rolePoolPath)
	if err != nil {
		return nil, err
	}

	override, err := readOverride(overridePath)
	if err != nil {
		return nil, err
	}

	tierList, err := readTierList(tierListPath)
	if err != nil {
		return nil, err
	}

	var messages []string
	roleSet, roleOrder, errs := validateRoles(rolePool.Roles)
	messages = append(messages, errs...)

	heroes := make(map[string]*heroBuild)
	for rawName, entry := range rolePool.Heroes {
		name := normalizeHeroName(rawName)
		hb, errs := newHeroBuild(name, entry, roleSet, roleOrder)
		messages = append(messages, errs...)
		if hb != nil {
			heroes[name] = hb
		}
	}

	if override != nil {
		for rawName, entry := range override.Heroes {
			name := normalizeHeroName(rawName)
			existing, ok := heroes[name]
			if !ok {
				hb, errs := newHeroBuild(name, entry, roleSet, roleOrder)
				messages = append(messages, errs...)
				if hb != nil {
					heroes[name] = hb
				}
				continue
			}
			errs := existing.applyOverride(entry, roleSet, roleOrder)
			messages = append(messages, errs...)
		}
	}

	if len(messages) > 0 {
		return nil, advisorerr.NewConfigError(messages)
	}

	var warnings []string
	mergeTierList(heroes, tierList, roleOrder, &warnings)

	profiles := make(map[string]*domain.HeroProfile, len(heroes))
	for name, hb := range heroes {
		profiles[name] = hb.finish()
	}

	return &Generation{
		Heroes:       profiles,
		Warnings:     warnings,
		Fingerprints: fingerprints(dir),
		Version:      rolePool.Version,
		Source:       rolePool.Source,
	}, nil
}

func readRolePool(path string) (*RolePoolDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, advisorerr.NewConfigError([]string{fmt.Sprintf("role pool file %q: %v", path, err)})
	}
	var doc RolePoolDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, advisorerr.NewConfigError([]string{fmt.Sprintf("role pool file %q: malformed JSON: %v", path, err)})
	}
	return &doc, nil
}

func readOverride(path string) (*OverrideDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, advisorerr.NewConfigError([]string{fmt.Sprintf("override file %q: %v", path, err)})
	}
	var doc OverrideDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, advisorerr.NewConfigError([]string{fmt.Sprintf("override file %q: malformed JSON: %v", path, err)})
	}
	return &doc, nil
}

func readTierList(path string) (*TierListDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, advisorerr.NewConfigError([]string{fmt.Sprintf("tier list file %q: %v", path, err)})
	}
	var doc TierListDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, advisorerr.NewConfigError([]string{fmt.Sprintf("tier list file %q: malformed JSON: %v", path, err)})
	}
	return &doc, nil
}

func normalizeHeroName(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// validateRoles checks that roles is a non-empty list of unique,
// non-empty strings and returns a lookup set plus the canonical order.
func validateRoles(roles []string) (map[domain.Role]bool, []domain.Role, []string) {
	var messages []string
	if len(roles) == 0 {
		return nil, nil, []string{"role pool: roles list must be non-empty"}
	}

	set := make(map[domain.Role]bool, len(roles))
	order := make([]domain.Role, 0, len(roles))
	for _, raw := range roles {
		trimmed := strings.ToLower(strings.TrimSpace(raw))
		if trimmed == "" {
			messages = append(messages, "role pool: role name must be non-empty")
			continue
		}
		role := domain.Role(trimmed)
		if set[role] {
			messages = append(messages, fmt.Sprintf("role pool: duplicate role %q", trimmed))
			continue
		}
		set[role] = true
		order = append(order, role)
	}
	return set, order, messages
}

// heroBuild accumulates a hero's fields across the role-pool, override
// and tier-list merge stages before finish() freezes it into a
// domain.HeroProfile.
type heroBuild struct {
	name          string
	possibleRoles []domain.Role
	rolePower     map[domain.Role]float64
	tags          map[string]struct{}
	roleMeta      map[domain.Role]float64
	bestTierScore float64
	strongAgainst map[string]float64
	counteredBy   map[string]float64
}

func newHeroBuild(name string, entry RolePoolHero, roleSet map[domain.Role]bool, roleOrder []domain.Role) (*heroBuild, []string) {
	var messages []string

	if len(entry.PossibleRoles) == 0 {
		messages = append(messages, fmt.Sprintf("hero %q: possibleRoles must be non-empty", name))
		return nil, messages
	}

	roles := make(map[domain.Role]bool, len(entry.PossibleRoles))
	for _, raw := range entry.PossibleRoles {
		role := domain.Role(strings.ToLower(strings.TrimSpace(raw)))
		if !roleSet[role] {
			messages = append(messages, fmt.Sprintf("hero %q: role %q is not in the role pool", name, role))
			continue
		}
		roles[role] = true
	}
	if len(messages) > 0 {
		return nil, messages
	}

	hb := &heroBuild{
		name:          name,
		possibleRoles: canonicalOrder(roles, roleOrder),
		rolePower:     make(map[domain.Role]float64),
		tags:          make(map[string]struct{}),
		roleMeta:      make(map[domain.Role]float64),
		strongAgainst: make(map[string]float64),
		counteredBy:   make(map[string]float64),
	}

	for raw, power := range entry.RolePower {
		role := domain.Role(strings.ToLower(strings.TrimSpace(raw)))
		hb.rolePower[role] = numeric.Round4(numeric.Clamp01(power))
	}
	hb.fillDefaultPowers()

	for _, tag := range entry.Tags {
		t := strings.ToLower(strings.TrimSpace(tag))
		if t != "" {
			hb.tags[t] = struct{}{}
		}
	}

	return hb, nil
}

// applyOverride patches an existing heroBuild per spec.md §4.A: a
// replaced possibleRoles wipes incompatible role_power keys; missing
// role powers refill with the default; possibleRoles order follows the
// canonical role order.
func (hb *heroBuild) applyOverride(entry RolePoolHero, roleSet map[domain.Role]bool, roleOrder []domain.Role) []string {
	var messages []string

	if len(entry.PossibleRoles) > 0 {
		roles := make(map[domain.Role]bool, len(entry.PossibleRoles))
		for _, raw := range entry.PossibleRoles {
			role := domain.Role(strings.ToLower(strings.TrimSpace(raw)))
			if !roleSet[role] {
				messages = append(messages, fmt.Sprintf("hero %q override: role %q is not in the role pool", hb.name, role))
				continue
			}
			roles[role] = true
		}
		if len(messages) > 0 {
			return messages
		}
		hb.possibleRoles = canonicalOrder(roles, roleOrder)

		// Wipe role_power keys that no longer apply.
		kept := make(map[domain.Role]float64)
		for role, power := range hb.rolePower {
			if roles[role] {
				kept[role] = power
			}
		}
		hb.rolePower = kept
	}

	for raw, power := range entry.RolePower {
		role := domain.Role(strings.ToLower(strings.TrimSpace(raw)))
		hb.rolePower[role] = numeric.Round4(numeric.Clamp01(power))
	}
	hb.fillDefaultPowers()

	if len(entry.Tags) > 0 {
		for _, tag := range entry.Tags {
			t := strings.ToLower(strings.TrimSpace(tag))
			if t != "" {
				hb.tags[t] = struct{}{}
			}
		}
	}

	return nil
}

func (hb *heroBuild) fillDefaultPowers() {
	for _, role := range hb.possibleRoles {
		if _, ok := hb.rolePower[role]; !ok {
			hb.rolePower[role] = domain.DefaultRolePower
		}
	}
}

func canonicalOrder(roles map[domain.Role]bool, roleOrder []domain.Role) []domain.Role {
	out := make([]domain.Role, 0, len(roles))
	for _, role := range roleOrder {
		if roles[role] {
			out = append(out, role)
		}
	}
	return out
}

// mergeTierList folds per-role tier-list stats into each hero's
// roleMeta/bestTierScore/strongAgainst/countered_by, and synthesizes
// fallback profiles for heroes absent from the role pool.
func mergeTierList(heroes map[string]*heroBuild, tierList *TierListDocument, roleOrder []domain.Role, warnings *[]string) {
	// First pass: per-role max stat values, for the normalisation terms.
	type statMax struct{ pickWin, pick, ban int }
	maxByRole := make(map[string]statMax, len(tierList.Roles))
	for roleName, roleData := range tierList.Roles {
		var m statMax
		for _, detail := range roleData.HeroDetails {
			if detail.Stats.PickWinCount > m.pickWin {
				m.pickWin = detail.Stats.PickWinCount
			}
			if detail.Stats.PickCount > m.pick {
				m.pick = detail.Stats.PickCount
			}
			if detail.Stats.BanCount > m.ban {
				m.ban = detail.Stats.BanCount
			}
		}
		maxByRole[roleName] = m
	}

	seenUnmapped := make(map[string]bool)

	roleNames := make([]string, 0, len(tierList.Roles))
	for roleName := range tierList.Roles {
		roleNames = append(roleNames, roleName)
	}
	sort.Strings(roleNames)

	for _, roleName := range roleNames {
		roleData := tierList.Roles[roleName]
		maxes := maxByRole[roleName]
		role := domain.Role(strings.ToLower(strings.TrimSpace(roleName)))

		for _, detail := range roleData.HeroDetails {
			name := normalizeHeroName(detail.Hero)
			tierScore := domain.Tier(strings.ToUpper(strings.TrimSpace(detail.Tier))).Score()

			hb, ok := heroes[name]
			if !ok {
				if !seenUnmapped[name] {
					*warnings = append(*warnings, fmt.Sprintf("hero %q present in tier list but absent from role pool; using fallback profile", name))
					seenUnmapped[name] = true
				}
				hb = &heroBuild{
					name:          name,
					rolePower:     make(map[domain.Role]float64),
					tags:          map[string]struct{}{"unmapped": {}},
					roleMeta:      make(map[domain.Role]float64),
					strongAgainst: make(map[string]float64),
					counteredBy:   make(map[string]float64),
				}
				heroes[name] = hb
			}
			mapped := !seenUnmapped[name]

			if !hb.hasRole(role) {
				if mapped {
					// Hero exists in the role pool but this tier-list
					// role isn't one of its possible roles. Ignore this
					// role's contribution to role_meta for this hero.
					continue
				}
				hb.possibleRoles = append(hb.possibleRoles, role)
				hb.rolePower[role] = domain.DefaultRolePower
			}

			normPickWin := normalizeCount(detail.Stats.PickWinCount, maxes.pickWin)
			normPick := normalizeCount(detail.Stats.PickCount, maxes.pick)
			normBan := normalizeCount(detail.Stats.BanCount, maxes.ban)
			rolePower := hb.rolePower[role]

			meta := weightTier*tierScore +
				weightPickWin*normPickWin*100 +
				weightPick*normPick*100 +
				weightBan*normBan*100 +
				weightRolePower*rolePower*100
			if !mapped {
				// Fallback profiles use the tier score alone.
				meta = tierScore
			}
			hb.roleMeta[role] = numeric.Round4(numeric.Clamp100(meta))

			if tierScore > hb.bestTierScore {
				hb.bestTierScore = tierScore
			}

			for _, sa := range detail.Counters.StrongAgainst {
				opponent := normalizeHeroName(sa.Hero)
				value := numeric.Clamp01(sa.WinRate * numeric.ClampN(float64(sa.Encounters)/5, 1))
				if existing, seen := hb.strongAgainst[opponent]; !seen || value > existing {
					hb.strongAgainst[opponent] = value
				}
			}
			for _, cb := range detail.Counters.CounteredBy {
				opponent := normalizeHeroName(cb.Hero)
				value := numeric.Clamp01(cb.OpponentWinRate * numeric.ClampN(float64(cb.Encounters)/5, 1))
				if existing, seen := hb.counteredBy[opponent]; !seen || value > existing {
					hb.counteredBy[opponent] = value
				}
			}
		}
	}

	// Roles assigned from the fallback path need canonical ordering.
	for _, hb := range heroes {
		if _, unmapped := hb.tags["unmapped"]; unmapped {
			roleSet := make(map[domain.Role]bool, len(hb.possibleRoles))
			for _, role := range hb.possibleRoles {
				roleSet[role] = true
			}
			hb.possibleRoles = canonicalOrder(roleSet, roleOrder)
		}
	}
}

func (hb *heroBuild) hasRole(role domain.Role) bool {
	for _, r := range hb.possibleRoles {
		if r == role {
			return true
		}
	}
	return false
}

func normalizeCount(value, max int) float64 {
	if max <= 0 {
		return 0
	}
	return float64(value) / float64(max)
}

// finish freezes a heroBuild into an immutable domain.HeroProfile,
// computing base_meta as the mean of role_meta over possible_roles.
func (hb *heroBuild) finish() *domain.HeroProfile {
	metaValues := make([]float64, 0, len(hb.possibleRoles))
	for _, role := range hb.possibleRoles {
		if meta, ok := hb.roleMeta[role]; ok {
			metaValues = append(metaValues, meta)
		} else {
			// A hero with no tier-list entry for one of its roles still
			// needs a role_meta value; fall back to its role power.
			meta = numeric.Round4(numeric.Clamp100(hb.rolePower[role] * 100))
			hb.roleMeta[role] = meta
			metaValues = append(metaValues, meta)
		}
	}

	return &domain.HeroProfile{
		Name:          hb.name,
		PossibleRoles: hb.possibleRoles,
		RolePower:     hb.rolePower,
		RoleMeta:      hb.roleMeta,
		BaseMeta:      numeric.Round4(numeric.Clamp100(numeric.Mean(metaValues))),
		BestTierScore: hb.bestTierScore,
		StrongAgainst: hb.strongAgainst,
		CounteredBy:   hb.counteredBy,
		Tags:          hb.tags,
	}
}
