// Package sequence implements the fixed 15-step ban/pick sequence state
// machine (spec.md §4.D). The script itself is a constant, un-configurable
// table: five ally bans, five enemy bans, five ally picks and five enemy
// picks compressed into 15 steps, mirroring — at smaller scale — the
// ban-phase/pick-phase shape of the teacher's own
// internal/domain/draft.go ProPlayPhases script.
package sequence

import "github.com/dom/draft-advisor/internal/domain"

// Step describes one entry of the fixed script.
type Step struct {
	Type  domain.ActionType
	Side  domain.Side
	Count int
}

// Script is the fixed, un-configurable 15-step ban/pick sequence.
var Script = []Step{
	{Type: domain.ActionTypeBan, Side: domain.SideAlly, Count: 2},
	{Type: domain.ActionTypeBan, Side: domain.SideEnemy, Count: 2},
	{Type: domain.ActionTypeBan, Side: domain.SideAlly, Count: 1},
	{Type: domain.ActionTypeBan, Side: domain.SideEnemy, Count: 2},
	{Type: domain.ActionTypeBan, Side: domain.SideAlly, Count: 1},
	{Type: domain.ActionTypeBan, Side: domain.SideEnemy, Count: 1},
	{Type: domain.ActionTypeBan, Side: domain.SideAlly, Count: 1},
	{Type: domain.ActionTypePick, Side: domain.SideAlly, Count: 2},
	{Type: domain.ActionTypePick, Side: domain.SideEnemy, Count: 1},
	{Type: domain.ActionTypePick, Side: domain.SideAlly, Count: 1},
	{Type: domain.ActionTypePick, Side: domain.SideEnemy, Count: 2},
	{Type: domain.ActionTypePick, Side: domain.SideAlly, Count: 1},
	{Type: domain.ActionTypePick, Side: domain.SideEnemy, Count: 1},
	{Type: domain.ActionTypePick, Side: domain.SideAlly, Count: 1},
	{Type: domain.ActionTypePick, Side: domain.SideEnemy, Count: 1},
}

// TotalSteps is the fixed script length.
const TotalSteps = 15

// RosterSize is how many picks (and bans) each side makes over the script.
const RosterSize = 5
