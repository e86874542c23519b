/* veto.go
 * Contains the pure ban/pick phase machine. Phase and turn are never stored; they are always
 * recomputed from the lengths of the append-only veto and pick logs, so replaying the same
 * logs always yields the same state
 * Authors: Zachary Bower
 */

package logic

import (
	"fmt"

	"tournament-bot/api/shared"
)

// ActionType is the kind of map selection a team performs on its turn
type ActionType string

const (
	ActionVeto ActionType = "veto"
	ActionPick ActionType = "pick"
)

// Phase describes what the ban/pick protocol expects next for a game
type Phase struct {
	Turn     shared.TeamNumber // team that acts next; NoTeam once complete
	Expected ActionType        // action the schedule demands at this position
	Complete bool              // true once the decider has been derived
}

// Schedule returns the explicit action sequence for a format and pool size. The sequence has
// poolSize-1 slots; the final remaining map becomes the decider and is never an explicit
// action. Pick slots sit at fixed positions: none for bo1, positions 2-3 for bo3 and
// positions 2-5 for bo5, all other slots are vetoes.
func Schedule(format shared.Format, poolSize int) []ActionType {
	slots := poolSize - 1
	if slots < 0 {
		slots = 0
	}
	schedule := make([]ActionType, slots)
	for i := range schedule {
		schedule[i] = ActionVeto
	}
	switch format {
	case shared.Bo3:
		for _, i := range []int{2, 3} {
			if i < slots {
				schedule[i] = ActionPick
			}
		}
	case shared.Bo5:
		for _, i := range []int{2, 3, 4, 5} {
			if i < slots {
				schedule[i] = ActionPick
			}
		}
	}
	return schedule
}

// DerivePhase recomputes the current phase of a game from its veto and pick counts. The pick
// count includes the system-authored decider, so a completed bo3 has 2 picks + 1 decider and
// a completed bo1 has the decider as its only pick.
// Preconditions: counts are the row counts of the game's veto and pick logs, poolSize >= 2
// Postconditions: returns the Phase, or an error if the counts exceed the schedule bounds
func DerivePhase(vetoCount, pickCount int, format shared.Format, poolSize int) (Phase, error) {
	schedule := Schedule(format, poolSize)
	totalOrder := vetoCount + pickCount

	if totalOrder >= len(schedule) {
		// Either the decider has been appended (totalOrder == poolSize) or something wrote
		// past the schedule, which indicates a corrupted log
		if totalOrder > poolSize {
			return Phase{}, fmt.Errorf("veto/pick log has %d entries but the pool only holds %d maps", totalOrder, poolSize)
		}
		return Phase{Turn: shared.NoTeam, Complete: true}, nil
	}

	turn := shared.TeamOne
	if totalOrder%2 != 0 {
		turn = shared.TeamTwo
	}
	return Phase{Turn: turn, Expected: schedule[totalOrder]}, nil
}

// RemainingMaps returns the pool maps that have not been vetoed or picked, preserving pool
// order
func RemainingMaps(pool []string, used []string) []string {
	taken := make(map[string]bool, len(used))
	for _, name := range used {
		taken[name] = true
	}
	var remaining []string
	for _, name := range pool {
		if !taken[name] {
			remaining = append(remaining, name)
		}
	}
	return remaining
}

// ValidateSelection checks that a map is in the pool and still available
// Preconditions: used contains every map name already vetoed or picked in the game
// Postconditions: returns nil if the map can be selected, else shared.ErrMapUnavailable
func ValidateSelection(pool []string, used []string, mapName string) error {
	inPool := false
	for _, name := range pool {
		if name == mapName {
			inPool = true
			break
		}
	}
	if !inPool {
		return shared.ErrMapUnavailable
	}
	for _, name := range used {
		if name == mapName {
			return shared.ErrMapUnavailable
		}
	}
	return nil
}

// DeciderMap returns the single map left over once the explicit schedule has run. It is the
// map neither team selected and becomes the last map of the series.
// Preconditions: exactly poolSize-1 maps have been vetoed or picked
// Postconditions: returns the remaining map name, or an error if the count is not exactly one
func DeciderMap(pool []string, used []string) (string, error) {
	remaining := RemainingMaps(pool, used)
	if len(remaining) != 1 {
		return "", fmt.Errorf("expected exactly one remaining map, found %d", len(remaining))
	}
	return remaining[0], nil
}
