/* veto_test.go
 * Contains unit tests for the ban/pick phase machine
 * Authors: Zachary Bower
 */

package logic

import (
	"testing"

	"tournament-bot/api/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testPool = []string{"inferno", "anubis", "nuke", "ancient", "mirage", "train", "dust2"}

// TestSchedule_Bo1 verifies all six explicit actions are vetoes for a bo1
func TestSchedule_Bo1(t *testing.T) {
	schedule := Schedule(shared.Bo1, 7)
	require.Len(t, schedule, 6)
	for i, action := range schedule {
		assert.Equal(t, ActionVeto, action, "position %d should be a veto", i)
	}
}

// TestSchedule_Bo3 verifies positions 2 and 3 are picks and the rest vetoes
func TestSchedule_Bo3(t *testing.T) {
	schedule := Schedule(shared.Bo3, 7)
	require.Len(t, schedule, 6)
	expected := []ActionType{ActionVeto, ActionVeto, ActionPick, ActionPick, ActionVeto, ActionVeto}
	assert.Equal(t, expected, schedule)
}

// TestSchedule_Bo5 verifies positions 2 through 5 are picks
func TestSchedule_Bo5(t *testing.T) {
	schedule := Schedule(shared.Bo5, 7)
	require.Len(t, schedule, 6)
	expected := []ActionType{ActionVeto, ActionVeto, ActionPick, ActionPick, ActionPick, ActionPick}
	assert.Equal(t, expected, schedule)
}

// TestDerivePhase_TurnAlternation checks the strict parity rule: even total order is team
// one's turn, odd is team two's, for every format
func TestDerivePhase_TurnAlternation(t *testing.T) {
	for _, format := range []shared.Format{shared.Bo1, shared.Bo3, shared.Bo5} {
		schedule := Schedule(format, 7)
		vetoes, picks := 0, 0
		for pos := 0; pos < len(schedule); pos++ {
			phase, err := DerivePhase(vetoes, picks, format, 7)
			require.NoError(t, err)
			assert.False(t, phase.Complete)

			wantTurn := shared.TeamOne
			if pos%2 != 0 {
				wantTurn = shared.TeamTwo
			}
			assert.Equal(t, wantTurn, phase.Turn, "format %s position %d", format, pos)
			assert.Equal(t, schedule[pos], phase.Expected, "format %s position %d", format, pos)

			if schedule[pos] == ActionVeto {
				vetoes++
			} else {
				picks++
			}
		}
	}
}

// TestDerivePhase_CompleteAfterSchedule checks the phase reports complete once the explicit
// schedule has run, with or without the decider appended
func TestDerivePhase_CompleteAfterSchedule(t *testing.T) {
	// bo3 after 4 vetoes and 2 picks, before the decider is appended
	phase, err := DerivePhase(4, 2, shared.Bo3, 7)
	require.NoError(t, err)
	assert.True(t, phase.Complete)
	assert.Equal(t, shared.NoTeam, phase.Turn)

	// after the decider pick
	phase, err = DerivePhase(4, 3, shared.Bo3, 7)
	require.NoError(t, err)
	assert.True(t, phase.Complete)
}

// TestDerivePhase_PureFunctionOfHistory checks deriving twice from the same log yields the
// same phase
func TestDerivePhase_PureFunctionOfHistory(t *testing.T) {
	first, err := DerivePhase(2, 1, shared.Bo3, 7)
	require.NoError(t, err)
	second, err := DerivePhase(2, 1, shared.Bo3, 7)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

// TestDerivePhase_OverflowedLog checks a log longer than the pool is reported as corrupt
func TestDerivePhase_OverflowedLog(t *testing.T) {
	_, err := DerivePhase(6, 2, shared.Bo3, 7)
	assert.Error(t, err)
}

// TestValidateSelection covers the pool membership and reuse rules
func TestValidateSelection(t *testing.T) {
	used := []string{"anubis", "train"}

	assert.NoError(t, ValidateSelection(testPool, used, "inferno"))
	assert.ErrorIs(t, ValidateSelection(testPool, used, "anubis"), shared.ErrMapUnavailable)
	assert.ErrorIs(t, ValidateSelection(testPool, used, "vertigo"), shared.ErrMapUnavailable)
}

// TestDeciderMap checks the leftover map derivation and the error on a short history
func TestDeciderMap(t *testing.T) {
	used := []string{"anubis", "train", "inferno", "mirage", "nuke", "ancient"}
	decider, err := DeciderMap(testPool, used)
	require.NoError(t, err)
	assert.Equal(t, "dust2", decider)

	_, err = DeciderMap(testPool, used[:4])
	assert.Error(t, err)
}

// TestRemainingMaps checks pool order is preserved
func TestRemainingMaps(t *testing.T) {
	remaining := RemainingMaps(testPool, []string{"nuke", "inferno"})
	assert.Equal(t, []string{"anubis", "ancient", "mirage", "train", "dust2"}, remaining)
}
