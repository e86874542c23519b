/* pairing.go
 * Contains the round progression rules: the exact finished-game thresholds that close each
 * stage, the swiss record buckets that feed the next round, and the shuffle pairing algorithm
 * Authors: Zachary Bower
 */

package logic

import (
	"math/rand"

	"tournament-bot/api/shared"
)

// The bracket is fixed at 16 teams with a swiss cut to 8 playoff teams, which makes every
// stage boundary an exact cumulative count of finished games.
const (
	TeamCount = 16

	Swiss1Complete        = 8  // 8 opening games
	Swiss2Complete        = 16 // + 4 high and 4 low games
	Swiss3Complete        = 24 // + 2 high, 4 mid, 2 low games
	Swiss4Complete        = 30 // + 3 high and 3 low games
	SwissStageComplete    = 33 // + 3 last-chance games
	QuarterfinalsComplete = 37 // + 4 quarterfinals
	SemifinalsComplete    = 39 // + 2 semifinals
	TournamentComplete    = 41 // + third place and final
)

// RoundsToCreate maps an exact finished-game count to the round types that open next. Any
// other count means the current stage is still running and returns nil. Completion is an
// equality check, never an inequality; a retried invocation for the same count is handled by
// the caller checking whether the round's games already exist.
func RoundsToCreate(finishedGames int) []shared.RoundType {
	switch finishedGames {
	case Swiss1Complete:
		return []shared.RoundType{shared.Swiss2High, shared.Swiss2Low}
	case Swiss2Complete:
		return []shared.RoundType{shared.Swiss3High, shared.Swiss3Mid, shared.Swiss3Low}
	case Swiss3Complete:
		return []shared.RoundType{shared.Swiss4High, shared.Swiss4Low}
	case Swiss4Complete:
		return []shared.RoundType{shared.Swiss5}
	case SwissStageComplete:
		return []shared.RoundType{shared.Quarterfinal}
	case QuarterfinalsComplete:
		return []shared.RoundType{shared.Semifinal}
	case SemifinalsComplete:
		return []shared.RoundType{shared.ThirdPlace, shared.Final}
	default:
		return nil
	}
}

// SwissBucket is the exact (wins, losses) record a team must hold to enter a swiss round.
// Teams that already hold 3 wins or 3 losses have left the stage and match no bucket; that
// implicit exclusion is relied on and covered by tests.
type SwissBucket struct {
	Wins   int
	Losses int
}

// BucketForRound returns the record bucket feeding a swiss round type. ok is false for
// swiss_1 (all teams) and for playoff rounds, which select by eligibility flag instead.
func BucketForRound(round shared.RoundType) (SwissBucket, bool) {
	switch round {
	case shared.Swiss2High:
		return SwissBucket{Wins: 1, Losses: 0}, true
	case shared.Swiss2Low:
		return SwissBucket{Wins: 0, Losses: 1}, true
	case shared.Swiss3High:
		return SwissBucket{Wins: 2, Losses: 0}, true
	case shared.Swiss3Mid:
		return SwissBucket{Wins: 1, Losses: 1}, true
	case shared.Swiss3Low:
		return SwissBucket{Wins: 0, Losses: 2}, true
	case shared.Swiss4High:
		return SwissBucket{Wins: 2, Losses: 1}, true
	case shared.Swiss4Low:
		return SwissBucket{Wins: 1, Losses: 2}, true
	case shared.Swiss5:
		return SwissBucket{Wins: 2, Losses: 2}, true
	default:
		return SwissBucket{}, false
	}
}

// Pairing is one created match-up; First becomes team one and acts first in the veto
type Pairing struct {
	First  string
	Second string
}

// PairTeams uniformly shuffles the pool and pairs adjacent entries. The shuffle order decides
// which team is team one per game, so the first-turn advantage is randomized.
// Preconditions: rng is non-nil, teamIDs has an even length
// Postconditions: returns len(teamIDs)/2 pairings with every team appearing exactly once, or
// shared.ErrUnpairableTeamCount for an odd pool
func PairTeams(teamIDs []string, rng *rand.Rand) ([]Pairing, error) {
	if len(teamIDs)%2 != 0 {
		return nil, shared.ErrUnpairableTeamCount
	}
	shuffled := make([]string, len(teamIDs))
	copy(shuffled, teamIDs)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	pairings := make([]Pairing, 0, len(shuffled)/2)
	for i := 0; i+1 < len(shuffled); i += 2 {
		pairings = append(pairings, Pairing{First: shuffled[i], Second: shuffled[i+1]})
	}
	return pairings, nil
}
