/* errors.go
 * Contains the domain error values. All of these are rejections of a requested operation; the
 * tournament state is left untouched when one is returned
 * Authors: Zachary Bower
 */

package shared

import "errors"

var (
	// ErrMapUnavailable is returned when a map is outside the pool or already vetoed/picked
	ErrMapUnavailable = errors.New("map is not in the pool or was already vetoed or picked")

	// ErrVetoAlreadyComplete is returned when the ban/pick sequence for a game has finished
	ErrVetoAlreadyComplete = errors.New("all vetoes and picks have been executed for this game")

	// ErrWrongPhase is returned when a veto arrives in a pick slot or the other way around
	ErrWrongPhase = errors.New("the requested action does not match the current phase")

	// ErrNotAuthorized is returned when the actor does not own the current turn's team
	ErrNotAuthorized = errors.New("actor is not the captain of the team whose turn it is")

	// ErrSeriesAlreadyDecided is returned when a result arrives for a finished series
	ErrSeriesAlreadyDecided = errors.New("the series winner has already been decided")

	// ErrInvalidTeamNumber is returned when a winner indicator is not 1 or 2
	ErrInvalidTeamNumber = errors.New("team number must be 1 or 2")

	// ErrMapNotFound is returned when a result names a map with no open map record. A map
	// whose winner is already set is treated the same way; results are never overwritten.
	ErrMapNotFound = errors.New("no unfinished map with that name belongs to this game")

	// ErrUnpairableTeamCount is returned when a pairing pool has an odd number of teams
	ErrUnpairableTeamCount = errors.New("number of teams to pair must be even")
)
