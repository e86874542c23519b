/* teams.go
 * Contains the methods for interacting with the teams collection
 * Authors: Zachary Bower
 */

package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Function to insert a new team
// Preconditions: Receives a Team with GuildID and Name set
// Postconditions: Returns the inserted id, or an error if it occurs
func (s *Store) CreateTeam(team Team) (primitive.ObjectID, error) {
	res, err := s.Collections.Teams.InsertOne(context.TODO(), team)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("failed to insert team: %w", err)
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

// Function to fetch a team by id within a guild
// Preconditions: Receives guildID and the team's ObjectID
// Postconditions: Returns the Team, or an error if it occurs
func (s *Store) GetTeamByID(guildID string, id primitive.ObjectID) (Team, error) {
	var team Team
	err := s.Collections.Teams.FindOne(context.TODO(),
		bson.M{"_id": id, "guild_id": guildID}).Decode(&team)
	if err != nil {
		return Team{}, fmt.Errorf("error fetching team %s: %w", id.Hex(), err)
	}
	return team, nil
}

// Function to fetch a team by its exact name within a guild
// Preconditions: Receives guildID and the team name
// Postconditions: Returns the Team, or an error if it occurs
func (s *Store) GetTeamByName(guildID string, name string) (Team, error) {
	var team Team
	err := s.Collections.Teams.FindOne(context.TODO(),
		bson.M{"name": name, "guild_id": guildID}).Decode(&team)
	if err != nil {
		return Team{}, fmt.Errorf("error fetching team %q: %w", name, err)
	}
	return team, nil
}

// Function to fetch all teams of a guild
// Preconditions: Receives guildID
// Postconditions: Returns slice of Team, or an error if it occurs
func (s *Store) GetAllTeams(guildID string) ([]Team, error) {
	return s.findTeams(bson.M{"guild_id": guildID})
}

// Function to fetch the teams holding an exact swiss record. Teams on 3 wins or 3 losses have
// left the stage and match none of the bucket records by construction.
// Preconditions: Receives guildID plus the bucket's wins and losses
// Postconditions: Returns slice of Team, or an error if it occurs
func (s *Store) GetTeamsByRecord(guildID string, wins int, losses int) ([]Team, error) {
	return s.findTeams(bson.M{"guild_id": guildID, "swiss_wins": wins, "swiss_losses": losses})
}

// Function to fetch the teams holding a playoff eligibility flag
// Preconditions: Receives guildID and a TeamFlag field name
// Postconditions: Returns slice of Team, or an error if it occurs
func (s *Store) GetTeamsByFlag(guildID string, flag TeamFlag) ([]Team, error) {
	return s.findTeams(bson.M{"guild_id": guildID, string(flag): true})
}

// Function to fetch all teams sorted by record, best first. Used for the standings summary.
// Preconditions: Receives guildID
// Postconditions: Returns slice of Team, or an error if it occurs
func (s *Store) GetTeamsByStanding(guildID string) ([]Team, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "swiss_wins", Value: -1},
		{Key: "swiss_losses", Value: 1},
		{Key: "name", Value: 1},
	})
	cursor, err := s.Collections.Teams.Find(context.TODO(), bson.M{"guild_id": guildID}, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching standings: %w", err)
	}
	var teams []Team
	if err := cursor.All(context.TODO(), &teams); err != nil {
		return nil, fmt.Errorf("error decoding standings: %w", err)
	}
	return teams, nil
}

// Function to replace a team document, keyed by id and guild
// Preconditions: Receives a Team whose ID is set
// Postconditions: Team document is replaced, or an error is returned
func (s *Store) UpdateTeam(team Team) error {
	res, err := s.Collections.Teams.ReplaceOne(context.TODO(),
		bson.M{"_id": team.ID, "guild_id": team.GuildID}, team)
	if err != nil {
		return fmt.Errorf("failed to update team %s: %w", team.Name, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("team %s not found in guild %s", team.ID.Hex(), team.GuildID)
	}
	return nil
}

// Function to count the teams registered in a guild
// Preconditions: Receives guildID
// Postconditions: Returns the count, or an error if it occurs
func (s *Store) CountTeams(guildID string) (int64, error) {
	count, err := s.Collections.Teams.CountDocuments(context.TODO(), bson.M{"guild_id": guildID})
	if err != nil {
		return 0, fmt.Errorf("error counting teams: %w", err)
	}
	return count, nil
}

func (s *Store) findTeams(filter bson.M) ([]Team, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := s.Collections.Teams.Find(context.TODO(), filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching teams: %w", err)
	}
	var teams []Team
	if err := cursor.All(context.TODO(), &teams); err != nil {
		return nil, fmt.Errorf("error decoding teams: %w", err)
	}
	return teams, nil
}
