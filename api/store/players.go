/* players.go
 * Contains the methods for interacting with the players collection
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

// Function to insert a new player
// Preconditions: Receives a Player with GuildID, TeamID, Nickname and SteamID set
// Postconditions: Returns the inserted id, or an error if it occurs
func (s *Store) CreatePlayer(player Player) (primitive.ObjectID, error) {
	res, err := s.Collections.Players.InsertOne(context.TODO(), player)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("failed to insert player: %w", err)
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

// Function to fetch the roster of a team
// Preconditions: Receives guildID and the team id
// Postconditions: Returns slice of Player, or an error if it occurs
func (s *Store) GetPlayersByTeam(guildID string, teamID primitive.ObjectID) ([]Player, error) {
	opts := options.Find().SetSort(bson.D{{Key: "nickname", Value: 1}})
	cursor, err := s.Collections.Players.Find(context.TODO(),
		bson.M{"team_id": teamID, "guild_id": guildID}, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching players: %w", err)
	}
	var players []Player
	if err := cursor.All(context.TODO(), &players); err != nil {
		return nil, fmt.Errorf("error decoding players: %w", err)
	}
	return players, nil
}

// Function to fetch a player by steam id within a guild
// Preconditions: Receives guildID and a steam id
// Postconditions: Returns the Player, or an error if it occurs
func (s *Store) GetPlayerBySteamID(guildID string, steamID string) (Player, error) {
	var player Player
	err := s.Collections.Players.FindOne(context.TODO(),
		bson.M{"steam_id": steamID, "guild_id": guildID}).Decode(&player)
	if err != nil {
		return Player{}, fmt.Errorf("error fetching player %s: %w", steamID, err)
	}
	return player, nil
}
