/* game_maps.go
 * Contains the methods for interacting with the game_maps collection
 * Authors: Zachary Bower
 */

package store

import (
	"context"
	"errors"
	"fmt"

	"tournament-bot/api/shared"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Function to insert a new game map
// Preconditions: Receives a GameMap with GuildID, GameID, MapName and MapNumber set
// Postconditions: Returns the inserted id, or an error if it occurs
func (s *Store) CreateGameMap(gameMap GameMap) (primitive.ObjectID, error) {
	res, err := s.Collections.GameMaps.InsertOne(context.TODO(), gameMap)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("failed to insert game map: %w", err)
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

// Function to fetch the maps of a game in play order
// Preconditions: Receives guildID and the game id
// Postconditions: Returns slice of GameMap sorted by map number, or an error if it occurs
func (s *Store) GetGameMapsByGame(guildID string, gameID primitive.ObjectID) ([]GameMap, error) {
	opts := options.Find().SetSort(bson.D{{Key: "map_number", Value: 1}})
	cursor, err := s.Collections.GameMaps.Find(context.TODO(),
		bson.M{"game_id": gameID, "guild_id": guildID}, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching game maps: %w", err)
	}
	var maps []GameMap
	if err := cursor.All(context.TODO(), &maps); err != nil {
		return nil, fmt.Errorf("error decoding game maps: %w", err)
	}
	return maps, nil
}

// Function to fetch the lowest numbered undecided map of a game with a given name. Results are
// recorded against this map, so duplicate map names in a series resolve in play order
// Preconditions: Receives guildID, the game id and a map name
// Postconditions: Returns the GameMap, or ErrMapNotFound if every matching map is decided
func (s *Store) GetOpenGameMapByName(guildID string, gameID primitive.ObjectID, mapName string) (GameMap, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "map_number", Value: 1}})
	var gameMap GameMap
	err := s.Collections.GameMaps.FindOne(context.TODO(),
		bson.M{"game_id": gameID, "guild_id": guildID, "map_name": mapName, "winner_number": 0},
		opts).Decode(&gameMap)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return GameMap{}, fmt.Errorf("no open map %q in game %s: %w", mapName, gameID.Hex(), shared.ErrMapNotFound)
	}
	if err != nil {
		return GameMap{}, fmt.Errorf("error fetching open map %q: %w", mapName, err)
	}
	return gameMap, nil
}

// Function to record a map winner. The filter requires winner_number 0 so a decided map stays
// decided
// Preconditions: Receives guildID, the game map id and the winning team number
// Postconditions: Map winner is set, or an error is returned
func (s *Store) SetGameMapWinner(guildID string, id primitive.ObjectID, winner shared.TeamNumber) error {
	res, err := s.Collections.GameMaps.UpdateOne(context.TODO(),
		bson.M{"_id": id, "guild_id": guildID, "winner_number": 0},
		bson.M{"$set": bson.M{"winner_number": int(winner)}})
	if err != nil {
		return fmt.Errorf("failed to set winner for map %s: %w", id.Hex(), err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("map %s not found or already decided", id.Hex())
	}
	return nil
}
