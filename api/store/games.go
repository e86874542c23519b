/* games.go
 * Contains the methods for interacting with the games collection
 * Authors: Zachary Bower
 */

package store

import (
	"context"
	"fmt"

	"tournament-bot/api/shared"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Function to insert a new game
// Preconditions: Receives a Game with GuildID, both team ids and RoundType set
// Postconditions: Returns the inserted id, or an error if it occurs
func (s *Store) CreateGame(game Game) (primitive.ObjectID, error) {
	res, err := s.Collections.Games.InsertOne(context.TODO(), game)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("failed to insert game: %w", err)
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

// Function to fetch a game by id within a guild
// Preconditions: Receives guildID and the game's ObjectID
// Postconditions: Returns the Game, or an error if it occurs
func (s *Store) GetGameByID(guildID string, id primitive.ObjectID) (Game, error) {
	var game Game
	err := s.Collections.Games.FindOne(context.TODO(),
		bson.M{"_id": id, "guild_id": guildID}).Decode(&game)
	if err != nil {
		return Game{}, fmt.Errorf("error fetching game %s: %w", id.Hex(), err)
	}
	return game, nil
}

// Function to fetch the game correlated with a Discord channel, matching either its public
// game channel or its admin channel. Used to resolve which series a command refers to
// Preconditions: Receives guildID and a channel id
// Postconditions: Returns the Game, or an error if it occurs
func (s *Store) GetGameByChannel(guildID string, channelID string) (Game, error) {
	filter := bson.M{
		"guild_id": guildID,
		"$or": []bson.M{
			{"game_channel_id": channelID},
			{"admin_channel_id": channelID},
		},
	}
	var game Game
	err := s.Collections.Games.FindOne(context.TODO(), filter).Decode(&game)
	if err != nil {
		return Game{}, fmt.Errorf("error fetching game for channel %s: %w", channelID, err)
	}
	return game, nil
}

// Function to fetch all games of a round type in a guild
// Preconditions: Receives guildID and a round type
// Postconditions: Returns slice of Game, or an error if it occurs
func (s *Store) GetGamesByType(guildID string, round shared.RoundType) ([]Game, error) {
	return s.findGames(bson.M{"guild_id": guildID, "round_type": round})
}

// Function to fetch the game between two specific teams in a round, checking both orderings
// Preconditions: Receives guildID, two team ids and a round type
// Postconditions: Returns the Game, or an error if it occurs
func (s *Store) GetGameByTeamsAndType(guildID string, teamA, teamB primitive.ObjectID, round shared.RoundType) (Game, error) {
	filter := bson.M{
		"guild_id":   guildID,
		"round_type": round,
		"$or": []bson.M{
			{"team_one_id": teamA, "team_two_id": teamB},
			{"team_one_id": teamB, "team_two_id": teamA},
		},
	}
	var game Game
	err := s.Collections.Games.FindOne(context.TODO(), filter).Decode(&game)
	if err != nil {
		return Game{}, fmt.Errorf("error fetching game between teams: %w", err)
	}
	return game, nil
}

// Function to fetch every game of a guild
// Preconditions: Receives guildID
// Postconditions: Returns slice of Game, or an error if it occurs
func (s *Store) GetAllGames(guildID string) ([]Game, error) {
	return s.findGames(bson.M{"guild_id": guildID})
}

// Function to count all games of a guild
// Preconditions: Receives guildID
// Postconditions: Returns the count, or an error if it occurs
func (s *Store) CountGames(guildID string) (int64, error) {
	count, err := s.Collections.Games.CountDocuments(context.TODO(), bson.M{"guild_id": guildID})
	if err != nil {
		return 0, fmt.Errorf("error counting games: %w", err)
	}
	return count, nil
}

// Function to count the finished games of a guild. The scheduler derives the next rounds to
// create from this number alone
// Preconditions: Receives guildID
// Postconditions: Returns the count, or an error if it occurs
func (s *Store) CountFinishedGames(guildID string) (int64, error) {
	count, err := s.Collections.Games.CountDocuments(context.TODO(),
		bson.M{"guild_id": guildID, "winner_number": bson.M{"$in": []int{1, 2}}})
	if err != nil {
		return 0, fmt.Errorf("error counting finished games: %w", err)
	}
	return count, nil
}

// Function to record the series winner of a game. The filter requires winner_number 0 so a
// decided series can never be re-decided
// Preconditions: Receives guildID, the game id and the winning team number
// Postconditions: Game winner is set, or an error is returned
func (s *Store) SetGameWinner(guildID string, id primitive.ObjectID, winner shared.TeamNumber) error {
	res, err := s.Collections.Games.UpdateOne(context.TODO(),
		bson.M{"_id": id, "guild_id": guildID, "winner_number": 0},
		bson.M{"$set": bson.M{"winner_number": int(winner)}})
	if err != nil {
		return fmt.Errorf("failed to set winner for game %s: %w", id.Hex(), err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("game %s not found or already decided: %w", id.Hex(), shared.ErrSeriesAlreadyDecided)
	}
	return nil
}

// Function to store the Discord channel and message ids correlated with a game
// Preconditions: Receives a Game whose ID is set and whose channel fields hold the new values
// Postconditions: The correlation fields are updated, or an error is returned
func (s *Store) UpdateGameChannels(game Game) error {
	update := bson.M{"$set": bson.M{
		"game_channel_id":      game.GameChannelID,
		"admin_channel_id":     game.AdminChannelID,
		"voice_channel_one_id": game.VoiceChannelOneID,
		"voice_channel_two_id": game.VoiceChannelTwoID,
		"summary_message_id":   game.SummaryMessageID,
	}}
	_, err := s.Collections.Games.UpdateOne(context.TODO(),
		bson.M{"_id": game.ID, "guild_id": game.GuildID}, update)
	if err != nil {
		return fmt.Errorf("failed to update channels for game %s: %w", game.ID.Hex(), err)
	}
	return nil
}

func (s *Store) findGames(filter bson.M) ([]Game, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := s.Collections.Games.Find(context.TODO(), filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching games: %w", err)
	}
	var games []Game
	if err := cursor.All(context.TODO(), &games); err != nil {
		return nil, fmt.Errorf("error decoding games: %w", err)
	}
	return games, nil
}
