/* selections.go
 * Contains the methods for interacting with the vetoes and picks collections. Both are
 * append-only; the ban/pick phase is always recomputed from the stored history
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

// Function to insert a new veto
// Preconditions: Receives a Veto with GuildID, GameID, TeamID, MapName and Order set
// Postconditions: Returns the inserted id, or an error if it occurs
func (s *Store) CreateVeto(veto Veto) (primitive.ObjectID, error) {
	res, err := s.Collections.Vetoes.InsertOne(context.TODO(), veto)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("failed to insert veto: %w", err)
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

// Function to insert a new pick. A zero TeamID records the decider
// Preconditions: Receives a Pick with GuildID, GameID, MapName and Order set
// Postconditions: Returns the inserted id, or an error if it occurs
func (s *Store) CreatePick(pick Pick) (primitive.ObjectID, error) {
	res, err := s.Collections.Picks.InsertOne(context.TODO(), pick)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("failed to insert pick: %w", err)
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

// Function to fetch the vetoes of a game in chronological order
// Preconditions: Receives guildID and the game id
// Postconditions: Returns slice of Veto sorted by order, or an error if it occurs
func (s *Store) GetVetoesByGame(guildID string, gameID primitive.ObjectID) ([]Veto, error) {
	opts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}})
	cursor, err := s.Collections.Vetoes.Find(context.TODO(),
		bson.M{"game_id": gameID, "guild_id": guildID}, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching vetoes: %w", err)
	}
	var vetoes []Veto
	if err := cursor.All(context.TODO(), &vetoes); err != nil {
		return nil, fmt.Errorf("error decoding vetoes: %w", err)
	}
	return vetoes, nil
}

// Function to fetch the picks of a game in chronological order. The pick order doubles as the
// play order of the series' maps
// Preconditions: Receives guildID and the game id
// Postconditions: Returns slice of Pick sorted by order, or an error if it occurs
func (s *Store) GetPicksByGame(guildID string, gameID primitive.ObjectID) ([]Pick, error) {
	opts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}})
	cursor, err := s.Collections.Picks.Find(context.TODO(),
		bson.M{"game_id": gameID, "guild_id": guildID}, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching picks: %w", err)
	}
	var picks []Pick
	if err := cursor.All(context.TODO(), &picks); err != nil {
		return nil, fmt.Errorf("error decoding picks: %w", err)
	}
	return picks, nil
}
