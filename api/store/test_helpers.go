/* test_helpers.go
 * Contains test helper functions for store package tests
 * Authors: Zachary Bower
 */

package store

import (
	"context"

	"tournament-bot/api/shared"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateTestStore creates a Store connected to a test database.
// Returns the store and a cleanup function.
func CreateTestStore(mongoURI string) (*Store, func(), error) {
	store, err := NewStore("test_tournament", mongoURI)
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		if store.Client != nil {
			// Drop test database
			store.Database.Drop(context.TODO())
			// Disconnect client
			store.Client.Disconnect(context.TODO())
		}
	}

	return store, cleanup, nil
}

// CreateTestClient creates a test MongoDB client.
func CreateTestClient(mongoURI string) (*mongo.Client, error) {
	client, err := mongo.Connect(context.TODO(), options.Client().ApplyURI(mongoURI))
	if err != nil {
		return nil, err
	}
	return client, nil
}

// CreateSampleTeam creates sample Team data for testing.
func CreateSampleTeam(guildID, name string) Team {
	return Team{
		ID:      primitive.NewObjectID(),
		GuildID: guildID,
		Name:    name,
	}
}

// CreateSampleGame creates sample Game data for testing.
func CreateSampleGame(guildID string, teamOne, teamTwo primitive.ObjectID, round shared.RoundType) Game {
	return Game{
		ID:        primitive.NewObjectID(),
		GuildID:   guildID,
		TeamOneID: teamOne,
		TeamTwoID: teamTwo,
		RoundType: round,
	}
}
