/* store.go
 * Contains the Store struct and NewStore function. The methods for this package are split into
 * per-collection files: teams, games, selections (vetoes and picks), game_maps, players and
 * settings
 * Authors: Zachary Bower
 */

package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	Client      *mongo.Client
	Database    *mongo.Database
	Collections struct {
		Teams    *mongo.Collection
		Games    *mongo.Collection
		Vetoes   *mongo.Collection
		Picks    *mongo.Collection
		GameMaps *mongo.Collection
		Players  *mongo.Collection
		Settings *mongo.Collection
	}
}

// Function for initialising Store. Connects to mongo and binds the collection handles.
// Preconditions: Receives strings containing dbName and mongoURI
// Postconditions: Returns pointer to the Store object, or error if it occurs
func NewStore(dbName string, mongoURI string) (*Store, error) {
	if dbName == "" {
		return nil, fmt.Errorf("dbName cannot be empty")
	}
	client, err := mongo.Connect(context.TODO(), options.Client().ApplyURI(mongoURI))
	if err != nil {
		return nil, err
	}
	db := client.Database(dbName)

	s := &Store{
		Client:   client,
		Database: db,
	}
	s.Collections.Teams = db.Collection("teams")
	s.Collections.Games = db.Collection("games")
	s.Collections.Vetoes = db.Collection("vetoes")
	s.Collections.Picks = db.Collection("picks")
	s.Collections.GameMaps = db.Collection("game_maps")
	s.Collections.Players = db.Collection("players")
	s.Collections.Settings = db.Collection("settings")
	return s, nil
}
