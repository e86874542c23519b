/* settings.go
 * Contains the methods for interacting with the settings collection, a per-guild key/value
 * store used for channel and message correlation
 * Authors: Zachary Bower
 */

package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Function to fetch a setting value for a guild
// Preconditions: Receives guildID and the setting key
// Postconditions: Returns the value and true, or "" and false when the key is unset
func (s *Store) GetSetting(guildID string, key string) (string, bool, error) {
	var setting Setting
	err := s.Collections.Settings.FindOne(context.TODO(),
		bson.M{"guild_id": guildID, "key": key}).Decode(&setting)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("error fetching setting %q: %w", key, err)
	}
	return setting.Value, true, nil
}

// Function to upsert a setting value for a guild
// Preconditions: Receives guildID, the setting key and its new value
// Postconditions: Setting is created or updated, or an error is returned
func (s *Store) SetSetting(guildID string, key string, value string) error {
	opts := options.Update().SetUpsert(true)
	_, err := s.Collections.Settings.UpdateOne(context.TODO(),
		bson.M{"guild_id": guildID, "key": key},
		bson.M{"$set": bson.M{"value": value}}, opts)
	if err != nil {
		return fmt.Errorf("failed to set setting %q: %w", key, err)
	}
	return nil
}
