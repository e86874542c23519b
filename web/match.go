/* match.go
 * Contains the webhook endpoint the game server plugin posts its events to. The URL carries
 * the guild and game scope (/webhooks/match/{guild}/{game}); the payload carries the event
 * type and the team1/team2 indicator, which this handler translates into engine calls
 * Authors: Zachary Bower
 */

package web

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"tournament-bot/api/external"
	"tournament-bot/api/shared"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MatchEventHandler HTTP endpoint that receives match events from the game server plugin and
// routes them into the veto and result engines
// Preconditions: HTTP server has been started, receives HTTP ResponseWriter and Http Request
// Postconditions: The event is applied to the referenced game, or an error status is returned
func (s *Server) MatchEventHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	defer r.Body.Close()

	if s.webhookAuth != "" && r.Header.Get("Authorization") != s.webhookAuth {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	guildID, gameID, ok := parseMatchPath(r.URL.Path)
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	var envelope external.Event
	if err := json.Unmarshal(body, &envelope); err != nil {
		log.Println("failed to decode webhook:", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	switch envelope.Event {
	case external.EventMapVetoed:
		err = s.handleMapVetoed(guildID, gameID, body)
	case external.EventMapPicked:
		err = s.handleMapPicked(guildID, gameID, body)
	case external.EventMapResult:
		err = s.handleMapResult(guildID, gameID, body)
	default:
		// Other plugin events (round ends, player stats) are not ours to track
		w.WriteHeader(http.StatusOK)
		return
	}

	if err != nil {
		log.Printf("webhook %s rejected for game %s: %v", envelope.Event, gameID.Hex(), err)
		w.WriteHeader(http.StatusConflict)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// parseMatchPath extracts the guild and game ids from /webhooks/match/{guild}/{game}
func parseMatchPath(path string) (string, primitive.ObjectID, bool) {
	rest := strings.TrimPrefix(path, "/webhooks/match/")
	parts := strings.Split(strings.Trim(rest, "/"), "/")
	if len(parts) != 2 || parts[0] == "" {
		return "", primitive.NilObjectID, false
	}
	gameID, err := primitive.ObjectIDFromHex(parts[1])
	if err != nil {
		return "", primitive.NilObjectID, false
	}
	return parts[0], gameID, true
}

func (s *Server) handleMapVetoed(guildID string, gameID primitive.ObjectID, body []byte) error {
	var event external.MapVetoedEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return err
	}
	team, err := external.TeamNumberFromLabel(event.Team)
	if err != nil {
		return err
	}
	return s.api.SubmitVeto(guildID, gameID, team, normalizeMapName(event.MapName))
}

func (s *Server) handleMapPicked(guildID string, gameID primitive.ObjectID, body []byte) error {
	var event external.MapPickedEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return err
	}
	team, err := external.TeamNumberFromLabel(event.Team)
	if err != nil {
		return err
	}
	return s.api.SubmitPick(guildID, gameID, team, normalizeMapName(event.MapName))
}

func (s *Server) handleMapResult(guildID string, gameID primitive.ObjectID, body []byte) error {
	var event external.MapResultEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return err
	}
	winner, err := external.TeamNumberFromLabel(event.Winner.Team)
	if err != nil {
		return err
	}

	// The plugin reports the map by number; the engine records by name
	state, err := s.api.GetMatchState(guildID, gameID)
	if err != nil {
		return err
	}
	for _, m := range state.Maps {
		if m.MapNumber == event.MapNumber {
			return s.api.RecordMapResult(guildID, gameID, m.MapName, int(winner))
		}
	}
	return fmt.Errorf("no map with number %d: %w", event.MapNumber, shared.ErrMapNotFound)
}

// normalizeMapName strips the engine prefix the server uses, de_inferno and inferno name the
// same pool entry
func normalizeMapName(name string) string {
	return strings.TrimPrefix(name, "de_")
}
