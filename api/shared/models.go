/* models.go
 * This file contains the domain types that are shared between sub packages: round types, series
 * formats, team numbers, the map pool contract and format configuration
 * Authors: Zachary Bower
 */

package shared

import (
	"fmt"
	"os"
	"strings"
)

// RoundType identifies a stage of the tournament. The set is closed; every game row carries
// exactly one of these tags.
type RoundType string

const (
	Swiss1       RoundType = "swiss_1"
	Swiss2High   RoundType = "swiss_2_high"
	Swiss2Low    RoundType = "swiss_2_low"
	Swiss3High   RoundType = "swiss_3_high"
	Swiss3Mid    RoundType = "swiss_3_mid"
	Swiss3Low    RoundType = "swiss_3_low"
	Swiss4High   RoundType = "swiss_4_high"
	Swiss4Low    RoundType = "swiss_4_low"
	Swiss5       RoundType = "swiss_5"
	Quarterfinal RoundType = "quarterfinal"
	Semifinal    RoundType = "semifinal"
	ThirdPlace   RoundType = "third_place"
	Final        RoundType = "final"
)

// AllRoundTypes lists every round type in tournament order. Used for summaries and for
// validating round type input.
var AllRoundTypes = []RoundType{
	Swiss1,
	Swiss2High, Swiss2Low,
	Swiss3High, Swiss3Mid, Swiss3Low,
	Swiss4High, Swiss4Low,
	Swiss5,
	Quarterfinal, Semifinal, ThirdPlace, Final,
}

// IsSwiss reports whether the round belongs to the swiss stage
func (r RoundType) IsSwiss() bool {
	return strings.HasPrefix(string(r), "swiss_")
}

// Format is the best-of length of a series
type Format string

const (
	Bo1 Format = "bo1"
	Bo3 Format = "bo3"
	Bo5 Format = "bo5"
)

// MapsToWin returns the number of map wins needed to take a series of this format
func (f Format) MapsToWin() int {
	switch f {
	case Bo1:
		return 1
	case Bo5:
		return 3
	default:
		return 2
	}
}

// TeamNumber identifies a side of a game. Team one is the team stored first at game creation;
// this ordering fixes the veto/pick turn parity.
type TeamNumber int

const (
	NoTeam  TeamNumber = 0
	TeamOne TeamNumber = 1
	TeamTwo TeamNumber = 2
)

// Opponent returns the other side
func (n TeamNumber) Opponent() TeamNumber {
	if n == TeamOne {
		return TeamTwo
	}
	return TeamOne
}

// FormatConfig maps every round type to its series format. The mapping is an explicit closed
// set so an unknown round type is caught at resolution time instead of being silently
// defaulted by a key-value lookup miss.
type FormatConfig struct {
	SwissShort   Format // swiss rounds where no team can exit the stage yet
	SwissLong    Format // swiss rounds where the winner or loser exits (3 wins or 3 losses)
	Quarterfinal Format
	Semifinal    Format
	ThirdPlace   Format
	Final        Format
}

// DefaultFormatConfig returns the standard mapping: bo1 swiss openers, bo3 for
// elimination-relevant swiss rounds and playoffs, bo5 final
func DefaultFormatConfig() FormatConfig {
	return FormatConfig{
		SwissShort:   Bo1,
		SwissLong:    Bo3,
		Quarterfinal: Bo3,
		Semifinal:    Bo3,
		ThirdPlace:   Bo3,
		Final:        Bo5,
	}
}

// FormatConfigFromEnv builds a FormatConfig from environment variables, falling back to the
// defaults for any that are unset or invalid
func FormatConfigFromEnv() FormatConfig {
	cfg := DefaultFormatConfig()
	cfg.SwissShort = formatFromEnv("SWISS_SHORT_FORMAT", cfg.SwissShort)
	cfg.SwissLong = formatFromEnv("SWISS_LONG_FORMAT", cfg.SwissLong)
	cfg.Quarterfinal = formatFromEnv("QUARTERFINAL_FORMAT", cfg.Quarterfinal)
	cfg.Semifinal = formatFromEnv("SEMIFINAL_FORMAT", cfg.Semifinal)
	cfg.ThirdPlace = formatFromEnv("THIRD_PLACE_FORMAT", cfg.ThirdPlace)
	cfg.Final = formatFromEnv("FINAL_FORMAT", cfg.Final)
	return cfg
}

func formatFromEnv(key string, fallback Format) Format {
	switch Format(os.Getenv(key)) {
	case Bo1:
		return Bo1
	case Bo3:
		return Bo3
	case Bo5:
		return Bo5
	default:
		return fallback
	}
}

// Resolve returns the series format for a round type, or an error for a round type outside
// the closed set
func (c FormatConfig) Resolve(round RoundType) (Format, error) {
	switch round {
	case Swiss1, Swiss2High, Swiss2Low, Swiss3Mid, Swiss3Low:
		return c.SwissShort, nil
	case Swiss3High, Swiss4High, Swiss4Low, Swiss5:
		return c.SwissLong, nil
	case Quarterfinal:
		return c.Quarterfinal, nil
	case Semifinal:
		return c.Semifinal, nil
	case ThirdPlace:
		return c.ThirdPlace, nil
	case Final:
		return c.Final, nil
	default:
		return "", fmt.Errorf("unknown round type: %s", round)
	}
}

// DefaultMapPool is the active duty pool used when MAP_POOL is not configured
var DefaultMapPool = []string{"ancient", "inferno", "anubis", "nuke", "mirage", "dust2", "train"}

// MapPoolFromEnv reads the comma separated MAP_POOL variable, falling back to the default pool
func MapPoolFromEnv() []string {
	raw := os.Getenv("MAP_POOL")
	if raw == "" {
		return DefaultMapPool
	}
	var pool []string
	for _, name := range strings.Split(raw, ",") {
		name = strings.TrimSpace(name)
		if name != "" {
			pool = append(pool, name)
		}
	}
	if len(pool) == 0 {
		return DefaultMapPool
	}
	return pool
}
