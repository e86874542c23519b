/* input_processing.go
 * Contains the logic for processing user input: fuzzy matching map and team names so chat
 * commands tolerate typos
 * Authors: Zachary Bower
 */

package logic

import (
	"fmt"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// MatchName resolves user input against a list of valid names.
// Preconditions: receives the user's input and a slice of valid names
// Postconditions: returns the canonical name, or an error when nothing matches
func MatchName(input string, valid []string) (string, error) {
	// Convert to lowercase for better matching
	lookup := make(map[string]string)
	var validLower []string
	for _, name := range valid {
		lower := strings.ToLower(name)
		lookup[lower] = name
		validLower = append(validLower, lower)
	}

	lowerInput := strings.ToLower(input)
	results := fuzzy.RankFind(lowerInput, validLower)
	if len(results) == 0 {
		return "", fmt.Errorf("'%s' does not match any of: %s", input, strings.Join(valid, ", "))
	}
	if len(results) == 1 {
		return lookup[results[0].Target], nil
	}

	// Multiple matches: prefer an exact one, else take the best ranked
	best := ""
	for i := range results {
		if results[i].Target == lowerInput {
			best = results[i].Target
		}
	}
	if best == "" {
		best = results[0].Target
	}
	return lookup[best], nil
}
