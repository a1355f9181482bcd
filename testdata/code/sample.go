// Package sample is a small Go file used by the extraction pipeline tests.
package sample

import (
	"errors"
	"fmt"
)

// Scoreboard tracks typing results per player.
type Scoreboard struct {
	scores map[string][]int
}

// NewScoreboard creates an empty scoreboard.
func NewScoreboard() *Scoreboard {
	return &Scoreboard{scores: make(map[string][]int)}
}

// Record stores a result for player.
func (s *Scoreboard) Record(player string, wpm int) error {
	if wpm < 0 {
		return errors.New("negative wpm")
	}
	s.scores[player] = append(s.scores[player], wpm)
	return nil
}

// Best returns the highest result for player.
func (s *Scoreboard) Best(player string) (int, error) {
	results, ok := s.scores[player]
	if !ok {
		return 0, fmt.Errorf("no results for %s", player)
	}
	best := 0
	for _, r := range results {
		if r > best {
			best = r
		}
	}
	return best, nil
}
