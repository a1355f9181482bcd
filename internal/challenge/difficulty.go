// Package challenge turns extracted chunks into difficulty-bounded typing
// challenges.
package challenge

import (
	"fmt"
	"math"
	"strings"

	"github.com/unhappychoice/gittype-sub005/internal/chunkers"
)

// Difficulty is a character-count tier.
type Difficulty int

const (
	Easy Difficulty = iota
	Normal
	Hard
	Wild
	Zen
)

// Unbounded is the max character count of tiers without an upper limit.
const Unbounded = math.MaxInt

var difficultyNames = [...]string{
	Easy:   "easy",
	Normal: "normal",
	Hard:   "hard",
	Wild:   "wild",
	Zen:    "zen",
}

// Difficulties returns every tier in emission order.
func Difficulties() []Difficulty {
	return []Difficulty{Easy, Normal, Hard, Wild, Zen}
}

// String returns the lowercase tier name.
func (d Difficulty) String() string {
	if d < Easy || d > Zen {
		return fmt.Sprintf("difficulty(%d)", int(d))
	}
	return difficultyNames[d]
}

// ParseDifficulty parses a tier name, ignoring case.
func ParseDifficulty(s string) (Difficulty, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range difficultyNames {
		if n == name {
			return Difficulty(i), nil
		}
	}
	return 0, fmt.Errorf("unknown difficulty %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (d Difficulty) MarshalText() ([]byte, error) {
	if d < Easy || d > Zen {
		return nil, fmt.Errorf("invalid difficulty %d", int(d))
	}
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Difficulty) UnmarshalText(text []byte) error {
	parsed, err := ParseDifficulty(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// CharLimits returns the inclusive meaningful-character bounds of the tier.
func (d Difficulty) CharLimits() (minChars, maxChars int) {
	switch d {
	case Easy:
		return 20, 100
	case Normal:
		return 80, 200
	case Hard:
		return 180, 500
	}
	return 0, Unbounded
}

// Bounded reports whether the tier has a finite max character count.
func (d Difficulty) Bounded() bool {
	_, maxChars := d.CharLimits()
	return maxChars != Unbounded
}

// Description returns a short label for the tier.
func (d Difficulty) Description() string {
	switch d {
	case Easy:
		return "~100 characters"
	case Normal:
		return "~200 characters"
	case Hard:
		return "~500 characters"
	case Wild:
		return "Full chunks"
	case Zen:
		return "Entire files"
	}
	return ""
}

// Subtitle returns a longer description of what the tier contains.
func (d Difficulty) Subtitle() string {
	switch d {
	case Easy:
		return "Short code snippets"
	case Normal:
		return "Medium functions"
	case Hard:
		return "Long functions or classes"
	case Wild:
		return "Unpredictable length chunks"
	case Zen:
		return "Complete files as challenges"
	}
	return ""
}

// ApplicableDifficulties returns the tiers a chunk of the given kind with
// codeChars meaningful characters qualifies for, in emission order. Zen
// applies only to whole files, Wild always applies, and bounded tiers
// apply once codeChars reaches their minimum.
func ApplicableDifficulties(kind chunkers.Kind, codeChars int) []Difficulty {
	out := make([]Difficulty, 0, 5)
	for _, d := range Difficulties() {
		switch d {
		case Zen:
			if kind == chunkers.KindFile {
				out = append(out, d)
			}
		case Wild:
			out = append(out, d)
		default:
			if minChars, _ := d.CharLimits(); codeChars >= minChars {
				out = append(out, d)
			}
		}
	}
	return out
}
