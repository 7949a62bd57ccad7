// Package exchange pairs gift-exchange participants so that nobody draws
// themselves and everybody is drawn exactly once.
package exchange

import (
	"errors"
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/samber/lo"

	"github.com/DoyleJ11/gift-exchange/internal/token"
)

var ErrInsufficientParticipants = errors.New("need at least 2 unique participants")

const (
	MinParticipants    = 2
	DefaultMaxAttempts = 100
)

type Participant struct {
	Name       string `json:"name"`
	AssignedTo string `json:"assigned_to"`
	Token      string `json:"token"`
}

// ShuffleFunc permutes names in place.
type ShuffleFunc func(names []string)

// Engine holds the tunables of an assignment run. The zero value is usable.
type Engine struct {
	MaxAttempts int
	Shuffle     ShuffleFunc
}

func NewEngine(maxAttempts int) *Engine {
	return &Engine{MaxAttempts: maxAttempts}
}

var defaultEngine = NewEngine(DefaultMaxAttempts)

// Assign runs the default engine.
func Assign(names []string) ([]Participant, error) {
	return defaultEngine.Assign(names)
}

func (e *Engine) Assign(names []string) ([]Participant, error) {
	unique := Normalize(names)
	if len(unique) < MinParticipants {
		return nil, ErrInsufficientParticipants
	}

	maxAttempts := e.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	shuffle := e.Shuffle
	if shuffle == nil {
		shuffle = fisherYates
	}

	recipients, _ := SampleUntil[[]string](derangement{names: unique, shuffle: shuffle}, maxAttempts)

	return lo.Map(unique, func(name string, i int) Participant {
		return Participant{
			Name:       name,
			AssignedTo: recipients[i],
			Token:      token.Encode(name, recipients[i]),
		}
	}), nil
}

// Normalize trims every name, replaces invalid UTF-8 with U+FFFD, drops blanks
// and removes exact duplicates, keeping the first occurrence. Tokens only decode
// valid UTF-8, so unsanitized names would produce links that never resolve.
func Normalize(names []string) []string {
	trimmed := lo.Map(names, func(name string, _ int) string {
		return strings.ToValidUTF8(strings.TrimSpace(name), "\uFFFD")
	})
	return lo.Uniq(lo.Compact(trimmed))
}

// IsDerangement reports whether recipients[i] != names[i] for every i.
func IsDerangement(names, recipients []string) bool {
	if len(names) != len(recipients) {
		return false
	}
	for i := range names {
		if names[i] == recipients[i] {
			return false
		}
	}
	return true
}

type derangement struct {
	names   []string
	shuffle ShuffleFunc
}

func (d derangement) TrySample() ([]string, bool) {
	candidate := slices.Clone(d.names)
	d.shuffle(candidate)
	return candidate, IsDerangement(d.names, candidate)
}

// Fallback rotates by one position, which has no fixed points for 2+ unique names.
func (d derangement) Fallback() []string {
	return append(slices.Clone(d.names[1:]), d.names[0])
}

// math/rand/v2 top-level functions are safe for concurrent use.
func fisherYates(names []string) {
	rand.Shuffle(len(names), func(i, j int) {
		names[i], names[j] = names[j], names[i]
	})
}
