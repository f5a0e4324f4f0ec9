package model

import (
	"fmt"
	"math"
	"strings"
)

// PrimaryStats — базовые атрибуты персонажа.
// All fields are non-negative for base stats and item bonuses.
// Debuff contributions are the only source of negative deltas.
type PrimaryStats struct {
	Strength        float64 `yaml:"strength"`
	Agility         float64 `yaml:"agility"`
	Intelligence    float64 `yaml:"intelligence"`
	Vitality        float64 `yaml:"vitality"`
	DivinePower     float64 `yaml:"divine_power"`
	AbyssResistance float64 `yaml:"abyss_resistance"`
}

// Add returns the field-wise sum of s and o.
func (s PrimaryStats) Add(o PrimaryStats) PrimaryStats {
	return PrimaryStats{
		Strength:        s.Strength + o.Strength,
		Agility:         s.Agility + o.Agility,
		Intelligence:    s.Intelligence + o.Intelligence,
		Vitality:        s.Vitality + o.Vitality,
		DivinePower:     s.DivinePower + o.DivinePower,
		AbyssResistance: s.AbyssResistance + o.AbyssResistance,
	}
}

// Sub returns the field-wise difference s - o.
func (s PrimaryStats) Sub(o PrimaryStats) PrimaryStats {
	return s.Add(o.Scale(-1))
}

// Scale multiplies every field by k.
func (s PrimaryStats) Scale(k float64) PrimaryStats {
	return PrimaryStats{
		Strength:        s.Strength * k,
		Agility:         s.Agility * k,
		Intelligence:    s.Intelligence * k,
		Vitality:        s.Vitality * k,
		DivinePower:     s.DivinePower * k,
		AbyssResistance: s.AbyssResistance * k,
	}
}

// Sanitize replaces negative and non-finite fields with 0.
func (s PrimaryStats) Sanitize() PrimaryStats {
	return PrimaryStats{
		Strength:        nonNegative(s.Strength),
		Agility:         nonNegative(s.Agility),
		Intelligence:    nonNegative(s.Intelligence),
		Vitality:        nonNegative(s.Vitality),
		DivinePower:     nonNegative(s.DivinePower),
		AbyssResistance: nonNegative(s.AbyssResistance),
	}
}

// Validate returns *InvalidStatInputError listing every negative or
// non-finite field, or nil.
func (s PrimaryStats) Validate(source string) error {
	var bad []string
	s.each(func(name string, v float64) {
		if !validValue(v) {
			bad = append(bad, fmt.Sprintf("%s=%v", name, v))
		}
	})
	if len(bad) == 0 {
		return nil
	}
	return &InvalidStatInputError{Source: source, Fields: bad}
}

func (s PrimaryStats) each(fn func(name string, v float64)) {
	fn("strength", s.Strength)
	fn("agility", s.Agility)
	fn("intelligence", s.Intelligence)
	fn("vitality", s.Vitality)
	fn("divinePower", s.DivinePower)
	fn("abyssResistance", s.AbyssResistance)
}

// InvalidStatInputError reports primary stats or item bonuses that are
// negative or non-finite.
type InvalidStatInputError struct {
	Source string
	Fields []string
}

func (e *InvalidStatInputError) Error() string {
	return fmt.Sprintf("invalid stat input in %s: %s", e.Source, strings.Join(e.Fields, ", "))
}

func validValue(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}

func nonNegative(v float64) float64 {
	if !validValue(v) {
		return 0
	}
	return v
}
