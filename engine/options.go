package engine

import (
	"github.com/rs/zerolog"

	"madn/board"
	"madn/dice"
	"madn/experiments/metrics"
	"madn/game"
	"madn/render"
)

type Option func(m *Match)

// WithID replaces the generated match ID.
func WithID(id string) Option {
	return func(m *Match) {
		if id != "" {
			m.ID = id
		}
	}
}

// WithDice replaces the seeded random die.
func WithDice(d dice.Dice) Option {
	return func(m *Match) {
		if d != nil {
			m.dice = d
		}
	}
}

// WithSeed seeds the default die and the draw of the starting color.
func WithSeed(seed uint64) Option {
	return func(m *Match) {
		m.seed = seed
	}
}

func WithStartColor(c board.Color) Option {
	return func(m *Match) {
		if c.Valid() {
			m.start = c
		}
	}
}

// WithMaxTurns sets the number of player turns after which the match is abandoned.
func WithMaxTurns(turns int) Option {
	return func(m *Match) {
		if turns > 0 {
			m.maxTurns = turns
		}
	}
}

func WithRenderer(r render.Renderer) Option {
	return func(m *Match) {
		if r != nil {
			m.renderer = r
		}
	}
}

func WithCollector(c metrics.Collector) Option {
	return func(m *Match) {
		if c != nil {
			m.metrics = c
		}
	}
}

func WithRules(r game.Rules) Option {
	return func(m *Match) {
		if r != nil {
			m.rules = r
		}
	}
}

// WithStrategy lets s choose the pieces of color c instead of the built-in pick.
func WithStrategy(c board.Color, s game.Strategy) Option {
	return func(m *Match) {
		if c.Valid() && s != nil {
			m.strategies[c] = s
		}
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(m *Match) {
		m.logger = logger
	}
}
