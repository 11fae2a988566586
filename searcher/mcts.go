package searcher

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"madn/board"
	"madn/engine"
	"madn/experiments/metrics"
	"madn/game"
	"madn/meta"
)

type Option func(mcts *MCTS)

// MCTS searches one ply deep: every candidate piece is an arm chosen by UCB1, and every
// episode plays the match out with random dice and the built-in pick for all players.
type MCTS struct {
	goroutines int
	duration   time.Duration
	episodes   int
	horizon    int
	metrics    metrics.Collector
}

func WithDuration(duration time.Duration) Option {
	return func(m *MCTS) {
		if duration > 0 {
			m.duration = duration
		}
	}
}

func WithEpisodes(episodes int) Option {
	return func(m *MCTS) {
		if episodes > 0 {
			m.episodes = episodes
		}
	}
}

// WithHorizon caps the number of turns of a playout. A playout that reaches it counts as
// a loss.
func WithHorizon(turns int) Option {
	return func(m *MCTS) {
		if turns > 0 {
			m.horizon = turns
		}
	}
}

// WithMetrics counts the events of every playout in c.
func WithMetrics(c metrics.Collector) Option {
	return func(m *MCTS) {
		if c != nil {
			m.metrics = c
		}
	}
}

func NewMCTS(goroutines int, options ...Option) *MCTS {
	if goroutines <= 0 {
		panic(fmt.Sprintf("searcher: invalid number of goroutines %d", goroutines))
	}
	m := &MCTS{ // Default values
		goroutines: goroutines,
		horizon:    meta.MAX_TURNS,
		metrics:    metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(m)
	}
	if m.episodes <= 0 && m.duration <= 0 {
		panic("Must specify search episodes or duration")
	}
	return m
}

// Pick implements game.Strategy. A single candidate is returned without searching.
func (m *MCTS) Pick(s game.State, roll int, candidates []game.PieceID) game.PieceID {
	switch len(candidates) {
	case 0:
		panic("searcher: no candidates")
	case 1:
		return candidates[0]
	}
	r := m.search(s, roll, candidates)
	return r.best()
}

// Simulate runs the episodes and returns the share of visits of every candidate.
func (m *MCTS) Simulate(s game.State, roll int, candidates []game.PieceID) []float64 {
	if len(candidates) == 0 {
		panic("searcher: no candidates")
	}
	return m.search(s, roll, candidates).policy()
}

func (m *MCTS) search(s game.State, roll int, candidates []game.PieceID) *root {
	r := newRoot(s.Current, candidates)
	// Seeds depend on the position only so that a search with a fixed number of
	// episodes on one goroutine is reproducible.
	base := uint64(s.Hash()) ^ uint64(roll)
	if m.episodes > 0 {
		m.iterate(r, s, roll, base)
	} else {
		m.countdown(r, s, roll, base)
	}
	return r
}

func (m *MCTS) iterate(r *root, s game.State, roll int, base uint64) {
	task := make(chan uint64, m.episodes)
	for i := 0; i < m.episodes; i++ {
		task <- base + uint64(i)
	}
	close(task)

	var wg sync.WaitGroup
	for i := 0; i < m.goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for seed := range task {
				m.simulate(r, s, roll, seed)
			}
		}()
	}

	wg.Wait()
}

func (m *MCTS) countdown(r *root, s game.State, roll int, base uint64) {
	done := make(chan any)
	var episode atomic.Uint64

	var wg sync.WaitGroup
	for i := 0; i < m.goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-done:
					return
				default:
					m.simulate(r, s, roll, base+episode.Add(1))
				}
			}
		}()
	}

	<-time.After(m.duration)
	close(done)
	wg.Wait()
}

func (m *MCTS) simulate(r *root, s game.State, roll int, seed uint64) {
	i := r.selectArm()
	winner := m.rollout(s, r.arms[i].piece.Slot, roll, seed)
	r.backup(i, winner)
}

// rollout moves the piece in slot by roll and plays the match out.
func (m *MCTS) rollout(s game.State, slot, roll int, seed uint64) board.Color {
	match := engine.Resume(s,
		engine.WithSeed(seed),
		engine.WithMaxTurns(m.horizon),
		engine.WithCollector(m.metrics),
		engine.WithLogger(zerolog.Nop()),
	)
	match.PlayMove(slot, roll)
	return match.Run().Winner
}
