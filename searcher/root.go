package searcher

import (
	"math"
	"sync"

	"madn/board"
	"madn/game"
)

type arm struct {
	piece   game.PieceID
	rewards float64
	visits  int
}

// root holds one arm per candidate piece. Episodes running in parallel share it.
type root struct {
	sync.Mutex
	player board.Color
	arms   []arm
	visits int
}

func newRoot(player board.Color, candidates []game.PieceID) *root {
	r := &root{player: player, arms: make([]arm, len(candidates))}
	for i, id := range candidates {
		r.arms[i].piece = id
	}
	return r
}

// selectArm returns the arm with the highest UCB1 score, unvisited arms first, and applies
// a virtual loss to it until the episode is backed up.
func (r *root) selectArm() int {
	r.Lock()
	defer r.Unlock()

	normalizer := C_SQUARED * math.Log(float64(r.visits))

	best := -1
	maxScore := math.Inf(-1)
	for i, a := range r.arms {
		score := ucb1(a.rewards, a.visits, normalizer)
		if score == math.Inf(1) {
			best = i
			break
		}
		if score > maxScore {
			maxScore = score
			best = i
		}
	}

	r.arms[best].rewards += LOSS
	r.arms[best].visits++
	r.visits++
	return best
}

// backup replaces the virtual loss of arm i with the episode's reward.
func (r *root) backup(i int, winner board.Color) {
	r.Lock()
	defer r.Unlock()

	r.arms[i].rewards += reward(winner, r.player) - LOSS
}

// policy returns the share of visits of every arm.
func (r *root) policy() []float64 {
	r.Lock()
	defer r.Unlock()

	policy := make([]float64, len(r.arms))
	if r.visits == 0 {
		return policy
	}
	for i, a := range r.arms {
		policy[i] = float64(a.visits) / float64(r.visits)
	}
	return policy
}

// best returns the most visited arm, the first one on ties.
func (r *root) best() game.PieceID {
	r.Lock()
	defer r.Unlock()

	best := 0
	for i, a := range r.arms {
		if a.visits > r.arms[best].visits {
			best = i
		}
	}
	return r.arms[best].piece
}
