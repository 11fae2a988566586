package engine

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"golang.org/x/exp/rand"

	"madn/board"
	"madn/dice"
	"madn/experiments/metrics"
	"madn/game"
	"madn/meta"
	"madn/render"
)

// Match drives one game of four players. It is not safe for concurrent use; run separate
// matches on separate goroutines instead.
type Match struct {
	ID      string
	Size    board.Size
	Players []*game.Player // in turn order, Players[0] moves first
	History []game.Move

	geo        *board.Geometry
	dice       dice.Dice
	rules      game.Rules
	renderer   render.Renderer
	metrics    metrics.Collector
	logger     zerolog.Logger
	strategies map[board.Color]game.Strategy
	seed       uint64
	start      board.Color
	maxTurns   int

	turn      int
	winner    board.Color
	started   bool
	startTime time.Time
}

// NewMatch sets up a match on a board of the given size. Every piece starts on its home cell.
func NewMatch(size board.Size, options ...Option) *Match {
	m := &Match{
		ID:         uuid.NewString(),
		Size:       size,
		geo:        board.For(size),
		rules:      game.NewStandardRules(),
		renderer:   render.Nop(),
		metrics:    metrics.NewDummyCollector(),
		logger:     log.Logger,
		strategies: map[board.Color]game.Strategy{},
		seed:       uint64(time.Now().UnixNano()),
		start:      board.NoColor,
		maxTurns:   meta.MAX_TURNS,
		winner:     board.NoColor,
	}
	for _, option := range options {
		option(m)
	}

	if m.dice == nil {
		m.dice = dice.NewRandom(m.seed)
	}
	if m.start == board.NoColor {
		rng := rand.New(rand.NewSource(m.seed ^ 0x9e3779b97f4a7c15))
		m.start = dice.Between(rng, board.Yellow, board.Black)
	}

	c := m.start
	for range board.Colors {
		m.Players = append(m.Players, game.NewPlayer(m.geo, c))
		c = c.Next()
	}
	return m
}

// Resume continues a match from a snapshot. The current player of the snapshot has the
// next turn, and turns are counted from zero again.
func Resume(s game.State, options ...Option) *Match {
	m := NewMatch(s.Size, append([]Option{WithStartColor(s.Current)}, options...)...)
	for _, v := range s.Pieces {
		m.Player(v.Color).Piece(v.Slot).Restore(v)
	}
	if s.Winner.Valid() {
		m.winner = s.Winner
	}
	return m
}

// Run executes the entire game loop until a winner is found or the turn cap is reached.
func (m *Match) Run() Result {
	m.Start()
	for !m.Finished() {
		m.PlayTurn()
	}
	return m.Finish()
}

// Start draws the board and every piece on its home cell. It is a no-op after the first call.
func (m *Match) Start() {
	if m.started {
		return
	}
	m.started = true
	m.startTime = time.Now()
	m.metrics.AddMatch()

	m.renderer.DrawBoard(m.Size)
	for _, pl := range m.Players {
		for _, p := range pl.Pieces {
			m.renderer.PlacePiece(p.View())
		}
	}
	m.logger.Info().Msgf("match %s: %s is starting on a %s board", m.ID, m.start, m.Size)
}

func (m *Match) Finished() bool {
	return m.winner != board.NoColor || m.turn >= m.maxTurns
}

// Finish reports the outcome. The match must not be played on afterwards.
func (m *Match) Finish() Result {
	if m.winner != board.NoColor {
		m.logger.Info().Msgf("match %s: %s has won after %d turns", m.ID, m.winner, m.turn)
		m.renderer.DrawWinner(m.winner)
	} else {
		m.logger.Warn().Msgf("match %s: stopped after %d turns without a winner", m.ID, m.turn)
	}

	return Result{
		ID:       m.ID,
		Size:     m.Size,
		Start:    m.start,
		Winner:   m.winner,
		Turns:    m.turn,
		History:  m.history(),
		Final:    m.State(),
		Duration: time.Since(m.startTime),
	}
}

// history copies the moves so a result does not share them with the match.
func (m *Match) history() []game.Move {
	return lo.Map(m.History, func(mv game.Move, _ int) game.Move { return *mv.Clone() })
}

// Current returns the player whose turn is next.
func (m *Match) Current() *game.Player {
	return m.Players[m.turn%len(m.Players)]
}

func (m *Match) Turn() int { return m.turn }

func (m *Match) Winner() board.Color { return m.winner }

func (m *Match) StartColor() board.Color { return m.start }

// Player returns the player of color c.
func (m *Match) Player(c board.Color) *game.Player {
	for _, pl := range m.Players {
		if pl.Color == c {
			return pl
		}
	}
	panic(fmt.Sprintf("engine: no %s player", c))
}

func (m *Match) State() game.State {
	return game.Snapshot(m.Size, m.turn, m.Current().Color, m.winner, m.Players)
}

// PlayTurn plays a full turn of the current player: every roll it is granted, each one
// preceded by a chance to release a piece.
func (m *Match) PlayTurn() {
	if m.Finished() {
		panic("engine: match is over - no turns allowed")
	}
	pl := m.Current()
	m.turn++

	rolls := m.rollTurn()
	m.logger.Debug().Int("turn", m.turn).Stringer("color", pl.Color).Ints("rolls", rolls).Msg("turn")

	for _, roll := range rolls {
		m.resolve(pl, roll)
		if m.checkWinner() {
			return
		}
	}
}

// rollTurn rolls once and again for every six, up to the bonus cap.
func (m *Match) rollTurn() []int {
	rolls := []int{m.roll()}
	for m.rules.GrantsExtraRoll(rolls[len(rolls)-1]) && len(rolls) <= m.rules.MaxBonusRolls() {
		rolls = append(rolls, m.roll())
	}
	return rolls
}

func (m *Match) roll() int {
	m.metrics.AddRoll()
	return m.draw()
}

func (m *Match) draw() int {
	v := m.dice.Roll()
	if v < 1 || v > dice.Faces {
		panic(fmt.Sprintf("engine: die rolled %d", v))
	}
	return v
}

// permission gives a player without a playable piece a few rolls to throw the release face.
func (m *Match) permission() bool {
	for i := 0; i < m.rules.PermissionRolls(); i++ {
		m.metrics.AddPermissionRoll()
		if m.rules.Releases(m.draw()) {
			return true
		}
	}
	return false
}

func (m *Match) resolve(pl *game.Player, roll int) {
	if !pl.HasPlayablePiece() && m.permission() {
		if p := pl.PlaceOnStart(); p != nil {
			m.record(game.Release, p, roll, p.HomeCell())
			m.metrics.AddRelease()
		}
	}

	if !pl.HasPlayablePiece() {
		m.metrics.AddForfeit()
		return
	}

	p := m.pick(pl, roll)
	if p == nil {
		m.logger.Debug().Int("turn", m.turn).Stringer("color", pl.Color).Int("roll", roll).Msg("no legal piece")
		m.metrics.AddForfeit()
		return
	}
	m.advance(pl, p, roll)
}

// pick asks the strategy of the player, if any, and falls back to PickPiece.
func (m *Match) pick(pl *game.Player, roll int) *game.Piece {
	strategy, ok := m.strategies[pl.Color]
	if !ok {
		return pl.PickPiece(roll)
	}
	candidates := pl.Candidates(roll)
	if len(candidates) == 0 {
		return nil
	}
	ids := lo.Map(candidates, func(p *game.Piece, _ int) game.PieceID { return p.ID() })
	id := strategy.Pick(game.Snapshot(m.Size, m.turn, pl.Color, m.winner, m.Players), roll, ids)
	if !lo.Contains(ids, id) {
		panic(fmt.Sprintf("engine: strategy of %s picked %s#%d which may not move by %d", pl.Color, id.Color, id.Slot, roll))
	}
	return pl.Piece(id.Slot)
}

func (m *Match) advance(pl *game.Player, p *game.Piece, roll int) {
	from := p.Pos
	pl.MovePiece(p, roll)
	m.record(game.Advance, p, roll, from)
	m.metrics.AddMove()
}

// PlayMove plays a single roll of the current player with the piece in slot and passes
// the turn without rolling again. It panics if the piece may not move by roll.
func (m *Match) PlayMove(slot, roll int) {
	if m.Finished() {
		panic("engine: match is over - no turns allowed")
	}
	m.Start()
	pl := m.Current()
	p := pl.Piece(slot)
	m.turn++
	m.advance(pl, p, roll)
	m.checkWinner()
}

// record notifies the renderer of a piece that changed position, resolves captures at
// its new position and appends the move to the history.
func (m *Match) record(kind game.MoveKind, p *game.Piece, roll int, from board.Point) {
	m.renderer.PlacePiece(p.View())
	hits := m.capture(p)

	m.History = append(m.History, game.Move{
		Turn:  m.turn,
		Piece: p.ID(),
		Kind:  kind,
		Roll:  roll,
		From:  from,
		To:    p.Pos,
		Hits:  hits,
	})

	m.logger.Debug().
		Int("turn", m.turn).
		Stringer("kind", kind).
		Str("piece", p.String()).
		Int("roll", roll).
		Int("hits", len(hits)).
		Msg("move")
}

// capture sends every opposing piece on the cell of p back home.
func (m *Match) capture(p *game.Piece) []game.Hit {
	hits := game.Capture(m.Players, p)
	for _, h := range hits {
		m.renderer.PlacePiece(m.Player(h.Color).Piece(h.Slot).View())
	}
	if len(hits) > 0 {
		m.metrics.AddCaptures(len(hits))
	}
	return hits
}

// checkWinner records the first player, in turn order, with every piece on its goal lane.
func (m *Match) checkWinner() bool {
	for _, pl := range m.Players {
		if pl.HasWon() {
			m.winner = pl.Color
			return true
		}
	}
	return false
}
