package engine

import (
	"os"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"madn/board"
	"madn/dice"
	"madn/experiments/metrics"
	"madn/game"
)

var _ Engine = (*Match)(nil)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.Disabled)
	os.Exit(m.Run())
}

type recorder struct {
	boards  []board.Size
	pieces  []game.PieceView
	winners []board.Color
}

func (r *recorder) DrawBoard(size board.Size)   { r.boards = append(r.boards, size) }
func (r *recorder) PlacePiece(v game.PieceView) { r.pieces = append(r.pieces, v) }
func (r *recorder) DrawWinner(c board.Color)    { r.winners = append(r.winners, c) }

func newScriptedMatch(start board.Color, rolls ...int) (*Match, *dice.Scripted) {
	d := dice.NewScripted(rolls...)
	return NewMatch(board.Medium, WithDice(d), WithStartColor(start)), d
}

func TestNewMatch(t *testing.T) {
	t.Run("players follow clockwise order from the start color", func(t *testing.T) {
		m := NewMatch(board.Small, WithStartColor(board.Red))
		got := []board.Color{}
		for _, pl := range m.Players {
			got = append(got, pl.Color)
		}
		require.Equal(t, []board.Color{board.Red, board.Black, board.Yellow, board.Green}, got)
		require.Equal(t, board.Red, m.Current().Color)
	})

	t.Run("every piece starts at home", func(t *testing.T) {
		m := NewMatch(board.Large)
		for _, pl := range m.Players {
			require.True(t, pl.AllHome(), "%s", pl.Color)
		}
	})

	t.Run("random start color covers every color", func(t *testing.T) {
		seen := map[board.Color]bool{}
		for seed := uint64(0); seed < 64; seed++ {
			seen[NewMatch(board.Medium, WithSeed(seed)).StartColor()] = true
		}
		require.Len(t, seen, board.NumColors)
	})

	t.Run("same seed gives same start color", func(t *testing.T) {
		a := NewMatch(board.Medium, WithSeed(3))
		b := NewMatch(board.Medium, WithSeed(3))
		require.Equal(t, a.StartColor(), b.StartColor())
	})

	t.Run("ids are unique unless given", func(t *testing.T) {
		require.NotEqual(t, NewMatch(board.Medium).ID, NewMatch(board.Medium).ID)
		require.Equal(t, "replay", NewMatch(board.Medium, WithID("replay")).ID)
	})

	t.Run("unknown size panics", func(t *testing.T) {
		require.Panics(t, func() { NewMatch(board.Size(9)) })
	})
}

func TestRollTurn(t *testing.T) {
	tests := []struct {
		name  string
		rolls []int
		want  []int
	}{
		{"single roll", []int{4}, []int{4}},
		{"six grants another roll", []int{6, 2}, []int{6, 2}},
		{"consecutive sixes", []int{6, 6, 5}, []int{6, 6, 5}},
		{"extra rolls are capped", []int{6}, []int{6, 6, 6, 6}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := newScriptedMatch(board.Yellow, tt.rolls...)
			require.Equal(t, tt.want, m.rollTurn())
		})
	}
}

func TestPlayTurn(t *testing.T) {
	geo := board.For(board.Medium)

	t.Run("permission releases a piece which then moves", func(t *testing.T) {
		m, d := newScriptedMatch(board.Yellow, 3, 6)
		m.PlayTurn()

		p := m.Player(board.Yellow).Piece(0)
		require.Equal(t, 3, p.Steps)
		require.Equal(t, 2, d.Rolls(), "one turn roll and one permission roll")

		require.Len(t, m.History, 2)
		require.Equal(t, game.Release, m.History[0].Kind)
		require.Equal(t, geo.HomeCells(board.Yellow)[0], m.History[0].From)
		require.Equal(t, geo.EntryPoint(board.Yellow), m.History[0].To)
		require.Equal(t, game.Advance, m.History[1].Kind)
		require.Equal(t, geo.EntryPoint(board.Yellow), m.History[1].From)
		require.Equal(t, p.Pos, m.History[1].To)
		require.Equal(t, board.Green, m.Current().Color, "the turn passes clockwise")
	})

	t.Run("without permission the roll is forfeited", func(t *testing.T) {
		m, d := newScriptedMatch(board.Green, 5, 1, 2, 3)
		m.PlayTurn()

		require.Empty(t, m.History)
		require.True(t, m.Player(board.Green).AllHome())
		require.Equal(t, 4, d.Rolls(), "three permission rolls were spent")
	})

	t.Run("no permission is rolled with a piece on the track", func(t *testing.T) {
		c := metrics.NewCollector()
		d := dice.NewScripted(2, 6)
		m := NewMatch(board.Medium, WithDice(d), WithStartColor(board.Yellow), WithCollector(c))
		m.Player(board.Yellow).Piece(0).GetOut()

		m.PlayTurn()

		require.Equal(t, 1, d.Rolls(), "only the turn roll is drawn")
		require.Zero(t, c.Complete().PermissionRolls)
		require.Equal(t, 2, m.Player(board.Yellow).Piece(0).Steps)
		require.True(t, m.Player(board.Yellow).Piece(1).InHome(), "no piece is released while one is out")
	})

	t.Run("a six queues an extra move", func(t *testing.T) {
		m, _ := newScriptedMatch(board.Yellow, 6, 2, 6, 1, 1, 1)
		m.PlayTurn()

		p := m.Player(board.Yellow).Piece(0)
		require.Equal(t, 8, p.Steps)
		require.Len(t, m.History, 3, "release, move by six, move by two")
	})

	t.Run("playing a finished match panics", func(t *testing.T) {
		m, _ := newScriptedMatch(board.Yellow, 1)
		m.maxTurns = 1
		m.PlayTurn()
		require.True(t, m.Finished())
		require.Panics(t, func() { m.PlayTurn() })
	})
}

func TestCapture(t *testing.T) {
	geo := board.For(board.Medium)

	t.Run("release captures a piece on the entry point", func(t *testing.T) {
		m, _ := newScriptedMatch(board.Yellow, 1, 6)
		victim := m.Player(board.Green).Piece(0)
		victim.Pos = geo.EntryPoint(board.Yellow)

		m.PlayTurn()

		require.True(t, victim.InHome())
		require.Equal(t, []game.Hit{{
			PieceID: game.PieceID{Color: board.Green, Slot: 0},
			From:    geo.EntryPoint(board.Yellow),
		}}, m.History[0].Hits)
	})

	t.Run("move captures the piece it lands on", func(t *testing.T) {
		m, _ := newScriptedMatch(board.Yellow, 3, 1, 1, 1)
		mover := m.Player(board.Yellow).Piece(0)
		mover.GetOut()
		target, _ := mover.FuturePos(3)

		victim := m.Player(board.Red).Piece(2)
		victim.GetOut()
		victim.Move(5)
		victim.Pos = target

		m.PlayTurn()

		require.Equal(t, target, mover.Pos)
		require.True(t, victim.InHome())
		require.Zero(t, victim.Steps, "a captured piece starts over")
		require.Len(t, m.History, 1)
		require.Equal(t, game.PieceID{Color: board.Red, Slot: 2}, m.History[0].Hits[0].PieceID)
	})

	t.Run("result history does not share hits with the match", func(t *testing.T) {
		m, _ := newScriptedMatch(board.Yellow, 3, 1, 1, 1)
		mover := m.Player(board.Yellow).Piece(0)
		mover.GetOut()
		target, _ := mover.FuturePos(3)
		victim := m.Player(board.Red).Piece(2)
		victim.Pos = target

		m.PlayTurn()
		result := m.Finish()

		require.Equal(t, m.History, result.History)
		result.History[0].Hits[0].Slot = 0
		require.Equal(t, 2, m.History[0].Hits[0].Slot, "changing the result leaves the match alone")
	})

	t.Run("passing over a piece does not capture it", func(t *testing.T) {
		m, _ := newScriptedMatch(board.Yellow, 3, 1, 1, 1)
		mover := m.Player(board.Yellow).Piece(0)
		mover.GetOut()
		passed, _ := mover.FuturePos(1)

		bystander := m.Player(board.Black).Piece(1)
		bystander.Pos = passed

		m.PlayTurn()

		require.Equal(t, passed, bystander.Pos)
		require.Empty(t, m.History[0].Hits)
	})
}

func TestWinner(t *testing.T) {
	rec := &recorder{}
	m := NewMatch(board.Medium,
		WithDice(dice.NewScripted(4, 1, 1, 1)),
		WithStartColor(board.Yellow),
		WithRenderer(rec),
	)
	yellow := m.Player(board.Yellow)
	for slot, k := range []int{40, 41, 42} {
		p := yellow.Piece(slot)
		p.GetOut()
		p.Move(k)
		p.MarkDone()
	}
	last := yellow.Piece(3)
	last.GetOut()
	last.Move(board.TrackLength - 1)

	result := m.Run()

	require.True(t, result.HasWinner())
	require.Equal(t, board.Yellow, result.Winner)
	require.Equal(t, 1, result.Turns)
	require.Equal(t, []board.Color{board.Yellow}, rec.winners)
	require.Equal(t, []board.Size{board.Medium}, rec.boards)
	for _, pl := range m.Players {
		require.Equal(t, pl.Color == board.Yellow, pl.HasWon(), "%s", pl.Color)
	}
}

func TestTermination(t *testing.T) {
	t.Run("no six means nobody leaves home", func(t *testing.T) {
		m, _ := newScriptedMatch(board.Black, 1)
		result := m.Run()

		require.False(t, result.HasWinner())
		require.Equal(t, board.NoColor, result.Winner)
		require.Equal(t, 300, result.Turns)
		require.Empty(t, result.History)
	})

	t.Run("endless sixes still stop", func(t *testing.T) {
		m, _ := newScriptedMatch(board.Red, 6)
		result := m.Run()

		require.LessOrEqual(t, result.Turns, 300)
	})

	t.Run("turn cap is configurable", func(t *testing.T) {
		m := NewMatch(board.Small, WithDice(dice.NewScripted(2, 3)), WithMaxTurns(12))
		result := m.Run()

		require.Equal(t, 12, result.Turns)
	})
}

func TestDeterminism(t *testing.T) {
	source := dice.NewRandom(5)
	script := make([]int, 5000)
	for i := range script {
		script[i] = source.Roll()
	}

	play := func() Result {
		return NewMatch(board.Large, WithDice(dice.NewScripted(script...)), WithStartColor(board.Green)).Run()
	}
	a, b := play(), play()

	require.Equal(t, a.Winner, b.Winner)
	require.Equal(t, a.Turns, b.Turns)
	require.Equal(t, a.History, b.History)
	require.Equal(t, a.Final.Hash(), b.Final.Hash())
	require.Equal(t, a.Final, b.Final)
}

func TestInvariants(t *testing.T) {
	for seed := uint64(1); seed <= 20; seed++ {
		m := NewMatch(board.Medium, WithSeed(seed))
		m.Start()
		for !m.Finished() {
			m.PlayTurn()

			cells := map[board.Point]board.Color{}
			for _, pl := range m.Players {
				for _, p := range pl.Pieces {
					if p.InHome() {
						continue
					}
					owner, taken := cells[p.Pos]
					require.False(t, taken, "seed %d turn %d: %s and %s share %v", seed, m.Turn(), owner, p.Color, p.Pos)
					cells[p.Pos] = p.Color
				}
			}
		}
		m.Finish()
	}
}

func TestCollector(t *testing.T) {
	c := metrics.NewCollector()
	m := NewMatch(board.Medium, WithDice(dice.NewScripted(3, 6)), WithStartColor(board.Yellow), WithCollector(c), WithMaxTurns(1))
	m.Run()

	got := c.Complete()
	require.Equal(t, 1, got.Matches)
	require.Equal(t, 1, got.Rolls)
	require.Equal(t, 1, got.PermissionRolls)
	require.Equal(t, 1, got.Releases)
	require.Equal(t, 1, got.Moves)
	require.Zero(t, got.Forfeits)
}

type firstPick struct {
	calls int
	seen  game.State
}

func (s *firstPick) Pick(st game.State, roll int, candidates []game.PieceID) game.PieceID {
	s.calls++
	s.seen = st
	return candidates[0]
}

type homePick struct{}

func (homePick) Pick(st game.State, roll int, candidates []game.PieceID) game.PieceID {
	return game.PieceID{Color: st.Current, Slot: 3}
}

func TestStrategy(t *testing.T) {
	setup := func(s game.Strategy) *Match {
		m := NewMatch(board.Medium, WithDice(dice.NewScripted(4, 1, 1, 1)), WithStartColor(board.Yellow), WithStrategy(board.Yellow, s))
		yellow := m.Player(board.Yellow)
		yellow.Piece(0).GetOut()
		yellow.Piece(0).Move(5)
		yellow.Piece(1).GetOut()
		yellow.Piece(1).Move(10)
		return m
	}

	t.Run("strategy overrides the built-in pick", func(t *testing.T) {
		s := &firstPick{}
		m := setup(s)
		m.PlayTurn()

		require.Equal(t, 1, s.calls)
		require.Equal(t, board.Yellow, s.seen.Current, "the snapshot names the moving player")
		require.Equal(t, 9, m.Player(board.Yellow).Piece(0).Steps)
		require.Equal(t, 10, m.Player(board.Yellow).Piece(1).Steps)
	})

	t.Run("picking a piece that may not move panics", func(t *testing.T) {
		m := setup(homePick{})
		require.Panics(t, func() { m.PlayTurn() })
	})
}

func TestResume(t *testing.T) {
	m := NewMatch(board.Medium, WithSeed(9))
	m.Start()
	for i := 0; i < 40 && !m.Finished(); i++ {
		m.PlayTurn()
	}
	st := m.State()

	r := Resume(st, WithSeed(1))

	require.Equal(t, st.Current, r.Current().Color)
	require.Zero(t, r.Turn())
	for _, v := range r.State().Pieces {
		want, ok := st.Piece(v.PieceID)
		require.True(t, ok)
		require.Equal(t, want, v)
	}

	t.Run("a decided snapshot is finished", func(t *testing.T) {
		won := st.Copy()
		won.Winner = board.Red
		require.True(t, Resume(won).Finished())
	})
}

func TestPlayMove(t *testing.T) {
	m, _ := newScriptedMatch(board.Yellow, 1)
	m.Player(board.Yellow).Piece(0).GetOut()

	m.PlayMove(0, 4)

	require.Equal(t, 4, m.Player(board.Yellow).Piece(0).Steps)
	require.Equal(t, board.Green, m.Current().Color, "the turn passes")
	require.Len(t, m.History, 1)
	require.Equal(t, game.Advance, m.History[0].Kind)

	require.Panics(t, func() { m.PlayMove(1, 4) }, "green has no piece out")
}
