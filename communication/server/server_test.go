package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"madn/board"
	"madn/communication"
	watch "madn/communication/client"
	"madn/game"
	"madn/render"
)

var _ render.Renderer = (*Server)(nil)

func newTestServer(t *testing.T) (*Server, *watch.Client) {
	s := NewServer()
	ts := httptest.NewServer(s)
	t.Cleanup(func() {
		s.Close()
		ts.Close()
	})
	return s, watch.NewClient(ts.URL)
}

func piece(c board.Color, slot int) game.PieceView {
	geo := board.For(board.Medium)
	return game.NewPiece(geo, c, slot).View()
}

func TestState(t *testing.T) {
	s, c := newTestServer(t)
	ctx := context.Background()

	t.Run("nothing published yet", func(t *testing.T) {
		_, err := c.State(ctx)
		require.ErrorIs(t, err, watch.ErrNoState)
	})

	t.Run("serves the latest snapshot", func(t *testing.T) {
		geo := board.For(board.Medium)
		pl := game.NewPlayer(geo, board.Red)
		pl.PlaceOnStart()
		want := game.Snapshot(board.Medium, 7, board.Red, board.NoColor, []*game.Player{pl})
		s.UpdateState(want)

		got, err := c.State(ctx)
		require.NoError(t, err)
		require.Equal(t, want, got)
		require.Equal(t, want.Hash(), got.Hash())
	})

	t.Run("wrong method is not routed", func(t *testing.T) {
		rec := httptest.NewRecorder()
		s.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, communication.StatePath, nil))
		require.NotEqual(t, http.StatusOK, rec.Code)
	})
}

func collect(t *testing.T, c *watch.Client, n int) <-chan []communication.Event {
	out := make(chan []communication.Event, 1)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		var events []communication.Event
		err := c.Watch(ctx, func(e communication.Event) bool {
			events = append(events, e)
			return len(events) < n
		})
		if err != nil {
			t.Log(err)
		}
		out <- events
	}()
	return out
}

func TestEvents(t *testing.T) {
	t.Run("late watchers get the backlog then live events", func(t *testing.T) {
		s, c := newTestServer(t)
		s.DrawBoard(board.Small)
		s.PlacePiece(piece(board.Yellow, 0))
		s.PlacePiece(piece(board.Green, 1))

		done := collect(t, c, 4)
		require.Eventually(t, func() bool { return s.Watchers() == 1 }, 2*time.Second, 10*time.Millisecond)
		s.DrawWinner(board.Green)

		events := <-done
		require.Len(t, events, 4)
		for i, e := range events {
			require.Equal(t, i+1, e.Seq, "events arrive in order")
		}
		require.Equal(t, communication.BoardEvent, events[0].Type)
		require.Equal(t, board.Small, *events[0].Size)
		require.Equal(t, piece(board.Green, 1), *events[2].Piece)
		require.Equal(t, communication.WinnerEvent, events[3].Type)
		require.Equal(t, board.Green, *events[3].Winner)
	})

	t.Run("a new board drops the previous match from the backlog", func(t *testing.T) {
		s, c := newTestServer(t)
		s.DrawBoard(board.Small)
		s.PlacePiece(piece(board.Red, 3))
		s.DrawBoard(board.Large)

		events := <-collect(t, c, 1)
		require.Len(t, events, 1)
		require.Equal(t, 3, events[0].Seq)
		require.Equal(t, board.Large, *events[0].Size)
	})

	t.Run("close disconnects watchers", func(t *testing.T) {
		s, c := newTestServer(t)
		s.DrawBoard(board.Medium)

		done := collect(t, c, 100)
		require.Eventually(t, func() bool { return s.Watchers() == 1 }, 2*time.Second, 10*time.Millisecond)
		s.Close()

		events := <-done
		require.Len(t, events, 1)
		require.Zero(t, s.Watchers())
	})
}
