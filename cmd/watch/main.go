package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"madn/board"
	"madn/communication/server"
	"madn/engine"
	"madn/meta"
	"madn/render"
)

const shutdownTimeout = 5 * time.Second

func main() {
	sizeName := flag.String("size", meta.DEFAULT_SIZE, "board size: x-small, small, medium, large or x-large")
	addr := flag.String("addr", ":8080", "listen address of the watch server")
	delay := flag.Duration("delay", 500*time.Millisecond, "pause between two turns")
	logDir := flag.String("logs", "logs", "directory of the match transcripts")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})

	size, err := board.ParseSize(*sizeName)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid -size")
	}
	if *delay <= 0 {
		log.Fatal().Msgf("invalid -delay %s", *delay)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.NewServer()
	httpServer := &http.Server{Addr: *addr, Handler: srv}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Msgf("watch server listening on %s", *addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("watch server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Info().Msg("shutting down...")
		srv.Close()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})
	g.Go(func() error {
		return play(ctx, size, srv, *delay, *logDir)
	})

	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("watch stopped")
	}
}

// play runs one match at a watchable pace. The server keeps serving the final state
// after the match is over.
func play(ctx context.Context, size board.Size, srv *server.Server, delay time.Duration, logDir string) error {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return fmt.Errorf("failed to create transcript directory: %w", err)
	}
	id := uuid.NewString()
	transcript := render.NewTranscript(filepath.Join(logDir, id+".log"))
	defer transcript.Close()

	m := engine.NewMatch(size,
		engine.WithID(id),
		engine.WithRenderer(render.Multi{srv, transcript, render.NewLog(log.Logger)}),
	)
	m.Start()
	srv.UpdateState(m.State())

	ticker := time.NewTicker(delay)
	defer ticker.Stop()
	for !m.Finished() {
		select {
		case <-ctx.Done():
			log.Info().Msgf("match %s interrupted after %d turns", m.ID, m.Turn())
			return nil
		case <-ticker.C:
		}
		m.PlayTurn()
		srv.UpdateState(m.State())
	}

	result := m.Finish()
	srv.UpdateState(result.Final)
	log.Debug().Msg("final board\n" + render.Board(result.Final))
	return nil
}
