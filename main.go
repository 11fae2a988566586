package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"madn/board"
	"madn/engine"
	"madn/meta"
	"madn/render"
)

func main() {
	sizeName := flag.String("size", meta.DEFAULT_SIZE, "board size: x-small, small, medium, large or x-large")
	flag.Parse()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if os.Getenv("MADN_DEBUG") != "" {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})

	size, err := board.ParseSize(*sizeName)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		flag.Usage()
		os.Exit(2)
	}

	m := engine.NewMatch(size, engine.WithRenderer(render.NewLog(log.Logger)))
	result := m.Run()
	log.Debug().Msg("final board\n" + render.Board(result.Final))

	if result.HasWinner() {
		fmt.Printf("%s has won the game\n", result.Winner)
	} else {
		fmt.Println("no winner")
	}
	fmt.Printf("iterations = %d\n", result.Turns)
}
