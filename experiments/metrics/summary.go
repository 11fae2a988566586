package metrics

import (
	"fmt"
	"sort"
	"strings"

	"gonum.org/v1/gonum/stat"

	"madn/board"
)

// Summary aggregates the game records of a batch.
type Summary struct {
	Games        int
	Decided      int // games with a winner
	MeanTurns    float64
	StdDevTurns  float64
	MedianTurns  float64
	MeanCaptures float64
	// WinShare is the share of decided games won by each color.
	WinShare [board.NumColors]float64
	// StarterWinShare is the share of decided games won by the color that moved first.
	StarterWinShare float64
}

func Summarize(records []GameMetric) Summary {
	s := Summary{Games: len(records)}
	if len(records) == 0 {
		return s
	}

	turns := make([]float64, len(records))
	captures := make([]float64, len(records))
	var wins [board.NumColors]float64
	starterWins := 0.0
	for i, r := range records {
		turns[i] = float64(r.Turns)
		captures[i] = float64(r.Captures)
		if !r.Winner.Valid() {
			continue
		}
		s.Decided++
		wins[r.Winner]++
		if r.Winner == r.StartingColor {
			starterWins++
		}
	}

	s.MeanTurns, s.StdDevTurns = stat.MeanStdDev(turns, nil)
	sort.Float64s(turns)
	s.MedianTurns = stat.Quantile(0.5, stat.Empirical, turns, nil)
	s.MeanCaptures = stat.Mean(captures, nil)

	if s.Decided > 0 {
		for c := range wins {
			s.WinShare[c] = wins[c] / float64(s.Decided)
		}
		s.StarterWinShare = starterWins / float64(s.Decided)
	}
	return s
}

func (s Summary) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "games=%d decided=%d\n", s.Games, s.Decided)
	fmt.Fprintf(&b, "turns: mean=%.1f stddev=%.1f median=%.0f\n", s.MeanTurns, s.StdDevTurns, s.MedianTurns)
	fmt.Fprintf(&b, "captures per game: %.2f\n", s.MeanCaptures)
	for _, c := range board.Colors {
		fmt.Fprintf(&b, "%-6s wins %5.1f%%\n", c, 100*s.WinShare[c])
	}
	fmt.Fprintf(&b, "first mover wins %5.1f%%", 100*s.StarterWinShare)
	return b.String()
}
