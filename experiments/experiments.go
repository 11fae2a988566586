package experiments

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"madn/board"
	"madn/engine"
	"madn/experiments/metrics"
	"madn/meta"
	"madn/render"
	"madn/searcher"
)

// Config describes a batch of independent matches.
type Config struct {
	Name     string     `yaml:"name"`
	Games    int        `yaml:"games"`
	Size     board.Size `yaml:"size"`
	Seed     uint64     `yaml:"seed"` // match i is seeded with Seed+i
	MaxTurns int        `yaml:"max_turns"`
	Workers  int        `yaml:"workers"`
	// Output is the root directory of the CSV files. Nothing is written when it is empty.
	Output string `yaml:"output"`
	// Transcripts is the directory of the per-match transcripts. None are written when it is empty.
	Transcripts string `yaml:"transcripts"`
	// Searcher lets one color pick its pieces by search instead of the built-in pick.
	Searcher *SearcherConfig `yaml:"searcher"`
}

type SearcherConfig struct {
	Color      board.Color   `yaml:"color"`
	Goroutines int           `yaml:"goroutines"`
	Episodes   int           `yaml:"episodes"`
	Duration   time.Duration `yaml:"duration"`
	Horizon    int           `yaml:"horizon"`
}

func (c SearcherConfig) newMCTS() *searcher.MCTS {
	options := []searcher.Option{}

	if c.Episodes > 0 {
		options = append(options, searcher.WithEpisodes(c.Episodes))
	}
	if c.Duration > 0 {
		options = append(options, searcher.WithDuration(c.Duration))
	}
	if c.Horizon > 0 {
		options = append(options, searcher.WithHorizon(c.Horizon))
	}

	return searcher.NewMCTS(c.Goroutines, options...)
}

func DefaultConfig() Config {
	return Config{
		Name:     "batch",
		Games:    100,
		Size:     board.Medium,
		Seed:     1,
		MaxTurns: meta.MAX_TURNS,
		Workers:  meta.GO_ROUTINES,
	}
}

// LoadConfig reads a YAML batch configuration. Missing keys keep their default value.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	var errs []error
	if c.Name == "" {
		errs = append(errs, errors.New("name is empty"))
	}
	if c.Games <= 0 {
		errs = append(errs, fmt.Errorf("games must be positive, got %d", c.Games))
	}
	if !c.Size.Valid() {
		errs = append(errs, fmt.Errorf("unknown board size %d", c.Size))
	}
	if c.MaxTurns <= 0 {
		errs = append(errs, fmt.Errorf("max_turns must be positive, got %d", c.MaxTurns))
	}
	if c.Workers <= 0 {
		errs = append(errs, fmt.Errorf("workers must be positive, got %d", c.Workers))
	}
	if sc := c.Searcher; sc != nil {
		if !sc.Color.Valid() {
			errs = append(errs, fmt.Errorf("searcher color %s is not a player", sc.Color))
		}
		if sc.Goroutines <= 0 {
			errs = append(errs, fmt.Errorf("searcher goroutines must be positive, got %d", sc.Goroutines))
		}
		if sc.Episodes <= 0 && sc.Duration <= 0 {
			errs = append(errs, errors.New("searcher needs episodes or a duration"))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Report is the outcome of a batch. Games and Moves are ordered by match index.
type Report struct {
	Games   []metrics.GameMetric
	Moves   []metrics.MoveRecord
	Counts  metrics.CountMetric
	Summary metrics.Summary
	// Dir holds the CSV files, if any were written.
	Dir string
}

// Run plays the batch on a pool of cfg.Workers goroutines. Each match runs on a single
// goroutine; only the collector is shared.
func Run(cfg Config) (Report, error) {
	if err := cfg.Validate(); err != nil {
		return Report{}, err
	}
	if cfg.Transcripts != "" {
		if err := os.MkdirAll(cfg.Transcripts, 0755); err != nil {
			return Report{}, fmt.Errorf("failed to create transcript directory: %w", err)
		}
	}

	pool, err := ants.NewPool(cfg.Workers)
	if err != nil {
		return Report{}, fmt.Errorf("failed to create worker pool: %w", err)
	}
	defer pool.Release()

	collector := metrics.NewCollector()
	games := make([]metrics.GameMetric, cfg.Games)
	moves := make([][]metrics.MoveRecord, cfg.Games)

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
		done int
	)
	fail := func(err error) {
		mu.Lock()
		errs = append(errs, err)
		mu.Unlock()
	}

	log.Info().Msgf("starting %s experiment with %d games on %d workers...", cfg.Name, cfg.Games, cfg.Workers)
	if cfg.Searcher != nil {
		log.Info().Msgf("%s picks by search: %+v", cfg.Searcher.Color, *cfg.Searcher)
	}
	collector.Start()

	for i := 0; i < cfg.Games; i++ {
		i := i
		wg.Add(1)
		err := pool.Submit(func() {
			defer wg.Done()
			game, gameMoves := runGame(cfg, i, collector)
			games[i] = game
			moves[i] = gameMoves

			mu.Lock()
			done++
			n := done
			mu.Unlock()
			log.Info().Msgf("completed game %d of %d with winner: %s", n, cfg.Games, game.Winner)
		})
		if err != nil {
			wg.Done()
			fail(fmt.Errorf("failed to submit game %d: %w", i, err))
		}
	}
	wg.Wait()

	if err := errors.Join(errs...); err != nil {
		return Report{}, err
	}

	report := Report{
		Games:   games,
		Counts:  collector.Complete(),
		Summary: metrics.Summarize(games),
	}
	for _, m := range moves {
		report.Moves = append(report.Moves, m...)
	}
	log.Info().Msgf("completed %s experiment in %s", cfg.Name, report.Counts.Duration)

	if cfg.Output != "" {
		dir, err := store(cfg, report)
		if err != nil {
			return report, err
		}
		report.Dir = dir
	}
	return report, nil
}

// runGame plays match i of the batch.
func runGame(cfg Config, i int, collector metrics.Collector) (metrics.GameMetric, []metrics.MoveRecord) {
	options := []engine.Option{
		engine.WithSeed(cfg.Seed + uint64(i)),
		engine.WithMaxTurns(cfg.MaxTurns),
		engine.WithCollector(collector),
	}
	if cfg.Searcher != nil {
		options = append(options, engine.WithStrategy(cfg.Searcher.Color, cfg.Searcher.newMCTS()))
	}

	if cfg.Transcripts != "" {
		transcript := render.NewTranscript(filepath.Join(cfg.Transcripts, fmt.Sprintf("%s-%04d.log", cfg.Name, i)))
		defer func() {
			if err := transcript.Close(); err != nil {
				log.Warn().Err(err).Msgf("failed to close transcript of game %d", i)
			}
		}()
		options = append(options, engine.WithRenderer(transcript))
	}

	start := time.Now()
	result := engine.NewMatch(cfg.Size, options...).Run()
	end := time.Now()

	captures := 0
	records := make([]metrics.MoveRecord, 0, len(result.History))
	for _, m := range result.History {
		captures += len(m.Hits)
		records = append(records, metrics.MoveRecord{Game: result.ID, Move: m})
	}

	return metrics.GameMetric{
		ID:            result.ID,
		Size:          result.Size,
		StartingColor: result.Start,
		Winner:        result.Winner,
		Turns:         result.Turns,
		TotalMoves:    len(result.History),
		Captures:      captures,
		StartTime:     start,
		EndTime:       end,
		Duration:      end.Sub(start),
	}, records
}

func store(cfg Config, report Report) (string, error) {
	writer, err := metrics.NewWriter(cfg.Output, cfg.Name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}

	err = writer.WriteGameRecords(report.Games)
	if err != nil {
		return "", fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	err = writer.WriteMoveRecords(report.Moves)
	if err != nil {
		return "", fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msg("stored move records")

	err = writer.WriteCounts(report.Counts)
	if err != nil {
		return "", fmt.Errorf("failed to write counts: %w", err)
	}
	log.Info().Msg("stored counts")

	return writer.Dir(), nil
}
