package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"madn/game"
)

type MoveRecord struct {
	Game string // GameMetric.ID
	game.Move
}

type Writer struct {
	baseDir string
}

// NewWriter creates root/name/<timestamp> and writes every file of the batch into it.
func NewWriter(root, name string) (*Writer, error) {
	// Create a subfolder named by current timestamp
	timestamp := time.Now().UTC().Format(time.RFC3339)
	baseDir := filepath.Join(root, name, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteGameRecords(records []GameMetric) error {
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			record.ID,
			record.Size.String(),
			record.StartingColor.String(),
			record.Winner.String(),
			strconv.Itoa(record.Turns),
			strconv.Itoa(record.TotalMoves),
			strconv.Itoa(record.Captures),
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
			record.Duration.String(),
		})
	}
	header := []string{"id", "size", "starting_color", "winner", "turns", "moves", "captures", "start_time", "end_time", "duration"}
	return w.write("game_records.csv", header, rows)
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			record.Game,
			strconv.Itoa(record.Turn),
			record.Piece.Color.String(),
			strconv.Itoa(record.Piece.Slot),
			record.Kind.String(),
			strconv.Itoa(record.Roll),
			record.From.String(),
			record.To.String(),
			strconv.Itoa(len(record.Hits)),
		})
	}
	header := []string{"game", "turn", "color", "slot", "kind", "roll", "from", "to", "hits"}
	return w.write("move_records.csv", header, rows)
}

func (w *Writer) WriteCounts(counts CountMetric) error {
	header := []string{"matches", "rolls", "permission_rolls", "releases", "moves", "forfeits", "captures", "duration"}
	row := []string{
		strconv.Itoa(counts.Matches),
		strconv.Itoa(counts.Rolls),
		strconv.Itoa(counts.PermissionRolls),
		strconv.Itoa(counts.Releases),
		strconv.Itoa(counts.Moves),
		strconv.Itoa(counts.Forfeits),
		strconv.Itoa(counts.Captures),
		counts.Duration.String(),
	}
	return w.write("counts.csv", header, [][]string{row})
}

func (w *Writer) write(filename string, header []string, rows [][]string) error {
	// Create a file
	path := filepath.Join(w.baseDir, filename)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", filename, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)

	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write %s header: %w", filename, err)
	}

	err = writer.WriteAll(rows)
	if err != nil {
		return fmt.Errorf("failed to write %s rows: %w", filename, err)
	}

	return nil
}
