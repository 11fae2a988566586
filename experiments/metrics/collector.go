package metrics

import (
	"sync/atomic"
	"time"

	"madn/board"
)

// CountMetric sums the events of one or more matches.
type CountMetric struct {
	Matches         int
	Rolls           int
	PermissionRolls int
	Releases        int
	Moves           int
	Forfeits        int
	Captures        int
	Duration        time.Duration
}

// GameMetric describes a finished match.
type GameMetric struct {
	ID            string
	Size          board.Size
	StartingColor board.Color
	Winner        board.Color // board.NoColor if the turn cap was reached
	Turns         int
	TotalMoves    int
	Captures      int
	StartTime     time.Time
	EndTime       time.Time
	Duration      time.Duration
}

// Collector counts match events. Implementations are safe for concurrent use so one
// collector can be shared by all matches of a batch.
type Collector interface {
	Start()
	AddMatch()
	AddRoll()
	AddPermissionRoll()
	AddRelease()
	AddMove()
	AddForfeit()
	AddCaptures(n int)
	Complete() CountMetric
}

type collector struct {
	startTime       time.Time
	matches         atomic.Int32
	rolls           atomic.Int64
	permissionRolls atomic.Int64
	releases        atomic.Int64
	moves           atomic.Int64
	forfeits        atomic.Int64
	captures        atomic.Int64
}

func NewCollector() Collector {
	return &collector{startTime: time.Now()}
}

func (m *collector) Start() {
	m.startTime = time.Now()
}

func (m *collector) AddMatch() {
	m.matches.Add(1)
}

func (m *collector) AddRoll() {
	m.rolls.Add(1)
}

func (m *collector) AddPermissionRoll() {
	m.permissionRolls.Add(1)
}

func (m *collector) AddRelease() {
	m.releases.Add(1)
}

func (m *collector) AddMove() {
	m.moves.Add(1)
}

func (m *collector) AddForfeit() {
	m.forfeits.Add(1)
}

func (m *collector) AddCaptures(n int) {
	m.captures.Add(int64(n))
}

func (m *collector) Complete() CountMetric {
	return CountMetric{
		Matches:         int(m.matches.Load()),
		Rolls:           int(m.rolls.Load()),
		PermissionRolls: int(m.permissionRolls.Load()),
		Releases:        int(m.releases.Load()),
		Moves:           int(m.moves.Load()),
		Forfeits:        int(m.forfeits.Load()),
		Captures:        int(m.captures.Load()),
		Duration:        time.Since(m.startTime),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start()                {}
func (m *dummyCollector) AddMatch()             {}
func (m *dummyCollector) AddRoll()              {}
func (m *dummyCollector) AddPermissionRoll()    {}
func (m *dummyCollector) AddRelease()           {}
func (m *dummyCollector) AddMove()              {}
func (m *dummyCollector) AddForfeit()           {}
func (m *dummyCollector) AddCaptures(n int)     {}
func (m *dummyCollector) Complete() CountMetric { return CountMetric{} }
