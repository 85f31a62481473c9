package metrics

import "time"

// SearchMetric describes one engine move decision.
type SearchMetric struct {
	Budget       uint32
	IterationCap int
	Duration     time.Duration
	Iterations   int
	Playouts     int
	Merges       int
	TacticalHit  bool
}

// MoveMetric ties a search metric to its position in a game.
type MoveMetric struct {
	Step   int
	Player string
	SearchMetric
}

// GameMetric summarizes one finished game.
type GameMetric struct {
	Winner     string
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
	TotalMoves int
}

// Collector accumulates search statistics for a single move decision. The
// search is single-threaded, so no synchronization is needed.
type Collector interface {
	Start(budget uint32, iterationCap int)
	AddIteration()
	AddPlayout()
	AddMerge()
	AddTacticalHit()
	Complete() SearchMetric
}

type collector struct {
	budget       uint32
	iterationCap int
	startTime    time.Time
	iterations   int
	playouts     int
	merges       int
	tacticalHit  bool
}

func NewCollector() Collector {
	return &collector{}
}

func (c *collector) Start(budget uint32, iterationCap int) {
	c.budget = budget
	c.iterationCap = iterationCap
	c.startTime = time.Now()
	c.iterations = 0
	c.playouts = 0
	c.merges = 0
	c.tacticalHit = false
}

func (c *collector) AddIteration()   { c.iterations++ }
func (c *collector) AddPlayout()     { c.playouts++ }
func (c *collector) AddMerge()       { c.merges++ }
func (c *collector) AddTacticalHit() { c.tacticalHit = true }

func (c *collector) Complete() SearchMetric {
	return SearchMetric{
		Budget:       c.budget,
		IterationCap: c.iterationCap,
		Duration:     time.Since(c.startTime),
		Iterations:   c.iterations,
		Playouts:     c.playouts,
		Merges:       c.merges,
		TacticalHit:  c.tacticalHit,
	}
}

type dummyCollector struct{}

// NewDummyCollector returns a collector that records nothing; it is the
// default for engines constructed without metrics.
func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (d *dummyCollector) Start(budget uint32, iterationCap int) {}
func (d *dummyCollector) AddIteration()                         {}
func (d *dummyCollector) AddPlayout()                           {}
func (d *dummyCollector) AddMerge()                             {}
func (d *dummyCollector) AddTacticalHit()                       {}
func (d *dummyCollector) Complete() SearchMetric                { return SearchMetric{} }
