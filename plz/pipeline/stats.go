package pipeline

import (
	"maps"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ZanzyTHEbar/parallel-lz77/plz/ansv"
	"github.com/ZanzyTHEbar/parallel-lz77/plz/lz"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/stat"
)

// Stage names, in execution order.
const (
	StageSuffixArray = "suffix_array"
	StageANSV        = "ansv"
	StageLPF         = "lpf"
	StageLZ          = "lz"
)

// Balance summarizes how evenly boundary searches spread over ANSV chunks.
type Balance struct {
	Mean   float64
	StdDev float64
}

// RunStats is a snapshot of one Factorize call.
type RunStats struct {
	RunID       uuid.UUID
	N           int
	StartedAt   time.Time
	Total       time.Duration
	Stages      map[string]time.Duration
	ANSV        ansv.Stats
	LZ          lz.Stats
	Factors     int
	ChunkSearch Balance
}

// StatsCollector gathers the stats of one run. Writers serialize on mu;
// readers load the latest snapshot without locking.
type StatsCollector struct {
	mu      sync.Mutex
	stats   atomic.Value // stores *RunStats
	started time.Time
}

// NewStatsCollector creates a collector for the run with the given id.
func NewStatsCollector(runID uuid.UUID, n int) *StatsCollector {
	sc := &StatsCollector{started: time.Now()}
	sc.stats.Store(&RunStats{
		RunID:     runID,
		N:         n,
		StartedAt: sc.started,
		Stages:    make(map[string]time.Duration),
	})
	return sc
}

// update applies fn to a copy of the current snapshot and publishes the copy.
func (sc *StatsCollector) update(fn func(*RunStats)) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	next := sc.Snapshot()
	fn(next)
	next.Total = time.Since(sc.started)
	sc.stats.Store(next)
}

// RecordStage stores the duration of a finished stage.
func (sc *StatsCollector) RecordStage(name string, elapsed time.Duration) {
	sc.update(func(rs *RunStats) {
		rs.Stages[name] = elapsed
	})
}

// RecordANSV stores the engine stats and the chunk balance derived from them.
func (sc *StatsCollector) RecordANSV(st ansv.Stats) {
	sc.update(func(rs *RunStats) {
		rs.ANSV = st
		rs.ChunkSearch = chunkBalance(st.SearchesPerChunk)
	})
}

// RecordLZ stores the factorization stats.
func (sc *StatsCollector) RecordLZ(st lz.Stats, factors int) {
	sc.update(func(rs *RunStats) {
		rs.LZ = st
		rs.Factors = factors
	})
}

// Snapshot returns a copy of the current stats.
func (sc *StatsCollector) Snapshot() *RunStats {
	cur := sc.stats.Load().(*RunStats)
	cp := *cur
	cp.Stages = maps.Clone(cur.Stages)
	cp.ANSV.SearchesPerChunk = append([]int(nil), cur.ANSV.SearchesPerChunk...)
	return &cp
}

func chunkBalance(searches []int) Balance {
	if len(searches) == 0 {
		return Balance{}
	}
	xs := make([]float64, len(searches))
	for i, s := range searches {
		xs[i] = float64(s)
	}
	b := Balance{Mean: stat.Mean(xs, nil)}
	if len(xs) > 1 {
		b.StdDev = stat.StdDev(xs, nil)
	}
	return b
}
