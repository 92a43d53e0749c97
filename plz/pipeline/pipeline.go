// Package pipeline runs the full LZ77 factorization of a byte slice:
// suffix array, nearest smaller values of the suffix array, longest
// previous factors, and finally the factor starts.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/ZanzyTHEbar/parallel-lz77/plz/ansv"
	"github.com/ZanzyTHEbar/parallel-lz77/plz/config"
	"github.com/ZanzyTHEbar/parallel-lz77/plz/lpf"
	"github.com/ZanzyTHEbar/parallel-lz77/plz/lz"
	"github.com/ZanzyTHEbar/parallel-lz77/plz/parallel"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/ulikunitz/lz/suffix"
)

// ErrInputTooLarge is returned for texts whose positions do not fit an int32 suffix array.
var ErrInputTooLarge = errors.New("pipeline: input exceeds int32 suffix array positions")

// Pipeline factorizes texts with a fixed configuration. It is safe for
// concurrent use; each call gets its own run id and stats.
type Pipeline struct {
	cfg    config.Config
	exec   *parallel.Executor
	logger zerolog.Logger
}

// Result holds the output of every stage of one run.
type Result struct {
	RunID         uuid.UUID
	SuffixArray   []int32
	Left          []int
	Right         []int
	LPF           []int
	PrevOcc       []int
	Factorization *lz.Factorization
	Stats         *RunStats
}

// New validates cfg and creates a pipeline logging to logger.
func New(cfg config.Config, logger zerolog.Logger) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Pipeline{
		cfg:    cfg,
		exec:   parallel.New(cfg.ANSV.Workers),
		logger: logger,
	}, nil
}

// Factorize runs all stages over text. The context is checked between
// stages; a stage that has started always runs to completion.
func (p *Pipeline) Factorize(ctx context.Context, text []byte) (*Result, error) {
	if len(text) > math.MaxInt32 {
		return nil, fmt.Errorf("%w: %d bytes", ErrInputTooLarge, len(text))
	}

	runID := uuid.New()
	log := p.logger.With().Str("run_id", runID.String()).Logger()
	collector := NewStatsCollector(runID, len(text))
	res := &Result{RunID: runID}

	stages := []struct {
		name string
		run  func() error
	}{
		{StageSuffixArray, func() error {
			res.SuffixArray = make([]int32, len(text))
			if len(text) > 0 {
				suffix.Sort(text, res.SuffixArray)
			}
			return nil
		}},
		{StageANSV, func() error {
			r := ansv.ComputeWithStats(res.SuffixArray,
				ansv.WithExecutor(p.exec),
				ansv.WithChunkSize(p.cfg.ANSV.ChunkSize),
				ansv.WithChunkFactor(p.cfg.ANSV.ChunkFactor),
				ansv.WithLogger(log),
			)
			res.Left, res.Right = r.Left, r.Right
			collector.RecordANSV(r.Stats)
			return nil
		}},
		{StageLPF, func() error {
			var err error
			res.LPF, res.PrevOcc, err = lpf.Compute(text, res.SuffixArray, res.Left, res.Right, p.exec)
			return err
		}},
		{StageLZ, func() error {
			f, st, err := lz.FactorizeWithStats(res.LPF, res.PrevOcc,
				lz.WithExecutor(p.exec),
				lz.WithMinBlockSize(p.cfg.LZ.MinBlockSize),
				lz.WithLogger(log),
			)
			if err != nil {
				return err
			}
			res.Factorization = f
			collector.RecordLZ(st, f.Len())
			return nil
		}},
	}

	for _, s := range stages {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("before %s stage: %w", s.name, err)
		}
		start := time.Now()
		if err := s.run(); err != nil {
			return nil, fmt.Errorf("%s stage failed: %w", s.name, err)
		}
		elapsed := time.Since(start)
		collector.RecordStage(s.name, elapsed)
		log.Debug().
			Str("stage", s.name).
			Int("n", len(text)).
			Dur("elapsed", elapsed).
			Msg("stage complete")
	}

	res.Stats = collector.Snapshot()
	log.Info().
		Int("n", len(text)).
		Int("factors", res.Factorization.Len()).
		Dur("total", res.Stats.Total).
		Msg("factorization complete")
	return res, nil
}
