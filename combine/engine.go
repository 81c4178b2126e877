package combine

import (
	"log/slog"
	"math"
	"runtime"
	"sync"

	"github.com/cwbudde/algo-ctfr/tfr"
)

type options struct {
	normalizeInput  bool
	normalizeOutput bool
	inputEnergy     float64
	hasInputEnergy  bool
	workers         int
	logger          *slog.Logger
}

// Option configures a combination call.
type Option func(*options)

func defaultOptions() options {
	return options{
		normalizeInput:  true,
		normalizeOutput: true,
		workers:         runtime.GOMAXPROCS(0),
		logger:          slog.New(slog.DiscardHandler),
	}
}

// WithNormalizeInput toggles scaling every input to the reference energy.
func WithNormalizeInput(on bool) Option {
	return func(o *options) { o.normalizeInput = on }
}

// WithNormalizeOutput toggles scaling the result to the reference energy.
func WithNormalizeOutput(on bool) Option {
	return func(o *options) { o.normalizeOutput = on }
}

// WithInputEnergy fixes the reference energy instead of using the mean
// energy of the stack. Negative or non-finite values are ignored.
func WithInputEnergy(energy float64) Option {
	return func(o *options) {
		if energy >= 0 && energy <= math.MaxFloat64 {
			o.inputEnergy = energy
			o.hasInputEnergy = true
		}
	}
}

// WithWorkers bounds the number of representations processed concurrently.
// Values below 1 are ignored.
func WithWorkers(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.workers = n
		}
	}
}

// WithLogger routes parameter warnings and debug traces to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func applyOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// engine carries the execution settings a method needs while combining.
type engine struct {
	workers int
}

// each applies fn to every member of s, running at most e.workers calls at
// once. Results keep stack order; the error of the lowest failing index is
// returned, so the outcome does not depend on scheduling.
func (e *engine) each(s *tfr.Stack, fn func(r *tfr.Representation) (*tfr.Representation, error)) ([]*tfr.Representation, error) {
	n := s.Len()
	out := make([]*tfr.Representation, n)
	errs := make([]error, n)

	workers := max(1, min(e.workers, n))
	sem := make(chan struct{}, workers)

	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-sem }()
			out[i], errs[i] = fn(s.At(i))
		}()
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// meanAt returns the arithmetic mean of the stack at flat index idx.
func meanAt(s *tfr.Stack, idx int) float64 {
	sum := 0.0
	for i := range s.Len() {
		sum += s.At(i).Data[idx]
	}
	return sum / float64(s.Len())
}
