package combine

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/cwbudde/algo-ctfr/tfr"
)

// Result is the outcome of a combination.
type Result struct {
	// Output is the combined representation, shaped like the inputs.
	Output *tfr.Representation
	// ReferenceEnergy is the energy inputs and output were scaled to.
	ReferenceEnergy float64
	// Warnings lists every parameter that was corrected.
	Warnings []Warning
}

// FromSpecs validates specs, groups them into a stack and combines them
// with cfg. The caller's grids are never modified.
func FromSpecs(specs []*tfr.Representation, cfg Config, opts ...Option) (*Result, error) {
	s, err := tfr.NewStack(specs...)
	if err != nil {
		return nil, err
	}
	return Combine(s, cfg, opts...)
}

// Combine runs cfg over an already validated stack.
//
// The pipeline is: validate cfg against the stack, choose the reference
// energy (WithInputEnergy, else the mean member energy), rescale a private
// copy of the stack to it, combine, and rescale the output to it. Both
// rescaling steps are skipped when the reference energy is zero.
func Combine(s *tfr.Stack, cfg Config, opts ...Option) (*Result, error) {
	return run(s, cfg, nil, applyOptions(opts))
}

func run(s *tfr.Stack, cfg Config, warnings []Warning, o options) (*Result, error) {
	if s == nil {
		return nil, tfr.ErrEmptyStack
	}
	if cfg == nil {
		return nil, fmt.Errorf("%w: nil config", ErrInvalidCombinationMethod)
	}

	cfg, more, err := cfg.validate(s)
	warnings = append(warnings, more...)
	logWarnings(o.logger, warnings)
	if err != nil {
		return nil, err
	}

	ref := s.MeanEnergy()
	if o.hasInputEnergy {
		ref = o.inputEnergy
	}

	work := s
	if o.normalizeInput && ref != 0 {
		work = s.Clone()
		if err := work.Normalize(ref); err != nil {
			return nil, err
		}
	}

	start := time.Now()
	out, err := cfg.combine(work, &engine{workers: o.workers})
	if err != nil {
		return nil, err
	}
	o.logger.Debug("combined",
		slog.String("method", cfg.Method().String()),
		slog.Int("representations", s.Len()),
		slog.Int("bins", s.Bins()),
		slog.Int("frames", s.Frames()),
		slog.Duration("elapsed", time.Since(start)))

	if o.normalizeOutput && ref != 0 {
		if err := tfr.Denormalize(out, ref); err != nil {
			return nil, fmt.Errorf("%s output: %w", cfg.Method(), err)
		}
	}

	return &Result{Output: out, ReferenceEnergy: ref, Warnings: warnings}, nil
}

func logWarnings(logger *slog.Logger, warnings []Warning) {
	for _, w := range warnings {
		logger.Warn(w.String(),
			slog.String("method", w.Method.String()),
			slog.String("param", w.Param))
	}
}
