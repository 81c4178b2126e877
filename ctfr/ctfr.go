// Package ctfr computes combined time-frequency representations of audio
// signals: a multi-resolution STFT stack reduced by one combination method.
package ctfr

import (
	"fmt"

	"github.com/cwbudde/algo-ctfr/combine"
	"github.com/cwbudde/algo-ctfr/stft"
	"github.com/cwbudde/algo-ctfr/tfr"
)

type options struct {
	multi       *stft.MultiConfig
	registry    *combine.Registry
	combineOpts []combine.Option
}

// Option configures FromSignal.
type Option func(*options)

// WithSTFT replaces the default three-resolution STFT setup.
func WithSTFT(m stft.MultiConfig) Option {
	return func(o *options) { o.multi = &m }
}

// WithRegistry resolves methods through r instead of the default registry.
func WithRegistry(r *combine.Registry) Option {
	return func(o *options) {
		if r != nil {
			o.registry = r
		}
	}
}

// WithCombineOptions forwards options such as worker count or logger to the
// combination. Normalization options are overridden: the spectrograms are
// always scaled to their mean energy.
func WithCombineOptions(opts ...combine.Option) Option {
	return func(o *options) { o.combineOpts = append(o.combineOpts, opts...) }
}

// FromSignal computes the spectrograms of signal and combines them with
// method configured by params. Without WithSTFT the window lengths follow
// stft.DefaultMultiConfig(sampleRate).
func FromSignal(signal []float64, sampleRate float64, method combine.Method, params combine.Params, opts ...Option) (*combine.Result, error) {
	o := options{registry: combine.DefaultRegistry()}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	if o.multi == nil {
		if sampleRate <= 0 {
			return nil, fmt.Errorf("%w: sample rate must be > 0: %v", stft.ErrInvalidConfig, sampleRate)
		}
		m := stft.DefaultMultiConfig(sampleRate)
		o.multi = &m
	}

	specs, err := Spectrograms(signal, *o.multi)
	if err != nil {
		return nil, err
	}

	copts := append(o.combineOpts, combine.WithNormalizeInput(true), combine.WithNormalizeOutput(true))
	return o.registry.FromSpecs(specs, method, params, copts...)
}

// FromSignalKey is FromSignal with the method given by its key.
func FromSignalKey(signal []float64, sampleRate float64, key string, params combine.Params, opts ...Option) (*combine.Result, error) {
	m, err := combine.ParseMethod(key)
	if err != nil {
		return nil, err
	}
	return FromSignal(signal, sampleRate, m, params, opts...)
}

// Spectrograms returns the aligned power spectrograms described by m.
func Spectrograms(signal []float64, m stft.MultiConfig) ([]*tfr.Representation, error) {
	return stft.Multi(signal, m)
}
