package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-ctfr/combine"
	"github.com/cwbudde/algo-ctfr/stft"
)

type config struct {
	method     string
	params     combine.Params
	stepsFile  string
	workers    int
	sampleRate float64
	windows    []int
	hop        int
	nfft       int
	window     stft.WindowType
	backend    stft.Backend
	specs      bool
	output     string
	db         bool
	verbose    bool
	inputs     []string
}

// envDefault returns the environment value of key, or def when unset.
func envDefault(getenv func(string) string, key, def string) string {
	if v := strings.TrimSpace(getenv(key)); v != "" {
		return v
	}
	return def
}

func parseConfig(args []string, getenv func(string) string, stderr io.Writer) (config, error) {
	fs := flag.NewFlagSet("ctfr", flag.ContinueOnError)
	fs.SetOutput(stderr)

	workersDefault, err := strconv.Atoi(envDefault(getenv, "CTFR_WORKERS", "0"))
	if err != nil {
		return config{}, fmt.Errorf("CTFR_WORKERS: %w", err)
	}
	srDefault, err := strconv.ParseFloat(envDefault(getenv, "CTFR_SAMPLE_RATE", "0"), 64)
	if err != nil {
		return config{}, fmt.Errorf("CTFR_SAMPLE_RATE: %w", err)
	}

	var cfg config
	var paramsJSON, windowsList, windowName, backendName string

	fs.StringVar(&cfg.method, "method", envDefault(getenv, "CTFR_METHOD", "fls"), "combination method key (see ctfrinfo -list)")
	fs.StringVar(&paramsJSON, "params", "", `method parameters as a JSON object, e.g. '{"gamma": 10}'`)
	fs.StringVar(&cfg.stepsFile, "steps", "", "CSV file with the (T, 2) interp_steps schedule of sls_i")
	fs.IntVar(&cfg.workers, "workers", workersDefault, "representations processed concurrently (0 = GOMAXPROCS)")
	fs.Float64Var(&cfg.sampleRate, "sr", srDefault, "sample rate of a CSV signal")
	fs.StringVar(&windowsList, "windows", "", "comma-separated STFT window lengths (default: 50 ms rule)")
	fs.IntVar(&cfg.hop, "hop", 0, "STFT hop length (default: half the shortest window)")
	fs.IntVar(&cfg.nfft, "nfft", 0, "FFT size (default: the longest window)")
	fs.StringVar(&windowName, "window", envDefault(getenv, "CTFR_WINDOW", "hann"), "STFT window: hann, hamming, blackman, rectangular")
	fs.StringVar(&backendName, "backend", envDefault(getenv, "CTFR_BACKEND", "algofft"), "FFT backend: algofft, gonum")
	fs.BoolVar(&cfg.specs, "specs", false, "inputs are precomputed representations instead of a signal")
	fs.StringVar(&cfg.output, "o", "", "output CSV file (default: stdout)")
	fs.BoolVar(&cfg.db, "db", false, "write the output in decibels")
	fs.BoolVar(&cfg.verbose, "v", false, "verbose logging")

	fs.Usage = func() {
		_, _ = fmt.Fprintf(stderr, "Usage: ctfr [flags] input.wav | -specs a.csv b.csv ...\n\n")
		_, _ = fmt.Fprintf(stderr, "Combines time-frequency representations and writes the result as CSV.\n\n")
		_, _ = fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return config{}, err
	}
	cfg.inputs = fs.Args()

	switch {
	case len(cfg.inputs) == 0:
		return config{}, fmt.Errorf("no input given")
	case !cfg.specs && len(cfg.inputs) > 1:
		return config{}, fmt.Errorf("signal mode takes one input, got %d (use -specs for representations)", len(cfg.inputs))
	}

	if cfg.params, err = parseParams(paramsJSON); err != nil {
		return config{}, err
	}
	if cfg.windows, err = parseInts(windowsList); err != nil {
		return config{}, fmt.Errorf("-windows: %w", err)
	}
	if cfg.window, err = stft.ParseWindowType(windowName); err != nil {
		return config{}, err
	}
	if cfg.backend, err = stft.ParseBackend(backendName); err != nil {
		return config{}, err
	}

	return cfg, nil
}

// parseParams decodes a JSON object. Numbers stay json.Number so that
// combine.Params reports non-numeric values itself.
func parseParams(s string) (combine.Params, error) {
	if strings.TrimSpace(s) == "" {
		return combine.Params{}, nil
	}

	dec := json.NewDecoder(bytes.NewReader([]byte(s)))
	dec.UseNumber()

	var p combine.Params
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("-params: %w", err)
	}
	if p == nil {
		p = combine.Params{}
	}
	return p, nil
}

func parseInts(s string) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}

	var out []int
	for _, field := range strings.Split(s, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

// multi returns the STFT setup for a signal sampled at sampleRate.
func (c config) multi(sampleRate float64) stft.MultiConfig {
	m := stft.DefaultMultiConfig(sampleRate)
	if len(c.windows) > 0 {
		m.WindowLengths = c.windows
	}
	m.HopLength = c.hop
	m.FFTSize = c.nfft
	m.Window = c.window
	m.Backend = c.backend
	return m
}
