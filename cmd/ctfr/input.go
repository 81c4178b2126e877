package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-audio/wav"

	"github.com/cwbudde/algo-ctfr/combine"
	"github.com/cwbudde/algo-ctfr/ctfr"
	"github.com/cwbudde/algo-ctfr/tfr"
)

var errNotWAV = errors.New("not a valid WAV file")

// execute loads the inputs and runs the combination.
func execute(cfg config, logger *slog.Logger) (*combine.Result, error) {
	if cfg.stepsFile != "" {
		steps, err := readSchedule(cfg.stepsFile)
		if err != nil {
			return nil, err
		}
		cfg.params["interp_steps"] = steps
	}

	copts := []combine.Option{combine.WithLogger(logger)}
	if cfg.workers > 0 {
		copts = append(copts, combine.WithWorkers(cfg.workers))
	}

	if cfg.specs {
		specs := make([]*tfr.Representation, 0, len(cfg.inputs))
		for _, path := range cfg.inputs {
			r, err := readRepresentation(path)
			if err != nil {
				return nil, err
			}
			specs = append(specs, r)
		}
		logger.Debug("loaded representations", slog.Int("count", len(specs)))
		return combine.DefaultRegistry().FromSpecsKey(specs, cfg.method, cfg.params, copts...)
	}

	signal, sampleRate, err := readSignal(cfg.inputs[0], cfg.sampleRate)
	if err != nil {
		return nil, err
	}
	logger.Debug("loaded signal",
		slog.String("path", cfg.inputs[0]),
		slog.Int("samples", len(signal)),
		slog.Float64("sample_rate", sampleRate))

	return ctfr.FromSignalKey(signal, sampleRate, cfg.method, cfg.params,
		ctfr.WithSTFT(cfg.multi(sampleRate)),
		ctfr.WithCombineOptions(copts...))
}

// readSignal loads a mono signal. WAV files carry their own sample rate;
// any other file is read as a one-column CSV sampled at sampleRate.
func readSignal(path string, sampleRate float64) ([]float64, float64, error) {
	if strings.EqualFold(filepath.Ext(path), ".wav") {
		return readWAV(path)
	}

	if sampleRate <= 0 {
		return nil, 0, fmt.Errorf("%s: -sr is required for CSV signals", path)
	}

	rows, err := readCSV(path)
	if err != nil {
		return nil, 0, err
	}

	signal := make([]float64, 0, len(rows))
	for i, row := range rows {
		if len(row) != 1 {
			return nil, 0, fmt.Errorf("%s:%d: want one value per line, got %d", path, i+1, len(row))
		}
		signal = append(signal, row[0])
	}
	return signal, sampleRate, nil
}

// readWAV decodes a PCM WAV file, mixing all channels down to mono and
// scaling samples to [-1, 1].
func readWAV(path string) ([]float64, float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, 0, fmt.Errorf("%s: %w", path, errNotWAV)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", path, err)
	}

	channels := buf.Format.NumChannels
	if channels <= 0 {
		channels = 1
	}
	bitDepth := buf.SourceBitDepth
	if bitDepth <= 0 {
		bitDepth = int(dec.BitDepth)
	}
	if bitDepth <= 0 {
		bitDepth = 16
	}
	scale := 1 / (math.Exp2(float64(bitDepth-1)) * float64(channels))

	frames := len(buf.Data) / channels
	signal := make([]float64, frames)
	for i := range frames {
		sum := 0
		for c := range channels {
			sum += buf.Data[i*channels+c]
		}
		signal[i] = float64(sum) * scale
	}

	return signal, float64(buf.Format.SampleRate), nil
}

// readRepresentation loads a CSV grid with one row per frequency bin.
func readRepresentation(path string) (*tfr.Representation, error) {
	rows, err := readCSV(path)
	if err != nil {
		return nil, err
	}
	r, err := tfr.FromRows(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return r, nil
}

// readSchedule loads an interp_steps schedule: one "freq,time" pair per
// frame.
func readSchedule(path string) (tfr.Schedule, error) {
	rows, err := readCSV(path)
	if err != nil {
		return nil, err
	}

	steps := make(tfr.Schedule, len(rows))
	for m, row := range rows {
		if len(row) != 2 {
			return nil, fmt.Errorf("%s:%d: want two columns, got %d", path, m+1, len(row))
		}
		for c, v := range row {
			if v != math.Trunc(v) || v < 0 {
				return nil, fmt.Errorf("%s:%d: column %d = %v is not a non-negative integer", path, m+1, c+1, v)
			}
		}
		steps[m] = tfr.Step{Freq: int(row[0]), Time: int(row[1])}
	}
	return steps, nil
}

func readCSV(path string) ([][]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return parseCSV(f, path)
}

// parseCSV reads comma-separated numbers. Blank lines and lines starting with
// '#' are skipped.
func parseCSV(r io.Reader, name string) ([][]float64, error) {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var rows [][]float64
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}

		line, _ := cr.FieldPos(0)
		row := make([]float64, len(rec))
		for i, field := range rec {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, fmt.Errorf("%s:%d: %w", name, line, err)
			}
			row[i] = v
		}
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: no data", name)
	}
	return rows, nil
}
