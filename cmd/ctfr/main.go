// Command ctfr combines time-frequency representations.
//
// Usage:
//
//	ctfr [flags] input.wav
//	ctfr [flags] -sr 22050 signal.csv
//	ctfr [flags] -specs a.csv b.csv c.csv
//
// In signal mode the input is split into a multi-resolution STFT stack and
// combined. In -specs mode every CSV file holds one precomputed
// representation, one row per frequency bin. The combined representation is
// written as CSV to stdout or to -o.
//
// Defaults for -method, -workers, -sr, -window and -backend can be set with
// CTFR_METHOD, CTFR_WORKERS, CTFR_SAMPLE_RATE, CTFR_WINDOW and CTFR_BACKEND,
// either in the environment or in a .env file in the working directory.
//
// Examples:
//
//	ctfr -method fls song.wav > fls.csv
//	ctfr -method sls_h -params '{"beta": 40}' -db song.wav
//	ctfr -method sls_i -steps steps.csv -specs a.csv b.csv
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load(".env")

	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr, os.Getenv))
}

// run executes the command and returns its exit code.
func run(args []string, stdout, stderr io.Writer, getenv func(string) string) int {
	cfg, err := parseConfig(args, getenv, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "error: %v\n", err)
		return 2
	}

	logger := newLogger(stderr, cfg.verbose)

	res, err := execute(cfg, logger)
	if err != nil {
		logger.Error("combination failed", slog.String("method", cfg.method), slog.Any("error", err))
		return 1
	}

	out := res.Output
	if cfg.db {
		out = toDB(out)
	}

	if err := writeOutput(cfg.output, stdout, out); err != nil {
		logger.Error("write output", slog.String("path", cfg.output), slog.Any("error", err))
		return 1
	}

	logger.Info("done",
		slog.String("method", cfg.method),
		slog.Int("bins", out.Bins),
		slog.Int("frames", out.Frames),
		slog.Float64("energy", res.ReferenceEnergy),
		slog.Int("warnings", len(res.Warnings)))

	return 0
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
