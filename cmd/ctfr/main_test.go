package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-ctfr/internal/testutil"
	"github.com/cwbudde/algo-ctfr/tfr"
)

func noEnv(string) string { return "" }

func env(vars map[string]string) func(string) string {
	return func(k string) string { return vars[k] }
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func writeWAV(t *testing.T, path string, signal []float64, sampleRate int) {
	t.Helper()

	f, err := os.Create(path)
	require.NoError(t, err)

	data := make([]int, len(signal))
	for i, x := range signal {
		data[i] = int(max(-1, min(1, x)) * 32767)
	}

	enc := wav.NewEncoder(f, sampleRate, 16, 1, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: 16,
	}
	require.NoError(t, enc.Write(buf))
	require.NoError(t, enc.Close())
	require.NoError(t, f.Close())
}

func parseOutput(t *testing.T, out string) [][]float64 {
	t.Helper()
	rows, err := parseCSV(strings.NewReader(out), "stdout")
	require.NoError(t, err)
	return rows
}

func TestRunSpecs(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.csv", "2,2,2\n2,2,2\n")
	b := writeFile(t, dir, "b.csv", "# second\n2, 2, 2\n2, 2, 2\n")

	for _, method := range []string{"mean", "median", "swgm", "fls", "lt", "ls", "sls_h"} {
		var stdout, stderr bytes.Buffer
		code := run([]string{"-method", method, "-specs", a, b}, &stdout, &stderr, noEnv)
		require.Equal(t, 0, code, "%s: %s", method, stderr.String())

		rows := parseOutput(t, stdout.String())
		require.Len(t, rows, 2)
		for _, row := range rows {
			testutil.RequireConstant(t, row, 2, 1e-12)
		}
	}
}

func TestRunSpecsWithSteps(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.csv", "1,2,3\n4,5,6\n")
	b := writeFile(t, dir, "b.csv", "6,5,4\n3,2,1\n")
	steps := writeFile(t, dir, "steps.csv", "0,0\n1,0\n0,1\n")
	out := filepath.Join(dir, "out.csv")

	var stdout, stderr bytes.Buffer
	code := run([]string{"-method", "sls_i", "-steps", steps, "-o", out, "-specs", a, b}, &stdout, &stderr, noEnv)
	require.Equal(t, 0, code, stderr.String())
	assert.Empty(t, stdout.String())

	r, err := readRepresentation(out)
	require.NoError(t, err)
	assert.Equal(t, 2, r.Bins)
	assert.Equal(t, 3, r.Frames)
	assert.InDelta(t, 21.0, r.Sum(), 1e-9)
}

func TestRunSpecsMissingSteps(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.csv", "1,2\n3,4\n")

	var stdout, stderr bytes.Buffer
	code := run([]string{"-method", "sls_i", "-specs", a}, &stdout, &stderr, noEnv)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "interp_steps")
}

func TestRunWAV(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tone.wav")
	writeWAV(t, path, testutil.SineWithClick(440, 8000, 4000, 2000, 8), 8000)

	var stdout, stderr bytes.Buffer
	code := run([]string{"-windows", "64,128", "-backend", "gonum", "-v", path}, &stdout, &stderr, noEnv)
	require.Equal(t, 0, code, stderr.String())

	rows := parseOutput(t, stdout.String())
	require.Len(t, rows, 65)
	assert.Len(t, rows[0], 1+4000/32)
	for _, row := range rows {
		testutil.RequireNonNegative(t, row)
	}

	assert.Contains(t, stderr.String(), "loaded signal")
	assert.Contains(t, stderr.String(), "sample_rate=8000")
}

func TestRunCSVSignalDB(t *testing.T) {
	dir := t.TempDir()
	var sb strings.Builder
	for _, x := range testutil.DeterministicSine(500, 4000, 0.5, 1000) {
		sb.WriteString(strconv.FormatFloat(x, 'g', -1, 64) + "\n")
	}
	path := writeFile(t, dir, "signal.txt", sb.String())

	var stdout, stderr bytes.Buffer
	code := run([]string{"-windows", "32,64", "-db", path}, &stdout, &stderr,
		env(map[string]string{"CTFR_SAMPLE_RATE": "4000", "CTFR_METHOD": "lt"}))
	require.Equal(t, 0, code, stderr.String())

	rows := parseOutput(t, stdout.String())
	peak := rows[0][0]
	floor := peak
	for _, row := range rows {
		for _, v := range row {
			peak = max(peak, v)
			floor = min(floor, v)
		}
	}
	assert.InDelta(t, 0, peak, 1e-12)
	assert.GreaterOrEqual(t, floor, -80.0)
}

func TestRunCSVSignalNeedsSampleRate(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "signal.csv", "0\n1\n0\n-1\n")

	var stdout, stderr bytes.Buffer
	code := run([]string{path}, &stdout, &stderr, noEnv)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "-sr is required")
}

func TestRunLogsWarnings(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.csv", "1,2\n3,4\n")
	b := writeFile(t, dir, "b.csv", "4,3\n2,1\n")

	var stdout, stderr bytes.Buffer
	code := run([]string{"-method", "fls", "-params", `{"gamma": -1, "freq_width": 4}`, "-specs", a, b}, &stdout, &stderr, noEnv)
	require.Equal(t, 0, code, stderr.String())
	assert.Contains(t, stderr.String(), "level=WARN")
	assert.Contains(t, stderr.String(), "param=gamma")
	assert.Contains(t, stderr.String(), "param=freq_width")
}

func TestRunUsageErrors(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.csv", "1,2\n3,4\n")

	tests := []struct {
		name string
		args []string
		env  map[string]string
		code int
		msg  string
	}{
		{"no input", nil, nil, 2, "no input"},
		{"bad json", []string{"-params", "{", "-specs", a}, nil, 2, "-params"},
		{"bad window", []string{"-window", "kaiser", a}, nil, 2, "kaiser"},
		{"bad backend", []string{"-backend", "fftw", a}, nil, 2, "fftw"},
		{"bad windows", []string{"-windows", "64,x", a}, nil, 2, "-windows"},
		{"two signals", []string{a, a}, nil, 2, "one input"},
		{"bad env workers", []string{a}, map[string]string{"CTFR_WORKERS": "many"}, 2, "CTFR_WORKERS"},
		{"unknown method", []string{"-method", "cqt", "-specs", a}, nil, 1, "cqt"},
		{"unknown param", []string{"-method", "mean", "-params", `{"gamma": 1}`, "-specs", a}, nil, 1, "gamma"},
		{"missing file", []string{"-specs", filepath.Join(dir, "nope.csv")}, nil, 1, "nope.csv"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			code := run(tt.args, &stdout, &stderr, env(tt.env))
			assert.Equal(t, tt.code, code, stderr.String())
			assert.Contains(t, stderr.String(), tt.msg)
		})
	}
}

func TestRunHelp(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Equal(t, 0, run([]string{"-h"}, &stdout, &stderr, noEnv))
	assert.Contains(t, stderr.String(), "Usage: ctfr")
}

func TestReadWAVStereo(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stereo.wav")

	f, err := os.Create(path)
	require.NoError(t, err)
	enc := wav.NewEncoder(f, 16000, 16, 2, 1)
	require.NoError(t, enc.Write(&audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 2, SampleRate: 16000},
		Data:           []int{16384, 0, -16384, -16384, 0, 32767},
		SourceBitDepth: 16,
	}))
	require.NoError(t, enc.Close())
	require.NoError(t, f.Close())

	signal, sr, err := readWAV(path)
	require.NoError(t, err)
	assert.InDelta(t, 16000.0, sr, 0)
	testutil.RequireSliceNearlyEqual(t, signal, []float64{0.25, -0.5, 32767.0 / 65536}, 1e-12)
}

func TestReadWAVRejectsGarbage(t *testing.T) {
	path := writeFile(t, t.TempDir(), "noise.wav", "definitely not RIFF data")
	_, _, err := readWAV(path)
	require.ErrorIs(t, err, errNotWAV)
}

func TestReadScheduleRejectsFractions(t *testing.T) {
	dir := t.TempDir()
	_, err := readSchedule(writeFile(t, dir, "steps.csv", "0,0\n1.5,0\n"))
	require.Error(t, err)
	_, err = readSchedule(writeFile(t, dir, "steps3.csv", "0,0,0\n"))
	require.Error(t, err)

	steps, err := readSchedule(writeFile(t, dir, "ok.csv", "0,1\n2,3\n"))
	require.NoError(t, err)
	assert.Equal(t, tfr.Schedule{{Freq: 0, Time: 1}, {Freq: 2, Time: 3}}, steps)
}
