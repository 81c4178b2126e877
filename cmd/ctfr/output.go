package main

import (
	"bufio"
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"github.com/cwbudde/algo-ctfr/tfr"
)

const (
	dbAmin  = 1e-10
	dbTopDB = 80
)

// toDB converts power to decibels relative to the loudest bin, clipped 80 dB
// below it.
func toDB(r *tfr.Representation) *tfr.Representation {
	return tfr.PowerToDB(r, 0, dbAmin, dbTopDB)
}

// writeOutput writes r to path, or to stdout when path is empty.
func writeOutput(path string, stdout io.Writer, r *tfr.Representation) error {
	if path == "" {
		return writeCSV(stdout, r)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := writeCSV(f, r); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// writeCSV writes one line per frequency bin.
func writeCSV(w io.Writer, r *tfr.Representation) error {
	bw := bufio.NewWriter(w)
	cw := csv.NewWriter(bw)

	rec := make([]string, r.Frames)
	for k := range r.Bins {
		for t, v := range r.Row(k) {
			rec[t] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}
	return bw.Flush()
}
