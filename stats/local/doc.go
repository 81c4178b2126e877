// Package local computes sliding-window statistics over time-frequency grids.
//
// Every statistic is evaluated on the neighbourhood of a bin: a rectangle of
// Window.Freq bins by Window.Time frames centred on it. Near the grid edges the
// rectangle is truncated to the grid, never padded, so border bins are
// estimated from fewer samples than interior ones.
//
// Strided variants sample every Stride-th bin or frame inside the window. The
// window keeps its sample count and covers a proportionally wider region,
// which is how statistics are taken over interpolated grids without counting
// the interpolated samples.
package local
