// Package tfr holds the data model shared by the combination engine:
// non-negative time-frequency grids, stacks of aligned grids, and the
// energy normalization applied around every combination.
//
// A [Representation] stores F frequency bins by T frames in row-major order,
// so a single frequency bin is a contiguous slice of T values. This layout
// lets per-bin row operations run on SIMD block kernels.
package tfr
