// Package combine merges a stack of aligned time-frequency representations
// into a single representation that locally keeps the best available time
// or frequency resolution.
//
// The package provides binwise reducers (mean, harmonic mean, geometric mean,
// median, minimum) and the adaptive methods SWGM, FLS, Lukin-Todd, LS and the
// smoothed local sparsity variants SLS-H and SLS-I. Every method is selected
// through a closed [Method] enum and configured with a typed [Config] value,
// or with keyword-style [Params] parsed through a [Registry].
//
// Combinations are wrapped in an energy normalization: the input stack is
// scaled to its mean energy before combining and the result is scaled back
// to that energy afterwards. Invalid parameters fail before any numeric work;
// parameters that are merely out of range are corrected and reported as
// [Warning] values in the [Result].
package combine
