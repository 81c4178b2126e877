// Package stft computes power spectrograms to feed the combination methods.
//
// Frames are centred: frame t is centred on sample t*HopLength, and the
// signal is zero padded by FFTSize/2 on both sides. A window shorter than the
// FFT is centred inside it. The output is |X|^2 without scaling, shaped
// (FFTSize/2+1) bins by (1 + len(signal)/HopLength) frames, so spectrograms
// with different window lengths but the same hop and FFT size align bin for
// bin.
//
// Two FFT backends are available: algo-fft (the default) and gonum's real
// FFT. Both give the same spectrogram up to rounding.
package stft
