package combine

var (
	citeSWGM = &Citation{
		Text: "M. V. M. da Costa and L. W. P. Biscainho, \"Combining time-frequency representations for music " +
			"information retrieval\", in 15o Congresso de Engenharia de Áudio da AES-Brasil, 10 2017, pp. 12–18.",
	}
	citeFLS = &Citation{
		Text: "M. V. M. da Costa and L. W. P. Biscainho, \"The fast local sparsity method: a low-cost combination " +
			"of time-frequency representations based on the Hoyer sparsity\", Journal of the Audio Engineering " +
			"Society, vol. 70, no. 9, pp. 698–707, 09 2022.",
		DOI: "https://doi.org/10.17743/jaes.2022.0036",
	}
	citeLT = &Citation{
		Text: "A. Lukin and J. Todd, \"Adaptive Time-Frequency Resolution for Analysis and Processing of Audio\", " +
			"in Proceedings of the 27th AES International Conference, 05 2006.",
	}
	citeLS = &Citation{
		Text: "M. V. M. da Costa, I. F. Apolinário, and L. W. P. Biscainho, \"Sparse time-frequency representations " +
			"for polyphonic audio based on combined efficient fan-chirp transforms\", Journal of the Audio " +
			"Engineering Society, vol. 67, no. 11, pp. 894–905, 11 2019.",
		DOI: "http://doi.org/10.17743/jaes.2019.0039",
	}
)

const (
	typeOddWidth = "int > 0, odd"
	typeExponent = "float >= 0"
)

func widthDocs(freq, time, what string, freqDefault, timeDefault string) []ParamDoc {
	return []ParamDoc{
		{Name: freq, TypeAndInfo: typeOddWidth, Description: what + " window size in frequency bins", Default: freqDefault},
		{Name: time, TypeAndInfo: typeOddWidth, Description: what + " window size in time frames", Default: timeDefault},
	}
}

func lsDocs() []ParamDoc {
	return append(widthDocs("lek", "lem", "Energy", "11", "11"),
		widthDocs("lsk", "lsm", "Sparsity", "21", "11")...)
}

// DefaultRegistry returns a Registry populated with every built-in method.
func DefaultRegistry() *Registry {
	r := NewRegistry()

	r.MustRegister(Entry{Method: MethodMean, Name: "Binwise Mean", Citation: &Citation{}, Parse: fixed(MeanConfig{})})
	r.MustRegister(Entry{Method: MethodMedian, Name: "Binwise Median", Citation: &Citation{}, Parse: fixed(MedianConfig{})})
	r.MustRegister(Entry{Method: MethodMin, Name: "Binwise Minimum", Citation: &Citation{}, Parse: fixed(MinConfig{})})
	r.MustRegister(Entry{
		Method: MethodHarmonicMean, Name: "Binwise Harmonic Mean",
		Citation: &Citation{}, Parse: fixed(HarmonicMeanConfig{}),
	})
	r.MustRegister(Entry{
		Method: MethodGeometricMean, Name: "Binwise Geometric Mean",
		Citation: &Citation{}, Parse: fixed(GeometricMeanConfig{}),
	})

	r.MustRegister(Entry{
		Method:   MethodSWGM,
		Name:     "Sample Weighted Geometric Mean (SWGM)",
		Citation: citeSWGM,
		Parameters: []ParamDoc{
			{Name: "beta", TypeAndInfo: "float in [0, 1]", Description: "Weight exponent; 0 is the geometric mean", Default: "0.3"},
			{Name: "max_gamma", TypeAndInfo: "float >= 1", Description: "Upper bound of a single weight", Default: "20"},
		},
		Parse: parseSWGM,
	})

	r.MustRegister(Entry{
		Method:   MethodFLS,
		Name:     "Fast Local Sparsity (FLS)",
		Citation: citeFLS,
		Parameters: append(widthDocs("freq_width", "time_width", "Sparsity", "21", "11"),
			ParamDoc{Name: "gamma", TypeAndInfo: typeExponent, Description: "Sparsity weight exponent", Default: "20"}),
		Parse: parseFLS,
	})

	r.MustRegister(Entry{
		Method:   MethodLT,
		Name:     "Lukin-Todd (LT)",
		Citation: citeLT,
		Parameters: append(widthDocs("freq_width", "time_width", "Smearing", "21", "11"),
			ParamDoc{Name: "eta", TypeAndInfo: typeExponent, Description: "Smearing weight exponent", Default: "8"}),
		Parse: parseLT,
	})

	r.MustRegister(Entry{
		Method:     MethodLS,
		Name:       "Local Sparsity (LS)",
		Citation:   citeLS,
		Parameters: lsDocs(),
		Parse:      parseLS,
	})

	r.MustRegister(Entry{
		Method:   MethodSLSH,
		Name:     "Smoothed Local Sparsity, hybrid (SLS-H)",
		Citation: citeLS,
		Parameters: append(lsDocs(),
			ParamDoc{Name: "beta", TypeAndInfo: typeExponent, Description: "Sparsity weight exponent", Default: "80"},
			ParamDoc{
				Name: "energy_criterium_db", TypeAndInfo: "float <= 0",
				Description: "Silence floor relative to the loudest bin", Default: "-60",
			}),
		Parse: parseSLSH,
	})

	r.MustRegister(Entry{
		Method:   MethodSLSI,
		Name:     "Smoothed Local Sparsity, interpolated (SLS-I)",
		Citation: citeLS,
		Parameters: append(lsDocs(),
			ParamDoc{Name: "beta", TypeAndInfo: typeExponent, Description: "Sparsity weight exponent", Default: "80"},
			ParamDoc{
				Name: "interp_steps", TypeAndInfo: "int array (T, 2) >= 0",
				Description: "Interpolated bins and frames per frame", Default: "required",
			}),
		Parse: parseSLSI,
	})

	return r
}
