package combine

import "github.com/cwbudde/algo-ctfr/tfr"

// Config is the validated parameter set of one combination method. The set
// of implementations is closed: one Config type per Method.
type Config interface {
	// Method reports which combination method the config selects.
	Method() Method

	// validate coerces out-of-range values, reporting each change, and fails
	// on values that cannot be coerced. It runs before any numeric work.
	validate(s *tfr.Stack) (Config, []Warning, error)

	// combine reduces a validated, normalized stack to one representation.
	combine(s *tfr.Stack, e *engine) (*tfr.Representation, error)
}

// ConfigFor returns the default configuration of m. SLS-I has no usable
// default: its schedule must be set before use.
func ConfigFor(m Method) (Config, error) {
	switch m {
	case MethodMean:
		return MeanConfig{}, nil
	case MethodMedian:
		return MedianConfig{}, nil
	case MethodMin:
		return MinConfig{}, nil
	case MethodHarmonicMean:
		return HarmonicMeanConfig{}, nil
	case MethodGeometricMean:
		return GeometricMeanConfig{}, nil
	case MethodSWGM:
		return DefaultSWGMConfig(), nil
	case MethodFLS:
		return DefaultFLSConfig(), nil
	case MethodLT:
		return DefaultLTConfig(), nil
	case MethodLS:
		return DefaultLSConfig(), nil
	case MethodSLSH:
		return DefaultSLSHConfig(), nil
	case MethodSLSI:
		return DefaultSLSIConfig(), nil
	default:
		return nil, ErrInvalidCombinationMethod
	}
}
