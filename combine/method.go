package combine

import "fmt"

// Method identifies a combination method.
type Method int

const (
	MethodMean Method = iota
	MethodMedian
	MethodMin
	MethodHarmonicMean
	MethodGeometricMean
	MethodSWGM
	MethodFLS
	MethodLT
	MethodLS
	MethodSLSH
	MethodSLSI

	methodCount
)

var methodKeys = [methodCount]string{
	MethodMean:          "mean",
	MethodMedian:        "median",
	MethodMin:           "min",
	MethodHarmonicMean:  "hmean",
	MethodGeometricMean: "gmean",
	MethodSWGM:          "swgm",
	MethodFLS:           "fls",
	MethodLT:            "lt",
	MethodLS:            "ls",
	MethodSLSH:          "sls_h",
	MethodSLSI:          "sls_i",
}

// String returns the method key, e.g. "fls".
func (m Method) String() string {
	if !m.valid() {
		return fmt.Sprintf("Method(%d)", int(m))
	}
	return methodKeys[m]
}

func (m Method) valid() bool { return m >= 0 && m < methodCount }

// ParseMethod resolves a method key.
func ParseMethod(key string) (Method, error) {
	for m, k := range methodKeys {
		if k == key {
			return Method(m), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidCombinationMethod, key)
}

// Methods returns every method in declaration order.
func Methods() []Method {
	out := make([]Method, methodCount)
	for i := range out {
		out[i] = Method(i)
	}
	return out
}
