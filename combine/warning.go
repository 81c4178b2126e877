package combine

import (
	"fmt"
	"strconv"
)

// WarningKind classifies a non-fatal diagnostic.
type WarningKind int

const (
	// ParameterChanged: a parameter was corrected to the nearest valid value.
	ParameterChanged WarningKind = iota
	// DOIUnavailable: a DOI was requested but only a citation text exists.
	DOIUnavailable
)

// Warning is a diagnostic collected while preparing a combination. Warnings
// never stop execution.
type Warning struct {
	Kind   WarningKind
	Method Method
	Param  string
	From   float64
	To     float64
	Msg    string
}

// String renders the warning for logs and CLI output.
func (w Warning) String() string {
	if w.Kind == ParameterChanged {
		return fmt.Sprintf("%s: parameter %q changed from %s to %s", w.Method, w.Param, fmtNum(w.From), fmtNum(w.To))
	}
	return fmt.Sprintf("%s: %s", w.Method, w.Msg)
}

func fmtNum(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
