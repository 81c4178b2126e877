package combine

import (
	"fmt"
)

// CitationMode selects what Cite returns.
type CitationMode int

const (
	// CiteDefault returns the DOI when there is one, else the citation text.
	CiteDefault CitationMode = iota
	// CiteDOI returns the DOI. Without one it falls back to the citation
	// text and reports a DOIUnavailable warning.
	CiteDOI
	// CiteCitation returns the citation text.
	CiteCitation
)

// Cite returns the reference of m in the requested mode. A method without a
// publication yields "No citation available for method '<name>'.".
func (r *Registry) Cite(m Method, mode CitationMode) (string, []Warning, error) {
	e, err := r.Lookup(m)
	if err != nil {
		return "", nil, err
	}
	if mode < CiteDefault || mode > CiteCitation {
		return "", nil, fmt.Errorf("%w: %d", ErrInvalidCitationMode, int(mode))
	}
	if e.Citation == nil {
		return "", nil, fmt.Errorf("%w: %s", ErrCitationNotImplemented, m)
	}

	var warnings []Warning
	if mode != CiteCitation {
		if e.Citation.DOI != "" {
			return e.Citation.DOI, nil, nil
		}
		if mode == CiteDOI {
			warnings = append(warnings, Warning{
				Kind:   DOIUnavailable,
				Method: m,
				Msg:    fmt.Sprintf("DOI not available for method '%s'; using citation instead", e.Name),
			})
		}
	}

	if e.Citation.Text == "" {
		return fmt.Sprintf("No citation available for method '%s'.", e.Name), warnings, nil
	}
	return e.Citation.Text, warnings, nil
}

// CitePackage reports the citation of this module. None is published yet.
func CitePackage() (string, error) {
	return "", fmt.Errorf("%w: package citation not available", ErrCitationNotImplemented)
}
