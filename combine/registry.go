package combine

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-ctfr/tfr"
)

// Parser turns keyword parameters into a config, reporting corrected values.
type Parser func(p Params) (Config, []Warning, error)

// ParamDoc describes one method parameter for listings and help output.
type ParamDoc struct {
	Name        string
	TypeAndInfo string
	Description string
	Default     string
}

// Citation is the reference of a method. An empty Text means the method has
// no publication to cite.
type Citation struct {
	Text string
	DOI  string
}

// Entry describes one registered combination method.
type Entry struct {
	Method     Method
	Name       string
	Citation   *Citation
	Parameters []ParamDoc
	Parse      Parser
}

// Registry maps methods to their entries.
type Registry struct {
	entries map[Method]Entry
}

var errDuplicateMethod = errors.New("duplicate method")

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[Method]Entry)}
}

// Register adds an entry.
func (r *Registry) Register(e Entry) error {
	if !e.Method.valid() {
		return fmt.Errorf("%w: %s", ErrInvalidCombinationMethod, e.Method)
	}

	if e.Parse == nil {
		return errors.New("nil parser")
	}

	if _, exists := r.entries[e.Method]; exists {
		return fmt.Errorf("%w: %s", errDuplicateMethod, e.Method)
	}

	r.entries[e.Method] = e

	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(e Entry) {
	err := r.Register(e)
	if err != nil {
		panic("combine registry: " + err.Error())
	}
}

// Lookup returns the entry of m.
func (r *Registry) Lookup(m Method) (Entry, error) {
	e, ok := r.entries[m]
	if !ok {
		return Entry{}, fmt.Errorf("%w: %s", ErrInvalidCombinationMethod, m)
	}
	return e, nil
}

// Methods returns the registered methods in declaration order.
func (r *Registry) Methods() []Method {
	var out []Method
	for _, m := range Methods() {
		if _, ok := r.entries[m]; ok {
			out = append(out, m)
		}
	}
	return out
}

// MethodName returns the display name of m, e.g. "Fast Local Sparsity (FLS)".
func (r *Registry) MethodName(m Method) (string, error) {
	e, err := r.Lookup(m)
	if err != nil {
		return "", err
	}
	return e.Name, nil
}

// Parse checks p against the parameter table of m and builds its config.
func (r *Registry) Parse(m Method, p Params) (Config, []Warning, error) {
	e, err := r.Lookup(m)
	if err != nil {
		return nil, nil, err
	}
	if err := p.checkKnown(m, e.Parameters); err != nil {
		return nil, nil, err
	}
	return e.Parse(p)
}

// FromSpecs validates specs and combines them with method m configured by p.
// Validation of the specs and of every parameter completes before any
// numeric work starts.
func (r *Registry) FromSpecs(specs []*tfr.Representation, m Method, p Params, opts ...Option) (*Result, error) {
	s, err := tfr.NewStack(specs...)
	if err != nil {
		return nil, err
	}

	cfg, warnings, err := r.Parse(m, p)
	if err != nil {
		return nil, err
	}

	return run(s, cfg, warnings, applyOptions(opts))
}

// FromSpecsKey is FromSpecs with the method given by its key, e.g. "sls_h".
func (r *Registry) FromSpecsKey(specs []*tfr.Representation, key string, p Params, opts ...Option) (*Result, error) {
	m, err := ParseMethod(key)
	if err != nil {
		return nil, err
	}
	return r.FromSpecs(specs, m, p, opts...)
}

// fixed is the parser of a method without parameters.
func fixed(cfg Config) Parser {
	return func(Params) (Config, []Warning, error) {
		return cfg, nil, nil
	}
}
