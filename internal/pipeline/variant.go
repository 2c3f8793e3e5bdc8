package pipeline

import (
	"fmt"
	"slices"
	"sort"
	"sync"

	"github.com/ziadkadry99/instructgen/internal/llm"
)

// Vars binds names to text: the invocation's parameters and, as stages
// complete, each stage's output under the stage name. A missing name reads
// as the empty string.
type Vars map[string]string

// Stage is one generation call. Prompt must be a pure function of the values
// bound so far.
type Stage struct {
	Name   string
	Prompt func(v Vars) []llm.Message
}

// Variant is one named prompt-template sequence.
type Variant struct {
	Name        string
	Description string
	// Params names the inputs in order; Invoke binds its argument to the first.
	Params []string
	Stages []Stage
	// Pattern is the role sequence every assembled record must follow.
	Pattern  []llm.Role
	Assemble func(v Vars) Record
}

func (v *Variant) validate() error {
	if v.Name == "" {
		return fmt.Errorf("variant name is required")
	}
	if len(v.Stages) == 0 {
		return fmt.Errorf("variant %s: at least one stage is required", v.Name)
	}
	if v.Assemble == nil {
		return fmt.Errorf("variant %s: assemble function is required", v.Name)
	}
	if len(v.Pattern) == 0 || v.Pattern[0] != llm.RoleSystem {
		return fmt.Errorf("variant %s: pattern must start with the system role", v.Name)
	}
	seen := make(map[string]bool, len(v.Params)+len(v.Stages))
	for _, p := range v.Params {
		if seen[p] {
			return fmt.Errorf("variant %s: duplicate name %q", v.Name, p)
		}
		seen[p] = true
	}
	for _, s := range v.Stages {
		if s.Name == "" || s.Prompt == nil {
			return fmt.Errorf("variant %s: stages need a name and a prompt", v.Name)
		}
		if seen[s.Name] {
			return fmt.Errorf("variant %s: duplicate name %q", v.Name, s.Name)
		}
		seen[s.Name] = true
	}
	return nil
}

// checkPattern verifies an assembled record against the variant's pattern.
func (v *Variant) checkPattern(rec Record) error {
	if err := rec.Validate(); err != nil {
		return err
	}
	if !slices.Equal(rec.Roles(), v.Pattern) {
		return fmt.Errorf("roles %v do not match pattern %v", rec.Roles(), v.Pattern)
	}
	return nil
}

// Registry holds variants by name.
type Registry struct {
	mu       sync.RWMutex
	variants map[string]*Variant
}

// NewRegistry returns a registry holding vs. It panics on an invalid or
// duplicate variant, which is a programming error.
func NewRegistry(vs ...*Variant) *Registry {
	r := &Registry{variants: make(map[string]*Variant, len(vs))}
	for _, v := range vs {
		if err := r.Register(v); err != nil {
			panic(err)
		}
	}
	return r
}

// Register adds a variant.
func (r *Registry) Register(v *Variant) error {
	if err := v.validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.variants[v.Name]; ok {
		return fmt.Errorf("variant %s is already registered", v.Name)
	}
	r.variants[v.Name] = v
	return nil
}

// Lookup returns the named variant.
func (r *Registry) Lookup(name string) (*Variant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.variants[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPipeline, name)
	}
	return v, nil
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.variants))
	for n := range r.variants {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Variants returns the registered variants sorted by name.
func (r *Registry) Variants() []*Variant {
	names := r.Names()
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Variant, 0, len(names))
	for _, n := range names {
		out = append(out, r.variants[n])
	}
	return out
}

// Default holds every built-in variant.
var Default = NewRegistry(builtins()...)

func builtins() []*Variant {
	var vs []*Variant
	vs = append(vs, basicVariants()...)
	vs = append(vs, codingVariants()...)
	vs = append(vs, knowledgeVariants()...)
	return vs
}
