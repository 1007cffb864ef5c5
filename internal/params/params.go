package params

import (
	"fmt"

	"github.com/san-kum/eoslab/internal/quantity"
)

// Standard parameter names used by the EOS evaluators. A Set may carry
// any names, but these are the ones the eos package looks up.
const (
	V0     = "v0"     // zero-pressure unit-cell volume, A^3
	K0     = "k0"     // isothermal bulk modulus at V0, GPa
	K0p    = "k0p"    // pressure derivative of K0
	Gamma0 = "gamma0" // Gruneisen parameter at V0
	Q      = "q"      // volume exponent of the Gruneisen parameter
	Theta0 = "theta0" // Debye temperature, K
	N      = "n"      // atoms per formula unit
	Z      = "z"      // formula units per unit cell
)

type Entry struct {
	Name  string
	Value quantity.Quantity
}

// Set is an ordered mapping from parameter name to Quantity. Entries
// keep insertion order so reports and fit vectors are deterministic.
type Set struct {
	entries []Entry
	index   map[string]int
}

func NewSet() *Set {
	return &Set{index: make(map[string]int)}
}

// FromEntries builds a Set preserving the given order.
func FromEntries(entries []Entry) *Set {
	s := NewSet()
	for _, e := range entries {
		s.Put(e.Name, e.Value)
	}
	return s
}

// Put inserts or overwrites a parameter. Overwriting keeps the original
// position.
func (s *Set) Put(name string, q quantity.Quantity) {
	if i, ok := s.index[name]; ok {
		s.entries[i].Value = q
		return
	}
	s.index[name] = len(s.entries)
	s.entries = append(s.entries, Entry{Name: name, Value: q})
}

func (s *Set) Get(name string) (quantity.Quantity, bool) {
	i, ok := s.index[name]
	if !ok {
		return quantity.Quantity{}, false
	}
	return s.entries[i].Value, true
}

func (s *Set) Has(name string) bool {
	_, ok := s.index[name]
	return ok
}

func (s *Set) Len() int { return len(s.entries) }

// Names returns parameter names in insertion order.
func (s *Set) Names() []string {
	names := make([]string, len(s.entries))
	for i, e := range s.entries {
		names[i] = e.Name
	}
	return names
}

// Entries returns a copy of the ordered entries.
func (s *Set) Entries() []Entry {
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

func (s *Set) Clone() *Set {
	return FromEntries(s.entries)
}

// WithPrefix returns a copy with every name prefixed, used to
// disambiguate when static and thermal groups are merged into one
// flat set (e.g. "st_v0" vs "th_v0").
func (s *Set) WithPrefix(prefix string) *Set {
	out := NewSet()
	for _, e := range s.entries {
		out.Put(prefix+e.Name, e.Value)
	}
	return out
}

// Merge returns a new Set with other's entries appended; clashing names
// take other's value.
func (s *Set) Merge(other *Set) *Set {
	out := s.Clone()
	for _, e := range other.entries {
		out.Put(e.Name, e.Value)
	}
	return out
}

func (s *Set) String() string {
	str := "{"
	for i, e := range s.entries {
		if i > 0 {
			str += ", "
		}
		str += fmt.Sprintf("%s: %g±%g", e.Name, e.Value.Value, e.Value.Sigma)
	}
	return str + "}"
}
