// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package construct

import "fmt"

// Mapping holds the constructs of one document as seven kind-keyed,
// insertion-ordered sub-mappings from token to construct. The zero value is
// ready to use.
type Mapping struct {
	sets [numKinds]set
}

type set struct {
	order []Token
	items map[Token]*Construct
}

// NewMapping returns an empty Mapping.
func NewMapping() *Mapping {
	return &Mapping{}
}

// Add records c under its kind. Tokens must be unique across all kinds.
func (m *Mapping) Add(c *Construct) error {
	if !c.Kind.valid() {
		return fmt.Errorf("%w: %d", ErrUnknownKind, int(c.Kind))
	}
	if _, ok := m.Lookup(c.Token); ok {
		return fmt.Errorf("%w: %s", ErrDuplicateToken, c.Token)
	}
	s := &m.sets[c.Kind]
	if s.items == nil {
		s.items = make(map[Token]*Construct)
	}
	s.items[c.Token] = c
	s.order = append(s.order, c.Token)
	return nil
}

// Lookup finds the construct for tok in any kind.
func (m *Mapping) Lookup(tok Token) (*Construct, bool) {
	for i := range m.sets {
		if c, ok := m.sets[i].items[tok]; ok {
			return c, true
		}
	}
	return nil, false
}

// Kind returns the constructs of kind k in extraction order.
func (m *Mapping) Kind(k Kind) []*Construct {
	if !k.valid() {
		return nil
	}
	s := m.sets[k]
	out := make([]*Construct, 0, len(s.order))
	for _, tok := range s.order {
		out = append(out, s.items[tok])
	}
	return out
}

// All returns every construct, kind by kind in extraction order.
func (m *Mapping) All() []*Construct {
	var out []*Construct
	for _, k := range Kinds() {
		out = append(out, m.Kind(k)...)
	}
	return out
}

// Len returns the total number of constructs.
func (m *Mapping) Len() int {
	n := 0
	for i := range m.sets {
		n += len(m.sets[i].order)
	}
	return n
}

// Counts returns the number of constructs per kind, omitting empty kinds.
func (m *Mapping) Counts() map[Kind]int {
	counts := make(map[Kind]int)
	for i := range m.sets {
		if n := len(m.sets[i].order); n > 0 {
			counts[Kind(i)] = n
		}
	}
	return counts
}
