package state

import "sort"

// Set is a string set. Operations return new sets and never mutate their
// receivers, so callers may keep earlier snapshots.
type Set map[string]struct{}

// NewSet builds a set from the given members.
func NewSet(members ...string) Set {
	s := make(Set, len(members))
	for _, m := range members {
		s[m] = struct{}{}
	}
	return s
}

// Has reports membership.
func (s Set) Has(member string) bool {
	_, ok := s[member]
	return ok
}

// Len returns the number of members.
func (s Set) Len() int {
	return len(s)
}

// Clone returns a copy of s.
func (s Set) Clone() Set {
	dup := make(Set, len(s))
	for m := range s {
		dup[m] = struct{}{}
	}
	return dup
}

// Union returns s ∪ other.
func (s Set) Union(other Set) Set {
	out := s.Clone()
	for m := range other {
		out[m] = struct{}{}
	}
	return out
}

// Intersect returns s ∩ other.
func (s Set) Intersect(other Set) Set {
	out := make(Set)
	for m := range s {
		if other.Has(m) {
			out[m] = struct{}{}
		}
	}
	return out
}

// Difference returns s − other.
func (s Set) Difference(other Set) Set {
	out := make(Set)
	for m := range s {
		if !other.Has(m) {
			out[m] = struct{}{}
		}
	}
	return out
}

// SubsetOf reports whether every member of s is in other.
func (s Set) SubsetOf(other Set) bool {
	for m := range s {
		if !other.Has(m) {
			return false
		}
	}
	return true
}

// Toggle returns a copy of s with member's membership flipped.
func (s Set) Toggle(member string) Set {
	out := s.Clone()
	if out.Has(member) {
		delete(out, member)
	} else {
		out[member] = struct{}{}
	}
	return out
}

// Sorted returns the members in lexical order.
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for m := range s {
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}
