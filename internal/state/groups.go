package state

// Groups tracks which catalog families are collapsed and which have been seen
// during the current session.
type Groups struct {
	Collapsed Set
	Known     Set
}

// ReconcileGroups folds the families present in the current catalog view into
// the tracked sets. Families seen for the first time start collapsed, families
// that are still present keep their flag, and families that disappeared are
// dropped from both sets.
func ReconcileGroups(collapsed, known, current Set) (Set, Set) {
	fresh := current.Difference(known)
	return collapsed.Intersect(current).Union(fresh), current.Clone()
}

// Reconcile applies ReconcileGroups in place.
func (g *Groups) Reconcile(current Set) {
	g.Collapsed, g.Known = ReconcileGroups(g.Collapsed, g.Known, current)
}

// IsCollapsed reports whether family is collapsed.
func (g *Groups) IsCollapsed(family string) bool {
	return g.Collapsed.Has(family)
}

// Toggle flips the collapse flag of family.
func (g *Groups) Toggle(family string) {
	g.Collapsed = g.Collapsed.Toggle(family)
}

// Reset forgets every family.
func (g *Groups) Reset() {
	g.Collapsed = NewSet()
	g.Known = NewSet()
}
